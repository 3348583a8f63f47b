package export

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KeyProvider derives a symmetric key from a caller-supplied passphrase
// and a salt, generating the salt itself on request. Grounded on the
// teacher's key_provider.go PasswordKeyProvider.
type KeyProvider interface {
	DeriveKey(salt []byte) ([]byte, error)
	GenerateSalt() ([]byte, error)
}

// PassphraseKeyProvider implements KeyProvider using either Argon2id
// (default, recommended) or PBKDF2.
type PassphraseKeyProvider struct {
	passphrase   []byte
	useArgon2id  bool
	argon2Params Argon2idParams
	pbkdf2Params PBKDF2Params
}

// NewArgon2idProvider derives keys from passphrase using Argon2id.
func NewArgon2idProvider(passphrase []byte, params Argon2idParams) *PassphraseKeyProvider {
	if params.Memory == 0 {
		params.Memory = DefaultArgon2idParams().Memory
	}
	if params.Iterations == 0 {
		params.Iterations = DefaultArgon2idParams().Iterations
	}
	if params.Parallelism == 0 {
		params.Parallelism = DefaultArgon2idParams().Parallelism
	}
	if params.SaltSize == 0 {
		params.SaltSize = DefaultArgon2idParams().SaltSize
	}
	if params.KeySize == 0 {
		params.KeySize = DefaultArgon2idParams().KeySize
	}
	return &PassphraseKeyProvider{passphrase: passphrase, useArgon2id: true, argon2Params: params}
}

// NewPBKDF2Provider derives keys from passphrase using PBKDF2.
func NewPBKDF2Provider(passphrase []byte, params PBKDF2Params) *PassphraseKeyProvider {
	if params.Iterations == 0 {
		params.Iterations = DefaultPBKDF2Params().Iterations
	}
	if params.SaltSize == 0 {
		params.SaltSize = DefaultPBKDF2Params().SaltSize
	}
	if params.KeySize == 0 {
		params.KeySize = DefaultPBKDF2Params().KeySize
	}
	return &PassphraseKeyProvider{passphrase: passphrase, useArgon2id: false, pbkdf2Params: params}
}

// DeriveKey derives a key from the passphrase and salt.
func (p *PassphraseKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	if len(p.passphrase) == 0 {
		return nil, fmt.Errorf("export: passphrase cannot be empty")
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("export: salt cannot be empty")
	}

	if p.useArgon2id {
		return argon2.IDKey(
			p.passphrase,
			salt,
			p.argon2Params.Iterations,
			p.argon2Params.Memory,
			p.argon2Params.Parallelism,
			uint32(p.argon2Params.KeySize),
		), nil
	}

	var hashFunc func() hash.Hash
	switch p.pbkdf2Params.HashFunc {
	case SHA256:
		hashFunc = sha256.New
	case SHA512:
		hashFunc = sha512.New
	default:
		return nil, fmt.Errorf("export: unsupported pbkdf2 hash function: %v", p.pbkdf2Params.HashFunc)
	}

	return pbkdf2.Key(p.passphrase, salt, p.pbkdf2Params.Iterations, p.pbkdf2Params.KeySize, hashFunc), nil
}

// GenerateSalt returns a fresh random salt sized for this provider's
// derivation function.
func (p *PassphraseKeyProvider) GenerateSalt() ([]byte, error) {
	size := p.pbkdf2Params.SaltSize
	if p.useArgon2id {
		size = p.argon2Params.SaltSize
	}
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("export: failed to generate salt: %w", err)
	}
	return salt, nil
}
