package export

import (
	"fmt"
	"io"

	sdtoken "github.com/sdtid/sdtoken"
)

// Rotate re-encrypts a blob read from r under a new passphrase and/or
// cipher suite, writing the result to w. Adapted from the teacher's
// key_rotation.go ReEncrypt: decrypt under the old key, re-derive a fresh
// salt and nonce under the new key, and write a brand new blob rather than
// mutate the old one in place.
func Rotate(w io.Writer, r io.Reader, oldProvider, newProvider KeyProvider, newSuite CipherSuite) error {
	token, err := Import(r, oldProvider)
	if err != nil {
		return fmt.Errorf("export: rotation failed to import existing blob: %w", err)
	}

	if err := Export(w, token, newProvider, newSuite); err != nil {
		return fmt.Errorf("export: rotation failed to export under new key: %w", err)
	}
	return nil
}

// MultiKeyProvider tries each of several key providers in turn, so a blob
// encrypted under a since-rotated passphrase can still be imported during
// a migration window. The first provider is used whenever a new blob is
// produced. Grounded on the teacher's key_rotation.go MultiKeyProvider.
type MultiKeyProvider struct {
	providers []KeyProvider
	primary   KeyProvider
}

// NewMultiKeyProvider builds a MultiKeyProvider. providers[0] is used for
// GenerateSalt and DeriveKey; TryDeriveKey walks the full list.
func NewMultiKeyProvider(providers ...KeyProvider) (*MultiKeyProvider, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("export: at least one key provider required")
	}
	return &MultiKeyProvider{providers: providers, primary: providers[0]}, nil
}

// DeriveKey derives using the primary provider only; callers that want
// fallback across old passphrases during a migration window should use
// ImportWithFallback, which tries each provider's key against the blob.
func (m *MultiKeyProvider) DeriveKey(salt []byte) ([]byte, error) {
	return m.primary.DeriveKey(salt)
}

// GenerateSalt generates using the primary provider.
func (m *MultiKeyProvider) GenerateSalt() ([]byte, error) {
	return m.primary.GenerateSalt()
}

// TryDeriveKey attempts key derivation with each provider in order,
// returning the first success.
func (m *MultiKeyProvider) TryDeriveKey(salt []byte) ([]byte, error) {
	var lastErr error
	for _, provider := range m.providers {
		key, err := provider.DeriveKey(salt)
		if err != nil {
			lastErr = err
			continue
		}
		return key, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("export: all key providers failed: %w", lastErr)
	}
	return nil, fmt.Errorf("export: no key providers available")
}

// ImportWithFallback imports a blob with the key from TryDeriveKey and, if
// that key does not open it, with each later provider's key in turn, so it
// succeeds as long as one of the MultiKeyProvider's passphrases produced
// the blob, regardless of which one.
func ImportWithFallback(r io.Reader, m *MultiKeyProvider) (*sdtoken.RSAToken, error) {
	header, err := readBlobHeader(r)
	if err != nil {
		return nil, err
	}

	key, err := m.TryDeriveKey(header.Salt)
	if err != nil {
		return nil, err
	}
	engine, err := newAEADEngine(header.Cipher, key)
	if err != nil {
		return nil, err
	}

	ciphertext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: failed to read ciphertext: %w", err)
	}
	plaintext, err := engine.open(header.Nonce, ciphertext)
	for _, provider := range m.providers[1:] {
		if err == nil {
			break
		}
		if key, err = provider.DeriveKey(header.Salt); err != nil {
			continue
		}
		if engine, err = newAEADEngine(header.Cipher, key); err != nil {
			return nil, err
		}
		plaintext, err = engine.open(header.Nonce, ciphertext)
	}
	if err != nil {
		return nil, err
	}

	snapshot, err := decodeSnapshot(plaintext)
	if err != nil {
		return nil, err
	}
	return sdtoken.FromSnapshot(snapshot)
}
