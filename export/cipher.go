package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// aeadEngine wraps a cipher.AEAD so blob.go doesn't need to branch on
// cipher suite at every call site. Grounded on the teacher's cipher.go
// CipherEngine interface.
type aeadEngine struct {
	aead cipher.AEAD
}

func newAEADEngine(suite CipherSuite, key []byte) (*aeadEngine, error) {
	switch suite {
	case CipherAES256GCM:
		if len(key) != 32 {
			return nil, fmt.Errorf("export: aes-256-gcm requires a 32-byte key, got %d", len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("export: failed to create aes cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("export: failed to create gcm: %w", err)
		}
		return &aeadEngine{aead: aead}, nil

	case CipherChaCha20Poly1305:
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("export: chacha20-poly1305 requires a %d-byte key, got %d", chacha20poly1305.KeySize, len(key))
		}
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("export: failed to create chacha20-poly1305: %w", err)
		}
		return &aeadEngine{aead: aead}, nil

	default:
		return nil, errUnsupportedCipher(suite)
	}
}

func (e *aeadEngine) seal(nonce, plaintext []byte) []byte {
	return e.aead.Seal(nil, nonce, plaintext, nil)
}

func (e *aeadEngine) open(nonce, ciphertext []byte) ([]byte, error) {
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("export: authentication failed, blob may be corrupted or tampered: %w", err)
	}
	return plaintext, nil
}

func (e *aeadEngine) nonceSize() int { return e.aead.NonceSize() }

func generateNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("export: failed to generate nonce: %w", err)
	}
	return nonce, nil
}
