package export

import (
	"bytes"
	"testing"
)

func TestAEADEngineAES256GCMRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	engine, err := newAEADEngine(CipherAES256GCM, key)
	if err != nil {
		t.Fatalf("newAEADEngine: %v", err)
	}

	nonce, err := generateNonce(engine.nonceSize())
	if err != nil {
		t.Fatalf("generateNonce: %v", err)
	}

	plaintext := []byte("a 16-byte seed travels through here encrypted")
	ciphertext := engine.seal(nonce, plaintext)

	decrypted, err := engine.open(nonce, ciphertext)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestAEADEngineChaCha20Poly1305RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	engine, err := newAEADEngine(CipherChaCha20Poly1305, key)
	if err != nil {
		t.Fatalf("newAEADEngine: %v", err)
	}

	nonce, err := generateNonce(engine.nonceSize())
	if err != nil {
		t.Fatalf("generateNonce: %v", err)
	}

	plaintext := []byte("token cache payload")
	ciphertext := engine.seal(nonce, plaintext)

	decrypted, err := engine.open(nonce, ciphertext)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestNewAEADEngineRejectsWrongKeySize(t *testing.T) {
	if _, err := newAEADEngine(CipherAES256GCM, make([]byte, 16)); err == nil {
		t.Error("expected an error for a 16-byte key with AES-256-GCM, got nil")
	}
	if _, err := newAEADEngine(CipherChaCha20Poly1305, make([]byte, 16)); err == nil {
		t.Error("expected an error for a 16-byte key with ChaCha20-Poly1305, got nil")
	}
}

func TestNewAEADEngineRejectsUnsupportedSuite(t *testing.T) {
	if _, err := newAEADEngine(CipherSuite(99), make([]byte, 32)); err == nil {
		t.Error("expected an error for an unsupported cipher suite, got nil")
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, 32)
	engine, err := newAEADEngine(CipherAES256GCM, key)
	if err != nil {
		t.Fatalf("newAEADEngine: %v", err)
	}
	nonce, err := generateNonce(engine.nonceSize())
	if err != nil {
		t.Fatalf("generateNonce: %v", err)
	}

	ciphertext := engine.seal(nonce, []byte("payload"))
	ciphertext[0] ^= 0xff

	if _, err := engine.open(nonce, ciphertext); err == nil {
		t.Error("expected tampered ciphertext to fail authentication, got nil error")
	}
}
