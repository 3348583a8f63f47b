package sdtid

import (
	"crypto/aes"
	"fmt"
)

// KeySize is the AES-128 key size in bytes, used throughout the derivation
// and passcode pipeline.
const KeySize = 16

// BlockSize is the AES block size in bytes. Every intermediate value in the
// pipeline — hash keys, derived secrets, seeds, tokencodes — is exactly one
// block.
const BlockSize = 16

// encryptBlock performs single-block AES-128 encryption in ECB mode: no
// chaining, no padding. ECB is not exposed by crypto/cipher's BlockMode
// helpers (intentionally, since ECB leaks structure across multiple
// blocks), so this calls the block cipher directly — the SDTID format
// never encrypts more than one block without an explicit chain built on
// top, which is exactly what cbcHash does.
func encryptBlock(key, plaintext []byte) ([BlockSize]byte, error) {
	var out [BlockSize]byte
	if len(key) != KeySize {
		return out, fmt.Errorf("sdtid: aes key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(plaintext) != BlockSize {
		return out, fmt.Errorf("sdtid: aes block must be %d bytes, got %d", BlockSize, len(plaintext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return out, fmt.Errorf("sdtid: failed to create aes cipher: %w", err)
	}
	block.Encrypt(out[:], plaintext)
	return out, nil
}

// xorBlockInto XORs the first min(len(dst), len(src)) bytes of src into
// dst, in place.
func xorBlockInto(dst []byte, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] ^= src[i]
	}
}
