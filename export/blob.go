package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	sdtoken "github.com/sdtid/sdtoken"
)

// encodeSnapshot serializes a sdtoken.Snapshot to a flat byte slice:
// serial (length-prefixed), duration, digits, the 16-byte seed, then the
// PIN (length-prefixed). This is the plaintext that gets sealed; it never
// touches a writer on its own.
func encodeSnapshot(s sdtoken.Snapshot) ([]byte, error) {
	buf := new(bytes.Buffer)

	if err := writeLengthPrefixed(buf, []byte(s.Serial)); err != nil {
		return nil, fmt.Errorf("export: failed to encode serial: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(s.Duration)); err != nil {
		return nil, fmt.Errorf("export: failed to encode duration: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint8(s.Digits)); err != nil {
		return nil, fmt.Errorf("export: failed to encode digits: %w", err)
	}
	if _, err := buf.Write(s.Seed[:]); err != nil {
		return nil, fmt.Errorf("export: failed to encode seed: %w", err)
	}
	if err := writeLengthPrefixed(buf, []byte(s.PIN)); err != nil {
		return nil, fmt.Errorf("export: failed to encode pin: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeSnapshot(data []byte) (sdtoken.Snapshot, error) {
	r := bytes.NewReader(data)
	var s sdtoken.Snapshot

	serial, err := readLengthPrefixed(r)
	if err != nil {
		return s, fmt.Errorf("export: failed to decode serial: %w", err)
	}
	s.Serial = string(serial)

	var duration, digits uint8
	if err := binary.Read(r, binary.LittleEndian, &duration); err != nil {
		return s, fmt.Errorf("export: failed to decode duration: %w", err)
	}
	s.Duration = sdtoken.TokenDuration(duration)

	if err := binary.Read(r, binary.LittleEndian, &digits); err != nil {
		return s, fmt.Errorf("export: failed to decode digits: %w", err)
	}
	s.Digits = int(digits)

	if _, err := io.ReadFull(r, s.Seed[:]); err != nil {
		return s, fmt.Errorf("export: failed to decode seed: %w", err)
	}

	pin, err := readLengthPrefixed(r)
	if err != nil {
		return s, fmt.Errorf("export: failed to decode pin: %w", err)
	}
	s.PIN = string(pin)

	return s, nil
}

func writeLengthPrefixed(buf *bytes.Buffer, data []byte) error {
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(data))); err != nil {
		return err
	}
	_, err := buf.Write(data)
	return err
}

func readLengthPrefixed(r io.Reader) ([]byte, error) {
	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Export serializes token under authenticated encryption and writes the
// resulting blob to w: header (magic, version, cipher, salt, nonce,
// correlation id) followed by the sealed snapshot. The passphrase's
// derived key and a fresh nonce are generated per call, so exporting the
// same token twice yields two unrelated blobs.
func Export(w io.Writer, token *sdtoken.RSAToken, provider KeyProvider, suite CipherSuite) error {
	if token == nil {
		return fmt.Errorf("export: token cannot be nil")
	}

	salt, err := provider.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := provider.DeriveKey(salt)
	if err != nil {
		return err
	}

	engine, err := newAEADEngine(suite, key)
	if err != nil {
		return err
	}
	nonce, err := generateNonce(engine.nonceSize())
	if err != nil {
		return err
	}

	plaintext, err := encodeSnapshot(token.Snapshot())
	if err != nil {
		return err
	}
	ciphertext := engine.seal(nonce, plaintext)

	header := newBlobHeader(suite, salt, nonce)
	if err := header.writeTo(w); err != nil {
		return err
	}
	if _, err := w.Write(ciphertext); err != nil {
		return fmt.Errorf("export: failed to write ciphertext: %w", err)
	}
	return nil
}

// Import reads a blob written by Export, derives the same key from
// passphrase via provider, verifies and decrypts it, and rebuilds the
// RSAToken it came from. provider must use the same passphrase (and the
// same KDF family) Export used; the salt travels in the blob itself.
func Import(r io.Reader, provider KeyProvider) (*sdtoken.RSAToken, error) {
	header, err := readBlobHeader(r)
	if err != nil {
		return nil, err
	}

	key, err := provider.DeriveKey(header.Salt)
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
	if err != nil {
		return nil, err
	}

	snapshot, err := decodeSnapshot(plaintext)
	if err != nil {
		return nil, err
	}
	return sdtoken.FromSnapshot(snapshot)
}
