package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const (
	// magicBytes identifies an exported token-cache blob (ASCII "SDTB").
	magicBytes = uint32(0x53445442)

	// currentVersion is the current blob format version.
	currentVersion = uint8(1)

	// minHeaderSize sums every fixed-size field: magic, version, cipher,
	// the two length prefixes and the 16-byte correlation id (the size of
	// a header whose salt and nonce are empty).
	minHeaderSize = 4 + 1 + 1 + 2 + 2 + 16
)

// blobHeader is the fixed-layout prefix of an exported token-cache blob,
// grounded on the teacher's file_format.go FileHeader: magic, version,
// cipher suite, then the salt and nonce the passphrase-derived key and
// AEAD need to re-derive themselves on import.
type blobHeader struct {
	Magic      uint32
	Version    uint8
	Cipher     CipherSuite
	SaltSize   uint16
	Salt       []byte
	NonceSize  uint16
	Nonce      []byte
	Correlation uuid.UUID // logged by operators without ever logging the seed
}

func newBlobHeader(cipher CipherSuite, salt, nonce []byte) *blobHeader {
	return &blobHeader{
		Magic:       magicBytes,
		Version:     currentVersion,
		Cipher:      cipher,
		SaltSize:    uint16(len(salt)),
		Salt:        salt,
		NonceSize:   uint16(len(nonce)),
		Nonce:       nonce,
		Correlation: uuid.New(),
	}
}

func (h *blobHeader) writeTo(w io.Writer) error {
	buf := new(bytes.Buffer)

	if err := binary.Write(buf, binary.LittleEndian, h.Magic); err != nil {
		return fmt.Errorf("export: failed to write magic: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Version); err != nil {
		return fmt.Errorf("export: failed to write version: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Cipher); err != nil {
		return fmt.Errorf("export: failed to write cipher: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, h.SaltSize); err != nil {
		return fmt.Errorf("export: failed to write salt size: %w", err)
	}
	if _, err := buf.Write(h.Salt); err != nil {
		return fmt.Errorf("export: failed to write salt: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, h.NonceSize); err != nil {
		return fmt.Errorf("export: failed to write nonce size: %w", err)
	}
	if _, err := buf.Write(h.Nonce); err != nil {
		return fmt.Errorf("export: failed to write nonce: %w", err)
	}
	correlationBytes, err := h.Correlation.MarshalBinary()
	if err != nil {
		return fmt.Errorf("export: failed to marshal correlation id: %w", err)
	}
	if _, err := buf.Write(correlationBytes); err != nil {
		return fmt.Errorf("export: failed to write correlation id: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func readBlobHeader(r io.Reader) (*blobHeader, error) {
	h := &blobHeader{}

	if err := binary.Read(r, binary.LittleEndian, &h.Magic); err != nil {
		return nil, fmt.Errorf("export: failed to read magic: %w", err)
	}
	if h.Magic != magicBytes {
		return nil, fmt.Errorf("export: not a token-cache blob (bad magic)")
	}

	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return nil, fmt.Errorf("export: failed to read version: %w", err)
	}
	if h.Version > currentVersion {
		return nil, fmt.Errorf("export: unsupported blob version %d", h.Version)
	}

	if err := binary.Read(r, binary.LittleEndian, &h.Cipher); err != nil {
		return nil, fmt.Errorf("export: failed to read cipher: %w", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &h.SaltSize); err != nil {
		return nil, fmt.Errorf("export: failed to read salt size: %w", err)
	}
	h.Salt = make([]byte, h.SaltSize)
	if _, err := io.ReadFull(r, h.Salt); err != nil {
		return nil, fmt.Errorf("export: failed to read salt: %w", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &h.NonceSize); err != nil {
		return nil, fmt.Errorf("export: failed to read nonce size: %w", err)
	}
	h.Nonce = make([]byte, h.NonceSize)
	if _, err := io.ReadFull(r, h.Nonce); err != nil {
		return nil, fmt.Errorf("export: failed to read nonce: %w", err)
	}

	correlationBytes := make([]byte, 16)
	if _, err := io.ReadFull(r, correlationBytes); err != nil {
		return nil, fmt.Errorf("export: failed to read correlation id: %w", err)
	}
	if err := h.Correlation.UnmarshalBinary(correlationBytes); err != nil {
		return nil, fmt.Errorf("export: failed to unmarshal correlation id: %w", err)
	}

	return h, nil
}
