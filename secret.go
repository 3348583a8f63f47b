package sdtid

import "encoding/base64"

// SeedIV is the fixed IV compute_key uses when deriving the seed-decryption
// key from the intermediate secret. It is a protocol constant, not a
// secret — see spec §6.
var SeedIV = [BlockSize]byte{
	0x16, 0xa0, 0x9e, 0x66, 0x7f, 0x3b, 0xcc, 0x90,
	0x8b, 0x2f, 0xb1, 0x36, 0x6e, 0xa9, 0x57, 0xd3,
}

// secretHashParams holds the three header fields the 1000-round hash
// consumes. The design recognizes a Password-based alternative to Origin
// (see DESIGN.md's Open Question decisions); only Origin is implemented.
type secretHashParams struct {
	origin string
	dest   string
	name   string
}

// hashKey runs the thousand-round CBC-MAC-like construction over the
// header's origin/dest/name fields (C5, spec §4.5). The loop's iteration
// counter is written into data[0x4E] (high byte) and data[0x4F] (low byte)
// — the authoritative placement per spec §9's Open Question, the only
// pairing that reproduces the spec's test vector.
func hashKey(params secretHashParams) ([BlockSize]byte, error) {
	var key [KeySize]byte
	copy(key[:], params.name)

	var data [0x50]byte
	copy(data[0x00:0x20], params.origin)
	copy(data[0x20:0x40], params.dest)

	iv := [BlockSize]byte{}
	var result [BlockSize]byte

	for iteration := 0; iteration < 1000; iteration++ {
		data[0x4F] = byte(iteration)
		data[0x4E] = byte(iteration >> 8)

		tmp, err := cbcHash(key[:], iv[:], data[:])
		if err != nil {
			return result, err
		}
		xorBlockInto(result[:], tmp[:])
	}
	return result, nil
}

// decryptSecret derives the 16-byte intermediate secret from the header's
// base64-encoded Secret field and the hash key above (C5, second stage of
// spec §4.5).
//
//	block  = "Secret" || 0x00 0x00 || name (≤8 bytes) || zero-pad to 16
//	result = encrypt(hashKey, block) XOR secretCiphertext
func decryptSecret(params secretHashParams, secretCiphertext []byte) ([BlockSize]byte, error) {
	var result [BlockSize]byte
	if len(secretCiphertext) < BlockSize {
		return result, &Base64Error{Field: "Secret", Message: "decoded secret must be at least 16 bytes"}
	}

	hk, err := hashKey(params)
	if err != nil {
		return result, err
	}

	var block [BlockSize]byte
	copy(block[0:6], "Secret")
	// block[6:8] stay zero.
	nameLen := len(params.name)
	if nameLen > 8 {
		nameLen = 8
	}
	copy(block[8:8+nameLen], params.name)

	encrypted, err := encryptBlock(hk[:], block[:])
	if err != nil {
		return result, err
	}

	result = encrypted
	xorBlockInto(result[:], secretCiphertext[:BlockSize])
	return result, nil
}

// computeKey derives the seed-decryption key from an intermediate secret,
// a labelling field, and the token serial (C5's compute_key, spec §4.5).
//
//	data[0x40] = field (≤0x20 bytes) || serial ASCII (≤0x20 bytes), zero-padded
//	return cbcHash(intermediateSecret, iv, data)
func computeKey(field string, serial string, intermediateSecret []byte, iv [BlockSize]byte) ([KeySize]byte, error) {
	var data [0x40]byte

	fieldLen := len(field)
	if fieldLen > 0x20 {
		fieldLen = 0x20
	}
	copy(data[0x00:0x00+fieldLen], field)

	serialLen := len(serial)
	if serialLen > 0x20 {
		serialLen = 0x20
	}
	copy(data[0x20:0x20+serialLen], serial)

	return cbcHash(intermediateSecret, iv[:], data[:])
}

// decodeHeaderSecret base64-decodes the header's Secret field, surfacing a
// Base64Error on failure (spec §7).
func decodeHeaderSecret(header Header) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(header.Secret)
	if err != nil {
		return nil, &Base64Error{Field: "Secret", Message: "invalid base64", Err: err}
	}
	return decoded, nil
}
