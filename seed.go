package sdtid

import "encoding/base64"

// tokenEncryptField labels the compute_key call that derives the
// seed-decryption key, per spec §6.
const tokenEncryptField = "TokenEncrypt"

// decodeTokenSeed base64-decodes the token's Seed field and drops its
// leading byte — a version tag, not ciphertext (spec §4.6, §9). The
// remaining bytes must cover one AES block.
func decodeTokenSeed(token Token) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(token.Seed)
	if err != nil {
		return nil, &Base64Error{Field: "Seed", Message: "invalid base64", Err: err}
	}
	if len(decoded) < 1+BlockSize {
		return nil, &Base64Error{Field: "Seed", Message: "decoded seed must be at least 17 bytes (1 version byte + 16 ciphertext)"}
	}
	return decoded[1 : 1+BlockSize], nil
}

// extractSeed produces the 16-byte plaintext token seed (C6, spec §4.6)
// from the header's derived intermediate secret, the token's serial, and
// its ciphertext seed.
//
//	data[0..8]  = serial ASCII, truncated to 8, zero-padded
//	data[8..12] = "Seed"
//	data[12..16] = 0x00
//	return encrypt(seedKey, data) XOR seedCiphertext
func extractSeed(batch *SDTIDBatch) ([BlockSize]byte, error) {
	var seed [BlockSize]byte

	secretCiphertext, err := decodeHeaderSecret(batch.Header)
	if err != nil {
		return seed, err
	}

	intermediateSecret, err := decryptSecret(secretHashParams{
		origin: batch.Header.Origin,
		dest:   batch.Header.Dest,
		name:   batch.Header.Name,
	}, secretCiphertext)
	if err != nil {
		return seed, err
	}

	seedKey, err := computeKey(tokenEncryptField, batch.Token.Serial, intermediateSecret[:], SeedIV)
	if err != nil {
		return seed, err
	}

	seedCiphertext, err := decodeTokenSeed(batch.Token)
	if err != nil {
		return seed, err
	}

	var data [BlockSize]byte
	serialLen := len(batch.Token.Serial)
	if serialLen > 8 {
		serialLen = 8
	}
	copy(data[0:serialLen], batch.Token.Serial)
	copy(data[8:12], "Seed")
	// data[12:16] stay zero.

	encrypted, err := encryptBlock(seedKey[:], data[:])
	if err != nil {
		return seed, err
	}

	seed = encrypted
	xorBlockInto(seed[:], seedCiphertext)
	return seed, nil
}
