package sdtid

import (
	"fmt"
	"time"
)

// keyFromTime builds the 16-byte AES key used for one round of the
// five-round chain (spec §4.7): fixed fill bytes at both ends, a BCD time
// prefix overwriting the low bytes, and four nibble-packed bytes from the
// token serial in the middle.
//
//	buf[0:8]   = 0xAA, then overwritten by the BCD prefix
//	buf[8:12]  = serial digits 4..11, nibble-packed two-per-byte
//	buf[12:16] = 0xBB
func keyFromTime(bcdPrefix []byte, serial string) ([KeySize]byte, error) {
	if len(serial) < 12 {
		return [KeySize]byte{}, &InvalidSerialError{Serial: serial, Message: "serial must be at least 12 digits"}
	}

	var buf [KeySize]byte
	for i := 0; i < 8; i++ {
		buf[i] = 0xAA
	}
	for i := 12; i < KeySize; i++ {
		buf[i] = 0xBB
	}
	copy(buf[:len(bcdPrefix)], bcdPrefix)

	serialDigits := make([]byte, 12)
	for i := 0; i < 12; i++ {
		c := serial[i]
		if c < '0' || c > '9' {
			return [KeySize]byte{}, &InvalidSerialError{Serial: serial, Message: "serial must contain only digits 0-9"}
		}
		serialDigits[i] = c - '0'
	}

	bufPos := 8
	for i := 4; i < 12; i += 2 {
		buf[bufPos] = serialDigits[i]<<4 | serialDigits[i+1]
		bufPos++
	}

	return buf, nil
}

// bcdTime builds the 8-byte BCD time array the five-round chain derives
// its per-round keys from (spec §4.7), after masking the minute field
// through the token's duration policy.
func bcdTime(duration TokenDuration, t time.Time) [8]byte {
	maskedMinute := duration.adjustForHash(t.Minute())
	yearHi, yearLo := bcd4(t.Year())

	return [8]byte{
		yearHi,
		yearLo,
		bcd2(int(t.Month())),
		bcd2(t.Day()),
		bcd2(t.Hour()),
		bcd2(maskedMinute),
		0x00,
		0x00,
	}
}

// Generate produces the current decimal passcode for token at the given
// UTC time (C7/C9, spec §4.7, §4.9). It runs the five-round AES chain
// keyed by progressively longer BCD time prefixes, selects one of the four
// resulting tokencodes by the token's duration policy, and folds the
// token's PIN into the decimal digits most-significant first.
//
// Generate is referentially transparent: for a fixed (token, time) the
// output never varies, and it never mutates token.
func Generate(token *RSAToken, t time.Time) (string, error) {
	if token == nil {
		return "", ErrNilToken
	}

	t = t.UTC()
	bt := bcdTime(token.duration, t)

	state := token.seed
	prefixLens := []int{2, 3, 4, 5, 8}
	for _, n := range prefixLens {
		key, err := keyFromTime(bt[:n], token.serial)
		if err != nil {
			return "", err
		}
		encrypted, err := encryptBlock(key[:], state[:])
		if err != nil {
			return "", err
		}
		state = encrypted
	}

	index := token.duration.timeIndex(t.Minute(), t.Second())
	if index < 0 || index+4 > BlockSize {
		return "", fmt.Errorf("sdtid: time index %d out of range for a %d-byte block", index, BlockSize)
	}

	tokenCode := uint32(state[index])<<24 |
		uint32(state[index+1])<<16 |
		uint32(state[index+2])<<8 |
		uint32(state[index+3])

	return foldDigits(tokenCode, token.digits, token.pin), nil
}

// foldDigits extracts digits decimal digits from code, least-significant
// first, adding the corresponding PIN digit (also taken least-significant
// first) into each, and writes each digit from the right end of the output
// so it reads most-significant first — appending left-to-right here would
// print the digits backwards (spec §9).
func foldDigits(code uint32, digits int, pin string) string {
	out := make([]byte, digits)
	for k := 0; k < digits; k++ {
		d := code % 10
		code /= 10

		if k < len(pin) {
			pinDigit := pin[len(pin)-1-k] - '0'
			d += uint32(pinDigit)
		}

		out[digits-1-k] = byte(d%10) + '0'
	}
	return string(out)
}
