package sdtid

import (
	"errors"
	"fmt"
)

// Error types represent the error kinds distinguished by spec §7. Parse and
// validation failures are reported as concrete struct types that wrap the
// underlying cause; callers that only care about the class of failure use
// the Is* helpers below.

// ParseError means the SDTID XML was malformed or a required element was
// missing or non-integer where an integer was expected.
type ParseError struct {
	Element string // the XML element involved, if known
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("sdtid: parse error: %s: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("sdtid: parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Base64Error means a header or token field expected to be base64 failed
// to decode.
type Base64Error struct {
	Field   string
	Message string
	Err     error
}

func (e *Base64Error) Error() string {
	return fmt.Sprintf("sdtid: base64 error: %s: %s", e.Field, e.Message)
}

func (e *Base64Error) Unwrap() error { return e.Err }

// UnsupportedIntervalError means header.DefInterval was not 30 or 60.
type UnsupportedIntervalError struct {
	Interval int
}

func (e *UnsupportedIntervalError) Error() string {
	return fmt.Sprintf("sdtid: unsupported interval: %d (want 30 or 60)", e.Interval)
}

// UnsupportedDigitsError means header.DefDigits fell outside [6,8].
// Advisory: the engine can still compute a code of that length, but
// RSAToken construction rejects it by default.
type UnsupportedDigitsError struct {
	Digits int
}

func (e *UnsupportedDigitsError) Error() string {
	return fmt.Sprintf("sdtid: unsupported digit count: %d (want 6-8)", e.Digits)
}

// InvalidPinError means the PIN string contained a non-digit character.
type InvalidPinError struct {
	Message string
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("sdtid: invalid pin: %s", e.Message)
}

// InvalidSerialError means the token serial contained a non-digit
// character, or was shorter than the 12 ASCII digits the passcode engine
// needs.
type InvalidSerialError struct {
	Serial  string
	Message string
}

func (e *InvalidSerialError) Error() string {
	return fmt.Sprintf("sdtid: invalid serial %q: %s", e.Serial, e.Message)
}

// Sentinel errors for simple callers that don't need the structured detail
// above.
var (
	ErrNilToken     = errors.New("sdtid: token cannot be nil")
	ErrNilBatch     = errors.New("sdtid: sdtid batch cannot be nil")
	ErrEmptySeed    = errors.New("sdtid: seed cannot be empty")
	ErrWrongSeedLen = errors.New("sdtid: seed must be exactly 16 bytes")
)

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsBase64Error reports whether err is (or wraps) a *Base64Error.
func IsBase64Error(err error) bool {
	var e *Base64Error
	return errors.As(err, &e)
}

// IsUnsupportedInterval reports whether err is (or wraps) an
// *UnsupportedIntervalError.
func IsUnsupportedInterval(err error) bool {
	var e *UnsupportedIntervalError
	return errors.As(err, &e)
}

// IsUnsupportedDigits reports whether err is (or wraps) an
// *UnsupportedDigitsError.
func IsUnsupportedDigits(err error) bool {
	var e *UnsupportedDigitsError
	return errors.As(err, &e)
}

// IsInvalidPin reports whether err is (or wraps) an *InvalidPinError.
func IsInvalidPin(err error) bool {
	var e *InvalidPinError
	return errors.As(err, &e)
}

// IsInvalidSerial reports whether err is (or wraps) an *InvalidSerialError.
func IsInvalidSerial(err error) bool {
	var e *InvalidSerialError
	return errors.As(err, &e)
}
