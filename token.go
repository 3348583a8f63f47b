package sdtid

// TokenDuration is a tagged two-case variant, not a subclass hierarchy
// (spec §9): the token's code either refreshes every sixty seconds or
// every thirty. Its two methods are the only behavior either case carries.
type TokenDuration uint8

const (
	// Sixty is a sixty-second-refresh token.
	Sixty TokenDuration = iota
	// Thirty is a thirty-second-refresh token.
	Thirty
)

// String returns the duration's name, mirroring the teacher's CipherSuite
// enum pattern.
func (d TokenDuration) String() string {
	switch d {
	case Sixty:
		return "sixty-second"
	case Thirty:
		return "thirty-second"
	default:
		return "unknown"
	}
}

// adjustForHash masks a time's minute field for use in the BCD time prefix
// (spec §4.7): Sixty clears the low two bits, Thirty clears the low bit.
// Only the minute field is touched; hour/day/etc. pass through untouched.
func (d TokenDuration) adjustForHash(minute int) int {
	switch d {
	case Thirty:
		return minute &^ 0b01
	default:
		return minute &^ 0b11
	}
}

// timeIndex selects which of the four adjacent 4-byte tokencodes in the
// final AES block is current, as a byte offset in {0,4,8,12} (spec §4.7).
func (d TokenDuration) timeIndex(minute, second int) int {
	switch d {
	case Thirty:
		minutePart := (minute & 0b01) << 3
		secondHalf := 0
		if second >= 30 {
			secondHalf = 0b100
		}
		return minutePart | secondHalf
	default:
		return (minute & 0b11) << 2
	}
}

// RSAToken is the immutable, derived runtime record a passcode is generated
// from (spec §3). It carries no reference to the SDTID ciphertext it was
// built from, and exposes no setters: construct it once via NewRSAToken,
// then treat it as frozen.
type RSAToken struct {
	serial   string
	duration TokenDuration
	digits   int
	seed     [BlockSize]byte
	pin      string
}

// NewRSAToken builds an RSAToken directly from its already-derived fields,
// bypassing SDTID parsing and seed extraction. This is the constructor
// FromXML delegates to once it has produced a plaintext seed; it
// is also how tests build a token around a synthetic seed.
func NewRSAToken(serial string, duration TokenDuration, digits int, seed [BlockSize]byte, pin string) (*RSAToken, error) {
	if err := validateSerial(serial); err != nil {
		return nil, err
	}
	if err := validateDigits(digits); err != nil {
		return nil, err
	}
	if err := validatePIN(pin); err != nil {
		return nil, err
	}

	return &RSAToken{
		serial:   serial,
		duration: duration,
		digits:   digits,
		seed:     seed,
		pin:      pin,
	}, nil
}

// FromXML builds an RSAToken from a parsed SDTID batch and a PIN string
// (C9's RSAToken::from_xml, spec §4.9): it extracts the plaintext seed,
// maps the header's interval to a TokenDuration, and validates every field
// before returning. interval = 60 maps to Sixty, 30 to Thirty; any other
// value is an UnsupportedIntervalError.
func FromXML(batch *SDTIDBatch, pin string) (*RSAToken, error) {
	if batch == nil {
		return nil, ErrNilBatch
	}

	var duration TokenDuration
	switch batch.Header.Interval {
	case 60:
		duration = Sixty
	case 30:
		duration = Thirty
	default:
		return nil, &UnsupportedIntervalError{Interval: batch.Header.Interval}
	}

	if err := validateDigits(batch.Header.Digits); err != nil {
		return nil, err
	}
	if err := validateSerial(batch.Token.Serial); err != nil {
		return nil, err
	}
	if err := validatePIN(pin); err != nil {
		return nil, err
	}

	seed, err := extractSeed(batch)
	if err != nil {
		return nil, err
	}

	return NewRSAToken(batch.Token.Serial, duration, batch.Header.Digits, seed, pin)
}

// Serial returns the token's serial number.
func (t *RSAToken) Serial() string { return t.serial }

// Duration returns the token's refresh duration.
func (t *RSAToken) Duration() TokenDuration { return t.duration }

// Digits returns the number of decimal digits Generate produces for this
// token.
func (t *RSAToken) Digits() int { return t.digits }

// Zero overwrites the token's plaintext seed with zeroes. This is advisory
// per spec §5, not correctness-critical: callers that want to bound how
// long the seed lives in memory can call it once the token is no longer
// needed.
func (t *RSAToken) Zero() {
	for i := range t.seed {
		t.seed[i] = 0
	}
}

// Snapshot is a plain-value copy of every field an RSAToken carries,
// including its plaintext seed. It exists only so a trusted, explicit
// caller — the sibling export package — can serialize a token under
// encryption; nothing in this package ever writes a Snapshot to a writer
// directly.
type Snapshot struct {
	Serial   string
	Duration TokenDuration
	Digits   int
	Seed     [BlockSize]byte
	PIN      string
}

// Snapshot copies out every field of t, seed included. Callers must not
// write the result anywhere without encrypting it first (spec §5: the
// plaintext seed must never be persisted).
func (t *RSAToken) Snapshot() Snapshot {
	return Snapshot{
		Serial:   t.serial,
		Duration: t.duration,
		Digits:   t.digits,
		Seed:     t.seed,
		PIN:      t.pin,
	}
}

// FromSnapshot rebuilds an RSAToken from a Snapshot, validating every
// field the same way NewRSAToken does.
func FromSnapshot(s Snapshot) (*RSAToken, error) {
	return NewRSAToken(s.Serial, s.Duration, s.Digits, s.Seed, s.PIN)
}
