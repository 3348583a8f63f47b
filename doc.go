// Package sdtid implements a software token compatible with the SecurID
// SDTID provisioning file format. It parses an SDTID XML batch, derives the
// 16-byte seed bound to a token's serial number and origin, and — given a
// wall-clock time and a numeric PIN — produces the decimal passcode a
// hardware fob would display at that moment.
//
// # Overview
//
// The package implements the deterministic pipeline described by the SDTID
// format: XML parsing, a 1000-round keyed hash over the provisioning
// header, single-block AES-128 ECB decryption of the token seed, and a
// five-round AES key-schedule chain over a BCD-encoded time prefix that
// produces the current passcode.
//
// # Supported Token Durations
//
//   - Sixty-second tokens, code changes every minute
//   - Thirty-second tokens, code changes twice per minute
//
// Neither duration is implemented by subclassing; TokenDuration is a tagged
// two-case value with methods, not an interface hierarchy.
//
// # Basic Usage
//
//	batch, err := sdtid.ReadFile("token.sdtid")
//	if err != nil {
//	    log.Fatalf("failed to read token: %v", err)
//	}
//
//	token, err := sdtid.FromXML(batch, "12345")
//	if err != nil {
//	    log.Fatalf("failed to build token: %v", err)
//	}
//
//	code, err := sdtid.Generate(token, time.Now().UTC())
//	if err != nil {
//	    log.Fatalf("failed to generate passcode: %v", err)
//	}
//	fmt.Println(code)
//
// # Security Notes
//
// The 16-byte plaintext seed is sensitive and is never written back to the
// SDTID file or logged by this package. RSAToken is immutable once built
// and safe to share across goroutines; Generate is referentially
// transparent for a fixed (token, time) pair. Callers that need to persist
// a constructed token should use the sibling export package, which never
// writes a seed to a writer without first encrypting it under a
// passphrase-derived key.
//
// MAC and signature verification of the SDTID payload (HeaderMAC, TokenMAC,
// BatchSignature, BatchCertificate) are parsed but not checked by this
// package; see DESIGN.md for why that is left as an open question rather
// than a silent gap.
package sdtid
