package sdtid

import (
	"encoding/xml"
)

// Header carries the SDTID batch's TKNHeader element: the provisioning
// origin/destination/name triple C5 hashes, the derivation secret, and the
// defaults every token in the batch inherits (interval, digit count,
// validity window).
type Header struct {
	Version   int    `xml:"Version"`
	Secret    string `xml:"Secret"`
	Origin    string `xml:"Origin"`
	Dest      string `xml:"Dest"`
	Name      string `xml:"Name"`
	MAC       string `xml:"HeaderMAC"`
	Interval  int    `xml:"DefInterval"`
	Start     string `xml:"DefBirth"`
	End       string `xml:"DefDeath"`
	Alg       int    `xml:"DefAlg"`
	Digits    int    `xml:"DefDigits"`
	Mode      int    `xml:"DefMode"`
	AddPIN    int    `xml:"DefAddPIN"`
	LocalPIN  int    `xml:"DefLocalPIN"`
}

// Token carries the SDTID batch's TKN element: the serial-bound ciphertext
// seed and user metadata. PinType is parsed but not consulted, per spec §9.
type Token struct {
	Serial        string `xml:"SN"`
	Seed          string `xml:"Seed"`
	UserFirstName string `xml:"UserFirstName"`
	UserLastName  string `xml:"UserLastName"`
	UserLogin     string `xml:"UserLogin"`
	PinType       *int   `xml:"PinType"`
	MAC           string `xml:"TokenMAC"`
}

// Trailer carries the SDTID batch's TKNTrailer element. Neither field is
// verified by this package; see DESIGN.md's Open Question decisions.
type Trailer struct {
	Signature   string `xml:"BatchSignature"`
	Certificate string `xml:"BatchCertificate"`
}

// SDTIDBatch is the parsed form of an SDTID provisioning file.
type SDTIDBatch struct {
	XMLName xml.Name `xml:"TKNBatch"`
	Header  Header   `xml:"TKNHeader"`
	Token   Token    `xml:"TKN"`
	Trailer Trailer  `xml:"TKNTrailer"`
}

// ReadXMLString parses SDTID XML held in memory. It validates structure
// only — field contents (base64 validity, interval range) are checked by
// whatever downstream step consumes them, per spec §7's "parse and
// validation happen before any cryptographic operation runs" ordering:
// parsing itself never runs a cryptographic operation, so it cannot be the
// place those checks live.
func ReadXMLString(contents string) (*SDTIDBatch, error) {
	var batch SDTIDBatch
	if err := xml.Unmarshal([]byte(contents), &batch); err != nil {
		return nil, &ParseError{Message: err.Error(), Err: err}
	}
	if err := validateBatchShape(&batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// validateBatchShape checks that the elements spec §3 calls required are
// present, without judging the cryptographic validity of their contents.
func validateBatchShape(batch *SDTIDBatch) error {
	if batch.Header.Name == "" {
		return &ParseError{Element: "Name", Message: "required header element missing or empty"}
	}
	if batch.Header.Secret == "" {
		return &ParseError{Element: "Secret", Message: "required header element missing or empty"}
	}
	if batch.Token.Serial == "" {
		return &ParseError{Element: "SN", Message: "required token element missing or empty"}
	}
	if batch.Token.Seed == "" {
		return &ParseError{Element: "Seed", Message: "required token element missing or empty"}
	}
	return nil
}
