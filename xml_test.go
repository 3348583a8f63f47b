package sdtid

import "testing"

const validSDTID = `<?xml version="1.0"?>
<TKNBatch>
  <TKNHeader>
    <Version>1</Version>
    <Secret>AAAAAAAAAAAAAAAAAAAAAA==</Secret>
    <Origin>com.example.token</Origin>
    <Dest>com.example.server</Dest>
    <Name>demo-batch</Name>
    <HeaderMAC></HeaderMAC>
    <DefInterval>60</DefInterval>
    <DefBirth>2019-01-01T00:00:00Z</DefBirth>
    <DefDeath>2029-01-01T00:00:00Z</DefDeath>
    <DefAlg>0</DefAlg>
    <DefDigits>8</DefDigits>
    <DefMode>0</DefMode>
    <DefAddPIN>0</DefAddPIN>
    <DefLocalPIN>0</DefLocalPIN>
  </TKNHeader>
  <TKN>
    <SN>000000000001</SN>
    <Seed>AAAAAAAAAAAAAAAAAAAAAAAAAAA=</Seed>
    <UserFirstName>Jane</UserFirstName>
    <UserLastName>Doe</UserLastName>
    <UserLogin>jane</UserLogin>
    <PinType>0</PinType>
    <TokenMAC></TokenMAC>
  </TKN>
  <TKNTrailer>
    <BatchSignature></BatchSignature>
    <BatchCertificate></BatchCertificate>
  </TKNTrailer>
</TKNBatch>`

func TestReadXMLStringValid(t *testing.T) {
	batch, err := ReadXMLString(validSDTID)
	if err != nil {
		t.Fatalf("ReadXMLString: %v", err)
	}
	if batch.Header.Name != "demo-batch" {
		t.Errorf("Header.Name = %q, want %q", batch.Header.Name, "demo-batch")
	}
	if batch.Header.Interval != 60 {
		t.Errorf("Header.Interval = %d, want 60", batch.Header.Interval)
	}
	if batch.Token.Serial != "000000000001" {
		t.Errorf("Token.Serial = %q, want %q", batch.Token.Serial, "000000000001")
	}
	if batch.Token.UserLogin != "jane" {
		t.Errorf("Token.UserLogin = %q, want %q", batch.Token.UserLogin, "jane")
	}
}

func TestReadXMLStringMalformed(t *testing.T) {
	_, err := ReadXMLString("<TKNBatch><TKNHeader>")
	if err == nil {
		t.Fatal("expected a parse error for malformed xml, got nil")
	}
	if !IsParseError(err) {
		t.Errorf("expected a *ParseError, got %T: %v", err, err)
	}
}

func TestReadXMLStringMissingRequiredElements(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"missing name", `<TKNBatch><TKNHeader><Secret>x</Secret></TKNHeader><TKN><SN>1</SN><Seed>x</Seed></TKN></TKNBatch>`},
		{"missing secret", `<TKNBatch><TKNHeader><Name>x</Name></TKNHeader><TKN><SN>1</SN><Seed>x</Seed></TKN></TKNBatch>`},
		{"missing serial", `<TKNBatch><TKNHeader><Name>x</Name><Secret>x</Secret></TKNHeader><TKN><Seed>x</Seed></TKN></TKNBatch>`},
		{"missing seed", `<TKNBatch><TKNHeader><Name>x</Name><Secret>x</Secret></TKNHeader><TKN><SN>1</SN></TKN></TKNBatch>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadXMLString(tt.xml)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !IsParseError(err) {
				t.Errorf("expected a *ParseError, got %T: %v", err, err)
			}
		})
	}
}
