package sdtid

import "testing"

func TestValidateInterval(t *testing.T) {
	if err := validateInterval(60); err != nil {
		t.Errorf("validateInterval(60) = %v, want nil", err)
	}
	if err := validateInterval(30); err != nil {
		t.Errorf("validateInterval(30) = %v, want nil", err)
	}
	if err := validateInterval(45); !IsUnsupportedInterval(err) {
		t.Errorf("validateInterval(45) = %v, want UnsupportedIntervalError", err)
	}
}

func TestValidateDigits(t *testing.T) {
	for _, d := range []int{6, 7, 8} {
		if err := validateDigits(d); err != nil {
			t.Errorf("validateDigits(%d) = %v, want nil", d, err)
		}
	}
	for _, d := range []int{5, 9} {
		if err := validateDigits(d); !IsUnsupportedDigits(err) {
			t.Errorf("validateDigits(%d) = %v, want UnsupportedDigitsError", d, err)
		}
	}
}

func TestValidatePIN(t *testing.T) {
	if err := validatePIN(""); err != nil {
		t.Errorf("validatePIN(\"\") = %v, want nil", err)
	}
	if err := validatePIN("1234"); err != nil {
		t.Errorf("validatePIN(\"1234\") = %v, want nil", err)
	}
	if err := validatePIN("12a4"); !IsInvalidPin(err) {
		t.Errorf("validatePIN(\"12a4\") = %v, want InvalidPinError", err)
	}
}

func TestValidateSerial(t *testing.T) {
	if err := validateSerial("000000000001"); err != nil {
		t.Errorf("validateSerial(12 digits) = %v, want nil", err)
	}
	if err := validateSerial("00000000000"); !IsInvalidSerial(err) {
		t.Errorf("validateSerial(11 digits) = %v, want InvalidSerialError", err)
	}
	if err := validateSerial("00000000000a"); !IsInvalidSerial(err) {
		t.Errorf("validateSerial with a non-digit = %v, want InvalidSerialError", err)
	}
}
