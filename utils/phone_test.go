package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"9876543210", "+91 98765 43210", "91-6000000000", "7000000001", "9123456789", "+91 9123456789"}
	for _, number := range valid {
		if !ValidatePhoneNumber(number) {
			t.Errorf("expected %q to be valid", number)
		}
	}

	invalid := []string{"", "12345", "5876543210", "98765432", "987654321012"}
	for _, number := range invalid {
		if ValidatePhoneNumber(number) {
			t.Errorf("expected %q to be invalid", number)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "919876543210",
		"+91 98765 43210": "919876543210",
		"91-9876543210":   "919876543210",
		"9123456789":      "919123456789",
		"+91 9123456789":  "919123456789",
	}
	for in, want := range cases {
		if got := FormatPhoneNumber(in); got != want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP()
	if len(otp) != 6 {
		t.Fatalf("expected 6-digit code, got %q", otp)
	}
	for _, c := range otp {
		if c < '0' || c > '9' {
			t.Fatalf("expected digits only, got %q", otp)
		}
	}
}

func TestGenerateShortToken(t *testing.T) {
	token := GenerateShortToken(20)
	if len(token) != 40 {
		t.Fatalf("expected 40 hex chars, got %d", len(token))
	}
	if token == GenerateShortToken(20) {
		t.Fatal("expected two tokens to differ")
	}
}
