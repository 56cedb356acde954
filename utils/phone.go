package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips a phone number down to digits and prefixes the
// Indian country code when missing. A bare 10-digit number always gets the
// prefix, even when it starts with 91.
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(digits) == 10 {
		digits = "91" + digits
	}

	return digits
}

// ValidatePhoneNumber checks for a 10-digit mobile number starting with 6-9
// (the Indian numbering plan), with or without the 91 country code. The code
// is only stripped from a 12-digit number so that mobiles starting with 91
// (e.g. 9123456789) are not mangled.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}
	if len(cleaned) != 10 {
		return false
	}

	first := cleaned[0]
	return first >= '6' && first <= '9'
}

// NormalizePhoneNumber normalizes phone number for database storage
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}
