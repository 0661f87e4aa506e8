// pkg/normalize/normalize.go
package normalize

import (
	"strings"
	"unicode"
)

// Identity reduces an identity number to its digits.
// Returns the empty string when the input carries no digits.
func Identity(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Email lowercases and trims an email address.
// It normalizes only and does not validate format.
func Email(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Phone reduces a phone number to its digits and strips leading zeros,
// so "0123456789" and "123456789" compare equal.
func Phone(raw string) string {
	return strings.TrimLeft(Identity(raw), "0")
}

// PhoneDisplay formats a phone number for output by prefixing the country
// code unless the digits already start with it. Empty digits yield an empty
// string, never a bare country code.
func PhoneDisplay(raw, countryCode string) string {
	digits := Phone(raw)
	if digits == "" || strings.HasPrefix(digits, countryCode) {
		return digits
	}
	return countryCode + digits
}

// Present reports whether a raw cell value carries a usable value:
// non-empty after trimming surrounding whitespace.
func Present(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
