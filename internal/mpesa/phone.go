package mpesa

import "strings"

const countryCode = "254"

// NormalizePhone rewrites a Kenyan phone number into the 2547XXXXXXXX form
// the Daraja API expects. Non-digits are stripped first, then a leading zero
// or a bare 9-digit local number gets the country code prefixed. Anything
// else is returned as digits unchanged.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, countryCode):
		return digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return countryCode + digits[1:]
	case len(digits) == 9:
		return countryCode + digits
	}
	return digits
}
