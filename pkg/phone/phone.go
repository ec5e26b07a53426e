// Package phone converts locally formatted Kenyan phone numbers into the
// international form the SMS gateway expects. It is a best-effort
// heuristic, not a validated parse: the worst it produces is a number the
// gateway rejects, which callers already tolerate.
package phone

import "strings"

const (
	countryCode   = "254"
	trunkPrefix   = "0"
	subscriberLen = 9
)

// Normalize converts a raw phone string ("0712 345-678", "+254712345678",
// "712345678") into canonical +254 form. The second return value is false
// when the input contains nothing usable.
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	hadPlus := strings.HasPrefix(raw, "+")

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", false
	}

	// A leading + is taken at face value: no country-code validation.
	if hadPlus {
		return "+" + digits, true
	}

	switch {
	case strings.HasPrefix(digits, trunkPrefix):
		return "+" + countryCode + digits[len(trunkPrefix):], true
	case strings.HasPrefix(digits, countryCode):
		return "+" + digits, true
	case len(digits) == subscriberLen:
		return "+" + countryCode + digits, true
	default:
		return "+" + digits, true
	}
}
