package orders

import (
	"strings"
	"unicode"
)

const CountryPrefix = "55"

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizePhone reduces s to digits and prefixes the country code when a
// national number (11 digits or fewer) lacks it. Applying it twice is a no-op.
func NormalizePhone(s string) string {
	d := digits(s)
	if len(d) <= 11 && !strings.HasPrefix(d, CountryPrefix) {
		d = CountryPrefix + d
	}
	return d
}

// FormatPhoneDisplay renders a Brazilian number as "(21) 96509-1676". Inputs
// that are not 10 or 11 national digits are returned trimmed.
func FormatPhoneDisplay(s string) string {
	d := digits(s)
	if len(d) > 11 && strings.HasPrefix(d, CountryPrefix) {
		d = d[len(CountryPrefix):]
	}
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return strings.TrimFunc(s, unicode.IsSpace)
	}
}
