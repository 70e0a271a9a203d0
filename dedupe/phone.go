package dedupe

import (
	"strings"

	phonenumbers "github.com/nyaruka/phonenumbers"
)

// CleanPhone reduces a free-text phone number to digits with an optional
// leading +. When the number parses as valid for the given country (or as an
// international number), it is upgraded to E.164.
func CleanPhone(raw, country string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	b := strings.Builder{}
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune('+')
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" || stripped == "+" {
		return ""
	}
	regions := []string{""}
	if len(country) == 2 {
		regions = []string{strings.ToUpper(country), ""}
	}
	for _, region := range regions {
		n, err := phonenumbers.Parse(stripped, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(n) {
			return phonenumbers.Format(n, phonenumbers.E164)
		}
	}
	return stripped
}
