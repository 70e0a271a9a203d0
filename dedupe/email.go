package dedupe

import (
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var emailLocalRe = regexp.MustCompile(`^[^<>()[\]\\,;:\?\s@\"]{1,64}$`)
var dnsLabelRe = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

// extractAddress unwraps "Name <addr>" forms and mailto: prefixes, leaving
// the bare address.
func extractAddress(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "mailto:"))
	if _, err := mail.ParseAddress(s); err != nil {
		return s
	}
	if i := strings.LastIndex(s, "<"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, ">")
}

// asciiDomain folds a domain through IDNA and checks every label, returning
// false for anything that could not appear in DNS.
func asciiDomain(domain string) (string, bool) {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	puny, err := idna.ToASCII(domain)
	if err != nil {
		return "", false
	}
	labels := strings.Split(puny, ".")
	if len(labels) < 2 {
		return "", false
	}
	for _, l := range labels {
		if !dnsLabelRe.MatchString(l) {
			return "", false
		}
	}
	return strings.ToLower(puny), true
}

// CleanEmail normalizes an e-mail address for the import pipeline. Returns
// false when the input is not a usable address.
func CleanEmail(raw string) (string, bool) {
	s, ok := sanitizeText(raw)
	if !ok {
		return "", false
	}
	s = extractAddress(s)
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return "", false
	}
	local := s[:at]
	if !emailLocalRe.MatchString(local) {
		return "", false
	}
	domain, ok := asciiDomain(s[at+1:])
	if !ok {
		return "", false
	}
	return local + "@" + domain, true
}
