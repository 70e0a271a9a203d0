package dedupe

import (
	"strings"
	"unicode"
)

// sanitizeText trims spaces, removes control characters, and collapses
// internal whitespace. Returns false for inputs that reduce to nothing.
func sanitizeText(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	b := strings.Builder{}
	lastSpace := false
	for _, r := range s {
		if r == '\u0000' {
			continue
		}
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if lastSpace {
				continue
			}
			b.WriteRune(' ')
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", false
	}
	return out, true
}

// collapseSpaces reduces runs of whitespace to single spaces and trims.
func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
