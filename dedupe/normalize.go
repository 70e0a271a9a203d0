package dedupe

import (
	"regexp"
	"strings"
)

// Normalization produces comparison forms only. The original strings are what
// gets stored and displayed; callers never persist a normalized value.

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
var zipPlus4Re = regexp.MustCompile(`-\d{4}$`)
var zipNonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// streetAliases maps street-type and unit spellings to one canonical token, so
// "123 Main Street" and "123 Main St." normalize identically.
var streetAliases = map[string]string{
	"street": "st", "str": "st", "st": "st",
	"avenue": "ave", "av": "ave", "ave": "ave",
	"boulevard": "blvd", "blvd": "blvd",
	"drive": "dr", "drv": "dr", "dr": "dr",
	"lane": "ln", "ln": "ln",
	"road": "rd", "rd": "rd",
	"court": "ct", "ct": "ct",
	"circle": "cir", "cir": "cir",
	"place": "pl", "pl": "pl",
	"terrace": "ter", "terr": "ter", "ter": "ter",
	"parkway": "pkwy", "pkwy": "pkwy",
	"highway": "hwy", "hwy": "hwy",
	"square": "sq", "sq": "sq",
	"apartment": "apt", "appt": "apt", "apt": "apt",
	"suite": "ste", "ste": "ste",
	"unit": "unit",
	"building": "bldg", "bldg": "bldg",
	"floor": "fl", "fl": "fl",
	"number": "no", "num": "no", "no": "no",
	"north": "n", "n": "n",
	"south": "s", "s": "s",
	"east": "e", "e": "e",
	"west": "w", "w": "w",
}

// NormalizeName lowercases, turns punctuation into spaces, and collapses
// whitespace: "O'Brien, Mary-Jane" and "OBrien Mary Jane" end up a single
// edit apart, close enough for the similarity scorer.
func NormalizeName(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

// NormalizeAddress lowercases, strips punctuation, and folds street-type and
// unit abbreviations onto canonical tokens.
func NormalizeAddress(s string) string {
	s = strings.ToLower(s)
	// "#4" is a unit designator, not punctuation
	s = strings.ReplaceAll(s, "#", " apt ")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	fields := strings.Fields(s)
	for i, f := range fields {
		if canon, ok := streetAliases[f]; ok {
			fields[i] = canon
		}
	}
	return strings.Join(fields, " ")
}

// NormalizeZip strips the ZIP+4 suffix and all non-alphanumerics, uppercased,
// so "62701-1234" matches "62701" and "M5H 2N2" matches "m5h2n2". Comparison
// form only, never the stored zip.
func NormalizeZip(s string) string {
	s = strings.TrimSpace(s)
	s = zipPlus4Re.ReplaceAllString(s, "")
	s = zipNonAlnumRe.ReplaceAllString(s, "")
	return strings.ToUpper(s)
}
