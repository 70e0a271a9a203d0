package dedupe

import "strings"

// Recipient is an immutable snapshot of one mailing recipient, as handed over
// by the surrounding application. The ID is opaque and only used to tell
// records apart; it is never interpreted.
type Recipient struct {
	ID       string `json:"id" msgpack:"id"`
	Name     string `json:"name" msgpack:"name"`
	Address1 string `json:"address1" msgpack:"address1"`
	Address2 string `json:"address2,omitempty" msgpack:"address2,omitempty"`
	City     string `json:"city" msgpack:"city"`
	State    string `json:"state" msgpack:"state"`
	Zip      string `json:"zip" msgpack:"zip"`
	Country  string `json:"country" msgpack:"country"`
}

// MatchType buckets the strength of a duplicate hypothesis.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchLikely   MatchType = "likely"
	MatchPossible MatchType = "possible"
)

// Match is the outcome of comparing exactly two recipients. Recipient1 and
// Recipient2 keep the order they were passed in, so the UI can phrase the
// merge as "merge B into A". Reasons accumulate in evaluation order and list
// every signal that fired, not just the deciding one.
type Match struct {
	Recipient1 Recipient `json:"recipient1"`
	Recipient2 Recipient `json:"recipient2"`
	Type       MatchType `json:"matchType"`
	Confidence float64   `json:"confidence"`
	Reasons    []string  `json:"matchReasons"`
}

// Matcher applies a MatchConfig to pairwise comparisons.
type Matcher struct {
	cfg MatchConfig
}

func NewMatcher(cfg MatchConfig) *Matcher {
	cfg.applyDefaults()
	return &Matcher{cfg: cfg}
}

// CheckDuplicate compares two recipients with the default configuration.
func CheckDuplicate(r1, r2 Recipient) *Match {
	return NewMatcher(DefaultMatchConfig()).CheckDuplicate(r1, r2)
}

// unitTokens are designators that start the unit part of a normalized
// street address.
var unitTokens = map[string]struct{}{
	"apt": {}, "ste": {}, "unit": {}, "bldg": {}, "fl": {}, "no": {},
}

// baseStreet cuts the unit designator and everything after it off a
// normalized address, leaving the street part for comparison.
func baseStreet(normalized string) string {
	fields := strings.Fields(normalized)
	for i, f := range fields {
		if _, ok := unitTokens[f]; ok {
			return strings.Join(fields[:i], " ")
		}
	}
	return normalized
}

func fullAddress(r Recipient) string {
	addr := strings.TrimSpace(r.Address1)
	if r.Address2 != "" {
		addr = strings.TrimSpace(addr + " " + r.Address2)
	}
	return NormalizeAddress(addr)
}

// CheckDuplicate decides whether two recipients are the same real-world
// person. It returns nil for the same record, and nil when no combination of
// signals clears the minimum confidence.
func (m *Matcher) CheckDuplicate(r1, r2 Recipient) *Match {
	if r1.ID == r2.ID {
		return nil
	}

	confidence := 0.0
	reasons := []string{}
	nameExact, nameSimilar := false, false
	addrExact, addrSimilar := false, false
	zipMatch := false

	// Name signal
	n1, n2 := NormalizeName(r1.Name), NormalizeName(r2.Name)
	if n1 != "" && n1 == n2 {
		nameExact = true
		confidence += m.cfg.NameExactWeight
		reasons = append(reasons, "Identical names")
	} else if n1 != "" && n2 != "" {
		if Similarity(n1, n2) >= m.cfg.NameSimilarity {
			nameSimilar = true
			confidence += m.cfg.NameSimilarWeight
			reasons = append(reasons, "Similar names")
		}
	}

	// Address signal
	a1, a2 := fullAddress(r1), fullAddress(r2)
	if a1 != "" && a1 == a2 {
		addrExact = true
		confidence += m.cfg.AddrExactWeight
		reasons = append(reasons, "Identical addresses")
	} else if a1 != "" && a2 != "" {
		if Similarity(a1, a2) >= m.cfg.AddrSimilarity {
			addrSimilar = true
			confidence += m.cfg.AddrSimilarWeight
			reasons = append(reasons, "Similar addresses")
		} else if b1, b2 := baseStreet(a1), baseStreet(a2); b1 != "" && b1 == b2 {
			// Same street, the unit part differs or is missing on one
			// side; unit formatting must not defeat the match.
			addrSimilar = true
			confidence += m.cfg.AddrSimilarWeight
			reasons = append(reasons, "Same street address, different unit")
		}
	}

	// ZIP signal
	z1, z2 := NormalizeZip(r1.Zip), NormalizeZip(r2.Zip)
	if z1 != "" && z1 == z2 {
		zipMatch = true
		confidence += m.cfg.ZipWeight
		reasons = append(reasons, "Same ZIP code")
	}

	// City/state signal
	if r1.City != "" && r1.State != "" &&
		strings.EqualFold(strings.TrimSpace(r1.City), strings.TrimSpace(r2.City)) &&
		strings.EqualFold(strings.TrimSpace(r1.State), strings.TrimSpace(r2.State)) {
		confidence += m.cfg.CityStateWeight
		reasons = append(reasons, "Same city and state")
	}

	if confidence > 100 {
		confidence = 100
	}
	if confidence < m.cfg.MinConfidence {
		return nil
	}

	var mt MatchType
	switch {
	case nameExact && (addrExact || (zipMatch && addrSimilar)):
		mt = MatchExact
	case (nameExact || nameSimilar) && (addrExact || addrSimilar) && confidence >= m.cfg.LikelyConfidence:
		mt = MatchLikely
	default:
		mt = MatchPossible
	}

	return &Match{
		Recipient1: r1,
		Recipient2: r2,
		Type:       mt,
		Confidence: confidence,
		Reasons:    reasons,
	}
}
