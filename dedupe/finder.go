package dedupe

import "sort"

// FindDuplicates scans every unordered pair of recipients with the default
// configuration and returns the matches sorted by confidence, strongest
// first.
func FindDuplicates(recipients []Recipient) []Match {
	return NewMatcher(DefaultMatchConfig()).FindDuplicates(recipients)
}

// FindDuplicates compares each unordered pair exactly once. The sort is
// stable, so equal confidences keep comparison order.
func (m *Matcher) FindDuplicates(recipients []Recipient) []Match {
	matches := []Match{}
	for i := 0; i < len(recipients); i++ {
		for j := i + 1; j < len(recipients); j++ {
			if match := m.CheckDuplicate(recipients[i], recipients[j]); match != nil {
				matches = append(matches, *match)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}
