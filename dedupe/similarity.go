package dedupe

import (
	levenshtein "github.com/agnivade/levenshtein"
)

// Similarity scores two normalized strings in [0,1]: 1.0 for identical, 0.0
// for maximally dissimilar. Edit distance over the longer string's length, so
// the score is symmetric and empty-vs-empty is 1.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	if maxlen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	sim := 1.0 - float64(dist)/float64(maxlen)
	if sim < 0 {
		return 0
	}
	return sim
}
