package dedupe

import "testing"

func TestSimilarityBounds(t *testing.T) {
	if Similarity("", "") != 1.0 {
		t.Fatalf("empty vs empty should be 1.0")
	}
	if Similarity("", "abc") != 0.0 {
		t.Fatalf("empty vs nonempty should follow the distance formula")
	}
	if Similarity("john smith", "john smith") != 1.0 {
		t.Fatalf("identical strings should be 1.0")
	}
	s := Similarity("john smith", "jon smith")
	if s < 0.85 || s >= 1.0 {
		t.Fatalf("single-typo similarity out of range: %f", s)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"john smith", "jon smith"},
		{"123 main st", "123 main street"},
		{"", "abc"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Fatalf("similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}
