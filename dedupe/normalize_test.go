package dedupe

import "testing"

func TestNormalizeNamePunctuation(t *testing.T) {
	a := NormalizeName("O'Brien, Mary-Jane")
	if a != "o brien mary jane" {
		t.Fatalf("unexpected normalized name: %q", a)
	}
	b := NormalizeName("OBrien Mary Jane")
	if Similarity(a, b) < 0.85 {
		t.Fatalf("normalized names should score near-identical: %q vs %q", a, b)
	}
}

func TestNormalizeAddressAbbreviations(t *testing.T) {
	long := NormalizeAddress("123 Main Street")
	short := NormalizeAddress("123 Main St.")
	if long != short {
		t.Fatalf("street forms should normalize equal: %q vs %q", long, short)
	}
	if NormalizeAddress("Apartment 5") != NormalizeAddress("Apt 5") {
		t.Fatalf("apartment forms should normalize equal")
	}
	if NormalizeAddress("123 Main St #4") != NormalizeAddress("123 Main Street Apt 4") {
		t.Fatalf("unit designator forms should normalize equal")
	}
}

func TestNormalizeZip(t *testing.T) {
	if NormalizeZip("62701-1234") != "62701" {
		t.Fatalf("zip+4 suffix should be stripped")
	}
	if NormalizeZip("M5H 2N2") != NormalizeZip("m5h2n2") {
		t.Fatalf("alphanumeric zips should normalize equal")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"O'Brien, Mary-Jane", "123 North Main Street, Apt. 4B", "62701-1234", "M5H 2N2"}
	for _, in := range inputs {
		if NormalizeName(NormalizeName(in)) != NormalizeName(in) {
			t.Fatalf("NormalizeName not idempotent for %q", in)
		}
		if NormalizeAddress(NormalizeAddress(in)) != NormalizeAddress(in) {
			t.Fatalf("NormalizeAddress not idempotent for %q", in)
		}
		if NormalizeZip(NormalizeZip(in)) != NormalizeZip(in) {
			t.Fatalf("NormalizeZip not idempotent for %q", in)
		}
	}
}
