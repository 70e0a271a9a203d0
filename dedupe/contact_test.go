package dedupe

import "testing"

func TestCleanEmailIDNA(t *testing.T) {
	cleaned, ok := CleanEmail("John <j.smith@bücher.de>")
	if !ok || cleaned != "j.smith@xn--bcher-kva.de" {
		t.Fatalf("email clean failed: %v %v", ok, cleaned)
	}
}

func TestCleanEmailRejectsGarbage(t *testing.T) {
	if _, ok := CleanEmail("not-an-email"); ok {
		t.Fatalf("address without @ should fail")
	}
	if _, ok := CleanEmail("@example.com"); ok {
		t.Fatalf("empty local part should fail")
	}
}

func TestCleanPhoneStripping(t *testing.T) {
	if got := CleanPhone("(555) 123-4567", ""); got != "5551234567" {
		t.Fatalf("phone strip failed: %q", got)
	}
	if got := CleanPhone("+1 (555) 123-4567", ""); got != "+15551234567" {
		t.Fatalf("leading + should survive: %q", got)
	}
	if got := CleanPhone("ext.", ""); got != "" {
		t.Fatalf("digitless input should clean to empty: %q", got)
	}
}
