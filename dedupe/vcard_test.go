package dedupe

import (
	"strings"
	"testing"
)

func TestParseVCardBasic(t *testing.T) {
	text := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:John Doe",
		"N:Doe;John;;;",
		"ADR:;;123 Main Street;Springfield;IL;62701;US",
		"EMAIL:john@example.com",
		"TEL:+1 (555) 123-4567",
		"END:VCARD",
	}, "\n")
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.TotalContacts != 1 || len(res.Valid) != 1 {
		t.Fatalf("expected 1 valid contact, got %+v", res)
	}
	c := res.Valid[0]
	if c.Name != "John Doe" || c.FirstName != "John" || c.LastName != "Doe" {
		t.Fatalf("name fields wrong: %+v", c)
	}
	if c.Address != "123 Main Street" || c.City != "Springfield" || c.State != "IL" ||
		c.Zip != "62701" || c.Country != "US" {
		t.Fatalf("address fields wrong: %+v", c)
	}
	if c.Email != "john@example.com" {
		t.Fatalf("email wrong: %q", c.Email)
	}
	if c.Phone != "+15551234567" {
		t.Fatalf("phone should reduce to digits with leading +, got %q", c.Phone)
	}
}

func TestParseVCardStructuralErrors(t *testing.T) {
	if _, err := ParseVCard("   "); err == nil {
		t.Fatalf("empty input should fail")
	}
	if _, err := ParseVCard("FN:John Doe\nTEL:555"); err == nil {
		t.Fatalf("input without BEGIN:VCARD should fail")
	}
}

func TestParseVCardMissingName(t *testing.T) {
	text := "BEGIN:VCARD\nVERSION:3.0\nTEL:5551234\nEND:VCARD"
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.TotalContacts != 1 {
		t.Fatalf("invalid contacts still count, got %d", res.TotalContacts)
	}
	if len(res.Invalid) != 1 {
		t.Fatalf("expected 1 invalid contact")
	}
	c := res.Invalid[0]
	if len(c.Errors) == 0 || !strings.Contains(strings.ToLower(c.Errors[0]), "name") {
		t.Fatalf("error should mention the name: %v", c.Errors)
	}
}

func TestParseVCardNameFromN(t *testing.T) {
	text := "BEGIN:VCARD\nN:Doe;John;M;;\nADR:;;123 Main St;;;;\nEND:VCARD"
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Valid) != 1 || res.Valid[0].Name != "John Doe" {
		t.Fatalf("name should synthesize as given family: %+v", res)
	}
}

func TestParseVCardFNWins(t *testing.T) {
	text := "BEGIN:VCARD\nFN:Johnny D.\nN:Doe;John;;;\nADR:;;123 Main St;;;;\nEND:VCARD"
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Valid[0].Name != "Johnny D." {
		t.Fatalf("FN should win verbatim, got %q", res.Valid[0].Name)
	}
}

func TestParseVCardFoldedLines(t *testing.T) {
	text := strings.Join([]string{
		"BEGIN:VCARD",
		"FN:John",
		" son Smith",
		"ADR:;;123 Main",
		"\t Street;Springfield;IL;62701;US",
		"END:VCARD",
	}, "\n")
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := res.Valid[0]
	if c.Name != "Johnson Smith" {
		t.Fatalf("folded FN should concatenate, got %q", c.Name)
	}
	if c.Address != "123 Main Street" {
		t.Fatalf("folded ADR should concatenate, got %q", c.Address)
	}
}

func TestParseVCardQuotedPrintable(t *testing.T) {
	text := strings.Join([]string{
		"BEGIN:VCARD",
		"FN;ENCODING=QUOTED-PRINTABLE;CHARSET=UTF-8:Jos=C3=A9 Garc=C3=ADa",
		"ADR;QUOTED-PRINTABLE:;;Calle Mayor 1;Madrid;;28001;ES",
		"END:VCARD",
	}, "\n")
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := res.Valid[0]
	if c.Name != "José García" {
		t.Fatalf("quoted-printable decode failed: %q", c.Name)
	}
	if c.Address != "Calle Mayor 1" || c.City != "Madrid" {
		t.Fatalf("2.1-style bare parameter mishandled: %+v", c)
	}
}

func TestParseVCardValueEscapes(t *testing.T) {
	text := "BEGIN:VCARD\nFN:John Doe\nADR:;;123 Main St\\, Suite 100;Springfield;IL;62701;US\nEND:VCARD"
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Valid[0].Address != "123 Main St, Suite 100" {
		t.Fatalf("escaped comma mishandled: %q", res.Valid[0].Address)
	}
}

func TestParseVCardExtendedAddress(t *testing.T) {
	text := "BEGIN:VCARD\nFN:John Doe\nADR:;Apt 4B;123 Main St;Springfield;IL;62701;US\nEND:VCARD"
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Valid[0].Address != "Apt 4B 123 Main St" {
		t.Fatalf("extended field should prefix the street, got %q", res.Valid[0].Address)
	}
}

func TestParseVCardMultipleBlocks(t *testing.T) {
	text := strings.Join([]string{
		"BEGIN:VCARD",
		"FN:John Doe",
		"ADR:;;123 Main St;Springfield;IL;62701;US",
		"END:VCARD",
		"BEGIN:VCARD",
		"TEL:5551234",
		"END:VCARD",
		"BEGIN:VCARD",
		"FN:Jane Doe",
		"ADR:;;456 Oak Ave;Springfield;IL;62701;US",
		"END:VCARD",
	}, "\n")
	res, err := ParseVCard(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.TotalContacts != 3 || len(res.Valid) != 2 || len(res.Invalid) != 1 {
		t.Fatalf("block accounting wrong: total=%d valid=%d invalid=%d",
			res.TotalContacts, len(res.Valid), len(res.Invalid))
	}
	if res.Invalid[0].Line != 5 {
		t.Fatalf("invalid block should report its BEGIN line, got %d", res.Invalid[0].Line)
	}
}

func TestValidateVCardContact(t *testing.T) {
	if err := ValidateVCardContact(VCardContact{}); err == nil || err.Error() != "Name is required" {
		t.Fatalf("blank name should fail, got %v", err)
	}
	c := VCardContact{Name: "John Doe"}
	if err := ValidateVCardContact(c); err == nil || err.Error() != "Address or city is required" {
		t.Fatalf("blank address and city should fail, got %v", err)
	}
	c.City = "Springfield"
	if err := ValidateVCardContact(c); err != nil {
		t.Fatalf("city alone should satisfy validation: %v", err)
	}
}

func TestVCardToRecipient(t *testing.T) {
	r := VCardToRecipient(VCardContact{Name: "John Doe", City: "Springfield"})
	if r.Country != "US" {
		t.Fatalf("country should default to US, got %q", r.Country)
	}
	if r.Name != "John Doe" || r.City != "Springfield" || r.Address1 != "" {
		t.Fatalf("mapping wrong: %+v", r)
	}
}
