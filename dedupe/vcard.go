package dedupe

import (
	"errors"
	"strings"
)

// VCardContact is one BEGIN:VCARD..END:VCARD block reduced to the canonical
// contact shape. Line is the 1-based source line of the block's BEGIN marker.
type VCardContact struct {
	Name      string   `json:"name"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Zip       string   `json:"zip,omitempty"`
	Country   string   `json:"country,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Line      int      `json:"line"`
	IsValid   bool     `json:"isValid"`
	Errors    []string `json:"errors"`
}

// VCardResult mirrors CSVResult for vCard imports. TotalContacts counts every
// parsed block, valid or not.
type VCardResult struct {
	Valid         []VCardContact `json:"valid"`
	Invalid       []VCardContact `json:"invalid"`
	TotalContacts int            `json:"totalContacts"`
}

type vcardProperty struct {
	name   string
	params map[string][]string
	value  string
}

// unfoldLines joins RFC 2425 folded lines: a line starting with space or tab
// continues the previous line, concatenated without the leading whitespace.
func unfoldLines(lines []string) []string {
	out := []string{}
	for _, line := range lines {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] += line[1:]
			continue
		}
		out = append(out, line)
	}
	return out
}

// decodeQuotedPrintable decodes =XX hex escapes byte-wise; multi-byte UTF-8
// sequences come out intact. A trailing lone = (2.1 soft break) is dropped.
func decodeQuotedPrintable(s string) string {
	b := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			if v := hexByte(s, i+1); v >= 0 {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
			if i == len(s)-1 {
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func hexByte(s string, i int) int {
	if i+1 >= len(s) {
		return -1
	}
	hi, lo := hexVal(s[i]), hexVal(s[i+1])
	if hi < 0 || lo < 0 {
		return -1
	}
	return hi<<4 | lo
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}

// unescapeValue applies vCard value escaping: \, \; \\ and \n.
func unescapeValue(s string) string {
	b := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case ',', ';', '\\':
				b.WriteByte(s[i+1])
				i++
				continue
			case 'n', 'N':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitStructured splits an N or ADR value on unescaped semicolons, then
// unescapes each component.
func splitStructured(s string) []string {
	parts := []string{}
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			cur.WriteByte(s[i])
			cur.WriteByte(s[i+1])
			i++
			continue
		}
		if s[i] == ';' {
			parts = append(parts, unescapeValue(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(s[i])
	}
	parts = append(parts, unescapeValue(cur.String()))
	return parts
}

// parseProperty splits "GROUP.PROP;PARAM=V;PARAM2=V2:value" into its pieces.
// vCard 2.1 bare parameters ("QUOTED-PRINTABLE", "HOME") are folded into the
// ENCODING and TYPE parameters.
func parseProperty(line string) (vcardProperty, bool) {
	colon := strings.Index(line, ":")
	if colon <= 0 {
		return vcardProperty{}, false
	}
	head, value := line[:colon], line[colon+1:]
	tokens := strings.Split(head, ";")
	name := strings.ToUpper(strings.TrimSpace(tokens[0]))
	// Apple exports prefix properties with a group: item1.ADR
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		name = name[dot+1:]
	}
	p := vcardProperty{name: name, params: map[string][]string{}, value: value}
	for _, tok := range tokens[1:] {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if eq := strings.Index(tok, "="); eq > 0 {
			key := strings.ToUpper(tok[:eq])
			val := strings.Trim(tok[eq+1:], `"`)
			p.params[key] = append(p.params[key], strings.ToUpper(val))
		} else if strings.EqualFold(tok, "QUOTED-PRINTABLE") {
			p.params["ENCODING"] = append(p.params["ENCODING"], "QUOTED-PRINTABLE")
		} else {
			p.params["TYPE"] = append(p.params["TYPE"], strings.ToUpper(tok))
		}
	}
	return p, true
}

func (p vcardProperty) isQuotedPrintable() bool {
	for _, v := range p.params["ENCODING"] {
		if v == "QUOTED-PRINTABLE" {
			return true
		}
	}
	return false
}

// decodedValue applies parameter-driven decoding before value parsing.
func (p vcardProperty) decodedValue() string {
	if p.isQuotedPrintable() {
		return decodeQuotedPrintable(p.value)
	}
	return p.value
}

// parseVCardBlock reduces one unfolded block to a contact.
func parseVCardBlock(lines []string, startLine int) VCardContact {
	c := VCardContact{Line: startLine, Errors: []string{}}
	var fn, nGiven, nFamily string
	haveADR, haveEmail, havePhone := false, false, false
	for _, line := range lines {
		p, ok := parseProperty(line)
		if !ok {
			continue
		}
		switch p.name {
		case "FN":
			if fn == "" {
				fn = collapseSpaces(unescapeValue(p.decodedValue()))
			}
		case "N":
			if nGiven == "" && nFamily == "" {
				parts := splitStructured(p.decodedValue())
				// family;given;middle;prefix;suffix
				if len(parts) > 0 {
					nFamily = strings.TrimSpace(parts[0])
				}
				if len(parts) > 1 {
					nGiven = strings.TrimSpace(parts[1])
				}
			}
		case "ADR":
			if haveADR {
				continue
			}
			haveADR = true
			parts := splitStructured(p.decodedValue())
			// POBox;extended;street;city;region;postal;country
			get := func(i int) string {
				if i < len(parts) {
					return strings.TrimSpace(parts[i])
				}
				return ""
			}
			extended, street := get(1), get(2)
			if extended != "" {
				c.Address = collapseSpaces(extended + " " + street)
			} else {
				c.Address = street
			}
			c.City = get(3)
			c.State = get(4)
			c.Zip = get(5)
			c.Country = get(6)
		case "EMAIL":
			if haveEmail {
				continue
			}
			haveEmail = true
			raw := strings.TrimSpace(unescapeValue(p.decodedValue()))
			if cleaned, ok := CleanEmail(raw); ok {
				c.Email = cleaned
			} else {
				c.Email = raw
			}
		case "TEL":
			if havePhone {
				continue
			}
			havePhone = true
			c.Phone = CleanPhone(unescapeValue(p.decodedValue()), "")
		}
	}
	c.FirstName = nGiven
	c.LastName = nFamily
	if fn != "" {
		c.Name = fn
	} else {
		c.Name = collapseSpaces(nGiven + " " + nFamily)
	}
	if c.Phone != "" && c.Country != "" {
		// Re-run with the country hint now that ADR is known.
		c.Phone = CleanPhone(c.Phone, countryCode(c.Country))
	}
	if err := ValidateVCardContact(c); err != nil {
		c.Errors = append(c.Errors, err.Error())
	} else {
		c.IsValid = true
	}
	return c
}

// countryCode reduces a country string to a two-letter hint when possible.
func countryCode(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	switch strings.ToLower(s) {
	case "usa", "united states", "united states of america":
		return "US"
	case "canada":
		return "CA"
	}
	return ""
}

// ValidateVCardContact reports what makes a contact unusable for mailing,
// or nil when it is fine.
func ValidateVCardContact(c VCardContact) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("Name is required")
	}
	if strings.TrimSpace(c.Address) == "" && strings.TrimSpace(c.City) == "" {
		return errors.New("Address or city is required")
	}
	return nil
}

// VCardToRecipient maps a contact onto the canonical recipient shape,
// defaulting the country to US.
func VCardToRecipient(c VCardContact) Recipient {
	return Recipient{
		Name:     c.Name,
		Address1: c.Address,
		City:     c.City,
		State:    c.State,
		Zip:      c.Zip,
		Country:  firstNonEmpty(strings.TrimSpace(c.Country), "US"),
	}
}

// ParseVCard turns vCard 2.1/3.0/4.0 text, possibly holding many
// concatenated blocks, into canonical contacts. A block that fails
// validation lands in Invalid; only structurally unusable input is an error.
func ParseVCard(text string) (*VCardResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("vCard content is empty")
	}
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range rawLines {
		rawLines[i] = strings.TrimSuffix(rawLines[i], "\r")
	}

	result := &VCardResult{Valid: []VCardContact{}, Invalid: []VCardContact{}}
	var block []string
	blockStart, inBlock, sawBlock := 0, false, false
	flush := func() {
		contact := parseVCardBlock(unfoldLines(block), blockStart)
		result.TotalContacts++
		if contact.IsValid {
			result.Valid = append(result.Valid, contact)
		} else {
			result.Invalid = append(result.Invalid, contact)
		}
		block = nil
	}
	for i, line := range rawLines {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			inBlock, sawBlock = true, true
			blockStart = i + 1
			block = nil
		case strings.HasPrefix(upper, "END:VCARD"):
			if inBlock {
				inBlock = false
				flush()
			}
		default:
			if inBlock && strings.TrimSpace(line) != "" {
				block = append(block, line)
			}
		}
	}
	if !sawBlock {
		return nil, errors.New("Invalid vCard format")
	}
	if inBlock && len(block) > 0 {
		// Truncated export without a final END:VCARD still yields a contact.
		flush()
	}
	return result, nil
}
