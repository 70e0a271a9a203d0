package dedupe

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ParsedRow is one data row translated into the canonical recipient shape,
// plus where it came from and what is wrong with it. RowNumber is 1-based and
// counts the header, so the first data row is row 2.
type ParsedRow struct {
	Data      Recipient `json:"data"`
	RowNumber int       `json:"rowNumber"`
	IsValid   bool      `json:"isValid"`
	Errors    []string  `json:"errors"`
}

// CSVResult splits an import into rows that validated and rows that did not.
// TotalRows counts every non-header line, blank ones included, though blank
// lines produce no row entry.
type CSVResult struct {
	Valid     []ParsedRow `json:"valid"`
	Invalid   []ParsedRow `json:"invalid"`
	TotalRows int         `json:"totalRows"`
}

// columnAliases maps each canonical column to the header spellings that
// resolve to it. Lookup is case-insensitive with underscores and dashes
// folded to spaces.
var columnAliases = map[string][]string{
	"name":     {"name", "full name", "fullname", "recipient", "recipient name", "contact", "contact name"},
	"address1": {"address1", "address 1", "address", "street", "street address", "address line 1", "addr1"},
	"address2": {"address2", "address 2", "address line 2", "addr2", "apt", "apartment", "suite", "unit"},
	"city":     {"city", "town", "municipality"},
	"state":    {"state", "province", "region", "state province"},
	"zip":      {"zip", "zip code", "zipcode", "postal", "postal code", "postalcode"},
	"country":  {"country", "country code", "nation"},
}

var requiredColumns = []string{"name", "address1", "city", "state", "zip"}

var usZipRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

func normalizeHeaderCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return collapseSpaces(s)
}

// resolveColumns maps canonical column names to their positions in the
// header, returning the canonical names that could not be resolved.
func resolveColumns(header []string) (map[string]int, []string) {
	byAlias := map[string]string{}
	for canon, aliases := range columnAliases {
		for _, a := range aliases {
			byAlias[a] = canon
		}
	}
	cols := map[string]int{}
	for i, cell := range header {
		if canon, ok := byAlias[normalizeHeaderCell(cell)]; ok {
			if _, taken := cols[canon]; !taken {
				cols[canon] = i
			}
		}
	}
	missing := []string{}
	for _, canon := range requiredColumns {
		if _, ok := cols[canon]; !ok {
			missing = append(missing, canon)
		}
	}
	return cols, missing
}

// splitCSVLine splits one line on commas, honoring double-quoted fields. A
// doubled quote inside a quoted field decodes to a literal quote.
func splitCSVLine(line string) []string {
	fields := []string{}
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func validateRecipientRow(r Recipient) []string {
	errs := []string{}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Address1) == "" {
		errs = append(errs, "address1 is required")
	}
	if strings.TrimSpace(r.City) == "" {
		errs = append(errs, "city is required")
	}
	if strings.TrimSpace(r.State) == "" {
		errs = append(errs, "state is required")
	}
	switch {
	case strings.TrimSpace(r.Zip) == "":
		errs = append(errs, "zip is required")
	case !usZipRe.MatchString(strings.TrimSpace(r.Zip)):
		errs = append(errs, "zip must be in the format 12345 or 12345-6789")
	}
	return errs
}

// ParseCSV turns delimited text into validated recipient rows. Structural
// failures (no data rows, unresolvable required columns) are returned as
// errors; anything row-level lands in the Invalid list and parsing continues.
func ParseCSV(text string) (*CSVResult, error) {
	text = strings.TrimRight(text, "\r\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	if text == "" || len(lines) < 2 {
		return nil, errors.New("CSV must contain at least a header row and one data row")
	}

	cols, missing := resolveColumns(splitCSVLine(lines[0]))
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &CSVResult{
		Valid:     []ParsedRow{},
		Invalid:   []ParsedRow{},
		TotalRows: len(lines) - 1,
	}
	cell := func(fields []string, canon string) string {
		if pos, ok := cols[canon]; ok && pos < len(fields) {
			return strings.TrimSpace(fields[pos])
		}
		return ""
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		fields := splitCSVLine(lines[i])
		rec := Recipient{
			Name:     cell(fields, "name"),
			Address1: cell(fields, "address1"),
			Address2: cell(fields, "address2"),
			City:     cell(fields, "city"),
			State:    cell(fields, "state"),
			Zip:      cell(fields, "zip"),
			Country:  firstNonEmpty(cell(fields, "country"), "US"),
		}
		row := ParsedRow{Data: rec, RowNumber: i + 1, Errors: []string{}}
		if errs := validateRecipientRow(rec); len(errs) > 0 {
			row.Errors = errs
			result.Invalid = append(result.Invalid, row)
		} else {
			row.IsValid = true
			result.Valid = append(result.Valid, row)
		}
	}
	return result, nil
}

// GenerateCSVTemplate returns a header plus one example row that re-imports
// through ParseCSV with zero invalid rows.
func GenerateCSVTemplate() string {
	return "name,address1,address2,city,state,zip,country\n" +
		"John Doe,123 Main Street,Apt 4B,Springfield,IL,62701,US\n"
}
