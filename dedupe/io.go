package dedupe

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
)

// WriteRecipientsJSONL writes recipients as JSON lines.
func WriteRecipientsJSONL(w io.Writer, recipients []Recipient) error {
	enc := json.NewEncoder(w)
	for i := range recipients {
		if err := enc.Encode(&recipients[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecipientsJSONL reads recipients from a JSON lines stream.
func ReadRecipientsJSONL(r io.Reader, fn func(Recipient) error) error {
	dec := json.NewDecoder(bufio.NewReader(r))
	for {
		var rec Recipient
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// WriteRecipientsCSV writes recipients under the template header, so an
// export re-imports through ParseCSV unchanged.
func WriteRecipientsCSV(w io.Writer, recipients []Recipient) error {
	cw := csv.NewWriter(w)
	header := []string{"name", "address1", "address2", "city", "state", "zip", "country"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range recipients {
		r := recipients[i]
		rec := []string{r.Name, r.Address1, r.Address2, r.City, r.State, r.Zip, r.Country}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
