package dedupe

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteRecipientsMsgpack writes recipients in MessagePack format as an array
// stream, for handing parsed batches between processes without re-parsing.
func WriteRecipientsMsgpack(w io.Writer, recipients []Recipient) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(recipients)); err != nil {
		return err
	}
	for i := range recipients {
		if err := enc.Encode(&recipients[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecipientsMsgpack reads recipients encoded as an array.
func ReadRecipientsMsgpack(r io.Reader, fn func(Recipient) error) error {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		var rec Recipient
		if err := dec.Decode(&rec); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
