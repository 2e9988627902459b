package measuremsgpack

import (
	"bytes"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// DeclarationBuffer decodes a stream of msgpack encoded declarations that
// may arrive split across reads.
type DeclarationBuffer struct {
	buf bytes.Buffer
}

// Feed appends data and returns every declaration completed so far.
// Bytes of an unfinished declaration stay buffered for the next call.
func (db *DeclarationBuffer) Feed(data []byte) ([]Declaration, error) {
	db.buf.Write(data)

	var results []Declaration
	for db.buf.Len() > 0 {
		r := bytes.NewReader(db.buf.Bytes())
		dec := msgpack.NewDecoder(r)
		var d Declaration
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// not enough data yet, stop
				break
			}
			return results, err
		}
		db.buf.Next(db.buf.Len() - r.Len())
		results = append(results, d)
	}
	return results, nil
}

// Buffered reports how many bytes are waiting for the rest of a record.
func (db *DeclarationBuffer) Buffered() int {
	return db.buf.Len()
}

func Encode(w io.Writer, decls ...Declaration) error {
	enc := msgpack.NewEncoder(w)
	for i := range decls {
		if err := enc.Encode(&decls[i]); err != nil {
			return err
		}
	}
	return nil
}
