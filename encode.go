package payments

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input and output column names.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// SnapshotHeader is the header of the CSV snapshot.
var SnapshotHeader = []string{"client", "available", "held", "total", "locked"}

// Decoder reads Records from a CSV stream with a `type,client,tx,amount` header.
//
// Columns are located by header name, so their order does not matter, and the
// amount column may be missing altogether. Fields are trimmed. Rows may be
// shorter than the header: missing trailing fields are empty.
type Decoder struct {
	r    *csv.Reader
	cols map[string]int
}

// NewDecoder reads the header from r. It fails if the header lacks a required
// column or if r cannot be read. An empty stream is valid: Next returns io.EOF.
func NewDecoder(r io.Reader) (*Decoder, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	d := &Decoder{r: cr, cols: make(map[string]int)}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := d.cols[name]; !dup {
			d.cols[name] = i
		}
	}
	for _, name := range []string{colType, colClient, colTx} {
		if _, ok := d.cols[name]; !ok {
			return nil, fmt.Errorf("invalid header %q: missing %q column", strings.Join(header, ","), name)
		}
	}
	return d, nil
}

// Next returns the next record.
//
// It returns io.EOF at the end of the stream, a *RecordError wrapping
// ErrMalformedRecord for a line that is not valid CSV (the stream can still be
// read past it), or any other error if the stream itself failed.
func (d *Decoder) Next() (Record, error) {
	if len(d.cols) == 0 {
		return Record{}, io.EOF
	}
	var fields []string
	for {
		var err error
		fields, err = d.r.Read()
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return Record{}, &RecordError{Line: perr.StartLine, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, perr.Err)}
			}
			return Record{}, err
		}
		if !blank(fields) {
			break
		}
	}
	line, _ := d.r.FieldPos(0)
	return Record{
		Line:   line,
		Type:   d.field(fields, colType),
		Client: d.field(fields, colClient),
		Tx:     d.field(fields, colTx),
		Amount: d.field(fields, colAmount),
	}, nil
}

// blank reports whether a row only holds whitespace.
func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (d *Decoder) field(fields []string, name string) string {
	i, ok := d.cols[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// EncodeSnapshots writes snapshots as CSV, header first.
func EncodeSnapshots(w io.Writer, snaps []Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SnapshotHeader); err != nil {
		return err
	}
	for _, s := range snaps {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalJSON writes the snapshot fields in the CSV column order.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("client", s.Client)
	w.Append("available", s.Available)
	w.Append("held", s.Held)
	w.Append("total", s.Total)
	w.Append("locked", s.Locked)
	return w.MarshalJSON()
}

// EncodeSnapshotsJSON writes snapshots as an indented JSON array.
func EncodeSnapshotsJSON(w io.Writer, snaps []Snapshot) error {
	if snaps == nil {
		snaps = []Snapshot{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snaps)
}
