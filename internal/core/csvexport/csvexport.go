// Package csvexport renders order result sets as CSV documents
package csvexport

import (
	"bytes"
	"encoding/csv"

	"orderexport/internal/core/order"
	perr "orderexport/internal/platform/errors"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ContentType is the media type stored alongside artifacts
const ContentType = "text/csv; charset=utf-8"

// Artifact is an encoded CSV document: header row first, rows joined by "\n",
// no trailing newline
type Artifact []byte

// String returns the document text
func (a Artifact) String() string { return string(a) }

// Column maps one order field onto a CSV column
type Column struct {
	Header string
	Value  func(order.Order) string
}

// OrderID is the only column the daily export emits
var OrderID = Column{
	Header: "OrderID",
	Value:  func(o order.Order) string { return o.ID },
}

// Encoder renders a fixed column set
type Encoder struct {
	Columns []Column
}

// Default is the daily export encoder
var Default = Encoder{Columns: []Column{OrderID}}

// Encode renders rs with the daily export columns
// It never fails: the default column set is non-empty and writes go to memory
func Encode(rs order.ResultSet) Artifact {
	a, _ := Default.Encode(rs)
	return a
}

// Encode renders rs in result-set order
// Ill-formed UTF-8 in values is replaced with U+FFFD
func (e Encoder) Encode(rs order.ResultSet) (Artifact, error) {
	if len(e.Columns) == 0 {
		return nil, perr.New(perr.ErrorCodeEncode, "csv encoder has no columns")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	record := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		record[i] = clean(c.Header)
	}
	if err := w.Write(record); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEncode, "write csv header")
	}

	for _, o := range rs.Orders {
		for i, c := range e.Columns {
			record[i] = clean(c.Value(o))
		}
		if err := w.Write(record); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeEncode, "write csv row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEncode, "flush csv")
	}

	return Artifact(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

func clean(s string) string {
	out, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		return s
	}
	return out
}
