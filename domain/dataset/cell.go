package dataset

import (
	"encoding/json"
	"strconv"
	"time"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	KindNull CellKind = iota
	KindNumber
	KindText
	KindBool
	KindDate
)

// Cell is a tagged-union value for a single dataset cell. The variant is
// decided once by the column type inferencer, so downstream statistics
// operate on a known set instead of coercing at every use site.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Bool   bool
	Date   time.Time
}

func NullCell() Cell            { return Cell{Kind: KindNull} }
func NumberCell(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }
func TextCell(s string) Cell    { return Cell{Kind: KindText, Text: s} }
func BoolCell(b bool) Cell      { return Cell{Kind: KindBool, Bool: b} }
func DateCell(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool {
	return c.Kind == KindNull
}

// Float returns the numeric value and whether the cell is numeric.
func (c Cell) Float() (float64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	return c.Number, true
}

// Display renders the cell for labels and narrative text.
func (c Cell) Display() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// CanonicalKey returns a stable representation used for structural-equality
// deduplication: two equal values share a key even when they are not the
// same Go value. Uses a kind prefix so "1" (text) and 1 (number) stay distinct.
func (c Cell) CanonicalKey() string {
	switch c.Kind {
	case KindNumber:
		raw, _ := json.Marshal(c.Number)
		return "n:" + string(raw)
	case KindText:
		raw, _ := json.Marshal(c.Text)
		return "t:" + string(raw)
	case KindBool:
		return "b:" + strconv.FormatBool(c.Bool)
	case KindDate:
		return "d:" + c.Date.UTC().Format(time.RFC3339Nano)
	default:
		return "null"
	}
}

// MarshalJSON emits the underlying value (null for KindNull) so rows
// serialize the way chart renderers expect.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNumber:
		return json.Marshal(c.Number)
	case KindText:
		return json.Marshal(c.Text)
	case KindBool:
		return json.Marshal(c.Bool)
	case KindDate:
		return json.Marshal(c.Date)
	default:
		return []byte("null"), nil
	}
}
