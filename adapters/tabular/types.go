package tabular

// RawRow is one parsed row of raw string cells keyed by header.
type RawRow map[string]string

// Table is the parser output before type inference: trimmed headers plus
// raw string rows. Ragged rows keep only the cells they have; missing keys
// are treated as nulls downstream.
type Table struct {
	Headers []string
	Rows    []RawRow
}
