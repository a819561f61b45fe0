package dataset

import (
	"math"

	"datastory/domain/core"
)

// ColumnType classifies a column for the analysis pipeline.
type ColumnType string

const (
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// IsCategorical reports whether the column is treated as categorical by the
// chart synthesizer and insight rules.
func (t ColumnType) IsCategorical() bool {
	return t == TypeString || t == TypeBoolean
}

// Row holds one record keyed by column name. Missing keys are nulls.
type Row map[string]Cell

// ColumnDescriptor describes one column, derived once at parse time.
// Invariant: NullCount + count of non-null cells for the column == RowCount.
type ColumnDescriptor struct {
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Sample      []string   `json:"sample,omitempty"`
	NullCount   int        `json:"nullCount"`
	UniqueCount int        `json:"uniqueCount"`
}

// Dataset is an immutable tabular dataset owned by a single analysis
// session. Replacing it invalidates everything derived from it.
type Dataset struct {
	ID         core.DatasetID     `json:"id"`
	Name       string             `json:"name"`
	Rows       []Row              `json:"rows"`
	Columns    []ColumnDescriptor `json:"columns"`
	RowCount   int                `json:"rowCount"`
	UploadedAt core.Timestamp     `json:"uploadedAt"`
}

// Column returns the descriptor for a column name.
func (d *Dataset) Column(name string) (ColumnDescriptor, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}

// ColumnNames returns column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// NumericColumns returns the numeric column names in dataset order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Type == TypeNumber {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the categorical column names in dataset order.
func (d *Dataset) CategoricalColumns() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Type.IsCategorical() {
			names = append(names, c.Name)
		}
	}
	return names
}

// NumericValues returns the finite numeric values of a column, dropping
// nulls and non-numeric cells, in row order.
func (d *Dataset) NumericValues(name string) []float64 {
	values := make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		if v, ok := row[name].Float(); ok && core.IsFinite(v) {
			values = append(values, v)
		}
	}
	return values
}

// AlignedSeries returns one value per row for a column, with NaN marking
// null or non-numeric cells so pairwise computations stay index-aligned.
func (d *Dataset) AlignedSeries(name string) []float64 {
	series := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		if v, ok := row[name].Float(); ok && core.IsFinite(v) {
			series[i] = v
		} else {
			series[i] = math.NaN()
		}
	}
	return series
}

// MissingCells counts null cells across all declared columns.
func (d *Dataset) MissingCells() int {
	missing := 0
	for _, c := range d.Columns {
		missing += c.NullCount
	}
	return missing
}

// TotalCells is rows times columns.
func (d *Dataset) TotalCells() int {
	return d.RowCount * len(d.Columns)
}
