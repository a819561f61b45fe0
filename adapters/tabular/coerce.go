package tabular

import (
	"math"
	"strconv"
	"strings"
	"time"

	"datastory/domain/core"
	"datastory/domain/dataset"
)

// boolean literals accepted by the inferencer, case-insensitive.
var boolTokens = map[string]bool{
	"true": true, "false": false,
	"yes": true, "no": false,
	"1": true, "0": false,
}

// date layouts tried in order when classifying and coercing date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// dateShare is the fraction of non-null values that must parse as dates for
// a column to classify as date. Strictly more than 80% tolerates stray
// non-date entries without demanding a perfect column.
const dateShare = 0.8

// InferColumnType classifies a column from its raw values. Checks run in a
// fixed order - boolean, then number, then date, then string - so a column
// of only "0"/"1" is boolean, not numeric. A column with no non-null values
// defaults to string.
func InferColumnType(values []string) dataset.ColumnType {
	nonNull := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			nonNull = append(nonNull, strings.TrimSpace(v))
		}
	}
	if len(nonNull) == 0 {
		return dataset.TypeString
	}

	allBool := true
	for _, v := range nonNull {
		if _, ok := boolTokens[strings.ToLower(v)]; !ok {
			allBool = false
			break
		}
	}
	if allBool {
		return dataset.TypeBoolean
	}

	allNumber := true
	for _, v := range nonNull {
		if !parsesAsNumber(v) {
			allNumber = false
			break
		}
	}
	if allNumber {
		return dataset.TypeNumber
	}

	dateCount := 0
	for _, v := range nonNull {
		if _, ok := parseDate(v); ok {
			dateCount++
		}
	}
	if float64(dateCount) > dateShare*float64(len(nonNull)) {
		return dataset.TypeDate
	}

	return dataset.TypeString
}

// CoerceCell converts one raw value into the tagged cell variant for its
// column type. Values that do not fit the declared type become nulls.
func CoerceCell(raw string, colType dataset.ColumnType) dataset.Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return dataset.NullCell()
	}
	switch colType {
	case dataset.TypeBoolean:
		if b, ok := boolTokens[strings.ToLower(raw)]; ok {
			return dataset.BoolCell(b)
		}
		return dataset.NullCell()
	case dataset.TypeNumber:
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return dataset.NullCell()
		}
		return dataset.NumberCell(v)
	case dataset.TypeDate:
		if t, ok := parseDate(raw); ok {
			return dataset.DateCell(t)
		}
		return dataset.TextCell(raw)
	default:
		return dataset.TextCell(raw)
	}
}

// sampleSize is how many raw values a ColumnDescriptor keeps for display.
const sampleSize = 5

// BuildDataset runs type inference over a parsed table and materializes the
// immutable Dataset the analysis pipeline owns. Descriptors are derived
// once here and never mutated afterward.
func BuildDataset(table *Table, name string) (*dataset.Dataset, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, core.ErrEmptyDataset
	}

	columns := make([]dataset.ColumnDescriptor, 0, len(table.Headers))
	types := make(map[string]dataset.ColumnType, len(table.Headers))
	for _, header := range table.Headers {
		raw := make([]string, len(table.Rows))
		for i, row := range table.Rows {
			raw[i] = row[header]
		}
		colType := InferColumnType(raw)
		types[header] = colType

		sample := make([]string, 0, sampleSize)
		for _, v := range raw {
			if len(sample) == sampleSize {
				break
			}
			if strings.TrimSpace(v) != "" {
				sample = append(sample, strings.TrimSpace(v))
			}
		}
		columns = append(columns, dataset.ColumnDescriptor{
			Name:   header,
			Type:   colType,
			Sample: sample,
		})
	}

	rows := make([]dataset.Row, len(table.Rows))
	for i, raw := range table.Rows {
		row := make(dataset.Row, len(table.Headers))
		for _, header := range table.Headers {
			row[header] = CoerceCell(raw[header], types[header])
		}
		rows[i] = row
	}

	// Null and unique counts come from the coerced cells so structural
	// equality (canonical keys) decides uniqueness.
	for i := range columns {
		nulls := 0
		unique := make(map[string]bool)
		for _, row := range rows {
			cell := row[columns[i].Name]
			if cell.IsNull() {
				nulls++
				continue
			}
			unique[cell.CanonicalKey()] = true
		}
		columns[i].NullCount = nulls
		columns[i].UniqueCount = len(unique)
	}

	return &dataset.Dataset{
		ID:         core.DatasetID(core.NewID()),
		Name:       name,
		Rows:       rows,
		Columns:    columns,
		RowCount:   len(rows),
		UploadedAt: core.Now(),
	}, nil
}

func parsesAsNumber(v string) bool {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
