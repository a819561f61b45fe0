package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"datastory/domain/core"
)

// Reader parses CSV, XLSX and JSON files into a Table.
type Reader struct {
	fileType string // "csv", "xlsx" or "json"
}

// NewReader creates a reader for the given filename's extension.
func NewReader(filename string) (*Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv":
		return &Reader{fileType: "csv"}, nil
	case ".xlsx", ".xls":
		return &Reader{fileType: "xlsx"}, nil
	case ".json":
		return &Reader{fileType: "json"}, nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Ext(filename))
	}
}

// ReadFile parses a file on disk.
func ReadFile(path string) (*Table, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses the stream according to the reader's file type.
func (r *Reader) Read(src io.Reader) (*Table, error) {
	start := time.Now()
	var (
		table *Table
		err   error
	)
	switch r.fileType {
	case "csv":
		table, err = r.readCSV(src)
	case "xlsx":
		table, err = r.readExcel(src)
	case "json":
		table, err = r.readJSON(src)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, r.fileType)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[tabular] %s parsed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(r.fileType), float64(time.Since(start).Nanoseconds())/1e6,
		len(table.Headers), len(table.Rows))
	return table, nil
}

func (r *Reader) readCSV(src io.Reader) (*Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: CSV needs a header row and at least one data row", core.ErrMalformedInput)
	}
	return processRows(rows)
}

func (r *Reader) readExcel(src io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open Excel stream: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheet = "Sheet1"
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet needs a header row and at least one data row", core.ErrMalformedInput)
	}
	return processRows(rows)
}

// readJSON accepts an array of flat objects. Headers come from the first
// object's keys followed by any keys first seen later, in encounter order.
func (r *Reader) readJSON(src io.Reader) (*Table, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()

	var records []map[string]interface{}
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode JSON array: %v", core.ErrMalformedInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: JSON array is empty", core.ErrMalformedInput)
	}

	var headers []string
	seen := make(map[string]bool)
	addHeader := func(k string) {
		if !seen[k] {
			seen[k] = true
			headers = append(headers, k)
		}
	}
	// Object key order is not stable in Go; sort each record's new keys so
	// repeated parses of the same file agree on column order.
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			addHeader(k)
		}
	}

	tableRows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		row := make(RawRow, len(rec))
		for k, v := range rec {
			row[k] = jsonScalar(v)
		}
		tableRows = append(tableRows, row)
	}
	return &Table{Headers: headers, Rows: tableRows}, nil
}

// processRows converts raw [][]string sheets into a Table, trimming headers
// and cells the way the upload UI expects.
func processRows(rows [][]string) (*Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := make([]RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := make(RawRow, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				row[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, row)
	}
	return &Table{Headers: headers, Rows: dataRows}, nil
}

func jsonScalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}
