package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/domain/core"
)

func TestNewReaderExtensions(t *testing.T) {
	for _, name := range []string{"data.csv", "data.TSV", "report.xlsx", "old.xls", "dump.json"} {
		_, err := NewReader(name)
		assert.NoError(t, err, name)
	}

	_, err := NewReader("image.png")
	assert.ErrorIs(t, err, core.ErrUnsupportedFile)
}

func TestReadCSV(t *testing.T) {
	src := strings.NewReader("name, amount \nalice,10\nbob,20\n")
	r, err := NewReader("test.csv")
	require.NoError(t, err)

	table, err := r.Read(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "amount"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "alice", table.Rows[0]["name"])
	assert.Equal(t, "20", table.Rows[1]["amount"])
}

func TestReadCSVRaggedRows(t *testing.T) {
	src := strings.NewReader("a,b,c\n1,2\n4,5,6,7\n")
	r, _ := NewReader("ragged.csv")

	table, err := r.Read(src)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	// Short rows leave the missing columns empty; long rows drop extras.
	assert.Equal(t, "", table.Rows[0]["c"])
	assert.Equal(t, "6", table.Rows[1]["c"])
}

func TestReadCSVHeaderOnly(t *testing.T) {
	r, _ := NewReader("empty.csv")
	_, err := r.Read(strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, core.ErrMalformedInput)
}

func TestReadJSON(t *testing.T) {
	src := strings.NewReader(`[
		{"name": "alice", "amount": 10.5, "active": true},
		{"name": "bob", "amount": 20, "note": null}
	]`)
	r, _ := NewReader("records.json")

	table, err := r.Read(src)
	require.NoError(t, err)
	// First record's keys sorted, later-seen keys appended.
	assert.Equal(t, []string{"active", "amount", "name", "note"}, table.Headers)
	assert.Equal(t, "10.5", table.Rows[0]["amount"])
	assert.Equal(t, "true", table.Rows[0]["active"])
	assert.Equal(t, "", table.Rows[1]["note"])
}

func TestReadJSONMalformed(t *testing.T) {
	r, _ := NewReader("broken.json")
	_, err := r.Read(strings.NewReader(`{"not": "an array"}`))
	assert.ErrorIs(t, err, core.ErrMalformedInput)

	_, err = r.Read(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, core.ErrMalformedInput)
}
