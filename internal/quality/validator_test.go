package quality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/adapters/stats/describe"
	"datastory/adapters/stats/relate"
	"datastory/adapters/tabular"
	"datastory/domain/analysis"
	"datastory/domain/dataset"
	"datastory/internal/charts"
)

func analyzed(t *testing.T, headers []string, rows []tabular.RawRow) (*dataset.Dataset, []analysis.StatSummary) {
	t.Helper()
	ds, err := tabular.BuildDataset(&tabular.Table{Headers: headers, Rows: rows}, "test")
	require.NoError(t, err)
	return ds, describe.Summarize(ds, ds.ColumnNames())
}

func cleanRows(n int) []tabular.RawRow {
	rows := make([]tabular.RawRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, tabular.RawRow{
			"x": fmt.Sprintf("%d", i),
			"y": fmt.Sprintf("%d", 3*i+7),
		})
	}
	return rows
}

func TestValidateCleanData(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(100))
	correlations := relate.Matrix(ds)
	chartConfigs := charts.Synthesize(ds, nil, "correlation")

	report := Validate(ds, summaries, chartConfigs, correlations)

	assert.True(t, report.Overall.Valid)
	assert.Equal(t, 100.0, report.Overall.Confidence)
	assert.Equal(t, 100.0, report.Statistics.Confidence)
	assert.Equal(t, 100.0, report.Correlations.Confidence)
	assert.Equal(t, 100.0, report.Completeness)
	assert.Equal(t, 100.0, report.Consistency)
	assert.Empty(t, report.Overall.Errors)
}

func TestValidateDuplicatePenalty(t *testing.T) {
	// 45 distinct rows plus 5 copies of the first: dup share is 10%, so
	// the penalty is 50*0.1*20/50... i.e. min(5/50*20, 15) = 2 points.
	rows := cleanRows(45)
	for i := 0; i < 5; i++ {
		rows = append(rows, tabular.RawRow{"x": "0", "y": "7"})
	}
	ds, summaries := analyzed(t, []string{"x", "y"}, rows)

	report := Validate(ds, summaries, nil, nil)
	assert.Equal(t, 98.0, report.Statistics.Confidence)
	assert.Equal(t, 98.0, report.Consistency)
	assert.NotEmpty(t, report.Statistics.Warnings)
}

func TestValidateDuplicatePenaltyCapped(t *testing.T) {
	rows := make([]tabular.RawRow, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, tabular.RawRow{"x": "1", "y": "2"})
	}
	ds, summaries := analyzed(t, []string{"x", "y"}, rows)

	report := Validate(ds, summaries, nil, nil)
	// 99 duplicates would be a 39.6 point hit uncapped; the cap holds it
	// at 15.
	assert.Equal(t, 85.0, report.Statistics.Confidence)
}

func TestValidateMissingData(t *testing.T) {
	rows := cleanRows(100)
	for i := 0; i < 40; i++ {
		rows[i]["y"] = ""
	}
	ds, summaries := analyzed(t, []string{"x", "y"}, rows)

	report := Validate(ds, summaries, nil, nil)
	// 40 of 200 cells missing is 20%: warning range.
	assert.Equal(t, 85.0, report.Statistics.Confidence)
	assert.True(t, report.Statistics.Valid)
	assert.Equal(t, 80.0, report.Completeness)
}

func TestValidateStatMismatch(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(100))
	summaries[0].Mean = summaries[0].Mean * 2

	report := Validate(ds, summaries, nil, nil)
	assert.False(t, report.Statistics.Valid)
	assert.Equal(t, 85.0, report.Statistics.Confidence)
	assert.NotEmpty(t, report.Statistics.Errors)
	assert.False(t, report.Overall.Valid)
}

func TestValidateSmallSample(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(20))

	report := Validate(ds, summaries, nil, nil)
	assert.Equal(t, 80.0, report.Statistics.Confidence)
	assert.NotEmpty(t, report.Statistics.Recommendations)
}

func TestValidateCorrelationBounds(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(100))
	correlations := []analysis.CorrelationResult{
		{XColumn: "x", YColumn: "y", Correlation: 1.7},
	}

	report := Validate(ds, summaries, nil, correlations)
	assert.False(t, report.Correlations.Valid)
	assert.Equal(t, 80.0, report.Correlations.Confidence)
	assert.False(t, report.Overall.Valid)
}

func TestValidateThinCorrelationSample(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(8))
	correlations := relate.Matrix(ds)
	require.NotEmpty(t, correlations)

	report := Validate(ds, summaries, nil, correlations)
	// Under 10 valid pairs costs 20 points and stays a warning.
	assert.True(t, report.Correlations.Valid)
	assert.Equal(t, 80.0, report.Correlations.Confidence)
}

func TestValidateOverallIsMinimum(t *testing.T) {
	ds, summaries := analyzed(t, []string{"x", "y"}, cleanRows(20))
	correlations := relate.Matrix(ds)

	report := Validate(ds, summaries, nil, correlations)
	min := report.Statistics.Confidence
	for _, c := range []float64{report.Visualizations.Confidence, report.Correlations.Confidence} {
		if c < min {
			min = c
		}
	}
	assert.Equal(t, min, report.Overall.Confidence)
}

func TestValidateMonotonicDegradation(t *testing.T) {
	base, baseSummaries := analyzed(t, []string{"x", "y"}, cleanRows(100))
	baseReport := Validate(base, baseSummaries, nil, nil)

	worse := cleanRows(95)
	for i := 0; i < 5; i++ {
		worse = append(worse, tabular.RawRow{"x": "0", "y": "7"})
	}
	worseDS, worseSummaries := analyzed(t, []string{"x", "y"}, worse)
	worseReport := Validate(worseDS, worseSummaries, nil, nil)

	assert.LessOrEqual(t, worseReport.Statistics.Confidence, baseReport.Statistics.Confidence)
	assert.LessOrEqual(t, worseReport.Consistency, baseReport.Consistency)
}
