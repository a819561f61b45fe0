package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datastory/adapters/stats/describe"
	"datastory/adapters/tabular"
	"datastory/domain/analysis"
	"datastory/domain/dataset"
)

func analyzed(t *testing.T, headers []string, rows []tabular.RawRow) (*dataset.Dataset, []analysis.StatSummary) {
	t.Helper()
	ds, err := tabular.BuildDataset(&tabular.Table{Headers: headers, Rows: rows}, "test")
	require.NoError(t, err)
	return ds, describe.Summarize(ds, ds.ColumnNames())
}

func insightByID(batch []analysis.ActionableInsight, id string) (analysis.ActionableInsight, bool) {
	for _, ins := range batch {
		if ins.ID == id {
			return ins, true
		}
	}
	return analysis.ActionableInsight{}, false
}

func TestGenerateDeterministic(t *testing.T) {
	rows := make([]tabular.RawRow, 0, 60)
	for i := 0; i < 60; i++ {
		v := ""
		if i%2 == 0 {
			v = fmt.Sprintf("%d", i)
		}
		rows = append(rows, tabular.RawRow{"v": v, "g": fmt.Sprintf("g%d", i%3)})
	}
	ds, summaries := analyzed(t, []string{"v", "g"}, rows)

	first := Generate(ds, summaries)
	second := Generate(ds, summaries)
	assert.Equal(t, first, second)
}

func TestMissingDataThresholds(t *testing.T) {
	build := func(missing int) (*dataset.Dataset, []analysis.StatSummary) {
		rows := make([]tabular.RawRow, 0, 100)
		for i := 0; i < 100; i++ {
			v := fmt.Sprintf("%d", i)
			if i < missing {
				v = ""
			}
			rows = append(rows, tabular.RawRow{"v": v})
		}
		return analyzed(t, []string{"v"}, rows)
	}

	// At 10% the rule stays silent.
	ds, summaries := build(10)
	_, found := insightByID(Generate(ds, summaries), "null-v")
	assert.False(t, found)

	// Above 10% it fires as info.
	ds, summaries = build(15)
	ins, found := insightByID(Generate(ds, summaries), "null-v")
	require.True(t, found)
	assert.Equal(t, analysis.SeverityInfo, ins.Severity)
	assert.Equal(t, 15, ins.Impact)

	// Above 30% it escalates to warning; impact caps at 40.
	ds, summaries = build(55)
	ins, found = insightByID(Generate(ds, summaries), "null-v")
	require.True(t, found)
	assert.Equal(t, analysis.SeverityWarning, ins.Severity)
	assert.Equal(t, 40, ins.Impact)
}

func TestSampleSizeRule(t *testing.T) {
	small := make([]tabular.RawRow, 0, 50)
	for i := 0; i < 50; i++ {
		small = append(small, tabular.RawRow{"v": fmt.Sprintf("%d", i)})
	}
	ds, summaries := analyzed(t, []string{"v"}, small)
	ins, found := insightByID(Generate(ds, summaries), "sample-size")
	require.True(t, found)
	assert.Equal(t, analysis.SeverityWarning, ins.Severity)

	large := make([]tabular.RawRow, 0, 1200)
	for i := 0; i < 1200; i++ {
		large = append(large, tabular.RawRow{"v": fmt.Sprintf("%d", i)})
	}
	ds, summaries = analyzed(t, []string{"v"}, large)
	ins, found = insightByID(Generate(ds, summaries), "sample-size")
	require.True(t, found)
	assert.Equal(t, analysis.SeveritySuccess, ins.Severity)
}

func TestCorrelationReadinessRule(t *testing.T) {
	rows := make([]tabular.RawRow, 0, 10)
	for i := 1; i <= 10; i++ {
		rows = append(rows, tabular.RawRow{
			"a": fmt.Sprintf("%d", i),
			"b": fmt.Sprintf("%d", i*2),
			"c": fmt.Sprintf("%d", i*i),
		})
	}
	ds, summaries := analyzed(t, []string{"a", "b", "c"}, rows)

	ins, found := insightByID(Generate(ds, summaries), "correlation-ready")
	require.True(t, found)
	assert.Equal(t, analysis.InsightRecommendation, ins.Type)
	assert.Equal(t, []string{"a", "b", "c"}, ins.RelatedColumns)
}

func TestLowCardinalityRule(t *testing.T) {
	rows := make([]tabular.RawRow, 0, 60)
	for i := 0; i < 60; i++ {
		rows = append(rows, tabular.RawRow{"region": fmt.Sprintf("region-%d", i%4)})
	}
	ds, summaries := analyzed(t, []string{"region"}, rows)

	ins, found := insightByID(Generate(ds, summaries), "segments-region")
	require.True(t, found)
	assert.Equal(t, analysis.InsightPattern, ins.Type)
}

func TestNarrativeSections(t *testing.T) {
	rows := make([]tabular.RawRow, 0, 40)
	for i := 1; i <= 40; i++ {
		rows = append(rows, tabular.RawRow{
			"sales": fmt.Sprintf("%d", i*10),
			"team":  fmt.Sprintf("team-%d", i%3),
		})
	}
	ds, summaries := analyzed(t, []string{"sales", "team"}, rows)
	generated := Generate(ds, summaries)

	text := Narrative(ds, summaries, generated)
	assert.Contains(t, text, "## test Overview")
	assert.Contains(t, text, "**sales** ranges from 10.00 to 400.00")
	assert.Contains(t, text, "**team** has 3 unique values")
	assert.Contains(t, text, "## Recommendations")
	assert.Contains(t, text, "Segment the numeric metrics by the categorical columns.")
}
