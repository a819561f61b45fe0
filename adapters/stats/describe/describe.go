// Package describe computes per-column descriptive statistics over an
// in-memory dataset. All functions are pure; zero-length input yields
// degenerate zero summaries, never NaN.
package describe

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"datastory/domain/analysis"
	"datastory/domain/core"
	"datastory/domain/dataset"
)

// Summarize returns one StatSummary per requested column, in request order.
// Unknown column names are skipped.
func Summarize(ds *dataset.Dataset, columns []string) []analysis.StatSummary {
	summaries := make([]analysis.StatSummary, 0, len(columns))
	for _, name := range columns {
		desc, ok := ds.Column(name)
		if !ok {
			continue
		}
		summaries = append(summaries, SummarizeColumn(ds, desc))
	}
	return summaries
}

// SummarizeColumn computes the summary for a single column.
func SummarizeColumn(ds *dataset.Dataset, desc dataset.ColumnDescriptor) analysis.StatSummary {
	if desc.Type == dataset.TypeNumber {
		return summarizeNumeric(ds, desc)
	}
	return summarizeCategorical(ds, desc)
}

func summarizeNumeric(ds *dataset.Dataset, desc dataset.ColumnDescriptor) analysis.StatSummary {
	values := ds.NumericValues(desc.Name)
	summary := analysis.StatSummary{
		Column:      desc.Name,
		Type:        desc.Type,
		IsNumeric:   true,
		Count:       len(values),
		NullCount:   desc.NullCount,
		UniqueCount: desc.UniqueCount,
	}
	if len(values) == 0 {
		summary.SkewShape = analysis.SkewSymmetric
		return summary
	}

	// montanaflynn only errors on empty input, which is guarded above.
	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	variance, _ := stats.PopulationVariance(values)
	std := math.Sqrt(variance)

	skew := Skewness(values, mean, std)
	kurt := Kurtosis(values, mean, std)

	summary.Mean = core.Round2(mean)
	summary.Median = core.Round2(lowerMedian(values))
	summary.Min = core.Round2(min)
	summary.Max = core.Round2(max)
	summary.Variance = core.Round2(variance)
	summary.Std = core.Round2(std)
	summary.Skewness = core.Round2(skew)
	summary.SkewShape = analysis.ClassifySkewness(skew)
	summary.Kurtosis = core.Round2(kurt)
	if mode, ok := numericMode(values); ok {
		summary.Mode = dataset.NumberCell(mode).Display()
	}
	return summary
}

func summarizeCategorical(ds *dataset.Dataset, desc dataset.ColumnDescriptor) analysis.StatSummary {
	summary := analysis.StatSummary{
		Column:      desc.Name,
		Type:        desc.Type,
		NullCount:   desc.NullCount,
		UniqueCount: desc.UniqueCount,
	}

	// Single frequency pass; ties keep the first-encountered value.
	order := make([]string, 0)
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, row := range ds.Rows {
		cell := row[desc.Name]
		if cell.IsNull() {
			continue
		}
		summary.Count++
		key := cell.CanonicalKey()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			display[key] = cell.Display()
		}
		counts[key]++
	}

	best := -1
	for _, key := range order {
		if counts[key] > best {
			best = counts[key]
			summary.Mode = display[key]
		}
	}
	return summary
}

// lowerMedian returns the middle element of the sorted values, taking the
// lower of the two middles on even length. The two-middle average most
// libraries use would shift downstream narrative thresholds.
func lowerMedian(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}

// numericMode returns the most frequent value; ties keep the
// first-encountered value from the frequency pass.
func numericMode(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	order := make([]float64, 0)
	counts := make(map[float64]int)
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	best := -1
	mode := 0.0
	for _, v := range order {
		if counts[v] > best {
			best = counts[v]
			mode = v
		}
	}
	return mode, true
}
