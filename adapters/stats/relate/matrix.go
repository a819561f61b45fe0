package relate

import (
	"math"
	"sort"

	"datastory/domain/analysis"
	"datastory/domain/dataset"
)

// Matrix computes the correlation for every unordered pair of numeric
// columns and returns them sorted descending by |r|. The sort is stable:
// ties keep pair-generation order (first column index ascending, then the
// second).
func Matrix(ds *dataset.Dataset) []analysis.CorrelationResult {
	numeric := ds.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	series := make(map[string][]float64, len(numeric))
	for _, name := range numeric {
		series[name] = ds.AlignedSeries(name)
	}

	results := make([]analysis.CorrelationResult, 0, len(numeric)*(len(numeric)-1)/2)
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			results = append(results, Correlate(numeric[i], numeric[j], series[numeric[i]], series[numeric[j]]))
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return math.Abs(results[a].Correlation) > math.Abs(results[b].Correlation)
	})
	return results
}
