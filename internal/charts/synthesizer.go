// Package charts turns a dataset plus a column selection into
// renderer-agnostic chart configurations. Output is deterministic for a
// given dataset and selection.
package charts

import (
	"fmt"
	"sort"
	"strconv"

	"datastory/adapters/stats/relate"
	"datastory/domain/analysis"
	"datastory/domain/dataset"
)

const (
	barTopN      = 10
	pieTopN      = 6
	trendRows    = 50
	histogramBin = 10
	// Missing or null categorical cells are charted under this label.
	unknownLabel = "Unknown"
)

// Synthesize produces the chart set for the selected columns and analysis
// type. An empty selection means all columns.
func Synthesize(ds *dataset.Dataset, selected []string, analysisType string) []analysis.ChartConfig {
	if len(selected) == 0 {
		selected = ds.ColumnNames()
	}

	var categorical, numeric []string
	for _, name := range selected {
		desc, ok := ds.Column(name)
		if !ok {
			continue
		}
		switch {
		case desc.Type == dataset.TypeNumber:
			numeric = append(numeric, name)
		case desc.Type.IsCategorical():
			categorical = append(categorical, name)
		}
	}

	var configs []analysis.ChartConfig

	if len(categorical) > 0 {
		freqs := frequencies(ds, categorical[0])
		bar := analysis.ChartConfig{
			Type:  analysis.ChartBar,
			Title: fmt.Sprintf("Top values of %s", categorical[0]),
			XAxis: categorical[0],
			YAxis: "count",
			Data:  topN(freqs, barTopN),
		}
		bar.Explanation = explainBar(bar)
		pie := analysis.ChartConfig{
			Type:  analysis.ChartPie,
			Title: fmt.Sprintf("Distribution of %s", categorical[0]),
			Data:  topN(freqs, pieTopN),
		}
		pie.Explanation = explainPie(pie)
		configs = append(configs, bar, pie)
	}

	if len(numeric) > 0 {
		area := trendChart(ds, numeric[0])
		area.Explanation = explainTrend(area)

		histColumn := numeric[0]
		if len(numeric) >= 2 {
			histColumn = numeric[1]
		}
		hist := histogramChart(ds, histColumn)
		hist.Explanation = explainHistogram(hist)
		configs = append(configs, area, hist)
	}

	if len(numeric) >= 2 && (analysisType == "correlation" || analysisType == "regression") {
		configs = append(configs, scatterChart(ds, numeric[0], numeric[1]))
	}

	return configs
}

// frequencies runs the single frequency pass over all rows for a column.
// Ordering is first-encountered; null cells count under the Unknown label.
func frequencies(ds *dataset.Dataset, column string) []analysis.ChartPoint {
	order := make([]string, 0)
	counts := make(map[string]int)
	for _, row := range ds.Rows {
		label := unknownLabel
		if cell := row[column]; !cell.IsNull() {
			label = cell.Display()
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	points := make([]analysis.ChartPoint, 0, len(order))
	for _, label := range order {
		points = append(points, analysis.ChartPoint{Name: label, Value: float64(counts[label])})
	}
	// Descending frequency; the stable sort keeps first-encountered order
	// for ties.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	return points
}

func topN(points []analysis.ChartPoint, n int) []analysis.ChartPoint {
	if len(points) > n {
		points = points[:n]
	}
	out := make([]analysis.ChartPoint, len(points))
	copy(out, points)
	return out
}

// trendChart plots the first trendRows values of a numeric column against
// row index. Not a true time series; the x-axis is positional.
func trendChart(ds *dataset.Dataset, column string) analysis.ChartConfig {
	limit := len(ds.Rows)
	if limit > trendRows {
		limit = trendRows
	}
	points := make([]analysis.ChartPoint, 0, limit)
	for i := 0; i < limit; i++ {
		if v, ok := ds.Rows[i][column].Float(); ok {
			points = append(points, analysis.ChartPoint{Name: strconv.Itoa(i + 1), Value: v})
		}
	}
	return analysis.ChartConfig{
		Type:  analysis.ChartArea,
		Title: fmt.Sprintf("%s over first %d rows", column, limit),
		XAxis: "row",
		YAxis: column,
		Data:  points,
	}
}

func histogramChart(ds *dataset.Dataset, column string) analysis.ChartConfig {
	values := ds.NumericValues(column)
	cfg := analysis.ChartConfig{
		Type:  analysis.ChartHistogram,
		Title: fmt.Sprintf("Distribution of %s", column),
		XAxis: column,
		YAxis: "count",
	}
	if len(values) == 0 {
		return cfg
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	binSize := (max - min) / float64(histogramBin)
	if binSize == 0 {
		cfg.Data = []analysis.ChartPoint{{
			Name:  fmt.Sprintf("%.1f", min),
			Value: float64(len(values)),
		}}
		return cfg
	}

	bins := make([]int, histogramBin)
	for _, v := range values {
		idx := int((v - min) / binSize)
		// v == max lands one past the end; clamp into the last bin so the
		// reported frequencies include it.
		if idx >= histogramBin {
			idx = histogramBin - 1
		}
		bins[idx]++
	}

	points := make([]analysis.ChartPoint, histogramBin)
	for i, count := range bins {
		lo := min + float64(i)*binSize
		points[i] = analysis.ChartPoint{
			Name:  fmt.Sprintf("%.1f-%.1f", lo, lo+binSize),
			Value: float64(count),
		}
	}
	cfg.Data = points
	return cfg
}

func scatterChart(ds *dataset.Dataset, xColumn, yColumn string) analysis.ChartConfig {
	x := ds.AlignedSeries(xColumn)
	y := ds.AlignedSeries(yColumn)
	points, reg := relate.ScatterData(x, y)
	corr := relate.Correlate(xColumn, yColumn, x, y)
	cfg := analysis.ChartConfig{
		Type:        analysis.ChartScatter,
		Title:       fmt.Sprintf("%s vs %s", xColumn, yColumn),
		XAxis:       xColumn,
		YAxis:       yColumn,
		Data:        points,
		Regression:  &reg,
		Correlation: &corr,
	}
	cfg.Explanation = explainScatter(cfg)
	return cfg
}
