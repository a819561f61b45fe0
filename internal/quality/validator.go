// Package quality cross-checks the analysis outputs against the source
// rows. It recomputes a subset of the statistics independently of how they
// were produced and scores each area from 100 down with fixed penalties.
// Findings are data for the UI, never control flow.
package quality

import (
	"fmt"
	"math"
	"strings"

	"datastory/adapters/stats/relate"
	"datastory/domain/analysis"
	"datastory/domain/core"
	"datastory/domain/dataset"
)

const (
	smallSamplePenalty   = 20
	smallSampleRows      = 30
	missingErrorPct      = 30.0
	missingErrorPenalty  = 30
	missingWarnPct       = 10.0
	missingWarnPenalty   = 15
	mixedTypePenalty     = 5
	duplicatePenaltyCap  = 15.0
	duplicatePenaltyRate = 20.0
	statMismatchPenalty  = 15
	statMismatchRelTol   = 0.01
	invalidCoefPenalty   = 20
	chartTotalTolerance  = 0.10
	rsqConsistencyTol    = 0.05
	fewPairsPenalty      = 20
	fewPairsRows         = 10
	modestPairsPenalty   = 10
	modestPairsRows      = 30
	extremeCVPct         = 150.0
	extremeCVPenalty     = 10
)

// Validate produces the full quality report for one analysis run. Nothing
// is cached; the report is recomputed from the current triple on demand.
func Validate(ds *dataset.Dataset, summaries []analysis.StatSummary, charts []analysis.ChartConfig, correlations []analysis.CorrelationResult) analysis.DataQualityReport {
	mixed := mixedTypeColumns(ds)
	dupCount := duplicateRows(ds)

	statistics := validateStatistics(ds, summaries, mixed, dupCount)
	visualizations := validateVisualizations(ds, charts)
	correlationsResult := validateCorrelations(ds, charts, correlations)

	report := analysis.DataQualityReport{
		Statistics:     statistics,
		Visualizations: visualizations,
		Correlations:   correlationsResult,
		Completeness:   completeness(ds),
		Accuracy:       accuracy(summaries, mixed),
		Consistency:    consistency(ds, mixed, dupCount),
	}

	// A single weak link caps the overall score; this is a min, not an
	// average.
	overall := analysis.ValidationResult{
		Valid: statistics.Valid && visualizations.Valid && correlationsResult.Valid,
		Confidence: math.Min(statistics.Confidence,
			math.Min(visualizations.Confidence, correlationsResult.Confidence)),
	}
	for _, sub := range []analysis.ValidationResult{statistics, visualizations, correlationsResult} {
		overall.Errors = append(overall.Errors, sub.Errors...)
		overall.Warnings = append(overall.Warnings, sub.Warnings...)
		overall.Recommendations = append(overall.Recommendations, sub.Recommendations...)
	}
	report.Overall = overall
	return report
}

func validateStatistics(ds *dataset.Dataset, summaries []analysis.StatSummary, mixed []string, dupCount int) analysis.ValidationResult {
	res := analysis.ValidationResult{Valid: true, Confidence: 100}

	if ds.RowCount < smallSampleRows {
		res.Confidence -= smallSamplePenalty
		res.Warnings = append(res.Warnings, fmt.Sprintf("sample size %d is below %d rows", ds.RowCount, smallSampleRows))
		res.Recommendations = append(res.Recommendations, "collect more rows before trusting the summary statistics")
	}

	missingPct := core.SafeDiv(float64(ds.MissingCells()), float64(ds.TotalCells())) * 100
	if missingPct > missingErrorPct {
		res.Confidence -= missingErrorPenalty
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf("%.1f%% of cells are missing", missingPct))
	} else if missingPct >= missingWarnPct {
		res.Confidence -= missingWarnPenalty
		res.Warnings = append(res.Warnings, fmt.Sprintf("%.1f%% of cells are missing", missingPct))
	}

	for _, col := range mixed {
		res.Confidence -= mixedTypePenalty
		res.Warnings = append(res.Warnings, fmt.Sprintf("column %s mixes value types", col))
	}

	if dupCount > 0 {
		penalty := math.Min(core.SafeDiv(float64(dupCount), float64(ds.RowCount))*duplicatePenaltyRate, duplicatePenaltyCap)
		res.Confidence -= penalty
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d duplicate rows detected", dupCount))
	}

	// Recompute mean and std from the raw rows and hold the supplied
	// summaries to a 1% relative tolerance.
	for _, s := range summaries {
		if !s.IsNumeric || s.Count == 0 {
			continue
		}
		values := ds.NumericValues(s.Column)
		gotMean := core.Round2(meanOf(values))
		gotStd := core.Round2(populationStd(values))
		if relativeError(gotMean, s.Mean) > statMismatchRelTol {
			res.Confidence -= statMismatchPenalty
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("mean of %s reads %.2f but recomputes to %.2f", s.Column, s.Mean, gotMean))
		}
		if relativeError(gotStd, s.Std) > statMismatchRelTol {
			res.Confidence -= statMismatchPenalty
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("std of %s reads %.2f but recomputes to %.2f", s.Column, s.Std, gotStd))
		}
	}

	res.Confidence = core.ClampFloor(res.Confidence, 0)
	return res
}

func validateVisualizations(ds *dataset.Dataset, charts []analysis.ChartConfig) analysis.ValidationResult {
	res := analysis.ValidationResult{Valid: true, Confidence: 100}

	for _, cfg := range charts {
		switch cfg.Type {
		case analysis.ChartBar, analysis.ChartPie:
			total := 0.0
			for _, p := range cfg.Data {
				total += p.Value
			}
			if total > float64(ds.RowCount)*(1+chartTotalTolerance) {
				res.Confidence -= modestPairsPenalty
				res.Warnings = append(res.Warnings, fmt.Sprintf("chart %q totals %.0f values against %d source rows", cfg.Title, total, ds.RowCount))
			}
		case analysis.ChartHistogram:
			binTotal := 0.0
			for _, p := range cfg.Data {
				binTotal += p.Value
			}
			sourceCount := float64(len(ds.NumericValues(cfg.XAxis)))
			if sourceCount > 0 && math.Abs(binTotal-sourceCount) > sourceCount*chartTotalTolerance {
				res.Confidence -= modestPairsPenalty
				res.Warnings = append(res.Warnings, fmt.Sprintf("histogram %q bins %.0f of %.0f source values", cfg.Title, binTotal, sourceCount))
			}
		}
	}

	res.Confidence = core.ClampFloor(res.Confidence, 0)
	return res
}

func validateCorrelations(ds *dataset.Dataset, charts []analysis.ChartConfig, correlations []analysis.CorrelationResult) analysis.ValidationResult {
	res := analysis.ValidationResult{Valid: true, Confidence: 100}
	if len(correlations) == 0 && len(charts) == 0 {
		return res
	}

	for _, c := range correlations {
		if c.Correlation < -1 || c.Correlation > 1 {
			res.Confidence -= invalidCoefPenalty
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("correlation %s/%s is %.3f, outside [-1, 1]", c.XColumn, c.YColumn, c.Correlation))
			continue
		}
		xs, _ := relate.FilterPairs(ds.AlignedSeries(c.XColumn), ds.AlignedSeries(c.YColumn))
		switch {
		case len(xs) < fewPairsRows:
			res.Confidence -= fewPairsPenalty
			res.Warnings = append(res.Warnings, fmt.Sprintf("only %d valid pairs behind %s/%s", len(xs), c.XColumn, c.YColumn))
		case len(xs) <= modestPairsRows:
			res.Confidence -= modestPairsPenalty
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d valid pairs behind %s/%s is a thin sample", len(xs), c.XColumn, c.YColumn))
		}
	}

	for _, cfg := range charts {
		if cfg.Regression == nil {
			continue
		}
		if cfg.Regression.RSquared < 0 || cfg.Regression.RSquared > 1 {
			res.Confidence -= invalidCoefPenalty
			res.Valid = false
			res.Errors = append(res.Errors, fmt.Sprintf("R² of %q is %.3f, outside [0, 1]", cfg.Title, cfg.Regression.RSquared))
		}
		if cfg.Correlation != nil {
			r2 := cfg.Correlation.Correlation * cfg.Correlation.Correlation
			if math.Abs(cfg.Regression.RSquared-r2) > rsqConsistencyTol {
				res.Warnings = append(res.Warnings, fmt.Sprintf("R² %.3f of %q disagrees with r² %.3f", cfg.Regression.RSquared, cfg.Title, r2))
			}
		}
	}

	res.Confidence = core.ClampFloor(res.Confidence, 0)
	return res
}

func completeness(ds *dataset.Dataset) float64 {
	total := float64(ds.TotalCells())
	if total == 0 {
		return 0
	}
	return core.Round2(100 * (1 - float64(ds.MissingCells())/total))
}

func accuracy(summaries []analysis.StatSummary, mixed []string) float64 {
	score := 100.0
	score -= float64(len(mixed) * mixedTypePenalty)
	for _, s := range summaries {
		if !s.IsNumeric || s.Mean == 0 {
			continue
		}
		cv := core.SafeDiv(s.Std, math.Abs(s.Mean)) * 100
		if cv > extremeCVPct {
			score -= extremeCVPenalty
		}
	}
	return core.ClampFloor(score, 0)
}

func consistency(ds *dataset.Dataset, mixed []string, dupCount int) float64 {
	score := 100.0
	score -= math.Min(core.SafeDiv(float64(dupCount), float64(ds.RowCount))*duplicatePenaltyRate, duplicatePenaltyCap)
	score -= float64(len(mixed) * mixedTypePenalty)
	return core.ClampFloor(score, 0)
}

// mixedTypeColumns lists columns whose non-null cells span more than one
// value kind, e.g. a date column carrying unparseable text entries.
func mixedTypeColumns(ds *dataset.Dataset) []string {
	var mixed []string
	for _, col := range ds.Columns {
		kinds := make(map[dataset.CellKind]bool)
		for _, row := range ds.Rows {
			cell := row[col.Name]
			if cell.IsNull() {
				continue
			}
			kinds[cell.Kind] = true
		}
		if len(kinds) > 1 {
			mixed = append(mixed, col.Name)
		}
	}
	return mixed
}

// duplicateRows counts rows whose canonical form already appeared.
func duplicateRows(ds *dataset.Dataset) int {
	seen := make(map[string]bool, len(ds.Rows))
	dups := 0
	for _, row := range ds.Rows {
		parts := make([]string, len(ds.Columns))
		for i, col := range ds.Columns {
			parts[i] = row[col.Name].CanonicalKey()
		}
		key := strings.Join(parts, "|")
		if seen[key] {
			dups++
		} else {
			seen[key] = true
		}
	}
	return dups
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := meanOf(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func relativeError(got, want float64) float64 {
	if want == 0 {
		if got == 0 {
			return 0
		}
		return math.Abs(got)
	}
	return math.Abs(got-want) / math.Abs(want)
}
