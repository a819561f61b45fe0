// Package insights is a deterministic rule engine over column statistics.
// Rules run in a fixed order and columns in dataset order, and insight ids
// derive from rule and column names, so an unchanged input always yields an
// identical ordered batch.
package insights

import (
	"fmt"
	"math"
	"strings"

	"datastory/domain/analysis"
	"datastory/domain/core"
	"datastory/domain/dataset"
)

const (
	missingInfoPct  = 10.0
	missingWarnPct  = 30.0
	missingCapPct   = 40.0
	highCVPct       = 100.0
	stableCVPct     = 10.0
	stableMinCount  = 100
	wideRangePct    = 200.0
	segmentMaxCard  = 10
	segmentMinCount = 50
	largeSampleRows = 1000
	smallSampleRows = 100
	readyNumericMin = 3
)

// Generate evaluates every rule against the summaries and the dataset.
// Summaries are expected in dataset column order.
func Generate(ds *dataset.Dataset, summaries []analysis.StatSummary) []analysis.ActionableInsight {
	var out []analysis.ActionableInsight

	for _, s := range summaries {
		if insight, ok := missingDataRule(ds, s); ok {
			out = append(out, insight)
		}
	}
	for _, s := range summaries {
		if insight, ok := variabilityRule(s); ok {
			out = append(out, insight)
		}
	}
	for _, s := range summaries {
		if insight, ok := rangeRule(s); ok {
			out = append(out, insight)
		}
	}
	for _, s := range summaries {
		if insight, ok := lowCardinalityRule(s); ok {
			out = append(out, insight)
		}
	}
	if insight, ok := sampleSizeRule(ds); ok {
		out = append(out, insight)
	}
	if insight, ok := correlationReadinessRule(summaries); ok {
		out = append(out, insight)
	}
	return out
}

func missingDataRule(ds *dataset.Dataset, s analysis.StatSummary) (analysis.ActionableInsight, bool) {
	if ds.RowCount == 0 {
		return analysis.ActionableInsight{}, false
	}
	nullPct := float64(s.NullCount) / float64(ds.RowCount) * 100
	if nullPct <= missingInfoPct {
		return analysis.ActionableInsight{}, false
	}
	severity := analysis.SeverityInfo
	if nullPct > missingWarnPct {
		severity = analysis.SeverityWarning
	}
	impact := int(math.Min(nullPct, missingCapPct))
	return analysis.ActionableInsight{
		Insight: analysis.Insight{
			ID:             "null-" + s.Column,
			Type:           analysis.InsightPattern,
			Title:          fmt.Sprintf("Missing data in %s", s.Column),
			Description:    fmt.Sprintf("%.1f%% of %s values are missing (%d of %d rows).", nullPct, s.Column, s.NullCount, ds.RowCount),
			Severity:       severity,
			RelatedColumns: []string{s.Column},
		},
		WhyItMatters: "Gaps this large bias averages and weaken any model trained on the column.",
		Action:       fmt.Sprintf("Backfill or impute %s, or exclude the column from sensitive analyses.", s.Column),
		Impact:       impact,
	}, true
}

func variabilityRule(s analysis.StatSummary) (analysis.ActionableInsight, bool) {
	if !s.IsNumeric || s.Mean == 0 {
		return analysis.ActionableInsight{}, false
	}
	cv := core.SafeDiv(s.Std, math.Abs(s.Mean)) * 100
	if cv > highCVPct {
		return analysis.ActionableInsight{
			Insight: analysis.Insight{
				ID:             "variability-" + s.Column,
				Type:           analysis.InsightOutlier,
				Title:          fmt.Sprintf("High variability in %s", s.Column),
				Description:    fmt.Sprintf("%s has a coefficient of variation of %.0f%%, suggesting outliers or mixed populations.", s.Column, cv),
				Severity:       analysis.SeverityWarning,
				RelatedColumns: []string{s.Column},
			},
			WhyItMatters: "Extreme spread hides the typical value and can dominate totals.",
			Action:       fmt.Sprintf("Inspect the tails of %s for outliers before aggregating.", s.Column),
			Impact:       25,
		}, true
	} else if cv < stableCVPct && s.Count > stableMinCount {
		return analysis.ActionableInsight{
			Insight: analysis.Insight{
				ID:             "stability-" + s.Column,
				Type:           analysis.InsightPattern,
				Title:          fmt.Sprintf("Stable metric: %s", s.Column),
				Description:    fmt.Sprintf("%s varies by only %.1f%% around its mean over %d values.", s.Column, cv, s.Count),
				Severity:       analysis.SeveritySuccess,
				RelatedColumns: []string{s.Column},
			},
			WhyItMatters: "Low, consistent variation makes this column a reliable baseline.",
			Action:       fmt.Sprintf("Use %s as a benchmark when comparing segments.", s.Column),
			Impact:       10,
		}, true
	}
	return analysis.ActionableInsight{}, false
}

func rangeRule(s analysis.StatSummary) (analysis.ActionableInsight, bool) {
	if !s.IsNumeric {
		return analysis.ActionableInsight{}, false
	}
	spread := core.SafeDiv(s.Max-s.Min, math.Abs(s.Mean)) * 100
	if spread <= wideRangePct {
		return analysis.ActionableInsight{}, false
	}
	return analysis.ActionableInsight{
		Insight: analysis.Insight{
			ID:             "range-" + s.Column,
			Type:           analysis.InsightTrend,
			Title:          fmt.Sprintf("Wide range in %s", s.Column),
			Description:    fmt.Sprintf("%s spans %.2f to %.2f, over twice its mean of %.2f.", s.Column, s.Min, s.Max, s.Mean),
			Severity:       analysis.SeverityInfo,
			RelatedColumns: []string{s.Column},
		},
		WhyItMatters: "A wide operating range often marks distinct regimes worth analyzing separately.",
		Action:       fmt.Sprintf("Band %s into ranges and compare the bands' behavior.", s.Column),
		Impact:       15,
	}, true
}

func lowCardinalityRule(s analysis.StatSummary) (analysis.ActionableInsight, bool) {
	if s.IsNumeric || s.UniqueCount >= segmentMaxCard || s.Count <= segmentMinCount {
		return analysis.ActionableInsight{}, false
	}
	return analysis.ActionableInsight{
		Insight: analysis.Insight{
			ID:             "segments-" + s.Column,
			Type:           analysis.InsightPattern,
			Title:          fmt.Sprintf("Segmentation opportunity: %s", s.Column),
			Description:    fmt.Sprintf("%s has only %d distinct values over %d records, a natural grouping key.", s.Column, s.UniqueCount, s.Count),
			Severity:       analysis.SeverityInfo,
			RelatedColumns: []string{s.Column},
		},
		WhyItMatters: "Low-cardinality columns split the data into comparable cohorts.",
		Action:       fmt.Sprintf("Break the numeric metrics down by %s.", s.Column),
		Impact:       20,
	}, true
}

func sampleSizeRule(ds *dataset.Dataset) (analysis.ActionableInsight, bool) {
	switch {
	case ds.RowCount > largeSampleRows:
		return analysis.ActionableInsight{
			Insight: analysis.Insight{
				ID:          "sample-size",
				Type:        analysis.InsightPattern,
				Title:       "Large sample",
				Description: fmt.Sprintf("%d rows give the statistics solid footing.", ds.RowCount),
				Severity:    analysis.SeveritySuccess,
			},
			WhyItMatters: "Estimates from samples this size are stable under resampling.",
			Action:       "Findings here are safe to act on without gathering more data.",
			Impact:       10,
		}, true
	case ds.RowCount < smallSampleRows:
		return analysis.ActionableInsight{
			Insight: analysis.Insight{
				ID:          "sample-size",
				Type:        analysis.InsightPattern,
				Title:       "Small sample",
				Description: fmt.Sprintf("Only %d rows; treat the statistics as directional.", ds.RowCount),
				Severity:    analysis.SeverityWarning,
			},
			WhyItMatters: "Small samples swing widely; single rows can move the averages.",
			Action:       "Collect more data before committing to conclusions.",
			Impact:       30,
		}, true
	}
	return analysis.ActionableInsight{}, false
}

func correlationReadinessRule(summaries []analysis.StatSummary) (analysis.ActionableInsight, bool) {
	var numeric []string
	for _, s := range summaries {
		if s.IsNumeric {
			numeric = append(numeric, s.Column)
		}
	}
	if len(numeric) < readyNumericMin {
		return analysis.ActionableInsight{}, false
	}
	return analysis.ActionableInsight{
		Insight: analysis.Insight{
			ID:             "correlation-ready",
			Type:           analysis.InsightRecommendation,
			Title:          "Ready for correlation analysis",
			Description:    fmt.Sprintf("%d numeric columns (%s) can be cross-correlated.", len(numeric), strings.Join(numeric, ", ")),
			Severity:       analysis.SeverityInfo,
			RelatedColumns: numeric,
		},
		WhyItMatters: "Pairwise relationships often explain more than any single column.",
		Action:       "Run the correlation analysis to surface the strongest pairs.",
		Impact:       20,
	}, true
}
