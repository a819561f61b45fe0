package charts

import (
	"fmt"
	"strings"

	"datastory/domain/analysis"
	"datastory/domain/core"
)

// Explanation text is purely presentational: each function derives its
// sentences from data already present in the ChartConfig, never new
// statistics.

func explainBar(cfg analysis.ChartConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}
	total := 0.0
	for _, p := range cfg.Data {
		total += p.Value
	}
	lead := cfg.Data[0]
	share := core.SafeDiv(lead.Value, total) * 100
	return fmt.Sprintf("Shows the %d most frequent values of %s, covering %.0f records. %q leads with %.1f%% of the charted total.",
		len(cfg.Data), cfg.XAxis, total, lead.Name, share)
}

func explainPie(cfg analysis.ChartConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}
	total := 0.0
	for _, p := range cfg.Data {
		total += p.Value
	}
	top := cfg.Data
	if len(top) > 3 {
		top = top[:3]
	}
	parts := make([]string, len(top))
	for i, p := range top {
		parts[i] = fmt.Sprintf("%s (%.1f%%)", p.Name, core.SafeDiv(p.Value, total)*100)
	}
	return fmt.Sprintf("Share of the top categories: %s.", strings.Join(parts, ", "))
}

func explainTrend(cfg analysis.ChartConfig) string {
	if len(cfg.Data) < 2 {
		return ""
	}
	first := cfg.Data[0].Value
	last := cfg.Data[len(cfg.Data)-1].Value
	direction := "held steady"
	if last > first {
		direction = "trended up"
	} else if last < first {
		direction = "trended down"
	}
	change := core.SafeDiv(last-first, absf(first)) * 100
	return fmt.Sprintf("%s %s across the charted rows (%.1f%% change from first to last value).",
		cfg.YAxis, direction, change)
}

func explainHistogram(cfg analysis.ChartConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}
	peak := cfg.Data[0]
	total := 0.0
	for _, p := range cfg.Data {
		total += p.Value
		if p.Value > peak.Value {
			peak = p
		}
	}
	return fmt.Sprintf("Distribution of %s across %d bins; the peak bin %s holds %.0f of %.0f values.",
		cfg.XAxis, len(cfg.Data), peak.Name, peak.Value, total)
}

func explainScatter(cfg analysis.ChartConfig) string {
	if cfg.Correlation == nil || cfg.Regression == nil {
		return ""
	}
	return fmt.Sprintf("%s Fitted line: %s (R² = %.2f).",
		cfg.Correlation.Interpretation, cfg.Regression.Equation, cfg.Regression.RSquared)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
