// Package relate computes pairwise statistics between numeric columns:
// Pearson correlation, simple linear regression and scatter-chart data.
package relate

import (
	"fmt"
	"math"

	"datastory/domain/analysis"
	"datastory/domain/core"
)

// FilterPairs keeps the indices where both series hold finite values,
// preserving row order. The inputs are index-aligned with NaN marking
// missing cells.
func FilterPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if core.IsFinite(x[i]) && core.IsFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}

// Pearson computes the Pearson correlation coefficient over the finite
// pairs of two aligned series. Fewer than 2 valid pairs, or a
// zero-variance series, yields 0.
func Pearson(x, y []float64) float64 {
	xs, ys := FilterPairs(x, y)
	return pearsonFiltered(xs, ys)
}

func pearsonFiltered(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var sumXY, sumX2, sumY2 float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	denominator := math.Sqrt(sumX2 * sumY2)
	if denominator == 0 {
		return 0
	}
	// Rounding can push an exact fit a hair past ±1.
	r := sumXY / denominator
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// ClassifyStrength buckets |r| into a qualitative label.
func ClassifyStrength(r float64) analysis.Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return analysis.StrengthStrong
	case abs >= 0.4:
		return analysis.StrengthModerate
	case abs >= 0.2:
		return analysis.StrengthWeak
	default:
		return analysis.StrengthNone
	}
}

// Interpret renders a human-readable reading of r, naming direction and
// strength with the coefficient to 3 decimals.
func Interpret(xColumn, yColumn string, r float64) string {
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	strength := ClassifyStrength(r)
	if strength == analysis.StrengthNone {
		return fmt.Sprintf("No meaningful correlation (r = %.3f) between %s and %s", r, xColumn, yColumn)
	}
	return fmt.Sprintf("%s %s correlation (r = %.3f) between %s and %s",
		capitalize(string(strength)), direction, r, xColumn, yColumn)
}

// Correlate builds the full CorrelationResult for an aligned pair.
func Correlate(xColumn, yColumn string, x, y []float64) analysis.CorrelationResult {
	r := Pearson(x, y)
	return analysis.CorrelationResult{
		XColumn:        xColumn,
		YColumn:        yColumn,
		Correlation:    r,
		Interpretation: Interpret(xColumn, yColumn, r),
		Strength:       ClassifyStrength(r),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
