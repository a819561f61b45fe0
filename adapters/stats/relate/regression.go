package relate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"datastory/domain/analysis"
	"datastory/domain/core"
)

// Regress fits y = slope*x + intercept by least squares over the finite
// pairs of two aligned series. Degenerate inputs return zero results
// rather than NaN: fewer than 2 valid pairs yields the zero fit, a
// constant x yields a flat line at meanY, and rSquared is floored at 0.
func Regress(x, y []float64) analysis.RegressionResult {
	xs, ys := FilterPairs(x, y)
	return regressFiltered(xs, ys)
}

func regressFiltered(xs, ys []float64) analysis.RegressionResult {
	if len(xs) < 2 {
		return analysis.RegressionResult{Equation: "y = 0"}
	}

	if constant(xs) {
		// Least squares is undefined for a constant predictor; report a
		// flat line with no explained variance.
		intercept := mean(ys)
		return analysis.RegressionResult{
			Intercept: intercept,
			Equation:  equation(0, intercept),
		}
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	rSquared := 0.0
	if !constant(ys) {
		rSquared = stat.RSquared(xs, ys, nil, intercept, slope)
		// A fit worse than the mean can push the formula negative, and
		// rounding on an exact fit can push it past 1.
		rSquared = core.Clamp(rSquared, 0, 1)
	} else if slope == 0 {
		rSquared = 0
	}

	return analysis.RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
		Equation:  equation(slope, intercept),
	}
}

// PredictAt evaluates the fitted line at x.
func PredictAt(reg analysis.RegressionResult, x float64) float64 {
	return reg.Slope*x + reg.Intercept
}

func equation(slope, intercept float64) string {
	if intercept < 0 {
		return fmt.Sprintf("y = %.2fx - %.2f", slope, math.Abs(intercept))
	}
	return fmt.Sprintf("y = %.2fx + %.2f", slope, intercept)
}

func constant(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return false
		}
	}
	return true
}
