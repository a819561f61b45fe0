package relate

import (
	"datastory/domain/analysis"
)

// maxScatterPoints caps the number of emitted scatter points. Above the
// cap the valid pairs are subsampled by a fixed integer stride, which is
// deterministic for a given input order, unlike random sampling.
const maxScatterPoints = 200

// ScatterData pairs the valid (x, y) rows, fits the regression, and emits
// chart points carrying both the raw y and the regression-predicted y at
// that x.
func ScatterData(x, y []float64) ([]analysis.ChartPoint, analysis.RegressionResult) {
	xs, ys := FilterPairs(x, y)
	reg := regressFiltered(xs, ys)

	stride := 1
	if len(xs) > maxScatterPoints {
		stride = len(xs) / maxScatterPoints
	}

	points := make([]analysis.ChartPoint, 0, maxScatterPoints+1)
	for i := 0; i < len(xs); i += stride {
		points = append(points, analysis.ChartPoint{
			X:           xs[i],
			Y:           ys[i],
			RegressionY: PredictAt(reg, xs[i]),
		})
	}
	return points, reg
}
