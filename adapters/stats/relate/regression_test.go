package relate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegressExactFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 7, 9, 11, 13} // y = 2x + 3

	reg := Regress(x, y)
	assert.InDelta(t, 2.0, reg.Slope, 1e-9)
	assert.InDelta(t, 3.0, reg.Intercept, 1e-9)
	assert.InDelta(t, 1.0, reg.RSquared, 1e-9)
	assert.Equal(t, "y = 2.00x + 3.00", reg.Equation)
	assert.InDelta(t, 23.0, PredictAt(reg, 10), 1e-9)
}

func TestRegressNegativeIntercept(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{-1, 1, 3} // y = 2x - 1

	reg := Regress(x, y)
	assert.Equal(t, "y = 2.00x - 1.00", reg.Equation)
}

func TestRegressDegenerate(t *testing.T) {
	reg := Regress([]float64{1}, []float64{2})
	assert.Equal(t, 0.0, reg.Slope)
	assert.Equal(t, 0.0, reg.RSquared)
	assert.Equal(t, "y = 0", reg.Equation)

	// Constant predictor: flat line at the mean of y.
	reg = Regress([]float64{4, 4, 4}, []float64{1, 2, 3})
	assert.Equal(t, 0.0, reg.Slope)
	assert.InDelta(t, 2.0, reg.Intercept, 1e-9)
	assert.Equal(t, 0.0, reg.RSquared)
}

func TestRegressRSquaredFloored(t *testing.T) {
	// Noisy data can never report a negative rSquared.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{9, 1, 8, 2, 7, 3}
	reg := Regress(x, y)
	assert.GreaterOrEqual(t, reg.RSquared, 0.0)
	assert.LessOrEqual(t, reg.RSquared, 1.0)
	assert.False(t, math.IsNaN(reg.RSquared))
}

func TestScatterDataStride(t *testing.T) {
	n := 1000
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 2 * float64(i)
	}

	points, reg := ScatterData(x, y)
	// Stride of 5 over 1000 points yields exactly 200.
	assert.Len(t, points, 200)
	assert.InDelta(t, 2.0, reg.Slope, 1e-9)
	for _, p := range points {
		assert.InDelta(t, p.Y, p.RegressionY, 1e-6)
	}

	// Under the cap, every pair is emitted.
	points, _ = ScatterData(x[:50], y[:50])
	assert.Len(t, points, 50)
}

func TestScatterDataDeterministic(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2, 4, 6, 8, 10, 12, 14, 16}
	a, _ := ScatterData(x, y)
	b, _ := ScatterData(x, y)
	assert.Equal(t, a, b)
}
