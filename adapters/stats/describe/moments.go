package describe

import "math"

// Skewness computes the adjusted Fisher-Pearson coefficient of skewness.
// Requires n >= 3 and a non-zero standard deviation; otherwise 0.
func Skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	skewness := sumCubed / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// Kurtosis computes excess kurtosis (normal distribution = 0).
// Requires n >= 4 and a non-zero standard deviation; otherwise 0.
func Kurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	return sumFourth/n - 3
}
