package core

import "math"

// SafeDiv divides a by b, returning 0 when the divisor is zero.
// Every ratio in the statistics pipeline goes through this so that
// division by zero yields zero, never NaN or Inf.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Round2 rounds to 2 decimal places for display values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampFloor returns v, raised to floor if it is below it.
func ClampFloor(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

// Clamp restricts v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite reports whether v is a usable number (not NaN, not Inf).
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
