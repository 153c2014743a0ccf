// Package formulas holds the numeric helpers behind the analytics engine.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// SampleStdDev calculates the standard deviation with Bessel's correction (n-1 divisor).
// Fewer than two observations have no spread and yield 0.
func SampleStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return Finite(stat.StdDev(data, nil))
}

// Sum adds up a slice of values
func Sum(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += v
	}
	return total
}

// Finite replaces NaN and ±Inf with 0.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp bounds v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SafeDiv divides a by b, returning 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return Finite(a / b)
}
