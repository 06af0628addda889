// Package stats holds the closed-form statistics used when model output
// cannot be decoded.
package stats

import "math"

// Mean calculates the arithmetic mean of values. It returns 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance calculates the sample variance (n-1 denominator).
// Fewer than two values yield 0.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return sumSquaredDiff / float64(len(values)-1)
}

// StdDev calculates the sample standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// ZScore returns |v - mean| / stdDev. A zero, negative or non-finite stdDev
// yields 0 so callers never see NaN or Inf.
func ZScore(v, mean, stdDev float64) float64 {
	if stdDev <= 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return 0
	}
	z := math.Abs(v-mean) / stdDev
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0
	}
	return z
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
