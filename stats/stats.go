// Package stats summarizes lists of metric values.
package stats

import (
	"math"
	"slices"
	"strconv"
)

// Digits is the number of decimal digits metric values are rounded to.
const Digits = 4

// Summary describes a list of metric values.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes count, mean, median, population standard deviation,
// minimum and maximum of values. It reports false for an empty list.
// values is not modified.
func Summarize(values []float64) (Summary, bool) {
	n := len(values)
	if n == 0 {
		return Summary{}, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Mean:   Round(mean),
		Median: Round(median),
		StdDev: Round(math.Sqrt(sq / float64(n))),
		Min:    Round(sorted[0]),
		Max:    Round(sorted[n-1]),
	}, true
}

// Round rounds the exact binary value of v to Digits decimal digits, ties
// to even, so 1.0/32 becomes 0.0312. Infinities and NaN are returned unchanged.
func Round(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', Digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}
