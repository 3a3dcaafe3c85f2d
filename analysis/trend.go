package analysis

import (
	"math"
)

// rollingMeanCentered computes a centered moving average of values with
// the given window size. The window at position i covers the in-bounds
// neighborhood [i-window/2, i+window/2]; NaN samples are skipped. A
// position produces a value only when at least minPeriods samples are
// available, otherwise it stays 0.
func rollingMeanCentered(values []float64, window, minPeriods int) []float64 {
	n := len(values)
	out := make([]float64, n)
	half := window / 2

	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}

		sum := float64(0)
		count := 0
		for j := lo; j <= hi; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}
		if count >= minPeriods {
			out[i] = sum / float64(count)
		}
	}

	return out
}

// firstDifference returns values[i] - values[i-1]. The first element has
// no predecessor and is NaN, which fails every ordered comparison the
// peak scan makes against it.
func firstDifference(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(out) > 0 {
		out[0] = math.NaN()
	}
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// argminRange returns the position of the minimum value within [lo, hi]
// inclusive. Ties resolve to the earliest occurrence.
func argminRange(values []float64, lo, hi int) int {
	minIdx := lo
	for j := lo + 1; j <= hi; j++ {
		if values[j] < values[minIdx] {
			minIdx = j
		}
	}
	return minIdx
}
