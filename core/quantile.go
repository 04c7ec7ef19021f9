package core

import (
	"math"
	"slices"
)

// quantile computes the value at quantile q over the given values using
// linear interpolation between the two nearest ranks. q is clamped to
// [0, 1]. Returns NaN for an empty input.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	q = math.Min(math.Max(q, 0), 1)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
