// Package scale maps data-domain values onto pixel ranges.
//
// A Scale is the bridge between chart data and drawing coordinates. Axis
// rendering only needs the mapping function and the pixel range; tick
// generation additionally reads the domain to pick round step values.
package scale

import "math"

// Scale maps values from a data domain onto a pixel range.
type Scale interface {
	// Apply maps a domain value to its pixel offset.
	Apply(v float64) float64
	// Range returns the pixel bounds of the scale output.
	Range() (min, max float64)
	// Domain returns the data bounds of the scale input.
	Domain() (lo, hi float64)
}

// Step picks a round tick step (1, 2 or 5 times a power of ten) so that
// the interval [lo, hi] is covered by approximately count steps.
// It returns 0 for empty or non-finite intervals.
func Step(lo, hi float64, count int) float64 {
	if count <= 0 {
		count = 5
	}
	span := hi - lo
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}

	raw := span / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch residual := raw / mag; {
	case residual > 5:
		return mag * 10
	case residual > 2:
		return mag * 5
	case residual > 1:
		return mag * 2
	default:
		return mag
	}
}
