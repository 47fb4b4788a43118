package scale

import "math"

// Linear is an affine mapping from a numeric domain onto a pixel range.
// The range may be descending (typical for Y axes, where larger values
// map to smaller pixel offsets).
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Apply maps a domain value to its pixel offset.
// A degenerate domain (d0 == d1) maps every value to r0.
func (s *Linear) Apply(v float64) float64 {
	if s.d0 == s.d1 {
		return s.r0
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Range returns the pixel bounds of the scale output.
func (s *Linear) Range() (min, max float64) {
	return s.r0, s.r1
}

// Domain returns the data bounds of the scale input.
func (s *Linear) Domain() (lo, hi float64) {
	return s.d0, s.d1
}

// Nice returns a copy of the scale with its domain expanded outward to
// round step boundaries, sized for approximately count ticks.
func (s *Linear) Nice(count int) *Linear {
	lo, hi := s.d0, s.d1
	flipped := lo > hi
	if flipped {
		lo, hi = hi, lo
	}

	step := Step(lo, hi, count)
	if step <= 0 {
		return NewLinear(s.d0, s.d1, s.r0, s.r1)
	}

	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	if flipped {
		lo, hi = hi, lo
	}
	return NewLinear(lo, hi, s.r0, s.r1)
}

// Ensure Linear implements Scale.
var _ Scale = (*Linear)(nil)
