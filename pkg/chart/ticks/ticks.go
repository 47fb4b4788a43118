// Package ticks generates labeled tick positions along a scale.
//
// The axis renderer treats this package as a collaborator: it hands over a
// scale and tick options and gets back an ordered sequence of pixel-space
// tick descriptors. Step clamping (MinStep/MaxStep) happens here, never in
// the axis geometry itself.
package ticks

import (
	"math"
	"strconv"

	"github.com/chartkit/chartkit/pkg/chart/scale"
)

// Tick is one labeled position along an axis.
// An empty Label means the tick renders its mark but no text.
type Tick struct {
	Label       string  // formatted value, empty for unlabeled ticks
	Offset      float64 // pixel offset of the tick mark along the axis
	LabelOffset float64 // label offset relative to the tick mark, 0 for continuous scales
}

// Options controls tick generation.
type Options struct {
	Count     int                  // desired tick count, <= 0 means 5
	MinStep   float64              // lower bound on the chosen step, 0 to ignore
	MaxStep   float64              // upper bound on the chosen step, 0 to ignore
	Formatter func(float64) string // nil uses the shortest decimal representation
}

// DefaultCount is the tick count used when Options.Count is unset.
const DefaultCount = 5

// Generate produces ticks for s at round domain values, ordered by position.
// It returns nil when the domain cannot be subdivided (empty or non-finite).
func Generate(s scale.Scale, opts Options) []Tick {
	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}

	lo, hi := s.Domain()
	if lo > hi {
		lo, hi = hi, lo
	}

	step := scale.Step(lo, hi, count)
	if opts.MinStep > 0 && step < opts.MinStep {
		step = opts.MinStep
	}
	if opts.MaxStep > 0 && step > opts.MaxStep {
		step = opts.MaxStep
	}
	if step <= 0 {
		return nil
	}

	format := opts.Formatter
	if format == nil {
		format = stepFormatter(step)
	}

	var out []Tick
	for i := 0; ; i++ {
		// Snap to step multiples to avoid accumulated float error.
		v := (ceilDiv(lo, step) + float64(i)) * step
		if v > hi+step/1e6 {
			break
		}
		out = append(out, Tick{
			Label:  format(v),
			Offset: s.Apply(v),
		})
	}
	return out
}

// ceilDiv returns the smallest integer i (as float64) with i*step >= v.
func ceilDiv(v, step float64) float64 {
	i := float64(int64(v / step))
	if i*step < v-step/1e6 {
		i++
	}
	return i
}

// stepFormatter returns the default formatter: fixed-point notation with
// just enough fractional digits to distinguish values one step apart.
func stepFormatter(step float64) func(float64) string {
	prec := 0
	if step > 0 {
		if p := -math.Floor(math.Log10(step)); p > 0 {
			prec = int(p)
		}
	}
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
}
