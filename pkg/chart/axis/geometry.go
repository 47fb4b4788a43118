package axis

import (
	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/svg"
)

// Spacing between the tick mark end and its label, and between the tick
// font box and the axis title.
const (
	tickLabelGap = 2.0
	titleGap     = 10.0
)

// RootTransform places the whole axis group at the correct edge of the
// drawing rectangle: x = Left+Width for a right axis, x = Left for a left
// axis. The vertical offset is always zero.
func (c Config) RootTransform(b chart.Bounds) string {
	x := b.Left
	if c.Position == Right {
		x = b.Left + b.Width
	}
	return svg.Translate(x, 0)
}

// TickMarkEnd returns the x coordinate the tick mark extends to, pointing
// outward from the drawing area.
func (c Config) TickMarkEnd() float64 {
	return c.Position.Sign() * c.TickSize
}

// TickLabelX returns the x coordinate of tick labels.
func (c Config) TickLabelX() float64 {
	return c.Position.Sign() * (c.TickSize + tickLabelGap)
}

// TickLabelAnchor returns the horizontal text anchor for tick labels:
// labels end at the axis on the left side and start at it on the right.
func (c Config) TickLabelAnchor() string {
	if c.Position == Right {
		return "start"
	}
	return "end"
}

// TitleReference returns the reference point of the axis title: offset
// horizontally past the tick labels, vertically centered on the drawing
// area. The title rotates about this same point.
func (c Config) TitleReference(b chart.Bounds) (x, y float64) {
	x = c.Position.Sign() * (c.TickFontSize + c.TickSize + titleGap)
	y = b.Top + b.Height/2
	return x, y
}

// TitleRotation returns the title rotation in degrees: -90 on the left,
// +90 on the right, so the text runs upward along either edge.
func (c Config) TitleRotation() float64 {
	return c.Position.Sign() * 90
}
