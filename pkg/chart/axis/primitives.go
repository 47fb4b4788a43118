package axis

import "github.com/chartkit/chartkit/pkg/chart/svg"

// Role names for the four overridable visual roles, used as keys in
// Props.Classes.
const (
	RoleLine      = "line"
	RoleTick      = "tick"
	RoleTickLabel = "tickLabel"
	RoleTitle     = "title"
)

// LineData positions the axis line: a vertical segment at x = 0 spanning
// the scale's pixel range.
type LineData struct {
	Y1, Y2 float64
	Attrs  svg.Attrs
}

// TickData positions one tick mark, drawn from the axis line outward.
type TickData struct {
	X2    float64
	Attrs svg.Attrs
}

// TickLabelData positions one tick label inside its tick group.
type TickLabelData struct {
	X, Y   float64
	Anchor string
	Text   string
	Attrs  svg.Attrs
}

// TitleData positions the axis title, rotated about its reference point.
type TitleData struct {
	X, Y  float64
	Angle float64
	Text  string
	Attrs svg.Attrs
}

// Primitives lets callers replace individual visual primitives. Each role
// is independently overridable; nil fields fall back to the plain SVG
// defaults below.
type Primitives struct {
	Line      func(LineData) svg.Element
	Tick      func(TickData) svg.Element
	TickLabel func(TickLabelData) svg.Element
	Title     func(TitleData) svg.Element
}

// withDefaults fills nil slots with the default primitives.
func (p Primitives) withDefaults() Primitives {
	if p.Line == nil {
		p.Line = DefaultLine
	}
	if p.Tick == nil {
		p.Tick = DefaultTick
	}
	if p.TickLabel == nil {
		p.TickLabel = DefaultTickLabel
	}
	if p.Title == nil {
		p.Title = DefaultTitle
	}
	return p
}

// DefaultLine renders the axis line as a plain SVG line.
func DefaultLine(d LineData) svg.Element {
	return &svg.Line{X1: 0, Y1: d.Y1, X2: 0, Y2: d.Y2, Attrs: d.Attrs}
}

// DefaultTick renders a tick mark as a plain SVG line.
func DefaultTick(d TickData) svg.Element {
	return &svg.Line{X1: 0, Y1: 0, X2: d.X2, Y2: 0, Attrs: d.Attrs}
}

// DefaultTickLabel renders a tick label as vertically centered text.
func DefaultTickLabel(d TickLabelData) svg.Element {
	return &svg.Text{
		X:        d.X,
		Y:        d.Y,
		Anchor:   d.Anchor,
		Baseline: "central",
		Content:  d.Text,
		Attrs:    d.Attrs,
	}
}

// DefaultTitle renders the axis title rotated about its reference point.
func DefaultTitle(d TitleData) svg.Element {
	return &svg.Text{
		X:         d.X,
		Y:         d.Y,
		Anchor:    "middle",
		Transform: svg.Rotate(d.Angle, d.X, d.Y),
		Content:   d.Text,
		Attrs:     d.Attrs,
	}
}
