// Package chart defines the chart document model: drawing bounds, per-axis
// settings keyed by axis identifier, and data series.
//
// A Definition is plain data: it carries no scales, formatters or renderers.
// The axis package interprets it — settings here form the middle layer of
// the configuration precedence chain (built-in defaults < chart settings <
// explicit caller props). Definitions round-trip through JSON (HTTP API),
// BSON (Mongo store) and TOML (definition files).
package chart

import (
	"github.com/chartkit/chartkit/pkg/errors"
)

// Axis position values. The axis package parses these into its own type;
// the document model keeps them as strings so stored definitions stay
// independent of rendering code.
const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// Bounds is the pixel rectangle available for plotting, excluding
// axis and margin space.
type Bounds struct {
	Left   float64 `json:"left" bson:"left" toml:"left"`
	Top    float64 `json:"top" bson:"top" toml:"top"`
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
}

// ScaleSettings describes the data domain an axis scale maps from.
// The pixel range is derived from the drawing bounds at render time.
type ScaleSettings struct {
	Min float64 `json:"min" bson:"min" toml:"min"`
	Max float64 `json:"max" bson:"max" toml:"max"`
}

// AxisSettings is the chart-level configuration layer for one axis.
// Zero values mean "unset": numeric fields fall through to built-in
// defaults, boolean flags use pointers so false can be stated explicitly.
type AxisSettings struct {
	Scale         ScaleSettings `json:"scale" bson:"scale" toml:"scale"`
	Position      string        `json:"position,omitempty" bson:"position,omitempty" toml:"position"`
	Label         string        `json:"label,omitempty" bson:"label,omitempty" toml:"label"`
	TickNumber    int           `json:"tick_number,omitempty" bson:"tick_number,omitempty" toml:"tick_number"`
	TickMinStep   float64       `json:"tick_min_step,omitempty" bson:"tick_min_step,omitempty" toml:"tick_min_step"`
	TickMaxStep   float64       `json:"tick_max_step,omitempty" bson:"tick_max_step,omitempty" toml:"tick_max_step"`
	TickSize      float64       `json:"tick_size,omitempty" bson:"tick_size,omitempty" toml:"tick_size"`
	TickFontSize  float64       `json:"tick_font_size,omitempty" bson:"tick_font_size,omitempty" toml:"tick_font_size"`
	LabelFontSize float64       `json:"label_font_size,omitempty" bson:"label_font_size,omitempty" toml:"label_font_size"`
	DisableLine   *bool         `json:"disable_line,omitempty" bson:"disable_line,omitempty" toml:"disable_line"`
	DisableTicks  *bool         `json:"disable_ticks,omitempty" bson:"disable_ticks,omitempty" toml:"disable_ticks"`
}

// Bool returns a pointer to b, for filling optional settings flags.
func Bool(b bool) *bool { return &b }

// Point is one data sample in a series.
type Point struct {
	X float64 `json:"x" bson:"x" toml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y"`
}

// Series is a named sequence of data points bound to one axis.
type Series struct {
	Name   string  `json:"name" bson:"name" toml:"name"`
	AxisID string  `json:"axis_id" bson:"axis_id" toml:"axis_id"`
	Points []Point `json:"points" bson:"points" toml:"points"`
}

// Definition is a stored chart document.
type Definition struct {
	ID     string                  `json:"id" bson:"_id" toml:"id"`
	Title  string                  `json:"title,omitempty" bson:"title,omitempty" toml:"title"`
	Bounds Bounds                  `json:"bounds" bson:"bounds" toml:"bounds"`
	Axes   map[string]AxisSettings `json:"axes" bson:"axes" toml:"axes"`
	Series []Series                `json:"series,omitempty" bson:"series,omitempty" toml:"series"`
}

// Axis looks up the settings for the given axis identifier.
// An absent identifier is a caller error, not a defaulting case.
func (d *Definition) Axis(id string) (AxisSettings, error) {
	set, ok := d.Axes[id]
	if !ok {
		return AxisSettings{}, errors.New(errors.ErrCodeAxisNotFound, "chart %q has no axis %q", d.ID, id)
	}
	return set, nil
}

// Validate checks that the definition is renderable.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return errors.New(errors.ErrCodeInvalidDefinition, "definition has no id")
	}
	if d.Bounds.Width <= 0 || d.Bounds.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidBounds, "bounds must have positive width and height, got %gx%g",
			d.Bounds.Width, d.Bounds.Height)
	}
	if len(d.Axes) == 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "definition %q has no axes", d.ID)
	}
	for id, set := range d.Axes {
		switch set.Position {
		case "", PositionLeft, PositionRight:
		default:
			return errors.New(errors.ErrCodeInvalidPosition, "axis %q: position must be %q or %q, got %q",
				id, PositionLeft, PositionRight, set.Position)
		}
	}
	for _, s := range d.Series {
		if s.AxisID == "" {
			// A series with no points never reaches an axis lookup.
			if len(s.Points) == 0 {
				continue
			}
			return errors.New(errors.ErrCodeInvalidDefinition, "series %q has points but no axis_id", s.Name)
		}
		if _, ok := d.Axes[s.AxisID]; !ok {
			return errors.New(errors.ErrCodeAxisNotFound, "series %q references unknown axis %q", s.Name, s.AxisID)
		}
	}
	return nil
}
