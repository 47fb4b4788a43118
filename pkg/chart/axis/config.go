// Package axis renders a single Y axis: tick marks, tick labels, an axis
// line and an optional axis title, positioned left or right of a drawing
// area.
//
// Rendering is split into three pure stages:
//   - Resolve merges built-in defaults, chart-level settings and explicit
//     caller props into one Config (increasing precedence, in that order)
//   - Config methods compute pixel-space geometry from the drawing bounds
//   - Render composes the geometry into an svg element tree
//
// Every stage takes its inputs explicitly; nothing is read from ambient
// state, and nothing is cached between calls.
package axis

import (
	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/svg"
	"github.com/chartkit/chartkit/pkg/chart/ticks"
	"github.com/chartkit/chartkit/pkg/errors"
)

// Position places the axis relative to the drawing area.
type Position string

// Valid positions.
const (
	Left  Position = "left"
	Right Position = "right"
)

// Sign returns +1 for a right axis and -1 for a left axis. Every horizontal
// offset (tick mark length, label x, title x, title rotation) is multiplied
// by it so the axis points outward on either side.
func (p Position) Sign() float64 {
	if p == Right {
		return 1
	}
	return -1
}

// ParsePosition converts a stored position string into a Position.
func ParsePosition(s string) (Position, error) {
	switch s {
	case string(Left):
		return Left, nil
	case string(Right):
		return Right, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPosition, "position must be %q or %q, got %q", Left, Right, s)
	}
}

// Built-in configuration defaults.
const (
	DefaultTickFontSize  = 12.0
	DefaultLabelFontSize = 14.0
	DefaultTickSize      = 6.0

	// DisabledTickSize replaces any configured tick size when tick marks
	// are disabled, so labels stay close to the axis line.
	DisabledTickSize = 4.0
)

// Props are explicit caller overrides, the highest-precedence configuration
// layer. Zero values mean "unset"; boolean flags and the title label use
// pointers so false and empty can be stated explicitly.
type Props struct {
	Position     Position
	DisableLine  *bool
	DisableTicks *bool

	TickFontSize  float64
	LabelFontSize float64
	TickSize      float64

	Label *string

	// Forwarded to tick generation, not consumed by geometry.
	TickNumber  int
	TickMinStep float64
	TickMaxStep float64
	Formatter   func(float64) string

	// Presentation overrides. Stroke and Fill replace the default paint;
	// Classes maps a role name (RoleLine, RoleTick, RoleTickLabel,
	// RoleTitle) to a class attribute; the attribute maps are merged on
	// top of computed defaults, caller values winning on conflicts.
	Stroke  string
	Fill    string
	Classes map[string]string

	LineAttrs      svg.Attrs
	TickAttrs      svg.Attrs
	TickLabelAttrs svg.Attrs
	TitleAttrs     svg.Attrs

	// Primitives replaces individual visual primitives.
	Primitives Primitives
}

// Config is one resolved axis configuration. It is rebuilt for every render
// pass and never mutated afterwards.
type Config struct {
	Position     Position
	DisableLine  bool
	DisableTicks bool

	TickFontSize  float64
	LabelFontSize float64
	TickSize      float64

	Label string

	TickNumber  int
	TickMinStep float64
	TickMaxStep float64
	Formatter   func(float64) string

	Stroke  string
	Fill    string
	Classes map[string]string

	LineAttrs      svg.Attrs
	TickAttrs      svg.Attrs
	TickLabelAttrs svg.Attrs
	TitleAttrs     svg.Attrs

	Primitives Primitives
}

// Defaults returns the built-in configuration: a left axis with visible
// line and ticks.
func Defaults() Config {
	return Config{
		Position:      Left,
		TickFontSize:  DefaultTickFontSize,
		LabelFontSize: DefaultLabelFontSize,
		TickSize:      DefaultTickSize,
	}
}

// Resolve overlays, in increasing precedence, built-in defaults, then the
// chart-level axis settings, then explicit caller props. It is a pure
// function of its inputs.
//
// TickSize is forced to DisabledTickSize whenever tick marks end up
// disabled, overriding any configured value.
func Resolve(settings *chart.AxisSettings, props Props) (Config, error) {
	cfg := Defaults()

	if settings != nil {
		if settings.Position != "" {
			pos, err := ParsePosition(settings.Position)
			if err != nil {
				return Config{}, err
			}
			cfg.Position = pos
		}
		if settings.DisableLine != nil {
			cfg.DisableLine = *settings.DisableLine
		}
		if settings.DisableTicks != nil {
			cfg.DisableTicks = *settings.DisableTicks
		}
		if settings.TickFontSize > 0 {
			cfg.TickFontSize = settings.TickFontSize
		}
		if settings.LabelFontSize > 0 {
			cfg.LabelFontSize = settings.LabelFontSize
		}
		if settings.TickSize > 0 {
			cfg.TickSize = settings.TickSize
		}
		if settings.Label != "" {
			cfg.Label = settings.Label
		}
		if settings.TickNumber > 0 {
			cfg.TickNumber = settings.TickNumber
		}
		if settings.TickMinStep > 0 {
			cfg.TickMinStep = settings.TickMinStep
		}
		if settings.TickMaxStep > 0 {
			cfg.TickMaxStep = settings.TickMaxStep
		}
	}

	if props.Position != "" {
		if _, err := ParsePosition(string(props.Position)); err != nil {
			return Config{}, err
		}
		cfg.Position = props.Position
	}
	if props.DisableLine != nil {
		cfg.DisableLine = *props.DisableLine
	}
	if props.DisableTicks != nil {
		cfg.DisableTicks = *props.DisableTicks
	}
	if props.TickFontSize > 0 {
		cfg.TickFontSize = props.TickFontSize
	}
	if props.LabelFontSize > 0 {
		cfg.LabelFontSize = props.LabelFontSize
	}
	if props.TickSize > 0 {
		cfg.TickSize = props.TickSize
	}
	if props.Label != nil {
		cfg.Label = *props.Label
	}
	if props.TickNumber > 0 {
		cfg.TickNumber = props.TickNumber
	}
	if props.TickMinStep > 0 {
		cfg.TickMinStep = props.TickMinStep
	}
	if props.TickMaxStep > 0 {
		cfg.TickMaxStep = props.TickMaxStep
	}
	if props.Formatter != nil {
		cfg.Formatter = props.Formatter
	}

	cfg.Stroke = props.Stroke
	cfg.Fill = props.Fill
	cfg.Classes = props.Classes
	cfg.LineAttrs = props.LineAttrs
	cfg.TickAttrs = props.TickAttrs
	cfg.TickLabelAttrs = props.TickLabelAttrs
	cfg.TitleAttrs = props.TitleAttrs
	cfg.Primitives = props.Primitives

	if cfg.DisableTicks {
		cfg.TickSize = DisabledTickSize
	}
	return cfg, nil
}

// TickOptions returns the tick-generation options this configuration
// forwards to the ticks collaborator. Min/max step are pass-through only;
// geometry never consumes them.
func (c Config) TickOptions() ticks.Options {
	return ticks.Options{
		Count:     c.TickNumber,
		MinStep:   c.TickMinStep,
		MaxStep:   c.TickMaxStep,
		Formatter: c.Formatter,
	}
}

// Bool returns a pointer to b, for filling optional Props flags.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for filling the optional Props label.
func String(s string) *string { return &s }
