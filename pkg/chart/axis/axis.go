package axis

import (
	"fmt"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/scale"
	"github.com/chartkit/chartkit/pkg/chart/svg"
	"github.com/chartkit/chartkit/pkg/chart/ticks"
)

// Render composes the axis element tree: the optional axis line, one group
// per tick (optional tick mark plus optional label), and the optional
// title. It is a pure, stateless mapping from its inputs to an output
// tree; nothing is carried between calls.
//
// Zero ticks produce only the line and title. A tick with an empty label
// renders its mark but no label element.
func Render(cfg Config, s scale.Scale, b chart.Bounds, tks []ticks.Tick) *svg.Group {
	prims := cfg.Primitives.withDefaults()
	root := &svg.Group{Transform: cfg.RootTransform(b)}

	if !cfg.DisableLine {
		rmin, rmax := s.Range()
		root.Append(prims.Line(LineData{
			Y1:    rmin,
			Y2:    rmax,
			Attrs: cfg.roleAttrs(RoleLine),
		}))
	}

	for _, t := range tks {
		g := &svg.Group{Transform: svg.Translate(0, t.Offset)}
		if !cfg.DisableTicks {
			g.Append(prims.Tick(TickData{
				X2:    cfg.TickMarkEnd(),
				Attrs: cfg.roleAttrs(RoleTick),
			}))
		}
		if t.Label != "" {
			g.Append(prims.TickLabel(TickLabelData{
				X:      cfg.TickLabelX(),
				Y:      t.LabelOffset,
				Anchor: cfg.TickLabelAnchor(),
				Text:   t.Label,
				Attrs:  cfg.roleAttrs(RoleTickLabel),
			}))
		}
		root.Append(g)
	}

	if cfg.Label != "" {
		x, y := cfg.TitleReference(b)
		root.Append(prims.Title(TitleData{
			X:     x,
			Y:     y,
			Angle: cfg.TitleRotation(),
			Text:  cfg.Label,
			Attrs: cfg.roleAttrs(RoleTitle),
		}))
	}

	return root
}

// Draw is the one-step form: it resolves the configuration, derives the
// scale from the settings and bounds, generates ticks and renders.
// The Y pixel range runs from the bottom of the drawing area to its top,
// so larger values land higher.
func Draw(settings chart.AxisSettings, props Props, b chart.Bounds) (*svg.Group, error) {
	cfg, err := Resolve(&settings, props)
	if err != nil {
		return nil, err
	}
	s := scale.NewLinear(settings.Scale.Min, settings.Scale.Max, b.Top+b.Height, b.Top)
	return Render(cfg, s, b, ticks.Generate(s, cfg.TickOptions())), nil
}

// roleAttrs computes the presentation attributes for one visual role:
// default paint, then the role class, then caller attribute overrides
// (caller values win on key conflicts).
func (c Config) roleAttrs(role string) svg.Attrs {
	base := svg.Attrs{}
	switch role {
	case RoleLine, RoleTick:
		base["stroke"] = paint(c.Stroke)
		base["fill"] = "none"
	case RoleTickLabel:
		base["fill"] = paint(c.Fill)
		base["font-size"] = fontSize(c.TickFontSize)
	case RoleTitle:
		base["fill"] = paint(c.Fill)
		base["font-size"] = fontSize(c.LabelFontSize)
	}
	if class, ok := c.Classes[role]; ok && class != "" {
		base["class"] = class
	}
	return svg.Merge(base, c.overrideAttrs(role))
}

// overrideAttrs returns the caller-supplied attribute map for a role.
func (c Config) overrideAttrs(role string) svg.Attrs {
	switch role {
	case RoleLine:
		return c.LineAttrs
	case RoleTick:
		return c.TickAttrs
	case RoleTickLabel:
		return c.TickLabelAttrs
	case RoleTitle:
		return c.TitleAttrs
	}
	return nil
}

func paint(color string) string {
	if color == "" {
		return "currentColor"
	}
	return color
}

func fontSize(px float64) string {
	return fmt.Sprintf("%g", px)
}
