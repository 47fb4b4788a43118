// Package plot composes whole chart documents: every configured axis, the
// data series bound to them, and the chart title.
//
// It is a thin orchestration layer; all axis semantics live in the axis
// package and all element emission in the svg package.
package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/axis"
	"github.com/chartkit/chartkit/pkg/chart/scale"
	"github.com/chartkit/chartkit/pkg/chart/svg"
)

const titleFontSize = 16.0

// seriesPalette cycles across series in definition order.
var seriesPalette = []string{"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2"}

// RenderSVG renders the full chart: title, axes (sorted by identifier so
// output is deterministic) and series polylines.
// Props apply to every axis as the explicit caller layer; pass a zero
// Props to render the stored settings as-is.
func RenderSVG(def *chart.Definition, props axis.Props) ([]byte, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	b := def.Bounds
	docW := b.Left*2 + b.Width
	docH := b.Top*2 + b.Height

	root := &svg.Group{}

	if def.Title != "" {
		root.Append(&svg.Text{
			X:       b.Left + b.Width/2,
			Y:       b.Top / 2,
			Anchor:  "middle",
			Content: def.Title,
			Attrs:   svg.Attrs{"font-size": fmt.Sprintf("%g", titleFontSize), "fill": "currentColor"},
		})
	}

	for _, id := range sortedAxisIDs(def) {
		g, err := axis.Draw(def.Axes[id], props, b)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", id, err)
		}
		root.Append(g)
	}

	for i, s := range def.Series {
		line, err := seriesLine(def, s, seriesPalette[i%len(seriesPalette)])
		if err != nil {
			return nil, err
		}
		if line != nil {
			root.Append(line)
		}
	}

	return svg.Render(root, docW, docH), nil
}

// sortedAxisIDs returns the axis identifiers in lexical order.
func sortedAxisIDs(def *chart.Definition) []string {
	ids := make([]string, 0, len(def.Axes))
	for id := range def.Axes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// seriesLine maps a series into a polyline: X over the data extent onto
// the drawing width, Y through the scale of the axis it is bound to.
func seriesLine(def *chart.Definition, s chart.Series, color string) (svg.Element, error) {
	if len(s.Points) == 0 {
		return nil, nil
	}

	set, err := def.Axis(s.AxisID)
	if err != nil {
		return nil, err
	}

	b := def.Bounds
	xLo, xHi := dataExtent(s.Points)
	xs := scale.NewLinear(xLo, xHi, b.Left, b.Left+b.Width)
	ys := scale.NewLinear(set.Scale.Min, set.Scale.Max, b.Top+b.Height, b.Top)

	pts := make([][2]float64, len(s.Points))
	for i, p := range s.Points {
		pts[i] = [2]float64{xs.Apply(p.X), ys.Apply(p.Y)}
	}

	return &svg.Polyline{
		Points: pts,
		Attrs:  svg.Attrs{"fill": "none", "stroke": color, "stroke-width": "1.5"},
	}, nil
}

// dataExtent returns the min and max X over the series points.
func dataExtent(pts []chart.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		lo = math.Min(lo, p.X)
		hi = math.Max(hi, p.X)
	}
	return lo, hi
}
