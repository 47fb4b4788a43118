package plot

import (
	"strings"
	"testing"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/axis"
)

func testDefinition() *chart.Definition {
	return &chart.Definition{
		ID:     "revenue",
		Title:  "Quarterly Revenue",
		Bounds: chart.Bounds{Left: 40, Top: 20, Width: 700, Height: 400},
		Axes: map[string]chart.AxisSettings{
			"y":  {Scale: chart.ScaleSettings{Min: 0, Max: 100}, Label: "Revenue"},
			"y2": {Scale: chart.ScaleSettings{Min: 0, Max: 1}, Position: chart.PositionRight},
		},
		Series: []chart.Series{
			{Name: "q3", AxisID: "y", Points: []chart.Point{{X: 0, Y: 10}, {X: 1, Y: 40}, {X: 2, Y: 90}}},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(testDefinition(), axis.Props{})
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}

	doc := string(out)
	for _, want := range []string{
		`viewBox="0 0 780.0 440.0"`,
		`>Quarterly Revenue</text>`,
		`translate(40, 0)`,  // left axis at bounds.Left
		`translate(740, 0)`, // right axis at bounds.Left+Width
		`>Revenue</text>`,
		`<polyline points="40,`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderSVGPropsApply(t *testing.T) {
	def := testDefinition()
	def.Axes = map[string]chart.AxisSettings{
		"y": {Scale: chart.ScaleSettings{Min: 0, Max: 100}},
	}
	def.Series = nil

	out, err := RenderSVG(def, axis.Props{Position: axis.Right})
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.Contains(string(out), `translate(740, 0)`) {
		t.Errorf("props should flip the axis to the right:\n%s", out)
	}
}

func TestRenderSVGInvalidDefinition(t *testing.T) {
	def := testDefinition()
	def.Bounds.Width = 0
	if _, err := RenderSVG(def, axis.Props{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRenderSVGEmptySeriesSkipped(t *testing.T) {
	def := testDefinition()
	def.Series = []chart.Series{{Name: "empty", AxisID: "y"}}

	out, err := RenderSVG(def, axis.Props{})
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if strings.Contains(string(out), "<polyline") {
		t.Errorf("empty series should not emit a polyline:\n%s", out)
	}
}

func TestSeriesYMapping(t *testing.T) {
	out, err := RenderSVG(testDefinition(), axis.Props{})
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	// First point (X=0, Y=10): x maps to bounds.Left=40, y maps to
	// 420 - (10/100)*400 = 380 with the range running bottom to top.
	if !strings.Contains(string(out), `points="40,380 `) {
		t.Errorf("first series point misplaced:\n%s", out)
	}
}
