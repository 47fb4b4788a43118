package axis

import (
	"strings"
	"testing"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/scale"
	"github.com/chartkit/chartkit/pkg/chart/svg"
	"github.com/chartkit/chartkit/pkg/chart/ticks"
)

func renderToString(t *testing.T, cfg Config, s scale.Scale, b chart.Bounds, tks []ticks.Tick) string {
	t.Helper()
	return string(svg.Render(Render(cfg, s, b, tks), b.Left+b.Width+100, b.Top+b.Height+100))
}

func TestRenderComposition(t *testing.T) {
	cfg := mustResolve(t, nil, Props{Label: String("Revenue")})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{
		{Label: "0", Offset: 200},
		{Label: "50", Offset: 100},
		{Label: "100", Offset: 0},
	}

	root := Render(cfg, s, testBounds, tks)

	// Line, three tick groups, title.
	if len(root.Children) != 5 {
		t.Fatalf("got %d children, want 5", len(root.Children))
	}

	out := renderToString(t, cfg, s, testBounds, tks)
	if !strings.Contains(out, `<line x1="0" y1="200" x2="0" y2="0"`) {
		t.Errorf("axis line missing or misplaced:\n%s", out)
	}
	if !strings.Contains(out, `translate(0, 100)`) {
		t.Errorf("tick group transform missing:\n%s", out)
	}
	if !strings.Contains(out, `>Revenue</text>`) {
		t.Errorf("title missing:\n%s", out)
	}
}

func TestRenderLeftTickGeometry(t *testing.T) {
	// position=left, tickSize=6: mark to x2=-6; a tick with labelOffset=30
	// renders its label at x=-8, y=30, anchor end.
	cfg := mustResolve(t, nil, Props{Position: Left, TickSize: 6})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{{Label: "42", Offset: 80, LabelOffset: 30}}

	out := renderToString(t, cfg, s, testBounds, tks)

	if !strings.Contains(out, `x2="-6"`) {
		t.Errorf("tick mark should extend to x2=-6:\n%s", out)
	}
	if !strings.Contains(out, `<text x="-8" y="30" text-anchor="end"`) {
		t.Errorf("label should sit at (-8, 30) anchored end:\n%s", out)
	}
}

func TestRenderRightTitle(t *testing.T) {
	// position=right, top=0, height=200: title at (90, 100), rotated 90.
	cfg := mustResolve(t, nil, Props{Position: Right, Label: String("Revenue")})
	s := scale.NewLinear(0, 100, 200, 0)

	out := renderToString(t, cfg, s, testBounds, nil)

	if !strings.Contains(out, `<text x="90" y="100" text-anchor="middle" transform="rotate(90, 90, 100)"`) {
		t.Errorf("title reference point or rotation wrong:\n%s", out)
	}
	if !strings.Contains(out, `>Revenue</text>`) {
		t.Errorf("title text missing:\n%s", out)
	}
}

func TestRenderDisableLine(t *testing.T) {
	cfg := mustResolve(t, nil, Props{DisableLine: Bool(true)})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{{Label: "0", Offset: 200}}

	out := renderToString(t, cfg, s, testBounds, tks)

	if strings.Contains(out, `y1="200" x2="0" y2="0"`) {
		t.Errorf("disabled line still rendered:\n%s", out)
	}
	// Tick marks are unaffected.
	if !strings.Contains(out, `x2="-6"`) {
		t.Errorf("tick marks should survive disableLine:\n%s", out)
	}
}

func TestRenderDisableTicksKeepsLabels(t *testing.T) {
	cfg := mustResolve(t, nil, Props{DisableTicks: Bool(true)})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{{Label: "42", Offset: 80}}

	root := Render(cfg, s, testBounds, tks)
	// Children: line + one tick group.
	tickGroup, ok := root.Children[1].(*svg.Group)
	if !ok {
		t.Fatalf("expected tick group, got %T", root.Children[1])
	}
	if len(tickGroup.Children) != 1 {
		t.Fatalf("tick group should hold only the label, got %d children", len(tickGroup.Children))
	}
	if _, ok := tickGroup.Children[0].(*svg.Text); !ok {
		t.Errorf("remaining child should be the label text, got %T", tickGroup.Children[0])
	}

	// Forced tick size 4 moves the label to x=±(4+2).
	out := renderToString(t, cfg, s, testBounds, tks)
	if !strings.Contains(out, `<text x="-6"`) {
		t.Errorf("label should use forced tick size 4:\n%s", out)
	}
}

func TestRenderUnlabeledTick(t *testing.T) {
	cfg := mustResolve(t, nil, Props{})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{{Offset: 80}} // no label

	root := Render(cfg, s, testBounds, tks)
	tickGroup := root.Children[1].(*svg.Group)
	if len(tickGroup.Children) != 1 {
		t.Fatalf("unlabeled tick should hold only its mark, got %d children", len(tickGroup.Children))
	}
	if _, ok := tickGroup.Children[0].(*svg.Line); !ok {
		t.Errorf("remaining child should be the tick mark, got %T", tickGroup.Children[0])
	}
}

func TestRenderZeroTicks(t *testing.T) {
	cfg := mustResolve(t, nil, Props{Label: String("Revenue")})
	s := scale.NewLinear(0, 0, 200, 0)

	root := Render(cfg, s, testBounds, nil)
	// At most the axis line and title, no tick groups.
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want line and title only", len(root.Children))
	}
}

func TestRenderTitleOnlyWhenConfigured(t *testing.T) {
	s := scale.NewLinear(0, 100, 200, 0)

	without := Render(mustResolve(t, nil, Props{}), s, testBounds, nil)
	if len(without.Children) != 1 {
		t.Errorf("unlabeled axis should render the line only, got %d children", len(without.Children))
	}

	with := Render(mustResolve(t, nil, Props{Label: String("Load")}), s, testBounds, nil)
	if len(with.Children) != 2 {
		t.Errorf("labeled axis should add a title, got %d children", len(with.Children))
	}
}

func TestRenderAttributeOverrides(t *testing.T) {
	cfg := mustResolve(t, nil, Props{
		Stroke:    "#888",
		LineAttrs: svg.Attrs{"stroke": "tomato", "stroke-width": "2"},
		Classes:   map[string]string{RoleLine: "axis-line"},
	})
	s := scale.NewLinear(0, 100, 200, 0)

	out := renderToString(t, cfg, s, testBounds, nil)

	// Caller attrs win over computed paint; class map applies.
	if !strings.Contains(out, `stroke="tomato"`) {
		t.Errorf("caller stroke should win:\n%s", out)
	}
	if strings.Contains(out, `stroke="#888"`) {
		t.Errorf("default stroke should be overridden:\n%s", out)
	}
	if !strings.Contains(out, `class="axis-line"`) {
		t.Errorf("class override missing:\n%s", out)
	}
	if !strings.Contains(out, `stroke-width="2"`) {
		t.Errorf("extra attrs missing:\n%s", out)
	}
}

func TestRenderCustomPrimitive(t *testing.T) {
	var gotTick TickData
	cfg := mustResolve(t, nil, Props{
		Primitives: Primitives{
			Tick: func(d TickData) svg.Element {
				gotTick = d
				return &svg.Line{X1: 0, Y1: 0, X2: d.X2, Y2: 0, Attrs: svg.Attrs{"data-custom": "yes"}}
			},
		},
	})
	s := scale.NewLinear(0, 100, 200, 0)
	tks := []ticks.Tick{{Label: "0", Offset: 200}}

	out := renderToString(t, cfg, s, testBounds, tks)

	if gotTick.X2 != -6 {
		t.Errorf("custom primitive received X2=%v, want -6", gotTick.X2)
	}
	if !strings.Contains(out, `data-custom="yes"`) {
		t.Errorf("custom primitive output missing:\n%s", out)
	}
}

func TestDraw(t *testing.T) {
	settings := chart.AxisSettings{
		Scale:      chart.ScaleSettings{Min: 0, Max: 100},
		Label:      "Revenue",
		TickNumber: 5,
	}
	b := chart.Bounds{Left: 40, Top: 20, Width: 700, Height: 400}

	root, err := Draw(settings, Props{}, b)
	if err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	// Line + ticks + title; domain [0,100] with 5 ticks gives 6 groups.
	if len(root.Children) != 1+6+1 {
		t.Errorf("got %d children, want 8", len(root.Children))
	}

	out := string(svg.Render(root, 800, 600))
	// Scale range runs bottom (top+height=420) to top (20).
	if !strings.Contains(out, `y1="420"`) || !strings.Contains(out, `y2="20"`) {
		t.Errorf("axis line should span the bounds vertically:\n%s", out)
	}
}

func TestDrawInvalidPosition(t *testing.T) {
	settings := chart.AxisSettings{Position: "diagonal"}
	if _, err := Draw(settings, Props{}, testBounds); err == nil {
		t.Fatal("expected error for invalid position")
	}
}
