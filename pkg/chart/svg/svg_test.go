package svg

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderDocument(t *testing.T) {
	root := &Group{
		Transform: Translate(40, 0),
		Children: []Element{
			&Line{X1: 0, Y1: 0, X2: 0, Y2: 200, Attrs: Attrs{"stroke": "currentColor"}},
			&Text{X: -8, Y: 30, Anchor: "end", Content: "100"},
		},
	}

	out := string(Render(root, 800, 600))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.0 600.0" width="800" height="600">`,
		`<g transform="translate(40, 0)">`,
		`<line x1="0" y1="0" x2="0" y2="200" stroke="currentColor"/>`,
		`<text x="-8" y="30" text-anchor="end">100</text>`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNilRoot(t *testing.T) {
	out := string(Render(nil, 100, 100))
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("nil root should still produce a document:\n%s", out)
	}
}

func TestTextEscaping(t *testing.T) {
	txt := &Text{X: 0, Y: 0, Content: `a<b & "c"`}
	var buf bytes.Buffer
	txt.WriteSVG(&buf, "")

	out := buf.String()
	if strings.ContainsAny(strings.TrimPrefix(out, "<text"), "<") &&
		!strings.Contains(out, "&lt;b") {
		t.Errorf("content not escaped: %s", out)
	}
	if !strings.Contains(out, "&amp;") {
		t.Errorf("ampersand not escaped: %s", out)
	}
}

func TestWriteAttrsSorted(t *testing.T) {
	l := &Line{Attrs: Attrs{"stroke": "red", "class": "tick", "fill": "none"}}
	var buf bytes.Buffer
	l.WriteSVG(&buf, "")

	out := buf.String()
	ci := strings.Index(out, "class=")
	fi := strings.Index(out, "fill=")
	si := strings.Index(out, "stroke=")
	if !(ci < fi && fi < si) {
		t.Errorf("attributes not sorted: %s", out)
	}
}

func TestMerge(t *testing.T) {
	base := Attrs{"stroke": "currentColor", "stroke-width": "1"}
	override := Attrs{"stroke": "tomato"}

	got := Merge(base, override)
	if got["stroke"] != "tomato" {
		t.Errorf("override should win: %v", got)
	}
	if got["stroke-width"] != "1" {
		t.Errorf("base keys should survive: %v", got)
	}
	if base["stroke"] != "currentColor" {
		t.Error("Merge must not mutate base")
	}

	if Merge(nil, nil) != nil {
		t.Error("merging two empty maps should return nil")
	}
}

func TestCoordTrimming(t *testing.T) {
	if got := Translate(40, 0); got != "translate(40, 0)" {
		t.Errorf("Translate = %q", got)
	}
	if got := Translate(2.5, -6); got != "translate(2.5, -6)" {
		t.Errorf("Translate = %q", got)
	}
	if got := Rotate(-90, 12.5, 100); got != "rotate(-90, 12.5, 100)" {
		t.Errorf("Rotate = %q", got)
	}
}
