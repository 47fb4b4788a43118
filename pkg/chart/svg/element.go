// Package svg provides a small positioned-element tree and an SVG sink.
//
// Renderers compose Group, Line and Text nodes and hand the root to Render,
// which emits a standalone SVG document. Attribute maps are written in
// sorted key order so output is deterministic and diffable.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"sort"
)

// Attrs holds extra presentation attributes for an element.
type Attrs map[string]string

// Merge returns a copy of base with override applied on top.
// Override values win on key conflicts. Nil maps are allowed.
func Merge(base, override Attrs) Attrs {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(Attrs, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// Element is a node in the visual output tree.
type Element interface {
	// WriteSVG writes the element markup to buf, prefixed by indent.
	WriteSVG(buf *bytes.Buffer, indent string)
}

// Group is a container element with an optional transform.
type Group struct {
	Transform string
	Attrs     Attrs
	Children  []Element
}

// Append adds children to the group.
func (g *Group) Append(children ...Element) {
	g.Children = append(g.Children, children...)
}

// WriteSVG writes the group and its children.
func (g *Group) WriteSVG(buf *bytes.Buffer, indent string) {
	buf.WriteString(indent + "<g")
	if g.Transform != "" {
		fmt.Fprintf(buf, ` transform="%s"`, EscapeXML(g.Transform))
	}
	writeAttrs(buf, g.Attrs)
	buf.WriteString(">\n")
	for _, c := range g.Children {
		c.WriteSVG(buf, indent+"  ")
	}
	buf.WriteString(indent + "</g>\n")
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Attrs          Attrs
}

// WriteSVG writes the line markup.
func (l *Line) WriteSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"`,
		indent, coord(l.X1), coord(l.Y1), coord(l.X2), coord(l.Y2))
	writeAttrs(buf, l.Attrs)
	buf.WriteString("/>\n")
}

// Text is a positioned text element.
type Text struct {
	X, Y      float64
	Anchor    string // text-anchor: start, middle, end
	Baseline  string // dominant-baseline, empty to omit
	Transform string // e.g. a rotation about the reference point
	Content   string
	Attrs     Attrs
}

// WriteSVG writes the text markup with escaped content.
func (t *Text) WriteSVG(buf *bytes.Buffer, indent string) {
	fmt.Fprintf(buf, `%s<text x="%s" y="%s"`, indent, coord(t.X), coord(t.Y))
	if t.Anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, EscapeXML(t.Anchor))
	}
	if t.Baseline != "" {
		fmt.Fprintf(buf, ` dominant-baseline="%s"`, EscapeXML(t.Baseline))
	}
	if t.Transform != "" {
		fmt.Fprintf(buf, ` transform="%s"`, EscapeXML(t.Transform))
	}
	writeAttrs(buf, t.Attrs)
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(t.Content))
}

// Polyline is an open sequence of connected segments.
type Polyline struct {
	Points [][2]float64
	Attrs  Attrs
}

// WriteSVG writes the polyline markup.
func (p *Polyline) WriteSVG(buf *bytes.Buffer, indent string) {
	buf.WriteString(indent + `<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%s,%s", coord(pt[0]), coord(pt[1]))
	}
	buf.WriteByte('"')
	writeAttrs(buf, p.Attrs)
	buf.WriteString("/>\n")
}

// writeAttrs writes extra attributes in sorted key order.
func writeAttrs(buf *bytes.Buffer, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, ` %s="%s"`, k, EscapeXML(attrs[k]))
	}
}

// coord formats a pixel coordinate with one decimal, trimming ".0".
func coord(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if n := len(s); n > 2 && s[n-2:] == ".0" {
		return s[:n-2]
	}
	return s
}

// EscapeXML escapes a string for use in SVG text content and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Translate builds a translate transform string.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", coord(x), coord(y))
}

// Rotate builds a rotation transform about the point (x, y).
func Rotate(deg, x, y float64) string {
	return fmt.Sprintf("rotate(%s, %s, %s)", coord(deg), coord(x), coord(y))
}
