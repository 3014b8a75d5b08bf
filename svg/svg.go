// Package svg is a minimal SVG document writer: circles, polylines and text
// with stroke and fill properties.
package svg

import (
	"io"
	"strings"
)

type Point struct {
	X, Y float64
}

type StrokeLineCap int

const (
	LineCapUnset StrokeLineCap = iota
	LineCapButt
	LineCapRound
	LineCapSquare
)

func (lc StrokeLineCap) String() string {
	switch lc {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	}
	return ""
}

type StrokeLineJoin int

const (
	LineJoinUnset StrokeLineJoin = iota
	LineJoinArcs
	LineJoinBevel
	LineJoinMiter
	LineJoinMiterClip
	LineJoinRound
)

func (lj StrokeLineJoin) String() string {
	switch lj {
	case LineJoinArcs:
		return "arcs"
	case LineJoinBevel:
		return "bevel"
	case LineJoinMiter:
		return "miter"
	case LineJoinMiterClip:
		return "miter-clip"
	case LineJoinRound:
		return "round"
	}
	return ""
}

// PathProps are the shared presentation attributes. Zero values are omitted
// from the output.
type PathProps struct {
	Fill           Color
	Stroke         Color
	StrokeWidth    float64
	StrokeLineCap  StrokeLineCap
	StrokeLineJoin StrokeLineJoin
}

func (p PathProps) renderAttrs(b *strings.Builder) {
	if p.Fill != nil {
		writeAttr(b, "fill", p.Fill.String())
	}
	if p.Stroke != nil {
		writeAttr(b, "stroke", p.Stroke.String())
	}
	if p.StrokeWidth != 0 {
		writeAttr(b, "stroke-width", formatNumber(p.StrokeWidth))
	}
	if p.StrokeLineCap != LineCapUnset {
		writeAttr(b, "stroke-linecap", p.StrokeLineCap.String())
	}
	if p.StrokeLineJoin != LineJoinUnset {
		writeAttr(b, "stroke-linejoin", p.StrokeLineJoin.String())
	}
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteByte('"')
}

// Object is anything that can be placed in a Document.
type Object interface {
	renderObject(b *strings.Builder)
}

type Circle struct {
	PathProps
	Center Point
	Radius float64
}

func (c *Circle) renderObject(b *strings.Builder) {
	b.WriteString("<circle")
	writeAttr(b, "cx", formatNumber(c.Center.X))
	writeAttr(b, "cy", formatNumber(c.Center.Y))
	writeAttr(b, "r", formatNumber(c.Radius))
	c.renderAttrs(b)
	b.WriteString("/>")
}

type Polyline struct {
	PathProps
	Points []Point
}

func (p *Polyline) AddPoint(pt Point) {
	p.Points = append(p.Points, pt)
}

func (p *Polyline) renderObject(b *strings.Builder) {
	b.WriteString(`<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(pt.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(pt.Y))
	}
	b.WriteByte('"')
	p.renderAttrs(b)
	b.WriteString("/>")
}

type Text struct {
	PathProps
	Position   Point
	Offset     Point
	FontSize   uint32
	FontFamily string
	FontWeight string
	Data       string
}

var textEscaper = strings.NewReplacer(
	`"`, "&quot;",
	`'`, "&apos;",
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
)

func (t *Text) renderObject(b *strings.Builder) {
	b.WriteString("<text")
	t.renderAttrs(b)
	writeAttr(b, "x", formatNumber(t.Position.X))
	writeAttr(b, "y", formatNumber(t.Position.Y))
	writeAttr(b, "dx", formatNumber(t.Offset.X))
	writeAttr(b, "dy", formatNumber(t.Offset.Y))
	writeAttr(b, "font-size", formatNumber(float64(t.FontSize)))
	if t.FontFamily != "" {
		writeAttr(b, "font-family", t.FontFamily)
	}
	if t.FontWeight != "" {
		writeAttr(b, "font-weight", t.FontWeight)
	}
	b.WriteByte('>')
	b.WriteString(textEscaper.Replace(t.Data))
	b.WriteString("</text>")
}

// Document is an ordered list of objects; later objects are drawn on top.
type Document struct {
	objects []Object
}

func (d *Document) Add(obj Object) {
	d.objects = append(d.objects, obj)
}

func (d *Document) Len() int { return len(d.objects) }

// Render writes the document with a two-space indent per object.
func (d *Document) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	b.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n")
	for _, obj := range d.objects {
		b.WriteString("  ")
		obj.renderObject(&b)
		b.WriteByte('\n')
	}
	b.WriteString("</svg>")
	_, err := io.WriteString(w, b.String())
	return err
}
