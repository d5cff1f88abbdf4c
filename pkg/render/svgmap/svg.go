// Package svgmap renders a laid-out canvas as a standalone SVG document.
//
// Items are drawn in layers so decorations never hide content: composite
// boundaries first, then connector lines, then shapes, then labels. Within a
// layer the canvas insertion order is kept, so identical scenes produce
// byte-identical documents.
package svgmap

import (
	"bytes"
	"fmt"

	"github.com/jverhoeven/anchormap/pkg/canvas"
)

// Option adjusts the renderer.
type Option func(*renderer)

type renderer struct {
	padding     float64
	scale       float64
	shapeFill   string
	shapeStroke string
	lineStroke  string
	lineWidth   float64
}

// WithPadding sets the whitespace around the diagram's bounding box.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithScale multiplies all scene coordinates. Map files use abstract units;
// a scale of 10 gives screen-sized output.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithConnectorStyle sets the connector stroke color and width.
func WithConnectorStyle(color string, width float64) Option {
	return func(r *renderer) {
		r.lineStroke = color
		r.lineWidth = width
	}
}

// Render draws the canvas contents into an SVG document.
func Render(c *canvas.Canvas, opts ...Option) []byte {
	r := renderer{
		padding:     10,
		scale:       1,
		shapeFill:   "white",
		shapeStroke: "black",
		lineStroke:  "deepskyblue",
		lineWidth:   3,
	}
	for _, opt := range opts {
		opt(&r)
	}

	bounds := c.Bounds().Expand(r.padding)
	width := bounds.W * r.scale
	height := bounds.H * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <g transform="scale(%g) translate(%g, %g)">`+"\n",
		r.scale, -bounds.X, -bounds.Y)

	items := c.Items()
	r.layer(&buf, items, canvas.KindBoundary)
	r.layer(&buf, items, canvas.KindLine)
	r.layer(&buf, items, canvas.KindShape)
	r.layer(&buf, items, canvas.KindLabel)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *renderer) layer(buf *bytes.Buffer, items []canvas.Item, kind canvas.Kind) {
	for _, it := range items {
		if it.Kind() != kind {
			continue
		}
		switch kind {
		case canvas.KindBoundary:
			b := it.Bounds()
			fmt.Fprintf(buf, `    <rect x="%g" y="%g" width="%g" height="%g" fill="none" stroke="grey" stroke-dasharray="4 2"/>`+"\n",
				b.X, b.Y, b.W, b.H)
		case canvas.KindLine:
			l := it.(*canvas.Line)
			fmt.Fprintf(buf, `    <line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g" stroke-linecap="round"/>`+"\n",
				l.From.X, l.From.Y, l.To.X, l.To.Y, r.lineStroke, r.lineWidth)
		case canvas.KindShape:
			r.shape(buf, it)
		case canvas.KindLabel:
			l := it.(*canvas.Label)
			p := l.Pos()
			fmt.Fprintf(buf, `    <text x="%g" y="%g" font-size="4" fill="grey">%s</text>`+"\n",
				p.X, p.Y-1, escape(l.Text))
		}
	}
}

func (r *renderer) shape(buf *bytes.Buffer, it canvas.Item) {
	b := it.Bounds()
	fmt.Fprintf(buf, `    <rect x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="%s"/>`+"\n",
		b.X, b.Y, b.W, b.H, r.shapeFill, r.shapeStroke)

	s, ok := it.(*canvas.Shape)
	if !ok || s.Label == "" {
		return
	}
	fmt.Fprintf(buf, `    <text x="%g" y="%g" font-size="4" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.X+b.W/2, b.Y+b.H/2, escape(s.Label))
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
