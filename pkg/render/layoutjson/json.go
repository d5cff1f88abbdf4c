// Package layoutjson serializes a laid-out canvas as a machine-readable
// JSON document: absolute boxes per shape and composite, connector endpoint
// pairs, and the overlap verdict.
package layoutjson

import (
	"encoding/json"

	"github.com/jverhoeven/anchormap/pkg/canvas"
)

// Box is one positioned rectangle.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label,omitempty"`
}

// Connector is one drawn line.
type Connector struct {
	Name string  `json:"name"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Document is the full serialized scene.
type Document struct {
	Shapes     map[string]Box `json:"shapes"`
	Boundaries map[string]Box `json:"boundaries,omitempty"`
	Connectors []Connector    `json:"connectors,omitempty"`
	Valid      bool           `json:"valid"`
}

// FromCanvas builds a document from the scene. Groups and labels are layout
// machinery and are not serialized; composite boundaries are kept since they
// are part of the drawing.
func FromCanvas(c *canvas.Canvas, valid bool) Document {
	doc := Document{
		Shapes:     make(map[string]Box),
		Boundaries: make(map[string]Box),
		Valid:      valid,
	}
	for _, it := range c.Items() {
		switch it.Kind() {
		case canvas.KindShape:
			doc.Shapes[it.Name()] = box(it)
		case canvas.KindBoundary:
			doc.Boundaries[it.Name()] = box(it)
		case canvas.KindLine:
			l := it.(*canvas.Line)
			doc.Connectors = append(doc.Connectors, Connector{
				Name: l.Name(),
				X1:   l.From.X, Y1: l.From.Y,
				X2: l.To.X, Y2: l.To.Y,
			})
		}
	}
	if len(doc.Boundaries) == 0 {
		doc.Boundaries = nil
	}
	return doc
}

// Marshal renders the scene as indented JSON.
func Marshal(c *canvas.Canvas, valid bool) ([]byte, error) {
	return json.MarshalIndent(FromCanvas(c, valid), "", "  ")
}

func box(it canvas.Item) Box {
	b := it.Bounds()
	out := Box{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
	if s, ok := it.(*canvas.Shape); ok {
		out.Label = s.Label
	}
	return out
}
