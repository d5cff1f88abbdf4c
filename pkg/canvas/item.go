// Package canvas implements the retained scene that the layout engine
// mutates: shapes with absolute positions, connector lines, group
// containers that move their members together, labels, and the collision
// query used by post-layout validation.
//
// Items report their extent in scene coordinates and accept absolute moves.
// Group membership is orthogonal to canvas membership: a shape can live on
// the canvas and inside a group at the same time, and adding an item to a
// group never changes its scene position.
package canvas

import "github.com/google/uuid"

// Kind classifies canvas items so read-only queries (collision checks,
// artifact sinks) can filter decorations from content.
type Kind int

const (
	// KindShape is a positioned diagram element.
	KindShape Kind = iota
	// KindLine is a connector drawn between two anchor points.
	KindLine
	// KindGroup is a container that moves its members together.
	KindGroup
	// KindBoundary is the border box of a composite group.
	KindBoundary
	// KindLabel is a text decoration.
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindLine:
		return "line"
	case KindGroup:
		return "group"
	case KindBoundary:
		return "boundary"
	case KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Item is the capability every canvas element provides: stable identity,
// a kind, an extent, an absolute scene position, and relocation.
type Item interface {
	// ID is a stable unique identifier assigned at construction.
	ID() string
	// Name is the caller-facing name (map component name, connector name).
	Name() string
	Kind() Kind
	Width() float64
	Height() float64
	// Pos returns the item's absolute scene position (top-left).
	Pos() Point
	// MoveTo places the item at an absolute scene position.
	MoveTo(x, y float64)
	// Bounds returns the item's scene bounding box.
	Bounds() Rect
	// ContainingGroup returns the group the item belongs to, or nil.
	ContainingGroup() *Group

	setGroup(g *Group)
}

// itemBase carries the state shared by all item implementations.
type itemBase struct {
	id    string
	name  string
	kind  Kind
	group *Group
}

func newItemBase(name string, kind Kind) itemBase {
	return itemBase{id: uuid.NewString(), name: name, kind: kind}
}

func (b *itemBase) ID() string              { return b.id }
func (b *itemBase) Name() string            { return b.name }
func (b *itemBase) Kind() Kind              { return b.kind }
func (b *itemBase) ContainingGroup() *Group { return b.group }
func (b *itemBase) setGroup(g *Group)       { b.group = g }

// Shape is a rectangular diagram element. The zero value is not usable;
// construct with NewShape or NewBoundary.
type Shape struct {
	itemBase
	pos   Point
	w, h  float64
	Label string
}

// NewShape creates a shape with the given name and extent at the origin.
func NewShape(name string, w, h float64) *Shape {
	return &Shape{itemBase: newItemBase(name, KindShape), w: w, h: h}
}

// NewBoundary creates a composite border box. It behaves like a shape but
// is excluded from overlap validation.
func NewBoundary(name string, r Rect) *Shape {
	return &Shape{itemBase: newItemBase(name, KindBoundary), pos: Point{X: r.X, Y: r.Y}, w: r.W, h: r.H}
}

func (s *Shape) Width() float64  { return s.w }
func (s *Shape) Height() float64 { return s.h }
func (s *Shape) Pos() Point      { return s.pos }

// Resize sets the shape's extent in place.
func (s *Shape) Resize(w, h float64) { s.w, s.h = w, h }

func (s *Shape) MoveTo(x, y float64) { s.pos = Point{X: x, Y: y} }

func (s *Shape) Bounds() Rect { return Rect{X: s.pos.X, Y: s.pos.Y, W: s.w, H: s.h} }

// Line is a straight connector between two scene points.
type Line struct {
	itemBase
	From Point
	To   Point
}

// NewLine creates a connector line between two absolute scene points.
func NewLine(name string, from, to Point) *Line {
	return &Line{itemBase: newItemBase(name, KindLine), From: from, To: to}
}

func (l *Line) Width() float64  { return l.Bounds().W }
func (l *Line) Height() float64 { return l.Bounds().H }

func (l *Line) Pos() Point {
	b := l.Bounds()
	return Point{X: b.X, Y: b.Y}
}

func (l *Line) MoveTo(x, y float64) {
	b := l.Bounds()
	dx, dy := x-b.X, y-b.Y
	l.From.X += dx
	l.From.Y += dy
	l.To.X += dx
	l.To.Y += dy
}

func (l *Line) Bounds() Rect {
	x := min(l.From.X, l.To.X)
	y := min(l.From.Y, l.To.Y)
	return Rect{X: x, Y: y, W: max(l.From.X, l.To.X) - x, H: max(l.From.Y, l.To.Y) - y}
}

// Label is a text decoration anchored at a scene point. Its extent is
// nominal: labels never participate in layout or validation.
type Label struct {
	itemBase
	Text string
	pos  Point
}

// NewLabel creates a text decoration at the origin.
func NewLabel(text string) *Label {
	return &Label{itemBase: newItemBase(text, KindLabel), Text: text}
}

func (l *Label) Width() float64      { return 0 }
func (l *Label) Height() float64     { return 0 }
func (l *Label) Pos() Point          { return l.pos }
func (l *Label) MoveTo(x, y float64) { l.pos = Point{X: x, Y: y} }
func (l *Label) Bounds() Rect        { return Rect{X: l.pos.X, Y: l.pos.Y} }
