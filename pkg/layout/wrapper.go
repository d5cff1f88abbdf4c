package layout

import (
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

// GroupMargin is the clearance added on every side of a composite's
// bounding box beyond the union of its members' boxes.
const GroupMargin = 5

// GroupWrapper is a composite built from an already-laid-out subtree. Its
// boundary box is the union of its members' boxes expanded by a fixed
// margin, with a name label anchored at the top-left corner.
//
// A wrapper satisfies the same read contract as a primitive shape (width,
// height, scene position, relocation) and the Grouper capability, so it can
// participate in an outer tree unmodified. Membership is frozen at
// construction: Add is a no-op.
type GroupWrapper struct {
	*canvas.Shape // boundary box

	label   *canvas.Label
	members []canvas.Item
	anchors map[compass.Direction]canvas.Item
}

// WrapGroup builds a composite around members, which must already hold
// their final relative positions. Members are re-parented into the wrapper:
// released from any visual group they were merged into, keeping their
// absolute scene positions. The boundary and label are inserted into the
// canvas.
func WrapGroup(c *canvas.Canvas, name string, members []canvas.Item, margin float64) *GroupWrapper {
	var box canvas.Rect
	for _, m := range members {
		if g := m.ContainingGroup(); g != nil {
			g.Remove(m)
		}
		box = box.Union(m.Bounds())
	}
	box = box.Expand(margin)

	w := &GroupWrapper{
		Shape:   canvas.NewBoundary(name, box),
		label:   canvas.NewLabel(name),
		members: append([]canvas.Item(nil), members...),
	}
	w.label.MoveTo(box.X, box.Y)
	c.Add(w.Shape)
	c.Add(w.label)
	return w
}

// Add is a frozen no-op: a composite's membership never changes after
// construction.
func (w *GroupWrapper) Add(canvas.Item) {}

// SetAnchor designates the member that takes connectors arriving on the
// given side of the composite.
func (w *GroupWrapper) SetAnchor(dir compass.Direction, member canvas.Item) {
	if w.anchors == nil {
		w.anchors = make(map[compass.Direction]canvas.Item)
	}
	w.anchors[dir] = member
}

// AnchorItem returns the member designated for connectors on the given
// side, or the boundary box itself when no anchor is set there.
func (w *GroupWrapper) AnchorItem(dir compass.Direction) canvas.Item {
	if m, ok := w.anchors[dir]; ok {
		return m
	}
	return w.Shape
}

// Members returns the shapes absorbed at construction.
func (w *GroupWrapper) Members() []canvas.Item {
	out := make([]canvas.Item, len(w.members))
	copy(out, w.members)
	return out
}

// MoveTo places the boundary at an absolute position and translates the
// label and every member by the same delta.
func (w *GroupWrapper) MoveTo(x, y float64) {
	p := w.Shape.Pos()
	dx, dy := x-p.X, y-p.Y
	w.Shape.MoveTo(x, y)
	lp := w.label.Pos()
	w.label.MoveTo(lp.X+dx, lp.Y+dy)
	for _, m := range w.members {
		mp := m.Pos()
		m.MoveTo(mp.X+dx, mp.Y+dy)
	}
}

// Label returns the composite's name label item.
func (w *GroupWrapper) Label() *canvas.Label { return w.label }
