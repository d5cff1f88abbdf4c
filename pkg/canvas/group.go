package canvas

// Group is a container whose members move together. Adding an item
// re-parents it (removing it from any previous group) while preserving its
// absolute scene position; moving the group translates every member by the
// same delta.
//
// A Group is itself an Item so callers can test canvas membership and query
// its scene bounding box, which is the union of its members' boxes.
type Group struct {
	itemBase
	pos     Point
	members []Item
}

// NewGroup creates an empty group positioned at the origin.
func NewGroup(name string) *Group {
	return &Group{itemBase: newItemBase(name, KindGroup)}
}

// Add re-parents the item into this group, keeping its scene position.
// Adding an item it already owns, the group itself, or nil is a no-op.
func (g *Group) Add(it Item) {
	if it == nil || it == Item(g) {
		return
	}
	if prev := it.ContainingGroup(); prev == g {
		return
	} else if prev != nil {
		prev.Remove(it)
	}
	it.setGroup(g)
	g.members = append(g.members, it)
}

// Remove releases the item from the group. Its scene position is kept.
// Removing an item the group does not own is a no-op.
func (g *Group) Remove(it Item) {
	for i, m := range g.members {
		if m == it {
			g.members = append(g.members[:i], g.members[i+1:]...)
			it.setGroup(nil)
			return
		}
	}
}

// Members returns the group's direct members in insertion order.
func (g *Group) Members() []Item {
	out := make([]Item, len(g.members))
	copy(out, g.members)
	return out
}

func (g *Group) Pos() Point { return g.pos }

// MoveTo places the group at an absolute position, translating every member
// by the difference from the current position.
func (g *Group) MoveTo(x, y float64) {
	dx, dy := x-g.pos.X, y-g.pos.Y
	g.pos = Point{X: x, Y: y}
	if dx == 0 && dy == 0 {
		return
	}
	for _, m := range g.members {
		p := m.Pos()
		m.MoveTo(p.X+dx, p.Y+dy)
	}
}

// Bounds returns the union of the members' scene bounding boxes. An empty
// group has a zero-area box at its position.
func (g *Group) Bounds() Rect {
	var r Rect
	for _, m := range g.members {
		r = r.Union(m.Bounds())
	}
	if r.Empty() && len(g.members) == 0 {
		return Rect{X: g.pos.X, Y: g.pos.Y}
	}
	return r
}

func (g *Group) Width() float64  { return g.Bounds().W }
func (g *Group) Height() float64 { return g.Bounds().H }
