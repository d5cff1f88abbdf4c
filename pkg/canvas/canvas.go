package canvas

// Canvas is the mutable scene container. It tracks items in insertion order
// so every query is deterministic for identical mutation sequences.
//
// Canvas is not safe for concurrent use: the layout engine is the single
// mutator and runs on the caller's goroutine.
type Canvas struct {
	items   []Item
	byID    map[string]Item
	redraws int
}

// New creates an empty canvas.
func New() *Canvas {
	return &Canvas{byID: make(map[string]Item)}
}

// Add inserts the item. Adding an item that is already present is a no-op.
func (c *Canvas) Add(it Item) {
	if it == nil || c.Contains(it) {
		return
	}
	c.items = append(c.items, it)
	c.byID[it.ID()] = it
}

// Remove deletes the item from the canvas. Group membership is untouched.
func (c *Canvas) Remove(it Item) {
	if it == nil {
		return
	}
	if _, ok := c.byID[it.ID()]; !ok {
		return
	}
	delete(c.byID, it.ID())
	for i, x := range c.items {
		if x.ID() == it.ID() {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// Contains reports whether the item is on the canvas.
func (c *Canvas) Contains(it Item) bool {
	if it == nil {
		return false
	}
	_, ok := c.byID[it.ID()]
	return ok
}

// Items returns the canvas contents in insertion order.
func (c *Canvas) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items on the canvas.
func (c *Canvas) Len() int { return len(c.items) }

// Colliding returns every other canvas item whose bounding box shares
// positive area with the given item's box, in insertion order. Callers
// filter by kind; the canvas does not decide what counts as a collision.
func (c *Canvas) Colliding(it Item) []Item {
	b := it.Bounds()
	var out []Item
	for _, other := range c.items {
		if other.ID() == it.ID() {
			continue
		}
		if b.Overlaps(other.Bounds()) {
			out = append(out, other)
		}
	}
	return out
}

// Update records a redraw request. The canvas has no display of its own;
// sinks read the scene on demand and tests observe the counter.
func (c *Canvas) Update() { c.redraws++ }

// Redraws returns the number of redraw requests received.
func (c *Canvas) Redraws() int { return c.redraws }

// DestroyGroup removes the group from the canvas and releases its members,
// which keep their absolute positions and stay on the canvas.
func (c *Canvas) DestroyGroup(g *Group) {
	if g == nil {
		return
	}
	for _, m := range g.Members() {
		g.Remove(m)
	}
	c.Remove(g)
}

// Bounds returns the union of all item bounding boxes.
func (c *Canvas) Bounds() Rect {
	var r Rect
	for _, it := range c.items {
		if it.Kind() == KindGroup {
			continue
		}
		r = r.Union(it.Bounds())
	}
	return r
}
