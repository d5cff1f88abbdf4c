// Package layout derives absolute positions for diagram elements from
// directional anchor constraints.
//
// A flat declaration (id→shape plus id→{direction→child}) is turned into a
// rooted tree, placed with a single depth-first pass, and decorated with
// connector lines. Subtrees are merged into per-node visual groups as they
// are positioned so that clearance checks always see the rendered extent of
// already-placed structure. A separate validator reports overlaps; the
// engine itself never guarantees overlap-free output.
package layout

import (
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

// Grouper is the capability a node's visual group provides: an ordinary
// canvas item that can absorb members and move them together. Satisfied by
// *canvas.Group and by *GroupWrapper (whose Add is a frozen no-op).
type Grouper interface {
	canvas.Item
	Add(it canvas.Item)
	Members() []canvas.Item
}

// Edge is one direction-labeled parent→child connection.
type Edge struct {
	Dir   compass.Direction
	Child *Node
}

// Node is one vertex of a layout tree. It wraps a canvas item (a primitive
// shape or a composite) and owns the visual group that accumulates the
// shapes of its subtree during layout.
//
// Positioned transitions false→true exactly once, during the layout pass
// that places the node.
type Node struct {
	ID         string
	Shape      canvas.Item
	Parent     *Node
	Positioned bool

	group Grouper
	edges []Edge
}

// NewNode wraps a canvas item as a tree vertex. If the item is itself a
// Grouper (a composite built from an inner tree), it doubles as the node's
// group; otherwise a fresh empty group is created.
func NewNode(id string, shape canvas.Item) *Node {
	n := &Node{ID: id, Shape: shape}
	if g, ok := shape.(Grouper); ok {
		n.group = g
	} else {
		n.group = canvas.NewGroup("group:" + id)
	}
	return n
}

// Group returns the visual group accumulating this node's subtree.
func (n *Node) Group() Grouper { return n.group }

// Edges returns the node's direction-labeled children in declaration order.
func (n *Node) Edges() []Edge {
	out := make([]Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// ChildIn returns the child anchored in the given direction, if any.
func (n *Node) ChildIn(dir compass.Direction) (*Node, bool) {
	for _, e := range n.edges {
		if e.Dir == dir {
			return e.Child, true
		}
	}
	return nil, false
}

// DirectionTo returns the direction label of the edge from n to child.
// The second result is false when child is not a direct child of n.
func (n *Node) DirectionTo(child *Node) (compass.Direction, bool) {
	for _, e := range n.edges {
		if e.Child == child {
			return e.Dir, true
		}
	}
	return 0, false
}

// Children returns the direct children in declaration order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.edges))
	for i, e := range n.edges {
		out[i] = e.Child
	}
	return out
}

// Walk visits the subtree rooted at n depth-first, children before their
// parent, respecting edge declaration order.
func (n *Node) Walk(fn func(*Node)) {
	for _, e := range n.edges {
		e.Child.Walk(fn)
	}
	fn(n)
}

// subtreeLen counts the nodes in the subtree rooted at n, including n.
func (n *Node) subtreeLen() int {
	total := 1
	for _, e := range n.edges {
		total += e.Child.subtreeLen()
	}
	return total
}

// depth returns the height of the subtree rooted at n (1 for a leaf).
func (n *Node) depth() int {
	d := 0
	for _, e := range n.edges {
		if cd := e.Child.depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// boxes returns the node's raw shape box and its group's scene bounding box.
// The group box can be larger than the shape box when earlier passes nested
// subtree shapes at negative offsets inside the group.
func (n *Node) boxes() (shape, group canvas.Rect) {
	return n.Shape.Bounds(), n.group.Bounds()
}
