package layout

import (
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

// anchorOffsets maps an edge direction to the connector endpoints on both
// boxes: (px, py) on the parent's bounding box and (nx, ny) on the child's,
// expressed as fractions applied to each box's width and height.
//
// Cardinal edges leave from the midpoint of the facing side; diagonal edges
// leave from the facing corner.
type anchorOffsets struct {
	px, py float64 // parent anchor, multiplied by parent width/height
	nx, ny float64 // child anchor, multiplied by child width/height
}

var anchorTable = map[compass.Direction]anchorOffsets{
	compass.North:     {0.5, 0, 0.5, 1},
	compass.South:     {0.5, 1, 0.5, 0},
	compass.East:      {1, 0.5, 0, 0.5},
	compass.West:      {0, 0.5, 1, 0.5},
	compass.NorthWest: {0, 0, 1, 1},
	compass.NorthEast: {1, 0, 0, 1},
	compass.SouthWest: {0, 1, 1, 0},
	compass.SouthEast: {1, 1, 0, 0},
}

// AnchorPoints returns the absolute connector endpoints for a parent→child
// edge in the given direction, using the boxes' current scene positions.
func AnchorPoints(parent, child canvas.Item, dir compass.Direction) (from, to canvas.Point) {
	o := anchorTable[dir]
	pp, cp := parent.Pos(), child.Pos()
	from = canvas.Point{X: pp.X + o.px*parent.Width(), Y: pp.Y + o.py*parent.Height()}
	to = canvas.Point{X: cp.X + o.nx*child.Width(), Y: cp.Y + o.ny*child.Height()}
	return from, to
}

// Connect draws one straight connector line per parent→child edge of the
// tree rooted at root, anchored at the per-direction edge points of each
// box. It reads post-layout positions only; nothing is moved.
func Connect(c *canvas.Canvas, root *Node) {
	visited := make(map[*Node]bool)
	connectTree(c, root, visited)
}

func connectTree(c *canvas.Canvas, cur *Node, visited map[*Node]bool) {
	if visited[cur] {
		return
	}
	visited[cur] = true

	for _, e := range cur.edges {
		if e.Child.subtreeLen() > 1 {
			connectTree(c, e.Child, visited)
		}
	}

	for _, e := range cur.edges {
		parent := connectorBox(cur.Shape, e.Dir)
		child := connectorBox(e.Child.Shape, e.Dir.Invert())
		from, to := AnchorPoints(parent, child, e.Dir)
		c.Add(canvas.NewLine(cur.ID+"-"+e.Child.ID, from, to))
	}
	c.Update()
}

// connectorBox resolves the box a connector attaches to. Composites may
// designate a member per side; everything else connects to its own box.
func connectorBox(it canvas.Item, side compass.Direction) canvas.Item {
	if w, ok := it.(*GroupWrapper); ok {
		return w.AnchorItem(side)
	}
	return it
}
