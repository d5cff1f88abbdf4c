package layout

import (
	"github.com/charmbracelet/log"

	"github.com/jverhoeven/anchormap/pkg/canvas"
)

// Layout positions every node of the tree rooted at root, mutating the
// canvas. Shapes are inserted into per-node groups, groups are moved to
// their computed absolute positions, and each placed subtree's shapes are
// merged into its parent's group so that later clearance queries see the
// rendered extent.
//
// The traversal is depth-first: subtrees with more than one member are laid
// out before their own placement is computed. The first placement at the top
// of the tree therefore anchors the parent relative to an already-positioned
// child (inverted direction); every subsequent edge places the child
// relative to its positioned parent.
//
// A childless root is a degenerate single-shape tree: no placement is
// performed and the root is marked positioned as-is.
func Layout(c *canvas.Canvas, root *Node, minSpacing float64) {
	LayoutWithLogger(c, root, minSpacing, log.Default())
}

// LayoutWithLogger is Layout with placement tracing on the given logger.
func LayoutWithLogger(c *canvas.Canvas, root *Node, minSpacing float64, logger *log.Logger) {
	visited := make(map[*Node]bool)
	layoutTree(c, root, minSpacing, visited, logger)
	if len(root.edges) == 0 {
		root.Positioned = true
	}
}

// layoutTree lays out the subtree rooted at cur. The visited set is scoped
// to one top-level Layout call; it guards against revisiting nodes when an
// outer recursion already processed them.
func layoutTree(c *canvas.Canvas, cur *Node, minSpacing float64, visited map[*Node]bool, logger *log.Logger) {
	if visited[cur] {
		return
	}
	visited[cur] = true

	// Deeper structure first: a child that roots a multi-node subtree must
	// be fully arranged before this level measures clearance against it.
	for _, e := range cur.edges {
		if e.Child.subtreeLen() > 1 {
			layoutTree(c, e.Child, minSpacing, visited, logger)
		}
	}

	for _, e := range cur.edges {
		if cur.Positioned {
			pos := Offset(cur, e.Child, e.Dir, minSpacing, false)
			logger.Debug("placing child relative to parent",
				"parent", cur.ID, "child", e.Child.ID, "dir", e.Dir, "x", pos.X, "y", pos.Y)
			place(c, e.Child, pos)
			c.Update()
			e.Child.Positioned = true
		} else {
			pos := Offset(cur, e.Child, e.Dir, minSpacing, true)
			logger.Debug("placing parent relative to child",
				"parent", cur.ID, "child", e.Child.ID, "dir", e.Dir.Invert(), "x", pos.X, "y", pos.Y)
			place(c, cur, pos)
			c.Update()
			cur.Positioned = true
			// The anchoring child never moved; the shared rigid offset fixes
			// it in place as well.
			e.Child.Positioned = true
		}

		// Merge the child's subtree shapes upward so this node's group box
		// reflects everything already placed beneath it.
		for _, grandchild := range e.Child.Children() {
			cur.group.Add(grandchild.Shape)
		}
		cur.group.Add(e.Child.Shape)
		c.Update()
	}
}

// place moves the node's group so its shape box lands exactly at pos. Going
// through the group keeps any already-merged subtree shapes rigidly attached;
// translating by the shape's delta keeps the move correct even when the shape
// does not start at the group's own position.
func place(c *canvas.Canvas, n *Node, pos canvas.Point) {
	// A composite is its own group; its boundary already sits on the canvas.
	if canvas.Item(n.group) != n.Shape && !c.Contains(n.group) {
		c.Add(n.group)
		n.group.Add(n.Shape)
	}
	sp := n.Shape.Pos()
	gp := n.group.Pos()
	n.group.MoveTo(gp.X+pos.X-sp.X, gp.Y+pos.Y-sp.Y)
}
