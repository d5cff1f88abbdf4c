package layout

import (
	"github.com/jverhoeven/anchormap/pkg/canvas"
)

// RemoveGroups recursively tears down the visual groupings of the tree
// rooted at root, bottom-up, without removing the member shapes from the
// canvas. Shapes keep their absolute positions, so the tree can be rebuilt
// and re-laid-out from scratch.
//
// Composite wrappers are not dismantled: they persist for the life of the
// diagram and are only repositioned by outer layout passes.
func RemoveGroups(c *canvas.Canvas, root *Node) {
	visited := make(map[*Node]bool)
	removeGroups(c, root, visited)
}

func removeGroups(c *canvas.Canvas, cur *Node, visited map[*Node]bool) {
	for _, e := range cur.edges {
		if visited[e.Child] {
			continue
		}
		visited[e.Child] = true
		removeGroups(c, e.Child, visited)
	}
	if g, ok := cur.group.(*canvas.Group); ok {
		c.DestroyGroup(g)
	}
}
