package layout

import (
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

// Offset computes the placement position for one side of a parent→child
// anchor edge. It is a pure function of the two nodes' box geometries, the
// edge direction, the minimum clearance, and the mode; it applies nothing.
//
// Two modes exist because the engine positions subtrees deepest-first and
// must always place whichever side of an edge is still floating:
//
//   - parentToNode: the parent is not yet positioned and is pulled toward
//     the already-placed child. The edge direction is inverted first, since
//     from the child's perspective the parent sits on the opposite side.
//     The result is the parent box's target position.
//   - !parentToNode: the parent is already positioned and the child is
//     placed along the direction as declared. The result is the child
//     box's target position.
//
// Cardinal directions center the moved box on the stationary box's
// cross-axis midline and offset along the direction axis by the stationary
// extent plus minSpacing. Diagonal directions compose the horizontal and
// vertical offsets and are flush on both axes.
//
// When the stationary child's group box outgrew its own shape box (inner
// subtrees placed at negative offsets), the inflation is added as extra
// clearance, but only on the side of the box that actually grew.
func Offset(parent, node *Node, dir compass.Direction, minSpacing float64, parentToNode bool) canvas.Point {
	pBox, _ := parent.boxes()
	nBox, nGroup := node.boxes()

	if parentToNode {
		return offsetParent(pBox, nBox, nGroup, dir.Invert(), minSpacing)
	}
	return offsetChild(pBox, nBox, dir, minSpacing)
}

// growth measures how far a node's group box extends beyond its own shape
// box on each side. A group that has not accumulated members yet grows
// nowhere.
type growth struct {
	north, south, east, west float64
}

func measureGrowth(shape, group canvas.Rect) growth {
	if group.Empty() {
		return growth{}
	}
	return growth{
		north: max(0, shape.Y-group.Y),
		south: max(0, group.Bottom()-shape.Bottom()),
		east:  max(0, group.Right()-shape.Right()),
		west:  max(0, shape.X-group.X),
	}
}

// offsetParent places the parent box relative to the already-positioned
// child, along the inverted edge direction. Clearance is measured from the
// child's rendered extent: where the child's group outgrew its shape box,
// the overhang on the facing side is added to the spacing.
func offsetParent(p, n, nGroup canvas.Rect, inv compass.Direction, minSpacing float64) canvas.Point {
	var spacingX, spacingY float64
	g := measureGrowth(n, nGroup)
	switch {
	case inv.Eastward():
		spacingX = g.east
	case inv.Westward():
		spacingX = g.west
	}
	switch {
	case inv.Northward():
		spacingY = g.north
	case inv.Southward():
		spacingY = g.south
	}

	x, y := n.X, n.Y
	switch {
	case inv.Northward() || inv.Southward():
		switch {
		case inv.Eastward():
			x += n.W + spacingX + minSpacing
		case inv.Westward():
			x += -minSpacing - spacingX - p.W
		default:
			x += n.W/2 - p.W/2
		}
		if inv.Northward() {
			y += -minSpacing - spacingY - p.H
		} else {
			y += n.H + minSpacing + spacingY
		}
	case inv.Eastward():
		x += n.W + spacingX + minSpacing
		y += n.H/2 - p.H/2
	case inv.Westward():
		x += -minSpacing - spacingX - p.W
		y += n.H/2 - p.H/2
	}
	return canvas.Point{X: x, Y: y}
}

// offsetChild places the child box relative to the already-positioned
// parent, along the direction as declared.
func offsetChild(p, n canvas.Rect, dir compass.Direction, minSpacing float64) canvas.Point {
	x, y := p.X, p.Y
	switch {
	case dir.Northward() || dir.Southward():
		switch {
		case dir.Eastward():
			x += p.W + minSpacing
		case dir.Westward():
			x += -minSpacing - n.W
		default:
			x += p.W/2 - n.W/2
		}
		if dir.Northward() {
			y += -minSpacing - n.H
		} else {
			y += p.H + minSpacing
		}
	case dir.Eastward():
		x += p.W + minSpacing
		y += p.H/2 - n.H/2
	case dir.Westward():
		x += -minSpacing - n.W
		y += p.H/2 - n.H/2
	}
	return canvas.Point{X: x, Y: y}
}
