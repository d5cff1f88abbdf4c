package layout

import (
	"testing"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

func TestOffsetChild(t *testing.T) {
	// Parent 40x20 at the origin, child 10x10, clearance 5.
	tests := []struct {
		dir  compass.Direction
		want canvas.Point
	}{
		{compass.North, canvas.Point{X: 15, Y: -15}},
		{compass.South, canvas.Point{X: 15, Y: 25}},
		{compass.East, canvas.Point{X: 45, Y: 5}},
		{compass.West, canvas.Point{X: -15, Y: 5}},
		{compass.NorthEast, canvas.Point{X: 45, Y: -15}},
		{compass.NorthWest, canvas.Point{X: -15, Y: -15}},
		{compass.SouthEast, canvas.Point{X: 45, Y: 25}},
		{compass.SouthWest, canvas.Point{X: -15, Y: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			parent := NewNode("p", canvas.NewShape("p", 40, 20))
			child := NewNode("c", canvas.NewShape("c", 10, 10))
			got := Offset(parent, child, tt.dir, 5, false)
			if got != tt.want {
				t.Errorf("Offset(%s, child) = %+v, want %+v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestOffsetParent(t *testing.T) {
	// Child 10x10 at the origin, parent 40x20, clearance 5. The parent lands
	// on the opposite side of the declared direction.
	tests := []struct {
		dir  compass.Direction
		want canvas.Point
	}{
		{compass.North, canvas.Point{X: -15, Y: 15}},
		{compass.South, canvas.Point{X: -15, Y: -25}},
		{compass.East, canvas.Point{X: -45, Y: -5}},
		{compass.West, canvas.Point{X: 15, Y: -5}},
		{compass.NorthEast, canvas.Point{X: -45, Y: 15}},
		{compass.NorthWest, canvas.Point{X: 15, Y: 15}},
		{compass.SouthEast, canvas.Point{X: -45, Y: -25}},
		{compass.SouthWest, canvas.Point{X: 15, Y: -25}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			parent := NewNode("p", canvas.NewShape("p", 40, 20))
			child := NewNode("c", canvas.NewShape("c", 10, 10))
			got := Offset(parent, child, tt.dir, 5, true)
			if got != tt.want {
				t.Errorf("Offset(%s, parent) = %+v, want %+v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestOffsetParentGroupInflation(t *testing.T) {
	// The child's group box spans (0,-40) to (10,10): it outgrew the child's
	// own 10x10 shape box by 40 units upward. The overhang is charged only
	// when the parent is placed on the grown side.
	newChild := func() *Node {
		child := NewNode("c", canvas.NewShape("c", 10, 10))
		buddy := canvas.NewShape("buddy", 10, 10)
		buddy.MoveTo(0, -40)
		child.group.Add(child.Shape)
		child.group.Add(buddy)
		return child
	}

	tests := []struct {
		name string
		dir  compass.Direction
		want canvas.Point
	}{
		// dir s inverts to n: the parent goes above, across the overhang.
		{"grown side", compass.South, canvas.Point{X: -15, Y: -65}},
		// dir n inverts to s: the parent goes below, nothing in the way.
		{"opposite side", compass.North, canvas.Point{X: -15, Y: 15}},
		// dir w inverts to e: no horizontal growth at all.
		{"orthogonal side", compass.West, canvas.Point{X: 15, Y: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := NewNode("p", canvas.NewShape("p", 40, 20))
			got := Offset(parent, newChild(), tt.dir, 5, true)
			if got != tt.want {
				t.Errorf("Offset(%s, parent) = %+v, want %+v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestMeasureGrowth(t *testing.T) {
	shape := canvas.Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		group canvas.Rect
		want  growth
	}{
		{"empty group", canvas.Rect{}, growth{}},
		{"same box", shape, growth{}},
		{"grown west and north", canvas.Rect{X: -20, Y: -5, W: 30, H: 15}, growth{north: 5, west: 20}},
		{"grown east and south", canvas.Rect{X: 0, Y: 0, W: 25, H: 40}, growth{south: 30, east: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := measureGrowth(shape, tt.group); got != tt.want {
				t.Errorf("measureGrowth() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
