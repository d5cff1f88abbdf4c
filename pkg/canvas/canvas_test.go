package canvas

import "testing"

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"Disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, Rect{0, 0, 25, 25}},
		{"Contained", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 3}, Rect{0, 0, 10, 10}},
		{"EmptyLeft", Rect{}, Rect{5, 5, 1, 1}, Rect{5, 5, 1, 1}},
		{"Negative", Rect{-5, -40, 30, 10}, Rect{0, 0, 20, 20}, Rect{-5, -40, 30, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"Overlap", Rect{9, 9, 5, 5}, true},
		{"EdgeTouch", Rect{10, 0, 5, 5}, false},
		{"CornerTouch", Rect{10, 10, 5, 5}, false},
		{"Disjoint", Rect{30, 0, 5, 5}, false},
		{"Contained", Rect{1, 1, 2, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps not symmetric for %+v", tt.b)
			}
		})
	}
}

func TestGroupAddPreservesPosition(t *testing.T) {
	s := NewShape("a", 10, 10)
	s.MoveTo(7, 9)

	g := NewGroup("g")
	g.MoveTo(100, 100)
	g.Add(s)

	if got := s.Pos(); got != (Point{7, 9}) {
		t.Errorf("pos after Add = %+v, want {7 9}", got)
	}
}

func TestGroupMoveTranslatesMembers(t *testing.T) {
	a := NewShape("a", 10, 10)
	b := NewShape("b", 5, 5)
	b.MoveTo(20, 0)

	g := NewGroup("g")
	g.Add(a)
	g.Add(b)
	g.MoveTo(-5, -40)

	if got := a.Pos(); got != (Point{-5, -40}) {
		t.Errorf("a = %+v, want {-5 -40}", got)
	}
	if got := b.Pos(); got != (Point{15, -40}) {
		t.Errorf("b = %+v, want {15 -40}", got)
	}
	if got := g.Bounds(); got != (Rect{-5, -40, 25, 10}) {
		t.Errorf("bounds = %+v, want {-5 -40 25 10}", got)
	}
}

func TestGroupReparent(t *testing.T) {
	s := NewShape("a", 10, 10)
	g1 := NewGroup("g1")
	g2 := NewGroup("g2")

	g1.Add(s)
	g2.Add(s)

	if len(g1.Members()) != 0 {
		t.Errorf("g1 still has %d members", len(g1.Members()))
	}
	if got := s.ContainingGroup(); got != g2 {
		t.Errorf("ContainingGroup = %v, want g2", got)
	}

	// Moving the old group must no longer affect the shape.
	g1.MoveTo(50, 50)
	if got := s.Pos(); got != (Point{0, 0}) {
		t.Errorf("pos after old group move = %+v, want origin", got)
	}
}

func TestCanvasMembership(t *testing.T) {
	c := New()
	s := NewShape("a", 1, 1)

	if c.Contains(s) {
		t.Fatal("empty canvas contains item")
	}
	c.Add(s)
	c.Add(s) // idempotent
	if !c.Contains(s) || c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	c.Remove(s)
	if c.Contains(s) || c.Len() != 0 {
		t.Fatal("item still present after Remove")
	}
}

func TestCanvasColliding(t *testing.T) {
	c := New()
	a := NewShape("a", 10, 10)
	b := NewShape("b", 10, 10)
	b.MoveTo(5, 5)
	far := NewShape("far", 10, 10)
	far.MoveTo(100, 100)
	line := NewLine("conn", Point{0, 0}, Point{8, 8})

	c.Add(a)
	c.Add(b)
	c.Add(far)
	c.Add(line)

	hits := c.Colliding(a)
	if len(hits) != 2 {
		t.Fatalf("colliding = %d items, want 2 (shape b and the line)", len(hits))
	}
	if hits[0].Name() != "b" || hits[1].Name() != "conn" {
		t.Errorf("unexpected hit order: %s, %s", hits[0].Name(), hits[1].Name())
	}
}

func TestDestroyGroupKeepsMembers(t *testing.T) {
	c := New()
	s := NewShape("a", 10, 10)
	s.MoveTo(3, 4)
	g := NewGroup("g")
	g.Add(s)
	c.Add(s)
	c.Add(g)

	c.DestroyGroup(g)

	if c.Contains(g) {
		t.Error("group still on canvas")
	}
	if !c.Contains(s) {
		t.Error("member removed with group")
	}
	if s.ContainingGroup() != nil {
		t.Error("member still parented")
	}
	if got := s.Pos(); got != (Point{3, 4}) {
		t.Errorf("member moved during destroy: %+v", got)
	}
}

func TestLineBoundsAndMove(t *testing.T) {
	l := NewLine("c", Point{10, 0}, Point{0, 5})
	if got := l.Bounds(); got != (Rect{0, 0, 10, 5}) {
		t.Fatalf("bounds = %+v", got)
	}
	l.MoveTo(100, 100)
	if l.From != (Point{110, 100}) || l.To != (Point{100, 105}) {
		t.Errorf("endpoints after move: %+v -> %+v", l.From, l.To)
	}
}
