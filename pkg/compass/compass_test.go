package compass

import (
	"errors"
	"testing"
)

func TestInvertIsInvolution(t *testing.T) {
	for _, d := range All {
		inv := d.Invert()
		if inv == d {
			t.Errorf("Invert(%s) = %s, want a different direction", d, inv)
		}
		if got := inv.Invert(); got != d {
			t.Errorf("Invert(Invert(%s)) = %s, want %s", d, got, d)
		}
	}
}

func TestInvertTable(t *testing.T) {
	want := map[Direction]Direction{
		North:     South,
		East:      West,
		NorthEast: SouthWest,
		NorthWest: SouthEast,
	}
	for d, inv := range want {
		if got := d.Invert(); got != inv {
			t.Errorf("Invert(%s) = %s, want %s", d, got, inv)
		}
		if got := inv.Invert(); got != d {
			t.Errorf("Invert(%s) = %s, want %s", inv, got, d)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range All {
		got, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", d.String(), err)
		}
		if got != d {
			t.Errorf("Parse(%q) = %s, want %s", d.String(), got, d)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, s := range []string{"", "north", "N", "ns", "x"} {
		if _, err := Parse(s); !errors.Is(err, ErrUnknownDirection) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownDirection", s, err)
		}
	}
}

func TestComponents(t *testing.T) {
	tests := []struct {
		d          Direction
		n, s, e, w bool
	}{
		{North, true, false, false, false},
		{South, false, true, false, false},
		{East, false, false, true, false},
		{West, false, false, false, true},
		{NorthEast, true, false, true, false},
		{NorthWest, true, false, false, true},
		{SouthEast, false, true, true, false},
		{SouthWest, false, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.Northward(); got != tt.n {
				t.Errorf("Northward = %v, want %v", got, tt.n)
			}
			if got := tt.d.Southward(); got != tt.s {
				t.Errorf("Southward = %v, want %v", got, tt.s)
			}
			if got := tt.d.Eastward(); got != tt.e {
				t.Errorf("Eastward = %v, want %v", got, tt.e)
			}
			if got := tt.d.Westward(); got != tt.w {
				t.Errorf("Westward = %v, want %v", got, tt.w)
			}
			if got, want := tt.d.Diagonal(), tt.d >= NorthEast; got != want {
				t.Errorf("Diagonal = %v, want %v", got, want)
			}
		})
	}
}
