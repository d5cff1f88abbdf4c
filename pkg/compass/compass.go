// Package compass defines the eight-way anchor directions used to describe
// how diagram elements attach to each other.
//
// A direction labels the side or corner of a parent element that a child is
// anchored to. Directions are involutive under [Direction.Invert]: inverting
// twice yields the original direction, and no direction is its own inverse.
package compass

import (
	"errors"
	"fmt"
)

// ErrUnknownDirection is returned by [Parse] when the input is not one of
// the eight compass labels.
var ErrUnknownDirection = errors.New("unknown anchor direction")

// Direction is an eight-way compass anchor direction.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// names is indexed by Direction and doubles as the wire format used in
// map files.
var names = [...]string{
	North:     "n",
	South:     "s",
	East:      "e",
	West:      "w",
	NorthEast: "ne",
	NorthWest: "nw",
	SouthEast: "se",
	SouthWest: "sw",
}

var inverses = [...]Direction{
	North:     South,
	South:     North,
	East:      West,
	West:      East,
	NorthEast: SouthWest,
	NorthWest: SouthEast,
	SouthEast: NorthWest,
	SouthWest: NorthEast,
}

// All lists every direction in declaration order. Useful for exhaustive
// iteration in tests and table construction.
var All = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Parse converts a compass label ("n", "sw", ...) into a Direction.
func Parse(s string) (Direction, error) {
	for d, name := range names {
		if name == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// String returns the compass label for the direction.
func (d Direction) String() string {
	if int(d) < 0 || int(d) >= len(names) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return names[d]
}

// Invert returns the opposite direction. The mapping is a fixed-point-free
// involution: Invert(Invert(d)) == d and Invert(d) != d for all d.
func (d Direction) Invert() Direction { return inverses[d] }

// Northward reports whether the direction has a north component.
func (d Direction) Northward() bool { return d == North || d == NorthEast || d == NorthWest }

// Southward reports whether the direction has a south component.
func (d Direction) Southward() bool { return d == South || d == SouthEast || d == SouthWest }

// Eastward reports whether the direction has an east component.
func (d Direction) Eastward() bool { return d == East || d == NorthEast || d == SouthEast }

// Westward reports whether the direction has a west component.
func (d Direction) Westward() bool { return d == West || d == NorthWest || d == SouthWest }

// Diagonal reports whether the direction is one of the four corner anchors.
func (d Direction) Diagonal() bool { return d >= NorthEast }
