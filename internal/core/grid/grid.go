// Package grid provides integer cell coordinates and the four cardinal
// directions used for single-step movement.
package grid

import "fmt"

// Position is a cell coordinate on the board.
type Position struct {
	X, Y int
}

// Add returns the position offset by the direction's delta.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents a cardinal movement direction.
// Diagonals are intentionally absent: every move changes exactly one axis.
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

// Directions lists the four movement directions.
var Directions = [4]Direction{DirNorth, DirSouth, DirEast, DirWest}

// Delta returns the x,y delta for a direction.
// North is toward smaller y, matching screen coordinates.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// IsHorizontal reports whether the direction moves along the x axis.
func (d Direction) IsHorizontal() bool {
	return d == DirEast || d == DirWest
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	default:
		return "none"
	}
}

// Toward returns the direction along one axis that brings from closer to to.
// A zero distance on that axis yields West or North.
func Toward(from, to Position, horizontal bool) Direction {
	if horizontal {
		if to.X > from.X {
			return DirEast
		}
		return DirWest
	}
	if to.Y > from.Y {
		return DirSouth
	}
	return DirNorth
}

// Bounds is an inclusive rectangle of valid cells.
type Bounds struct {
	Min, Max Position
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width returns the number of columns covered.
func (b Bounds) Width() int { return b.Max.X - b.Min.X + 1 }

// Height returns the number of rows covered.
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y + 1 }
