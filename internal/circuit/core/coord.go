package core

import "fmt"

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// DirTo returns the direction of travel from c to an adjacent coordinate.
// The second result is false when other is not exactly one unit step away.
func (c Coord) DirTo(other Coord) (Dir, bool) {
	switch {
	case other.X == c.X && other.Y == c.Y-1:
		return North, true
	case other.X == c.X+1 && other.Y == c.Y:
		return East, true
	case other.X == c.X && other.Y == c.Y+1:
		return South, true
	case other.X == c.X-1 && other.Y == c.Y:
		return West, true
	default:
		return 0, false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
