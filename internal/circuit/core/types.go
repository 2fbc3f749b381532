// Package core provides the puzzle model for Circuit Repair: grid and tiles,
// path generation, tile resolution, scrambling and connectivity checks.
// This package is UI-agnostic and deterministic given a random source.
package core

import "strings"

// Dir is a cardinal direction. Values are numbered clockwise from North so
// that rotating by k quarter-turns is addition modulo 4.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// AllDirs lists the four directions in clockwise order.
var AllDirs = [4]Dir{North, East, South, West}

// Valid reports whether d is one of the four cardinal directions.
func (d Dir) Valid() bool {
	return d <= West
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// North decreases Y, South increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	if !d.Valid() {
		return d
	}
	return (d + 2) % 4
}

// Rotate turns d clockwise by k quarter-turns. Negative k turns counter-clockwise.
func (d Dir) Rotate(k int) Dir {
	if !d.Valid() {
		return d
	}
	k %= 4
	if k < 0 {
		k += 4
	}
	return Dir((int(d) + k) % 4)
}

// DirSet is a bitmask of open directions.
type DirSet uint8

// NewDirSet builds a set from the given directions.
func NewDirSet(dirs ...Dir) DirSet {
	var s DirSet
	for _, d := range dirs {
		s = s.With(d)
	}
	return s
}

// With returns the set with d added.
func (s DirSet) With(d Dir) DirSet {
	if !d.Valid() {
		return s
	}
	return s | 1<<d
}

// Has reports whether d is in the set.
func (s DirSet) Has(d Dir) bool {
	return d.Valid() && s&(1<<d) != 0
}

// Len returns the number of directions in the set.
func (s DirSet) Len() int {
	n := 0
	for _, d := range AllDirs {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Dirs returns the members in clockwise order starting at North.
func (s DirSet) Dirs() []Dir {
	dirs := make([]Dir, 0, 4)
	for _, d := range AllDirs {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (s DirSet) String() string {
	names := make([]string, 0, 4)
	for _, d := range s.Dirs() {
		names = append(names, d.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// TileKind identifies the shape of a tile.
type TileKind uint8

const (
	Empty TileKind = iota
	PowerSource
	Terminal
	Straight
	Corner
)

// String returns the lowercase name used in level files.
func (k TileKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case PowerSource:
		return "source"
	case Terminal:
		return "terminal"
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	default:
		return "unknown"
	}
}

// ParseTileKind parses a tile kind name as produced by String.
func ParseTileKind(s string) (TileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "":
		return Empty, true
	case "source", "power", "power_source":
		return PowerSource, true
	case "terminal":
		return Terminal, true
	case "straight":
		return Straight, true
	case "corner":
		return Corner, true
	default:
		return Empty, false
	}
}

// Rotatable reports whether players may rotate tiles of this kind.
func (k TileKind) Rotatable() bool {
	return k == Straight || k == Corner
}

// Orientation is a clockwise rotation count in quarter-turns, 0..3.
type Orientation uint8

// Next returns the orientation one clockwise step further.
func (o Orientation) Next() Orientation {
	return (o + 1) % 4
}

// Valid reports whether o is in range.
func (o Orientation) Valid() bool {
	return o < 4
}
