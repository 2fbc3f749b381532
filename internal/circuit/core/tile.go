package core

import "fmt"

// Accepted is the set of orientations that count as solved for a tile.
// The set is derived from the kind: a Straight accepts a base orientation
// and its half-turn, a Corner accepts exactly one orientation, anything
// else accepts nothing. A wrong-sized set cannot be constructed.
type Accepted struct {
	kind TileKind
	base Orientation
}

// AcceptStraight returns the two-member set {o, o+2}.
func AcceptStraight(o Orientation) Accepted {
	return Accepted{kind: Straight, base: o % 2}
}

// AcceptCorner returns the one-member set {o}.
func AcceptCorner(o Orientation) Accepted {
	return Accepted{kind: Corner, base: o % 4}
}

// AcceptedFor builds the accepted set for a kind from one member.
func AcceptedFor(kind TileKind, o Orientation) Accepted {
	switch kind {
	case Straight:
		return AcceptStraight(o)
	case Corner:
		return AcceptCorner(o)
	default:
		return Accepted{}
	}
}

// Kind returns the tile kind this set was built for.
func (a Accepted) Kind() TileKind {
	return a.kind
}

// Len returns the number of accepted orientations (0, 1 or 2).
func (a Accepted) Len() int {
	switch a.kind {
	case Straight:
		return 2
	case Corner:
		return 1
	default:
		return 0
	}
}

// Contains reports whether o is an accepted orientation.
func (a Accepted) Contains(o Orientation) bool {
	switch a.kind {
	case Straight:
		return o%2 == a.base
	case Corner:
		return o%4 == a.base
	default:
		return false
	}
}

// Orientations returns the accepted orientations in ascending order.
func (a Accepted) Orientations() []Orientation {
	switch a.kind {
	case Straight:
		return []Orientation{a.base, a.base + 2}
	case Corner:
		return []Orientation{a.base}
	default:
		return nil
	}
}

// Complement returns the orientations that are not accepted.
// Empty for kinds that accept nothing, since those are never scrambled.
func (a Accepted) Complement() []Orientation {
	if a.Len() == 0 {
		return nil
	}
	out := make([]Orientation, 0, 3)
	for o := Orientation(0); o < 4; o++ {
		if !a.Contains(o) {
			out = append(out, o)
		}
	}
	return out
}

func (a Accepted) String() string {
	return fmt.Sprint(a.Orientations())
}

// Tile is a single grid cell.
type Tile struct {
	Pos         Coord
	Kind        TileKind
	Orientation Orientation
	Clickable   bool
	Accepted    Accepted
}

// OpenDirs returns the directions the tile currently connects through.
func (t Tile) OpenDirs() DirSet {
	return OpenDirs(t.Kind, t.Orientation)
}

// Solved reports whether a clickable tile sits at an accepted orientation.
// Fixed tiles are always considered solved.
func (t Tile) Solved() bool {
	if !t.Clickable {
		return true
	}
	return t.Accepted.Contains(t.Orientation)
}

// TurnsToSolve returns the number of clockwise rotations needed to reach
// the nearest accepted orientation.
func (t Tile) TurnsToSolve() int {
	if !t.Clickable {
		return 0
	}
	best := 4
	for _, a := range t.Accepted.Orientations() {
		turns := (int(a) - int(t.Orientation) + 4) % 4
		if turns < best {
			best = turns
		}
	}
	if best == 4 {
		return 0
	}
	return best
}

// OpenDirs maps a kind and orientation to its open directions.
//
//	Straight: 0,2 -> {E,W}; 1,3 -> {N,S}
//	Corner:   0 -> {N,E}; 1 -> {E,S}; 2 -> {S,W}; 3 -> {W,N}
//	PowerSource: East turned clockwise by the orientation
//	Terminal:    West turned clockwise by the orientation
func OpenDirs(kind TileKind, o Orientation) DirSet {
	k := int(o % 4)
	switch kind {
	case Straight:
		if k%2 == 0 {
			return NewDirSet(East, West)
		}
		return NewDirSet(North, South)
	case Corner:
		return NewDirSet(North.Rotate(k), East.Rotate(k))
	case PowerSource:
		return NewDirSet(East.Rotate(k))
	case Terminal:
		return NewDirSet(West.Rotate(k))
	default:
		return 0
	}
}
