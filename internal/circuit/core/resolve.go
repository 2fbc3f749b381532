package core

import "fmt"

// Resolution is the shape chosen for one interior path cell.
type Resolution struct {
	Kind        TileKind
	Orientation Orientation // canonical solved orientation
	Accepted    Accepted
}

// ResolveCell maps the direction of travel into a cell (in) and out of it
// (out) to a tile shape. Travel that continues in the same direction is a
// Straight; a quarter-turn is a Corner. A reversal or an invalid direction
// is a geometry error.
func ResolveCell(in, out Dir) (Resolution, error) {
	if !in.Valid() || !out.Valid() {
		return Resolution{}, fmt.Errorf("directions %d/%d: %w", in, out, ErrInvalidGeometry)
	}
	if in == out.Opposite() {
		return Resolution{}, fmt.Errorf("path reverses from %s to %s: %w", in, out, ErrInvalidGeometry)
	}

	if in == out {
		o := Orientation(0)
		if in == North || in == South {
			o = 1
		}
		return Resolution{Kind: Straight, Orientation: o, Accepted: AcceptStraight(o)}, nil
	}

	want := NewDirSet(in.Opposite(), out)
	for o := Orientation(0); o < 4; o++ {
		if OpenDirs(Corner, o) == want {
			return Resolution{Kind: Corner, Orientation: o, Accepted: AcceptCorner(o)}, nil
		}
	}
	// Unreachable for perpendicular cardinal directions.
	return Resolution{}, fmt.Errorf("no corner for %s: %w", want, ErrInvalidGeometry)
}

// SourceOrientation returns the PowerSource orientation that faces out.
func SourceOrientation(out Dir) Orientation {
	return Orientation((int(out) - int(East) + 4) % 4)
}

// TerminalOrientation returns the Terminal orientation that accepts entry
// when travelling in direction in. Its open side is opposite(in).
func TerminalOrientation(in Dir) Orientation {
	open := in.Opposite()
	return Orientation((int(open) - int(West) + 4) % 4)
}

// ResolvePath builds a solved grid from an ordered source-to-terminal path.
// Every consecutive pair must be unit-adjacent and no cell may repeat.
func ResolvePath(size int, path []Coord) (*Grid, error) {
	if len(path) < 3 {
		at := Coord{}
		if len(path) > 0 {
			at = path[0]
		}
		return nil, &GeometryError{At: at, Reason: fmt.Sprintf("path has %d cells, need at least 3", len(path))}
	}

	g := NewGrid(size)
	seen := make(map[Coord]bool, len(path))
	steps := make([]Dir, len(path)-1)

	for i, c := range path {
		if !g.InBounds(c) {
			return nil, &GeometryError{At: c, Reason: "cell outside grid"}
		}
		if seen[c] {
			return nil, &GeometryError{At: c, Reason: "cell visited twice"}
		}
		seen[c] = true
		if i == 0 {
			continue
		}
		d, ok := path[i-1].DirTo(c)
		if !ok {
			return nil, &GeometryError{At: c, Reason: fmt.Sprintf("not adjacent to %v", path[i-1])}
		}
		steps[i-1] = d
	}

	last := len(path) - 1
	for i, c := range path {
		var t Tile
		switch i {
		case 0:
			t = Tile{Pos: c, Kind: PowerSource, Orientation: SourceOrientation(steps[0])}
		case last:
			t = Tile{Pos: c, Kind: Terminal, Orientation: TerminalOrientation(steps[last-1])}
		default:
			r, err := ResolveCell(steps[i-1], steps[i])
			if err != nil {
				return nil, &GeometryError{At: c, Reason: err.Error()}
			}
			t = Tile{
				Pos:         c,
				Kind:        r.Kind,
				Orientation: r.Orientation,
				Clickable:   true,
				Accepted:    r.Accepted,
			}
		}
		if err := g.Set(t); err != nil {
			return nil, err
		}
	}

	return g, nil
}
