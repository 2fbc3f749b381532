// Package formats provides the serializable level record and its YAML and
// JSON encodings.
package formats

import (
	"fmt"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// maxRecordSize bounds the boards a record may describe.
const maxRecordSize = 32

// Record is the exchange form of a level. Tile orientations hold the
// solution; Initial holds the scrambled start, row-major.
type Record struct {
	ID         string            `yaml:"id" json:"id"`
	Name       string            `yaml:"name,omitempty" json:"name,omitempty"`
	Difficulty string            `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Seed       int64             `yaml:"seed,omitempty" json:"seed,omitempty"`
	Size       int               `yaml:"size" json:"size"`
	Source     Point             `yaml:"source" json:"source"`
	Terminal   Point             `yaml:"terminal" json:"terminal"`
	Path       []Point           `yaml:"path,omitempty" json:"path,omitempty"`
	Tiles      []TileRecord      `yaml:"tiles" json:"tiles"`
	Initial    []int             `yaml:"initial,flow" json:"initial"`
	Stats      *StatsRecord      `yaml:"stats,omitempty" json:"stats,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Point is a grid coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// TileRecord is one grid cell.
type TileRecord struct {
	X           int     `yaml:"x" json:"x"`
	Y           int     `yaml:"y" json:"y"`
	Kind        string  `yaml:"kind" json:"kind"`
	Orientation int     `yaml:"orientation" json:"orientation"`
	Clickable   bool    `yaml:"clickable" json:"clickable"`
	Accepted    []int   `yaml:"accepted,flow,omitempty" json:"acceptedOrientations,omitempty"`
}

// StatsRecord carries the structural counts for consumers.
type StatsRecord struct {
	Movable  int `yaml:"movable" json:"movable"`
	Corners  int `yaml:"corners" json:"corners"`
	MinMoves int `yaml:"min_moves" json:"minMoves"`
}

func point(c core.Coord) Point {
	return Point{X: c.X, Y: c.Y}
}

func (p Point) coord() core.Coord {
	return core.C(p.X, p.Y)
}

// FromLevel converts a level to its exchange record.
func FromLevel(l *core.Level) Record {
	r := Record{
		ID:         l.ID,
		Difficulty: l.Difficulty,
		Seed:       l.Seed,
		Size:       l.Size(),
		Source:     point(l.Grid.Source),
		Terminal:   point(l.Grid.Terminal),
		Tiles:      make([]TileRecord, 0, len(l.Grid.Tiles)),
		Initial:    make([]int, len(l.Initial)),
		Stats: &StatsRecord{
			Movable:  l.MovableCount,
			Corners:  l.CornerCount,
			MinMoves: l.InitialGrid().MinimumMoves(),
		},
	}
	for _, c := range l.Path {
		r.Path = append(r.Path, point(c))
	}

	solution := l.SolutionGrid()
	for _, t := range solution.Tiles {
		tr := TileRecord{
			X:           t.Pos.X,
			Y:           t.Pos.Y,
			Kind:        t.Kind.String(),
			Orientation: int(t.Orientation),
			Clickable:   t.Clickable,
		}
		for _, o := range t.Accepted.Orientations() {
			tr.Accepted = append(tr.Accepted, int(o))
		}
		r.Tiles = append(r.Tiles, tr)
	}
	for i, o := range l.Initial {
		r.Initial[i] = int(o)
	}
	return r
}

// ToLevel rebuilds a level from the record and checks its invariants.
func (r Record) ToLevel() (*core.Level, error) {
	if r.Size < 2 || r.Size > maxRecordSize {
		return nil, fmt.Errorf("level %s: unsupported size %d", r.ID, r.Size)
	}
	if len(r.Tiles) != r.Size*r.Size {
		return nil, fmt.Errorf("level %s: %d tiles for size %d", r.ID, len(r.Tiles), r.Size)
	}

	g := core.NewGrid(r.Size)
	seen := make(map[core.Coord]bool, len(r.Tiles))
	for _, tr := range r.Tiles {
		pos := core.C(tr.X, tr.Y)
		if seen[pos] {
			return nil, fmt.Errorf("level %s: tile (%d,%d) listed twice", r.ID, tr.X, tr.Y)
		}
		seen[pos] = true

		kind, ok := core.ParseTileKind(tr.Kind)
		if !ok {
			return nil, fmt.Errorf("level %s: tile (%d,%d): unknown kind %q", r.ID, tr.X, tr.Y, tr.Kind)
		}
		if !validOrientation(tr.Orientation) {
			return nil, fmt.Errorf("level %s: tile (%d,%d): orientation %d out of range", r.ID, tr.X, tr.Y, tr.Orientation)
		}
		accepted, err := acceptedFromRecord(kind, tr.Accepted)
		if err != nil {
			return nil, fmt.Errorf("level %s: tile (%d,%d): %w", r.ID, tr.X, tr.Y, err)
		}
		t := core.Tile{
			Pos:         pos,
			Kind:        kind,
			Orientation: core.Orientation(tr.Orientation),
			Clickable:   tr.Clickable,
			Accepted:    accepted,
		}
		if err := g.Set(t); err != nil {
			return nil, fmt.Errorf("level %s: %w", r.ID, err)
		}
	}

	if g.Source != r.Source.coord() || g.Terminal != r.Terminal.coord() {
		return nil, fmt.Errorf("level %s: endpoints %v/%v do not match tiles %v/%v",
			r.ID, r.Source.coord(), r.Terminal.coord(), g.Source, g.Terminal)
	}
	if err := core.ValidateLayout(g); err != nil {
		return nil, fmt.Errorf("level %s: %w", r.ID, err)
	}
	if !core.IsConnected(g) {
		return nil, fmt.Errorf("level %s: solution orientations do not connect", r.ID)
	}

	initial := make(core.Orientations, len(g.Tiles))
	switch len(r.Initial) {
	case 0:
		copy(initial, g.Snapshot())
	case len(g.Tiles):
		for i, o := range r.Initial {
			if !validOrientation(o) {
				return nil, fmt.Errorf("level %s: initial orientation %d out of range", r.ID, o)
			}
			if !g.Tiles[i].Clickable && core.Orientation(o) != g.Tiles[i].Orientation {
				return nil, fmt.Errorf("level %s: initial state rotates fixed tile %v", r.ID, g.Tiles[i].Pos)
			}
			initial[i] = core.Orientation(o)
		}
	default:
		return nil, fmt.Errorf("level %s: %d initial orientations for %d tiles", r.ID, len(r.Initial), len(g.Tiles))
	}

	path := make([]core.Coord, 0, len(r.Path))
	for _, p := range r.Path {
		path = append(path, p.coord())
	}
	if len(path) == 0 {
		if live, ok := core.FindLivePath(g); ok {
			path = live
		}
	}

	level, err := core.NewLevel(r.Difficulty, r.Seed, g, path, initial)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", r.ID, err)
	}
	if r.ID != "" {
		level.ID = r.ID
	}
	return level, nil
}

// acceptedFromRecord rebuilds the accepted set and checks it has the size
// the kind requires.
func acceptedFromRecord(kind core.TileKind, members []int) (core.Accepted, error) {
	if !kind.Rotatable() {
		if len(members) != 0 {
			return core.Accepted{}, fmt.Errorf("%s tile cannot have accepted orientations", kind)
		}
		return core.Accepted{}, nil
	}
	if len(members) == 0 {
		return core.Accepted{}, fmt.Errorf("%s tile needs accepted orientations", kind)
	}
	if !validOrientation(members[0]) {
		return core.Accepted{}, fmt.Errorf("accepted orientation %d out of range", members[0])
	}

	a := core.AcceptedFor(kind, core.Orientation(members[0]))
	if len(members) != a.Len() {
		return core.Accepted{}, fmt.Errorf("%s tile needs %d accepted orientations, got %d", kind, a.Len(), len(members))
	}
	for _, m := range members {
		if !validOrientation(m) || !a.Contains(core.Orientation(m)) {
			return core.Accepted{}, fmt.Errorf("accepted set %v is not valid for %s", members, kind)
		}
	}
	return a, nil
}

func validOrientation(o int) bool {
	return o >= 0 && o <= 3
}
