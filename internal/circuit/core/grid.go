package core

import "fmt"

// Grid is an N×N board of tiles stored in row-major order: index = y*Size + x.
// Topology is fixed once a level is generated; only orientations change.
type Grid struct {
	Size     int
	Source   Coord
	Terminal Coord
	Tiles    []Tile
}

// Orientations is a row-major snapshot of every tile's orientation.
type Orientations []Orientation

// NewGrid creates a grid of empty tiles.
func NewGrid(size int) *Grid {
	g := &Grid{
		Size:  size,
		Tiles: make([]Tile, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Tiles[y*size+x] = Tile{Pos: C(x, y)}
		}
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Size + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// At returns the tile at c.
func (g *Grid) At(c Coord) (Tile, error) {
	if !g.InBounds(c) {
		return Tile{}, &BoundsError{At: c, Size: g.Size}
	}
	return g.Tiles[g.index(c)], nil
}

// tile returns the tile at c, or an Empty tile when out of bounds.
func (g *Grid) tile(c Coord) Tile {
	if !g.InBounds(c) {
		return Tile{Pos: c}
	}
	return g.Tiles[g.index(c)]
}

// Set replaces the tile at t.Pos.
func (g *Grid) Set(t Tile) error {
	if !g.InBounds(t.Pos) {
		return &BoundsError{At: t.Pos, Size: g.Size}
	}
	g.Tiles[g.index(t.Pos)] = t
	switch t.Kind {
	case PowerSource:
		g.Source = t.Pos
	case Terminal:
		g.Terminal = t.Pos
	}
	return nil
}

// Rotate turns a clickable tile one step clockwise and returns its new orientation.
func (g *Grid) Rotate(c Coord) (Orientation, error) {
	if !g.InBounds(c) {
		return 0, &BoundsError{At: c, Size: g.Size}
	}
	t := &g.Tiles[g.index(c)]
	if !t.Clickable {
		return t.Orientation, fmt.Errorf("rotate %v: %w", c, ErrNotClickable)
	}
	t.Orientation = t.Orientation.Next()
	return t.Orientation, nil
}

// Snapshot captures the current orientations.
func (g *Grid) Snapshot() Orientations {
	s := make(Orientations, len(g.Tiles))
	for i, t := range g.Tiles {
		s[i] = t.Orientation
	}
	return s
}

// Restore writes a snapshot back into the grid.
func (g *Grid) Restore(s Orientations) error {
	if len(s) != len(g.Tiles) {
		return fmt.Errorf("restore: snapshot has %d cells, grid has %d", len(s), len(g.Tiles))
	}
	for i := range g.Tiles {
		g.Tiles[i].Orientation = s[i] % 4
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{
		Size:     g.Size,
		Source:   g.Source,
		Terminal: g.Terminal,
		Tiles:    tiles,
	}
}

// WithOrientations returns a clone carrying the given orientations.
func (g *Grid) WithOrientations(s Orientations) (*Grid, error) {
	clone := g.Clone()
	if err := clone.Restore(s); err != nil {
		return nil, err
	}
	return clone, nil
}

// ClickableCoords returns clickable positions in row-major order.
func (g *Grid) ClickableCoords() []Coord {
	coords := make([]Coord, 0)
	for _, t := range g.Tiles {
		if t.Clickable {
			coords = append(coords, t.Pos)
		}
	}
	return coords
}

// MinimumMoves returns the rotations needed to bring every clickable tile
// to its nearest accepted orientation.
func (g *Grid) MinimumMoves() int {
	total := 0
	for _, t := range g.Tiles {
		total += t.TurnsToSolve()
	}
	return total
}

// GridStats summarizes the structure of a generated grid.
type GridStats struct {
	Size       int
	PathLength int // path cells including both endpoints
	Movable    int // clickable tiles
	Corners    int
	Straights  int
	Unsolved   int // clickable tiles not at an accepted orientation
}

// Stats computes structural statistics for the grid.
func (g *Grid) Stats() GridStats {
	stats := GridStats{Size: g.Size}
	for _, t := range g.Tiles {
		if t.Kind != Empty {
			stats.PathLength++
		}
		if t.Clickable {
			stats.Movable++
			if !t.Solved() {
				stats.Unsolved++
			}
		}
		switch t.Kind {
		case Corner:
			stats.Corners++
		case Straight:
			stats.Straights++
		}
	}
	return stats
}
