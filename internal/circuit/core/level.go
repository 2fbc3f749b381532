package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// levelNamespace scopes content-derived level IDs.
var levelNamespace = uuid.MustParse("6f1c2a0e-3b7d-4c55-9e0a-8d2f4b6c1a90")

// Level is a generated puzzle: a solved grid topology with the solution
// and scrambled starting orientations.
type Level struct {
	ID         string
	Difficulty string
	Seed       int64

	Grid     *Grid // tiles at their solution orientations
	Path     []Coord
	Solution Orientations
	Initial  Orientations

	MovableCount int
	CornerCount  int
}

// NewLevel assembles a level from a solved grid and its initial orientations.
// The ID is derived from the level content so identical puzzles share an ID.
func NewLevel(difficulty string, seed int64, solved *Grid, path []Coord, initial Orientations) (*Level, error) {
	if len(initial) != len(solved.Tiles) {
		return nil, fmt.Errorf("level: %d initial orientations for %d tiles", len(initial), len(solved.Tiles))
	}
	stats := solved.Stats()
	l := &Level{
		Difficulty:   difficulty,
		Seed:         seed,
		Grid:         solved.Clone(),
		Path:         append([]Coord(nil), path...),
		Solution:     solved.Snapshot(),
		Initial:      append(Orientations(nil), initial...),
		MovableCount: stats.Movable,
		CornerCount:  stats.Corners,
	}
	l.ID = l.contentID()
	return l, nil
}

func (l *Level) contentID() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%v|%v|", l.Grid.Size, l.Grid.Source, l.Grid.Terminal)
	for _, t := range l.Grid.Tiles {
		fmt.Fprintf(&sb, "%d%d", t.Kind, t.Orientation)
	}
	sb.WriteByte('|')
	for _, o := range l.Initial {
		fmt.Fprintf(&sb, "%d", o)
	}
	return uuid.NewSHA1(levelNamespace, []byte(sb.String())).String()
}

// Size returns the grid edge length.
func (l *Level) Size() int {
	return l.Grid.Size
}

// SolutionGrid returns a fresh grid at the solution orientations.
func (l *Level) SolutionGrid() *Grid {
	g, err := l.Grid.WithOrientations(l.Solution)
	if err != nil {
		return l.Grid.Clone()
	}
	return g
}

// InitialGrid returns a fresh grid at the scrambled starting orientations.
func (l *Level) InitialGrid() *Grid {
	g, err := l.Grid.WithOrientations(l.Initial)
	if err != nil {
		return l.Grid.Clone()
	}
	return g
}

// Stats returns the structural statistics of the level.
func (l *Level) Stats() GridStats {
	return l.InitialGrid().Stats()
}
