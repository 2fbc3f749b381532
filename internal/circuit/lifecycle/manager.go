// Package lifecycle runs puzzles during play: the level manager that owns the
// live grid, the game state machine, and the session that sequences them.
package lifecycle

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

var (
	// ErrNoLevel is returned when an operation needs a level and none is loaded.
	ErrNoLevel = errors.New("no level loaded")

	// ErrSolved is returned when rotating after the level is complete.
	ErrSolved = errors.New("level already solved")
)

// LevelSource produces levels for a difficulty. *core.Generator implements it.
type LevelSource interface {
	Generate(d core.Difficulty) (*core.Level, error)
}

// Manager owns the live grid of the current level and its move count.
// It is not safe for concurrent use.
type Manager struct {
	source LevelSource
	logger *log.Logger

	level  *core.Level
	grid   *core.Grid
	moves  int
	solved bool
}

// NewManager creates a manager generating levels from source.
// A nil logger discards output.
func NewManager(source LevelSource, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{source: source, logger: logger}
}

// Generate builds a new level for d and makes it current. On failure the
// previous level stays in place.
func (m *Manager) Generate(d core.Difficulty) (*core.Level, error) {
	if m.source == nil {
		return nil, fmt.Errorf("generate %q: no level source", d.Name)
	}
	level, err := m.source.Generate(d)
	if err != nil {
		return nil, err
	}
	m.Load(level)
	return level, nil
}

// Load installs level as the current puzzle at its initial orientations.
func (m *Manager) Load(level *core.Level) {
	m.level = level
	m.grid = level.InitialGrid()
	m.moves = 0
	m.solved = core.IsConnected(m.grid)
	m.logger.Debug("level loaded", "id", level.ID, "difficulty", level.Difficulty, "size", level.Size())
}

// Rotate turns the tile at c one step clockwise, counts the move and
// re-checks connectivity.
func (m *Manager) Rotate(c core.Coord) error {
	if m.grid == nil {
		return ErrNoLevel
	}
	if m.solved {
		return ErrSolved
	}
	if _, err := m.grid.Rotate(c); err != nil {
		return err
	}
	m.moves++
	if core.IsConnected(m.grid) {
		m.solved = true
		m.logger.Debug("level solved", "id", m.level.ID, "moves", m.moves)
	}
	return nil
}

// RotateTile is the boolean form of Rotate: false means nothing changed.
func (m *Manager) RotateTile(x, y int) bool {
	return m.Rotate(core.C(x, y)) == nil
}

// Reset restores the initial orientations and zeroes the move count.
// Geometry is kept; nothing is regenerated.
func (m *Manager) Reset() error {
	if m.grid == nil {
		return ErrNoLevel
	}
	if err := m.grid.Restore(m.level.Initial); err != nil {
		return err
	}
	m.moves = 0
	m.solved = core.IsConnected(m.grid)
	return nil
}

// MoveCount returns rotations performed since load or reset.
func (m *Manager) MoveCount() int {
	return m.moves
}

// IsSolved reports whether the current orientations conduct.
func (m *Manager) IsSolved() bool {
	return m.solved
}

// Level returns the current level, or nil.
func (m *Manager) Level() *core.Level {
	return m.level
}

// Grid returns a copy of the live grid for rendering, or nil.
func (m *Manager) Grid() *core.Grid {
	if m.grid == nil {
		return nil
	}
	return m.grid.Clone()
}

// Tile returns the live tile at c.
func (m *Manager) Tile(c core.Coord) (core.Tile, error) {
	if m.grid == nil {
		return core.Tile{}, ErrNoLevel
	}
	return m.grid.At(c)
}

// PoweredCells returns cells currently reachable from the source.
func (m *Manager) PoweredCells() map[core.Coord]bool {
	if m.grid == nil {
		return nil
	}
	return core.PoweredCells(m.grid)
}

// MinimumMoves returns the fewest rotations that solve the level from its
// initial state.
func (m *Manager) MinimumMoves() int {
	if m.level == nil {
		return 0
	}
	return m.level.InitialGrid().MinimumMoves()
}
