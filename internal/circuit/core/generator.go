package core

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// GenParams configures the level generator behavior.
type GenParams struct {
	// Generation limits
	MaxAttempts      int // candidates tried before giving up
	MaxSearchSteps   int // DFS expansions per attempt (0 = unlimited)
	MaxScrambleTries int // re-scrambles when the initial state is accidentally solved

	// Logger receives per-attempt diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultGenParams returns sensible defaults for level generation.
func DefaultGenParams() GenParams {
	return GenParams{
		MaxAttempts:      50,
		MaxSearchSteps:   20000,
		MaxScrambleTries: 8,
	}
}

// Generator produces levels from difficulty settings. Each level is built
// from its own seed, drawn from the generator's source, so any level can be
// rebuilt with GenerateSeed.
type Generator struct {
	params GenParams
	rng    Rand
	logger *log.Logger
}

// NewGenerator creates a generator drawing level seeds from rng.
func NewGenerator(p GenParams, rng Rand) *Generator {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultGenParams().MaxAttempts
	}
	if p.MaxScrambleTries <= 0 {
		p.MaxScrambleTries = 1
	}
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{params: p, rng: rng, logger: logger}
}

// Generate builds a new level for d using a fresh seed.
func (g *Generator) Generate(d Difficulty) (*Level, error) {
	seed := int64(g.rng.Intn(math.MaxInt32))
	return g.GenerateSeed(d, seed)
}

// GenerateSeed builds the level identified by seed. The same seed and
// difficulty always yield the same level.
//
// Each attempt picks endpoints, searches a path, resolves tiles, validates
// the counts against d and scrambles. Rejected candidates are discarded and
// the next attempt starts again from endpoint selection. The grid size is
// chosen once per call.
func (g *Generator) GenerateSeed(d Difficulty, seed int64) (*Level, error) {
	if err := ValidateDifficulty(d); err != nil {
		return nil, fmt.Errorf("generate %q: %w", d.Name, err)
	}

	rng := NewRand(seed)
	size := d.GridSize.Min + rng.Intn(d.GridSize.Span())
	bounds := BoundsFor(size, d.MovableTiles)

	var last error
	for attempt := 1; attempt <= g.params.MaxAttempts; attempt++ {
		level, err := g.attempt(d, seed, size, bounds, rng)
		if err == nil {
			g.logger.Debug("level generated",
				"difficulty", d.Name,
				"seed", seed,
				"size", size,
				"attempt", attempt,
				"movable", level.MovableCount,
				"corners", level.CornerCount,
			)
			return level, nil
		}
		if errors.Is(err, ErrInvalidGeometry) {
			g.logger.Error("resolver rejected generated path", "difficulty", d.Name, "seed", seed, "error", err)
			return nil, err
		}
		last = err
		g.logger.Debug("candidate rejected", "difficulty", d.Name, "attempt", attempt, "reason", err)
	}

	g.logger.Warn("generation exhausted",
		"difficulty", d.Name,
		"seed", seed,
		"size", size,
		"attempts", g.params.MaxAttempts,
		"last", last,
	)
	return nil, &ExhaustedError{Difficulty: d.Name, Attempts: g.params.MaxAttempts, Last: last}
}

// attempt produces one candidate or the reason it was rejected.
func (g *Generator) attempt(d Difficulty, seed int64, size int, bounds PathBounds, rng Rand) (*Level, error) {
	src, dst, err := PickEndpoints(size, rng)
	if err != nil {
		return nil, err
	}

	path, err := SearchPath(size, src, dst, bounds, g.params.MaxSearchSteps, rng)
	if err != nil {
		return nil, err
	}

	solved, err := ResolvePath(size, path)
	if err != nil {
		return nil, err
	}

	if err := ValidateStats(solved.Stats(), d); err != nil {
		return nil, err
	}

	initial, err := g.scramble(solved, d.ScrambleRatio, rng)
	if err != nil {
		return nil, err
	}

	return NewLevel(d.Name, seed, solved, path, initial)
}

// scramble perturbs the solution. With a positive ratio the starting state
// must not already conduct; a scramble that leaves a live path through
// another accepted orientation is retried.
func (g *Generator) scramble(solved *Grid, ratio float64, rng Rand) (Orientations, error) {
	if ratio <= 0 {
		return solved.Snapshot(), nil
	}
	for try := 0; try < g.params.MaxScrambleTries; try++ {
		initial := Scramble(solved, ratio, rng)
		start, err := solved.WithOrientations(initial)
		if err != nil {
			return nil, err
		}
		if !IsConnected(start) {
			return initial, nil
		}
	}
	return nil, ValidationError{
		Code:    CodeNotScrambled,
		Message: fmt.Sprintf("initial state still connected after %d scrambles", g.params.MaxScrambleTries),
	}
}

// GenerateLevel is a convenience wrapper building the level for one seed
// with default parameters.
func GenerateLevel(d Difficulty, seed int64) (*Level, error) {
	return NewGenerator(DefaultGenParams(), NewRand(seed)).GenerateSeed(d, seed)
}
