package core

import "fmt"

// Validation error codes.
const (
	CodeGridSize      = "GRID_SIZE"
	CodeMovableCount  = "MOVABLE_COUNT"
	CodeCornerCount   = "CORNER_COUNT"
	CodeNotScrambled  = "NOT_SCRAMBLED"
	CodeInvalidRange  = "INVALID_RANGE"
	CodeInvalidRatio  = "INVALID_RATIO"
	CodeInvalidLayout = "INVALID_LAYOUT"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateStats checks a candidate's structure against a difficulty.
// Checks:
//   - Grid size within GridSize
//   - Clickable tile count within MovableTiles
//   - Corner count within Corners
func ValidateStats(s GridStats, d Difficulty) error {
	if !d.GridSize.Contains(s.Size) {
		return ValidationError{
			Code:    CodeGridSize,
			Message: fmt.Sprintf("grid size %d outside %v", s.Size, d.GridSize),
		}
	}
	if !d.MovableTiles.Contains(s.Movable) {
		return ValidationError{
			Code:    CodeMovableCount,
			Message: fmt.Sprintf("%d movable tiles outside %v", s.Movable, d.MovableTiles),
		}
	}
	if !d.Corners.Contains(s.Corners) {
		return ValidationError{
			Code:    CodeCornerCount,
			Message: fmt.Sprintf("%d corners outside %v", s.Corners, d.Corners),
		}
	}
	return nil
}

// ValidateDifficulty rejects malformed difficulty configurations.
// Satisfiability is not checked here; an unsatisfiable but well-formed
// config fails later with ErrGenerationExhausted.
func ValidateDifficulty(d Difficulty) error {
	if d.GridSize.Min < GridSizeMin || d.GridSize.Min > d.GridSize.Max {
		return ValidationError{
			Code:    CodeInvalidRange,
			Message: fmt.Sprintf("%s: grid size %v is invalid, minimum is %d", d.Name, d.GridSize, GridSizeMin),
		}
	}

	ranges := []struct {
		name string
		r    Range
		min  int
	}{
		{"movable tiles", d.MovableTiles, 0},
		{"corners", d.Corners, 0},
	}
	for _, rc := range ranges {
		if rc.r.Min < rc.min || rc.r.Min > rc.r.Max {
			return ValidationError{
				Code:    CodeInvalidRange,
				Message: fmt.Sprintf("%s: %s range %v is invalid", d.Name, rc.name, rc.r),
			}
		}
	}

	if d.ScrambleRatio < 0 || d.ScrambleRatio > 1 {
		return ValidationError{
			Code:    CodeInvalidRatio,
			Message: fmt.Sprintf("%s: scramble ratio %.2f outside [0,1]", d.Name, d.ScrambleRatio),
		}
	}
	if d.TimeLimit < 0 {
		return ValidationError{
			Code:    CodeInvalidRange,
			Message: fmt.Sprintf("%s: negative time limit %s", d.Name, d.TimeLimit),
		}
	}
	return nil
}

// ValidateLayout checks the invariants of a resolved grid: one source, one
// terminal, clickable flags only on rotatable kinds and accepted sets that
// match each kind. Used when loading levels from outside the generator.
func ValidateLayout(g *Grid) error {
	if g.Size < 1 || len(g.Tiles) != g.Size*g.Size {
		return ValidationError{
			Code:    CodeInvalidLayout,
			Message: fmt.Sprintf("grid of size %d has %d tiles", g.Size, len(g.Tiles)),
		}
	}

	sources, terminals := 0, 0
	for i, t := range g.Tiles {
		want := C(i%g.Size, i/g.Size)
		if t.Pos != want {
			return ValidationError{
				Code:    CodeInvalidLayout,
				Message: fmt.Sprintf("tile %d has position %v, expected %v", i, t.Pos, want),
			}
		}
		switch t.Kind {
		case PowerSource:
			sources++
		case Terminal:
			terminals++
		}
		if t.Clickable != t.Kind.Rotatable() {
			return ValidationError{
				Code:    CodeInvalidLayout,
				Message: fmt.Sprintf("tile %v: %s with clickable=%v", t.Pos, t.Kind, t.Clickable),
			}
		}
		if t.Accepted.Kind() != Empty && t.Accepted.Kind() != t.Kind {
			return ValidationError{
				Code:    CodeInvalidLayout,
				Message: fmt.Sprintf("tile %v: accepted set for %s on %s tile", t.Pos, t.Accepted.Kind(), t.Kind),
			}
		}
		if t.Kind.Rotatable() && t.Accepted.Len() == 0 {
			return ValidationError{
				Code:    CodeInvalidLayout,
				Message: fmt.Sprintf("tile %v: %s without accepted orientations", t.Pos, t.Kind),
			}
		}
	}

	if sources != 1 || terminals != 1 {
		return ValidationError{
			Code:    CodeInvalidLayout,
			Message: fmt.Sprintf("expected one source and one terminal, got %d and %d", sources, terminals),
		}
	}
	if g.tile(g.Source).Kind != PowerSource || g.tile(g.Terminal).Kind != Terminal {
		return ValidationError{
			Code:    CodeInvalidLayout,
			Message: fmt.Sprintf("endpoint positions %v/%v do not match tiles", g.Source, g.Terminal),
		}
	}
	return nil
}
