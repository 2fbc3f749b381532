package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrNotClickable is returned when rotating a fixed tile.
	ErrNotClickable = errors.New("tile is not clickable")

	// ErrInvalidGeometry signals a path the resolver cannot turn into tiles.
	// It indicates a generator defect and aborts generation.
	ErrInvalidGeometry = errors.New("invalid path geometry")

	// ErrGenerationExhausted is returned when no candidate satisfied the
	// difficulty within the attempt limit.
	ErrGenerationExhausted = errors.New("generation exhausted")
)

// BoundsError reports an out-of-range coordinate.
type BoundsError struct {
	At   Coord
	Size int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v outside %dx%d grid", e.At, e.Size, e.Size)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// GeometryError describes where the resolver found a bad path step.
type GeometryError struct {
	At     Coord
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid geometry at %v: %s", e.At, e.Reason)
}

func (e *GeometryError) Unwrap() error { return ErrInvalidGeometry }

// ExhaustedError is returned when the attempt limit is reached.
// Last holds the rejection reason of the final attempt.
type ExhaustedError struct {
	Difficulty string
	Attempts   int
	Last       error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("generation exhausted for %q after %d attempts", e.Difficulty, e.Attempts)
	}
	return fmt.Sprintf("generation exhausted for %q after %d attempts: %v", e.Difficulty, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrGenerationExhausted}
	}
	return []error{ErrGenerationExhausted, e.Last}
}
