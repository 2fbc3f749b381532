package core

import (
	"fmt"
	"time"
)

// GridSizeMin is the smallest board that fits a source and a terminal
// two steps apart.
const GridSizeMin = 2

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// R is a convenience constructor for Range.
func R(min, max int) Range {
	return Range{Min: min, Max: max}
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Span returns the number of integers in the range.
func (r Range) Span() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Difficulty bounds the structure of generated puzzles.
type Difficulty struct {
	Name          string
	GridSize      Range
	MovableTiles  Range
	Corners       Range
	ScrambleRatio float64
	TimeLimit     time.Duration // zero means untimed
}
