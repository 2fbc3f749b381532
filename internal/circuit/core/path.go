package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// Rand is the random source used by generation. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
	Perm(n int) []int
}

// NewRand returns a seeded source for reproducible generation.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

var errNoPath = errors.New("no path within length bounds")

// PathBounds limits the number of cells in a path, endpoints included.
type PathBounds struct {
	MinCells int
	MaxCells int
}

// BoundsFor derives path bounds for a grid from a movable-tile range:
// every interior path cell is a movable tile, plus two endpoints.
func BoundsFor(size int, movable Range) PathBounds {
	b := PathBounds{MinCells: movable.Min + 2, MaxCells: movable.Max + 2}
	if b.MinCells < 3 {
		b.MinCells = 3
	}
	if area := size * size; b.MaxCells > area {
		b.MaxCells = area
	}
	return b
}

// PickEndpoints chooses a source and terminal uniformly at random among
// all ordered pairs whose Manhattan distance is at least 2.
func PickEndpoints(size int, rng Rand) (src, dst Coord, err error) {
	if size < 2 {
		return Coord{}, Coord{}, fmt.Errorf("grid size %d too small for endpoints", size)
	}
	for {
		src = C(rng.Intn(size), rng.Intn(size))
		dst = C(rng.Intn(size), rng.Intn(size))
		if src.Manhattan(dst) >= 2 {
			return src, dst, nil
		}
	}
}

// searchFrame is one level of the explicit DFS stack.
type searchFrame struct {
	pos  Coord
	dirs [4]Dir
	next int
}

func newSearchFrame(pos Coord, rng Rand) searchFrame {
	f := searchFrame{pos: pos, dirs: AllDirs}
	rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}

// SearchPath runs a randomized depth-first search from src to dst on a
// size×size board. Neighbour order is shuffled at every cell; dead ends
// are backtracked and unmarked so other branches may reuse them. The first
// path whose length falls within bounds is returned. maxSteps bounds the
// number of expansions; zero means unlimited.
func SearchPath(size int, src, dst Coord, bounds PathBounds, maxSteps int, rng Rand) ([]Coord, error) {
	inBounds := func(c Coord) bool {
		return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
	}
	if !inBounds(src) || !inBounds(dst) || src == dst {
		return nil, fmt.Errorf("search %v -> %v: %w", src, dst, ErrOutOfBounds)
	}
	maxCells := bounds.MaxCells
	if maxCells <= 0 || maxCells > size*size {
		maxCells = size * size
	}
	if bounds.MinCells > maxCells {
		return nil, errNoPath
	}

	visited := make([]bool, size*size)
	idx := func(c Coord) int { return c.Y*size + c.X }

	stack := make([]searchFrame, 0, maxCells)
	stack = append(stack, newSearchFrame(src, rng))
	visited[idx(src)] = true

	for steps := 0; len(stack) > 0; steps++ {
		if maxSteps > 0 && steps >= maxSteps {
			return nil, fmt.Errorf("search budget of %d steps spent: %w", maxSteps, errNoPath)
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.dirs) {
			visited[idx(top.pos)] = false
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		nb := top.pos.Step(d)
		if !inBounds(nb) || visited[idx(nb)] {
			continue
		}

		cells := len(stack) + 1
		if nb == dst {
			if cells >= bounds.MinCells && cells <= maxCells {
				path := make([]Coord, 0, cells)
				for _, f := range stack {
					path = append(path, f.pos)
				}
				return append(path, dst), nil
			}
			continue
		}
		// Even a straight run to dst would overshoot the limit.
		if cells+nb.Manhattan(dst) > maxCells {
			continue
		}

		visited[idx(nb)] = true
		stack = append(stack, newSearchFrame(nb, rng))
	}

	return nil, errNoPath
}
