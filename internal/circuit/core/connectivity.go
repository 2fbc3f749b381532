package core

// linkedNeighbor returns the neighbour of t in direction d when the two
// tiles are electrically joined: the neighbour is on the board, is not
// Empty, and is open back toward t.
func linkedNeighbor(g *Grid, t Tile, d Dir) (Coord, bool) {
	if !t.OpenDirs().Has(d) {
		return Coord{}, false
	}
	nc := t.Pos.Step(d)
	if !g.InBounds(nc) {
		return Coord{}, false
	}
	n := g.tile(nc)
	if n.Kind == Empty {
		return Coord{}, false
	}
	if !n.OpenDirs().Has(d.Opposite()) {
		return Coord{}, false
	}
	return nc, true
}

// traverse runs a breadth-first search from the power source. It returns
// the parent of every reached cell (the source maps to itself) and whether
// the terminal was reached. With stopAtTerminal it returns as soon as the
// terminal is dequeued.
func traverse(g *Grid, stopAtTerminal bool) (map[Coord]Coord, bool) {
	parent := make(map[Coord]Coord)
	src := g.tile(g.Source)
	if !g.InBounds(g.Source) || src.Kind != PowerSource {
		return parent, false
	}

	parent[g.Source] = g.Source
	queue := []Coord{g.Source}
	reached := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		t := g.tile(cur)
		if t.Kind == Terminal {
			reached = true
			if stopAtTerminal {
				return parent, true
			}
			continue
		}

		for _, d := range AllDirs {
			nc, ok := linkedNeighbor(g, t, d)
			if !ok {
				continue
			}
			if _, seen := parent[nc]; seen {
				continue
			}
			parent[nc] = cur
			queue = append(queue, nc)
		}
	}

	return parent, reached
}

// IsConnected reports whether the current orientations form a continuous
// open path from the power source to the terminal. It never mutates g.
func IsConnected(g *Grid) bool {
	_, ok := traverse(g, true)
	return ok
}

// FindLivePath returns the cells from source to terminal along the live
// connection, or false when there is none.
func FindLivePath(g *Grid) ([]Coord, bool) {
	parent, ok := traverse(g, true)
	if !ok {
		return nil, false
	}

	var rev []Coord
	for c := g.Terminal; ; c = parent[c] {
		rev = append(rev, c)
		if c == g.Source {
			break
		}
	}

	path := make([]Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path, true
}

// PoweredCells returns every cell electrically reachable from the source.
func PoweredCells(g *Grid) map[Coord]bool {
	parent, _ := traverse(g, false)
	powered := make(map[Coord]bool, len(parent))
	for c := range parent {
		powered[c] = true
	}
	return powered
}
