package core

import "math"

// ScrambleCount returns how many clickable tiles to perturb:
// floor(movable × ratio), at least one whenever ratio > 0, capped at movable.
func ScrambleCount(movable int, ratio float64) int {
	if movable <= 0 || ratio <= 0 {
		return 0
	}
	n := int(math.Floor(float64(movable) * ratio))
	if n < 1 {
		n = 1
	}
	if n > movable {
		n = movable
	}
	return n
}

// Scramble derives initial orientations from a solved grid. It picks
// ScrambleCount distinct clickable tiles and gives each one an orientation
// from the complement of its accepted set. Other tiles keep their solved
// orientation. The grid itself is not modified.
func Scramble(solved *Grid, ratio float64, rng Rand) Orientations {
	initial := solved.Snapshot()
	clickable := solved.ClickableCoords()
	count := ScrambleCount(len(clickable), ratio)

	perm := rng.Perm(len(clickable))
	for _, i := range perm[:count] {
		c := clickable[i]
		t := solved.tile(c)
		wrong := t.Accepted.Complement()
		if len(wrong) == 0 {
			continue
		}
		initial[solved.index(c)] = wrong[rng.Intn(len(wrong))]
	}
	return initial
}
