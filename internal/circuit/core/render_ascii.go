package core

import (
	"fmt"
	"strings"
)

// Glyph returns the box-drawing rune for a tile at its current orientation.
func Glyph(t Tile) rune {
	open := t.OpenDirs()
	switch t.Kind {
	case PowerSource:
		return 'S'
	case Terminal:
		return 'T'
	case Straight:
		if open.Has(East) {
			return '─'
		}
		return '│'
	case Corner:
		switch open {
		case NewDirSet(North, East):
			return '└'
		case NewDirSet(East, South):
			return '┌'
		case NewDirSet(South, West):
			return '┐'
		case NewDirSet(West, North):
			return '┘'
		}
	}
	return '·'
}

// RenderASCII draws the grid one row per line, for debugging and golden tests.
//
// Format:
//   - Header: size, source, terminal and connection state
//   - Empty cells '·', endpoints 'S'/'T', wires as box-drawing runes
func RenderASCII(g *Grid) string {
	var sb strings.Builder

	state := "open"
	if IsConnected(g) {
		state = "live"
	}
	sb.WriteString(fmt.Sprintf("Size: %d | Source: %v | Terminal: %v | Circuit: %s\n",
		g.Size, g.Source, g.Terminal, state))

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			sb.WriteRune(Glyph(g.tile(C(x, y))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
