package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// cellWidth is the rendered width of one tile: a west stub, the glyph and
// an east stub, so horizontal wires read as continuous lines.
const cellWidth = 3

// renderBoard draws the grid with live wire highlighted and the cursor
// marked. A cursor outside the grid is not drawn.
func renderBoard(g *core.Grid, powered map[core.Coord]bool, cursor core.Coord, theme CircuitTheme) string {
	live := core.IsConnected(g)

	var sb strings.Builder
	for y := 0; y < g.Size; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.Size; x++ {
			t, err := g.At(core.C(x, y))
			if err != nil {
				continue
			}
			style := tileStyle(t, powered[t.Pos], live, theme)
			if t.Pos == cursor {
				style = style.Inherit(theme.Cursor)
			}
			sb.WriteString(style.Render(cellText(t)))
		}
	}
	return sb.String()
}

// cellText returns the three-rune text for a tile.
func cellText(t core.Tile) string {
	if t.Kind == core.Empty {
		return " " + string(core.Glyph(t)) + " "
	}
	open := t.OpenDirs()
	west, east := ' ', ' '
	if open.Has(core.West) {
		west = '─'
	}
	if open.Has(core.East) {
		east = '─'
	}
	return string([]rune{west, core.Glyph(t), east})
}

func tileStyle(t core.Tile, powered, live bool, theme CircuitTheme) lipgloss.Style {
	switch t.Kind {
	case core.Empty:
		return theme.EmptyCell
	case core.PowerSource:
		return theme.Source
	case core.Terminal:
		if live {
			return theme.TerminalOn
		}
		return theme.Terminal
	}
	if powered {
		return theme.WireLive
	}
	return theme.WireDead
}

// renderStars draws a three-star rating.
func renderStars(n int, theme CircuitTheme) string {
	var sb strings.Builder
	for i := 1; i <= 3; i++ {
		if i <= n {
			sb.WriteString(theme.StarOn.Render("★"))
		} else {
			sb.WriteString(theme.StarOff.Render("☆"))
		}
	}
	return sb.String()
}

// formatClock renders a duration as m:ss.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// placeCenter centers a block in the available area, or returns it
// unchanged when the size is unknown.
func placeCenter(block string, width, height int) string {
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
