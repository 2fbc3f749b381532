package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

func TestCellText(t *testing.T) {
	tests := []struct {
		name     string
		tile     core.Tile
		expected string
	}{
		{"horizontal", core.Tile{Kind: core.Straight, Orientation: 0}, "───"},
		{"vertical", core.Tile{Kind: core.Straight, Orientation: 1}, " │ "},
		{"corner north east", core.Tile{Kind: core.Corner, Orientation: 0}, " └─"},
		{"corner south west", core.Tile{Kind: core.Corner, Orientation: 2}, "─┐ "},
		{"source facing east", core.Tile{Kind: core.PowerSource, Orientation: 0}, " S─"},
		{"terminal facing west", core.Tile{Kind: core.Terminal, Orientation: 0}, "─T "},
		{"empty", core.Tile{Kind: core.Empty}, " · "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cellText(tc.tile); got != tc.expected {
				t.Errorf("cellText() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{999 * time.Millisecond, "0:00"},
		{61 * time.Second, "1:01"},
		{10*time.Minute + 5*time.Second, "10:05"},
	}

	for _, tc := range tests {
		if got := formatClock(tc.in); got != tc.expected {
			t.Errorf("formatClock(%v) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestRenderBoardDimensions(t *testing.T) {
	level := rowLevel(t)
	g := level.InitialGrid()
	out := renderBoard(g, core.PoweredCells(g), core.C(1, 0), MonochromeCircuitTheme())

	lines := strings.Split(out, "\n")
	if len(lines) != g.Size {
		t.Fatalf("renderBoard() has %d lines, expected %d", len(lines), g.Size)
	}
	if !strings.Contains(lines[0], "S") || !strings.Contains(lines[0], "T") {
		t.Errorf("first row %q missing source or terminal", lines[0])
	}
}

func TestRenderStars(t *testing.T) {
	theme := MonochromeCircuitTheme()
	for n := 0; n <= 3; n++ {
		out := renderStars(n, theme)
		if got := strings.Count(out, "★"); got != n {
			t.Errorf("renderStars(%d) has %d filled stars", n, got)
		}
		if got := strings.Count(out, "☆"); got != 3-n {
			t.Errorf("renderStars(%d) has %d empty stars, expected %d", n, got, 3-n)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q, expected %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText() = %q, expected unchanged", got)
	}
}
