package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

func TestStraightRowScenario(t *testing.T) {
	g := straightRow(t)

	src, _ := g.At(core.C(0, 0))
	if src.Kind != core.PowerSource || src.OpenDirs() != core.NewDirSet(core.East) {
		t.Fatalf("source = %v open %v, expected PowerSource facing East", src.Kind, src.OpenDirs())
	}
	term, _ := g.At(core.C(3, 0))
	if term.Kind != core.Terminal || term.OpenDirs() != core.NewDirSet(core.West) {
		t.Fatalf("terminal = %v open %v, expected Terminal open West", term.Kind, term.OpenDirs())
	}

	if !core.IsConnected(g) {
		t.Fatal("solution orientations should be connected")
	}

	for _, c := range []core.Coord{core.C(1, 0), core.C(2, 0)} {
		t.Run(c.String(), func(t *testing.T) {
			g := straightRow(t)

			// Orientation 1 is the perpendicular N-S pair.
			if _, err := g.Rotate(c); err != nil {
				t.Fatalf("Rotate() failed: %v", err)
			}
			if core.IsConnected(g) {
				t.Error("expected disconnected after flipping to perpendicular")
			}

			// 1 -> 2 -> 3 -> 0 passes through the other accepted orientation.
			g.Rotate(c)
			if !core.IsConnected(g) {
				t.Error("expected connected at orientation 2")
			}
			g.Rotate(c)
			if core.IsConnected(g) {
				t.Error("expected disconnected at orientation 3")
			}
			g.Rotate(c)
			if !core.IsConnected(g) {
				t.Error("expected connected after rotating back")
			}
		})
	}
}

func TestIsConnectedDoesNotMutate(t *testing.T) {
	g := straightRow(t)
	g.Rotate(core.C(1, 0))
	before := g.Snapshot()

	core.IsConnected(g)
	core.PoweredCells(g)
	core.FindLivePath(g)

	for i, o := range g.Snapshot() {
		if o != before[i] {
			t.Errorf("tile %d changed from %d to %d", i, before[i], o)
		}
	}
}

func TestEmptyTilesNeverConnect(t *testing.T) {
	g := straightRow(t)
	g.Rotate(core.C(2, 0))

	for _, tile := range g.Tiles {
		if tile.Kind == core.Empty && tile.OpenDirs() != 0 {
			t.Errorf("empty tile %v has open dirs %v", tile.Pos, tile.OpenDirs())
		}
	}

	powered := core.PoweredCells(g)
	for c := range powered {
		tile, _ := g.At(c)
		if tile.Kind == core.Empty {
			t.Errorf("empty tile %v reported as powered", c)
		}
	}
}

func TestPoweredCells(t *testing.T) {
	g := straightRow(t)

	powered := core.PoweredCells(g)
	if len(powered) != 4 {
		t.Errorf("expected 4 powered cells on solved row, got %d", len(powered))
	}

	g.Rotate(core.C(2, 0))
	powered = core.PoweredCells(g)
	expected := map[core.Coord]bool{core.C(0, 0): true, core.C(1, 0): true}
	if len(powered) != len(expected) {
		t.Errorf("expected %d powered cells, got %d: %v", len(expected), len(powered), powered)
	}
	for c := range expected {
		if !powered[c] {
			t.Errorf("expected %v to be powered", c)
		}
	}
}

func TestFindLivePath(t *testing.T) {
	path := []core.Coord{core.C(0, 1), core.C(1, 1), core.C(1, 2), core.C(2, 2), core.C(3, 2), core.C(3, 3)}
	g, err := core.ResolvePath(4, path)
	if err != nil {
		t.Fatalf("ResolvePath() failed: %v", err)
	}

	live, ok := core.FindLivePath(g)
	if !ok {
		t.Fatal("FindLivePath() found no path on solved grid")
	}
	if len(live) != len(path) {
		t.Fatalf("FindLivePath() = %v, expected %v", live, path)
	}
	for i := range path {
		if live[i] != path[i] {
			t.Errorf("FindLivePath()[%d] = %v, expected %v", i, live[i], path[i])
		}
	}

	g.Rotate(core.C(2, 2))
	if _, ok := core.FindLivePath(g); ok {
		t.Error("expected no live path after breaking the circuit")
	}
}

func TestRenderASCII(t *testing.T) {
	g := straightRow(t)
	out := core.RenderASCII(g)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Circuit: live") {
		t.Errorf("header = %q, expected live circuit", lines[0])
	}
	if lines[1] != "S──T" {
		t.Errorf("row 0 = %q, expected %q", lines[1], "S──T")
	}
	if lines[2] != "····" {
		t.Errorf("row 1 = %q, expected empty row", lines[2])
	}
}
