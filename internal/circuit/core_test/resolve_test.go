package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

func TestResolveCell(t *testing.T) {
	tests := []struct {
		in, out     core.Dir
		kind        core.TileKind
		orientation core.Orientation
	}{
		{core.East, core.East, core.Straight, 0},
		{core.West, core.West, core.Straight, 0},
		{core.North, core.North, core.Straight, 1},
		{core.South, core.South, core.Straight, 1},
		{core.South, core.East, core.Corner, 0},
		{core.West, core.North, core.Corner, 0},
		{core.West, core.South, core.Corner, 1},
		{core.North, core.East, core.Corner, 1},
		{core.East, core.South, core.Corner, 2},
		{core.North, core.West, core.Corner, 2},
		{core.East, core.North, core.Corner, 3},
		{core.South, core.West, core.Corner, 3},
	}

	for _, tc := range tests {
		t.Run(tc.in.String()+"->"+tc.out.String(), func(t *testing.T) {
			r, err := core.ResolveCell(tc.in, tc.out)
			if err != nil {
				t.Fatalf("ResolveCell() failed: %v", err)
			}
			if r.Kind != tc.kind {
				t.Errorf("Kind = %v, expected %v", r.Kind, tc.kind)
			}
			if r.Orientation != tc.orientation {
				t.Errorf("Orientation = %d, expected %d", r.Orientation, tc.orientation)
			}
			if !r.Accepted.Contains(r.Orientation) {
				t.Errorf("canonical orientation %d not in accepted set %v", r.Orientation, r.Accepted)
			}

			// The tile must open toward where it was entered from and where it leaves.
			open := core.OpenDirs(r.Kind, r.Orientation)
			if !open.Has(tc.in.Opposite()) || !open.Has(tc.out) {
				t.Errorf("open dirs %v do not join %v and %v", open, tc.in.Opposite(), tc.out)
			}

			wantLen := 1
			if tc.kind == core.Straight {
				wantLen = 2
			}
			if r.Accepted.Len() != wantLen {
				t.Errorf("accepted set has %d members, expected %d", r.Accepted.Len(), wantLen)
			}
		})
	}
}

func TestResolveCellInvalidGeometry(t *testing.T) {
	tests := []struct {
		name    string
		in, out core.Dir
	}{
		{"reverse east", core.East, core.West},
		{"reverse north", core.North, core.South},
		{"bad in", core.Dir(7), core.East},
		{"bad out", core.North, core.Dir(4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.ResolveCell(tc.in, tc.out)
			if !errors.Is(err, core.ErrInvalidGeometry) {
				t.Errorf("ResolveCell() error = %v, expected ErrInvalidGeometry", err)
			}
		})
	}
}

func TestEndpointOrientations(t *testing.T) {
	for _, d := range core.AllDirs {
		src := core.OpenDirs(core.PowerSource, core.SourceOrientation(d))
		if src != core.NewDirSet(d) {
			t.Errorf("source facing %v opens %v", d, src)
		}
		term := core.OpenDirs(core.Terminal, core.TerminalOrientation(d))
		if term != core.NewDirSet(d.Opposite()) {
			t.Errorf("terminal entered travelling %v opens %v, expected %v", d, term, d.Opposite())
		}
	}
}

func TestResolvePath(t *testing.T) {
	path := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(1, 1), core.C(1, 2), core.C(2, 2)}
	g, err := core.ResolvePath(3, path)
	if err != nil {
		t.Fatalf("ResolvePath() failed: %v", err)
	}

	if g.Source != core.C(0, 0) || g.Terminal != core.C(2, 2) {
		t.Errorf("endpoints = %v/%v, expected (0,0)/(2,2)", g.Source, g.Terminal)
	}

	expected := map[core.Coord]core.TileKind{
		core.C(0, 0): core.PowerSource,
		core.C(1, 0): core.Corner,
		core.C(1, 1): core.Straight,
		core.C(1, 2): core.Corner,
		core.C(2, 2): core.Terminal,
		core.C(2, 0): core.Empty,
		core.C(0, 2): core.Empty,
	}
	for c, kind := range expected {
		tile, _ := g.At(c)
		if tile.Kind != kind {
			t.Errorf("tile %v: kind = %v, expected %v", c, tile.Kind, kind)
		}
		if tile.Clickable != kind.Rotatable() {
			t.Errorf("tile %v: clickable = %v", c, tile.Clickable)
		}
	}

	if err := core.ValidateLayout(g); err != nil {
		t.Errorf("ValidateLayout() failed: %v", err)
	}
	if !core.IsConnected(g) {
		t.Error("resolved path is not connected")
	}
}

func TestResolvePathInvalid(t *testing.T) {
	tests := []struct {
		name string
		path []core.Coord
	}{
		{"too short", []core.Coord{core.C(0, 0), core.C(1, 0)}},
		{"gap", []core.Coord{core.C(0, 0), core.C(2, 0), core.C(3, 0)}},
		{"diagonal", []core.Coord{core.C(0, 0), core.C(1, 1), core.C(2, 1)}},
		{"revisit", []core.Coord{core.C(0, 0), core.C(1, 0), core.C(0, 0), core.C(0, 1)}},
		{"outside", []core.Coord{core.C(2, 0), core.C(3, 0), core.C(4, 0)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.ResolvePath(4, tc.path)
			if !errors.Is(err, core.ErrInvalidGeometry) {
				t.Errorf("ResolvePath() error = %v, expected ErrInvalidGeometry", err)
			}
			var geo *core.GeometryError
			if !errors.As(err, &geo) {
				t.Errorf("expected *GeometryError, got %T", err)
			}
		})
	}
}
