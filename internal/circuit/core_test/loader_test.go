package core_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels/formats"
)

func generated(t *testing.T, seed int64) *core.Level {
	t.Helper()
	level, err := core.GenerateLevel(testPresets[0], seed)
	if err != nil {
		t.Fatalf("GenerateLevel() failed: %v", err)
	}
	return level
}

func sameLevel(t *testing.T, got, want *core.Level) {
	t.Helper()
	if got.ID != want.ID {
		t.Errorf("ID = %s, expected %s", got.ID, want.ID)
	}
	if got.Size() != want.Size() || got.Grid.Source != want.Grid.Source || got.Grid.Terminal != want.Grid.Terminal {
		t.Errorf("geometry differs: size %d %v %v", got.Size(), got.Grid.Source, got.Grid.Terminal)
	}
	for i := range want.Initial {
		if got.Initial[i] != want.Initial[i] || got.Solution[i] != want.Solution[i] {
			t.Fatalf("orientation %d differs: initial %d/%d solution %d/%d",
				i, got.Initial[i], want.Initial[i], got.Solution[i], want.Solution[i])
		}
	}
	if len(got.Path) != len(want.Path) {
		t.Errorf("path length = %d, expected %d", len(got.Path), len(want.Path))
	}
	if got.MovableCount != want.MovableCount || got.CornerCount != want.CornerCount {
		t.Errorf("counts = %d/%d, expected %d/%d", got.MovableCount, got.CornerCount, want.MovableCount, want.CornerCount)
	}
}

func TestRecordPreservesLevel(t *testing.T) {
	level := generated(t, 11)

	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			data, err := formats.Marshal(formats.FromLevel(level), ext)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			rec, err := formats.Parse(data, ext)
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			back, err := rec.ToLevel()
			if err != nil {
				t.Fatalf("ToLevel() failed: %v", err)
			}
			sameLevel(t, back, level)
			if core.IsConnected(back.InitialGrid()) {
				t.Error("initial state should stay scrambled")
			}
		})
	}
}

func TestRecordJSONFieldNames(t *testing.T) {
	data, err := formats.MarshalJSON(formats.FromLevel(generated(t, 3)))
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	for _, field := range []string{`"tiles"`, `"initial": [`, `"acceptedOrientations"`, `"clickable"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON missing %s", field)
		}
	}
}

func TestRecordRejectsInvalid(t *testing.T) {
	level := generated(t, 5)
	fixed := level.Grid.Source.Y*level.Size() + level.Grid.Source.X

	tests := []struct {
		name   string
		mutate func(r *formats.Record)
	}{
		{"tile count", func(r *formats.Record) { r.Tiles = r.Tiles[1:] }},
		{"unknown kind", func(r *formats.Record) { r.Tiles[fixed].Kind = "resistor" }},
		{"source mismatch", func(r *formats.Record) { r.Source = formats.Point{X: -1, Y: 0} }},
		{"rotated fixed tile", func(r *formats.Record) { r.Initial[fixed] = (r.Initial[fixed] + 1) % 4 }},
		{"initial length", func(r *formats.Record) { r.Initial = r.Initial[:2] }},
		{"clickable source", func(r *formats.Record) { r.Tiles[fixed].Clickable = true }},
		{"disconnected solution", func(r *formats.Record) {
			for i, tr := range r.Tiles {
				if tr.Kind == "straight" {
					r.Tiles[i].Orientation = (tr.Orientation + 1) % 4
					return
				}
				if tr.Kind == "corner" {
					r.Tiles[i].Orientation = (tr.Orientation + 2) % 4
					return
				}
			}
		}},
		{"duplicate position", func(r *formats.Record) {
			var empties []int
			for i, tr := range r.Tiles {
				if tr.Kind == "empty" {
					empties = append(empties, i)
				}
			}
			a, b := empties[0], empties[1]
			r.Tiles[b].X, r.Tiles[b].Y = r.Tiles[a].X, r.Tiles[a].Y
		}},
		{"accepted size", func(r *formats.Record) {
			for i, tr := range r.Tiles {
				if tr.Kind == "corner" || tr.Kind == "straight" {
					r.Tiles[i].Accepted = []int{0, 1, 2, 3}
					return
				}
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := formats.FromLevel(level)
			tc.mutate(&rec)
			if _, err := rec.ToLevel(); err == nil {
				t.Error("ToLevel() succeeded, expected error")
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := formats.ParseYAML([]byte("tiles: [unclosed")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := formats.ParseJSON([]byte(`{"size": 4, "bogus": true}`)); err == nil {
		t.Error("expected error for unknown JSON field")
	}
	if _, err := formats.Parse([]byte("{}"), ".toml"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoaderSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	loader := levels.NewLoader(dir)

	a, b := generated(t, 21), generated(t, 22)
	if _, err := loader.Save(a, ".yaml"); err != nil {
		t.Fatalf("Save(yaml) failed: %v", err)
	}
	pathB, err := loader.Save(b, ".json")
	if err != nil {
		t.Fatalf("Save(json) failed: %v", err)
	}
	if filepath.Ext(pathB) != ".json" {
		t.Errorf("Save() path = %s, expected .json", pathB)
	}

	// Invalid files and foreign extensions are skipped.
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("size: 4\ntiles: []\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}

	got, err := loader.LoadByID(b.ID)
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	sameLevel(t, got.Level, b)
	if got.FilePath != pathB {
		t.Errorf("FilePath = %s, expected %s", got.FilePath, pathB)
	}

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListIDs() = %v", ids)
	}

	if _, err := loader.LoadByID("missing"); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := levels.NewLoader(filepath.Join(t.TempDir(), "nope"))
	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for missing root")
	}
}
