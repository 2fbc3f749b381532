package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels/formats"
	"github.com/vovakirdan/circuit-repair/internal/circuit/lifecycle"
	"github.com/vovakirdan/circuit-repair/internal/config"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *Server {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	return New(cfg, store, nil)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPresets(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/presets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var presets []presetRes
	if err := json.Unmarshal(rec.Body.Bytes(), &presets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(presets) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(presets))
	}
	if presets[3].Name != "hell" || presets[3].GridSize != [2]int{7, 8} || presets[3].TimeLimitSecs != 60 {
		t.Errorf("hell preset = %+v", presets[3])
	}
	if !presets[1].Default {
		t.Error("normal should be the default preset")
	}
}

func TestGenerateLevel(t *testing.T) {
	s := newTestServer(t, nil)
	seed := int64(99)
	rec := do(t, s, http.MethodPost, "/levels", generateReq{Difficulty: "easy", Seed: &seed})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	r, err := formats.ParseJSON(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("ParseJSON() failed: %v", err)
	}
	level, err := r.ToLevel()
	if err != nil {
		t.Fatalf("ToLevel() failed: %v", err)
	}
	if !core.IsConnected(level.SolutionGrid()) {
		t.Error("solution should be connected")
	}
	if core.IsConnected(level.InitialGrid()) {
		t.Error("initial state should be scrambled")
	}
	if level.Seed != seed || level.Difficulty != "easy" {
		t.Errorf("seed/difficulty = %d/%s", level.Seed, level.Difficulty)
	}

	// Same seed, same level.
	again := do(t, s, http.MethodPost, "/levels", generateReq{Difficulty: "easy", Seed: &seed})
	r2, err := formats.ParseJSON(again.Body.Bytes())
	if err != nil {
		t.Fatalf("ParseJSON() failed: %v", err)
	}
	if r2.ID != r.ID {
		t.Errorf("ID = %s, expected %s", r2.ID, r.ID)
	}
}

func TestGenerateDefaultDifficulty(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/levels", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var r formats.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Difficulty != "normal" {
		t.Errorf("Difficulty = %q, expected normal", r.Difficulty)
	}
}

func TestGenerateErrors(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/levels", generateReq{Difficulty: "nightmare"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown difficulty: status = %d, expected 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/levels", bytes.NewBufferString("{not json"))
	bad := httptest.NewRecorder()
	s.ServeHTTP(bad, req)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("bad json: status = %d, expected 400", bad.Code)
	}

	missing := do(t, s, http.MethodGet, "/nope", nil)
	if missing.Code != http.StatusNotFound {
		t.Errorf("unknown route: status = %d, expected 404", missing.Code)
	}
}

func TestCheckLevel(t *testing.T) {
	s := newTestServer(t, nil)
	level, err := core.GenerateLevel(core.Difficulty{
		Name: "test", GridSize: core.R(5, 5), MovableTiles: core.R(3, 10), Corners: core.R(1, 8), ScrambleRatio: 1,
	}, 7)
	if err != nil {
		t.Fatalf("GenerateLevel() failed: %v", err)
	}
	r := formats.FromLevel(level)

	rec := do(t, s, http.MethodPost, "/levels/check", r)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var scrambled checkRes
	if err := json.Unmarshal(rec.Body.Bytes(), &scrambled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scrambled.Solved || scrambled.Unsolved == 0 || scrambled.MinMoves == 0 {
		t.Errorf("scrambled check = %+v", scrambled)
	}
	sourcePowered := false
	for _, p := range scrambled.Powered {
		if p == r.Source {
			sourcePowered = true
		}
	}
	if !sourcePowered {
		t.Errorf("source should always be powered, got %v", scrambled.Powered)
	}

	// Submit the solution as the current board.
	for i, tr := range r.Tiles {
		r.Initial[i] = tr.Orientation
	}
	rec = do(t, s, http.MethodPost, "/levels/check", r)
	var solved checkRes
	if err := json.Unmarshal(rec.Body.Bytes(), &solved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !solved.Solved || solved.MinMoves != 0 {
		t.Errorf("solved check = %+v", solved)
	}
	if len(solved.Path) != len(level.Path) {
		t.Errorf("path length = %d, expected %d", len(solved.Path), len(level.Path))
	}
}

func TestCheckRejectsInvalidLevel(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/levels/check", formats.Record{ID: "x", Size: 4})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, expected 422", rec.Code)
	}
}

func TestResults(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, ms := range []int{3000, 1000, 2000} {
		store.SaveResult("ada", lifecycle.Result{
			LevelID: "lvl", Difficulty: "easy", GridSize: 4, Moves: 5, MinMoves: 5,
			Elapsed: time.Duration(ms) * time.Millisecond, Stars: 3,
		})
	}

	s := newTestServer(t, store)
	rec := do(t, s, http.MethodGet, "/results/easy?limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out []resultRes
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].DurationMS != 1000 || out[1].DurationMS != 2000 {
		t.Errorf("results = %+v", out)
	}

	without := newTestServer(t, nil)
	if rec := do(t, without, http.MethodGet, "/results/easy", nil); rec.Code != http.StatusNotFound {
		t.Errorf("results without store: status = %d, expected 404", rec.Code)
	}
}
