package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/lifecycle"
	"github.com/vovakirdan/circuit-repair/internal/config"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

// rowLevel is the 4×4 straight row from (0,0) to (3,0) with the wire at
// (1,0) turned off the path. One rotation solves it.
func rowLevel(t *testing.T) *core.Level {
	t.Helper()
	path := []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0)}
	g, err := core.ResolvePath(4, path)
	if err != nil {
		t.Fatalf("ResolvePath() failed: %v", err)
	}
	initial := g.Snapshot()
	initial[1] = 1
	level, err := core.NewLevel("easy", 7, g, path, initial)
	if err != nil {
		t.Fatalf("NewLevel() failed: %v", err)
	}
	return level
}

func testDifficulty(t *testing.T) core.Difficulty {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	d, err := cfg.Presets.Get(config.PresetEasy)
	if err != nil {
		t.Fatalf("Get(easy) failed: %v", err)
	}
	return d
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m PlayModel, msg tea.Msg) (PlayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected PlayModel", next)
	}
	return pm, cmd
}

func loadedModel(t *testing.T, store *storage.Store) PlayModel {
	t.Helper()
	m := NewPlayModel(PlayConfig{
		Difficulty: testDifficulty(t),
		Seed:       1,
		Store:      store,
		Player:     "ada",
		Width:      80,
		Height:     24,
	})
	m, _ = update(t, m, levelMsg{level: rowLevel(t)})
	if m.Session().State() != lifecycle.StatePlaying {
		t.Fatalf("State() = %v after load, expected Playing", m.Session().State())
	}
	return m
}

func TestPlayModelCursorStartsOnClickable(t *testing.T) {
	m := loadedModel(t, nil)
	if m.Cursor() != core.C(1, 0) {
		t.Errorf("Cursor() = %v, expected (1,0)", m.Cursor())
	}
}

func TestPlayModelCursorClamped(t *testing.T) {
	m := loadedModel(t, nil)

	tests := []struct {
		key      tea.KeyMsg
		expected core.Coord
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.C(1, 0)},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.C(0, 0)},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.C(0, 0)},
		{tea.KeyMsg{Type: tea.KeyDown}, core.C(0, 1)},
		{keyRunes("l"), core.C(1, 1)},
		{keyRunes("j"), core.C(1, 2)},
		{keyRunes("j"), core.C(1, 3)},
		{keyRunes("j"), core.C(1, 3)},
	}

	for i, tc := range tests {
		m, _ = update(t, m, tc.key)
		if m.Cursor() != tc.expected {
			t.Errorf("step %d: Cursor() = %v, expected %v", i, m.Cursor(), tc.expected)
		}
	}
}

func TestPlayModelSolveRecordsResult(t *testing.T) {
	store := openStore(t)
	m := loadedModel(t, store)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().State() != lifecycle.StateVictory {
		t.Fatalf("State() = %v after rotate, expected Victory", m.Session().State())
	}

	res, ok := m.LastResult()
	if !ok {
		t.Fatal("LastResult() not set after victory")
	}
	if res.Moves != 1 || res.MinMoves != 1 {
		t.Errorf("moves/min = %d/%d, expected 1/1", res.Moves, res.MinMoves)
	}

	results, err := store.TopResults("easy", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("TopResults() returned %d entries, expected 1", len(results))
	}
	if results[0].Player != "ada" || results[0].LevelID != res.LevelID {
		t.Errorf("saved %+v, expected player ada and level %s", results[0], res.LevelID)
	}

	// Further key presses on the victory screen must not save twice.
	m, _ = update(t, m, keyRunes("r"))
	if results, _ := store.TopResults("easy", 10); len(results) != 1 {
		t.Errorf("TopResults() returned %d entries after extra input, expected 1", len(results))
	}

	if !strings.Contains(m.View(), "CIRCUIT CLOSED") {
		t.Error("View() missing victory overlay")
	}
}

func TestPlayModelNextLoadsAnotherLevel(t *testing.T) {
	m := loadedModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, cmd := update(t, m, keyRunes("n"))
	if cmd == nil {
		t.Fatal("next on victory returned no command")
	}
	if !m.loading {
		t.Error("loading = false after next, expected true")
	}

	// Input is ignored while the level is generated.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().State() != lifecycle.StateVictory {
		t.Errorf("State() = %v while loading, expected Victory", m.Session().State())
	}

	m, _ = update(t, m, levelMsg{level: rowLevel(t)})
	if m.Session().State() != lifecycle.StatePlaying {
		t.Errorf("State() = %v after next level, expected Playing", m.Session().State())
	}
	if m.Session().Solved() != 1 {
		t.Errorf("Solved() = %d, expected 1", m.Session().Solved())
	}
	if _, ok := m.LastResult(); ok {
		t.Error("LastResult() still set after loading a new level")
	}
}

func TestPlayModelPause(t *testing.T) {
	m := loadedModel(t, nil)

	m, _ = update(t, m, keyRunes("p"))
	if m.Session().State() != lifecycle.StatePaused {
		t.Fatalf("State() = %v, expected Paused", m.Session().State())
	}

	// Rotation is ignored while paused.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().Manager().MoveCount() != 0 {
		t.Errorf("MoveCount() = %d while paused, expected 0", m.Session().Manager().MoveCount())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() missing pause overlay")
	}

	m, _ = update(t, m, keyRunes("p"))
	if m.Session().State() != lifecycle.StatePlaying {
		t.Errorf("State() = %v after resume, expected Playing", m.Session().State())
	}
}

func TestPlayModelReset(t *testing.T) {
	m := loadedModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().Manager().MoveCount() != 1 {
		t.Fatalf("MoveCount() = %d, expected 1", m.Session().Manager().MoveCount())
	}

	m, _ = update(t, m, keyRunes("r"))
	if m.Session().Manager().MoveCount() != 0 {
		t.Errorf("MoveCount() = %d after reset, expected 0", m.Session().Manager().MoveCount())
	}
}

func TestPlayModelTimeUp(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	store := openStore(t)
	d := testDifficulty(t)
	d.TimeLimit = time.Second
	m := NewPlayModel(PlayConfig{Difficulty: d, Seed: 1, Store: store, Clock: clock.Now, Width: 80, Height: 24})
	m, _ = update(t, m, levelMsg{level: rowLevel(t)})

	clock.Advance(10 * time.Minute)
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick returned no command, expected re-arm")
	}
	if m.Session().State() != lifecycle.StateTimeUp {
		t.Fatalf("State() = %v after tick past the limit, expected TimeUp", m.Session().State())
	}
	if !strings.Contains(m.View(), "TIME UP") {
		t.Error("View() missing time-up overlay")
	}

	// The board no longer accepts rotations and nothing is saved.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().Manager().MoveCount() != 0 {
		t.Errorf("MoveCount() = %d after timeout, expected 0", m.Session().Manager().MoveCount())
	}
	if results, _ := store.TopResults("easy", 10); len(results) != 0 {
		t.Errorf("TopResults() returned %d entries after timeout, expected 0", len(results))
	}

	m, _ = update(t, m, keyRunes("r"))
	if m.Session().State() != lifecycle.StatePlaying {
		t.Fatalf("State() = %v after retry, expected Playing", m.Session().State())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Session().State() != lifecycle.StateVictory {
		t.Fatalf("State() = %v after solving the retry, expected Victory", m.Session().State())
	}
	if results, _ := store.TopResults("easy", 10); len(results) != 1 {
		t.Errorf("TopResults() returned %d entries, expected 1", len(results))
	}
}

func TestPlayModelTimeUpNext(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	d := testDifficulty(t)
	d.TimeLimit = time.Second
	m := NewPlayModel(PlayConfig{Difficulty: d, Seed: 1, Clock: clock.Now})
	m, _ = update(t, m, levelMsg{level: rowLevel(t)})

	clock.Advance(2 * time.Second)
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, keyRunes("n"))
	if cmd == nil || !m.loading {
		t.Fatal("next on time-up did not start loading")
	}

	m, _ = update(t, m, levelMsg{level: rowLevel(t)})
	if m.Session().State() != lifecycle.StatePlaying {
		t.Errorf("State() = %v after next level, expected Playing", m.Session().State())
	}
	if m.Session().Solved() != 0 {
		t.Errorf("Solved() = %d, expected 0", m.Session().Solved())
	}
}

func TestPlayModelGenerationError(t *testing.T) {
	m := NewPlayModel(PlayConfig{Difficulty: testDifficulty(t), Seed: 1})
	m, _ = update(t, m, levelMsg{err: errors.New("boom")})

	if !strings.Contains(m.View(), "boom") {
		t.Error("View() does not show the generation error")
	}

	m, cmd := update(t, m, keyRunes("n"))
	if cmd == nil || !m.loading {
		t.Error("retry after error did not start a new generation")
	}
}

func TestPlayModelBackAndQuit(t *testing.T) {
	m := loadedModel(t, nil)

	back, _ := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("BackToMenu() = false after esc")
	}

	quit, cmd := update(t, m, keyRunes("q"))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if quit.Session().State() != lifecycle.StateExiting {
		t.Errorf("State() = %v after quit, expected Exiting", quit.Session().State())
	}
}

func TestPlayModelGeneratesLevel(t *testing.T) {
	m := NewPlayModel(PlayConfig{
		Difficulty: testDifficulty(t),
		Generator:  core.DefaultGenParams(),
		Seed:       42,
	})

	msg := m.generateCmd()()
	lm, ok := msg.(levelMsg)
	if !ok {
		t.Fatalf("generateCmd() produced %T, expected levelMsg", msg)
	}
	if lm.err != nil {
		t.Fatalf("generation failed: %v", lm.err)
	}

	m, _ = update(t, m, lm)
	if m.Session().State() != lifecycle.StatePlaying {
		t.Errorf("State() = %v, expected Playing", m.Session().State())
	}
	if !m.Session().Manager().Grid().InBounds(m.Cursor()) {
		t.Errorf("Cursor() = %v outside grid", m.Cursor())
	}
}

func TestMenuSelect(t *testing.T) {
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	m := NewMenuModel(cfg.Presets.All(), config.PresetNormal, DefaultCircuitTheme(), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(MenuModel)

	if mm.Selected() == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if mm.Selected().Name != config.PresetHard {
		t.Errorf("Selected() = %s, expected hard", mm.Selected().Name)
	}
}

func TestAppFlow(t *testing.T) {
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}
	m := NewAppModel(AppConfig{Config: cfg, Seed: 3, Width: 80, Height: 24})
	if m.Screen() != "menu" {
		t.Fatalf("Screen() = %s, expected menu", m.Screen())
	}

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.Screen() != "results" {
		t.Fatalf("Screen() = %s after tab, expected results", m.Screen())
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Fatalf("Screen() = %s after esc, expected menu", m.Screen())
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "play" {
		t.Fatalf("Screen() = %s after enter, expected play", m.Screen())
	}
	if m.Play().cfg.Difficulty.Name != config.PresetNormal {
		t.Errorf("difficulty = %s, expected normal", m.Play().cfg.Difficulty.Name)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Errorf("Screen() = %s after esc, expected menu", m.Screen())
	}
}

func TestAppStartsWithLevel(t *testing.T) {
	level := rowLevel(t)
	m := NewAppModel(AppConfig{Level: level})
	if m.Screen() != "play" {
		t.Fatalf("Screen() = %s, expected play", m.Screen())
	}
	if m.Play().cfg.Difficulty.Name != "easy" {
		t.Errorf("difficulty = %s, expected easy", m.Play().cfg.Difficulty.Name)
	}
}
