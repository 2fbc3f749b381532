package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/lifecycle"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

// PlayConfig configures a play screen.
type PlayConfig struct {
	Difficulty core.Difficulty
	Generator  core.GenParams
	Seed       int64       // seeds the level sequence; 0 = time-based
	Level      *core.Level // optional first level, e.g. loaded from a file
	Store      *storage.Store
	Player     string
	Logger     *log.Logger
	Theme      string           // see ThemeByName
	Clock      func() time.Time // nil uses time.Now
	Width      int
	Height     int
}

// levelMsg delivers a generated level to the update loop.
type levelMsg struct {
	level *core.Level
	err   error
}

// PlayModel is the Bubble Tea model for solving puzzles of one difficulty.
type PlayModel struct {
	cfg     PlayConfig
	session *lifecycle.Session
	gen     *core.Generator
	keys    PlayKeyMap
	help    help.Model
	theme   CircuitTheme
	logger  *log.Logger

	cursor   core.Coord
	width    int
	height   int
	loading  bool
	err      error
	last     *lifecycle.Result
	quitting bool
	back     bool
}

// NewPlayModel creates a play model. Levels are generated off the update
// loop by a generator owned by this model.
func NewPlayModel(cfg PlayConfig) PlayModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	params := cfg.Generator
	if params.Logger == nil {
		params.Logger = logger
	}
	gen := core.NewGenerator(params, core.NewRand(cfg.Seed))

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.Width

	return PlayModel{
		cfg: cfg,
		session: lifecycle.NewSession(gen, lifecycle.SessionConfig{
			Difficulty: cfg.Difficulty,
			Logger:     logger,
			Clock:      cfg.Clock,
		}),
		gen:     gen,
		keys:    DefaultPlayKeyMap(),
		help:    h,
		theme:   ThemeByName(cfg.Theme),
		logger:  logger,
		width:   cfg.Width,
		height:  cfg.Height,
		loading: true,
	}
}

// Init loads the first level and starts the clock.
func (m PlayModel) Init() tea.Cmd {
	first := m.generateCmd()
	if m.cfg.Level != nil {
		level := m.cfg.Level
		first = func() tea.Msg { return levelMsg{level: level} }
	}
	return tea.Batch(first, tickCmd(hudRefresh))
}

// generateCmd runs the generator outside the update loop. Only one
// generation is in flight at a time because the model ignores input while
// loading.
func (m PlayModel) generateCmd() tea.Cmd {
	gen, d := m.gen, m.cfg.Difficulty
	return func() tea.Msg {
		level, err := gen.Generate(d)
		return levelMsg{level: level, err: err}
	}
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case levelMsg:
		return m.handleLevel(msg)
	case TickMsg:
		if m.quitting || m.back {
			return m, nil
		}
		if !m.loading {
			m.session.CheckTimeout()
		}
		return m, tickCmd(hudRefresh)
	}
	return m, nil
}

func (m PlayModel) handleLevel(msg levelMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.logger.Warn("level generation failed", "difficulty", m.cfg.Difficulty.Name, "error", msg.err)
		return m, nil
	}
	if err := m.session.StartWith(msg.level); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.last = nil
	m.cursor = firstClickable(msg.level)
	m.recordVictory()
	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.session.Quit(); err != nil {
			m.logger.Debug("quit", "state", m.session.State(), "error", err)
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, nil
	}

	if m.loading {
		return m, nil
	}
	if m.err != nil {
		// Generation failed; any of these retries with a fresh attempt.
		if key.Matches(msg, m.keys.Next, m.keys.Reset, m.keys.Rotate) {
			m.loading = true
			m.err = nil
			return m, m.generateCmd()
		}
		return m, nil
	}

	switch m.session.State() {
	case lifecycle.StatePlaying:
		return m.handlePlayingKey(msg)
	case lifecycle.StatePaused:
		if key.Matches(msg, m.keys.Pause) {
			m.togglePause()
		}
	case lifecycle.StateVictory:
		if key.Matches(msg, m.keys.Next, m.keys.Rotate) {
			m.loading = true
			return m, m.generateCmd()
		}
	case lifecycle.StateTimeUp:
		switch {
		case key.Matches(msg, m.keys.Reset):
			if err := m.session.Reset(); err != nil {
				m.logger.Debug("retry rejected", "error", err)
			}
		case key.Matches(msg, m.keys.Next):
			m.loading = true
			return m, m.generateCmd()
		}
	}
	return m, nil
}

func (m PlayModel) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Rotate):
		if m.session.Rotate(m.cursor.X, m.cursor.Y) {
			m.recordVictory()
		}
	case key.Matches(msg, m.keys.Reset):
		if err := m.session.Reset(); err != nil {
			m.logger.Debug("reset rejected", "error", err)
		}
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
	}
	return m, nil
}

func (m *PlayModel) moveCursor(dx, dy int) {
	level := m.session.Manager().Level()
	if level == nil {
		return
	}
	size := level.Size()
	x := min(max(m.cursor.X+dx, 0), size-1)
	y := min(max(m.cursor.Y+dy, 0), size-1)
	m.cursor = core.C(x, y)
}

func (m *PlayModel) togglePause() {
	if err := m.session.TogglePause(); err != nil {
		m.logger.Debug("pause rejected", "state", m.session.State(), "error", err)
	}
}

// recordVictory stores the result of a just-solved puzzle once.
func (m *PlayModel) recordVictory() {
	if m.last != nil {
		return
	}
	res, ok := m.session.Result()
	if !ok {
		return
	}
	m.last = &res
	m.logger.Info("puzzle solved",
		"player", m.cfg.Player,
		"difficulty", res.Difficulty,
		"moves", res.Moves,
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"stars", res.Stars,
	)
	if m.cfg.Store == nil {
		return
	}
	if _, err := m.cfg.Store.SaveResult(m.cfg.Player, res); err != nil {
		m.logger.Warn("could not save result", "error", err)
	}
}

func firstClickable(level *core.Level) core.Coord {
	if coords := level.Grid.ClickableCoords(); len(coords) > 0 {
		return coords[0]
	}
	return level.Grid.Source
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var body string
	switch {
	case m.err != nil:
		body = m.renderOverlay("NO CIRCUIT",
			m.theme.OverlayText.Render(m.err.Error()),
			m.theme.HUDControls.Render("n: try again  •  esc: menu  •  q: quit"))
	case m.loading || m.session.Manager().Level() == nil:
		body = m.renderOverlay("ROUTING", m.theme.OverlayText.Render("Generating circuit..."))
	default:
		body = m.renderPlaying()
	}

	footer := m.theme.HUDControls.Render(m.help.View(m.keys))
	return placeCenter(lipgloss.JoinVertical(lipgloss.Center, body, "", footer), m.width, m.height)
}

func (m PlayModel) renderPlaying() string {
	mgr := m.session.Manager()
	g := mgr.Grid()
	board := m.theme.Board.Render(renderBoard(g, mgr.PoweredCells(), m.cursor, m.theme))

	switch m.session.State() {
	case lifecycle.StatePaused:
		return lipgloss.JoinVertical(lipgloss.Center, m.renderHUD(),
			m.renderOverlay("PAUSED", m.theme.HUDControls.Render("p: resume")))
	case lifecycle.StateVictory:
		return lipgloss.JoinVertical(lipgloss.Center, m.renderHUD(), board, m.renderVictory())
	case lifecycle.StateTimeUp:
		return lipgloss.JoinVertical(lipgloss.Center, m.renderHUD(), board,
			m.renderOverlay("TIME UP",
				m.theme.OverlayText.Render(fmt.Sprintf("The circuit stayed open after %s.", formatClock(m.session.Timer().Limit()))),
				m.theme.HUDControls.Render("r: retry  •  n: next puzzle  •  esc: menu  •  q: quit")))
	}
	return lipgloss.JoinVertical(lipgloss.Center, m.renderHUD(), board)
}

func (m PlayModel) renderHUD() string {
	mgr := m.session.Manager()
	timer := m.session.Timer()
	sep := m.theme.HUDSeparator.Render("  │  ")

	clock := m.theme.HUDValue.Render(formatClock(timer.Elapsed()))
	if timer.Limit() > 0 {
		remaining := formatClock(timer.Remaining())
		if timer.Expired() {
			clock = m.theme.HUDWarning.Render(formatClock(timer.Elapsed()) + " (over)")
		} else {
			clock += m.theme.HUDSeparator.Render(" / ") + m.theme.HUDValue.Render(remaining+" left")
		}
	}

	parts := []string{
		m.theme.HUDTitle.Render("CIRCUIT"),
		m.theme.HUDValue.Render(strings.ToUpper(m.cfg.Difficulty.Name)),
		fmt.Sprintf("%s %s", m.theme.HUDControls.Render("moves"), m.theme.HUDValue.Render(fmt.Sprint(mgr.MoveCount()))),
		clock,
		fmt.Sprintf("%s %s", m.theme.HUDControls.Render("solved"), m.theme.HUDValue.Render(fmt.Sprint(m.session.Solved()))),
	}
	return strings.Join(parts, sep)
}

func (m PlayModel) renderVictory() string {
	if m.last == nil {
		return m.renderOverlay("CIRCUIT CLOSED")
	}
	r := m.last
	lines := []string{
		renderStars(r.Stars, m.theme),
		m.theme.OverlayText.Render(fmt.Sprintf("%d moves (best %d)  •  %s", r.Moves, r.MinMoves, formatClock(r.Elapsed))),
		m.theme.HUDControls.Render("n: next puzzle  •  esc: menu  •  q: quit"),
	}
	return m.renderOverlay("CIRCUIT CLOSED", lines...)
}

func (m PlayModel) renderOverlay(title string, lines ...string) string {
	content := append([]string{m.theme.OverlayTitle.Render(title), ""}, lines...)
	return m.theme.OverlayBorder.Render(lipgloss.JoinVertical(lipgloss.Center, content...))
}

// Session exposes the underlying lifecycle session.
func (m PlayModel) Session() *lifecycle.Session {
	return m.session
}

// Cursor returns the highlighted cell.
func (m PlayModel) Cursor() core.Coord {
	return m.cursor
}

// LastResult returns the most recent solved puzzle, if any.
func (m PlayModel) LastResult() (lifecycle.Result, bool) {
	if m.last == nil {
		return lifecycle.Result{}, false
	}
	return *m.last, true
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.back
}
