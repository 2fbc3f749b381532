package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/config"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

// AppConfig configures a full session: menu, play and results.
type AppConfig struct {
	Config     config.Config
	Store      *storage.Store
	Player     string
	Logger     *log.Logger
	Seed       int64
	Difficulty string      // non-empty skips the menu
	Level      *core.Level // optional first level; implies Difficulty
	Theme      string
	Width      int
	Height     int
}

type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenResults
)

// AppModel manages the session flow: menu -> play -> menu, with the
// results table reachable from the menu.
type AppModel struct {
	cfg      AppConfig
	logger   *log.Logger
	screen   screen
	menu     MenuModel
	play     PlayModel
	results  ResultsModel
	quitting bool
}

// NewAppModel creates the top-level model. If a difficulty or level is
// configured the session starts directly on the play screen.
func NewAppModel(cfg AppConfig) AppModel {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Config.Presets == nil {
		def, err := config.LoadDefault()
		if err != nil {
			cfg.Logger.Error("no difficulty presets", "error", err)
		}
		cfg.Config = def
	}
	m :=AppModel{cfg: cfg, logger: cfg.Logger}
	m.menu = m.newMenu()

	if cfg.Level != nil || cfg.Difficulty != "" {
		name := cfg.Difficulty
		if name == "" {
			name = cfg.Level.Difficulty
		}
		d, err := cfg.Config.Presets.Resolve(name)
		if err != nil {
			m.logger.Warn("unknown difficulty, showing menu", "difficulty", name, "error", err)
			return m
		}
		m.startPlay(d, cfg.Level)
	}
	return m
}

func (m AppModel) newMenu() MenuModel {
	return NewMenuModel(m.cfg.Config.Presets.All(), m.cfg.Config.Presets.Default().Name,
		ThemeByName(m.cfg.Theme), m.cfg.Width, m.cfg.Height)
}

func (m *AppModel) startPlay(d core.Difficulty, level *core.Level) {
	seed := m.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.play = NewPlayModel(PlayConfig{
		Difficulty: d,
		Generator:  m.cfg.Config.Generator,
		Seed:       seed,
		Level:      level,
		Store:      m.cfg.Store,
		Player:     m.cfg.Player,
		Logger:     m.logger,
		Theme:      m.cfg.Theme,
		Width:      m.cfg.Width,
		Height:     m.cfg.Height,
	})
	m.screen = screenPlay
	m.logger.Debug("play started", "player", m.cfg.Player, "difficulty", d.Name, "seed", seed)
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.screen == screenPlay {
		return m.play.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Width = wsm.Width
		m.cfg.Height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenResults:
		return m.updateResults(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsResults():
		m.results = NewResultsModel(m.cfg.Store, m.cfg.Config.Presets.Names(), m.cfg.Width, m.cfg.Height)
		m.screen = screenResults
		return m, m.results.Init()
	case m.menu.Selected() != nil:
		m.startPlay(*m.menu.Selected(), nil)
		return m, m.play.Init()
	}
	return m, cmd
}

func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = pm
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m AppModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.results.Update(msg)
	if rm, ok := next.(ResultsModel); ok {
		m.results = rm
	}

	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.results.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *AppModel) toMenu() {
	m.menu = m.newMenu()
	m.screen = screenMenu
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenResults:
		return m.results.View()
	}
	return m.menu.View()
}

// Screen reports the active screen name, for logs and tests.
func (m AppModel) Screen() string {
	switch m.screen {
	case screenPlay:
		return "play"
	case screenResults:
		return "results"
	}
	return "menu"
}

// Play returns the play screen model.
func (m AppModel) Play() PlayModel {
	return m.play
}

// RunApp runs the full session in the local terminal.
func RunApp(cfg AppConfig) error {
	p := tea.NewProgram(NewAppModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
