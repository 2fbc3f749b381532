package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items       []core.Difficulty
	cursor      int
	width       int
	height      int
	theme       CircuitTheme
	quitting    bool
	selected    *core.Difficulty // Set when user picks a difficulty
	openResults bool             // True if user pressed Tab for results
}

// NewMenuModel creates a new menu model over the given presets.
// The cursor starts on the preset named def, if present.
func NewMenuModel(presets []core.Difficulty, def string, theme CircuitTheme, width, height int) MenuModel {
	cursor := 0
	for i, d := range presets {
		if strings.EqualFold(d.Name, def) {
			cursor = i
		}
	}
	return MenuModel{
		items:  presets,
		cursor: cursor,
		width:  width,
		height: height,
		theme:  theme,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case MenuActionResults:
		m.openResults = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("C I R C U I T   R E P A I R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Rotate the wires until power reaches the terminal"), m.width))
	b.WriteString("\n\n")

	for i, d := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%-8s", cursor, d.Name)) + "  " + m.theme.MenuDescription.Render(describe(d))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Results  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// describe summarizes a preset for the menu.
func describe(d core.Difficulty) string {
	s := fmt.Sprintf("grid %v  tiles %v", d.GridSize, d.MovableTiles)
	if d.TimeLimit > 0 {
		s += "  par " + formatClock(d.TimeLimit)
	}
	return s
}

// Selected returns the selected difficulty, or nil if none selected.
func (m MenuModel) Selected() *core.Difficulty {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user requested the results table.
func (m MenuModel) WantsResults() bool {
	return m.openResults
}
