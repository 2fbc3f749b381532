package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// CircuitTheme contains all configurable visual styles for the play screen.
type CircuitTheme struct {
	// Board
	WireLive   lipgloss.Style // powered wire
	WireDead   lipgloss.Style // unpowered wire
	Source     lipgloss.Style
	Terminal   lipgloss.Style
	TerminalOn lipgloss.Style // terminal once the circuit closes
	EmptyCell  lipgloss.Style
	Cursor     lipgloss.Style
	Board      lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDWarning   lipgloss.Style
	HUDControls  lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
	StarOn        lipgloss.Style
	StarOff       lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultCircuitTheme returns the default visual theme.
func DefaultCircuitTheme() CircuitTheme {
	return CircuitTheme{
		WireLive:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Bright yellow
		WireDead:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),            // Gray
		Source:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),  // Lime green
		Terminal:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
		TerminalOn: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		EmptyCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Cursor:     lipgloss.NewStyle().Background(lipgloss.Color("57")),
		Board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		StarOn:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StarOff:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeCircuitTheme returns a grayscale theme for limited terminals.
func MonochromeCircuitTheme() CircuitTheme {
	theme := DefaultCircuitTheme()
	theme.WireLive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.WireDead = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	theme.Source = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.Terminal = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.TerminalOn = theme.WireLive
	theme.Cursor = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName returns a theme by name, falling back to the default.
func ThemeByName(name string) CircuitTheme {
	switch name {
	case "mono", "monochrome":
		return MonochromeCircuitTheme()
	default:
		return DefaultCircuitTheme()
	}
}
