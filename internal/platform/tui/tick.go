// Package tui provides the Bubble Tea front end for the circuit puzzle:
// difficulty menu, play screen, results table and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// hudRefresh is how often the clock on the HUD is redrawn.
const hudRefresh = time.Second

// TickMsg is sent to refresh the play clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
