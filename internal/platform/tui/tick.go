// Package tui provides the Bubble Tea integration for tap-colour.
// It runs scenes at a fixed tick rate, maps keys and mouse clicks to tile
// taps, and hosts the menu, settings and scoreboard screens for both
// local and SSH players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapcolour/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. Each tick loop carries
// the generation of the game that started it.
type TickMsg struct {
	Time time.Time
	gen  uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages of generation
// gen at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}
