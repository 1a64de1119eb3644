// Package tui provides the Bubble Tea integration for driftfield: the
// frame loop driving the simulation, key mapping, screen rasterization,
// and the SSH server for remote play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that emits tick messages at the
// given rate. The wall-clock timestamp travels with the message so the
// simulation clock sees real frame times, not nominal ones.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
