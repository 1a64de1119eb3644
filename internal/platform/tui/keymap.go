package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// steerAction is a semantic steering input decoded from a key press.
type steerAction int

const (
	steerNone steerAction = iota
	steerLeft
	steerRight
	steerRelease
	actionRestart
	actionQuit
)

// mapKey translates a key message to a steering action.
//
// Terminals deliver key presses but no key releases, so steering is
// sticky: a direction key engages the turn, pressing it again (or
// space/down) releases back to autonomous drift. The opposite direction
// switches the turn.
func mapKey(msg tea.KeyMsg) steerAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return actionQuit
	case "left", "a", "h":
		return steerLeft
	case "right", "d", "l":
		return steerRight
	case " ", "down", "s":
		return steerRelease
	case "r":
		return actionRestart
	}
	return steerNone
}
