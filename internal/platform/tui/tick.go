// Package tui runs arcade games in a terminal with Bubble Tea: the local
// game loop, the menu and scoreboard, the online lobby and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg. Non-positive rates use 60 per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
