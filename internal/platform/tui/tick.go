// Package tui provides the Bubble Tea front end for collector levels.
// It handles the terminal UI loop, input mapping, board rendering and
// the SSH server used for remote play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StepMsg advances a replay by one step. Gen ties the message to the run
// that scheduled it so stale ticks from a reset replay are dropped.
type StepMsg struct {
	Gen  int
	Time time.Time
}

// stepCmd returns a Bubble Tea command that sends the next replay tick after delay.
func stepCmd(delay time.Duration, gen int) tea.Cmd {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return StepMsg{Gen: gen, Time: t}
	})
}
