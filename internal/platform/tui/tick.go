// Package tui provides the Bubble Tea integration for hex skirmish.
// It runs the battle loop, maps keys and mouse events to input frames,
// and serves the scenario picker and battle history screens.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a battle simulation tick. Loop identifies the
// battle model that scheduled it.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh tick loop id.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
