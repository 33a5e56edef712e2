// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and screen flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// GameModel that scheduled it so a model never consumes a stale loop's tick.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

// loopSeq hands out tick loop IDs. SSH sessions create models concurrently.
var loopSeq atomic.Uint64

func nextLoopID() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends a tick after one frame.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
