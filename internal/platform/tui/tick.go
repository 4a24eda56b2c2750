// Package tui provides the Bubble Tea host for the gate runner.
// It handles the terminal UI loop, input mapping and rasterization,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gate-runner/internal/core"
)

// TickMsg carries the wall time of a frame.
// The model derives elapsed seconds from consecutive ticks, so a late frame
// still advances the simulation by the time that actually passed.
type TickMsg time.Time

// tickCmd schedules the next frame. A non-positive rate falls back to the default.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
