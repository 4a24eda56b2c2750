package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gate-runner/internal/config"
	"github.com/vovakirdan/gate-runner/internal/core"
	"github.com/vovakirdan/gate-runner/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	return NewModel(Options{
		Gates:   config.DefaultGatesConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99},
		Store:   store,
		Strict:  true,
	})
}

// tick feeds one tick message and returns the updated model.
func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.key)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.key.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestModelFirstTickDoesNotMove(t *testing.T) {
	m := newTestModel(t, nil)
	before, _ := m.game.Engine().Ball()

	m = tick(t, m, time.Now())

	after, _ := m.game.Engine().Ball()
	if before != after {
		t.Errorf("first tick has no elapsed time, ball moved %+v -> %+v", before, after)
	}
}

func TestModelElapsedIsClamped(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = tick(t, m, start)

	// A ten second stall advances at most maxElapsed.
	m = tick(t, m, start.Add(10*time.Second))

	pos, _ := m.game.Engine().Ball()
	speed := config.NewProgression(config.DefaultGatesConfig()).SpeedMultiplier(0)
	if moved := -pos.X; moved > maxElapsed*speed+1e-9 {
		t.Errorf("ball moved %f, expected at most %f", moved, maxElapsed*speed)
	}
}

func TestModelHeldKeySteers(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = tick(t, m, start)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	for i := 1; i <= 5; i++ {
		m = tick(t, m, start.Add(time.Duration(i)*10*time.Millisecond))
	}

	if y := m.game.Engine().Paddle().Y; y <= 0 {
		t.Errorf("paddle y = %f, expected held up key to raise it", y)
	}
}

func TestModelMouseSteers(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = tick(t, m, start)

	// Bottom rows of the screen map to the lower half of the court.
	next, _ := m.Update(tea.MouseMsg{X: 10, Y: 20, Action: tea.MouseActionMotion})
	m = next.(Model)
	m = tick(t, m, start.Add(10*time.Millisecond))

	if y := m.game.Engine().Paddle().Y; y >= 0 {
		t.Errorf("paddle y = %f, expected pointer near the bottom to lower it", y)
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	m = tick(t, m, start)
	m = tick(t, m, start.Add(50*time.Millisecond))
	before, _ := m.game.Engine().Ball()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	after, _ := m.game.Engine().Ball()
	if before != after {
		t.Error("resize should not reset the session")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestModelJournalsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	first := m.journal.RunID()
	if first == "" {
		t.Fatal("model should open a journal run")
	}

	gates, err := store.Gates(first)
	if err != nil {
		t.Fatalf("Gates() failed: %v", err)
	}
	if len(gates) != 1 || gates[0].Reason != "start" {
		t.Fatalf("journal = %+v, expected the start placement", gates)
	}

	// Restart opens a new run with the pinned seed and closes the old one.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	m = tick(t, m, time.Now())

	second := m.journal.RunID()
	if second == "" || second == first {
		t.Fatalf("restart should open a new run, got %q", second)
	}
	old, err := store.RunByID(first)
	if err != nil || old == nil {
		t.Fatalf("RunByID() = %v, %v", old, err)
	}
	if old.EndedAt.IsZero() {
		t.Error("previous run should be closed")
	}
	current, _ := store.RunByID(second)
	if current == nil || current.Seed != 99 {
		t.Errorf("new run = %+v, expected pinned seed 99", current)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "SCORE") {
		t.Error("view should contain the HUD")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, expected 24", lines)
	}
}

func TestPainterGroupsRuns(t *testing.T) {
	scr := core.NewScreen(4, 1)
	scr.SetBackground("#000000")
	scr.Clear()
	scr.DrawText(0, 0, "ab", core.ColorForeground)

	p := NewPainter(nil)
	out := p.Render(scr)
	if !strings.Contains(out, "ab") {
		t.Errorf("output %q should contain the text run", out)
	}
	if len(p.styles) != 2 {
		t.Errorf("cached %d styles, expected 2", len(p.styles))
	}
}
