package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/config"
	"github.com/vovakirdan/gate-runner/internal/core"
	"github.com/vovakirdan/gate-runner/internal/games/gates"
	"github.com/vovakirdan/gate-runner/internal/storage"
)

const (
	// maxElapsed caps one tick so a stalled terminal does not teleport the ball.
	maxElapsed = 0.1
	// keyHold is how long a key press keeps steering; key repeat refreshes it.
	keyHold = 150 * time.Millisecond
	// courtPadding is the margin around the court, in court units.
	courtPadding = 0.2
)

// Options configure a Model.
type Options struct {
	Gates      config.GatesConfig
	Runtime    core.RuntimeConfig
	Store      *storage.Store // optional gate journal
	Difficulty string
	Player     string
	Logger     *log.Logger        // nil discards
	Renderer   *lipgloss.Renderer // nil uses the local terminal
	Strict     bool               // panic on broken invariants
}

// Model is the Bubble Tea model hosting one gate runner session.
type Model struct {
	game       *gates.Game
	screen     *core.Screen
	painter    *Painter
	journal    *Journal
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	pinnedSeed bool
	transform  core.Transform

	inputFrame core.InputFrame
	held       map[core.Action]time.Time
	pointerRow int
	hasPointer bool
	lastTick   time.Time

	gameState core.GameState
	runClosed bool
	quitting  bool
}

// NewModel creates a new Bubble Tea model.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	pinned := cfg.Seed != 0
	// Use time-based seed if not specified
	if !pinned {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	journal := NewJournal(opts.Store, opts.Difficulty, opts.Player, logger)

	gameOpts := []gates.Option{
		gates.WithLogger(logger),
		gates.WithGateObserver(func(ev gates.GateEvent) {
			logger.Debug("gates placed",
				"reason", ev.Reason,
				"score", ev.Score,
				"lives", ev.Lives,
				"gap", ev.Placement.Forward.Gap,
				"top", ev.Placement.Forward.GapTop,
				"earlier", ev.UseEarlier,
				"attempts", ev.Placement.Attempts,
			)
			journal.Record(ev)
		}),
	}
	if opts.Strict {
		gameOpts = append(gameOpts, gates.WithStrictInvariants())
	}

	m := Model{
		game:       gates.New(opts.Gates, gameOpts...),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(opts.Renderer),
		journal:    journal,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		pinnedSeed: pinned,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]time.Time),
	}
	m.startRun()
	return m
}

// startRun begins a journal run and a fresh session on the current seed.
func (m *Model) startRun() {
	m.journal.Begin(m.config.Seed)
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runClosed = false
	m.fit()
	m.logger.Info("run started", "seed", m.config.Seed)
}

// fit recomputes the court transform for the current screen size.
func (m *Model) fit() {
	lo, hi := m.game.Engine().Extents()
	m.transform = core.FitTransform(lo, hi, m.screen.Width(), m.screen.Height(), courtPadding)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.journal.End()
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case IsSteering(action):
		// Opposite keys cancel each other; the latest press wins.
		delete(m.held, core.ActionUp)
		delete(m.held, core.ActionDown)
		m.held[action] = time.Now().Add(keyHold)
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse steers the paddle to the row under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion, tea.MouseActionPress:
		m.pointerRow = msg.Y
		m.hasPointer = true
	}
	return m, nil
}

// handleResize keeps the session and refits the court to the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.fit()
	return m, nil
}

// handleTick advances the simulation by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := 0.0
	if !m.lastTick.IsZero() {
		elapsed = core.ClampF(now.Sub(m.lastTick).Seconds(), 0, maxElapsed)
	}
	m.lastTick = now

	if m.inputFrame.Has(core.ActionRestart) || (m.gameState.GameOver && m.inputFrame.Has(core.ActionConfirm)) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	m.applyHeld(now)
	m.applyPointer()

	result := m.game.Step(m.inputFrame, elapsed)
	m.gameState = result.State

	if result.Missed {
		m.logger.Info("gate missed", "score", m.gameState.Score, "lives", m.gameState.Lives)
	}
	if m.gameState.GameOver && !m.runClosed {
		m.logger.Info("game over", "score", m.gameState.Score, "seed", m.config.Seed)
		m.journal.End()
		m.runClosed = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run. A seed given on the command line is reused so runs stay reproducible.
func (m *Model) restart() {
	if !m.pinnedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.inputFrame.Clear()
	clear(m.held)
	m.startRun()
}

func (m *Model) applyHeld(now time.Time) {
	for action, until := range m.held {
		if now.After(until) {
			delete(m.held, action)
			continue
		}
		m.inputFrame.Set(action)
	}
}

func (m *Model) applyPointer() {
	if !m.hasPointer {
		return
	}
	target := m.transform.CellToCourt(0, float64(m.pointerRow)+0.5)
	m.inputFrame.SetPointer(target.Y)
	m.hasPointer = false
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen, m.transform)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen, m.transform)
	return m.painter.Render(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer steers the paddle
	)

	_, err := p.Run()
	model.journal.End()
	return err
}
