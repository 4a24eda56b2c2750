package gates

import (
	"math/rand"

	"github.com/vovakirdan/gate-runner/internal/config"
	"github.com/vovakirdan/gate-runner/internal/core"
)

// Game adapts the Engine to the terminal host: it turns input frames into
// paddle targets, handles pause and restart, and rasterizes the court.
type Game struct {
	cfg    config.GatesConfig
	opts   []Option
	engine *Engine

	runtime   core.RuntimeConfig
	paused    bool
	tickCount int
}

// New creates a game using cfg. Options are applied to every engine the game builds.
func New(cfg config.GatesConfig, opts ...Option) *Game {
	return &Game{
		cfg:  cfg,
		opts: opts,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "gates"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gate Runner"
}

// Reset starts a fresh session seeded from runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.tickCount = 0
	g.engine = NewEngine(g.cfg, rand.New(rand.NewSource(runtime.Seed)), g.opts...)
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by elapsed seconds of wall time.
func (g *Game) Step(in core.InputFrame, elapsed float64) core.StepResult {
	if g.engine == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionRestart) || (!g.engine.IsPlaying() && in.Has(core.ActionConfirm)) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if !g.engine.IsPlaying() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	} else if g.paused && in.Has(core.ActionBack) {
		g.paused = false
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.steer(in, elapsed)

	out := g.engine.Advance(elapsed)
	g.tickCount++

	return core.StepResult{
		State:  g.State(),
		Scored: out.Scored,
		Missed: out.Missed,
	}
}

// steer moves the paddle target. A pointer wins over keys.
func (g *Game) steer(in core.InputFrame, elapsed float64) {
	if in.HasPointer {
		g.engine.SetPaddleTarget(in.PointerY)
		return
	}

	dy := 0.0
	if in.Has(core.ActionUp) {
		dy += g.cfg.Paddle.KeySpeed * elapsed
	}
	if in.Has(core.ActionDown) {
		dy -= g.cfg.Paddle.KeySpeed * elapsed
	}
	if dy != 0 {
		g.engine.SetPaddleTarget(g.engine.Paddle().Y + dy)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:      g.engine.Score(),
		Lives:      g.engine.Lives(),
		LevelIndex: g.engine.LevelIndex(),
		GameOver:   !g.engine.IsPlaying(),
		Paused:     g.paused,
	}
}

// IsPaused reports whether the game is paused.
func (g *Game) IsPaused() bool {
	return g.paused
}
