// Package gates implements the gate runner: a single-paddle Pong variant where
// the ball must be threaded through procedurally placed gates.
//
// The package is pure simulation. The platform feeds paddle targets in and
// draws the Drawables the engine hands back each tick.
package gates

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/config"
	"github.com/vovakirdan/gate-runner/internal/core"
)

// GateReason tells observers why a new placement was generated.
type GateReason string

const (
	ReasonStart GateReason = "start"
	ReasonScore GateReason = "score"
	ReasonMiss  GateReason = "miss"
)

// GateEvent is published every time the engine requests new gates.
type GateEvent struct {
	Reason     GateReason
	Score      int
	Lives      int
	UseEarlier bool
	MoveBlocks bool
	Placement  Placement
}

// Outcome summarizes what happened during one Advance call.
type Outcome struct {
	Scored   bool
	Missed   bool
	GameOver bool
}

// Block is an obstacle. Up is its current travel direction once blocks move.
type Block struct {
	Pos core.Vec2
	Up  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.check.logger = orDiscard(logger)
	}
}

// WithStrictInvariants makes invariant violations panic instead of being clamped.
func WithStrictInvariants() Option {
	return func(e *Engine) {
		e.check.strict = true
	}
}

// WithGateObserver registers fn to be called for every generated placement.
func WithGateObserver(fn func(GateEvent)) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// bodyKind selects how a collider reshapes the ball's vertical velocity.
type bodyKind int

const (
	kindPaddle bodyKind = iota // steers the ball toward the hit offset
	kindBlock                  // steers the ball away from the hit offset
)

// Engine owns every entity of a session and advances it in time.
// It is not safe for concurrent use; the host calls it from one loop.
type Engine struct {
	cfg       config.GatesConfig
	prog      *config.Progression
	gen       *Generator
	check     *invariants
	observers []func(GateEvent)

	court        core.Vec2
	ballRadius   core.Vec2
	paddleRadius core.Vec2
	blockRadius  core.Vec2

	ball      core.Vec2
	ballVel   core.Vec2
	paddle    core.Vec2
	blocks    [2]Block
	placement Placement
	trail     Trail

	score      int
	lives      int
	useEarlier bool
	moveBlocks bool
	playing    bool
}

// NewEngine creates a session in its initial state.
// rng drives gate placement; pass a seeded source for reproducible runs.
func NewEngine(cfg config.GatesConfig, rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		cfg:          cfg,
		prog:         config.NewProgression(cfg),
		check:        &invariants{logger: orDiscard(nil)},
		court:        core.V2(cfg.Court.RadiusX, cfg.Court.RadiusY),
		ballRadius:   core.V2(cfg.Ball.Radius, cfg.Ball.Radius),
		paddleRadius: core.V2(cfg.Paddle.RadiusX, cfg.Paddle.RadiusY),
		blockRadius:  core.V2(cfg.Blocks.RadiusX, cfg.Blocks.RadiusY),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.gen = newGenerator(cfg, e.prog, rng, e.check)
	e.Reset()
	return e
}

// Reset returns the session to its initial state. It is the only way out of game over.
func (e *Engine) Reset() {
	e.ball = core.V2(0, 0)
	e.ballVel = core.V2(-1, 0)
	e.paddle = core.V2(-e.court.X+e.cfg.Paddle.Inset, 0)
	e.blocks = [2]Block{
		{Pos: core.V2(e.cfg.Blocks.Upper.X, e.cfg.Blocks.Upper.Y), Up: true},
		{Pos: core.V2(e.cfg.Blocks.Lower.X, e.cfg.Blocks.Lower.Y), Up: true},
	}
	e.score = 0
	e.lives = e.cfg.Gameplay.Lives
	e.useEarlier = false
	e.moveBlocks = false
	e.playing = true

	e.newGate(ReasonStart)

	// Seed the trail as if the ball had been resting here forever.
	e.trail = NewTrail(e.ball, e.cfg.Ball.TrailLength)
}

// SetPaddleTarget stores the paddle's new y. It is clamped on the next Advance.
func (e *Engine) SetPaddleTarget(y float64) {
	e.paddle.Y = y
}

// Advance moves the session forward by elapsed seconds.
// A finished session does nothing until Reset.
func (e *Engine) Advance(elapsed float64) Outcome {
	if !e.playing {
		return Outcome{GameOver: true}
	}
	var out Outcome

	e.clampPaddle()

	speed := e.prog.SpeedMultiplier(e.score)
	e.ball = e.ball.Add(e.ballVel.Scale(elapsed * speed))

	if e.moveBlocks {
		e.advanceBlocks(elapsed)
	}

	e.bounceOff(core.NewBox(e.paddle, e.paddleRadius), kindPaddle)
	for _, b := range e.blocks {
		e.bounceOff(core.NewBox(b.Pos, e.blockRadius), kindBlock)
	}

	e.resolveFloorAndCeiling()

	// Right wall: the ball made it through every gate.
	if e.ball.X > e.court.X-e.ballRadius.X {
		e.ball.X = e.court.X - e.ballRadius.X
		if e.ballVel.X > 0 {
			e.respawnBall()
			e.score++
			e.newGate(ReasonScore)
			out.Scored = true
		}
	}

	if piece, hit := e.gateHit(); hit {
		e.ball.X = piece.Left() - e.ballRadius.X
		if e.ballVel.X > 0 {
			out.Missed = true
			e.loseLife()
			if e.playing {
				e.respawnBall()
				e.newGate(ReasonMiss)
			} else {
				out.GameOver = true
			}
		}
	}

	// Left wall
	if e.ball.X < -e.court.X+e.ballRadius.X {
		e.ball.X = -e.court.X + e.ballRadius.X
		if e.ballVel.X < 0 {
			e.ballVel.X = -e.ballVel.X
		}
	}

	e.trail.Advance(e.ball, elapsed)
	return out
}

func (e *Engine) clampPaddle() {
	e.paddle.Y = core.ClampF(e.paddle.Y, -e.court.Y+e.paddleRadius.Y, e.court.Y-e.paddleRadius.Y)
}

// blockBounds returns the court y range blocks oscillate within.
func (e *Engine) blockBounds() (lo, hi float64) {
	ry := e.court.Y
	return e.cfg.Gates.MinBottom*2*ry - ry, e.cfg.Gates.MaxTop*2*ry - ry
}

func (e *Engine) advanceBlocks(elapsed float64) {
	lo, hi := e.blockBounds()
	step := elapsed * e.cfg.Blocks.Speed
	for i := range e.blocks {
		b := &e.blocks[i]
		if b.Pos.Y+e.blockRadius.Y >= hi {
			b.Up = false
		} else if b.Pos.Y-e.blockRadius.Y <= lo {
			b.Up = true
		}
		if b.Up {
			b.Pos.Y += step
		} else {
			b.Pos.Y -= step
		}
	}
}

func (e *Engine) resolveFloorAndCeiling() {
	if e.ball.Y > e.court.Y-e.ballRadius.Y {
		e.ball.Y = e.court.Y - e.ballRadius.Y
		if e.ballVel.Y > 0 {
			e.ballVel.Y = -e.ballVel.Y
		}
	}
	if e.ball.Y < -e.court.Y+e.ballRadius.Y {
		e.ball.Y = -e.court.Y + e.ballRadius.Y
		if e.ballVel.Y < 0 {
			e.ballVel.Y = -e.ballVel.Y
		}
	}
}

// respawnBall puts the ball back in front of the paddle, heading for it.
func (e *Engine) respawnBall() {
	e.ball = core.V2(e.cfg.Ball.SpawnX, e.paddle.Y)
	e.ballVel = core.V2(-1, 0)

	limit := e.court.Y - e.paddleRadius.Y - e.ballRadius.Y
	if e.ball.Y < -limit {
		e.ball.Y = 1.1*e.paddleRadius.Y + e.ballRadius.Y - e.court.Y
	}
	if e.ball.Y > limit {
		e.ball.Y = -1.1*e.paddleRadius.Y - e.ballRadius.Y + e.court.Y
	}
}

func (e *Engine) loseLife() {
	e.lives--
	if e.lives < 0 {
		e.check.fail("lives below zero", "lives", e.lives)
		e.lives = 0
	}
	if e.lives == 0 {
		e.playing = false
	}
}

// newGate updates the difficulty latches for the current score and places fresh gates.
func (e *Engine) newGate(reason GateReason) {
	if e.prog.EarlierGateUnlocked(e.score) {
		e.useEarlier = true
	}
	if e.prog.BlocksUnlocked(e.score) && !e.moveBlocks {
		e.moveBlocks = true
		e.blocks[1].Pos.X = e.cfg.Blocks.LaneX
	}

	e.placement = e.gen.Generate(Request{
		Score:      e.score,
		PaddleY:    e.paddle.Y,
		UseEarlier: e.useEarlier,
	})

	ev := GateEvent{
		Reason:     reason,
		Score:      e.score,
		Lives:      e.lives,
		UseEarlier: e.useEarlier,
		MoveBlocks: e.moveBlocks,
		Placement:  e.placement,
	}
	for _, fn := range e.observers {
		fn(ev)
	}
}

// Score returns the number of successful runs.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// LevelIndex returns the cycling level index used for background selection.
func (e *Engine) LevelIndex() int { return e.prog.LevelIndex(e.score) }

// IsPlaying reports whether the session is still live.
func (e *Engine) IsPlaying() bool { return e.playing }

// Ball returns the ball's position and velocity direction.
func (e *Engine) Ball() (pos, vel core.Vec2) { return e.ball, e.ballVel }

// Paddle returns the paddle's center.
func (e *Engine) Paddle() core.Vec2 { return e.paddle }

// Blocks returns both obstacles.
func (e *Engine) Blocks() [2]Block { return e.blocks }

// Placement returns the current gates.
func (e *Engine) Placement() Placement { return e.placement }

// UseEarlier reports whether the earlier gate is in play.
func (e *Engine) UseEarlier() bool { return e.useEarlier }

// MoveBlocks reports whether the obstacles oscillate.
func (e *Engine) MoveBlocks() bool { return e.moveBlocks }

// Trail returns the ball trail.
func (e *Engine) Trail() *Trail { return &e.trail }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.GatesConfig { return e.cfg }

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
