package gates

import (
	"math"
)

// Snapshot is the complete observable state of a session.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Score      int
	Lives      int
	LevelIndex int
	Playing    bool
	Paused     bool
	UseEarlier bool
	MoveBlocks bool

	BallX, BallY     float64
	BallVX, BallVY   float64
	PaddleY          float64
	BlockY           [2]float64
	BlockX           [2]float64
	ForwardTop       float64
	EarlierTop       float64
	Gap              float64
	PlacementAttempt int
	TrailLen         int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	if e == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Tick:       uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		Score:      e.score,
		Lives:      e.lives,
		LevelIndex: e.LevelIndex(),
		Playing:    e.playing,
		Paused:     g.paused,
		UseEarlier: e.useEarlier,
		MoveBlocks: e.moveBlocks,

		BallX:            e.ball.X,
		BallY:            e.ball.Y,
		BallVX:           e.ballVel.X,
		BallVY:           e.ballVel.Y,
		PaddleY:          e.paddle.Y,
		ForwardTop:       e.placement.Forward.GapTop,
		EarlierTop:       e.placement.Earlier.GapTop,
		Gap:              e.placement.Forward.Gap,
		PlacementAttempt: e.placement.Attempts,
		TrailLen:         e.trail.Len(),
	}
	for i, b := range e.blocks {
		snap.BlockX[i] = b.Pos.X
		snap.BlockY[i] = b.Pos.Y
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{snap.Score, snap.Lives, snap.LevelIndex, snap.PlacementAttempt, snap.TrailLen} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, b := range []bool{snap.Playing, snap.Paused, snap.UseEarlier, snap.MoveBlocks} {
		h *= 31
		if b {
			h++
		}
	}
	floats := []float64{
		snap.BallX, snap.BallY, snap.BallVX, snap.BallVY, snap.PaddleY,
		snap.BlockX[0], snap.BlockY[0], snap.BlockX[1], snap.BlockY[1],
		snap.ForwardTop, snap.EarlierTop, snap.Gap,
	}
	for _, f := range floats {
		h = h*31 + math.Float64bits(f)
	}
	return h
}
