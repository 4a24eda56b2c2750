package gates

import (
	"github.com/vovakirdan/gate-runner/internal/core"
)

// bounceOff resolves an overlap between the ball and a solid body.
// The shallower axis of the overlap decides which face was hit.
func (e *Engine) bounceOff(body core.Box, kind bodyKind) {
	lo, hi, ok := body.Overlap(core.NewBox(e.ball, e.ballRadius))
	if !ok {
		return
	}

	reach := body.Radius.Add(e.ballRadius)

	if hi.X-lo.X > hi.Y-lo.Y {
		// Top or bottom face
		if e.ball.Y > body.Center.Y {
			e.ball.Y = body.Center.Y + reach.Y
			if e.ballVel.Y < 0 {
				e.ballVel.Y = -e.ballVel.Y
			}
		} else {
			e.ball.Y = body.Center.Y - reach.Y
			if e.ballVel.Y > 0 {
				e.ballVel.Y = -e.ballVel.Y
			}
		}
		return
	}

	// Left or right face
	if e.ball.X > body.Center.X {
		e.ball.X = body.Center.X + reach.X
		if e.ballVel.X < 0 {
			e.ballVel.X = -e.ballVel.X
		}
	} else {
		e.ball.X = body.Center.X - reach.X
		if e.ballVel.X > 0 {
			e.ballVel.X = -e.ballVel.X
		}
	}

	// Hit offset in [-1, 1]: where along the face the ball struck.
	offset := (e.ball.Y - body.Center.Y) / reach.Y
	if kind == kindBlock {
		offset = -offset
	}
	e.ballVel.Y = core.Mix(e.ballVel.Y, offset, e.cfg.Gameplay.BounceBlend)
}

// gateHit returns the first gate piece the ball overlaps.
// Forward pieces are checked before earlier ones; the earlier gate only counts when active.
func (e *Engine) gateHit() (core.Box, bool) {
	ball := core.NewBox(e.ball, e.ballRadius)

	for _, piece := range e.placement.Forward.Pieces() {
		if piece.Intersects(ball) {
			return piece, true
		}
	}
	if !e.useEarlier {
		return core.Box{}, false
	}
	for _, piece := range e.placement.Earlier.Pieces() {
		if piece.Intersects(ball) {
			return piece, true
		}
	}
	return core.Box{}, false
}
