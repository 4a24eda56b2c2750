package gates

import (
	"github.com/vovakirdan/gate-runner/internal/core"
)

// Role tags what a drawable rectangle represents.
type Role int

const (
	RoleWall Role = iota
	RolePaddle
	RoleBlock
	RoleGateForwardTop
	RoleGateForwardBottom
	RoleGateEarlierTop
	RoleGateEarlierBottom
	RoleBall
	RoleTrailSample
	RoleLifeIndicator
)

var roleNames = [...]string{
	RoleWall:              "wall",
	RolePaddle:            "paddle",
	RoleBlock:             "block",
	RoleGateForwardTop:    "gate-forward-top",
	RoleGateForwardBottom: "gate-forward-bottom",
	RoleGateEarlierTop:    "gate-earlier-top",
	RoleGateEarlierBottom: "gate-earlier-bottom",
	RoleBall:              "ball",
	RoleTrailSample:       "trail-sample",
	RoleLifeIndicator:     "life-indicator",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// IsGate reports whether the role is one of the four gate pieces.
func (r Role) IsGate() bool {
	return r >= RoleGateForwardTop && r <= RoleGateEarlierBottom
}

// Drawable is a rectangle the host should draw. Age is only set for trail samples.
type Drawable struct {
	Role Role
	Box  core.Box
	Age  float64
}

// Sizes of decorations that have no physical presence.
const (
	WallThickness = 0.05
	LifeRadius    = 0.1
)

// Extents returns the corners of the area the drawables cover:
// the court, its walls and the row of life indicators above it.
func (e *Engine) Extents() (lo, hi core.Vec2) {
	w := 2 * WallThickness
	lo = core.V2(-e.court.X-w, -e.court.Y-w)
	hi = core.V2(e.court.X+w, e.court.Y+w+3*LifeRadius)
	return lo, hi
}

// Drawables lists everything visible this tick, back to front.
// Earlier gate pieces are included only while the earlier gate is active.
func (e *Engine) Drawables() []Drawable {
	out := make([]Drawable, 0, 16+e.trail.Len())

	rx, ry := e.court.X, e.court.Y
	w := WallThickness
	walls := [4]core.Box{
		core.NewBox(core.V2(-rx-w, 0), core.V2(w, ry+2*w)),
		core.NewBox(core.V2(rx+w, 0), core.V2(w, ry+2*w)),
		core.NewBox(core.V2(0, -ry-w), core.V2(rx, w)),
		core.NewBox(core.V2(0, ry+w), core.V2(rx, w)),
	}
	for _, b := range walls {
		out = append(out, Drawable{Role: RoleWall, Box: b})
	}

	for _, s := range e.trail.samples {
		out = append(out, Drawable{Role: RoleTrailSample, Box: core.NewBox(s.Pos, e.ballRadius), Age: s.Age})
	}

	for _, b := range e.blocks {
		out = append(out, Drawable{Role: RoleBlock, Box: core.NewBox(b.Pos, e.blockRadius)})
	}
	out = append(out, Drawable{Role: RolePaddle, Box: core.NewBox(e.paddle, e.paddleRadius)})

	out = append(out,
		Drawable{Role: RoleGateForwardTop, Box: e.placement.Forward.Top},
		Drawable{Role: RoleGateForwardBottom, Box: e.placement.Forward.Bottom},
	)
	if e.useEarlier {
		out = append(out,
			Drawable{Role: RoleGateEarlierTop, Box: e.placement.Earlier.Top},
			Drawable{Role: RoleGateEarlierBottom, Box: e.placement.Earlier.Bottom},
		)
	}

	out = append(out, Drawable{Role: RoleBall, Box: core.NewBox(e.ball, e.ballRadius)})

	// The current life is the one in play; only spares are shown.
	for i := 1; i < e.lives; i++ {
		c := core.V2(rx-float64(2+3*i)*LifeRadius, ry+2*w+2*LifeRadius)
		out = append(out, Drawable{Role: RoleLifeIndicator, Box: core.NewBox(c, core.V2(LifeRadius, LifeRadius))})
	}

	return out
}
