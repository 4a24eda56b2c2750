package config

import "fmt"

// ValidationError contains details about a configuration that cannot be played.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that the configuration describes a playable court.
// It returns the first violated constraint.
func (c GatesConfig) Validate() error {
	if err := c.validateBodies(); err != nil {
		return err
	}
	if err := c.validateGates(); err != nil {
		return err
	}
	return c.validateProgression()
}

func (c GatesConfig) validateBodies() error {
	if c.Court.RadiusX <= 0 || c.Court.RadiusY <= 0 {
		return invalid("COURT_SIZE", "court radius must be positive, got (%g, %g)", c.Court.RadiusX, c.Court.RadiusY)
	}
	if c.Ball.Radius <= 0 || c.Ball.Radius >= c.Court.RadiusY {
		return invalid("BALL_SIZE", "ball radius %g must be in (0, %g)", c.Ball.Radius, c.Court.RadiusY)
	}
	if c.Ball.TrailLength <= 0 {
		return invalid("TRAIL_LENGTH", "trail length must be positive, got %g", c.Ball.TrailLength)
	}
	if c.Paddle.RadiusX <= 0 || c.Paddle.RadiusY <= 0 || c.Paddle.RadiusY >= c.Court.RadiusY {
		return invalid("PADDLE_SIZE", "paddle radius (%g, %g) does not fit the court", c.Paddle.RadiusX, c.Paddle.RadiusY)
	}
	if c.Paddle.Inset <= c.Paddle.RadiusX || c.Paddle.Inset >= c.Court.RadiusX {
		return invalid("PADDLE_INSET", "paddle inset %g must clear the wall", c.Paddle.Inset)
	}
	if c.Blocks.RadiusX <= 0 || c.Blocks.RadiusY <= 0 || c.Blocks.Speed < 0 {
		return invalid("BLOCK_SIZE", "block radius must be positive and speed non-negative")
	}
	if c.Gameplay.Lives < 1 {
		return invalid("LIVES", "lives must be at least 1, got %d", c.Gameplay.Lives)
	}
	if c.Gameplay.BounceBlend < 0 || c.Gameplay.BounceBlend > 1 {
		return invalid("BOUNCE_BLEND", "bounce blend %g must be in [0, 1]", c.Gameplay.BounceBlend)
	}
	return nil
}

func (c GatesConfig) validateGates() error {
	g := c.Gates
	if g.MinBottom < 0 || g.MaxTop > 1 || g.MinBottom >= g.MaxTop {
		return invalid("GATE_BOUNDS", "need 0 <= min_bottom < max_top <= 1, got %g and %g", g.MinBottom, g.MaxTop)
	}
	if g.MinGap <= 0 || g.MinGap > g.MaxGap {
		return invalid("GAP_RANGE", "need 0 < min_gap <= max_gap, got %g and %g", g.MinGap, g.MaxGap)
	}
	if g.MaxGap+g.MinBottom >= g.MaxTop {
		return invalid("GAP_RANGE", "max_gap %g leaves no room between min_bottom and max_top", g.MaxGap)
	}
	if g.HalfWidth <= 0 || g.X+g.HalfWidth >= c.Court.RadiusX {
		return invalid("GATE_X", "gate at x=%g does not fit inside the court", g.X)
	}
	if g.MinDivisor < 1 || g.MinDivisor >= g.MaxDivisor {
		return invalid("DIVISOR_RANGE", "need 1 <= min_divisor < max_divisor, got %g and %g", g.MinDivisor, g.MaxDivisor)
	}
	if g.MaxAttempts < 1 {
		return invalid("MAX_ATTEMPTS", "max_attempts must be at least 1, got %d", g.MaxAttempts)
	}

	earlierX := g.X - g.EarlierOffset*2*c.Court.RadiusX - 2*g.HalfWidth
	if earlierX-g.HalfWidth <= -c.Court.RadiusX+c.Paddle.Inset+c.Paddle.RadiusX {
		return invalid("EARLIER_GATE_X", "earlier gate at x=%g overlaps the paddle lane", earlierX)
	}

	// The widest gap is the level 1 gap. If the earlier gate fits above or
	// below the forward gate for that gap, it fits for every narrower one.
	widest := g.MaxGap - (g.MaxGap-g.MinGap)/10
	drift := g.Slope*g.EarlierOffset + widest/g.MinDivisor
	if g.MaxTop-g.MinBottom-widest < 2*drift {
		return invalid("EARLIER_GATE_RANGE",
			"earlier gate drift %.3f cannot always fit: gap %.3f leaves %.3f of travel",
			drift, widest, g.MaxTop-g.MinBottom-widest)
	}
	return nil
}

func (c GatesConfig) validateProgression() error {
	p := c.Progression
	if p.PointsPerLevel < 1 {
		return invalid("POINTS_PER_LEVEL", "points_per_level must be at least 1, got %d", p.PointsPerLevel)
	}
	if p.EarlierGateLevel < 0 || p.MovingBlocksLevel < 0 {
		return invalid("UNLOCK_LEVEL", "unlock levels must be non-negative")
	}
	if p.Speed.Base <= 0 || p.Speed.Growth < 1 || p.Speed.Max < p.Speed.Base {
		return invalid("SPEED", "need base > 0, growth >= 1 and max >= base")
	}
	if p.Speed.RampLevels < 1 {
		return invalid("SPEED", "ramp_levels must be at least 1, got %d", p.Speed.RampLevels)
	}
	return nil
}
