package config

import "math"

// levelCycle is the number of levels before gap size and background repeat.
const levelCycle = 10

// Progression derives level, gap and speed parameters from the score.
type Progression struct {
	cfg  ProgressionConfig
	gate GateConfig
}

// NewProgression creates a progression for the given configuration.
func NewProgression(cfg GatesConfig) *Progression {
	return &Progression{
		cfg:  cfg.Progression,
		gate: cfg.Gates,
	}
}

func (p *Progression) pointsPerLevel() int {
	if p.cfg.PointsPerLevel <= 0 {
		return 1 // Prevent division by zero
	}
	return p.cfg.PointsPerLevel
}

// Levels returns how many full levels the score covers (unbounded).
func (p *Progression) Levels(score int) int {
	return score / p.pointsPerLevel()
}

// LevelIndex returns the cycling level index in [0, 10), used for cosmetic lookups.
func (p *Progression) LevelIndex(score int) int {
	return p.Levels(score) % levelCycle
}

// Level returns the in-game level in [1, 10].
func (p *Progression) Level(score int) int {
	return p.LevelIndex(score) + 1
}

// GapSize returns the normalized gate gap for the score.
// The gap shrinks by a tenth of the gap range per level and never drops below MinGap.
func (p *Progression) GapSize(score int) float64 {
	step := (p.gate.MaxGap - p.gate.MinGap) / levelCycle
	gap := p.gate.MaxGap - float64(p.Level(score))*step
	if gap <= p.gate.MinGap {
		gap = p.gate.MinGap
	}
	return gap
}

// SpeedSteps returns the exponent of the speed ramp for the score.
// The ramp climbs through the first decade of levels, restarts inside
// decades one and two, then climbs without resetting from decade three on.
func (p *Progression) SpeedSteps(score int) int {
	ppl := p.pointsPerLevel()
	ramp := p.cfg.Speed.RampLevels
	if ramp <= 0 {
		ramp = 1
	}
	stepPoints := ramp * ppl
	decadePoints := levelCycle * ppl

	decade := score / ppl / levelCycle
	switch {
	case decade == 1 || decade == 2:
		return (score % decadePoints) / stepPoints
	case decade >= 3:
		return (score - 3*decadePoints) / stepPoints
	default:
		return score / stepPoints
	}
}

// SpeedMultiplier returns the ball speed multiplier for the score.
func (p *Progression) SpeedMultiplier(score int) float64 {
	m := p.cfg.Speed.Base * math.Pow(p.cfg.Speed.Growth, float64(p.SpeedSteps(score)))
	return math.Min(m, p.cfg.Speed.Max)
}

// EarlierGateUnlocked reports whether the score has reached the earlier gate threshold.
func (p *Progression) EarlierGateUnlocked(score int) bool {
	return p.Levels(score) >= p.cfg.EarlierGateLevel
}

// BlocksUnlocked reports whether the score has reached the moving blocks threshold.
func (p *Progression) BlocksUnlocked(score int) bool {
	return p.Levels(score) >= p.cfg.MovingBlocksLevel
}
