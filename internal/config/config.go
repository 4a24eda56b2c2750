// Package config provides YAML-based game configuration loading and
// difficulty progression for the gate runner.
package config

// GatesConfig contains all tunable parameters of a gate runner session.
// Positions and extents are in court units; gate heights are normalized
// to the court height, where 0 is the bottom wall and 1 the top wall.
type GatesConfig struct {
	Court       CourtConfig       `yaml:"court"`
	Ball        BallConfig        `yaml:"ball"`
	Paddle      PaddleConfig      `yaml:"paddle"`
	Blocks      BlocksConfig      `yaml:"blocks"`
	Gates       GateConfig        `yaml:"gates"`
	Progression ProgressionConfig `yaml:"progression"`
	Gameplay    GameplayConfig    `yaml:"gameplay"`
}

// Point is a 2D coordinate in YAML form.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CourtConfig defines the origin-centered court rectangle.
type CourtConfig struct {
	RadiusX float64 `yaml:"radius_x"`
	RadiusY float64 `yaml:"radius_y"`
}

// BallConfig defines the ball and its trail.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	SpawnX      float64 `yaml:"spawn_x"`      // x of the respawn point after a score or miss
	TrailLength float64 `yaml:"trail_length"` // seconds a trail sample stays visible
}

// PaddleConfig defines the player paddle.
type PaddleConfig struct {
	RadiusX  float64 `yaml:"radius_x"`
	RadiusY  float64 `yaml:"radius_y"`
	Inset    float64 `yaml:"inset"`     // distance from the left wall to the paddle center
	KeySpeed float64 `yaml:"key_speed"` // court units per second when steering with keys
}

// BlocksConfig defines the two obstacle blocks.
type BlocksConfig struct {
	RadiusX float64 `yaml:"radius_x"`
	RadiusY float64 `yaml:"radius_y"`
	Upper   Point   `yaml:"upper"`
	Lower   Point   `yaml:"lower"`
	LaneX   float64 `yaml:"lane_x"` // x the lower block snaps to once blocks start moving
	Speed   float64 `yaml:"speed"`  // court units per second
}

// GateConfig defines gate placement bounds.
type GateConfig struct {
	X             float64 `yaml:"x"`
	HalfWidth     float64 `yaml:"half_width"`
	MinGap        float64 `yaml:"min_gap"`
	MaxGap        float64 `yaml:"max_gap"`
	MinBottom     float64 `yaml:"min_bottom"`
	MaxTop        float64 `yaml:"max_top"`
	EarlierOffset float64 `yaml:"earlier_offset"` // spacing to the earlier gate, as a fraction of court width
	Slope         float64 `yaml:"slope"`          // vertical drift per unit of spacing between the gates
	MinDivisor    float64 `yaml:"min_divisor"`
	MaxDivisor    float64 `yaml:"max_divisor"`
	MaxAttempts   int     `yaml:"max_attempts"`
}

// ProgressionConfig defines how score maps to levels and speed.
type ProgressionConfig struct {
	PointsPerLevel    int         `yaml:"points_per_level"`
	EarlierGateLevel  int         `yaml:"earlier_gate_level"`
	MovingBlocksLevel int         `yaml:"moving_blocks_level"`
	Speed             SpeedConfig `yaml:"speed"`
}

// SpeedConfig defines the ball speed ramp.
type SpeedConfig struct {
	Base       float64 `yaml:"base"`
	Growth     float64 `yaml:"growth"`
	RampLevels int     `yaml:"ramp_levels"` // levels per growth step
	Max        float64 `yaml:"max"`
}

// GameplayConfig defines lives and bounce shaping.
type GameplayConfig struct {
	Lives       int     `yaml:"lives"`
	BounceBlend float64 `yaml:"bounce_blend"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and unknown presets leave the config untouched.
func ApplyPreset(cfg *GatesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Progression.PointsPerLevel = 4
		cfg.Gates.MaxGap += 0.04
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Progression.PointsPerLevel = 2
		cfg.Gates.MinGap = max(cfg.Gates.MinGap-0.02, 0.06)
	}
}
