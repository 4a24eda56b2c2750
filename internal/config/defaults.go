package config

import (
	_ "embed"
)

//go:embed defaults/gates.yaml
var defaultGatesYAML []byte

// DefaultGatesConfig returns the built-in gate runner configuration.
// It mirrors defaults/gates.yaml and is used when the embedded file cannot be parsed.
func DefaultGatesConfig() GatesConfig {
	return GatesConfig{
		Court: CourtConfig{
			RadiusX: 7.0,
			RadiusY: 5.0,
		},
		Ball: BallConfig{
			Radius:      0.2,
			SpawnX:      -1.2,
			TrailLength: 1.3,
		},
		Paddle: PaddleConfig{
			RadiusX:  0.2,
			RadiusY:  1.0,
			Inset:    0.5,
			KeySpeed: 12.0,
		},
		Blocks: BlocksConfig{
			RadiusX: 0.2,
			RadiusY: 0.8,
			Upper:   Point{X: -2.5, Y: 2.5},
			Lower:   Point{X: 0.5, Y: -2.5},
			LaneX:   3.75,
			Speed:   2.0,
		},
		Gates: GateConfig{
			X:             5.0,
			HalfWidth:     0.2,
			MinGap:        0.10,
			MaxGap:        0.30,
			MinBottom:     0.05,
			MaxTop:        0.95,
			EarlierOffset: 0.15,
			Slope:         0.5,
			MinDivisor:    1.5,
			MaxDivisor:    3.0,
			MaxAttempts:   10,
		},
		Progression: ProgressionConfig{
			PointsPerLevel:    3,
			EarlierGateLevel:  10,
			MovingBlocksLevel: 20,
			Speed: SpeedConfig{
				Base:       4.0,
				Growth:     1.3333,
				RampLevels: 3,
				Max:        10.0,
			},
		},
		Gameplay: GameplayConfig{
			Lives:       3,
			BounceBlend: 0.75,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGatesYAML
}
