package config

import (
	"math"
	"testing"
)

func TestProgressionLevels(t *testing.T) {
	p := NewProgression(DefaultGatesConfig()) // 3 points per level

	tests := []struct {
		score      int
		levelIndex int
		level      int
	}{
		{0, 0, 1},
		{2, 0, 1},
		{3, 1, 2},
		{29, 9, 10},
		{30, 0, 1}, // cycles after ten levels
		{95, 1, 2},
	}

	for _, tc := range tests {
		if got := p.LevelIndex(tc.score); got != tc.levelIndex {
			t.Errorf("LevelIndex(%d) = %d, expected %d", tc.score, got, tc.levelIndex)
		}
		if got := p.Level(tc.score); got != tc.level {
			t.Errorf("Level(%d) = %d, expected %d", tc.score, got, tc.level)
		}
	}
}

func TestProgressionGapSize(t *testing.T) {
	cfg := DefaultGatesConfig()
	p := NewProgression(cfg)

	if got := p.GapSize(0); math.Abs(got-0.28) > 1e-9 {
		t.Errorf("GapSize(0) = %f, expected 0.28", got)
	}
	if got := p.GapSize(27); math.Abs(got-0.10) > 1e-9 {
		t.Errorf("GapSize(27) = %f, expected min gap 0.10", got)
	}

	for score := 0; score < 200; score++ {
		gap := p.GapSize(score)
		if gap < cfg.Gates.MinGap-1e-9 || gap > cfg.Gates.MaxGap {
			t.Fatalf("GapSize(%d) = %f outside [%f, %f]", score, gap, cfg.Gates.MinGap, cfg.Gates.MaxGap)
		}
	}
}

func TestProgressionSpeedSteps(t *testing.T) {
	p := NewProgression(DefaultGatesConfig())

	tests := []struct {
		score    int
		expected int
	}{
		{0, 0},
		{8, 0},
		{9, 1},
		{27, 3},
		{29, 3},
		{30, 0}, // decade 1 restarts the ramp
		{39, 1},
		{60, 0}, // decade 2 restarts again
		{89, 3},
		{90, 0}, // decade 3 climbs from zero without resetting
		{99, 1},
		{125, 3},
		{180, 10},
	}

	for _, tc := range tests {
		if got := p.SpeedSteps(tc.score); got != tc.expected {
			t.Errorf("SpeedSteps(%d) = %d, expected %d", tc.score, got, tc.expected)
		}
	}
}

func TestProgressionSpeedMultiplier(t *testing.T) {
	p := NewProgression(DefaultGatesConfig())

	if got := p.SpeedMultiplier(0); got != 4.0 {
		t.Errorf("SpeedMultiplier(0) = %f, expected 4.0", got)
	}
	if got := p.SpeedMultiplier(9); math.Abs(got-4.0*1.3333) > 1e-9 {
		t.Errorf("SpeedMultiplier(9) = %f, expected %f", got, 4.0*1.3333)
	}
	if got := p.SpeedMultiplier(180); got != 10.0 {
		t.Errorf("SpeedMultiplier(180) = %f, expected cap 10.0", got)
	}

	for score := 0; score < 500; score++ {
		if m := p.SpeedMultiplier(score); m > 10.0 || m < 4.0 {
			t.Fatalf("SpeedMultiplier(%d) = %f outside [4, 10]", score, m)
		}
	}
}

func TestProgressionUnlocks(t *testing.T) {
	p := NewProgression(DefaultGatesConfig())

	if p.EarlierGateUnlocked(29) {
		t.Error("earlier gate should stay locked below level 10")
	}
	if !p.EarlierGateUnlocked(30) {
		t.Error("earlier gate should unlock at level 10")
	}
	if p.BlocksUnlocked(59) {
		t.Error("blocks should stay still below level 20")
	}
	if !p.BlocksUnlocked(60) {
		t.Error("blocks should move from level 20")
	}
}

func TestProgressionZeroPointsPerLevel(t *testing.T) {
	cfg := DefaultGatesConfig()
	cfg.Progression.PointsPerLevel = 0
	p := NewProgression(cfg)

	// Must not divide by zero
	if got := p.Level(5); got != 6 {
		t.Errorf("Level(5) = %d, expected 6", got)
	}
}
