package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/config"
)

// loadGates resolves the game config from --config and --difficulty.
func loadGates() (config.GatesConfig, config.DifficultyPreset, error) {
	preset := config.DifficultyNormal
	if flagDifficulty != "" {
		preset = config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.GatesConfig{}, "", fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
	}

	cfg, err := config.LoadGates(flagConfig)
	if err != nil {
		return config.GatesConfig{}, "", fmt.Errorf("cannot load config: %w", err)
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.GatesConfig{}, "", fmt.Errorf("difficulty %s produces an invalid config: %w", preset, err)
	}
	return cfg, preset, nil
}

// openDebugLog returns a logger writing to --debug-log, or one that discards.
// The caller must run the returned close function.
func openDebugLog(prefix string) (*log.Logger, func(), error) {
	if flagDebugLog == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path, err := config.ExpandHome(flagDebugLog)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
