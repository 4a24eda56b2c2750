package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gate-runner/internal/core"
	"github.com/vovakirdan/gate-runner/internal/platform/tui"
	"github.com/vovakirdan/gate-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a gate runner session in the current terminal.

Controls:
  W/Up, S/Down  - Move paddle
  Mouse         - Paddle follows the pointer
  P             - Pause
  R             - Restart
  Enter         - Restart after game over
  Ctrl+S        - Save a text screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - 5 lives, 4 points per level, wider gaps
  normal - 3 lives, 3 points per level
  hard   - 2 lives, 2 points per level, narrower gaps

Examples:
  gaterunner play
  gaterunner play --difficulty easy
  gaterunner play --seed 42 --debug-log ./gates.log
  gaterunner play --config ./my-gates.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	gatesCfg, preset, err := loadGates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Stderr belongs to the terminal while playing; logs go to a file if requested.
	logger, closeLog, err := openDebugLog("gaterunner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var store *storage.Store
	if flagDBPath != "" {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open gate journal: %v\n", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	runErr := tui.Run(tui.Options{
		Gates: gatesCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Difficulty: string(preset),
		Player:     "local",
		Logger:     logger,
		Strict:     flagStrict,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
