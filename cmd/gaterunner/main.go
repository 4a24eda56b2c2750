// gaterunner is a terminal gate runner: a single-paddle Pong where the ball
// has to be threaded through procedurally placed gates.
//
// Usage:
//
//	gaterunner play              - Play in this terminal
//	gaterunner serve             - Start SSH server for remote play
//	gaterunner journal [run-id]  - Inspect the gate journal
//	gaterunner config            - Print the effective game config as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gate placement
//	--db <path>           - Set journal path (default: ~/.gaterunner/journal.db, "" disables)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--debug-log <path>    - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebugLog   string
	flagStrict     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gaterunner",
	Short: "Gate Runner - thread the ball through the gates",
	Long: `Gate Runner is a single-player Pong variant for the terminal.
Keep the ball alive with your paddle and send it through the gaps
in the gates on the right. Every level narrows the gaps and speeds
the ball up; later levels add a second gate and moving blocks.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  journal  - Inspect recorded runs and gate placements
  config   - Print the effective game config

Examples:
  gaterunner play
  gaterunner play --difficulty hard --seed 42
  gaterunner serve --ssh :2222
  gaterunner journal --stats
  gaterunner config --difficulty easy > gates.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gaterunner/journal.db", "Path to gate journal database (empty disables)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDebugLog, "debug-log", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Panic on broken simulation invariants")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
}
