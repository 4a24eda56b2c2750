package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gate-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config as YAML",
	Long: `Print the configuration a session would play with, after the
config file (--config or ~/.gaterunner/configs/gates.yaml) and the
difficulty preset have been applied.

The output is a valid config file and can be edited and passed back
with --config.

Examples:
  gaterunner config
  gaterunner config --difficulty hard
  gaterunner config > ~/.gaterunner/configs/gates.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, _, err := loadGates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
