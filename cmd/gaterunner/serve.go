package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gate-runner/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gate runner SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with its own time-based seed.
Every run is recorded in the server's gate journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gaterunner/host_key

Examples:
  gaterunner serve                           # Listen on :23234 with auto-generated key
  gaterunner serve --ssh :2222               # Listen on port 2222
  gaterunner serve --host-key ./my_host_key  # Use specific host key
  gaterunner serve --difficulty hard         # Every session plays hard
  gaterunner serve --debug-log ./ssh.log     # Debug logs to a file instead of stderr

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	gatesCfg, preset, err := loadGates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	// Server logs go to stderr unless --debug-log redirects them.
	var closeLog func()
	if flagDebugLog != "" {
		logger, closeFn, logErr := openDebugLog("gaterunner-ssh")
		if logErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", logErr)
			os.Exit(1)
		}
		closeLog = closeFn
		defer closeLog()
		cfg.Logger = logger
	}

	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Gates = gatesCfg
	cfg.Difficulty = string(preset)
	cfg.TickRate = flagFPS
	cfg.Strict = flagStrict

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}

	fmt.Printf("Starting gate runner SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}
