package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gate-runner/internal/platform/tui"
	"github.com/vovakirdan/gate-runner/internal/storage"
)

var (
	flagJournalLimit  int
	flagJournalStats  bool
	flagJournalDelete bool
	flagJournalBrowse bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [run-id]",
	Short: "Inspect the gate journal",
	Long: `Display recorded runs and the gates generated during them.

Without arguments, lists the most recent runs. With a run ID,
prints every gate placement of that run in order.

Examples:
  gaterunner journal
  gaterunner journal --limit 50
  gaterunner journal --stats
  gaterunner journal --browse
  gaterunner journal 3f1c0a52-8d7e-4b1e-9a53-6c1d2e0f7b44
  gaterunner journal 3f1c0a52-8d7e-4b1e-9a53-6c1d2e0f7b44 --delete`,
	Args: cobra.MaximumNArgs(1),
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 10, "Number of runs to list")
	journalCmd.Flags().BoolVar(&flagJournalStats, "stats", false, "Show aggregate generator statistics")
	journalCmd.Flags().BoolVar(&flagJournalDelete, "delete", false, "Delete the given run and its gates")
	journalCmd.Flags().BoolVar(&flagJournalBrowse, "browse", false, "Browse runs interactively")
}

func runJournal(_ *cobra.Command, args []string) {
	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: journal is disabled (--db is empty)")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening gate journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagJournalBrowse:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		err = tui.RunJournalBrowser(store, width, height)
	case flagJournalStats:
		err = printStats(store)
	case len(args) == 1 && flagJournalDelete:
		err = store.DeleteRun(args[0])
		if err == nil {
			fmt.Printf("Deleted run %s\n", args[0])
		}
	case len(args) == 1:
		err = printRun(store, args[0])
	default:
		err = printRecentRuns(store, flagJournalLimit)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRecentRuns(store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gaterunner play' to record the first run!")
		return nil
	}

	fmt.Printf("  %-36s  %-8s  %-20s  %-5s  %s\n", "Run", "Level", "Seed", "Gates", "Started")
	fmt.Printf("  %-36s  %-8s  %-20s  %-5s  %s\n", "---", "-----", "----", "-----", "-------")

	for _, run := range runs {
		status := ""
		if run.EndedAt.IsZero() {
			status = " (open)"
		}
		fmt.Printf("  %-36s  %-8s  %-20d  %-5d  %s%s\n",
			run.ID, run.Difficulty, run.Seed, run.GateCount,
			run.StartedAt.Format("2006-01-02 15:04"), status)
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", runID)
	}

	records, err := store.Gates(runID)
	if err != nil {
		return fmt.Errorf("retrieving gates: %w", err)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  Player: %s  Difficulty: %s  Seed: %d\n", run.Player, run.Difficulty, run.Seed)
	fmt.Printf("  Started: %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if !run.EndedAt.IsZero() {
		fmt.Printf("  Ended:   %s\n", run.EndedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No gates recorded for this run.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-5s  %-6s  %-7s  %-7s  %s\n",
		"Seq", "Reason", "Score", "Lives", "Level", "Gap", "Forward", "Earlier", "Tries")
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-5s  %-6s  %-7s  %-7s  %s\n",
		"---", "------", "-----", "-----", "-----", "---", "-------", "-------", "-----")

	for _, g := range records {
		earlier := "-"
		if g.UseEarlier {
			earlier = fmt.Sprintf("%.3f", g.EarlierTop)
		}
		fmt.Printf("  %-4d  %-6s  %-5d  %-5d  %-5d  %-6.3f  %-7.3f  %-7s  %d\n",
			g.Seq, g.Reason, g.Score, g.Lives, g.Level, g.Gap, g.ForwardTop, earlier, g.Attempts)
	}
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	fmt.Println("Generator Statistics")
	fmt.Println()
	fmt.Printf("  Runs:            %d\n", stats.Runs)
	fmt.Printf("  Gates:           %d\n", stats.Gates)
	fmt.Printf("  Avg attempts:    %.2f\n", stats.AvgAttempts)
	fmt.Printf("  Max attempts:    %d\n", stats.MaxAttempts)
	fmt.Printf("  Avg gap:         %.3f\n", stats.AvgGap)
	fmt.Printf("  Earlier gate:    %.1f%%\n", stats.EarlierShare*100)
	return nil
}
