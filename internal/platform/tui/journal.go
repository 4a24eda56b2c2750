package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/games/gates"
	"github.com/vovakirdan/gate-runner/internal/storage"
)

// Journal records each run's gate placements to the store.
// A nil store turns every method into a no-op. Writes are best-effort:
// failures are logged and the game continues.
type Journal struct {
	store      *storage.Store
	logger     *log.Logger
	difficulty string
	player     string
	runID      string
}

// NewJournal creates a journal writing to store.
func NewJournal(store *storage.Store, difficulty, player string, logger *log.Logger) *Journal {
	return &Journal{
		store:      store,
		logger:     logger,
		difficulty: difficulty,
		player:     player,
	}
}

// Begin closes any open run and starts a new one.
func (j *Journal) Begin(seed int64) {
	if j.store == nil {
		return
	}
	j.End()

	run, err := j.store.StartRun(seed, j.difficulty, j.player)
	if err != nil {
		j.logger.Warn("journal: cannot start run", "error", err)
		return
	}
	j.runID = run.ID
	j.logger.Debug("journal: run started", "run", run.ID, "seed", seed)
}

// Record stores one placement in the open run.
func (j *Journal) Record(ev gates.GateEvent) {
	if j.store == nil || j.runID == "" {
		return
	}
	_, err := j.store.RecordGate(j.runID, storage.GateRecord{
		Reason:     string(ev.Reason),
		Score:      ev.Score,
		Lives:      ev.Lives,
		Level:      ev.Placement.Level,
		UseEarlier: ev.UseEarlier,
		MoveBlocks: ev.MoveBlocks,
		Gap:        ev.Placement.Forward.Gap,
		ForwardTop: ev.Placement.Forward.GapTop,
		EarlierTop: ev.Placement.Earlier.GapTop,
		Attempts:   ev.Placement.Attempts,
	})
	if err != nil {
		j.logger.Warn("journal: cannot record gate", "run", j.runID, "error", err)
	}
}

// End closes the open run, if any.
func (j *Journal) End() {
	if j.store == nil || j.runID == "" {
		return
	}
	if err := j.store.EndRun(j.runID); err != nil {
		j.logger.Warn("journal: cannot end run", "run", j.runID, "error", err)
	}
	j.runID = ""
}

// RunID returns the open run's ID, or empty.
func (j *Journal) RunID() string {
	return j.runID
}
