// Package storage provides the SQLite gate journal: every run and every gate
// placement generated during it, for characterizing the generator offline.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Run is one session from reset to game over (or until the host quit).
type Run struct {
	ID         string
	Seed       int64
	Difficulty string
	Player     string
	StartedAt  time.Time
	EndedAt    time.Time // zero while the run is open
	GateCount  int
}

// GateRecord is one generated placement.
type GateRecord struct {
	ID         int64
	RunID      string
	Seq        int
	Reason     string // start, score or miss
	Score      int
	Lives      int
	Level      int
	UseEarlier bool
	MoveBlocks bool
	Gap        float64
	ForwardTop float64
	EarlierTop float64
	Attempts   int
	CreatedAt  time.Time
}

// GeneratorStats aggregates the journal for a quick health check of the generator.
type GeneratorStats struct {
	Runs         int
	Gates        int
	AvgAttempts  float64
	MaxAttempts  int
	AvgGap       float64
	EarlierShare float64 // fraction of placements with the earlier gate active
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One connection: SSH sessions write concurrently and SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS gates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			reason TEXT NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			level INTEGER NOT NULL,
			use_earlier INTEGER NOT NULL DEFAULT 0,
			move_blocks INTEGER NOT NULL DEFAULT 0,
			gap REAL NOT NULL,
			forward_top REAL NOT NULL,
			earlier_top REAL NOT NULL,
			attempts INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_gates_run ON gates(run_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun opens a new run and returns it with a fresh ID.
func (s *Store) StartRun(seed int64, difficulty, player string) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Seed:       seed,
		Difficulty: difficulty,
		Player:     player,
		StartedAt:  time.Now().UTC(),
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, seed, difficulty, player, started_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Seed, run.Difficulty, run.Player, run.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot start run: %w", err)
	}
	return run, nil
}

// EndRun marks a run as finished. Ending an unknown run is an error.
func (s *Store) EndRun(runID string) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ended_at = ? WHERE id = ? AND ended_at IS NULL",
		time.Now().UTC().Format(timeLayout), runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: no open run %s", runID)
	}
	return nil
}

// RecordGate appends a placement to a run. Seq is assigned automatically.
// Returns the ID of the inserted record.
func (s *Store) RecordGate(runID string, rec GateRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO gates
		 (run_id, seq, reason, score, lives, level, use_earlier, move_blocks, gap, forward_top, earlier_top, attempts)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM gates WHERE run_id = ?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, runID,
		rec.Reason, rec.Score, rec.Lives, rec.Level,
		boolInt(rec.UseEarlier), boolInt(rec.MoveBlocks),
		rec.Gap, rec.ForwardTop, rec.EarlierTop, rec.Attempts,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record gate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Gates returns every placement of a run in generation order.
func (s *Store) Gates(runID string) ([]GateRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, seq, reason, score, lives, level, use_earlier, move_blocks,
		        gap, forward_top, earlier_top, attempts, created_at
		 FROM gates
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query gates: %w", err)
	}
	defer rows.Close()

	var records []GateRecord
	for rows.Next() {
		var r GateRecord
		var useEarlier, moveBlocks int
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Seq, &r.Reason, &r.Score, &r.Lives, &r.Level,
			&useEarlier, &moveBlocks,
			&r.Gap, &r.ForwardTop, &r.EarlierTop, &r.Attempts, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.UseEarlier = useEarlier != 0
		r.MoveBlocks = moveBlocks != 0
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

const runColumns = `r.id, r.seed, r.difficulty, r.player, r.started_at, r.ended_at,
	(SELECT COUNT(*) FROM gates g WHERE g.run_id = r.id)`

// RunByID retrieves a run. Returns nil without error if it does not exist.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs r WHERE r.id = ?", runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs r ORDER BY r.started_at DESC, r.rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates the whole journal.
func (s *Store) Stats() (*GeneratorStats, error) {
	stats := &GeneratorStats{}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.Runs); err != nil {
		return nil, fmt.Errorf("storage: cannot count runs: %w", err)
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(attempts), 0), COALESCE(MAX(attempts), 0),
		        COALESCE(AVG(gap), 0), COALESCE(AVG(use_earlier), 0)
		 FROM gates`,
	).Scan(&stats.Gates, &stats.AvgAttempts, &stats.MaxAttempts, &stats.AvgGap, &stats.EarlierShare)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get generator stats: %w", err)
	}
	return stats, nil
}

// DeleteRun removes a run and its placements.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM gates WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete gates: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startedAt, endedAt any
	if err := row.Scan(&run.ID, &run.Seed, &run.Difficulty, &run.Player, &startedAt, &endedAt, &run.GateCount); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseTime(endedAt)
	return run, nil
}

const timeLayout = "2006-01-02 15:04:05.000"

// parseTime handles both time.Time and the string forms SQLite hands back.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
