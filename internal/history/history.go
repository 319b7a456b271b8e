// Package history persists an audit ledger of cleanup runs: one row per run
// with its rename mapping and change counts, queryable after the fact.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kadeem-campbell/siteclean/internal/rename"
)

// Run is one recorded cleanup run.
type Run struct {
	ID        int64
	RunID     string
	BuildDir  string
	DryRun    bool
	Renames   rename.Mapping
	Rewritten int
	StartedAt time.Time
	Duration  time.Duration
}

// Store appends and queries cleanup runs in a SQLite database.
// Use ":memory:" for ephemeral storage, or a file path to keep the ledger.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the run ledger at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open run ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize run ledger schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		build_dir TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		renames TEXT NOT NULL,
		rewritten INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one completed run.
func (s *Store) Append(ctx context.Context, run Run) error {
	renames, err := json.Marshal(run.Renames)
	if err != nil {
		return fmt.Errorf("marshal rename mapping: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (run_id, build_dir, dry_run, renames, rewritten, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.RunID, run.BuildDir, boolToInt(run.DryRun), string(renames), run.Rewritten,
		run.StartedAt.Unix(), run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, run_id, build_dir, dry_run, renames, rewritten, started_at, duration_ms FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			dryRun     int
			renames    string
			startedAt  int64
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.BuildDir, &dryRun, &renames, &r.Rewritten, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if err := json.Unmarshal([]byte(renames), &r.Renames); err != nil {
			return nil, fmt.Errorf("unmarshal rename mapping: %w", err)
		}
		r.DryRun = dryRun != 0
		r.StartedAt = time.Unix(startedAt, 0)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
