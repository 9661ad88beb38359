// Package history persists a log of reinvite runs to SQLite so
// operators can review what was done to which repository, and when.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run records the outcome of a single workflow invocation.
type Run struct {
	ID           int64
	Repository   string
	Username     string
	StatusBefore string
	Removed      bool
	Invited      bool
	Permission   string
	Outcome      string
	CreatedAt    time.Time
}

// Outcome values stored in the runs table.
const (
	OutcomeCompleted   = "completed"
	OutcomeCancelled   = "cancelled"
	OutcomeFailed      = "failed"
	OutcomeInterrupted = "interrupted"
)

// Store persists runs to SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database location, honoring XDG_STATE_HOME.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "gh-reinvite", "history.db"), nil
}

// Open opens (or creates) the SQLite database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	// Set pragmas via DSN so every connection in the pool gets them.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			repository    TEXT NOT NULL,
			username      TEXT NOT NULL,
			status_before TEXT NOT NULL DEFAULT '',
			removed       INTEGER NOT NULL DEFAULT 0,
			invited       INTEGER NOT NULL DEFAULT 0,
			permission    TEXT NOT NULL DEFAULT '',
			outcome       TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_repository ON runs(repository);
	`)
	return err
}

// Record inserts a run.
func (s *Store) Record(run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(`
		INSERT INTO runs (repository, username, status_before, removed, invited, permission, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Repository, run.Username, run.StatusBefore,
		boolToInt(run.Removed), boolToInt(run.Invited),
		run.Permission, run.Outcome,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	run.ID, _ = res.LastInsertId()
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, repository, username, status_before, removed, invited, permission, outcome, created_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var removed, invited int
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Repository, &run.Username, &run.StatusBefore,
			&removed, &invited, &run.Permission, &run.Outcome, &createdAt); err != nil {
			return nil, err
		}
		run.Removed = removed != 0
		run.Invited = invited != 0
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
