// Package history persists a local record of assistant invocations and
// check runs in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database connection.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens or creates the database at the given path, creating parent
// directories if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	return &Store{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assistant_calls (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source      TEXT NOT NULL,
    session_id  TEXT,
    is_error    BOOLEAN NOT NULL DEFAULT FALSE,
    duration_ms INTEGER,
    timestamp   TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_assistant_source ON assistant_calls(source, timestamp DESC);

CREATE TABLE IF NOT EXISTS check_runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    step_name   TEXT NOT NULL,
    command     TEXT NOT NULL,
    passed      BOOLEAN NOT NULL,
    exit_code   INTEGER,
    retry_round INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER,
    timestamp   TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_check_step ON check_runs(step_name, timestamp DESC);
`

// Migrate applies the database schema. It is idempotent.
func (s *Store) Migrate() error {
	var count int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = 1").Scan(&count)
	if err == nil && count > 0 {
		return nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(schemaV1); err != nil {
		return fmt.Errorf("apply schema v1: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// LogAssistantCall records one assistant invocation. Source identifies what
// produced the prompt (a prompt file path, or "fix" for synthesized prompts).
func (s *Store) LogAssistantCall(source, sessionID string, isError bool, durationMs int) error {
	_, err := s.conn.Exec(
		"INSERT INTO assistant_calls (source, session_id, is_error, duration_ms) VALUES (?, ?, ?, ?)",
		source, sessionID, isError, durationMs,
	)
	if err != nil {
		return fmt.Errorf("log assistant call: %w", err)
	}
	return nil
}

// LogCheckRun records one check step execution.
func (s *Store) LogCheckRun(stepName, command string, passed bool, exitCode, retryRound, durationMs int) error {
	_, err := s.conn.Exec(
		"INSERT INTO check_runs (step_name, command, passed, exit_code, retry_round, duration_ms) VALUES (?, ?, ?, ?, ?, ?)",
		stepName, command, passed, exitCode, retryRound, durationMs,
	)
	if err != nil {
		return fmt.Errorf("log check run: %w", err)
	}
	return nil
}
