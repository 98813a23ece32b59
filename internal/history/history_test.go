package history

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrate(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tables := []string{"schema_version", "assistant_calls", "check_runs"}
	for _, table := range tables {
		var name string
		err := s.conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	// Migrate again should be idempotent.
	if err := s.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vibe", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestLogAssistantCall(t *testing.T) {
	s := testStore(t)

	if err := s.LogAssistantCall("prompt.md", "session-1", false, 1200); err != nil {
		t.Fatalf("log assistant call: %v", err)
	}
	if err := s.LogAssistantCall("fix", "", true, 300); err != nil {
		t.Fatalf("log fix call: %v", err)
	}

	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM assistant_calls").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	var sessionID string
	if err := s.conn.QueryRow("SELECT session_id FROM assistant_calls WHERE source = 'prompt.md'").Scan(&sessionID); err != nil {
		t.Fatalf("query: %v", err)
	}
	if sessionID != "session-1" {
		t.Errorf("expected session-1, got %q", sessionID)
	}
}

func TestLogCheckRun(t *testing.T) {
	s := testStore(t)

	if err := s.LogCheckRun("lint", "make lint", false, 1, 0, 50); err != nil {
		t.Fatalf("log check run: %v", err)
	}
	if err := s.LogCheckRun("lint", "make lint", true, 0, 1, 48); err != nil {
		t.Fatalf("log check run: %v", err)
	}

	var passed bool
	var round int
	err := s.conn.QueryRow("SELECT passed, retry_round FROM check_runs ORDER BY id DESC LIMIT 1").Scan(&passed, &round)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !passed || round != 1 {
		t.Errorf("expected passed=true round=1, got passed=%v round=%d", passed, round)
	}
}
