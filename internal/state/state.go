// Package state tracks which prompt files in a directory have already been
// processed, so interrupted directory runs can resume where they left off.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists completion state at <root>/.vibe/state.json. The file maps
// absolute directory paths to the filenames completed within them.
type Store struct {
	path string
}

// NewStore creates a Store rooted at the given project directory.
func NewStore(root string) *Store {
	return &Store{path: filepath.Join(root, ".vibe", "state.json")}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// load reads the full state map. A missing or unreadable file yields an
// empty state; a corrupt file yields an empty state and the parse error so
// callers can warn without failing the run.
func (s *Store) load() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string][]string{}, nil
	}
	var state map[string][]string
	if err := json.Unmarshal(data, &state); err != nil {
		return map[string][]string{}, fmt.Errorf("parsing state file %s: %w", s.path, err)
	}
	if state == nil {
		state = map[string][]string{}
	}
	return state, nil
}

// Completed returns the set of filenames recorded complete for a directory.
// The error is advisory: a corrupt state file still yields an empty set.
func (s *Store) Completed(dir string) (map[string]bool, error) {
	state, err := s.load()
	completed := make(map[string]bool)
	for _, name := range state[dirKey(dir)] {
		completed[name] = true
	}
	return completed, err
}

// MarkComplete records a prompt file as completed for a directory.
// Marking the same file twice is a no-op.
func (s *Store) MarkComplete(dir, filename string) error {
	state, _ := s.load()

	key := dirKey(dir)
	for _, name := range state[key] {
		if name == filename {
			return nil
		}
	}
	state[key] = append(state[key], filename)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// dirKey normalizes a directory path into a stable map key.
func dirKey(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}
