package supervisor

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/vibeworks/vibe/internal/state"
	"github.com/vibeworks/vibe/internal/ui"
)

// RunDirectory processes every .txt and .md prompt file directly in dir,
// sorted ascending by filename. Files already recorded complete are skipped;
// a file is marked complete only after its checks pass. Processing stops at
// the first failure, leaving the state resumable.
func (s *Supervisor) RunDirectory(ctx context.Context, dir string) error {
	files, err := promptFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ui.Warningf("No .txt or .md files found in directory: %s", dir)
		return nil
	}
	ui.Infof("Found %d prompt file(s) in directory", len(files))

	st := state.NewStore(s.root)
	completed, stateErr := st.Completed(dir)
	if stateErr != nil {
		ui.Warningf("Failed to load state file: %v. Starting fresh.", stateErr)
	}

	var remaining []string
	for _, f := range files {
		if !completed[filepath.Base(f)] {
			remaining = append(remaining, f)
		}
	}
	if skipped := len(files) - len(remaining); skipped > 0 {
		ui.Infof("Skipping %d already completed file(s)", skipped)
	}
	if len(remaining) == 0 {
		ui.Infof("All prompt files in this directory have been completed.")
		return nil
	}
	ui.Infof("Processing %d remaining file(s)", len(remaining))

	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	for _, f := range remaining {
		name := filepath.Base(f)
		ui.Infof("Processing: %s", name)

		prompt, err := readPrompt(f)
		if err != nil {
			ui.Errorf("Failed: %s", name)
			ui.Warningf("Stopping directory processing. Fix issues and restart to continue.")
			return err
		}
		if _, err := s.invoke(ctx, prompt, f); err != nil {
			ui.Errorf("Failed: %s", name)
			ui.Warningf("Stopping directory processing. Fix issues and restart to continue.")
			return err
		}
		if err := s.runConfiguredChecks(ctx, cfg); err != nil {
			ui.Errorf("Failed: %s (checks did not pass)", name)
			ui.Warningf("Stopping directory processing. Fix issues and restart to continue.")
			return err
		}

		if err := st.MarkComplete(dir, name); err != nil {
			ui.Warningf("Failed to save state file: %v", err)
		}
		ui.Successf("Completed: %s", name)
	}

	ui.Successf("All prompt files processed successfully!")
	return nil
}

// promptFiles lists *.txt and *.md files directly in dir, sorted ascending
// by filename.
func promptFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.txt", "*.md"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files, nil
}
