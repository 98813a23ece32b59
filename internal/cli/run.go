package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vibeworks/vibe/internal/checks"
	"github.com/vibeworks/vibe/internal/claude"
	"github.com/vibeworks/vibe/internal/history"
	"github.com/vibeworks/vibe/internal/settings"
	"github.com/vibeworks/vibe/internal/supervisor"
	"github.com/vibeworks/vibe/internal/ui"
)

func runSupervise(cmd *cobra.Command, args []string) error {
	path := args[0]
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path not found: %s", path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	root := settings.FindProjectRoot(cwd)

	set, err := settings.Load(root)
	if err != nil {
		return err
	}

	sup := supervisor.New(root, &claude.CLI{Dir: root}, checks.NewRunner(&checks.ExecRunner{}))

	if set.HistoryDB != "" {
		dbPath := set.HistoryDB
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(root, dbPath)
		}
		h, err := history.Open(dbPath)
		if err != nil {
			ui.Warningf("run history disabled: %v", err)
		} else {
			defer h.Close()
			if err := h.Migrate(); err != nil {
				ui.Warningf("run history disabled: %v", err)
			} else {
				sup.SetHistory(h)
			}
		}
	}

	ctx := cmd.Context()
	if fi.IsDir() {
		return sup.RunDirectory(ctx, path)
	}
	return sup.RunFile(ctx, path)
}
