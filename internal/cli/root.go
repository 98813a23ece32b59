// Package cli wires the vibe command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "vibe <path>",
	Short: "vibe — a thin supervisor for headless Claude Code runs",
	Long: `vibe invokes Claude Code headless with a prompt from a file, then runs the
checks configured in .vibe/vibe.yaml, asking Claude to fix failures until all
checks pass or the retry budget is spent.

When <path> is a directory, every .txt and .md file in it is processed in
filename order; completed files are recorded in .vibe/state.json so an
interrupted run can resume.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runSupervise,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showSettingsCmd)
}
