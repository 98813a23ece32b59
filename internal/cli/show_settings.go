package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibeworks/vibe/internal/settings"
)

var showSettingsCmd = &cobra.Command{
	Use:   "show-settings",
	Short: "Print the resolved application settings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		set, err := settings.Load(settings.FindProjectRoot(cwd))
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
