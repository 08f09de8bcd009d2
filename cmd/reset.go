package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/shapes/internal/config"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the settings file so defaults are used again",
	RunE:  resetSettings,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func resetSettings(cmd *cobra.Command, args []string) error {
	settingsPath, err := config.GetSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to get settings path: %w", err)
	}

	if err := os.Remove(settingsPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "No settings file at", settingsPath)
			return nil
		}
		return fmt.Errorf("failed to remove settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Removed settings:", settingsPath)
	return nil
}
