package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about deck-profile settings and profiles",
	Long: `Displays the deck-profile version, the settings file in use, the places a
profile is searched for (marking the one that would be used), and the number
of known device models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		catalog, err := newCatalog()
		if err != nil {
			return err
		}

		used := settings.ConfigFileUsed()
		if used == "" {
			used = settingsPath
		}
		result := engine.Info(version, catalog, used, config.DiscoverOptions{Dir: wd})
		return newWriter(cmd.OutOrStdout()).Info(result)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
