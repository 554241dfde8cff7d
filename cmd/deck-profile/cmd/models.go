package cmd

import (
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known device models",
	Long: `Lists the built-in device models and any custom models defined under
"devices" in the settings file, with their key count and layout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := newCatalog()
		if err != nil {
			return err
		}
		return newWriter(cmd.OutOrStdout()).Models(catalog)
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
