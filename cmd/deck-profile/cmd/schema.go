package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/deck-profile/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for profiles",
	Long: `Prints the JSON Schema (draft 2020-12) that 'validate --strict' checks
profiles against. Editors with YAML language server support can use it for
completion and inline validation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), schema.Source())
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
