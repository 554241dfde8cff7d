package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [profile...]",
	Short: "Check a profile for errors",
	Long: `Parses the profile, checks every selector and directive, and verifies that
every referenced image exists. The first problem found is reported with a
suggestion for fixing it.

With several profiles, they are merged in order and the result is checked.
With none, the profile is discovered from the current directory and then the
user config directory.

Use --strict to also reject fields deck-profile does not know about.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadProfiles(args, validateStrict)
		if err != nil {
			return err
		}

		w := newWriter(cmd.OutOrStdout())
		if w.Format.Machine() || verbose {
			return w.Document(doc)
		}
		if quiet {
			return nil
		}
		return w.Success(fmt.Sprintf("%s: valid (%d key entries)", doc.Path, len(doc.Entries)))
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "reject unknown fields")
	rootCmd.AddCommand(validateCmd)
}
