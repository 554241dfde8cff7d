package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bianoble/deck-profile/internal/engine"
)

var (
	planGeometry geometryFlags
	planExpand   bool
	planDigest   bool
	planStrict   bool
)

var planCmd = &cobra.Command{
	Use:   "plan [profile...]",
	Short: "Show what every key of a device will display",
	Long: `Resolves the profile against a device layout and shows the winning directive
for every key, together with the selectors it overrides.

The layout comes from --model (see 'deck-profile models'), from --rows and
--cols, or from the "model" setting.

Use --expand to turn patterns into concrete files and apply their missing
file policy, and --digest to add a SHA-256 of every image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := planGeometry.resolve()
		if err != nil {
			return err
		}
		doc, err := loadProfiles(args, planStrict)
		if err != nil {
			return err
		}

		p := engine.Resolve(doc, g)
		for _, s := range p.Unmatched {
			slog.Debug("selector matches no key", "selector", s, "geometry", g.String())
		}

		w := newWriter(cmd.OutOrStdout())
		if !planExpand && !planDigest {
			return w.Plan(doc, p)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		e := &engine.Expander{Digest: planDigest}
		actions, err := e.Expand(ctx, p)
		if err != nil {
			return err
		}
		return w.Actions(p, actions)
	},
}

func init() {
	planGeometry.register(planCmd)
	planCmd.Flags().BoolVar(&planExpand, "expand", false, "expand patterns into per-key actions")
	planCmd.Flags().BoolVar(&planDigest, "digest", false, "include SHA-256 digests of images (implies --expand)")
	planCmd.Flags().BoolVar(&planStrict, "strict", false, "reject unknown fields")
	rootCmd.AddCommand(planCmd)
}
