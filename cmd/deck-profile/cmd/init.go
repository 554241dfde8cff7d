package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/paths"
	"github.com/bianoble/deck-profile/internal/scan"
)

var (
	initForce    bool
	initFromDir  string
	initPattern  string
	initName     string
	initGeometry geometryFlags
)

// defaultProfileName is where init writes when no path is given.
const defaultProfileName = "deck-profile.yaml"

// initTemplateYAML is the default deck-profile.yaml scaffold.
// It only uses colors so it validates before any images exist.
const initTemplateYAML = `# deck-profile profile
# Docs: https://github.com/bianoble/deck-profile
name: My Profile

# device: AL12345     # serial of the target device (optional)
# brightness: 75      # 0-100 (optional)

keys:
  # Single key: highest priority
  0:
    color: "#1e90ff"
  #   image: icons/mute.png      # paths are relative to this file
  #   label: Mute

  # Range of keys, one file per key ({index} becomes the key number)
  # 8-15:
  #   pattern: icons/row2/{index}.png
  #   missing: skip              # error (default), skip or clear

  # Whole row or column
  row-1:
    color: [34, 34, 34]

  # col-0:
  #   color: orange

  # Every key no other selector matched: lowest priority
  default:
    clear: true
`

// initTemplateTOML is the TOML flavor of initTemplateYAML.
const initTemplateTOML = `# deck-profile profile
# Docs: https://github.com/bianoble/deck-profile
name = "My Profile"

# device = "AL12345"   # serial of the target device (optional)
# brightness = 75      # 0-100 (optional)

# Single key: highest priority
[keys.0]
color = "#1e90ff"
# image = "icons/mute.png"     # paths are relative to this file
# label = "Mute"

# Range of keys, one file per key ({index} becomes the key number)
# [keys.8-15]
# pattern = "icons/row2/{index}.png"
# missing = "skip"             # error (default), skip or clear

# Whole row or column
[keys.row-1]
color = [34, 34, 34]

# Every key no other selector matched: lowest priority
[keys.default]
clear = true
`

var initCmd = &cobra.Command{
	Use:   "init [profile]",
	Short: "Create a starter profile",
	Long: `Creates a profile (deck-profile.yaml by default) with a commented template
showing every selector and directive. A .toml path writes a TOML profile.

With --from-dir, the directory is scanned for images named after --pattern
(for example "key-{index}.png") and the profile maps each image to its key.

Use --force to overwrite an existing profile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := defaultProfileName
		if len(args) == 1 {
			outPath = args[0]
		}
		abs, err := filepath.Abs(outPath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		outPath = abs

		format, err := config.DetectFormat(outPath)
		if err != nil {
			return err
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if initFromDir != "" {
			return initFromScan(cmd, outPath)
		}

		tmpl := initTemplateYAML
		if format == config.FormatTOML {
			tmpl = initTemplateTOML
		}
		if err := paths.WriteFileAtomic(outPath, []byte(tmpl), 0644); err != nil {
			return fmt.Errorf("writing profile: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Edit the file to describe your keys")
		info("  2. Run 'deck-profile validate' to check it")
		info("  3. Run 'deck-profile plan --model <model>' to see every key")
		return nil
	},
}

// initFromScan writes a profile mapping each scanned image to its key.
func initFromScan(cmd *cobra.Command, outPath string) error {
	g, err := initGeometry.resolve()
	if err != nil {
		return err
	}

	res, err := scan.Directory(initFromDir, initPattern, g.KeyCount)
	if err != nil {
		return err
	}
	if verbose {
		if err := newWriter(cmd.ErrOrStderr()).Scan(res); err != nil {
			return err
		}
	}
	if len(res.Mappings) == 0 {
		return fmt.Errorf("no files in %s match pattern '%s'", initFromDir, initPattern)
	}

	entries, err := res.Entries(filepath.Dir(outPath))
	if err != nil {
		return err
	}
	doc := &config.Document{Name: initName, Entries: entries}
	if err := config.Save(outPath, doc); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	info("Created %s with %d keys from %s", outPath, len(entries), initFromDir)
	for _, inv := range res.Invalid {
		info("  skipped %s: %s", inv.Path, inv.Reason)
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing profile")
	initCmd.Flags().StringVar(&initFromDir, "from-dir", "", "build the profile from images in this directory")
	initCmd.Flags().StringVar(&initPattern, "pattern", "{index}.png", "file name pattern for --from-dir")
	initCmd.Flags().StringVar(&initName, "name", "", "profile name for --from-dir")
	initGeometry.register(initCmd)
	rootCmd.AddCommand(initCmd)
}
