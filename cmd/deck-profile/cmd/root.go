package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/report"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	settingsPath string
	formatName   string
	jsonOutput   bool
	verbose      bool
	quiet        bool
	noColor      bool
)

// settings holds the user settings file merged with DECK_PROFILE_*
// environment variables and bound flags.
var settings = newSettings()

var rootCmd = &cobra.Command{
	Use:   "deck-profile",
	Short: "Declarative key layouts for Stream Deck style devices",
	Long: `deck-profile reads a YAML or TOML profile describing what every key of a
Stream Deck style device should show (an image, a solid color, or nothing),
validates it, and resolves it against a device layout into exactly one
directive per key.

Selectors address single keys ("5"), ranges ("8-15"), rows ("row-1"),
columns ("col-0") and every remaining key ("default"). More specific
selectors win; between equally specific ones, the later entry wins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "deck-profile %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle through outputFormat, which reads rootCmd's flags.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		setupLogging()
		if err := initConfig(); err != nil {
			return err
		}
		_, err := outputFormat()
		return err
	}

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default is $XDG_CONFIG_HOME/deck-profile/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", "output format: auto, human, json, json-compact, yaml")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "shorthand for --format json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "detailed output and debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetDefault("model", "xl")
	v.SetDefault("format", string(report.FormatAuto))
	v.SetEnvPrefix("DECK_PROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// initConfig loads the settings file. A missing default settings file is
// not an error; a missing --settings file is.
func initConfig() error {
	path := settingsPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultSettingsPath()
	}
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no settings file", "path", path)
			return nil
		}
		return fmt.Errorf("reading settings %s: %w", path, err)
	}

	settings.SetConfigFile(path)
	if err := settings.ReadInConfig(); err != nil {
		return fmt.Errorf("reading settings %s: %w", path, err)
	}
	slog.Debug("using settings file", "file", settings.ConfigFileUsed())
	return nil
}

func setupLogging() {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// Execute runs the root command. Failures are rendered on stderr in the
// selected output format.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		w := newWriter(os.Stderr)
		if werr := w.Error(err); werr != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}
