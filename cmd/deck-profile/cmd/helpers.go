package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/report"
)

// outputFormat returns the format picked by --json, --format or the
// settings file, in that order.
func outputFormat() (report.Format, error) {
	if jsonOutput {
		return report.FormatJSON, nil
	}
	name := formatName
	if !rootCmd.PersistentFlags().Changed("format") {
		name = settings.GetString("format")
	}
	return report.ParseFormat(name)
}

// newWriter creates a report writer for out. An invalid format falls back
// to human output so errors can still be rendered.
func newWriter(out io.Writer) *report.Writer {
	format, err := outputFormat()
	if err != nil {
		format = report.FormatHuman
	}
	f, _ := out.(*os.File)
	return &report.Writer{
		Out:    out,
		Format: report.ResolveAuto(format, f),
		Color:  report.ColorEnabled(f, noColor),
	}
}

// loadProfiles loads every profile in paths and merges them, later files
// taking precedence. With no paths the profile is discovered from the
// working directory and the user config directory.
func loadProfiles(paths []string, strict bool) (*config.Document, error) {
	if len(paths) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		path, err := config.DiscoverProfile(config.DiscoverOptions{Dir: wd})
		if err != nil {
			return nil, err
		}
		detail("using profile %s", path)
		paths = []string{path}
	}

	loader := &config.Loader{Strict: strict}
	docs := make([]*config.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := loader.Load(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return config.MergeAll(docs)
}

// newCatalog creates the model catalog with the custom device definitions
// from the settings file.
func newCatalog() (*device.Catalog, error) {
	var defs []device.Definition
	if err := settings.UnmarshalKey("devices", &defs); err != nil {
		return nil, fmt.Errorf("reading device definitions from settings: %w", err)
	}
	return device.NewCatalog(defs)
}

// geometryFlags selects a device layout by model name or explicit size.
type geometryFlags struct {
	model string
	rows  int
	cols  int
	keys  int
}

func (g *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.model, "model", "", "device model (default from settings, or xl)")
	cmd.Flags().IntVar(&g.rows, "rows", 0, "explicit number of key rows (requires --cols)")
	cmd.Flags().IntVar(&g.cols, "cols", 0, "explicit number of key columns (requires --rows)")
	cmd.Flags().IntVar(&g.keys, "keys", 0, "explicit key count (default rows*cols)")
	cmd.MarkFlagsRequiredTogether("rows", "cols")
	cmd.MarkFlagsMutuallyExclusive("model", "rows")
}

// resolve returns the explicit geometry when --rows/--cols are set, and the
// named model otherwise.
func (g *geometryFlags) resolve() (device.Geometry, error) {
	if g.rows != 0 || g.cols != 0 {
		geo := device.Grid(g.rows, g.cols)
		if g.keys != 0 {
			geo.KeyCount = g.keys
		}
		if err := geo.Validate(); err != nil {
			return device.Geometry{}, err
		}
		return geo, nil
	}

	name := g.model
	if name == "" {
		name = settings.GetString("model")
	}
	catalog, err := newCatalog()
	if err != nil {
		return device.Geometry{}, err
	}
	m, err := catalog.Lookup(name)
	if err != nil {
		return device.Geometry{}, err
	}
	detail("using model %s: %s", m.Name, m.Geometry)
	return m.Geometry, nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
	}
}
