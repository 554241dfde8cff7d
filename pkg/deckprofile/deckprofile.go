// Package deckprofile provides the public Go library API for deck-profile.
//
// deck-profile turns a declarative YAML or TOML document describing a
// Stream Deck style key grid into one resolved directive per key. This
// package exposes constructors and helpers for embedding it in other Go
// programs, such as a daemon that applies profiles to connected hardware.
//
// # Basic Usage
//
//	client, err := deckprofile.New(deckprofile.Options{
//	    ProfilePath: "deck-profile.yaml",
//	    Model:       "xl",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Resolve every key of the device
//	plan, err := client.Plan()
//
//	// Turn the plan into concrete per-key actions
//	actions, err := client.Expand(ctx)
package deckprofile

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/engine"
)

// Options configures a deck-profile client.
type Options struct {
	// ProfilePath is the profile to load. If empty, the profile is
	// discovered from Dir and the user config directory.
	ProfilePath string

	// Dir is the project directory used for discovery. Default: the
	// working directory.
	Dir string

	// Model names the device layout. Ignored when Geometry is set.
	// Default: "xl".
	Model string

	// Geometry overrides the model with an explicit layout.
	Geometry *Geometry

	// CustomModels extends the built-in model catalog.
	CustomModels []ModelDefinition

	// Strict rejects unknown fields in the profile.
	Strict bool

	// Digest adds SHA-256 digests to image actions.
	Digest bool

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "xl"

// Client loads one profile and resolves it for one device layout.
type Client struct {
	opts     Options
	doc      *Document
	geometry Geometry
}

// New loads the profile and validates the device layout.
func New(opts Options) (*Client, error) {
	g, err := geometryFor(opts)
	if err != nil {
		return nil, err
	}

	path := opts.ProfilePath
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return nil, fmt.Errorf("getting working directory: %w", err)
			}
		}
		if path, err = config.DiscoverProfile(config.DiscoverOptions{Dir: dir}); err != nil {
			return nil, err
		}
	}

	loader := &config.Loader{Strict: opts.Strict, Logger: opts.Logger}
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return &Client{opts: opts, doc: doc, geometry: g}, nil
}

func geometryFor(opts Options) (Geometry, error) {
	if opts.Geometry != nil {
		if err := opts.Geometry.Validate(); err != nil {
			return Geometry{}, err
		}
		return *opts.Geometry, nil
	}
	name := opts.Model
	if name == "" {
		name = DefaultModel
	}
	m, err := Model(name, opts.CustomModels...)
	if err != nil {
		return Geometry{}, err
	}
	return m.Geometry, nil
}

// Document returns the loaded profile.
func (c *Client) Document() *Document { return c.doc }

// Geometry returns the device layout profiles are resolved against.
func (c *Client) Geometry() Geometry { return c.geometry }

// Plan resolves the profile for the client's device.
func (c *Client) Plan() *Plan {
	return engine.Resolve(c.doc, c.geometry)
}

// Expand resolves the profile and turns it into per-key actions.
func (c *Client) Expand(ctx context.Context) ([]Action, error) {
	e := &engine.Expander{Digest: c.opts.Digest, Logger: c.opts.Logger}
	return e.Expand(ctx, c.Plan())
}

// Load reads and validates the profile at path.
func Load(path string) (*Document, error) {
	return config.Load(path)
}

// Parse validates profile text. Relative paths resolve against baseDir.
func Parse(data []byte, format Format, baseDir string) (*Document, error) {
	return config.Parse(data, format, baseDir)
}

// Resolve computes the winning directive for every key of g.
func Resolve(doc *Document, g Geometry) *Plan {
	return engine.Resolve(doc, g)
}

// Expand turns a plan into per-key actions.
func Expand(ctx context.Context, p *Plan) ([]Action, error) {
	return (&engine.Expander{}).Expand(ctx, p)
}

// Model looks up a device model by name, including any custom definitions.
func Model(name string, custom ...ModelDefinition) (DeviceModel, error) {
	catalog, err := device.NewCatalog(custom)
	if err != nil {
		return DeviceModel{}, err
	}
	return catalog.Lookup(name)
}
