package device

import (
	"fmt"
	"sort"
	"strings"
)

// Model is a named device layout.
type Model struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Geometry    `json:",inline" yaml:",inline"`
	KeyWidth    int `json:"key_width" yaml:"key_width"`
	KeyHeight   int `json:"key_height" yaml:"key_height"`
}

// Definition declares a custom model in the user settings file.
type Definition struct {
	Name      string `mapstructure:"name"`
	Rows      int    `mapstructure:"rows"`
	Cols      int    `mapstructure:"cols"`
	Keys      int    `mapstructure:"keys"` // 0 means rows*cols
	KeyWidth  int    `mapstructure:"key_width"`
	KeyHeight int    `mapstructure:"key_height"`
}

// builtinModels are the layouts of the stock hardware.
var builtinModels = map[string]Model{
	"mini":        {Name: "mini", DisplayName: "Stream Deck Mini", Geometry: Grid(2, 3), KeyWidth: 72, KeyHeight: 72},
	"mini-mk2":    {Name: "mini-mk2", DisplayName: "Stream Deck Mini MK.2", Geometry: Grid(2, 3), KeyWidth: 72, KeyHeight: 72},
	"original":    {Name: "original", DisplayName: "Stream Deck (Original)", Geometry: Grid(3, 5), KeyWidth: 72, KeyHeight: 72},
	"original-v2": {Name: "original-v2", DisplayName: "Stream Deck (Original V2)", Geometry: Grid(3, 5), KeyWidth: 72, KeyHeight: 72},
	"mk2":         {Name: "mk2", DisplayName: "Stream Deck MK.2", Geometry: Grid(3, 5), KeyWidth: 72, KeyHeight: 72},
	"xl":          {Name: "xl", DisplayName: "Stream Deck XL", Geometry: Grid(4, 8), KeyWidth: 96, KeyHeight: 96},
	"xl-v2":       {Name: "xl-v2", DisplayName: "Stream Deck XL V2", Geometry: Grid(4, 8), KeyWidth: 96, KeyHeight: 96},
	"plus":        {Name: "plus", DisplayName: "Stream Deck +", Geometry: Grid(2, 4), KeyWidth: 120, KeyHeight: 120},
	"neo":         {Name: "neo", DisplayName: "Stream Deck Neo", Geometry: Grid(2, 4), KeyWidth: 72, KeyHeight: 72},
	"pedal":       {Name: "pedal", DisplayName: "Stream Deck Pedal", Geometry: Grid(1, 3)},
}

// Catalog resolves model names to layouts.
type Catalog struct {
	models map[string]Model
}

// NewCatalog creates a Catalog with the built-in models and optional custom
// definitions. A custom definition with a built-in name replaces it.
func NewCatalog(custom []Definition) (*Catalog, error) {
	models := make(map[string]Model, len(builtinModels)+len(custom))
	for name, m := range builtinModels {
		models[name] = m
	}
	for i, def := range custom {
		m, err := def.model()
		if err != nil {
			return nil, fmt.Errorf("device definition[%d]: %w", i, err)
		}
		models[m.Name] = m
	}
	return &Catalog{models: models}, nil
}

func (d Definition) model() (Model, error) {
	name := strings.ToLower(strings.TrimSpace(d.Name))
	if name == "" {
		return Model{}, fmt.Errorf("'name' is required")
	}
	g := Geometry{KeyCount: d.Keys, Rows: d.Rows, Cols: d.Cols}
	if g.KeyCount == 0 {
		g.KeyCount = d.Rows * d.Cols
	}
	if err := g.Validate(); err != nil {
		return Model{}, fmt.Errorf("model '%s': %w", name, err)
	}
	return Model{
		Name:        name,
		DisplayName: d.Name,
		Geometry:    g,
		KeyWidth:    d.KeyWidth,
		KeyHeight:   d.KeyHeight,
	}, nil
}

// Lookup returns the model registered under name (case-insensitive).
func (c *Catalog) Lookup(name string) (Model, error) {
	m, ok := c.models[strings.ToLower(name)]
	if !ok {
		return Model{}, fmt.Errorf("unknown device model '%s' (known models: %s)", name, strings.Join(c.Names(), ", "))
	}
	return m, nil
}

// Names returns all known model names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Models returns all known models sorted by name.
func (c *Catalog) Models() []Model {
	names := c.Names()
	out := make([]Model, 0, len(names))
	for _, name := range names {
		out = append(out, c.models[name])
	}
	return out
}

// IsCustom reports whether name comes from a custom definition rather than
// the built-in table, including custom overrides of built-in names.
func (c *Catalog) IsCustom(name string) bool {
	m, isDefined := c.models[strings.ToLower(name)]
	if !isDefined {
		return false
	}
	builtin, isBuiltin := builtinModels[m.Name]
	return !isBuiltin || builtin != m
}
