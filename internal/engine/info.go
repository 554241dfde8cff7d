package engine

import (
	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/schema"
)

// ProfileStatus describes a discovery candidate for display.
type ProfileStatus struct {
	Level  string `json:"level" yaml:"level"` // "project", "user"
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
	Active bool   `json:"active" yaml:"active"` // the profile discovery would pick
}

// InfoResult holds tool information for the info command.
type InfoResult struct {
	Version      string          `json:"version" yaml:"version"`
	SettingsPath string          `json:"settings_path" yaml:"settings_path"`
	SchemaURL    string          `json:"schema_url" yaml:"schema_url"`
	Profiles     []ProfileStatus `json:"profiles" yaml:"profiles"`
	Models       []ModelInfo     `json:"models" yaml:"models"`
}

// ModelInfo describes a device model.
type ModelInfo struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	KeyCount    int    `json:"key_count" yaml:"key_count"`
	Rows        int    `json:"rows" yaml:"rows"`
	Cols        int    `json:"cols" yaml:"cols"`
	IsCustom    bool   `json:"custom" yaml:"custom"`
}

// Info gathers tool information.
func Info(version string, catalog *device.Catalog, settingsPath string, discover config.DiscoverOptions) *InfoResult {
	r := &InfoResult{
		Version:      version,
		SettingsPath: settingsPath,
		SchemaURL:    schema.URL,
	}

	active := false
	for _, c := range config.DiscoverPaths(discover) {
		ps := ProfileStatus{Level: string(c.Level), Path: c.Path, Exists: c.Exists}
		if c.Exists && !active {
			ps.Active = true
			active = true
		}
		r.Profiles = append(r.Profiles, ps)
	}

	if catalog != nil {
		for _, m := range catalog.Models() {
			r.Models = append(r.Models, ModelInfo{
				Name:        m.Name,
				DisplayName: m.DisplayName,
				KeyCount:    m.KeyCount,
				Rows:        m.Rows,
				Cols:        m.Cols,
				IsCustom:    catalog.IsCustom(m.Name),
			})
		}
	}
	return r
}
