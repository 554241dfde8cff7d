package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "deck-profile"

// ProfileFileNames are the profile names looked for during discovery, in
// order of preference.
var ProfileFileNames = []string{"deck-profile.yaml", "deck-profile.yml", "deck-profile.toml"}

// Level is where a discovered profile lives.
type Level string

const (
	LevelProject Level = "project"
	LevelUser    Level = "user"
)

// Candidate is one place a profile may live.
type Candidate struct {
	Path   string
	Level  Level
	Exists bool
}

// DiscoverOptions controls where profiles are searched for.
type DiscoverOptions struct {
	// Dir is the project directory, usually the working directory.
	Dir string

	// UserConfigDir overrides the per-user config directory. Empty means
	// the OS default; set it to a nonexistent path to skip the user level.
	UserConfigDir string
}

// DiscoverPaths returns every candidate profile path, project level first.
// Paths are deduplicated by absolute path.
func DiscoverPaths(opts DiscoverOptions) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)

	add := func(level Level, dir string) {
		if dir == "" {
			return
		}
		for _, name := range ProfileFileNames {
			path := filepath.Join(dir, name)
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			info, err := os.Stat(path)
			out = append(out, Candidate{Path: path, Level: level, Exists: err == nil && info.Mode().IsRegular()})
		}
	}

	add(LevelProject, opts.Dir)
	userDir := opts.UserConfigDir
	if userDir == "" {
		userDir = DefaultUserConfigDir()
	}
	add(LevelUser, userDir)
	return out
}

// DiscoverProfile returns the first existing candidate profile.
func DiscoverProfile(opts DiscoverOptions) (string, error) {
	candidates := DiscoverPaths(opts)
	for _, c := range candidates {
		if c.Exists {
			return c.Path, nil
		}
	}
	searched := make([]string, len(candidates))
	for i, c := range candidates {
		searched[i] = c.Path
	}
	return "", &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no profile found (searched: %s)", strings.Join(searched, ", ")),
		Err:     os.ErrNotExist,
	}
}

// DefaultUserConfigDir returns the per-user directory for profiles and
// settings, or "" if the OS reports none.
func DefaultUserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName)
}

// DefaultSettingsPath returns the tool settings file location.
func DefaultSettingsPath() string {
	dir := DefaultUserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "settings.yaml")
}

// IsNotFound reports whether err means the profile itself is missing.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
