package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/selector"
)

// Document is a validated profile. Entries keep source order, which is the
// tie-breaker between selectors of equal priority.
type Document struct {
	Name       string
	Device     string // serial of the target device
	Brightness *int
	Entries    []Entry

	// Path is the file the document was loaded from, if any.
	Path string
}

// Entry is one key table of a profile.
type Entry struct {
	Raw       string // selector text as written
	Selector  selector.Selector
	Directive directive.Directive
}

// Lookup returns the entry declared with selector text raw.
func (d *Document) Lookup(raw string) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Raw == raw {
			return e, true
		}
	}
	return Entry{}, false
}

// Format is a profile document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Extension returns the canonical file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatTOML:
		return ".toml"
	default:
		return ".yaml"
	}
}

// DetectFormat infers the document format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", &Error{
			Kind:    KindParse,
			Path:    path,
			Message: fmt.Sprintf("unknown profile format for '%s': expected .yaml, .yml or .toml", path),
		}
	}
}

// ParseFormat parses a format name as used on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown profile format '%s' (must be one of: yaml, toml)", s)
	}
}
