// Package report renders documents, plans and errors for people and for
// scripts.
package report

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format is an output format.
type Format string

const (
	FormatAuto        Format = "auto"
	FormatHuman       Format = "human"
	FormatJSON        Format = "json"
	FormatJSONCompact Format = "json-compact"
	FormatYAML        Format = "yaml"
)

// Formats lists the formats accepted by ParseFormat.
var Formats = []Format{FormatAuto, FormatHuman, FormatJSON, FormatJSONCompact, FormatYAML}

// ParseFormat parses a format name. "text" is accepted for human output.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatHuman, FormatJSON, FormatJSONCompact, FormatYAML:
		return f, nil
	case "text", "":
		return FormatHuman, nil
	default:
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unknown format '%s' (supported: %s)", s, strings.Join(names, ", "))
	}
}

// Machine reports whether f is meant for scripts.
func (f Format) Machine() bool {
	return f == FormatJSON || f == FormatJSONCompact || f == FormatYAML
}

// ResolveAuto turns FormatAuto into human output on a terminal and JSON
// otherwise. Other formats are returned unchanged.
func ResolveAuto(f Format, out *os.File) Format {
	if f != FormatAuto {
		return f
	}
	if isTerminal(out) {
		return FormatHuman
	}
	return FormatJSON
}

// ColorEnabled reports whether ANSI color should be written to out. The
// NO_COLOR convention and the noColor flag both turn it off.
func ColorEnabled(out *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(out)
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
