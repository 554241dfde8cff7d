package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bianoble/deck-profile/internal/paths"
)

// Kind classifies profile errors for rendering and exit handling.
type Kind string

const (
	KindNotFound        Kind = "config_not_found"
	KindParse           Kind = "config_parse"
	KindInvalid         Kind = "config_invalid"
	KindInvalidSelector Kind = "invalid_selector"
	KindPathNotFound    Kind = "path_not_found"
)

// Error is a profile load failure with the context needed to render both a
// human message and a machine-readable diagnostic.
type Error struct {
	Kind     Kind
	Path     string // profile file, when known
	Line     int    // 1-based source line, 0 when unknown
	Selector string // key selector text, when the failure is inside a key
	Field    string
	Value    any
	Message  string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch {
	case e.Path != "" && e.Line > 0:
		fmt.Fprintf(&b, "%s:%d: ", e.Path, e.Line)
	case e.Path != "":
		b.WriteString(e.Path)
		b.WriteString(": ")
	case e.Line > 0:
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Selector != "" {
		fmt.Fprintf(&b, "key '%s': ", e.Selector)
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(string(e.Kind))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

type hinter interface{ Hint() string }

// Suggestion returns a short recovery hint, or "" when there is none.
func (e *Error) Suggestion() string {
	var h hinter
	if errors.As(e.Err, &h) {
		return h.Hint()
	}
	switch e.Kind {
	case KindNotFound:
		return "run 'deck-profile init' to create a profile"
	case KindParse:
		return "check the document syntax; profiles must end in .yaml, .yml or .toml"
	case KindInvalid:
		return "check configuration values for validity"
	case KindInvalidSelector:
		return `use a key index ("5"), a range ("8-15"), a row ("row-1"), a column ("col-0") or "default"`
	case KindPathNotFound:
		return "check the path; supported image types: " + strings.Join(paths.SupportedImageExtensions, ", ")
	default:
		return ""
	}
}

// Recoverable reports whether the user can fix the failure by editing the
// profile or creating the missing file.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case KindNotFound, KindInvalid, KindInvalidSelector, KindPathNotFound:
		return true
	default:
		return false
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if err
// is not a profile error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}
