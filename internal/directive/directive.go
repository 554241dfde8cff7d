// Package directive models the per-key actions of a profile and validates
// them from decoded document fields.
package directive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bianoble/deck-profile/internal/paths"
)

// Placeholder is replaced by the key index in pattern templates.
const Placeholder = "{index}"

// Field names understood inside a key table.
const (
	FieldImage   = "image"
	FieldPattern = "pattern"
	FieldColor   = "color"
	FieldClear   = "clear"
	FieldMissing = "missing"
	FieldLabel   = "label"
)

// Kind names a directive variant.
type Kind string

const (
	KindImage   Kind = "image"
	KindPattern Kind = "pattern"
	KindColor   Kind = "color"
	KindClear   Kind = "clear"
)

// Directive is one of Image, Pattern, Color or Clear.
type Directive interface {
	Kind() Kind
	isDirective()
}

// Image shows one file on the key.
type Image struct {
	Path  paths.Resolved `json:"path" yaml:"path"`
	Label string         `json:"label,omitempty" yaml:"label,omitempty"` // reserved
}

// Pattern shows a per-key file whose name is derived from the key index.
type Pattern struct {
	Template string        `json:"template" yaml:"template"`
	Missing  MissingPolicy `json:"missing" yaml:"missing"`
	BaseDir  string        `json:"base_dir" yaml:"base_dir"`
}

// Color fills the key with a solid color.
type Color struct {
	Value RGB `json:"value" yaml:"value"`
}

// Clear blanks the key.
type Clear struct{}

func (Image) isDirective()   {}
func (Pattern) isDirective() {}
func (Color) isDirective()   {}
func (Clear) isDirective()   {}

func (Image) Kind() Kind   { return KindImage }
func (Pattern) Kind() Kind { return KindPattern }
func (Color) Kind() Kind   { return KindColor }
func (Clear) Kind() Kind   { return KindClear }

// Expand substitutes index into the template.
func (p Pattern) Expand(index int) string {
	return strings.ReplaceAll(p.Template, Placeholder, strconv.Itoa(index))
}

// MissingPolicy decides what a pattern does when the file for a key does not
// exist.
type MissingPolicy string

const (
	MissingError MissingPolicy = "error"
	MissingSkip  MissingPolicy = "skip"
	MissingClear MissingPolicy = "clear"
)

// ParseMissingPolicy parses one of "error", "skip" or "clear".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(s); p {
	case MissingError, MissingSkip, MissingClear:
		return p, nil
	default:
		return "", fmt.Errorf("expected one of: error, skip, clear")
	}
}

// FieldError reports a directive field that failed validation.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("'%s': %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid '%s' value %s: %s", e.Field, FormatValue(e.Value), e.Reason)
}

// FormatValue renders a decoded value the way it would appear in a
// document.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FromFields builds a directive from a decoded key table. Exactly one of
// image, pattern, color or clear must be present. Image paths are resolved
// with r. Fields that belong to no directive are ignored.
func FromFields(fields map[string]any, r *paths.Resolver) (Directive, error) {
	var present []string
	for _, name := range []string{FieldImage, FieldPattern, FieldColor, FieldClear} {
		if _, ok := fields[name]; ok {
			present = append(present, name)
		}
	}
	switch len(present) {
	case 0:
		return nil, &FieldError{Field: "key", Reason: "one of 'image', 'pattern', 'color' or 'clear' is required"}
	case 1:
	default:
		return nil, &FieldError{Field: "key", Reason: fmt.Sprintf("only one of 'image', 'pattern', 'color' or 'clear' may be set, found %s", strings.Join(present, ", "))}
	}

	switch present[0] {
	case FieldImage:
		return imageFrom(fields, r)
	case FieldPattern:
		return patternFrom(fields, r)
	case FieldColor:
		value := fields[FieldColor]
		c, err := ParseColor(value)
		if err != nil {
			return nil, &FieldError{Field: FieldColor, Value: value, Reason: err.Error()}
		}
		return Color{Value: c}, nil
	case FieldClear:
		value := fields[FieldClear]
		b, ok := value.(bool)
		if !ok {
			return nil, &FieldError{Field: FieldClear, Value: value, Reason: "must be true, got " + typeName(value)}
		}
		if !b {
			return nil, &FieldError{Field: FieldClear, Value: value, Reason: "must be true; omit the key to leave it unset"}
		}
		return Clear{}, nil
	default:
		panic("directive: unhandled field " + present[0])
	}
}

func imageFrom(fields map[string]any, r *paths.Resolver) (Directive, error) {
	value := fields[FieldImage]
	raw, ok := value.(string)
	if !ok {
		return nil, &FieldError{Field: FieldImage, Value: value, Reason: "must be a string, got " + typeName(value)}
	}
	if raw == "" {
		return nil, &FieldError{Field: FieldImage, Value: raw, Reason: "path must not be empty"}
	}

	var label string
	if v, ok := fields[FieldLabel]; ok {
		label, ok = v.(string)
		if !ok {
			return nil, &FieldError{Field: FieldLabel, Value: v, Reason: "must be a string, got " + typeName(v)}
		}
	}

	resolved, err := r.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return Image{Path: resolved, Label: label}, nil
}

func patternFrom(fields map[string]any, r *paths.Resolver) (Directive, error) {
	value := fields[FieldPattern]
	tmpl, ok := value.(string)
	if !ok {
		return nil, &FieldError{Field: FieldPattern, Value: value, Reason: "must be a string, got " + typeName(value)}
	}
	if !strings.Contains(tmpl, Placeholder) {
		return nil, &FieldError{Field: FieldPattern, Value: tmpl, Reason: "must contain the " + Placeholder + " placeholder"}
	}

	policy := MissingError
	if v, ok := fields[FieldMissing]; ok {
		s, isString := v.(string)
		if !isString {
			return nil, &FieldError{Field: FieldMissing, Value: v, Reason: "must be a string, got " + typeName(v)}
		}
		p, err := ParseMissingPolicy(s)
		if err != nil {
			return nil, &FieldError{Field: FieldMissing, Value: s, Reason: err.Error()}
		}
		policy = p
	}

	return Pattern{Template: tmpl, Missing: policy, BaseDir: r.BaseDir}, nil
}

// Describe returns a one-line summary of d for reports.
func Describe(d Directive) string {
	switch v := d.(type) {
	case Image:
		return "image " + v.Path.Path
	case Pattern:
		return fmt.Sprintf("pattern %s (missing: %s)", v.Template, v.Missing)
	case Color:
		return "color " + v.Value.Hex()
	case Clear:
		return "clear"
	default:
		panic(fmt.Sprintf("directive: unhandled variant %T", d))
	}
}
