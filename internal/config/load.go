package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/paths"
	"github.com/bianoble/deck-profile/internal/schema"
	"github.com/bianoble/deck-profile/internal/selector"
)

// Loader reads profile documents.
//
// The zero value is ready to use: unknown fields are ignored and paths are
// resolved against the real filesystem.
type Loader struct {
	// Strict validates the document against the profile schema first,
	// which rejects unknown fields.
	Strict bool

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger

	// NewResolver builds the path resolver for a base directory. Defaults
	// to paths.NewResolver.
	NewResolver func(baseDir string) *paths.Resolver
}

// Load reads and validates a profile with the default Loader.
func Load(path string) (*Document, error) {
	return (&Loader{}).Load(path)
}

// Parse validates profile text with the default Loader.
func Parse(data []byte, format Format, baseDir string) (*Document, error) {
	return (&Loader{}).Parse(data, format, baseDir)
}

// Load reads the profile at path. The format comes from the extension and
// relative references resolve against the profile's directory.
func (l *Loader) Load(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindNotFound, Path: path, Message: "profile not found", Err: err}
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	l.logger().Debug("read profile", "path", path, "format", format, "bytes", len(data))

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving profile path %s: %w", path, err)
	}

	doc, err := l.Parse(data, format, filepath.Dir(abs))
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) && ce.Path == "" {
			ce.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes and validates data. The first invalid field, selector or
// key aborts the whole document.
func (l *Loader) Parse(data []byte, format Format, baseDir string) (*Document, error) {
	t, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	if l.Strict {
		if err := schema.Validate(t.top); err != nil {
			return nil, &Error{Kind: KindInvalid, Message: err.Error(), Err: err}
		}
	}

	doc := &Document{}
	if doc.Name, err = optionalString(t.top, "name"); err != nil {
		return nil, err
	}
	if doc.Device, err = optionalString(t.top, "device"); err != nil {
		return nil, err
	}
	if doc.Brightness, err = brightness(t.top); err != nil {
		return nil, err
	}

	resolver := l.resolver(baseDir)
	// Both decoders reject a selector written twice, so entries are unique
	// by text here.
	for _, rk := range t.keys {
		entry, err := buildEntry(rk, resolver)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, entry)
	}

	l.logger().Debug("parsed profile",
		"name", doc.Name,
		"device", doc.Device,
		"keys", len(doc.Entries),
		"strict", l.Strict)
	return doc, nil
}

func buildEntry(rk rawKey, resolver *paths.Resolver) (Entry, error) {
	sel, err := selector.Parse(rk.selector)
	if err != nil {
		return Entry{}, &Error{Kind: KindInvalidSelector, Line: rk.line, Value: rk.selector, Err: err}
	}

	fields, ok := rk.value.(map[string]any)
	if !ok {
		return Entry{}, &Error{
			Kind:     KindInvalid,
			Line:     rk.line,
			Selector: rk.selector,
			Message:  fmt.Sprintf("key settings must be a table, got %s", directive.TypeName(rk.value)),
		}
	}

	d, err := directive.FromFields(fields, resolver)
	if err != nil {
		ce := &Error{Kind: KindInvalid, Line: rk.line, Selector: rk.selector, Err: err}
		var fe *directive.FieldError
		var nf *paths.NotFoundError
		switch {
		case errors.As(err, &fe):
			ce.Field, ce.Value = fe.Field, fe.Value
		case errors.As(err, &nf):
			ce.Kind = KindPathNotFound
			ce.Field, ce.Value = directive.FieldImage, nf.Raw
		}
		return Entry{}, ce
	}

	return Entry{Raw: rk.selector, Selector: sel, Directive: d}, nil
}

func optionalString(top map[string]any, field string) (string, error) {
	v, ok := top[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &Error{Kind: KindInvalid, Field: field, Value: v, Message: fmt.Sprintf("'%s' must be a string, got %s", field, directive.TypeName(v))}
	}
	return s, nil
}

func brightness(top map[string]any) (*int, error) {
	v, ok := top["brightness"]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := directive.ToInt(v)
	if !ok {
		return nil, &Error{Kind: KindInvalid, Field: "brightness", Value: v, Message: fmt.Sprintf("'brightness' must be an integer, got %s", directive.TypeName(v))}
	}
	if n < 0 || n > 100 {
		return nil, &Error{Kind: KindInvalid, Field: "brightness", Value: v, Message: fmt.Sprintf("invalid brightness value %d: must be 0-100", n)}
	}
	b := int(n)
	return &b, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l *Loader) resolver(baseDir string) *paths.Resolver {
	if l.NewResolver != nil {
		return l.NewResolver(baseDir)
	}
	return paths.NewResolver(baseDir)
}
