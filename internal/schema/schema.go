// Package schema holds the JSON Schema for profile documents and validates
// decoded documents against it.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// URL identifies the profile schema.
const URL = "https://github.com/bianoble/deck-profile/schema/profile.json"

//go:embed profile.schema.json
var source string

// Source returns the schema document.
func Source() string { return source }

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(URL, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("adding profile schema: %w", err)
	}
	s, err := compiler.Compile(URL)
	if err != nil {
		return nil, fmt.Errorf("compiling profile schema: %w", err)
	}
	return s, nil
})

// Violation is one schema failure.
type Violation struct {
	Location string `json:"location" yaml:"location"`
	Message  string `json:"message" yaml:"message"`
}

// Error lists every schema failure of a document.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Location + ": " + v.Message
	}
	return fmt.Sprintf("schema validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks a decoded document tree against the profile schema.
// The tree may come from either the YAML or the TOML decoder.
func Validate(doc any) error {
	s, err := compiled()
	if err != nil {
		return err
	}
	err = s.Validate(normalize(doc))
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating profile: %w", err)
	}
	return &Error{Violations: collect(ve)}
}

// collect flattens the leaf causes of ve, which carry the specific messages.
func collect(ve *jsonschema.ValidationError) []Violation {
	var out []Violation
	seen := make(map[Violation]bool)
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "(root)"
			}
			v := Violation{Location: loc, Message: e.Message}
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// normalize converts decoder-specific values into the JSON shapes the
// validator accepts.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case nil, bool, string, int, int8, int32, int64, uint, uint8, uint32, uint64, float32, float64:
		return x
	default:
		// TOML local dates and times.
		return fmt.Sprint(x)
	}
}
