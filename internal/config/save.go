package config

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bianoble/deck-profile/internal/directive"
	"github.com/bianoble/deck-profile/internal/paths"
)

type header struct {
	Name       string `toml:"name,omitempty" yaml:"name,omitempty"`
	Device     string `toml:"device,omitempty" yaml:"device,omitempty"`
	Brightness *int   `toml:"brightness,omitempty" yaml:"brightness,omitempty"`
}

type keyFields struct {
	Image   string `toml:"image,omitempty" yaml:"image,omitempty"`
	Label   string `toml:"label,omitempty" yaml:"label,omitempty"`
	Pattern string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Missing string `toml:"missing,omitempty" yaml:"missing,omitempty"`
	Color   string `toml:"color,omitempty" yaml:"color,omitempty"`
	Clear   bool   `toml:"clear,omitempty" yaml:"clear,omitempty"`
}

func fieldsOf(d directive.Directive) keyFields {
	switch v := d.(type) {
	case directive.Image:
		return keyFields{Image: v.Path.Raw, Label: v.Label}
	case directive.Pattern:
		f := keyFields{Pattern: v.Template}
		if v.Missing != directive.MissingError {
			f.Missing = string(v.Missing)
		}
		return f
	case directive.Color:
		return keyFields{Color: v.Value.Hex()}
	case directive.Clear:
		return keyFields{Clear: true}
	default:
		panic(fmt.Sprintf("config: unhandled directive %T", d))
	}
}

// Marshal renders doc in format. Entries keep their order and image paths
// are written as originally given.
func Marshal(doc *Document, format Format) ([]byte, error) {
	h := header{Name: doc.Name, Device: doc.Device, Brightness: doc.Brightness}
	switch format {
	case FormatYAML:
		return marshalYAML(h, doc.Entries)
	case FormatTOML:
		return marshalTOML(h, doc.Entries)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func marshalYAML(h header, entries []Entry) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(h); err != nil {
		return nil, fmt.Errorf("encoding profile header: %w", err)
	}
	// An empty header encodes as a flow mapping "{}".
	root.Style = 0
	if len(entries) > 0 {
		keys := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range entries {
			var value yaml.Node
			if err := value.Encode(fieldsOf(e.Directive)); err != nil {
				return nil, fmt.Errorf("encoding key '%s': %w", e.Raw, err)
			}
			keys.Content = append(keys.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Raw},
				&value)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "keys"},
			keys)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalTOML(h header, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	head, err := toml.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("marshaling profile header: %w", err)
	}
	buf.Write(head)

	for _, e := range entries {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[keys.%q]\n", e.Raw)
		body, err := toml.Marshal(fieldsOf(e.Directive))
		if err != nil {
			return nil, fmt.Errorf("marshaling key '%s': %w", e.Raw, err)
		}
		buf.Write(body)
	}
	return buf.Bytes(), nil
}

// Save writes doc to path atomically, in the format implied by the
// extension.
func Save(path string, doc *Document) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := paths.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	return nil
}
