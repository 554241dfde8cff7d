package config

import (
	"bytes"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// tree is a decoded document before validation. Key tables are kept in
// source order because map decoding loses it.
type tree struct {
	top  map[string]any
	keys []rawKey
}

type rawKey struct {
	selector string
	value    any
	line     int // 0 when unknown
}

func decode(data []byte, format Format) (*tree, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// decodeYAML walks the node tree rather than decoding into a map so that
// key order survives and unquoted numeric selectors (0:) stay strings.
func decodeYAML(data []byte) (*tree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &Error{Kind: KindParse, Message: "YAML: " + err.Error(), Err: err}
	}

	t := &tree{top: map[string]any{}}
	if root.Kind == 0 || len(root.Content) == 0 {
		return t, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return t, nil
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &Error{Kind: KindParse, Message: fmt.Sprintf("YAML: line %d: document must be a mapping", doc.Line)}
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		k, v := doc.Content[i], doc.Content[i+1]
		var value any
		if err := v.Decode(&value); err != nil {
			return nil, &Error{Kind: KindParse, Message: fmt.Sprintf("YAML: line %d: %v", v.Line, err), Err: err}
		}
		t.top[k.Value] = value

		if k.Value != "keys" {
			continue
		}
		// Later "keys" mappings replace earlier ones, as with map decoding.
		t.keys = nil
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		switch {
		case v.Kind == yaml.MappingNode:
		case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
			continue
		default:
			return nil, invalidf("'keys' must be a table of selector to key settings")
		}
		for j := 0; j+1 < len(v.Content); j += 2 {
			sk, sv := v.Content[j], v.Content[j+1]
			if sk.Kind != yaml.ScalarNode {
				return nil, invalidf("line %d: key selectors must be scalars", sk.Line)
			}
			var entry any
			if err := sv.Decode(&entry); err != nil {
				return nil, &Error{Kind: KindParse, Message: fmt.Sprintf("YAML: line %d: %v", sv.Line, err), Err: err}
			}
			t.keys = append(t.keys, rawKey{selector: sk.Value, value: entry, line: sk.Line})
		}
	}
	return t, nil
}

func decodeTOML(data []byte) (*tree, error) {
	top := map[string]any{}
	if err := toml.Unmarshal(data, &top); err != nil {
		return nil, &Error{Kind: KindParse, Message: "TOML: " + tomlMessage(err), Err: err}
	}

	t := &tree{top: top}
	raw, ok := top["keys"]
	if !ok {
		return t, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidf("'keys' must be a table of selector to key settings")
	}

	order, err := tomlKeyOrder(data)
	if err != nil {
		return nil, &Error{Kind: KindParse, Message: "TOML: " + err.Error(), Err: err}
	}
	for _, sel := range order {
		if v, ok := table[sel]; ok {
			t.keys = append(t.keys, rawKey{selector: sel, value: v})
		}
	}
	return t, nil
}

func tomlMessage(err error) string {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return fmt.Sprintf("line %d, column %d: %s", row, col, de.Error())
	}
	return err.Error()
}

// tomlKeyOrder lists the selectors under [keys] in the order they first
// appear. It understands [keys.X] headers, dotted keys.X.field = ... lines
// and an inline keys = { X = {...} } table.
func tomlKeyOrder(data []byte) ([]string, error) {
	var p unstable.Parser
	p.Reset(data)

	var order []string
	seen := make(map[string]bool)
	record := func(path []string) {
		if len(path) < 2 || path[0] != "keys" || seen[path[1]] {
			return
		}
		seen[path[1]] = true
		order = append(order, path[1])
	}

	var table []string
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr.Key())
			record(table)
		case unstable.KeyValue:
			full := append(append([]string(nil), table...), keyParts(expr.Key())...)
			record(full)
			if len(full) == 1 && full[0] == "keys" {
				value := expr.Value()
				if value.Kind != unstable.InlineTable {
					continue
				}
				it := value.Children()
				for it.Next() {
					kv := it.Node()
					if kv.Kind != unstable.KeyValue {
						continue
					}
					if parts := keyParts(kv.Key()); len(parts) > 0 {
						record([]string{"keys", parts[0]})
					}
				}
			}
		}
	}
	return order, p.Error()
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(bytes.Clone(it.Node().Data)))
	}
	return parts
}
