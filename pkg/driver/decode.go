package driver

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/obriencj/go-values/pkg/runtime"
)

// toValue converts a decoded YAML scalar or composite into a runtime
// value. Sequences become tuples so the result stays hashable.
func toValue(raw any) (runtime.Value, error) {
	switch v := raw.(type) {
	case nil:
		return runtime.Nil(), nil
	case bool:
		return runtime.Bool(v), nil
	case int:
		return runtime.Int(int64(v)), nil
	case int64:
		return runtime.Int(v), nil
	case float64:
		return runtime.Float(v), nil
	case string:
		return runtime.Str(v), nil
	case []any:
		elements := make([]runtime.Value, 0, len(v))
		for i, rawElem := range v {
			elem, err := toValue(rawElem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elements = append(elements, elem)
		}
		return runtime.NewTuple(elements...), nil
	case map[string]any:
		entries := make(map[string]runtime.Value, len(v))
		for key, rawElem := range v {
			elem, err := toValue(rawElem)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", key, err)
			}
			entries[key] = elem
		}
		return runtime.NewMap(entries), nil
	default:
		return nil, fmt.Errorf("unsupported YAML value of type %T", raw)
	}
}

// namedEntriesFromNode decodes a YAML mapping into named entries,
// preserving the order the keys appear in the file.
func namedEntriesFromNode(node *yaml.Node) ([]runtime.NamedEntry, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping, got %s", nodeKindName(node.Kind))
	}

	entries := make([]runtime.NamedEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("mapping key at line %d is not a scalar", keyNode.Line)
		}

		var raw any
		if err := valNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("entry %q: %w", keyNode.Value, err)
		}
		val, err := toValue(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", keyNode.Value, err)
		}
		entries = append(entries, runtime.NamedEntry{Name: keyNode.Value, Value: val})
	}
	return entries, nil
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
