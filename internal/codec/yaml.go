package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	v, err := fromYAMLNode(doc.Content[0], levelNames)
	if err != nil {
		return nil, err
	}
	return asNested(v)
}

// fromYAMLNode walks the node tree instead of decoding into maps so that
// children mappings keep their document order.
func fromYAMLNode(n *yaml.Node, l level) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias", n.Line)
		}
		return fromYAMLNode(n.Alias, l)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return normalizeNumber(v), nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromYAMLNode(item, l.item())
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		if l == levelChildren {
			return orderedChildren(n)
		}
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := fromYAMLNode(value, l.key(key.Value))
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

// orderedChildren turns a children mapping into single-key maps in
// document order.
func orderedChildren(n *yaml.Node) ([]any, error) {
	list := make([]any, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: definition names must be scalars", key.Line)
		}
		v, err := fromYAMLNode(n.Content[i+1], levelChildren.key(key.Value))
		if err != nil {
			return nil, err
		}
		list = append(list, map[string]any{key.Value: v})
	}
	return list, nil
}

func encodeYAML(nested map[string]any) ([]byte, error) {
	literal := func(lit string) any {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: lit}
	}
	return yaml.Marshal(keepFloats(nested, literal))
}
