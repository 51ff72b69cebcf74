package codec

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/apiconfig/internal/definition"
)

// level tells the decoders what a value stands for, so that only the
// children attribute of a definition entry is rewritten.
type level int

const (
	// levelNames is a mapping of definition names to entries.
	levelNames level = iota
	// levelEntry is the attribute mapping of one definition.
	levelEntry
	// levelChildren is the value of an entry's children attribute.
	levelChildren
	// levelValue is any other attribute value. It is left as decoded.
	levelValue
)

// key returns the level of the value stored under key k at l.
func (l level) key(k string) level {
	switch l {
	case levelNames, levelChildren:
		return levelEntry
	case levelEntry:
		if k == definition.KeyChildren {
			return levelChildren
		}
		return levelValue
	default:
		return levelValue
	}
}

// item returns the level of a list element at l.
func (l level) item() level {
	if l == levelChildren {
		return levelNames
	}
	return levelValue
}

// normalize converts decoded values to the shapes the visitor expects. A
// children mapping is turned into a list ordered by name.
func normalize(v any, l level) (any, error) {
	switch val := v.(type) {
	case json.Number:
		return normalizeJSONNumber(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item, l.key(k))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		if l == levelChildren {
			return childrenList(out), nil
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item, l.item())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return normalizeNumber(v), nil
	}
}

// normalizeJSONNumber keeps the literal's kind: numbers written without a
// fraction or exponent become int, the others float64.
func normalizeJSONNumber(n json.Number) (any, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return normalizeNumber(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	return f, nil
}

// normalizeNumber turns integer kinds into int and float32 into float64.
// Floats keep their type even when integral. Non-numeric values pass
// through.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		return float64(n)
	case uint64:
		if n <= math.MaxInt {
			return int(n)
		}
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// floatLiteral formats an integral float so that it reads back as a
// float, e.g. "2.0".
func floatLiteral(f float64) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return "", false
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(lit, ".eE") {
		lit += ".0"
	}
	return lit, true
}

// keepFloats replaces integral floats with wrap(literal) so that encoders
// do not write them as integers.
func keepFloats(v any, wrap func(literal string) any) any {
	switch val := v.(type) {
	case float64:
		if lit, ok := floatLiteral(val); ok {
			return wrap(lit)
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = keepFloats(item, wrap)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = keepFloats(item, wrap)
		}
		return out
	default:
		return v
	}
}

// childrenList turns a name-keyed children map into single-key maps
// ordered by name.
func childrenList(children map[string]any) []any {
	list := make([]any, 0, len(children))
	for _, name := range slices.Sorted(maps.Keys(children)) {
		list = append(list, map[string]any{name: children[name]})
	}
	return list
}

func asNested(v any) (map[string]any, error) {
	switch m := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("top level must be a mapping of definition names, got %T", v)
	}
}
