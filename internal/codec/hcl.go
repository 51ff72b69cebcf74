package codec

import (
	"fmt"
	"maps"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/apiconfig/internal/definition"
)

const (
	blockDefinition = "definition"
	blockChildren   = "children"
)

// attributeOrder is the order attributes are written in; other keys follow
// sorted by name.
var attributeOrder = []string{
	definition.KeyDescription,
	definition.KeyRequiredState,
	definition.KeyPriority,
	definition.KeyHasDefaultValue,
	definition.KeyDefaultValue,
}

func decodeHCL(data []byte, filename string) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}
	if len(body.Attributes) > 0 {
		name := slices.Sorted(maps.Keys(body.Attributes))[0]
		return nil, fmt.Errorf("%s: attribute %q is not allowed at the top level", body.Attributes[name].SrcRange, name)
	}

	nested := make(map[string]any, len(body.Blocks))
	for _, block := range body.Blocks {
		name, rep, err := decodeDefinitionBlock(block)
		if err != nil {
			return nil, err
		}
		if _, dup := nested[name]; dup {
			return nil, fmt.Errorf("%s: definition %q declared twice: %w", block.DefRange(), name, ErrDuplicateDefinition)
		}
		nested[name] = rep
	}
	return nested, nil
}

func decodeDefinitionBlock(block *hclsyntax.Block) (string, map[string]any, error) {
	if block.Type != blockDefinition {
		return "", nil, fmt.Errorf("%s: unexpected block %q, expected %q", block.DefRange(), block.Type, blockDefinition)
	}
	if len(block.Labels) != 1 {
		return "", nil, fmt.Errorf("%s: a %s block needs exactly one name label", block.DefRange(), blockDefinition)
	}

	rep := make(map[string]any, len(block.Body.Attributes)+1)
	for name, attr := range block.Body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return "", nil, diags
		}
		native, err := ctyToNative(val)
		if err != nil {
			return "", nil, fmt.Errorf("%s: attribute %q: %w", attr.SrcRange, name, err)
		}
		rep[name] = native
	}

	for _, inner := range block.Body.Blocks {
		if inner.Type != blockChildren {
			return "", nil, fmt.Errorf("%s: unexpected block %q inside a definition", inner.DefRange(), inner.Type)
		}
		if _, dup := rep[definition.KeyChildren]; dup {
			return "", nil, fmt.Errorf("%s: a definition holds at most one children block", inner.DefRange())
		}
		if len(inner.Body.Attributes) > 0 {
			return "", nil, fmt.Errorf("%s: a children block only holds definition blocks", inner.DefRange())
		}

		children := make([]any, 0, len(inner.Body.Blocks))
		for _, child := range inner.Body.Blocks {
			name, childRep, err := decodeDefinitionBlock(child)
			if err != nil {
				return "", nil, err
			}
			children = append(children, map[string]any{name: childRep})
		}
		rep[definition.KeyChildren] = children
	}

	return block.Labels[0], rep, nil
}

// ctyToNative converts a cty.Value to plain Go values.
func ctyToNative(val cty.Value) (any, error) {
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return normalizeNumber(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			native, err := ctyToNative(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// toCtyValue converts plain Go values to cty. Values outside the decoded
// shapes go through gocty's implied type.
func toCtyValue(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, item := range val {
			e, err := toCtyValue(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = e
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for k, item := range val {
			a, err := toCtyValue(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = a
		}
		return cty.ObjectVal(attrs), nil
	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
		}
		return gocty.ToCtyValue(v, ty)
	}
}

func encodeHCL(nested map[string]any) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for i, name := range slices.Sorted(maps.Keys(nested)) {
		if i > 0 {
			body.AppendNewline()
		}
		if err := writeDefinitionBlock(body, name, nested[name]); err != nil {
			return nil, err
		}
	}
	return hclwrite.Format(file.Bytes()), nil
}

func writeDefinitionBlock(parent *hclwrite.Body, name string, raw any) error {
	rep, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("definition %q: expected a mapping, got %T", name, raw)
	}

	block := parent.AppendNewBlock(blockDefinition, []string{name})
	body := block.Body()

	keys := slices.DeleteFunc(slices.Sorted(maps.Keys(rep)), func(k string) bool {
		return k == definition.KeyChildren || slices.Contains(attributeOrder, k)
	})
	for _, key := range append(slices.Clone(attributeOrder), keys...) {
		v, ok := rep[key]
		if !ok {
			continue
		}
		val, err := toCtyValue(v)
		if err != nil {
			return fmt.Errorf("definition %q attribute %q: %w", name, key, err)
		}
		body.SetAttributeValue(key, val)
	}

	children, ok := rep[definition.KeyChildren]
	if !ok {
		return nil
	}
	list, ok := children.([]any)
	if !ok {
		return fmt.Errorf("definition %q: children must be a list, got %T", name, children)
	}

	body.AppendNewline()
	childBody := body.AppendNewBlock(blockChildren, nil).Body()
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("definition %q: child entries must be mappings, got %T", name, item)
		}
		for _, childName := range slices.Sorted(maps.Keys(entry)) {
			if err := writeDefinitionBlock(childBody, childName, entry[childName]); err != nil {
				return err
			}
		}
	}
	return nil
}
