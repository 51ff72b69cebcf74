package definition

import (
	"github.com/vk/apiconfig/internal/schema"
)

// Binding maps one key of the flat representation to a definition.
type Binding struct {
	Key string
	// Get produces the value stored under Key.
	Get func(d *Definition) (any, error)
	// Set applies the validated representation; it may read other keys.
	Set func(d *Definition, values map[string]any) error
	// Types lists the accepted value types. Empty means unconstrained.
	Types []schema.Type
}

// Mapping assembles the definition's bindings and checks their shape.
// It is rebuilt on every call.
func (d *Definition) Mapping() ([]Binding, error) {
	var bindings []Binding
	bindings = append(bindings, d.defaulted.bindings()...)
	bindings = append(bindings, d.described.bindings()...)
	bindings = append(bindings, d.requireable.bindings()...)
	bindings = append(bindings, d.prioritized.bindings()...)
	bindings = append(bindings, d.nested.bindings()...)
	if d.IsContainer() {
		bindings = append(bindings, d.children.bindings()...)
	}
	bindings = append(bindings, d.extra...)

	seen := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		if err := checkBinding(b); err != nil {
			return nil, err
		}
		if _, dup := seen[b.Key]; dup {
			return nil, &MappingFormatError{Key: b.Key, Reason: "key is declared twice"}
		}
		seen[b.Key] = struct{}{}
	}
	return bindings, nil
}

func checkBinding(b Binding) error {
	switch {
	case b.Key == "":
		return &MappingFormatError{Key: b.Key, Reason: "key is empty"}
	case b.Get == nil:
		return &MappingFormatError{Key: b.Key, Reason: "get function is missing"}
	case b.Set == nil:
		return &MappingFormatError{Key: b.Key, Reason: "set function is missing"}
	}
	for _, t := range b.Types {
		if !schema.Known(t) {
			return &MappingFormatError{Key: b.Key, Reason: "unknown type " + string(t)}
		}
	}
	return nil
}

// Schema derives the validation schema of the flat representation: every
// mapped key is required and restricted to its binding's types.
func (d *Definition) Schema() (schema.Schema, error) {
	bindings, err := d.Mapping()
	if err != nil {
		return schema.Schema{}, err
	}
	return schemaOf(bindings), nil
}

func schemaOf(bindings []Binding) schema.Schema {
	options := make([]schema.Option, len(bindings))
	for i, b := range bindings {
		options[i] = schema.Option{Name: b.Key, Types: b.Types}
	}
	return schema.New(options...)
}

// ToArray returns the flat representation of the definition. The first
// failing getter aborts the conversion.
func (d *Definition) ToArray() (map[string]any, error) {
	bindings, err := d.Mapping()
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(bindings))
	for _, b := range bindings {
		v, err := b.Get(d)
		if err != nil {
			return nil, &ConversionError{Key: b.Key, Op: OpGet, Err: err}
		}
		out[b.Key] = v
	}
	return out, nil
}

// FromArray validates values and applies them to the definition, which is
// returned for chaining. A representation failing validation leaves the
// definition untouched; a failing setter stops at its key.
func (d *Definition) FromArray(values map[string]any) (*Definition, error) {
	bindings, err := d.Mapping()
	if err != nil {
		return nil, err
	}

	validated, err := d.arena.validator.Validate(schemaOf(bindings), values)
	if err != nil {
		return nil, &MalformedArrayError{Name: d.name, Err: err}
	}

	for _, b := range bindings {
		if err := b.Set(d, validated); err != nil {
			return nil, &ConversionError{Key: b.Key, Op: OpSet, Err: err}
		}
	}
	return d, nil
}
