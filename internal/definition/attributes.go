package definition

import (
	"fmt"
	"math"
	"reflect"

	"github.com/vk/apiconfig/internal/schema"
)

// Keys of the flat representation.
const (
	KeyName            = "name"
	KeyDescription     = "description"
	KeyRequiredState   = "requiredState"
	KeyPriority        = "priority"
	KeyDefaultValue    = "defaultValue"
	KeyHasDefaultValue = "hasDefaultValue"
	KeyParent          = "parent"
	KeyChildren        = "children"
)

type named struct {
	name string
}

// Name returns the definition name.
func (n *named) Name() string {
	return n.name
}

// SetName renames the definition.
func (n *named) SetName(name string) {
	n.name = name
}

type described struct {
	description    string
	hasDescription bool
}

// Description returns the description and whether one is set.
func (d *described) Description() (string, bool) {
	return d.description, d.hasDescription
}

// SetDescription sets the description.
func (d *described) SetDescription(description string) {
	d.description = description
	d.hasDescription = true
}

// ClearDescription removes the description.
func (d *described) ClearDescription() {
	d.description = ""
	d.hasDescription = false
}

func (described) bindings() []Binding {
	return []Binding{{
		Key:   KeyDescription,
		Types: []schema.Type{schema.String, schema.Null},
		Get: func(d *Definition) (any, error) {
			if s, ok := d.Description(); ok {
				return s, nil
			}
			return nil, nil
		},
		Set: func(d *Definition, values map[string]any) error {
			switch v := values[KeyDescription].(type) {
			case nil:
				d.ClearDescription()
			case string:
				d.SetDescription(v)
			default:
				return fmt.Errorf("expected a string or null, got %T", v)
			}
			return nil
		},
	}}
}

type requireable struct {
	required bool
}

// IsRequired reports whether the definition must be provided.
func (r *requireable) IsRequired() bool {
	return r.required
}

// SetRequired sets the required state.
func (r *requireable) SetRequired(required bool) {
	r.required = required
}

func (requireable) bindings() []Binding {
	return []Binding{{
		Key:   KeyRequiredState,
		Types: []schema.Type{schema.Bool},
		Get: func(d *Definition) (any, error) {
			return d.IsRequired(), nil
		},
		Set: func(d *Definition, values map[string]any) error {
			v, ok := values[KeyRequiredState].(bool)
			if !ok {
				return fmt.Errorf("expected a bool, got %T", values[KeyRequiredState])
			}
			d.SetRequired(v)
			return nil
		},
	}}
}

type prioritized struct {
	priority int
}

// Priority returns the merge priority. Zero unless set.
func (p *prioritized) Priority() int {
	return p.priority
}

// SetPriority sets the merge priority.
func (p *prioritized) SetPriority(priority int) {
	p.priority = priority
}

func (prioritized) bindings() []Binding {
	return []Binding{{
		Key:   KeyPriority,
		Types: []schema.Type{schema.Int},
		Get: func(d *Definition) (any, error) {
			return d.Priority(), nil
		},
		Set: func(d *Definition, values map[string]any) error {
			v, err := toInt(values[KeyPriority])
			if err != nil {
				return err
			}
			d.SetPriority(v)
			return nil
		},
	}}
}

type defaulted struct {
	defaultValue any
	hasDefault   bool
}

// SetDefaultValue assigns a default value. nil is a valid default.
func (d *defaulted) SetDefaultValue(v any) {
	d.defaultValue = v
	d.hasDefault = true
}

// RemoveDefaultValue drops the default value.
func (d *defaulted) RemoveDefaultValue() {
	d.defaultValue = nil
	d.hasDefault = false
}

// HasDefaultValue reports whether a default value is assigned.
func (d *defaulted) HasDefaultValue() bool {
	return d.hasDefault
}

func (defaulted) bindings() []Binding {
	return []Binding{
		{
			Key: KeyDefaultValue,
			Get: func(d *Definition) (any, error) {
				if !d.HasDefaultValue() {
					return nil, nil
				}
				return d.DefaultValue()
			},
			Set: func(d *Definition, values map[string]any) error {
				if has, _ := values[KeyHasDefaultValue].(bool); has {
					d.SetDefaultValue(values[KeyDefaultValue])
					return nil
				}
				d.RemoveDefaultValue()
				return nil
			},
		},
		{
			Key:   KeyHasDefaultValue,
			Types: []schema.Type{schema.Bool},
			Get: func(d *Definition) (any, error) {
				return d.HasDefaultValue(), nil
			},
			// Applied by the defaultValue setter.
			Set: func(*Definition, map[string]any) error { return nil },
		},
	}
}

// toInt converts any Go integer kind to int.
func toInt(v any) (int, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < math.MinInt || i > math.MaxInt {
			return 0, fmt.Errorf("integer %d overflows int", i)
		}
		return int(i), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, fmt.Errorf("integer %d overflows int", u)
		}
		return int(u), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
