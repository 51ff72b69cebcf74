package definition

import (
	"fmt"

	"github.com/vk/apiconfig/internal/schema"
)

// Domain type names reported by definitions to the schema package.
const (
	TypeDefinition schema.Type = "definition"
	TypeContainer  schema.Type = "container"
)

func init() {
	schema.Register(TypeDefinition, TypeContainer)
}

// Kind tells leaves and containers apart.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindContainer
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Definition is a single configuration definition. Create it through an
// Arena.
type Definition struct {
	named
	described
	requireable
	prioritized
	defaulted
	nested

	arena    *Arena
	handle   Handle
	kind     Kind
	children *container // nil for leaves
	extra    []Binding
}

// Option configures a Definition at creation.
type Option func(*Definition)

// WithBindings appends bindings to the definition's mapping. They are
// checked like the built-in ones when the mapping is assembled.
func WithBindings(bindings ...Binding) Option {
	return func(d *Definition) {
		d.extra = append(d.extra, bindings...)
	}
}

// Handle returns the definition's identity within its arena.
func (d *Definition) Handle() Handle {
	return d.handle
}

// Arena returns the arena owning the definition.
func (d *Definition) Arena() *Arena {
	return d.arena
}

// Kind returns whether the definition is a leaf or a container.
func (d *Definition) Kind() Kind {
	return d.kind
}

// IsContainer reports whether the definition can own children.
func (d *Definition) IsContainer() bool {
	return d.kind == KindContainer
}

// DefaultValue returns the default value. A nil default is valid and
// distinct from having none, which fails with a *DefaultValueError.
func (d *Definition) DefaultValue() (any, error) {
	if !d.hasDefault {
		return nil, &DefaultValueError{Name: d.name}
	}
	return d.defaultValue, nil
}

// SchemaTypes implements schema.Typed.
func (d *Definition) SchemaTypes() []schema.Type {
	if d.IsContainer() {
		return []schema.Type{schema.Object, TypeDefinition, TypeContainer}
	}
	return []schema.Type{schema.Object, TypeDefinition}
}

// String returns a short description used in logs and errors.
func (d *Definition) String() string {
	return fmt.Sprintf("%s %q (#%d)", d.kind, d.name, d.handle)
}
