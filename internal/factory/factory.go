package factory

import (
	"fmt"

	"github.com/vk/apiconfig/internal/definition"
	"github.com/vk/apiconfig/internal/schema"
)

// KeyName carries the definition name in a factory candidate. It is not part
// of a definition's own flat representation.
const KeyName = "name"

// Factory builds empty definitions from candidate representations it
// supports.
type Factory interface {
	// Supports reports whether rep has exactly the keys the factory
	// expects, each with an allowed type.
	Supports(rep map[string]any) bool
	// NewInstance creates a definition named after rep. It does not apply
	// the remaining keys.
	NewInstance(rep map[string]any) (*definition.Definition, error)
}

// DefinitionKeys returns the key set accepted by DefinitionFactory.
func DefinitionKeys() schema.Schema {
	return schema.New(
		schema.Option{Name: KeyName, Types: []schema.Type{schema.String}},
		schema.Option{Name: definition.KeyParent, Types: []schema.Type{schema.Null, schema.Object}},
		schema.Option{Name: definition.KeyPriority, Types: []schema.Type{schema.Int}},
		schema.Option{Name: definition.KeyRequiredState, Types: []schema.Type{schema.Bool}},
		schema.Option{Name: definition.KeyDescription, Types: []schema.Type{schema.String, schema.Null}},
		schema.Option{Name: definition.KeyDefaultValue, Types: []schema.Type{schema.Any}},
		schema.Option{Name: definition.KeyHasDefaultValue, Types: []schema.Type{schema.Bool}},
	)
}

// ContainerKeys returns the key set accepted by ContainerFactory: the
// definition keys plus children, given as a list or a name-keyed map.
func ContainerKeys() schema.Schema {
	return DefinitionKeys().With(
		schema.Option{Name: definition.KeyChildren, Types: []schema.Type{schema.Array, schema.Map}},
	)
}

// DefinitionFactory creates leaf definitions in its arena.
type DefinitionFactory struct {
	arena *definition.Arena
	keys  schema.Schema
}

// NewDefinitionFactory returns a factory creating leaves in arena.
func NewDefinitionFactory(arena *definition.Arena) *DefinitionFactory {
	return &DefinitionFactory{arena: arena, keys: DefinitionKeys()}
}

// Supports implements Factory.
func (f *DefinitionFactory) Supports(rep map[string]any) bool {
	return f.keys.Matches(rep)
}

// NewInstance implements Factory.
func (f *DefinitionFactory) NewInstance(rep map[string]any) (*definition.Definition, error) {
	name, err := nameOf(rep)
	if err != nil {
		return nil, err
	}
	return f.arena.NewDefinition(name), nil
}

// ContainerFactory creates container definitions in its arena.
type ContainerFactory struct {
	arena *definition.Arena
	keys  schema.Schema
}

// NewContainerFactory returns a factory creating containers in arena.
func NewContainerFactory(arena *definition.Arena) *ContainerFactory {
	return &ContainerFactory{arena: arena, keys: ContainerKeys()}
}

// Supports implements Factory.
func (f *ContainerFactory) Supports(rep map[string]any) bool {
	return f.keys.Matches(rep)
}

// NewInstance implements Factory.
func (f *ContainerFactory) NewInstance(rep map[string]any) (*definition.Definition, error) {
	name, err := nameOf(rep)
	if err != nil {
		return nil, err
	}
	return f.arena.NewContainer(name), nil
}

func nameOf(rep map[string]any) (string, error) {
	name, ok := rep[KeyName].(string)
	if !ok {
		return "", fmt.Errorf("candidate %s must be a string, got %T", KeyName, rep[KeyName])
	}
	return name, nil
}
