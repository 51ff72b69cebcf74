package factory

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/apiconfig/internal/definition"
)

func candidate(name string) map[string]any {
	return map[string]any{
		KeyName:                       name,
		definition.KeyParent:          nil,
		definition.KeyPriority:        0,
		definition.KeyRequiredState:   false,
		definition.KeyDescription:     nil,
		definition.KeyDefaultValue:    nil,
		definition.KeyHasDefaultValue: false,
	}
}

func withChildren(rep map[string]any, children any) map[string]any {
	rep[definition.KeyChildren] = children
	return rep
}

func TestDefinitionFactory_Supports(t *testing.T) {
	f := NewDefinitionFactory(definition.NewArena())

	testCases := []struct {
		name string
		rep  map[string]any
		want bool
	}{
		{name: "exact keys", rep: candidate("leaf"), want: true},
		{name: "any default value", rep: func() map[string]any {
			rep := candidate("leaf")
			rep[definition.KeyDefaultValue] = []any{1, "two"}
			return rep
		}(), want: true},
		{name: "description string", rep: func() map[string]any {
			rep := candidate("leaf")
			rep[definition.KeyDescription] = "d"
			return rep
		}(), want: true},
		{name: "extra children key", rep: withChildren(candidate("leaf"), []any{}), want: false},
		{name: "missing name", rep: func() map[string]any {
			rep := candidate("leaf")
			delete(rep, KeyName)
			return rep
		}(), want: false},
		{name: "wrong priority type", rep: func() map[string]any {
			rep := candidate("leaf")
			rep[definition.KeyPriority] = "high"
			return rep
		}(), want: false},
		{name: "empty", rep: map[string]any{}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Supports(tc.rep))
		})
	}
}

func TestContainerFactory_Supports(t *testing.T) {
	f := NewContainerFactory(definition.NewArena())

	assert.True(t, f.Supports(withChildren(candidate("root"), []any{})))
	assert.True(t, f.Supports(withChildren(candidate("root"), map[string]any{})))
	assert.False(t, f.Supports(candidate("root")), "children is required")
	assert.False(t, f.Supports(withChildren(candidate("root"), "leaf")))
}

func TestFactories_NewInstance(t *testing.T) {
	arena := definition.NewArena()

	leaf, err := NewDefinitionFactory(arena).NewInstance(candidate("leaf"))
	require.NoError(t, err)
	assert.Equal(t, "leaf", leaf.Name())
	assert.Equal(t, definition.KindLeaf, leaf.Kind())
	assert.Same(t, arena, leaf.Arena())

	root, err := NewContainerFactory(arena).NewInstance(withChildren(candidate("root"), []any{}))
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name())
	assert.True(t, root.IsContainer())
	assert.Empty(t, root.Children(), "the factory does not apply the representation")

	_, err = NewDefinitionFactory(arena).NewInstance(map[string]any{KeyName: 3})
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	arena := definition.NewArena()
	chain := NewDefaultChain(arena)
	require.Len(t, chain.Factories(), 2)

	t.Run("leaf", func(t *testing.T) {
		require.True(t, chain.Supports(candidate("leaf")))
		d, err := chain.NewInstance(candidate("leaf"))
		require.NoError(t, err)
		assert.False(t, d.IsContainer())
	})

	t.Run("container", func(t *testing.T) {
		rep := withChildren(candidate("root"), []any{})
		require.True(t, chain.Supports(rep))
		d, err := chain.NewInstance(rep)
		require.NoError(t, err)
		assert.True(t, d.IsContainer())
	})

	t.Run("unsupported", func(t *testing.T) {
		rep := map[string]any{"unknown": true}
		assert.False(t, chain.Supports(rep))

		d, err := chain.NewInstance(rep)
		require.Error(t, err)
		assert.Nil(t, d)
		assert.True(t, errors.Is(err, ErrUnsupportedRepresentation))
	})
}

type stubFactory struct {
	supports bool
	name     string
	calls    int
	arena    *definition.Arena
}

func (s *stubFactory) Supports(map[string]any) bool { return s.supports }

func (s *stubFactory) NewInstance(map[string]any) (*definition.Definition, error) {
	s.calls++
	return s.arena.NewDefinition(s.name), nil
}

func TestChain_FirstMatchWins(t *testing.T) {
	arena := definition.NewArena()
	skipped := &stubFactory{supports: false, name: "skipped", arena: arena}
	first := &stubFactory{supports: true, name: "first", arena: arena}
	second := &stubFactory{supports: true, name: "second", arena: arena}

	chain := NewChain(skipped, first).Add(second)
	assert.Equal(t, []Factory{skipped, first, second}, chain.Factories())

	d, err := chain.NewInstance(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "first", d.Name())
	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestChain_Nested(t *testing.T) {
	arena := definition.NewArena()
	inner := NewChain(NewContainerFactory(arena))
	outer := NewChain(inner, NewDefinitionFactory(arena))

	d, err := outer.NewInstance(withChildren(candidate("root"), []any{}))
	require.NoError(t, err)
	assert.True(t, d.IsContainer())
}

func TestChain_AddNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewChain().Add(nil) })
}

func TestUnsupportedRepresentationError(t *testing.T) {
	assert.Equal(t, "no factory supporting the given representation", (&UnsupportedRepresentationError{}).Error())
	assert.Equal(t, `unsupported representation given for key "root"`, (&UnsupportedRepresentationError{Key: "root"}).Error())
}

func TestNewDefaultChain_LogsThroughArenaLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	arena := definition.NewArena(definition.WithLogger(logger))

	chain := NewDefaultChain(arena)
	assert.Equal(t, 2, strings.Count(buf.String(), "Registering definition factory."))

	_, err := chain.NewInstance(candidate("leaf"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Dispatching representation to factory.")
}
