package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_AddAndDetachSymmetry(t *testing.T) {
	arena := NewArena()
	p := arena.NewContainer("database")
	c := arena.NewDefinition("pool")

	require.NoError(t, p.AddChild(c))
	assert.True(t, p.HasChild(c))
	assert.Same(t, p, c.Parent())
	assert.Equal(t, []*Definition{c}, p.Children())

	require.NoError(t, p.AddChild(c), "adding twice is a no-op")
	assert.Len(t, p.Children(), 1)

	require.NoError(t, p.DetachChild(c))
	assert.False(t, p.HasChild(c))
	assert.Nil(t, c.Parent())

	require.NoError(t, p.DetachChild(c), "detaching an absent child is a no-op")
}

func TestContainer_SetParentSymmetry(t *testing.T) {
	arena := NewArena()
	first := arena.NewContainer("first")
	second := arena.NewContainer("second")
	c := arena.NewDefinition("leaf")

	require.NoError(t, c.SetParent(first))
	assert.True(t, first.HasChild(c))
	assert.Same(t, first, c.Parent())

	require.NoError(t, c.SetParent(first), "setting the same parent is a no-op")
	assert.Len(t, first.Children(), 1)

	require.NoError(t, c.SetParent(second))
	assert.False(t, first.HasChild(c), "moving must detach from the old parent")
	assert.True(t, second.HasChild(c))
	assert.Same(t, second, c.Parent())

	require.NoError(t, c.SetParent(nil))
	assert.False(t, second.HasChild(c))
	assert.Nil(t, c.Parent())
}

func TestContainer_AddChildMovesFromOtherParent(t *testing.T) {
	arena := NewArena()
	first := arena.NewContainer("first")
	second := arena.NewContainer("second")
	c := arena.NewDefinition("leaf")

	require.NoError(t, first.AddChild(c))
	require.NoError(t, second.AddChild(c))

	assert.False(t, first.HasChild(c))
	assert.True(t, second.HasChild(c))
	assert.Same(t, second, c.Parent())
}

func TestContainer_NoDanglingDetach(t *testing.T) {
	arena := NewArena()
	p := arena.NewContainer("p")
	other := arena.NewContainer("other")
	c := arena.NewDefinition("c")

	// Put c in p's set while its parent pointer names another container.
	p.children.insert(c.handle)
	c.parent = other.handle
	other.children.insert(c.handle)

	require.NoError(t, p.DetachChild(c))
	assert.False(t, p.HasChild(c))
	assert.Same(t, other, c.Parent(), "detach must not clear a parent that is not this container")
	assert.True(t, other.HasChild(c))
}

func TestContainer_SetChildren(t *testing.T) {
	arena := NewArena()
	p := arena.NewContainer("p")
	old := arena.NewDefinition("old")
	a := arena.NewDefinition("a")
	b := arena.NewDefinition("b")

	require.NoError(t, p.SetChildren([]*Definition{old, a}))
	require.NoError(t, p.SetChildren([]*Definition{b, a}))

	assert.Equal(t, []*Definition{b, a}, p.Children(), "order follows the list")
	assert.Nil(t, old.Parent())
	assert.Same(t, p, a.Parent())
	assert.Same(t, p, b.Parent())

	require.NoError(t, p.SetChildren(nil))
	assert.Empty(t, p.Children())
	assert.Nil(t, a.Parent())
}

func TestContainer_SetChildrenChecksBeforeClearing(t *testing.T) {
	arena := NewArena()
	p := arena.NewContainer("p")
	kept := arena.NewDefinition("kept")
	foreign := NewArena().NewDefinition("foreign")

	require.NoError(t, p.AddChild(kept))

	err := p.SetChildren([]*Definition{arena.NewDefinition("x"), foreign})
	require.ErrorIs(t, err, ErrForeignArena)
	assert.Equal(t, []*Definition{kept}, p.Children(), "failed replacement must keep the old children")
}

func TestContainer_ClearChildren(t *testing.T) {
	arena := NewArena()
	p := arena.NewContainer("p")
	children := []*Definition{arena.NewDefinition("a"), arena.NewDefinition("b"), arena.NewDefinition("c")}
	require.NoError(t, p.SetChildren(children))

	require.NoError(t, p.ClearChildren())
	assert.Empty(t, p.Children())
	for _, c := range children {
		assert.Nil(t, c.Parent())
	}
}

func TestContainer_Errors(t *testing.T) {
	t.Run("leaf cannot own children", func(t *testing.T) {
		arena := NewArena()
		leaf := arena.NewDefinition("leaf")
		c := arena.NewDefinition("c")

		assert.ErrorIs(t, leaf.AddChild(c), ErrNotContainer)
		assert.ErrorIs(t, c.SetParent(leaf), ErrNotContainer)
		assert.ErrorIs(t, leaf.DetachChild(c), ErrNotContainer)
		assert.ErrorIs(t, leaf.ClearChildren(), ErrNotContainer)
		assert.ErrorIs(t, leaf.SetChildren([]*Definition{c}), ErrNotContainer)
		assert.False(t, leaf.HasChild(c))
	})

	t.Run("foreign arena", func(t *testing.T) {
		p := NewArena().NewContainer("p")
		c := NewArena().NewDefinition("c")

		assert.ErrorIs(t, p.AddChild(c), ErrForeignArena)
		assert.ErrorIs(t, c.SetParent(p), ErrForeignArena)
		assert.False(t, p.HasChild(c))
	})

	t.Run("cycles", func(t *testing.T) {
		arena := NewArena()
		root := arena.NewContainer("root")
		mid := arena.NewContainer("mid")
		require.NoError(t, root.AddChild(mid))

		assert.ErrorIs(t, mid.AddChild(root), ErrCycle)
		assert.ErrorIs(t, root.SetParent(mid), ErrCycle)
		assert.ErrorIs(t, root.AddChild(root), ErrCycle)
		assert.Nil(t, root.Parent())
	})

	t.Run("nil child", func(t *testing.T) {
		p := NewArena().NewContainer("p")
		assert.Error(t, p.AddChild(nil))
		assert.NoError(t, p.DetachChild(nil))
	})
}

func TestArena_RootsAndGet(t *testing.T) {
	arena := NewArena()
	root := arena.NewContainer("root")
	leaf := arena.NewDefinition("leaf")
	other := arena.NewDefinition("other")
	require.NoError(t, root.AddChild(leaf))

	assert.Equal(t, 3, arena.Len())
	assert.Equal(t, []*Definition{root, other}, arena.Roots())

	got, ok := arena.Get(leaf.Handle())
	require.True(t, ok)
	assert.Same(t, leaf, got)
	assert.Same(t, arena, leaf.Arena())

	_, ok = arena.Get(NoHandle)
	assert.False(t, ok)
	_, ok = arena.Get(Handle(42))
	assert.False(t, ok)
}
