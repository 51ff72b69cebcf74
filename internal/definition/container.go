package definition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/apiconfig/internal/schema"
)

// nested holds the weak link to the parent container.
type nested struct {
	parent Handle
}

// container is the ordered child set of a container definition.
type container struct {
	order   []Handle
	members map[Handle]struct{}
}

func newContainer() *container {
	return &container{members: make(map[Handle]struct{})}
}

func (c *container) has(h Handle) bool {
	_, ok := c.members[h]
	return ok
}

func (c *container) insert(h Handle) {
	c.members[h] = struct{}{}
	c.order = append(c.order, h)
}

func (c *container) remove(h Handle) {
	delete(c.members, h)
	if i := slices.Index(c.order, h); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// Parent returns the parent container, or nil for a root.
func (d *Definition) Parent() *Definition {
	if d.parent == NoHandle {
		return nil
	}
	return d.arena.node(d.parent)
}

// SetParent moves the definition under p, or detaches it when p is nil.
// Setting the current parent again does nothing.
func (d *Definition) SetParent(p *Definition) error {
	target := NoHandle
	if p != nil {
		if err := checkLink(p, d); err != nil {
			return err
		}
		target = p.handle
	}

	if d.parent == target {
		return nil
	}

	if d.parent != NoHandle {
		if err := d.arena.node(d.parent).DetachChild(d); err != nil {
			return err
		}
	}

	d.parent = target
	if p != nil && !p.HasChild(d) {
		return p.AddChild(d)
	}
	return nil
}

// AddChild adds child to the container and makes the container its parent.
// Adding a current child does nothing.
func (d *Definition) AddChild(child *Definition) error {
	if err := checkLink(d, child); err != nil {
		return err
	}
	if d.children.has(child.handle) {
		return nil
	}

	d.children.insert(child.handle)
	d.arena.logger.Debug("Attached child definition.", "parent", d.name, "child", child.name)

	if child.parent != d.handle {
		return child.SetParent(d)
	}
	return nil
}

// DetachChild removes child from the container. The child's parent is
// cleared only if it still points at this container.
func (d *Definition) DetachChild(child *Definition) error {
	if !d.IsContainer() {
		return fmt.Errorf("cannot detach from %s: %w", d, ErrNotContainer)
	}
	if !d.HasChild(child) {
		return nil
	}

	d.children.remove(child.handle)
	d.arena.logger.Debug("Detached child definition.", "parent", d.name, "child", child.name)

	if child.parent == d.handle {
		return child.SetParent(nil)
	}
	return nil
}

// HasChild reports whether child is a member of the container.
func (d *Definition) HasChild(child *Definition) bool {
	if !d.IsContainer() || child == nil || child.arena != d.arena {
		return false
	}
	return d.children.has(child.handle)
}

// Children returns the children in insertion order. Leaves have none.
func (d *Definition) Children() []*Definition {
	if !d.IsContainer() {
		return nil
	}
	children := make([]*Definition, len(d.children.order))
	for i, h := range d.children.order {
		children[i] = d.arena.node(h)
	}
	return children
}

// ClearChildren detaches every child.
func (d *Definition) ClearChildren() error {
	if !d.IsContainer() {
		return fmt.Errorf("cannot clear %s: %w", d, ErrNotContainer)
	}
	for _, h := range slices.Clone(d.children.order) {
		if err := d.DetachChild(d.arena.node(h)); err != nil {
			return err
		}
	}
	return nil
}

// SetChildren replaces the children with list, keeping list order. Every
// element is checked before the current children are detached.
func (d *Definition) SetChildren(list []*Definition) error {
	for _, child := range list {
		if err := checkLink(d, child); err != nil {
			return err
		}
	}

	if err := d.ClearChildren(); err != nil {
		return err
	}
	for _, child := range list {
		if err := d.AddChild(child); err != nil {
			return err
		}
	}
	return nil
}

// checkLink verifies that child may be placed under parent.
func checkLink(parent, child *Definition) error {
	if child == nil {
		return errors.New("child definition is nil")
	}
	if !parent.IsContainer() {
		return fmt.Errorf("cannot attach %s to %s: %w", child, parent, ErrNotContainer)
	}
	if parent.arena != child.arena {
		return fmt.Errorf("cannot attach %s to %s: %w", child, parent, ErrForeignArena)
	}
	for h := parent.handle; h != NoHandle; h = parent.arena.node(h).parent {
		if h == child.handle {
			return fmt.Errorf("cannot attach %s to %s: %w", child, parent, ErrCycle)
		}
	}
	return nil
}

func (nested) bindings() []Binding {
	return []Binding{{
		Key:   KeyParent,
		Types: []schema.Type{schema.Null, TypeContainer},
		Get: func(d *Definition) (any, error) {
			if p := d.Parent(); p != nil {
				return p, nil
			}
			return nil, nil
		},
		Set: func(d *Definition, values map[string]any) error {
			switch v := values[KeyParent].(type) {
			case nil:
				return d.SetParent(nil)
			case *Definition:
				return d.SetParent(v)
			default:
				return fmt.Errorf("expected a container or null, got %T", v)
			}
		},
	}}
}

func (*container) bindings() []Binding {
	return []Binding{{
		Key:   KeyChildren,
		Types: []schema.Type{schema.Array},
		Get: func(d *Definition) (any, error) {
			return d.Children(), nil
		},
		Set: func(d *Definition, values map[string]any) error {
			list, err := toDefinitions(values[KeyChildren])
			if err != nil {
				return err
			}
			return d.SetChildren(list)
		},
	}}
}

// toDefinitions accepts []*Definition or a []any holding only definitions.
func toDefinitions(v any) ([]*Definition, error) {
	switch list := v.(type) {
	case []*Definition:
		return list, nil
	case []any:
		out := make([]*Definition, 0, len(list))
		for i, item := range list {
			child, ok := item.(*Definition)
			if !ok || child == nil {
				return nil, fmt.Errorf("element %d: expected a definition, got %T", i, item)
			}
			out = append(out, child)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of definitions, got %T", v)
	}
}
