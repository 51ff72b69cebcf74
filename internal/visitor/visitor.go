package visitor

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/vk/apiconfig/internal/definition"
	"github.com/vk/apiconfig/internal/factory"
)

// Visitor dumps and parses definition trees.
type Visitor struct {
	factory factory.Factory
	logger  *slog.Logger

	// enclosingChildren selects the legacy children lookup on the
	// enclosing map instead of the entry being parsed.
	enclosingChildren bool
}

// Option configures a Visitor.
type Option func(*Visitor)

// WithLogger sets the logger for per-node debug messages. The default
// discards output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Visitor) {
		v.logger = l
	}
}

// WithEnclosingChildrenLookup decides whether an entry is a container by
// looking for a "children" key in the map that encloses the entry, not in
// the entry itself. A sibling named "children" then turns every entry at
// that level into a container, and real containers lose their children.
// This reproduces the behavior of existing fixture producers.
func WithEnclosingChildrenLookup() Option {
	return func(v *Visitor) {
		v.enclosingChildren = true
	}
}

// New creates a Visitor instantiating definitions through f.
func New(f factory.Factory, opts ...Option) *Visitor {
	v := &Visitor{
		factory: f,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DumpTree returns the nested representation of d and its descendants,
// keyed by d's name.
func (v *Visitor) DumpTree(d *definition.Definition) (map[string]any, error) {
	rep, err := d.ToArray()
	if err != nil {
		return nil, err
	}
	delete(rep, definition.KeyParent)

	if d.IsContainer() {
		children := make([]any, 0, len(d.Children()))
		for _, child := range d.Children() {
			dumped, err := v.DumpTree(child)
			if err != nil {
				return nil, err
			}
			children = append(children, dumped)
		}
		rep[definition.KeyChildren] = children
	}

	v.logger.Debug("Dumped definition.", "name", d.Name(), "kind", d.Kind().String())
	return map[string]any{d.Name(): rep}, nil
}

// ParseTree builds the definitions described by nested and returns the
// top-level ones in key order. Each entry is checked against the factory
// before its children are parsed.
func (v *Visitor) ParseTree(nested map[string]any) ([]*definition.Definition, error) {
	var parsed []*definition.Definition
	for _, name := range slices.Sorted(maps.Keys(nested)) {
		entry, ok := nested[name].(map[string]any)
		if !ok || hasReservedKey(entry) {
			return nil, &factory.UnsupportedRepresentationError{Key: name}
		}
		if !v.factory.Supports(candidate(name, entry)) {
			return nil, &factory.UnsupportedRepresentationError{Key: name}
		}

		lookup := entry
		if v.enclosingChildren {
			lookup = nested
		}

		var (
			d   *definition.Definition
			err error
		)
		if _, ok := lookup[definition.KeyChildren]; ok {
			d, err = v.processContainer(name, entry)
		} else {
			d, err = v.processDefinition(name, entry)
		}
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, d)
	}
	return parsed, nil
}

func (v *Visitor) processContainer(name string, entry map[string]any) (*definition.Definition, error) {
	children, err := v.parseChildren(name, entry[definition.KeyChildren])
	if err != nil {
		return nil, err
	}

	rep := maps.Clone(entry)
	rep[definition.KeyChildren] = children
	return v.processDefinition(name, rep)
}

func (v *Visitor) processDefinition(name string, rep map[string]any) (*definition.Definition, error) {
	d, err := v.factory.NewInstance(candidate(name, rep))
	if err != nil {
		return nil, fmt.Errorf("cannot instantiate %q: %w", name, err)
	}

	values := maps.Clone(rep)
	values[definition.KeyParent] = nil
	if _, err := d.FromArray(values); err != nil {
		return nil, err
	}

	v.logger.Debug("Parsed definition.", "name", name, "kind", d.Kind().String(), "children", len(d.Children()))
	return d, nil
}

// parseChildren materializes a children value. Lists keep their order and
// may hold multi-key maps; a map is parsed in key order.
func (v *Visitor) parseChildren(name string, raw any) ([]*definition.Definition, error) {
	switch list := raw.(type) {
	case nil:
		return []*definition.Definition{}, nil
	case []*definition.Definition:
		return list, nil
	case map[string]any:
		return v.ParseTree(list)
	case []map[string]any:
		items := make([]any, len(list))
		for i, item := range list {
			items[i] = item
		}
		return v.parseChildren(name, items)
	case []any:
		children := make([]*definition.Definition, 0, len(list))
		for i, item := range list {
			nested, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("children of %q: element %d is %T, not a map: %w",
					name, i, item, factory.ErrUnsupportedRepresentation)
			}
			parsed, err := v.ParseTree(nested)
			if err != nil {
				return nil, err
			}
			children = append(children, parsed...)
		}
		return children, nil
	default:
		return nil, fmt.Errorf("children of %q must be a list or a map, got %T: %w",
			name, raw, factory.ErrUnsupportedRepresentation)
	}
}

// hasReservedKey reports whether entry carries a key the candidate sets
// itself. Such entries are rejected before anything is instantiated.
func hasReservedKey(entry map[string]any) bool {
	_, hasName := entry[factory.KeyName]
	_, hasParent := entry[definition.KeyParent]
	return hasName || hasParent
}

// candidate is the factory view of an entry: the entry keys plus its name
// and an empty parent.
func candidate(name string, entry map[string]any) map[string]any {
	c := maps.Clone(entry)
	if c == nil {
		c = make(map[string]any, 2)
	}
	c[factory.KeyName] = name
	c[definition.KeyParent] = nil
	return c
}
