package definition

import (
	"io"
	"log/slog"

	"github.com/vk/apiconfig/internal/schema"
)

// Handle identifies a definition inside its Arena. The zero Handle refers
// to no definition.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// Arena owns a set of definitions and the collaborators they share.
type Arena struct {
	nodes     []*Definition // nodes[h-1] holds handle h
	validator schema.Validator
	logger    *slog.Logger
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithValidator replaces the validator FromArray uses.
func WithValidator(v schema.Validator) ArenaOption {
	return func(a *Arena) {
		a.validator = v
	}
}

// WithLogger sets the logger for link changes. The default discards output.
func WithLogger(l *slog.Logger) ArenaOption {
	return func(a *Arena) {
		a.logger = l
	}
}

// NewArena creates an empty Arena.
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{
		validator: schema.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewDefinition creates a leaf definition.
func (a *Arena) NewDefinition(name string, opts ...Option) *Definition {
	return a.add(name, KindLeaf, opts)
}

// NewContainer creates a definition that can own children.
func (a *Arena) NewContainer(name string, opts ...Option) *Definition {
	return a.add(name, KindContainer, opts)
}

func (a *Arena) add(name string, kind Kind, opts []Option) *Definition {
	d := &Definition{
		arena:  a,
		handle: Handle(len(a.nodes) + 1),
		kind:   kind,
	}
	d.name = name
	if kind == KindContainer {
		d.children = newContainer()
	}
	for _, opt := range opts {
		opt(d)
	}

	a.nodes = append(a.nodes, d)
	a.logger.Debug("Created definition.", "name", name, "handle", d.handle, "kind", kind.String())
	return d
}

// Get returns the definition for h.
func (a *Arena) Get(h Handle) (*Definition, bool) {
	if h == NoHandle || int(h) > len(a.nodes) {
		return nil, false
	}
	return a.nodes[h-1], true
}

// node resolves a handle known to be valid.
func (a *Arena) node(h Handle) *Definition {
	return a.nodes[h-1]
}

// Len returns the number of definitions in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Roots returns the definitions without a parent, in creation order.
func (a *Arena) Roots() []*Definition {
	var roots []*Definition
	for _, d := range a.nodes {
		if d.parent == NoHandle {
			roots = append(roots, d)
		}
	}
	return roots
}

// Validator returns the validator shared by the arena's definitions.
func (a *Arena) Validator() schema.Validator {
	return a.validator
}

// Logger returns the logger shared by the arena's definitions.
func (a *Arena) Logger() *slog.Logger {
	return a.logger
}
