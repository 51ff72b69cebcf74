package factory

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/vk/apiconfig/internal/definition"
)

// Chain tries its factories in order and delegates to the first one that
// supports a candidate. A Chain is itself a Factory, so chains nest.
type Chain struct {
	factories []Factory
	logger    *slog.Logger
}

// NewChain creates a chain from factories in the given order. Its logger
// discards output until WithLogger is called.
func NewChain(factories ...Factory) *Chain {
	return newChain(slog.New(slog.NewTextHandler(io.Discard, nil)), factories)
}

// NewDefaultChain returns the leaf factory followed by the container factory,
// both building into arena. The chain logs through the arena's logger.
func NewDefaultChain(arena *definition.Arena) *Chain {
	return newChain(arena.Logger(), []Factory{NewDefinitionFactory(arena), NewContainerFactory(arena)})
}

func newChain(logger *slog.Logger, factories []Factory) *Chain {
	c := &Chain{logger: logger}
	for _, f := range factories {
		c.Add(f)
	}
	return c
}

// WithLogger sets the logger used for later registration and dispatch
// messages.
func (c *Chain) WithLogger(logger *slog.Logger) *Chain {
	c.logger = logger
	return c
}

// Add appends f to the end of the chain.
func (c *Chain) Add(f Factory) *Chain {
	if f == nil {
		panic("factory: cannot add a nil factory to a chain")
	}
	c.logger.Debug("Registering definition factory.", "factory", fmt.Sprintf("%T", f), "position", len(c.factories))
	c.factories = append(c.factories, f)
	return c
}

// Factories returns the chain members in order.
func (c *Chain) Factories() []Factory {
	return slices.Clone(c.factories)
}

// Supports implements Factory.
func (c *Chain) Supports(rep map[string]any) bool {
	return c.find(rep) != nil
}

// NewInstance implements Factory. It fails with an
// *UnsupportedRepresentationError when no member supports rep.
func (c *Chain) NewInstance(rep map[string]any) (*definition.Definition, error) {
	f := c.find(rep)
	if f == nil {
		return nil, &UnsupportedRepresentationError{}
	}
	c.logger.Debug("Dispatching representation to factory.", "factory", fmt.Sprintf("%T", f), "name", rep[KeyName])
	return f.NewInstance(rep)
}

func (c *Chain) find(rep map[string]any) Factory {
	for _, f := range c.factories {
		if f.Supports(rep) {
			return f
		}
	}
	return nil
}
