package app

import (
	"io"
	"log/slog"

	"github.com/vk/apiconfig/internal/definition"
	"github.com/vk/apiconfig/internal/factory"
	"github.com/vk/apiconfig/internal/visitor"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	arena   *definition.Arena
	visitor *visitor.Visitor
}

// NewApp is the constructor for the main application. Documents are written
// to outW and logs to logW, through an isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	arena := definition.NewArena(definition.WithLogger(logger))
	chain := factory.NewDefaultChain(arena)

	opts := []visitor.Option{visitor.WithLogger(logger)}
	if cfg.LegacyChildrenLookup {
		logger.Warn("Legacy children lookup enabled; sibling keys named children change how entries parse.")
		opts = append(opts, visitor.WithEnclosingChildrenLookup())
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		arena:   arena,
		visitor: visitor.New(chain, opts...),
	}
}

// Arena returns the arena holding parsed definitions. This is primarily for testing.
func (a *App) Arena() *definition.Arena {
	return a.arena
}
