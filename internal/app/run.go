package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/apiconfig/internal/codec"
	"github.com/vk/apiconfig/internal/ctxlog"
	"github.com/vk/apiconfig/internal/definition"
	"github.com/vk/apiconfig/internal/nodeid"
)

// Run loads the configured documents, parses them into a definition tree and
// writes the dumped tree, or the selected part of it, to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	nested, inputFormat, err := a.load(ctx)
	if err != nil {
		return err
	}

	roots, err := a.visitor.ParseTree(nested)
	if err != nil {
		return fmt.Errorf("failed to parse definitions: %w", err)
	}
	a.logger.Info("Definitions parsed.", "roots", len(roots), "definitions", a.arena.Len())

	if a.config.Select != "" {
		addr, err := nodeid.Parse(a.config.Select)
		if err != nil {
			return fmt.Errorf("invalid select address: %w", err)
		}
		selected, err := definition.Lookup(roots, addr)
		if err != nil {
			return err
		}
		a.logger.Debug("Selected definition.", "address", addr.String(), "definition", selected.String())
		roots = []*definition.Definition{selected}
	}

	dumped := make(map[string]any, len(roots))
	for _, root := range roots {
		tree, err := a.visitor.DumpTree(root)
		if err != nil {
			return fmt.Errorf("failed to dump %s: %w", root, err)
		}
		for name, rep := range tree {
			if _, dup := dumped[name]; dup {
				return fmt.Errorf("definition %q: %w", name, codec.ErrDuplicateDefinition)
			}
			dumped[name] = rep
		}
	}

	outputFormat := inputFormat
	if a.config.Format != "" {
		if outputFormat, err = codec.ParseFormat(a.config.Format); err != nil {
			return err
		}
	}

	data, err := codec.Encode(ctx, outputFormat, dumped)
	if err != nil {
		return fmt.Errorf("failed to encode definitions: %w", err)
	}
	if _, err := a.outW.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// load reads the input path. Directories are merged and default to YAML
// output.
func (a *App) load(ctx context.Context) (map[string]any, codec.Format, error) {
	info, err := os.Stat(a.config.InputPath)
	if err != nil {
		return nil, "", fmt.Errorf("error accessing path %s: %w", a.config.InputPath, err)
	}

	if info.IsDir() {
		nested, err := codec.LoadDir(ctx, a.config.InputPath)
		return nested, codec.FormatYAML, err
	}

	format, err := codec.FormatFromPath(a.config.InputPath)
	if err != nil {
		return nil, "", err
	}
	nested, err := codec.LoadFileAs(ctx, format, a.config.InputPath)
	return nested, format, err
}
