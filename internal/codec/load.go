package codec

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/apiconfig/internal/ctxlog"
	"github.com/vk/apiconfig/internal/fsutil"
)

// LoadFile reads and decodes a single document, picking the format from
// its extension.
func LoadFile(ctx context.Context, path string) (map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return LoadFileAs(ctx, format, path)
}

// LoadFileAs reads and decodes a single document in the given format.
func LoadFileAs(ctx context.Context, format Format, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}
	return decode(ctx, format, data, path)
}

// LoadDir decodes every definition document under root and merges their
// top-level definitions. A name declared by two documents is an error.
func LoadDir(ctx context.Context, root string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading definition documents.", "path", root)

	files, err := fsutil.FindFilesByExtension(root, Extensions()...)
	if err != nil {
		logger.Error("Failed to walk definitions directory.", "path", root, "error", err)
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No definition documents found in path.", "path", root)
		return map[string]any{}, nil
	}

	merged := make(map[string]any)
	origin := make(map[string]string)
	for _, file := range files {
		nested, err := LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		for name, rep := range nested {
			if prev, dup := origin[name]; dup {
				return nil, fmt.Errorf("definition %q in %s already declared in %s: %w", name, file, prev, ErrDuplicateDefinition)
			}
			origin[name] = file
			merged[name] = rep
		}
	}

	logger.Info("Definition documents loaded.", "files", len(files), "definitions", len(merged))
	return merged, nil
}
