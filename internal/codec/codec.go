package codec

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/apiconfig/internal/ctxlog"
)

// Format names a document syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

var (
	// ErrUnknownFormat is returned for a format name or file extension
	// the codec does not handle.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrDuplicateDefinition is returned when two documents declare the
	// same top-level definition.
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

var extensions = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
	".hcl":  FormatHCL,
}

// Extensions returns the file extensions recognized by FormatFromPath.
func Extensions() []string {
	return []string{".hcl", ".json", ".yaml", ".yml"}
}

// ParseFormat validates a format name such as "yaml".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatYAML, FormatJSON, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnknownFormat, path)
}

// Decode parses data into a normalized nested representation.
func Decode(ctx context.Context, format Format, data []byte) (map[string]any, error) {
	return decode(ctx, format, data, "<input>")
}

func decode(ctx context.Context, format Format, data []byte, filename string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding document.", "format", format, "file", filename, "bytes", len(data))

	var (
		nested map[string]any
		err    error
	)
	switch format {
	case FormatYAML:
		nested, err = decodeYAML(data)
	case FormatJSON:
		nested, err = decodeJSON(data)
	case FormatHCL:
		nested, err = decodeHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document %s: %w", format, filename, err)
	}

	logger.Debug("Decoded document.", "file", filename, "definitions", len(nested))
	return nested, nil
}

// Encode renders a nested representation in format.
func Encode(ctx context.Context, format Format, nested map[string]any) ([]byte, error) {
	ctxlog.FromContext(ctx).Debug("Encoding document.", "format", format, "definitions", len(nested))

	switch format {
	case FormatYAML:
		return encodeYAML(nested)
	case FormatJSON:
		return encodeJSON(nested)
	case FormatHCL:
		return encodeHCL(nested)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
