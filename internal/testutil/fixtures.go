package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// WriteFiles writes files, keyed by slash-separated relative path, into a
// fresh temporary directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// Entry builds the nested representation of one definition with the
// default attribute values. Passing children, even none, makes it a
// container entry.
func Entry(description any, children ...map[string]any) map[string]any {
	rep := map[string]any{
		"description":     description,
		"requiredState":   false,
		"priority":        0,
		"hasDefaultValue": false,
		"defaultValue":    nil,
	}
	if children != nil {
		list := make([]any, len(children))
		for i, c := range children {
			list[i] = c
		}
		rep["children"] = list
	}
	return rep
}

// Container is Entry for a container without children.
func Container(description any) map[string]any {
	return Entry(description, []map[string]any{}...)
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Describe renders v for failure messages.
func Describe(v any) string {
	return dumper.Sdump(v)
}
