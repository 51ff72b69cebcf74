package codec_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/apiconfig/internal/codec"
	"github.com/vk/apiconfig/internal/testutil"
)

func scenario() map[string]any {
	leaf := testutil.Entry("l")
	leaf["hasDefaultValue"] = true
	leaf["defaultValue"] = []any{1, "two", 2.5}

	return map[string]any{
		"root": testutil.Entry("d",
			map[string]any{"zeta": leaf},
			map[string]any{"alpha": testutil.Container(nil)},
		),
		"other": testutil.Entry(nil),
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, format := range []codec.Format{codec.FormatYAML, codec.FormatJSON, codec.FormatHCL} {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			want := scenario()

			data, err := codec.Encode(ctx, format, want)
			require.NoError(t, err)

			got, err := codec.Decode(ctx, format, data)
			require.NoError(t, err, string(data))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\ndocument:\n%s", diff, data)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
root:
  description: d
  requiredState: false
  priority: 0
  hasDefaultValue: true
  defaultValue: 2.0
  children:
    zeta:
      description: null
      requiredState: true
      priority: 3
      hasDefaultValue: false
      defaultValue: ~
    alpha:
      description: a
      requiredState: false
      priority: -1
      hasDefaultValue: true
      defaultValue: 1.5
`
	got, err := codec.Decode(context.Background(), codec.FormatYAML, []byte(doc))
	require.NoError(t, err)

	want := map[string]any{
		"root": map[string]any{
			"description":     "d",
			"requiredState":   false,
			"priority":        0,
			"hasDefaultValue": true,
			"defaultValue":    2.0,
			"children": []any{
				map[string]any{"zeta": map[string]any{
					"description":     nil,
					"requiredState":   true,
					"priority":        3,
					"hasDefaultValue": false,
					"defaultValue":    nil,
				}},
				map[string]any{"alpha": map[string]any{
					"description":     "a",
					"requiredState":   false,
					"priority":        -1,
					"hasDefaultValue": true,
					"defaultValue":    1.5,
				}},
			},
		},
	}
	assert.Empty(t, cmp.Diff(want, got), testutil.Describe(got))
}

func TestDecodeJSON_ChildrenMapSortedByName(t *testing.T) {
	doc := `{"root": {"priority": 4, "children": {"zeta": {"priority": 1}, "alpha": {"priority": 2.25}}}}`

	got, err := codec.Decode(context.Background(), codec.FormatJSON, []byte(doc))
	require.NoError(t, err)

	want := map[string]any{
		"root": map[string]any{
			"priority": 4,
			"children": []any{
				map[string]any{"alpha": map[string]any{"priority": 2.25}},
				map[string]any{"zeta": map[string]any{"priority": 1}},
			},
		},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestDecode_ChildrenRewriteOnlyOnEntries(t *testing.T) {
	leaf := func(defaultValue any) map[string]any {
		rep := testutil.Entry(nil)
		rep["hasDefaultValue"] = true
		rep["defaultValue"] = defaultValue
		return rep
	}

	testCases := []struct {
		name   string
		format codec.Format
		doc    string
		want   map[string]any
	}{
		{
			name:   "json default value holding a children map",
			format: codec.FormatJSON,
			doc: `{"leaf": {"description": null, "requiredState": false, "priority": 0,
				"hasDefaultValue": true, "defaultValue": {"children": {"b": 2, "a": 1}}}}`,
			want: map[string]any{"leaf": leaf(map[string]any{"children": map[string]any{"a": 1, "b": 2}})},
		},
		{
			name:   "yaml default value holding a children map",
			format: codec.FormatYAML,
			doc: `
leaf:
  description: null
  requiredState: false
  priority: 0
  hasDefaultValue: true
  defaultValue:
    children:
      b: 2
      a: 1
`,
			want: map[string]any{"leaf": leaf(map[string]any{"children": map[string]any{"a": 1, "b": 2}})},
		},
		{
			name:   "json definitions named children",
			format: codec.FormatJSON,
			doc: `{
				"children": {"description": null, "requiredState": false, "priority": 0, "hasDefaultValue": false, "defaultValue": null},
				"root": {"description": null, "requiredState": false, "priority": 0, "hasDefaultValue": false, "defaultValue": null,
					"children": {"children": {"description": null, "requiredState": false, "priority": 0, "hasDefaultValue": false, "defaultValue": null}}}
			}`,
			want: map[string]any{
				"children": testutil.Entry(nil),
				"root":     testutil.Entry(nil, map[string]any{"children": testutil.Entry(nil)}),
			},
		},
		{
			name:   "yaml definitions named children",
			format: codec.FormatYAML,
			doc: `
children:
  description: null
  requiredState: false
  priority: 0
  hasDefaultValue: false
  defaultValue: null
root:
  description: null
  requiredState: false
  priority: 0
  hasDefaultValue: false
  defaultValue: null
  children:
    - children:
        description: null
        requiredState: false
        priority: 0
        hasDefaultValue: false
        defaultValue: null
`,
			want: map[string]any{
				"children": testutil.Entry(nil),
				"root":     testutil.Entry(nil, map[string]any{"children": testutil.Entry(nil)}),
			},
		},
		{
			name:   "yaml nested children mappings",
			format: codec.FormatYAML,
			doc: `
root:
  children:
    mid:
      children:
        zeta: {}
        alpha: {}
`,
			want: map[string]any{"root": map[string]any{
				"children": []any{
					map[string]any{"mid": map[string]any{
						"children": []any{
							map[string]any{"zeta": map[string]any{}},
							map[string]any{"alpha": map[string]any{}},
						},
					}},
				},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := codec.Decode(context.Background(), tc.format, []byte(tc.doc))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("decoded document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumbers_KeepTheirKind(t *testing.T) {
	nested := map[string]any{
		"root": map[string]any{
			"priority":     3,
			"defaultValue": map[string]any{"ratio": 1.0, "count": 1, "share": 0.5, "big": 1e20},
		},
	}

	for _, format := range []codec.Format{codec.FormatYAML, codec.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := codec.Encode(context.Background(), format, nested)
			require.NoError(t, err)

			got, err := codec.Decode(context.Background(), format, data)
			require.NoError(t, err)
			if diff := cmp.Diff(nested, got); diff != "" {
				t.Errorf("numbers changed kind (-want +got):\n%s\ndocument:\n%s", diff, data)
			}
		})
	}

	t.Run("json literals", func(t *testing.T) {
		got, err := codec.Decode(context.Background(), codec.FormatJSON, []byte(`{"root": {"a": 1, "b": 1.0, "c": 1e2}}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"root": map[string]any{"a": 1, "b": 1.0, "c": 100.0}}, got)
	})

	t.Run("hcl has a single number type", func(t *testing.T) {
		got, err := codec.Decode(context.Background(), codec.FormatHCL, []byte("definition \"root\" {\n  a = 1.0\n}\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"root": map[string]any{"a": 1}}, got)
	})
}

func TestDecodeHCL(t *testing.T) {
	doc := `
definition "root" {
  description     = "d"
  requiredState   = false
  priority        = 0
  hasDefaultValue = true
  defaultValue    = { retries = 3, mode = "fast" }

  children {
    definition "zeta" {
      description = null
      priority    = 2
    }
    definition "alpha" {
      priority = 1.5
    }
  }
}
`
	got, err := codec.Decode(context.Background(), codec.FormatHCL, []byte(doc))
	require.NoError(t, err)

	want := map[string]any{
		"root": map[string]any{
			"description":     "d",
			"requiredState":   false,
			"priority":        0,
			"hasDefaultValue": true,
			"defaultValue":    map[string]any{"retries": 3, "mode": "fast"},
			"children": []any{
				map[string]any{"zeta": map[string]any{"description": nil, "priority": 2}},
				map[string]any{"alpha": map[string]any{"priority": 1.5}},
			},
		},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		format codec.Format
		doc    string
	}{
		{name: "yaml top-level list", format: codec.FormatYAML, doc: "- a\n- b\n"},
		{name: "yaml syntax", format: codec.FormatYAML, doc: "root: [\n"},
		{name: "json syntax", format: codec.FormatJSON, doc: `{"root": `},
		{name: "json trailing data", format: codec.FormatJSON, doc: `{} {}`},
		{name: "json top-level string", format: codec.FormatJSON, doc: `"root"`},
		{name: "hcl syntax", format: codec.FormatHCL, doc: `definition "root" {`},
		{name: "hcl unknown block", format: codec.FormatHCL, doc: `step "root" {}`},
		{name: "hcl missing label", format: codec.FormatHCL, doc: `definition {}`},
		{name: "hcl top-level attribute", format: codec.FormatHCL, doc: `priority = 1`},
		{name: "hcl duplicate definition", format: codec.FormatHCL, doc: "definition \"a\" {}\ndefinition \"a\" {}\n"},
		{name: "hcl two children blocks", format: codec.FormatHCL, doc: "definition \"a\" {\n  children {}\n  children {}\n}\n"},
		{name: "hcl variable reference", format: codec.FormatHCL, doc: "definition \"a\" {\n  priority = var.p\n}\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(context.Background(), tc.format, []byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestDecode_EmptyDocuments(t *testing.T) {
	for _, format := range []codec.Format{codec.FormatYAML, codec.FormatJSON, codec.FormatHCL} {
		got, err := codec.Decode(context.Background(), format, nil)
		require.NoError(t, err, format)
		assert.Empty(t, got, format)
	}
}

func TestEncodeHCL_Layout(t *testing.T) {
	nested := map[string]any{
		"root": testutil.Entry("d", map[string]any{"leaf": testutil.Entry(nil)}),
	}

	data, err := codec.Encode(context.Background(), codec.FormatHCL, nested)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `definition "root" {`)
	assert.Contains(t, out, `description     = "d"`)
	assert.Contains(t, out, "children {")
	assert.Contains(t, out, `definition "leaf" {`)
	assert.Contains(t, out, "defaultValue    = null")
}

func TestFormats(t *testing.T) {
	testCases := []struct {
		path string
		want codec.Format
	}{
		{path: "defs/root.yaml", want: codec.FormatYAML},
		{path: "root.YML", want: codec.FormatYAML},
		{path: "root.json", want: codec.FormatJSON},
		{path: "root.hcl", want: codec.FormatHCL},
	}
	for _, tc := range testCases {
		got, err := codec.FormatFromPath(tc.path)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := codec.FormatFromPath("root.toml")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)

	f, err := codec.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatYAML, f)
	_, err = codec.ParseFormat("xml")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)

	_, err = codec.Encode(context.Background(), codec.Format("xml"), nil)
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)
}
