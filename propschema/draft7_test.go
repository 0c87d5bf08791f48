package propschema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema"
)

func intPtr(i int) *int {
	return &i
}

func TestSchemaToDraft7(t *testing.T) {
	t.Parallel()

	def := any("md")

	tcs := map[string]struct {
		input *propschema.Schema
		want  *jsonschema.Schema
	}{
		"standard type": {
			input: &propschema.Schema{Type: "string", Description: "Size.", Enum: []any{"sm", "md"}},
			want:  &jsonschema.Schema{Type: "string", Description: "Size.", Enum: []any{"sm", "md"}},
		},
		"empty type": {
			input: &propschema.Schema{},
			want:  &jsonschema.Schema{},
		},
		"node type": {
			input: &propschema.Schema{Type: "node"},
			want:  &jsonschema.Schema{Extra: map[string]any{propschema.ExtType: "node"}},
		},
		"function": {
			input: &propschema.Schema{
				Type:   "func",
				Params: []string{"event"},
				Return: &propschema.Schema{Type: "void"},
			},
			want: &jsonschema.Schema{Extra: map[string]any{
				propschema.ExtType:   "func",
				propschema.ExtParams: []string{"event"},
				propschema.ExtReturn: &jsonschema.Schema{Extra: map[string]any{propschema.ExtType: "void"}},
			}},
		},
		"inclusive bounds": {
			input: &propschema.Schema{Type: "number", Minimum: ptr(0), Maximum: ptr(10)},
			want:  &jsonschema.Schema{Type: "number", Minimum: ptr(0), Maximum: ptr(10)},
		},
		"exclusive bounds": {
			input: &propschema.Schema{
				Type:             "number",
				Minimum:          ptr(0),
				Maximum:          ptr(10),
				ExclusiveMinimum: true,
				ExclusiveMaximum: true,
			},
			want: &jsonschema.Schema{Type: "number", ExclusiveMinimum: ptr(0), ExclusiveMaximum: ptr(10)},
		},
		"exclusive flag without limit": {
			input: &propschema.Schema{Type: "number", ExclusiveMinimum: true},
			want:  &jsonschema.Schema{Type: "number"},
		},
		"lengths and counts": {
			input: &propschema.Schema{
				Type:      "string",
				MinLength: ptr(1),
				MaxLength: ptr(2.5),
				MinItems:  ptr(-1),
				MaxItems:  ptr(3),
				Pattern:   "^a",
			},
			want: &jsonschema.Schema{Type: "string", MinLength: intPtr(1), MaxItems: intPtr(3), Pattern: "^a"},
		},
		"default": {
			input: &propschema.Schema{Type: "string", Default: &def},
			want:  &jsonschema.Schema{Type: "string", Default: json.RawMessage(`"md"`)},
		},
		"array": {
			input: &propschema.Schema{Type: "array", Items: &propschema.Schema{Type: "node"}, UniqueItems: true},
			want: &jsonschema.Schema{
				Type:        "array",
				Items:       &jsonschema.Schema{Extra: map[string]any{propschema.ExtType: "node"}},
				UniqueItems: true,
			},
		},
		"anyOf": {
			input: &propschema.Schema{AnyOf: []*propschema.Schema{{Type: "string"}, {Type: "func"}}},
			want: &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
				{Type: "string"},
				{Extra: map[string]any{propschema.ExtType: "func"}},
			}},
		},
		"object": {
			input: &propschema.Schema{
				Type: "object",
				Properties: map[string]*propschema.Schema{
					"b": {Type: "bool"},
					"a": {Type: "boolean"},
				},
				PropertyOrder: []string{"b", "a"},
				Required:      []string{"a"},
			},
			want: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"b": {Extra: map[string]any{propschema.ExtType: "bool"}},
					"a": {Type: "boolean"},
				},
				PropertyOrder: []string{"b", "a"},
				Required:      []string{"a"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.input.ToDraft7())
		})
	}
}

func TestSchemaToDraft7Nil(t *testing.T) {
	t.Parallel()

	var s *propschema.Schema

	assert.Nil(t, s.ToDraft7())
}

func TestDocumentToDraft7(t *testing.T) {
	t.Parallel()

	doc := &propschema.Document{
		Title:       "Button",
		Description: "Clickable.",
		Properties: map[string]*propschema.Schema{
			"size":    {Type: "string"},
			"onClick": {Type: "func", Params: []string{}},
		},
		PropertyOrder: []string{"size", "onClick"},
		Required:      []string{"size"},
	}

	got := doc.ToDraft7()
	assert.Equal(t, propschema.Draft7URI, got.Schema)
	assert.Equal(t, "Button", got.Title)
	assert.Equal(t, "Clickable.", got.Description)
	assert.Equal(t, "object", got.Type)
	assert.Equal(t, []string{"size", "onClick"}, got.PropertyOrder)
	assert.Equal(t, []string{"size"}, got.Required)
	require.Contains(t, got.Properties, "onClick")
	assert.Equal(t, "func", got.Properties["onClick"].Extra[propschema.ExtType])
	assert.Equal(t, []string{}, got.Properties["onClick"].Extra[propschema.ExtParams])

	out, err := json.Marshal(got)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, propschema.Draft7URI, m["$schema"])
	assert.Equal(t, map[string]any{"type": "string"}, m["properties"].(map[string]any)["size"])
	assert.Equal(t,
		map[string]any{"x-type": "func", "x-params": []any{}},
		m["properties"].(map[string]any)["onClick"])
}
