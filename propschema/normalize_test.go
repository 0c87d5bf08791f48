package propschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema"
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/jsdoc"
	"github.com/xiaoshuangLi/react-docgen-props-schema/stringtest"
)

// loadProp loads a single-prop component and returns its descriptor.
func loadProp(t *testing.T, prop string) *propschema.PropDescriptor {
	t.Helper()

	cs, err := propschema.Load([]byte(`{"displayName": "C", "props": {"p": ` + prop + `}}`))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	require.Len(t, cs[0].Props, 1)

	return cs[0].Props[0].Descriptor
}

func TestNormalizeTyped(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want *propschema.Node
		prop string
	}{
		"primitive": {
			prop: `{"tsType": {"name": "string"}, "description": "label"}`,
			want: &propschema.Node{
				Kind:       propschema.KindPrimitive,
				Name:       "string",
				Annotation: jsdoc.Annotation{Description: "label"},
			},
		},
		"flow wins over ts": {
			prop: `{"flowType": {"name": "number"}, "tsType": {"name": "string"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "number"},
		},
		"renderable content": {
			prop: `{"tsType": {"name": "ReactNode", "raw": "React.ReactNode"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "node"},
		},
		"unknown becomes any": {
			prop: `{"tsType": {"name": "unknown"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "any"},
		},
		"union of literals": {
			prop: stringtest.Input(`
				{"tsType": {"name": "union", "raw": "'a' | 'b'", "elements": [
				  {"name": "literal", "value": "'a'"},
				  {"name": "literal", "value": "'b'"}
				]}}
			`),
			want: &propschema.Node{
				Kind: propschema.KindUnion,
				Elements: []*propschema.Node{
					{Kind: propschema.KindLiteral, LiteralExpr: `'a'`},
					{Kind: propschema.KindLiteral, LiteralExpr: `'b'`},
				},
			},
		},
		"array": {
			prop: `{"tsType": {"name": "Array", "elements": [{"name": "string"}], "raw": "string[]"}}`,
			want: &propschema.Node{
				Kind:     propschema.KindTupleOrArray,
				Elements: []*propschema.Node{{Kind: propschema.KindPrimitive, Name: "string"}},
			},
		},
		"tuple": {
			prop: `{"tsType": {"name": "tuple", "elements": [{"name": "string"}, {"name": "number"}]}}`,
			want: &propschema.Node{
				Kind: propschema.KindTupleOrArray,
				Elements: []*propschema.Node{
					{Kind: propschema.KindPrimitive, Name: "string"},
					{Kind: propschema.KindPrimitive, Name: "number"},
				},
			},
		},
		"object signature": {
			prop: stringtest.Input(`
				{"tsType": {"name": "signature", "type": "object", "signature": {"properties": [
				  {"key": "b", "value": {"name": "string", "required": true}},
				  {"key": "a", "value": {"name": "boolean", "required": false}},
				  {"key": {"name": "string"}, "value": {"name": "number"}}
				]}}}
			`),
			want: &propschema.Node{
				Kind: propschema.KindObject,
				Properties: []propschema.Property{
					{Key: "b", Node: &propschema.Node{Kind: propschema.KindPrimitive, Name: "string"}, Required: true},
					{Key: "a", Node: &propschema.Node{Kind: propschema.KindPrimitive, Name: "boolean"}},
				},
			},
		},
		"plain object": {
			prop: `{"tsType": {"name": "object"}}`,
			want: &propschema.Node{Kind: propschema.KindObject},
		},
		"function signature": {
			prop: stringtest.Input(`
				{"tsType": {"name": "signature", "type": "function", "raw": "(value1, value2) => ReactNode",
				  "signature": {
				    "arguments": [{"name": "value1", "type": {"name": "any"}}, {"name": "value2"}],
				    "return": {"name": "ReactNode"}
				  }}}
			`),
			want: &propschema.Node{
				Kind: propschema.KindFunction,
				Function: &propschema.FunctionSignature{
					Params: []string{"value1", "value2"},
					Return: "node",
				},
			},
		},
		"literal": {
			prop: `{"tsType": {"name": "literal", "value": "42"}}`,
			want: &propschema.Node{Kind: propschema.KindLiteral, LiteralExpr: "42"},
		},
		"bare signature entry": {
			prop: `{"name": "boolean", "required": true}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "boolean"},
		},
		"default and tags": {
			prop: stringtest.Input(`
				{"tsType": {"name": "number"},
				 "description": "size\n@minimum 0",
				 "defaultValue": {"value": "1", "computed": false}}
			`),
			want: &propschema.Node{
				Kind:       propschema.KindPrimitive,
				Name:       "number",
				Default:    &propschema.DefaultValue{Expr: "1"},
				Annotation: jsdoc.Annotation{Description: "size", Minimum: ptr(0)},
			},
		},
		"decoded default": {
			prop: `{"tsType": {"name": "object"}, "defaultValue": {"value": {"a": [1]}}}`,
			want: &propschema.Node{
				Kind:    propschema.KindObject,
				Default: propschema.ComputedDefault(map[string]any{"a": []any{float64(1)}}),
			},
		},
		"no type": {
			prop: `{"description": "untyped"}`,
			want: &propschema.Node{
				Kind:       propschema.KindPrimitive,
				Annotation: jsdoc.Annotation{Description: "untyped"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := propschema.Normalize(loadProp(t, tc.prop))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePropTypes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want *propschema.Node
		prop string
	}{
		"bool": {
			prop: `{"type": {"name": "bool"}, "required": false, "description": "flag"}`,
			want: &propschema.Node{
				Kind:       propschema.KindPrimitive,
				Name:       "bool",
				Annotation: jsdoc.Annotation{Description: "flag"},
			},
		},
		"oneOf": {
			prop: `{"type": {"name": "enum", "value": [{"value": "'1'", "computed": false}, {"value": "'2'", "computed": false}]}}`,
			want: &propschema.Node{
				Kind: propschema.KindUnion,
				Elements: []*propschema.Node{
					{Kind: propschema.KindLiteral, LiteralExpr: `'1'`},
					{Kind: propschema.KindLiteral, LiteralExpr: `'2'`},
				},
			},
		},
		"oneOf unresolved": {
			prop: `{"type": {"name": "enum", "computed": true, "value": "Object.keys(SIZES)"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "string"},
		},
		"oneOfType": {
			prop: `{"type": {"name": "union", "value": [{"name": "string"}, {"name": "number"}]}}`,
			want: &propschema.Node{
				Kind: propschema.KindUnion,
				Elements: []*propschema.Node{
					{Kind: propschema.KindPrimitive, Name: "string"},
					{Kind: propschema.KindPrimitive, Name: "number"},
				},
			},
		},
		"oneOfType unresolved": {
			prop: `{"type": {"name": "union", "computed": true, "value": "types"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "any"},
		},
		"arrayOf": {
			prop: `{"type": {"name": "arrayOf", "value": {"name": "number"}}}`,
			want: &propschema.Node{
				Kind:     propschema.KindTupleOrArray,
				Elements: []*propschema.Node{{Kind: propschema.KindPrimitive, Name: "number"}},
			},
		},
		"shape": {
			prop: stringtest.Input(`
				{"type": {"name": "shape", "value": {
				  "string": {"name": "string", "required": true},
				  "number": {"name": "number", "description": "count\n@minimum 1", "required": false}
				}}}
			`),
			want: &propschema.Node{
				Kind: propschema.KindObject,
				Properties: []propschema.Property{
					{
						Key:      "string",
						Node:     &propschema.Node{Kind: propschema.KindPrimitive, Name: "string"},
						Required: true,
					},
					{
						Key: "number",
						Node: &propschema.Node{
							Kind:       propschema.KindPrimitive,
							Name:       "number",
							Annotation: jsdoc.Annotation{Description: "count", Minimum: ptr(1)},
						},
					},
				},
			},
		},
		"exact": {
			prop: `{"type": {"name": "exact", "value": {"a": {"name": "bool"}}}}`,
			want: &propschema.Node{
				Kind: propschema.KindObject,
				Properties: []propschema.Property{
					{Key: "a", Node: &propschema.Node{Kind: propschema.KindPrimitive, Name: "bool"}},
				},
			},
		},
		"objectOf": {
			prop: `{"type": {"name": "objectOf", "value": {"name": "number"}}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "object"},
		},
		"func": {
			prop: `{"type": {"name": "func"}, "description": "@param value\n@return node"}`,
			want: &propschema.Node{
				Kind:       propschema.KindFunction,
				Annotation: jsdoc.Annotation{Params: []string{"value"}, Return: "node"},
			},
		},
		"element": {
			prop: `{"type": {"name": "element"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "node"},
		},
		"instanceOf keeps its name": {
			prop: `{"type": {"name": "instanceOf", "value": "Date"}}`,
			want: &propschema.Node{Kind: propschema.KindPrimitive, Name: "instanceOf"},
		},
		"type description fills prop description": {
			prop: `{"type": {"name": "string", "description": "from type"}}`,
			want: &propschema.Node{
				Kind:       propschema.KindPrimitive,
				Name:       "string",
				Annotation: jsdoc.Annotation{Description: "from type"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := propschema.Normalize(loadProp(t, tc.prop))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, propschema.Normalize(nil))
	assert.Equal(t, &propschema.Node{Kind: propschema.KindPrimitive}, propschema.NormalizeType(nil))
	assert.Equal(t, &propschema.Node{Kind: propschema.KindPrimitive}, propschema.NormalizePropType(nil))
}
