package propschema

import (
	"math"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// Draft7URI is the $schema value of exported documents.
const Draft7URI = "http://json-schema.org/draft-07/schema#"

// Extension keywords carrying the parts of a [Schema] that Draft 7 has no
// keyword for.
const (
	ExtType   = "x-type"
	ExtParams = "x-params"
	ExtReturn = "x-return"
)

// draft7Types are the type names Draft 7 defines.
var draft7Types = map[string]bool{
	"null":    true,
	"boolean": true,
	"object":  true,
	"array":   true,
	"number":  true,
	"integer": true,
	"string":  true,
}

// ToDraft7 exports d as a standard Draft 7 schema. See [Schema.ToDraft7]
// for how component-specific keys are carried.
func (d *Document) ToDraft7() *jsonschema.Schema {
	root := &jsonschema.Schema{
		Schema:      Draft7URI,
		Title:       d.Title,
		Description: d.Description,
		Type:        typeObject,
		Properties:  make(map[string]*jsonschema.Schema, len(d.Properties)),
		Required:    slices.Clone(d.Required),
	}

	for _, key := range orderedProperties(d.Properties, d.PropertyOrder).order {
		root.Properties[key] = d.Properties[key].ToDraft7()
		root.PropertyOrder = append(root.PropertyOrder, key)
	}

	return root
}

// ToDraft7 exports s as a standard Draft 7 schema.
//
// Types Draft 7 does not define ("func", "node", and raw docgen names)
// move to the "x-type" extension, and function params and return move to
// "x-params" and "x-return". Flag-style exclusive bounds become the
// numeric exclusiveMinimum and exclusiveMaximum keywords. Length and item
// counts that are not non-negative integers are dropped.
//
//nolint:cyclop // one branch per keyword
func (s *Schema) ToDraft7() *jsonschema.Schema {
	if s == nil {
		return nil
	}

	out := &jsonschema.Schema{
		Description: s.Description,
		Format:      s.Format,
		Pattern:     s.Pattern,
		Enum:        slices.Clone(s.Enum),
		Required:    slices.Clone(s.Required),
		UniqueItems: s.UniqueItems,
		Items:       s.Items.ToDraft7(),
		MinLength:   toIntPtr(s.MinLength),
		MaxLength:   toIntPtr(s.MaxLength),
		MinItems:    toIntPtr(s.MinItems),
		MaxItems:    toIntPtr(s.MaxItems),
	}

	switch {
	case s.Type == "":
	case draft7Types[s.Type]:
		out.Type = s.Type
	default:
		setExtra(out, ExtType, s.Type)
	}

	for _, b := range s.AnyOf {
		out.AnyOf = append(out.AnyOf, b.ToDraft7())
	}

	if s.Properties != nil {
		out.Properties = make(map[string]*jsonschema.Schema, len(s.Properties))

		for _, key := range orderedProperties(s.Properties, s.PropertyOrder).order {
			out.Properties[key] = s.Properties[key].ToDraft7()
			out.PropertyOrder = append(out.PropertyOrder, key)
		}
	}

	if s.Default != nil {
		out.Default = rawDefault(*s.Default)
	}

	if s.Params != nil {
		setExtra(out, ExtParams, slices.Clone(s.Params))
	}

	if s.Return != nil {
		setExtra(out, ExtReturn, s.Return.ToDraft7())
	}

	out.Minimum, out.ExclusiveMinimum = bound(s.Minimum, s.ExclusiveMinimum)
	out.Maximum, out.ExclusiveMaximum = bound(s.Maximum, s.ExclusiveMaximum)

	return out
}

// bound splits a limit into its inclusive or exclusive keyword. An
// exclusive flag without a limit carries no constraint.
func bound(limit *float64, exclusive bool) (*float64, *float64) {
	if limit == nil {
		return nil, nil
	}

	v := *limit
	if exclusive {
		return nil, &v
	}

	return &v, nil
}

func setExtra(s *jsonschema.Schema, key string, value any) {
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}

	s.Extra[key] = value
}

func toIntPtr(f *float64) *int {
	if f == nil || *f < 0 || *f != math.Trunc(*f) || *f > math.MaxInt32 {
		return nil
	}

	i := int(*f)

	return &i
}
