package propschema

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Schema is the JSON-Schema-shaped description of one prop.
//
// It is a superset of Draft 7 for component props: Type may be "func" or
// "node", function props carry Params and Return, and ExclusiveMinimum and
// ExclusiveMaximum are Draft 4 style flags qualifying Minimum and Maximum.
// Use [Schema.ToDraft7] for a standard schema.
//
// Schemas encode with keys in a fixed order and Properties in PropertyOrder.
type Schema struct {
	Items      *Schema
	Return     *Schema
	Default    *any
	Properties map[string]*Schema
	Minimum    *float64
	Maximum    *float64
	MinLength  *float64
	MaxLength  *float64
	MinItems   *float64
	MaxItems   *float64

	Type        string
	Description string
	Format      string
	Pattern     string

	Enum          []any
	AnyOf         []*Schema
	PropertyOrder []string
	Required      []string
	Params        []string

	ExclusiveMinimum bool
	ExclusiveMaximum bool
	UniqueItems      bool
}

// Document is the schema of one component's props.
type Document struct {
	Properties    map[string]*Schema
	Title         string
	Description   string
	PropertyOrder []string
	Required      []string
}

// field is one encoded key.
type field struct {
	value any
	key   string
}

// fields returns the keys of s in encoding order, omitting unset ones.
//
//nolint:cyclop // one branch per optional key
func (s *Schema) fields() []field {
	var fs []field

	add := func(key string, value any) {
		fs = append(fs, field{key: key, value: value})
	}

	if s.Type != "" {
		add("type", s.Type)
	}

	if s.Description != "" {
		add("description", s.Description)
	}

	if s.Format != "" {
		add("format", s.Format)
	}

	if s.Enum != nil {
		add("enum", s.Enum)
	}

	if s.AnyOf != nil {
		add("anyOf", s.AnyOf)
	}

	if s.Items != nil {
		add("items", s.Items)
	}

	if s.Properties != nil {
		add("properties", orderedProperties(s.Properties, s.PropertyOrder))
	}

	if len(s.Required) > 0 {
		add("required", s.Required)
	}

	if s.Default != nil {
		add("default", *s.Default)
	}

	if s.Params != nil {
		add("params", s.Params)
	}

	if s.Return != nil {
		add("return", s.Return)
	}

	if s.Minimum != nil {
		add("minimum", *s.Minimum)
	}

	if s.Maximum != nil {
		add("maximum", *s.Maximum)
	}

	if s.ExclusiveMinimum {
		add("exclusiveMinimum", true)
	}

	if s.ExclusiveMaximum {
		add("exclusiveMaximum", true)
	}

	if s.MinLength != nil {
		add("minLength", *s.MinLength)
	}

	if s.MaxLength != nil {
		add("maxLength", *s.MaxLength)
	}

	if s.Pattern != "" {
		add("pattern", s.Pattern)
	}

	if s.MinItems != nil {
		add("minItems", *s.MinItems)
	}

	if s.MaxItems != nil {
		add("maxItems", *s.MaxItems)
	}

	if s.UniqueItems {
		add("uniqueItems", true)
	}

	return fs
}

func (d *Document) fields() []field {
	fs := []field{
		{key: "title", value: d.Title},
		{key: "type", value: typeObject},
	}

	if d.Description != "" {
		fs = append(fs, field{key: "description", value: d.Description})
	}

	props := d.Properties
	if props == nil {
		props = map[string]*Schema{}
	}

	fs = append(fs, field{key: "properties", value: orderedProperties(props, d.PropertyOrder)})

	if len(d.Required) > 0 {
		fs = append(fs, field{key: "required", value: d.Required})
	}

	return fs
}

// MarshalJSON implements [json.Marshaler].
func (s *Schema) MarshalJSON() ([]byte, error) {
	return marshalFields(s.fields())
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (s *Schema) MarshalYAML() (any, error) {
	return yamlFields(s.fields()), nil
}

// MarshalJSON implements [json.Marshaler].
func (d *Document) MarshalJSON() ([]byte, error) {
	return marshalFields(d.fields())
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (d *Document) MarshalYAML() (any, error) {
	return yamlFields(d.fields()), nil
}

// properties is a property map that encodes in declaration order.
type properties struct {
	m     map[string]*Schema
	order []string
}

// orderedProperties lists keys in order first, then any keys missing from
// order in the map's iteration order.
func orderedProperties(m map[string]*Schema, order []string) properties {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))

	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	for k := range m {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	return properties{m: m, order: keys}
}

func (p properties) fields() []field {
	fs := make([]field, 0, len(p.order))
	for _, k := range p.order {
		fs = append(fs, field{key: k, value: p.m[k]})
	}

	return fs
}

func (p properties) MarshalJSON() ([]byte, error) {
	return marshalFields(p.fields())
}

func (p properties) MarshalYAML() (any, error) {
	return yamlFields(p.fields()), nil
}

func marshalFields(fs []field) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func yamlFields(fs []field) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(fs))
	for _, f := range fs {
		out = append(out, yaml.MapItem{Key: f.key, Value: f.value})
	}

	return out
}
