package propschema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"
)

// Component is one component as described by react-docgen.
type Component struct {
	DisplayName string
	// Description is the raw component doc comment.
	Description string
	// Props holds the component's props in declaration order.
	Props []Prop
}

// Prop is one named entry of a component's props mapping. Descriptor is
// nil when the docgen entry was empty.
type Prop struct {
	Descriptor *PropDescriptor
	Name       string
}

// PropDescriptor is the docgen description of a single prop.
//
// Typed components carry their type in TSType or FlowType. Components
// declaring propTypes carry it in Type instead.
type PropDescriptor struct {
	TSType       *TypeDescriptor
	FlowType     *TypeDescriptor
	Type         *TypeDescriptor
	DefaultValue *DefaultDescriptor
	// Description is the raw prop doc comment.
	Description string
	Required    bool
}

// DefaultDescriptor is a docgen defaultValue entry. Value is usually the
// source text of the default expression.
type DefaultDescriptor struct {
	Value any
	// Computed is docgen's flag for defaults that reference other bindings.
	Computed bool
}

// TypeDescriptor is one docgen type entry, in either the TypeScript/Flow
// form ({name, type, raw, elements, signature}) or the propTypes form
// ({name, value}).
type TypeDescriptor struct {
	Signature *SignatureDescriptor
	// Of is the element type of propTypes arrayOf, objectOf and instanceOf.
	Of *TypeDescriptor
	// Name is the docgen type name.
	Name string
	// Type refines Name for signatures: "object" or "function".
	Type string
	Raw  string
	// Value is the textual value: the source of a literal type, or the
	// expression behind a propTypes enum, shape or custom validator that
	// docgen could not resolve.
	Value       string
	Description string
	// Elements holds TypeScript/Flow union and array members, and
	// propTypes oneOfType branches.
	Elements []*TypeDescriptor
	// Values holds the propTypes oneOf entries.
	Values []EnumValue
	// Fields holds the propTypes shape or exact members in order.
	Fields   []Field
	Required bool
	Computed bool
}

// EnumValue is one propTypes oneOf entry. Value is source text.
type EnumValue struct {
	Value    string
	Computed bool
}

// Field is one member of a propTypes shape.
type Field struct {
	Type *TypeDescriptor
	Key  string
}

// SignatureDescriptor is the body of a TypeScript/Flow object or function
// signature.
type SignatureDescriptor struct {
	Return     *TypeDescriptor
	Properties []SignatureProperty
	Arguments  []Argument
}

// SignatureProperty is one member of an object signature. Index
// signatures have a KeyType instead of a Key.
type SignatureProperty struct {
	Value    *TypeDescriptor
	KeyType  *TypeDescriptor
	Key      string
	Required bool
}

// Argument is one parameter of a function signature.
type Argument struct {
	Type *TypeDescriptor
	Name string
	Rest bool
}

// object is a decoded mapping with its keys in source order.
type object yaml.MapSlice

func asObject(v any) (object, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		return object(m), true
	case map[string]any:
		// Go maps carry no order; fall back to sorted keys.
		o := make(object, 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			o = append(o, yaml.MapItem{Key: k, Value: m[k]})
		}

		return o, true
	}

	return nil, false
}

func (o object) get(key string) (any, bool) {
	for _, item := range o {
		if keyString(item.Key) == key {
			return item.Value, true
		}
	}

	return nil, false
}

func (o object) has(key string) bool {
	_, ok := o.get(key)

	return ok
}

func (o object) str(key string) string {
	v, _ := o.get(key)
	s, _ := v.(string)

	return s
}

func (o object) boolean(key string) bool {
	v, _ := o.get(key)
	b, _ := v.(bool)

	return b
}

func (o object) obj(key string) (object, bool) {
	v, ok := o.get(key)
	if !ok {
		return nil, false
	}

	return asObject(v)
}

func (o object) list(key string) ([]any, bool) {
	v, _ := o.get(key)
	l, ok := v.([]any)

	return l, ok
}

// plainYAML replaces the ordered mappings produced by the decoder with
// map[string]any, recursively.
func plainYAML(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(x))
		for _, item := range x {
			m[keyString(item.Key)] = plainYAML(item.Value)
		}

		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plainYAML(e)
		}

		return out
	}

	return v
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprint(k)
}

func decodeComponent(o object) Component {
	c := Component{
		DisplayName: o.str("displayName"),
		Description: o.str("description"),
	}

	props, ok := o.obj("props")
	if !ok {
		return c
	}

	c.Props = make([]Prop, 0, len(props))

	for _, item := range props {
		p := Prop{Name: keyString(item.Key)}

		if po, ok := asObject(item.Value); ok {
			p.Descriptor = decodePropDescriptor(po)
		}

		c.Props = append(c.Props, p)
	}

	return c
}

func decodePropDescriptor(o object) *PropDescriptor {
	p := &PropDescriptor{
		Description: o.str("description"),
		Required:    o.boolean("required"),
	}

	if t, ok := o.obj("tsType"); ok {
		p.TSType = decodeType(t)
	}

	if t, ok := o.obj("flowType"); ok {
		p.FlowType = decodeType(t)
	}

	if t, ok := o.obj("type"); ok {
		p.Type = decodeType(t)
	}

	// A bare signature entry ({name, elements, signature}) is the shape
	// docgen uses inside signatures; accept it at the top level too.
	if p.TSType == nil && p.FlowType == nil && p.Type == nil && o.has("name") {
		p.TSType = decodeType(o)
	}

	if d, ok := o.obj("defaultValue"); ok {
		v, _ := d.get("value")
		p.DefaultValue = &DefaultDescriptor{
			Value:    plainYAML(v),
			Computed: d.boolean("computed"),
		}
	}

	return p
}

//nolint:cyclop // one branch per polymorphic docgen field
func decodeType(o object) *TypeDescriptor {
	t := &TypeDescriptor{
		Name:        o.str("name"),
		Type:        o.str("type"),
		Raw:         o.str("raw"),
		Description: o.str("description"),
		Required:    o.boolean("required"),
		Computed:    o.boolean("computed"),
	}

	if l, ok := o.list("elements"); ok {
		t.Elements = decodeTypes(l)
	}

	if s, ok := o.obj("signature"); ok {
		t.Signature = decodeSignature(s)
	}

	v, _ := o.get("value")

	switch value := v.(type) {
	case string:
		t.Value = value
	case []any:
		if t.Name == "enum" {
			t.Values = decodeEnumValues(value)
		} else {
			t.Elements = append(t.Elements, decodeTypes(value)...)
		}
	case nil:
	default:
		vo, ok := asObject(value)
		if !ok {
			// Numeric or boolean literal values.
			t.Value = fmt.Sprint(value)

			break
		}

		if t.Name == "shape" || t.Name == "exact" {
			t.Fields = decodeFields(vo)
		} else {
			t.Of = decodeType(vo)
		}
	}

	return t
}

func decodeTypes(l []any) []*TypeDescriptor {
	out := make([]*TypeDescriptor, 0, len(l))

	for _, v := range l {
		o, ok := asObject(v)
		if !ok {
			continue
		}

		out = append(out, decodeType(o))
	}

	return out
}

func decodeEnumValues(l []any) []EnumValue {
	out := make([]EnumValue, 0, len(l))

	for _, v := range l {
		o, ok := asObject(v)
		if !ok {
			continue
		}

		ev := EnumValue{Computed: o.boolean("computed")}

		value, _ := o.get("value")

		switch s := value.(type) {
		case string:
			ev.Value = s
		case nil:
			continue
		default:
			ev.Value = fmt.Sprint(s)
		}

		out = append(out, ev)
	}

	return out
}

func decodeFields(o object) []Field {
	out := make([]Field, 0, len(o))

	for _, item := range o {
		f := Field{Key: keyString(item.Key)}

		if fo, ok := asObject(item.Value); ok {
			f.Type = decodeType(fo)
		}

		out = append(out, f)
	}

	return out
}

func decodeSignature(o object) *SignatureDescriptor {
	s := &SignatureDescriptor{}

	if l, ok := o.list("properties"); ok {
		for _, v := range l {
			po, ok := asObject(v)
			if !ok {
				continue
			}

			s.Properties = append(s.Properties, decodeSignatureProperty(po))
		}
	}

	if l, ok := o.list("arguments"); ok {
		for _, v := range l {
			ao, ok := asObject(v)
			if !ok {
				continue
			}

			arg := Argument{
				Name: ao.str("name"),
				Rest: ao.boolean("rest"),
			}

			if t, ok := ao.obj("type"); ok {
				arg.Type = decodeType(t)
			}

			s.Arguments = append(s.Arguments, arg)
		}
	}

	if r, ok := o.obj("return"); ok {
		s.Return = decodeType(r)
	}

	return s
}

func decodeSignatureProperty(o object) SignatureProperty {
	sp := SignatureProperty{Required: o.boolean("required")}

	key, _ := o.get("key")
	if ko, ok := asObject(key); ok {
		sp.KeyType = decodeType(ko)
	} else if key != nil {
		sp.Key = keyString(key)
	}

	if v, ok := o.obj("value"); ok {
		sp.Value = decodeType(v)
	}

	return sp
}
