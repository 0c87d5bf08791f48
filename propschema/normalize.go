package propschema

import (
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/jsdoc"
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/literal"
)

// Type names shared by docgen and the emitted schema.
const (
	typeAny      = "any"
	typeArray    = "array"
	typeBool     = "bool"
	typeBoolean  = "boolean"
	typeFunc     = "func"
	typeNode     = "node"
	typeObject   = "object"
	typeString   = "string"
	typeFunction = "function"
	typeUnion    = "union"
)

// nodeNames are the framework types for renderable content, all of which
// normalize to [typeNode].
var nodeNames = map[string]bool{
	"ReactNode":          true,
	"React.ReactNode":    true,
	"ReactElement":       true,
	"React.ReactElement": true,
	"ReactChild":         true,
	"React.ReactChild":   true,
	"JSX.Element":        true,
	"Node":               true,
	"React.Node":         true,
	"React$Node":         true,
	"React.Element":      true,
	"React$Element":      true,
	"element":            true,
	"elementType":        true,
	typeNode:             true,
}

// canonicalName maps docgen type names onto the names used in schemas.
func canonicalName(name string) string {
	switch {
	case nodeNames[name]:
		return typeNode
	case name == "unknown":
		return typeAny
	}

	return name
}

// Normalize converts a prop descriptor into its canonical [Node]. The prop
// doc comment is parsed into the node's annotation and the declared default
// is attached unevaluated. Normalize returns nil for a nil descriptor.
func Normalize(p *PropDescriptor) *Node {
	if p == nil {
		return nil
	}

	var n *Node

	switch {
	case p.FlowType != nil:
		n = NormalizeType(p.FlowType)
	case p.TSType != nil:
		n = NormalizeType(p.TSType)
	case p.Type != nil:
		n = NormalizePropType(p.Type)
	default:
		n = &Node{Kind: KindPrimitive}
	}

	n.Annotation = jsdoc.Parse(p.Description).Merge(n.Annotation)

	if p.DefaultValue != nil {
		n.Default = defaultFromDescriptor(p.DefaultValue)
	}

	return n
}

// NormalizeType converts a TypeScript or Flow type descriptor into its
// canonical [Node].
func NormalizeType(t *TypeDescriptor) *Node {
	if t == nil {
		return &Node{Kind: KindPrimitive}
	}

	n := &Node{Annotation: jsdoc.Parse(t.Description)}

	kind := t.Type
	if kind == "" {
		kind = t.Name
	}

	switch kind {
	case typeUnion:
		n.Kind = KindUnion
		n.Elements = normalizeTypes(t.Elements)
	case "Array", typeArray, "tuple":
		n.Kind = KindTupleOrArray
		n.Elements = normalizeTypes(t.Elements)
	case typeObject:
		n.Kind = KindObject
		if t.Signature != nil {
			n.Properties = normalizeSignatureProperties(t.Signature.Properties)
		}
	case typeFunction:
		n.Kind = KindFunction
		if t.Signature != nil {
			n.Function = normalizeFunction(t.Signature)
		}
	case "literal":
		n.Kind = KindLiteral
		n.LiteralExpr = t.Value
	default:
		n.Kind = KindPrimitive
		n.Name = canonicalName(kind)
	}

	return n
}

// NormalizePropType converts a propTypes type descriptor into its
// canonical [Node].
func NormalizePropType(t *TypeDescriptor) *Node {
	if t == nil {
		return &Node{Kind: KindPrimitive}
	}

	n := &Node{Annotation: jsdoc.Parse(t.Description)}

	switch t.Name {
	case "enum":
		if t.Values == nil {
			// The allowed values come from a binding docgen could not
			// resolve. They are most commonly strings.
			n.Kind = KindPrimitive
			n.Name = typeString

			break
		}

		n.Kind = KindUnion
		for _, v := range t.Values {
			n.Elements = append(n.Elements, &Node{Kind: KindLiteral, LiteralExpr: v.Value})
		}
	case typeUnion:
		if t.Elements == nil {
			n.Kind = KindPrimitive
			n.Name = typeAny

			break
		}

		n.Kind = KindUnion
		for _, e := range t.Elements {
			n.Elements = append(n.Elements, NormalizePropType(e))
		}
	case "arrayOf":
		n.Kind = KindTupleOrArray
		if t.Of != nil {
			n.Elements = []*Node{NormalizePropType(t.Of)}
		}
	case "shape", "exact":
		n.Kind = KindObject
		for _, f := range t.Fields {
			child := NormalizePropType(f.Type)

			n.Properties = append(n.Properties, Property{
				Key:      f.Key,
				Node:     child,
				Required: f.Type != nil && f.Type.Required,
			})
		}
	case "objectOf":
		n.Kind = KindPrimitive
		n.Name = typeObject
	case typeFunc:
		n.Kind = KindFunction
	default:
		n.Kind = KindPrimitive
		n.Name = canonicalName(t.Name)
	}

	return n
}

func normalizeTypes(ts []*TypeDescriptor) []*Node {
	if len(ts) == 0 {
		return nil
	}

	out := make([]*Node, 0, len(ts))
	for _, t := range ts {
		out = append(out, NormalizeType(t))
	}

	return out
}

// normalizeSignatureProperties keeps the named members of an object
// signature. Index signatures describe no fixed key and are dropped.
func normalizeSignatureProperties(sps []SignatureProperty) []Property {
	var out []Property

	for _, sp := range sps {
		if sp.KeyType != nil || sp.Key == "" {
			continue
		}

		out = append(out, Property{
			Key:      sp.Key,
			Node:     NormalizeType(sp.Value),
			Required: sp.Required || (sp.Value != nil && sp.Value.Required),
		})
	}

	return out
}

func normalizeFunction(s *SignatureDescriptor) *FunctionSignature {
	fs := &FunctionSignature{}

	for _, arg := range s.Arguments {
		if arg.Name != "" {
			fs.Params = append(fs.Params, arg.Name)
		}
	}

	if s.Return != nil {
		name := s.Return.Name
		if s.Return.Type != "" {
			name = s.Return.Type
		}

		fs.Return = canonicalName(name)
	}

	return fs
}

// defaultFromDescriptor keeps source text for evaluation. Values that
// arrive already decoded (hand-written YAML inputs) are taken as computed.
func defaultFromDescriptor(d *DefaultDescriptor) *DefaultValue {
	if s, ok := d.Value.(string); ok {
		return &DefaultValue{Expr: s}
	}

	v, ok := literal.Plain(d.Value)
	if !ok {
		return nil
	}

	return ComputedDefault(v)
}
