package propschema

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/jsdoc"
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/literal"
)

// Converter turns [Node] trees into [Schema] trees.
//
// A Converter holds no state besides its logger and is safe for concurrent
// use. Converting the same node twice yields deep-equal schemas.
type Converter struct {
	logger *slog.Logger
}

// NewConverter creates a [Converter] that reports evaluation failures to
// logger. A nil logger uses [slog.Default].
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Converter{logger: logger}
}

// Convert returns the schema for n. Inherited is the default passed down
// from an enclosing object or array default; the node's own default takes
// priority over it.
//
// Convert returns nil when n is nil or is a union with no convertible
// branch; callers drop the owning property. Evaluation failures never fail
// the conversion: they are logged and the default is left unset.
func (c *Converter) Convert(n *Node, inherited *DefaultValue) *Schema {
	if n == nil {
		return nil
	}

	def, hasDef := c.resolveDefault(n, inherited)

	s := &Schema{}

	switch n.Kind {
	case KindPrimitive:
		s.Type = primitiveType(n.Name)
	case KindUnion:
		if !c.convertUnion(s, n) {
			return nil
		}
	case KindTupleOrArray:
		s.Type = typeArray
		if len(n.Elements) > 0 {
			s.Items = c.Convert(n.Elements[0], itemDefault(def, hasDef))
		}
	case KindObject:
		s.Type = typeObject
		c.convertProperties(s, n.Properties, def, hasDef)
	case KindFunction:
		s.Type = typeFunc
		if n.Function != nil {
			if len(n.Function.Params) > 0 {
				s.Params = slices.Clone(n.Function.Params)
			}

			if n.Function.Return != "" {
				s.Return = &Schema{Type: primitiveType(n.Function.Return)}
			}
		}
	case KindLiteral:
		v, err := literal.Eval(n.LiteralExpr)
		if err != nil {
			c.logger.Warn("evaluate literal",
				slog.String("expr", n.LiteralExpr),
				slog.Any("error", err),
			)

			break
		}

		s.Type = literal.TypeOf(v)
		s.Default = &v
	default:
		s.Type = n.Kind.String()
	}

	applyAnnotation(s, n.Annotation)

	if hasDef {
		s.Default = &def
	}

	return s
}

// convertUnion fills s from the branches of n and reports whether any
// branch converted.
func (c *Converter) convertUnion(s *Schema, n *Node) bool {
	branches := make([]*Schema, 0, len(n.Elements))

	for _, e := range n.Elements {
		b := c.Convert(e, nil)
		if b != nil {
			branches = append(branches, b)
		}
	}

	if len(branches) == 0 {
		return false
	}

	if !sameType(branches) {
		s.AnyOf = branches

		return true
	}

	s.Type = branches[0].Type

	for _, b := range branches {
		if b.Default != nil {
			s.Enum = append(s.Enum, *b.Default)
		}
	}

	return true
}

func (c *Converter) convertProperties(s *Schema, props []Property, def any, hasDef bool) {
	if len(props) == 0 {
		return
	}

	s.Properties = make(map[string]*Schema, len(props))

	for _, p := range props {
		child := c.Convert(p.Node, propertyDefault(def, hasDef, p.Key))
		if child == nil {
			continue
		}

		if _, dup := s.Properties[p.Key]; !dup {
			s.PropertyOrder = append(s.PropertyOrder, p.Key)
		}

		s.Properties[p.Key] = child

		if p.Required && !slices.Contains(s.Required, p.Key) {
			s.Required = append(s.Required, p.Key)
		}
	}
}

// resolveDefault evaluates the node's own default, falling back to the
// inherited one when the node has none or its own fails to evaluate.
func (c *Converter) resolveDefault(n *Node, inherited *DefaultValue) (any, bool) {
	for _, d := range []*DefaultValue{n.Default, inherited} {
		if d == nil {
			continue
		}

		v, err := d.Resolve()
		if err == nil {
			return v, true
		}

		if !errors.Is(err, literal.ErrUndefined) {
			c.logger.Warn("evaluate default",
				slog.String("expr", d.Expr),
				slog.Any("error", err),
			)
		}
	}

	return nil, false
}

// propertyDefault decomposes an object default for the member at key.
func propertyDefault(def any, hasDef bool, key string) *DefaultValue {
	if !hasDef {
		return nil
	}

	m, ok := def.(map[string]any)
	if !ok {
		return nil
	}

	v, ok := m[key]
	if !ok {
		return nil
	}

	return ComputedDefault(v)
}

// itemDefault decomposes an array default for the item schema, which
// describes the first element.
func itemDefault(def any, hasDef bool) *DefaultValue {
	if !hasDef {
		return nil
	}

	arr, ok := def.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}

	return ComputedDefault(arr[0])
}

func applyAnnotation(s *Schema, a jsdoc.Annotation) {
	s.Description = a.Description
	s.Format = a.Alias
	s.Pattern = a.Pattern

	if s.Params == nil && len(a.Params) > 0 {
		s.Params = slices.Clone(a.Params)
	}

	if s.Return == nil && a.Return != "" {
		s.Return = &Schema{Type: primitiveType(canonicalName(a.Return))}
	}

	s.Minimum = a.Minimum
	s.Maximum = a.Maximum
	s.MinLength = a.MinLength
	s.MaxLength = a.MaxLength
	s.MinItems = a.MinItems
	s.MaxItems = a.MaxItems
	s.ExclusiveMinimum = a.ExclusiveMinimum
	s.ExclusiveMaximum = a.ExclusiveMaximum
	s.UniqueItems = a.UniqueItems
}

// primitiveType maps a primitive name to its schema type. "any" places no
// constraint and yields "".
func primitiveType(name string) string {
	switch name {
	case typeBool:
		return typeBoolean
	case typeAny:
		return ""
	}

	return name
}

// sameType reports whether every branch has the same non-empty type.
func sameType(branches []*Schema) bool {
	first := branches[0].Type
	if first == "" {
		return false
	}

	for _, b := range branches[1:] {
		if b.Type != first {
			return false
		}
	}

	return true
}
