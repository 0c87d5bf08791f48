package propschema

import (
	"errors"
	"fmt"

	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/jsdoc"
	"github.com/xiaoshuangLi/react-docgen-props-schema/propschema/literal"
)

// Kind is the discriminant of a [Node].
type Kind int

// Node kinds. Every docgen type name maps onto exactly one of these; names
// with no dedicated kind become [KindPrimitive] carrying the raw name.
const (
	KindPrimitive Kind = iota
	KindUnion
	KindTupleOrArray
	KindObject
	KindFunction
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindUnion:
		return "union"
	case KindTupleOrArray:
		return "tupleOrArray"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindLiteral:
		return "literal"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is the canonical description of one declaration's type, produced by
// [Normalize] from either docgen descriptor shape. A Node is never modified
// after it is built.
type Node struct {
	// Function is set for [KindFunction] nodes with a declared signature.
	Function *FunctionSignature
	// Default is the declared default value, if any.
	Default *DefaultValue
	// Name is the type name of a [KindPrimitive] node.
	Name string
	// LiteralExpr is the source text of a [KindLiteral] node.
	LiteralExpr string
	// Elements holds union branches, or tuple and array element types.
	Elements []*Node
	// Properties holds the members of a [KindObject] node in declaration
	// order.
	Properties []Property
	Annotation jsdoc.Annotation
	Kind       Kind
}

// Property is one member of an object signature.
type Property struct {
	Node     *Node
	Key      string
	Required bool
}

// FunctionSignature is the declared shape of a function type.
type FunctionSignature struct {
	// Return is the normalized name of the return type.
	Return string
	// Params lists argument names in declaration order.
	Params []string
}

// ErrInvalidDefault indicates a computed default holding a value with no
// plain data representation.
var ErrInvalidDefault = errors.New("invalid default value")

// DefaultValue is a default as captured from source text, or a concrete
// value that needs no evaluation.
type DefaultValue struct {
	// Value is the concrete value when Computed is true.
	Value any
	// Expr is the source text of a literal expression.
	Expr string
	// Computed marks Value as already evaluated; Expr is ignored.
	Computed bool
}

// ComputedDefault returns a [DefaultValue] holding v as-is.
func ComputedDefault(v any) *DefaultValue {
	return &DefaultValue{Value: v, Computed: true}
}

// Resolve returns the concrete default. Computed values are copied into
// plain data; expressions are read with [literal.Eval], so the error wraps
// one of its sentinels.
func (d *DefaultValue) Resolve() (any, error) {
	if d.Computed {
		v, ok := literal.Plain(d.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrInvalidDefault, d.Value)
		}

		return v, nil
	}

	v, err := literal.Eval(d.Expr)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", d.Expr, err)
	}

	return v, nil
}
