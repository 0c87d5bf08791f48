package literal

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

const (
	// MaxInputLen is the longest expression [Eval] will read.
	MaxInputLen = 1 << 20
	// MaxDepth is the deepest nesting of objects, arrays, parentheses and
	// sign prefixes [Eval] will read.
	MaxDepth = 128
)

// Sentinel errors returned by [Eval].
var (
	ErrSyntax     = errors.New("syntax error")
	ErrNotLiteral = errors.New("not a literal expression")
	ErrTooDeep    = errors.New("nesting too deep")
	ErrTooLarge   = errors.New("expression too large")
	ErrUndefined  = errors.New("expression is undefined")
)

// Eval reads expr as a JavaScript literal expression and returns its value
// as plain data.
//
// Objects become map[string]any, arrays []any, numbers float64, and
// strings, booleans and null map to string, bool and nil. Object members
// whose value is undefined are deleted; undefined array elements and holes
// become nil. An expression that is undefined as a whole returns
// [ErrUndefined].
//
// Anything beyond literal syntax (identifiers other than true, false, null
// and undefined, calls, member access, operators other than a numeric sign,
// spread, computed keys, template substitutions) returns [ErrNotLiteral].
// No identifier is ever resolved, so evaluation cannot observe or affect
// anything outside the returned value.
func Eval(expr string) (any, error) {
	if len(expr) > MaxInputLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(expr), MaxInputLen)
	}

	p := &parser{lex: lexer{src: expr}}

	err := p.advance()
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}

	if isUndefined(v) {
		return nil, ErrUndefined
	}

	return v, nil
}

// Plain returns a deep copy of v reduced to the same plain data [Eval]
// produces. Maps with string keys become map[string]any, slices and arrays
// become []any, and all numeric kinds become float64. Pointers and
// interfaces are followed. Values with no data representation (functions,
// channels, structs and so on) are treated as undefined: they are dropped
// from maps, become nil in slices, and make Plain return false at the top
// level.
//
// The copy shares no memory with v.
func Plain(v any) (any, bool) {
	return plainValue(reflect.ValueOf(v), 0)
}

func plainValue(rv reflect.Value, depth int) (any, bool) {
	if depth > MaxDepth {
		return nil, false
	}

	if !rv.IsValid() {
		return nil, true
	}

	//nolint:exhaustive // remaining kinds have no plain representation
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, true
		}

		return plainValue(rv.Elem(), depth)
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}

		return f, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			val, ok := plainValue(iter.Value(), depth+1)
			if ok {
				out[iter.Key().String()] = val
			}
		}

		return out, true
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}, true
		}

		out := make([]any, rv.Len())

		for i := range rv.Len() {
			val, ok := plainValue(rv.Index(i), depth+1)
			if ok {
				out[i] = val
			}
		}

		return out, true
	}

	return nil, false
}

// TypeOf returns the JSON Schema type name of a plain value: "string",
// "number", "boolean", "object", "array" or "null". It returns "" for
// values [Plain] would reject.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}

	rv := reflect.ValueOf(v)

	//nolint:exhaustive // only container kinds need reflection
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return "object"
		}
	case reflect.Slice, reflect.Array:
		return "array"
	}

	return ""
}
