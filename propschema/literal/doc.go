// Package literal evaluates JavaScript literal expressions into plain Go
// data without executing any code.
//
// react-docgen captures default values and literal types as source text,
// for example `{size: 'md', items: [1, 2]}`. [Eval] reads that text with a
// purpose-built grammar that accepts object, array, string, number,
// boolean, null and undefined literals (plus numeric signs, parentheses,
// comments and trailing commas) and nothing else. There is no environment
// to resolve identifiers against, so a reference such as `DEFAULT_SIZE` or a
// call such as `getSize()` fails with [ErrNotLiteral] instead of running.
//
// Input size and nesting depth are bounded by [MaxInputLen] and [MaxDepth].
// The result is always fresh plain data: map[string]any, []any, string,
// float64, bool or nil.
//
// [Plain] applies the same reduction to values that are already concrete,
// and [TypeOf] names the JSON Schema type of a plain value.
package literal
