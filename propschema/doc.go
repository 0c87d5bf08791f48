// Package propschema generates JSON Schema shaped documents from the prop
// descriptions react-docgen extracts from React components.
//
// # Pipeline
//
// Each component goes through four steps:
//
//  1. Load: [Load] decodes docgen output (JSON or YAML) into [Component]
//     values. A file may hold one component, an array of components, or a
//     mapping from source path to either, as written by the docgen CLI.
//
//  2. Normalize: [Normalize] converts each [PropDescriptor] into a
//     canonical [Node]. TypeScript and Flow descriptors ({name, type,
//     signature, elements}) and propTypes descriptors ({name, value}) end
//     up in the same tagged form, one [Kind] per shape: primitive, union,
//     tuple or array, object, function and literal. Type names for
//     renderable content (ReactNode, JSX.Element, element and so on)
//     normalize to the primitive "node". The prop doc comment is parsed by
//     [jsdoc.Parse] into the node's annotation.
//
//  3. Convert: [Converter.Convert] walks the node. Unions whose branches
//     all reduce to one type collapse to that type with an enum of the
//     branch values; other unions become anyOf. Tuples and arrays describe
//     only their first element. Objects keep their members in declaration
//     order. Literal types and default values are read by the sandboxed
//     [literal.Eval], which accepts literal syntax only. A default on an
//     object or array is also decomposed into the defaults of its members
//     and first item.
//
//  4. Assemble: [Generator.Generate] builds the [Document], skipping props
//     without a descriptor and props whose description contains the ignore
//     marker ("@ignore" unless changed with [WithIgnoreMarker]).
//
// # Doc Comment Tags
//
// Prop comments may carry block tags after the description:
//
//	Size in pixels.
//
//	@minimum 0
//	@exclusiveMinimum
//	@maximum 64
//
// Recognized tags are param, alias (emitted as "format"), pattern, return,
// minimum, maximum, exclusiveMinimum, exclusiveMaximum, minLength,
// maxLength, minItems, maxItems and uniqueItems. See [jsdoc.Parse].
//
// # Output
//
// [Schema] is Draft 7 extended for component props: function props have
// type "func" with params and return, renderable props have type "node",
// and exclusive bounds are flags qualifying minimum and maximum. Schemas
// and documents encode to JSON or YAML with keys in a stable order; see
// [Marshal]. [Document.ToDraft7] exports a standard
// [jsonschema.Schema], moving the extensions to "x-" keywords.
//
// # Errors
//
// Conversion never fails. A default or literal that cannot be evaluated is
// logged at warn level and left out, an unknown type name passes through
// as the schema type, and a union with no convertible branch drops its
// prop. The sentinel errors [ErrInvalidInput], [ErrInvalidOption],
// [ErrReadInput] and [ErrWriteOutput] cover loading, configuration and
// I/O.
//
// # Basic Usage
//
//	components, err := propschema.Load(docgenJSON)
//	gen := propschema.NewGenerator(propschema.WithLogger(logger))
//	for _, doc := range gen.GenerateAll(components) {
//	    out, _ := propschema.Marshal(doc, propschema.FormatJSON, 2)
//	}
//
// # Config-Based Usage
//
//	cfg := propschema.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//	_ = cfg.RegisterCompletions(rootCmd)
//
//	gen, err := cfg.NewGenerator()
//
// [jsonschema.Schema]: https://pkg.go.dev/github.com/google/jsonschema-go/jsonschema#Schema
package propschema
