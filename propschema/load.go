package propschema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Load decodes react-docgen output. JSON and YAML are both accepted.
//
// The input may be a single component object, an array of components, or
// a mapping from file path to either of those, as written by the docgen
// CLI. Components are returned in input order, and props keep the order
// of their source mapping.
func Load(data []byte) ([]Component, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}

	var v any

	err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return loadValue(v, "")
}

func loadValue(v any, path string) ([]Component, error) {
	switch x := v.(type) {
	case []any:
		cs := make([]Component, 0, len(x))

		for i, e := range x {
			o, ok := asObject(e)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d]: component must be an object, got %T",
					ErrInvalidInput, location(path), i, e)
			}

			cs = append(cs, decodeComponent(o))
		}

		return cs, nil
	case nil:
		return nil, fmt.Errorf("%w: %s: no components", ErrInvalidInput, location(path))
	}

	o, ok := asObject(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected an object or array, got %T",
			ErrInvalidInput, location(path), v)
	}

	if isComponent(o) || path != "" {
		return []Component{decodeComponent(o)}, nil
	}

	var cs []Component

	for _, item := range o {
		// Files without a component are written as null.
		if item.Value == nil {
			continue
		}

		sub, err := loadValue(item.Value, keyString(item.Key))
		if err != nil {
			return nil, err
		}

		cs = append(cs, sub...)
	}

	return cs, nil
}

// isComponent reports whether o looks like a docgen component rather than
// a path-keyed mapping of components.
func isComponent(o object) bool {
	for _, key := range []string{"props", "displayName", "description", "methods", "composes"} {
		if o.has(key) {
			return true
		}
	}

	return len(o) == 0
}

func location(path string) string {
	if path == "" {
		return "document"
	}

	return path
}
