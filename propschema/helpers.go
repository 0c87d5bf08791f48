package propschema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Format is an output encoding.
type Format string

// Output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// GetAllFormatStrings returns the supported output format names.
func GetAllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatYAML)}
}

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}

	return "", fmt.Errorf("%w: unknown format %q", ErrInvalidOption, s)
}

// Marshal encodes v in format f, indenting nested levels by indent
// spaces. JSON with an indent of 0 is compact. The result ends with a
// newline.
//
// [Schema] and [Document] keep their key order in both formats. Other
// values that only implement [json.Marshaler], such as exported Draft 7
// schemas, are encoded to YAML through their JSON form.
func Marshal(v any, f Format, indent int) ([]byte, error) {
	indent = max(indent, 0)

	var (
		out []byte
		err error
	)

	switch f {
	case FormatYAML:
		out, err = yaml.MarshalWithOptions(v,
			yaml.Indent(max(indent, 1)),
			yaml.UseJSONMarshaler(),
			yaml.AutoInt(),
		)
	case FormatJSON, "":
		if indent == 0 {
			out, err = json.Marshal(v)
		} else {
			out, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		}

		out = append(out, '\n')
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidOption, f)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return out, nil
}

// rawDefault encodes v for the default keyword of an exported schema. It
// returns nil if v cannot be encoded.
func rawDefault(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}
