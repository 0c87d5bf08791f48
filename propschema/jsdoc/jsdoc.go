// Package jsdoc extracts schema metadata from JSDoc-style prop comments.
//
// A comment is free text followed by block tags, one per line:
//
//	Size of the control.
//
//	@minimum 0
//	@maximum 10
//	@exclusiveMaximum
//
// [Parse] returns the text before the first tag as the description and the
// recognized tags as structured fields. Parsing never fails: unknown tags
// are ignored and numeric tags whose value is not a number are dropped.
package jsdoc

import (
	"math"
	"strconv"
	"strings"
)

// DefaultIgnoreMarker excludes a prop from the generated schema when it
// appears anywhere in the prop's comment.
const DefaultIgnoreMarker = "@ignore"

// Annotation is the metadata carried by one doc comment.
type Annotation struct {
	Minimum   *float64
	Maximum   *float64
	MinLength *float64
	MaxLength *float64
	MinItems  *float64
	MaxItems  *float64

	Description string
	// Alias is the @alias tag, emitted as the schema "format".
	Alias   string
	Pattern string
	// Return is the type name from @return or @returns.
	Return string
	// Params lists @param names in declaration order.
	Params []string

	ExclusiveMinimum bool
	ExclusiveMaximum bool
	UniqueItems      bool
	// Ignore reports an @ignore tag.
	Ignore bool
}

// Parse extracts the description and tags from comment. An empty comment
// yields the zero Annotation.
func Parse(comment string) Annotation {
	var (
		a     Annotation
		desc  []string
		tag   string
		body  []string
		inTag bool
	)

	flush := func() {
		if inTag {
			a.apply(tag, strings.TrimSpace(strings.Join(body, "\n")))
		}
	}

	for _, line := range commentLines(comment) {
		name, rest, ok := tagLine(line)
		if ok {
			flush()

			tag, body, inTag = name, []string{rest}, true

			continue
		}

		if inTag {
			body = append(body, line)
		} else {
			desc = append(desc, line)
		}
	}

	flush()

	a.Description = strings.TrimSpace(strings.Join(desc, "\n"))

	return a
}

// HasMarker reports whether comment contains marker. An empty marker never
// matches.
func HasMarker(comment, marker string) bool {
	return marker != "" && strings.Contains(comment, marker)
}

// Merge returns a with every zero field filled from b. Fields set on a take
// priority.
func (a Annotation) Merge(b Annotation) Annotation {
	if a.Description == "" {
		a.Description = b.Description
	}

	if a.Alias == "" {
		a.Alias = b.Alias
	}

	if a.Pattern == "" {
		a.Pattern = b.Pattern
	}

	if a.Return == "" {
		a.Return = b.Return
	}

	if a.Params == nil {
		a.Params = b.Params
	}

	if a.Minimum == nil {
		a.Minimum = b.Minimum
	}

	if a.Maximum == nil {
		a.Maximum = b.Maximum
	}

	if a.MinLength == nil {
		a.MinLength = b.MinLength
	}

	if a.MaxLength == nil {
		a.MaxLength = b.MaxLength
	}

	if a.MinItems == nil {
		a.MinItems = b.MinItems
	}

	if a.MaxItems == nil {
		a.MaxItems = b.MaxItems
	}

	a.ExclusiveMinimum = a.ExclusiveMinimum || b.ExclusiveMinimum
	a.ExclusiveMaximum = a.ExclusiveMaximum || b.ExclusiveMaximum
	a.UniqueItems = a.UniqueItems || b.UniqueItems
	a.Ignore = a.Ignore || b.Ignore

	return a
}

//nolint:cyclop // one case per recognized tag
func (a *Annotation) apply(tag, body string) {
	switch tag {
	case "param", "arg", "argument":
		if name := paramName(body); name != "" {
			a.Params = append(a.Params, name)
		}
	case "alias":
		a.Alias = firstField(body)
	case "pattern":
		a.Pattern = firstLine(body)
	case "return", "returns":
		a.Return = returnType(body)
	case "exclusiveMinimum":
		a.ExclusiveMinimum = true
	case "exclusiveMaximum":
		a.ExclusiveMaximum = true
	case "uniqueItems":
		a.UniqueItems = true
	case "ignore":
		a.Ignore = true
	case "minimum":
		a.Minimum = number(body)
	case "maximum":
		a.Maximum = number(body)
	case "minLength":
		a.MinLength = number(body)
	case "maxLength":
		a.MaxLength = number(body)
	case "minItems":
		a.MinItems = number(body)
	case "maxItems":
		a.MaxItems = number(body)
	}
}

// commentLines splits comment into lines with block comment delimiters and
// " * " gutters removed. Gutters are only stripped when the comment still
// has its /** */ delimiters, since react-docgen usually strips them itself
// and a bare leading "*" may then be markdown.
func commentLines(comment string) []string {
	comment = strings.ReplaceAll(comment, "\r\n", "\n")
	comment = strings.ReplaceAll(comment, "\r", "\n")

	trimmed := strings.TrimSpace(comment)
	block := strings.HasPrefix(trimmed, "/*") && strings.HasSuffix(trimmed, "*/")

	if block {
		trimmed = strings.TrimPrefix(trimmed, "/*")
		trimmed = strings.TrimLeft(trimmed, "*")
		trimmed = strings.TrimSuffix(trimmed, "*/")
		comment = trimmed
	}

	lines := strings.Split(comment, "\n")

	for i, line := range lines {
		if block {
			line = strings.TrimLeft(line, " \t")
			line = strings.TrimPrefix(line, "*")
			line = strings.TrimPrefix(line, " ")
		}

		lines[i] = strings.TrimRight(line, " \t")
	}

	return lines
}

// tagLine reports whether line starts a block tag and splits it into the
// tag name and the rest of the line.
func tagLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 2 || line[0] != '@' || !isTagStart(line[1]) {
		return "", "", false
	}

	end := strings.IndexAny(line, " \t")
	if end < 0 {
		return line[1:], "", true
	}

	return line[1:end], strings.TrimSpace(line[end:]), true
}

func isTagStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// paramName extracts the parameter name from an @param body such as
// "{string} value - the value" or "[size='md'] optional size".
func paramName(body string) string {
	body = skipBraces(body)

	if strings.HasPrefix(body, "[") {
		end := strings.IndexByte(body, ']')
		if end < 0 {
			return ""
		}

		name, _, _ := strings.Cut(body[1:end], "=")

		return strings.TrimSpace(name)
	}

	return strings.TrimSuffix(firstField(body), "-")
}

// returnType extracts the type from an @return body, with or without
// braces: "node", "{node} the rendered content".
func returnType(body string) string {
	if strings.HasPrefix(body, "{") {
		end := matchingBrace(body)
		if end > 0 {
			return strings.TrimSpace(body[1:end])
		}
	}

	return firstField(body)
}

// skipBraces drops a leading {type} expression.
func skipBraces(body string) string {
	if !strings.HasPrefix(body, "{") {
		return body
	}

	end := matchingBrace(body)
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(body[end+1:])
}

// matchingBrace returns the index of the brace closing the one at s[0], or
// -1 when it is unbalanced.
func matchingBrace(s string) int {
	depth := 0

	for i := range len(s) {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func number(body string) *float64 {
	f, err := strconv.ParseFloat(firstField(body), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}

	return &f
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return strings.TrimSpace(line)
}
