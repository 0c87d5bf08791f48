// Package stringtest provides helpers for writing multi-line string fixtures
// in tests.
package stringtest

import (
	"strings"
)

// Input dedents a raw string literal so fixtures can be indented to match
// the surrounding test code. One leading and one trailing newline are
// removed, the indentation common to all non-blank lines is stripped, and
// whitespace-only lines become empty.
//
// Example:
//
//	in := stringtest.Input(`
//		{"displayName": "Button"}
//	`) // -> `{"displayName": "Button"}`
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[max(indent, 0):]
	}

	return strings.Join(lines, "\n")
}

// JSDoc wraps lines in a /** ... */ block comment with a " * " gutter, the
// way doc comments appear in component source. Empty lines get a bare " *".
//
// Example:
//
//	c := stringtest.JSDoc("size", "", "@minimum 0")
//	// -> "/**\n * size\n *\n * @minimum 0\n */"
func JSDoc(lines ...string) string {
	var sb strings.Builder

	sb.WriteString("/**")

	for _, line := range lines {
		sb.WriteString("\n *")

		if line != "" {
			sb.WriteByte(' ')
			sb.WriteString(line)
		}
	}

	sb.WriteString("\n */")

	return sb.String()
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings, for inputs
// authored on Windows.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}
