package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokComma
	tokColon
	tokPlus
	tokMinus
	tokString
	tokNumber
	tokIdent
	// Any other operator or punctuation. Never valid in a literal.
	tokOperator
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokIdent:
		return "identifier"
	case tokOperator:
		return "operator"
	}

	return "unknown token"
}

type token struct {
	text string
	str  string
	num  float64
	kind tokenKind
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokIdent, tokOperator:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	default:
		return t.kind.String()
	}
}

// lexer splits literal source into tokens. It understands just enough of
// the JavaScript lexical grammar to recognize literals and to reject
// everything else with a precise error.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	err := l.skipTrivia()
	if err != nil {
		return token{}, err
	}

	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[l.pos]

	switch c {
	case '{':
		return l.punct(tokLBrace), nil
	case '}':
		return l.punct(tokRBrace), nil
	case '[':
		return l.punct(tokLBracket), nil
	case ']':
		return l.punct(tokRBracket), nil
	case '(':
		return l.punct(tokLParen), nil
	case ')':
		return l.punct(tokRParen), nil
	case ',':
		return l.punct(tokComma), nil
	case ':':
		return l.punct(tokColon), nil
	case '+':
		if strings.HasPrefix(l.src[l.pos:], "++") {
			return l.operator(2), nil
		}

		return l.punct(tokPlus), nil
	case '-':
		if strings.HasPrefix(l.src[l.pos:], "--") {
			return l.operator(2), nil
		}

		return l.punct(tokMinus), nil
	case '\'', '"':
		return l.quoted(c)
	case '`':
		return l.template()
	case '.':
		if l.pos+1 < len(l.src) && isDecimalDigit(l.src[l.pos+1]) {
			return l.number()
		}

		return l.operator(1), nil
	}

	if isDecimalDigit(c) {
		return l.number()
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if isIdentStart(r) {
		return l.ident(), nil
	}

	if r == utf8.RuneError && size <= 1 {
		return token{}, fmt.Errorf("%w: invalid utf-8 at offset %d", ErrSyntax, start)
	}

	return l.operator(size), nil
}

func (l *lexer) punct(kind tokenKind) token {
	t := token{kind: kind, pos: l.pos, text: l.src[l.pos : l.pos+1]}
	l.pos++

	return t
}

func (l *lexer) operator(size int) token {
	t := token{kind: tokOperator, pos: l.pos, text: l.src[l.pos : l.pos+size]}
	l.pos += size

	return t
}

func (l *lexer) ident() token {
	start := l.pos

	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}

		l.pos += size
	}

	return token{kind: tokIdent, pos: start, text: l.src[start:l.pos]}
}

// skipTrivia skips whitespace, line terminators and comments.
func (l *lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])

		switch {
		case r == '\uFEFF' || unicode.IsSpace(r):
			l.pos += size
		case strings.HasPrefix(l.src[l.pos:], "//"):
			end := strings.IndexAny(l.src[l.pos:], "\n\r\u2028\u2029")
			if end < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += end
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return fmt.Errorf("%w: unterminated comment at offset %d", ErrSyntax, l.pos)
			}

			l.pos += end + 4
		default:
			return nil
		}
	}

	return nil
}

func (l *lexer) number() (token, error) {
	start := l.pos

	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) {
		base := 0

		switch l.src[l.pos+1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		if base != 0 {
			l.pos += 2
			digitsStart := l.pos

			for l.pos < len(l.src) && (isDigitInBase(l.src[l.pos], base) || l.src[l.pos] == '_') {
				l.pos++
			}

			digits := l.src[digitsStart:l.pos]

			err := l.checkNumberEnd(start)
			if err != nil {
				return token{}, err
			}

			return l.numberToken(start, digits, base)
		}
	}

	for l.pos < len(l.src) && (isDecimalDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++

		for l.pos < len(l.src) && (isDecimalDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++

		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}

		expStart := l.pos

		for l.pos < len(l.src) && isDecimalDigit(l.src[l.pos]) {
			l.pos++
		}

		if l.pos == expStart {
			return token{}, fmt.Errorf("%w: malformed exponent at offset %d", ErrSyntax, start)
		}
	}

	err := l.checkNumberEnd(start)
	if err != nil {
		return token{}, err
	}

	return l.numberToken(start, l.src[start:l.pos], 10)
}

// checkNumberEnd rejects an identifier character glued to a numeric
// literal, including the BigInt suffix.
func (l *lexer) checkNumberEnd(start int) error {
	if l.pos >= len(l.src) {
		return nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if r == 'n' {
		return fmt.Errorf("%w: bigint literal at offset %d", ErrNotLiteral, start)
	}

	if isIdentStart(r) || isDecimalDigit(l.src[l.pos]) {
		return fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, start)
	}

	return nil
}

func (l *lexer) numberToken(start int, digits string, base int) (token, error) {
	text := l.src[start:l.pos]

	if digits == "" || strings.HasPrefix(digits, "_") || strings.HasSuffix(digits, "_") ||
		strings.Contains(digits, "__") || strings.Contains(digits, "_.") || strings.Contains(digits, "._") ||
		strings.Contains(digits, "_e") || strings.Contains(digits, "_E") || strings.ContainsAny(digits, "eE") &&
		strings.Contains(digits[strings.IndexAny(digits, "eE"):], "_") {
		return token{}, fmt.Errorf("%w: malformed number %q at offset %d", ErrSyntax, text, start)
	}

	clean := strings.ReplaceAll(digits, "_", "")

	var (
		v   float64
		err error
	)

	if base == 10 {
		v, err = strconv.ParseFloat(clean, 64)
	} else {
		var u uint64

		u, err = strconv.ParseUint(clean, base, 64)
		v = float64(u)
	}

	if err != nil || math.IsInf(v, 0) {
		return token{}, fmt.Errorf("%w: number %q out of range at offset %d", ErrSyntax, text, start)
	}

	return token{kind: tokNumber, pos: start, text: text, num: v}, nil
}

func (l *lexer) quoted(quote byte) (token, error) {
	start := l.pos
	l.pos++

	var sb strings.Builder

	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, start)
		}

		c := l.src[l.pos]

		switch {
		case c == quote:
			l.pos++

			return token{kind: tokString, pos: start, text: l.src[start:l.pos], str: sb.String()}, nil
		case c == '\\':
			err := l.escape(&sb)
			if err != nil {
				return token{}, err
			}
		case c == '\n' || c == '\r':
			return token{}, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, start)
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
}

// template lexes a template literal. Substitutions would require
// evaluating arbitrary expressions, so they are rejected.
func (l *lexer) template() (token, error) {
	start := l.pos
	l.pos++

	var sb strings.Builder

	for {
		if l.pos >= len(l.src) {
			return token{}, fmt.Errorf("%w: unterminated template at offset %d", ErrSyntax, start)
		}

		c := l.src[l.pos]

		switch {
		case c == '`':
			l.pos++

			return token{kind: tokString, pos: start, text: l.src[start:l.pos], str: sb.String()}, nil
		case c == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
			return token{}, fmt.Errorf("%w: template substitution at offset %d", ErrNotLiteral, l.pos)
		case c == '\\':
			err := l.escape(&sb)
			if err != nil {
				return token{}, err
			}
		case c == '\r':
			// Template literals normalize CRLF and CR to LF.
			sb.WriteByte('\n')
			l.pos++

			if l.pos < len(l.src) && l.src[l.pos] == '\n' {
				l.pos++
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
}

// escape decodes one escape sequence starting at the backslash.
func (l *lexer) escape(sb *strings.Builder) error {
	start := l.pos
	l.pos++

	if l.pos >= len(l.src) {
		return fmt.Errorf("%w: unterminated escape at offset %d", ErrSyntax, start)
	}

	c := l.src[l.pos]
	l.pos++

	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		if l.pos < len(l.src) && isDecimalDigit(l.src[l.pos]) {
			return fmt.Errorf("%w: octal escape at offset %d", ErrSyntax, start)
		}

		sb.WriteByte(0)
	case 'x':
		r, err := l.hexRune(2, start)
		if err != nil {
			return err
		}

		sb.WriteRune(r)
	case 'u':
		r, err := l.unicodeEscape(start)
		if err != nil {
			return err
		}

		sb.WriteRune(r)
	case '\r':
		// Line continuation.
		if l.pos < len(l.src) && l.src[l.pos] == '\n' {
			l.pos++
		}
	case '\n':
		// Line continuation.
	default:
		if isDecimalDigit(c) {
			return fmt.Errorf("%w: octal escape at offset %d", ErrSyntax, start)
		}

		// Unknown escapes stand for the character itself.
		l.pos--

		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == '\u2028' || r == '\u2029' {
			l.pos += size

			return nil
		}

		sb.WriteRune(r)
		l.pos += size
	}

	return nil
}

func (l *lexer) unicodeEscape(start int) (rune, error) {
	if l.pos < len(l.src) && l.src[l.pos] == '{' {
		end := strings.IndexByte(l.src[l.pos:], '}')
		if end < 2 {
			return 0, fmt.Errorf("%w: malformed unicode escape at offset %d", ErrSyntax, start)
		}

		v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+end], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, fmt.Errorf("%w: malformed unicode escape at offset %d", ErrSyntax, start)
		}

		l.pos += end + 1

		return rune(v), nil
	}

	r, err := l.hexRune(4, start)
	if err != nil {
		return 0, err
	}

	// Combine UTF-16 surrogate pairs written as two escapes.
	if r >= 0xD800 && r < 0xDC00 && strings.HasPrefix(l.src[l.pos:], `\u`) {
		save := l.pos
		l.pos += 2

		lo, loErr := l.hexRune(4, start)
		if loErr == nil && lo >= 0xDC00 && lo < 0xE000 {
			return (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000, nil
		}

		l.pos = save
	}

	return r, nil
}

func (l *lexer) hexRune(n, start int) (rune, error) {
	if l.pos+n > len(l.src) {
		return 0, fmt.Errorf("%w: malformed escape at offset %d", ErrSyntax, start)
	}

	v, err := strconv.ParseUint(l.src[l.pos:l.pos+n], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed escape at offset %d", ErrSyntax, start)
	}

	l.pos += n

	return rune(v), nil
}

func isDecimalDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigitInBase(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return isDecimalDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}

	return false
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200C' || r == '\u200D'
}
