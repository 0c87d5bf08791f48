package literal

import (
	"fmt"
	"strconv"
)

// undefinedValue marks a JavaScript undefined while the tree is built. It
// never escapes the parser: object members holding it are deleted and array
// slots holding it become nil.
type undefinedValue struct{}

// parser is a recursive-descent parser over the literal subset of the
// JavaScript expression grammar. It evaluates while it parses, so the
// result of a successful parse is already plain data.
type parser struct {
	lex   lexer
	tok   token
	depth int
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("%w: more than %d levels at offset %d", ErrTooDeep, MaxDepth, p.tok.pos)
	}

	return nil
}

func (p *parser) leave() {
	p.depth--
}

// unexpected reports the current token. Operators, identifiers, calls and
// member access are valid JavaScript that falls outside the literal subset,
// so they are reported as [ErrNotLiteral] rather than [ErrSyntax].
func (p *parser) unexpected() error {
	switch p.tok.kind {
	case tokOperator, tokIdent, tokPlus, tokMinus, tokLParen, tokLBracket:
		return fmt.Errorf("%w: unexpected %s at offset %d", ErrNotLiteral, p.tok, p.tok.pos)
	default:
		return fmt.Errorf("%w: unexpected %s at offset %d", ErrSyntax, p.tok, p.tok.pos)
	}
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return fmt.Errorf("%w, want %s", p.unexpected(), kind)
	}

	return p.advance()
}

// parseValue parses one literal expression.
func (p *parser) parseValue() (any, error) {
	err := p.enter()
	if err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.tok.kind {
	case tokLBrace:
		return p.parseObject()
	case tokLBracket:
		return p.parseArray()
	case tokLParen:
		return p.parseParen()
	case tokPlus, tokMinus:
		return p.parseUnary()
	case tokString:
		s := p.tok.str

		return s, p.advance()
	case tokNumber:
		n := p.tok.num

		return n, p.advance()
	case tokIdent:
		return p.parseKeyword()
	}

	return nil, p.unexpected()
}

func (p *parser) parseKeyword() (any, error) {
	var v any

	switch p.tok.text {
	case "true":
		v = true
	case "false":
		v = false
	case "null":
		v = nil
	case "undefined":
		v = undefinedValue{}
	default:
		return nil, fmt.Errorf("%w: identifier %q at offset %d", ErrNotLiteral, p.tok.text, p.tok.pos)
	}

	return v, p.advance()
}

func (p *parser) parseParen() (any, error) {
	err := p.advance()
	if err != nil {
		return nil, err
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	err = p.expect(tokRParen)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// parseUnary handles sign prefixes. Only numeric operands are accepted;
// JavaScript would coerce other operands, which is evaluation rather than
// literal reading.
func (p *parser) parseUnary() (any, error) {
	op := p.tok

	err := p.advance()
	if err != nil {
		return nil, err
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	n, ok := v.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: unary %q on non-numeric operand at offset %d", ErrNotLiteral, op.text, op.pos)
	}

	if op.kind == tokMinus {
		return -n, nil
	}

	return n, nil
}

func (p *parser) parseArray() (any, error) {
	err := p.advance()
	if err != nil {
		return nil, err
	}

	arr := []any{}

	for {
		switch p.tok.kind {
		case tokRBracket:
			return arr, p.advance()
		case tokComma:
			// Elision: a hole reads as undefined.
			arr = append(arr, nil)

			err = p.advance()
			if err != nil {
				return nil, err
			}

			continue
		case tokOperator:
			if p.tok.text == "..." || p.tok.text == "." {
				return nil, fmt.Errorf("%w: spread element at offset %d", ErrNotLiteral, p.tok.pos)
			}
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		if _, undef := v.(undefinedValue); undef {
			v = nil
		}

		arr = append(arr, v)

		if p.tok.kind == tokRBracket {
			continue
		}

		err = p.expect(tokComma)
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseObject() (any, error) {
	err := p.advance()
	if err != nil {
		return nil, err
	}

	obj := map[string]any{}

	for p.tok.kind != tokRBrace {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		if p.tok.kind != tokColon {
			if p.tok.kind == tokComma || p.tok.kind == tokRBrace || p.tok.kind == tokLParen {
				return nil, fmt.Errorf("%w: shorthand or method property %q at offset %d",
					ErrNotLiteral, key, p.tok.pos)
			}

			return nil, p.expect(tokColon)
		}

		err = p.advance()
		if err != nil {
			return nil, err
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		switch {
		case key == "__proto__":
			// A literal __proto__ member sets the prototype rather than
			// creating a property; plain data has no prototype.
		case isUndefined(v):
			delete(obj, key)
		default:
			obj[key] = v
		}

		if p.tok.kind == tokRBrace {
			break
		}

		err = p.expect(tokComma)
		if err != nil {
			return nil, err
		}
	}

	return obj, p.advance()
}

func (p *parser) parseKey() (string, error) {
	tok := p.tok

	switch tok.kind {
	case tokIdent:
		return tok.text, p.advance()
	case tokString:
		return tok.str, p.advance()
	case tokNumber:
		return numberKey(tok.num), p.advance()
	case tokLBracket:
		return "", fmt.Errorf("%w: computed property key at offset %d", ErrNotLiteral, tok.pos)
	case tokOperator:
		if tok.text == "..." || tok.text == "." {
			return "", fmt.Errorf("%w: spread property at offset %d", ErrNotLiteral, tok.pos)
		}

		return "", p.unexpected()
	}

	return "", p.unexpected()
}

// numberKey renders a numeric property key the way JavaScript converts
// numbers to property names.
func numberKey(n float64) string {
	if n == float64(int64(n)) && n < 1e21 && n > -1e21 {
		return strconv.FormatInt(int64(n), 10)
	}

	return strconv.FormatFloat(n, 'g', -1, 64)
}

func isUndefined(v any) bool {
	_, ok := v.(undefinedValue)

	return ok
}
