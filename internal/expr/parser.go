package expr

import (
	"fmt"
	"strconv"

	tatcalcerrors "github.com/sarvind1/tat-calculator/pkg/errors"
)

// Parse lexes and parses a single expression string into its AST.
// Parse failures are scoped ExpressionErrors (kind ParseError), never a
// panic: the caller degrades that one expression rather than the whole PO.
func Parse(expression string) (Node, error) {
	lex := newLexer(expression)
	toks, err := lex.tokens()
	if err != nil {
		return nil, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, expression, err)
	}

	p := &parser{toks: toks}
	node, err := p.parseCompare()
	if err != nil {
		return nil, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, expression, err)
	}
	if p.cur().kind != tokEOF {
		return nil, tatcalcerrors.NewExpressionError(tatcalcerrors.ExprParseError, expression,
			fmt.Errorf("unexpected trailing input"))
	}
	return node, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) error {
	if p.cur().kind != kind {
		return fmt.Errorf("expected %s", what)
	}
	p.advance()
	return nil
}

// parseCompare handles the single (non-chaining) comparison level: expr
// ('=='|'!='|'<'|'<='|'>'|'>=') expr.
func (p *parser) parseCompare() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	op := ""
	switch p.cur().kind {
	case tokEq:
		op = "=="
	case tokNotEq:
		op = "!="
	case tokLt:
		op = "<"
	case tokLtEq:
		op = "<="
	case tokGt:
		op = ">"
	case tokGtEq:
		op = ">="
	default:
		return left, nil
	}
	p.advance()

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &Compare{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().kind {
		case tokPlus:
			op = "+"
		case tokMinus:
			op = "-"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.cur().kind {
		case tokStar:
			op = "*"
		case tokSlash:
			op = "/"
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if p.cur().kind == tokMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: "-", Left: &Literal{Kind: "int", Int: 0}, Right: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.cur()
	switch t.kind {
	case tokInt:
		p.advance()
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", t.text)
		}
		return &Literal{Kind: "int", Int: v}, nil
	case tokFloat:
		p.advance()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", t.text)
		}
		return &Literal{Kind: "float", Float: v}, nil
	case tokString:
		p.advance()
		return &Literal{Kind: "string", Str: t.text}, nil
	case tokLParen:
		p.advance()
		inner, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLBracket:
		return p.parseList()
	case tokIdent:
		return p.parseIdentOrCall()
	default:
		return nil, fmt.Errorf("unexpected token")
	}
}

func (p *parser) parseList() (Node, error) {
	if err := p.expect(tokLBracket, "'['"); err != nil {
		return nil, err
	}
	var elems []Node
	if p.cur().kind != tokRBracket {
		for {
			el, err := p.parseCompare()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}
	return &List{Elements: elems}, nil
}

func (p *parser) parseIdentOrCall() (Node, error) {
	name := p.advance().text
	if p.cur().kind != tokLParen {
		return &Name{Ident: name}, nil
	}

	p.advance() // consume '('
	var args []Node
	if p.cur().kind != tokRParen {
		for {
			arg, err := p.parseCompare()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return &Call{Func: name, Args: args}, nil
}
