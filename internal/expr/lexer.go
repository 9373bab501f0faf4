package expr

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokString
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq
	tokNotEq
	tokLt
	tokLtEq
	tokGt
	tokGtEq
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	input []rune
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) tokens() ([]token, error) {
	var toks []token
	for {
		l.skipSpace()
		r, ok := l.peekRune()
		if !ok {
			toks = append(toks, token{kind: tokEOF})
			return toks, nil
		}

		switch {
		case r == '(':
			toks = append(toks, token{kind: tokLParen})
			l.pos++
		case r == ')':
			toks = append(toks, token{kind: tokRParen})
			l.pos++
		case r == '[':
			toks = append(toks, token{kind: tokLBracket})
			l.pos++
		case r == ']':
			toks = append(toks, token{kind: tokRBracket})
			l.pos++
		case r == ',':
			toks = append(toks, token{kind: tokComma})
			l.pos++
		case r == '+':
			toks = append(toks, token{kind: tokPlus})
			l.pos++
		case r == '-':
			toks = append(toks, token{kind: tokMinus})
			l.pos++
		case r == '*':
			toks = append(toks, token{kind: tokStar})
			l.pos++
		case r == '/':
			toks = append(toks, token{kind: tokSlash})
			l.pos++
		case r == '=':
			if l.lookahead(1) == '=' {
				toks = append(toks, token{kind: tokEq})
				l.pos += 2
			} else {
				return nil, fmt.Errorf("unexpected character '=' at position %d", l.pos)
			}
		case r == '!':
			if l.lookahead(1) == '=' {
				toks = append(toks, token{kind: tokNotEq})
				l.pos += 2
			} else {
				return nil, fmt.Errorf("unexpected character '!' at position %d", l.pos)
			}
		case r == '<':
			if l.lookahead(1) == '=' {
				toks = append(toks, token{kind: tokLtEq})
				l.pos += 2
			} else {
				toks = append(toks, token{kind: tokLt})
				l.pos++
			}
		case r == '>':
			if l.lookahead(1) == '=' {
				toks = append(toks, token{kind: tokGtEq})
				l.pos += 2
			} else {
				toks = append(toks, token{kind: tokGt})
				l.pos++
			}
		case r == '\'' || r == '"':
			tok, err := l.lexString(r)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isDigit(r):
			toks = append(toks, l.lexNumber())
		case isIdentStart(r):
			toks = append(toks, l.lexIdent())
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", r, l.pos)
		}
	}
}

func (l *lexer) lookahead(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t' || l.input[l.pos] == '\n' || l.input[l.pos] == '\r') {
		l.pos++
	}
}

func (l *lexer) lexString(quote rune) (token, error) {
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, fmt.Errorf("unterminated string literal")
		}
		if r == quote {
			l.pos++
			return token{kind: tokString, text: sb.String()}, nil
		}
		sb.WriteRune(r)
		l.pos++
	}
}

func (l *lexer) lexNumber() token {
	start := l.pos
	isFloat := false
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		if l.input[l.pos] == '.' {
			isFloat = true
		}
		l.pos++
	}
	text := string(l.input[start:l.pos])
	if isFloat {
		return token{kind: tokFloat, text: text}
	}
	return token{kind: tokInt, text: text}
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.input[start:l.pos])}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
