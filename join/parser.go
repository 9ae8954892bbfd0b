package join

import (
	_c "context"
	"fmt"

	"github.com/pkg/errors"

	"hermes"
)

//Resolver opens the leaf source named in a composition expression. id is
//the priority rank the leaf's position assigns, rightmost is largest.
type Resolver func(ctx _c.Context, name string, id int) (hermes.Source, error)

//Parse builds the source tree of a composition expression, for example
//
//	override(impressions,clicks)
//	inner(users,outer(stores,transactions))
//
//Leaves are resolved through resolve, every inner node becomes an Engine.
//Within one node kids are ranked by argument position, so override prefers
//its rightmost argument. The returned source is positioned at its first
//record and owns the whole tree, closing it closes every leaf.
func Parse(ctx _c.Context, cmp hermes.Comparator, expr string, resolve Resolver) (hermes.Source, error) {
	p := &parser{lex: lexer{in: expr}, cmp: cmp, resolve: resolve}
	src, err := p.parse(ctx, 0)
	if err != nil {
		return nil, err
	}
	if tok, _ := p.lex.next(); tok != tokEOF {
		src.Close()
		return nil, errors.Errorf("parse %q: trailing input", expr)
	}
	return src, nil
}

type parser struct {
	lex     lexer
	cmp     hermes.Comparator
	resolve Resolver
}

func (p *parser) parse(ctx _c.Context, id int) (hermes.Source, error) {
	tok, text := p.lex.next()
	if tok != tokIdent {
		return nil, errors.Errorf("parse: expected identifier at offset %d", p.lex.pos)
	}
	if tok, _ := p.lex.peek(); tok != tokLParen {
		return p.resolve(ctx, text, id)
	}
	switch text {
	case Inner, Outer, Override:
	default:
		return nil, errors.WithMessage(ErrUnknownPolicy, text)
	}
	p.lex.next() //consume (
	var kids []hermes.Source
	closeKids := func() {
		for _, kid := range kids {
			kid.Close()
		}
	}
	for {
		kid, err := p.parse(ctx, len(kids))
		if err != nil {
			closeKids()
			return nil, err
		}
		kids = append(kids, kid)
		tok, _ := p.lex.next()
		if tok == tokRParen {
			break
		}
		if tok != tokComma {
			closeKids()
			return nil, errors.Errorf("parse: expected , or ) at offset %d", p.lex.pos)
		}
	}
	return NewEngine(ctx, id, p.cmp, text, kids...)
}

type token uint8

const (
	tokEOF token = iota
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokBad
)

type lexer struct {
	in  string
	pos int

	buffered bool
	tok      token
	text     string
}

func (l *lexer) peek() (token, string) {
	if !l.buffered {
		l.tok, l.text = l.scan()
		l.buffered = true
	}
	return l.tok, l.text
}

func (l *lexer) next() (token, string) {
	tok, text := l.peek()
	l.buffered = false
	return tok, text
}

func (l *lexer) scan() (token, string) {
	for l.pos < len(l.in) && (l.in[l.pos] == ' ' || l.in[l.pos] == '\t' || l.in[l.pos] == '\n') {
		l.pos++
	}
	if l.pos >= len(l.in) {
		return tokEOF, ""
	}
	switch c := l.in[l.pos]; c {
	case '(':
		l.pos++
		return tokLParen, "("
	case ')':
		l.pos++
		return tokRParen, ")"
	case ',':
		l.pos++
		return tokComma, ","
	default:
		start := l.pos
		for l.pos < len(l.in) && identByte(l.in[l.pos]) {
			l.pos++
		}
		if l.pos == start {
			return tokBad, fmt.Sprintf("%c", c)
		}
		return tokIdent, l.in[start:l.pos]
	}
}

func identByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '-' || c == '.'
}
