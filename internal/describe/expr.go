package describe

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Expr is a parsed type expression: a type name with optional type arguments.
//
//	string             -> {Name: "string"}
//	option<Inner>      -> {Name: "option", Args: [{Name: "Inner"}]}
//	map<string, list<Inner>>
type Expr struct {
	Name string
	Args []Expr
}

// String returns the canonical spelling of e.
func (e Expr) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return e.Name + "<" + strings.Join(args, ", ") + ">"
}

// ParseExpr parses a type expression.
func ParseExpr(s string) (Expr, error) {
	p := exprParser{src: []rune(s)}

	e, err := p.expr()
	if err != nil {
		return Expr{}, fmt.Errorf("type %q: %w", s, err)
	}

	p.skipSpace()

	if !p.eof() {
		return Expr{}, fmt.Errorf("type %q: unexpected %q at offset %d", s, p.src[p.pos], p.pos)
	}

	return e, nil
}

type exprParser struct {
	src []rune
	pos int
}

func (p *exprParser) expr() (Expr, error) {
	p.skipSpace()

	name := p.ident()
	if name == "" {
		if p.eof() {
			return Expr{}, errors.New("expected a type name at end of input")
		}

		return Expr{}, fmt.Errorf("expected a type name at offset %d, got %q", p.pos, p.src[p.pos])
	}

	e := Expr{Name: name}

	p.skipSpace()

	if !p.accept('<') {
		return e, nil
	}

	for {
		arg, err := p.expr()
		if err != nil {
			return Expr{}, err
		}

		e.Args = append(e.Args, arg)

		p.skipSpace()

		if p.accept(',') {
			continue
		}

		if p.accept('>') {
			return e, nil
		}

		if p.eof() {
			return Expr{}, fmt.Errorf("unclosed '<' after %s", name)
		}

		return Expr{}, fmt.Errorf("expected ',' or '>' at offset %d, got %q", p.pos, p.src[p.pos])
	}
}

func (p *exprParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentRune(p.src[p.pos]) {
		p.pos++
	}

	return string(p.src[start:p.pos])
}

func (p *exprParser) accept(r rune) bool {
	if !p.eof() && p.src[p.pos] == r {
		p.pos++
		return true
	}

	return false
}

func (p *exprParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *exprParser) eof() bool {
	return p.pos >= len(p.src)
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '/'
}
