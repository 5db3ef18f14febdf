// Package parser implements a recursive-descent parser over
// pkg/lexer's token stream, producing the AST described in spec §3
// (spec §4.1 Parser).
//
// Whitespace handling: parseExpr and the definition/body loops consume
// leading whitespace/separators before inspecting tokens; the operator
// and primary parsers do not, so an operand of a binary or unary
// operator must start on the same line as the operator. Trailing
// whitespace is left untouched for the caller.
package parser

import (
	"fmt"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/lexer"
)

// Parser holds the token stream and current read position.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse tokenizes and parses src in one step.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: toks}
	return p.parseProgram()
}

func (p *Parser) peek() lexer.Token      { return p.tokens[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if t.Type != lexer.Eof {
		p.pos++
	}
	return t
}
func (p *Parser) atEnd() bool { return p.peek().Type == lexer.Eof }

func (p *Parser) parseErr(format string, args ...interface{}) error {
	t := p.peek()
	return diagnostics.Parse(fmt.Sprintf(format, args...), t.Line, t.Col)
}

// skipWs consumes BOF and Separator tokens; it is the `skip_wsn`
// analog referenced by spec §4.1's whitespace discipline.
func (p *Parser) skipWs() {
	for p.peek().Type == lexer.Bof || p.peek().Type == lexer.Separator {
		p.advance()
	}
}

func (p *Parser) expect(t lexer.Type) (lexer.Token, error) {
	if p.peek().Type != t {
		return lexer.Token{}, p.parseErr("expected %s, got %s %q", t, p.peek().Type, p.peek().Text)
	}
	return p.advance(), nil
}

// parseProgram implements "definitions before expressions": consume
// every top-level definition, then every remaining top-level
// expression, then require EOF (spec §4.1, testable property #3).
func (p *Parser) parseProgram() (*ast.Program, error) {
	p.skipWs()
	var defs []ast.Definition
	for {
		d, ok, err := p.tryParseDefinition()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		defs = append(defs, d)
		p.skipWs()
	}

	var exprs []ast.Expression
	for !p.atEnd() {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, *e)
		p.skipWs()
	}

	if !p.atEnd() {
		return nil, p.parseErr("expected EOF, got %s", p.peek().Type)
	}
	return &ast.Program{Definitions: defs, Expressions: exprs}, nil
}

// tryParseDefinition recognizes the definition-starting tokens
// (`class`, `def`, or an `UpperWord =` constant assignment) without
// consuming anything if none match.
func (p *Parser) tryParseDefinition() (ast.Definition, bool, error) {
	switch p.peek().Type {
	case lexer.KwClass:
		d, err := p.parseClassDefinition()
		return d, true, err
	case lexer.KwDef:
		d, err := p.parseMethodDefinition()
		return d, true, err
	case lexer.UpperWord:
		if p.peekAt(1).Type == lexer.Equal {
			d, err := p.parseConstDefinition()
			return d, true, err
		}
	}
	return nil, false, nil
}
