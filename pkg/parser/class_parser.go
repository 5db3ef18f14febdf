package parser

import (
	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/lexer"
	"github.com/chazu/pebble/pkg/names"
)

// parseClassDefinition parses `class Name (< Super)? sep defs* end`.
func (p *Parser) parseClassDefinition() (ast.Definition, error) {
	loc := p.loc()
	if _, err := p.expect(lexer.KwClass); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.UpperWord)
	if err != nil {
		return nil, err
	}
	var super names.ClassFirstname
	if p.peek().Type == lexer.LessThan {
		p.advance()
		superTok, err := p.expect(lexer.UpperWord)
		if err != nil {
			return nil, err
		}
		super = names.ClassFirstname(superTok.Text)
	}
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

	if _, err := p.expect(lexer.KwEnd); err != nil {
		return nil, err
	}
	return ast.ClassDefinition{
		Name:       names.ClassFirstname(nameTok.Text),
		Superclass: super,
		Defs:       defs,
		Loc:        loc,
	}, nil
}

// parseConstDefinition parses `Name = expr`.
func (p *Parser) parseConstDefinition() (ast.Definition, error) {
	loc := p.loc()
	nameTok, err := p.expect(lexer.UpperWord)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Equal); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.ConstDefinition{
		Name: names.ConstFirstname(nameTok.Text),
		Expr: *e,
		Loc:  loc,
	}, nil
}

// parseMethodDefinition parses `def (self.)? name ((params))? (-> RetType)? sep body end`.
// `initialize` is parsed into a distinct ast.InitializerDefinition
// (spec §4.3 requires it lowered first and specially).
func (p *Parser) parseMethodDefinition() (ast.Definition, error) {
	loc := p.loc()
	if _, err := p.expect(lexer.KwDef); err != nil {
		return nil, err
	}

	isClassMethod := false
	if p.peek().Type == lexer.KwSelf && p.peekAt(1).Type == lexer.Dot {
		p.advance()
		p.advance()
		isClassMethod = true
	}

	methodName, err := p.parseMethodName()
	if err != nil {
		return nil, err
	}

	var params []ast.Param
	if p.peek().Type == lexer.LParen {
		params, err = p.parseParamList()
		if err != nil {
			return nil, err
		}
	}

	var retTyp ast.TypeName
	if p.peek().Type == lexer.RightArrow {
		p.advance()
		retTok, err := p.expect(lexer.UpperWord)
		if err != nil {
			return nil, err
		}
		retTyp = ast.TypeName{Name: names.ClassFirstname(retTok.Text)}
	}
	p.skipWs()

	body, err := p.parseBodyUntilEnd()
	if err != nil {
		return nil, err
	}

	sig := ast.MethodSignature{Name: methodName, Params: params, RetTyp: retTyp}

	if methodName == "initialize" && !isClassMethod {
		return ast.InitializerDefinition{Sig: sig, Body: body, Loc: loc}, nil
	}
	if isClassMethod {
		return ast.ClassMethodDefinition{Sig: sig, Body: body, Loc: loc}, nil
	}
	return ast.InstanceMethodDefinition{Sig: sig, Body: body, Loc: loc}, nil
}

// parseMethodName accepts a lower-case identifier or one of the
// operator symbols that double as method names (spec §4.1 "operators
// are just methods").
func (p *Parser) parseMethodName() (names.MethodFirstname, error) {
	t := p.peek()
	if op, ok := operatorMethodNames[t.Type]; ok {
		p.advance()
		return op, nil
	}
	if t.Type == lexer.LowerWord {
		p.advance()
		return names.MethodFirstname(t.Text), nil
	}
	return "", p.parseErr("expected method name, got %s", t.Type)
}

var operatorMethodNames = map[lexer.Type]names.MethodFirstname{
	lexer.BinaryPlus:   "+",
	lexer.UnaryPlus:    "+",
	lexer.UPlusMethod:  "+@",
	lexer.BinaryMinus:  "-",
	lexer.UnaryMinus:   "-",
	lexer.UMinusMethod: "-@",
	lexer.Mul:          "*",
	lexer.Div:          "/",
	lexer.Mod:          "%",
	lexer.EqEq:         "==",
	lexer.NotEq:        "!=",
	lexer.LessThan:     "<",
	lexer.GreaterThan:  ">",
	lexer.LessEq:       "<=",
	lexer.GreaterEq:    ">=",
}

// parseParamList parses `( (name: Type (, name: Type)*)? )`.
func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.peek().Type != lexer.RParen {
		nameTok, err := p.expect(lexer.LowerWord)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		typTok, err := p.expect(lexer.UpperWord)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{
			Name: nameTok.Text,
			Typ:  ast.TypeName{Name: names.ClassFirstname(typTok.Text)},
		})
		if p.peek().Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseBodyUntilEnd parses a sequence of separator-delimited
// expressions up to (and consuming) a closing `end`.
func (p *Parser) parseBodyUntilEnd() ([]ast.Expression, error) {
	var body []ast.Expression
	p.skipWs()
	for p.peek().Type != lexer.KwEnd {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body = append(body, *e)
		p.skipWs()
	}
	if _, err := p.expect(lexer.KwEnd); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) loc() ast.Location {
	t := p.peek()
	return ast.Location{Line: t.Line, Col: t.Col}
}
