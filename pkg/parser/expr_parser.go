package parser

import (
	"strconv"
	"strings"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/lexer"
	"github.com/chazu/pebble/pkg/names"
)

// parseExpr is the entry point for expression parsing; operator
// precedence from loosest to tightest: or, and, not, comparison,
// additive, multiplicative, unary, postfix/primary (spec §4.1
// Operator lowering).
func (p *Parser) parseExpr() (*ast.Expression, error) {
	p.skipWs()
	return p.parseOr()
}

func (p *Parser) parseOr() (*ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.KwOr || p.peek().Type == lexer.OrOr {
		loc := p.loc()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NonPrimary(ast.LogicalOr{Left: left, Right: right}, loc)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.KwAnd || p.peek().Type == lexer.AndAnd {
		loc := p.loc()
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NonPrimary(ast.LogicalAnd{Left: left, Right: right}, loc)
	}
	return left, nil
}

func (p *Parser) parseNot() (*ast.Expression, error) {
	if p.peek().Type == lexer.KwNot || p.peek().Type == lexer.Bang {
		loc := p.loc()
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NonPrimary(ast.LogicalNot{Expr: operand}, loc), nil
	}
	return p.parseComparison()
}

var comparisonOps = map[lexer.Type]string{
	lexer.EqEq: "==", lexer.NotEq: "!=",
	lexer.LessThan: "<", lexer.GreaterThan: ">",
	lexer.LessEq: "<=", lexer.GreaterEq: ">=",
}

func (p *Parser) parseComparison() (*ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.peek().Type]
		if !ok {
			return left, nil
		}
		loc := p.loc()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp(left, op, right, loc)
	}
}

func (p *Parser) parseAdditive() (*ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case lexer.BinaryPlus:
			op = "+"
		case lexer.BinaryMinus:
			op = "-"
		default:
			return left, nil
		}
		loc := p.loc()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp(left, op, right, loc)
	}
}

func (p *Parser) parseMultiplicative() (*ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek().Type {
		case lexer.Mul:
			op = "*"
		case lexer.Div:
			op = "/"
		case lexer.Mod:
			op = "%"
		default:
			return left, nil
		}
		loc := p.loc()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp(left, op, right, loc)
	}
}

func (p *Parser) parseUnary() (*ast.Expression, error) {
	switch p.peek().Type {
	case lexer.UnaryPlus:
		loc := p.loc()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NonPrimary(ast.MethodCall{Receiver: operand, MethodName: "+@"}, loc), nil
	case lexer.UnaryMinus:
		loc := p.loc()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NonPrimary(ast.MethodCall{Receiver: operand, MethodName: "-@"}, loc), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression, then any number of
// `.method(args)` chains, applying paren-less call promotion at each
// step where it is eligible (spec §4.1 Paren-less calls).
func (p *Parser) parsePostfix() (*ast.Expression, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	e, err = p.maybePromote(e)
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.Dot {
		loc := p.loc()
		p.advance()
		nameTok, err := p.expect(lexer.LowerWord)
		if err != nil {
			return nil, err
		}
		var args []*ast.Expression
		explicitParen := false
		if p.peek().Type == lexer.LParen {
			explicitParen = true
			args, err = p.parseArgList()
			if err != nil {
				return nil, err
			}
		}
		call := ast.NonPrimary(ast.MethodCall{
			Receiver:           e,
			MethodName:         names.MethodFirstname(nameTok.Text),
			Args:               args,
			MayHaveParenWoArgs: !explicitParen,
		}, loc)
		e, err = p.maybePromote(call)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// maybePromote implements paren-less call promotion: if e is eligible
// (a bare name, or a no-arg call not written with parens) and the
// next token starts a value on the same logical line, rewrite e into
// a call taking that value as its sole argument.
func (p *Parser) maybePromote(e *ast.Expression) (*ast.Expression, error) {
	if !e.MayHaveParenWoArgs() {
		return e, nil
	}
	if !p.peek().Type.ValueStarts() {
		return e, nil
	}
	arg, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.WithArgs(e, []*ast.Expression{arg}), nil
}

func (p *Parser) parseArgList() ([]*ast.Expression, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []*ast.Expression
	for p.peek().Type != lexer.RParen {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.peek().Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (*ast.Expression, error) {
	t := p.peek()
	loc := p.loc()
	switch t.Type {
	case lexer.Number:
		p.advance()
		if strings.Contains(t.Text, ".") {
			v, err := strconv.ParseFloat(t.Text, 32)
			if err != nil {
				return nil, p.parseErr("invalid float literal %q", t.Text)
			}
			return ast.Primary(ast.FloatLiteral{Value: float32(v)}, loc), nil
		}
		v, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			return nil, p.parseErr("invalid integer literal %q", t.Text)
		}
		return ast.Primary(ast.DecimalLiteral{Value: int32(v)}, loc), nil
	case lexer.Str:
		p.advance()
		return ast.Primary(ast.StringLiteral{Value: t.Text}, loc), nil
	case lexer.KwTrue:
		p.advance()
		return ast.Primary(ast.BoolLiteral{Value: true}, loc), nil
	case lexer.KwFalse:
		p.advance()
		return ast.Primary(ast.BoolLiteral{Value: false}, loc), nil
	case lexer.KwSelf:
		p.advance()
		return ast.Primary(ast.SelfExpr{}, loc), nil
	case lexer.IVar:
		p.advance()
		name := strings.TrimPrefix(t.Text, "@")
		if p.peek().Type == lexer.Equal {
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.NonPrimary(ast.Assign{Target: "@" + name, Value: rhs}, loc), nil
		}
		return ast.Primary(ast.IVarRef{Name: name}, loc), nil
	case lexer.LowerWord:
		p.advance()
		if p.peek().Type == lexer.Equal {
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return ast.NonPrimary(ast.Assign{Target: t.Text, Value: rhs}, loc), nil
		}
		if p.peek().Type == lexer.LParen {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return ast.NonPrimary(ast.MethodCall{MethodName: names.MethodFirstname(t.Text), Args: args}, loc), nil
		}
		return ast.Primary(ast.BareName{Name: t.Text}, loc), nil
	case lexer.UpperWord:
		name := t.Text
		p.advance()
		for p.peek().Type == lexer.ColonColon {
			p.advance()
			next, err := p.expect(lexer.UpperWord)
			if err != nil {
				return nil, err
			}
			name += "::" + next.Text
		}
		return ast.Primary(ast.ConstRef{Name: name}, loc), nil
	case lexer.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		e.Primary = true
		return e, nil
	case lexer.KwIf:
		return p.parseIf(false)
	case lexer.KwUnless:
		return p.parseIf(true)
	default:
		return nil, p.parseErr("unexpected token %s %q", t.Type, t.Text)
	}
}

// parseIf parses `if COND then? THEN (else ELSE)? end`; unless is the
// mirror image, with condition and then/else branches swapped at
// parse time (spec §4.1 If form).
func (p *Parser) parseIf(isUnless bool) (*ast.Expression, error) {
	loc := p.loc()
	p.advance() // 'if' or 'unless'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipWs()
	if p.peek().Type == lexer.KwThen {
		p.advance()
	}
	p.skipWs()

	then, err := p.parseStmtsUntil(lexer.KwElse, lexer.KwEnd)
	if err != nil {
		return nil, err
	}
	var elseExpr *ast.Expression
	if p.peek().Type == lexer.KwElse {
		p.advance()
		p.skipWs()
		els, err := p.parseStmtsUntil(lexer.KwEnd)
		if err != nil {
			return nil, err
		}
		elseExpr = els
	}
	if _, err := p.expect(lexer.KwEnd); err != nil {
		return nil, err
	}

	thenExpr, elseExpr2 := then, elseExpr
	if isUnless {
		// `unless cond then a else b end` means `if cond then b else a end`.
		if elseExpr == nil {
			return nil, p.parseErr("unless requires an else clause to negate cleanly")
		}
		thenExpr, elseExpr2 = elseExpr, then
	}
	return ast.NonPrimary(ast.If{Cond: cond, Then: thenExpr, Else: elseExpr2}, loc), nil
}

// parseStmtsUntil parses a sequence of separator-delimited expressions
// up to (without consuming) one of the given terminator token types,
// and folds them into a single expression: a single statement's value
// is returned as-is; multiple statements are not supported by this
// grammar's single-expression branches, so the last one wins.
func (p *Parser) parseStmtsUntil(terminators ...lexer.Type) (*ast.Expression, error) {
	p.skipWs()
	var last *ast.Expression
	for !p.atTerminator(terminators) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		last = e
		p.skipWs()
	}
	if last == nil {
		return nil, p.parseErr("if/unless branch must contain at least one expression")
	}
	return last, nil
}

func (p *Parser) atTerminator(types []lexer.Type) bool {
	for _, t := range types {
		if p.peek().Type == t {
			return true
		}
	}
	return false
}
