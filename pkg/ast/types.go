// Package ast defines the parse-level tree produced by pkg/parser
// (spec §3 AST). Nodes are untyped; pkg/hir resolves them into typed
// HIR nodes.
package ast

import "github.com/chazu/pebble/pkg/names"

// Location is a position in the source file.
type Location struct {
	Line int
	Col  int
}

// Program bundles the two top-level bags: definitions, then
// expressions (spec §3).
type Program struct {
	Definitions []Definition
	Expressions []Expression
}

// Definition is a tagged union over the tree of class/method/constant
// definitions.
type Definition interface {
	definitionNode()
}

// ClassDefinition declares a class (and, recursively, its nested
// definitions). Superclass is empty iff no explicit superclass was
// written, in which case the class dictionary builder defaults it to
// Object.
type ClassDefinition struct {
	Name       names.ClassFirstname
	Superclass names.ClassFirstname
	Defs       []Definition
	Loc        Location
}

func (ClassDefinition) definitionNode() {}

// TypeName is an unresolved type reference as written in source; the
// class dictionary builder resolves it against the registered classes.
type TypeName struct {
	Name names.ClassFirstname
}

// Param is one parameter of a method signature, as written.
type Param struct {
	Name string
	Typ  TypeName
}

// MethodSignature is a method's name, ordered parameters, and declared
// return type, as written (unresolved).
type MethodSignature struct {
	Name   names.MethodFirstname
	Params []Param
	RetTyp TypeName
}

// InitializerDefinition is the `initialize` method. It is kept as a
// distinct definition kind (rather than folded into
// InstanceMethodDefinition) because the HIR maker must process it
// before any other member of its class, and because it is the one
// place instance variables are discovered (spec §4.3).
type InitializerDefinition struct {
	Sig  MethodSignature
	Body []Expression
	Loc  Location
}

func (InitializerDefinition) definitionNode() {}

// InstanceMethodDefinition declares an instance method.
type InstanceMethodDefinition struct {
	Sig  MethodSignature
	Body []Expression
	Loc  Location
}

func (InstanceMethodDefinition) definitionNode() {}

// ClassMethodDefinition declares a class (singleton) method.
type ClassMethodDefinition struct {
	Sig  MethodSignature
	Body []Expression
	Loc  Location
}

func (ClassMethodDefinition) definitionNode() {}

// ConstDefinition declares `Name = Expr` inside a class body or at the
// top level.
type ConstDefinition struct {
	Name names.ConstFirstname
	Expr Expression
	Loc  Location
}

func (ConstDefinition) definitionNode() {}

// IsInitializer reports whether d is the `initialize` definition.
func IsInitializer(d Definition) bool {
	_, ok := d.(InitializerDefinition)
	return ok
}

// Expression is one node of an expression tree. Primary records
// whether the node has no ambiguity with paren-less call extension
// (spec §4.1) — only primary expressions may serve as a receiver or be
// chained into a method call without parentheses.
type Expression struct {
	Body    ExpressionBody
	Primary bool
	Loc     Location
}

// ExpressionBody is the tagged union of expression node kinds.
type ExpressionBody interface {
	exprBody()
}

// LogicalNot is `not expr` / `!expr`.
type LogicalNot struct {
	Expr *Expression
}

func (LogicalNot) exprBody() {}

// LogicalAnd is `left and right` / `left && right`, short-circuiting.
type LogicalAnd struct {
	Left, Right *Expression
}

func (LogicalAnd) exprBody() {}

// LogicalOr is `left or right` / `left || right`, short-circuiting.
type LogicalOr struct {
	Left, Right *Expression
}

func (LogicalOr) exprBody() {}

// If is `if cond then? then (else else)? end` (or its `unless` mirror,
// already normalized by the parser). Else is nil iff no else clause was
// written.
type If struct {
	Cond, Then, Else *Expression
}

func (If) exprBody() {}

// MethodCall is a (possibly operator-lowered) message send. Receiver
// is nil for an implicit-self call. MayHaveParenWoArgs records whether
// this call, having been written with no arguments, is still eligible
// for paren-less argument promotion by the parser.
type MethodCall struct {
	Receiver           *Expression
	MethodName         names.MethodFirstname
	Args               []*Expression
	MayHaveParenWoArgs bool
}

func (MethodCall) exprBody() {}

// BareName is a lower-case identifier: a local-variable reference if
// bound in scope, otherwise a method call on implicit self.
type BareName struct {
	Name string
}

func (BareName) exprBody() {}

// ConstRef is an upper-case (possibly `::`-qualified) constant
// reference.
type ConstRef struct {
	Name string
}

func (ConstRef) exprBody() {}

// SelfExpr is the `self` keyword.
type SelfExpr struct{}

func (SelfExpr) exprBody() {}

// DecimalLiteral is an integer literal.
type DecimalLiteral struct {
	Value int32
}

func (DecimalLiteral) exprBody() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Value float32
}

func (FloatLiteral) exprBody() {}

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Value string
}

func (StringLiteral) exprBody() {}

// IVarRef is an `@name` reference.
type IVarRef struct {
	Name string
}

func (IVarRef) exprBody() {}

// BoolLiteral is the `true` or `false` keyword.
type BoolLiteral struct {
	Value bool
}

func (BoolLiteral) exprBody() {}

// Assign is `target = expr`. Target is the bare identifier as
// written; a leading `@` marks an instance-variable assignment
// (lowered against the current initializer's ivar table), anything
// else a local-variable assignment.
type Assign struct {
	Target string
	Value  *Expression
}

func (Assign) exprBody() {}

// MayHaveParenWoArgs reports whether e is eligible for paren-less
// argument-list promotion: a bare name, or a no-arg method call marked
// as such by the parser.
func (e *Expression) MayHaveParenWoArgs() bool {
	switch b := e.Body.(type) {
	case MethodCall:
		return b.MayHaveParenWoArgs
	case BareName:
		return true
	default:
		return false
	}
}

// WithArgs rewrites a bare name or argument-less method call into a
// method call with the given arguments — the paren-less call
// extension described in spec §4.1. e must satisfy
// MayHaveParenWoArgs(); panics otherwise.
func WithArgs(e *Expression, args []*Expression) *Expression {
	switch b := e.Body.(type) {
	case MethodCall:
		if len(b.Args) != 0 {
			panic("ast.WithArgs: method call already has args")
		}
		return &Expression{
			Primary: false,
			Loc:     e.Loc,
			Body: MethodCall{
				Receiver:   b.Receiver,
				MethodName: b.MethodName,
				Args:       args,
			},
		}
	case BareName:
		return &Expression{
			Primary: false,
			Loc:     e.Loc,
			Body: MethodCall{
				MethodName: names.MethodFirstname(b.Name),
				Args:       args,
			},
		}
	default:
		panic("ast.WithArgs: expression cannot take paren-less args")
	}
}

// BinOp builds the MethodCall a binary operator lowers to at parse
// time: `left op right` becomes `left.op(right)`.
func BinOp(left *Expression, op string, right *Expression, loc Location) *Expression {
	return &Expression{
		Primary: false,
		Loc:     loc,
		Body: MethodCall{
			Receiver:   left,
			MethodName: names.MethodFirstname(op),
			Args:       []*Expression{right},
		},
	}
}
