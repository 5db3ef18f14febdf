// Package hir defines the typed, resolved tree produced by the HIR
// maker (spec §3 HIR) and the Hir value a compile ultimately returns.
package hir

import (
	"github.com/google/uuid"

	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/types"
)

// Expression is the tagged union of HIR expression node kinds. Every
// implementer carries its own resolved TermTy, retrievable via Ty, so
// no separate type-annotation table is needed alongside the tree.
type Expression interface {
	hirExpr()
	Ty() types.TermTy
}

// Statement is the tagged union of HIR statement node kinds. Only
// constant initialization is modeled as a statement distinct from an
// expression; everything else in a method body is itself an
// Expression (the language has no statement/expression split at the
// surface).
type Statement interface {
	hirStmt()
}

// Literal is a resolved numeric or boolean literal. Bool literals
// come both from the `true`/`false` keywords and from the lowering of
// not/and/or into if-forms.
type Literal struct {
	Value interface{} // int32, float32, or bool
	Type  types.TermTy
}

func (Literal) hirExpr()          {}
func (e Literal) Ty() types.TermTy { return e.Type }

// StringLiteral references a slot in the HIR's string-literal pool.
type StringLiteral struct {
	Index int
}

func (StringLiteral) hirExpr()          {}
func (StringLiteral) Ty() types.TermTy { return types.NewRaw("String") }

// SelfRef reads the receiver of the enclosing method body.
type SelfRef struct {
	Type types.TermTy
}

func (SelfRef) hirExpr()          {}
func (e SelfRef) Ty() types.TermTy { return e.Type }

// LVarRef reads a local variable or parameter bound in the current
// method-context frame.
type LVarRef struct {
	Name string
	Type types.TermTy
}

func (LVarRef) hirExpr()          {}
func (e LVarRef) Ty() types.TermTy { return e.Type }

// IVarRef reads an instance variable of self.
type IVarRef struct {
	Name string
	Idx  int
	Type types.TermTy
}

func (IVarRef) hirExpr()          {}
func (e IVarRef) Ty() types.TermTy { return e.Type }

// IVarAssign assigns to an instance variable of self, declaring it in
// the class dictionary the first time it is seen inside an
// initializer (spec §4.3).
type IVarAssign struct {
	Name string
	Idx  int
	Type types.TermTy
	RHS  Expression
}

func (IVarAssign) hirExpr()          {}
func (e IVarAssign) Ty() types.TermTy { return e.Type }

// LVarAssign assigns to (and, on first occurrence, declares) a local
// variable in the current scope.
type LVarAssign struct {
	Name string
	Type types.TermTy
	RHS  Expression
}

func (LVarAssign) hirExpr()          {}
func (e LVarAssign) Ty() types.TermTy { return e.Type }

// ConstRef reads a materialized constant (a class-literal constant, a
// user `Name = expr` constant, or a corelib constant).
type ConstRef struct {
	Fullname names.ConstFullname
	Type     types.TermTy
}

func (ConstRef) hirExpr()          {}
func (e ConstRef) Ty() types.TermTy { return e.Type }

// ClassLiteral materializes the class object for fullname. NameIndex
// is the string-pool slot holding fullname's printable text, used by
// the back end for `Class#name` / `inspect`.
type ClassLiteral struct {
	Fullname  names.ClassFullname
	NameIndex int
	Type      types.TermTy
}

func (ClassLiteral) hirExpr()          {}
func (e ClassLiteral) Ty() types.TermTy { return e.Type }

// MethodCall is a resolved, typed message send.
type MethodCall struct {
	Receiver Expression // nil iff implicit self
	Method   names.MethodFullname
	Args     []Expression
	Type     types.TermTy
}

func (MethodCall) hirExpr()          {}
func (e MethodCall) Ty() types.TermTy { return e.Type }

// If is a fully-typed if-expression. Else is never nil: a missing
// `else` clause lowers to a Nop of type Void (spec §4.3).
type If struct {
	Cond, Then, Else Expression
	Type             types.TermTy
}

func (If) hirExpr()          {}
func (e If) Ty() types.TermTy { return e.Type }

// Nop stands in for an omitted else-branch; it has type Void and no
// runtime effect.
type Nop struct{}

func (Nop) hirExpr()          {}
func (Nop) Ty() types.TermTy { return types.NewRaw(names.ClassFullname(types.Void)) }

// ConstInit is a top-level assignment that must run before main_exprs
// (spec §3 HIR, §4.3 top-level lowering): either a materialized
// class-constant or a user `Name = expr` definition.
type ConstInit struct {
	Fullname names.ConstFullname
	RHS      Expression
}

func (ConstInit) hirStmt() {}

// SkMethod is one fully-lowered, typed method: its signature (from
// pkg/classdict) and its typed body. Body is nil for a corelib method
// supplied as a back-end intrinsic, for a synthesized `.new`, and for
// a user method whose body is empty — check SynthesizedNew first.
type SkMethod struct {
	Fullname       names.MethodFullname
	Sig            classdict.MethodSignature
	Body           []Expression
	SynthesizedNew *classdict.SynthesizedNewBody
}

// Hir is the complete output of a successful compile (spec §3, §6).
// It exclusively owns every value reachable from it; there are no
// back-references into the class dictionary or AST.
type Hir struct {
	SkClasses   *classdict.ClassDict
	SkMethods   map[names.MethodFullname]SkMethod
	Constants   map[names.ConstFullname]types.TermTy
	ConstInits  []ConstInit
	StrLiterals []string
	MainExprs   []Expression
	// BuildID correlates this Hir with log lines and diagnostics
	// emitted during its construction; it carries no semantic weight
	// for the back end.
	BuildID uuid.UUID
}
