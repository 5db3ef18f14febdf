package hir

import (
	"fmt"
	"strings"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/typecheck"
	"github.com/chazu/pebble/pkg/types"
)

// lowerExpr dispatches one AST expression node to its HIR form,
// implementing the table in spec §4.3.
func (m *Maker) lowerExpr(e *ast.Expression) (Expression, error) {
	switch b := e.Body.(type) {
	case ast.DecimalLiteral:
		return Literal{Value: b.Value, Type: types.NewRaw("Int")}, nil
	case ast.FloatLiteral:
		return Literal{Value: b.Value, Type: types.NewRaw("Float")}, nil
	case ast.StringLiteral:
		return StringLiteral{Index: m.internString(b.Value)}, nil
	case ast.BoolLiteral:
		return Literal{Value: b.Value, Type: types.NewRaw("Bool")}, nil
	case ast.SelfExpr:
		return m.lowerSelf()
	case ast.BareName:
		return m.lowerBareName(b.Name)
	case ast.ConstRef:
		return m.lowerConstRef(b.Name)
	case ast.IVarRef:
		return m.lowerIVarRef(b.Name)
	case ast.Assign:
		return m.lowerAssign(b)
	case ast.MethodCall:
		return m.lowerMethodCall(b)
	case ast.LogicalNot:
		return m.lowerLogicalNot(b)
	case ast.LogicalAnd:
		return m.lowerLogicalAnd(b)
	case ast.LogicalOr:
		return m.lowerLogicalOr(b)
	case ast.If:
		return m.lowerIf(b)
	default:
		diagnostics.Bug("lowerExpr: unhandled expression body %T", e.Body)
		return nil, nil
	}
}

func (m *Maker) lowerSelf() (Expression, error) {
	ctx := m.top()
	if err := typecheck.CheckSelfScope(ctx != nil); err != nil {
		return nil, err
	}
	return SelfRef{Type: ctx.SelfType}, nil
}

// lowerBareName resolves a lower-case identifier: a bound local
// variable or parameter first, else a method call on implicit self
// (spec §4.3).
func (m *Maker) lowerBareName(name string) (Expression, error) {
	ctx := m.top()
	if ctx != nil {
		if ty, ok := ctx.resolveLocal(name); ok {
			return LVarRef{Name: name, Type: ty}, nil
		}
	}
	return m.lowerMethodCall(ast.MethodCall{MethodName: names.MethodFirstname(name)})
}

func (m *Maker) lowerConstRef(name string) (Expression, error) {
	full := names.NewConstFullname("", names.ConstFirstname(name))
	ty, ok := m.constants[full]
	if !ok {
		// Only the top-level namespace is searched: a constant defined
		// inside a class body is not found by its bare name.
		return nil, diagnostics.Name(fmt.Sprintf("unknown constant %s", name))
	}
	return ConstRef{Fullname: full, Type: ty}, nil
}

func (m *Maker) lowerIVarRef(name string) (Expression, error) {
	ctx := m.top()
	if ctx == nil {
		return nil, diagnostics.Type("@" + name + " is invalid outside a method body")
	}
	className := names.ClassFullname(ctx.Namespace)
	if iv, ok := m.dict.FindIvar(className, names.ConstFirstname(name)); ok {
		return IVarRef{Name: name, Idx: iv.Idx, Type: iv.Ty}, nil
	}
	for _, iv := range ctx.IVars {
		if string(iv.Name) == name {
			return IVarRef{Name: name, Idx: iv.Idx, Type: iv.Ty}, nil
		}
	}
	return nil, diagnostics.Name(fmt.Sprintf("unknown ivar @%s on %s", name, className))
}

// lowerAssign handles both ivar and local-variable assignment (spec
// §4.3 Initializer lowering). An ivar assignment inside the current
// initializer frame declares a fresh slot the first time it is seen;
// a re-assignment reuses the existing slot and requires the RHS to
// conform to the recorded type.
func (m *Maker) lowerAssign(b ast.Assign) (Expression, error) {
	rhs, err := m.lowerExpr(b.Value)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(b.Target, "@") {
		return m.lowerIVarAssign(strings.TrimPrefix(b.Target, "@"), rhs)
	}
	return m.lowerLVarAssign(b.Target, rhs)
}

func (m *Maker) lowerIVarAssign(name string, rhs Expression) (Expression, error) {
	ctx := m.top()
	if ctx == nil || !ctx.InInitializer {
		return nil, diagnostics.Type("@" + name + " can only be assigned inside initialize")
	}
	className := names.ClassFullname(ctx.Namespace)
	if iv, ok := m.dict.FindIvar(className, names.ConstFirstname(name)); ok && iv.Readonly {
		return nil, diagnostics.Type("@" + name + " is readonly and cannot be assigned")
	}
	for _, iv := range ctx.IVars {
		if string(iv.Name) == name {
			if iv.Readonly {
				return nil, diagnostics.Type("@" + name + " is readonly and cannot be assigned")
			}
			if err := typecheck.CheckArgType(m.dict, "@"+name, 0, iv.Ty, rhs.Ty()); err != nil {
				return nil, err
			}
			return IVarAssign{Name: name, Idx: iv.Idx, Type: iv.Ty, RHS: rhs}, nil
		}
	}
	idx := m.dict.IVarOffset(className) + len(m.dict.Get(className).IVars) + len(ctx.IVars)
	iv := classdict.SkIVar{Name: names.ConstFirstname(name), Idx: idx, Ty: rhs.Ty()}
	ctx.IVars = append(ctx.IVars, iv)
	return IVarAssign{Name: name, Idx: iv.Idx, Type: iv.Ty, RHS: rhs}, nil
}

func (m *Maker) lowerLVarAssign(name string, rhs Expression) (Expression, error) {
	ctx := m.top()
	if ctx == nil {
		return nil, diagnostics.Type("local assignment is invalid at top level outside a method body")
	}
	if existing, ok := ctx.Locals[name]; ok {
		if err := typecheck.CheckArgType(m.dict, name, 0, existing, rhs.Ty()); err != nil {
			return nil, err
		}
		return LVarAssign{Name: name, Type: existing, RHS: rhs}, nil
	}
	ctx.Locals[name] = rhs.Ty()
	return LVarAssign{Name: name, Type: rhs.Ty(), RHS: rhs}, nil
}

// lowerMethodCall resolves the receiver (or implicit self), looks up
// the signature via lookup_method, checks arity and argument types,
// and returns the typed call (spec §4.3, §4.4 Method call).
func (m *Maker) lowerMethodCall(b ast.MethodCall) (Expression, error) {
	var recv Expression
	var recvTy types.TermTy
	if b.Receiver != nil {
		r, err := m.lowerExpr(b.Receiver)
		if err != nil {
			return nil, err
		}
		recv = r
		recvTy = r.Ty()
	} else {
		ctx := m.top()
		if ctx == nil {
			return nil, diagnostics.Name(fmt.Sprintf("no implicit self for %s at top level", b.MethodName))
		}
		recvTy = ctx.SelfType
	}

	sig, owner, err := m.dict.LookupMethod(recvTy.Fullname, b.MethodName)
	if err != nil {
		return nil, err
	}
	_ = owner

	if err := typecheck.CheckArity(string(sig.FullName), len(sig.ParamTys), len(b.Args)); err != nil {
		return nil, err
	}
	args := make([]Expression, len(b.Args))
	for i, a := range b.Args {
		ha, err := m.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		if err := typecheck.CheckArgType(m.dict, string(sig.FullName), i+1, sig.ParamTys[i], ha.Ty()); err != nil {
			return nil, err
		}
		args[i] = ha
	}

	return MethodCall{Receiver: recv, Method: sig.FullName, Args: args, Type: sig.RetTy}, nil
}

func (m *Maker) lowerLogicalNot(b ast.LogicalNot) (Expression, error) {
	operand, err := m.lowerExpr(b.Expr)
	if err != nil {
		return nil, err
	}
	if err := typecheck.CheckOperandType("not", operand.Ty()); err != nil {
		return nil, err
	}
	boolTy := types.NewRaw("Bool")
	return If{
		Cond: operand,
		Then: Literal{Value: false, Type: boolTy},
		Else: Literal{Value: true, Type: boolTy},
		Type: boolTy,
	}, nil
}

func (m *Maker) lowerLogicalAnd(b ast.LogicalAnd) (Expression, error) {
	return m.lowerShortCircuit(b.Left, b.Right, false)
}

func (m *Maker) lowerLogicalOr(b ast.LogicalOr) (Expression, error) {
	return m.lowerShortCircuit(b.Left, b.Right, true)
}

// lowerShortCircuit builds the if-form both `and`/`&&` and `or`/`||`
// lower to (spec §4.1 Operator lowering, §4.3's LogicalAnd/Or row):
// `l and r` is `if l then r else false end`; `l or r` is
// `if l then true else r end`.
func (m *Maker) lowerShortCircuit(leftE, rightE *ast.Expression, isOr bool) (Expression, error) {
	left, err := m.lowerExpr(leftE)
	if err != nil {
		return nil, err
	}
	right, err := m.lowerExpr(rightE)
	if err != nil {
		return nil, err
	}
	context := "and"
	if isOr {
		context = "or"
	}
	if err := typecheck.CheckOperandType(context, left.Ty()); err != nil {
		return nil, err
	}
	if err := typecheck.CheckOperandType(context, right.Ty()); err != nil {
		return nil, err
	}
	boolTy := types.NewRaw("Bool")
	if isOr {
		return If{Cond: left, Then: Literal{Value: true, Type: boolTy}, Else: right, Type: boolTy}, nil
	}
	return If{Cond: left, Then: right, Else: Literal{Value: false, Type: boolTy}, Type: boolTy}, nil
}

// lowerIf implements if-branch typing (spec §4.3, §4.4 Branch
// coherence): equal branch types yield that type; differing types
// unify to their nearest common ancestor, or a TypeError if none
// exists; a missing else yields Void and discards the then-value.
func (m *Maker) lowerIf(b ast.If) (Expression, error) {
	cond, err := m.lowerExpr(b.Cond)
	if err != nil {
		return nil, err
	}
	if err := typecheck.CheckOperandType("if condition", cond.Ty()); err != nil {
		return nil, err
	}
	then, err := m.lowerExpr(b.Then)
	if err != nil {
		return nil, err
	}
	if b.Else == nil {
		voidTy := types.NewRaw(names.ClassFullname(types.Void))
		return If{Cond: cond, Then: then, Else: Nop{}, Type: voidTy}, nil
	}
	els, err := m.lowerExpr(b.Else)
	if err != nil {
		return nil, err
	}
	common, err := typecheck.UnifyBranches(m.dict, then.Ty(), els.Ty())
	if err != nil {
		return nil, err
	}
	return If{Cond: cond, Then: then, Else: els, Type: common}, nil
}
