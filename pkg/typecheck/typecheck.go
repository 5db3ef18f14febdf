// Package typecheck implements the small set of rules applied as HIR
// is produced (spec §4.4): return-value subtyping, method-call arity
// and argument-type checks, if-branch coherence, and self-scope
// validity. Every function here is pure with respect to the class
// dictionary it is given — pkg/hir owns the mutable lowering state and
// calls into these as each construct is lowered.
package typecheck

import (
	"fmt"

	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/types"
)

// CheckReturnType verifies that a method body's inferred type is a
// subtype of its declared return type (spec §4.4 Return value).
func CheckReturnType(dict *classdict.ClassDict, methodName string, bodyTy, declaredTy types.TermTy) error {
	if !dict.IsSubtypeOf(bodyTy, declaredTy) {
		return diagnostics.Type(fmt.Sprintf("%s: body type %s is not a subtype of declared return type %s",
			methodName, bodyTy, declaredTy))
	}
	return nil
}

// CheckArity verifies the argument count of a call matches the
// signature's parameter count exactly (spec §4.4 Method call).
func CheckArity(methodName string, paramCount, argCount int) error {
	if paramCount != argCount {
		return diagnostics.Type(fmt.Sprintf("%s: expected %d argument(s), got %d", methodName, paramCount, argCount))
	}
	return nil
}

// CheckArgType verifies one argument's type is a subtype of its
// corresponding parameter type (spec §4.4 Method call).
func CheckArgType(dict *classdict.ClassDict, methodName string, position int, paramTy, argTy types.TermTy) error {
	if !dict.IsSubtypeOf(argTy, paramTy) {
		return diagnostics.Type(fmt.Sprintf("%s: argument %d expected %s, got %s", methodName, position, paramTy, argTy))
	}
	return nil
}

// UnifyBranches computes the type of a two-armed if-expression (spec
// §4.4 Branch coherence): equal types unify to themselves; otherwise
// the nearest common ancestor is used; if none exists, it is a type
// error.
func UnifyBranches(dict *classdict.ClassDict, thenTy, elseTy types.TermTy) (types.TermTy, error) {
	if thenTy.Equal(elseTy) {
		return thenTy, nil
	}
	common, ok := dict.NearestCommonAncestor(thenTy, elseTy)
	if !ok {
		return types.TermTy{}, diagnostics.Type(fmt.Sprintf("if: branches %s and %s have no common ancestor", thenTy, elseTy))
	}
	return common, nil
}

// CheckSelfScope verifies self (and, by extension, any construct that
// depends on a receiver type) is used inside a method body (spec §4.4
// Self in top-level).
func CheckSelfScope(inMethod bool) error {
	if !inMethod {
		return diagnostics.Type("self is invalid outside a method body")
	}
	return nil
}

// CheckOperandType verifies a logical operator's operand is Bool
// (spec §4.3's LogicalNot/And/Or typing rules).
func CheckOperandType(context string, operandTy types.TermTy) error {
	boolTy := types.NewRaw("Bool")
	if !operandTy.Equal(boolTy) {
		return diagnostics.Type(fmt.Sprintf("%s: operand must be Bool, got %s", context, operandTy))
	}
	return nil
}
