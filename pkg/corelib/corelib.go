// Package corelib builds the pre-resolved class dictionary entries and
// intrinsic methods every compile starts from (spec §6
// Core-library ingestion). The actual `*.sk` source loader is an
// external collaborator; this package only supplies the Builtin()
// reference library needed to exercise a compile end to end.
package corelib

import (
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/hir"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/types"
)

// Corelib bundles the classes and methods a front end must register
// before lexing user source: pre-built SkClass entries (added to the
// class dictionary first) and a flat list of already-typed SkMethod
// values (appended to the method dictionary once user lowering
// completes, per spec §6).
type Corelib struct {
	Dict    *classdict.ClassDict
	Methods []hir.SkMethod
}

func method(owner names.ClassFullname, name names.MethodFirstname, params []types.TermTy, ret types.TermTy) hir.SkMethod {
	sig := classdict.MethodSignature{
		FullName: names.NewMethodFullname(owner, name),
		ParamTys: params,
		RetTy:    ret,
	}
	return hir.SkMethod{Fullname: sig.FullName, Sig: sig}
}

// Builtin constructs the reference core library this front end is
// tested against: Object at the root, the numeric/string/boolean
// primitive classes beneath it, and the arithmetic/comparison
// operator methods §8's scenarios S1/S2/S6 exercise. A production
// embedding would instead load `*.sk` corelib sources through the
// external loader spec §6 describes and translate their declarations
// into the same Corelib shape.
func Builtin() *Corelib {
	dict := classdict.New()

	dict.Register("Object", "")
	dict.Register("Class", "Object")
	intCls := dict.Register("Int", "Object")
	floatCls := dict.Register("Float", "Object")
	dict.Register("String", "Object")
	dict.Register("Bool", "Object")
	voidCls := dict.Register(names.ClassFullname(types.Void), "Object")

	intCls.ConstIsObj = false
	floatCls.ConstIsObj = false
	voidCls.ConstIsObj = true // Void has no instances, never materialized as a class constant

	intTy := types.NewRaw("Int")
	floatTy := types.NewRaw("Float")
	stringTy := types.NewRaw("String")
	boolTy := types.NewRaw("Bool")

	var methods []hir.SkMethod
	arith := []names.MethodFirstname{"+", "-", "*", "/"}
	compare := []names.MethodFirstname{"<", ">", "<=", ">=", "=="}

	for _, op := range arith {
		m := method("Int", op, []types.TermTy{intTy}, intTy)
		intCls.Methods[op] = m.Sig
		methods = append(methods, m)

		m = method("Float", op, []types.TermTy{floatTy}, floatTy)
		floatCls.Methods[op] = m.Sig
		methods = append(methods, m)
	}
	for _, op := range compare {
		m := method("Int", op, []types.TermTy{intTy}, boolTy)
		intCls.Methods[op] = m.Sig
		methods = append(methods, m)

		m = method("Float", op, []types.TermTy{floatTy}, boolTy)
		floatCls.Methods[op] = m.Sig
		methods = append(methods, m)
	}

	plusStr := method("String", "+", []types.TermTy{stringTy}, stringTy)
	dict.Get("String").Methods["+"] = plusStr.Sig
	methods = append(methods, plusStr)

	return &Corelib{Dict: dict, Methods: methods}
}
