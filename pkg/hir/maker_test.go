package hir

import (
	"testing"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/types"
)

func baseDict() *classdict.ClassDict {
	d := classdict.New()
	d.Register("Object", "")
	d.Register("Int", "Object")
	return d
}

// buildDict runs the class dictionary builder over prog against a
// fresh base dictionary, failing the test on error.
func buildDict(t *testing.T, prog *ast.Program) *classdict.ClassDict {
	t.Helper()
	dict, err := classdict.NewBuilder(baseDict()).Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return dict
}

// TestMakeInitializerDiscoversIvars is spec §8 scenario S4: `class A;
// def initialize(x: Int); @x = x; end; def get -> Int; @x; end; end`
// gives A one ivar `x` at index 0 and a synthesized `Meta:A#new`.
func TestMakeInitializerDiscoversIvars(t *testing.T) {
	prog := &ast.Program{Definitions: []ast.Definition{
		ast.ClassDefinition{
			Name: "A",
			Defs: []ast.Definition{
				ast.InitializerDefinition{
					Sig: ast.MethodSignature{Params: []ast.Param{{Name: "x", Typ: ast.TypeName{Name: "Int"}}}},
					Body: []ast.Expression{
						*ast.NonPrimary(ast.Assign{Target: "@x", Value: ast.Primary(ast.BareName{Name: "x"}, ast.Location{})}, ast.Location{}),
					},
				},
				ast.InstanceMethodDefinition{
					Sig:  ast.MethodSignature{Name: "get", RetTyp: ast.TypeName{Name: "Int"}},
					Body: []ast.Expression{*ast.Primary(ast.IVarRef{Name: "x"}, ast.Location{})},
				},
			},
		},
	}}
	dict := buildDict(t, prog)
	h, err := New(dict).Make(prog)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	a := dict.Get("A")
	if len(a.IVars) != 1 || a.IVars[0].Name != "x" || a.IVars[0].Idx != 0 {
		t.Fatalf("want one ivar x at index 0, got %+v", a.IVars)
	}
	if _, ok := h.SkMethods["Meta:A#new"]; !ok {
		t.Fatal("want a synthesized Meta:A#new method")
	}
	if _, ok := h.SkMethods["A#get"]; !ok {
		t.Fatal("want A#get lowered")
	}
}

func TestMakeReassignedIvarReusesSlot(t *testing.T) {
	prog := &ast.Program{Definitions: []ast.Definition{
		ast.ClassDefinition{
			Name: "A",
			Defs: []ast.Definition{
				ast.InitializerDefinition{
					Sig: ast.MethodSignature{Params: []ast.Param{{Name: "x", Typ: ast.TypeName{Name: "Int"}}}},
					Body: []ast.Expression{
						*ast.NonPrimary(ast.Assign{Target: "@x", Value: ast.Primary(ast.BareName{Name: "x"}, ast.Location{})}, ast.Location{}),
						*ast.NonPrimary(ast.Assign{Target: "@x", Value: ast.Primary(ast.BareName{Name: "x"}, ast.Location{})}, ast.Location{}),
					},
				},
			},
		},
	}}
	dict := buildDict(t, prog)
	_, err := New(dict).Make(prog)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	a := dict.Get("A")
	if len(a.IVars) != 1 {
		t.Fatalf("want reassignment to reuse the existing slot, got %+v", a.IVars)
	}
}

// TestMakeSubclassIvarsContinueAfterSuperclass is the scenario in
// review: B < A, both declaring ivars in their own initializer, with B
// defined textually before A. B's ivar index must start after A's
// last ivar regardless of that ordering (spec §3.3's
// contiguous-across-superchain invariant).
func TestMakeSubclassIvarsContinueAfterSuperclass(t *testing.T) {
	bDef := ast.ClassDefinition{
		Name:       "B",
		Superclass: "A",
		Defs: []ast.Definition{
			ast.InitializerDefinition{
				Sig: ast.MethodSignature{Params: []ast.Param{
					{Name: "x", Typ: ast.TypeName{Name: "Int"}},
					{Name: "y", Typ: ast.TypeName{Name: "Int"}},
				}},
				Body: []ast.Expression{
					*ast.NonPrimary(ast.Assign{Target: "@y", Value: ast.Primary(ast.BareName{Name: "y"}, ast.Location{})}, ast.Location{}),
				},
			},
		},
	}
	aDef := ast.ClassDefinition{
		Name: "A",
		Defs: []ast.Definition{
			ast.InitializerDefinition{
				Sig: ast.MethodSignature{Params: []ast.Param{{Name: "x", Typ: ast.TypeName{Name: "Int"}}}},
				Body: []ast.Expression{
					*ast.NonPrimary(ast.Assign{Target: "@x", Value: ast.Primary(ast.BareName{Name: "x"}, ast.Location{})}, ast.Location{}),
				},
			},
		},
	}
	prog := &ast.Program{Definitions: []ast.Definition{bDef, aDef}}
	dict := buildDict(t, prog)
	if _, err := New(dict).Make(prog); err != nil {
		t.Fatalf("Make: %v", err)
	}
	a := dict.Get("A")
	b := dict.Get("B")
	if len(a.IVars) != 1 || a.IVars[0].Idx != 0 {
		t.Fatalf("want A's x at index 0, got %+v", a.IVars)
	}
	if len(b.IVars) != 1 || b.IVars[0].Idx != 1 {
		t.Fatalf("want B's y at index 1 (after A's x), got %+v", b.IVars)
	}
}

func TestMakeRejectsAssignmentToReadonlyIvar(t *testing.T) {
	dict := baseDict()
	dict.Register("A", "Object")
	dict.Get("A").IVars = []classdict.SkIVar{{Name: "x", Idx: 0, Ty: types.NewRaw("Int"), Readonly: true}}
	prog := &ast.Program{Definitions: []ast.Definition{
		ast.ClassDefinition{
			Name: "A",
			Defs: []ast.Definition{
				ast.InitializerDefinition{
					Sig: ast.MethodSignature{Params: []ast.Param{{Name: "x", Typ: ast.TypeName{Name: "Int"}}}},
					Body: []ast.Expression{
						*ast.NonPrimary(ast.Assign{Target: "@x", Value: ast.Primary(ast.BareName{Name: "x"}, ast.Location{})}, ast.Location{}),
					},
				},
			},
		},
	}}
	if _, err := New(dict).Make(prog); err == nil {
		t.Fatal("want an error assigning to a readonly ivar")
	}
}

func TestMakeMaterializesClassConstants(t *testing.T) {
	prog := &ast.Program{}
	dict := buildDict(t, prog)
	h, err := New(dict).Make(prog)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	found := false
	for _, ci := range h.ConstInits {
		if string(ci.Fullname) == "Object" {
			found = true
		}
	}
	if !found {
		t.Fatal("want a materialized Object class constant")
	}
}

func TestMakeMethodCallTypeCheckFailsOnArityMismatch(t *testing.T) {
	dict := baseDict()
	dict.Get("Int").Methods["add"] = classdict.MethodSignature{
		FullName: "Int#add",
		ParamTys: []types.TermTy{types.NewRaw("Int")},
		RetTy:    types.NewRaw("Int"),
	}
	prog := &ast.Program{Expressions: []ast.Expression{
		*ast.NonPrimary(ast.MethodCall{
			Receiver:   ast.Primary(ast.DecimalLiteral{Value: 1}, ast.Location{}),
			MethodName: "add",
		}, ast.Location{}),
	}}
	_, err := New(dict).Make(prog)
	if err == nil {
		t.Fatal("want a type error for a zero-argument call to a one-argument method")
	}
}

func TestMakeStringLiteralPoolIsNotDeduplicated(t *testing.T) {
	dict := baseDict()
	prog := &ast.Program{Expressions: []ast.Expression{
		*ast.Primary(ast.StringLiteral{Value: "hi"}, ast.Location{}),
		*ast.Primary(ast.StringLiteral{Value: "hi"}, ast.Location{}),
	}}
	h, err := New(dict).Make(prog)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	s0 := h.MainExprs[0].(StringLiteral)
	s1 := h.MainExprs[1].(StringLiteral)
	if s0.Index == s1.Index {
		t.Fatalf("want distinct pool slots for identical literals, got %d and %d", s0.Index, s1.Index)
	}
}

func TestMakeGensymNamesLeadWithASpace(t *testing.T) {
	m := New(baseDict())
	name := m.gensym()
	if name[0] != ' ' {
		t.Fatalf("want gensym name to start with a space, got %q", name)
	}
}

func TestMakeIfWithNoElseIsVoid(t *testing.T) {
	dict := baseDict()
	prog := &ast.Program{}
	m := New(dict)
	if _, err := m.Make(prog); err != nil {
		t.Fatalf("Make: %v", err)
	}
	ifExpr := ast.If{
		Cond: ast.Primary(ast.BoolLiteral{Value: true}, ast.Location{}),
		Then: ast.Primary(ast.DecimalLiteral{Value: 1}, ast.Location{}),
	}
	he, err := m.lowerExpr(ast.NonPrimary(ifExpr, ast.Location{}))
	if err != nil {
		t.Fatalf("lowerExpr: %v", err)
	}
	if !he.Ty().IsVoid() {
		t.Fatalf("want Void type for an else-less if, got %s", he.Ty())
	}
}
