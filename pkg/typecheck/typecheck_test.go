package typecheck

import (
	"testing"

	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/types"
)

func chainDict() *classdict.ClassDict {
	d := classdict.New()
	d.Register("Object", "")
	d.Register("A", "Object")
	d.Register("B", "A")
	return d
}

func TestCheckReturnTypeAcceptsSubtype(t *testing.T) {
	d := chainDict()
	if err := CheckReturnType(d, "f", types.NewRaw("B"), types.NewRaw("A")); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
}

func TestCheckReturnTypeRejectsSupertype(t *testing.T) {
	d := chainDict()
	if err := CheckReturnType(d, "f", types.NewRaw("A"), types.NewRaw("B")); err == nil {
		t.Fatal("want a type error: A is not a subtype of B")
	}
}

func TestCheckArity(t *testing.T) {
	if err := CheckArity("f", 2, 2); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if err := CheckArity("f", 2, 1); err == nil {
		t.Fatal("want an arity error")
	}
}

func TestCheckArgType(t *testing.T) {
	d := chainDict()
	if err := CheckArgType(d, "f", 1, types.NewRaw("A"), types.NewRaw("B")); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if err := CheckArgType(d, "f", 1, types.NewRaw("B"), types.NewRaw("A")); err == nil {
		t.Fatal("want a type error: A is not a subtype of B")
	}
}

func TestUnifyBranchesEqualTypes(t *testing.T) {
	d := chainDict()
	ty, err := UnifyBranches(d, types.NewRaw("B"), types.NewRaw("B"))
	if err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if ty.Fullname != "B" {
		t.Fatalf("want B, got %s", ty.Fullname)
	}
}

func TestUnifyBranchesCommonAncestor(t *testing.T) {
	d := chainDict()
	d.Register("C", "A")
	ty, err := UnifyBranches(d, types.NewRaw("B"), types.NewRaw("C"))
	if err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if ty.Fullname != "A" {
		t.Fatalf("want A, got %s", ty.Fullname)
	}
}

func TestCheckSelfScope(t *testing.T) {
	if err := CheckSelfScope(true); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if err := CheckSelfScope(false); err == nil {
		t.Fatal("want an error for self outside a method body")
	}
}

func TestCheckOperandType(t *testing.T) {
	if err := CheckOperandType("not", types.NewRaw("Bool")); err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if err := CheckOperandType("not", types.NewRaw("Int")); err == nil {
		t.Fatal("want an error for a non-Bool operand")
	}
}
