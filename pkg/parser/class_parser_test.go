package parser

import (
	"testing"

	"github.com/chazu/pebble/pkg/ast"
)

func TestParseConstDefinition(t *testing.T) {
	prog, err := Parse("PI = 3.14")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd, ok := prog.Definitions[0].(ast.ConstDefinition)
	if !ok {
		t.Fatalf("want ConstDefinition, got %T", prog.Definitions[0])
	}
	if cd.Name != "PI" {
		t.Fatalf("want PI, got %s", cd.Name)
	}
}

func TestParseMethodParams(t *testing.T) {
	src := "class A\n  def add(x: Int, y: Int) -> Int\n    x + y\n  end\nend"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd := prog.Definitions[0].(ast.ClassDefinition)
	m := cd.Defs[0].(ast.InstanceMethodDefinition)
	if len(m.Sig.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(m.Sig.Params))
	}
	if m.Sig.Params[0].Name != "x" || m.Sig.Params[0].Typ.Name != "Int" {
		t.Fatalf("unexpected first param: %+v", m.Sig.Params[0])
	}
	if m.Sig.RetTyp.Name != "Int" {
		t.Fatalf("want return type Int, got %s", m.Sig.RetTyp.Name)
	}
}

func TestParseOperatorMethodDefinition(t *testing.T) {
	src := "class Vec\n  def +(other: Vec) -> Vec\n    self\n  end\nend"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd := prog.Definitions[0].(ast.ClassDefinition)
	m := cd.Defs[0].(ast.InstanceMethodDefinition)
	if m.Sig.Name != "+" {
		t.Fatalf("want method name +, got %s", m.Sig.Name)
	}
}

func TestParseNestedClass(t *testing.T) {
	src := "class Outer\n  class Inner\n  end\nend"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outer := prog.Definitions[0].(ast.ClassDefinition)
	if len(outer.Defs) != 1 {
		t.Fatalf("want 1 nested definition, got %d", len(outer.Defs))
	}
	if _, ok := outer.Defs[0].(ast.ClassDefinition); !ok {
		t.Fatalf("want nested ClassDefinition, got %T", outer.Defs[0])
	}
}
