package parser

import (
	"testing"

	"github.com/chazu/pebble/pkg/ast"
)

func TestParseDefinitionsBeforeExpressions(t *testing.T) {
	prog, err := Parse("class A\nend\n1\n2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Definitions) != 1 {
		t.Fatalf("want 1 definition, got %d", len(prog.Definitions))
	}
	if len(prog.Expressions) != 2 {
		t.Fatalf("want 2 expressions, got %d", len(prog.Expressions))
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	prog, err := Parse("class B < A\nend")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd, ok := prog.Definitions[0].(ast.ClassDefinition)
	if !ok {
		t.Fatalf("want ClassDefinition, got %T", prog.Definitions[0])
	}
	if cd.Superclass != "A" {
		t.Fatalf("want superclass A, got %q", cd.Superclass)
	}
}

func TestParseInitializerAndMethod(t *testing.T) {
	src := `class A
  def initialize(x: Int)
    @x = x
  end
  def get -> Int
    @x
  end
end
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd := prog.Definitions[0].(ast.ClassDefinition)
	if len(cd.Defs) != 2 {
		t.Fatalf("want 2 members, got %d", len(cd.Defs))
	}
	if _, ok := cd.Defs[0].(ast.InitializerDefinition); !ok {
		t.Fatalf("want InitializerDefinition first, got %T", cd.Defs[0])
	}
	if _, ok := cd.Defs[1].(ast.InstanceMethodDefinition); !ok {
		t.Fatalf("want InstanceMethodDefinition second, got %T", cd.Defs[1])
	}
}

func TestParseBinaryOperatorLowersToMethodCall(t *testing.T) {
	prog, err := Parse("1 + 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := prog.Expressions[0]
	call, ok := e.Body.(ast.MethodCall)
	if !ok {
		t.Fatalf("want MethodCall, got %T", e.Body)
	}
	if call.MethodName != "+" {
		t.Fatalf("want method +, got %s", call.MethodName)
	}
	if _, ok := call.Receiver.Body.(ast.DecimalLiteral); !ok {
		t.Fatalf("want Int receiver, got %T", call.Receiver.Body)
	}
}

func TestParseParenlessCallPromotion(t *testing.T) {
	// "puts x" with no parens: puts is a bare name eligible for
	// promotion, followed by a value-starting token on the same line.
	prog, err := Parse("puts x")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	call, ok := prog.Expressions[0].Body.(ast.MethodCall)
	if !ok {
		t.Fatalf("want MethodCall, got %T", prog.Expressions[0].Body)
	}
	if len(call.Args) != 1 {
		t.Fatalf("want 1 promoted arg, got %d", len(call.Args))
	}
}

func TestParseIfUnless(t *testing.T) {
	prog, err := Parse("if true then 1 else 2 end")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ifExpr, ok := prog.Expressions[0].Body.(ast.If)
	if !ok {
		t.Fatalf("want If, got %T", prog.Expressions[0].Body)
	}
	if ifExpr.Else == nil {
		t.Fatal("want else branch")
	}

	prog2, err := Parse("unless true then 1 else 2 end")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := prog2.Expressions[0].Body.(ast.If); !ok {
		t.Fatalf("want If from unless, got %T", prog2.Expressions[0].Body)
	}
}

func TestParseLogicalAndOr(t *testing.T) {
	prog, err := Parse("true and false")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := prog.Expressions[0].Body.(ast.LogicalAnd); !ok {
		t.Fatalf("want LogicalAnd, got %T", prog.Expressions[0].Body)
	}

	prog2, err := Parse("true or false")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := prog2.Expressions[0].Body.(ast.LogicalOr); !ok {
		t.Fatalf("want LogicalOr, got %T", prog2.Expressions[0].Body)
	}
}

func TestParseRejectsDefinitionAfterExpression(t *testing.T) {
	_, err := Parse("1\nclass A\nend")
	if err == nil {
		t.Fatal("expected a parse error: class definition after the first top-level expression")
	}
}

func TestParseClassMethod(t *testing.T) {
	src := "class A\n  def self.make -> A\n    self\n  end\nend"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cd := prog.Definitions[0].(ast.ClassDefinition)
	if _, ok := cd.Defs[0].(ast.ClassMethodDefinition); !ok {
		t.Fatalf("want ClassMethodDefinition, got %T", cd.Defs[0])
	}
}
