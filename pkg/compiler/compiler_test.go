package compiler

import (
	"testing"

	"github.com/chazu/pebble/pkg/corelib"
)

func TestCompileSimpleClass(t *testing.T) {
	src := `
class Counter
  def initialize(start: Int)
    @start = start
  end
  def value -> Int
    @start
  end
end

Counter.new(1).value
`
	lib := corelib.Builtin()
	res, err := Compile(src, lib)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Hir == nil {
		t.Fatal("want non-nil Hir")
	}
	if len(res.Hir.MainExprs) != 1 {
		t.Fatalf("want 1 main expression, got %d", len(res.Hir.MainExprs))
	}
}

func TestCompileMergesCorelibMethodsAfterUserLowering(t *testing.T) {
	lib := corelib.Builtin()
	res, err := Compile("1 + 2", lib)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	found := false
	for fullname := range res.Hir.SkMethods {
		if string(fullname) == "Int#+" {
			found = true
		}
	}
	if !found {
		t.Fatal("want corelib Int#+ merged into the method dictionary")
	}
}

func TestCompilePropagatesParseErrors(t *testing.T) {
	_, err := Compile("class A", corelib.Builtin())
	if err == nil {
		t.Fatal("expected a parse error for an unterminated class definition")
	}
}
