// Package compiler wires the front-end stages together: lexing and
// parsing produce an AST, the class dictionary builder resolves names
// and signatures against it, and the HIR maker lowers and type-checks
// it into a Hir a back end can consume (spec §2 Pipeline).
package compiler

import (
	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/corelib"
	"github.com/chazu/pebble/pkg/hir"
	"github.com/chazu/pebble/pkg/parser"
)

// Result is a completed compile: the typed Hir plus the AST and class
// dictionary it was built from, kept around for callers that want to
// inspect intermediate stages (diagnostics tooling, the cmd/pebble
// driver).
type Result struct {
	Program *ast.Program
	Dict    *classdict.ClassDict
	Hir     *hir.Hir
}

// Compile runs the full pipeline over source against lib, the core
// library every compile starts from. lib may be nil, in which case an
// empty dictionary is used (useful for testing the front end in
// isolation from corelib).
func Compile(source string, lib *corelib.Corelib) (*Result, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	dict := classdict.New()
	if lib != nil {
		for fullname, sk := range lib.Dict.Classes {
			dict.Classes[fullname] = sk
		}
		dict.Order = append(dict.Order, lib.Dict.Order...)
	}

	builder := classdict.NewBuilder(dict)
	if _, err := builder.Build(prog); err != nil {
		return nil, err
	}

	maker := hir.New(dict)
	h, err := maker.Make(prog)
	if err != nil {
		return nil, err
	}

	// Corelib methods are appended to the method dictionary after user
	// lowering completes (spec §6): the HIR maker never sees them, so
	// a user method overriding a corelib selector of the same fullname
	// is free to lower first without racing the merge.
	if lib != nil {
		for _, m := range lib.Methods {
			if _, exists := h.SkMethods[m.Fullname]; !exists {
				h.SkMethods[m.Fullname] = m
			}
		}
	}

	return &Result{Program: prog, Dict: dict, Hir: h}, nil
}
