// Package backend describes, but does not implement, the external
// collaborator spec §1/§6 hands a completed Hir to. The compiler
// front end never constructs a Backend itself; it only defines the
// shape a code generator must satisfy to consume its output.
package backend

import "github.com/chazu/pebble/pkg/hir"

// Backend emits code from a completed Hir. Implementations live
// outside this module (an LLVM IR emitter, for instance); the front
// end's job ends at producing a well-typed Hir value.
type Backend interface {
	// Emit consumes h exactly once. The back-end contract (spec §6)
	// requires it to lay out every class's fields in ivars[*].idx
	// order, emit every method using its signature for ABI and body
	// for contents, run every const_init before main, then run
	// main_exprs, and emit each SynthesizedNew method declaratively
	// from its allocation/initialize/arity fields rather than from a
	// Go closure.
	Emit(h *hir.Hir) error
}
