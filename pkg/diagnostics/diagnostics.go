// Package diagnostics defines the closed set of compiler error kinds
// (spec §7) and a warning accumulator for non-fatal notes. No stage of
// the pipeline records notes in it.
package diagnostics

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind is the closed set of error categories a compile can fail with.
type Kind string

const (
	KindLexError     Kind = "LexError"
	KindParseError   Kind = "ParseError"
	KindNameError    Kind = "NameError"
	KindTypeError    Kind = "TypeError"
	KindProgramError Kind = "ProgramError"
	KindBugError     Kind = "BugError"
)

// Error is the payload every public entry point returns on failure.
// Line/Col are zero when no source position applies (e.g. a class
// dictionary consistency error that spans the whole program).
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Col     int
}

func (e *Error) Error() string {
	if e.Line == 0 && e.Col == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %d:%d: %s", e.Kind, e.Line, e.Col, e.Message)
}

func newErr(kind Kind, msg string, pos ...int) *Error {
	e := &Error{Kind: kind, Message: msg}
	if len(pos) == 2 {
		e.Line, e.Col = pos[0], pos[1]
	}
	return e
}

// Lex reports a malformed token, unterminated string, or invalid
// numeric literal.
func Lex(msg string, line, col int) *Error { return newErr(KindLexError, msg, line, col) }

// Parse reports an unexpected token, missing `end`, or invalid
// definition form.
func Parse(msg string, line, col int) *Error { return newErr(KindParseError, msg, line, col) }

// Name reports a reference to an unknown class, constant, method, or
// local variable.
func Name(msg string) *Error { return newErr(KindNameError, msg) }

// Type reports an arity mismatch, argument/return type mismatch, or
// if-branch type conflict.
func Type(msg string) *Error { return newErr(KindTypeError, msg) }

// Program reports an internal-consistency violation detected at user
// level: a duplicate class definition or an inheritance cycle.
func Program(msg string) *Error { return newErr(KindProgramError, msg) }

// Bug panics with a diagnostic describing a compiler invariant
// violation. BugError is never meant to be caught.
func Bug(format string, args ...interface{}) {
	panic(&Error{Kind: KindBugError, Message: fmt.Sprintf(format, args...)})
}

// Bag accumulates non-fatal notes (e.g. a corelib method shadowed by a
// user redefinition) alongside a fatal error path. It wraps
// hashicorp/go-multierror so callers can drain it into a slice of
// strings for display.
type Bag struct {
	errs *multierror.Error
}

// Notef appends a formatted note to the bag.
func (b *Bag) Notef(format string, args ...interface{}) {
	b.errs = multierror.Append(b.errs, fmt.Errorf(format, args...))
}

// Messages returns the accumulated notes as plain strings, in the
// order they were added.
func (b *Bag) Messages() []string {
	if b.errs == nil {
		return nil
	}
	msgs := make([]string, len(b.errs.Errors))
	for i, e := range b.errs.Errors {
		msgs[i] = e.Error()
	}
	return msgs
}

// Len reports how many notes have been accumulated.
func (b *Bag) Len() int {
	if b.errs == nil {
		return 0
	}
	return len(b.errs.Errors)
}
