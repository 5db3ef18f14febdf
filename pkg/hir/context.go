package hir

import (
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/types"
)

// Context is one frame of the HIR maker's context stack (spec §4.3
// Method-context stack): the namespace and method being lowered, the
// local-variable table in scope, and the ivars discovered so far if
// this frame is an initializer.
type Context struct {
	Namespace     string // outer namespace, "" at top level
	SelfType      types.TermTy
	InInitializer bool
	Locals        map[string]types.TermTy
	IVars         []classdict.SkIVar
}

// newContext starts a frame with an empty local table.
func newContext(namespace string, self types.TermTy, inInit bool) *Context {
	return &Context{
		Namespace:     namespace,
		SelfType:      self,
		InInitializer: inInit,
		Locals:        make(map[string]types.TermTy),
	}
}

// resolveLocal looks up name in the frame's local table. Unlike a
// lexically-nested Scope, a method body has exactly one flat table —
// the language has no nested block scoping (spec §4.3 frame shape).
func (c *Context) resolveLocal(name string) (types.TermTy, bool) {
	ty, ok := c.Locals[name]
	return ty, ok
}

// push enters a new context frame.
func (m *Maker) push(ctx *Context) {
	m.ctxStack = append(m.ctxStack, ctx)
}

// pop leaves the current frame and returns it.
func (m *Maker) pop() *Context {
	n := len(m.ctxStack)
	top := m.ctxStack[n-1]
	m.ctxStack = m.ctxStack[:n-1]
	return top
}

// top returns the current (innermost) context frame, or nil at the
// top level (no method is being lowered).
func (m *Maker) top() *Context {
	if len(m.ctxStack) == 0 {
		return nil
	}
	return m.ctxStack[len(m.ctxStack)-1]
}
