// Package classdict builds and queries the class dictionary: the set
// of classes known to a compile, their ivars, and their method
// signatures, resolved against pkg/types (spec §4.2).
package classdict

import (
	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/types"
)

// SkIVar is one resolved instance variable: its slot index within the
// class's ivar layout and its declared type. Idx is assigned in
// declaration order starting after the ivars of the superclass chain
// (IVarOffset), so indices are contiguous across a class and its
// ancestors (spec §4.2 and §4.3's initializer lowering).
type SkIVar struct {
	Name names.ConstFirstname
	Idx  int
	Ty   types.TermTy
	// Readonly marks an ivar that can only be set once, by its owning
	// class's own construction logic — never reassigned afterward
	// (spec §4.2's SkIVar shape).
	Readonly bool
}

// MethodSignature is a method's resolved parameter and return types,
// keyed by owning class and method firstname.
type MethodSignature struct {
	FullName   names.MethodFullname
	ParamTys   []types.TermTy
	ParamNames []string
	RetTy      types.TermTy
}

// SynthesizedNewBody describes the `.new` class method the dictionary
// builder synthesizes for every class that declares an initializer
// (spec §4.3). It is a declarative description rather than a body of
// HIR statements: pkg/hir lowers it the same way for every class, and
// pkg/backend (out of scope here) is the one that turns it into
// allocation and constructor-call instructions.
type SynthesizedNewBody struct {
	Allocates  names.ClassFullname
	Initialize names.MethodFullname
	Arity      int
}

// SkClass is one class's resolved shape: its superclass (by name, not
// by pointer, so the dictionary has no reference cycles — spec §9
// Design Notes), its ivars in declaration order, and its method
// signatures by firstname.
type SkClass struct {
	Fullname   names.ClassFullname
	Superclass names.ClassFullname // empty iff Fullname is Object
	IVars      []SkIVar
	Methods    map[names.MethodFirstname]MethodSignature
	// ClassMethods, on a metaclass entry, holds the class's
	// singleton-method signatures, including the synthesized `.new`
	// once Builder.Build has collected an initializer.
	ClassMethods map[names.MethodFirstname]MethodSignature
	// HasInitializer records whether the class body declared
	// `initialize`; SynthesizedNew is nil until then.
	HasInitializer bool
	SynthesizedNew *SynthesizedNewBody
	// ConstIsObj marks a class whose name is not bound to a class
	// object: pkg/hir's class-constant materialization skips it. Of
	// the corelib classes only Void sets it.
	ConstIsObj bool
	Loc        ast.Location
}

func (c *SkClass) ivarIndex(name names.ConstFirstname) (SkIVar, bool) {
	for _, iv := range c.IVars {
		if iv.Name == name {
			return iv, true
		}
	}
	return SkIVar{}, false
}

// ClassDict is the full dictionary for one compile. Classes is keyed
// by fullname, including each class's synthesized metaclass entry
// (spec §3: every Raw class C has a Meta:C counterpart).
type ClassDict struct {
	Classes map[names.ClassFullname]*SkClass
	// Order lists every non-meta class fullname in registration
	// order: corelib classes first (as pkg/corelib.Builtin appends
	// them), then user classes in the order their ClassDefinition was
	// encountered. pkg/hir's class-constant materialization pass
	// walks this list so const_inits run in a deterministic order
	// (spec §4.3).
	Order []names.ClassFullname
}

// New returns an empty dictionary. Register populates it: pkg/corelib
// registers Object and the other corelib classes, then Builder adds
// user classes.
func New() *ClassDict {
	return &ClassDict{Classes: make(map[names.ClassFullname]*SkClass)}
}

// Register adds a class and its metaclass to the dictionary and
// appends fullname to Order. It is the shared primitive behind both
// Builder's user-class registration pass and pkg/corelib's built-in
// class construction, so the two agree on metaclass wiring.
func (d *ClassDict) Register(fullname, superclass names.ClassFullname) *SkClass {
	sk := &SkClass{
		Fullname:     fullname,
		Superclass:   superclass,
		Methods:      make(map[names.MethodFirstname]MethodSignature),
		ClassMethods: make(map[names.MethodFirstname]MethodSignature),
	}
	d.Classes[fullname] = sk
	d.Order = append(d.Order, fullname)
	metaSuper := names.ClassFullname("Class")
	if superclass != "" {
		metaSuper = superclass.MetaName()
	}
	d.Classes[fullname.MetaName()] = &SkClass{
		Fullname:     fullname.MetaName(),
		Superclass:   metaSuper,
		Methods:      make(map[names.MethodFirstname]MethodSignature),
		ClassMethods: make(map[names.MethodFirstname]MethodSignature),
		// Every metaclass carries its own name as a readonly ivar at
		// index 0, the backing store behind `SomeClass.name`.
		IVars: []SkIVar{{Name: "name", Idx: 0, Ty: types.NewRaw("String"), Readonly: true}},
	}
	return sk
}

// ClassExists reports whether fullname names a registered class.
func (d *ClassDict) ClassExists(fullname names.ClassFullname) bool {
	_, ok := d.Classes[fullname]
	return ok
}

// Get returns the class, or nil if unregistered.
func (d *ClassDict) Get(fullname names.ClassFullname) *SkClass {
	return d.Classes[fullname]
}
