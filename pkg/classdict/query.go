package classdict

import (
	"fmt"

	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/types"
)

// FindMethod looks up a method signature defined directly on
// className, without consulting superclasses. On a metaclass entry
// the class's singleton methods (ClassMethods) are searched as well.
// ok is false if the class is unknown or doesn't declare the method
// itself.
func (d *ClassDict) FindMethod(className names.ClassFullname, method names.MethodFirstname) (MethodSignature, bool) {
	class := d.Classes[className]
	if class == nil {
		return MethodSignature{}, false
	}
	sig, ok := class.Methods[method]
	if !ok && className.IsMeta() {
		sig, ok = class.ClassMethods[method]
	}
	return sig, ok
}

// LookupMethod walks className and its superclass chain for method,
// returning the signature and the class that actually defines it. It
// returns a ProgramError if the method is found nowhere in the chain.
func (d *ClassDict) LookupMethod(className names.ClassFullname, method names.MethodFirstname) (MethodSignature, names.ClassFullname, error) {
	return d.lookupMethod(className, className, method)
}

func (d *ClassDict) lookupMethod(receiverClass, className names.ClassFullname, method names.MethodFirstname) (MethodSignature, names.ClassFullname, error) {
	if sig, ok := d.FindMethod(className, method); ok {
		return sig, className, nil
	}
	class := d.Classes[className]
	if class == nil {
		diagnostics.Bug("lookupMethod: asked to find %s but class %s not found", method, className)
	}
	if class.Superclass == "" {
		return MethodSignature{}, "", diagnostics.Program(fmt.Sprintf("method %s not found on %s", method, receiverClass))
	}
	return d.lookupMethod(receiverClass, class.Superclass, method)
}

// GetSuperclass returns className's superclass, or nil if className is
// Object (the root of the hierarchy).
func (d *ClassDict) GetSuperclass(className names.ClassFullname) *SkClass {
	class := d.Classes[className]
	if class == nil {
		diagnostics.Bug("GetSuperclass: class %s not found", className)
	}
	if class.Superclass == "" {
		return nil
	}
	return d.Classes[class.Superclass]
}

// SupertypeOf returns the type one step up ty's hierarchy: a Raw
// type's supertype is its class's superclass, a Meta type's supertype
// is its instance class's superclass metaclass. The variant is kept
// unchanged. ok is false only for a class with no superclass (Object);
// Meta:Object's supertype is Class, as wired by Register.
func (d *ClassDict) SupertypeOf(ty types.TermTy) (types.TermTy, bool) {
	class := d.Classes[ty.Fullname]
	if class == nil {
		diagnostics.Bug("SupertypeOf: class %s not found", ty.Fullname)
	}
	if class.Superclass == "" {
		return types.TermTy{}, false
	}
	return types.TermTy{Variant: ty.Variant, Fullname: class.Superclass}, true
}

// AncestorTypes returns ty followed by every supertype up to the root,
// inclusive of ty itself (spec §4.2).
func (d *ClassDict) AncestorTypes(ty types.TermTy) []types.TermTy {
	var v []types.TermTy
	cur, ok := ty, true
	for ok {
		v = append(v, cur)
		cur, ok = d.SupertypeOf(cur)
	}
	return v
}

// IsSubtypeOf reports whether of appears in sub's ancestor chain —
// i.e. sub is of, or a descendant of of (spec §4.4's return value and
// if-branch coherence rules use this as their closure).
func (d *ClassDict) IsSubtypeOf(sub, of types.TermTy) bool {
	for _, anc := range d.AncestorTypes(sub) {
		if anc.Equal(of) {
			return true
		}
	}
	return false
}

// NearestCommonAncestor returns the first type common to both a's and
// b's ancestor chains, used to unify if-expression branch types (spec
// §4.4). ok is false only if a and b are rooted in different
// hierarchies, which cannot happen once every class ultimately
// inherits Object.
func (d *ClassDict) NearestCommonAncestor(a, b types.TermTy) (types.TermTy, bool) {
	bAncestors := d.AncestorTypes(b)
	seen := make(map[names.ClassFullname]bool, len(bAncestors))
	for _, anc := range bAncestors {
		seen[anc.Fullname] = true
	}
	for _, anc := range d.AncestorTypes(a) {
		if seen[anc.Fullname] {
			return anc, true
		}
	}
	return types.TermTy{}, false
}

// IVarOffset returns the number of ivar slots already claimed by
// className's superclass chain — the index a newly-declared ivar on
// className itself must start at to keep indices contiguous across a
// class and its superchain (spec §3.3).
func (d *ClassDict) IVarOffset(className names.ClassFullname) int {
	n := 0
	for sup := d.GetSuperclass(className); sup != nil; sup = d.GetSuperclass(sup.Fullname) {
		n += len(sup.IVars)
	}
	return n
}

// FindIvar looks up an ivar by name on className. ok is false if the
// class declares no such ivar; className itself not existing is a
// BugError, matching the Rust implementation's panic-on-unknown-class
// behavior (query.rs find_ivar).
func (d *ClassDict) FindIvar(className names.ClassFullname, ivarName names.ConstFirstname) (SkIVar, bool) {
	class := d.Classes[className]
	if class == nil {
		diagnostics.Bug("FindIvar: class %s not found", className)
	}
	return class.ivarIndex(ivarName)
}
