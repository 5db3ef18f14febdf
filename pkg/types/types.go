// Package types defines TermTy, the two-variant nominal type used
// throughout the HIR (spec §3 Types).
package types

import "github.com/chazu/pebble/pkg/names"

// Variant distinguishes the two TermTy shapes.
type Variant int

const (
	// Raw is a nominal instance type: a value of class fullname.
	Raw Variant = iota
	// Meta is the metaclass of a nominal type: the type of the class
	// object itself.
	Meta
)

// Void is the distinguished Raw type given to an empty method body and
// to an if-expression with no else branch.
const Void names.ClassFirstname = "Void"

// TermTy is a tagged union over Variant with exactly one payload: the
// class fullname the type names.
type TermTy struct {
	Variant  Variant
	Fullname names.ClassFullname
}

// NewRaw builds the instance type of class fullname.
func NewRaw(fullname names.ClassFullname) TermTy {
	return TermTy{Variant: Raw, Fullname: fullname}
}

// NewMeta builds the metaclass type of class fullname (fullname must
// itself be a non-meta class fullname).
func NewMeta(fullname names.ClassFullname) TermTy {
	return TermTy{Variant: Meta, Fullname: fullname.MetaName()}
}

// MetaTy returns the metaclass type of a Raw type. Calling MetaTy on a
// Meta type is a programmer error — metaclasses have no meta-metaclass
// in this language.
func (t TermTy) MetaTy() TermTy {
	return TermTy{Variant: Meta, Fullname: t.Fullname.MetaName()}
}

// InstanceTy returns the Raw type this Meta type is the class object
// of. Calling InstanceTy on a Raw type is a programmer error.
func (t TermTy) InstanceTy() TermTy {
	return TermTy{Variant: Raw, Fullname: t.Fullname.InstanceName()}
}

// IsMeta reports whether t is a metaclass type.
func (t TermTy) IsMeta() bool { return t.Variant == Meta }

// Equal reports whether two types have the same variant and fullname.
func (t TermTy) Equal(other TermTy) bool {
	return t.Variant == other.Variant && t.Fullname == other.Fullname
}

func (t TermTy) String() string {
	if t.Variant == Meta {
		return string(t.Fullname)
	}
	return string(t.Fullname)
}

// IsVoid reports whether t is the distinguished Void type.
func (t TermTy) IsVoid() bool {
	return t.Variant == Raw && t.Fullname == names.ClassFullname(Void)
}
