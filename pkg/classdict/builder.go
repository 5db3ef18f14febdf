package classdict

import (
	"fmt"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/types"
)

// Builder runs the two-pass construction described in spec §4.2:
// first every class is registered (so forward references and mutual
// references between classes resolve), then each class's method
// signatures are collected against the now-complete set of names.
// Ivars are left to pkg/hir's initializer lowering.
type Builder struct {
	dict *ClassDict
}

// NewBuilder starts a builder seeded with dict, which should already
// contain Object and any corelib classes (pkg/corelib.Builtin
// populates exactly this).
func NewBuilder(dict *ClassDict) *Builder {
	return &Builder{dict: dict}
}

// Build runs both passes over prog and returns the populated
// dictionary, or the first ProgramError/NameError/TypeError
// encountered.
func (b *Builder) Build(prog *ast.Program) (*ClassDict, error) {
	if err := b.registerClasses("", prog.Definitions); err != nil {
		return nil, err
	}
	if err := b.collectMembers("", prog.Definitions); err != nil {
		return nil, err
	}
	return b.dict, nil
}

// registerClasses is pass 1: walk every ClassDefinition, reserve its
// fullname and its metaclass fullname, and recurse into nested
// definitions. Duplicate definitions of the same fullname are a
// ProgramError (spec §4.2).
func (b *Builder) registerClasses(outer string, defs []ast.Definition) error {
	for _, def := range defs {
		cd, ok := def.(ast.ClassDefinition)
		if !ok {
			continue
		}
		fullname := names.NewClassFullname(outer, cd.Name)
		if b.dict.ClassExists(fullname) {
			return diagnostics.Program(fmt.Sprintf("class %s is already defined", fullname))
		}
		super := names.ClassFullname(cd.Superclass)
		if cd.Superclass == "" && fullname != "Object" {
			super = "Object"
		}
		sk := b.dict.Register(fullname, super)
		sk.Loc = cd.Loc
		if err := b.registerClasses(string(fullname), cd.Defs); err != nil {
			return err
		}
	}
	return nil
}

// collectMembers is pass 2: for each class, resolve every method
// signature's parameter and return types against the now-fully-
// registered dictionary. Ivars are not resolved here: per spec §4.2,
// the dictionary only pre-reserves the ivar mapping; pkg/hir's
// Maker.lowerInitializer populates it once the initializer body's
// `@x = e` assignments have actually been analyzed (spec §4.3).
func (b *Builder) collectMembers(outer string, defs []ast.Definition) error {
	for _, def := range defs {
		cd, ok := def.(ast.ClassDefinition)
		if !ok {
			continue
		}
		fullname := names.NewClassFullname(outer, cd.Name)
		sk := b.dict.Classes[fullname]
		meta := b.dict.Classes[fullname.MetaName()]

		for _, member := range cd.Defs {
			switch m := member.(type) {
			case ast.InitializerDefinition:
				sig, err := b.resolveSignature(fullname, "initialize", m.Sig)
				if err != nil {
					return err
				}
				sk.Methods["initialize"] = sig
				sk.HasInitializer = true
				meta.ClassMethods["new"] = MethodSignature{
					FullName:   names.NewMethodFullname(fullname.MetaName(), "new"),
					ParamTys:   sig.ParamTys,
					ParamNames: sig.ParamNames,
					RetTy:      types.NewRaw(fullname),
				}
				sk.SynthesizedNew = &SynthesizedNewBody{
					Allocates:  fullname,
					Initialize: names.NewMethodFullname(fullname, "initialize"),
					Arity:      len(m.Sig.Params),
				}
			case ast.InstanceMethodDefinition:
				sig, err := b.resolveSignature(fullname, m.Sig.Name, m.Sig)
				if err != nil {
					return err
				}
				sk.Methods[m.Sig.Name] = sig
			case ast.ClassMethodDefinition:
				sig, err := b.resolveSignature(fullname.MetaName(), m.Sig.Name, m.Sig)
				if err != nil {
					return err
				}
				meta.ClassMethods[m.Sig.Name] = sig
			case ast.ConstDefinition:
				// Constant type resolution happens in pkg/hir once the
				// initializer expression can be type-checked; the
				// dictionary only needs the class/method shape.
			}
		}
		if err := b.collectMembers(string(fullname), cd.Defs); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) resolveSignature(owner names.ClassFullname, name names.MethodFirstname, sig ast.MethodSignature) (MethodSignature, error) {
	paramTys := make([]types.TermTy, len(sig.Params))
	paramNames := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		ty, err := b.resolveType(p.Typ)
		if err != nil {
			return MethodSignature{}, err
		}
		paramTys[i] = ty
		paramNames[i] = p.Name
	}
	retTy, err := b.resolveType(sig.RetTyp)
	if err != nil {
		return MethodSignature{}, err
	}
	return MethodSignature{
		FullName:   names.NewMethodFullname(owner, name),
		ParamTys:   paramTys,
		ParamNames: paramNames,
		RetTy:      retTy,
	}, nil
}

func (b *Builder) resolveType(tn ast.TypeName) (types.TermTy, error) {
	if tn.Name == "" {
		return types.NewRaw(names.ClassFullname(types.Void)), nil
	}
	fullname := names.ClassFullname(tn.Name)
	if !b.dict.ClassExists(fullname) {
		return types.TermTy{}, diagnostics.Name(fmt.Sprintf("unknown type %s", tn.Name))
	}
	return types.NewRaw(fullname), nil
}
