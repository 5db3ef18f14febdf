package hir

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/pebble/pkg/ast"
	"github.com/chazu/pebble/pkg/classdict"
	"github.com/chazu/pebble/pkg/diagnostics"
	"github.com/chazu/pebble/pkg/names"
	"github.com/chazu/pebble/pkg/typecheck"
	"github.com/chazu/pebble/pkg/types"
)

// Maker is the central lowering component (spec §4.3): it consumes an
// already-registered class dictionary and an AST, and produces a
// fully-typed Hir. All of its fields are mutable accumulators owned
// exclusively by the Maker until Make succeeds, at which point they
// are handed to the returned Hir by value/reference (spec §9 "Mutable
// accumulators").
type Maker struct {
	dict       *classdict.ClassDict
	methods    map[names.MethodFullname]SkMethod
	constants  map[names.ConstFullname]types.TermTy
	constInits []ConstInit
	strPool    []string
	ctxStack   []*Context

	gensymCounter int
	lambdaCounter int

	// classBodies maps every user class fullname to its AST definition,
	// collected up front so a class's superclass can be lowered first
	// regardless of the two classes' textual order.
	classBodies    map[names.ClassFullname]ast.ClassDefinition
	loweredClasses map[names.ClassFullname]bool
}

// New starts a maker over an already-built class dictionary (spec
// §4.2's output, extended with corelib entries).
func New(dict *classdict.ClassDict) *Maker {
	return &Maker{
		dict:           dict,
		methods:        make(map[names.MethodFullname]SkMethod),
		constants:      make(map[names.ConstFullname]types.TermTy),
		classBodies:    make(map[names.ClassFullname]ast.ClassDefinition),
		loweredClasses: make(map[names.ClassFullname]bool),
	}
}

// gensym returns a fresh temporary name. Names are prefixed with a
// leading space so they can never collide with a user-written
// identifier, which the surface grammar disallows from starting with
// whitespace.
func (m *Maker) gensym() string {
	m.gensymCounter++
	return fmt.Sprintf(" tmp%d", m.gensymCounter)
}

// nextLambdaID returns a fresh, uniquely-numbered id for a lambda-like
// construct (spec §4.3's "lambda counter" — reserved for block/lambda
// lowering once the surface grammar grows closures; no construct in
// the current grammar consumes it yet).
func (m *Maker) nextLambdaID() int {
	m.lambdaCounter++
	return m.lambdaCounter
}

// internString appends s to the string-literal pool and returns its
// index. Per the supplemented corelib note (SPEC_FULL.md §E), pool
// slots are never deduplicated: identical string literals each get
// their own index, matching the reference lowering this front end is
// grounded on.
func (m *Maker) internString(s string) int {
	m.strPool = append(m.strPool, s)
	return len(m.strPool) - 1
}

// Make lowers prog against m's class dictionary and returns the
// completed Hir, or the first error encountered.
func (m *Maker) Make(prog *ast.Program) (*Hir, error) {
	if err := m.materializeClassConstants(); err != nil {
		return nil, err
	}
	m.collectClassBodies("", prog.Definitions)
	for _, fullname := range m.dict.Order {
		if err := m.ensureClassLowered(fullname); err != nil {
			return nil, err
		}
	}
	if err := m.lowerConsts("", prog.Definitions); err != nil {
		return nil, err
	}
	var main []Expression
	for _, e := range prog.Expressions {
		he, err := m.lowerExpr(&e)
		if err != nil {
			return nil, err
		}
		main = append(main, he)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		diagnostics.Bug("Make: failed to generate build id: %v", err)
	}
	return &Hir{
		SkClasses:   m.dict,
		SkMethods:   m.methods,
		Constants:   m.constants,
		ConstInits:  m.constInits,
		StrLiterals: m.strPool,
		MainExprs:   main,
		BuildID:     id,
	}, nil
}

// materializeClassConstants creates, for every registered non-meta
// class whose ConstIsObj is false, a constant of the class's own name
// bound to that class's metaclass type, initialized by a class
// literal (spec §4.3). These run before any user-written const_init or
// main expression, in class-registration order.
func (m *Maker) materializeClassConstants() error {
	for _, fullname := range m.dict.Order {
		sk := m.dict.Classes[fullname]
		if sk.ConstIsObj {
			continue
		}
		idx := m.internString(string(fullname))
		constName := names.NewConstFullname("", names.ConstFirstname(fullname))
		ty := types.NewMeta(fullname)
		m.constants[constName] = ty
		m.constInits = append(m.constInits, ConstInit{
			Fullname: constName,
			RHS: ClassLiteral{
				Fullname:  fullname,
				NameIndex: idx,
				Type:      ty,
			},
		})
	}
	return nil
}

// collectClassBodies walks every level of top-level/class-body
// definitions and records each class's AST body under its fullname,
// without lowering anything yet. This runs before any class body is
// lowered so ensureClassLowered can find and lower a superclass ahead
// of its subclass even when the subclass appears first in the source.
func (m *Maker) collectClassBodies(outer string, defs []ast.Definition) {
	for _, def := range defs {
		cd, ok := def.(ast.ClassDefinition)
		if !ok {
			continue
		}
		fullname := names.NewClassFullname(outer, cd.Name)
		m.classBodies[fullname] = cd
		m.collectClassBodies(string(fullname), cd.Defs)
	}
}

// ensureClassLowered lowers className's initializer and methods,
// first lowering its superclass if that hasn't happened yet. This
// guarantees a subclass's ivar indices are always assigned after its
// superclass's last ivar (spec §3.3's contiguous-across-superchain
// invariant), independent of the two classes' declaration order.
func (m *Maker) ensureClassLowered(className names.ClassFullname) error {
	if m.loweredClasses[className] {
		return nil
	}
	m.loweredClasses[className] = true
	sk := m.dict.Get(className)
	if sk.Superclass != "" {
		if err := m.ensureClassLowered(sk.Superclass); err != nil {
			return err
		}
	}
	cd, ok := m.classBodies[className]
	if !ok {
		return nil
	}
	return m.lowerClassBody(className, cd.Defs)
}

// lowerConsts processes class-level and top-level const definitions in
// declaration order (spec §4.3 Top-level lowering). It runs after
// every class body has been lowered, so a const initializer can call
// methods freely.
func (m *Maker) lowerConsts(outer string, defs []ast.Definition) error {
	for _, def := range defs {
		switch d := def.(type) {
		case ast.ClassDefinition:
			fullname := names.NewClassFullname(outer, d.Name)
			if err := m.lowerConsts(string(fullname), d.Defs); err != nil {
				return err
			}
		case ast.ConstDefinition:
			he, err := m.lowerExpr(&d.Expr)
			if err != nil {
				return err
			}
			constName := names.NewConstFullname(outer, d.Name)
			m.constants[constName] = he.Ty()
			m.constInits = append(m.constInits, ConstInit{Fullname: constName, RHS: he})
		}
	}
	return nil
}

// lowerClassBody lowers every method of one class: initialize first
// (committing ivars) followed by the synthesized `.new` if an
// initializer was declared, then instance and class methods (spec
// §4.3: "The first method processed in a class is initialize, if
// present").
func (m *Maker) lowerClassBody(className names.ClassFullname, defs []ast.Definition) error {
	sk := m.dict.Get(className)
	if sk == nil {
		diagnostics.Bug("lowerClassBody: class %s not registered", className)
	}

	for _, def := range defs {
		if id, ok := def.(ast.InitializerDefinition); ok {
			if err := m.lowerInitializer(className, id); err != nil {
				return err
			}
			m.synthesizeNew(className)
			break
		}
	}

	for _, def := range defs {
		switch d := def.(type) {
		case ast.InstanceMethodDefinition:
			if err := m.lowerMethod(className, types.NewRaw(className), d.Sig, d.Body, false); err != nil {
				return err
			}
		case ast.ClassMethodDefinition:
			if err := m.lowerMethod(className.MetaName(), types.NewMeta(className), d.Sig, d.Body, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// lowerInitializer lowers `initialize`'s body under a fresh
// initializer context frame, recording each `@x = e` as a fresh ivar
// with an auto-assigned contiguous index, then commits the discovered
// ivars to the class dictionary (spec §4.3 Initializer lowering).
func (m *Maker) lowerInitializer(className names.ClassFullname, def ast.InitializerDefinition) error {
	sk := m.dict.Get(className)
	startIdx := m.dict.IVarOffset(className) + len(sk.IVars)

	ctx := newContext(string(className), types.NewRaw(className), true)
	for _, p := range def.Sig.Params {
		ctx.Locals[p.Name] = resolveParamType(m.dict, p.Typ)
	}
	m.push(ctx)
	defer m.pop()

	var body []Expression
	for _, e := range def.Body {
		he, err := m.lowerExpr(&e)
		if err != nil {
			return err
		}
		body = append(body, he)
	}

	for i, iv := range ctx.IVars {
		iv.Idx = startIdx + i
		sk.IVars = append(sk.IVars, iv)
	}

	paramTys := make([]types.TermTy, len(def.Sig.Params))
	paramNames := make([]string, len(def.Sig.Params))
	for i, p := range def.Sig.Params {
		paramTys[i] = resolveParamType(m.dict, p.Typ)
		paramNames[i] = p.Name
	}
	sig := classdict.MethodSignature{
		FullName:   names.NewMethodFullname(className, "initialize"),
		ParamTys:   paramTys,
		ParamNames: paramNames,
		RetTy:      types.NewRaw(names.ClassFullname(types.Void)),
	}
	sk.Methods["initialize"] = sig
	sk.HasInitializer = true

	m.methods[sig.FullName] = SkMethod{Fullname: sig.FullName, Sig: sig, Body: body}
	return nil
}

// synthesizeNew registers the declarative `.new` class method whose
// shape classdict.Builder already computed and stashed on the class as
// SynthesizedNew (spec §4.3 Synthesized `.new`). The HIR maker's job is
// only to turn that description into an SkMethod entry in the method
// dictionary; the back end is the one that emits it.
func (m *Maker) synthesizeNew(className names.ClassFullname) {
	sk := m.dict.Get(className)
	if sk.SynthesizedNew == nil {
		return
	}
	meta := m.dict.Get(className.MetaName())
	sig, ok := meta.ClassMethods["new"]
	if !ok {
		diagnostics.Bug("synthesizeNew: meta class %s missing synthesized .new signature", className.MetaName())
	}
	m.methods[sig.FullName] = SkMethod{
		Fullname:       sig.FullName,
		Sig:            sig,
		SynthesizedNew: sk.SynthesizedNew,
	}
}

// lowerMethod lowers one instance or class method body under a fresh
// context frame.
func (m *Maker) lowerMethod(owner names.ClassFullname, self types.TermTy, sig ast.MethodSignature, astBody []ast.Expression, inInit bool) error {
	ctx := newContext(string(owner), self, inInit)
	for _, p := range sig.Params {
		ctx.Locals[p.Name] = resolveParamType(m.dict, p.Typ)
	}
	m.push(ctx)
	defer m.pop()

	var body []Expression
	for _, e := range astBody {
		he, err := m.lowerExpr(&e)
		if err != nil {
			return err
		}
		body = append(body, he)
	}

	bodyTy := types.NewRaw(names.ClassFullname(types.Void))
	if len(body) > 0 {
		bodyTy = body[len(body)-1].Ty()
	}
	retTy := resolveParamType(m.dict, sig.RetTyp)
	if err := typecheck.CheckReturnType(m.dict, string(sig.Name), bodyTy, retTy); err != nil {
		return err
	}

	paramTys := make([]types.TermTy, len(sig.Params))
	paramNames := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		paramTys[i] = resolveParamType(m.dict, p.Typ)
		paramNames[i] = p.Name
	}
	full := names.NewMethodFullname(owner, sig.Name)
	msig := classdict.MethodSignature{FullName: full, ParamTys: paramTys, ParamNames: paramNames, RetTy: retTy}
	m.methods[full] = SkMethod{Fullname: full, Sig: msig, Body: body}
	return nil
}

func resolveParamType(dict *classdict.ClassDict, tn ast.TypeName) types.TermTy {
	if tn.Name == "" {
		return types.NewRaw(names.ClassFullname(types.Void))
	}
	return types.NewRaw(names.ClassFullname(tn.Name))
}
