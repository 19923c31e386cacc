package analyzer

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// storedField tracks one stored property in declaration order for the
// memberwise-initializer synthesis.
type storedField struct {
	name       string
	ty         *types.Type
	hasDefault bool
	writable   bool
}

// spanOfFirst picks the first non-nil node's span for a diagnostic
// anchor.
func spanOfFirst(nodes ...ast.Node) source.Span {
	for _, n := range nodes {
		if n != nil {
			return n.Span()
		}
	}
	return source.Span{}
}

// declareTypeHeader is pass 1a: nominal type names register eagerly so
// any later reference, including one earlier in the file than the
// declaration, resolves.
func (a *Analyzer) declareTypeHeader(s ast.Statement) {
	switch d := s.(type) {
	case *ast.StructDeclaration:
		a.registerNominal(d.Name, types.Struct, d.Generics, d, d.Span())
	case *ast.ClassDeclaration:
		a.registerNominal(d.Name, types.Class, d.Generics, d, d.Span())
	case *ast.EnumDeclaration:
		a.registerNominal(d.Name, types.Enum, d.Generics, d, d.Span())
	case *ast.ProtocolDeclaration:
		a.registerNominal(d.Name, types.Protocol, nil, d, d.Span())
	case *ast.TypeAliasDeclaration:
		// Alias targets may reference types declared later; the target
		// resolves on demand through the lazy table.
		name := d.Name
		decl := d
		a.deferLazy(name, func() {
			target := a.resolveTypeRef(decl.Target)
			alias := types.NewAlias(name, target)
			if !a.fileScope.AddType(name, alias) {
				a.sink.Error(diagnostics.ErrInvalidRedeclaration, decl.Span(), name)
			}
		})
	}
}

func (a *Analyzer) registerNominal(name string, cat types.Category, generics *ast.GenericParameterList, decl ast.Declaration, span source.Span) *types.Type {
	var def *types.GenericDefinition
	if generics != nil {
		def = &types.GenericDefinition{}
		for _, gp := range generics.Params {
			def.Params = append(def.Params, types.GenericTypeParam{
				Name:        gp.Name,
				Placeholder: types.NewGenericParameter(gp.Name),
			})
		}
	}
	t := types.NewNominal(name, cat, nil, nil, def)
	if a.scope().AddType(name, t) {
		a.scope().AddSymbol(name, symbols.NewTypeSymbol(name, t))
	} else {
		// The duplicate still analyzes under its own type value so its
		// members don't cascade; only the name stays owned by the first
		// declaration.
		a.sink.Error(diagnostics.ErrInvalidRedeclaration, span, name)
	}
	a.typeOf(decl, t)
	a.declared = append(a.declared, declaredType{ty: t, span: span})
	return t
}

// typeOf records (and retrieves, with nil store) the Type created for a
// declaration node during 1a, consumed by 1b.
func (a *Analyzer) typeOf(decl ast.Declaration, store *types.Type) *types.Type {
	if a.declTypes == nil {
		a.declTypes = map[ast.Declaration]*types.Type{}
	}
	if store != nil {
		a.declTypes[decl] = store
	}
	return a.declTypes[decl]
}

// declareHeader is pass 1b: resolve inheritance clauses, member and
// function signatures, and top-level bindings; defer every body into the
// lazy table.
func (a *Analyzer) declareHeader(s ast.Statement) {
	switch d := s.(type) {
	case *ast.ConstantDeclaration:
		a.declareTopLevelBindings(d.Bindings, false)
	case *ast.VariableDeclaration:
		a.declareTopLevelBindings(d.Bindings, true)
	case *ast.FunctionDeclaration:
		a.declareFunction(d, nil)
	case *ast.StructDeclaration:
		t := a.typeOf(d, nil)
		a.resolveInheritance(t, nil, d.Protocols, d.Span())
		a.declareTypeMembers(t, d, d.Generics, d.Members)
		a.synthesizeStructInitializers(t, d)
	case *ast.ClassDeclaration:
		t := a.typeOf(d, nil)
		a.resolveInheritance(t, d, d.Protocols, d.Span())
		a.declareTypeMembers(t, d, d.Generics, d.Members)
	case *ast.EnumDeclaration:
		t := a.typeOf(d, nil)
		a.resolveInheritance(t, nil, d.Protocols, d.Span())
		a.declareEnumCases(t, d)
		a.declareTypeMembers(t, d, d.Generics, d.Members)
	case *ast.ProtocolDeclaration:
		t := a.typeOf(d, nil)
		a.resolveInheritance(t, nil, d.Inherited, d.Span())
		a.declareTypeMembers(t, d, nil, d.Members)
	case *ast.ExtensionDeclaration:
		a.declareExtension(d)
	}
}

func (a *Analyzer) declareTopLevelBindings(bindings []ast.Binding, writable bool) {
	for i := range bindings {
		b := &bindings[i]
		if b.Name == "" {
			// Pattern bindings register their leaves during pass 2's
			// destructuring, once element types are known.
			continue
		}
		var ty *types.Type
		if b.TypeAnnotation != nil {
			ty = a.resolveTypeRef(b.TypeAnnotation)
		}
		flags := symbols.FlagReadable
		if writable {
			flags |= symbols.FlagWritable
		}
		sym := symbols.NewPlaceholder(b.Name, ty, flags, nil)
		if !a.scope().AddSymbol(b.Name, sym) {
			a.sink.Error(diagnostics.ErrInvalidRedeclaration, spanOfFirst(b.Value, b.TypeAnnotation), b.Name)
		}
	}
}

// resolveInheritance splits an inheritance clause into superclass and
// protocol conformances. classDecl is non-nil for classes, whose first
// entry may be a superclass; a class type appearing later is the
// E_SUPERCLASS_MUST_APPEAR_FIRST diagnostic.
func (a *Analyzer) resolveInheritance(t *types.Type, classDecl *ast.ClassDeclaration, refs []*ast.NamedTypeRef, span source.Span) {
	_ = span
	for i, ref := range refs {
		resolved := a.resolveNamedTypeRef(ref)
		u := resolved.Unalias()
		if u == nil || u.Category == types.Placeholder {
			continue
		}
		switch u.Category {
		case types.Protocol:
			t.Protocols = append(t.Protocols, u)
		case types.Class:
			if classDecl == nil {
				a.sink.Error(diagnostics.ErrUseOfUndeclaredType, ref.Span(), ref.Name)
				continue
			}
			if i != 0 {
				a.sink.Error(diagnostics.ErrSuperclassMustAppearFirst, ref.Span(), ref.Name)
				continue
			}
			t.Parent = u
		case types.Struct, types.Enum:
			if t.Category == types.Enum && i == 0 {
				// Enum raw-value backing type.
				t.SetAssociatedType("RawValue", u)
				continue
			}
			a.sink.Error(diagnostics.ErrUseOfUndeclaredType, ref.Span(), ref.Name)
		}
	}
}

func (a *Analyzer) declareEnumCases(t *types.Type, d *ast.EnumDeclaration) {
	for _, c := range d.Cases {
		info := types.EnumCaseInfo{Name: c.Name}
		for _, assoc := range c.Associated {
			info.Associated = append(info.Associated, a.resolveTypeRef(assoc.TypeAnnotation))
		}
		t.Cases = append(t.Cases, info)
		// A payload-free case reads as a static constant of the enum; a
		// payload case reads as a static factory function.
		if len(info.Associated) == 0 {
			t.AddStaticMember(c.Name, symbols.NewPlaceholder(c.Name, t, symbols.FlagReadable|symbols.FlagStatic|symbols.FlagInitialized, d))
		} else {
			params := make([]types.Parameter, len(info.Associated))
			for i, at := range info.Associated {
				params[i] = types.Parameter{Type: at}
			}
			fn := symbols.NewFunctionSymbol(c.Name, a.reg.Arena.Function(params, t, false, nil), nil)
			t.AddStaticMember(c.Name, fn)
		}
	}
}

// enterGenericScope registers a declaration's generic parameter
// placeholders (and their constraints) as types in a fresh scope.
func (a *Analyzer) enterGenericScope(owner ast.Node, t *types.Type, generics *ast.GenericParameterList) func() {
	leave := a.enterScope(owner)
	if t != nil && t.Generic != nil && generics != nil {
		for i, gp := range t.Generic.Params {
			a.scope().AddType(gp.Name, gp.Placeholder)
			if i < len(generics.Params) {
				for _, c := range generics.Params[i].Constraints {
					if c.Kind == ast.ConstraintConformance {
						bound := a.resolveTypeRef(c.Bound)
						if bound.Category == types.Protocol {
							t.Generic.Params[i].Constraints = append(t.Generic.Params[i].Constraints, bound)
							gp.Placeholder.Protocols = append(gp.Placeholder.Protocols, bound)
						}
					}
				}
			}
		}
	}
	return leave
}

// declareTypeMembers fills a nominal type's member tables from its body,
// deferring every body analysis under the type's name. Protocol bodies
// additionally enforce the requirement-shape rules.
func (a *Analyzer) declareTypeMembers(t *types.Type, decl ast.Declaration, generics *ast.GenericParameterList, members []ast.Declaration) {
	prevType := a.currentType
	a.currentType = t
	leave := a.enterGenericScope(decl, t, generics)
	defer func() {
		leave()
		a.currentType = prevType
	}()

	isProtocol := t.Category == types.Protocol

	// Type-introducing members first, registered into both the body scope
	// and the associated-type table, so a sibling signature can reference
	// them regardless of declaration order.
	for _, m := range members {
		switch md := m.(type) {
		case *ast.TypeAliasDeclaration:
			target := a.resolveTypeRef(md.Target)
			t.SetAssociatedType(md.Name, target)
			a.scope().AddType(md.Name, target)
		case *ast.AssociatedTypeDeclaration:
			// A protocol associated-type requirement: recorded as an
			// unbound generic parameter until a conforming type binds it.
			req := types.NewGenericParameter(md.Name)
			if md.Bound != nil {
				if bound := a.resolveTypeRef(md.Bound); bound.Category == types.Protocol {
					req.Protocols = append(req.Protocols, bound)
				}
			}
			t.SetAssociatedType(md.Name, req)
			a.scope().AddType(md.Name, req)
		}
	}

	for _, m := range members {
		switch md := m.(type) {
		case *ast.ConstantDeclaration:
			if isProtocol {
				a.sink.Error(diagnostics.ErrProtocolCannotDefineLetConstant, md.Span())
				continue
			}
			a.declareStoredProperties(t, md.Bindings, md.IsStatic, false, md)

		case *ast.VariableDeclaration:
			if isProtocol {
				a.declareProtocolProperty(t, md)
				continue
			}
			a.declareVarProperties(t, md)

		case *ast.FunctionDeclaration:
			if isProtocol {
				for _, p := range md.Parameters {
					if p.Default != nil {
						a.sink.Error(diagnostics.ErrDefaultArgNotPermittedInProtocol, md.Span())
					}
				}
			}
			a.declareFunction(md, t)

		case *ast.InitializerDeclaration:
			a.declareInitializer(t, md)

		case *ast.DeinitializerDeclaration:
			body := md.Body
			owner := t
			a.deferLazy(t.Name, func() {
				a.analyzeMethodBody(owner, nil, a.builtin("Void"), nil, body, false, false)
			})

		case *ast.SubscriptDeclaration:
			a.declareSubscript(t, md)

		case *ast.TypeAliasDeclaration, *ast.AssociatedTypeDeclaration:
			// Handled in the type-introduction sweep above.

		case *ast.StructDeclaration:
			nested := a.registerNominal(md.Name, types.Struct, md.Generics, md, md.Span())
			a.declareTypeMembers(nested, md, md.Generics, md.Members)
			a.synthesizeStructInitializers(nested, md)
			t.SetAssociatedType(md.Name, nested)

		case *ast.EnumDeclaration:
			nested := a.registerNominal(md.Name, types.Enum, md.Generics, md, md.Span())
			a.declareEnumCases(nested, md)
			a.declareTypeMembers(nested, md, md.Generics, md.Members)
			t.SetAssociatedType(md.Name, nested)
		}
	}
}

// declareStoredProperties records let-properties (and the stored subset
// of var-properties) with their declaration-order positions for the
// memberwise initializer.
func (a *Analyzer) declareStoredProperties(t *types.Type, bindings []ast.Binding, isStatic, writable bool, decl ast.Declaration) {
	for i := range bindings {
		b := &bindings[i]
		if b.Name == "" {
			continue
		}
		var ty *types.Type
		if b.TypeAnnotation != nil {
			ty = a.resolveTypeRef(b.TypeAnnotation)
		} else if b.Value != nil {
			ty = a.inferExpr(&b.Value, nil)
		}
		flags := symbols.FlagReadable | symbols.FlagMember
		if writable {
			flags |= symbols.FlagWritable
		}
		if isStatic {
			flags |= symbols.FlagStatic
		}
		if b.Value != nil {
			flags |= symbols.FlagInitialized
		}
		sym := symbols.NewPlaceholder(b.Name, ty, flags, decl)
		if isStatic {
			if t.GetDeclaredStaticMember(b.Name) != nil {
				a.sink.Error(diagnostics.ErrInvalidRedeclaration, decl.Span(), b.Name)
				continue
			}
			t.AddStaticMember(b.Name, sym)
		} else {
			if t.GetDeclaredMember(b.Name) != nil {
				a.sink.Error(diagnostics.ErrInvalidRedeclaration, decl.Span(), b.Name)
				continue
			}
			t.AddMember(b.Name, sym)
			a.storedFields[t] = append(a.storedFields[t], storedField{
				name: b.Name, ty: ty, hasDefault: b.Value != nil, writable: writable,
			})
		}
	}
}

func (a *Analyzer) declareVarProperties(t *types.Type, md *ast.VariableDeclaration) {
	for i := range md.Bindings {
		b := &md.Bindings[i]
		if b.Name == "" {
			continue
		}
		computed := i < len(md.Getters) && md.Getters[i] != nil
		if computed {
			var ty *types.Type
			if b.TypeAnnotation != nil {
				ty = a.resolveTypeRef(b.TypeAnnotation)
			}
			flags := symbols.FlagReadable | symbols.FlagMember | symbols.FlagInitialized
			if i < len(md.Setters) && md.Setters[i] != nil {
				flags |= symbols.FlagWritable
			}
			if md.IsStatic {
				flags |= symbols.FlagStatic
			}
			sym := symbols.NewPlaceholder(b.Name, ty, flags, md)
			if md.IsStatic {
				t.AddStaticMember(b.Name, sym)
			} else {
				t.AddMember(b.Name, sym)
			}
			a.deferAccessorBodies(t, ty, md, i)
			continue
		}
		a.declareStoredProperties(t, md.Bindings[i:i+1], md.IsStatic, true, md)
	}
}

func (a *Analyzer) deferAccessorBodies(t *types.Type, propTy *types.Type, md *ast.VariableDeclaration, i int) {
	getter := md.Getters[i]
	var setter *ast.BlockStatement
	if i < len(md.Setters) {
		setter = md.Setters[i]
	}
	setterName := md.SetterName
	owner := t
	a.deferLazy(t.Name, func() {
		if getter != nil && len(getter.Statements) > 0 {
			a.analyzeMethodBody(owner, nil, propTy, nil, getter, false, md.IsStatic)
		}
		if setter != nil && len(setter.Statements) > 0 {
			param := []ast.Parameter{{LocalName: setterName}}
			a.analyzeMethodBody(owner, param, a.builtin("Void"), []*types.Type{propTy}, setter, false, md.IsStatic)
		}
	})
}

// declareProtocolProperty validates a protocol `var` requirement: it must
// be a computed property with accessor requirements, never stored or
// defaulted.
func (a *Analyzer) declareProtocolProperty(t *types.Type, md *ast.VariableDeclaration) {
	for i := range md.Bindings {
		b := &md.Bindings[i]
		computed := i < len(md.Getters) && md.Getters[i] != nil
		if b.Value != nil || !computed {
			a.sink.Error(diagnostics.ErrProtocolVarMustBeComputed, md.Span())
			continue
		}
		var ty *types.Type
		if b.TypeAnnotation != nil {
			ty = a.resolveTypeRef(b.TypeAnnotation)
		}
		flags := symbols.FlagReadable | symbols.FlagMember
		if i < len(md.Setters) && md.Setters[i] != nil {
			flags |= symbols.FlagWritable
		}
		t.AddMember(b.Name, symbols.NewPlaceholder(b.Name, ty, flags, md))
	}
}

// declareFunction resolves a function signature and registers the symbol:
// in the enclosing scope for free functions, in the owner's member tables
// for methods. The body defers under the function's (or owner type's)
// name.
func (a *Analyzer) declareFunction(d *ast.FunctionDeclaration, owner *types.Type) {
	var def *types.GenericDefinition
	leave := func() {}
	if d.Generics != nil {
		def = &types.GenericDefinition{}
		leave = a.enterScope(d)
		for _, gp := range d.Generics.Params {
			ph := types.NewGenericParameter(gp.Name)
			for _, c := range gp.Constraints {
				if c.Kind == ast.ConstraintConformance {
					if bound := a.resolveTypeRef(c.Bound); bound.Category == types.Protocol {
						ph.Protocols = append(ph.Protocols, bound)
					}
				}
			}
			def.Params = append(def.Params, types.GenericTypeParam{Name: gp.Name, Placeholder: ph})
			a.scope().AddType(gp.Name, ph)
		}
	}

	params, paramTypes := a.resolveParameterClause(d.Parameters, d)
	ret := a.builtin("Void")
	if d.ReturnType != nil {
		ret = a.resolveTypeRef(d.ReturnType)
	}
	fnType := a.reg.Arena.Function(params, ret, hasVariadic(d.Parameters), def)
	leave()

	fn := symbols.NewFunctionSymbol(d.Name, fnType, d)

	if owner == nil {
		if !a.scope().AddSymbol(d.Name, fn) {
			a.sink.Error(diagnostics.ErrInvalidRedeclaration, d.Span(), d.Name)
		}
	} else {
		if !addMemberFunction(owner, d.Name, fn, d.IsStatic) {
			a.sink.Error(diagnostics.ErrInvalidRedeclaration, d.Span(), d.Name)
		}
	}

	if d.Body == nil {
		return
	}
	key := d.Name
	if owner != nil {
		key = owner.Name
	}
	decl := d
	ownerT := owner
	a.deferLazy(key, func() {
		a.analyzeMethodBody(ownerT, decl.Parameters, ret, paramTypes, decl.Body, false, decl.IsStatic)
	})
}

// addMemberFunction inserts a method, folding same-named methods into an
// overload set and rejecting duplicate signatures.
func addMemberFunction(t *types.Type, name string, fn *symbols.FunctionSymbol, static bool) bool {
	get := t.GetDeclaredMember
	add := t.AddMember
	if static {
		get = t.GetDeclaredStaticMember
		add = t.AddStaticMember
	}
	switch existing := get(name).(type) {
	case nil:
		add(name, fn)
		return true
	case *symbols.FunctionSymbol:
		set := symbols.NewOverloadSet(name)
		set.Add(existing)
		if !set.Add(fn) {
			return false
		}
		add(name, set)
		return true
	case *symbols.OverloadSet:
		return existing.Add(fn)
	default:
		return false
	}
}

func (a *Analyzer) declareInitializer(t *types.Type, d *ast.InitializerDeclaration) {
	params, paramTypes := a.resolveParameterClause(d.Parameters, d)
	result := selfType(a, t)
	if d.Kind == ast.InitFailable {
		result = a.optionalOf(result)
	}
	fnType := a.reg.Arena.Function(params, result, hasVariadic(d.Parameters), nil)
	fn := symbols.NewFunctionSymbol("init", fnType, d)
	for _, existing := range t.Initializers {
		if em, ok := existing.(*symbols.FunctionSymbol); ok && types.Equals(em.Ty, fnType) {
			a.sink.Error(diagnostics.ErrInvalidRedeclaration, d.Span(), "init")
			return
		}
	}
	t.Initializers = append(t.Initializers, fn)
	if d.Body != nil {
		decl := d
		owner := t
		ret := a.builtin("Void")
		a.deferLazy(t.Name, func() {
			a.analyzeMethodBody(owner, decl.Parameters, ret, paramTypes, decl.Body, true, false)
		})
	}
}

func (a *Analyzer) declareSubscript(t *types.Type, d *ast.SubscriptDeclaration) {
	params, paramTypes := a.resolveParameterClause(d.Parameters, d)
	ret := a.resolveTypeRef(d.ReturnType)
	fnType := a.reg.Arena.Function(params, ret, false, nil)
	fn := symbols.NewFunctionSymbol("subscript", fnType, d)
	addMemberFunction(t, "subscript", fn, false)

	decl := d
	owner := t
	a.deferLazy(t.Name, func() {
		if decl.Getter != nil {
			a.analyzeMethodBody(owner, decl.Parameters, ret, paramTypes, decl.Getter, false, false)
		}
		if decl.Setter != nil {
			withValue := append(append([]ast.Parameter{}, decl.Parameters...), ast.Parameter{LocalName: decl.SetterName})
			a.analyzeMethodBody(owner, withValue, a.builtin("Void"), append(paramTypes, ret), decl.Setter, false, false)
		}
	})
}

// resolveParameterClause materializes parameter types and emits the
// succinctness warning for `func f(x x: Int)`.
func (a *Analyzer) resolveParameterClause(params []ast.Parameter, decl ast.Declaration) ([]types.Parameter, []*types.Type) {
	out := make([]types.Parameter, len(params))
	tys := make([]*types.Type, len(params))
	for i, p := range params {
		ty := a.resolveTypeRef(p.TypeAnnotation)
		ext := p.ExternalName
		if ext == "_" {
			ext = ""
		}
		if ext != "" && ext == p.LocalName {
			a.sink.Warning(diagnostics.WarnParamCanBeExpressedMoreSuccinctly, decl.Span(), p.LocalName)
		}
		out[i] = types.Parameter{ExternalName: ext, Type: ty, HasDefault: p.Default != nil, InOut: p.InOut}
		tys[i] = ty
	}
	return out, tys
}

func hasVariadic(params []ast.Parameter) bool {
	for _, p := range params {
		if p.Variadic {
			return true
		}
	}
	return false
}

// selfType is the type of `self` inside a member body: the generic
// self-specialization for generic types, the nominal type otherwise.
func selfType(a *Analyzer, t *types.Type) *types.Type {
	if t.Generic == nil {
		return t
	}
	args := make([]*types.Type, len(t.Generic.Params))
	for i, gp := range t.Generic.Params {
		args[i] = gp.Placeholder
	}
	return a.reg.Arena.Specialize(t, args)
}

// declareExtension records members into an Extension type registered on
// the file scope under the extended type's name; added
// conformances append to the extended type so the conformance sweep sees
// the merged surface.
func (a *Analyzer) declareExtension(d *ast.ExtensionDeclaration) {
	extended := a.lookupType(d.Name, d.Span())
	if extended == nil {
		a.sink.Error(diagnostics.ErrUseOfUndeclaredType, d.Span(), d.Name)
		return
	}
	extended = extended.Unalias()

	ext := types.NewNominal(d.Name, types.Extension, extended, nil, extended.Generic)
	a.resolveInheritance(ext, nil, d.Protocols, d.Span())
	extended.Protocols = append(extended.Protocols, ext.Protocols...)

	a.declareTypeMembers(ext, d, d.Generics, d.Members)
	a.fileScope.RegisterExtension(d.Name, ext)
}

// synthesizeStructInitializers: with no custom initializer, a struct gets a zero-arg
// initializer when every stored field has a default, and a memberwise
// initializer (external labels = field names, declaration order)
// otherwise. Classes synthesize nothing.
func (a *Analyzer) synthesizeStructInitializers(t *types.Type, d *ast.StructDeclaration) {
	if len(t.Initializers) > 0 {
		return
	}
	fields := a.storedFields[t]
	allDefaulted := true
	for _, f := range fields {
		if !f.hasDefault {
			allDefaulted = false
			break
		}
	}
	result := selfType(a, t)
	if allDefaulted {
		fnType := a.reg.Arena.Function(nil, result, false, nil)
		t.Initializers = append(t.Initializers, symbols.NewFunctionSymbol("init", fnType, d))
		return
	}
	params := make([]types.Parameter, len(fields))
	for i, f := range fields {
		params[i] = types.Parameter{ExternalName: f.name, Type: f.ty, HasDefault: f.hasDefault}
	}
	fnType := a.reg.Arena.Function(params, result, false, nil)
	t.Initializers = append(t.Initializers, symbols.NewFunctionSymbol("init", fnType, d))
}
