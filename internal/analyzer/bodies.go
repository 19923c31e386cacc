package analyzer

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// analyzeMethodBody analyzes one deferred body: a free function, method,
// initializer, accessor, or deinitializer. It installs `self` and the
// parameters into a fresh scope and runs the statement walk with a fresh
// initialization tracer.
func (a *Analyzer) analyzeMethodBody(owner *types.Type, params []ast.Parameter, ret *types.Type, paramTypes []*types.Type, body *ast.BlockStatement, isInit, isStatic bool) {
	if body == nil {
		return
	}
	prevType, prevFunc, prevTracer := a.currentType, a.currentFunc, a.tracer
	a.currentType = owner
	a.currentFunc = &funcContext{returnType: ret, inInitializer: isInit, isStatic: isStatic}
	a.tracer = newTracerStack()
	leave := a.enterScope(body)
	defer func() {
		leave()
		a.currentType, a.currentFunc, a.tracer = prevType, prevFunc, prevTracer
	}()

	if owner != nil && owner.Generic != nil {
		for _, gp := range owner.Generic.Params {
			a.scope().AddType(gp.Name, gp.Placeholder)
		}
	}
	if owner != nil && !isStatic {
		self := symbols.NewPlaceholder("self", selfType(a, owner), symbols.FlagReadable|symbols.FlagInitialized, body)
		a.scope().AddSymbol("self", self)
	}
	for i, p := range params {
		var ty *types.Type
		if i < len(paramTypes) {
			ty = paramTypes[i]
		}
		flags := symbols.FlagReadable | symbols.FlagInitialized
		if p.InOut {
			flags |= symbols.FlagWritable
		}
		name := p.LocalName
		if name == "" {
			continue
		}
		a.scope().AddSymbol(name, symbols.NewPlaceholder(name, ty, flags, body))
	}

	for i := range body.Statements {
		a.analyzeStatement(&body.Statements[i])
	}
}

// analyzeStatement is the pass-2 statement walk: local bindings with
// initialization tracking, control flow with branch tracers, and
// expression inference.
func (a *Analyzer) analyzeStatement(slot *ast.Statement) {
	s := *slot
	if s == nil {
		return
	}
	if !a.guardDepth(s.Span()) {
		return
	}
	defer a.unguard()

	switch d := s.(type) {
	case *ast.ConstantDeclaration:
		if !d.IsMember {
			a.analyzeBindings(d, d.Bindings, false)
		}
	case *ast.VariableDeclaration:
		if !d.IsMember {
			a.analyzeBindings(d, d.Bindings, true)
		}
	case *ast.FunctionDeclaration:
		// Nested function: top-level ones were declared in pass 1 and
		// their bodies drained; a body-local declaration analyzes in
		// place so captured scopes stay live.
		if _, sc := a.scope().Lookup(d.Name); sc == nil || sc == a.reg.Global {
			a.declareLocalFunction(d)
		}
	case *ast.ImportStatement, *ast.OperatorDeclaration,
		*ast.StructDeclaration, *ast.ClassDeclaration, *ast.EnumDeclaration,
		*ast.ProtocolDeclaration, *ast.ExtensionDeclaration, *ast.TypeAliasDeclaration:
		// Declared in pass 1.

	case *ast.ExpressionStatement:
		a.inferExpr(&d.Expr, nil)

	case *ast.BlockStatement:
		leave := a.enterScope(d)
		for i := range d.Statements {
			a.analyzeStatement(&d.Statements[i])
		}
		leave()

	case *ast.IfStatement:
		a.inferExpr(&d.Condition, a.builtin("Bool"))
		group := a.tracer.pushBranchGroup()
		group.pushArm()
		a.analyzeBlock(d.Then)
		group.popArm()
		if d.Else != nil {
			group.pushArm()
			elseStmt := d.Else
			a.analyzeStatement(&elseStmt)
			group.popArm()
			group.setExhaustive()
		}
		group.close()

	case *ast.GuardStatement:
		a.inferExpr(&d.Condition, a.builtin("Bool"))
		group := a.tracer.pushBranchGroup()
		group.pushArm()
		a.analyzeBlock(d.Else)
		group.popArm()
		group.close()

	case *ast.WhileStatement:
		a.inferExpr(&d.Condition, a.builtin("Bool"))
		group := a.tracer.pushBranchGroup()
		group.pushArm()
		a.analyzeBlock(d.Body)
		group.popArm()
		group.close()

	case *ast.RepeatStatement:
		// The body of a repeat loop runs at least once, so its
		// initializations survive to the condition and beyond.
		a.analyzeBlock(d.Body)
		a.inferExpr(&d.Condition, a.builtin("Bool"))

	case *ast.ForStatement:
		leave := a.enterScope(d)
		if d.Init != nil {
			initStmt := d.Init
			a.analyzeStatement(&initStmt)
		}
		if d.Condition != nil {
			a.inferExpr(&d.Condition, a.builtin("Bool"))
		}
		group := a.tracer.pushBranchGroup()
		group.pushArm()
		a.analyzeBlock(d.Body)
		if d.Step != nil {
			a.inferExpr(&d.Step, nil)
		}
		group.popArm()
		group.close()
		leave()

	case *ast.ForInStatement:
		seqType := a.inferExpr(&d.Sequence, nil)
		elem := a.elementTypeOf(seqType)
		leave := a.enterScope(d)
		a.declarePatternBindings(d.Pattern, elem, false)
		if d.Where != nil {
			a.inferExpr(&d.Where, a.builtin("Bool"))
		}
		group := a.tracer.pushBranchGroup()
		group.pushArm()
		a.analyzeBlock(d.Body)
		group.popArm()
		group.close()
		leave()

	case *ast.SwitchStatement:
		a.analyzeSwitch(d)

	case *ast.ReturnStatement:
		var ctx *types.Type
		if a.currentFunc != nil {
			ctx = a.currentFunc.returnType
		}
		if d.Value != nil {
			a.inferExpr(&d.Value, ctx)
		}

	case *ast.LabeledStatement:
		body := d.Body
		a.analyzeStatement(&body)

	case *ast.BreakStatement, *ast.ContinueStatement, *ast.FallthroughStatement:
		// Fallthrough placement is checked in analyzeSwitch; break and
		// continue labels are not resolved against enclosing statements.

	case *ast.InitializerDeclaration, *ast.DeinitializerDeclaration, *ast.SubscriptDeclaration:
		// Member-only declarations; pass 1 rejected or consumed them.
	}
}

func (a *Analyzer) analyzeBlock(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	leave := a.enterScope(b)
	for i := range b.Statements {
		a.analyzeStatement(&b.Statements[i])
	}
	leave()
}

// analyzeBindings handles a let/var group in statement position: symbol
// registration (or reuse of the pass-1 symbol at file scope), the
// INITIALIZING window around the initializer so `let x = x+1` is caught,
// and tuple-pattern destructuring.
func (a *Analyzer) analyzeBindings(decl ast.Declaration, bindings []ast.Binding, writable bool) {
	for i := range bindings {
		b := &bindings[i]
		if b.Pattern != nil {
			a.destructureBinding(decl, b, writable)
			continue
		}
		if b.Name == "" {
			continue
		}

		sym := a.bindingSymbol(decl, b, writable)
		declared := sym.Ty
		if b.Value == nil {
			continue
		}
		sym.SetFlag(symbols.FlagInitializing)
		vt := a.inferExpr(&b.Value, declared)
		sym.ClearFlag(symbols.FlagInitializing)
		if sym.Ty == nil {
			sym.Ty = vt
		}
		a.tracer.markInitialized(sym)
	}
}

// bindingSymbol reuses the header-pass symbol when the binding lives at
// file scope (its annotation was already resolved there), creating and
// registering a fresh local otherwise.
func (a *Analyzer) bindingSymbol(decl ast.Declaration, b *ast.Binding, writable bool) *symbols.Placeholder {
	if a.scope() == a.fileScope {
		if existing, ok := a.scope().LookupLocal(b.Name).(*symbols.Placeholder); ok {
			return existing
		}
	}
	var declared *types.Type
	if b.TypeAnnotation != nil {
		declared = a.resolveTypeRef(b.TypeAnnotation)
	}
	flags := symbols.FlagReadable
	if writable {
		flags |= symbols.FlagWritable
	}
	sym := symbols.NewPlaceholder(b.Name, declared, flags, decl)
	if !a.scope().AddSymbol(b.Name, sym) {
		a.sink.Error(diagnostics.ErrInvalidRedeclaration, decl.Span(), b.Name)
	}
	return sym
}

// destructureBinding implements tuple-pattern destructuring: the
// initializer binds to a fresh temporary and every pattern leaf becomes a
// binding whose value is a chain of positional accesses on it;
// here the leaves bind directly to the element types, the temporary being
// observable only through codegen, which is out of scope.
func (a *Analyzer) destructureBinding(decl ast.Declaration, b *ast.Binding, writable bool) {
	var declared *types.Type
	if b.TypeAnnotation != nil {
		declared = a.resolveTypeRef(b.TypeAnnotation)
	}
	if _, isTuple := b.Pattern.(*ast.TuplePattern); isTuple && declared != nil {
		if declared.Unalias().Category != types.Tuple && declared.Unalias().Category != types.Placeholder {
			a.sink.Error(diagnostics.ErrTuplePatternCannotMatchNonTuple, b.Pattern.Span(), declared.TypeString())
			declared = nil
		}
	}
	var vt *types.Type
	if b.Value != nil {
		vt = a.inferExpr(&b.Value, declared)
	}
	bind := declared
	if bind == nil {
		bind = vt
	}
	a.declarePatternBindings(b.Pattern, bind, writable)
}

// declarePatternBindings registers one symbol per pattern leaf, pairing
// tuple patterns with tuple element types recursively.
func (a *Analyzer) declarePatternBindings(pat ast.Pattern, ty *types.Type, writable bool) {
	if pat == nil {
		return
	}
	switch pt := pat.(type) {
	case *ast.IdentifierPattern:
		flags := symbols.FlagReadable | symbols.FlagInitialized
		if writable {
			flags |= symbols.FlagWritable
		}
		sym := symbols.NewPlaceholder(pt.Name, ty, flags, pat)
		if !a.scope().AddSymbol(pt.Name, sym) {
			a.sink.Error(diagnostics.ErrInvalidRedeclaration, pat.Span(), pt.Name)
		}
	case *ast.WildcardPattern:
	case *ast.TypedPattern:
		declared := a.resolveTypeRef(pt.Ty)
		a.declarePatternBindings(pt.Inner, declared, writable)
	case *ast.ValueBindingPattern:
		a.declarePatternBindings(pt.Inner, ty, pt.Kind == ast.BindVar || writable)
	case *ast.TuplePattern:
		u := ty.Unalias()
		if u == nil || u.Category != types.Tuple {
			if u != nil && u.Category != types.Placeholder {
				a.sink.Error(diagnostics.ErrTuplePatternCannotMatchNonTuple, pat.Span(), ty.TypeString())
			}
			for _, el := range pt.Elements {
				a.declarePatternBindings(el, a.placeholderType(), writable)
			}
			return
		}
		for i, el := range pt.Elements {
			var et *types.Type
			if i < len(u.Elements) {
				et = u.Elements[i].Type
			} else {
				et = a.placeholderType()
			}
			a.declarePatternBindings(el, et, writable)
		}
	case *ast.EnumCasePattern:
		a.declareEnumCasePattern(pt, ty, writable)
	case *ast.ExpressionPattern:
		expr := pt.Expr
		slot := &expr
		a.inferExpr(slot, ty)
		pt.Expr = *slot
	}
}

// declareEnumCasePattern matches `.Case(let x)` against the subject's
// enum cases, binding associated payloads.
func (a *Analyzer) declareEnumCasePattern(pt *ast.EnumCasePattern, subject *types.Type, writable bool) {
	base := subject.Base()
	var payload []*types.Type
	if base != nil && base.Category == types.Enum {
		sub := types.Substitution{}
		if u := subject.Unalias(); u.Category == types.Specialized {
			sub = types.NewSubstitution(base.Generic, u.Arguments)
		}
		for _, c := range base.Cases {
			if c.Name == pt.CaseName {
				for _, at := range c.Associated {
					payload = append(payload, sub.Apply(a.reg.Arena, at))
				}
				break
			}
		}
	}
	for i, el := range pt.Associated {
		var et *types.Type
		if i < len(payload) {
			et = payload[i]
		} else {
			et = a.placeholderType()
		}
		a.declarePatternBindings(el, et, writable)
	}
}

func (a *Analyzer) analyzeSwitch(d *ast.SwitchStatement) {
	subjectType := a.inferExpr(&d.Subject, nil)
	group := a.tracer.pushBranchGroup()
	exhaustive := false
	for ci := range d.Cases {
		c := &d.Cases[ci]
		if c.Default {
			exhaustive = true
		}
		leave := a.enterScope(d)
		for _, pat := range c.Patterns {
			a.declarePatternBindings(pat, subjectType, false)
		}
		if c.Where != nil {
			a.inferExpr(&c.Where, a.builtin("Bool"))
		}
		group.pushArm()
		for i := range c.Body {
			if ft, ok := c.Body[i].(*ast.FallthroughStatement); ok {
				// `fallthrough` must be the last statement of a non-final
				// case.
				if i != len(c.Body)-1 || ci == len(d.Cases)-1 {
					a.sink.Error(diagnostics.ErrFallthroughWithoutFollowingCase, ft.Span())
				}
				continue
			}
			a.analyzeStatement(&c.Body[i])
		}
		group.popArm()
		leave()
	}
	if exhaustive {
		group.setExhaustive()
	}
	group.close()
}

// declareLocalFunction registers and immediately analyzes a body-local
// function, so captures resolve against the live local scope instead of
// the drained file scope.
func (a *Analyzer) declareLocalFunction(d *ast.FunctionDeclaration) {
	params, paramTypes := a.resolveParameterClause(d.Parameters, d)
	ret := a.builtin("Void")
	if d.ReturnType != nil {
		ret = a.resolveTypeRef(d.ReturnType)
	}
	fnType := a.reg.Arena.Function(params, ret, hasVariadic(d.Parameters), nil)
	fn := symbols.NewFunctionSymbol(d.Name, fnType, d)
	if !a.scope().AddSymbol(d.Name, fn) {
		a.sink.Error(diagnostics.ErrInvalidRedeclaration, d.Span(), d.Name)
	}
	a.analyzeMethodBody(a.currentType, d.Parameters, ret, paramTypes, d.Body, false, false)
}

// elementTypeOf maps a sequence type to its iteration element: Array's
// element, Range's bound, Dictionary's (key, value) pair, String's
// Character.
func (a *Analyzer) elementTypeOf(seq *types.Type) *types.Type {
	u := seq.Unalias()
	if u == nil {
		return a.placeholderType()
	}
	if u.Category == types.Specialized && u.Inner != nil {
		switch u.Inner.Name {
		case "Array", "Range":
			if len(u.Arguments) == 1 {
				return u.Arguments[0]
			}
		case "Dictionary":
			if len(u.Arguments) == 2 {
				return a.reg.Arena.Tuple([]types.TupleElement{
					{Type: u.Arguments[0]}, {Type: u.Arguments[1]},
				})
			}
		}
	}
	if u.Name == "String" {
		return a.builtin("Character")
	}
	return a.placeholderType()
}
