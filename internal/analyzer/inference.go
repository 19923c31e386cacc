package analyzer

import (
	"strconv"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// inferExpr is the pass-2 workhorse: bottom-up inference with the
// contextual type threaded top-down. It writes the
// type annotation onto the node and may rewrite the slot to expand sugar:
// implicit `Optional.Some` wrapping and implicit `self.x` member access.
func (a *Analyzer) inferExpr(slot *ast.Expression, ctx *types.Type) *types.Type {
	e := *slot
	if e == nil {
		return a.placeholderType()
	}
	if !a.guardDepth(e.Span()) {
		return a.placeholderType()
	}
	defer a.unguard()

	t := a.inferExprInner(slot, ctx)
	if t == nil {
		t = a.placeholderType()
	}

	// Optional expansion: wrap the expression once per optional layer the
	// contextual type adds over the inferred type.
	if ctx != nil {
		if depth, wrapped := a.optionalWrapDepth(t, ctx); depth > 0 {
			e = *slot
			for i := 0; i < depth; i++ {
				e = a.f.ImplicitSomeExpression(e.Span(), e)
			}
			*slot = e
			t = wrapped
		}
	}

	(*slot).SetType(t)
	return t
}

// optionalWrapDepth reports how many Optional layers separate t from ctx:
// 0 when t already fits ctx (no wrap for Optional<T> against
// Optional<T>), k when ctx = Optional^k of something t fits.
func (a *Analyzer) optionalWrapDepth(t, ctx *types.Type) (int, *types.Type) {
	if types.CanAssignTo(t, ctx) {
		return 0, ctx
	}
	depth := 0
	c := ctx
	for {
		inner, ok := c.IsOptional()
		if !ok {
			return 0, ctx
		}
		depth++
		c = inner
		if types.CanAssignTo(t, c) {
			return depth, ctx
		}
	}
}

func (a *Analyzer) inferExprInner(slot *ast.Expression, ctx *types.Type) *types.Type {
	switch e := (*slot).(type) {
	case *ast.IntegerLiteral:
		// Integer-literal polymorphism: the contextual type wins when it
		// can be built from an integer literal.
		if ct := a.literalContext(ctx, "IntegerLiteralConvertible"); ct != nil {
			return ct
		}
		return a.builtin("Int")

	case *ast.FloatLiteral:
		if ct := a.literalContext(ctx, "FloatLiteralConvertible"); ct != nil {
			return ct
		}
		return a.builtin("Double")

	case *ast.BooleanLiteral:
		return a.builtin("Bool")

	case *ast.StringLiteral:
		if ct := a.literalContext(ctx, "StringLiteralConvertible"); ct != nil {
			return ct
		}
		return a.builtin("String")

	case *ast.InterpolatedStringLiteral:
		for i := range e.Parts {
			a.inferExpr(&e.Parts[i], nil)
		}
		return a.builtin("String")

	case *ast.NilLiteral:
		if ctx != nil {
			if _, ok := ctx.IsOptional(); ok {
				return ctx
			}
			if ctx.ConformsTo(a.builtin("NilLiteralConvertible")) {
				return ctx
			}
		}
		return a.optionalOf(a.placeholderType())

	case *ast.ArrayLiteral:
		return a.inferArrayLiteral(e, ctx)

	case *ast.DictionaryLiteral:
		return a.inferDictionaryLiteral(e, ctx)

	case *ast.TupleLiteral:
		return a.inferTupleLiteral(e, ctx)

	case *ast.ClosureLiteral:
		return a.inferClosure(e, ctx)

	case *ast.IdentifierExpression:
		return a.inferIdentifier(slot, e)

	case *ast.SelfExpression:
		if a.currentType == nil {
			a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), "self")
			return a.placeholderType()
		}
		return selfType(a, a.currentType)

	case *ast.DynamicTypeExpression:
		return a.inferExpr(&e.Target, nil)

	case *ast.MemberAccessExpression:
		return a.inferMemberAccess(e)

	case *ast.InitializerReferenceExpression:
		ty := a.resolveTypeRef(e.TypeRefExpr)
		base := ty.Base()
		if base != nil && len(base.Initializers) == 1 {
			if fn, ok := base.Initializers[0].(*symbols.FunctionSymbol); ok {
				return fn.Ty
			}
		}
		return a.placeholderType()

	case *ast.SubscriptExpression:
		return a.inferSubscript(e)

	case *ast.CallExpression:
		return a.inferCall(e, ctx)

	case *ast.UnaryExpression:
		return a.inferUnary(e)

	case *ast.BinaryExpression:
		return a.inferBinary(e)

	case *ast.ConditionalExpression:
		a.inferExpr(&e.Condition, a.builtin("Bool"))
		thenT := a.inferExpr(&e.Then, ctx)
		a.inferExpr(&e.Else, ctx)
		return thenT

	case *ast.AssignmentExpression:
		return a.inferAssignment(e)

	case *ast.TypeCheckExpression:
		a.inferExpr(&e.Target, nil)
		a.resolveTypeRef(e.Target2)
		return a.builtin("Bool")

	case *ast.TypeCastExpression:
		a.inferExpr(&e.Target, nil)
		target := a.resolveTypeRef(e.TargetTy)
		if e.Kind == ast.CastOptional {
			return a.optionalOf(target)
		}
		return target

	case *ast.ParenthesizedExpression:
		return a.inferExpr(&e.Inner, ctx)

	case *ast.ForcedUnwrapExpression:
		t := a.inferExpr(&e.Target, nil)
		if inner, ok := t.IsOptional(); ok {
			return inner
		}
		return t

	case *ast.OptionalChainingExpression:
		return a.inferOptionalChaining(e)

	case *ast.InOutExpression:
		return a.inferExpr(&e.Target, nil)

	case *ast.ImplicitSomeExpression:
		inner := a.inferExpr(&e.Inner, nil)
		return a.optionalOf(inner)

	default:
		return a.placeholderType()
	}
}

// literalContext returns the contextual type when it conforms to the
// named literal-convertible protocol.
func (a *Analyzer) literalContext(ctx *types.Type, protocol string) *types.Type {
	if ctx == nil {
		return nil
	}
	if ctx.ConformsTo(a.builtin(protocol)) {
		return ctx
	}
	return nil
}

func (a *Analyzer) inferArrayLiteral(e *ast.ArrayLiteral, ctx *types.Type) *types.Type {
	var elemCtx *types.Type
	if ctx != nil {
		if u := ctx.Unalias(); u.Category == types.Specialized && u.Inner.Name == "Array" && len(u.Arguments) == 1 {
			elemCtx = u.Arguments[0]
		}
	}
	var elemType *types.Type
	for i := range e.Elements {
		t := a.inferExpr(&e.Elements[i], elemCtx)
		if elemType == nil {
			elemType = t
		} else if !types.CanAssignTo(t, elemType) {
			if types.CanAssignTo(elemType, t) {
				elemType = t
			}
		}
	}
	if elemCtx != nil {
		elemType = elemCtx
	}
	if elemType == nil {
		elemType = a.placeholderType()
	}
	return a.reg.Arena.Specialize(a.builtin("Array"), []*types.Type{elemType})
}

func (a *Analyzer) inferDictionaryLiteral(e *ast.DictionaryLiteral, ctx *types.Type) *types.Type {
	var keyCtx, valCtx *types.Type
	if ctx != nil {
		if u := ctx.Unalias(); u.Category == types.Specialized && u.Inner.Name == "Dictionary" && len(u.Arguments) == 2 {
			keyCtx, valCtx = u.Arguments[0], u.Arguments[1]
		}
	}
	var keyType, valType *types.Type
	for i := range e.Entries {
		kt := a.inferExpr(&e.Entries[i].Key, keyCtx)
		vt := a.inferExpr(&e.Entries[i].Value, valCtx)
		if keyType == nil {
			keyType, valType = kt, vt
		}
	}
	if keyCtx != nil {
		keyType, valType = keyCtx, valCtx
	}
	if keyType == nil {
		keyType, valType = a.placeholderType(), a.placeholderType()
	}
	return a.reg.Arena.Specialize(a.builtin("Dictionary"), []*types.Type{keyType, valType})
}

func (a *Analyzer) inferTupleLiteral(e *ast.TupleLiteral, ctx *types.Type) *types.Type {
	var ctxElems []types.TupleElement
	if ctx != nil {
		if u := ctx.Unalias(); u.Category == types.Tuple {
			ctxElems = u.Elements
		}
	}
	elems := make([]types.TupleElement, len(e.Elements))
	for i := range e.Elements {
		var ec *types.Type
		if i < len(ctxElems) {
			ec = ctxElems[i].Type
		}
		t := a.inferExpr(&e.Elements[i].Value, ec)
		elems[i] = types.TupleElement{Label: e.Elements[i].Label, Type: t}
	}
	return a.reg.Arena.Tuple(elems)
}

// inferClosure types a closure literal against an optional contextual
// function type: contextual parameter types fill unannotated parameters
// and synthesize the implicit `$n` names when no clause was written.
func (a *Analyzer) inferClosure(e *ast.ClosureLiteral, ctx *types.Type) *types.Type {
	var ctxFn *types.Type
	if ctx != nil {
		if u := ctx.Unalias(); u.Category == types.Function {
			ctxFn = u
		}
	}

	leave := a.enterScope(e)
	defer leave()

	var params []types.Parameter
	if len(e.Params) > 0 {
		for i, cp := range e.Params {
			var ty *types.Type
			if cp.TypeAnnotation != nil {
				ty = a.resolveTypeRef(cp.TypeAnnotation)
			} else if ctxFn != nil && i < len(ctxFn.Params) {
				ty = ctxFn.Params[i].Type
			} else {
				ty = a.placeholderType()
			}
			params = append(params, types.Parameter{ExternalName: cp.ExternalName, Type: ty})
			a.scope().AddSymbol(cp.LocalName, symbols.NewPlaceholder(cp.LocalName, ty, symbols.FlagReadable|symbols.FlagInitialized, e))
		}
	} else if ctxFn != nil {
		for i, p := range ctxFn.Params {
			name := "$" + strconv.Itoa(i)
			params = append(params, types.Parameter{Type: p.Type})
			a.scope().AddSymbol(name, symbols.NewPlaceholder(name, p.Type, symbols.FlagReadable|symbols.FlagInitialized, e))
		}
	}

	var ret *types.Type
	if e.ReturnType != nil {
		ret = a.resolveTypeRef(e.ReturnType)
	} else if ctxFn != nil {
		ret = ctxFn.Return
	}

	prevFunc := a.currentFunc
	a.currentFunc = &funcContext{returnType: ret}
	for i := range e.Body {
		// A single-expression body doubles as the return value.
		if len(e.Body) == 1 {
			if es, ok := e.Body[i].(*ast.ExpressionStatement); ok {
				t := a.inferExpr(&es.Expr, ret)
				if ret == nil {
					ret = t
				}
				continue
			}
		}
		a.analyzeStatement(&e.Body[i])
	}
	a.currentFunc = prevFunc

	if ret == nil {
		ret = a.builtin("Void")
	}
	return a.reg.Arena.Function(params, ret, false, nil)
}

// inferIdentifier resolves a bare name, expanding the implicit-self sugar
// when the name turns out to be a member of the enclosing type.
func (a *Analyzer) inferIdentifier(slot *ast.Expression, e *ast.IdentifierExpression) *types.Type {
	sym, _ := a.lookupSymbol(e.Name, e.Span())
	if sym != nil {
		switch s := sym.(type) {
		case *symbols.Placeholder:
			if s.Flags.Has(symbols.FlagInitializing) {
				a.sink.Error(diagnostics.ErrUseOfInitializingVariable, e.Span(), e.Name)
				return a.placeholderType()
			}
			if !a.tracer.isInitialized(s) && !s.Flags.Has(symbols.FlagMember) {
				a.sink.Error(diagnostics.ErrUseOfUninitializedVariable, e.Span(), e.Name)
			}
			if s.Ty == nil {
				return a.placeholderType()
			}
			return s.Ty
		case *symbols.FunctionSymbol:
			return s.Ty
		case *symbols.OverloadSet:
			if t := s.MemberType(); t != nil {
				return t
			}
			return a.placeholderType()
		case *symbols.TypeSymbol:
			return s.Ty
		}
	}

	// Implicit self: a bare name that is a member of the enclosing type
	// (or a superclass) rewrites to `self.name`.
	if a.currentType != nil {
		static := a.currentFunc != nil && a.currentFunc.isStatic
		if m, mt := a.getMemberFromType(selfType(a, a.currentType), e.Name, memberFilter{static: static, recursive: true, includeExtensions: true}); m != nil {
			self := a.f.SelfExpression(e.Span())
			access := a.f.MemberAccessExpression(e.Span(), self, e.Name, 0, false)
			access.ImplicitSelf = true
			*slot = access
			if mt == nil {
				mt = a.placeholderType()
			}
			return mt
		}
	}

	a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), e.Name)
	return a.placeholderType()
}

// memberFilter selects static vs instance members, whether to climb the
// class parent chain, and whether extensions participate.
type memberFilter struct {
	static            bool
	recursive         bool
	includeExtensions bool
}

// getMemberFromType looks a member up on t: the declared tables first,
// then file-scope extensions, then the class parent chain. The returned
// type has the specialization's generic arguments substituted in.
func (a *Analyzer) getMemberFromType(t *types.Type, name string, f memberFilter) (types.Member, *types.Type) {
	u := t.Unalias()
	if u == nil {
		return nil, nil
	}
	sub := types.Substitution{}
	base := u
	if u.Category == types.Specialized {
		base = u.Inner
		sub = types.NewSubstitution(base.Generic, u.Arguments)
	}

	lookupOn := func(host *types.Type) (types.Member, *types.Type) {
		var m types.Member
		if f.static {
			m = host.GetDeclaredStaticMember(name)
		} else {
			m = host.GetDeclaredMember(name)
		}
		if m == nil {
			return nil, nil
		}
		return m, sub.Apply(a.reg.Arena, m.MemberType())
	}

	for c := base; c != nil; {
		if m, mt := lookupOn(c); m != nil {
			return m, mt
		}
		if f.includeExtensions && a.fileScope != nil {
			for _, ext := range a.fileScope.GetExtensions(c.Name) {
				if m, mt := lookupOn(ext); m != nil {
					return m, mt
				}
			}
		}
		// Protocol-typed values see the protocol's own requirements,
		// including inherited ones.
		if c.Category == types.Protocol {
			for _, p := range c.Protocols {
				if m, mt := a.getMemberFromType(p, name, f); m != nil {
					return m, mt
				}
			}
		}
		// An Extension type always defers to the type it extends; class
		// lookup climbs the parent chain only when the filter asks.
		if c.Category == types.Extension {
			c = c.Parent
			continue
		}
		if !f.recursive || c.Category != types.Class {
			break
		}
		c = c.Parent
	}
	return nil, nil
}

func (a *Analyzer) inferMemberAccess(e *ast.MemberAccessExpression) *types.Type {
	// A type name as the target selects static members.
	if ident, ok := e.Target.(*ast.IdentifierExpression); ok {
		if sym, _ := a.lookupSymbol(ident.Name, ident.Span()); sym != nil {
			if ts, ok := sym.(*symbols.TypeSymbol); ok {
				e.Target.SetType(ts.Ty)
				if m, mt := a.getMemberFromType(ts.Ty, e.Name, memberFilter{static: true, recursive: true, includeExtensions: true}); m != nil {
					if fs, ok := m.(*symbols.FunctionSymbol); ok {
						e.Resolved = fs
					}
					if mt == nil {
						return a.placeholderType()
					}
					return mt
				}
				a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), e.Name)
				return a.placeholderType()
			}
		}
	}

	targetType := a.inferExpr(&e.Target, nil)

	if e.IsPositional {
		u := targetType.Unalias()
		if u.Category == types.Tuple && e.Index < len(u.Elements) {
			return u.Elements[e.Index].Type
		}
		a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), strconv.Itoa(e.Index))
		return a.placeholderType()
	}

	if m, mt := a.getMemberFromType(targetType, e.Name, memberFilter{recursive: true, includeExtensions: true}); m != nil {
		if fs, ok := m.(*symbols.FunctionSymbol); ok {
			e.Resolved = fs
		}
		if mt == nil {
			return a.placeholderType()
		}
		return mt
	}
	if targetType.Unalias().Category != types.Placeholder {
		a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), e.Name)
	}
	return a.placeholderType()
}

func (a *Analyzer) inferSubscript(e *ast.SubscriptExpression) *types.Type {
	targetType := a.inferExpr(&e.Target, nil)
	for i := range e.Arguments {
		a.inferExpr(&e.Arguments[i].Value, nil)
	}
	u := targetType.Unalias()
	if u.Category == types.Specialized && u.Inner != nil {
		switch u.Inner.Name {
		case "Array":
			if len(u.Arguments) == 1 {
				return u.Arguments[0]
			}
		case "Dictionary":
			if len(u.Arguments) == 2 {
				return a.optionalOf(u.Arguments[1])
			}
		}
	}
	if m, _ := a.getMemberFromType(targetType, "subscript", memberFilter{recursive: true, includeExtensions: true}); m != nil {
		return a.resolveSubscriptOverload(e, m)
	}
	return a.placeholderType()
}

func (a *Analyzer) inferOptionalChaining(e *ast.OptionalChainingExpression) *types.Type {
	targetType := a.inferExpr(&e.Target, nil)
	inner, ok := targetType.IsOptional()
	if !ok {
		inner = targetType
	}

	// The chained access reads through the unwrapped type; the overall
	// expression re-wraps as optional.
	var resultType *types.Type
	switch next := e.Next.(type) {
	case *ast.MemberAccessExpression:
		if m, mt := a.getMemberFromType(inner, next.Name, memberFilter{recursive: true, includeExtensions: true}); m != nil {
			resultType = mt
		} else {
			a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, next.Span(), next.Name)
		}
		next.SetType(resultType)
	default:
		resultType = a.inferExpr(&e.Next, nil)
	}
	if resultType == nil {
		resultType = a.placeholderType()
	}
	return a.optionalOf(resultType)
}

func (a *Analyzer) inferAssignment(e *ast.AssignmentExpression) *types.Type {
	targetType := a.checkAssignable(&e.Target)
	a.inferExpr(&e.Value, targetType)
	return a.builtin("Void")
}

// checkAssignable validates the assignment target as an lvalue and
// enforces the let-initialization rules: a let may be assigned while uninitialized (delayed
// initialization) but never after it is initialized on all paths.
func (a *Analyzer) checkAssignable(slot *ast.Expression) *types.Type {
	switch t := (*slot).(type) {
	case *ast.IdentifierExpression:
		sym, _ := a.lookupSymbol(t.Name, t.Span())
		if sym == nil {
			if a.currentType == nil {
				a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, t.Span(), t.Name)
				return a.placeholderType()
			}
			// Fall back to implicit self for member assignment.
			return a.inferExpr(slot, nil)
		}
		ph, ok := sym.(*symbols.Placeholder)
		if !ok {
			a.sink.Error(diagnostics.ErrCannotAssignToAInB, t.Span(), t.Name, a.contextName())
			return a.placeholderType()
		}
		if !ph.Flags.Has(symbols.FlagWritable) && a.tracer.isInitialized(ph) {
			a.sink.Error(diagnostics.ErrCannotAssignToAInB, t.Span(), t.Name, a.contextName())
		} else {
			a.tracer.markInitialized(ph)
		}
		if ph.Ty == nil {
			return a.placeholderType()
		}
		return ph.Ty

	case *ast.MemberAccessExpression:
		return a.inferExpr(slot, nil)

	case *ast.SubscriptExpression:
		return a.inferExpr(slot, nil)

	case *ast.TupleLiteral:
		// `(a, b) = pair` assigns element-wise.
		elems := make([]types.TupleElement, len(t.Elements))
		for i := range t.Elements {
			elems[i] = types.TupleElement{Type: a.checkAssignable(&t.Elements[i].Value)}
		}
		return a.reg.Arena.Tuple(elems)

	default:
		a.sink.Error(diagnostics.ErrCannotAssignToAInB, (*slot).Span(), "expression", a.contextName())
		return a.inferExpr(slot, nil)
	}
}

// contextName names the enclosing context for assignment diagnostics.
func (a *Analyzer) contextName() string {
	if a.currentType != nil {
		return a.currentType.Name
	}
	return "file scope"
}
