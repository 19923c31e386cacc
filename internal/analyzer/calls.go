package analyzer

import (
	"sort"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// candidate pairs one overload with its fit against an argument list.
type candidate struct {
	fn          *symbols.FunctionSymbol
	self        *types.Type // substituted member-owner, nil for free functions
	score       float64
	conversions int
	order       int
}

// gatherCandidates collects every function registered under name across
// all scopes, outer scopes included: overload resolution sees the whole
// visible set, not just the innermost shadowing entry.
func (a *Analyzer) gatherCandidates(name string) []*symbols.FunctionSymbol {
	var out []*symbols.FunctionSymbol
	for sc := a.scope(); sc != nil; sc = sc.Parent() {
		switch s := sc.LookupLocal(name).(type) {
		case *symbols.FunctionSymbol:
			out = append(out, s)
		case *symbols.OverloadSet:
			out = append(out, s.Funcs...)
		}
	}
	return out
}

// memberCandidates collects the overloads of a member function on t,
// extensions included.
func (a *Analyzer) memberCandidates(t *types.Type, name string, static bool) []*symbols.FunctionSymbol {
	var out []*symbols.FunctionSymbol
	u := t.Unalias()
	if u == nil {
		return nil
	}
	sub := types.Substitution{}
	base := u
	if u.Category == types.Specialized {
		base = u.Inner
		sub = types.NewSubstitution(base.Generic, u.Arguments)
	}
	collect := func(m types.Member) {
		switch s := m.(type) {
		case *symbols.FunctionSymbol:
			out = append(out, a.substituteFunction(s, sub))
		case *symbols.OverloadSet:
			for _, fn := range s.Funcs {
				out = append(out, a.substituteFunction(fn, sub))
			}
		}
	}
	for c := base; c != nil; {
		var m types.Member
		if static {
			m = c.GetDeclaredStaticMember(name)
		} else {
			m = c.GetDeclaredMember(name)
		}
		if m != nil {
			collect(m)
		}
		if a.fileScope != nil {
			for _, ext := range a.fileScope.GetExtensions(c.Name) {
				var em types.Member
				if static {
					em = ext.GetDeclaredStaticMember(name)
				} else {
					em = ext.GetDeclaredMember(name)
				}
				if em != nil {
					collect(em)
				}
			}
		}
		if c.Category == types.Extension {
			c = c.Parent
			continue
		}
		if c.Category != types.Class {
			break
		}
		c = c.Parent
	}
	return out
}

// substituteFunction rewrites a member overload's type with the owner's
// specialization arguments, keeping the symbol identity when nothing
// changes.
func (a *Analyzer) substituteFunction(fn *symbols.FunctionSymbol, sub types.Substitution) *symbols.FunctionSymbol {
	applied := sub.Apply(a.reg.Arena, fn.Ty)
	if applied == fn.Ty {
		return fn
	}
	clone := symbols.NewFunctionSymbol(fn.Name(), applied, fn.Body)
	clone.DeclOrder = fn.DeclOrder
	return clone
}

// scoreCandidate computes the argument fit score: 1.0 per
// exact argument, 0.5 per implicit conversion (optional wrapping, literal
// narrowing, subtyping), rejection on a type or label mismatch, and a
// count check honoring variadics and defaulted parameters.
func (a *Analyzer) scoreCandidate(fnType *types.Type, args []ast.CallArgument, argTypes []*types.Type) (float64, int, bool) {
	if fnType == nil || fnType.Unalias().Category != types.Function {
		return 0, 0, false
	}
	fnType = fnType.Unalias()
	params := fnType.Params

	required := 0
	for _, p := range params {
		if !p.HasDefault {
			required++
		}
	}
	switch {
	case fnType.Variadic:
		if len(args) < required-1 {
			return 0, 0, false
		}
	case len(args) > len(params) || len(args) < required:
		return 0, 0, false
	}

	score := 0.0
	conversions := 0
	for i, arg := range args {
		pi := i
		if pi >= len(params) {
			if !fnType.Variadic {
				return 0, 0, false
			}
			pi = len(params) - 1
		}
		p := params[pi]

		// External labels must match when the parameter declares one
		//; a label against an unlabeled parameter is equally
		// a mismatch.
		if p.ExternalName != arg.Label {
			return 0, 0, false
		}

		at := argTypes[i]
		switch {
		case types.Equals(at, p.Type):
			score += 1.0
		case a.isLiteralConvertible(arg.Value, p.Type):
			score += 0.5
			conversions++
		case a.convertsToOptional(at, p.Type):
			score += 0.5
			conversions++
		case types.CanAssignTo(at, p.Type):
			score += 0.5
			conversions++
		default:
			return 0, 0, false
		}
	}
	return score, conversions, true
}

// isLiteralConvertible reports whether arg is a numeric literal the
// parameter type can absorb through its literal-convertible protocol
// (narrowing included; range checking is a constant-evaluation concern
// left to later phases).
func (a *Analyzer) isLiteralConvertible(arg ast.Expression, paramType *types.Type) bool {
	switch arg.(type) {
	case *ast.IntegerLiteral:
		return paramType.ConformsTo(a.builtin("IntegerLiteralConvertible"))
	case *ast.FloatLiteral:
		return paramType.ConformsTo(a.builtin("FloatLiteralConvertible"))
	}
	return false
}

func (a *Analyzer) convertsToOptional(at, paramType *types.Type) bool {
	inner, ok := paramType.IsOptional()
	for ok {
		if types.CanAssignTo(at, inner) {
			return true
		}
		inner, ok = inner.IsOptional()
	}
	return false
}

// resolveOverload picks the unique best-fitting candidate: greatest total
// score, then fewest conversions, then declaration position; a residual
// tie on the first two axes is diagnosed as ambiguous while still
// resolving deterministically.
func (a *Analyzer) resolveOverload(cands []*symbols.FunctionSymbol, selves []*types.Type, args []ast.CallArgument, argTypes []*types.Type, at source.Span, name string) *candidate {
	var fits []candidate
	for i, fn := range cands {
		score, conv, ok := a.scoreCandidate(fn.Ty, args, argTypes)
		if !ok {
			continue
		}
		var self *types.Type
		if selves != nil {
			self = selves[i]
		}
		fits = append(fits, candidate{fn: fn, self: self, score: score, conversions: conv, order: fn.DeclOrder})
	}
	if len(fits) == 0 {
		return nil
	}
	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].score != fits[j].score {
			return fits[i].score > fits[j].score
		}
		if fits[i].conversions != fits[j].conversions {
			return fits[i].conversions < fits[j].conversions
		}
		return fits[i].order < fits[j].order
	})
	if len(fits) > 1 && fits[0].score == fits[1].score && fits[0].conversions == fits[1].conversions {
		a.sink.Error(diagnostics.ErrAmbiguousUse, at, name)
	}
	return &fits[0]
}

// inferCall resolves a function call: the
// callee may be a free (possibly overloaded) function, a type name
// (initializer call), a method access, an initializer reference, or an
// arbitrary expression of function type.
func (a *Analyzer) inferCall(e *ast.CallExpression, ctx *types.Type) *types.Type {
	argTypes := make([]*types.Type, len(e.Arguments))
	for i := range e.Arguments {
		argTypes[i] = a.inferExpr(&e.Arguments[i].Value, nil)
	}

	finish := func(c *candidate) *types.Type {
		if c == nil {
			return a.placeholderType()
		}
		e.Resolved = c.fn
		fnType := c.fn.Ty.Unalias()
		// Re-infer arguments against the winning parameter types so
		// literal adoption and optional wrapping land (contextual pass).
		for i := range e.Arguments {
			pi := i
			if pi >= len(fnType.Params) {
				if !fnType.Variadic || len(fnType.Params) == 0 {
					break
				}
				pi = len(fnType.Params) - 1
			}
			a.inferExpr(&e.Arguments[i].Value, fnType.Params[pi].Type)
		}
		return fnType.Return
	}

	switch callee := e.Callee.(type) {
	case *ast.IdentifierExpression:
		sym, _ := a.lookupSymbol(callee.Name, callee.Span())
		if ts, ok := sym.(*symbols.TypeSymbol); ok {
			callee.SetType(ts.Ty)
			return finish(a.resolveInitializerCall(ts.Ty, e, argTypes))
		}
		cands := a.gatherCandidates(callee.Name)
		if len(cands) > 0 {
			c := a.resolveOverload(cands, nil, e.Arguments, argTypes, e.Span(), callee.Name)
			if c == nil {
				a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, callee.Span(), callee.Name)
				return a.placeholderType()
			}
			callee.SetType(c.fn.Ty)
			return finish(c)
		}
		// Not a function name: fall through to expression-typed call
		// (closures stored in variables), or implicit-self methods.
		if sym == nil && a.currentType != nil {
			mcands := a.memberCandidates(selfType(a, a.currentType), callee.Name, a.currentFunc != nil && a.currentFunc.isStatic)
			if len(mcands) > 0 {
				c := a.resolveOverload(mcands, nil, e.Arguments, argTypes, e.Span(), callee.Name)
				if c != nil {
					self := a.f.SelfExpression(callee.Span())
					access := a.f.MemberAccessExpression(callee.Span(), self, callee.Name, 0, false)
					access.ImplicitSelf = true
					access.SetType(c.fn.Ty)
					e.Callee = access
					return finish(c)
				}
			}
		}
		calleeType := a.inferExpr(&e.Callee, nil)
		return a.callValueOfFunctionType(e, calleeType)

	case *ast.MemberAccessExpression:
		// Static member or method call.
		if ident, ok := callee.Target.(*ast.IdentifierExpression); ok {
			if sym, _ := a.lookupSymbol(ident.Name, ident.Span()); sym != nil {
				if ts, ok := sym.(*symbols.TypeSymbol); ok {
					cands := a.memberCandidates(ts.Ty, callee.Name, true)
					if len(cands) > 0 {
						c := a.resolveOverload(cands, nil, e.Arguments, argTypes, e.Span(), callee.Name)
						if c != nil {
							callee.Resolved = c.fn
							callee.SetType(c.fn.Ty)
							return finish(c)
						}
					}
					// Enum payload case constructor or stored static.
					calleeType := a.inferExpr(&e.Callee, nil)
					return a.callValueOfFunctionType(e, calleeType)
				}
			}
		}
		targetType := a.inferExpr(&callee.Target, nil)
		cands := a.memberCandidates(targetType, callee.Name, false)
		if len(cands) > 0 {
			c := a.resolveOverload(cands, nil, e.Arguments, argTypes, e.Span(), callee.Name)
			if c == nil {
				a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, callee.Span(), callee.Name)
				return a.placeholderType()
			}
			callee.Resolved = c.fn
			callee.SetType(c.fn.Ty)
			return finish(c)
		}
		calleeType := a.inferExpr(&e.Callee, nil)
		return a.callValueOfFunctionType(e, calleeType)

	case *ast.InitializerReferenceExpression:
		ty := a.resolveTypeRef(callee.TypeRefExpr)
		return finish(a.resolveInitializerCall(ty, e, argTypes))

	default:
		calleeType := a.inferExpr(&e.Callee, nil)
		return a.callValueOfFunctionType(e, calleeType)
	}
}

// resolveInitializerCall scores a type's initializer overloads against
// the call; the result type is the (possibly specialized) constructed
// type.
func (a *Analyzer) resolveInitializerCall(ty *types.Type, e *ast.CallExpression, argTypes []*types.Type) *candidate {
	base := ty.Base()
	if base == nil {
		return nil
	}
	var cands []*symbols.FunctionSymbol
	sub := types.Substitution{}
	if u := ty.Unalias(); u.Category == types.Specialized {
		sub = types.NewSubstitution(base.Generic, u.Arguments)
	}
	for _, m := range base.Initializers {
		if fn, ok := m.(*symbols.FunctionSymbol); ok {
			cands = append(cands, a.substituteFunction(fn, sub))
		}
	}
	c := a.resolveOverload(cands, nil, e.Arguments, argTypes, e.Span(), base.Name)
	if c == nil && len(base.Initializers) > 0 {
		a.sink.Error(diagnostics.ErrUseOfUnresolvedIdentifier, e.Span(), base.Name)
	}
	return c
}

// callValueOfFunctionType types a call through a function-typed value.
func (a *Analyzer) callValueOfFunctionType(e *ast.CallExpression, calleeType *types.Type) *types.Type {
	u := calleeType.Unalias()
	if u.Category != types.Function {
		if u.Category != types.Placeholder {
			a.sink.Error(diagnostics.ErrUnexpectedToken, e.Span(), calleeType.TypeString())
		}
		return a.placeholderType()
	}
	for i := range e.Arguments {
		var pt *types.Type
		if i < len(u.Params) {
			pt = u.Params[i].Type
		}
		a.inferExpr(&e.Arguments[i].Value, pt)
	}
	return u.Return
}

// inferBinary resolves an infix operator application as a call against
// the operator's overload set.
func (a *Analyzer) inferBinary(e *ast.BinaryExpression) *types.Type {
	lt := a.inferExpr(&e.Left, nil)
	rt := a.inferExpr(&e.Right, nil)
	args := []ast.CallArgument{{Value: e.Left}, {Value: e.Right}}
	argTypes := []*types.Type{lt, rt}

	cands := a.binaryCandidates(e.Operator)
	c := a.resolveOverload(cands, nil, args, argTypes, e.Span(), e.Operator)
	if c == nil {
		if lt.Unalias().Category != types.Placeholder && rt.Unalias().Category != types.Placeholder {
			a.sink.Error(diagnostics.ErrUnresolvedOperator, e.Span(), e.Operator)
		}
		return a.placeholderType()
	}
	e.Resolved = c.fn
	fnType := c.fn.Ty.Unalias()
	if len(fnType.Params) == 2 {
		a.inferExpr(&e.Left, fnType.Params[0].Type)
		a.inferExpr(&e.Right, fnType.Params[1].Type)
	}
	return fnType.Return
}

// binaryCandidates filters the overload set to two-parameter entries so
// a prefix overload under the same name never competes.
func (a *Analyzer) binaryCandidates(op string) []*symbols.FunctionSymbol {
	var out []*symbols.FunctionSymbol
	for _, fn := range a.gatherCandidates(op) {
		if u := fn.Ty.Unalias(); u.Category == types.Function && len(u.Params) == 2 {
			out = append(out, fn)
		}
	}
	return out
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpression) *types.Type {
	ot := a.inferExpr(&e.Operand, nil)
	args := []ast.CallArgument{{Value: e.Operand}}
	argTypes := []*types.Type{ot}

	var cands []*symbols.FunctionSymbol
	for _, fn := range a.gatherCandidates(e.Operator) {
		if u := fn.Ty.Unalias(); u.Category == types.Function && len(u.Params) == 1 {
			cands = append(cands, fn)
		}
	}
	c := a.resolveOverload(cands, nil, args, argTypes, e.Span(), e.Operator)
	if c == nil {
		if ot.Unalias().Category != types.Placeholder {
			a.sink.Error(diagnostics.ErrUnresolvedOperator, e.Span(), e.Operator)
		}
		return a.placeholderType()
	}
	e.Resolved = c.fn
	return c.fn.Ty.Unalias().Return
}

// resolveSubscriptOverload scores user-declared subscript overloads.
func (a *Analyzer) resolveSubscriptOverload(e *ast.SubscriptExpression, m types.Member) *types.Type {
	var cands []*symbols.FunctionSymbol
	switch s := m.(type) {
	case *symbols.FunctionSymbol:
		cands = []*symbols.FunctionSymbol{s}
	case *symbols.OverloadSet:
		cands = s.Funcs
	default:
		return a.placeholderType()
	}
	argTypes := make([]*types.Type, len(e.Arguments))
	for i := range e.Arguments {
		argTypes[i] = a.inferExpr(&e.Arguments[i].Value, nil)
	}
	c := a.resolveOverload(cands, nil, e.Arguments, argTypes, e.Span(), "subscript")
	if c == nil {
		return a.placeholderType()
	}
	e.Resolved = c.fn
	return c.fn.Ty.Unalias().Return
}
