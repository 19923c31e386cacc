package analyzer

import (
	"strconv"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/types"
)

// resolveTypeRef materializes a syntactic type reference into a Type
// value, interning structural shapes through the registry's
// arena and diagnosing unknown names and generic arity mismatches.
func (a *Analyzer) resolveTypeRef(ref ast.TypeRef) *types.Type {
	if ref == nil {
		return a.placeholderType()
	}
	switch r := ref.(type) {
	case *ast.NamedTypeRef:
		return a.resolveNamedTypeRef(r)

	case *ast.TupleTypeRef:
		elems := make([]types.TupleElement, len(r.Elements))
		for i, e := range r.Elements {
			elems[i] = types.TupleElement{Label: e.Label, Type: a.resolveTypeRef(e.Ty)}
		}
		return a.reg.Arena.Tuple(elems)

	case *ast.ArrayTypeRef:
		elem := a.resolveTypeRef(r.Element)
		return a.reg.Arena.Specialize(a.builtin("Array"), []*types.Type{elem})

	case *ast.DictionaryTypeRef:
		key := a.resolveTypeRef(r.Key)
		value := a.resolveTypeRef(r.Value)
		return a.reg.Arena.Specialize(a.builtin("Dictionary"), []*types.Type{key, value})

	case *ast.FunctionTypeRef:
		params := make([]types.Parameter, len(r.Params))
		for i, pt := range r.Params {
			params[i] = types.Parameter{Type: a.resolveTypeRef(pt)}
		}
		return a.reg.Arena.Function(params, a.resolveTypeRef(r.Return), r.Variadic, nil)

	case *ast.OptionalTypeRef:
		return a.optionalOf(a.resolveTypeRef(r.Inner))

	case *ast.ImplicitlyUnwrappedOptionalTypeRef:
		// The implicitly-unwrapped flavor shares Optional's representation;
		// its unwrap-on-use sugar is an access-time behavior, not a
		// distinct type shape.
		return a.optionalOf(a.resolveTypeRef(r.Inner))

	case *ast.ProtocolCompositionTypeRef:
		protos := make([]*types.Type, 0, len(r.Protocols))
		for _, p := range r.Protocols {
			t := a.resolveNamedTypeRef(p)
			if t.Category == types.Protocol {
				protos = append(protos, t)
			} else if t.Category != types.Placeholder {
				a.sink.Error(diagnostics.ErrUseOfUndeclaredType, p.Span(), p.Name)
			}
		}
		return a.reg.Arena.Composition(protos)

	default:
		return a.placeholderType()
	}
}

func (a *Analyzer) resolveNamedTypeRef(r *ast.NamedTypeRef) *types.Type {
	var base *types.Type
	if r.Qualifier != nil {
		outer := a.resolveNamedTypeRef(r.Qualifier)
		if outer.Category == types.Placeholder {
			return outer
		}
		base = outer.GetAssociatedType(r.Name)
		if base == nil {
			a.sink.Error(diagnostics.ErrUseOfUndeclaredType, r.Span(), outer.Name+"."+r.Name)
			return a.placeholderType()
		}
	} else {
		base = a.lookupType(r.Name, r.Span())
		if base == nil {
			a.sink.Error(diagnostics.ErrUseOfUndeclaredType, r.Span(), r.Name)
			return a.placeholderType()
		}
	}

	unaliased := base.Unalias()
	generic := unaliased.Generic

	if len(r.GenericArgs) == 0 {
		if generic != nil {
			// A bare reference to a generic type needs its arguments.
			a.sink.Error(diagnostics.ErrGenericTypeArgumentRequired, r.Span(), base.Name)
			return a.placeholderType()
		}
		return base
	}

	if generic == nil {
		a.sink.Error(diagnostics.ErrCannotSpecializeNonGenericType, r.Span(), base.Name)
		return a.placeholderType()
	}
	want, got := len(generic.Params), len(r.GenericArgs)
	if got > want {
		a.sink.Error(diagnostics.ErrTooManyTypeArguments, r.Span(),
			base.Name, strconv.Itoa(got), strconv.Itoa(want))
		return a.placeholderType()
	}
	if got < want {
		a.sink.Error(diagnostics.ErrInsufficientTypeArguments, r.Span(),
			base.Name, strconv.Itoa(got), strconv.Itoa(want))
		return a.placeholderType()
	}

	args := make([]*types.Type, got)
	for i, argRef := range r.GenericArgs {
		args[i] = a.resolveTypeRef(argRef)
	}
	return a.reg.Arena.Specialize(unaliased, args)
}
