package ast

import "github.com/larklang/compiler/internal/source"

func (f *NodeFactory) NamedTypeRef(span source.Span, qualifier *NamedTypeRef, name string, args []TypeRef, written bool) *NamedTypeRef {
	var cs []Node
	if qualifier != nil {
		cs = append(cs, qualifier)
	}
	for _, a := range args {
		cs = append(cs, a)
	}
	return &NamedTypeRef{typeRefBase: typeRefBase{base(span, cs...)}, Qualifier: qualifier, Name: name, GenericArgs: args, GenericArgsWritten: written}
}

func (f *NodeFactory) TupleTypeRef(span source.Span, elements []TupleTypeElement) *TupleTypeRef {
	cs := make([]Node, len(elements))
	for i, e := range elements {
		cs[i] = e.Ty
	}
	return &TupleTypeRef{typeRefBase: typeRefBase{base(span, cs...)}, Elements: elements}
}

func (f *NodeFactory) ArrayTypeRef(span source.Span, elem TypeRef) *ArrayTypeRef {
	return &ArrayTypeRef{typeRefBase: typeRefBase{base(span, elem)}, Element: elem}
}

func (f *NodeFactory) DictionaryTypeRef(span source.Span, key, value TypeRef) *DictionaryTypeRef {
	return &DictionaryTypeRef{typeRefBase: typeRefBase{base(span, key, value)}, Key: key, Value: value}
}

func (f *NodeFactory) FunctionTypeRef(span source.Span, params []TypeRef, variadic bool, ret TypeRef) *FunctionTypeRef {
	cs := make([]Node, 0, len(params)+1)
	for _, p := range params {
		cs = append(cs, p)
	}
	cs = append(cs, ret)
	return &FunctionTypeRef{typeRefBase: typeRefBase{base(span, cs...)}, Params: params, Variadic: variadic, Return: ret}
}

func (f *NodeFactory) OptionalTypeRef(span source.Span, inner TypeRef) *OptionalTypeRef {
	return &OptionalTypeRef{typeRefBase: typeRefBase{base(span, inner)}, Inner: inner}
}

func (f *NodeFactory) ImplicitlyUnwrappedOptionalTypeRef(span source.Span, inner TypeRef) *ImplicitlyUnwrappedOptionalTypeRef {
	return &ImplicitlyUnwrappedOptionalTypeRef{typeRefBase: typeRefBase{base(span, inner)}, Inner: inner}
}

func (f *NodeFactory) ProtocolCompositionTypeRef(span source.Span, protocols []*NamedTypeRef) *ProtocolCompositionTypeRef {
	cs := make([]Node, len(protocols))
	for i, p := range protocols {
		cs[i] = p
	}
	return &ProtocolCompositionTypeRef{typeRefBase: typeRefBase{base(span, cs...)}, Protocols: protocols}
}
