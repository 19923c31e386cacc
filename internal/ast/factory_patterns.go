package ast

import "github.com/larklang/compiler/internal/source"

func (f *NodeFactory) IdentifierPattern(span source.Span, name string) *IdentifierPattern {
	return &IdentifierPattern{patternBase: patternBase{base(span)}, Name: name}
}

func (f *NodeFactory) WildcardPattern(span source.Span) *WildcardPattern {
	return &WildcardPattern{patternBase: patternBase{base(span)}}
}

func (f *NodeFactory) TypedPattern(span source.Span, inner Pattern, ty TypeRef) *TypedPattern {
	return &TypedPattern{patternBase: patternBase{base(span, inner, ty)}, Inner: inner, Ty: ty}
}

func (f *NodeFactory) TuplePattern(span source.Span, elements []Pattern) *TuplePattern {
	cs := make([]Node, len(elements))
	for i, e := range elements {
		cs[i] = e
	}
	return &TuplePattern{patternBase: patternBase{base(span, cs...)}, Elements: elements}
}

func (f *NodeFactory) ValueBindingPattern(span source.Span, kind BindingKind, inner Pattern) *ValueBindingPattern {
	return &ValueBindingPattern{patternBase: patternBase{base(span, inner)}, Kind: kind, Inner: inner}
}

func (f *NodeFactory) EnumCasePattern(span source.Span, qualifier, caseName string, associated []Pattern) *EnumCasePattern {
	cs := make([]Node, len(associated))
	for i, a := range associated {
		cs[i] = a
	}
	return &EnumCasePattern{patternBase: patternBase{base(span, cs...)}, Qualifier: qualifier, CaseName: caseName, Associated: associated}
}

func (f *NodeFactory) ExpressionPattern(span source.Span, expr Expression) *ExpressionPattern {
	return &ExpressionPattern{patternBase: patternBase{base(span, expr)}, Expr: expr}
}
