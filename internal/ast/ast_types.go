package ast

// NamedTypeRef is `Qualifier.Name<Args...>`; generic arguments are preserved
// even when empty, so `Name` and `Name<>` are
// distinguishable; the latter never occurs in valid source but the
// parser still records GenericArgsWritten to make the distinction testable.
type NamedTypeRef struct {
	typeRefBase
	Qualifier        *NamedTypeRef // nested qualifier, e.g. Outer.Inner
	Name             string
	GenericArgs      []TypeRef
	GenericArgsWritten bool
}

func (n *NamedTypeRef) Accept(v Visitor) { v.VisitNamedTypeRef(n) }

// TupleTypeRef is `(T1, T2, ...)` with optional per-element labels.
type TupleTypeElement struct {
	Label string
	Ty    TypeRef
}

type TupleTypeRef struct {
	typeRefBase
	Elements []TupleTypeElement
}

func (n *TupleTypeRef) Accept(v Visitor) { v.VisitTupleTypeRef(n) }

// ArrayTypeRef is `T[]` or `[T]`.
type ArrayTypeRef struct {
	typeRefBase
	Element TypeRef
}

func (n *ArrayTypeRef) Accept(v Visitor) { v.VisitArrayTypeRef(n) }

// DictionaryTypeRef is `[K: V]`.
type DictionaryTypeRef struct {
	typeRefBase
	Key   TypeRef
	Value TypeRef
}

func (n *DictionaryTypeRef) Accept(v Visitor) { v.VisitDictionaryTypeRef(n) }

// FunctionTypeRef is a function type reference `(T1, T2) -> R`; function
// *types* carry no external labels; only declarations do.
type FunctionTypeRef struct {
	typeRefBase
	Params   []TypeRef
	Variadic bool
	Return   TypeRef
}

func (n *FunctionTypeRef) Accept(v Visitor) { v.VisitFunctionTypeRef(n) }

// OptionalTypeRef is `T?`.
type OptionalTypeRef struct {
	typeRefBase
	Inner TypeRef
}

func (n *OptionalTypeRef) Accept(v Visitor) { v.VisitOptionalTypeRef(n) }

// ImplicitlyUnwrappedOptionalTypeRef is `T!`.
type ImplicitlyUnwrappedOptionalTypeRef struct {
	typeRefBase
	Inner TypeRef
}

func (n *ImplicitlyUnwrappedOptionalTypeRef) Accept(v Visitor) {
	v.VisitImplicitlyUnwrappedOptionalTypeRef(n)
}

// ProtocolCompositionTypeRef is `P1 & P2 & ...`.
type ProtocolCompositionTypeRef struct {
	typeRefBase
	Protocols []*NamedTypeRef
}

func (n *ProtocolCompositionTypeRef) Accept(v Visitor) { v.VisitProtocolCompositionTypeRef(n) }
