package ast

// IdentifierPattern binds a single name.
type IdentifierPattern struct {
	patternBase
	Name string
}

func (n *IdentifierPattern) Accept(v Visitor) { v.VisitIdentifierPattern(n) }

// WildcardPattern is `_`, matching and binding nothing.
type WildcardPattern struct{ patternBase }

func (n *WildcardPattern) Accept(v Visitor) { v.VisitWildcardPattern(n) }

// TypedPattern is `p : T`, constraining Inner's matched type.
type TypedPattern struct {
	patternBase
	Inner Pattern
	Ty    TypeRef
}

func (n *TypedPattern) Accept(v Visitor) { v.VisitTypedPattern(n) }

// TuplePattern is `(p1, p2, ...)`, destructured recursively.
type TuplePattern struct {
	patternBase
	Elements []Pattern
}

func (n *TuplePattern) Accept(v Visitor) { v.VisitTuplePattern(n) }

// BindingKind distinguishes `let`/`var` value-binding patterns.
type BindingKind int

const (
	BindLet BindingKind = iota
	BindVar
)

// ValueBindingPattern is `var p` / `let p` inside a case, overriding the
// enclosing binding's mutability for this arm.
type ValueBindingPattern struct {
	patternBase
	Kind  BindingKind
	Inner Pattern
}

func (n *ValueBindingPattern) Accept(v Visitor) { v.VisitValueBindingPattern(n) }

// EnumCasePattern matches an enumeration case, optionally destructuring its
// associated values: `.some(let x)`.
type EnumCasePattern struct {
	patternBase
	Qualifier  string // optional explicit enum type name
	CaseName   string
	Associated []Pattern // nil if the case takes no payload and none is written
}

func (n *EnumCasePattern) Accept(v Visitor) { v.VisitEnumCasePattern(n) }

// ExpressionPattern matches a `case`'s subject against an arbitrary
// expression via `==`.
type ExpressionPattern struct {
	patternBase
	Expr Expression
}

func (n *ExpressionPattern) Accept(v Visitor) { v.VisitExpressionPattern(n) }
