package ast

import "github.com/larklang/compiler/internal/token"

// ResolvedOverload is the annotation slot SA pass 2 fills on a binary/unary/
// call expression once overload resolution picks a winner. It is a symbol handle
// from internal/symbols; ast stays decoupled from symbols the same way it
// stays decoupled from internal/types, via this narrow interface.
type ResolvedOverload interface {
	OverloadName() string
}

// IntegerLiteral is an integer literal, radix-aware.
type IntegerLiteral struct {
	exprBase
	Lexeme string
	Base   token.NumberBase
	Value  uint64 // saturated to 64 bits
}

func (n *IntegerLiteral) Accept(v Visitor) { v.VisitIntegerLiteral(n) }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	exprBase
	Lexeme string
	Value  float64
}

func (n *FloatLiteral) Accept(v Visitor) { v.VisitFloatLiteral(n) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	exprBase
	Value bool
}

func (n *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(n) }

// NilLiteral is the `nil` literal.
type NilLiteral struct{ exprBase }

func (n *NilLiteral) Accept(v Visitor) { v.VisitNilLiteral(n) }

// StringLiteral is a non-interpolated string fragment, or the text part of
// an interpolated string's first segment.
type StringLiteral struct {
	exprBase
	Value string
}

func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }

// InterpolatedStringLiteral is a string containing one or more `\(...)`
// interpolations. Parts alternates text fragments
// (StringLiteral) and embedded expressions in source order.
type InterpolatedStringLiteral struct {
	exprBase
	Parts []Expression
}

func (n *InterpolatedStringLiteral) Accept(v Visitor) { v.VisitInterpolatedStringLiteral(n) }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	exprBase
	Elements []Expression
}

func (n *ArrayLiteral) Accept(v Visitor) { v.VisitArrayLiteral(n) }

// DictionaryEntry is one `key: value` pair of a dictionary literal.
type DictionaryEntry struct {
	Key   Expression
	Value Expression
}

// DictionaryLiteral is `[k1: v1, k2: v2, ...]`.
type DictionaryLiteral struct {
	exprBase
	Entries []DictionaryEntry
}

func (n *DictionaryLiteral) Accept(v Visitor) { v.VisitDictionaryLiteral(n) }

// TupleElement is one element of a tuple literal, with an optional external
// label (`(x: 1, y: 2)`).
type TupleElement struct {
	Label string
	Value Expression
}

// TupleLiteral is `(e1, e2, ...)` with arity >= 2, a labeled single
// element tuple `(label: e)`, or the empty tuple `()`.
type TupleLiteral struct {
	exprBase
	Elements []TupleElement
}

func (n *TupleLiteral) Accept(v Visitor) { v.VisitTupleLiteral(n) }

// ClosureParameter is one parameter of a closure literal's parameter list.
type ClosureParameter struct {
	ExternalName string // "" if none (positional-only)
	LocalName    string
	TypeAnnotation TypeRef // optional
}

// ClosureLiteral is `{ (params) -> Ret in stmts }`, or an implicit-parameter
// closure `{ $0 + $1 }` (Params is empty in that case; the analyzer
// synthesizes parameters from the highest referenced `$n`).
type ClosureLiteral struct {
	exprBase
	Params     []ClosureParameter
	ReturnType TypeRef // optional
	Body       []Statement
	Captures   []string // captured outer names; the analyzer does not fill it
}

func (n *ClosureLiteral) Accept(v Visitor) { v.VisitClosureLiteral(n) }

// IdentifierExpression references a name in the value namespace, including
// implicit closure parameters ($0) and backtick-escaped keywords.
type IdentifierExpression struct {
	exprBase
	Name    string
	Subtype token.IdentSubtype
}

func (n *IdentifierExpression) Accept(v Visitor) { v.VisitIdentifierExpression(n) }

// SelfExpression is the bare `self` reference.
type SelfExpression struct{ exprBase }

func (n *SelfExpression) Accept(v Visitor) { v.VisitSelfExpression(n) }

// DynamicTypeExpression is `e.dynamicType`.
type DynamicTypeExpression struct {
	exprBase
	Target Expression
}

func (n *DynamicTypeExpression) Accept(v Visitor) { v.VisitDynamicTypeExpression(n) }

// MemberAccessExpression is `e.name` (named) or `e.0` (positional, for
// tuples).
type MemberAccessExpression struct {
	exprBase
	Target     Expression
	Name       string // named access
	Index      int    // positional access
	IsPositional bool
	// ImplicitSelf is true when the analyzer's self-access expansion
	// synthesized Target as an implicit `self`.
	ImplicitSelf bool
	Resolved     ResolvedOverload
}

func (n *MemberAccessExpression) Accept(v Visitor) { v.VisitMemberAccessExpression(n) }

// InitializerReferenceExpression is `Type.init` as a first-class reference
// to a type's initializer overload set.
type InitializerReferenceExpression struct {
	exprBase
	TypeRefExpr TypeRef
}

func (n *InitializerReferenceExpression) Accept(v Visitor) { v.VisitInitializerReferenceExpression(n) }

// SubscriptExpression is `e[index, ...]`.
type SubscriptExpression struct {
	exprBase
	Target    Expression
	Arguments []CallArgument
	Resolved  ResolvedOverload
}

func (n *SubscriptExpression) Accept(v Visitor) { v.VisitSubscriptExpression(n) }

// CallArgument is one actual argument of a function call, with its
// optional external label.
type CallArgument struct {
	Label string
	Value Expression
}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	exprBase
	Callee    Expression
	Arguments []CallArgument
	Resolved  ResolvedOverload
}

func (n *CallExpression) Accept(v Visitor) { v.VisitCallExpression(n) }

// UnaryExpression is a prefix or postfix operator application.
type UnaryExpression struct {
	exprBase
	Operator string
	Fixity   token.Fixity // FixityPrefix or FixityPostfix
	Operand  Expression
	Resolved ResolvedOverload
}

func (n *UnaryExpression) Accept(v Visitor) { v.VisitUnaryExpression(n) }

// BinaryExpression is an infix operator application, including user
// operators installed into the registry during parsing.
type BinaryExpression struct {
	exprBase
	Operator string
	Left     Expression
	Right    Expression
	Resolved ResolvedOverload
}

func (n *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(n) }

// ConditionalExpression is `cond ? then : else`.
type ConditionalExpression struct {
	exprBase
	Condition Expression
	Then      Expression
	Else      Expression
}

func (n *ConditionalExpression) Accept(v Visitor) { v.VisitConditionalExpression(n) }

// AssignmentExpression is `lhs = rhs` or a compound `lhs op= rhs`. Compound
// forms stay one node: Operator holds the base operator ("+" for `+=`,
// "" for plain `=`) and Value is the right-hand side alone.
type AssignmentExpression struct {
	exprBase
	Target   Expression
	Operator string
	Value    Expression
}

func (n *AssignmentExpression) Accept(v Visitor) { v.VisitAssignmentExpression(n) }

// TypeCheckExpression is `e is T`.
type TypeCheckExpression struct {
	exprBase
	Target Expression
	Target2 TypeRef
}

func (n *TypeCheckExpression) Accept(v Visitor) { v.VisitTypeCheckExpression(n) }

// TypeCastKind distinguishes `as`, `as?`, `as!`.
type TypeCastKind int

const (
	CastForced TypeCastKind = iota
	CastOptional
	CastForcedOptional
)

// TypeCastExpression is `e as T` / `e as? T` / `e as! T`.
type TypeCastExpression struct {
	exprBase
	Target   Expression
	TargetTy TypeRef
	Kind     TypeCastKind
}

func (n *TypeCastExpression) Accept(v Visitor) { v.VisitTypeCastExpression(n) }

// ParenthesizedExpression preserves explicit grouping for round-tripping.
type ParenthesizedExpression struct {
	exprBase
	Inner Expression
}

func (n *ParenthesizedExpression) Accept(v Visitor) { v.VisitParenthesizedExpression(n) }

// ForcedUnwrapExpression is `e!`.
type ForcedUnwrapExpression struct {
	exprBase
	Target Expression
}

func (n *ForcedUnwrapExpression) Accept(v Visitor) { v.VisitForcedUnwrapExpression(n) }

// OptionalChainingExpression is `e?.member` / `e?[index]` / `e?(args)`; Next
// holds the chained access, which is re-typed as optional by SA.
type OptionalChainingExpression struct {
	exprBase
	Target Expression
	Next   Expression // MemberAccessExpression | SubscriptExpression | CallExpression
}

func (n *OptionalChainingExpression) Accept(v Visitor) { v.VisitOptionalChainingExpression(n) }

// InOutExpression marks `&e` passed to an inout parameter.
type InOutExpression struct {
	exprBase
	Target Expression
}

func (n *InOutExpression) Accept(v Visitor) { v.VisitInOutExpression(n) }

// ImplicitSomeExpression wraps an expression in `Optional.Some(...)` as
// sugar when the contextual type is optional. Produced only by SA, never by the parser.
type ImplicitSomeExpression struct {
	exprBase
	Inner Expression
}

func (n *ImplicitSomeExpression) Accept(v Visitor) { v.VisitImplicitSomeExpression(n) }
