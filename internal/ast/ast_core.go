// Package ast defines the closed tagged-variant node hierarchy: one
// interface per category (expression, statement, pattern, type reference,
// declaration), uniform `Accept(Visitor)` dispatch, and a per-node source
// span. Nodes are built exclusively through NodeFactory (see factory.go)
// so span and child-arity invariants hold by construction rather than by
// convention. After construction the analyzer fills the annotation slots
// (expression types, resolved overloads) and its implicit-self and
// implicit-Some expansions replace expression fields in place.
package ast

import "github.com/larklang/compiler/internal/source"

// Node is the base of every AST variant.
type Node interface {
	Span() source.Span
	Accept(v Visitor)
	// Children returns the node's immediate child nodes in declaration
	// order. Its length equals the variant's declared arity.
	Children() []Node
}

// TypeAnnotated is implemented by every Expression: SA fills Type() during
// pass 2.
type TypeAnnotated interface {
	Type() Annotation
	SetType(Annotation)
}

// Annotation is an opaque handle into the type registry (see internal/types);
// ast does not import internal/types; the analyzer, which imports both,
// supplies the values. A nil Annotation means "not yet analyzed".
type Annotation interface {
	TypeString() string
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	TypeAnnotated
	expressionNode()
}

// Statement is a Node that does not itself produce a value.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a Statement that introduces a name.
type Declaration interface {
	Statement
	declarationNode()
}

// Pattern is the left-hand side of a binding or switch case.
type Pattern interface {
	Node
	patternNode()
}

// TypeRef is a syntactic reference to a type, as written in source,
// distinct from the materialized `Type`
// values the analyzer produces in internal/types.
type TypeRef interface {
	Node
	typeRefNode()
}

// baseNode factors the span + children plumbing every concrete node embeds.
type baseNode struct {
	span     source.Span
	children []Node
}

func (b *baseNode) Span() source.Span { return b.span }
func (b *baseNode) Children() []Node  { return b.children }

// exprBase adds the type-annotation slot to baseNode for expression nodes.
type exprBase struct {
	baseNode
	typ Annotation
}

func (e *exprBase) Type() Annotation     { return e.typ }
func (e *exprBase) SetType(t Annotation) { e.typ = t }
func (*exprBase) expressionNode()        {}

type stmtBase struct{ baseNode }

func (*stmtBase) statementNode() {}

type declBase struct{ stmtBase }

func (*declBase) declarationNode() {}

type patternBase struct{ baseNode }

func (*patternBase) patternNode() {}

type typeRefBase struct{ baseNode }

func (*typeRefBase) typeRefNode() {}

// Program is the root of every translation unit's AST.
type Program struct {
	baseNode
	File       string
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
