package ast

import (
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// NodeFactory is the sole constructor surface for AST nodes: every
// node's span and child vector are fixed at construction time,
// so the "span covers exactly the tokens consumed" and "child vector
// length equals declared arity" invariants hold structurally rather than
// by caller discipline. The parser owns one NodeFactory per translation
// unit; it carries no state today but keeps construction routed through a
// single surface rather than scattering `&ast.X{...}` literals across the
// parser.
type NodeFactory struct{}

func NewNodeFactory() *NodeFactory { return &NodeFactory{} }

func kids(ns ...Node) []Node {
	out := make([]Node, 0, len(ns))
	for _, n := range ns {
		if n == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func base(span source.Span, children ...Node) baseNode {
	return baseNode{span: span, children: children}
}

// --- Expressions ---

func (f *NodeFactory) IntegerLiteral(span source.Span, lexeme string, b token.NumberBase, value uint64) *IntegerLiteral {
	return &IntegerLiteral{exprBase: exprBase{baseNode: base(span)}, Lexeme: lexeme, Base: b, Value: value}
}

func (f *NodeFactory) FloatLiteral(span source.Span, lexeme string, value float64) *FloatLiteral {
	return &FloatLiteral{exprBase: exprBase{baseNode: base(span)}, Lexeme: lexeme, Value: value}
}

func (f *NodeFactory) BooleanLiteral(span source.Span, value bool) *BooleanLiteral {
	return &BooleanLiteral{exprBase: exprBase{baseNode: base(span)}, Value: value}
}

func (f *NodeFactory) NilLiteral(span source.Span) *NilLiteral {
	return &NilLiteral{exprBase: exprBase{baseNode: base(span)}}
}

func (f *NodeFactory) StringLiteral(span source.Span, value string) *StringLiteral {
	return &StringLiteral{exprBase: exprBase{baseNode: base(span)}, Value: value}
}

func (f *NodeFactory) InterpolatedStringLiteral(span source.Span, parts []Expression) *InterpolatedStringLiteral {
	cs := make([]Node, len(parts))
	for i, p := range parts {
		cs[i] = p
	}
	return &InterpolatedStringLiteral{exprBase: exprBase{baseNode: base(span, cs...)}, Parts: parts}
}

func (f *NodeFactory) ArrayLiteral(span source.Span, elements []Expression) *ArrayLiteral {
	cs := make([]Node, len(elements))
	for i, e := range elements {
		cs[i] = e
	}
	return &ArrayLiteral{exprBase: exprBase{baseNode: base(span, cs...)}, Elements: elements}
}

func (f *NodeFactory) DictionaryLiteral(span source.Span, entries []DictionaryEntry) *DictionaryLiteral {
	var cs []Node
	for _, e := range entries {
		cs = append(cs, e.Key, e.Value)
	}
	return &DictionaryLiteral{exprBase: exprBase{baseNode: base(span, cs...)}, Entries: entries}
}

func (f *NodeFactory) TupleLiteral(span source.Span, elements []TupleElement) *TupleLiteral {
	var cs []Node
	for _, e := range elements {
		cs = append(cs, e.Value)
	}
	return &TupleLiteral{exprBase: exprBase{baseNode: base(span, cs...)}, Elements: elements}
}

func (f *NodeFactory) ClosureLiteral(span source.Span, params []ClosureParameter, ret TypeRef, body []Statement) *ClosureLiteral {
	var cs []Node
	if ret != nil {
		cs = append(cs, ret)
	}
	for _, s := range body {
		cs = append(cs, s)
	}
	return &ClosureLiteral{exprBase: exprBase{baseNode: base(span, cs...)}, Params: params, ReturnType: ret, Body: body}
}

func (f *NodeFactory) IdentifierExpression(span source.Span, name string, subtype token.IdentSubtype) *IdentifierExpression {
	return &IdentifierExpression{exprBase: exprBase{baseNode: base(span)}, Name: name, Subtype: subtype}
}

func (f *NodeFactory) SelfExpression(span source.Span) *SelfExpression {
	return &SelfExpression{exprBase: exprBase{baseNode: base(span)}}
}

func (f *NodeFactory) DynamicTypeExpression(span source.Span, target Expression) *DynamicTypeExpression {
	return &DynamicTypeExpression{exprBase: exprBase{baseNode: base(span, target)}, Target: target}
}

func (f *NodeFactory) MemberAccessExpression(span source.Span, target Expression, name string, index int, positional bool) *MemberAccessExpression {
	return &MemberAccessExpression{exprBase: exprBase{baseNode: base(span, target)}, Target: target, Name: name, Index: index, IsPositional: positional}
}

func (f *NodeFactory) InitializerReferenceExpression(span source.Span, ty TypeRef) *InitializerReferenceExpression {
	return &InitializerReferenceExpression{exprBase: exprBase{baseNode: base(span, ty)}, TypeRefExpr: ty}
}

func (f *NodeFactory) SubscriptExpression(span source.Span, target Expression, args []CallArgument) *SubscriptExpression {
	cs := []Node{target}
	for _, a := range args {
		cs = append(cs, a.Value)
	}
	return &SubscriptExpression{exprBase: exprBase{baseNode: base(span, cs...)}, Target: target, Arguments: args}
}

func (f *NodeFactory) CallExpression(span source.Span, callee Expression, args []CallArgument) *CallExpression {
	cs := []Node{callee}
	for _, a := range args {
		cs = append(cs, a.Value)
	}
	return &CallExpression{exprBase: exprBase{baseNode: base(span, cs...)}, Callee: callee, Arguments: args}
}

func (f *NodeFactory) UnaryExpression(span source.Span, op string, fixity token.Fixity, operand Expression) *UnaryExpression {
	return &UnaryExpression{exprBase: exprBase{baseNode: base(span, operand)}, Operator: op, Fixity: fixity, Operand: operand}
}

func (f *NodeFactory) BinaryExpression(span source.Span, op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{exprBase: exprBase{baseNode: base(span, left, right)}, Operator: op, Left: left, Right: right}
}

func (f *NodeFactory) ConditionalExpression(span source.Span, cond, then, els Expression) *ConditionalExpression {
	return &ConditionalExpression{exprBase: exprBase{baseNode: base(span, cond, then, els)}, Condition: cond, Then: then, Else: els}
}

func (f *NodeFactory) AssignmentExpression(span source.Span, target Expression, op string, value Expression) *AssignmentExpression {
	return &AssignmentExpression{exprBase: exprBase{baseNode: base(span, target, value)}, Target: target, Operator: op, Value: value}
}

func (f *NodeFactory) TypeCheckExpression(span source.Span, target Expression, ty TypeRef) *TypeCheckExpression {
	return &TypeCheckExpression{exprBase: exprBase{baseNode: base(span, target, ty)}, Target: target, Target2: ty}
}

func (f *NodeFactory) TypeCastExpression(span source.Span, target Expression, ty TypeRef, kind TypeCastKind) *TypeCastExpression {
	return &TypeCastExpression{exprBase: exprBase{baseNode: base(span, target, ty)}, Target: target, TargetTy: ty, Kind: kind}
}

func (f *NodeFactory) ParenthesizedExpression(span source.Span, inner Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{exprBase: exprBase{baseNode: base(span, inner)}, Inner: inner}
}

func (f *NodeFactory) ForcedUnwrapExpression(span source.Span, target Expression) *ForcedUnwrapExpression {
	return &ForcedUnwrapExpression{exprBase: exprBase{baseNode: base(span, target)}, Target: target}
}

func (f *NodeFactory) OptionalChainingExpression(span source.Span, target, next Expression) *OptionalChainingExpression {
	return &OptionalChainingExpression{exprBase: exprBase{baseNode: base(span, target, next)}, Target: target, Next: next}
}

func (f *NodeFactory) InOutExpression(span source.Span, target Expression) *InOutExpression {
	return &InOutExpression{exprBase: exprBase{baseNode: base(span, target)}, Target: target}
}

func (f *NodeFactory) ImplicitSomeExpression(span source.Span, inner Expression) *ImplicitSomeExpression {
	return &ImplicitSomeExpression{exprBase: exprBase{baseNode: base(span, inner)}, Inner: inner}
}
