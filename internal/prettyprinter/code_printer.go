// Package prettyprinter renders an AST back into source text. The output
// is canonical rather than byte-faithful: reparsing it yields a
// structurally equal AST, which is the round-trip property the parser
// tests rely on.
//
// The printer is a Visitor with an indent-tracking buffer, operator
// parenthesization, and a String() harvest at the end.
package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/token"
)

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter { return &CodePrinter{} }

// Print renders any node and returns the accumulated text.
func Print(n ast.Node) string {
	p := NewCodePrinter()
	n.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }

func (p *CodePrinter) writeln() { p.buf.WriteByte('\n') }

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) expr(e ast.Expression) {
	if e == nil {
		p.write("<?>")
		return
	}
	e.Accept(p)
}

func (p *CodePrinter) typeRef(t ast.TypeRef) {
	if t == nil {
		p.write("<?>")
		return
	}
	t.Accept(p)
}

func (p *CodePrinter) pattern(pat ast.Pattern) {
	if pat == nil {
		p.write("<?>")
		return
	}
	pat.Accept(p)
}

func (p *CodePrinter) stmtLine(s ast.Statement) {
	p.writeIndent()
	s.Accept(p)
	p.writeln()
}

func (p *CodePrinter) block(b *ast.BlockStatement) {
	if b == nil {
		p.write("{ }")
		return
	}
	p.write("{")
	p.writeln()
	p.indent++
	for _, s := range b.Statements {
		p.stmtLine(s)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// --- Program ---

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for _, s := range n.Statements {
		p.stmtLine(s)
	}
}

// --- Expressions ---

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) { p.write(n.Lexeme) }
func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral)     { p.write(n.Lexeme) }

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNilLiteral(n *ast.NilLiteral) { p.write("nil") }

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(quoteString(n.Value))
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (p *CodePrinter) VisitInterpolatedStringLiteral(n *ast.InterpolatedStringLiteral) {
	p.write("\"")
	for _, part := range n.Parts {
		if sl, ok := part.(*ast.StringLiteral); ok {
			quoted := quoteString(sl.Value)
			p.write(quoted[1 : len(quoted)-1])
			continue
		}
		p.write(`\(`)
		p.expr(part)
		p.write(")")
	}
	p.write("\"")
}

func (p *CodePrinter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	p.write("[")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
	p.write("]")
}

func (p *CodePrinter) VisitDictionaryLiteral(n *ast.DictionaryLiteral) {
	if len(n.Entries) == 0 {
		p.write("[:]")
		return
	}
	p.write("[")
	for i, e := range n.Entries {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e.Key)
		p.write(": ")
		p.expr(e.Value)
	}
	p.write("]")
}

func (p *CodePrinter) VisitTupleLiteral(n *ast.TupleLiteral) {
	p.write("(")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		if e.Label != "" {
			p.write(e.Label)
			p.write(": ")
		}
		p.expr(e.Value)
	}
	p.write(")")
}

func (p *CodePrinter) VisitClosureLiteral(n *ast.ClosureLiteral) {
	p.write("{ ")
	if len(n.Params) > 0 {
		p.write("(")
		for i, cp := range n.Params {
			if i > 0 {
				p.write(", ")
			}
			if cp.ExternalName != "" {
				p.write(cp.ExternalName)
				p.write(" ")
			}
			p.write(cp.LocalName)
			if cp.TypeAnnotation != nil {
				p.write(": ")
				p.typeRef(cp.TypeAnnotation)
			}
		}
		p.write(")")
		if n.ReturnType != nil {
			p.write(" -> ")
			p.typeRef(n.ReturnType)
		}
		p.write(" in")
	}
	p.writeln()
	p.indent++
	for _, s := range n.Body {
		p.stmtLine(s)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitIdentifierExpression(n *ast.IdentifierExpression) {
	if n.Subtype == token.IdentBacktick {
		p.write("`" + n.Name + "`")
		return
	}
	p.write(n.Name)
}

func (p *CodePrinter) VisitSelfExpression(n *ast.SelfExpression) { p.write("self") }

func (p *CodePrinter) VisitDynamicTypeExpression(n *ast.DynamicTypeExpression) {
	p.expr(n.Target)
	p.write(".dynamicType")
}

func (p *CodePrinter) VisitMemberAccessExpression(n *ast.MemberAccessExpression) {
	if n.ImplicitSelf {
		// Analyzer sugar prints back as the bare name the author wrote.
		p.write(n.Name)
		return
	}
	p.expr(n.Target)
	p.write(".")
	if n.IsPositional {
		p.write(strconv.Itoa(n.Index))
	} else {
		p.write(n.Name)
	}
}

func (p *CodePrinter) VisitInitializerReferenceExpression(n *ast.InitializerReferenceExpression) {
	p.typeRef(n.TypeRefExpr)
	p.write(".init")
}

func (p *CodePrinter) VisitSubscriptExpression(n *ast.SubscriptExpression) {
	p.expr(n.Target)
	p.write("[")
	p.callArgs(n.Arguments)
	p.write("]")
}

func (p *CodePrinter) callArgs(args []ast.CallArgument) {
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		if a.Label != "" {
			p.write(a.Label)
			p.write(": ")
		}
		p.expr(a.Value)
	}
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.expr(n.Callee)
	p.write("(")
	p.callArgs(n.Arguments)
	p.write(")")
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	if n.Fixity == token.FixityPostfix {
		p.parenthesizedOperand(n.Operand)
		p.write(n.Operator)
		return
	}
	p.write(n.Operator)
	p.parenthesizedOperand(n.Operand)
}

// parenthesizedOperand wraps operator operands that are themselves
// operator applications, keeping the reprint unambiguous without
// tracking the registry's live precedence table.
func (p *CodePrinter) parenthesizedOperand(e ast.Expression) {
	switch e.(type) {
	case *ast.BinaryExpression, *ast.ConditionalExpression, *ast.AssignmentExpression, *ast.UnaryExpression:
		p.write("(")
		p.expr(e)
		p.write(")")
	default:
		p.expr(e)
	}
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	p.parenthesizedOperand(n.Left)
	p.write(" ")
	p.write(n.Operator)
	p.write(" ")
	p.parenthesizedOperand(n.Right)
}

func (p *CodePrinter) VisitConditionalExpression(n *ast.ConditionalExpression) {
	p.parenthesizedOperand(n.Condition)
	p.write(" ? ")
	p.parenthesizedOperand(n.Then)
	p.write(" : ")
	p.parenthesizedOperand(n.Else)
}

func (p *CodePrinter) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	p.expr(n.Target)
	p.write(" ")
	p.write(n.Operator)
	p.write("= ")
	p.parenthesizedOperand(n.Value)
}

func (p *CodePrinter) VisitTypeCheckExpression(n *ast.TypeCheckExpression) {
	p.parenthesizedOperand(n.Target)
	p.write(" is ")
	p.typeRef(n.Target2)
}

func (p *CodePrinter) VisitTypeCastExpression(n *ast.TypeCastExpression) {
	p.parenthesizedOperand(n.Target)
	switch n.Kind {
	case ast.CastOptional:
		p.write(" as? ")
	case ast.CastForcedOptional:
		p.write(" as! ")
	default:
		p.write(" as ")
	}
	p.typeRef(n.TargetTy)
}

func (p *CodePrinter) VisitParenthesizedExpression(n *ast.ParenthesizedExpression) {
	p.write("(")
	p.expr(n.Inner)
	p.write(")")
}

func (p *CodePrinter) VisitForcedUnwrapExpression(n *ast.ForcedUnwrapExpression) {
	p.parenthesizedOperand(n.Target)
	p.write("!")
}

func (p *CodePrinter) VisitOptionalChainingExpression(n *ast.OptionalChainingExpression) {
	p.expr(n.Target)
	p.write("?")
	switch next := n.Next.(type) {
	case *ast.MemberAccessExpression:
		p.write(".")
		if next.IsPositional {
			p.write(strconv.Itoa(next.Index))
		} else {
			p.write(next.Name)
		}
	case *ast.SubscriptExpression:
		p.write("[")
		p.callArgs(next.Arguments)
		p.write("]")
	case *ast.CallExpression:
		p.write("(")
		p.callArgs(next.Arguments)
		p.write(")")
	}
}

func (p *CodePrinter) VisitInOutExpression(n *ast.InOutExpression) {
	p.write("&")
	p.expr(n.Target)
}

func (p *CodePrinter) VisitImplicitSomeExpression(n *ast.ImplicitSomeExpression) {
	// Analyzer-produced sugar prints as what the author wrote.
	p.expr(n.Inner)
}

// --- Statements ---

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) { p.block(n) }

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) { p.expr(n.Expr) }

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("if ")
	p.expr(n.Condition)
	p.write(" ")
	p.block(n.Then)
	if n.Else != nil {
		p.write(" else ")
		n.Else.Accept(p)
	}
}

func (p *CodePrinter) VisitGuardStatement(n *ast.GuardStatement) {
	p.write("guard ")
	p.expr(n.Condition)
	p.write(" else ")
	p.block(n.Else)
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("while ")
	p.expr(n.Condition)
	p.write(" ")
	p.block(n.Body)
}

func (p *CodePrinter) VisitRepeatStatement(n *ast.RepeatStatement) {
	p.write("repeat ")
	p.block(n.Body)
	p.write(" while ")
	p.expr(n.Condition)
}

func (p *CodePrinter) VisitForStatement(n *ast.ForStatement) {
	p.write("for ")
	if n.Init != nil {
		n.Init.Accept(p)
	}
	p.write("; ")
	if n.Condition != nil {
		p.expr(n.Condition)
	}
	p.write("; ")
	if n.Step != nil {
		p.expr(n.Step)
	}
	p.write(" ")
	p.block(n.Body)
}

func (p *CodePrinter) VisitForInStatement(n *ast.ForInStatement) {
	p.write("for ")
	p.pattern(n.Pattern)
	p.write(" in ")
	p.expr(n.Sequence)
	if n.Where != nil {
		p.write(" where ")
		p.expr(n.Where)
	}
	p.write(" ")
	p.block(n.Body)
}

func (p *CodePrinter) VisitSwitchStatement(n *ast.SwitchStatement) {
	p.write("switch ")
	p.expr(n.Subject)
	p.write(" {")
	p.writeln()
	for _, c := range n.Cases {
		p.writeIndent()
		if c.Default {
			p.write("default:")
		} else {
			p.write("case ")
			for i, pat := range c.Patterns {
				if i > 0 {
					p.write(", ")
				}
				p.pattern(pat)
			}
			if c.Where != nil {
				p.write(" where ")
				p.expr(c.Where)
			}
			p.write(":")
		}
		p.writeln()
		p.indent++
		for _, s := range c.Body {
			p.stmtLine(s)
		}
		p.indent--
	}
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitBreakStatement(n *ast.BreakStatement) {
	p.write("break")
	if n.Label != "" {
		p.write(" " + n.Label)
	}
}

func (p *CodePrinter) VisitContinueStatement(n *ast.ContinueStatement) {
	p.write("continue")
	if n.Label != "" {
		p.write(" " + n.Label)
	}
}

func (p *CodePrinter) VisitFallthroughStatement(n *ast.FallthroughStatement) {
	p.write("fallthrough")
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		p.expr(n.Value)
	}
}

func (p *CodePrinter) VisitLabeledStatement(n *ast.LabeledStatement) {
	p.write(n.Label)
	p.write(": ")
	n.Body.Accept(p)
}

// --- Patterns ---

func (p *CodePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) { p.write(n.Name) }
func (p *CodePrinter) VisitWildcardPattern(n *ast.WildcardPattern)     { p.write("_") }

func (p *CodePrinter) VisitTypedPattern(n *ast.TypedPattern) {
	p.pattern(n.Inner)
	p.write(": ")
	p.typeRef(n.Ty)
}

func (p *CodePrinter) VisitTuplePattern(n *ast.TuplePattern) {
	p.write("(")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.pattern(el)
	}
	p.write(")")
}

func (p *CodePrinter) VisitValueBindingPattern(n *ast.ValueBindingPattern) {
	if n.Kind == ast.BindVar {
		p.write("var ")
	} else {
		p.write("let ")
	}
	p.pattern(n.Inner)
}

func (p *CodePrinter) VisitEnumCasePattern(n *ast.EnumCasePattern) {
	if n.Qualifier != "" {
		p.write(n.Qualifier)
	}
	p.write(".")
	p.write(n.CaseName)
	if len(n.Associated) > 0 {
		p.write("(")
		for i, el := range n.Associated {
			if i > 0 {
				p.write(", ")
			}
			p.pattern(el)
		}
		p.write(")")
	}
}

func (p *CodePrinter) VisitExpressionPattern(n *ast.ExpressionPattern) { p.expr(n.Expr) }

// --- Type references ---

func (p *CodePrinter) VisitNamedTypeRef(n *ast.NamedTypeRef) {
	if n.Qualifier != nil {
		p.typeRef(n.Qualifier)
		p.write(".")
	}
	p.write(n.Name)
	if len(n.GenericArgs) > 0 {
		p.write("<")
		for i, a := range n.GenericArgs {
			if i > 0 {
				p.write(", ")
			}
			p.typeRef(a)
		}
		p.write(">")
	}
}

func (p *CodePrinter) VisitTupleTypeRef(n *ast.TupleTypeRef) {
	p.write("(")
	for i, e := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		if e.Label != "" {
			p.write(e.Label)
			p.write(": ")
		}
		p.typeRef(e.Ty)
	}
	p.write(")")
}

func (p *CodePrinter) VisitArrayTypeRef(n *ast.ArrayTypeRef) {
	p.typeRef(n.Element)
	p.write("[]")
}

func (p *CodePrinter) VisitDictionaryTypeRef(n *ast.DictionaryTypeRef) {
	p.write("[")
	p.typeRef(n.Key)
	p.write(": ")
	p.typeRef(n.Value)
	p.write("]")
}

func (p *CodePrinter) VisitFunctionTypeRef(n *ast.FunctionTypeRef) {
	p.write("(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.typeRef(param)
	}
	if n.Variadic {
		p.write("...")
	}
	p.write(") -> ")
	p.typeRef(n.Return)
}

func (p *CodePrinter) VisitOptionalTypeRef(n *ast.OptionalTypeRef) {
	p.typeRef(n.Inner)
	p.write("?")
}

func (p *CodePrinter) VisitImplicitlyUnwrappedOptionalTypeRef(n *ast.ImplicitlyUnwrappedOptionalTypeRef) {
	p.typeRef(n.Inner)
	p.write("!")
}

func (p *CodePrinter) VisitProtocolCompositionTypeRef(n *ast.ProtocolCompositionTypeRef) {
	for i, proto := range n.Protocols {
		if i > 0 {
			p.write(" & ")
		}
		p.typeRef(proto)
	}
}

// --- Declarations ---

func (p *CodePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.write("import ")
	p.write(n.Path)
}

func (p *CodePrinter) printBindings(bindings []ast.Binding) {
	for i, b := range bindings {
		if i > 0 {
			p.write(", ")
		}
		if b.Pattern != nil {
			p.pattern(b.Pattern)
		} else {
			p.write(b.Name)
		}
		if b.TypeAnnotation != nil {
			p.write(": ")
			p.typeRef(b.TypeAnnotation)
		}
		if b.Value != nil {
			p.write(" = ")
			p.expr(b.Value)
		}
	}
}

func (p *CodePrinter) VisitConstantDeclaration(n *ast.ConstantDeclaration) {
	if n.IsStatic {
		p.write("static ")
	}
	p.write("let ")
	p.printBindings(n.Bindings)
}

func (p *CodePrinter) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	if n.IsStatic {
		p.write("static ")
	}
	p.write("var ")
	p.printBindings(n.Bindings)
	last := len(n.Bindings) - 1
	if last < 0 || last >= len(n.Getters) || n.Getters[last] == nil {
		return
	}
	getter := n.Getters[last]
	var setter *ast.BlockStatement
	if last < len(n.Setters) {
		setter = n.Setters[last]
	}
	p.write(" {")
	p.writeln()
	p.indent++
	p.writeIndent()
	if len(getter.Statements) == 0 && (setter == nil || len(setter.Statements) == 0) {
		p.write("get")
		if setter != nil {
			p.write(" set")
		}
		p.writeln()
	} else {
		p.write("get ")
		p.block(getter)
		p.writeln()
		if setter != nil {
			p.writeIndent()
			p.write("set ")
			p.block(setter)
			p.writeln()
		}
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitTypeAliasDeclaration(n *ast.TypeAliasDeclaration) {
	p.write("typealias ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.write(" = ")
	p.typeRef(n.Target)
}

func (p *CodePrinter) printGenerics(g *ast.GenericParameterList) {
	if g == nil || len(g.Params) == 0 {
		return
	}
	p.write("<")
	for i, gp := range g.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(gp.Name)
		for _, c := range gp.Constraints {
			if c.Kind == ast.ConstraintConformance {
				p.write(": ")
				p.typeRef(c.Bound)
				break
			}
		}
	}
	p.write(">")
}

func (p *CodePrinter) printParameters(params []ast.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		if param.InOut {
			p.write("inout ")
		}
		if param.ExternalName != "" && param.ExternalName != param.LocalName {
			p.write(param.ExternalName)
			p.write(" ")
		}
		p.write(param.LocalName)
		p.write(": ")
		p.typeRef(param.TypeAnnotation)
		if param.Variadic {
			p.write("...")
		}
		if param.Default != nil {
			p.write(" = ")
			p.expr(param.Default)
		}
	}
	p.write(")")
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	if n.IsStatic {
		p.write("static ")
	}
	p.write("func ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.printParameters(n.Parameters)
	if n.Throws {
		p.write(" throws")
	}
	if n.ReturnType != nil {
		p.write(" -> ")
		p.typeRef(n.ReturnType)
	}
	if n.Body != nil {
		p.write(" ")
		p.block(n.Body)
	}
}

func (p *CodePrinter) printInheritance(super *ast.NamedTypeRef, protocols []*ast.NamedTypeRef) {
	refs := protocols
	if super != nil {
		refs = append([]*ast.NamedTypeRef{super}, protocols...)
	}
	if len(refs) == 0 {
		return
	}
	p.write(": ")
	for i, r := range refs {
		if i > 0 {
			p.write(", ")
		}
		p.typeRef(r)
	}
}

func (p *CodePrinter) memberBlock(members []ast.Declaration) {
	p.write(" {")
	p.writeln()
	p.indent++
	for _, m := range members {
		p.stmtLine(m)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitEnumDeclaration(n *ast.EnumDeclaration) {
	p.write("enum ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.printInheritance(nil, n.Protocols)
	p.write(" {")
	p.writeln()
	p.indent++
	for _, c := range n.Cases {
		p.writeIndent()
		p.write("case ")
		p.write(c.Name)
		if len(c.Associated) > 0 {
			p.write("(")
			for i, assoc := range c.Associated {
				if i > 0 {
					p.write(", ")
				}
				if assoc.ExternalName != "" {
					p.write(assoc.ExternalName)
					p.write(": ")
				}
				p.typeRef(assoc.TypeAnnotation)
			}
			p.write(")")
		}
		if c.RawValue != nil {
			p.write(" = ")
			p.expr(c.RawValue)
		}
		p.writeln()
	}
	for _, m := range n.Members {
		p.stmtLine(m)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitStructDeclaration(n *ast.StructDeclaration) {
	p.write("struct ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.printInheritance(nil, n.Protocols)
	p.memberBlock(n.Members)
}

func (p *CodePrinter) VisitClassDeclaration(n *ast.ClassDeclaration) {
	p.write("class ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.printInheritance(n.Superclass, n.Protocols)
	p.memberBlock(n.Members)
}

func (p *CodePrinter) VisitAssociatedTypeDeclaration(n *ast.AssociatedTypeDeclaration) {
	p.write("typealias ")
	p.write(n.Name)
	if n.Bound != nil {
		p.write(": ")
		p.typeRef(n.Bound)
	}
}

func (p *CodePrinter) VisitProtocolDeclaration(n *ast.ProtocolDeclaration) {
	p.write("protocol ")
	p.write(n.Name)
	p.printInheritance(nil, n.Inherited)
	p.memberBlock(n.Members)
}

func (p *CodePrinter) VisitExtensionDeclaration(n *ast.ExtensionDeclaration) {
	p.write("extension ")
	p.write(n.Name)
	p.printGenerics(n.Generics)
	p.printInheritance(nil, n.Protocols)
	p.memberBlock(n.Members)
}

func (p *CodePrinter) VisitInitializerDeclaration(n *ast.InitializerDeclaration) {
	p.write("init")
	if n.Kind == ast.InitFailable {
		p.write("?")
	}
	p.printGenerics(n.Generics)
	p.printParameters(n.Parameters)
	if n.Body != nil {
		p.write(" ")
		p.block(n.Body)
	}
}

func (p *CodePrinter) VisitDeinitializerDeclaration(n *ast.DeinitializerDeclaration) {
	p.write("deinit ")
	p.block(n.Body)
}

func (p *CodePrinter) VisitSubscriptDeclaration(n *ast.SubscriptDeclaration) {
	p.write("subscript")
	p.printParameters(n.Parameters)
	p.write(" -> ")
	p.typeRef(n.ReturnType)
	p.write(" {")
	p.writeln()
	p.indent++
	if n.Getter != nil {
		p.writeIndent()
		p.write("get ")
		p.block(n.Getter)
		p.writeln()
	}
	if n.Setter != nil {
		p.writeIndent()
		p.write("set ")
		p.block(n.Setter)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitOperatorDeclaration(n *ast.OperatorDeclaration) {
	p.write("operator ")
	switch n.Fixity {
	case ast.OpFixityPrefix:
		p.write("prefix ")
	case ast.OpFixityPostfix:
		p.write("postfix ")
	default:
		p.write("infix ")
	}
	p.write(n.Name)
	p.write(" {")
	if n.Fixity == ast.OpFixityInfix {
		p.write(" associativity ")
		switch n.Associativity {
		case ast.AssocLeft:
			p.write("left")
		case ast.AssocRight:
			p.write("right")
		default:
			p.write("none")
		}
		p.write(" precedence ")
		p.write(strconv.Itoa(n.Precedence))
	}
	p.write(" }")
}

func (p *CodePrinter) VisitGenericParameterList(n *ast.GenericParameterList) {
	p.printGenerics(n)
}
