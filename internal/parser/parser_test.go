package parser

import (
	"testing"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
)

func parseProgram(t *testing.T, input string) (*ast.Program, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := New(source.Buffer{FileName: "test.lark", Text: input}, sink, nil)
	return p.ParseProgram(), sink
}

func requireNoErrors(t *testing.T, sink *diagnostics.Sink) {
	t.Helper()
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
}

func hasCode(sink *diagnostics.Sink, code diagnostics.Code) bool {
	for _, d := range sink.Diagnostics() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestImportStatement(t *testing.T) {
	program, sink := parseProgram(t, "import Foundation")
	requireNoErrors(t, sink)
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	imp, ok := program.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("statement = %T, want ImportStatement", program.Statements[0])
	}
	if imp.Path != "Foundation" || imp.Kind != ast.ImportDefault {
		t.Errorf("import = {%q %v}, want {Foundation Default}", imp.Path, imp.Kind)
	}
}

func TestConstantWithArrayTypeAndLiteral(t *testing.T) {
	program, sink := parseProgram(t, "let a : Int[] = [1, 2, 3]")
	requireNoErrors(t, sink)
	decl, ok := program.Statements[0].(*ast.ConstantDeclaration)
	if !ok {
		t.Fatalf("statement = %T, want ConstantDeclaration", program.Statements[0])
	}
	if len(decl.Bindings) != 1 || decl.Bindings[0].Name != "a" {
		t.Fatalf("bindings = %+v, want one binding named a", decl.Bindings)
	}
	arr, ok := decl.Bindings[0].TypeAnnotation.(*ast.ArrayTypeRef)
	if !ok {
		t.Fatalf("type annotation = %T, want ArrayTypeRef", decl.Bindings[0].TypeAnnotation)
	}
	elem, ok := arr.Element.(*ast.NamedTypeRef)
	if !ok || elem.Name != "Int" {
		t.Fatalf("element type = %v, want Int", arr.Element)
	}
	lit, ok := decl.Bindings[0].Value.(*ast.ArrayLiteral)
	if !ok || len(lit.Elements) != 3 {
		t.Fatalf("initializer = %v, want array literal of 3", decl.Bindings[0].Value)
	}
	for i, want := range []uint64{1, 2, 3} {
		il, ok := lit.Elements[i].(*ast.IntegerLiteral)
		if !ok || il.Value != want {
			t.Errorf("element %d = %v, want %d", i, lit.Elements[i], want)
		}
	}
}

func TestUserOperatorRegistrationOrder(t *testing.T) {
	// Declared before use: parses as a binary operator call.
	program, sink := parseProgram(t,
		"operator infix +- { associativity left precedence 140 }\nlet x = 1 +- 2")
	requireNoErrors(t, sink)
	decl := program.Statements[1].(*ast.ConstantDeclaration)
	bin, ok := decl.Bindings[0].Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+-" {
		t.Fatalf("initializer = %v, want binary +-", decl.Bindings[0].Value)
	}

	// Swapped: the use precedes the declaration and fails to resolve.
	_, sink = parseProgram(t,
		"let x = 1 +- 2\noperator infix +- { associativity left precedence 140 }")
	if !hasCode(sink, diagnostics.ErrUnresolvedOperator) {
		t.Errorf("diagnostics = %v, want %s", sink.Diagnostics(), diagnostics.ErrUnresolvedOperator)
	}
}

func TestOperatorRedeclarationDiagnosed(t *testing.T) {
	_, sink := parseProgram(t,
		"operator infix +- { associativity left precedence 140 }\noperator infix +- { associativity left precedence 100 }")
	if !hasCode(sink, diagnostics.ErrOperatorRedeclaration) {
		t.Errorf("diagnostics = %v, want %s", sink.Diagnostics(), diagnostics.ErrOperatorRedeclaration)
	}
}

func TestPrecedenceLaw(t *testing.T) {
	program, sink := parseProgram(t, "let r = a + b * c")
	requireNoErrors(t, sink)
	decl := program.Statements[0].(*ast.ConstantDeclaration)
	plus, ok := decl.Bindings[0].Value.(*ast.BinaryExpression)
	if !ok || plus.Operator != "+" {
		t.Fatalf("root = %v, want +", decl.Bindings[0].Value)
	}
	if l, ok := plus.Left.(*ast.IdentifierExpression); !ok || l.Name != "a" {
		t.Errorf("left = %v, want a", plus.Left)
	}
	times, ok := plus.Right.(*ast.BinaryExpression)
	if !ok || times.Operator != "*" {
		t.Fatalf("right = %v, want * subtree", plus.Right)
	}
}

func TestRightAssociativeUserOperator(t *testing.T) {
	program, sink := parseProgram(t,
		"operator infix ** { associativity right precedence 160 }\nlet r = a ** b ** c")
	requireNoErrors(t, sink)
	decl := program.Statements[1].(*ast.ConstantDeclaration)
	outer, ok := decl.Bindings[0].Value.(*ast.BinaryExpression)
	if !ok || outer.Operator != "**" {
		t.Fatalf("root = %v, want **", decl.Bindings[0].Value)
	}
	if _, ok := outer.Left.(*ast.IdentifierExpression); !ok {
		t.Errorf("left = %T, want identifier a (right associativity)", outer.Left)
	}
	inner, ok := outer.Right.(*ast.BinaryExpression)
	if !ok || inner.Operator != "**" {
		t.Errorf("right = %v, want nested ** subtree", outer.Right)
	}
}

func TestTernaryParsesAtAssignmentPrecedence(t *testing.T) {
	program, sink := parseProgram(t, "let r = a < b ? c : d")
	requireNoErrors(t, sink)
	decl := program.Statements[0].(*ast.ConstantDeclaration)
	cond, ok := decl.Bindings[0].Value.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("initializer = %T, want ConditionalExpression", decl.Bindings[0].Value)
	}
	if _, ok := cond.Condition.(*ast.BinaryExpression); !ok {
		t.Errorf("condition = %T, want the comparison subtree", cond.Condition)
	}
}

func TestIsAndAsParseTypeReferences(t *testing.T) {
	program, sink := parseProgram(t, "let r = x is Int\nlet s = y as? String")
	requireNoErrors(t, sink)
	check := program.Statements[0].(*ast.ConstantDeclaration).Bindings[0].Value
	if _, ok := check.(*ast.TypeCheckExpression); !ok {
		t.Errorf("first = %T, want TypeCheckExpression", check)
	}
	cast, ok := program.Statements[1].(*ast.ConstantDeclaration).Bindings[0].Value.(*ast.TypeCastExpression)
	if !ok || cast.Kind != ast.CastOptional {
		t.Errorf("second = %v, want optional cast", cast)
	}
}

func TestStringInterpolationExpression(t *testing.T) {
	program, sink := parseProgram(t, `let s = "n = \(n + 1)!"`)
	requireNoErrors(t, sink)
	decl := program.Statements[0].(*ast.ConstantDeclaration)
	interp, ok := decl.Bindings[0].Value.(*ast.InterpolatedStringLiteral)
	if !ok {
		t.Fatalf("initializer = %T, want InterpolatedStringLiteral", decl.Bindings[0].Value)
	}
	if len(interp.Parts) != 3 {
		t.Fatalf("parts = %d, want 3 (text, expr, text)", len(interp.Parts))
	}
	if _, ok := interp.Parts[1].(*ast.BinaryExpression); !ok {
		t.Errorf("middle part = %T, want the interpolated binary expression", interp.Parts[1])
	}
}

func TestSwitchWithPatternsAndWhere(t *testing.T) {
	src := `
switch v {
case .Some(let x) where x > 0:
    f(x)
case (a, _):
    g()
default:
    h()
}
`
	program, sink := parseProgram(t, src)
	requireNoErrors(t, sink)
	sw, ok := program.Statements[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("statement = %T, want SwitchStatement", program.Statements[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("cases = %d, want 3", len(sw.Cases))
	}
	enumCase, ok := sw.Cases[0].Patterns[0].(*ast.EnumCasePattern)
	if !ok || enumCase.CaseName != "Some" {
		t.Fatalf("case 0 pattern = %v, want .Some", sw.Cases[0].Patterns[0])
	}
	if sw.Cases[0].Where == nil {
		t.Error("case 0 should carry a where clause")
	}
	if _, ok := sw.Cases[1].Patterns[0].(*ast.TuplePattern); !ok {
		t.Errorf("case 1 pattern = %T, want TuplePattern", sw.Cases[1].Patterns[0])
	}
	if !sw.Cases[2].Default {
		t.Error("case 2 should be default")
	}
}

func TestGenericTypeArgumentsSplitShiftToken(t *testing.T) {
	program, sink := parseProgram(t, "let d: Dictionary<String, Array<Int>> = [:]")
	requireNoErrors(t, sink)
	decl := program.Statements[0].(*ast.ConstantDeclaration)
	named, ok := decl.Bindings[0].TypeAnnotation.(*ast.NamedTypeRef)
	if !ok || named.Name != "Dictionary" || len(named.GenericArgs) != 2 {
		t.Fatalf("annotation = %v, want Dictionary<_, _>", decl.Bindings[0].TypeAnnotation)
	}
	inner, ok := named.GenericArgs[1].(*ast.NamedTypeRef)
	if !ok || inner.Name != "Array" || len(inner.GenericArgs) != 1 {
		t.Errorf("second argument = %v, want Array<Int>", named.GenericArgs[1])
	}
}

func TestClassAndProtocolDeclarations(t *testing.T) {
	src := `
protocol Greeter {
    func greet() -> String
}
class Base {
    init(name: String) {
        self.name = name
    }
    var name: String = ""
}
class Child : Base, Greeter {
    func greet() -> String {
        return name
    }
}
`
	program, sink := parseProgram(t, src)
	requireNoErrors(t, sink)
	if len(program.Statements) != 3 {
		t.Fatalf("statements = %d, want 3", len(program.Statements))
	}
	child, ok := program.Statements[2].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("third = %T, want ClassDeclaration", program.Statements[2])
	}
	if len(child.Protocols) != 2 {
		t.Fatalf("inheritance entries = %d, want 2 (classified by the analyzer)", len(child.Protocols))
	}
}

func TestClosureLiteralForms(t *testing.T) {
	src := `
let f = { (a: Int, b: Int) -> Int in
    return a + b
}
let g = { $0 + $1 }
`
	program, sink := parseProgram(t, src)
	requireNoErrors(t, sink)
	f := program.Statements[0].(*ast.ConstantDeclaration).Bindings[0].Value.(*ast.ClosureLiteral)
	if len(f.Params) != 2 || f.ReturnType == nil {
		t.Errorf("closure f = %d params (return %v), want 2 with return type", len(f.Params), f.ReturnType)
	}
	g := program.Statements[1].(*ast.ConstantDeclaration).Bindings[0].Value.(*ast.ClosureLiteral)
	if len(g.Params) != 0 {
		t.Errorf("closure g = %d params, want 0 (implicit parameters)", len(g.Params))
	}
}

func TestErrorRecoverySynchronizes(t *testing.T) {
	program, sink := parseProgram(t, "let = 5\nlet ok = 1")
	if !sink.HasErrors() {
		t.Fatal("want a syntax diagnostic for the malformed binding")
	}
	// The parser must keep going and produce the following statement.
	found := false
	for _, s := range program.Statements {
		if d, ok := s.(*ast.ConstantDeclaration); ok && len(d.Bindings) > 0 && d.Bindings[0].Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Errorf("recovery lost the following statement: %v", program.Statements)
	}
}
