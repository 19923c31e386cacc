package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
)

func firstBindingValue(t *testing.T, program *ast.Program, stmtIndex int) ast.Expression {
	t.Helper()
	decl, ok := program.Statements[stmtIndex].(*ast.ConstantDeclaration)
	require.True(t, ok, "statement %d = %T, want ConstantDeclaration", stmtIndex, program.Statements[stmtIndex])
	require.NotEmpty(t, decl.Bindings)
	return decl.Bindings[0].Value
}

func TestLiteralTypeDefaults(t *testing.T) {
	program, sink := analyzeSource(t, "let i = 1\nlet d = 2.5\nlet b = true\nlet s = \"hi\"")
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())

	wants := []string{"Int", "Double", "Bool", "String"}
	for i, want := range wants {
		v := firstBindingValue(t, program, i)
		require.NotNil(t, v.Type(), "binding %d missing annotation", i)
		assert.Equal(t, want, v.Type().TypeString(), "binding %d", i)
	}
}

func TestIntegerLiteralPolymorphism(t *testing.T) {
	program, sink := analyzeSource(t, "let n: Int8 = 1")
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())
	v := firstBindingValue(t, program, 0)
	assert.Equal(t, "Int8", v.Type().TypeString(), "contextual type adopts the literal")
}

// Optional expansion is a function of the inferred and contextual types:
// T against Optional<T> wraps once, against Optional<Optional<T>> twice,
// and an already-optional value is left alone.
func TestOptionalExpansion(t *testing.T) {
	program, sink := analyzeSource(t, "let a: Int? = 1\nlet b: Int?? = 1\nlet c: Int? = a")
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())

	a := firstBindingValue(t, program, 0)
	wrapped, ok := a.(*ast.ImplicitSomeExpression)
	require.True(t, ok, "a's initializer = %T, want one implicit Some", a)
	_, ok = wrapped.Inner.(*ast.IntegerLiteral)
	assert.True(t, ok, "single wrap around the literal")
	assert.Equal(t, "Int?", a.Type().TypeString())

	b := firstBindingValue(t, program, 1)
	outer, ok := b.(*ast.ImplicitSomeExpression)
	require.True(t, ok, "b's initializer = %T, want nested implicit Some", b)
	inner, ok := outer.Inner.(*ast.ImplicitSomeExpression)
	require.True(t, ok, "second wrap present")
	_, ok = inner.Inner.(*ast.IntegerLiteral)
	assert.True(t, ok)

	c := firstBindingValue(t, program, 2)
	_, rewrapped := c.(*ast.ImplicitSomeExpression)
	assert.False(t, rewrapped, "optional against same optional context adds no wrap")
}

func TestNilAdoptsOptionalContext(t *testing.T) {
	program, sink := analyzeSource(t, "let a: Int? = nil")
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())
	v := firstBindingValue(t, program, 0)
	assert.Equal(t, "Int?", v.Type().TypeString())
}

func TestOverloadResolutionPrefersExactMatch(t *testing.T) {
	src := `
func f(x: Int) -> Int {
    return x
}
func f(x: Double) -> Double {
    return x
}
let r = f(1)
`
	program, sink := analyzeSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())
	call, ok := firstBindingValue(t, program, 2).(*ast.CallExpression)
	require.True(t, ok)
	require.NotNil(t, call.Resolved, "winning overload recorded on the node")
	assert.Equal(t, "Int", call.Type().TypeString(), "exact Int overload beats the literal conversion")
}

func TestOverloadResolutionAmbiguity(t *testing.T) {
	src := `
func g(x: Int8) -> Int8 {
    return x
}
func g(x: Int16) -> Int16 {
    return x
}
let r = g(1)
`
	_, sink := analyzeSource(t, src)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.ErrAmbiguousUse {
			found = true
		}
	}
	assert.True(t, found, "equal literal conversions must be ambiguous: %v", sink.Diagnostics())
}

func TestExternalArgumentLabels(t *testing.T) {
	expectClean(t, `
func move(from start: Int, to end: Int) -> Int {
    return end - start
}
let d = move(from: 1, to: 5)
`)
	expectAnalyzerError(t, `
func move(from start: Int, to end: Int) -> Int {
    return end - start
}
let d = move(1, 5)
`, diagnostics.ErrUseOfUnresolvedIdentifier, "move")
}

func TestSelfAccessExpansion(t *testing.T) {
	src := `
struct Counter {
    var value: Int = 0
    func bump() -> Int {
        return value + 1
    }
}
`
	program, sink := analyzeSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())

	st := program.Statements[0].(*ast.StructDeclaration)
	var fn *ast.FunctionDeclaration
	for _, m := range st.Members {
		if f, ok := m.(*ast.FunctionDeclaration); ok {
			fn = f
		}
	}
	require.NotNil(t, fn)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	bin, ok := ret.Value.(*ast.BinaryExpression)
	require.True(t, ok, "return value = %T", ret.Value)
	access, ok := bin.Left.(*ast.MemberAccessExpression)
	require.True(t, ok, "bare member reference rewrites to a member access, got %T", bin.Left)
	assert.True(t, access.ImplicitSelf)
	if _, ok := access.Target.(*ast.SelfExpression); !ok {
		t.Errorf("target = %T, want the synthesized self", access.Target)
	}
}

func TestStructMemberwiseInitializer(t *testing.T) {
	expectClean(t, `
struct Point {
    var x: Int
    var y: Int
}
let p = Point(x: 1, y: 2)
let sum = p.x + p.y
`)
}

func TestStructDefaultInitializer(t *testing.T) {
	expectClean(t, `
struct Counter {
    var value: Int = 0
}
let c = Counter()
let v = c.value
`)
}

func TestMethodCallAndMemberAccess(t *testing.T) {
	expectClean(t, `
struct Greeter {
    var name: String = "anon"
    func greet(excited: Bool) -> String {
        return excited ? name + "!" : name
    }
}
let g = Greeter()
let msg = g.greet(true)
let upper = msg.count
`)
}

func TestEnumCaseResolution(t *testing.T) {
	expectClean(t, `
enum Direction {
    case North
    case South
}
let d = Direction.North
switch d {
case .North:
    break
case .South:
    break
default:
    break
}
`)
}

func TestOperatorResolvedOverloadAnnotation(t *testing.T) {
	program, sink := analyzeSource(t, "let r = 1 + 2")
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.Diagnostics())
	bin, ok := firstBindingValue(t, program, 0).(*ast.BinaryExpression)
	require.True(t, ok)
	require.NotNil(t, bin.Resolved, "binary nodes cache the resolved operator overload")
	assert.Equal(t, "+", bin.Resolved.OverloadName())
	assert.Equal(t, "Int", bin.Type().TypeString())
}

func TestUserOperatorResolvesAgainstDeclaredFunction(t *testing.T) {
	expectClean(t, `
operator infix +- { associativity left precedence 140 }
func +-(a: Int, b: Int) -> Int {
    return a - b
}
let x = 1 +- 2
`)
}

func TestExtensionMemberLookup(t *testing.T) {
	expectClean(t, `
struct Celsius {
    var degrees: Double = 0.0
}
extension Celsius {
    func fahrenheit() -> Double {
        return degrees * 1.8 + 32.0
    }
}
let c = Celsius()
let f = c.fahrenheit()
`)
}

func TestGenericSpecializationMemberTypes(t *testing.T) {
	src := `
let xs: Array<Int> = [1, 2, 3]
let n = xs.count
let first = xs[0]
let total = first + n
`
	expectClean(t, src)
}

func TestClassInheritanceMemberLookup(t *testing.T) {
	expectClean(t, `
class Animal {
    var legs: Int = 4
}
class Dog : Animal {
    func legCount() -> Int {
        return legs
    }
}
`)
}
