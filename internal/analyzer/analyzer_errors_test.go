package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larklang/compiler/internal/analyzer"
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/parser"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
)

func analyzeSource(t *testing.T, src string) (*ast.Program, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := parser.New(source.Buffer{FileName: "test.lark", Text: src}, sink, nil)
	program := p.ParseProgram()
	a := analyzer.New(symbols.Bootstrap(), sink)
	a.Analyze(program)
	return program, sink
}

func expectAnalyzerError(t *testing.T, src string, code diagnostics.Code, args ...string) {
	t.Helper()
	_, sink := analyzeSource(t, src)
	for _, d := range sink.Diagnostics() {
		if d.Code != code {
			continue
		}
		for i, want := range args {
			require.Greater(t, len(d.Arguments), i, "diagnostic %s has too few arguments: %v", code, d.Arguments)
			assert.Equal(t, want, d.Arguments[i], "argument %d of %s", i, code)
		}
		return
	}
	t.Errorf("diagnostics = %v, want %s", sink.Diagnostics(), code)
}

func expectClean(t *testing.T, src string) {
	t.Helper()
	_, sink := analyzeSource(t, src)
	for _, d := range sink.Diagnostics() {
		if d.Level == diagnostics.Error || d.Level == diagnostics.Fatal {
			t.Fatalf("unexpected errors: %v", sink.Diagnostics())
		}
	}
}

func TestUnresolvedIdentifier(t *testing.T) {
	expectAnalyzerError(t, "let x = missing", diagnostics.ErrUseOfUnresolvedIdentifier, "missing")
}

func TestUndeclaredType(t *testing.T) {
	expectAnalyzerError(t, "let x: Missing = 1", diagnostics.ErrUseOfUndeclaredType, "Missing")
}

func TestProtocolVarMustBeComputedProperty(t *testing.T) {
	_, sink := analyzeSource(t, "protocol P { var a:Int = 3 }")
	var matches int
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.ErrProtocolVarMustBeComputed {
			matches++
		}
	}
	assert.Equal(t, 1, matches, "diagnostics: %v", sink.Diagnostics())
}

func TestProtocolComputedRequirementAccepted(t *testing.T) {
	expectClean(t, "protocol P { var a: Int { get } }\nstruct S: P {\n    var a: Int = 0\n}")
}

func TestProtocolCannotDefineLetConstant(t *testing.T) {
	expectAnalyzerError(t, "protocol P { let a: Int = 1 }", diagnostics.ErrProtocolCannotDefineLetConstant)
}

func TestProtocolDefaultArgumentRejected(t *testing.T) {
	expectAnalyzerError(t, "protocol P { func f(n: Int = 1) }", diagnostics.ErrDefaultArgNotPermittedInProtocol)
}

func TestUnimplementedProtocolFunction(t *testing.T) {
	expectAnalyzerError(t,
		"protocol P { func f() }\nclass C : P {}",
		diagnostics.ErrTypeDoesNotConformUnimplementedFunc, "C", "P", "f")
}

func TestConformanceSatisfiedThroughMember(t *testing.T) {
	expectClean(t, `
protocol P {
    func f() -> Int
}
struct S: P {
    func f() -> Int {
        return 1
    }
}
`)
}

func TestConformanceSatisfiedThroughExtension(t *testing.T) {
	expectClean(t, `
protocol P {
    func f() -> Int
}
struct S {
}
extension S: P {
    func f() -> Int {
        return 1
    }
}
`)
}

func TestUnimplementedProtocolProperty(t *testing.T) {
	expectAnalyzerError(t,
		"protocol P { var a: Int { get } }\nstruct S: P {}",
		diagnostics.ErrTypeDoesNotConformUnimplementedProp, "S", "P", "a")
}

func TestUnimplementedAssociatedType(t *testing.T) {
	expectAnalyzerError(t,
		"protocol P { typealias Item }\nstruct S: P {}",
		diagnostics.ErrTypeDoesNotConformUnimplementedType, "S", "P", "Item")
}

func TestAssociatedTypeWitnessSatisfies(t *testing.T) {
	expectClean(t, `
protocol P {
    typealias Item
    func first() -> Item
}
struct S: P {
    typealias Item = Int
    func first() -> Int {
        return 0
    }
}
`)
}

func TestTuplePatternAgainstNonTupleType(t *testing.T) {
	_, sink := analyzeSource(t, "let (a,b) : Int = (1,2)")
	var matches int
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.ErrTuplePatternCannotMatchNonTuple {
			matches++
			require.Equal(t, []string{"Int"}, d.Arguments)
		}
	}
	assert.Equal(t, 1, matches, "diagnostics: %v", sink.Diagnostics())
}

func TestTupleDestructuringBindsLeaves(t *testing.T) {
	expectClean(t, `
let (a, (b, c)) = (1, (2, "s"))
let sum = a + b
let text = c + "!"
`)
}

func TestSuperclassMustAppearFirst(t *testing.T) {
	expectAnalyzerError(t, `
class A {
}
protocol P {
}
class B : P, A {
}
`, diagnostics.ErrSuperclassMustAppearFirst, "A")
}

func TestGenericArityDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diagnostics.Code
		args []string
	}{
		{"bare generic", "struct Box<T> {}\nlet x: Box", diagnostics.ErrGenericTypeArgumentRequired, []string{"Box"}},
		{"non-generic specialized", "let x: Int<Int> = 1", diagnostics.ErrCannotSpecializeNonGenericType, []string{"Int"}},
		{"too many", "struct Box<T> {}\nlet x: Box<Int, Int>", diagnostics.ErrTooManyTypeArguments, []string{"Box", "2", "1"}},
		{"insufficient", "let x: Dictionary<Int>", diagnostics.ErrInsufficientTypeArguments, []string{"Dictionary", "1", "2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			expectAnalyzerError(t, tc.src, tc.code, tc.args...)
		})
	}
}

func TestInitializationSafety(t *testing.T) {
	t.Run("let assigned after initialization", func(t *testing.T) {
		expectAnalyzerError(t, "let a = 1\na = 2", diagnostics.ErrCannotAssignToAInB, "a")
	})
	t.Run("self-referential initializer", func(t *testing.T) {
		expectAnalyzerError(t, "let x = x + 1", diagnostics.ErrUseOfInitializingVariable, "x")
	})
	t.Run("read before initialization", func(t *testing.T) {
		expectAnalyzerError(t, "let u: Int\nlet v = u", diagnostics.ErrUseOfUninitializedVariable, "u")
	})
	t.Run("delayed initialization of let", func(t *testing.T) {
		expectClean(t, "let w: Int\nw = 1\nlet r = w + 1")
	})
	t.Run("var reassignment", func(t *testing.T) {
		expectClean(t, "var z = 1\nz = 2\nlet r = z")
	})
	t.Run("branch join requires all paths", func(t *testing.T) {
		expectAnalyzerError(t, `
func f(flag: Bool) -> Int {
    let a: Int
    if flag {
        a = 1
    }
    return a
}
`, diagnostics.ErrUseOfUninitializedVariable, "a")
	})
	t.Run("initialization on both branches survives the join", func(t *testing.T) {
		expectClean(t, `
func f(flag: Bool) -> Int {
    let a: Int
    if flag {
        a = 1
    } else {
        a = 2
    }
    return a
}
`)
	})
}

func TestInvalidRedeclaration(t *testing.T) {
	expectAnalyzerError(t, "let a = 1\nlet a = 2", diagnostics.ErrInvalidRedeclaration, "a")
	expectAnalyzerError(t, "struct S {}\nstruct S {}", diagnostics.ErrInvalidRedeclaration, "S")
}

func TestFallthroughPlacement(t *testing.T) {
	expectAnalyzerError(t, `
let v = 1
switch v {
case 1:
    fallthrough
}
`, diagnostics.ErrFallthroughWithoutFollowingCase)

	expectClean(t, `
let v = 1
var seen = 0
switch v {
case 1:
    fallthrough
case 2:
    seen = 2
default:
    seen = 3
}
`)
}

func TestParameterSuccinctnessWarning(t *testing.T) {
	_, sink := analyzeSource(t, "func h(x x: Int) {}")
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Code == diagnostics.WarnParamCanBeExpressedMoreSuccinctly {
			found = true
			assert.Equal(t, diagnostics.Warning, d.Level)
			assert.Equal(t, []string{"x"}, d.Arguments)
		}
	}
	assert.True(t, found, "diagnostics: %v", sink.Diagnostics())
}

func TestForwardReferencesResolve(t *testing.T) {
	expectClean(t, `
func caller() -> Int {
    return callee() + width()
}
func callee() -> Int {
    return 1
}
let width = { () -> Int in
    return 2
}
`)
}

func TestMixedWidthArithmeticFailsResolution(t *testing.T) {
	expectAnalyzerError(t, `
let a = Int8(1)
let b = Int16(2)
let c = a + b
`, diagnostics.ErrUnresolvedOperator, "+")
}
