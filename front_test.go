package front_test

import (
	"testing"

	front "github.com/larklang/compiler"
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
)

func TestParseReturnsASTAndDiagnostics(t *testing.T) {
	program, diags := front.Parse([]byte("import Foundation"), "unit.lark")
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ast.ImportStatement); !ok {
		t.Fatalf("statement = %T, want ImportStatement", program.Statements[0])
	}
}

func TestParseRecoversAndStillReturnsAST(t *testing.T) {
	program, diags := front.Parse([]byte("let = 1\nlet ok = 2"), "unit.lark")
	if len(diags) == 0 {
		t.Fatal("want diagnostics for the malformed binding")
	}
	if program == nil || len(program.Statements) == 0 {
		t.Fatal("the AST is returned even when diagnostics were emitted")
	}
}

func TestAnalyzeAgainstBootstrappedRegistry(t *testing.T) {
	src := []byte(`
struct Point {
    var x: Int
    var y: Int
}
let p = Point(x: 1, y: 2)
let sum = p.x + p.y
`)
	program, parseDiags := front.Parse(src, "unit.lark")
	if len(parseDiags) != 0 {
		t.Fatalf("parse diagnostics: %v", parseDiags)
	}
	diags := front.Analyze(program, front.Bootstrap())
	for _, d := range diags {
		if d.Level == diagnostics.Error || d.Level == diagnostics.Fatal {
			t.Fatalf("analyze diagnostics: %v", diags)
		}
	}
}

func TestRunReportsSemanticErrors(t *testing.T) {
	_, diags := front.Run([]byte("let x = missing"), "unit.lark")
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.ErrUseOfUnresolvedIdentifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics = %v, want %s", diags, diagnostics.ErrUseOfUnresolvedIdentifier)
	}
}

func TestBootstrapSurface(t *testing.T) {
	reg := front.Bootstrap()
	for _, name := range []string{"Int", "Bool", "String", "Optional", "Array", "Dictionary"} {
		if ty, _ := reg.Global.LookupType(name); ty == nil {
			t.Errorf("bootstrap missing %s", name)
		}
	}
}
