package prettyprinter_test

import (
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/parser"
	"github.com/larklang/compiler/internal/prettyprinter"
	"github.com/larklang/compiler/internal/source"
)

func parse(t *testing.T, name, input string) (*ast.Program, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	p := parser.New(source.Buffer{FileName: name, Text: input}, sink, nil)
	return p.ParseProgram(), sink
}

// TestReprintRoundTrip checks the parser round-trip property: for every
// accepted input, serializing the AST back to source and reparsing
// produces a structurally equal AST, witnessed by an identical reprint;
// the serialization is idempotent under a second application.
func TestReprintRoundTrip(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "roundtrip.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range archive.Files {
		t.Run(file.Name, func(t *testing.T) {
			program, sink := parse(t, file.Name, string(file.Data))
			if sink.HasErrors() {
				t.Fatalf("fixture does not parse: %v", sink.Diagnostics())
			}
			first := prettyprinter.Print(program)

			reparsed, sink2 := parse(t, file.Name, first)
			if sink2.HasErrors() {
				t.Fatalf("reprint does not parse: %v\n--- reprint ---\n%s", sink2.Diagnostics(), first)
			}
			second := prettyprinter.Print(reparsed)
			if first != second {
				t.Errorf("reprint is not a fixed point\n--- first ---\n%s\n--- second ---\n%s", first, second)
			}
		})
	}
}
