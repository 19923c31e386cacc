// Package front is the public surface of the compiler front end: Parse
// turns a source buffer into an AST plus diagnostics, Analyze runs the
// semantic passes against a symbol registry, and
// Bootstrap builds a registry seeded with the built-in types and
// operator overload sets. Nothing here throws across the API boundary;
// failures arrive as diagnostic records.
package front

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/pipeline"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
)

// Parse lexes and parses one translation unit. The AST is returned even
// when diagnostics were emitted; error recovery leaves placeholder nodes
// behind rather than aborting.
func Parse(src []byte, fileName string) (*ast.Program, []diagnostics.Diagnostic) {
	ctx := pipeline.NewContext(source.NewBuffer(fileName, src))
	ctx = pipeline.New(&pipeline.ParserProcessor{}).Run(ctx)
	return ctx.AstRoot, ctx.Sink.Diagnostics()
}

// Analyze runs symbol resolution, type inference, and the conformance
// sweep over a parsed program, annotating its nodes in place. The
// registry is mutated: the unit's declarations land in a file scope
// under the registry's global scope.
func Analyze(program *ast.Program, registry *symbols.Registry) []diagnostics.Diagnostic {
	ctx := pipeline.NewContext(source.Buffer{FileName: program.File})
	ctx.AstRoot = program
	ctx.Registry = registry
	ctx = pipeline.New(&pipeline.AnalyzerProcessor{}).Run(ctx)
	return ctx.Sink.Diagnostics()
}

// Bootstrap returns a registry whose global scope holds the primitive
// types, built-in protocols, and operator overload sets.
func Bootstrap() *symbols.Registry {
	return symbols.Bootstrap()
}

// Run is the one-call convenience the CLI driver uses: parse then
// analyze with a fresh bootstrapped registry.
func Run(src []byte, fileName string) (*ast.Program, []diagnostics.Diagnostic) {
	ctx := pipeline.NewContext(source.NewBuffer(fileName, src))
	ctx = pipeline.New(&pipeline.ParserProcessor{}, &pipeline.AnalyzerProcessor{}).Run(ctx)
	return ctx.AstRoot, ctx.Sink.Diagnostics()
}
