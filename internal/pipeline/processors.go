package pipeline

import (
	"github.com/larklang/compiler/internal/analyzer"
	"github.com/larklang/compiler/internal/parser"
	"github.com/larklang/compiler/internal/symbols"
)

// ParserProcessor lexes and parses the buffer into Context.AstRoot,
// leaving the operator registry (built-ins plus any user declarations
// encountered) on the context for inspection.
type ParserProcessor struct {
	// Operators, when set, pre-seeds the registry so a driver can thread
	// user operators across units it chooses to treat as one program.
	Operators *parser.Registry
}

func (pp *ParserProcessor) Process(ctx *Context) *Context {
	ops := pp.Operators
	if ops == nil {
		ops = parser.NewRegistry()
	}
	p := parser.New(ctx.Buffer, ctx.Sink, ops)
	ctx.AstRoot = p.ParseProgram()
	ctx.Operators = p.Operators()
	return ctx
}

// AnalyzerProcessor runs the semantic passes against Context.Registry,
// bootstrapping a fresh registry when the driver supplied none.
type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *Context) *Context {
	if ctx.AstRoot == nil {
		return ctx
	}
	if ctx.Registry == nil {
		ctx.Registry = symbols.Bootstrap()
	}
	a := analyzer.New(ctx.Registry, ctx.Sink)
	a.Analyze(ctx.AstRoot)
	return ctx
}
