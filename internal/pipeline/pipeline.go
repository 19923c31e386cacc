// Package pipeline composes the front end's stages behind one context
// object: each stage reads and extends the shared Context, and the runner
// keeps going on errors so every stage's diagnostics accumulate.
package pipeline

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/config"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/parser"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
)

// Context carries one translation unit through the stages.
type Context struct {
	Buffer    source.Buffer
	Sink      *diagnostics.Sink
	AstRoot   *ast.Program
	Registry  *symbols.Registry
	Operators *parser.Registry
}

func NewContext(buf source.Buffer) *Context {
	return &Context{Buffer: buf, Sink: diagnostics.NewSink()}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs processors in order. Stages after a Fatal record are
// skipped only under StrictAbortOnFatal; diagnostics always accumulate.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

func (p *Pipeline) Run(ctx *Context) *Context {
	for _, proc := range p.processors {
		if config.StrictAbortOnFatal && ctx.Sink.Aborted() {
			break
		}
		ctx = proc.Process(ctx)
	}
	return ctx
}
