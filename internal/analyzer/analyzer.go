// Package analyzer implements the multi-pass semantic analyzer: a
// declaration/symbol-resolution pass with lazy body deferral, a
// type-inference pass threading contextual types, and a conformance-check
// sweep.
package analyzer

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/config"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// lazyEntry is one deferred body analysis, keyed by declared name in the
// lazyDeclarations table.
type lazyEntry struct {
	name string
	run  func()
}

type Analyzer struct {
	reg  *symbols.Registry
	sink *diagnostics.Sink
	f    *ast.NodeFactory

	fileScope *symbols.Scope

	lazy     map[string][]lazyEntry
	lazyKeys []string // drain order: first-deferred first
	visiting map[string]bool

	// declared collects nominal types with their declaration sites for
	// the conformance sweep.
	declared []declaredType

	declTypes   map[ast.Declaration]*types.Type
	storedFields map[*types.Type][]storedField

	currentType *types.Type // enclosing nominal type during member analysis
	currentFunc *funcContext
	tracer      *tracerStack

	depth int
}

type declaredType struct {
	ty   *types.Type
	span source.Span
}

type funcContext struct {
	returnType    *types.Type
	inInitializer bool
	isStatic      bool
}

func New(reg *symbols.Registry, sink *diagnostics.Sink) *Analyzer {
	return &Analyzer{
		reg:          reg,
		sink:         sink,
		f:            ast.NewNodeFactory(),
		lazy:         map[string][]lazyEntry{},
		visiting:     map[string]bool{},
		tracer:       newTracerStack(),
		declTypes:    map[ast.Declaration]*types.Type{},
		storedFields: map[*types.Type][]storedField{},
	}
}

// Analyze runs all passes over one translation unit, writing type and
// symbol annotations onto the AST and diagnostics into the sink.
func (a *Analyzer) Analyze(program *ast.Program) {
	a.fileScope = a.reg.Enter(program)
	defer a.reg.Leave()

	// Pass 1: declarations and symbol resolution. Type names register
	// eagerly first so forward references resolve, then headers (member
	// and function signatures); bodies defer into the lazyDeclarations
	// table.
	for _, s := range program.Statements {
		a.declareTypeHeader(s)
	}
	for _, s := range program.Statements {
		a.declareHeader(s)
	}

	// Pass 2: type inference over the top-level statements. Expression
	// walks that reference a still-deferred name demand it from the table
	// mid-pass.
	for i := range program.Statements {
		a.analyzeStatement(&program.Statements[i])
	}

	// Drain remaining deferred bodies. Entries demanded early by name
	// have already been popped; the rest run in deferral order.
	a.drainLazy()

	// Pass 3: conformance sweep.
	a.checkConformances()
}

// deferLazy registers a lazy body analysis under name.
func (a *Analyzer) deferLazy(name string, run func()) {
	if _, ok := a.lazy[name]; !ok {
		a.lazyKeys = append(a.lazyKeys, name)
	}
	a.lazy[name] = append(a.lazy[name], lazyEntry{name: name, run: run})
}

// demandLazy pops and runs every entry for name, re-entering the file
// scope.
// A cycle (A demanding B demanding A) is cut by the visiting set and
// diagnosed rather than recursed forever.
func (a *Analyzer) demandLazy(name string, at source.Span) {
	if a.visiting[name] {
		a.sink.Error(diagnostics.ErrInvalidRedeclaration, at, name)
		return
	}
	entries, ok := a.lazy[name]
	if !ok || len(entries) == 0 {
		return
	}
	a.visiting[name] = true
	delete(a.lazy, name)
	restore := a.reg.EnterExisting(a.fileScope)
	for _, e := range entries {
		e.run()
	}
	restore()
	delete(a.visiting, name)
}

func (a *Analyzer) drainLazy() {
	for len(a.lazy) > 0 {
		var name string
		found := false
		for _, k := range a.lazyKeys {
			if _, ok := a.lazy[k]; ok {
				name = k
				found = true
				break
			}
		}
		if !found {
			for k := range a.lazy {
				name = k
				break
			}
		}
		a.demandLazy(name, source.Span{})
	}
}

// guardDepth bounds analyzer recursion the same way the parser bounds
// parse recursion.
func (a *Analyzer) guardDepth(at source.Span) bool {
	a.depth++
	if a.depth > config.MaxRecursionDepth {
		a.depth--
		a.sink.Error(diagnostics.ErrRecursionLimitExceeded, at)
		return false
	}
	return true
}

func (a *Analyzer) unguard() { a.depth-- }

// enterScope pushes a scope and returns the paired guard; callers defer
// it so the previous scope is restored on every exit path.
func (a *Analyzer) enterScope(owner ast.Node) func() {
	a.reg.Enter(owner)
	return func() { a.reg.Leave() }
}

func (a *Analyzer) scope() *symbols.Scope { return a.reg.Current() }

// lookupType resolves a type name from the current scope, demanding lazy
// declarations on a miss before giving up.
func (a *Analyzer) lookupType(name string, at source.Span) *types.Type {
	if t, _ := a.scope().LookupType(name); t != nil {
		return t
	}
	a.demandLazy(name, at)
	if t, _ := a.scope().LookupType(name); t != nil {
		return t
	}
	return nil
}

// lookupSymbol resolves a value name, demanding lazy declarations on a
// miss.
func (a *Analyzer) lookupSymbol(name string, at source.Span) (symbols.Symbol, *symbols.Scope) {
	if sym, sc := a.scope().Lookup(name); sym != nil {
		return sym, sc
	}
	a.demandLazy(name, at)
	return a.scope().Lookup(name)
}

// placeholderType is the sentinel returned after a resolution failure so
// one missing symbol does not cascade.
func (a *Analyzer) placeholderType() *types.Type { return types.NewPlaceholder() }

// builtin fetches a bootstrap type by name; missing entries (a registry
// built without Bootstrap) degrade to the sentinel.
func (a *Analyzer) builtin(name string) *types.Type {
	if t, _ := a.reg.Global.LookupType(name); t != nil {
		return t
	}
	return a.placeholderType()
}

// optionalOf wraps t in the built-in Optional enumeration.
func (a *Analyzer) optionalOf(t *types.Type) *types.Type {
	opt := a.builtin("Optional")
	if opt.Category == types.Placeholder {
		return opt
	}
	return a.reg.Arena.Specialize(opt, []*types.Type{t})
}
