package symbols

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/types"
)

// Registry pairs the scope forest with the type arena. It tracks the current
// scope for the analyzer's stack-scoped push/pop discipline:
// every Enter is paired with a Leave guard restoring the previous scope
// on any exit path.
type Registry struct {
	Arena   *types.Arena
	Global  *Scope
	current *Scope
}

// NewRegistry creates an empty registry whose global scope holds nothing;
// Bootstrap is the usual entry point.
func NewRegistry() *Registry {
	global := NewScope(nil, nil)
	return &Registry{Arena: types.NewArena(), Global: global, current: global}
}

// Current returns the innermost live scope.
func (r *Registry) Current() *Scope { return r.current }

// Enter pushes a fresh scope owned by ownerNode and returns it.
func (r *Registry) Enter(ownerNode ast.Node) *Scope {
	r.current = NewScope(r.current, ownerNode)
	return r.current
}

// Leave pops the current scope. The global scope is never popped.
func (r *Registry) Leave() {
	if r.current.parent != nil {
		r.current = r.current.parent
	}
}

// EnterExisting re-enters a previously built scope (the analyzer re-enters
// the file scope when draining lazy declarations). The returned
// restore function reinstates the scope that was current.
func (r *Registry) EnterExisting(s *Scope) (restore func()) {
	prev := r.current
	r.current = s
	return func() { r.current = prev }
}
