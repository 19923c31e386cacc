package symbols

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/types"
)

// Scope is one node of the scope forest: two maps (values, types), an
// immutable parent pointer, the AST node that owns it, and (on file and
// global scopes only) an extension table keyed by extended type name.
type Scope struct {
	parent *Scope
	owner  ast.Node

	values  map[string]Symbol
	typesNS map[string]*types.Type

	extensions map[string][]*types.Type
}

func NewScope(parent *Scope, owner ast.Node) *Scope {
	return &Scope{
		parent:  parent,
		owner:   owner,
		values:  map[string]Symbol{},
		typesNS: map[string]*types.Type{},
	}
}

func (s *Scope) Parent() *Scope  { return s.parent }
func (s *Scope) Owner() ast.Node { return s.owner }

// AddSymbol registers sym in the value namespace. A name is unique per
// namespace within one scope; a second registration
// returns false and the caller diagnoses the redeclaration. Functions are
// the exception: a FunctionSymbol landing on an existing function or
// overload set folds into an OverloadSet, rejecting only duplicate
// signatures.
func (s *Scope) AddSymbol(name string, sym Symbol) bool {
	existing, ok := s.values[name]
	if !ok {
		s.values[name] = sym
		return true
	}
	fn, fnOK := sym.(*FunctionSymbol)
	if !fnOK {
		return false
	}
	switch prev := existing.(type) {
	case *FunctionSymbol:
		set := NewOverloadSet(name)
		set.Add(prev)
		if !set.Add(fn) {
			return false
		}
		s.values[name] = set
		return true
	case *OverloadSet:
		return prev.Add(fn)
	default:
		return false
	}
}

// AddType registers t in the type namespace; false on redeclaration.
func (s *Scope) AddType(name string, t *types.Type) bool {
	if _, ok := s.typesNS[name]; ok {
		return false
	}
	s.typesNS[name] = t
	return true
}

// Lookup resolves name in the value namespace, walking the parent chain;
// it returns the defining scope alongside the symbol.
func (s *Scope) Lookup(name string) (Symbol, *Scope) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.values[name]; ok {
			return sym, cur
		}
	}
	return nil, nil
}

// LookupLocal resolves name in this scope only, no parent walk.
func (s *Scope) LookupLocal(name string) Symbol { return s.values[name] }

// LookupType resolves name in the type namespace up the parent chain.
func (s *Scope) LookupType(name string) (*types.Type, *Scope) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.typesNS[name]; ok {
			return t, cur
		}
	}
	return nil, nil
}

// LookupTypeLocal resolves name in this scope's type namespace only.
func (s *Scope) LookupTypeLocal(name string) *types.Type { return s.typesNS[name] }

// RegisterExtension records an Extension type under the extended type's
// name. Callers register on the file scope; the table is
// created on first use.
func (s *Scope) RegisterExtension(typeName string, ext *types.Type) {
	if s.extensions == nil {
		s.extensions = map[string][]*types.Type{}
	}
	s.extensions[typeName] = append(s.extensions[typeName], ext)
}

// GetExtensions returns every extension registered for typeName visible
// from this scope.
func (s *Scope) GetExtensions(typeName string) []*types.Type {
	var out []*types.Type
	for cur := s; cur != nil; cur = cur.parent {
		if cur.extensions != nil {
			out = append(out, cur.extensions[typeName]...)
		}
	}
	return out
}

// Symbols exposes the value namespace for bootstrap verification tests.
func (s *Scope) Symbols() map[string]Symbol { return s.values }

// Types exposes the type namespace for bootstrap verification tests.
func (s *Scope) Types() map[string]*types.Type { return s.typesNS }
