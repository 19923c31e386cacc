// Package symbols implements the symbol registry and scope forest:
// two-axis lookup (value namespace, type namespace), shadowing through
// nested scopes, extension lookup on a file scope, and the global-scope
// bootstrap that seeds primitives and built-in operator overload sets.
//
// This file holds the Symbol variants, scope.go the scope forest,
// registry.go the registry/arena pairing, bootstrap.go the global scope.
package symbols

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/types"
)

// Flags is the state bitset carried by a Placeholder symbol.
type Flags uint16

const (
	FlagReadable Flags = 1 << iota
	FlagWritable
	FlagInitialized
	FlagInitializing
	FlagMember
	FlagStatic
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Symbol is one entry in a scope's value namespace: a nominal type used
// as a value, a placeholder (variable/constant/property/parameter), a
// function, or an overload set.
type Symbol interface {
	Name() string
	// MemberName/MemberType satisfy types.Member so a symbol can be
	// recorded directly in a Type's member tables.
	MemberName() string
	MemberType() *types.Type
}

// TypeSymbol is a nominal type appearing in the value namespace, e.g. a
// bare `Int` used as a callee for `Int(x)`.
type TypeSymbol struct {
	name string
	Ty   *types.Type
}

func NewTypeSymbol(name string, ty *types.Type) *TypeSymbol {
	return &TypeSymbol{name: name, Ty: ty}
}

func (s *TypeSymbol) Name() string            { return s.name }
func (s *TypeSymbol) MemberName() string      { return s.name }
func (s *TypeSymbol) MemberType() *types.Type { return s.Ty }

// Placeholder is a variable, constant, property, or parameter.
type Placeholder struct {
	name  string
	Ty    *types.Type
	Flags Flags
	Decl  ast.Node // declaration site, for diagnostics
}

func NewPlaceholder(name string, ty *types.Type, flags Flags, decl ast.Node) *Placeholder {
	return &Placeholder{name: name, Ty: ty, Flags: flags, Decl: decl}
}

func (s *Placeholder) Name() string            { return s.name }
func (s *Placeholder) MemberName() string      { return s.name }
func (s *Placeholder) MemberType() *types.Type { return s.Ty }

func (s *Placeholder) SetFlag(f Flags)   { s.Flags |= f }
func (s *Placeholder) ClearFlag(f Flags) { s.Flags &^= f }

// FunctionSymbol is one function under a name: its function type plus an
// optional body reference for lazy analysis.
type FunctionSymbol struct {
	name      string
	Ty        *types.Type // Function category
	Body      ast.Node    // nil for built-ins and protocol requirements
	DeclOrder int         // position among same-named declarations, breaks resolution ties
}

func NewFunctionSymbol(name string, ty *types.Type, body ast.Node) *FunctionSymbol {
	return &FunctionSymbol{name: name, Ty: ty, Body: body}
}

func (s *FunctionSymbol) Name() string            { return s.name }
func (s *FunctionSymbol) MemberName() string      { return s.name }
func (s *FunctionSymbol) MemberType() *types.Type { return s.Ty }

// OverloadName satisfies the ast.ResolvedOverload annotation contract.
func (s *FunctionSymbol) OverloadName() string { return s.name }

// OverloadSet groups FunctionSymbols sharing a name. Duplicates are
// rejected by function-type equality.
type OverloadSet struct {
	name  string
	Funcs []*FunctionSymbol
}

func NewOverloadSet(name string) *OverloadSet { return &OverloadSet{name: name} }

func (s *OverloadSet) Name() string       { return s.name }
func (s *OverloadSet) MemberName() string { return s.name }

// MemberType of an overload set is the sole function's type when the set
// is a singleton, nil otherwise: a multi-entry set has no one type until
// overload resolution picks a winner.
func (s *OverloadSet) MemberType() *types.Type {
	if len(s.Funcs) == 1 {
		return s.Funcs[0].Ty
	}
	return nil
}

// Add appends f, reporting false when an entry with an equal function
// type already exists.
func (s *OverloadSet) Add(f *FunctionSymbol) bool {
	for _, existing := range s.Funcs {
		if types.Equals(existing.Ty, f.Ty) {
			return false
		}
	}
	f.DeclOrder = len(s.Funcs)
	s.Funcs = append(s.Funcs, f)
	return true
}
