// Package types holds the materialized type representation the analyzer
// produces and consumes:
// value objects describing named types, tuples, functions, specializations
// of generic types, aliases, protocol compositions, and placeholders.
// Structural types (tuples, functions, specializations, compositions) are
// deduplicated through an Arena owned by the symbol registry; nominal
// types are unique by declaration site.
package types

import "strings"

// Category tags a Type value.
type Category int

const (
	Struct Category = iota
	Class
	Enum
	Protocol
	Tuple
	Function
	Specialized
	Alias
	Placeholder
	GenericParameter
	ProtocolComposition
	Extension
)

func (c Category) String() string {
	switch c {
	case Struct:
		return "struct"
	case Class:
		return "class"
	case Enum:
		return "enum"
	case Protocol:
		return "protocol"
	case Tuple:
		return "tuple"
	case Function:
		return "function"
	case Specialized:
		return "specialized"
	case Alias:
		return "alias"
	case Placeholder:
		return "placeholder"
	case GenericParameter:
		return "generic-parameter"
	case ProtocolComposition:
		return "protocol-composition"
	case Extension:
		return "extension"
	default:
		return "unknown"
	}
}

// Member is one declared member of a nominal type: the value-namespace
// symbol recorded under a name. Implemented by the symbols package's
// Symbol variants; typed as a narrow interface here so types carries no
// dependency on symbols (nodes and types reference each other through
// handles).
type Member interface {
	MemberName() string
	MemberType() *Type
}

// Parameter is one formal parameter of a function type. External labels
// live on the function type because overload resolution scores them.
type Parameter struct {
	ExternalName string
	Type         *Type
	HasDefault   bool
	InOut        bool
}

// TupleElement is one element of a tuple type, optionally labeled.
type TupleElement struct {
	Label string
	Type  *Type
}

// GenericTypeParam is one entry of a generic definition: (name,
// placeholder, constraints).
type GenericTypeParam struct {
	Name        string
	Placeholder *Type // GenericParameter category
	Constraints []*Type
}

// GenericDefinition is the ordered parameter list of a generic type or
// function; a specialization binds it to concrete arguments.
type GenericDefinition struct {
	Params []GenericTypeParam
}

// EnumCaseInfo records one case of an enumeration and its associated
// value payload types.
type EnumCaseInfo struct {
	Name       string
	Associated []*Type
}

var nextTypeID int

// Type is one type value. Which fields apply depends on
// Category; unused fields stay zero.
type Type struct {
	Category Category
	Name     string
	id       int

	Parent    *Type   // class superclass; extended type for Extension
	Protocols []*Type // declared conformances; composed protocols for ProtocolComposition

	members      map[string]Member
	statics      map[string]Member
	Initializers []Member
	Cases        []EnumCaseInfo

	Elements []TupleElement // Tuple

	Params   []Parameter // Function
	Return   *Type       // Function
	Variadic bool        // Function

	Generic *GenericDefinition // generic definition on a nominal type or function

	Inner     *Type   // Specialized base, Alias target
	Arguments []*Type // Specialized arguments

	associated map[string]*Type // associated-type table (protocols, nominal typealiases)
}

// NewNominal creates a nominal type (struct, class, enum, protocol,
// extension). Nominal types are unique by declaration site: two calls
// with the same name yield distinct types.
func NewNominal(name string, cat Category, parent *Type, protocols []*Type, generic *GenericDefinition) *Type {
	nextTypeID++
	return &Type{
		Category:  cat,
		Name:      name,
		id:        nextTypeID,
		Parent:    parent,
		Protocols: protocols,
		Generic:   generic,
		members:   map[string]Member{},
		statics:   map[string]Member{},
	}
}

// NewAlias creates a named alias for target.
func NewAlias(name string, target *Type) *Type {
	nextTypeID++
	return &Type{Category: Alias, Name: name, id: nextTypeID, Inner: target}
}

// NewPlaceholder creates the sentinel type used when resolution fails, so
// a single missing symbol does not cascade.
func NewPlaceholder() *Type {
	nextTypeID++
	return &Type{Category: Placeholder, id: nextTypeID}
}

// NewGenericParameter creates the placeholder type standing for one
// generic parameter inside its definition's scope.
func NewGenericParameter(name string) *Type {
	nextTypeID++
	return &Type{Category: GenericParameter, Name: name, id: nextTypeID}
}

// AddMember records an instance member; later additions under the same
// name overwrite, which callers prevent via their own redeclaration
// checks.
func (t *Type) AddMember(name string, m Member) {
	if t.members == nil {
		t.members = map[string]Member{}
	}
	t.members[name] = m
}

// AddStaticMember records a static member.
func (t *Type) AddStaticMember(name string, m Member) {
	if t.statics == nil {
		t.statics = map[string]Member{}
	}
	t.statics[name] = m
}

// GetDeclaredMember looks up an instance member declared directly on t
//; parent-chain and extension search is the analyzer's job.
func (t *Type) GetDeclaredMember(name string) Member {
	if t.members == nil {
		return nil
	}
	return t.members[name]
}

// GetDeclaredStaticMember looks up a static member declared directly on t.
func (t *Type) GetDeclaredStaticMember(name string) Member {
	if t.statics == nil {
		return nil
	}
	return t.statics[name]
}

// DeclaredMembers exposes the member table for conformance sweeps and the
// memberwise-initializer synthesis; the map is the live table, not a copy.
func (t *Type) DeclaredMembers() map[string]Member { return t.members }

// DeclaredStaticMembers exposes the static member table.
func (t *Type) DeclaredStaticMembers() map[string]Member { return t.statics }

// SetAssociatedType records name → target in the associated-type table.
func (t *Type) SetAssociatedType(name string, target *Type) {
	if t.associated == nil {
		t.associated = map[string]*Type{}
	}
	t.associated[name] = target
}

// GetAssociatedType resolves an associated type or nested type alias,
// unaliasing the result.
func (t *Type) GetAssociatedType(name string) *Type {
	if t.associated == nil {
		return nil
	}
	return t.associated[name].Unalias()
}

// AssociatedTypes exposes the associated-type table for conformance checks.
func (t *Type) AssociatedTypes() map[string]*Type { return t.associated }

// Unalias follows Alias links to the underlying type.
func (t *Type) Unalias() *Type {
	for t != nil && t.Category == Alias {
		t = t.Inner
	}
	return t
}

// Base returns the nominal base of a specialization, or t itself.
func (t *Type) Base() *Type {
	u := t.Unalias()
	if u != nil && u.Category == Specialized {
		return u.Inner
	}
	return u
}

// IsOptional reports whether t is a specialization of the built-in
// Optional enumeration, returning the wrapped type when so.
func (t *Type) IsOptional() (*Type, bool) {
	u := t.Unalias()
	if u == nil || u.Category != Specialized || len(u.Arguments) != 1 {
		return nil, false
	}
	if u.Inner == nil || u.Inner.Name != "Optional" {
		return nil, false
	}
	return u.Arguments[0], true
}

// TypeString renders the canonical spelling used in diagnostics and test
// fixtures. It also implements the ast.Annotation interface.
func (t *Type) TypeString() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Category {
	case Tuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			if e.Label != "" {
				parts[i] = e.Label + ": " + e.Type.TypeString()
			} else {
				parts[i] = e.Type.TypeString()
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			s := p.Type.TypeString()
			if p.ExternalName != "" {
				s = p.ExternalName + ": " + s
			}
			if p.InOut {
				s = "inout " + s
			}
			parts[i] = s
		}
		variadic := ""
		if t.Variadic {
			variadic = "..."
		}
		return "(" + strings.Join(parts, ", ") + variadic + ") -> " + t.Return.TypeString()
	case Specialized:
		if inner, ok := t.IsOptional(); ok {
			return inner.TypeString() + "?"
		}
		parts := make([]string, len(t.Arguments))
		for i, a := range t.Arguments {
			parts[i] = a.TypeString()
		}
		return t.Inner.Name + "<" + strings.Join(parts, ", ") + ">"
	case ProtocolComposition:
		parts := make([]string, len(t.Protocols))
		for i, p := range t.Protocols {
			parts[i] = p.TypeString()
		}
		return strings.Join(parts, " & ")
	case Placeholder:
		return "<error>"
	default:
		return t.Name
	}
}

func (t *Type) String() string { return t.TypeString() }
