package types

import (
	"strconv"
	"strings"
)

// Arena interns structural types so tuples, functions, specializations,
// and protocol compositions are deduplicated; it is owned by
// the symbol registry so handle lifetimes match the registry's.
type Arena struct {
	interned map[string]*Type
}

func NewArena() *Arena {
	return &Arena{interned: map[string]*Type{}}
}

// key renders an identity string: nominal types key by declaration
// identity, structural types by their shape.
func (t *Type) key() string {
	if t == nil {
		return "_"
	}
	switch t.Category {
	case Tuple:
		var b strings.Builder
		b.WriteString("t(")
		for _, e := range t.Elements {
			b.WriteString(e.Label)
			b.WriteByte(':')
			b.WriteString(e.Type.key())
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return b.String()
	case Function:
		var b strings.Builder
		b.WriteString("f(")
		for _, p := range t.Params {
			if p.InOut {
				b.WriteByte('&')
			}
			b.WriteString(p.ExternalName)
			b.WriteByte(':')
			b.WriteString(p.Type.key())
			if p.HasDefault {
				b.WriteByte('=')
			}
			b.WriteByte(',')
		}
		if t.Variadic {
			b.WriteString("...")
		}
		b.WriteString(")->")
		b.WriteString(t.Return.key())
		return b.String()
	case Specialized:
		var b strings.Builder
		b.WriteString("s(")
		b.WriteString(t.Inner.key())
		b.WriteByte('<')
		for _, a := range t.Arguments {
			b.WriteString(a.key())
			b.WriteByte(',')
		}
		b.WriteString(">)")
		return b.String()
	case ProtocolComposition:
		var b strings.Builder
		b.WriteString("c(")
		for _, p := range t.Protocols {
			b.WriteString(p.key())
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "#" + strconv.Itoa(t.id)
	}
}

func (a *Arena) intern(t *Type) *Type {
	k := t.key()
	if existing, ok := a.interned[k]; ok {
		return existing
	}
	a.interned[k] = t
	return t
}

// Tuple returns the interned tuple type over elements.
func (a *Arena) Tuple(elements []TupleElement) *Type {
	nextTypeID++
	return a.intern(&Type{Category: Tuple, id: nextTypeID, Elements: elements})
}

// Function returns the interned function type.
func (a *Arena) Function(params []Parameter, ret *Type, variadic bool, generic *GenericDefinition) *Type {
	nextTypeID++
	return a.intern(&Type{Category: Function, id: nextTypeID, Params: params, Return: ret, Variadic: variadic, Generic: generic})
}

// Specialize binds a generic nominal type to concrete arguments. Callers
// are responsible for arity checking (the analyzer diagnoses mismatches
// before reaching here).
func (a *Arena) Specialize(base *Type, args []*Type) *Type {
	nextTypeID++
	return a.intern(&Type{Category: Specialized, Name: base.Name, id: nextTypeID, Inner: base, Arguments: args})
}

// Composition returns the interned protocol composition over protocols,
// order-preserving (two spellings with different order are distinct
// spellings of assignability-equivalent types; keeping source order keeps
// diagnostics readable).
func (a *Arena) Composition(protocols []*Type) *Type {
	nextTypeID++
	return a.intern(&Type{Category: ProtocolComposition, id: nextTypeID, Protocols: protocols})
}
