package types

// ConformsTo reports declared conformance: transitive over declared
// protocols and their inherited protocols; a specialization conforms
// through its base's declared protocols. Whether the
// conformance is actually *satisfied* (every requirement implemented) is
// the analyzer's conformance sweep; this answers the declaration-level
// question only.
func (t *Type) ConformsTo(proto *Type) bool {
	t, proto = t.Unalias(), proto.Unalias()
	if t == nil || proto == nil {
		return false
	}
	if t.Category == Specialized {
		t = t.Inner
	}
	if t.Category == Protocol && Equals(t, proto) {
		return true
	}
	seen := map[*Type]bool{}
	for c := t; c != nil; c = c.Parent {
		if conformsDeclared(c, proto, seen) {
			return true
		}
		if c.Category != Class {
			break
		}
	}
	return false
}

func conformsDeclared(t, proto *Type, seen map[*Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true
	for _, p := range t.Protocols {
		p = p.Unalias()
		if Equals(p, proto) {
			return true
		}
		if conformsDeclared(p, proto, seen) {
			return true
		}
	}
	return false
}

// Substitution maps generic-parameter placeholders to concrete types. The
// analyzer builds one from a specialization's arguments before checking
// members or protocol witnesses against it.
type Substitution map[*Type]*Type

// NewSubstitution pairs a generic definition's placeholders with the
// argument vector; args shorter than the definition leave the remaining
// placeholders unmapped.
func NewSubstitution(def *GenericDefinition, args []*Type) Substitution {
	s := Substitution{}
	if def == nil {
		return s
	}
	for i, p := range def.Params {
		if i < len(args) {
			s[p.Placeholder] = args[i]
		}
	}
	return s
}

// Apply rewrites t with the substitution, interning any structural types
// it rebuilds through the arena.
func (s Substitution) Apply(a *Arena, t *Type) *Type {
	if t == nil || len(s) == 0 {
		return t
	}
	if r, ok := s[t]; ok {
		return r
	}
	switch t.Category {
	case Alias:
		return s.Apply(a, t.Inner)
	case Tuple:
		elems := make([]TupleElement, len(t.Elements))
		changed := false
		for i, e := range t.Elements {
			elems[i] = TupleElement{Label: e.Label, Type: s.Apply(a, e.Type)}
			changed = changed || elems[i].Type != e.Type
		}
		if !changed {
			return t
		}
		return a.Tuple(elems)
	case Function:
		params := make([]Parameter, len(t.Params))
		changed := false
		for i, p := range t.Params {
			params[i] = Parameter{ExternalName: p.ExternalName, Type: s.Apply(a, p.Type), HasDefault: p.HasDefault, InOut: p.InOut}
			changed = changed || params[i].Type != p.Type
		}
		ret := s.Apply(a, t.Return)
		if !changed && ret == t.Return {
			return t
		}
		return a.Function(params, ret, t.Variadic, t.Generic)
	case Specialized:
		args := make([]*Type, len(t.Arguments))
		changed := false
		for i, arg := range t.Arguments {
			args[i] = s.Apply(a, arg)
			changed = changed || args[i] != arg
		}
		if !changed {
			return t
		}
		return a.Specialize(t.Inner, args)
	case ProtocolComposition:
		protos := make([]*Type, len(t.Protocols))
		changed := false
		for i, p := range t.Protocols {
			protos[i] = s.Apply(a, p)
			changed = changed || protos[i] != p
		}
		if !changed {
			return t
		}
		return a.Composition(protos)
	default:
		return t
	}
}
