package types

// CanAssignTo reports whether a value of t may bind to a location of
// type u: identity; conformance
// when the destination is a protocol (or composition); class subtyping;
// tuple element-wise; function contravariance on parameters and
// covariance on return; specialization argument-wise.
func CanAssignTo(t, u *Type) bool {
	t, u = t.Unalias(), u.Unalias()
	if t == nil || u == nil {
		return false
	}
	// A placeholder sentinel assigns anywhere so one unresolved name does
	// not cascade into follow-on diagnostics.
	if t.Category == Placeholder || u.Category == Placeholder {
		return true
	}
	if Equals(t, u) {
		return true
	}
	switch u.Category {
	case Protocol:
		return t.ConformsTo(u)
	case ProtocolComposition:
		for _, p := range u.Protocols {
			if !t.ConformsTo(p) {
				return false
			}
		}
		return true
	case GenericParameter:
		// Inside a generic definition an argument fits a parameter when it
		// satisfies the parameter's recorded constraints; the placeholder
		// itself carries none, so accept and let conformance sweeps judge.
		return true
	}
	switch t.Category {
	case Class:
		return t.IsKindOf(u)
	case Tuple:
		if u.Category != Tuple || len(t.Elements) != len(u.Elements) {
			return false
		}
		for i := range t.Elements {
			if !CanAssignTo(t.Elements[i].Type, u.Elements[i].Type) {
				return false
			}
		}
		return true
	case Function:
		if u.Category != Function || len(t.Params) != len(u.Params) || t.Variadic != u.Variadic {
			return false
		}
		for i := range t.Params {
			if !CanAssignTo(u.Params[i].Type, t.Params[i].Type) {
				return false
			}
		}
		return CanAssignTo(t.Return, u.Return)
	case Specialized:
		if u.Category != Specialized || !Equals(t.Inner, u.Inner) || len(t.Arguments) != len(u.Arguments) {
			return false
		}
		for i := range t.Arguments {
			if !CanAssignTo(t.Arguments[i], u.Arguments[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsKindOf is reflexive and transitive over the class parent chain.
func (t *Type) IsKindOf(other *Type) bool {
	t, other = t.Unalias(), other.Unalias()
	for c := t; c != nil; c = c.Parent {
		if Equals(c, other) {
			return true
		}
		if c.Category != Class {
			break
		}
	}
	return false
}
