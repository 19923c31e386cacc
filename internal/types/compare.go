package types

import "strings"

// Equals reports structural equality. Structural categories are interned
// by the Arena so pointer identity usually answers first; the structural
// walk remains for types built outside a shared arena (tests, substituted
// copies).
func Equals(a, b *Type) bool { return Compare(a, b) == 0 }

// Compare is the total order over types behind Equals, which detects
// duplicate overloads: first by category, then structurally.
func Compare(a, b *Type) int {
	a, b = a.Unalias(), b.Unalias()
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	switch a.Category {
	case Tuple:
		if c := compareInt(len(a.Elements), len(b.Elements)); c != 0 {
			return c
		}
		for i := range a.Elements {
			if c := strings.Compare(a.Elements[i].Label, b.Elements[i].Label); c != 0 {
				return c
			}
			if c := Compare(a.Elements[i].Type, b.Elements[i].Type); c != 0 {
				return c
			}
		}
		return 0
	case Function:
		if c := compareInt(len(a.Params), len(b.Params)); c != 0 {
			return c
		}
		for i := range a.Params {
			if c := strings.Compare(a.Params[i].ExternalName, b.Params[i].ExternalName); c != 0 {
				return c
			}
			if c := Compare(a.Params[i].Type, b.Params[i].Type); c != 0 {
				return c
			}
		}
		if c := compareBool(a.Variadic, b.Variadic); c != 0 {
			return c
		}
		return Compare(a.Return, b.Return)
	case Specialized:
		if c := Compare(a.Inner, b.Inner); c != 0 {
			return c
		}
		if c := compareInt(len(a.Arguments), len(b.Arguments)); c != 0 {
			return c
		}
		for i := range a.Arguments {
			if c := Compare(a.Arguments[i], b.Arguments[i]); c != 0 {
				return c
			}
		}
		return 0
	case ProtocolComposition:
		if c := compareInt(len(a.Protocols), len(b.Protocols)); c != 0 {
			return c
		}
		for i := range a.Protocols {
			if c := Compare(a.Protocols[i], b.Protocols[i]); c != 0 {
				return c
			}
		}
		return 0
	default:
		// Nominal categories (and placeholders) are unique by declaration
		// site: order by name, then by creation order.
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return compareInt(a.id, b.id)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
