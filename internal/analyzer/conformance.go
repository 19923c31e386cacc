package analyzer

import (
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/symbols"
	"github.com/larklang/compiler/internal/types"
)

// checkConformances is pass 3: for every
// nominal type declaring a protocol conformance, each requirement
// (method, property, associated type) must be satisfied, extensions
// included. Method requirements compare after substitution: the
// protocol's associated types in the requirement's type are rewritten
// with the conforming type's witnesses, so the witness match is
// structural rather than nominal.
func (a *Analyzer) checkConformances() {
	for _, dt := range a.declared {
		t := dt.ty
		switch t.Category {
		case types.Struct, types.Class, types.Enum:
		default:
			continue
		}
		seen := map[*types.Type]bool{}
		for _, p := range t.Protocols {
			a.checkProtocolRequirements(t, p, dt.span, seen)
		}
	}
}

func (a *Analyzer) checkProtocolRequirements(t, proto *types.Type, at source.Span, seen map[*types.Type]bool) {
	proto = proto.Unalias()
	if proto == nil || proto.Category != types.Protocol || seen[proto] {
		return
	}
	seen[proto] = true

	// Bind the protocol's associated-type requirements to the witnesses
	// the conforming type supplies, so method-requirement signatures
	// compare after substitution.
	sub := types.Substitution{}
	for name, req := range proto.AssociatedTypes() {
		if req == nil || req.Category != types.GenericParameter {
			continue
		}
		witness := t.GetAssociatedType(name)
		if witness == nil {
			a.sink.Error(diagnostics.ErrTypeDoesNotConformUnimplementedType, at, t.Name, proto.Name, name)
			continue
		}
		sub[req] = witness
	}

	for name, req := range proto.DeclaredMembers() {
		switch r := req.(type) {
		case *symbols.FunctionSymbol:
			a.checkMethodRequirement(t, proto, name, r, sub, at)
		case *symbols.OverloadSet:
			for _, fn := range r.Funcs {
				a.checkMethodRequirement(t, proto, name, fn, sub, at)
			}
		case *symbols.Placeholder:
			if m, _ := a.getMemberFromType(t, name, memberFilter{recursive: true, includeExtensions: true}); m == nil {
				a.sink.Error(diagnostics.ErrTypeDoesNotConformUnimplementedProp, at, t.Name, proto.Name, name)
			}
		}
	}

	for _, inherited := range proto.Protocols {
		a.checkProtocolRequirements(t, inherited, at, seen)
	}
}

func (a *Analyzer) checkMethodRequirement(t, proto *types.Type, name string, req *symbols.FunctionSymbol, sub types.Substitution, at source.Span) {
	want := sub.Apply(a.reg.Arena, req.Ty).Unalias()
	for _, impl := range a.memberCandidates(t, name, false) {
		if a.satisfiesRequirement(impl.Ty.Unalias(), want) {
			return
		}
	}
	a.sink.Error(diagnostics.ErrTypeDoesNotConformUnimplementedFunc, at, t.Name, proto.Name, name)
}

// satisfiesRequirement accepts an implementation whose parameters and
// return structurally match the (substituted) requirement; unresolved
// placeholders on either side match permissively so earlier errors don't
// cascade into spurious conformance diagnostics.
func (a *Analyzer) satisfiesRequirement(impl, want *types.Type) bool {
	if impl == nil || want == nil {
		return false
	}
	if impl.Category != types.Function || want.Category != types.Function {
		return false
	}
	if len(impl.Params) != len(want.Params) {
		return false
	}
	for i := range impl.Params {
		if !typesCompatible(impl.Params[i].Type, want.Params[i].Type) {
			return false
		}
	}
	return typesCompatible(impl.Return, want.Return)
}

func typesCompatible(a, b *types.Type) bool {
	au, bu := a.Unalias(), b.Unalias()
	if au == nil || bu == nil {
		return au == bu
	}
	if au.Category == types.Placeholder || bu.Category == types.Placeholder {
		return true
	}
	// An unbound associated type or generic parameter on the requirement
	// side matches any witness.
	if bu.Category == types.GenericParameter || au.Category == types.GenericParameter {
		return true
	}
	return types.Equals(au, bu)
}
