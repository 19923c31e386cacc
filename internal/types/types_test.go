package types

import "testing"

func TestArenaDeduplicatesStructuralTypes(t *testing.T) {
	a := NewArena()
	intT := NewNominal("Int", Struct, nil, nil, nil)
	strT := NewNominal("String", Struct, nil, nil, nil)

	t1 := a.Tuple([]TupleElement{{Type: intT}, {Type: strT}})
	t2 := a.Tuple([]TupleElement{{Type: intT}, {Type: strT}})
	if t1 != t2 {
		t.Error("identical tuples must intern to one value")
	}
	t3 := a.Tuple([]TupleElement{{Label: "x", Type: intT}, {Type: strT}})
	if t1 == t3 {
		t.Error("labels are part of tuple identity")
	}

	f1 := a.Function([]Parameter{{Type: intT}}, strT, false, nil)
	f2 := a.Function([]Parameter{{Type: intT}}, strT, false, nil)
	if f1 != f2 {
		t.Error("identical function types must intern to one value")
	}
	f3 := a.Function([]Parameter{{ExternalName: "n", Type: intT}}, strT, false, nil)
	if f1 == f3 {
		t.Error("external labels are part of function type identity")
	}

	opt := NewNominal("Optional", Enum, nil, nil, &GenericDefinition{Params: []GenericTypeParam{{Name: "T", Placeholder: NewGenericParameter("T")}}})
	s1 := a.Specialize(opt, []*Type{intT})
	s2 := a.Specialize(opt, []*Type{intT})
	if s1 != s2 {
		t.Error("identical specializations must intern to one value")
	}
}

func TestNominalTypesUniqueByDeclarationSite(t *testing.T) {
	a := NewNominal("Point", Struct, nil, nil, nil)
	b := NewNominal("Point", Struct, nil, nil, nil)
	if Equals(a, b) {
		t.Error("two declarations of the same name are distinct types")
	}
	if !Equals(a, a) {
		t.Error("Compare must be reflexive")
	}
}

func TestConformsToIsTransitive(t *testing.T) {
	equatable := NewNominal("Equatable", Protocol, nil, nil, nil)
	comparable := NewNominal("Comparable", Protocol, nil, []*Type{equatable}, nil)
	intT := NewNominal("Int", Struct, nil, []*Type{comparable}, nil)

	if !intT.ConformsTo(comparable) {
		t.Error("direct conformance")
	}
	if !intT.ConformsTo(equatable) {
		t.Error("conformance through inherited protocol")
	}
	other := NewNominal("Hashable", Protocol, nil, nil, nil)
	if intT.ConformsTo(other) {
		t.Error("no declared path to Hashable")
	}
}

func TestSpecializationConformsThroughBase(t *testing.T) {
	a := NewArena()
	seq := NewNominal("SequenceType", Protocol, nil, nil, nil)
	array := NewNominal("Array", Struct, nil, []*Type{seq}, &GenericDefinition{Params: []GenericTypeParam{{Name: "Element", Placeholder: NewGenericParameter("Element")}}})
	intT := NewNominal("Int", Struct, nil, nil, nil)

	arrInt := a.Specialize(array, []*Type{intT})
	if !arrInt.ConformsTo(seq) {
		t.Error("a specialization conforms through its base's declared protocols")
	}
}

func TestIsKindOfWalksClassChain(t *testing.T) {
	base := NewNominal("Base", Class, nil, nil, nil)
	mid := NewNominal("Mid", Class, base, nil, nil)
	leaf := NewNominal("Leaf", Class, mid, nil, nil)

	if !leaf.IsKindOf(leaf) {
		t.Error("reflexive")
	}
	if !leaf.IsKindOf(base) {
		t.Error("transitive over the parent chain")
	}
	if base.IsKindOf(leaf) {
		t.Error("not symmetric")
	}
}

func TestAssignability(t *testing.T) {
	a := NewArena()
	proto := NewNominal("P", Protocol, nil, nil, nil)
	s := NewNominal("S", Struct, nil, []*Type{proto}, nil)
	intT := NewNominal("Int", Struct, nil, nil, nil)
	strT := NewNominal("String", Struct, nil, nil, nil)
	base := NewNominal("Base", Class, nil, nil, nil)
	child := NewNominal("Child", Class, base, nil, nil)

	tests := []struct {
		name string
		from *Type
		to   *Type
		want bool
	}{
		{"identity", intT, intT, true},
		{"protocol conformance", s, proto, true},
		{"no conformance", intT, proto, false},
		{"subclass", child, base, true},
		{"superclass not assignable down", base, child, false},
		{"tuple element-wise", a.Tuple([]TupleElement{{Type: child}}), a.Tuple([]TupleElement{{Type: base}}), true},
		{"tuple arity mismatch", a.Tuple([]TupleElement{{Type: intT}}), a.Tuple([]TupleElement{{Type: intT}, {Type: intT}}), false},
		{
			"function contravariant params covariant return",
			a.Function([]Parameter{{Type: base}}, child, false, nil),
			a.Function([]Parameter{{Type: child}}, base, false, nil),
			true,
		},
		{
			"function covariant params rejected",
			a.Function([]Parameter{{Type: child}}, intT, false, nil),
			a.Function([]Parameter{{Type: base}}, intT, false, nil),
			false,
		},
		{"unrelated", intT, strT, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAssignTo(tc.from, tc.to); got != tc.want {
				t.Errorf("CanAssignTo(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestAliasUnwrapsForComparison(t *testing.T) {
	intT := NewNominal("Int", Struct, nil, nil, nil)
	alias := NewAlias("MyInt", intT)
	if !Equals(alias, intT) {
		t.Error("alias compares equal to its target")
	}
	if !CanAssignTo(alias, intT) || !CanAssignTo(intT, alias) {
		t.Error("alias assignable both ways")
	}
}

func TestSubstitutionAppliesThroughStructure(t *testing.T) {
	a := NewArena()
	tParam := NewGenericParameter("T")
	def := &GenericDefinition{Params: []GenericTypeParam{{Name: "T", Placeholder: tParam}}}
	box := NewNominal("Box", Struct, nil, nil, def)
	intT := NewNominal("Int", Struct, nil, nil, nil)

	fn := a.Function([]Parameter{{Type: tParam}}, a.Tuple([]TupleElement{{Type: tParam}}), false, nil)
	sub := NewSubstitution(def, []*Type{intT})
	got := sub.Apply(a, fn)
	if got.Params[0].Type != intT {
		t.Errorf("parameter = %s, want Int", got.Params[0].Type)
	}
	if got.Return.Elements[0].Type != intT {
		t.Errorf("return element = %s, want Int", got.Return.Elements[0].Type)
	}

	spec := a.Specialize(box, []*Type{tParam})
	applied := sub.Apply(a, spec)
	if applied.Arguments[0] != intT {
		t.Errorf("specialization argument = %s, want Int", applied.Arguments[0])
	}
}

func TestOptionalDetection(t *testing.T) {
	a := NewArena()
	opt := NewNominal("Optional", Enum, nil, nil, &GenericDefinition{Params: []GenericTypeParam{{Name: "T", Placeholder: NewGenericParameter("T")}}})
	intT := NewNominal("Int", Struct, nil, nil, nil)

	optInt := a.Specialize(opt, []*Type{intT})
	inner, ok := optInt.IsOptional()
	if !ok || inner != intT {
		t.Fatalf("IsOptional = (%v, %v), want (Int, true)", inner, ok)
	}
	if got := optInt.TypeString(); got != "Int?" {
		t.Errorf("TypeString = %q, want Int?", got)
	}
	if _, ok := intT.IsOptional(); ok {
		t.Error("Int is not optional")
	}
}
