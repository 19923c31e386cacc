package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larklang/compiler/internal/types"
)

func TestBootstrapSeedsNominalTypes(t *testing.T) {
	reg := Bootstrap()

	for _, name := range []string{
		"Int8", "Int16", "Int32", "Int64", "Int",
		"UInt8", "UInt16", "UInt32", "UInt64", "UInt",
		"Float", "Double", "Bool", "String", "Character", "Void",
	} {
		ty, _ := reg.Global.LookupType(name)
		require.NotNil(t, ty, "missing built-in type %s", name)
		assert.Equal(t, types.Struct, ty.Category, "%s category", name)
	}

	for _, name := range []string{"Optional", "Array", "Dictionary", "Range"} {
		ty, _ := reg.Global.LookupType(name)
		require.NotNil(t, ty, "missing generic built-in %s", name)
		require.NotNil(t, ty.Generic, "%s must carry a generic definition", name)
	}

	opt, _ := reg.Global.LookupType("Optional")
	require.Len(t, opt.Cases, 2, "Optional is the two-case enumeration")
	assert.Equal(t, "None", opt.Cases[0].Name)
	assert.Equal(t, "Some", opt.Cases[1].Name)
	require.Len(t, opt.Cases[1].Associated, 1, "Some carries the wrapped value")
}

func TestBootstrapSeedsProtocolHierarchy(t *testing.T) {
	reg := Bootstrap()

	comparable, _ := reg.Global.LookupType("Comparable")
	equatable, _ := reg.Global.LookupType("Equatable")
	require.NotNil(t, comparable)
	require.NotNil(t, equatable)
	assert.True(t, comparable.ConformsTo(equatable), "Comparable inherits Equatable")

	intType, _ := reg.Global.LookupType("Int")
	integerType, _ := reg.Global.LookupType("IntegerType")
	intLit, _ := reg.Global.LookupType("IntegerLiteralConvertible")
	assert.True(t, intType.ConformsTo(integerType))
	assert.True(t, intType.ConformsTo(intLit), "IntegerType implies integer-literal convertibility")

	double, _ := reg.Global.LookupType("Double")
	floatLit, _ := reg.Global.LookupType("FloatLiteralConvertible")
	assert.True(t, double.ConformsTo(floatLit))
}

func TestBootstrapOperatorOverloadSets(t *testing.T) {
	reg := Bootstrap()

	plus, _ := reg.Global.Lookup("+")
	require.NotNil(t, plus)
	set, ok := plus.(*OverloadSet)
	require.True(t, ok, "+ is an overload set, got %T", plus)

	// One overload per numeric type, String concatenation, plus the
	// prefix forms: strictly more than the 12 numeric pairings.
	assert.Greater(t, len(set.Funcs), 12)

	intType, _ := reg.Global.LookupType("Int")
	var foundIntPair bool
	for _, fn := range set.Funcs {
		u := fn.Ty.Unalias()
		if len(u.Params) == 2 && types.Equals(u.Params[0].Type, intType) && types.Equals(u.Params[1].Type, intType) && types.Equals(u.Return, intType) {
			foundIntPair = true
		}
	}
	assert.True(t, foundIntPair, "(Int, Int) -> Int overload present")

	// Same-type pairings only: no (Int8, Int16) overload exists, so
	// mixed-width arithmetic is an ordinary resolution failure.
	int8T, _ := reg.Global.LookupType("Int8")
	int16T, _ := reg.Global.LookupType("Int16")
	for _, fn := range set.Funcs {
		u := fn.Ty.Unalias()
		if len(u.Params) == 2 && types.Equals(u.Params[0].Type, int8T) && types.Equals(u.Params[1].Type, int16T) {
			t.Error("found a mixed-width overload; promotion must not be automatic")
		}
	}

	bang, _ := reg.Global.Lookup("!")
	require.NotNil(t, bang, "logical not")
	and, _ := reg.Global.Lookup("&&")
	require.NotNil(t, and, "logical and")
	shift, _ := reg.Global.Lookup("<<")
	require.NotNil(t, shift, "bitwise shift")
	halfOpen, _ := reg.Global.Lookup("..<")
	require.NotNil(t, halfOpen, "half-open range operator")
}

func TestBootstrapNumericConversionMatrix(t *testing.T) {
	reg := Bootstrap()
	double, _ := reg.Global.LookupType("Double")
	intType, _ := reg.Global.LookupType("Int")

	var found bool
	for _, m := range double.Initializers {
		fn, ok := m.(*FunctionSymbol)
		if !ok {
			continue
		}
		u := fn.Ty.Unalias()
		if len(u.Params) == 1 && types.Equals(u.Params[0].Type, intType) {
			found = true
		}
	}
	assert.True(t, found, "Double(Int) conversion initializer present")
}

func TestScopeShadowingAndNamespaces(t *testing.T) {
	reg := Bootstrap()
	outer := reg.Enter(nil)
	require.True(t, outer.AddSymbol("x", NewPlaceholder("x", nil, FlagReadable, nil)))
	require.False(t, outer.AddSymbol("x", NewPlaceholder("x", nil, FlagReadable, nil)),
		"a name is unique per namespace within one scope")

	// The type namespace is independent of the value namespace.
	require.True(t, outer.AddType("x", types.NewNominal("x", types.Struct, nil, nil, nil)))

	inner := reg.Enter(nil)
	require.True(t, inner.AddSymbol("x", NewPlaceholder("x", nil, FlagReadable, nil)),
		"nested scopes shadow")
	sym, defScope := inner.Lookup("x")
	require.NotNil(t, sym)
	assert.Equal(t, inner, defScope, "innermost wins")

	reg.Leave()
	sym2, defScope2 := reg.Current().Lookup("x")
	require.NotNil(t, sym2)
	assert.Equal(t, outer, defScope2)
	reg.Leave()
}

func TestOverloadSetRejectsDuplicateSignatures(t *testing.T) {
	reg := Bootstrap()
	intType, _ := reg.Global.LookupType("Int")
	fnType := reg.Arena.Function([]types.Parameter{{Type: intType}}, intType, false, nil)

	set := NewOverloadSet("f")
	require.True(t, set.Add(NewFunctionSymbol("f", fnType, nil)))
	require.False(t, set.Add(NewFunctionSymbol("f", fnType, nil)),
		"duplicates are rejected by function-type equality")

	other := reg.Arena.Function([]types.Parameter{{Type: intType}, {Type: intType}}, intType, false, nil)
	require.True(t, set.Add(NewFunctionSymbol("f", other, nil)))
}

func TestExtensionTableOnFileScope(t *testing.T) {
	reg := Bootstrap()
	file := reg.Enter(nil)
	ext := types.NewNominal("Int", types.Extension, nil, nil, nil)
	file.RegisterExtension("Int", ext)

	inner := reg.Enter(nil)
	got := inner.GetExtensions("Int")
	require.Len(t, got, 1, "extensions visible from nested scopes")
	assert.Equal(t, ext, got[0])
	assert.Empty(t, inner.GetExtensions("String"))
	reg.Leave()
	reg.Leave()
}
