package symbols

import "github.com/larklang/compiler/internal/types"

// Bootstrap builds a registry whose global scope is seeded with the
// built-in nominal types, the generic built-ins, the standard protocol
// hierarchy, and the operator overload sets over all built-in numeric
// types. The seed is hard-coded; a prelude-sourced variant would have to
// produce exactly this symbol surface (frontcheck's bootstrap-dump exists
// to diff one against the other).
func Bootstrap() *Registry {
	r := NewRegistry()
	b := &bootstrapper{r: r, g: r.Global}
	b.seedProtocols()
	b.seedPrimitives()
	b.seedGenerics()
	b.seedInitializers()
	b.seedOperators()
	return r
}

type bootstrapper struct {
	r *Registry
	g *Scope

	protocols map[string]*types.Type
	integers  []*types.Type
	floats    []*types.Type

	intType    *types.Type
	doubleType *types.Type
	boolType   *types.Type
	stringType *types.Type
	charType   *types.Type
	voidType   *types.Type
	rangeType  *types.Type
}

func (b *bootstrapper) protocol(name string, inherited ...string) *types.Type {
	var parents []*types.Type
	for _, n := range inherited {
		parents = append(parents, b.protocols[n])
	}
	p := types.NewNominal(name, types.Protocol, nil, parents, nil)
	b.protocols[name] = p
	b.g.AddType(name, p)
	return p
}

func (b *bootstrapper) seedProtocols() {
	b.protocols = map[string]*types.Type{}
	b.protocol("Equatable")
	b.protocol("Comparable", "Equatable")
	b.protocol("Hashable", "Equatable")
	b.protocol("IntegerLiteralConvertible")
	b.protocol("FloatLiteralConvertible")
	b.protocol("StringLiteralConvertible")
	b.protocol("BooleanLiteralConvertible")
	b.protocol("NilLiteralConvertible")
	b.protocol("ArrayLiteralConvertible")
	b.protocol("DictionaryLiteralConvertible")
	b.protocol("IntegerType", "Equatable", "Comparable", "Hashable", "IntegerLiteralConvertible")
	b.protocol("FloatingPointType", "Equatable", "Comparable", "IntegerLiteralConvertible", "FloatLiteralConvertible")
	b.protocol("SequenceType")
	b.protocol("CollectionType", "SequenceType")
}

func (b *bootstrapper) nominal(name string, cat types.Category, protocolNames ...string) *types.Type {
	var protos []*types.Type
	for _, n := range protocolNames {
		protos = append(protos, b.protocols[n])
	}
	t := types.NewNominal(name, cat, nil, protos, nil)
	b.g.AddType(name, t)
	b.g.AddSymbol(name, NewTypeSymbol(name, t))
	return t
}

func (b *bootstrapper) seedPrimitives() {
	for _, name := range []string{"Int8", "Int16", "Int32", "Int64", "Int", "UInt8", "UInt16", "UInt32", "UInt64", "UInt"} {
		t := b.nominal(name, types.Struct, "IntegerType")
		b.integers = append(b.integers, t)
		if name == "Int" {
			b.intType = t
		}
	}
	for _, name := range []string{"Float", "Double"} {
		t := b.nominal(name, types.Struct, "FloatingPointType")
		b.floats = append(b.floats, t)
		if name == "Double" {
			b.doubleType = t
		}
	}
	b.boolType = b.nominal("Bool", types.Struct, "Equatable", "Hashable", "BooleanLiteralConvertible")
	b.stringType = b.nominal("String", types.Struct, "Equatable", "Comparable", "Hashable", "StringLiteralConvertible", "SequenceType")
	b.charType = b.nominal("Character", types.Struct, "Equatable", "Comparable", "Hashable")
	b.voidType = b.nominal("Void", types.Struct)

	b.stringType.AddMember("count", NewPlaceholder("count", b.intType, FlagReadable|FlagMember|FlagInitialized, nil))
	b.stringType.AddMember("isEmpty", NewPlaceholder("isEmpty", b.boolType, FlagReadable|FlagMember|FlagInitialized, nil))
}

func genericDef(names ...string) *types.GenericDefinition {
	def := &types.GenericDefinition{}
	for _, n := range names {
		def.Params = append(def.Params, types.GenericTypeParam{Name: n, Placeholder: types.NewGenericParameter(n)})
	}
	return def
}

func (b *bootstrapper) seedGenerics() {
	optional := types.NewNominal("Optional", types.Enum, nil, []*types.Type{b.protocols["NilLiteralConvertible"]}, genericDef("T"))
	tParam := optional.Generic.Params[0].Placeholder
	optional.Cases = []types.EnumCaseInfo{
		{Name: "None"},
		{Name: "Some", Associated: []*types.Type{tParam}},
	}
	b.g.AddType("Optional", optional)
	b.g.AddSymbol("Optional", NewTypeSymbol("Optional", optional))

	array := types.NewNominal("Array", types.Struct, nil, []*types.Type{b.protocols["ArrayLiteralConvertible"], b.protocols["CollectionType"]}, genericDef("Element"))
	array.AddMember("count", NewPlaceholder("count", b.intType, FlagReadable|FlagMember|FlagInitialized, nil))
	array.AddMember("isEmpty", NewPlaceholder("isEmpty", b.boolType, FlagReadable|FlagMember|FlagInitialized, nil))
	b.g.AddType("Array", array)
	b.g.AddSymbol("Array", NewTypeSymbol("Array", array))

	dict := types.NewNominal("Dictionary", types.Struct, nil, []*types.Type{b.protocols["DictionaryLiteralConvertible"], b.protocols["CollectionType"]}, genericDef("Key", "Value"))
	dict.AddMember("count", NewPlaceholder("count", b.intType, FlagReadable|FlagMember|FlagInitialized, nil))
	b.g.AddType("Dictionary", dict)
	b.g.AddSymbol("Dictionary", NewTypeSymbol("Dictionary", dict))

	b.rangeType = types.NewNominal("Range", types.Struct, nil, []*types.Type{b.protocols["SequenceType"]}, genericDef("Element"))
	b.g.AddType("Range", b.rangeType)
	b.g.AddSymbol("Range", NewTypeSymbol("Range", b.rangeType))
}

// seedInitializers populates the numeric conversion matrix: one
// initializer per (destination, source) pairing of the built-in numeric
// types, so `Double(i)` resolves as an ordinary overloaded call. Width
// promotion is never automatic; a conversion is always an explicit
// initializer call.
func (b *bootstrapper) seedInitializers() {
	numerics := append(append([]*types.Type{}, b.integers...), b.floats...)
	for _, dst := range numerics {
		for _, src := range numerics {
			init := NewFunctionSymbol("init", b.r.Arena.Function(
				[]types.Parameter{{Type: src}}, dst, false, nil), nil)
			dst.Initializers = append(dst.Initializers, init)
		}
	}
	b.stringType.Initializers = append(b.stringType.Initializers,
		NewFunctionSymbol("init", b.r.Arena.Function([]types.Parameter{{Type: b.charType}}, b.stringType, false, nil), nil))
}

func (b *bootstrapper) addOp(name string, params []*types.Type, ret *types.Type) {
	tp := make([]types.Parameter, len(params))
	for i, p := range params {
		tp[i] = types.Parameter{Type: p}
	}
	fn := NewFunctionSymbol(name, b.r.Arena.Function(tp, ret, false, nil), nil)
	b.g.AddSymbol(name, fn)
}

// seedOperators generates one function symbol per operator and numeric
// type combination: same-type pairings only, so `Int8 + Int16`
// has no built-in overload and fails ordinary overload resolution.
func (b *bootstrapper) seedOperators() {
	numerics := append(append([]*types.Type{}, b.integers...), b.floats...)

	for _, t := range numerics {
		for _, op := range []string{"+", "-", "*", "/"} {
			b.addOp(op, []*types.Type{t, t}, t)
		}
	}
	for _, t := range b.integers {
		b.addOp("%", []*types.Type{t, t}, t)
		for _, op := range []string{"&", "|", "^", "<<", ">>"} {
			b.addOp(op, []*types.Type{t, t}, t)
		}
		b.addOp("~", []*types.Type{t}, t)
		for _, op := range []string{"..<", "..."} {
			b.addOp(op, []*types.Type{t, t}, b.r.Arena.Specialize(b.rangeType, []*types.Type{t}))
		}
	}

	comparable := append(append([]*types.Type{}, numerics...), b.stringType, b.charType)
	for _, t := range comparable {
		for _, op := range []string{"<", "<=", ">", ">="} {
			b.addOp(op, []*types.Type{t, t}, b.boolType)
		}
	}
	equatable := append(append([]*types.Type{}, comparable...), b.boolType)
	for _, t := range equatable {
		b.addOp("==", []*types.Type{t, t}, b.boolType)
		b.addOp("!=", []*types.Type{t, t}, b.boolType)
	}

	b.addOp("+", []*types.Type{b.stringType, b.stringType}, b.stringType)

	signed := []*types.Type{}
	for _, t := range b.integers {
		if t.Name[0] != 'U' {
			signed = append(signed, t)
		}
	}
	for _, t := range append(signed, b.floats...) {
		b.addOp("-", []*types.Type{t}, t)
		b.addOp("+", []*types.Type{t}, t)
	}

	b.addOp("&&", []*types.Type{b.boolType, b.boolType}, b.boolType)
	b.addOp("||", []*types.Type{b.boolType, b.boolType}, b.boolType)
	b.addOp("!", []*types.Type{b.boolType}, b.boolType)
}
