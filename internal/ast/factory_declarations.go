package ast

import "github.com/larklang/compiler/internal/source"

func (f *NodeFactory) ImportStatement(span source.Span, path string) *ImportStatement {
	return &ImportStatement{declBase: declBase{stmtBase{base(span)}}, Path: path, Kind: ImportDefault}
}

func (f *NodeFactory) GenericParameterList(span source.Span, params []GenericParameter) *GenericParameterList {
	return &GenericParameterList{baseNode: base(span), Params: params}
}

func bindingChildren(bs []Binding) []Node {
	var cs []Node
	for _, b := range bs {
		if b.Pattern != nil {
			cs = append(cs, b.Pattern)
		}
		if b.TypeAnnotation != nil {
			cs = append(cs, b.TypeAnnotation)
		}
		if b.Value != nil {
			cs = append(cs, b.Value)
		}
	}
	return cs
}

func (f *NodeFactory) ConstantDeclaration(span source.Span, bindings []Binding, isMember, isStatic bool) *ConstantDeclaration {
	return &ConstantDeclaration{
		declBase: declBase{stmtBase{base(span, bindingChildren(bindings)...)}},
		Bindings: bindings, IsMember: isMember, IsStatic: isStatic,
	}
}

func (f *NodeFactory) VariableDeclaration(span source.Span, bindings []Binding, getters, setters []*BlockStatement, setterName string, isMember, isStatic bool) *VariableDeclaration {
	cs := bindingChildren(bindings)
	for _, g := range getters {
		if g != nil {
			cs = append(cs, g)
		}
	}
	for _, s := range setters {
		if s != nil {
			cs = append(cs, s)
		}
	}
	return &VariableDeclaration{
		declBase: declBase{stmtBase{base(span, cs...)}},
		Bindings: bindings, Getters: getters, Setters: setters, SetterName: setterName,
		IsMember: isMember, IsStatic: isStatic,
	}
}

func (f *NodeFactory) TypeAliasDeclaration(span source.Span, name string, generics *GenericParameterList, target TypeRef) *TypeAliasDeclaration {
	var cs []Node
	if generics != nil {
		cs = append(cs, generics)
	}
	cs = append(cs, target)
	return &TypeAliasDeclaration{declBase: declBase{stmtBase{base(span, cs...)}}, Name: name, Generics: generics, Target: target}
}

func paramChildren(params []Parameter) []Node {
	var cs []Node
	for _, p := range params {
		if p.TypeAnnotation != nil {
			cs = append(cs, p.TypeAnnotation)
		}
		if p.Default != nil {
			cs = append(cs, p.Default)
		}
	}
	return cs
}

func (f *NodeFactory) FunctionDeclaration(span source.Span, name string, generics *GenericParameterList, params []Parameter, ret TypeRef, body *BlockStatement, isMember, isStatic, throws bool) *FunctionDeclaration {
	var cs []Node
	if generics != nil {
		cs = append(cs, generics)
	}
	cs = append(cs, paramChildren(params)...)
	if ret != nil {
		cs = append(cs, ret)
	}
	if body != nil {
		cs = append(cs, body)
	}
	return &FunctionDeclaration{
		declBase: declBase{stmtBase{base(span, cs...)}},
		Name: name, Generics: generics, Parameters: params, ReturnType: ret, Body: body,
		IsMember: isMember, IsStatic: isStatic, Throws: throws,
	}
}

func (f *NodeFactory) EnumDeclaration(span source.Span, name string, generics *GenericParameterList, rawType TypeRef, protocols []*NamedTypeRef, cases []EnumCase, members []Declaration) *EnumDeclaration {
	var cs []Node
	if generics != nil {
		cs = append(cs, generics)
	}
	if rawType != nil {
		cs = append(cs, rawType)
	}
	for _, p := range protocols {
		cs = append(cs, p)
	}
	for _, c := range cases {
		cs = append(cs, paramChildren(c.Associated)...)
		if c.RawValue != nil {
			cs = append(cs, c.RawValue)
		}
	}
	for _, m := range members {
		cs = append(cs, m)
	}
	return &EnumDeclaration{
		declBase: declBase{stmtBase{base(span, cs...)}},
		Name: name, Generics: generics, RawType: rawType, Protocols: protocols, Cases: cases, Members: members,
	}
}

func declGroupChildren(generics *GenericParameterList, protocols []*NamedTypeRef, members []Declaration) []Node {
	var cs []Node
	if generics != nil {
		cs = append(cs, generics)
	}
	for _, p := range protocols {
		cs = append(cs, p)
	}
	for _, m := range members {
		cs = append(cs, m)
	}
	return cs
}

func (f *NodeFactory) StructDeclaration(span source.Span, name string, generics *GenericParameterList, protocols []*NamedTypeRef, members []Declaration) *StructDeclaration {
	return &StructDeclaration{
		declBase: declBase{stmtBase{base(span, declGroupChildren(generics, protocols, members)...)}},
		Name: name, Generics: generics, Protocols: protocols, Members: members,
	}
}

func (f *NodeFactory) ClassDeclaration(span source.Span, name string, generics *GenericParameterList, super *NamedTypeRef, protocols []*NamedTypeRef, members []Declaration) *ClassDeclaration {
	cs := declGroupChildren(generics, protocols, members)
	if super != nil {
		cs = append([]Node{super}, cs...)
	}
	return &ClassDeclaration{
		declBase: declBase{stmtBase{base(span, cs...)}},
		Name: name, Generics: generics, Superclass: super, Protocols: protocols, Members: members,
	}
}

func (f *NodeFactory) AssociatedTypeDeclaration(span source.Span, name string, bound TypeRef) *AssociatedTypeDeclaration {
	var cs []Node
	if bound != nil {
		cs = append(cs, bound)
	}
	return &AssociatedTypeDeclaration{declBase: declBase{stmtBase{base(span, cs...)}}, Name: name, Bound: bound}
}

func (f *NodeFactory) ProtocolDeclaration(span source.Span, name string, inherited []*NamedTypeRef, members []Declaration) *ProtocolDeclaration {
	var cs []Node
	for _, p := range inherited {
		cs = append(cs, p)
	}
	for _, m := range members {
		cs = append(cs, m)
	}
	return &ProtocolDeclaration{declBase: declBase{stmtBase{base(span, cs...)}}, Name: name, Inherited: inherited, Members: members}
}

func (f *NodeFactory) ExtensionDeclaration(span source.Span, name string, generics *GenericParameterList, protocols []*NamedTypeRef, members []Declaration) *ExtensionDeclaration {
	return &ExtensionDeclaration{
		declBase: declBase{stmtBase{base(span, declGroupChildren(generics, protocols, members)...)}},
		Name: name, Generics: generics, Protocols: protocols, Members: members,
	}
}

func (f *NodeFactory) InitializerDeclaration(span source.Span, generics *GenericParameterList, params []Parameter, kind InitializerKind, body *BlockStatement) *InitializerDeclaration {
	var cs []Node
	if generics != nil {
		cs = append(cs, generics)
	}
	cs = append(cs, paramChildren(params)...)
	if body != nil {
		cs = append(cs, body)
	}
	return &InitializerDeclaration{declBase: declBase{stmtBase{base(span, cs...)}}, Generics: generics, Parameters: params, Kind: kind, Body: body}
}

func (f *NodeFactory) DeinitializerDeclaration(span source.Span, body *BlockStatement) *DeinitializerDeclaration {
	return &DeinitializerDeclaration{declBase: declBase{stmtBase{base(span, body)}}, Body: body}
}

func (f *NodeFactory) SubscriptDeclaration(span source.Span, params []Parameter, ret TypeRef, getter, setter *BlockStatement, setterName string) *SubscriptDeclaration {
	cs := paramChildren(params)
	cs = append(cs, ret)
	if getter != nil {
		cs = append(cs, getter)
	}
	if setter != nil {
		cs = append(cs, setter)
	}
	return &SubscriptDeclaration{
		declBase: declBase{stmtBase{base(span, cs...)}},
		Parameters: params, ReturnType: ret, Getter: getter, Setter: setter, SetterName: setterName,
	}
}

func (f *NodeFactory) OperatorDeclaration(span source.Span, name string, fixity OperatorFixity, assoc OperatorAssociativity, prec int, hasAssoc, hasPrec bool) *OperatorDeclaration {
	return &OperatorDeclaration{
		declBase: declBase{stmtBase{base(span)}},
		Name: name, Fixity: fixity, Associativity: assoc, Precedence: prec,
		HasAssociativityClause: hasAssoc, HasPrecedenceClause: hasPrec,
	}
}

func (f *NodeFactory) Program(span source.Span, file string, stmts []Statement) *Program {
	cs := make([]Node, len(stmts))
	for i, s := range stmts {
		cs[i] = s
	}
	return &Program{baseNode: base(span, cs...), File: file, Statements: stmts}
}
