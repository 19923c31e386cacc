package ast

// ImportKind distinguishes plain imports from future submodule forms; the
// base grammar only has Default, kept as an enum so a driver-level module
// resolver (out of core scope) has somewhere to hang richer import forms.
type ImportKind int

const (
	ImportDefault ImportKind = iota
)

// ImportStatement is `import Path`.
type ImportStatement struct {
	declBase
	Path string
	Kind ImportKind
}

func (n *ImportStatement) Accept(v Visitor) { v.VisitImportStatement(n) }

// GenericConstraintKind distinguishes the two constraint forms a generic
// parameter may carry.
type GenericConstraintKind int

const (
	ConstraintConformance GenericConstraintKind = iota // T : Protocol
	ConstraintSameType                                  // T == Other
)

// GenericConstraint is one constraint clause on a generic parameter list,
// written either inline (`<T: P>`) or in a trailing `where` clause.
type GenericConstraint struct {
	ParamName string
	Kind      GenericConstraintKind
	Bound     TypeRef
}

// GenericParameter is one entry of a generic parameter list.
type GenericParameter struct {
	Name        string
	Constraints []GenericConstraint
}

// GenericParameterList is the auxiliary node type carrying a declaration's
// `<T, U: P>` clause plus any trailing `where` clauses.
type GenericParameterList struct {
	baseNode
	Params []GenericParameter
}

func (n *GenericParameterList) Accept(v Visitor) { v.VisitGenericParameterList(n) }

// Binding is one name (or pattern) of a let/var group, e.g. the `a` and `b`
// of `let a = 1, b = 2`.
type Binding struct {
	Name           string  // "" when Pattern is set
	Pattern        Pattern // non-nil for destructuring bindings
	TypeAnnotation TypeRef // optional
	Value          Expression // optional (may be nil for a protocol requirement or a deferred stored property)
}

// ConstantDeclaration is a `let` group: one or more immutable bindings.
type ConstantDeclaration struct {
	declBase
	Bindings []Binding
	IsMember bool // true inside a type body (stored/computed property)
	IsStatic bool
}

func (n *ConstantDeclaration) Accept(v Visitor) { v.VisitConstantDeclaration(n) }

// VariableDeclaration is a `var` group: one or more mutable bindings.
// Computed properties (get/set) live on Bindings[i].Value == nil plus
// Getter/Setter populated per-binding; kept as parallel slices indexed
// like Bindings to avoid a separate per-property node for the common
// stored-property case.
type VariableDeclaration struct {
	declBase
	Bindings []Binding
	Getters  []*BlockStatement // len(Bindings); nil entry => stored property
	Setters  []*BlockStatement // len(Bindings); nil entry => no custom setter
	SetterName string          // name bound inside Setters[i], default "newValue"
	IsMember bool
	IsStatic bool
}

func (n *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(n) }

// TypeAliasDeclaration is `typealias Name<Generics> = T`.
type TypeAliasDeclaration struct {
	declBase
	Name     string
	Generics *GenericParameterList // optional
	Target   TypeRef
}

func (n *TypeAliasDeclaration) Accept(v Visitor) { v.VisitTypeAliasDeclaration(n) }

// Parameter is one formal parameter of a function/initializer/subscript.
type Parameter struct {
	ExternalName string // "" means positional-only (no label required at call site); "_" also recorded literally
	LocalName    string
	TypeAnnotation TypeRef
	Default      Expression // optional
	Variadic     bool
	InOut        bool
}

// FunctionDeclaration is `func name<Generics>(params) -> Ret { body }`.
// Body is nil for a protocol requirement (no default implementation).
type FunctionDeclaration struct {
	declBase
	Name       string
	Generics   *GenericParameterList // optional
	Parameters []Parameter
	ReturnType TypeRef // optional, defaults to Void
	Body       *BlockStatement // nil => protocol requirement / extern
	IsMember   bool
	IsStatic   bool
	Throws     bool
}

func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }

// EnumCase is one `case name(AssociatedTypes...)` or `case name = rawValue`
// of an enumeration.
type EnumCase struct {
	Name        string
	Associated  []Parameter // associated-value payload, may be empty
	RawValue    Expression  // optional literal raw value
}

// EnumDeclaration is `enum Name<Generics>: RawOrProtocols { cases; members }`.
type EnumDeclaration struct {
	declBase
	Name       string
	Generics   *GenericParameterList // optional
	RawType    TypeRef               // optional raw-value backing type
	Protocols  []*NamedTypeRef
	Cases      []EnumCase
	Members    []Declaration // nested functions, computed properties, etc.
}

func (n *EnumDeclaration) Accept(v Visitor) { v.VisitEnumDeclaration(n) }

// StructDeclaration is `struct Name<Generics>: Protocols { members }`
// (value semantics).
type StructDeclaration struct {
	declBase
	Name      string
	Generics  *GenericParameterList // optional
	Protocols []*NamedTypeRef
	Members   []Declaration
}

func (n *StructDeclaration) Accept(v Visitor) { v.VisitStructDeclaration(n) }

// ClassDeclaration is `class Name<Generics>: Super, Protocols { members }`
// (reference semantics; no initializer is ever synthesized for a class).
type ClassDeclaration struct {
	declBase
	Name       string
	Generics   *GenericParameterList // optional
	Superclass *NamedTypeRef // optional; must be first in the clause
	Protocols  []*NamedTypeRef
	Members   []Declaration
}

func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }

// AssociatedTypeDeclaration is an associated-type requirement inside a
// protocol body, written as a bare `typealias Name` with no target.
type AssociatedTypeDeclaration struct {
	declBase
	Name  string
	Bound TypeRef // optional constraint
}

func (n *AssociatedTypeDeclaration) Accept(v Visitor) { v.VisitAssociatedTypeDeclaration(n) }

// ProtocolDeclaration is `protocol Name: Inherited { requirements }`.
type ProtocolDeclaration struct {
	declBase
	Name      string
	Inherited []*NamedTypeRef
	Members   []Declaration // FunctionDeclaration (Body==nil), VariableDeclaration (computed-only), AssociatedTypeDeclaration
}

func (n *ProtocolDeclaration) Accept(v Visitor) { v.VisitProtocolDeclaration(n) }

// ExtensionDeclaration is `extension Name<Generics>: Protocols { members }`.
type ExtensionDeclaration struct {
	declBase
	Name      string
	Generics  *GenericParameterList // optional, for constraining an extension of a generic type
	Protocols []*NamedTypeRef       // added conformances
	Members   []Declaration
}

func (n *ExtensionDeclaration) Accept(v Visitor) { v.VisitExtensionDeclaration(n) }

// InitializerKind distinguishes designated vs convenience initializers.
type InitializerKind int

const (
	InitDesignated InitializerKind = iota
	InitConvenience
	InitFailable // init?
)

// InitializerDeclaration is `init<Generics>(params) { body }`.
type InitializerDeclaration struct {
	declBase
	Generics   *GenericParameterList // optional
	Parameters []Parameter
	Kind       InitializerKind
	Body       *BlockStatement // nil => protocol requirement
}

func (n *InitializerDeclaration) Accept(v Visitor) { v.VisitInitializerDeclaration(n) }

// DeinitializerDeclaration is `deinit { body }`.
type DeinitializerDeclaration struct {
	declBase
	Body *BlockStatement
}

func (n *DeinitializerDeclaration) Accept(v Visitor) { v.VisitDeinitializerDeclaration(n) }

// SubscriptDeclaration is `subscript(params) -> Ret { get set }`.
type SubscriptDeclaration struct {
	declBase
	Parameters []Parameter
	ReturnType TypeRef
	Getter     *BlockStatement
	Setter     *BlockStatement
	SetterName string
}

func (n *SubscriptDeclaration) Accept(v Visitor) { v.VisitSubscriptDeclaration(n) }

// OperatorAssociativity is the grouping rule for repeated infix operators
// at the same precedence.
type OperatorAssociativity int

const (
	AssocNone OperatorAssociativity = iota
	AssocLeft
	AssocRight
)

// OperatorFixity restates token.Fixity at the declaration level (prefix,
// postfix, infix; "binary" in token terms is "infix" at the declaration
// level since only infix operators carry precedence/associativity).
type OperatorFixity int

const (
	OpFixityPrefix OperatorFixity = iota
	OpFixityPostfix
	OpFixityInfix
)

// OperatorDeclaration is `operator <fixity> <op> { associativity <x>
// precedence <n> }`. The parser
// installs it into the registry immediately upon parsing this node, before
// continuing.
type OperatorDeclaration struct {
	declBase
	Name          string
	Fixity        OperatorFixity
	Associativity OperatorAssociativity // only meaningful for OpFixityInfix
	Precedence    int                   // only meaningful for OpFixityInfix
	HasAssociativityClause bool
	HasPrecedenceClause    bool
}

func (n *OperatorDeclaration) Accept(v Visitor) { v.VisitOperatorDeclaration(n) }
