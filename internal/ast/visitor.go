package ast

// Visitor provides one method per node variant; no runtime type queries
// beyond the tag are needed anywhere else in the core.
type Visitor interface {
	VisitProgram(n *Program)

	// Expressions
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitFloatLiteral(n *FloatLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitInterpolatedStringLiteral(n *InterpolatedStringLiteral)
	VisitArrayLiteral(n *ArrayLiteral)
	VisitDictionaryLiteral(n *DictionaryLiteral)
	VisitTupleLiteral(n *TupleLiteral)
	VisitClosureLiteral(n *ClosureLiteral)
	VisitIdentifierExpression(n *IdentifierExpression)
	VisitSelfExpression(n *SelfExpression)
	VisitDynamicTypeExpression(n *DynamicTypeExpression)
	VisitMemberAccessExpression(n *MemberAccessExpression)
	VisitInitializerReferenceExpression(n *InitializerReferenceExpression)
	VisitSubscriptExpression(n *SubscriptExpression)
	VisitCallExpression(n *CallExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitBinaryExpression(n *BinaryExpression)
	VisitConditionalExpression(n *ConditionalExpression)
	VisitAssignmentExpression(n *AssignmentExpression)
	VisitTypeCheckExpression(n *TypeCheckExpression)
	VisitTypeCastExpression(n *TypeCastExpression)
	VisitParenthesizedExpression(n *ParenthesizedExpression)
	VisitForcedUnwrapExpression(n *ForcedUnwrapExpression)
	VisitOptionalChainingExpression(n *OptionalChainingExpression)
	VisitInOutExpression(n *InOutExpression)
	VisitImplicitSomeExpression(n *ImplicitSomeExpression)

	// Statements
	VisitBlockStatement(n *BlockStatement)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitIfStatement(n *IfStatement)
	VisitGuardStatement(n *GuardStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitRepeatStatement(n *RepeatStatement)
	VisitForStatement(n *ForStatement)
	VisitForInStatement(n *ForInStatement)
	VisitSwitchStatement(n *SwitchStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitContinueStatement(n *ContinueStatement)
	VisitFallthroughStatement(n *FallthroughStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitLabeledStatement(n *LabeledStatement)

	// Patterns
	VisitIdentifierPattern(n *IdentifierPattern)
	VisitWildcardPattern(n *WildcardPattern)
	VisitTypedPattern(n *TypedPattern)
	VisitTuplePattern(n *TuplePattern)
	VisitValueBindingPattern(n *ValueBindingPattern)
	VisitEnumCasePattern(n *EnumCasePattern)
	VisitExpressionPattern(n *ExpressionPattern)

	// Type references
	VisitNamedTypeRef(n *NamedTypeRef)
	VisitTupleTypeRef(n *TupleTypeRef)
	VisitArrayTypeRef(n *ArrayTypeRef)
	VisitDictionaryTypeRef(n *DictionaryTypeRef)
	VisitFunctionTypeRef(n *FunctionTypeRef)
	VisitOptionalTypeRef(n *OptionalTypeRef)
	VisitImplicitlyUnwrappedOptionalTypeRef(n *ImplicitlyUnwrappedOptionalTypeRef)
	VisitProtocolCompositionTypeRef(n *ProtocolCompositionTypeRef)

	// Declarations
	VisitImportStatement(n *ImportStatement)
	VisitConstantDeclaration(n *ConstantDeclaration)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitTypeAliasDeclaration(n *TypeAliasDeclaration)
	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitEnumDeclaration(n *EnumDeclaration)
	VisitStructDeclaration(n *StructDeclaration)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitAssociatedTypeDeclaration(n *AssociatedTypeDeclaration)
	VisitProtocolDeclaration(n *ProtocolDeclaration)
	VisitExtensionDeclaration(n *ExtensionDeclaration)
	VisitInitializerDeclaration(n *InitializerDeclaration)
	VisitDeinitializerDeclaration(n *DeinitializerDeclaration)
	VisitSubscriptDeclaration(n *SubscriptDeclaration)
	VisitOperatorDeclaration(n *OperatorDeclaration)

	// Auxiliary
	VisitGenericParameterList(n *GenericParameterList)
}

// BaseVisitor implements Visitor with no-op bodies so callers can embed it
// and override only the variants they care about, the way a one-off AST
// walk (the initialization tracer, say) typically only touches a handful
// of node kinds.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(n *Program) {}

func (BaseVisitor) VisitIntegerLiteral(n *IntegerLiteral)                 {}
func (BaseVisitor) VisitFloatLiteral(n *FloatLiteral)                     {}
func (BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral)                 {}
func (BaseVisitor) VisitNilLiteral(n *NilLiteral)                         {}
func (BaseVisitor) VisitStringLiteral(n *StringLiteral)                   {}
func (BaseVisitor) VisitInterpolatedStringLiteral(n *InterpolatedStringLiteral) {}
func (BaseVisitor) VisitArrayLiteral(n *ArrayLiteral)                     {}
func (BaseVisitor) VisitDictionaryLiteral(n *DictionaryLiteral)           {}
func (BaseVisitor) VisitTupleLiteral(n *TupleLiteral)                     {}
func (BaseVisitor) VisitClosureLiteral(n *ClosureLiteral)                 {}
func (BaseVisitor) VisitIdentifierExpression(n *IdentifierExpression)     {}
func (BaseVisitor) VisitSelfExpression(n *SelfExpression)                 {}
func (BaseVisitor) VisitDynamicTypeExpression(n *DynamicTypeExpression)   {}
func (BaseVisitor) VisitMemberAccessExpression(n *MemberAccessExpression) {}
func (BaseVisitor) VisitInitializerReferenceExpression(n *InitializerReferenceExpression) {}
func (BaseVisitor) VisitSubscriptExpression(n *SubscriptExpression)       {}
func (BaseVisitor) VisitCallExpression(n *CallExpression)                 {}
func (BaseVisitor) VisitUnaryExpression(n *UnaryExpression)               {}
func (BaseVisitor) VisitBinaryExpression(n *BinaryExpression)             {}
func (BaseVisitor) VisitConditionalExpression(n *ConditionalExpression)   {}
func (BaseVisitor) VisitAssignmentExpression(n *AssignmentExpression)     {}
func (BaseVisitor) VisitTypeCheckExpression(n *TypeCheckExpression)       {}
func (BaseVisitor) VisitTypeCastExpression(n *TypeCastExpression)         {}
func (BaseVisitor) VisitParenthesizedExpression(n *ParenthesizedExpression) {}
func (BaseVisitor) VisitForcedUnwrapExpression(n *ForcedUnwrapExpression) {}
func (BaseVisitor) VisitOptionalChainingExpression(n *OptionalChainingExpression) {}
func (BaseVisitor) VisitInOutExpression(n *InOutExpression)               {}
func (BaseVisitor) VisitImplicitSomeExpression(n *ImplicitSomeExpression) {}

func (BaseVisitor) VisitBlockStatement(n *BlockStatement)           {}
func (BaseVisitor) VisitExpressionStatement(n *ExpressionStatement) {}
func (BaseVisitor) VisitIfStatement(n *IfStatement)                 {}
func (BaseVisitor) VisitGuardStatement(n *GuardStatement)           {}
func (BaseVisitor) VisitWhileStatement(n *WhileStatement)           {}
func (BaseVisitor) VisitRepeatStatement(n *RepeatStatement)         {}
func (BaseVisitor) VisitForStatement(n *ForStatement)   {}
func (BaseVisitor) VisitForInStatement(n *ForInStatement)           {}
func (BaseVisitor) VisitSwitchStatement(n *SwitchStatement)         {}
func (BaseVisitor) VisitBreakStatement(n *BreakStatement)           {}
func (BaseVisitor) VisitContinueStatement(n *ContinueStatement)     {}
func (BaseVisitor) VisitFallthroughStatement(n *FallthroughStatement) {}
func (BaseVisitor) VisitReturnStatement(n *ReturnStatement)         {}
func (BaseVisitor) VisitLabeledStatement(n *LabeledStatement)       {}

func (BaseVisitor) VisitIdentifierPattern(n *IdentifierPattern)     {}
func (BaseVisitor) VisitWildcardPattern(n *WildcardPattern)         {}
func (BaseVisitor) VisitTypedPattern(n *TypedPattern)               {}
func (BaseVisitor) VisitTuplePattern(n *TuplePattern)               {}
func (BaseVisitor) VisitValueBindingPattern(n *ValueBindingPattern) {}
func (BaseVisitor) VisitEnumCasePattern(n *EnumCasePattern)         {}
func (BaseVisitor) VisitExpressionPattern(n *ExpressionPattern)     {}

func (BaseVisitor) VisitNamedTypeRef(n *NamedTypeRef)           {}
func (BaseVisitor) VisitTupleTypeRef(n *TupleTypeRef)           {}
func (BaseVisitor) VisitArrayTypeRef(n *ArrayTypeRef)           {}
func (BaseVisitor) VisitDictionaryTypeRef(n *DictionaryTypeRef) {}
func (BaseVisitor) VisitFunctionTypeRef(n *FunctionTypeRef)     {}
func (BaseVisitor) VisitOptionalTypeRef(n *OptionalTypeRef)     {}
func (BaseVisitor) VisitImplicitlyUnwrappedOptionalTypeRef(n *ImplicitlyUnwrappedOptionalTypeRef) {}
func (BaseVisitor) VisitProtocolCompositionTypeRef(n *ProtocolCompositionTypeRef) {}

func (BaseVisitor) VisitImportStatement(n *ImportStatement)     {}
func (BaseVisitor) VisitConstantDeclaration(n *ConstantDeclaration) {}
func (BaseVisitor) VisitVariableDeclaration(n *VariableDeclaration) {}
func (BaseVisitor) VisitTypeAliasDeclaration(n *TypeAliasDeclaration) {}
func (BaseVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) {}
func (BaseVisitor) VisitEnumDeclaration(n *EnumDeclaration)     {}
func (BaseVisitor) VisitStructDeclaration(n *StructDeclaration) {}
func (BaseVisitor) VisitClassDeclaration(n *ClassDeclaration)   {}
func (BaseVisitor) VisitAssociatedTypeDeclaration(n *AssociatedTypeDeclaration) {}
func (BaseVisitor) VisitProtocolDeclaration(n *ProtocolDeclaration) {}
func (BaseVisitor) VisitExtensionDeclaration(n *ExtensionDeclaration) {}
func (BaseVisitor) VisitInitializerDeclaration(n *InitializerDeclaration) {}
func (BaseVisitor) VisitDeinitializerDeclaration(n *DeinitializerDeclaration) {}
func (BaseVisitor) VisitSubscriptDeclaration(n *SubscriptDeclaration) {}
func (BaseVisitor) VisitOperatorDeclaration(n *OperatorDeclaration) {}

func (BaseVisitor) VisitGenericParameterList(n *GenericParameterList) {}
