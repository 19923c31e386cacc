package ast

// BlockStatement is a brace-delimited statement sequence introducing a new
// scope.
type BlockStatement struct {
	stmtBase
	Statements []Statement
}

func (n *BlockStatement) Accept(v Visitor) { v.VisitBlockStatement(n) }

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	stmtBase
	Expr Expression
}

func (n *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(n) }

// IfStatement is `if cond { ... } else { ... }`; Else is nil, a
// *BlockStatement, or another *IfStatement (else-if chaining).
type IfStatement struct {
	stmtBase
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (n *IfStatement) Accept(v Visitor) { v.VisitIfStatement(n) }

// GuardStatement is `guard cond else { ... }`. SA analyzes the else block
// as a branch whose initializations do not survive the guard; it does not
// check that the block exits the enclosing scope.
type GuardStatement struct {
	stmtBase
	Condition Expression
	Else      *BlockStatement
}

func (n *GuardStatement) Accept(v Visitor) { v.VisitGuardStatement(n) }

// WhileStatement is `while cond { ... }`, optionally labeled.
type WhileStatement struct {
	stmtBase
	Label     string
	Condition Expression
	Body      *BlockStatement
}

func (n *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(n) }

// RepeatStatement is `repeat { ... } while cond` (do/while form).
type RepeatStatement struct {
	stmtBase
	Label     string
	Body      *BlockStatement
	Condition Expression
}

func (n *RepeatStatement) Accept(v Visitor) { v.VisitRepeatStatement(n) }

// ForStatement is the classic three-clause loop
// `for init; cond; step { ... }`; any clause may be absent.
type ForStatement struct {
	stmtBase
	Label     string
	Init      Statement  // nil or ExpressionStatement/VariableDeclaration
	Condition Expression // nil => always true
	Step      Expression // nil
	Body      *BlockStatement
}

func (n *ForStatement) Accept(v Visitor) { v.VisitForStatement(n) }

// ForInStatement is `for pattern in sequence { ... }`.
type ForInStatement struct {
	stmtBase
	Label    string
	Pattern  Pattern
	Sequence Expression
	Where    Expression // optional filter
	Body     *BlockStatement
}

func (n *ForInStatement) Accept(v Visitor) { v.VisitForInStatement(n) }

// SwitchCase is one `case pattern, pattern where cond: stmts` arm of a
// switch, or the `default:` arm when Patterns is empty and Default is true.
type SwitchCase struct {
	Patterns []Pattern
	Where    Expression // optional
	Body     []Statement
	Default  bool
}

// SwitchStatement is `switch subject { case ... }`.
type SwitchStatement struct {
	stmtBase
	Subject Expression
	Cases   []SwitchCase
}

func (n *SwitchStatement) Accept(v Visitor) { v.VisitSwitchStatement(n) }

// BreakStatement is `break` or `break label`.
type BreakStatement struct {
	stmtBase
	Label string
}

func (n *BreakStatement) Accept(v Visitor) { v.VisitBreakStatement(n) }

// ContinueStatement is `continue` or `continue label`.
type ContinueStatement struct {
	stmtBase
	Label string
}

func (n *ContinueStatement) Accept(v Visitor) { v.VisitContinueStatement(n) }

// FallthroughStatement transfers control to the next switch case body
// without re-testing its pattern.
type FallthroughStatement struct{ stmtBase }

func (n *FallthroughStatement) Accept(v Visitor) { v.VisitFallthroughStatement(n) }

// ReturnStatement is `return` or `return expr`.
type ReturnStatement struct {
	stmtBase
	Value Expression // nil for bare `return`
}

func (n *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(n) }

// LabeledStatement attaches a loop label to while/repeat/for-in (also
// reachable via the Label field on those nodes directly; this wrapper
// exists for statements reached only through `break`/`continue label`
// targeting an arbitrary labeled block).
type LabeledStatement struct {
	stmtBase
	Label string
	Body  Statement
}

func (n *LabeledStatement) Accept(v Visitor) { v.VisitLabeledStatement(n) }
