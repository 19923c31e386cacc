package token

// KeywordKind enumerates reserved words. A backtick-quoted identifier with a
// keyword spelling lexes as Identifier with Ident.KeywordID set instead of
// as a Keyword token.
type KeywordKind int

const (
	NoKeyword KeywordKind = iota
	KwImport
	KwLet
	KwVar
	KwTypealias
	KwFunc
	KwEnum
	KwStruct
	KwClass
	KwProtocol
	KwExtension
	KwInit
	KwDeinit
	KwSubscript
	KwOperator
	KwIf
	KwElse
	KwWhile
	KwRepeat
	KwDo
	KwFor
	KwIn
	KwSwitch
	KwCase
	KwDefault
	KwWhere
	KwBreak
	KwContinue
	KwFallthrough
	KwReturn
	KwSelf
	KwDynamicType
	KwIs
	KwAs
	KwNil
	KwTrue
	KwFalse
	KwInfix
	KwPrefix
	KwPostfix
	KwAssociativity
	KwPrecedence
	KwLeft
	KwRight
	KwNone
	KwStatic
	KwInout
	KwGuard
	KwThrows
	KwTry
	KwCatch
	KwGet
	KwSet
)

var keywords = map[string]KeywordKind{
	"import":        KwImport,
	"let":           KwLet,
	"var":           KwVar,
	"typealias":     KwTypealias,
	"func":          KwFunc,
	"enum":          KwEnum,
	"struct":        KwStruct,
	"class":         KwClass,
	"protocol":      KwProtocol,
	"extension":     KwExtension,
	"init":          KwInit,
	"deinit":        KwDeinit,
	"subscript":     KwSubscript,
	"operator":      KwOperator,
	"if":            KwIf,
	"else":          KwElse,
	"while":         KwWhile,
	"repeat":        KwRepeat,
	"do":            KwDo,
	"for":           KwFor,
	"in":            KwIn,
	"switch":        KwSwitch,
	"case":          KwCase,
	"default":       KwDefault,
	"where":         KwWhere,
	"break":         KwBreak,
	"continue":      KwContinue,
	"fallthrough":   KwFallthrough,
	"return":        KwReturn,
	"self":          KwSelf,
	"Self":          KwSelf,
	"dynamicType":   KwDynamicType,
	"is":            KwIs,
	"as":            KwAs,
	"nil":           KwNil,
	"true":          KwTrue,
	"false":         KwFalse,
	"infix":         KwInfix,
	"prefix":        KwPrefix,
	"postfix":       KwPostfix,
	"associativity": KwAssociativity,
	"precedence":    KwPrecedence,
	"left":          KwLeft,
	"right":         KwRight,
	"none":          KwNone,
	"static":        KwStatic,
	"inout":         KwInout,
	"guard":         KwGuard,
	"throws":        KwThrows,
	"try":           KwTry,
	"catch":         KwCatch,
	"get":           KwGet,
	"set":           KwSet,
}

// LookupKeyword returns the keyword id for an identifier spelling, or
// NoKeyword if the spelling is a regular identifier.
func LookupKeyword(text string) KeywordKind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return NoKeyword
}

func (k KeywordKind) String() string {
	for text, kw := range keywords {
		if kw == k {
			return text
		}
	}
	return "<none>"
}
