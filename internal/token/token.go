// Package token defines the lexical token vocabulary produced by the
// tokenizer and consumed by the parser.
package token

import "github.com/larklang/compiler/internal/source"

// Kind is the coarse classification of a token, independent of payload.
type Kind int

const (
	Illegal Kind = iota
	EOF
	Newline
	Identifier
	Keyword
	Integer
	Float
	String
	Operator
	Punctuation
	Comment
)

func (k Kind) String() string {
	switch k {
	case Illegal:
		return "Illegal"
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Operator:
		return "Operator"
	case Punctuation:
		return "Punctuation"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Fixity records how an operator token's surrounding whitespace was
// interpreted.
type Fixity int

const (
	FixityUnknown Fixity = iota
	FixityPrefix
	FixityPostfix
	FixityBinary
)

func (f Fixity) String() string {
	switch f {
	case FixityPrefix:
		return "prefix"
	case FixityPostfix:
		return "postfix"
	case FixityBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// IdentSubtype distinguishes the three identifier shapes the tokenizer
// recognizes.
type IdentSubtype int

const (
	IdentRegular IdentSubtype = iota
	IdentBacktick
	IdentImplicitParam // $0, $1, ...
)

// NumberBase is the radix an integer literal was written in.
type NumberBase int

const (
	Base10 NumberBase = 10
	Base2  NumberBase = 2
	Base8  NumberBase = 8
	Base16 NumberBase = 16
)

// Punct enumerates punctuation lexemes that are not operator runs.
type Punct int

const (
	PunctNone Punct = iota
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Arrow       // ->
	FatArrow    // => (unused by the base grammar, reserved for future sugar)
	Question
	Bang
	At
	Underscore
)

// IdentPayload is the kind-specific data carried by an Identifier token.
type IdentPayload struct {
	Subtype        IdentSubtype
	ImplicitIndex  int  // valid when Subtype == IdentImplicitParam
	KeywordID      KeywordKind // non-zero if the spelling also names a keyword (backtick escape)
}

// NumberPayload is the kind-specific data carried by Integer/Float tokens.
type NumberPayload struct {
	Base         NumberBase
	Negative     bool
	FracDigits   int
	ExpDigits    int
	IntegerValue uint64 // saturated to 64 bits
	DoubleValue  float64
}

// StringPayload is the kind-specific data carried by String tokens.
type StringPayload struct {
	Text               string
	ExpressionFollows bool // true when `\(` opened an interpolation
}

// OperatorPayload is the kind-specific data carried by Operator tokens.
type OperatorPayload struct {
	Fixity Fixity
}

// CommentPayload is the kind-specific data carried by Comment tokens.
type CommentPayload struct {
	Block bool
	Depth int // nesting depth reached for block comments
}

// State is a tokenizer snapshot: enough to resume lexing exactly where a
// token left off. Carried on every token so the parser can rewind to a
// checkpoint.
type State struct {
	Offset   int
	Line     int
	Column   int
	InString bool
}

// Token is a tagged record: kind, lexeme text, source span, and
// kind-specific payload.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   source.Span

	Keyword KeywordKind // valid when Kind == Keyword
	Punct   Punct   // valid when Kind == Punctuation

	Ident   *IdentPayload
	Number  *NumberPayload
	Str     *StringPayload
	Op      *OperatorPayload
	Comment *CommentPayload

	State State
}

// Is reports whether the token is a punctuation token of the given kind.
func (t Token) Is(p Punct) bool { return t.Kind == Punctuation && t.Punct == p }

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(k KeywordKind) bool { return t.Kind == Keyword && t.Keyword == k }

// IsOperatorText reports whether the token is an operator token spelled text.
func (t Token) IsOperatorText(text string) bool { return t.Kind == Operator && t.Lexeme == text }
