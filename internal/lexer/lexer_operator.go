package lexer

import (
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// scanOperator lexes a maximal run of operator characters and derives the
// fixity hint from surrounding whitespace: space before
// and none after is prefix, none before and space after is postfix, both
// sides the same is binary.
//
// Reserved lexemes get dedicated token shapes before the generic run is
// emitted: `->` becomes the Arrow punctuation the type grammar consumes,
// and a lone `=`/`.` stays an Operator token but is never merged into a
// longer user operator by the parser's registry.
func (l *Lexer) scanOperator(start source.Position, st token.State, spaceBefore bool) token.Token {
	begin := l.offset
	for {
		r, w := l.peekRune()
		if w == 0 || !isOperatorChar(r) {
			break
		}
		// Never let a comment opener extend an operator run: `a+//c`
		// lexes `+` then skips the comment on the next scan.
		if r == '/' {
			if n := l.peekAt2(); n == '/' || n == '*' {
				break
			}
		}
		l.advance()
	}
	text := l.input[begin:l.offset]

	if text == "->" {
		tok := l.make(token.Punctuation, text, start, st)
		tok.Punct = token.Arrow
		return tok
	}

	spaceAfter := l.nextActsAsSpace()
	var fix token.Fixity
	switch {
	case spaceBefore == spaceAfter:
		fix = token.FixityBinary
	case spaceBefore:
		fix = token.FixityPrefix
	default:
		fix = token.FixityPostfix
	}
	// A dot run that touches its left operand is member access territory,
	// never a binary operator, regardless of what follows.
	if text == "." && !spaceBefore {
		fix = token.FixityPostfix
	}

	tok := l.make(token.Operator, text, start, st)
	tok.Op = &token.OperatorPayload{Fixity: fix}
	return tok
}

// nextActsAsSpace reports whether the character after an operator run
// separates it from a right operand: actual whitespace, end of input, a
// closing bracket, or a list/statement separator all count (so `-1` in
// `(a, -1)` still reads as a prefix minus).
func (l *Lexer) nextActsAsSpace() bool {
	r, w := l.peekRune()
	if w == 0 {
		return true
	}
	switch r {
	case ' ', '\t', '\r', '\n', ')', ']', '}', ',', ':', ';':
		return true
	case '/':
		n := l.peekAt2()
		return n == '/' || n == '*'
	}
	return false
}

// leftActsAsSpace reports whether the previous token leaves the upcoming
// operator detached from a left operand, so `(-x)` and `[, -1]` read the
// minus as prefix even with no literal whitespace.
func leftActsAsSpace(t token.Token) bool {
	switch t.Kind {
	case token.Newline:
		return true
	case token.Punctuation:
		switch t.Punct {
		case token.LParen, token.LBracket, token.LBrace, token.Comma, token.Colon, token.Semicolon:
			return true
		}
	case token.Operator:
		return true
	case token.Keyword:
		switch t.Keyword {
		case token.KwReturn, token.KwIf, token.KwWhile, token.KwCase, token.KwIn, token.KwWhere, token.KwElse, token.KwSwitch, token.KwRepeat, token.KwGuard:
			return true
		}
	}
	return false
}
