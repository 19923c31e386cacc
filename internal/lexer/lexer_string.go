package lexer

import (
	"strconv"
	"strings"

	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// scanString lexes a `"..."` literal, processing `\n \r \t \0 \\ \" \'` and
// `\u{HEX}` escapes. A `\(` opens an interpolation: the tokenizer emits a
// string fragment with ExpressionFollows set and lexes the embedded
// expression as ordinary tokens; the matching `)` (tracked by interpStack)
// is consumed silently and string lexing resumes, so the continuation
// fragment arrives as the very next String token.
func (l *Lexer) scanString(start source.Position, st token.State) token.Token {
	l.advance() // opening '"'; resuming after an interpolation goes
	// straight to lexStringBody from scanToken. This entry point always
	// consumes exactly one '"'.
	return l.lexStringBody(start, st)
}

func (l *Lexer) lexStringBody(start source.Position, st token.State) token.Token {
	var b strings.Builder
	for {
		r, w := l.peekRune()
		if w == 0 {
			l.sink.Error(diagnostics.ErrUnterminatedString, l.span(start))
			break
		}
		if r == '"' {
			l.advance()
			break
		}
		if r == '\n' {
			l.sink.Error(diagnostics.ErrUnterminatedString, l.span(start))
			break
		}
		if r == '\\' {
			if l.peekAt2() == '(' {
				l.advance() // '\\'
				l.advance() // '('
				l.interpStack = append(l.interpStack, interpFrame{})
				tok := l.make(token.String, b.String(), start, st)
				tok.Str = &token.StringPayload{Text: b.String(), ExpressionFollows: true}
				return tok
			}
			l.advance()
			esc, ok := l.readEscape()
			if !ok {
				l.sink.Error(diagnostics.ErrInvalidEscapeSequence, l.span(start))
			} else {
				b.WriteRune(esc)
			}
			continue
		}
		l.advance()
		b.WriteRune(r)
	}
	tok := l.make(token.String, b.String(), start, st)
	tok.Str = &token.StringPayload{Text: b.String(), ExpressionFollows: false}
	return tok
}

func (l *Lexer) readEscape() (rune, bool) {
	r, w := l.peekRune()
	if w == 0 {
		return 0, false
	}
	switch r {
	case 'n':
		l.advance()
		return '\n', true
	case 'r':
		l.advance()
		return '\r', true
	case 't':
		l.advance()
		return '\t', true
	case '0':
		l.advance()
		return 0, true
	case '\\':
		l.advance()
		return '\\', true
	case '"':
		l.advance()
		return '"', true
	case '\'':
		l.advance()
		return '\'', true
	case 'u':
		l.advance()
		if r2, _ := l.peekRune(); r2 != '{' {
			return 0, false
		}
		l.advance()
		begin := l.offset
		for {
			r3, w3 := l.peekRune()
			if w3 == 0 || r3 == '}' {
				break
			}
			l.advance()
		}
		hex := l.input[begin:l.offset]
		if r3, _ := l.peekRune(); r3 == '}' {
			l.advance()
		} else {
			return 0, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return rune(v), true
	default:
		return 0, false
	}
}
