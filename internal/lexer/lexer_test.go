package lexer

import (
	"testing"

	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *diagnostics.Sink) {
	t.Helper()
	sink := diagnostics.NewSink()
	l := New(source.Buffer{FileName: "test.lark", Text: input}, sink)
	var out []token.Token
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, tok)
	}
	return out, sink
}

// noNewlines filters layout tokens so assertions read linearly.
func noNewlines(toks []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range toks {
		if tok.Kind != token.Newline {
			out = append(out, tok)
		}
	}
	return out
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks, sink := lexAll(t, "let foo `class` $0 _")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	toks = noNewlines(toks)
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want 5", len(toks))
	}
	if !toks[0].IsKeyword(token.KwLet) {
		t.Errorf("toks[0] = %v, want let keyword", toks[0])
	}
	if toks[1].Kind != token.Identifier || toks[1].Lexeme != "foo" {
		t.Errorf("toks[1] = %v, want identifier foo", toks[1])
	}
	if toks[2].Kind != token.Identifier || toks[2].Ident.Subtype != token.IdentBacktick || toks[2].Lexeme != "class" {
		t.Errorf("toks[2] = %v, want backtick identifier class", toks[2])
	}
	if toks[2].Ident.KeywordID != token.KwClass {
		t.Errorf("backtick identifier should remember its keyword spelling")
	}
	if toks[3].Ident == nil || toks[3].Ident.Subtype != token.IdentImplicitParam || toks[3].Ident.ImplicitIndex != 0 {
		t.Errorf("toks[3] = %v, want implicit parameter $0", toks[3])
	}
	if !toks[4].Is(token.Underscore) {
		t.Errorf("toks[4] = %v, want underscore", toks[4])
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
		base  token.NumberBase
		ival  uint64
		dval  float64
	}{
		{"decimal", "42", token.Integer, token.Base10, 42, 0},
		{"separators", "1_000_000", token.Integer, token.Base10, 1000000, 0},
		{"hex", "0xFF", token.Integer, token.Base16, 255, 0},
		{"binary", "0b1010", token.Integer, token.Base2, 10, 0},
		{"octal", "0o17", token.Integer, token.Base8, 15, 0},
		{"float", "3.25", token.Float, token.Base10, 0, 3.25},
		{"exponent", "1e3", token.Float, token.Base10, 0, 1000},
		{"hex float", "0x10p1", token.Float, token.Base16, 0, 32},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks, sink := lexAll(t, tc.input)
			if sink.HasErrors() {
				t.Fatalf("unexpected errors: %v", sink.Diagnostics())
			}
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			tok := toks[0]
			if tok.Kind != tc.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tc.kind)
			}
			if tok.Number.Base != tc.base {
				t.Errorf("base = %v, want %v", tok.Number.Base, tc.base)
			}
			if tc.kind == token.Integer && tok.Number.IntegerValue != tc.ival {
				t.Errorf("integer value = %d, want %d", tok.Number.IntegerValue, tc.ival)
			}
			if tc.kind == token.Float && tok.Number.DoubleValue != tc.dval {
				t.Errorf("double value = %g, want %g", tok.Number.DoubleValue, tc.dval)
			}
		})
	}
}

func TestIntegerSaturatesAt64Bits(t *testing.T) {
	toks, _ := lexAll(t, "99999999999999999999999999")
	if len(toks) != 1 || toks[0].Kind != token.Integer {
		t.Fatalf("got %v, want one integer token", toks)
	}
	if toks[0].Number.IntegerValue != ^uint64(0) {
		t.Errorf("integer value = %d, want saturation to max", toks[0].Number.IntegerValue)
	}
}

func TestOperatorFixityFromWhitespace(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opIdx  int
		lexeme string
		fixity token.Fixity
	}{
		{"binary spaced", "a + b", 1, "+", token.FixityBinary},
		{"binary tight", "a+b", 1, "+", token.FixityBinary},
		{"prefix", "a = -b", 2, "-", token.FixityPrefix},
		{"postfix bang", "a! ", 1, "!", token.FixityPostfix},
		{"prefix after paren", "(-b)", 1, "-", token.FixityPrefix},
		{"prefix after comma", "(a, -b)", 3, "-", token.FixityPrefix},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toks, _ := lexAll(t, tc.input)
			toks = noNewlines(toks)
			tok := toks[tc.opIdx]
			if tok.Kind != token.Operator || tok.Lexeme != tc.lexeme {
				t.Fatalf("token %d = %v, want operator %q", tc.opIdx, tok, tc.lexeme)
			}
			if tok.Op.Fixity != tc.fixity {
				t.Errorf("fixity = %v, want %v", tok.Op.Fixity, tc.fixity)
			}
		})
	}
}

func TestMaximalOperatorRuns(t *testing.T) {
	toks, _ := lexAll(t, "a +- b ** c ..< d")
	toks = noNewlines(toks)
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Operator {
			ops = append(ops, tok.Lexeme)
		}
	}
	want := []string{"+-", "**", "..<"}
	if len(ops) != len(want) {
		t.Fatalf("operators = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("operator %d = %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestArrowIsPunctuation(t *testing.T) {
	toks, _ := lexAll(t, "-> =")
	toks = noNewlines(toks)
	if !toks[0].Is(token.Arrow) {
		t.Errorf("toks[0] = %v, want arrow punctuation", toks[0])
	}
	if toks[1].Kind != token.Operator || toks[1].Lexeme != "=" {
		t.Errorf("toks[1] = %v, want bare assignment operator", toks[1])
	}
}

func TestStringEscapes(t *testing.T) {
	toks, sink := lexAll(t, `"a\n\t\"\\\u{41}"`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	if len(toks) != 1 || toks[0].Kind != token.String {
		t.Fatalf("got %v, want one string token", toks)
	}
	if got, want := toks[0].Str.Text, "a\n\t\"\\A"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestStringInterpolation(t *testing.T) {
	toks, sink := lexAll(t, `"a\(f(1))b"`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	// Fragment "a" (expression follows), f, (, 1, ), fragment "b".
	if toks[0].Kind != token.String || !toks[0].Str.ExpressionFollows || toks[0].Str.Text != "a" {
		t.Fatalf("toks[0] = %v, want fragment \"a\" with expression following", toks[0])
	}
	last := toks[len(toks)-1]
	if last.Kind != token.String || last.Str.ExpressionFollows || last.Str.Text != "b" {
		t.Fatalf("last = %v, want terminal fragment \"b\"", last)
	}
	// The interpolation's own closing paren is consumed by the lexer; the
	// nested call's parens pass through.
	parens := 0
	for _, tok := range toks {
		if tok.Is(token.LParen) || tok.Is(token.RParen) {
			parens++
		}
	}
	if parens != 2 {
		t.Errorf("saw %d paren tokens, want exactly the nested call's 2", parens)
	}
}

func TestNestedBlockComments(t *testing.T) {
	toks, sink := lexAll(t, "/* outer /* inner */ still */ x")
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	toks = noNewlines(toks)
	if len(toks) != 1 || toks[0].Lexeme != "x" {
		t.Fatalf("got %v, want just x", toks)
	}
}

func TestUnterminatedConstructsProduceDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.Code
	}{
		{"string", "\"abc", diagnostics.ErrUnterminatedString},
		{"block comment", "/* abc", diagnostics.ErrUnterminatedBlockComment},
		{"stray character", "#", diagnostics.ErrStrayCharacter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, sink := lexAll(t, tc.input)
			found := false
			for _, d := range sink.Diagnostics() {
				if d.Code == tc.code {
					found = true
				}
			}
			if !found {
				t.Errorf("diagnostics = %v, want %s", sink.Diagnostics(), tc.code)
			}
		})
	}
}

func TestSaveRestore(t *testing.T) {
	sink := diagnostics.NewSink()
	l := New(source.Buffer{FileName: "t", Text: "a b c"}, sink)
	a := l.Next()
	cp := l.Save()
	b1 := l.Next()
	l.Restore(cp)
	b2 := l.Next()
	if a.Lexeme != "a" || b1.Lexeme != "b" || b2.Lexeme != "b" {
		t.Errorf("restore did not rewind: %q %q %q", a.Lexeme, b1.Lexeme, b2.Lexeme)
	}
}

func TestMatchOperator(t *testing.T) {
	sink := diagnostics.NewSink()
	l := New(source.Buffer{FileName: "t", Text: "+- x"}, sink)
	if !l.MatchOperator("+-") {
		t.Fatal("MatchOperator(+-) = false, want true")
	}
	// Probing must not consume.
	if tok := l.Next(); tok.Lexeme != "+-" {
		t.Errorf("next = %q, want +-", tok.Lexeme)
	}
}
