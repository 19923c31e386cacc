// Package parser turns the token stream into an AST with a hand-written
// Pratt-style operator-precedence expression parser. The parser owns the
// operator registry and installs user `operator` declarations into it
// mid-parse, so an operator declared before first use changes subsequent
// parses.
package parser

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/config"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/lexer"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

type Parser struct {
	lex  *lexer.Lexer
	sink *diagnostics.Sink
	f    *ast.NodeFactory
	ops  *Registry
	file string

	cur  token.Token
	peek token.Token

	depth      int
	inRecovery bool
}

// New builds a parser over buf. ops may be shared across units by a
// driver; passing nil creates a fresh default registry.
func New(buf source.Buffer, sink *diagnostics.Sink, ops *Registry) *Parser {
	if ops == nil {
		ops = NewRegistry()
	}
	p := &Parser{
		lex:  lexer.New(buf, sink),
		sink: sink,
		f:    ast.NewNodeFactory(),
		ops:  ops,
		file: buf.FileName,
	}
	p.next()
	p.next()
	return p
}

// Operators exposes the registry for analysis and tests.
func (p *Parser) Operators() *Registry { return p.ops }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

// checkpoint captures the full parser position for backtracking parses
// (closure parameter clauses, generic argument probes), restoring both
// the buffered token pair and the lexer state.
type checkpoint struct {
	lc        lexer.Checkpoint
	cur, peek token.Token
}

func (p *Parser) save() checkpoint {
	return checkpoint{lc: p.lex.Save(), cur: p.cur, peek: p.peek}
}

func (p *Parser) restore(c checkpoint) {
	p.lex.Restore(c.lc)
	p.cur, p.peek = c.cur, c.peek
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.Newline || p.cur.Is(token.Semicolon) {
		p.next()
	}
}

func (p *Parser) errExpected(what string) {
	p.sink.Error(diagnostics.ErrExpectedToken, p.cur.Span, what, p.cur.Lexeme)
}

func (p *Parser) errUnexpected() {
	p.sink.Error(diagnostics.ErrUnexpectedToken, p.cur.Span, p.cur.Lexeme)
}

// expect consumes a punctuation token or diagnoses and leaves the cursor
// in place for recovery.
func (p *Parser) expect(pt token.Punct, spelling string) bool {
	if p.cur.Is(pt) {
		p.next()
		return true
	}
	p.errExpected(spelling)
	return false
}

func (p *Parser) expectKeyword(kw token.KeywordKind, spelling string) bool {
	if p.cur.IsKeyword(kw) {
		p.next()
		return true
	}
	p.errExpected(spelling)
	return false
}

// expectIdentifier consumes and returns an identifier's text, or "" after
// a diagnostic.
func (p *Parser) expectIdentifier(what string) string {
	if p.cur.Kind == token.Identifier {
		name := p.cur.Lexeme
		p.next()
		return name
	}
	p.errExpected(what)
	return ""
}

// sync skips to the next synchronizing token: statement terminator,
// closing brace, or top-level declaration keyword.
func (p *Parser) sync() {
	for {
		switch {
		case p.cur.Kind == token.EOF:
			return
		case p.cur.Kind == token.Newline, p.cur.Is(token.Semicolon):
			p.next()
			return
		case p.cur.Is(token.RBrace):
			return
		case p.cur.Kind == token.Keyword && isTopLevelKeyword(p.cur.Keyword):
			return
		}
		p.next()
	}
}

func isTopLevelKeyword(k token.KeywordKind) bool {
	switch k {
	case token.KwImport, token.KwLet, token.KwVar, token.KwTypealias, token.KwFunc,
		token.KwEnum, token.KwStruct, token.KwClass, token.KwProtocol, token.KwExtension,
		token.KwInit, token.KwDeinit, token.KwSubscript, token.KwOperator:
		return true
	}
	return false
}

// spanFrom joins a start span with everything consumed since.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return source.Join(start, p.prevEnd())
}

// prevEnd approximates the end of the last consumed token as the start of
// the current one; spans stay tight enough for diagnostics and the
// round-trip tests compare structure, not offsets.
func (p *Parser) prevEnd() source.Span {
	return source.Span{File: p.file, Start: p.cur.Span.Start, End: p.cur.Span.Start}
}

// ParseProgram parses one translation unit to EOF.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.cur.Span
	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.cur.Kind == token.EOF {
			break
		}
		before := p.cur
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		// Guarantee forward progress even when a statement parse bails
		// without consuming anything.
		if p.cur == before && p.cur.Kind != token.EOF {
			p.errUnexpected()
			p.next()
			p.sync()
		}
	}
	return p.f.Program(p.spanFrom(start), p.file, stmts)
}

// guardDepth bounds recursion.
// Returns false when the cap is hit; the caller abandons the production.
func (p *Parser) guardDepth() bool {
	p.depth++
	if p.depth > config.MaxRecursionDepth {
		p.depth--
		if !p.inRecovery {
			p.sink.Error(diagnostics.ErrRecursionLimitExceeded, p.cur.Span)
			p.inRecovery = true
			p.sync()
			p.inRecovery = false
		}
		return false
	}
	return true
}

func (p *Parser) unguard() { p.depth-- }
