package parser

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// parsePattern parses the full pattern grammar used by switch cases:
// identifier, tuple, value-binding, enum-case,
// wildcard, and expression patterns. No typed pattern is built here. Binding positions (`let`/`var`
// declarations, for-in) use parseBindingPattern, the subset without
// expression patterns.
func (p *Parser) parsePattern() ast.Pattern {
	if !p.guardDepth() {
		return nil
	}
	defer p.unguard()

	var pat ast.Pattern
	switch {
	case p.cur.IsKeyword(token.KwLet), p.cur.IsKeyword(token.KwVar):
		kind := ast.BindLet
		if p.cur.Keyword == token.KwVar {
			kind = ast.BindVar
		}
		start := p.cur.Span
		p.next()
		inner := p.parsePattern()
		pat = p.f.ValueBindingPattern(source.Join(start, spanOf(inner)), kind, inner)

	case p.cur.Is(token.Underscore):
		span := p.cur.Span
		p.next()
		pat = p.f.WildcardPattern(span)

	case p.cur.Is(token.LParen):
		pat = p.parseTuplePattern()

	case p.cur.IsOperatorText("."):
		pat = p.parseEnumCasePattern("")

	case p.cur.Kind == token.Identifier:
		// `Qualifier.caseName` is an enum-case pattern; a bare identifier
		// followed by anything else binds a name, unless an expression
		// continues it (`x + 1`), which falls back to an expression
		// pattern below.
		if p.peek.IsOperatorText(".") {
			qualifier := p.cur.Lexeme
			cp := p.save()
			p.next()
			pat = p.parseEnumCasePattern(qualifier)
			if pat == nil {
				p.restore(cp)
			}
		}
		if pat == nil {
			if isPatternBoundary(p.peek) {
				span := p.cur.Span
				name := p.cur.Lexeme
				p.next()
				pat = p.f.IdentifierPattern(span, name)
			} else {
				expr := p.parseExpression(0)
				if expr == nil {
					return nil
				}
				pat = p.f.ExpressionPattern(expr.Span(), expr)
			}
		}

	default:
		expr := p.parseExpression(0)
		if expr == nil {
			return nil
		}
		pat = p.f.ExpressionPattern(expr.Span(), expr)
	}

	if p.cur.Is(token.Colon) {
		// In case position a trailing colon ends the pattern; no typed
		// pattern is formed from it. Case parsing strips the colon itself.
		return pat
	}
	return pat
}

// isPatternBoundary reports whether tok ends a pattern, letting a bare
// identifier read as a binding rather than the start of an expression.
func isPatternBoundary(tok token.Token) bool {
	switch {
	case tok.Kind == token.EOF, tok.Kind == token.Newline:
		return true
	case tok.Is(token.Comma), tok.Is(token.Colon), tok.Is(token.RParen), tok.Is(token.RBracket), tok.Is(token.RBrace):
		return true
	case tok.IsKeyword(token.KwWhere), tok.IsKeyword(token.KwIn):
		return true
	case tok.Kind == token.Operator && tok.Lexeme == "=":
		return true
	}
	return false
}

func (p *Parser) parseTuplePattern() ast.Pattern {
	start := p.cur.Span
	p.next() // '('
	var elements []ast.Pattern
	for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
		el := p.parsePattern()
		if el == nil {
			break
		}
		elements = append(elements, el)
		if p.cur.Is(token.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RParen, ")")
	return p.f.TuplePattern(p.spanFrom(start), elements)
}

// parseEnumCasePattern parses `.name` or `Qualifier.name`, optionally
// destructuring the associated payload: `.Some(let x)`.
func (p *Parser) parseEnumCasePattern(qualifier string) ast.Pattern {
	start := p.cur.Span
	if p.cur.IsOperatorText(".") {
		p.next()
	}
	if p.cur.Kind != token.Identifier {
		p.errExpected("enum case name")
		return nil
	}
	caseName := p.cur.Lexeme
	p.next()

	var associated []ast.Pattern
	if p.cur.Is(token.LParen) {
		p.next()
		for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
			el := p.parsePattern()
			if el == nil {
				break
			}
			associated = append(associated, el)
			if p.cur.Is(token.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RParen, ")")
	}
	return p.f.EnumCasePattern(p.spanFrom(start), qualifier, caseName, associated)
}

// parseBindingPattern parses the pattern subset legal on the left of a
// `let`/`var` binding or a for-in: identifier, wildcard, tuple.
func (p *Parser) parseBindingPattern() ast.Pattern {
	switch {
	case p.cur.Is(token.Underscore):
		span := p.cur.Span
		p.next()
		return p.f.WildcardPattern(span)
	case p.cur.Is(token.LParen):
		return p.parseTuplePattern()
	case p.cur.Kind == token.Identifier:
		span := p.cur.Span
		name := p.cur.Lexeme
		p.next()
		return p.f.IdentifierPattern(span, name)
	default:
		p.errExpected("pattern")
		return nil
	}
}
