package parser

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/token"
)

// parsePrimary parses the atoms of the expression grammar: literals,
// identifiers, self, grouping/tuples, collection literals, and closures.
func (p *Parser) parsePrimary() ast.Expression {
	switch {
	case p.cur.Kind == token.Integer:
		t := p.cur
		p.next()
		return p.f.IntegerLiteral(t.Span, t.Lexeme, t.Number.Base, t.Number.IntegerValue)

	case p.cur.Kind == token.Float:
		t := p.cur
		p.next()
		return p.f.FloatLiteral(t.Span, t.Lexeme, t.Number.DoubleValue)

	case p.cur.Kind == token.String:
		return p.parseStringLiteral()

	case p.cur.IsKeyword(token.KwTrue), p.cur.IsKeyword(token.KwFalse):
		t := p.cur
		p.next()
		return p.f.BooleanLiteral(t.Span, t.Keyword == token.KwTrue)

	case p.cur.IsKeyword(token.KwNil):
		t := p.cur
		p.next()
		return p.f.NilLiteral(t.Span)

	case p.cur.IsKeyword(token.KwSelf):
		t := p.cur
		p.next()
		return p.f.SelfExpression(t.Span)

	case p.cur.Kind == token.Identifier:
		t := p.cur
		p.next()
		subtype := token.IdentRegular
		if t.Ident != nil {
			subtype = t.Ident.Subtype
		}
		return p.f.IdentifierExpression(t.Span, t.Lexeme, subtype)

	case p.cur.Is(token.LParen):
		return p.parseParenOrTuple()

	case p.cur.Is(token.LBracket):
		return p.parseCollectionLiteral()

	case p.cur.Is(token.LBrace):
		return p.parseClosureLiteral()

	default:
		p.errUnexpected()
		return nil
	}
}

// parseStringLiteral assembles a plain string or an interpolated one.
// The lexer flags a fragment whose `\(` opened an interpolation and hands
// the embedded expression through as ordinary tokens; the continuation
// fragment arrives as the next String token once the matching `)` closes.
func (p *Parser) parseStringLiteral() ast.Expression {
	first := p.cur
	p.next()
	if first.Str == nil || !first.Str.ExpressionFollows {
		return p.f.StringLiteral(first.Span, first.Str.Text)
	}

	start := first.Span
	parts := []ast.Expression{p.f.StringLiteral(first.Span, first.Str.Text)}
	for {
		expr := p.parseExpression(0)
		if expr != nil {
			parts = append(parts, expr)
		}
		if p.cur.Kind != token.String {
			p.errExpected("string literal continuation")
			break
		}
		frag := p.cur
		p.next()
		parts = append(parts, p.f.StringLiteral(frag.Span, frag.Str.Text))
		if !frag.Str.ExpressionFollows {
			break
		}
	}
	return p.f.InterpolatedStringLiteral(p.spanFrom(start), parts)
}

// parseParenOrTuple parses `(...)`: a grouping for a single unlabeled
// element, a tuple literal otherwise (including `()` and labeled single
// elements).
func (p *Parser) parseParenOrTuple() ast.Expression {
	start := p.cur.Span
	p.next() // '('
	p.skipNewlines()

	var elements []ast.TupleElement
	for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
		var label string
		if p.cur.Kind == token.Identifier && p.peek.Is(token.Colon) {
			label = p.cur.Lexeme
			p.next()
			p.next()
			p.skipNewlines()
		}
		value := p.parseExpression(0)
		if value == nil {
			break
		}
		elements = append(elements, ast.TupleElement{Label: label, Value: value})
		p.skipNewlines()
		if p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	p.expect(token.RParen, ")")
	span := p.spanFrom(start)

	if len(elements) == 1 && elements[0].Label == "" {
		return p.f.ParenthesizedExpression(span, elements[0].Value)
	}
	return p.f.TupleLiteral(span, elements)
}

// parseCollectionLiteral parses `[a, b]`, `[k: v]`, `[]`, and `[:]`.
func (p *Parser) parseCollectionLiteral() ast.Expression {
	start := p.cur.Span
	p.next() // '['
	p.skipNewlines()

	if p.cur.Is(token.RBracket) {
		p.next()
		return p.f.ArrayLiteral(p.spanFrom(start), nil)
	}
	if p.cur.Is(token.Colon) {
		p.next()
		p.expect(token.RBracket, "]")
		return p.f.DictionaryLiteral(p.spanFrom(start), nil)
	}

	first := p.parseExpression(0)
	if first == nil {
		p.expect(token.RBracket, "]")
		return p.f.ArrayLiteral(p.spanFrom(start), nil)
	}

	if p.cur.Is(token.Colon) {
		p.next()
		p.skipNewlines()
		value := p.parseExpression(0)
		entries := []ast.DictionaryEntry{{Key: first, Value: value}}
		for p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			if p.cur.Is(token.RBracket) {
				break
			}
			k := p.parseExpression(0)
			p.expect(token.Colon, ":")
			p.skipNewlines()
			v := p.parseExpression(0)
			if k == nil || v == nil {
				break
			}
			entries = append(entries, ast.DictionaryEntry{Key: k, Value: v})
		}
		p.skipNewlines()
		p.expect(token.RBracket, "]")
		return p.f.DictionaryLiteral(p.spanFrom(start), entries)
	}

	elements := []ast.Expression{first}
	for p.cur.Is(token.Comma) {
		p.next()
		p.skipNewlines()
		if p.cur.Is(token.RBracket) {
			break
		}
		e := p.parseExpression(0)
		if e == nil {
			break
		}
		elements = append(elements, e)
	}
	p.skipNewlines()
	p.expect(token.RBracket, "]")
	return p.f.ArrayLiteral(p.spanFrom(start), elements)
}

// parseClosureLiteral parses `{ (params) -> Ret in stmts }`, the
// shorthand `{ a, b in ... }`, and the implicit-parameter form
// `{ $0 + $1 }` (no parameter clause at all).
func (p *Parser) parseClosureLiteral() ast.Expression {
	start := p.cur.Span
	p.next() // '{'
	p.skipNewlines()

	params, ret := p.tryParseClosureSignature()

	var body []ast.Statement
	for !p.cur.Is(token.RBrace) && p.cur.Kind != token.EOF {
		p.skipNewlines()
		if p.cur.Is(token.RBrace) {
			break
		}
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
		p.skipNewlines()
	}
	p.expect(token.RBrace, "}")
	return p.f.ClosureLiteral(p.spanFrom(start), params, ret, body)
}

// tryParseClosureSignature probes for `params [-> Ret] in` and rewinds
// when the brace body turns out not to start with a signature.
func (p *Parser) tryParseClosureSignature() ([]ast.ClosureParameter, ast.TypeRef) {
	cp := p.save()

	var params []ast.ClosureParameter
	switch {
	case p.cur.Is(token.LParen):
		p.next()
		p.skipNewlines()
		for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
			var param ast.ClosureParameter
			if p.cur.Kind != token.Identifier {
				p.restore(cp)
				return nil, nil
			}
			param.LocalName = p.cur.Lexeme
			p.next()
			if p.cur.Kind == token.Identifier {
				param.ExternalName = param.LocalName
				param.LocalName = p.cur.Lexeme
				p.next()
			}
			if p.cur.Is(token.Colon) {
				p.next()
				param.TypeAnnotation = p.parseTypeRef()
			}
			params = append(params, param)
			if p.cur.Is(token.Comma) {
				p.next()
				p.skipNewlines()
				continue
			}
			break
		}
		if !p.cur.Is(token.RParen) {
			p.restore(cp)
			return nil, nil
		}
		p.next()

	case p.cur.Kind == token.Identifier:
		for p.cur.Kind == token.Identifier {
			params = append(params, ast.ClosureParameter{LocalName: p.cur.Lexeme})
			p.next()
			if p.cur.Is(token.Comma) {
				p.next()
				p.skipNewlines()
				continue
			}
			break
		}

	default:
		p.restore(cp)
		return nil, nil
	}

	var ret ast.TypeRef
	if p.cur.Is(token.Arrow) {
		p.next()
		ret = p.parseTypeRef()
	}
	if !p.cur.IsKeyword(token.KwIn) {
		p.restore(cp)
		return nil, nil
	}
	p.next()
	return params, ret
}
