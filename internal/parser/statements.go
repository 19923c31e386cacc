package parser

import (
	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// parseStatement dispatches on the leading token: declarations, control
// flow, labeled statements, or a bare expression statement.
func (p *Parser) parseStatement() ast.Statement {
	if !p.guardDepth() {
		return nil
	}
	defer p.unguard()

	if p.cur.Kind == token.Keyword {
		switch p.cur.Keyword {
		case token.KwImport, token.KwLet, token.KwVar, token.KwTypealias, token.KwFunc,
			token.KwEnum, token.KwStruct, token.KwClass, token.KwProtocol, token.KwExtension,
			token.KwInit, token.KwDeinit, token.KwSubscript, token.KwOperator, token.KwStatic:
			return p.parseDeclaration(false)
		case token.KwIf:
			return p.parseIfStatement()
		case token.KwGuard:
			return p.parseGuardStatement()
		case token.KwWhile:
			return p.parseWhileStatement("")
		case token.KwRepeat, token.KwDo:
			return p.parseRepeatStatement("")
		case token.KwFor:
			return p.parseForStatement("")
		case token.KwSwitch:
			return p.parseSwitchStatement()
		case token.KwBreak:
			return p.parseBreakStatement()
		case token.KwContinue:
			return p.parseContinueStatement()
		case token.KwFallthrough:
			span := p.cur.Span
			p.next()
			return p.f.FallthroughStatement(span)
		case token.KwReturn:
			return p.parseReturnStatement()
		}
	}

	// `label: while ...` and friends.
	if p.cur.Kind == token.Identifier && p.peek.Is(token.Colon) {
		if label, s := p.tryParseLabeledStatement(); s != nil {
			_ = label
			return s
		}
	}

	expr := p.parseExpression(0)
	if expr == nil {
		p.sync()
		return nil
	}
	return p.f.ExpressionStatement(expr.Span(), expr)
}

func (p *Parser) tryParseLabeledStatement() (string, ast.Statement) {
	cp := p.save()
	label := p.cur.Lexeme
	start := p.cur.Span
	p.next() // identifier
	p.next() // ':'
	p.skipNewlines()
	if p.cur.Kind != token.Keyword {
		p.restore(cp)
		return "", nil
	}
	var body ast.Statement
	switch p.cur.Keyword {
	case token.KwWhile:
		body = p.parseWhileStatement(label)
	case token.KwRepeat, token.KwDo:
		body = p.parseRepeatStatement(label)
	case token.KwFor:
		body = p.parseForStatement(label)
	case token.KwSwitch:
		body = p.parseSwitchStatement()
	default:
		p.restore(cp)
		return "", nil
	}
	if body == nil {
		return "", nil
	}
	return label, p.f.LabeledStatement(source.Join(start, body.Span()), label, body)
}

// parseBlock parses `{ stmt* }` as a new lexical scope.
func (p *Parser) parseBlock() *ast.BlockStatement {
	start := p.cur.Span
	if !p.expect(token.LBrace, "{") {
		return p.f.BlockStatement(start, nil)
	}
	var stmts []ast.Statement
	for {
		p.skipNewlines()
		if p.cur.Is(token.RBrace) || p.cur.Kind == token.EOF {
			break
		}
		before := p.cur
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.cur == before && !p.cur.Is(token.RBrace) && p.cur.Kind != token.EOF {
			p.errUnexpected()
			p.next()
		}
	}
	p.expect(token.RBrace, "}")
	return p.f.BlockStatement(p.spanFrom(start), stmts)
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.cur.Span
	p.next() // 'if'
	cond := p.parseExpression(0)
	then := p.parseBlock()
	var els ast.Statement
	if p.cur.IsKeyword(token.KwElse) {
		p.next()
		if p.cur.IsKeyword(token.KwIf) {
			els = p.parseIfStatement()
		} else {
			els = p.parseBlock()
		}
	}
	return p.f.IfStatement(p.spanFrom(start), cond, then, els)
}

func (p *Parser) parseGuardStatement() ast.Statement {
	start := p.cur.Span
	p.next() // 'guard'
	cond := p.parseExpression(0)
	p.expectKeyword(token.KwElse, "else")
	els := p.parseBlock()
	return p.f.GuardStatement(p.spanFrom(start), cond, els)
}

func (p *Parser) parseWhileStatement(label string) ast.Statement {
	start := p.cur.Span
	p.next() // 'while'
	cond := p.parseExpression(0)
	body := p.parseBlock()
	return p.f.WhileStatement(p.spanFrom(start), label, cond, body)
}

// parseRepeatStatement handles both spellings of the post-test loop:
// `repeat { } while cond` and the older `do { } while cond`.
func (p *Parser) parseRepeatStatement(label string) ast.Statement {
	start := p.cur.Span
	p.next() // 'repeat' | 'do'
	body := p.parseBlock()
	p.skipNewlines()
	p.expectKeyword(token.KwWhile, "while")
	cond := p.parseExpression(0)
	return p.f.RepeatStatement(p.spanFrom(start), label, body, cond)
}

// parseForStatement distinguishes `for pattern in seq` from the classic
// three-clause `for init; cond; step`.
func (p *Parser) parseForStatement(label string) ast.Statement {
	start := p.cur.Span
	p.next() // 'for'

	cp := p.save()
	pat := p.parseForInPattern()
	if pat != nil && p.cur.IsKeyword(token.KwIn) {
		p.next()
		seq := p.parseExpression(0)
		var where ast.Expression
		if p.cur.IsKeyword(token.KwWhere) {
			p.next()
			where = p.parseExpression(0)
		}
		body := p.parseBlock()
		return p.f.ForInStatement(p.spanFrom(start), label, pat, seq, where, body)
	}
	p.restore(cp)

	var init ast.Statement
	if !p.cur.Is(token.Semicolon) {
		if p.cur.IsKeyword(token.KwVar) || p.cur.IsKeyword(token.KwLet) {
			init = p.parseDeclaration(false)
		} else {
			e := p.parseExpression(0)
			if e != nil {
				init = p.f.ExpressionStatement(e.Span(), e)
			}
		}
	}
	p.expect(token.Semicolon, ";")
	var cond ast.Expression
	if !p.cur.Is(token.Semicolon) {
		cond = p.parseExpression(0)
	}
	p.expect(token.Semicolon, ";")
	var step ast.Expression
	if !p.cur.Is(token.LBrace) {
		step = p.parseExpression(0)
	}
	body := p.parseBlock()
	return p.f.ForStatement(p.spanFrom(start), label, init, cond, step, body)
}

func (p *Parser) parseForInPattern() ast.Pattern {
	switch {
	case p.cur.IsKeyword(token.KwLet), p.cur.IsKeyword(token.KwVar):
		kind := ast.BindLet
		if p.cur.Keyword == token.KwVar {
			kind = ast.BindVar
		}
		start := p.cur.Span
		p.next()
		inner := p.parseBindingPattern()
		if inner == nil {
			return nil
		}
		return p.f.ValueBindingPattern(source.Join(start, inner.Span()), kind, inner)
	case p.cur.Kind == token.Identifier, p.cur.Is(token.Underscore), p.cur.Is(token.LParen):
		return p.parseBindingPattern()
	default:
		return nil
	}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.cur.Span
	p.next() // 'switch'
	subject := p.parseExpression(0)
	p.expect(token.LBrace, "{")

	var cases []ast.SwitchCase
	for {
		p.skipNewlines()
		switch {
		case p.cur.IsKeyword(token.KwCase):
			p.next()
			var patterns []ast.Pattern
			for {
				pat := p.parsePattern()
				if pat == nil {
					break
				}
				patterns = append(patterns, pat)
				if p.cur.Is(token.Comma) {
					p.next()
					continue
				}
				break
			}
			var where ast.Expression
			if p.cur.IsKeyword(token.KwWhere) {
				p.next()
				where = p.parseExpression(0)
			}
			p.expect(token.Colon, ":")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{Patterns: patterns, Where: where, Body: body})

		case p.cur.IsKeyword(token.KwDefault):
			p.next()
			p.expect(token.Colon, ":")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{Body: body, Default: true})

		case p.cur.Is(token.RBrace), p.cur.Kind == token.EOF:
			p.expect(token.RBrace, "}")
			return p.f.SwitchStatement(p.spanFrom(start), subject, cases)

		default:
			p.errUnexpected()
			p.sync()
		}
	}
}

// parseCaseBody consumes statements until the next `case`, `default`, or
// the closing brace.
func (p *Parser) parseCaseBody() []ast.Statement {
	var body []ast.Statement
	for {
		p.skipNewlines()
		if p.cur.IsKeyword(token.KwCase) || p.cur.IsKeyword(token.KwDefault) ||
			p.cur.Is(token.RBrace) || p.cur.Kind == token.EOF {
			return body
		}
		before := p.cur
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
		if p.cur == before {
			p.next()
		}
	}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	start := p.cur.Span
	p.next()
	label := ""
	if p.cur.Kind == token.Identifier {
		label = p.cur.Lexeme
		p.next()
	}
	return p.f.BreakStatement(p.spanFrom(start), label)
}

func (p *Parser) parseContinueStatement() ast.Statement {
	start := p.cur.Span
	p.next()
	label := ""
	if p.cur.Kind == token.Identifier {
		label = p.cur.Lexeme
		p.next()
	}
	return p.f.ContinueStatement(p.spanFrom(start), label)
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.cur.Span
	p.next()
	var value ast.Expression
	if p.cur.Kind != token.Newline && !p.cur.Is(token.RBrace) && !p.cur.Is(token.Semicolon) && p.cur.Kind != token.EOF {
		value = p.parseExpression(0)
	}
	return p.f.ReturnStatement(p.spanFrom(start), value)
}
