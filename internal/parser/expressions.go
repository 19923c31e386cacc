package parser

import (
	"strings"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// parseExpression is the Pratt loop: parse a primary (with
// its prefix and postfix operators), then while the next token is an
// infix operator whose precedence >= minPrec, consume it and parse the
// right-hand side with the precedence adjusted by associativity
// (left: prec+1, right: prec, none: prec+1 plus rejection of a repeated
// same-level operator).
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	if !p.guardDepth() {
		return nil
	}
	defer p.unguard()

	left := p.parseUnary()
	if left == nil {
		return nil
	}

	lastNonePrec := -1
	for {
		switch {
		case p.cur.IsKeyword(token.KwIs) && PrecCast >= minPrec:
			p.next()
			ty := p.parseTypeRef()
			left = p.f.TypeCheckExpression(source.Join(left.Span(), spanOf(ty)), left, ty)

		case p.cur.IsKeyword(token.KwAs) && PrecCast >= minPrec:
			p.next()
			kind := ast.CastForced
			if p.cur.Is(token.Question) {
				kind = ast.CastOptional
				p.next()
			} else if p.cur.IsOperatorText("!") {
				kind = ast.CastForcedOptional
				p.next()
			}
			ty := p.parseTypeRef()
			left = p.f.TypeCastExpression(source.Join(left.Span(), spanOf(ty)), left, ty, kind)

		case p.cur.Is(token.Question) && PrecAssignment >= minPrec:
			// `? :` ternary, precedence equal to assignment.
			p.next()
			p.skipNewlines()
			then := p.parseExpression(PrecAssignment)
			p.skipNewlines()
			p.expect(token.Colon, ":")
			p.skipNewlines()
			els := p.parseExpression(PrecAssignment)
			left = p.f.ConditionalExpression(source.Join(left.Span(), exprSpan(els)), left, then, els)

		case p.cur.Kind == token.Operator:
			lexeme := p.cur.Lexeme
			hint := token.FixityUnknown
			if p.cur.Op != nil {
				hint = p.cur.Op.Fixity
			}

			if lexeme == "=" && PrecAssignment >= minPrec {
				p.next()
				p.skipNewlines()
				value := p.parseExpression(PrecAssignment)
				left = p.f.AssignmentExpression(source.Join(left.Span(), exprSpan(value)), left, "", value)
				continue
			}
			if base, ok := compoundAssignBase(lexeme, p.ops); ok && PrecAssignment >= minPrec {
				p.next()
				p.skipNewlines()
				value := p.parseExpression(PrecAssignment)
				left = p.f.AssignmentExpression(source.Join(left.Span(), exprSpan(value)), left, base, value)
				continue
			}

			info, isInfix := p.ops.LookupInfix(lexeme)
			// Fixity resolution: whitespace hint combined with registry
			// lookup; when both prefix and infix apply and the hint says
			// binary, infix wins. A prefix hint means the
			// operator belongs to a following expression, not to us.
			if hint == token.FixityPrefix && p.ops.IsPrefix(lexeme) {
				return left
			}
			if !isInfix {
				if hint == token.FixityBinary || hint == token.FixityUnknown {
					p.sink.Error(diagnostics.ErrUnresolvedOperator, p.cur.Span, lexeme)
					p.next()
					right := p.parseExpression(minPrec)
					if right == nil {
						return left
					}
					left = p.f.BinaryExpression(source.Join(left.Span(), exprSpan(right)), lexeme, left, right)
					continue
				}
				return left
			}
			if info.Prec < minPrec {
				return left
			}
			if info.Assoc == ast.AssocNone && info.Prec == lastNonePrec {
				p.sink.Error(diagnostics.ErrUnexpectedToken, p.cur.Span, lexeme)
			}
			if info.Assoc == ast.AssocNone {
				lastNonePrec = info.Prec
			} else {
				lastNonePrec = -1
			}

			p.next()
			p.skipNewlines()
			nextMin := info.Prec + 1
			if info.Assoc == ast.AssocRight {
				nextMin = info.Prec
			}
			right := p.parseExpression(nextMin)
			if right == nil {
				return left
			}
			left = p.f.BinaryExpression(source.Join(left.Span(), exprSpan(right)), lexeme, left, right)

		default:
			return left
		}
	}
}

// compoundAssignBase recognizes `op=` spellings whose base operator is a
// registered infix operator (`+=`, `<<=`, user `+-=`), excluding the
// comparison operators that merely end in `=`.
func compoundAssignBase(lexeme string, ops *Registry) (string, bool) {
	if len(lexeme) < 2 || !strings.HasSuffix(lexeme, "=") {
		return "", false
	}
	switch lexeme {
	case "==", "!=", "<=", ">=":
		return "", false
	}
	base := lexeme[:len(lexeme)-1]
	if _, ok := ops.LookupInfix(base); !ok {
		return "", false
	}
	if _, selfInfix := ops.LookupInfix(lexeme); selfInfix {
		return "", false
	}
	return base, true
}

// parseUnary handles prefix operators, then a primary expression, then
// the postfix suffix chain.
func (p *Parser) parseUnary() ast.Expression {
	if !p.guardDepth() {
		return nil
	}
	defer p.unguard()

	if p.cur.Kind == token.Operator {
		lexeme := p.cur.Lexeme
		hint := token.FixityUnknown
		if p.cur.Op != nil {
			hint = p.cur.Op.Fixity
		}
		if hint != token.FixityPostfix && (p.ops.IsPrefix(lexeme) || hint == token.FixityPrefix) {
			opSpan := p.cur.Span
			p.next()
			operand := p.parseUnary()
			if operand == nil {
				return nil
			}
			span := source.Join(opSpan, operand.Span())
			if lexeme == "&" {
				// Reserved prefix `&`: the in-out argument marker.
				return p.f.InOutExpression(span, operand)
			}
			if !p.ops.IsPrefix(lexeme) {
				p.sink.Error(diagnostics.ErrUnresolvedOperator, opSpan, lexeme)
			}
			return p.f.UnaryExpression(span, lexeme, token.FixityPrefix, operand)
		}
	}

	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	return p.parsePostfix(expr)
}

// parsePostfix applies member access, calls, subscripts, forced unwrap,
// optional chaining, and registered postfix operators, left to right.
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.cur.IsOperatorText("."):
			expr = p.parseMemberAccess(expr)

		case p.cur.Is(token.LParen) && adjacentTo(expr, p.cur):
			args := p.parseCallArguments()
			expr = p.f.CallExpression(p.spanFrom(expr.Span()), expr, args)

		case p.cur.Is(token.LBracket) && adjacentTo(expr, p.cur):
			p.next()
			p.skipNewlines()
			var args []ast.CallArgument
			for !p.cur.Is(token.RBracket) && p.cur.Kind != token.EOF {
				args = append(args, ast.CallArgument{Value: p.parseExpression(0)})
				p.skipNewlines()
				if p.cur.Is(token.Comma) {
					p.next()
					p.skipNewlines()
					continue
				}
				break
			}
			p.expect(token.RBracket, "]")
			expr = p.f.SubscriptExpression(p.spanFrom(expr.Span()), expr, args)

		case p.cur.IsOperatorText("!") && p.cur.Op != nil && p.cur.Op.Fixity == token.FixityPostfix:
			span := source.Join(expr.Span(), p.cur.Span)
			p.next()
			expr = p.f.ForcedUnwrapExpression(span, expr)

		case p.cur.Is(token.Question) && adjacentTo(expr, p.cur) && p.startsChainedAccess():
			p.next()
			next := p.parseChainStep(expr)
			if next == nil {
				return expr
			}
			expr = p.f.OptionalChainingExpression(p.spanFrom(expr.Span()), expr, next)

		case p.cur.Kind == token.Operator && p.cur.Op != nil && p.cur.Op.Fixity == token.FixityPostfix && p.ops.IsPostfix(p.cur.Lexeme):
			span := source.Join(expr.Span(), p.cur.Span)
			lexeme := p.cur.Lexeme
			p.next()
			expr = p.f.UnaryExpression(span, lexeme, token.FixityPostfix, expr)

		default:
			return expr
		}
	}
}

func (p *Parser) startsChainedAccess() bool {
	return p.peek.IsOperatorText(".") || p.peek.Is(token.LBracket) || p.peek.Is(token.LParen)
}

// parseChainStep parses the single access that follows `?` in an optional
// chain; target is the expression before the `?`.
func (p *Parser) parseChainStep(target ast.Expression) ast.Expression {
	switch {
	case p.cur.IsOperatorText("."):
		return p.parseMemberAccess(target)
	case p.cur.Is(token.LBracket):
		p.next()
		var args []ast.CallArgument
		for !p.cur.Is(token.RBracket) && p.cur.Kind != token.EOF {
			args = append(args, ast.CallArgument{Value: p.parseExpression(0)})
			if p.cur.Is(token.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RBracket, "]")
		return p.f.SubscriptExpression(p.spanFrom(target.Span()), target, args)
	case p.cur.Is(token.LParen):
		args := p.parseCallArguments()
		return p.f.CallExpression(p.spanFrom(target.Span()), target, args)
	default:
		p.errUnexpected()
		return nil
	}
}

func (p *Parser) parseMemberAccess(target ast.Expression) ast.Expression {
	p.next() // '.'
	switch {
	case p.cur.Kind == token.Identifier:
		name := p.cur.Lexeme
		span := source.Join(target.Span(), p.cur.Span)
		p.next()
		return p.f.MemberAccessExpression(span, target, name, 0, false)
	case p.cur.Kind == token.Integer:
		idx := int(p.cur.Number.IntegerValue)
		span := source.Join(target.Span(), p.cur.Span)
		p.next()
		return p.f.MemberAccessExpression(span, target, "", idx, true)
	case p.cur.IsKeyword(token.KwInit):
		span := source.Join(target.Span(), p.cur.Span)
		p.next()
		if ident, ok := target.(*ast.IdentifierExpression); ok {
			ty := p.f.NamedTypeRef(ident.Span(), nil, ident.Name, nil, false)
			return p.f.InitializerReferenceExpression(span, ty)
		}
		return p.f.MemberAccessExpression(span, target, "init", 0, false)
	case p.cur.IsKeyword(token.KwDynamicType):
		span := source.Join(target.Span(), p.cur.Span)
		p.next()
		return p.f.DynamicTypeExpression(span, target)
	case p.cur.IsKeyword(token.KwSelf):
		// `T.self` reads as a reference to the type value itself; keep it
		// a named member so consumers see an ordinary access.
		span := source.Join(target.Span(), p.cur.Span)
		p.next()
		return p.f.MemberAccessExpression(span, target, "self", 0, false)
	default:
		p.errExpected("member name")
		return target
	}
}

// parseCallArguments consumes `( [label:] expr, ... )`.
func (p *Parser) parseCallArguments() []ast.CallArgument {
	p.next() // '('
	p.skipNewlines()
	var args []ast.CallArgument
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
		args = append(args, ast.CallArgument{Label: label, Value: value})
		p.skipNewlines()
		if p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	p.expect(token.RParen, ")")
	return args
}

func exprSpan(e ast.Expression) source.Span {
	if e == nil {
		return source.Span{}
	}
	return e.Span()
}

func spanOf(n ast.Node) source.Span {
	if n == nil {
		return source.Span{}
	}
	return n.Span()
}

// adjacent reports whether b starts exactly where a ends. parsePostfix
// uses the expression form, adjacentTo, to tell calls, subscripts and
// `a?.b` chaining from spaced tokens.
func adjacent(a, b token.Token) bool {
	return a.Span.End.Offset == b.Span.Start.Offset
}

func adjacentTo(e ast.Expression, t token.Token) bool {
	return e.Span().End.Offset == t.Span.Start.Offset
}
