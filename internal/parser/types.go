package parser

import (
	"strings"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/source"
	"github.com/larklang/compiler/internal/token"
)

// parseTypeRef parses a type reference: named (with nested qualifier and
// generic arguments), tuple,
// array (both `[T]` and postfix `T[]`), dictionary, function, optional,
// implicitly-unwrapped optional, and protocol composition.
func (p *Parser) parseTypeRef() ast.TypeRef {
	if !p.guardDepth() {
		return nil
	}
	defer p.unguard()

	base := p.parseTypeRefPrimary()
	if base == nil {
		return nil
	}
	return p.parseTypeRefSuffix(base)
}

func (p *Parser) parseTypeRefPrimary() ast.TypeRef {
	switch {
	case p.cur.Kind == token.Identifier:
		return p.parseNamedTypeRef(nil)

	case p.cur.Is(token.LParen):
		return p.parseParenTypeRef()

	case p.cur.Is(token.LBracket):
		start := p.cur.Span
		p.next()
		key := p.parseTypeRef()
		if p.cur.Is(token.Colon) {
			p.next()
			value := p.parseTypeRef()
			p.expect(token.RBracket, "]")
			return p.f.DictionaryTypeRef(p.spanFrom(start), key, value)
		}
		p.expect(token.RBracket, "]")
		return p.f.ArrayTypeRef(p.spanFrom(start), key)

	default:
		p.errExpected("type")
		return nil
	}
}

func (p *Parser) parseNamedTypeRef(qualifier *ast.NamedTypeRef) *ast.NamedTypeRef {
	start := p.cur.Span
	name := p.cur.Lexeme
	p.next()

	var args []ast.TypeRef
	written := false
	if p.cur.IsOperatorText("<") {
		written = true
		p.next()
		for {
			a := p.parseTypeRef()
			if a == nil {
				break
			}
			args = append(args, a)
			if p.cur.Is(token.Comma) {
				p.next()
				continue
			}
			break
		}
		if !p.consumeGT() {
			p.errExpected(">")
		}
	}

	ref := p.f.NamedTypeRef(p.spanFrom(start), qualifier, name, args, written)

	// Nested qualifier: `Outer.Inner` chains left to right.
	if p.cur.IsOperatorText(".") && p.peek.Kind == token.Identifier {
		p.next()
		return p.parseNamedTypeRef(ref)
	}
	return ref
}

// consumeGT consumes one `>`, splitting a longer operator run like `>>`
// so nested generic arguments (`Array<Array<Int>>`) close correctly.
func (p *Parser) consumeGT() bool {
	if p.cur.Kind != token.Operator || !strings.HasPrefix(p.cur.Lexeme, ">") {
		return false
	}
	if p.cur.Lexeme == ">" {
		p.next()
		return true
	}
	p.cur.Lexeme = p.cur.Lexeme[1:]
	p.cur.Span.Start.Column++
	p.cur.Span.Start.Offset++
	return true
}

// parseParenTypeRef parses `(T1, label: T2, ...)`, then decides between a
// function type (when `->` follows), a grouping (single unlabeled
// element), and a tuple type.
func (p *Parser) parseParenTypeRef() ast.TypeRef {
	start := p.cur.Span
	p.next() // '('
	p.skipNewlines()

	var elements []ast.TupleTypeElement
	variadic := false
	for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
		var label string
		if p.cur.Kind == token.Identifier && p.peek.Is(token.Colon) {
			label = p.cur.Lexeme
			p.next()
			p.next()
		}
		ty := p.parseTypeRef()
		if ty == nil {
			break
		}
		if p.cur.IsOperatorText("...") {
			variadic = true
			p.next()
		}
		elements = append(elements, ast.TupleTypeElement{Label: label, Ty: ty})
		p.skipNewlines()
		if p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	p.expect(token.RParen, ")")

	if p.cur.Is(token.Arrow) {
		p.next()
		ret := p.parseTypeRef()
		params := make([]ast.TypeRef, len(elements))
		for i, e := range elements {
			params[i] = e.Ty
		}
		return p.f.FunctionTypeRef(p.spanFrom(start), params, variadic, ret)
	}

	if len(elements) == 1 && elements[0].Label == "" {
		return elements[0].Ty
	}
	return p.f.TupleTypeRef(p.spanFrom(start), elements)
}

// parseTypeRefSuffix applies postfix type sugar: `T?`, `T!`, `T[]`,
// `(T) -> U` continuation for a bare named parameter type, and `P & Q`
// compositions.
func (p *Parser) parseTypeRefSuffix(base ast.TypeRef) ast.TypeRef {
	for {
		switch {
		case p.cur.Is(token.Question) && adjacentNode(base, p.cur):
			span := source.Join(base.Span(), p.cur.Span)
			p.next()
			base = p.f.OptionalTypeRef(span, base)

		case p.cur.IsOperatorText("!") && adjacentNode(base, p.cur):
			span := source.Join(base.Span(), p.cur.Span)
			p.next()
			base = p.f.ImplicitlyUnwrappedOptionalTypeRef(span, base)

		case p.cur.Is(token.LBracket) && p.peek.Is(token.RBracket):
			span := source.Join(base.Span(), p.peek.Span)
			p.next()
			p.next()
			base = p.f.ArrayTypeRef(span, base)

		case p.cur.Is(token.Arrow):
			p.next()
			ret := p.parseTypeRef()
			base = p.f.FunctionTypeRef(source.Join(base.Span(), spanOf(ret)), []ast.TypeRef{base}, false, ret)

		case p.cur.IsOperatorText("&"):
			named, ok := base.(*ast.NamedTypeRef)
			if !ok {
				return base
			}
			protos := []*ast.NamedTypeRef{named}
			for p.cur.IsOperatorText("&") {
				p.next()
				if p.cur.Kind != token.Identifier {
					p.errExpected("protocol name")
					break
				}
				protos = append(protos, p.parseNamedTypeRef(nil))
			}
			span := base.Span()
			if len(protos) > 0 {
				span = source.Join(span, protos[len(protos)-1].Span())
			}
			base = p.f.ProtocolCompositionTypeRef(span, protos)

		default:
			return base
		}
	}
}

func adjacentNode(n ast.Node, t token.Token) bool {
	return n.Span().End.Offset == t.Span.Start.Offset
}
