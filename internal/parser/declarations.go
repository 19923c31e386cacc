package parser

import (
	"strconv"
	"strings"

	"github.com/larklang/compiler/internal/ast"
	"github.com/larklang/compiler/internal/diagnostics"
	"github.com/larklang/compiler/internal/token"
)

// parseDeclaration dispatches the declaration grammar.
// isMember is true inside a type body, where let/var groups become
// properties and func becomes a method.
func (p *Parser) parseDeclaration(isMember bool) ast.Statement {
	isStatic := false
	if p.cur.IsKeyword(token.KwStatic) {
		isStatic = true
		p.next()
	}

	switch p.cur.Keyword {
	case token.KwImport:
		return p.parseImport()
	case token.KwLet:
		return p.parseConstantDeclaration(isMember, isStatic)
	case token.KwVar:
		return p.parseVariableDeclaration(isMember, isStatic)
	case token.KwTypealias:
		return p.parseTypeAlias()
	case token.KwFunc:
		return p.parseFunctionDeclaration(isMember, isStatic)
	case token.KwEnum:
		return p.parseEnumDeclaration()
	case token.KwStruct:
		return p.parseStructDeclaration()
	case token.KwClass:
		return p.parseClassDeclaration()
	case token.KwProtocol:
		return p.parseProtocolDeclaration()
	case token.KwExtension:
		return p.parseExtensionDeclaration()
	case token.KwInit:
		return p.parseInitializerDeclaration()
	case token.KwDeinit:
		return p.parseDeinitializerDeclaration()
	case token.KwSubscript:
		return p.parseSubscriptDeclaration()
	case token.KwOperator:
		return p.parseOperatorDeclaration()
	default:
		p.errUnexpected()
		p.sync()
		return nil
	}
}

func (p *Parser) parseImport() ast.Statement {
	start := p.cur.Span
	p.next() // 'import'
	var parts []string
	name := p.expectIdentifier("module name")
	if name == "" {
		p.sync()
		return nil
	}
	parts = append(parts, name)
	for p.cur.IsOperatorText(".") && p.peek.Kind == token.Identifier {
		p.next()
		parts = append(parts, p.cur.Lexeme)
		p.next()
	}
	return p.f.ImportStatement(p.spanFrom(start), strings.Join(parts, "."))
}

// parseBindingList parses the comma-separated bindings of a let/var
// group: `pattern [: Type] [= expr], ...`.
func (p *Parser) parseBindingList() []ast.Binding {
	var bindings []ast.Binding
	for {
		var b ast.Binding
		pat := p.parseBindingPattern()
		if pat == nil {
			break
		}
		if ident, ok := pat.(*ast.IdentifierPattern); ok {
			b.Name = ident.Name
		} else {
			b.Pattern = pat
		}
		if p.cur.Is(token.Colon) {
			p.next()
			b.TypeAnnotation = p.parseTypeRef()
		}
		if p.cur.IsOperatorText("=") {
			p.next()
			p.skipNewlines()
			b.Value = p.parseExpression(0)
		}
		bindings = append(bindings, b)
		if p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	return bindings
}

func (p *Parser) parseConstantDeclaration(isMember, isStatic bool) ast.Statement {
	start := p.cur.Span
	p.next() // 'let'
	bindings := p.parseBindingList()
	return p.f.ConstantDeclaration(p.spanFrom(start), bindings, isMember, isStatic)
}

// parseVariableDeclaration parses stored `var` groups and computed
// properties. An accessor block may follow the last binding:
// `{ get { } set { } }`, a requirement-style `{ get set }`, or a bare
// statement list forming an implicit getter.
func (p *Parser) parseVariableDeclaration(isMember, isStatic bool) ast.Statement {
	start := p.cur.Span
	p.next() // 'var'
	bindings := p.parseBindingList()

	getters := make([]*ast.BlockStatement, len(bindings))
	setters := make([]*ast.BlockStatement, len(bindings))
	setterName := "newValue"

	if p.cur.Is(token.LBrace) && len(bindings) > 0 {
		last := len(bindings) - 1
		getters[last], setters[last], setterName = p.parseAccessorBlock()
	}
	return p.f.VariableDeclaration(p.spanFrom(start), bindings, getters, setters, setterName, isMember, isStatic)
}

// parseAccessorBlock parses `{ ... }` after a var or subscript: explicit
// get/set accessors, a get/set requirement with empty bodies, or an
// implicit getter.
func (p *Parser) parseAccessorBlock() (getter, setter *ast.BlockStatement, setterName string) {
	setterName = "newValue"
	open := p.cur.Span
	p.next() // '{'
	p.skipNewlines()

	if p.cur.IsKeyword(token.KwGet) || p.cur.IsKeyword(token.KwSet) {
		for p.cur.IsKeyword(token.KwGet) || p.cur.IsKeyword(token.KwSet) {
			isGet := p.cur.Keyword == token.KwGet
			kwSpan := p.cur.Span
			p.next()
			if !isGet && p.cur.Is(token.LParen) {
				p.next()
				setterName = p.expectIdentifier("setter value name")
				p.expect(token.RParen, ")")
			}
			var body *ast.BlockStatement
			if p.cur.Is(token.LBrace) {
				body = p.parseBlock()
			} else {
				// Requirement form `{ get set }`: record an empty block so
				// the analyzer can tell "computed requirement" from
				// "stored property" (nil).
				body = p.f.BlockStatement(kwSpan, nil)
			}
			if isGet {
				getter = body
			} else {
				setter = body
			}
			p.skipNewlines()
		}
		p.expect(token.RBrace, "}")
		return getter, setter, setterName
	}

	// Implicit getter: the whole block is the get body.
	var stmts []ast.Statement
	for !p.cur.Is(token.RBrace) && p.cur.Kind != token.EOF {
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(token.RBrace, "}")
	return p.f.BlockStatement(p.spanFrom(open), stmts), nil, setterName
}

func (p *Parser) parseTypeAlias() ast.Statement {
	start := p.cur.Span
	p.next() // 'typealias'
	name := p.expectIdentifier("type alias name")
	generics := p.parseGenericParameterClause()
	var target ast.TypeRef
	if p.cur.IsOperatorText("=") {
		p.next()
		target = p.parseTypeRef()
	}
	if target == nil {
		// Inside protocols a bare `typealias Name` declares an associated
		// type in the pre-`associatedtype` spelling.
		return p.f.AssociatedTypeDeclaration(p.spanFrom(start), name, nil)
	}
	return p.f.TypeAliasDeclaration(p.spanFrom(start), name, generics, target)
}

// parseGenericParameterClause parses `<T, U: P>` plus an optional
// trailing `where` clause after the parameter list's closing `>`.
func (p *Parser) parseGenericParameterClause() *ast.GenericParameterList {
	if !p.cur.IsOperatorText("<") {
		return nil
	}
	start := p.cur.Span
	p.next()
	var params []ast.GenericParameter
	for p.cur.Kind == token.Identifier {
		param := ast.GenericParameter{Name: p.cur.Lexeme}
		p.next()
		if p.cur.Is(token.Colon) {
			p.next()
			bound := p.parseTypeRef()
			param.Constraints = append(param.Constraints, ast.GenericConstraint{
				ParamName: param.Name, Kind: ast.ConstraintConformance, Bound: bound,
			})
		}
		params = append(params, param)
		if p.cur.Is(token.Comma) {
			p.next()
			continue
		}
		break
	}
	if !p.consumeGT() {
		p.errExpected(">")
	}

	if p.cur.IsKeyword(token.KwWhere) {
		p.next()
		for {
			name := p.expectIdentifier("generic parameter name")
			kind := ast.ConstraintConformance
			if p.cur.Is(token.Colon) {
				p.next()
			} else if p.cur.IsOperatorText("==") {
				kind = ast.ConstraintSameType
				p.next()
			} else {
				p.errExpected(": or ==")
			}
			bound := p.parseTypeRef()
			for i := range params {
				if params[i].Name == name {
					params[i].Constraints = append(params[i].Constraints, ast.GenericConstraint{
						ParamName: name, Kind: kind, Bound: bound,
					})
				}
			}
			if p.cur.Is(token.Comma) {
				p.next()
				continue
			}
			break
		}
	}
	return p.f.GenericParameterList(p.spanFrom(start), params)
}

// parseParameterClause parses `(external local: Type = default, ...)`
// with `inout`, variadic `...`, and `_` external-name suppression.
func (p *Parser) parseParameterClause() []ast.Parameter {
	var params []ast.Parameter
	if !p.expect(token.LParen, "(") {
		return params
	}
	p.skipNewlines()
	for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
		var param ast.Parameter
		if p.cur.IsKeyword(token.KwInout) {
			param.InOut = true
			p.next()
		}
		switch {
		case p.cur.Is(token.Underscore):
			param.ExternalName = "_"
			p.next()
			param.LocalName = p.expectIdentifier("parameter name")
		case p.cur.Kind == token.Identifier:
			first := p.cur.Lexeme
			p.next()
			if p.cur.Kind == token.Identifier {
				param.ExternalName = first
				param.LocalName = p.cur.Lexeme
				p.next()
			} else {
				param.LocalName = first
			}
		default:
			p.errExpected("parameter")
			break
		}
		if p.expect(token.Colon, ":") {
			param.TypeAnnotation = p.parseTypeRef()
		}
		if p.cur.IsOperatorText("...") {
			param.Variadic = true
			p.next()
		}
		if p.cur.IsOperatorText("=") {
			p.next()
			param.Default = p.parseExpression(0)
		}
		params = append(params, param)
		p.skipNewlines()
		if p.cur.Is(token.Comma) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	p.expect(token.RParen, ")")
	return params
}

func (p *Parser) parseFunctionDeclaration(isMember, isStatic bool) ast.Statement {
	start := p.cur.Span
	p.next() // 'func'

	var name string
	switch {
	case p.cur.Kind == token.Identifier:
		name = p.cur.Lexeme
		p.next()
	case p.cur.Kind == token.Operator:
		name = p.cur.Lexeme
		p.next()
	default:
		p.errExpected("function name")
	}

	generics := p.parseGenericParameterClause()
	params := p.parseParameterClause()

	throws := false
	if p.cur.IsKeyword(token.KwThrows) {
		throws = true
		p.next()
	}

	var ret ast.TypeRef
	if p.cur.Is(token.Arrow) {
		p.next()
		ret = p.parseTypeRef()
	}

	var body *ast.BlockStatement
	if p.cur.Is(token.LBrace) {
		body = p.parseBlock()
	}
	return p.f.FunctionDeclaration(p.spanFrom(start), name, generics, params, ret, body, isMember, isStatic, throws)
}

// parseInheritanceClause parses `: A, B, C` as named type references;
// which entry is a superclass versus a protocol (or an enum raw type) is
// the analyzer's call.
func (p *Parser) parseInheritanceClause() []*ast.NamedTypeRef {
	if !p.cur.Is(token.Colon) {
		return nil
	}
	p.next()
	var refs []*ast.NamedTypeRef
	for p.cur.Kind == token.Identifier {
		refs = append(refs, p.parseNamedTypeRef(nil))
		if p.cur.Is(token.Comma) {
			p.next()
			continue
		}
		break
	}
	return refs
}

// parseMemberBlock parses `{ decl* }` of a struct/class/protocol/
// extension body.
func (p *Parser) parseMemberBlock() []ast.Declaration {
	var members []ast.Declaration
	if !p.expect(token.LBrace, "{") {
		return members
	}
	for {
		p.skipNewlines()
		if p.cur.Is(token.RBrace) || p.cur.Kind == token.EOF {
			break
		}
		before := p.cur
		s := p.parseDeclaration(true)
		if d, ok := s.(ast.Declaration); ok && d != nil {
			members = append(members, d)
		}
		if p.cur == before && !p.cur.Is(token.RBrace) && p.cur.Kind != token.EOF {
			p.errUnexpected()
			p.next()
		}
	}
	p.expect(token.RBrace, "}")
	return members
}

func (p *Parser) parseStructDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'struct'
	name := p.expectIdentifier("struct name")
	generics := p.parseGenericParameterClause()
	protocols := p.parseInheritanceClause()
	members := p.parseMemberBlock()
	return p.f.StructDeclaration(p.spanFrom(start), name, generics, protocols, members)
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'class'
	name := p.expectIdentifier("class name")
	generics := p.parseGenericParameterClause()
	inherited := p.parseInheritanceClause()
	members := p.parseMemberBlock()
	// The analyzer decides which inheritance entry is the superclass
	// (and enforces that it appears first); the parser records all of
	// them uniformly.
	return p.f.ClassDeclaration(p.spanFrom(start), name, generics, nil, inherited, members)
}

func (p *Parser) parseProtocolDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'protocol'
	name := p.expectIdentifier("protocol name")
	inherited := p.parseInheritanceClause()
	members := p.parseMemberBlock()
	return p.f.ProtocolDeclaration(p.spanFrom(start), name, inherited, members)
}

func (p *Parser) parseExtensionDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'extension'
	name := p.expectIdentifier("type name")
	generics := p.parseGenericParameterClause()
	protocols := p.parseInheritanceClause()
	members := p.parseMemberBlock()
	return p.f.ExtensionDeclaration(p.spanFrom(start), name, generics, protocols, members)
}

func (p *Parser) parseEnumDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'enum'
	name := p.expectIdentifier("enum name")
	generics := p.parseGenericParameterClause()
	inherited := p.parseInheritanceClause()

	var cases []ast.EnumCase
	var members []ast.Declaration
	if p.expect(token.LBrace, "{") {
		for {
			p.skipNewlines()
			if p.cur.Is(token.RBrace) || p.cur.Kind == token.EOF {
				break
			}
			if p.cur.IsKeyword(token.KwCase) {
				p.next()
				for {
					c := p.parseEnumCase()
					if c == nil {
						break
					}
					cases = append(cases, *c)
					if p.cur.Is(token.Comma) {
						p.next()
						continue
					}
					break
				}
				continue
			}
			before := p.cur
			s := p.parseDeclaration(true)
			if d, ok := s.(ast.Declaration); ok && d != nil {
				members = append(members, d)
			}
			if p.cur == before && !p.cur.Is(token.RBrace) && p.cur.Kind != token.EOF {
				p.errUnexpected()
				p.next()
			}
		}
		p.expect(token.RBrace, "}")
	}
	return p.f.EnumDeclaration(p.spanFrom(start), name, generics, nil, inherited, cases, members)
}

func (p *Parser) parseEnumCase() *ast.EnumCase {
	if p.cur.Kind != token.Identifier {
		p.errExpected("enum case name")
		return nil
	}
	c := &ast.EnumCase{Name: p.cur.Lexeme}
	p.next()
	if p.cur.Is(token.LParen) {
		p.next()
		for !p.cur.Is(token.RParen) && p.cur.Kind != token.EOF {
			var assoc ast.Parameter
			if p.cur.Kind == token.Identifier && p.peek.Is(token.Colon) {
				assoc.ExternalName = p.cur.Lexeme
				assoc.LocalName = p.cur.Lexeme
				p.next()
				p.next()
			}
			assoc.TypeAnnotation = p.parseTypeRef()
			c.Associated = append(c.Associated, assoc)
			if p.cur.Is(token.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expect(token.RParen, ")")
	} else if p.cur.IsOperatorText("=") {
		p.next()
		c.RawValue = p.parseExpression(0)
	}
	return c
}

func (p *Parser) parseInitializerDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'init'
	kind := ast.InitDesignated
	if p.cur.Is(token.Question) {
		kind = ast.InitFailable
		p.next()
	}
	generics := p.parseGenericParameterClause()
	params := p.parseParameterClause()
	var body *ast.BlockStatement
	if p.cur.Is(token.LBrace) {
		body = p.parseBlock()
	}
	return p.f.InitializerDeclaration(p.spanFrom(start), generics, params, kind, body)
}

func (p *Parser) parseDeinitializerDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'deinit'
	body := p.parseBlock()
	return p.f.DeinitializerDeclaration(p.spanFrom(start), body)
}

func (p *Parser) parseSubscriptDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'subscript'
	params := p.parseParameterClause()
	var ret ast.TypeRef
	if p.cur.Is(token.Arrow) {
		p.next()
		ret = p.parseTypeRef()
	}
	var getter, setter *ast.BlockStatement
	setterName := "newValue"
	if p.cur.Is(token.LBrace) {
		getter, setter, setterName = p.parseAccessorBlock()
	}
	return p.f.SubscriptDeclaration(p.spanFrom(start), params, ret, getter, setter, setterName)
}

// parseOperatorDeclaration parses
// `operator <fixity> <op> { associativity <x> precedence <n> }` and
// installs the operator into the registry before parsing continues, so a
// following expression can already use it.
func (p *Parser) parseOperatorDeclaration() ast.Statement {
	start := p.cur.Span
	p.next() // 'operator'

	fixity := ast.OpFixityInfix
	switch {
	case p.cur.IsKeyword(token.KwInfix):
		p.next()
	case p.cur.IsKeyword(token.KwPrefix):
		fixity = ast.OpFixityPrefix
		p.next()
	case p.cur.IsKeyword(token.KwPostfix):
		fixity = ast.OpFixityPostfix
		p.next()
	default:
		p.errExpected("infix, prefix, or postfix")
	}

	var name string
	if p.cur.Kind == token.Operator {
		name = p.cur.Lexeme
		p.next()
	} else {
		p.errExpected("operator")
	}

	assoc := ast.AssocNone
	prec := 100
	hasAssoc, hasPrec := false, false
	if p.expect(token.LBrace, "{") {
		for {
			p.skipNewlines()
			switch {
			case p.cur.IsKeyword(token.KwAssociativity):
				p.next()
				hasAssoc = true
				switch {
				case p.cur.IsKeyword(token.KwLeft):
					assoc = ast.AssocLeft
					p.next()
				case p.cur.IsKeyword(token.KwRight):
					assoc = ast.AssocRight
					p.next()
				case p.cur.IsKeyword(token.KwNone):
					assoc = ast.AssocNone
					p.next()
				default:
					p.errExpected("left, right, or none")
				}
			case p.cur.IsKeyword(token.KwPrecedence):
				p.next()
				hasPrec = true
				if p.cur.Kind == token.Integer {
					v, err := strconv.Atoi(p.cur.Lexeme)
					if err == nil {
						prec = v
					}
					p.next()
				} else {
					p.errExpected("precedence level")
				}
			case p.cur.Is(token.RBrace), p.cur.Kind == token.EOF:
				p.expect(token.RBrace, "}")
				decl := p.f.OperatorDeclaration(p.spanFrom(start), name, fixity, assoc, prec, hasAssoc, hasPrec)
				p.registerOperator(decl)
				return decl
			default:
				p.errUnexpected()
				p.next()
			}
		}
	}
	decl := p.f.OperatorDeclaration(p.spanFrom(start), name, fixity, assoc, prec, hasAssoc, hasPrec)
	p.registerOperator(decl)
	return decl
}

func (p *Parser) registerOperator(decl *ast.OperatorDeclaration) {
	if decl.Name == "" {
		return
	}
	ok := false
	switch decl.Fixity {
	case ast.OpFixityInfix:
		ok = p.ops.RegisterInfix(decl.Name, decl.Associativity, decl.Precedence)
	case ast.OpFixityPrefix:
		ok = p.ops.RegisterPrefix(decl.Name)
	case ast.OpFixityPostfix:
		ok = p.ops.RegisterPostfix(decl.Name)
	}
	if !ok {
		p.sink.Error(diagnostics.ErrOperatorRedeclaration, decl.Span(), decl.Name)
	}
}
