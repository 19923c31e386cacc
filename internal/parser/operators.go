package parser

import "github.com/larklang/compiler/internal/ast"

// Info is one infix operator registry entry: associativity and precedence
// (prefix and postfix operators are recorded by name only).
type Info struct {
	Assoc ast.OperatorAssociativity
	Prec  int
}

// Registry is the operator table the parser owns and updates on
// encountering an `operator` declaration mid-parse. The
// default population mirrors the global scope's built-in overload sets:
// arithmetic, comparison, bitwise, logical, and range operators.
type Registry struct {
	infix   map[string]Info
	prefix  map[string]bool
	postfix map[string]bool
}

// Precedence anchors shared with the expression parser.
const (
	PrecAssignment = 90 // `=`, compound assignment, and `? :`
	PrecCast       = 132
)

func NewRegistry() *Registry {
	r := &Registry{
		infix:   map[string]Info{},
		prefix:  map[string]bool{},
		postfix: map[string]bool{},
	}
	left := func(prec int, names ...string) {
		for _, n := range names {
			r.infix[n] = Info{Assoc: ast.AssocLeft, Prec: prec}
		}
	}
	none := func(prec int, names ...string) {
		for _, n := range names {
			r.infix[n] = Info{Assoc: ast.AssocNone, Prec: prec}
		}
	}
	left(160, "<<", ">>")
	left(150, "*", "/", "%", "&")
	left(140, "+", "-", "|", "^")
	none(135, "..<", "...")
	none(130, "<", "<=", ">", ">=", "==", "!=")
	left(120, "&&")
	left(110, "||")

	for _, n := range []string{"-", "+", "!", "~", "&"} {
		r.prefix[n] = true
	}
	return r
}

// RegisterInfix installs a user infix operator; false when the name is
// already registered (a redefinition diagnostic follows at the caller).
func (r *Registry) RegisterInfix(name string, assoc ast.OperatorAssociativity, prec int) bool {
	if _, ok := r.infix[name]; ok {
		return false
	}
	r.infix[name] = Info{Assoc: assoc, Prec: prec}
	return true
}

func (r *Registry) RegisterPrefix(name string) bool {
	if r.prefix[name] {
		return false
	}
	r.prefix[name] = true
	return true
}

func (r *Registry) RegisterPostfix(name string) bool {
	if r.postfix[name] {
		return false
	}
	r.postfix[name] = true
	return true
}

func (r *Registry) LookupInfix(name string) (Info, bool) {
	info, ok := r.infix[name]
	return info, ok
}

func (r *Registry) IsPrefix(name string) bool  { return r.prefix[name] }
func (r *Registry) IsPostfix(name string) bool { return r.postfix[name] }
