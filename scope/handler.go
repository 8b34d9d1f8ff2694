package scope

import "github.com/mna/jsuniq/ast"

// RedeclarationHandler is consulted by the scope builder whenever a
// declaration's own scope already has a binding of the same name.
// Redeclaration handling is delegated to an injected handler rather than
// hardcoded. Scope.Declare itself never checks; the caller calls
// GetOwnSlot first and, on a hit, reports it here before deciding
// whether to declare anyway.
type RedeclarationHandler interface {
	Redeclaration(s *Scope, name string, existing, attempted *ast.Node)
}

// NoopRedeclarationHandler ignores every redeclaration. It is the default
// when no handler is supplied, matching real-world permissive re-parsing
// of already-lowered code: the scope builder is not a validator.
type NoopRedeclarationHandler struct{}

// Redeclaration implements RedeclarationHandler.
func (NoopRedeclarationHandler) Redeclaration(*Scope, string, *ast.Node, *ast.Node) {}

// RedeclarationFunc adapts a plain function to RedeclarationHandler.
type RedeclarationFunc func(s *Scope, name string, existing, attempted *ast.Node)

// Redeclaration implements RedeclarationHandler.
func (f RedeclarationFunc) Redeclaration(s *Scope, name string, existing, attempted *ast.Node) {
	f(s, name, existing, attempted)
}

// Factory creates scopes on behalf of a traversal. The scope builder
// depends on this interface, not on *Tree directly, so a test can supply
// a recording or restricted fake. *Tree satisfies Factory.
type Factory interface {
	NewScope(parent *Scope, kind Kind, root *ast.Node) *Scope
}

var (
	_ RedeclarationHandler = NoopRedeclarationHandler{}
	_ RedeclarationHandler = RedeclarationFunc(nil)
	_ Factory              = (*Tree)(nil)
)
