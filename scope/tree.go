package scope

import (
	"github.com/dolthub/swiss"
	"github.com/mna/jsuniq/ast"
)

// Tree is the arena owning every Scope built for one Scope Builder pass. It
// assigns scope ids and hands out the whole-tree declaration sequence
// numbers Var.Seq records.
type Tree struct {
	scopes []*Scope
	seq    int
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// NewGlobal creates and returns the Tree's root Global scope. It must be
// called exactly once, before any other NewScope call.
func (t *Tree) NewGlobal() *Scope {
	return t.newScope(-1, Global, nil)
}

// NewScope creates a child scope of parent with the given kind, rooted at
// root - the AST node (FUNCTION, BLOCK, FOR, CATCH, etc.) that introduces
// it. parent must not be nil; use NewGlobal for the tree's root scope.
func (t *Tree) NewScope(parent *Scope, kind Kind, root *ast.Node) *Scope {
	s := t.newScope(parent.id, kind, root)
	return s
}

func (t *Tree) newScope(parentID int, kind Kind, root *ast.Node) *Scope {
	s := &Scope{
		tree:     t,
		id:       len(t.scopes),
		parentID: parentID,
		Kind:     kind,
		RootNode: root,
		table:    swiss.NewMap[string, *Var](8),
	}
	t.scopes = append(t.scopes, s)
	return s
}

func (t *Tree) nextSeq() int {
	n := t.seq
	t.seq++
	return n
}

// Scopes returns every scope in the tree, in creation order: the order
// NewGlobal/NewScope were called, which is a pre-order walk of the scope
// tree itself since the builder always creates a scope before descending
// into any of its children.
func (t *Tree) Scopes() []*Scope {
	out := make([]*Scope, len(t.scopes))
	copy(out, t.scopes)
	return out
}

// ByRoot returns the scope rooted at node, if any scope built so far was
// created with that root.
func (t *Tree) ByRoot(node *ast.Node) (*Scope, bool) {
	for _, s := range t.scopes {
		if s.RootNode == node {
			return s, true
		}
	}
	return nil, false
}

// ChildrenOf returns parent's immediate child scopes, in creation order.
// Used by the Contextual renamer, which walks the already-built scope
// tree independently of the AST (the Scope Builder's own traversal is
// AST-driven and never needs this).
func (t *Tree) ChildrenOf(parent *Scope) []*Scope {
	var out []*Scope
	for _, s := range t.scopes {
		if s.parentID == parent.id {
			out = append(out, s)
		}
	}
	return out
}
