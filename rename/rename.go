// Package rename implements two renaming strategies: Contextual
// (collision-avoiding, original names kept unless shadowed) and Inline
// (every local unconditionally renamed to a fresh globally-unique name).
//
// Both strategies share one traversal: decide a new name per scope.Var
// (Contextual and Inline differ only in this "decide" step, in
// contextual.go and inline.go respectively), then a single reference-
// rewriting pass (in this file) rewrites every NAME/IMPORT_STAR node in
// the tree - declaration sites and use sites alike - to its Var's decided
// name.
//
// The reference pass mirrors scopebuilder's own recursive descent (the
// same single-switch traversal shape), but needs only one "current
// scope" parameter where the builder needs two
// (hoist, block): Scope.GetSlot already walks up through every
// intermediate parent, so resolving a reference from the innermost
// lexical scope active at that AST position always reaches whichever
// scope actually declared it, hoisted or not.
package rename

import (
	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/convention"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/token"
	"github.com/mna/jsuniq/uniqueid"
)

// Config carries both strategies' options. Fields Contextual does not use
// are simply ignored by it.
type Config struct {
	// RemoveConst strips the const-ness of declarations whose name is, by
	// convention, already a constant (ALL_CAPS) - Inline only, since only
	// Inline prepares names for a later inlining pass that requires it.
	RemoveConst bool

	// Convention answers which names are constants by convention. Required
	// when RemoveConst is set; ignored otherwise.
	Convention convention.Convention

	// LocalNamePrefix is inserted between "$jscomp$" and the numeric
	// suffix Inline assigns, letting a caller keep multiple independently
	// renamed compilation units' names apart (e.g. "m1$", "m2$").
	LocalNamePrefix string

	// MangleUnderscore rewrites a leading "_" in a local's original name
	// to "JSCompiler_" before suffixing - Inline only.
	MangleUnderscore bool

	// IDs supplies the numeric suffixes Inline assigns. Required for
	// Inline; unused by Contextual.
	IDs *uniqueid.Source
}

type renamer struct {
	tree    *scope.Tree
	renamed map[*scope.Var]string
}

// apply rewrites every NAME/IMPORT_STAR node reachable from root according
// to r.renamed.
func (r *renamer) apply(root *ast.Node, global *scope.Scope) {
	r.refScan(global, root)
}

// Apply rewrites every NAME/IMPORT_STAR node reachable from root, renaming
// each one whose resolved scope.Var appears in renamed to the given name.
// Exported so package invert (a separate, later pass over a freshly
// rebuilt tree) can reuse the same reference-resolution walk rather than
// reimplementing it.
func Apply(tree *scope.Tree, global *scope.Scope, root *ast.Node, renamed map[*scope.Var]string) {
	rn := &renamer{tree: tree, renamed: renamed}
	rn.apply(root, global)
}

// refScan is the reference-resolution mirror of scopebuilder's scan: the
// same dispatch on scope-introducing node kinds, but looking the already-
// built scope up by root instead of creating it, and resolving (rather
// than declaring) every bare identifier it reaches.
func (r *renamer) refScan(cur *scope.Scope, n *ast.Node) {
	if n == nil {
		return
	}

	switch n.Token {
	case token.NAME, token.IMPORT_STAR:
		r.resolveRef(cur, n)
		if n.DeclInit != nil {
			r.refScan(cur, n.DeclInit) // a simple declarator's initializer
		}

	case token.STRING_KEY:
		if n.FirstChild == nil {
			r.resolveRef(cur, n) // shorthand property: key doubles as binding/use
			return
		}
		r.refScan(cur, n.FirstChild)

	case token.FUNCTION, token.ARROW:
		r.refScanFunction(cur, n)

	case token.CLASS:
		r.refScanClass(cur, n)

	case token.FOR, token.FOR_IN, token.FOR_OF:
		s, _ := r.tree.ByRoot(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.refScan(s, c)
		}

	case token.SWITCH:
		children := n.Children()
		if len(children) == 0 {
			return
		}
		r.refScan(cur, children[0])
		s, _ := r.tree.ByRoot(n)
		for _, c := range children[1:] {
			r.refScan(s, c)
		}

	case token.CATCH:
		s, _ := r.tree.ByRoot(n)
		if param := ast.CatchParam(n); param != nil {
			r.refScan(s, param)
		}
		if body := ast.CatchBody(n); body != nil {
			for c := body.FirstChild; c != nil; c = c.NextSibling {
				r.refScan(s, c)
			}
		}

	case token.BLOCK:
		if !ast.CreatesBlockScope(n) {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.refScan(cur, c)
			}
			return
		}
		s, _ := r.tree.ByRoot(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.refScan(s, c)
		}

	case token.MODULE_BODY:
		s, _ := r.tree.ByRoot(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.refScan(s, c)
		}

	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.refScan(cur, c)
		}
		if n.DeclInit != nil {
			r.refScan(cur, n.DeclInit)
		}
	}
}

func (r *renamer) refScanFunction(cur *scope.Scope, fn *ast.Node) {
	fnScope, ok := r.tree.ByRoot(fn)
	if !ok {
		return
	}
	if name := ast.FunctionName(fn); name != nil {
		if ast.IsFunctionExpression(fn) {
			r.resolveRef(fnScope, name) // bleeding name: self-reference, own scope
		} else {
			r.resolveRef(cur, name) // declaration: bound in the enclosing scope
		}
	}
	if params := ast.FunctionParams(fn); params != nil {
		r.refScan(fnScope, params)
	}
	if body := ast.FunctionBody(fn); body != nil {
		bodyScope, _ := r.tree.ByRoot(body)
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			r.refScan(bodyScope, c)
		}
	} else if ast.IsArrowFunction(fn) && fn.LastChild != nil && fn.LastChild.Token != token.PARAM_LIST {
		r.refScan(fnScope, fn.LastChild)
	}
}

func (r *renamer) refScanClass(cur *scope.Scope, n *ast.Node) {
	classScope, ok := r.tree.ByRoot(n)
	if !ok {
		return
	}
	name := ast.ClassName(n)
	if name != nil {
		if ast.IsClassExpression(n) {
			r.resolveRef(classScope, name) // bleeding name: self-reference, own scope
		} else {
			r.resolveRef(cur, name) // declaration: bound in the enclosing scope
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c == name {
			continue
		}
		r.refScan(classScope, c)
	}
}

// resolveRef looks n's current text up in cur's scope chain. It is called
// uniformly for declaration-site and use-site identifiers alike: a
// declaration site resolves to exactly its own Var, so renaming it here
// instead of at decide-time is equivalent and keeps this the single place
// any node's text is mutated.
func (r *renamer) resolveRef(cur *scope.Scope, n *ast.Node) {
	if cur == nil {
		return
	}
	v, ok := cur.GetSlot(n.String())
	if !ok {
		return // unresolved: a free/global reference this pass never declared
	}
	if newName, has := r.renamed[v]; has && newName != n.String() {
		n.SetString(newName)
	}
}
