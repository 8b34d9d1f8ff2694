// Package scopebuilder walks a parsed AST and populates a scope.Tree with
// every scope and binding it introduces.
//
// The builder is a single recursive descent that threads a pair of
// "current scope" values through one big statement/expression switch rather than
// dispatching through separate typed visitor methods per grammar
// production. Here the pair is (hoist, block): hoist is the scope a `var`
// declaration's name ultimately lands in (the nearest Function, Module or
// Global scope), block is the nearest lexical scope a
// `let`/`const`/`class`/function declaration lands in. The two coincide
// at the top level of a script or module and split everywhere else:
// inside a function body hoist is the Function scope and block starts out
// as the FunctionBlock scope, and every nested block, for, switch or catch
// scope becomes the new block while hoist stays put.
//
// Scope Builder makes one complete pass before the Renamer ever looks at
// a reference, so declarations never need to be hoisted ahead of their
// textual position within this pass: by the time Build returns, every
// binding introduced anywhere in the tree already has its final home
// scope, regardless of the order statements were visited in.
package scopebuilder

import (
	"fmt"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/token"
)

// Config carries the builder's injected capabilities: a pluggable
// RedeclarationHandler and ScopeFactory.
type Config struct {
	// Redecl is consulted whenever a declaration's own scope already holds
	// a binding of the same name. Defaults to
	// scope.NoopRedeclarationHandler{}.
	Redecl scope.RedeclarationHandler

	// Factory creates scopes on the builder's behalf. Defaults to the Tree
	// passed to Build.
	Factory scope.Factory

	// ChangeRoots, if non-empty, marks the AST subtrees being rebuilt in an
	// incremental pass. Every scope created while the builder is anywhere
	// inside one of these subtrees has its Dirty flag set; scopes outside
	// every change root are left with Dirty false. Build still walks and
	// rebuilds the entire tree regardless - this only annotates the
	// result for a downstream consumer that wants to skip untouched
	// scopes.
	ChangeRoots map[*ast.Node]bool
}

// IllegalScopeRootError is the fatal panic value Build raises when asked
// to root a scope tree at a node whose token can never be a scope's own
// root - only ROOT qualifies; everything else must be reached by walking
// down from one.
type IllegalScopeRootError struct {
	Node *ast.Node
}

func (e IllegalScopeRootError) Error() string {
	return fmt.Sprintf("scopebuilder: illegal scope root: %s", e.Node.Token)
}

// Build walks root (a ROOT node, whose children are one SCRIPT or
// MODULE_BODY per input) and returns the Global scope, populated with
// every scope and binding reachable from root. Build panics with an
// IllegalScopeRootError if root is not a ROOT node - this is the one
// fatal error kind in this pass, everything else routes through Redecl.
func Build(tree *scope.Tree, root *ast.Node, cfg Config) *scope.Scope {
	if root.Token != token.ROOT {
		panic(IllegalScopeRootError{Node: root})
	}

	b := &builder{
		tree:    tree,
		redecl:  cfg.Redecl,
		factory: cfg.Factory,
		roots:   cfg.ChangeRoots,
	}
	if b.redecl == nil {
		b.redecl = scope.NoopRedeclarationHandler{}
	}
	if b.factory == nil {
		b.factory = tree
	}

	global := tree.NewGlobal()
	b.scan(global, global, root)
	return global
}

type builder struct {
	tree    *scope.Tree
	redecl  scope.RedeclarationHandler
	factory scope.Factory
	roots   map[*ast.Node]bool
	dirty   bool
}

// newScope creates a child scope through the configured factory, marking
// it Dirty if the builder is currently inside a change root.
func (b *builder) newScope(parent *scope.Scope, kind scope.Kind, root *ast.Node) *scope.Scope {
	s := b.factory.NewScope(parent, kind, root)
	if b.dirty {
		s.Dirty = true
	}
	return s
}

// scan is the single recursive dispatch over every node kind in the tree.
func (b *builder) scan(hoist, block *scope.Scope, n *ast.Node) {
	if n == nil {
		return
	}

	wasDirty := b.dirty
	if b.roots[n] {
		b.dirty = true
	}
	defer func() { b.dirty = wasDirty }()

	switch n.Token {
	case token.VAR:
		b.declareList(hoist, n, scope.DeclVar)
		b.scanChildren(hoist, block, n)

	case token.LET:
		b.declareList(block, n, scope.DeclLet)
		b.scanChildren(hoist, block, n)

	case token.CONST:
		b.declareList(block, n, scope.DeclConst)
		b.scanChildren(hoist, block, n)

	case token.IMPORT:
		b.declareList(block, n, scope.DeclImport)
		b.scanChildren(hoist, block, n)

	case token.FUNCTION, token.ARROW:
		if n.Token == token.FUNCTION && !n.IsExpr {
			if name := ast.FunctionName(n); name != nil {
				b.declareOne(block, name, scope.DeclFunction, false)
			}
		}
		b.scanFunction(block, n)

	case token.CLASS:
		if !n.IsExpr {
			if name := ast.ClassName(n); name != nil {
				b.declareOne(block, name, scope.DeclClass, false)
			}
		}
		b.scanClass(block, n)

	case token.FOR, token.FOR_IN, token.FOR_OF:
		b.scanFor(hoist, block, n)

	case token.SWITCH:
		b.scanSwitch(hoist, block, n)

	case token.CATCH:
		b.scanCatch(hoist, block, n)

	case token.BLOCK:
		b.scanBlock(hoist, block, n)

	case token.MODULE_BODY:
		mod := b.newScope(block, scope.Module, n)
		b.scanChildren(mod, mod, n)

	default:
		b.scanChildren(hoist, block, n)
	}
}

// scanChildren recurses into n's children and its detached DeclInit
// subtree (if any) with the same (hoist, block) pair. This is both the
// default case's body and the tail of every declaration case above, since
// declaring a name never changes how its pattern/initializer subtree is
// itself scanned for nested functions and references.
func (b *builder) scanChildren(hoist, block *scope.Scope, n *ast.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.scan(hoist, block, c)
	}
	if n.DeclInit != nil {
		b.scan(hoist, block, n.DeclInit)
	}
}

func (b *builder) declareList(s *scope.Scope, n *ast.Node, kind scope.DeclKind) {
	for _, name := range ast.GetLhsNodesOfDeclaration(n) {
		b.declareOne(s, name, kind, false)
	}
}

func (b *builder) declareOne(s *scope.Scope, name *ast.Node, kind scope.DeclKind, isParam bool) *scope.Var {
	key := name.String()
	if existing, ok := s.GetOwnSlot(key); ok {
		b.redecl.Redeclaration(s, key, existing.Decl, name)
	} else if s.IsFunctionBlockScope() {
		// A FunctionBlock declaration shadowing one of its own Function
		// scope's parameters is not a plain redeclaration (different
		// scopes) but is flagged the same way - real engines make this an
		// error in strict mode and a silent shadow otherwise, and this
		// pass doesn't track strictness, so it always reports.
		if parent := s.Parent(); parent != nil {
			if existing, ok := parent.GetOwnSlot(key); ok && existing.IsParam {
				b.redecl.Redeclaration(s, key, existing.Decl, name)
			}
		}
	}
	inputID, hasInput := ast.GetInputID(name)
	v := s.Declare(key, name, kind, inputID, hasInput)
	v.IsParam = isParam
	return v
}

func (b *builder) scanFunction(enclosing *scope.Scope, fn *ast.Node) {
	fnScope := b.newScope(enclosing, scope.Function, fn)

	if !ast.IsArrowFunction(fn) {
		v := fnScope.Declare("arguments", fn, scope.DeclVar, 0, false)
		v.IsArguments = true
	}

	if ast.IsFunctionExpression(fn) && !ast.IsArrowFunction(fn) {
		if name := ast.FunctionName(fn); name != nil {
			b.declareOne(fnScope, name, scope.DeclFunction, false)
		}
	}

	if params := ast.FunctionParams(fn); params != nil {
		for c := params.FirstChild; c != nil; c = c.NextSibling {
			for _, name := range ast.GetLhsNodesOfDeclaration(c) {
				b.declareOne(fnScope, name, scope.DeclParam, true)
			}
		}
		b.scanChildren(fnScope, fnScope, params)
	}

	if body := ast.FunctionBody(fn); body != nil {
		fbScope := b.newScope(fnScope, scope.FunctionBlock, body)
		b.scanChildren(fnScope, fbScope, body)
	} else if ast.IsArrowFunction(fn) && fn.LastChild != nil && fn.LastChild.Token != token.PARAM_LIST {
		// concise arrow body: a bare expression, no block of its own.
		b.scan(fnScope, fnScope, fn.LastChild)
	}
}

func (b *builder) scanClass(enclosing *scope.Scope, n *ast.Node) {
	classScope := b.newScope(enclosing, scope.ClassBody, n)
	name := ast.ClassName(n)
	if ast.IsClassExpression(n) && name != nil {
		b.declareOne(classScope, name, scope.DeclClass, false)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c == name {
			continue
		}
		b.scan(classScope, classScope, c)
	}
}

func (b *builder) scanFor(hoist, block *scope.Scope, n *ast.Node) {
	forScope := b.newScope(block, scope.For, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.scan(hoist, forScope, c)
	}
}

func (b *builder) scanSwitch(hoist, block *scope.Scope, n *ast.Node) {
	children := n.Children()
	if len(children) == 0 {
		return
	}
	b.scan(hoist, block, children[0]) // discriminant, resolved in the outer scope
	swScope := b.newScope(block, scope.Block, n)
	for _, c := range children[1:] {
		b.scan(hoist, swScope, c)
	}
}

func (b *builder) scanCatch(hoist, block *scope.Scope, n *ast.Node) {
	catchScope := b.newScope(block, scope.Catch, n)
	if param := ast.CatchParam(n); param != nil {
		for _, name := range ast.GetLhsNodesOfDeclaration(param) {
			b.declareOne(catchScope, name, scope.DeclCatch, false)
		}
	}
	if body := ast.CatchBody(n); body != nil {
		// The catch parameter and the catch body's own declarations share
		// one scope - `catch(e){ let e }` is a redeclaration, not a shadow.
		b.scanChildren(hoist, catchScope, body)
	}
}

func (b *builder) scanBlock(hoist, block *scope.Scope, n *ast.Node) {
	if !ast.CreatesBlockScope(n) {
		// A function's own body block: scanFunction already built and is
		// scanning its FunctionBlock scope; scan() should never reach here
		// for that node, but fall through safely if it somehow does.
		b.scanChildren(hoist, block, n)
		return
	}
	inner := b.newScope(block, scope.Block, n)
	b.scanChildren(hoist, inner, n)
}
