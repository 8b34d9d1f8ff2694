package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/token"
)

func nameNode(s string) *ast.Node {
	n := ast.New(token.NAME, token.Unknown)
	n.SetString(s)
	return n
}

func TestTreeNewGlobal(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	assert.True(t, g.IsGlobal())
	assert.Nil(t, g.Parent())
	assert.Equal(t, 0, g.ID())
}

func TestScopeDeclareAndGetSlot(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	child := tree.NewScope(g, scope.Block, nil)

	v := g.Declare("x", nameNode("x"), scope.DeclVar, 0, false)
	require.NotNil(t, v)

	got, ok := child.GetSlot("x")
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = child.GetOwnSlot("x")
	assert.False(t, ok, "GetOwnSlot must not walk to the parent")
}

func TestScopeSeqIsTreeWide(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	child := tree.NewScope(g, scope.Block, nil)

	v1 := g.Declare("a", nameNode("a"), scope.DeclVar, 0, false)
	v2 := child.Declare("b", nameNode("b"), scope.DeclLet, 0, false)
	v3 := g.Declare("c", nameNode("c"), scope.DeclVar, 0, false)

	assert.Less(t, v1.Seq, v2.Seq)
	assert.Less(t, v2.Seq, v3.Seq)
}

func TestScopeKindPredicates(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	fn := tree.NewScope(g, scope.Function, nil)
	fb := tree.NewScope(fn, scope.FunctionBlock, nil)
	blk := tree.NewScope(fb, scope.Block, nil)
	ctch := tree.NewScope(blk, scope.Catch, nil)

	assert.True(t, fn.IsFunctionScope())
	assert.True(t, fb.IsFunctionBlockScope())
	assert.True(t, blk.IsBlockScope())
	assert.True(t, ctch.IsCatchScope())
	assert.False(t, ctch.IsBlockScope())
}

func TestTreeByRootAndChildrenOf(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	root := ast.New(token.BLOCK, token.Unknown)
	blk := tree.NewScope(g, scope.Block, root)
	_ = tree.NewScope(g, scope.Block, ast.New(token.BLOCK, token.Unknown))

	got, ok := tree.ByRoot(root)
	require.True(t, ok)
	assert.Same(t, blk, got)

	children := tree.ChildrenOf(g)
	assert.Len(t, children, 2)
}

func TestNamesAndVarsPreserveDeclarationOrder(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	g.Declare("z", nameNode("z"), scope.DeclVar, 0, false)
	g.Declare("a", nameNode("a"), scope.DeclVar, 0, false)

	assert.Equal(t, []string{"z", "a"}, g.Names())
	vars := g.Vars()
	require.Len(t, vars, 2)
	assert.Equal(t, "z", vars[0].Name)
	assert.Equal(t, "a", vars[1].Name)
}

func TestRedeclarationHandlerNotConsultedByDeclare(t *testing.T) {
	tree := scope.NewTree()
	g := tree.NewGlobal()
	first := g.Declare("x", nameNode("x"), scope.DeclVar, 0, false)
	second := g.Declare("x", nameNode("x"), scope.DeclLet, 0, false)

	// Declare itself never checks for an existing binding - callers are
	// responsible for consulting GetOwnSlot first.
	got, ok := g.GetOwnSlot("x")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, second)
}

func TestRedeclarationFuncAdapter(t *testing.T) {
	var calls int
	var gotName string
	h := scope.RedeclarationFunc(func(s *scope.Scope, name string, existing, attempted *ast.Node) {
		calls++
		gotName = name
	})

	h.Redeclaration(nil, "dup", nil, nil)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "dup", gotName)
}
