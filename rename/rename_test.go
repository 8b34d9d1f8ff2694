package rename_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/convention"
	"github.com/mna/jsuniq/internal/fixture"
	"github.com/mna/jsuniq/rename"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/scopebuilder"
	"github.com/mna/jsuniq/token"
	"github.com/mna/jsuniq/uniqueid"
)

// nameCollector is a Visitor that records every NAME/IMPORT_STAR node's
// text, in tree order - ast.Walk already handles the recursion, Visit
// just needs to keep returning itself to keep descending.
type nameCollector struct {
	names *[]string
}

func (c nameCollector) Visit(n *ast.Node, dir ast.VisitDirection) ast.Visitor {
	if dir == ast.VisitExit {
		return nil
	}
	if n.Token == token.NAME || n.Token == token.IMPORT_STAR {
		*c.names = append(*c.names, n.String())
	}
	return c
}

func names(root *ast.Node) []string {
	var out []string
	ast.Walk(nameCollector{names: &out}, root)
	return out
}

func findToken(n *ast.Node, tok token.Token) *ast.Node {
	if n == nil {
		return nil
	}
	if n.Token == tok {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findToken(c, tok); found != nil {
			return found
		}
	}
	if n.DeclInit != nil {
		if found := findToken(n.DeclInit, tok); found != nil {
			return found
		}
	}
	return nil
}

func TestContextualKeepsUnshadowedKeepsGlobalRenamesShadow(t *testing.T) {
	root := fixture.Parse(`(root (script
		(var (name x))
		(fn (name f) (params) (block (let (name x))))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	rename.Contextual(tree, global, root, rename.Config{})

	assert.Equal(t, []string{"x", "f", "x$jscomp$1"}, names(root))
}

func TestContextualReusedLocalNameBleedsAcrossSiblingFunctions(t *testing.T) {
	root := fixture.Parse(`(root (script
		(var (name a))
		(fn (name foo) (params) (block (var (name b)) (name a)))
		(fn (name boo) (params) (block (var (name b)) (name a)))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	rename.Contextual(tree, global, root, rename.Config{})

	assert.Equal(t, []string{
		"a",
		"foo", "b", "a",
		"boo", "b$jscomp$1", "a",
	}, names(root))
}

func TestContextualDistinctShadowsCountIndependently(t *testing.T) {
	root := fixture.Parse(`(root (script
		(var (name x))
		(fn (name f1) (params) (block (let (name x))))
		(fn (name f2) (params) (block (let (name x))))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	rename.Contextual(tree, global, root, rename.Config{})

	assert.Equal(t, []string{"x", "f1", "x$jscomp$1", "f2", "x$jscomp$2"}, names(root))
}

func TestInlineRenamesOnlyNonGlobalLocalsUnconditionally(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params (name x)) (block))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	ids := &uniqueid.Source{}
	rename.Inline(tree, global, root, rename.Config{IDs: ids})

	assert.Equal(t, []string{"f", "x$jscomp$0"}, names(root))
}

func TestInlineLocalNamePrefix(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params (name x)) (block))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	ids := &uniqueid.Source{}
	rename.Inline(tree, global, root, rename.Config{IDs: ids, LocalNamePrefix: "m1$"})

	assert.Equal(t, []string{"f", "x$jscomp$m1$0"}, names(root))
}

func TestInlineMangleUnderscore(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params (name _priv)) (block))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	ids := &uniqueid.Source{}
	rename.Inline(tree, global, root, rename.Config{IDs: ids, MangleUnderscore: true})

	assert.Equal(t, []string{"f", "JSCompiler__priv$jscomp$0"}, names(root))
}

func TestInlineRemoveConstDemotesConstToLet(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params) (block (const (name MAX))))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	ids := &uniqueid.Source{}
	rename.Inline(tree, global, root, rename.Config{
		IDs:         ids,
		RemoveConst: true,
		Convention:  convention.Closure{},
	})

	constNode := findToken(root, token.LET)
	require.NotNil(t, constNode, "the CONST declaration must be demoted to LET")
	assert.Equal(t, token.LET, constNode.Token)
}

func TestInlineKeepsConstWhenNotConventionalConstant(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params) (block (const (name notAConstant))))))`)
	tree := scope.NewTree()
	global := scopebuilder.Build(tree, root, scopebuilder.Config{})

	ids := &uniqueid.Source{}
	rename.Inline(tree, global, root, rename.Config{
		IDs:         ids,
		RemoveConst: true,
		Convention:  convention.Closure{},
	})

	assert.NotNil(t, findToken(root, token.CONST))
}
