package invert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/internal/fixture"
	"github.com/mna/jsuniq/invert"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/scopebuilder"
	"github.com/mna/jsuniq/token"
)

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

func TestInvertStripsSuffixWhenNoLongerColliding(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name f) (params) (block (let (name x$jscomp$1))))))`)
	tree := scope.NewTree()
	scopebuilder.Build(tree, root, scopebuilder.Config{})

	invert.Invert(tree, root)

	assert.Equal(t, []string{"f", "x"}, names(root))
}

func TestInvertRenumbersWhenCollisionPersists(t *testing.T) {
	root := fixture.Parse(`(root (script
		(var (name x))
		(fn (name f1) (params) (block (let (name x$jscomp$1))))
		(fn (name f2) (params) (block (let (name x$jscomp$7))))))`)
	tree := scope.NewTree()
	scopebuilder.Build(tree, root, scopebuilder.Config{})

	invert.Invert(tree, root)

	assert.Equal(t, []string{"x", "f1", "x$jscomp$0", "f2", "x$jscomp$1"}, names(root))
}

func TestInvertNeverTouchesCatchParams(t *testing.T) {
	root := fixture.Parse(`(root (script (try (block) (catch (name e$jscomp$3) (block)))))`)
	tree := scope.NewTree()
	scopebuilder.Build(tree, root, scopebuilder.Config{})

	invert.Invert(tree, root)

	assert.Equal(t, []string{"e$jscomp$3"}, names(root))
}

func TestInvertPrefersInnermostSiblingFunctionsForBareName(t *testing.T) {
	root := fixture.Parse(`(root (script (fn (name x1) (params) (block
		(var (name a$jscomp$1))
		(fn (name x2) (params) (block (var (name a$jscomp$2))))
		(fn (name x3) (params) (block (var (name a$jscomp$3))))))))`)
	tree := scope.NewTree()
	scopebuilder.Build(tree, root, scopebuilder.Config{})

	invert.Invert(tree, root)

	assert.Equal(t, []string{"x1", "a$jscomp$0", "x2", "a", "x3", "a"}, names(root))
}

func TestInvertIgnoresNonSuffixedNames(t *testing.T) {
	root := fixture.Parse(`(root (script (var (name plain))))`)
	tree := scope.NewTree()
	scopebuilder.Build(tree, root, scopebuilder.Config{})

	invert.Invert(tree, root)

	assert.Equal(t, []string{"plain"}, names(root))
}
