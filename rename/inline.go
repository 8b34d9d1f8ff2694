package rename

import (
	"fmt"
	"strings"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/token"
)

// Inline renames every local, unconditionally, to a fresh globally-unique
// name: "<base>$jscomp$<prefix><id>", where base is the original name
// (optionally JSCompiler_-mangled first) and id comes from cfg.IDs.
// Unlike Contextual, this runs whether or not a name would actually
// collide - the point is to make every local safe to move, not merely
// to disambiguate it in place.
func Inline(tree *scope.Tree, global *scope.Scope, root *ast.Node, cfg Config) {
	rn := &renamer{tree: tree, renamed: map[*scope.Var]string{}}

	demoted := map[*ast.Node]bool{}
	for _, s := range tree.Scopes() {
		if s.Kind == scope.Global {
			continue
		}
		for _, v := range s.Vars() {
			if v.IsArguments {
				continue
			}
			base := v.Name
			if cfg.MangleUnderscore && strings.HasPrefix(base, "_") {
				base = "JSCompiler_" + base
			}
			id := cfg.IDs.Next()
			rn.renamed[v] = fmt.Sprintf("%s$jscomp$%s%d", base, cfg.LocalNamePrefix, id)

			if cfg.RemoveConst && v.Kind == scope.DeclConst && cfg.Convention != nil &&
				cfg.Convention.IsConstantName(v.Name) {
				if decl := enclosingDeclNode(v.Decl); decl != nil && !demoted[decl] {
					decl.Token = token.LET
					demoted[decl] = true
				}
			}
		}
	}

	rn.apply(root, global)
}

// enclosingDeclNode walks up from a binding's leaf/pattern node to the
// VAR/LET/CONST statement node that introduced it.
func enclosingDeclNode(n *ast.Node) *ast.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		switch p.Token {
		case token.VAR, token.LET, token.CONST:
			return p
		}
	}
	return nil
}
