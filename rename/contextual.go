package rename

import (
	"fmt"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/scope"
)

// Contextual renames only the locals whose declaration would otherwise be
// ambiguous once scopes are flattened: a local keeps its original source
// name unless that name was already declared earlier in the scope-tree
// walk - in an enclosing scope or in an unrelated sibling scope alike - in
// which case it gets a "$jscomp$N" suffix, N counting up once per
// distinct original name across the whole tree so that two unrelated
// shadowers of the same name never collide with each other either.
//
// Global-scope bindings (a non-module script's top-level var/let/const,
// which behave like real globals) are never renamed, but are still
// tracked for collision detection so a nested shadow of one is still
// caught.
func Contextual(tree *scope.Tree, global *scope.Scope, root *ast.Node, cfg Config) {
	rn := &renamer{tree: tree, renamed: map[*scope.Var]string{}}
	rn.contextual(global, map[string]string{}, map[string]int{})
	rn.apply(root, global)
}

func (r *renamer) contextual(s *scope.Scope, active map[string]string, counts map[string]int) {
	type saved struct {
		name  string
		had   bool
		value string
	}
	var restore []saved

	for _, v := range s.Vars() {
		if v.IsArguments {
			continue
		}
		name := v.Name
		prev, had := active[name]
		restore = append(restore, saved{name, had, prev})

		if had && s.Kind != scope.Global {
			counts[name]++
			newName := fmt.Sprintf("%s$jscomp$%d", name, counts[name])
			r.renamed[v] = newName
			active[name] = newName
		} else {
			active[name] = name
		}
	}

	for _, child := range r.tree.ChildrenOf(s) {
		r.contextual(child, active, counts)
	}

	for _, e := range restore {
		if e.had {
			active[e.name] = e.value
		}
		// A name seen for the first time in s is never removed from active:
		// presence must bleed across sibling scopes too, so that an unrelated
		// later scope reusing the same bare name still collides and gets a
		// suffix, not just a name shadowed along its own ancestor path.
	}
}
