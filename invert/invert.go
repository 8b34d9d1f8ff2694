// Package invert undoes a Contextual (or, incidentally, an unprefixed
// Inline) renaming pass: every binding currently named "<base>$jscomp$<N>"
// has its suffix stripped back to the bare original name where doing so
// no longer collides with anything still visible from its scope, and the
// remaining, still-colliding members of that original name are renumbered
// from 0 so the surviving suffixes stay small.
//
// Invert expects tree to have been built by scopebuilder.Build against
// the CURRENT (already renamed) AST - not the tree a prior rename call
// used, which is still keyed by the pre-rename names. Rebuilding the
// scope tree between renaming and inverting is what lets this package
// compare today's names against each other, exactly the way a second,
// independent compiler pass would.
package invert

import (
	"fmt"
	"regexp"

	"golang.org/x/exp/slices"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/rename"
	"github.com/mna/jsuniq/scope"
)

var suffixPattern = regexp.MustCompile(`^(.+)\$jscomp\$(\d+)$`)

// Invert runs the inversion pass in place, mutating NAME/IMPORT_STAR node
// text throughout the tree rooted at root.
func Invert(tree *scope.Tree, root *ast.Node) {
	groups := map[string][]*scope.Var{}
	for _, s := range tree.Scopes() {
		for _, v := range s.Vars() {
			if v.IsArguments || v.Kind == scope.DeclCatch {
				// Catch-parameter inversion is deliberately asymmetric: a
				// suffixed catch binding is left exactly as it is, whether
				// or not stripping it would collide with anything.
				continue
			}
			m := suffixPattern.FindStringSubmatch(v.Name)
			if m == nil {
				continue
			}
			groups[m[1]] = append(groups[m[1]], v)
		}
	}

	renamed := map[*scope.Var]string{}
	for base, members := range groups {
		// Deepest scope first: a member may only reclaim the bare name if
		// neither an ancestor already holds it nor a descendant member of
		// this same group already claimed it first. Processing leaves
		// before their ancestors lets the inner, more specific declarations
		// win the bare name, leaving an outer declaration that still has
		// nested shadowers of its own renumbered instead.
		slices.SortFunc(members, func(a, b *scope.Var) int {
			if da, db := depth(a.Scope), depth(b.Scope); da != db {
				return db - da
			}
			return a.Seq - b.Seq
		})

		blocked := map[int]bool{}
		next := 0
		for _, v := range members {
			if !blocked[v.Scope.ID()] && !ancestorHasName(v.Scope, base, renamed) {
				renamed[v] = base
				for anc := v.Scope.Parent(); anc != nil; anc = anc.Parent() {
					blocked[anc.ID()] = true
				}
				continue
			}
			renamed[v] = fmt.Sprintf("%s$jscomp$%d", base, next)
			next++
		}
	}

	var global *scope.Scope
	for _, s := range tree.Scopes() {
		if s.Kind == scope.Global {
			global = s
			break
		}
	}
	rename.Apply(tree, global, root, renamed)
}

// depth counts s's ancestors, 0 for the Global scope.
func depth(s *scope.Scope) int {
	d := 0
	for anc := s.Parent(); anc != nil; anc = anc.Parent() {
		d++
	}
	return d
}

// ancestorHasName reports whether some var, visible from an enclosing
// scope of s, currently holds (or has just been decided to take on)
// name.
func ancestorHasName(s *scope.Scope, name string, renamed map[*scope.Var]string) bool {
	for anc := s.Parent(); anc != nil; anc = anc.Parent() {
		for _, v := range anc.Vars() {
			effective := v.Name
			if nn, ok := renamed[v]; ok {
				effective = nn
			}
			if effective == name {
				return true
			}
		}
	}
	return false
}
