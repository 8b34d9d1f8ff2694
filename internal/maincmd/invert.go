package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/invert"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/scopebuilder"
)

// Invert runs the inversion pass over each file and prints the resulting
// tree. Since invert.Invert requires a scope.Tree built against the
// CURRENT state of root (see invert's own doc comment), this command
// builds fresh - it never reuses a tree from a prior Rename invocation,
// matching the two-process pipeline (rename, then a later independent
// invert) the command split implies.
func (c *Cmd) Invert(ctx context.Context, stdio mainer.Stdio, args []string) error {
	printer := ast.Printer{Output: stdio.Stdout}

	var firstErr error
	for _, path := range args {
		root, err := readFixture(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		tree := scope.NewTree()
		scopebuilder.Build(tree, root, scopebuilder.Config{})
		invert.Invert(tree, root)

		fmt.Fprintf(stdio.Stdout, "-- %s --\n", path)
		if err := printer.Print(root); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
