package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/convention"
	"github.com/mna/jsuniq/rename"
	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/scopebuilder"
	"github.com/mna/jsuniq/uniqueid"
)

// Rename runs the configured renaming strategy over each file and prints
// the resulting tree, one file at a time - each file is its own
// independent compilation unit rather than files of one shared program.
func (c *Cmd) Rename(ctx context.Context, stdio mainer.Stdio, args []string) error {
	printer := ast.Printer{Output: stdio.Stdout}

	var firstErr error
	ids := &uniqueid.Source{}
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
		global := scopebuilder.Build(tree, root, scopebuilder.Config{})

		cfg := rename.Config{
			RemoveConst:      c.RemoveConst,
			Convention:       convention.Closure{},
			LocalNamePrefix:  c.LocalNamePrefix,
			MangleUnderscore: c.MangleUnderscore,
			IDs:              ids,
		}
		switch c.Strategy {
		case "inline":
			rename.Inline(tree, global, root, cfg)
		default:
			rename.Contextual(tree, global, root, cfg)
		}

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
