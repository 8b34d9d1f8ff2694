package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"gopkg.in/yaml.v3"

	"github.com/mna/jsuniq/scope"
	"github.com/mna/jsuniq/scopebuilder"
)

// scopeDump and varDump are the YAML projection of a built scope.Tree,
// printed standalone since scopes have no natural place inside an
// ast.Node printout.
type scopeDump struct {
	ID     int       `yaml:"id"`
	Kind   string    `yaml:"kind"`
	Parent *int      `yaml:"parent,omitempty"`
	Vars   []varDump `yaml:"vars,omitempty"`
}

type varDump struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// DumpScopes builds the scope tree for each file and prints it as YAML,
// without renaming anything.
func (c *Cmd) DumpScopes(ctx context.Context, stdio mainer.Stdio, args []string) error {
	enc := yaml.NewEncoder(stdio.Stdout)
	defer enc.Close()

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

		dump := struct {
			File   string      `yaml:"file"`
			Scopes []scopeDump `yaml:"scopes"`
		}{File: path}

		for _, s := range tree.Scopes() {
			sd := scopeDump{ID: s.ID(), Kind: s.Kind.String()}
			if p := s.Parent(); p != nil {
				id := p.ID()
				sd.Parent = &id
			}
			for _, v := range s.Vars() {
				sd.Vars = append(sd.Vars, varDump{Name: v.Name, Kind: v.Kind.String()})
			}
			dump.Scopes = append(dump.Scopes, sd)
		}

		if err := enc.Encode(dump); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
