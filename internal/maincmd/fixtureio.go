package maincmd

import (
	"fmt"
	"os"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/internal/fixture"
)

// readFixture reads path and parses it as a fixture-format program. Parse
// errors surface as a panic (see internal/fixture's own doc comment);
// readFixture recovers that panic and turns it into a plain error so one
// malformed input file doesn't abort the whole invocation.
func readFixture(path string) (n *ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, fmt.Errorf("%s: %v", path, r)
		}
	}()

	b, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}
	return fixture.Parse(string(b)), nil
}
