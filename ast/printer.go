package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer controls pretty-printing of a Node tree: a single walk that
// indents by depth and formats each node with a configurable verb.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// NodeFmt is the format string used for each node, passed through to
	// Node.Format. The verb must be %v or %s; width, '#' and '-' flags are
	// supported exactly as Node.Format documents. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints the subtree rooted at n, one line per node, indented
// by depth with ". " per level.
func (p *Printer) Print(n *Node) error {
	nodeFmt := p.NodeFmt
	if nodeFmt == "" {
		nodeFmt = "%v"
	}

	pp := &printer{w: p.Output, nodeFmt: nodeFmt}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n *Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	if p.err == nil {
		format := "%s" + p.nodeFmt + "\n"
		_, p.err = fmt.Fprintf(p.w, format, strings.Repeat(". ", p.depth-1), n)
	}
	return p
}
