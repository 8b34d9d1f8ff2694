// Package ast declares the AST node type the renaming core consumes and
// mutates: a single tagged-variant Node keyed by token.Token (token,
// first-child/next-sibling/parent links, string payload, input-file id,
// mutable string setter), rather than one Go type per grammar production
// tied together through Expr/Stmt interfaces - a sum type dispatched with
// one switch per traversal rather than a virtual-dispatch hierarchy.
// Every component in this module (scope, scopebuilder, rename, invert)
// switches on Node.Token; none of them type switch on a Go type.
package ast

import (
	"fmt"
	"strings"

	"github.com/mna/jsuniq/token"
)

// Node is a single AST node. The zero value is not usable; create nodes
// with New.
type Node struct {
	Token token.Token
	Pos   token.Pos

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	NextSibling *Node
	PrevSibling *Node

	// str is the NAME/STRING_KEY payload: an identifier or property-key
	// text. Renaming mutates it through SetString; nothing else does.
	str string

	// inputID associates a SCRIPT node with the input file it came from.
	// hasID reports whether it was set (it is not on e.g. a synthesized
	// node with no source file).
	inputID int
	hasID   bool

	// IsExpr marks a FUNCTION or CLASS node as appearing in expression
	// position (a function/class expression) rather than as a declaration
	// statement. Meaningless for any other Token.
	IsExpr bool

	// DeclInit is the initializer expression attached to a declarator's
	// LHS pattern (a VAR/LET/CONST/IMPORT child) or to a DEFAULT_VALUE
	// node's default expression. It is deliberately NOT part of the
	// FirstChild/NextSibling chain: an LHS-pattern walk
	// (GetLhsNodesOfDeclaration) only ever needs to see binding targets,
	// never the initializer, and keeping it out of the sibling chain makes
	// that true by construction instead of by a token-type filter repeated
	// at every call site. The scope builder and the renamer's reference
	// scan visit it explicitly.
	DeclInit *Node

	// ExternalName is the externally-visible name of an export/import
	// specifier (the `y` in `export {x as y}` or `import {y as x}`),
	// preserved verbatim by the renamer. Empty when the node is not an
	// export/import specifier or has no alias.
	ExternalName string
}

// New creates a detached node of the given token and position.
func New(tok token.Token, pos token.Pos) *Node {
	return &Node{Token: tok, Pos: pos}
}

// String returns the NAME/STRING_KEY payload (or any other node's string
// field, e.g. a STRING literal's value).
func (n *Node) String() string { return n.str }

// SetString mutates the node's string payload. This is the single
// mutation point the renamer and inverter use to assign a fresh name.
func (n *Node) SetString(s string) { n.str = s }

// SetInputID marks n (expected to be a SCRIPT node) as belonging to the
// given input file identifier.
func (n *Node) SetInputID(id int) { n.inputID = id; n.hasID = true }

// HasInputID reports whether SetInputID has been called on n.
func (n *Node) HasInputID() bool { return n.hasID }

// AppendChild appends child as the new last child of parent, wiring up
// Parent/FirstChild/LastChild/NextSibling/PrevSibling. child must be
// detached (no existing Parent).
func AppendChild(parent, child *Node) {
	if child.Parent != nil {
		panic("ast: AppendChild called with an already-attached node")
	}
	child.Parent = parent
	if parent.FirstChild == nil {
		parent.FirstChild = child
	} else {
		parent.LastChild.NextSibling = child
		child.PrevSibling = parent.LastChild
	}
	parent.LastChild = child
}

// Children returns n's direct children in source order. It allocates; hot
// paths in scopebuilder and rename walk FirstChild/NextSibling directly
// instead.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Format implements fmt.Formatter so nodes print a short description of
// themselves (`%v`/`%s`, `#` flag for child counts, width for truncation).
func (n *Node) Format(f fmt.State, verb rune) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label := n.Token.String()
	if n.str != "" {
		label += " " + n.str
	}

	if w, ok := f.Width(); ok {
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case f.Flag('-'):
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !f.Flag('+'):
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') {
		fmt.Fprintf(f, " {children=%d}", len(n.Children()))
	}
}
