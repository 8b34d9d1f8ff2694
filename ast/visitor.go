package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

// List of visit directions.
const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for each node a call to Walk visits. Returning a nil
// Visitor from Visit skips the node's children.
type Visitor interface {
	Visit(n *Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n *Node, dir VisitDirection) Visitor

// Visit implements Visitor.
func (f VisitorFunc) Visit(n *Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk performs a structural traversal of the subtree rooted at node:
// every node reachable through FirstChild/NextSibling links is visited, in
// pre-order, depth-first, left-to-right, deterministic order. A node's
// DeclInit initializer is not part of that chain and is not visited.
// Unlike the scope builder's and the renamer's own descents, Walk knows
// nothing about scopes; it is used for printing.
func Walk(v Visitor, node *Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		Walk(v, c)
	}
	v.Visit(node, VisitExit)
}
