package ast

import "github.com/mna/jsuniq/token"

// IsFunctionLike reports whether n is a FUNCTION or ARROW node.
func IsFunctionLike(n *Node) bool {
	return n.Token == token.FUNCTION || n.Token == token.ARROW
}

// IsArrowFunction reports whether n is an ARROW node. Arrow functions have
// no own `arguments` binding and no function-expression self-name slot;
// the scope builder special-cases both. Arrow rest/default-value params
// are handled the same way as ordinary functions - best-effort, not
// exercised by any fixture exactly exercising that shape.
func IsArrowFunction(n *Node) bool { return n.Token == token.ARROW }

// IsFunctionExpression reports whether n is a FUNCTION used in expression
// position, or an ARROW (which is always an expression).
func IsFunctionExpression(n *Node) bool {
	if n.Token == token.ARROW {
		return true
	}
	return n.Token == token.FUNCTION && n.IsExpr
}

// IsClassExpression reports whether n is a CLASS node used in expression
// position.
func IsClassExpression(n *Node) bool {
	return n.Token == token.CLASS && n.IsExpr
}

// FunctionName returns the NAME child holding a FUNCTION's own name, or
// nil if n is anonymous (including all ARROW nodes, which have no name
// slot). By convention the name, when present, is always the first child;
// the parameter list follows.
func FunctionName(n *Node) *Node {
	if !IsFunctionLike(n) {
		return nil
	}
	if n.FirstChild != nil && n.FirstChild.Token == token.NAME {
		return n.FirstChild
	}
	return nil
}

// FunctionParams returns the PARAM_LIST child of a FUNCTION/ARROW/CLASS
// method-like node.
func FunctionParams(n *Node) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Token == token.PARAM_LIST {
			return c
		}
	}
	return nil
}

// FunctionBody returns the BLOCK child that is a FUNCTION/ARROW's body.
func FunctionBody(n *Node) *Node {
	if n.LastChild != nil && n.LastChild.Token == token.BLOCK {
		return n.LastChild
	}
	return nil
}

// ClassName returns the NAME child holding a CLASS's own name, if any.
func ClassName(n *Node) *Node {
	if n.Token != token.CLASS {
		return nil
	}
	if n.FirstChild != nil && n.FirstChild.Token == token.NAME {
		return n.FirstChild
	}
	return nil
}

// IsFunctionBlock reports whether n is the BLOCK forming a FUNCTION or
// ARROW's body (as opposed to an ordinary, non-function-body block).
func IsFunctionBlock(n *Node) bool {
	if n.Token != token.BLOCK || n.Parent == nil {
		return false
	}
	return IsFunctionLike(n.Parent) && n.Parent.LastChild == n
}

// CreatesBlockScope reports whether n is a BLOCK that is not a function
// body, or one of FOR/FOR_IN/FOR_OF/SWITCH/CATCH - the node kinds that
// introduce their own lexical (block) scope.
func CreatesBlockScope(n *Node) bool {
	switch n.Token {
	case token.FOR, token.FOR_IN, token.FOR_OF, token.SWITCH, token.CATCH:
		return true
	case token.BLOCK:
		return !IsFunctionBlock(n)
	default:
		return false
	}
}

// IsControlStructure reports whether n is a node whose children the scope
// builder's recursive scan must continue descending into, even though n
// itself is not a statement-list node. This covers both the scope-creating
// control structures and the non-scope-creating IF/WHILE/DO/TRY/LABEL
// statements whose bodies still need to be scanned.
func IsControlStructure(n *Node) bool {
	switch n.Token {
	case token.FOR, token.FOR_IN, token.FOR_OF, token.SWITCH, token.CATCH,
		token.IF, token.WHILE, token.DO, token.TRY, token.LABEL:
		return true
	default:
		return false
	}
}

// IsStatementBlock reports whether n is a node whose direct children are a
// statement list to be scanned in source order (BLOCK, SCRIPT,
// MODULE_BODY, ROOT).
func IsStatementBlock(n *Node) bool {
	switch n.Token {
	case token.BLOCK, token.SCRIPT, token.MODULE_BODY, token.ROOT:
		return true
	default:
		return false
	}
}

// CatchParam returns the catch clause's parameter pattern, or nil for a
// parameter-less `catch {}`.
func CatchParam(n *Node) *Node {
	if n.Token != token.CATCH {
		return nil
	}
	if n.FirstChild != nil && n.FirstChild.Token != token.BLOCK {
		return n.FirstChild
	}
	return nil
}

// CatchBody returns the CATCH clause's body BLOCK.
func CatchBody(n *Node) *Node {
	if n.Token != token.CATCH {
		return nil
	}
	if p := CatchParam(n); p != nil {
		return p.NextSibling
	}
	return n.FirstChild
}

// GetInputID walks up to the nearest enclosing SCRIPT ancestor (or n
// itself) and returns its input id. Returns (0, false) if no SCRIPT
// ancestor has had SetInputID called on it.
func GetInputID(n *Node) (int, bool) {
	for c := n; c != nil; c = c.Parent {
		if c.Token == token.SCRIPT && c.hasID {
			return c.inputID, true
		}
	}
	return 0, false
}

// GetLhsNodesOfDeclaration enumerates every NAME, STRING_KEY (only when it
// is itself the binding - a shorthand object-pattern property with no
// renamed target) and IMPORT_STAR node introduced by a declaration.
//
// n may be:
//   - a VAR/LET/CONST/IMPORT node, in which case every declarator child is
//     walked, or
//   - a single declarator/pattern root directly (NAME, OBJECT_PATTERN,
//     ARRAY_PATTERN, DEFAULT_VALUE, REST, STRING_KEY, IMPORT_STAR), the
//     shape a single function parameter or catch parameter takes.
func GetLhsNodesOfDeclaration(n *Node) []*Node {
	var out []*Node
	switch n.Token {
	case token.VAR, token.LET, token.CONST, token.IMPORT:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, lhsNames(c)...)
		}
	default:
		out = lhsNames(n)
	}
	return out
}

func lhsNames(n *Node) []*Node {
	if n == nil {
		return nil
	}
	switch n.Token {
	case token.NAME, token.IMPORT_STAR:
		return []*Node{n}

	case token.STRING_KEY:
		if n.FirstChild == nil {
			// shorthand: the key is itself the binding (e.g. `{a}` or the
			// external name side of `import {a} from "m"`).
			return []*Node{n}
		}
		return lhsNames(n.FirstChild)

	case token.DEFAULT_VALUE, token.REST:
		return lhsNames(n.FirstChild)

	case token.OBJECT_PATTERN:
		var out []*Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, lhsNames(c)...)
		}
		return out

	case token.ARRAY_PATTERN:
		var out []*Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Token == token.EMPTY {
				continue // elision, e.g. `[, a] = x`
			}
			out = append(out, lhsNames(c)...)
		}
		return out

	default:
		return nil
	}
}
