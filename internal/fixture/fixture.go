// Package fixture parses a terse S-expression notation into an *ast.Node
// tree, standing in for the JavaScript parser this module deliberately
// does not implement: the scope builder, renamer and inverter all
// operate on an already-parsed tree, never on source text. It exists
// for tests and as the input format of the CLI's rename, invert and
// dump-scopes commands - it
// must never grow real JS grammar coverage (string/number/regex literal
// syntax, automatic semicolon insertion, operator precedence); every
// construct it recognizes is spelled out explicitly as a tagged list.
//
// Grammar, informally:
//
//	form    = '(' tag form* ')' | atom
//	atom    = `"`-quoted string | digit-leading number | bare identifier
//
// The tag vocabulary covers the node kinds token.Token names; tagTokens
// lists the plain tags, and parseTagged handles the rest (var/let/const/
// import, fn/fnexpr/arrow, cls/clsexpr, name, str, num, importstar, as,
// =, default, rest, skey). A handful of tags need special shapes
// instead of "children in order": declarations use `(= pattern init)` to
// attach an initializer (stored on DeclInit, not as a child - see
// ast.Node's own doc comment on why), `fnexpr`/`clsexpr` mark expression
// position, and `skey`/`default`/`rest` build destructuring patterns.
package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/jsuniq/ast"
	"github.com/mna/jsuniq/token"
)

// tagTokens maps a plain s-expression tag directly to children-in-order
// construction: AppendChild every parsed sub-form, no special treatment.
var tagTokens = map[string]token.Token{
	"root":         token.ROOT,
	"script":       token.SCRIPT,
	"module":       token.MODULE_BODY,
	"block":        token.BLOCK,
	"if":           token.IF,
	"while":        token.WHILE,
	"do":           token.DO,
	"try":          token.TRY,
	"label":        token.LABEL,
	"break":        token.BREAK,
	"continue":     token.CONTINUE,
	"return":       token.RETURN,
	"throw":        token.THROW,
	"for":          token.FOR,
	"forin":        token.FOR_IN,
	"forof":        token.FOR_OF,
	"switch":       token.SWITCH,
	"catch":        token.CATCH,
	"expr":         token.EXPR_RESULT,
	"call":         token.CALL,
	"new":          token.NEW,
	"getprop":      token.GETPROP,
	"cprop":        token.COMPUTED_PROP,
	"getter":       token.GETTER_DEF,
	"setter":       token.SETTER_DEF,
	"method":       token.MEMBER_FUNCTION_DEF,
	"assign":       token.ASSIGN,
	"spread":       token.SPREAD,
	"tlit":         token.TEMPLATE_LIT,
	"tsub":         token.TEMPLATE_SUB,
	"empty":        token.EMPTY,
	"params":       token.PARAM_LIST,
	"objpattern":   token.OBJECT_PATTERN,
	"arraypattern": token.ARRAY_PATTERN,
	"export":       token.EXPORT,
}

// Parse parses src and returns its root form. src must be a single form
// (typically a `(root ...)`); Parse panics on malformed input, since
// fixtures are test/tool inputs authored by hand, not untrusted data.
func Parse(src string) *ast.Node {
	p := &parser{toks: tokenize(src)}
	n := p.parseForm()
	if p.pos != len(p.toks) {
		panic(fmt.Sprintf("fixture: trailing input after top-level form: %v", p.toks[p.pos:]))
	}
	return n
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

// atForm reports whether the parser is positioned right before a
// parenthesized form tagged exactly tag, without consuming anything.
func (p *parser) atForm(tag string) bool {
	return p.peek() == "(" && p.pos+1 < len(p.toks) && p.toks[p.pos+1] == tag
}

func (p *parser) parseForm() *ast.Node {
	if p.peek() != "(" {
		return p.parseAtom(p.next())
	}
	p.next() // consume '('
	tag := p.next()
	n := p.parseTagged(tag)
	if p.peek() != ")" {
		panic(fmt.Sprintf("fixture: expected ')' after %q, got %q", tag, p.peek()))
	}
	p.next()
	return n
}

func (p *parser) parseChildrenUntilClose() []*ast.Node {
	var out []*ast.Node
	for p.peek() != ")" && p.peek() != "" {
		out = append(out, p.parseForm())
	}
	return out
}

func (p *parser) parseTagged(tag string) *ast.Node {
	switch tag {
	case "var", "let", "const", "import":
		tok := map[string]token.Token{"var": token.VAR, "let": token.LET, "const": token.CONST, "import": token.IMPORT}[tag]
		n := ast.New(tok, token.Unknown)
		for _, decl := range p.parseChildrenUntilClose() {
			ast.AppendChild(n, decl)
		}
		return n

	case "=": // (= pattern init) - a declarator or DEFAULT_VALUE's payload
		pattern := p.parseForm()
		init := p.parseForm()
		pattern.DeclInit = init
		return pattern

	case "default": // (default pattern init)
		pattern := p.parseForm()
		init := p.parseForm()
		n := ast.New(token.DEFAULT_VALUE, token.Unknown)
		ast.AppendChild(n, pattern)
		n.DeclInit = init
		return n

	case "rest":
		n := ast.New(token.REST, token.Unknown)
		ast.AppendChild(n, p.parseForm())
		return n

	case "skey": // (skey name) shorthand, or (skey name target)
		key := p.next()
		n := ast.New(token.STRING_KEY, token.Unknown)
		n.SetString(key)
		if p.peek() != ")" {
			ast.AppendChild(n, p.parseForm())
		}
		return n

	case "fn", "fnexpr":
		return p.parseFunction(tag == "fnexpr", false)

	case "arrow":
		return p.parseFunction(true, true)

	case "cls", "clsexpr":
		return p.parseClass(tag == "clsexpr")

	case "name":
		n := ast.New(token.NAME, token.Unknown)
		n.SetString(p.next())
		return n

	case "str":
		n := ast.New(token.STRING, token.Unknown)
		n.SetString(unquote(p.next()))
		return n

	case "num":
		n := ast.New(token.NUMBER, token.Unknown)
		n.SetString(p.next())
		return n

	case "importstar": // (importstar localName)
		n := ast.New(token.IMPORT_STAR, token.Unknown)
		n.SetString(p.next())
		return n

	case "as": // (as externalName target) - export/import alias wrapper
		external := p.next()
		target := p.parseForm()
		target.ExternalName = external
		return target

	default:
		tok, ok := tagTokens[tag]
		if !ok {
			panic(fmt.Sprintf("fixture: unknown tag %q", tag))
		}
		n := ast.New(tok, token.Unknown)
		for _, c := range p.parseChildrenUntilClose() {
			ast.AppendChild(n, c)
		}
		return n
	}
}

func (p *parser) parseFunction(isExpr, isArrow bool) *ast.Node {
	tok := token.FUNCTION
	if isArrow {
		tok = token.ARROW
	}
	n := ast.New(tok, token.Unknown)
	n.IsExpr = isExpr

	// optional name: present when the next form is explicitly `(name x)`.
	if p.atForm("name") {
		ast.AppendChild(n, p.parseForm())
	}

	params := p.parseForm() // always present, even if empty: (params)
	ast.AppendChild(n, params)

	body := p.parseForm() // BLOCK, or a bare expression for arrow concise bodies
	ast.AppendChild(n, body)
	return n
}

func (p *parser) parseClass(isExpr bool) *ast.Node {
	n := ast.New(token.CLASS, token.Unknown)
	n.IsExpr = isExpr
	if p.atForm("name") {
		ast.AppendChild(n, p.parseForm())
	}
	for _, c := range p.parseChildrenUntilClose() {
		ast.AppendChild(n, c)
	}
	return n
}

func (p *parser) parseAtom(a string) *ast.Node {
	switch {
	case len(a) >= 2 && a[0] == '"' && a[len(a)-1] == '"':
		n := ast.New(token.STRING, token.Unknown)
		n.SetString(a[1 : len(a)-1])
		return n
	case isNumber(a):
		n := ast.New(token.NUMBER, token.Unknown)
		n.SetString(a)
		return n
	default:
		n := ast.New(token.NAME, token.Unknown)
		n.SetString(a)
		return n
	}
}

// unquote strips a single layer of double quotes, matching how parseAtom
// recognizes a quoted bare atom - so `(str "hello")` and a bare `"hello"`
// atom produce the same STRING payload.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// tokenize splits src into '(' / ')' / atom tokens, treating a
// double-quoted run (no escapes - fixtures never need them) as one atom.
func tokenize(src string) []string {
	var out []string
	i := 0
	for i < len(src) {
		switch c := src[i]; {
		case c == '(' || c == ')':
			out = append(out, string(c))
			i++
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '"':
			j := i + 1
			for j < len(src) && src[j] != '"' {
				j++
			}
			out = append(out, src[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(src) && !strings.ContainsRune(" \t\n\r()", rune(src[j])) {
				j++
			}
			out = append(out, src[i:j])
			i = j
		}
	}
	return out
}
