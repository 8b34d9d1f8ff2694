package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsuniq/internal/fixture"
	"github.com/mna/jsuniq/token"
)

func TestParseBasicShape(t *testing.T) {
	n := fixture.Parse(`(root (script (var (name x))))`)
	require.Equal(t, token.ROOT, n.Token)

	script := n.FirstChild
	require.NotNil(t, script)
	assert.Equal(t, token.SCRIPT, script.Token)

	v := script.FirstChild
	require.NotNil(t, v)
	assert.Equal(t, token.VAR, v.Token)

	name := v.FirstChild
	require.NotNil(t, name)
	assert.Equal(t, token.NAME, name.Token)
	assert.Equal(t, "x", name.String())
	assert.Nil(t, v.FirstChild.NextSibling)
}

func TestParseDeclaratorWithInit(t *testing.T) {
	n := fixture.Parse(`(root (script (var (= (name x) (num 1)))))`)
	v := n.FirstChild.FirstChild
	pattern := v.FirstChild
	require.NotNil(t, pattern.DeclInit)
	assert.Equal(t, token.NUMBER, pattern.DeclInit.Token)
	assert.Equal(t, "1", pattern.DeclInit.String())
}

func TestParseFunctionExpressionVsDeclaration(t *testing.T) {
	decl := fixture.Parse(`(root (script (fn (name f) (params) (block))))`)
	fn := decl.FirstChild.FirstChild
	assert.Equal(t, token.FUNCTION, fn.Token)
	assert.False(t, fn.IsExpr)

	expr := fixture.Parse(`(root (script (fn (params) (block))))`)
	anon := expr.FirstChild.FirstChild
	assert.Nil(t, anon.FirstChild.PrevSibling)
	assert.Equal(t, token.PARAM_LIST, anon.FirstChild.Token, "an unnamed fn's first child is its params")

	fnexpr := fixture.Parse(`(root (script (var (= (name g) (fnexpr (params) (block))))))`)
	inner := fnexpr.FirstChild.FirstChild.FirstChild.DeclInit
	assert.Equal(t, token.FUNCTION, inner.Token)
	assert.True(t, inner.IsExpr)
}

func TestParseArrow(t *testing.T) {
	n := fixture.Parse(`(root (script (var (= (name f) (arrow (params (name x)) (name x))))))`)
	arrow := n.FirstChild.FirstChild.FirstChild.DeclInit
	assert.Equal(t, token.ARROW, arrow.Token)
	assert.True(t, arrow.IsExpr)

	params := arrow.FirstChild
	assert.Equal(t, token.PARAM_LIST, params.Token)
	body := params.NextSibling
	assert.Equal(t, token.NAME, body.Token, "a concise arrow body is a bare expression, not a BLOCK")
}

func TestParseClassNameExpressionVsDeclaration(t *testing.T) {
	decl := fixture.Parse(`(root (script (cls (name C))))`)
	cls := decl.FirstChild.FirstChild
	assert.Equal(t, token.CLASS, cls.Token)
	assert.False(t, cls.IsExpr)

	expr := fixture.Parse(`(root (script (var (= (name x) (clsexpr)))))`)
	clsexpr := expr.FirstChild.FirstChild.FirstChild.DeclInit
	assert.True(t, clsexpr.IsExpr)
}

func TestParseDestructuringForms(t *testing.T) {
	n := fixture.Parse(`(root (script (var (objpattern (skey a) (skey b (name renamed)) (rest (name others))))))`)
	pattern := n.FirstChild.FirstChild.FirstChild
	assert.Equal(t, token.OBJECT_PATTERN, pattern.Token)

	shorthand := pattern.FirstChild
	assert.Equal(t, token.STRING_KEY, shorthand.Token)
	assert.Equal(t, "a", shorthand.String())
	assert.Nil(t, shorthand.FirstChild)

	keyed := shorthand.NextSibling
	assert.Equal(t, token.STRING_KEY, keyed.Token)
	assert.Equal(t, "b", keyed.String())
	require.NotNil(t, keyed.FirstChild)
	assert.Equal(t, "renamed", keyed.FirstChild.String())

	rest := keyed.NextSibling
	assert.Equal(t, token.REST, rest.Token)
	assert.Equal(t, "others", rest.FirstChild.String())
}

func TestParseDefaultValue(t *testing.T) {
	n := fixture.Parse(`(root (script (fn (params (default (name x) (num 1))) (block))))`)
	params := n.FirstChild.FirstChild.FirstChild
	def := params.FirstChild
	assert.Equal(t, token.DEFAULT_VALUE, def.Token)
	assert.Equal(t, "x", def.FirstChild.String())
	require.NotNil(t, def.DeclInit)
	assert.Equal(t, "1", def.DeclInit.String())
}

func TestParseStringAndNumberAtoms(t *testing.T) {
	n := fixture.Parse(`(root (script (expr (str "hello")) (expr (num 42))))`)
	str := n.FirstChild.FirstChild.FirstChild
	assert.Equal(t, token.STRING, str.Token)
	assert.Equal(t, "hello", str.String())

	num := n.FirstChild.FirstChild.NextSibling.FirstChild
	assert.Equal(t, token.NUMBER, num.Token)
	assert.Equal(t, "42", num.String())
}

func TestParseExportAs(t *testing.T) {
	n := fixture.Parse(`(root (module (export (as y (name x)))))`)
	exportNode := n.FirstChild.FirstChild
	assert.Equal(t, token.EXPORT, exportNode.Token)
	target := exportNode.FirstChild
	assert.Equal(t, "x", target.String())
	assert.Equal(t, "y", target.ExternalName)
}

func TestParsePanicsOnUnknownTag(t *testing.T) {
	assert.Panics(t, func() {
		fixture.Parse(`(root (bogus))`)
	})
}

func TestParsePanicsOnTrailingInput(t *testing.T) {
	assert.Panics(t, func() {
		fixture.Parse(`(root (script)) (script)`)
	})
}
