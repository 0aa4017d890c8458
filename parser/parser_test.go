package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torsv454/texttemplate/ast"
)

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"$if(condition) Some text":      "Expected '$end' at position: 24",
		"$unknown(x)":                   "Unknown directive at position: 0",
		"$greater_than(x, abc) $end":    "Expected integer literal at position: 17",
		"$less_than(x, ) $end":          "Expected integer literal at position: 14",
		"${name":                        "Expected '}' at position: 6",
		"${name|fmt":                    "Expected '}' at position: 10",
		"$-- unclosed":                  "Expected '--$' to close comment at position: 12",
		"$if_eq(x, 5)y$end":             `Expected '"' at position: 10`,
		"$if_eq(x, \"y\" junk":          "Expected ')' at position: 14",
		"$each(items)":                  "Expected '$end' at position: 12",
		"$index(items":                  "Expected ')' at position: 12",
		"$call(m)$arg(a)x$end":          "Expected '$end' at position: 20",
		"$call(m)junk$end":              "Expected '$arg' at position: 8",
		"text then $oops":               "Unknown directive at position: 10",
		"$if(open":                      "Expected ')' at position: 8",
		"$greater_than(missing comma)x": "Expected ',' at position: 29",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.Equal(t, expected, err.Error())

			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.True(t, strings.HasSuffix(expected, "position: "+strconv.Itoa(syn.Position)))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// inputs already in canonical form print back unchanged
	inputs := []string{
		"",
		"hello world",
		"line one\nline two\n",
		"$$",
		"a$$b",
		"${name}",
		"${user.name}",
		"${joined|2006-01-02}",
		"$if(flag)yes$end",
		"$unless(flag)no$end",
		"$if_eq(v, \"x\")b$end",
		"$unless_eq(v, \"x\")b$end",
		"$greater_than(n, 5)big$end",
		"$less_than(n, 5)small$end",
		"$greater_than_or_eq(n, 5)ge$end",
		"$less_than_or_eq(n, 5)le$end",
		"$if_has_many(items)several$end",
		"$unless_has_many(items)few$end",
		"$each(items)${it}$end",
		"$first(items)${it}$end",
		"$last(items)${it}$end",
		"$length(items)",
		"$index(items, 2)",
		"$index(old, ${key})",
		"$include(header.tt)",
		"$call(m)$arg(a)x$end$end",
		"$each(rows)$each(cells)${it}$end$end",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tpl, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, input, tpl.String())
		})
	}
}

func TestParseNodeShapes(t *testing.T) {
	tpl, err := Parse("a${x|%d}$-- note --$$each(xs)${it}$end$length(xs)")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 5)

	assert.Equal(t, ast.TextType, nodes[0].Type())
	assert.Equal(t, "a", nodes[0].(*ast.TextNode).Text)

	v := nodes[1].(*ast.VariableNode)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, "%d", v.Format)

	assert.Equal(t, ast.CommentType, nodes[2].Type())

	loop := nodes[3].(*ast.LoopNode)
	assert.Equal(t, "xs", loop.Name)
	require.Len(t, loop.Body.Nodes, 1)
	assert.Equal(t, "it", loop.Body.Nodes[0].(*ast.VariableNode).Name)

	assert.Equal(t, "xs", nodes[4].(*ast.LengthNode).Iterable)
}

func TestParseVariableNamesAreVerbatim(t *testing.T) {
	tpl, err := Parse("${ spaced name }${a/b.c}")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, " spaced name ", nodes[0].(*ast.VariableNode).Name)
	assert.Equal(t, "a/b.c", nodes[1].(*ast.VariableNode).Name)
}

func TestParseFormatTrimmed(t *testing.T) {
	tpl, err := Parse("${d| 2006-01-02 }${e| }")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	assert.Equal(t, "2006-01-02", nodes[0].(*ast.VariableNode).Format)
	// an all-blank format clause collapses to absent
	assert.Equal(t, "", nodes[1].(*ast.VariableNode).Format)
}

func TestParseHeaderOperandsTrimmed(t *testing.T) {
	tpl, err := Parse("$each( items )${it}$end$index( old , ${key} )")
	require.NoError(t, err)
	assert.Equal(t, "items", tpl.Children.Nodes[0].(*ast.LoopNode).Name)
	idx := tpl.Children.Nodes[1].(*ast.IndexNode)
	assert.Equal(t, "old", idx.Variable)
	assert.Equal(t, "${key}", idx.Index)
}

func TestParseEqLiteralIsRaw(t *testing.T) {
	tpl, err := Parse(`$if_eq(v, "a \ b")x$end`)
	require.NoError(t, err)
	n := tpl.Children.Nodes[0].(*ast.IfEqNode)
	// no escape processing inside the quotes
	assert.Equal(t, `a \ b`, n.Literal)
}

func TestParseKeywordPriority(t *testing.T) {
	// $if_eq must not be claimed by $if, nor $greater_than_or_eq by
	// $greater_than
	tpl, err := Parse(`$if_eq(v, "x")a$end$greater_than_or_eq(n, 1)b$end$if_has_many(xs)c$end`)
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	assert.Equal(t, ast.IfEqType, nodes[0].Type())
	assert.Equal(t, ast.GreaterThanOrEqType, nodes[1].Type())
	assert.Equal(t, ast.IfHasManyType, nodes[2].Type())
}

func TestParseTrailingNewlineAfterHeader(t *testing.T) {
	// the newline (and blanks before it) after a block header is eaten
	tpl, err := Parse("$if(a)  \nX$end")
	require.NoError(t, err)
	body := tpl.Children.Nodes[0].(*ast.IfNode).Body
	require.Len(t, body.Nodes, 1)
	assert.Equal(t, "X", body.Nodes[0].(*ast.TextNode).Text)
}

func TestParseTrailingNewlineAfterEnd(t *testing.T) {
	tpl, err := Parse("$if(a)X$end\nrest")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, "rest", nodes[1].(*ast.TextNode).Text)
}

func TestParseBlanksWithoutNewlineKept(t *testing.T) {
	// without a newline the run of blanks after a terminator is preserved
	tpl, err := Parse("$if(a)X$end  rest")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, "  rest", nodes[1].(*ast.TextNode).Text)
}

func TestParseLengthDoesNotTrim(t *testing.T) {
	tpl, err := Parse("$length(xs)\nrest")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, "\nrest", nodes[1].(*ast.TextNode).Text)
}

func TestParseIndexDoesNotTrim(t *testing.T) {
	tpl, err := Parse("$index(xs, 0)\nrest")
	require.NoError(t, err)
	nodes := tpl.Children.Nodes
	require.Len(t, nodes, 2)
	assert.Equal(t, "\nrest", nodes[1].(*ast.TextNode).Text)
}

func TestParseMacroWhitespace(t *testing.T) {
	src := "$call(table)\n  $arg(title)Report$end\n  $arg(rows)\n1\n$end\n$end"
	tpl, err := Parse(src)
	require.NoError(t, err)
	m := tpl.Children.Nodes[0].(*ast.MacroNode)
	assert.Equal(t, "table", m.Name)
	require.Len(t, m.Args, 2)
	assert.Equal(t, "title", m.Args[0].Name)
	assert.Equal(t, "Report", m.Args[0].Body.String())
	assert.Equal(t, "rows", m.Args[1].Name)
	assert.Equal(t, "1\n", m.Args[1].Body.String())
}

func TestParseMacroNoArgs(t *testing.T) {
	tpl, err := Parse("$call(now)$end")
	require.NoError(t, err)
	m := tpl.Children.Nodes[0].(*ast.MacroNode)
	assert.Equal(t, "now", m.Name)
	assert.Empty(t, m.Args)
}

func TestFormatError(t *testing.T) {
	_, err := Parse("$each(xs)\n${broken")
	require.Error(t, err)

	plain := FormatError(err, false, false)
	assert.Equal(t, "Expected '}' at position: 18", plain)

	annotated := FormatError(err, false, true)
	assert.Contains(t, annotated, "Expected '}' at position: 18")
	assert.Contains(t, annotated, "${broken")
}
