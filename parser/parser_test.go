package parser

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/stretchr/testify/require"
)

// parseExpr parses input expecting a single expression statement.
func parseExpr(t *testing.T, input string) ast.Node {
	t.Helper()
	prog, err := Parse(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	return prog.Stmts[0]
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"true", "true"},
		{"false", "false"},
		{"nil", "nil"},
		{`"hi"`, `"hi"`},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{`{a: 1, "b": 2}`, `{"a": 1, "b": 2}`},
	}
	for _, tt := range tests {
		node := parseExpr(t, tt.input)
		require.Equal(t, tt.expected, node.String(), "input: %s", tt.input)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"-a * b", "((-a) * b)"},
		{"!a && b", "((!a) && b)"},
		{"a + b < c * d", "((a + b) < (c * d))"},
		{"a == b || c != d", "((a == b) || (c != d))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"a.b + c", "(a.b + c)"},
		{"a?.b + c", "(a?.b + c)"},
	}
	for _, tt := range tests {
		node := parseExpr(t, tt.input)
		require.Equal(t, tt.expected, node.String(), "input: %s", tt.input)
	}
}

func TestParseChains(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a.b.c", "a.b.c"},
		{"a?.b", "a?.b"},
		{"a?.b.c", "a?.b.c"},
		{"a?.b?.c", "a?.b?.c"},
		{"a?.[0]", "a?.[0]"},
		{"a?.()", "a?.()"},
		{"a?.b[1].c(2)", "a?.b[1].c(2)"},
		{"(a?.b).c", "(a?.b).c"},
		{"f(x)?.y", "f(x)?.y"},
	}
	for _, tt := range tests {
		node := parseExpr(t, tt.input)
		require.Equal(t, tt.expected, node.String(), "input: %s", tt.input)
	}
}

func TestParseOptionalFlags(t *testing.T) {
	node := parseExpr(t, "a?.b.c")
	outer, ok := node.(*ast.GetAttr)
	require.True(t, ok)
	require.False(t, outer.Optional)
	require.Equal(t, "c", outer.Attr.Name)
	inner, ok := outer.X.(*ast.GetAttr)
	require.True(t, ok)
	require.True(t, inner.Optional)
	require.Equal(t, "b", inner.Attr.Name)
}

// "foo?.3:0" must parse as a ternary with a float literal, not as an
// optional chain.
func TestParseTernaryVersusOptionalChain(t *testing.T) {
	node := parseExpr(t, "foo ? .3 : 0")
	tern, ok := node.(*ast.Ternary)
	require.True(t, ok)
	require.IsType(t, &ast.Float{}, tern.IfTrue)

	node = parseExpr(t, "foo?.3:0")
	tern, ok = node.(*ast.Ternary)
	require.True(t, ok)
	f, ok := tern.IfTrue.(*ast.Float)
	require.True(t, ok)
	require.Equal(t, 0.3, f.Value)
}

func TestParseGrouped(t *testing.T) {
	node := parseExpr(t, "(a?.b).c")
	outer, ok := node.(*ast.GetAttr)
	require.True(t, ok)
	grouped, ok := outer.X.(*ast.Grouped)
	require.True(t, ok)
	require.IsType(t, &ast.GetAttr{}, grouped.X)
	require.False(t, ast.ContainsOptionalChain(node))
}

func TestParseAssignments(t *testing.T) {
	node := parseExpr(t, "x = 1")
	require.IsType(t, &ast.Assign{}, node)

	node = parseExpr(t, "a.b = 2")
	require.IsType(t, &ast.SetAttr{}, node)

	node = parseExpr(t, "a[0] = 3")
	require.IsType(t, &ast.SetIndex{}, node)
}

func TestParseDelete(t *testing.T) {
	node := parseExpr(t, "delete a.b")
	del, ok := node.(*ast.Delete)
	require.True(t, ok)
	require.IsType(t, &ast.GetAttr{}, del.X)

	node = parseExpr(t, "delete a?.b[0]")
	del, ok = node.(*ast.Delete)
	require.True(t, ok)
	require.IsType(t, &ast.Index{}, del.X)
}

func TestParseNew(t *testing.T) {
	node := parseExpr(t, "new f(1, 2)")
	n, ok := node.(*ast.New)
	require.True(t, ok)
	require.Len(t, n.Call.Args, 2)

	node = parseExpr(t, "new a.b()")
	require.IsType(t, &ast.New{}, node)

	// An access after the argument list applies to the constructed object
	node = parseExpr(t, "new Point(1, 2).x")
	attr, ok := node.(*ast.GetAttr)
	require.True(t, ok)
	require.IsType(t, &ast.New{}, attr.X)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"a ?? b", "nullish coalescing"},
		{"a?.b = 1", "not a valid assignment target"},
		{"a?.b.c = 1", "not a valid assignment target"},
		{"a?.[0] = 1", "not a valid assignment target"},
		{"new a?.b()", "not a valid constructor target"},
		{"new a?.()", "not a valid constructor target"},
		{"new f", "constructor call"},
		{"a?.b`x`", "may not continue an optional chain"},
		{"f`x`", "tagged template literals are not supported"},
		{"a ? b ? c : d : e", "nested ternary"},
		{"delete x", "invalid delete target"},
		{"x = ", "unexpected"},
		{"a?.", "unexpected"},
		{"(a", "grouped expression"},
	}
	for _, tt := range tests {
		_, err := Parse(context.Background(), tt.input)
		require.Error(t, err, "input: %s", tt.input)
		require.Contains(t, err.Error(), tt.message, "input: %s", tt.input)
	}
}

// Assignment through a grouped chain is allowed: the parentheses seal off
// the optional chain, so the outer access is an ordinary target.
func TestParseGroupedAssignTarget(t *testing.T) {
	node := parseExpr(t, "(a?.b).c = 1")
	require.IsType(t, &ast.SetAttr{}, node)
}

func TestParseMultipleStatements(t *testing.T) {
	prog, err := Parse(context.Background(), "x = 1\ny = 2; z = x + y")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 3)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse(context.Background(), "x = 1\ny ?? 2", WithFilename("test.ce"))
	require.Error(t, err)
	errs, ok := err.(*Errors)
	require.True(t, ok)
	require.Len(t, errs.Errors(), 1)
	first := errs.Errors()[0]
	require.Equal(t, "test.ce", first.File())
	require.Equal(t, 2, first.StartPosition().LineNumber())
	require.Equal(t, "y ?? 2", first.SourceCode())
}

func TestParseCollectsMultipleErrors(t *testing.T) {
	_, err := Parse(context.Background(), "a ?? b\nc ?? d")
	require.Error(t, err)
	errs, ok := err.(*Errors)
	require.True(t, ok)
	require.Len(t, errs.Errors(), 2)
}

func TestParseDeepNesting(t *testing.T) {
	var input string
	for i := 0; i < 1000; i++ {
		input += "("
	}
	input += "1"
	for i := 0; i < 1000; i++ {
		input += ")"
	}
	_, err := Parse(context.Background(), input)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nesting is too deep")
}
