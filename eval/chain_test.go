package eval

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/deepnoodle-ai/chainexpr/parser"
	"github.com/stretchr/testify/require"
)

// chainTarget holds one parsed expression for direct evaluator calls.
type chainTarget struct {
	node ast.Node
	expr ast.Expr
}

func newChainTarget(t *testing.T, input string) *chainTarget {
	t.Helper()
	prog, err := parser.Parse(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	expr, ok := prog.Stmts[0].(ast.Expr)
	require.True(t, ok)
	return &chainTarget{node: prog.Stmts[0], expr: expr}
}

// nested builds {a: {b: {c: 42}}} for traversal tests.
func nested() map[string]object.Object {
	inner := object.NewMap(nil)
	inner.Set("c", object.NewInt(42))
	mid := object.NewMap(nil)
	mid.Set("b", inner)
	outer := object.NewMap(nil)
	outer.Set("a", mid)
	return map[string]object.Object{"obj": outer}
}

// counter returns a builtin that counts its calls and returns the given value.
func counter(calls *int, value object.Object) *object.Builtin {
	return object.NewBuiltin("counter", func(ctx context.Context, args ...object.Object) (object.Object, error) {
		*calls++
		return value, nil
	})
}

func TestChainTraversal(t *testing.T) {
	result := mustRun(t, "obj.a.b.c", nested())
	require.Equal(t, int64(42), result.Interface())

	result = mustRun(t, `obj["a"]["b"]["c"]`, nested())
	require.Equal(t, int64(42), result.Interface())

	result = mustRun(t, "obj?.a?.b?.c", nested())
	require.Equal(t, int64(42), result.Interface())
}

func TestOptionalChainOnNil(t *testing.T) {
	globals := map[string]object.Object{"a": object.Nil}
	tests := []string{
		"a?.b",
		"a?.[0]",
		"a?.()",
		"a?.b.c",
		"a?.b[0]",
		"a?.b()",
		"a?.b.c[1](2).d",
	}
	for _, input := range tests {
		result := mustRun(t, input, globals)
		require.True(t, object.IsNil(result), "input: %s", input)
	}
}

func TestPlainAccessOnNil(t *testing.T) {
	globals := map[string]object.Object{"a": object.Nil}
	tests := []struct {
		input string
		kind  errz.ErrorKind
	}{
		{"a.b", errz.ErrNullish},
		{"a[0]", errz.ErrNullish},
		{"a()", errz.ErrNullish},
	}
	for _, tt := range tests {
		_, err := run(t, tt.input, globals)
		require.Error(t, err, "input: %s", tt.input)
		require.True(t, errz.IsKind(err, tt.kind),
			"input: %s, got: %v", tt.input, err)
	}
}

// A nil observed mid-chain by an optional entry short-circuits every
// remaining link, not just the next one.
func TestLongShortCircuit(t *testing.T) {
	m := object.NewMap(nil) // m.b resolves to nil
	globals := map[string]object.Object{"m": m}

	result := mustRun(t, "m.b?.c.d.e", globals)
	require.True(t, object.IsNil(result))

	// Plain access after the nil would have been a hard error without the
	// optional entry
	_, err := run(t, "m.b.c", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNullish))
}

// Skipped links do not evaluate their subexpressions: no index expressions,
// no argument lists.
func TestShortCircuitSkipsSideEffects(t *testing.T) {
	calls := 0
	globals := map[string]object.Object{
		"a":    object.Nil,
		"side": counter(&calls, object.NewInt(0)),
	}

	result := mustRun(t, "a?.b[side()].c(side(), side())", globals)
	require.True(t, object.IsNil(result))
	require.Equal(t, 0, calls)

	result = mustRun(t, "a?.[side()]", globals)
	require.True(t, object.IsNil(result))
	require.Equal(t, 0, calls)

	result = mustRun(t, "a?.(side())", globals)
	require.True(t, object.IsNil(result))
	require.Equal(t, 0, calls)
}

// Subexpressions on a chain that does not short-circuit run normally.
func TestNoShortCircuitKeepsSideEffects(t *testing.T) {
	calls := 0
	list := object.NewList([]object.Object{object.NewString("first")})
	m := object.NewMap(nil)
	m.Set("items", list)
	globals := map[string]object.Object{
		"m":    m,
		"side": counter(&calls, object.NewInt(0)),
	}
	result := mustRun(t, "m?.items[side()]", globals)
	require.Equal(t, "first", result.Interface())
	require.Equal(t, 1, calls)
}

// The chain base is evaluated exactly once regardless of optional entries.
func TestBaseEvaluatedOnce(t *testing.T) {
	calls := 0
	globals := map[string]object.Object{
		"get": counter(&calls, object.Nil),
	}
	result := mustRun(t, "get()?.b.c", globals)
	require.True(t, object.IsNil(result))
	require.Equal(t, 1, calls)

	calls = 0
	m := object.NewMap(nil)
	m.Set("x", object.NewInt(7))
	globals["get"] = counter(&calls, m)
	result = mustRun(t, "get()?.x", globals)
	require.Equal(t, int64(7), result.Interface())
	require.Equal(t, 1, calls)
}

// Grouping parentheses bound the propagation unit: the short-circuit
// collapses to nil inside the parentheses, and the outer plain access sees
// that nil as a hard error.
func TestGroupingBoundsShortCircuit(t *testing.T) {
	globals := map[string]object.Object{"a": object.Nil}

	result := mustRun(t, "a?.b.c", globals)
	require.True(t, object.IsNil(result))

	_, err := run(t, "(a?.b).c", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNullish))

	// An optional access outside the group tolerates the collapsed nil
	result = mustRun(t, "(a?.b)?.c", globals)
	require.True(t, object.IsNil(result))
}

func TestOptionalCall(t *testing.T) {
	calls := 0
	m := object.NewMap(nil)
	m.Set("fn", counter(&calls, object.NewString("ran")))
	globals := map[string]object.Object{"m": m}

	// Present: the call happens
	result := mustRun(t, "m.fn?.()", globals)
	require.Equal(t, "ran", result.Interface())
	require.Equal(t, 1, calls)

	// Missing: the call is skipped
	result = mustRun(t, "m.missing?.()", globals)
	require.True(t, object.IsNil(result))

	// Present but not callable: still an error
	m.Set("n", object.NewInt(3))
	_, err := run(t, "m.n?.()", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNotCallable))
}

// Argument lists evaluate left to right before the callee is checked, so
// their side effects happen even when the call itself fails.
func TestCallArgsEvaluateBeforeCalleeCheck(t *testing.T) {
	calls := 0
	m := object.NewMap(nil)
	m.Set("n", object.NewInt(3))
	globals := map[string]object.Object{
		"m":    m,
		"side": counter(&calls, object.NewInt(0)),
	}

	// Callee resolved through an optional entry but not callable
	_, err := run(t, "m?.n(side())", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNotCallable))
	require.Equal(t, 1, calls)

	// Plain call on a nil callee is a nullish access, raised after the
	// arguments have run
	calls = 0
	_, err = run(t, "m.absent(side())", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNullish))
	require.Equal(t, 1, calls)
}

func TestMethodReceiver(t *testing.T) {
	m := object.NewMap(nil)
	m.Set("name", object.NewString("widget"))
	m.Set("label", object.NewBuiltin("label", func(ctx context.Context, args ...object.Object) (object.Object, error) {
		receiver, ok := object.GetReceiver(ctx)
		require.True(t, ok)
		return receiver.(*object.Map).Get("name"), nil
	}))
	globals := map[string]object.Object{"m": m}
	result := mustRun(t, "m.label()", globals)
	require.Equal(t, "widget", result.Interface())
}

func TestListIndexing(t *testing.T) {
	list := object.NewList([]object.Object{
		object.NewInt(10), object.NewInt(20), object.NewInt(30),
	})
	globals := map[string]object.Object{"xs": list}

	require.Equal(t, int64(10), mustRun(t, "xs[0]", globals).Interface())
	require.Equal(t, int64(30), mustRun(t, "xs[-1]", globals).Interface())
	require.Equal(t, int64(20), mustRun(t, "xs?.[1]", globals).Interface())
}

func TestDelete(t *testing.T) {
	m := object.NewMap(nil)
	m.Set("k", object.NewInt(1))
	globals := map[string]object.Object{"m": m}

	// Deleting an existing key removes it and yields true
	result := mustRun(t, "delete m.k", globals)
	require.Equal(t, true, result.Interface())
	require.False(t, m.Contains(object.NewString("k")).Value())

	// Deleting a missing key still yields true
	result = mustRun(t, "delete m.missing", globals)
	require.Equal(t, true, result.Interface())

	// Index form
	m.Set("j", object.NewInt(2))
	result = mustRun(t, `delete m["j"]`, globals)
	require.Equal(t, true, result.Interface())
	require.False(t, m.Contains(object.NewString("j")).Value())
}

// Deleting through a short-circuited chain is a no-op that yields true.
func TestDeleteShortCircuit(t *testing.T) {
	calls := 0
	globals := map[string]object.Object{
		"a":    object.Nil,
		"side": counter(&calls, object.NewInt(0)),
	}

	result := mustRun(t, "delete a?.b", globals)
	require.Equal(t, true, result.Interface())

	result = mustRun(t, "delete a?.b.c", globals)
	require.Equal(t, true, result.Interface())

	result = mustRun(t, "delete a?.b[side()]", globals)
	require.Equal(t, true, result.Interface())
	require.Equal(t, 0, calls)

	// Plain delete on nil is still a hard error
	_, err := run(t, "delete a.b", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrNullish))
}

// A map entry holding nil behaves like any other nil for chaining purposes:
// storing nil and missing entries are indistinguishable to ?.
func TestNilEntryVersusMissingEntry(t *testing.T) {
	m := object.NewMap(nil)
	m.Set("present", object.Nil)
	globals := map[string]object.Object{"m": m}

	require.True(t, object.IsNil(mustRun(t, "m.present?.x", globals)))
	require.True(t, object.IsNil(mustRun(t, "m.absent?.x", globals)))
}

// A stacked chain with a mid-chain optional entry: the links before the
// optional entry run normally, the links after it are skipped.
func TestStackedChainMidOptional(t *testing.T) {
	idxCalls, argCalls := 0, 0
	item := object.NewMap(nil) // item.c resolves to nil
	list := object.NewList([]object.Object{
		object.Nil, object.Nil, object.Nil, item,
	})
	m := object.NewMap(nil)
	m.Set("b", list)
	globals := map[string]object.Object{
		"a":   m,
		"idx": counter(&idxCalls, object.NewInt(3)),
		"arg": counter(&argCalls, object.NewInt(0)),
	}

	result := mustRun(t, "a?.b[idx()].c?.(arg()).d", globals)
	require.True(t, object.IsNil(result))
	require.Equal(t, 1, idxCalls, "links before the optional entry run")
	require.Equal(t, 0, argCalls, "links after the short-circuit are skipped")
}

// EvalChain distinguishes a short-circuit from a resolved nil and exposes
// the final reference for property and index accesses.
func TestEvalChainCompletion(t *testing.T) {
	ctx := context.Background()
	m := object.NewMap(nil)
	m.Set("k", object.NewInt(5))
	env := NewEnv(nil)
	env.Declare("m", m)
	env.Declare("a", object.Nil)
	evaluator := New()

	parseTarget := func(input string) *chainTarget {
		t.Helper()
		return newChainTarget(t, input)
	}

	completion, err := evaluator.EvalChain(ctx, parseTarget("m.k").node, env)
	require.NoError(t, err)
	require.Equal(t, NormalValue, completion.Kind)
	require.Equal(t, int64(5), completion.Value.Interface())
	require.NotNil(t, completion.Ref)
	require.Equal(t, m, completion.Ref.Base)
	require.Equal(t, "k", completion.Ref.Key.Interface())

	completion, err = evaluator.EvalChain(ctx, parseTarget("a?.b.c").node, env)
	require.NoError(t, err)
	require.Equal(t, ShortCircuited, completion.Kind)
	require.Nil(t, completion.Value)
	require.Nil(t, completion.Ref)

	// A resolved nil is a NormalValue, not a short-circuit
	completion, err = evaluator.EvalChain(ctx, parseTarget("m.absent").node, env)
	require.NoError(t, err)
	require.Equal(t, NormalValue, completion.Kind)
	require.True(t, object.IsNil(completion.Value))
}

func TestEvalChainForDelete(t *testing.T) {
	ctx := context.Background()
	m := object.NewMap(nil)
	m.Set("k", object.NewInt(5))
	env := NewEnv(nil)
	env.Declare("m", m)
	evaluator := New()

	target := newChainTarget(t, "m.k")
	result, err := evaluator.EvalChainForDelete(ctx, target.expr, env)
	require.NoError(t, err)
	require.Equal(t, true, result.Interface())
	require.Equal(t, 0, m.Size())
}

func TestChainAsExpressionOperand(t *testing.T) {
	globals := nested()
	result := mustRun(t, "obj.a.b.c + 8", globals)
	require.Equal(t, int64(50), result.Interface())

	// A short-circuited chain yields nil, which is not a number
	globals["a"] = object.Nil
	_, err := run(t, "a?.b + 1", globals)
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrType))
}
