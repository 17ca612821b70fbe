package chainexpr

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	result, err := Eval(context.Background(), "1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Interface())
}

func TestEvalWithGlobal(t *testing.T) {
	user := object.NewMap(nil)
	address := object.NewMap(nil)
	address.Set("city", object.NewString("Portland"))
	user.Set("address", address)

	result, err := Eval(context.Background(), "user?.address?.city",
		WithGlobal("user", user))
	require.NoError(t, err)
	require.Equal(t, "Portland", result.Interface())

	result, err = Eval(context.Background(), "user?.address?.city",
		WithGlobal("user", object.Nil))
	require.NoError(t, err)
	require.True(t, object.IsNil(result))
}

func TestEvalWithGlobals(t *testing.T) {
	result, err := Eval(context.Background(), "x + y", WithGlobals(map[string]object.Object{
		"x": object.NewInt(2),
		"y": object.NewInt(3),
	}))
	require.NoError(t, err)
	require.Equal(t, int64(5), result.Interface())
}

func TestDefaultGlobals(t *testing.T) {
	result, err := Eval(context.Background(), `len("hello")`)
	require.NoError(t, err)
	require.Equal(t, int64(5), result.Interface())

	result, err = Eval(context.Background(), "type(nil)")
	require.NoError(t, err)
	require.Equal(t, "nil", result.Interface())

	_, err = Eval(context.Background(), `len("hello")`, WithoutDefaultGlobals())
	require.Error(t, err)
	require.True(t, errz.IsKind(err, errz.ErrName))
}

func TestEvalSyntaxError(t *testing.T) {
	_, err := Eval(context.Background(), "a ?? b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "nullish coalescing")
}

func TestParseProgram(t *testing.T) {
	prog, err := Parse(context.Background(), "a?.b\nc.d")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
}

func TestEvalFilenameInErrors(t *testing.T) {
	_, err := Eval(context.Background(), "x ?? y", WithFilename("main.ce"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "main.ce")
}

func TestEvalMultipleStatements(t *testing.T) {
	result, err := Eval(context.Background(), "cfg = {retries: 3}\ncfg?.retries")
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Interface())
}
