package builtins

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/stretchr/testify/require"
)

func TestLen(t *testing.T) {
	result, err := Len(context.Background(), object.NewString("abc"))
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Interface())

	result, err = Len(context.Background(), object.NewList([]object.Object{object.True}))
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Interface())

	_, err = Len(context.Background(), object.NewInt(1))
	require.Error(t, err)

	_, err = Len(context.Background())
	require.Error(t, err)
}

func TestType(t *testing.T) {
	result, err := Type(context.Background(), object.Nil)
	require.NoError(t, err)
	require.Equal(t, "nil", result.Interface())

	result, err = Type(context.Background(), object.NewString("x"))
	require.NoError(t, err)
	require.Equal(t, "string", result.Interface())
}

func TestKeys(t *testing.T) {
	m := object.NewMap(map[string]object.Object{
		"b": object.NewInt(2),
		"a": object.NewInt(1),
	})
	result, err := Keys(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a", "b"}, result.Interface())

	_, err = Keys(context.Background(), object.NewInt(1))
	require.Error(t, err)
}

func TestString(t *testing.T) {
	result, err := String(context.Background(), object.NewInt(42))
	require.NoError(t, err)
	require.Equal(t, "42", result.Interface())

	s := object.NewString("already")
	result, err = String(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, s, result)
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	for _, name := range []string{"len", "type", "keys", "string", "print"} {
		require.Contains(t, defaults, name)
	}
}
