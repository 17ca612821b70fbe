package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapMissingEntriesResolveToNil(t *testing.T) {
	m := NewMap(map[string]Object{"a": NewInt(1)})

	value, found := m.GetAttr("a")
	require.True(t, found)
	require.Equal(t, int64(1), value.Interface())

	// Missing attributes resolve to Nil rather than failing, so optional
	// chains can observe the nil
	value, found = m.GetAttr("missing")
	require.True(t, found)
	require.True(t, IsNil(value))

	item, err := m.GetItem(NewString("missing"))
	require.NoError(t, err)
	require.True(t, IsNil(item))
}

func TestMapDelItem(t *testing.T) {
	m := NewMap(map[string]Object{"a": NewInt(1)})

	deleted, err := m.DelItem(NewString("a"))
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, 0, m.Size())

	// Deleting a missing key succeeds
	deleted, err = m.DelItem(NewString("a"))
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = m.DelItem(NewInt(1))
	require.Error(t, err)
}

func TestMapEquals(t *testing.T) {
	a := NewMap(map[string]Object{"x": NewInt(1)})
	b := NewMap(map[string]Object{"x": NewInt(1)})
	c := NewMap(map[string]Object{"x": NewInt(2)})
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.False(t, a.Equals(NewInt(1)))
}

func TestMapKeys(t *testing.T) {
	m := NewMap(map[string]Object{"b": NewInt(2), "a": NewInt(1)})
	keys := m.Keys()
	require.Equal(t, []interface{}{"a", "b"}, keys.Interface())
}
