package object

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// Map wraps a map of string keys to objects and implements Object and
// Container. Maps are the primary object-graph nodes traversed by chains:
// attribute access and [key] indexing both read entries, and a missing entry
// resolves to Nil rather than raising an error, so that a downstream optional
// entry can observe the nil.
type Map struct {
	items map[string]Object
}

func NewMap(items map[string]Object) *Map {
	if items == nil {
		items = map[string]Object{}
	}
	return &Map{items: items}
}

func (m *Map) Type() Type {
	return MAP
}

func (m *Map) Value() map[string]Object {
	return m.items
}

func (m *Map) Inspect() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, key := range m.SortedKeys() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(fmt.Sprintf("%q: %s", key, m.items[key].Inspect()))
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) String() string {
	return m.Inspect()
}

func (m *Map) Interface() interface{} {
	result := make(map[string]interface{}, len(m.items))
	for key, value := range m.items {
		result[key] = value.Interface()
	}
	return result
}

func (m *Map) Equals(other Object) bool {
	otherMap, ok := other.(*Map)
	if !ok {
		return false
	}
	if len(m.items) != len(otherMap.items) {
		return false
	}
	for key, value := range m.items {
		otherValue, found := otherMap.items[key]
		if !found || !value.Equals(otherValue) {
			return false
		}
	}
	return true
}

// GetAttr resolves an attribute to the map entry with that name. A missing
// entry resolves to Nil.
func (m *Map) GetAttr(name string) (Object, bool) {
	if value, found := m.items[name]; found {
		return value, true
	}
	return Nil, true
}

func (m *Map) SetAttr(name string, value Object) error {
	m.items[name] = value
	return nil
}

func (m *Map) IsTruthy() bool {
	return len(m.items) > 0
}

func (m *Map) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errz.Typef("unsupported operation for map: %v", opType)
}

func (m *Map) SortedKeys() []string {
	keys := make([]string, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *Map) Keys() *List {
	keys := m.SortedKeys()
	items := make([]Object, 0, len(keys))
	for _, key := range keys {
		items = append(items, NewString(key))
	}
	return NewList(items)
}

func (m *Map) Get(key string) Object {
	if value, found := m.items[key]; found {
		return value
	}
	return Nil
}

func (m *Map) Set(key string, value Object) {
	m.items[key] = value
}

// GetItem implements the [key] operator for a container type. Like attribute
// access, a missing key resolves to Nil.
func (m *Map) GetItem(key Object) (Object, error) {
	strKey, ok := key.(*String)
	if !ok {
		return nil, errz.Typef("map key must be a string (got %s)", key.Type())
	}
	if value, found := m.items[strKey.value]; found {
		return value, nil
	}
	return Nil, nil
}

// SetItem implements the [key] = value operator for a container type.
func (m *Map) SetItem(key, value Object) error {
	strKey, ok := key.(*String)
	if !ok {
		return errz.Typef("map key must be a string (got %s)", key.Type())
	}
	m.items[strKey.value] = value
	return nil
}

// DelItem removes the entry with the given key. Deleting a missing key is
// not an error: there was nothing to delete, and the operation succeeds.
func (m *Map) DelItem(key Object) (bool, error) {
	strKey, ok := key.(*String)
	if !ok {
		return false, errz.Typef("map key must be a string (got %s)", key.Type())
	}
	delete(m.items, strKey.value)
	return true, nil
}

// Contains returns true if the given key is present in the map.
func (m *Map) Contains(key Object) *Bool {
	strKey, ok := key.(*String)
	if !ok {
		return False
	}
	_, found := m.items[strKey.value]
	return NewBool(found)
}

// Len returns the number of entries in the map.
func (m *Map) Len() *Int {
	return NewInt(int64(len(m.items)))
}

func (m *Map) Size() int {
	return len(m.items)
}
