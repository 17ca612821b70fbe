package object

import (
	"bytes"
	"context"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// List wraps a slice of objects and implements Object and Container.
type List struct {
	items []Object
}

func NewList(items []Object) *List {
	return &List{items: items}
}

func (ls *List) Type() Type {
	return LIST
}

func (ls *List) Value() []Object {
	return ls.items
}

func (ls *List) Inspect() string {
	var out bytes.Buffer
	out.WriteString("[")
	for i, item := range ls.items {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(item.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (ls *List) String() string {
	return ls.Inspect()
}

func (ls *List) Interface() interface{} {
	items := make([]interface{}, 0, len(ls.items))
	for _, item := range ls.items {
		items = append(items, item.Interface())
	}
	return items
}

func (ls *List) Equals(other Object) bool {
	otherList, ok := other.(*List)
	if !ok {
		return false
	}
	if len(ls.items) != len(otherList.items) {
		return false
	}
	for i, item := range ls.items {
		if !item.Equals(otherList.items[i]) {
			return false
		}
	}
	return true
}

// GetAttr returns list methods pre-bound to this list.
func (ls *List) GetAttr(name string) (Object, bool) {
	switch name {
	case "length":
		return ls.Len(), true
	case "append":
		return &Builtin{
			name: "list.append",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 1 {
					return nil, NewArgsError("list.append", 1, len(args))
				}
				ls.Append(args[0])
				return ls, nil
			},
		}, true
	case "contains":
		return &Builtin{
			name: "list.contains",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 1 {
					return nil, NewArgsError("list.contains", 1, len(args))
				}
				return ls.Contains(args[0]), nil
			},
		}, true
	}
	return nil, false
}

func (ls *List) SetAttr(name string, value Object) error {
	return errz.Typef("list has no attribute %q", name)
}

func (ls *List) IsTruthy() bool {
	return len(ls.items) > 0
}

func (ls *List) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	if opType != op.Add {
		return nil, errz.Typef("unsupported operation for list: %v", opType)
	}
	otherList, ok := right.(*List)
	if !ok {
		return nil, errz.Typef("cannot concatenate list and %s", right.Type())
	}
	items := make([]Object, 0, len(ls.items)+len(otherList.items))
	items = append(items, ls.items...)
	items = append(items, otherList.items...)
	return NewList(items), nil
}

func (ls *List) Append(item Object) {
	ls.items = append(ls.items, item)
}

// GetItem implements the [key] operator for a container type.
func (ls *List) GetItem(key Object) (Object, error) {
	index, ok := key.(*Int)
	if !ok {
		return nil, errz.Typef("list index must be an int (got %s)", key.Type())
	}
	idx, err := ResolveIndex(index.value, int64(len(ls.items)))
	if err != nil {
		return nil, err
	}
	return ls.items[idx], nil
}

// SetItem implements the [key] = value operator for a container type.
func (ls *List) SetItem(key, value Object) error {
	index, ok := key.(*Int)
	if !ok {
		return errz.Typef("list index must be an int (got %s)", key.Type())
	}
	idx, err := ResolveIndex(index.value, int64(len(ls.items)))
	if err != nil {
		return err
	}
	ls.items[idx] = value
	return nil
}

// DelItem removes the element at the given index.
func (ls *List) DelItem(key Object) (bool, error) {
	index, ok := key.(*Int)
	if !ok {
		return false, errz.Typef("list index must be an int (got %s)", key.Type())
	}
	idx, err := ResolveIndex(index.value, int64(len(ls.items)))
	if err != nil {
		return false, err
	}
	ls.items = append(ls.items[:idx], ls.items[idx+1:]...)
	return true, nil
}

// Contains returns true if the given item is found in this container.
func (ls *List) Contains(item Object) *Bool {
	for _, v := range ls.items {
		if v.Equals(item) {
			return True
		}
	}
	return False
}

// Len returns the number of items in this container.
func (ls *List) Len() *Int {
	return NewInt(int64(len(ls.items)))
}

func (ls *List) Size() int {
	return len(ls.items)
}

// ResolveIndex checks that the index is in range and resolves a negative
// index to a positive offset from the end.
func ResolveIndex(idx int64, size int64) (int64, error) {
	max := size - 1
	if idx > max {
		return 0, errz.Valuef("index out of range: %d (max %d)", idx, max)
	}
	if idx >= 0 {
		return idx, nil
	}
	// Handle negative indices
	reversed := idx + size
	if reversed < 0 {
		return 0, errz.Valuef("index out of range: %d", idx)
	}
	return reversed, nil
}
