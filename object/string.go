package object

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// String wraps a native string and implements Object.
type String struct {
	value string
}

func NewString(value string) *String {
	return &String{value: value}
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Equals(other Object) bool {
	otherStr, ok := other.(*String)
	if !ok {
		return false
	}
	return s.value == otherStr.value
}

// GetAttr returns string methods pre-bound to this string, so a method
// resolved through a chain link carries its receiver with it.
func (s *String) GetAttr(name string) (Object, bool) {
	switch name {
	case "contains":
		return &Builtin{
			name: "string.contains",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 1 {
					return nil, NewArgsError("string.contains", 1, len(args))
				}
				substr, ok := args[0].(*String)
				if !ok {
					return nil, errz.Typef("string.contains expected a string (got %s)", args[0].Type())
				}
				return NewBool(strings.Contains(s.value, substr.value)), nil
			},
		}, true
	case "has_prefix":
		return &Builtin{
			name: "string.has_prefix",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 1 {
					return nil, NewArgsError("string.has_prefix", 1, len(args))
				}
				prefix, ok := args[0].(*String)
				if !ok {
					return nil, errz.Typef("string.has_prefix expected a string (got %s)", args[0].Type())
				}
				return NewBool(strings.HasPrefix(s.value, prefix.value)), nil
			},
		}, true
	case "split":
		return &Builtin{
			name: "string.split",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 1 {
					return nil, NewArgsError("string.split", 1, len(args))
				}
				sep, ok := args[0].(*String)
				if !ok {
					return nil, errz.Typef("string.split expected a string (got %s)", args[0].Type())
				}
				parts := strings.Split(s.value, sep.value)
				items := make([]Object, 0, len(parts))
				for _, part := range parts {
					items = append(items, NewString(part))
				}
				return NewList(items), nil
			},
		}, true
	case "to_lower":
		return &Builtin{
			name: "string.to_lower",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 0 {
					return nil, NewArgsError("string.to_lower", 0, len(args))
				}
				return NewString(strings.ToLower(s.value)), nil
			},
		}, true
	case "to_upper":
		return &Builtin{
			name: "string.to_upper",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 0 {
					return nil, NewArgsError("string.to_upper", 0, len(args))
				}
				return NewString(strings.ToUpper(s.value)), nil
			},
		}, true
	case "trim_space":
		return &Builtin{
			name: "string.trim_space",
			fn: func(ctx context.Context, args ...Object) (Object, error) {
				if len(args) != 0 {
					return nil, NewArgsError("string.trim_space", 0, len(args))
				}
				return NewString(strings.TrimSpace(s.value)), nil
			},
		}, true
	}
	return nil, false
}

func (s *String) SetAttr(name string, value Object) error {
	return errz.Typef("string has no attribute %q", name)
}

func (s *String) IsTruthy() bool {
	return s.value != ""
}

func (s *String) Compare(other Object) (int, error) {
	otherStr, ok := other.(*String)
	if !ok {
		return 0, errz.Typef("unable to compare string and %s", other.Type())
	}
	return strings.Compare(s.value, otherStr.value), nil
}

func (s *String) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.value)), nil
}

func (s *String) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch opType {
	case op.Add:
		rightStr, ok := right.(*String)
		if !ok {
			return nil, errz.Typef("cannot concatenate string and %s", right.Type())
		}
		return NewString(s.value + rightStr.value), nil
	case op.Multiply:
		count, ok := right.(*Int)
		if !ok {
			return nil, errz.Typef("cannot repeat string by %s", right.Type())
		}
		if count.value < 0 {
			return nil, errz.Valuef("negative repeat count: %d", count.value)
		}
		return NewString(strings.Repeat(s.value, int(count.value))), nil
	default:
		return nil, errz.Typef("unsupported operation for string: %v", opType)
	}
}

// GetItem implements the [key] operator, returning the byte at the index as
// a one-character string.
func (s *String) GetItem(key Object) (Object, error) {
	index, ok := key.(*Int)
	if !ok {
		return nil, errz.Typef("string index must be an int (got %s)", key.Type())
	}
	idx, err := ResolveIndex(index.value, int64(len(s.value)))
	if err != nil {
		return nil, err
	}
	return NewString(string(s.value[idx])), nil
}

// SetItem is unsupported: strings are immutable.
func (s *String) SetItem(key, value Object) error {
	return errz.Typef("strings are immutable")
}

// DelItem is unsupported: strings are immutable.
func (s *String) DelItem(key Object) (bool, error) {
	return false, errz.Typef("strings are immutable")
}

func (s *String) Contains(item Object) *Bool {
	substr, ok := item.(*String)
	if !ok {
		return False
	}
	return NewBool(strings.Contains(s.value, substr.value))
}

func (s *String) Len() *Int {
	return NewInt(int64(len(s.value)))
}
