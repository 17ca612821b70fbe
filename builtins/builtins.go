// Package builtins defines the default global functions available to chain
// expressions.
package builtins

import (
	"context"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/object"
)

// Len returns the length of a string, list, or map.
func Len(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgsError("len", 1, len(args))
	}
	container, ok := args[0].(object.Container)
	if !ok {
		return nil, errz.Typef("len() unsupported argument (%s given)", args[0].Type())
	}
	return container.Len(), nil
}

// Type returns the type name of the given object as a string.
func Type(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgsError("type", 1, len(args))
	}
	return object.NewString(string(args[0].Type())), nil
}

// Keys returns the sorted keys of a map as a list of strings.
func Keys(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgsError("keys", 1, len(args))
	}
	m, ok := args[0].(*object.Map)
	if !ok {
		return nil, errz.Typef("keys() expected a map (%s given)", args[0].Type())
	}
	return m.Keys(), nil
}

// String converts the given object to its string representation.
func String(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgsError("string", 1, len(args))
	}
	if s, ok := args[0].(*object.String); ok {
		return s, nil
	}
	return object.NewString(args[0].Inspect()), nil
}

// Print writes its arguments to standard output, separated by spaces.
func Print(ctx context.Context, args ...object.Object) (object.Object, error) {
	values := make([]string, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(*object.String); ok {
			values = append(values, s.Value())
		} else {
			values = append(values, arg.Inspect())
		}
	}
	fmt.Println(strings.Join(values, " "))
	return object.Nil, nil
}

// Defaults returns the default global bindings.
func Defaults() map[string]object.Object {
	return map[string]object.Object{
		"len":    object.NewBuiltin("len", Len),
		"type":   object.NewBuiltin("type", Type),
		"keys":   object.NewBuiltin("keys", Keys),
		"string": object.NewBuiltin("string", String),
		"print":  object.NewBuiltin("print", Print),
	}
}
