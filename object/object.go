// Package object provides the runtime object types traversed by chain
// expressions.
//
// For external users of chainexpr, often an object.Object interface
// will be type asserted to a specific object type, such as *object.Float.
//
// For example:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// do something with obj.Value()
//	case *object.Float:
//		// do something with obj.Value()
//	}
//
// The Type() method of each object may also be used to get a string
// name of the object type, such as "string" or "float".
package object

import (
	"context"

	"github.com/deepnoodle-ai/chainexpr/op"
)

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL    Type = "bool"
	BUILTIN Type = "builtin"
	FLOAT   Type = "float"
	INT     Type = "int"
	LIST    Type = "list"
	MAP     Type = "map"
	NIL     Type = "nil"
	STRING  Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface that all object types in chainexpr must implement.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool

	// GetAttr returns the attribute with the given name from this object.
	GetAttr(name string) (Object, bool)

	// SetAttr sets the attribute with the given name on this object.
	SetAttr(name string, value Object) error

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool

	// RunOperation runs an operation on this object with the given
	// right-hand side object.
	RunOperation(opType op.BinaryOpType, right Object) (Object, error)
}

// Container is an interface for types that support the [key] operator.
type Container interface {
	// GetItem implements the [key] operator for a container type.
	GetItem(key Object) (Object, error)

	// SetItem implements the [key] = value operator for a container type.
	SetItem(key, value Object) error

	// DelItem implements deletion of [key] for a container type. The boolean
	// result reports whether the deletion succeeded.
	DelItem(key Object) (bool, error)

	// Contains returns true if the given item is found in this container.
	Contains(item Object) *Bool

	// Len returns the number of items in this container.
	Len() *Int
}

// Callable is an interface for objects that can be invoked as functions.
type Callable interface {
	// Call invokes the callable with the given arguments and returns the result.
	Call(ctx context.Context, args ...Object) (Object, error)
}

// Comparable is an interface used to compare two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

// IsNil returns true if the object is nil or the Nil singleton. Nil-ness is
// the condition tested by an optional entry (?.) in a chain.
func IsNil(obj Object) bool {
	if obj == nil {
		return true
	}
	_, ok := obj.(*NilType)
	return ok
}

// NewBool returns the Bool singleton for the given native bool.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
