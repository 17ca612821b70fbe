package object

import (
	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// NilType is the type of the Nil singleton, the sole nullish value in the
// runtime. Optional entries in a chain short-circuit on this value; plain
// accesses on it raise a nil access error.
type NilType struct{}

func (n *NilType) Type() Type {
	return NIL
}

func (n *NilType) Inspect() string {
	return "nil"
}

func (n *NilType) String() string {
	return "nil"
}

func (n *NilType) Interface() interface{} {
	return nil
}

func (n *NilType) Equals(other Object) bool {
	_, ok := other.(*NilType)
	return ok
}

func (n *NilType) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (n *NilType) SetAttr(name string, value Object) error {
	return errz.Typef("nil has no attribute %q", name)
}

func (n *NilType) IsTruthy() bool {
	return false
}

func (n *NilType) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (n *NilType) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errz.Typef("unsupported operation for nil: %v", opType)
}
