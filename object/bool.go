package object

import (
	"fmt"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// Bool wraps a native bool and implements Object. Only two Bool instances
// exist: the True and False singletons.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	return fmt.Sprintf("%t", b.value)
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Equals(other Object) bool {
	otherBool, ok := other.(*Bool)
	if !ok {
		return false
	}
	return b.value == otherBool.value
}

func (b *Bool) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (b *Bool) SetAttr(name string, value Object) error {
	return errz.Typef("bool has no attribute %q", name)
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

func (b *Bool) Compare(other Object) (int, error) {
	otherBool, ok := other.(*Bool)
	if !ok {
		return 0, errz.Typef("unable to compare bool and %s", other.Type())
	}
	if b.value == otherBool.value {
		return 0, nil
	}
	if b.value {
		return 1, nil
	}
	return -1, nil
}

func (b *Bool) MarshalJSON() ([]byte, error) {
	return []byte(b.Inspect()), nil
}

func (b *Bool) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errz.Typef("unsupported operation for bool: %v", opType)
}
