package object

import (
	"math"
	"strconv"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// Int wraps a native int64 and implements Object.
type Int struct {
	value int64
}

func NewInt(value int64) *Int {
	return &Int{value: value}
}

func (i *Int) Type() Type {
	return INT
}

func (i *Int) Value() int64 {
	return i.value
}

func (i *Int) Inspect() string {
	return strconv.FormatInt(i.value, 10)
}

func (i *Int) String() string {
	return i.Inspect()
}

func (i *Int) Interface() interface{} {
	return i.value
}

func (i *Int) Equals(other Object) bool {
	switch other := other.(type) {
	case *Int:
		return i.value == other.value
	case *Float:
		return float64(i.value) == other.value
	}
	return false
}

func (i *Int) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (i *Int) SetAttr(name string, value Object) error {
	return errz.Typef("int has no attribute %q", name)
}

func (i *Int) IsTruthy() bool {
	return i.value != 0
}

func (i *Int) Compare(other Object) (int, error) {
	switch other := other.(type) {
	case *Int:
		if i.value < other.value {
			return -1, nil
		}
		if i.value > other.value {
			return 1, nil
		}
		return 0, nil
	case *Float:
		thisValue := float64(i.value)
		if thisValue < other.value {
			return -1, nil
		}
		if thisValue > other.value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, errz.Typef("unable to compare int and %s", other.Type())
}

func (i *Int) MarshalJSON() ([]byte, error) {
	return []byte(i.Inspect()), nil
}

func (i *Int) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	switch right := right.(type) {
	case *Int:
		return i.runOperationInt(opType, right.value)
	case *Float:
		return i.runOperationFloat(opType, right.value)
	default:
		return nil, errz.Typef("unsupported operation for int: %v on type %s",
			opType, right.Type())
	}
}

func (i *Int) runOperationInt(opType op.BinaryOpType, right int64) (Object, error) {
	switch opType {
	case op.Add:
		return NewInt(i.value + right), nil
	case op.Subtract:
		return NewInt(i.value - right), nil
	case op.Multiply:
		return NewInt(i.value * right), nil
	case op.Divide:
		if right == 0 {
			return nil, errz.Valuef("division by zero")
		}
		return NewInt(i.value / right), nil
	case op.Modulo:
		if right == 0 {
			return nil, errz.Valuef("division by zero")
		}
		return NewInt(i.value % right), nil
	case op.Power:
		return NewInt(int64(math.Pow(float64(i.value), float64(right)))), nil
	default:
		return nil, errz.Typef("unsupported operation for int: %v", opType)
	}
}

func (i *Int) runOperationFloat(opType op.BinaryOpType, right float64) (Object, error) {
	left := float64(i.value)
	switch opType {
	case op.Add:
		return NewFloat(left + right), nil
	case op.Subtract:
		return NewFloat(left - right), nil
	case op.Multiply:
		return NewFloat(left * right), nil
	case op.Divide:
		if right == 0 {
			return nil, errz.Valuef("division by zero")
		}
		return NewFloat(left / right), nil
	case op.Power:
		return NewFloat(math.Pow(left, right)), nil
	default:
		return nil, errz.Typef("unsupported operation for int: %v", opType)
	}
}
