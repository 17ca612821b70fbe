package object

import (
	"math"
	"strconv"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// Float wraps a native float64 and implements Object.
type Float struct {
	value float64
}

func NewFloat(value float64) *Float {
	return &Float{value: value}
}

func (f *Float) Type() Type {
	return FLOAT
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) Equals(other Object) bool {
	switch other := other.(type) {
	case *Float:
		return f.value == other.value
	case *Int:
		return f.value == float64(other.value)
	}
	return false
}

func (f *Float) GetAttr(name string) (Object, bool) {
	return nil, false
}

func (f *Float) SetAttr(name string, value Object) error {
	return errz.Typef("float has no attribute %q", name)
}

func (f *Float) IsTruthy() bool {
	return f.value != 0
}

func (f *Float) Compare(other Object) (int, error) {
	var otherValue float64
	switch other := other.(type) {
	case *Float:
		otherValue = other.value
	case *Int:
		otherValue = float64(other.value)
	default:
		return 0, errz.Typef("unable to compare float and %s", other.Type())
	}
	if f.value < otherValue {
		return -1, nil
	}
	if f.value > otherValue {
		return 1, nil
	}
	return 0, nil
}

func (f *Float) MarshalJSON() ([]byte, error) {
	return []byte(f.Inspect()), nil
}

func (f *Float) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	var rightValue float64
	switch right := right.(type) {
	case *Float:
		rightValue = right.value
	case *Int:
		rightValue = float64(right.value)
	default:
		return nil, errz.Typef("unsupported operation for float: %v on type %s",
			opType, right.Type())
	}
	switch opType {
	case op.Add:
		return NewFloat(f.value + rightValue), nil
	case op.Subtract:
		return NewFloat(f.value - rightValue), nil
	case op.Multiply:
		return NewFloat(f.value * rightValue), nil
	case op.Divide:
		if rightValue == 0 {
			return nil, errz.Valuef("division by zero")
		}
		return NewFloat(f.value / rightValue), nil
	case op.Power:
		return NewFloat(math.Pow(f.value, rightValue)), nil
	default:
		return nil, errz.Typef("unsupported operation for float: %v", opType)
	}
}
