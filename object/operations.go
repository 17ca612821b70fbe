package object

import (
	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

// BinaryOp applies a binary operation to two objects, dispatching to the
// left operand's RunOperation implementation.
func BinaryOp(opType op.BinaryOpType, a, b Object) (Object, error) {
	return a.RunOperation(opType, b)
}

// Compare applies a comparison operation to two objects. Equality works for
// all types via Equals; ordering requires both operands to be Comparable.
func Compare(opType op.CompareOpType, a, b Object) (Object, error) {
	switch opType {
	case op.Equal:
		return NewBool(a.Equals(b)), nil
	case op.NotEqual:
		return NewBool(!a.Equals(b)), nil
	}
	comparable, ok := a.(Comparable)
	if !ok {
		return nil, errz.Typef("expected a comparable object (got %s)", a.Type())
	}
	result, err := comparable.Compare(b)
	if err != nil {
		return nil, err
	}
	switch opType {
	case op.LessThan:
		return NewBool(result < 0), nil
	case op.LessThanOrEqual:
		return NewBool(result <= 0), nil
	case op.GreaterThan:
		return NewBool(result > 0), nil
	case op.GreaterThanOrEqual:
		return NewBool(result >= 0), nil
	default:
		return nil, errz.Valuef("unknown comparison operator: %v", opType)
	}
}
