// Package op defines the binary and comparison operations that may be applied
// to chainexpr objects.
package op

// BinaryOpType describes a type of binary operation, as in an operation that
// takes two operands. For example, addition, subtraction, multiplication, etc.
type BinaryOpType uint16

const (
	Add      BinaryOpType = 1
	Subtract BinaryOpType = 2
	Multiply BinaryOpType = 3
	Divide   BinaryOpType = 4
	Modulo   BinaryOpType = 5
	Power    BinaryOpType = 6
)

// String returns a string representation of the binary operation.
// For example "+" for addition.
func (bop BinaryOpType) String() string {
	switch bop {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case Power:
		return "**"
	default:
		return ""
	}
}

// CompareOpType describes a type of comparison operation. For example, less
// than, greater than, equal, etc.
type CompareOpType uint16

const (
	LessThan           CompareOpType = 1
	LessThanOrEqual    CompareOpType = 2
	Equal              CompareOpType = 3
	NotEqual           CompareOpType = 4
	GreaterThan        CompareOpType = 5
	GreaterThanOrEqual CompareOpType = 6
)

// String returns a string representation of the comparison operation.
func (cop CompareOpType) String() string {
	switch cop {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return ""
	}
}
