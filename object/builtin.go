package object

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/op"
)

var _ Callable = (*Builtin)(nil) // Ensure that *Builtin implements Callable

// BuiltinFunction holds the type of a built-in function.
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin wraps a Go function and implements Object. A builtin invoked as a
// method on a map receives its receiver through the context; see
// WithReceiver.
type Builtin struct {
	// The function that this object wraps.
	fn BuiltinFunction

	// The name of the function.
	name string
}

// NewBuiltin returns a new Builtin with the given name and function.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{name: name, fn: fn}
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Value() BuiltinFunction {
	return b.fn
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Interface() interface{} {
	return nil
}

func (b *Builtin) Call(ctx context.Context, args ...Object) (Object, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Equals(other Object) bool {
	return b == other
}

func (b *Builtin) GetAttr(name string) (Object, bool) {
	switch name {
	case "__name__":
		return NewString(b.name), true
	}
	return nil, false
}

func (b *Builtin) SetAttr(name string, value Object) error {
	return errz.Typef("builtin has no attribute %q", name)
}

func (b *Builtin) IsTruthy() bool {
	return true
}

func (b *Builtin) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errz.Typef("unsupported operation for builtin: %v", opType)
}
