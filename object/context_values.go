package object

import "context"

type contextKey string

const receiverKey = contextKey("chainexpr:receiver")

// WithReceiver returns a context carrying the receiver object for a method
// call. The evaluator sets this when a callee was resolved through a property
// reference, so that builtins stored in maps can access the object they were
// called on.
func WithReceiver(ctx context.Context, receiver Object) context.Context {
	return context.WithValue(ctx, receiverKey, receiver)
}

// GetReceiver returns the receiver object for the current call, if any.
func GetReceiver(ctx context.Context) (Object, bool) {
	receiver, ok := ctx.Value(receiverKey).(Object)
	return receiver, ok
}
