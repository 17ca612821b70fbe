// Package errz defines the error kinds raised while parsing and evaluating
// chain expressions.
package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrUnknown is the kind reported for errors not created by this package.
	ErrUnknown ErrorKind = iota
	// ErrSyntax indicates a syntax error, including forbidden constructs that
	// are rejected at parse time.
	ErrSyntax
	// ErrType indicates a type mismatch or invalid operation on a type.
	ErrType
	// ErrName indicates an undefined variable or function.
	ErrName
	// ErrNullish indicates a plain (non-optional) property, index, or call
	// access on a nil value.
	ErrNullish
	// ErrNotCallable indicates an attempt to invoke a value that is not a
	// function.
	ErrNotCallable
	// ErrValue indicates an invalid value for an operation.
	ErrValue
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrType:
		return "type error"
	case ErrName:
		return "name error"
	case ErrNullish:
		return "nil access error"
	case ErrNotCallable:
		return "not callable error"
	case ErrValue:
		return "value error"
	default:
		return "error"
	}
}

// EvalError is an error raised while evaluating an expression. It carries the
// kind of the failure so callers can distinguish, for example, a nil access
// from an unbound name without matching on message text.
type EvalError struct {
	kind    ErrorKind
	message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Kind returns the category of this error.
func (e *EvalError) Kind() ErrorKind {
	return e.kind
}

// Message returns the error message without the kind prefix.
func (e *EvalError) Message() string {
	return e.message
}

// New creates an EvalError with the given kind and formatted message.
func New(kind ErrorKind, format string, args ...interface{}) *EvalError {
	return &EvalError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Typef creates a type error.
func Typef(format string, args ...interface{}) *EvalError {
	return New(ErrType, format, args...)
}

// Namef creates a name error.
func Namef(format string, args ...interface{}) *EvalError {
	return New(ErrName, format, args...)
}

// Nullishf creates a nil access error.
func Nullishf(format string, args ...interface{}) *EvalError {
	return New(ErrNullish, format, args...)
}

// NotCallablef creates a not callable error.
func NotCallablef(format string, args ...interface{}) *EvalError {
	return New(ErrNotCallable, format, args...)
}

// Valuef creates a value error.
func Valuef(format string, args ...interface{}) *EvalError {
	return New(ErrValue, format, args...)
}

// Kind reports the category of err, unwrapping as needed. Errors that did not
// originate from this package report ErrUnknown.
func Kind(err error) ErrorKind {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind()
	}
	return ErrUnknown
}

// IsKind reports whether err has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return Kind(err) == kind
}
