package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/chainexpr/internal/token"
	"github.com/hashicorp/go-multierror"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Type() string
	Message() string
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Error() string
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// The error message
	message string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *BaseParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	if e.startPosition.IsValid() {
		location := fmt.Sprintf("line %d, column %d",
			e.startPosition.LineNumber(), e.startPosition.ColumnNumber())
		if e.file != "" {
			location = fmt.Sprintf("%s, %s", e.file, location)
		}
		msg = fmt.Sprintf("%s (%s)", msg, location)
	}
	return msg
}

func (e *BaseParserError) Cause() error {
	return e.cause
}

func (e *BaseParserError) Message() string {
	return e.message
}

func (e *BaseParserError) File() string {
	return e.file
}

func (e *BaseParserError) StartPosition() token.Position {
	return e.startPosition
}

func (e *BaseParserError) EndPosition() token.Position {
	return e.endPosition
}

func (e *BaseParserError) SourceCode() string {
	return e.sourceCode
}

func (e *BaseParserError) Unwrap() error {
	return e.cause
}

func (e *BaseParserError) Type() string {
	return e.errType
}

// NewSyntaxError returns a new SyntaxError populated with the given error data
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

type SyntaxError struct {
	*BaseParserError
}

func tokenTypeDescription(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier"
	case token.NEWLINE:
		return "newline"
	default:
		return string(t)
	}
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "newline"
	default:
		if t.Literal == "" {
			return string(t.Type)
		}
		return t.Literal
	}
}

// Errors wraps multiple parser errors for multi-error reporting.
// It implements the error interface so it can be returned from Parse().
type Errors struct {
	errs []ParserError
}

// NewErrors creates an Errors from a slice of ParserError.
func NewErrors(errs []ParserError) *Errors {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{errs: errs}
}

// Error implements the error interface. A single error is reported directly;
// multiple errors are combined into one report.
func (e *Errors) Error() string {
	if len(e.errs) == 0 {
		return ""
	}
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	var combined *multierror.Error
	for _, err := range e.errs {
		combined = multierror.Append(combined, err)
	}
	return combined.Error()
}

// Errors returns the individual parser errors.
func (e *Errors) Errors() []ParserError {
	return e.errs
}

// Unwrap supports errors.Is and errors.As over the contained errors.
func (e *Errors) Unwrap() []error {
	errs := make([]error, 0, len(e.errs))
	for _, err := range e.errs {
		errs = append(errs, err)
	}
	return errs
}
