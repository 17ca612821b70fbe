package object

import "github.com/deepnoodle-ai/chainexpr/errz"

// NewArgsError returns an error describing a call with the wrong number of
// arguments.
func NewArgsError(fn string, takes, given int) error {
	return errz.Typef("%s() takes exactly %d arguments (%d given)",
		fn, takes, given)
}

// NewArgsRangeError returns an error describing a call whose argument count
// falls outside the accepted range.
func NewArgsRangeError(fn string, takesMin, takesMax, given int) error {
	return errz.Typef("%s() takes between %d and %d arguments (%d given)",
		fn, takesMin, takesMax, given)
}
