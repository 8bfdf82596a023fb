// Package qferrors defines the error kinds exposed at the operator-algebra
// boundary: malformed builder arrays, out-of-range mapping operands, FCIDUMP
// parse failures and arena allocation failures.
package qferrors

import "fmt"

// Kind is one of the status codes exposed at the library boundary.
// EqualityError is reserved for test harnesses and is never raised by this
// package.
type Kind string

const (
	InvalidArgument  Kind = "InvalidArgument"
	OutOfRange       Kind = "OutOfRange"
	ParseError       Kind = "ParseError"
	AllocationFailed Kind = "AllocationFailed"
	EqualityError    Kind = "EqualityError"
)

// Error is the structured error type returned by every fallible constructor
// and mapper in this module. ByteOffset is set only for ParseError and is
// -1 otherwise.
type Error struct {
	Kind       Kind
	Message    string
	ByteOffset int
}

func (e *Error) Error() string {
	if e.ByteOffset >= 0 {
		return fmt.Sprintf("%s: %s (byte offset %d)", e.Kind, e.Message, e.ByteOffset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error with no byte offset.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), ByteOffset: -1}
}

// WithOffset attaches a byte offset, for ParseError.
func (e *Error) WithOffset(offset int) *Error {
	e.ByteOffset = offset
	return e
}

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, qferrors.New(qferrors.OutOfRange, "")) without caring about
// the message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
