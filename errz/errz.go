// Package errz defines the structured error kinds shared by the Fern
// compiler and virtual machine.
package errz

import "fmt"

// Kind represents the category of an error.
type Kind int

const (
	// ErrCompile indicates an AST shape with no defined lowering.
	ErrCompile Kind = iota
	// ErrName indicates an undefined variable or unknown function.
	ErrName
	// ErrType indicates an operator applied to incompatible operand tags.
	ErrType
	// ErrValue indicates an invalid value for an operation, such as
	// integer division by zero.
	ErrValue
	// ErrRuntime indicates a general runtime fault.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case ErrCompile:
		return "compile error"
	case ErrName:
		return "name error"
	case ErrType:
		return "type error"
	case ErrValue:
		return "value error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// Error is a categorized error. All error kinds are terminal to the
// operation in progress; none are retried.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

// Unwrap returns the underlying cause of the error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
