package eval

import (
	"errors"
	"fmt"

	"github.com/seqlab/comprehend/internal/ast"
)

// ErrorCode categorizes runtime evaluation errors.
type ErrorCode string

const (
	// ErrCodeTypeMismatch indicates an operator or guard received a
	// value of the wrong type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeDivisionByZero indicates integer or float division by zero.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeNotIterable indicates a generator source value exposes no
	// iterable view.
	ErrCodeNotIterable ErrorCode = "NOT_ITERABLE"

	// ErrCodePatternMismatch indicates a value did not fit the shape of
	// the pattern it was bound against.
	ErrCodePatternMismatch ErrorCode = "PATTERN_MISMATCH"

	// ErrCodeUnknownName indicates a variable or function lookup failed
	// at evaluation time. Validation catches these up front; seeing one
	// here means the pipeline was built against a different environment.
	ErrCodeUnknownName ErrorCode = "UNKNOWN_NAME"

	// ErrCodeFunctionFailed wraps an error returned by a host function.
	ErrCodeFunctionFailed ErrorCode = "FUNCTION_FAILED"
)

// Error is a runtime evaluation error with position and category.
type Error struct {
	Code ErrorCode
	Msg  string
	Pos  ast.Pos
	Err  error // underlying error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the error code from err, or "" when err is not an
// evaluation error. Uses errors.As to handle wrapping.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

func newError(code ErrorCode, pos ast.Pos, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Pos: pos}
}
