// Package errors gives pixmesh errors a machine-readable code.
//
// The CLI prints [UserMessage]; the API maps the code to an HTTP status and
// returns it in the response body. Codes starting with INVALID_ mean the
// caller sent bad input, see [IsInvalid].
//
//	err := errors.New(errors.ErrCodeInvalidInput, "pixel buffer has %d bytes", n)
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, decodeErr, "decode %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // bad raster, options or arguments
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // undecodable data or unknown output format
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"  // broken vertex indices or links
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Invalid reports whether c blames the caller's input.
func (c Code) Invalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error carries a code, a message for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err's code is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalid reports whether err carries an INVALID_* code.
func IsInvalid(err error) bool {
	return GetCode(err).Invalid()
}

// UserMessage returns the message of the outermost *Error in err's chain
// without its code, or err.Error() for other errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
