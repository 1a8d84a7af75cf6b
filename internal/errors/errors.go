// Package errors classifies failures so the API can answer with the right
// status and callers can branch on the kind of failure rather than its text.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Code classifies an error
type Code string

const (
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument is a bad constructor or client argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeValidation is bad input: traits, periods, configuration
	CodeValidation Code = "validation"

	CodeNotFound Code = "not_found"

	// CodeConflict is input that collides with existing state, such as
	// overlapping art periods
	CodeConflict Code = "conflict"

	CodeUnauthenticated Code = "unauthenticated"

	// CodeUnavailable is an upstream failure: image model, IPFS or RPC
	CodeUnavailable Code = "unavailable"

	CodeInternal Code = "internal"
)

var (
	// ErrMissingParam is the cause behind MissingParam errors
	ErrMissingParam = errors.New("missing parameter")

	// ErrInvalidParam is the cause behind InvalidParam errors
	ErrInvalidParam = errors.New("invalid parameter")
)

// Error carries a code, an optional cause and structured context that ends
// up in API responses and log fields
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a key to the error and returns it for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and meta of a wrapped *Error carry
// over; anything else becomes CodeUnknown. A nil err stays nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.Code = inner.Code
		wrapped.Meta = maps.Clone(inner.Meta)
	}
	return wrapped
}

func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and overrides its code
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// MissingParam reports a required client setting or argument that was not
// set. errors.Is matches it against ErrMissingParam.
func MissingParam(param string) *Error {
	return WrapWithCode(ErrMissingParam, CodeInvalidArgument, param).WithMeta("param", param)
}

// InvalidParam reports a setting that is present but unusable
func InvalidParam(message string) *Error {
	return WrapWithCode(ErrInvalidParam, CodeInvalidArgument, message)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return Newf(CodeConflict, format, args...)
}

func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// As is errors.As, so callers need only this package
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether the outermost *Error in err's chain has the code
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

func IsNotFound(err error) bool    { return Is(err, CodeNotFound) }
func IsValidation(err error) bool  { return Is(err, CodeValidation) }
func IsConflict(err error) bool    { return Is(err, CodeConflict) }
func IsUnavailable(err error) bool { return Is(err, CodeUnavailable) }

// GetCode returns the code of the outermost *Error, CodeUnknown if none
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// HTTPStatus maps an error to the status the API answers with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeValidation, CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
