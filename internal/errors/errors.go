package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with a user-facing message. Meta carries ids such
// as session_id or item_id for logs.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMeta attaches a key/value pair and returns the error for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func copyMeta(err error) map[string]any {
	var e *Error
	if !errors.As(err, &e) || len(e.Meta) == 0 {
		return nil
	}
	meta := make(map[string]any, len(e.Meta))
	for k, v := range e.Meta {
		meta[k] = v
	}
	return meta
}

// Wrap adds context to err. The code of a wrapped *Error is kept; anything
// else becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var e *Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: copyMeta(err)}
}

// Wrapf wraps with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err, Meta: copyMeta(err)}
}

// WrapWithCodef wraps with a code and a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

// InvalidArgument reports a malformed request: an empty id, an unknown flag value.
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf is InvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return newf(CodeInvalidArgument, format, args...)
}

// NotFound reports a missing session, enemy or location.
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf is NotFound with a formatted message
func NotFoundf(format string, args ...any) *Error { return newf(CodeNotFound, format, args...) }

// AlreadyExistsf reports a session id collision.
func AlreadyExistsf(format string, args ...any) *Error {
	return newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition reports a request the current game state forbids, such
// as a turn outside combat.
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// Internal reports a bug or an unexpected storage failure.
func Internal(message string) *Error { return New(CodeInternal, message) }

// Unavailable reports that a backing service such as Redis cannot be reached.
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// DataLoss reports broken static data or a corrupt session snapshot.
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }

// DataLossf is DataLoss with a formatted message
func DataLossf(format string, args ...any) *Error { return newf(CodeDataLoss, format, args...) }
