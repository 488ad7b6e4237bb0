package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Metadata keys shared by the client, the orchestrator and the handlers.
const (
	MetaCharacterID = "character_id"
	MetaSection     = "section"
	MetaPanic       = "panic"
)

// Error is a classified conversion failure. Message is safe to show the
// requester; Cause and Meta are for logs and gRPC error details.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err,
// errors.NotFound("")) works as a code test.
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && other.Code == e.Code
}

// WithMeta sets a metadata value and returns e for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// WithCharacter tags the error with the D&D Beyond character id.
func (e *Error) WithCharacter(id any) *Error {
	return e.WithMeta(MetaCharacterID, fmt.Sprint(id))
}

// InSection tags the error with the conversion step or output section that
// produced it.
func (e *Error) InSection(name string) *Error {
	return e.WithMeta(MetaSection, name)
}

// New returns an error with the given code.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func NotFound(message string) *Error           { return New(CodeNotFound, message) }
func InvalidArgument(message string) *Error    { return New(CodeInvalidArgument, message) }
func PermissionDenied(message string) *Error   { return New(CodePermissionDenied, message) }
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }
func Internal(message string) *Error           { return New(CodeInternal, message) }
func Unavailable(message string) *Error        { return New(CodeUnavailable, message) }
func Unauthenticated(message string) *Error    { return New(CodeUnauthenticated, message) }
func ResourceExhausted(message string) *Error  { return New(CodeResourceExhausted, message) }

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Recovered converts a recovered panic value into an Internal error. The
// value is kept in metadata; the message stays generic.
func Recovered(r any) *Error {
	return New(CodeInternal, "unexpected failure").WithMeta(MetaPanic, fmt.Sprint(r))
}

// Wrap adds context to err. The code and metadata of an inner *Error carry
// over; anything else becomes CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, GetCode(err), message)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode reclassifies err while keeping its metadata.
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

// wrap copies the inner metadata so tagging the outer error never changes
// the inner one.
func wrap(err error, code Code, message string) *Error {
	out := &Error{Code: code, Message: message, Cause: err}
	if meta := GetMeta(err); len(meta) > 0 {
		out.Meta = maps.Clone(meta)
	}
	return out
}
