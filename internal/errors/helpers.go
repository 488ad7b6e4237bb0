package errors

import (
	"errors"
)

// GetCode extracts the error code. Errors from outside this package are
// CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]any {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// GetMessage extracts the message without the wrapped cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports a missing character or cache entry
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidArgument reports a malformed request or character document
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsPermissionDenied reports a character that is not shared publicly
func IsPermissionDenied(err error) bool { return hasCode(err, CodePermissionDenied) }

// IsFailedPrecondition reports a request the current configuration cannot serve
func IsFailedPrecondition(err error) bool { return hasCode(err, CodeFailedPrecondition) }

// IsInternal reports a bug or an unclassified failure
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

// IsUnavailable reports an unreachable upstream
func IsUnavailable(err error) bool { return hasCode(err, CodeUnavailable) }

// IsRetryable reports whether the failure is transient. Auth, not-found and
// validation failures are never retried.
func IsRetryable(err error) bool {
	return err != nil && GetCode(err).Retryable()
}

// UserMessage renders the message shown to the requester. Internal details
// stay in logs.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if GetCode(err) == CodeInternal {
		return "an internal error occurred while converting the character"
	}
	return GetMessage(err)
}
