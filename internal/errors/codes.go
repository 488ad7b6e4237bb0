package errors

// Code classifies a failure. Values line up one to one with gRPC status codes
// so handlers can translate without a lookup table.
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
)

func (c Code) String() string {
	return string(c)
}

// Retryable reports whether a failure with this code is transient. A
// conversion that failed with a retryable code can be run again unchanged.
func (c Code) Retryable() bool {
	switch c {
	case CodeUnavailable, CodeDeadlineExceeded, CodeResourceExhausted:
		return true
	default:
		return false
	}
}

// CallerFault reports whether the requester has to change something (the
// input, the character's sharing settings, credentials) before trying again.
func (c Code) CallerFault() bool {
	switch c {
	case CodeInvalidArgument, CodeNotFound, CodePermissionDenied,
		CodeUnauthenticated, CodeFailedPrecondition:
		return true
	default:
		return false
	}
}
