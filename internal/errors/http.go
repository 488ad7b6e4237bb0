package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// MetaHTTPStatus is the metadata key holding the upstream HTTP status
const MetaHTTPStatus = "http_status"

// FromHTTPStatus classifies a non-2xx response from the character service.
// The returned error carries the status under MetaHTTPStatus.
func FromHTTPStatus(statusCode int, characterID string) *Error {
	var err *Error
	switch {
	case statusCode == http.StatusUnauthorized:
		err = Unauthenticated("character is private or requires authentication")
	case statusCode == http.StatusForbidden:
		err = PermissionDenied("character sharing is disabled; set the character to public on D&D Beyond")
	case statusCode == http.StatusNotFound:
		err = NotFoundf("character %s not found on D&D Beyond", characterID)
	case statusCode == http.StatusTooManyRequests:
		err = ResourceExhausted("too many requests to D&D Beyond; try again shortly")
	case statusCode >= http.StatusInternalServerError:
		err = Unavailable("D&D Beyond is temporarily unavailable")
	case statusCode >= http.StatusBadRequest:
		err = InvalidArgumentf("D&D Beyond rejected the request for character %s", characterID)
	default:
		err = Internalf("unexpected response status %d", statusCode)
	}
	return err.WithMeta(MetaHTTPStatus, statusCode).WithCharacter(characterID)
}

// FromTransportError classifies a failure that happened before any response
// arrived.
func FromTransportError(err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return WrapWithCode(err, CodeCanceled, "request canceled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return WrapWithCode(err, CodeDeadlineExceeded, "request to D&D Beyond timed out")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return WrapWithCode(err, CodeDeadlineExceeded, "request to D&D Beyond timed out")
	}
	return WrapWithCode(err, CodeUnavailable, "unable to reach D&D Beyond")
}
