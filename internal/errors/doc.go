// Package errors provides the structured error type used across ddb-converter.
//
// Every layer returns *Error values carrying a Code, a user-facing message,
// an optional cause and free-form metadata:
//
//	err := errors.NotFoundf("character %s not found", id).
//	    WithCharacter(id)
//
// Wrapping keeps the original code unless a new one is chosen explicitly:
//
//	if err := cache.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to read cached character")
//	}
//
// # Upstream failures
//
// Responses from the D&D Beyond character service are classified by HTTP
// status with FromHTTPStatus. Code.Retryable marks the transient codes and
// Code.CallerFault the ones the requester has to fix. UserMessage renders the
// text shown to whoever asked for the conversion.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("classes[0].level", level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err) so clients receive the matching
// status code.
package errors
