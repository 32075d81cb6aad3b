package errs

import (
	"net/http"
)

// MsgInternalServerError is the only message clients ever see for
// infrastructure failures.
const MsgInternalServerError = "Se ha generado un error en el servidor"

// MsgTooManyRequests is returned when the rate limiter rejects a request.
const MsgTooManyRequests = "Demasiadas solicitudes"

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// optional field-level details.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  MsgTooManyRequests,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates the opaque 500 HTTPError. The real cause
// is logged by the caller, never returned to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  MsgInternalServerError,
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

