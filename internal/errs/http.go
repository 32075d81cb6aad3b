package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "precio", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the custom error type for API responses.
//
// Only Message and Errors reach the client. Code and Status drive the
// response and the logs; Override marks messages that are safe to show
// to end users verbatim.
type HTTPError struct {
	Code     string `json:"-"`
	Message  string `json:"message"`
	Status   int    `json:"-"`
	Override bool   `json:"-"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
