// Package errs defines the application's error types.
//
// Errors returned by handlers and services are *HTTPError values (or get
// converted into one by the global error handler) so clients always receive
// the same envelope: {"message": "...", "errors": [...]}.
package errs
