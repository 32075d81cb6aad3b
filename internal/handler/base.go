// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"time"

	"github.com/GonzaMon/muebles-api/internal/middleware"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Request is the constraint on request payloads: a pointer to a struct
// that validates itself. The pipeline allocates a fresh T per request.
type Request[T any] interface {
	*T
	validation.Validatable
}

// HandlerFunc is a typed endpoint: it receives a bound and validated
// request and returns the value written as the response body.
type HandlerFunc[Req any, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful result is written and how it
// is labelled in logs and traces.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// handleRequest is the shared pipeline: bind and validate, run the
// handler, write the response, with logging and New Relic attributes at
// each step. Errors are returned untouched for the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler into an echo.HandlerFunc that writes its
// result as JSON with status.
//
//	router.POST("/muebles", handler.Handle(h.Mueble.Create, http.StatusCreated))
func Handle[T any, Req Request[T], Res any](handler HandlerFunc[Req, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
