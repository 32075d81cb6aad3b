package middleware

import (
	"net/http"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NotFoundPage is the body of every response for an unknown route or an
// unsupported method.
const NotFoundPage = `<h1>Error 404</h1><h3>La URL indicada no existe en este servidor</h3>`

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request, at a level chosen by
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet, so the
			// status has to come from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// statusOf predicts the status GlobalErrorHandler will write for err.
func statusOf(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if isRouteMiss(echoErr) {
			return http.StatusNotFound
		}
		return echoErr.Code
	}

	return http.StatusInternalServerError
}

func isRouteMiss(echoErr *echo.HTTPError) bool {
	return echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed
}

// toHTTPError reduces any error to the response the client gets.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code < http.StatusInternalServerError {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the single place errors become responses.
//
//   - unknown routes and unsupported methods render NotFoundPage
//   - *errs.HTTPError renders as {"message", "errors"}
//   - anything else is logged in full and rendered as the opaque 500
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	logger := GetLogger(c)

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && isRouteMiss(echoErr) {
		logger.Debug().
			Int("status", echoErr.Code).
			Str("uri", c.Request().RequestURI).
			Msg("route not found")

		if !c.Response().Committed {
			_ = c.HTML(http.StatusNotFound, NotFoundPage)
		}
		return
	}

	httpErr := toHTTPError(err)

	if httpErr.Status >= http.StatusInternalServerError {
		sqlerr.LogFields(logger.Error().Stack().Err(err), err).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Msg(httpErr.Message)
	} else {
		logger.Debug().
			Err(err).
			Int("status", httpErr.Status).
			Str("error_code", httpErr.Code).
			Msg(httpErr.Message)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.Status)
			return
		}
		_ = c.JSON(httpErr.Status, httpErr)
	}
}
