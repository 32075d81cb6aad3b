// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/GonzaMon/muebles-api/internal/handler"
	"github.com/GonzaMon/muebles-api/internal/middleware"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// The rate limiter keys on RealIP, so forwarding headers sent by clients
	// must not be trusted.
	router.IPExtractor = echo.ExtractIPDirect()

	// "/api/v1/muebles/" and "/api/v1/muebles" are the same route.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	// Order matters: the request id feeds tracing and the context logger,
	// which the request logger then uses.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group(APIPrefix)
	registerMuebleRoutes(v1, h, middlewares.RateLimit.Limit())

	return router
}
