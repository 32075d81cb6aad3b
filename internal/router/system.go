package router

import (
	"github.com/GonzaMon/muebles-api/internal/handler"
	"github.com/GonzaMon/muebles-api/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the versioned API:
// health, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
