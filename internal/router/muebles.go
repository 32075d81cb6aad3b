package router

import (
	"net/http"

	"github.com/GonzaMon/muebles-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerMuebleRoutes mounts the muebles resource. Any other method on
// these paths falls through to the 404 page.
//
// A trailing :codigo would otherwise capture "1/extra" whole, so deeper
// paths are claimed explicitly and answered with the 404 page.
func registerMuebleRoutes(v1 *echo.Group, h *handler.Handlers, mw ...echo.MiddlewareFunc) {
	muebles := v1.Group("/muebles", mw...)

	muebles.GET("", handler.Handle(h.Mueble.List, http.StatusOK))
	muebles.POST("", handler.Handle(h.Mueble.Create, http.StatusCreated))
	muebles.GET("/:codigo", handler.Handle(h.Mueble.Get, http.StatusOK))
	muebles.PUT("/:codigo", handler.Handle(h.Mueble.Update, http.StatusOK))
	muebles.DELETE("/:codigo", handler.Handle(h.Mueble.Delete, http.StatusOK))
	muebles.Any("/:codigo/*", echo.NotFoundHandler)
}
