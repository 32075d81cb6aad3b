package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API documentation UI. The page loads its
// script from a CDN and reads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI writes the embedded openapi.html, uncached so document
// changes show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(static.FS, "openapi.html")

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
