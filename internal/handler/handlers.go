package handler

import (
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Mueble  *MuebleHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Mueble:  NewMuebleHandler(s, services.Mueble),
	}
}
