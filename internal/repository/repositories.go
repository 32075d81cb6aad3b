package repository

import (
	"github.com/GonzaMon/muebles-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Mueble *MuebleRepository
}

// NewRepositories builds every repository on top of the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Mueble: NewMuebleRepository(s.DB.Pool),
	}
}
