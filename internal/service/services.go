package service

import (
	"github.com/GonzaMon/muebles-api/internal/repository"
	"github.com/GonzaMon/muebles-api/internal/server"
)

type Services struct {
	Mueble *MuebleService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Mueble: NewMuebleService(repos.Mueble),
	}, nil
}
