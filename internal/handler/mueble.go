package handler

import (
	"github.com/GonzaMon/muebles-api/internal/dto"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	MsgRegistroCreado      = "Registro creado"
	MsgRegistroActualizado = "Registro actualizado"
	MsgRegistroEliminado   = "Registro eliminado"
)

// MuebleHandler serves the /muebles resource.
type MuebleHandler struct {
	Handler
	muebleService *service.MuebleService
}

func NewMuebleHandler(s *server.Server, muebleService *service.MuebleService) *MuebleHandler {
	return &MuebleHandler{
		Handler:       NewHandler(s),
		muebleService: muebleService,
	}
}

func (h *MuebleHandler) List(c echo.Context, req *dto.ListMueblesRequest) (dto.Response, error) {
	muebles, err := h.muebleService.List(c.Request().Context(), req.Filter())
	if err != nil {
		return dto.Response{}, err
	}
	return dto.Response{Payload: muebles}, nil
}

func (h *MuebleHandler) Get(c echo.Context, req *dto.MuebleCodigoRequest) (dto.Response, error) {
	mueble, err := h.muebleService.Get(c.Request().Context(), req.Codigo)
	if err != nil {
		return dto.Response{}, err
	}
	return dto.Response{Payload: mueble}, nil
}

func (h *MuebleHandler) Create(c echo.Context, req *dto.CreateMuebleRequest) (dto.Response, error) {
	mueble, err := h.muebleService.Create(c.Request().Context(), req.Data())
	if err != nil {
		return dto.Response{}, err
	}
	return dto.Response{Message: MsgRegistroCreado, Payload: mueble}, nil
}

func (h *MuebleHandler) Update(c echo.Context, req *dto.UpdateMuebleRequest) (dto.Response, error) {
	mueble, err := h.muebleService.Update(c.Request().Context(), req.Codigo, req.Data())
	if err != nil {
		return dto.Response{}, err
	}
	return dto.Response{Message: MsgRegistroActualizado, Payload: mueble}, nil
}

func (h *MuebleHandler) Delete(c echo.Context, req *dto.MuebleCodigoRequest) (dto.Response, error) {
	if err := h.muebleService.Delete(c.Request().Context(), req.Codigo); err != nil {
		return dto.Response{}, err
	}
	return dto.Response{Message: MsgRegistroEliminado}, nil
}
