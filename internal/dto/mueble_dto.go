// Package dto holds the request payloads of the HTTP API and the response
// envelope.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GonzaMon/muebles-api/internal/model"
	"github.com/GonzaMon/muebles-api/internal/validation"
)

// ─── Envelope ────────────────────────────────────────────────────────────────

// Response is the envelope of every JSON response.
type Response struct {
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// ─── Precio ──────────────────────────────────────────────────────────────────

// Precio accepts a price as a JSON number, a numeric JSON string, or a form
// value. Null and empty strings read as zero, which validation rejects.
type Precio float64

func (p *Precio) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return p.UnmarshalParam(s)
	}

	if len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		return p.UnmarshalParam(string(data))
	}

	return fmt.Errorf("precio must be a number, got %s", data)
}

// UnmarshalParam implements echo.BindUnmarshaler for form bodies.
func (p *Precio) UnmarshalParam(param string) error {
	if param == "" {
		*p = 0
		return nil
	}

	n, err := model.ParseNumber(param)
	if err != nil {
		return fmt.Errorf("precio must be a number, got %q", param)
	}

	*p = Precio(n)
	return nil
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ListMueblesRequest carries the optional list filters.
type ListMueblesRequest struct {
	Categoria string `query:"categoria"`
	PrecioGTE string `query:"precio_gte"`
	PrecioLTE string `query:"precio_lte"`

	filter model.ListFilter
}

func (r *ListMueblesRequest) Validate() error {
	filter, err := model.ParseListFilter(r.Categoria, r.PrecioGTE, r.PrecioLTE)
	if err != nil {
		var filterErr *model.InvalidFilterError
		if errors.As(err, &filterErr) {
			return validation.CustomValidationErrors{{Field: filterErr.Param, Message: "must be numeric"}}
		}
		return err
	}

	r.filter = filter
	return nil
}

// Filter returns the filter chosen by Validate.
func (r *ListMueblesRequest) Filter() model.ListFilter {
	return r.filter
}

// MuebleCodigoRequest identifies a mueble by its path parameter. The raw
// text is kept: a codigo that is not a number matches no mueble.
type MuebleCodigoRequest struct {
	Codigo string `param:"codigo" json:"-"`
}

func (r *MuebleCodigoRequest) Validate() error {
	return nil
}

// CreateMuebleRequest is the body of POST /muebles.
type CreateMuebleRequest struct {
	Nombre    string `json:"nombre" form:"nombre" validate:"required"`
	Precio    Precio `json:"precio" form:"precio" validate:"required"`
	Categoria string `json:"categoria" form:"categoria" validate:"required"`
}

func (r *CreateMuebleRequest) Validate() error {
	return validation.Struct(r)
}

// Data returns the validated fields.
func (r *CreateMuebleRequest) Data() model.MuebleData {
	return model.MuebleData{Nombre: r.Nombre, Precio: float64(r.Precio), Categoria: r.Categoria}
}

// UpdateMuebleRequest is PUT /muebles/:codigo: the path codigo plus a full
// replacement body.
type UpdateMuebleRequest struct {
	Codigo    string `param:"codigo" json:"-"`
	Nombre    string `json:"nombre" form:"nombre" validate:"required"`
	Precio    Precio `json:"precio" form:"precio" validate:"required"`
	Categoria string `json:"categoria" form:"categoria" validate:"required"`
}

func (r *UpdateMuebleRequest) Validate() error {
	return validation.Struct(r)
}

// Data returns the validated replacement fields.
func (r *UpdateMuebleRequest) Data() model.MuebleData {
	return model.MuebleData{Nombre: r.Nombre, Precio: float64(r.Precio), Categoria: r.Categoria}
}
