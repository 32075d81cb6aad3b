package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Categoria string `query:"categoria"`
}

func (r *echoRequest) Validate() error {
	return nil
}

type requiredRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

func (r *requiredRequest) Validate() error {
	return validation.Struct(r)
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleAllocatesRequestPerCall(t *testing.T) {
	e := echo.New()
	e.GET("/", Handle(func(c echo.Context, req *echoRequest) (map[string]string, error) {
		return map[string]string{"categoria": req.Categoria}, nil
	}, http.StatusOK))

	rec := serve(e, "/?categoria=sillas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categoria":"sillas"}`, rec.Body.String())

	rec = serve(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categoria":""}`, rec.Body.String())
}

func TestHandleStopsOnValidationError(t *testing.T) {
	called := false
	h := Handle(func(c echo.Context, req *requiredRequest) (string, error) {
		called = true
		return "ok", nil
	}, http.StatusOK)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := h(c)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, validation.MsgFaltanDatos, httpErr.Message)
	assert.False(t, called)
}
