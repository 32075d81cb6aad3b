package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GonzaMon/muebles-api/internal/config"
	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(logger *zerolog.Logger) *server.Server {
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: logger,
	}
}

func handleWith(t *testing.T, err error, logger *zerolog.Logger) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/muebles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(LoggerKey, logger)

	NewGlobalMiddlewares(newTestServer(logger)).GlobalErrorHandler(err, c)
	return rec
}

func TestGlobalErrorHandlerRouteMiss(t *testing.T) {
	logger := zerolog.Nop()

	for _, err := range []error{echo.ErrNotFound, echo.ErrMethodNotAllowed} {
		rec := handleWith(t, err, &logger)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, NotFoundPage, rec.Body.String())
	}
}

func TestGlobalErrorHandlerHTTPError(t *testing.T) {
	logger := zerolog.Nop()
	err := errs.NewBadRequestError("Faltan datos relevantes", true, nil, []errs.FieldError{{Field: "nombre", Error: "is required"}})

	rec := handleWith(t, err, &logger)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Faltan datos relevantes","errors":[{"field":"nombre","error":"is required"}]}`, rec.Body.String())
}

func TestGlobalErrorHandlerDatabaseError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	pgErr := &pgconn.PgError{Severity: "ERROR", Code: "08006", Message: "connection failure", TableName: "muebles"}
	rec := handleWith(t, errors.Wrap(pgErr, "list muebles by all"), &logger)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Se ha generado un error en el servidor"}`, rec.Body.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "08006", entry["sql_state"])
	assert.Equal(t, "MUEBLE_UNAVAILABLE", entry["error_code"])
	assert.Contains(t, entry["error"], "connection failure")
}

func TestGlobalErrorHandlerEchoClientError(t *testing.T) {
	logger := zerolog.Nop()

	rec := handleWith(t, echo.ErrUnsupportedMediaType, &logger)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestGlobalErrorHandlerEchoServerErrorIsOpaque(t *testing.T) {
	logger := zerolog.Nop()

	rec := handleWith(t, echo.NewHTTPError(http.StatusInternalServerError, "pool exhausted"), &logger)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pool exhausted")
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusTooManyRequests, statusOf(errs.NewTooManyRequestsError()))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}
