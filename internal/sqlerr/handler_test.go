package sqlerr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	cases := map[string]Code{
		"23505": UniqueViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"40P01": DeadlockDetected,
		"08006": ConnectionFailure,
		"53300": InsufficientResources,
		"XX000": Other,
		"":      Other,
	}
	for state, want := range cases {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewBadRequestError("Faltan datos relevantes", true, nil, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorDatabaseErrorIsOpaque(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "muebles",
		ColumnName:     "codigo",
		ConstraintName: "muebles_pkey",
	}

	err := HandleError(fmt.Errorf("insert mueble: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, errs.MsgInternalServerError, httpErr.Message)
	assert.Equal(t, "MUEBLE_ALREADY_EXISTS", httpErr.Code)
}

func TestHandleErrorUnknown(t *testing.T) {
	err := HandleError(errors.New("connection reset by peer"))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", httpErr.Code)
}

func TestHandleErrorCanceled(t *testing.T) {
	err := HandleError(fmt.Errorf("query: %w", context.DeadlineExceeded))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "RECORD_CANCELED", httpErr.Code)
}

func TestLogFields(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	pgErr := &pgconn.PgError{Severity: "ERROR", Code: "23502", TableName: "muebles", ColumnName: "nombre"}
	LogFields(log.Error(), pgErr).Msg("failed")

	out := buf.String()
	assert.Contains(t, out, `"sql_state":"23502"`)
	assert.Contains(t, out, `"sql_code":"not_null_violation"`)
	assert.Contains(t, out, `"sql_table":"muebles"`)

	buf.Reset()
	LogFields(log.Error(), errors.New("plain")).Msg("failed")
	assert.NotContains(t, buf.String(), "sql_state")
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, CheckViolation, ErrCode(&pgconn.PgError{Code: "23514"}))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}
