package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of the first *Error or *pgconn.PgError in err's
// chain, or Other.
func ErrCode(err error) Code {
	if sqlErr := Classify(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Classify returns the normalized database error inside err, or nil when
// err did not come from the server.
func Classify(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	return nil
}

// generateErrorCode builds a machine-readable code "<DOMAIN>_<ACTION>",
// e.g. muebles + UniqueViolation => MUEBLE_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	// Crude singular: MUEBLES -> MUEBLE.
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case ConnectionFailure, InsufficientResources:
		action = "UNAVAILABLE"
	case QueryCanceled:
		action = "CANCELED"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// describe produces a readable sentence for the logs.
func describe(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName)

	switch sqlErr.Code {
	case UniqueViolation:
		return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(sqlErr.ColumnName))
	case NotNullViolation:
		return fmt.Sprintf("The %s %s is required", entityName, humanizeText(sqlErr.ColumnName))
	case CheckViolation:
		return fmt.Sprintf("The %s does not meet constraint %s", entityName, sqlErr.ConstraintName)
	case ConnectionFailure:
		return "The database connection failed"
	default:
		return sqlErr.Message
	}
}

// getEntityName turns a table name into a singular readable noun.
func getEntityName(tableName string) string {
	if tableName == "" {
		return "record"
	}
	entity := tableName
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

// humanizeText converts snake_case into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.Spanish).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level error into an application error.
//
//   - *errs.HTTPError passes through unchanged
//   - database errors become the opaque 500 carrying a generated code
//     (e.g. MUEBLE_UNAVAILABLE) for the logs
//   - anything else becomes the opaque 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	internal := errs.NewInternalServerError()

	if sqlErr := Classify(err); sqlErr != nil {
		internal.Code = generateErrorCode(sqlErr.TableName, sqlErr.Code)
		return internal
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		internal.Code = generateErrorCode("", QueryCanceled)
	}

	return internal
}

// LogFields attaches the database details of err, if any, to a log event.
func LogFields(e *zerolog.Event, err error) *zerolog.Event {
	sqlErr := Classify(err)
	if sqlErr == nil {
		return e
	}

	return e.
		Str("sql_state", sqlErr.DatabaseCode).
		Str("sql_code", string(sqlErr.Code)).
		Str("sql_severity", string(sqlErr.Severity)).
		Str("sql_table", sqlErr.TableName).
		Str("sql_constraint", sqlErr.ConstraintName).
		Str("sql_detail", describe(sqlErr))
}
