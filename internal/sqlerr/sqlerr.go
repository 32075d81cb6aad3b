// Package sqlerr specifically handles database driver errors.
//
// It parses the SQLSTATE codes reported by PostgreSQL into a small set of
// categories so failures can be logged with meaningful fields. Clients never
// see these details: every database failure becomes the opaque 500.
package sqlerr

import "fmt"

// Code is the category of a database error.
type Code string

const (
	Other                 Code = "other"
	NotNullViolation      Code = "not_null_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	UniqueViolation       Code = "unique_violation"
	CheckViolation        Code = "check_violation"
	ExclusionViolation    Code = "exclusion_violation"
	SerializationFailure  Code = "serialization_failure"
	DeadlockDetected      Code = "deadlock_detected"
	QueryCanceled         Code = "query_canceled"
	ConnectionFailure     Code = "connection_failure"
	UndefinedTable        Code = "undefined_table"
	InsufficientResources Code = "insufficient_resources"
)

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code. Whole classes are matched where the
// individual codes do not matter.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "57014":
		return QueryCanceled
	case "42P01":
		return UndefinedTable
	}

	if len(sqlState) >= 2 {
		switch sqlState[:2] {
		case "08":
			return ConnectionFailure
		case "53":
			return InsufficientResources
		}
	}

	return Other
}

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}
