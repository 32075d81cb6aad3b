// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in struct
// tags and turns validation failures into field errors the client can
// understand.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	// MsgFaltanDatos is returned when required fields are missing or empty.
	MsgFaltanDatos = "Faltan datos relevantes"

	// MsgDatosInvalidos is returned when present fields break a rule.
	MsgDatosInvalidos = "Los datos enviados no son válidos"

	// MsgSolicitudInvalida is returned when the request cannot be decoded.
	MsgSolicitudInvalida = "La solicitud no tiene un formato válido"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return strings.ToLower(fld.Name)
	})

	return v
}

// Struct runs the tag rules of s.
func Struct(s any) error {
	return validate.Struct(s)
}

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a validation issue that cannot be
// expressed with validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Binding failures (malformed JSON, wrong types) and validation failures
// both become a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(MsgSolicitudInvalida, true, nil, bindFieldErrors(err))
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// bindFieldErrors keeps the binder's explanation without depending on its
// formatting.
func bindFieldErrors(err error) []errs.FieldError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return []errs.FieldError{{Field: "body", Error: msg}}
		}
	}
	return []errs.FieldError{{Field: "body", Error: "could not be decoded"}}
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return MsgDatosInvalidos, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return MsgDatosInvalidos, []errs.FieldError{{Field: "body", Error: err.Error()}}
	}

	onlyRequired := true
	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", err.Field(), err.Tag())
			}
		}

		if err.Tag() != "required" {
			onlyRequired = false
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	if onlyRequired {
		return MsgFaltanDatos, fieldErrors
	}
	return MsgDatosInvalidos, fieldErrors
}
