package web

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct validates payload and writes a 422 response on failure.
// Returns true if the payload is valid.
func ValidateStruct(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v *validator.Validate, payload any) bool {
	err := v.Struct(payload)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		// If the error is a validation error, we can extract field-specific errors.
		errorResponse := make(map[string]string)
		for _, fieldErr := range validationErrors {
			// fieldErr.Tag() returns "required", "max", etc.
			errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
		RespondValidationErrors(w, logger, errorResponse)
		return false
	}
	logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
	// If it's not a validation error, we can return a generic error.
	RespondError(w, logger, http.StatusUnprocessableEntity, "Invalid request body")
	return false
}
