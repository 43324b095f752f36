package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondValidationErrors writes field-level validation failures with 422 Unprocessable Entity.
func RespondValidationErrors(w http.ResponseWriter, logger *slog.Logger, fields map[string]string) {
	RespondJSON(w, logger, http.StatusUnprocessableEntity, map[string]any{"validation_errors": fields})
}

// ParseID extracts the integer ID from the request path. Returns the ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.Atoi(pathValueID)
	if err != nil {
		logger.WarnContext(r.Context(), "Invalid product ID", "ID", pathValueID)
		RespondValidationErrors(w, logger, map[string]string{"id": "failed on rule: int"})
		return 0, false
	}
	return id, true
}

// DecodeJSON decodes the request body into dst. The body must be a single non-null
// JSON value. On failure it writes a 422 response and returns false.
// Type mismatches are reported against the offending field.
func DecodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			logger.WarnContext(r.Context(), "Empty request body")
		} else {
			logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		}
		RespondError(w, logger, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	// the body must hold exactly one value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		logger.WarnContext(r.Context(), "Trailing data after request body", "error", err)
		RespondError(w, logger, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	if bytes.Equal(raw, []byte("null")) {
		logger.WarnContext(r.Context(), "Request body is null")
		RespondError(w, logger, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}

	err := json.Unmarshal(raw, dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		logger.WarnContext(r.Context(), "Request body has a mistyped field", "field", typeErr.Field, "error", err)
		RespondValidationErrors(w, logger, map[string]string{
			typeErr.Field: fmt.Sprintf("failed on rule: %s", typeErr.Type),
		})
		return false
	}
	logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
	RespondError(w, logger, http.StatusUnprocessableEntity, "Invalid request body")
	return false
}
