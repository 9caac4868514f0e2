// Package handler is the HTTP layer: it parses requests, delegates to
// services, and writes JSON responses. All business rules live below it.
//
// Response shape follows the API contract the frontend was built against:
// success bodies are `{"success": true, ...payload}`, failures are a
// non-2xx status with a `{"message": "..."}` body.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sakif/skillhub/internal/apperror"
)

// validate checks the `validate` struct tags on request DTOs. One
// instance for the package; the validator caches struct metadata.
var validate = validator.New()

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code. Headers
// must be set before the first body write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeSuccess sends `{"success": true}` merged with the given payload
// fields.
func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError maps a domain error onto an HTTP status. The service layer
// returns apperror sentinels; errors.Is walks the wrap chain to find
// them. Anything unrecognized becomes an opaque 500 — raw error strings
// can leak SQL or file paths and never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadGateway
		case errors.Is(err, apperror.ErrUnavailable):
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, errorResponse{Message: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "an internal error occurred"})
}

// decodeAndValidate parses the JSON body into dst and runs the struct's
// validate tags. On failure it writes the 400 itself and returns false so
// handlers can bail with a bare return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Message: "invalid value for field " + fieldErrs[0].Field(),
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return false
	}
	return true
}
