// Package handler implements the HTTP layer: request parsing, validation,
// and JSON response shaping. Handlers never touch the database — they call
// into the service layer and translate its domain errors to HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/snippets-manager/internal/apperror"
)

// validate is the shared struct validator for request bodies. It reads the
// `validate:"..."` tags on the request structs (email shape, length bounds).
var validate = validator.New()

// MessageResponse is the `{message}` body used by every mutation response
// and every error.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body; once Encode starts
// writing, the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeMessage sends a `{message}` body with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeError maps a domain error onto the API's error surface.
//
// The surface is deliberately flat: every client fault — bad input, missing
// target, conflicting write — answers 400 with a `{message}` body. Only
// genuinely unexpected failures become 500, with a generic message so
// internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeMessage(w, http.StatusBadRequest, appErr.Message)
		return
	}

	slog.Error("request failed", slog.String("error", err.Error()))
	writeMessage(w, http.StatusInternalServerError, "An internal error occurred.")
}

// decodeBody decodes and validates a JSON request body into dst, which must
// carry `validate` tags. Unknown JSON fields are ignored, not errors.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		return validationError(err)
	}
	return nil
}

// validationError flattens the validator's field errors into one message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.ValidationFailed(fe.Field(), "invalid value for "+fe.Field())
	}
	return apperror.ValidationFailed("body", "invalid request body")
}
