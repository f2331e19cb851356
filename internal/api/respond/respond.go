// Package respond centralizes JSON response writing and the HTTP error
// vocabulary used by handlers and middleware.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// FieldError names one violated constraint in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

// Error writes a simple error body with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ValidationFailed writes a 400 listing every violated field.
func ValidationFailed(w http.ResponseWriter, fields []FieldError) {
	JSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}

// Internal logs the cause and writes a generic 500. The raw error never
// reaches the client.
func Internal(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal error")
	Error(w, http.StatusInternalServerError, "internal server error")
}
