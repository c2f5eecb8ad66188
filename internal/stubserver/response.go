package stubserver

import (
	"encoding/json"
	"net/http"

	"booktracker/internal/schema"
)

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []schema.FieldError `json:"details,omitempty"`
}

// writeJSON writes v as the bare response body. The client decodes bodies
// directly into entities, so success responses carry no envelope.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message string, details []schema.FieldError) {
	var meta map[string]any
	if requestID := RequestIDFrom(r); requestID != "" {
		meta = map[string]any{"request_id": requestID}
	}
	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: meta,
	})
}
