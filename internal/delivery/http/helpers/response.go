package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope for all API responses. On success, Success is
// true and Data (and optionally Message) is set. On error, Success is false,
// Error carries a human-readable message, and Details carries field-level
// validation messages when present.
// swagger:model APIResponse
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes a success envelope with the given data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Data: data})
}

// WriteJSONMessage writes a success envelope with a message and optional data.
func WriteJSONMessage(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// WriteJSONError writes an error envelope with a human-readable message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: false, Error: message})
}

// WriteJSONValidationError writes a 400 error envelope carrying one message
// per failed field rule.
func WriteJSONValidationError(w http.ResponseWriter, details []string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   "validation failed",
		Details: details,
	})
}
