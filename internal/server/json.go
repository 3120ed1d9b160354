// Package server provides the HTTP surface of the coach API.
package server

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ErrorWithDetail writes a JSON error response carrying upstream
// detail text.
func ErrorWithDetail(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, map[string]string{"error": message, "detail": detail})
}
