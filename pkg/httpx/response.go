// Package httpx carries the HTTP plumbing shared by every handler: the
// response envelope, middleware chaining, and rate limiting.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape. Status is "success" or "error";
// Data carries the payload on success, Error an optional human-readable
// message on failure.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope. A nil data yields {"status":"success"}
// with no data key, which is the delete-response shape.
func WriteSuccess(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, Envelope{Status: "success", Data: data})
}

// WriteError writes an error envelope. The message is optional; store-level
// failures pass "" so the client learns nothing beyond the status code.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, Envelope{Status: "error", Error: msg})
}

// NoCache marks a response as uncacheable. Required for everything carrying
// session or account data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
