package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON body of every calculator response. Exactly one of
// Data and Msg is set.
type Envelope struct {
	StatusCode int      `json:"statuscode"`
	Data       *float64 `json:"data,omitempty"`
	Msg        string   `json:"msg,omitempty"`
}

// WriteData writes a successful envelope carrying result.
func WriteData(w http.ResponseWriter, status int, result float64) {
	writeEnvelope(w, Envelope{StatusCode: status, Data: &result})
}

// WriteError writes a standardised JSON error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, Envelope{StatusCode: status, Msg: msg})
}

func writeEnvelope(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// NotFound answers requests for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers requests with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
