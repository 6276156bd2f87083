// Package api provides HTTP API handlers for the Armline assessment system.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/armline/internal/assess"
)

// SessionHandler handles HTTP requests for the assessment session.
type SessionHandler struct {
	session *assess.Session
}

// NewSessionHandler creates a new SessionHandler for the given session.
func NewSessionHandler(s *assess.Session) *SessionHandler {
	return &SessionHandler{session: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.status(w, r)
	case http.MethodPost:
		h.start(w, r)
	case http.MethodDelete:
		h.reset(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// status handles GET /api/session and returns the current session status.
func (h *SessionHandler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Status())
}

// start handles POST /api/session. Starting is idempotent while a session
// is already running; a finished session is restarted from scratch.
func (h *SessionHandler) start(w http.ResponseWriter, r *http.Request) {
	h.session.Start()
	writeJSON(w, http.StatusOK, h.session.Status())
}

// reset handles DELETE /api/session and aborts any in-progress assessment.
func (h *SessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.session.Reset()
	writeJSON(w, http.StatusOK, h.session.Status())
}
