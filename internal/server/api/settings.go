package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/armline/internal/config"
	"github.com/ayusman/armline/internal/store"
)

// SettingsHandler handles HTTP requests for persisted settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// allowedKeys are the setting keys clients may write. Anything else is
// rejected rather than silently persisted.
var allowedKeys = map[string]bool{
	config.KeySessionBudget:  true,
	config.KeyHoldDuration:   true,
	config.KeyLineRatio:      true,
	config.KeyLineTolerance:  true,
	config.KeyAngleTolerance: true,
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// list handles GET /api/settings and returns all persisted settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})
}

// update handles PUT /api/settings and stores the provided key-value pairs.
// Settings take effect on the next application start.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for key := range req {
		if !allowedKeys[key] {
			writeError(w, http.StatusBadRequest, "Unknown setting: "+key)
			return
		}
	}

	for key, value := range req {
		if err := h.store.Settings().Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store setting")
			return
		}
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})
}
