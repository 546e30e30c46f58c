package handlers

import (
	"encoding/json"
	"net/http"

	"wealthfolio/internal/models"
	"wealthfolio/internal/repository"
)

// settingsRequest is the update payload. Both fields are optional so a
// partial update leaves the other setting untouched. APIKey is write-only:
// it is accepted here, stored encrypted, and never echoed back.
type settingsRequest struct {
	Keywords *[]string `json:"keywords,omitempty"`
	APIKey   *string   `json:"api_key,omitempty"`
}

// SettingsHandler handles the invoice tool configuration.
type SettingsHandler struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsRepo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Update replaces whichever settings the request carries; omitted fields
// keep their stored values.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Keywords != nil {
		if err := h.settingsRepo.Update(models.Settings{Keywords: *req.Keywords}); err != nil {
			respondAppError(w, err)
			return
		}
	}
	if req.APIKey != nil {
		if err := h.settingsRepo.SetAPIKey(*req.APIKey); err != nil {
			respondAppError(w, err)
			return
		}
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
