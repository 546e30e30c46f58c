package handlers

import (
	"net/http"

	"wealthfolio/internal/repository"
	"wealthfolio/internal/services"
)

// HistoryHandler handles the net-worth time series.
type HistoryHandler struct {
	historyRepo   *repository.HistoryRepository
	portfolioRepo *repository.PortfolioRepository
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyRepo *repository.HistoryRepository, portfolioRepo *repository.PortfolioRepository) *HistoryHandler {
	return &HistoryHandler{historyRepo: historyRepo, portfolioRepo: portfolioRepo}
}

// Get returns all snapshots in ascending date order.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.historyRepo.GetHistory()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Record snapshots the current batch. Useful when the user wants to pin
// today's point without re-uploading.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	assets, _, err := h.portfolioRepo.LoadBatch()
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.historyRepo.SaveSnapshot(services.Summarize(assets)); err != nil {
		respondAppError(w, err)
		return
	}

	items, err := h.historyRepo.GetHistory()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, items)
}

// Clear removes the whole series.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.historyRepo.ClearHistory(); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
