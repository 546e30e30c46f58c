package handlers

import (
	"encoding/json"
	"net/http"

	"wealthfolio/internal/ai"
	"wealthfolio/internal/repository"
	"wealthfolio/internal/services"
)

// analysisRequest selects the response language, "en" or "ru".
type analysisRequest struct {
	Language string `json:"language"`
}

// AnalysisHandler serves the AI portfolio analysis.
type AnalysisHandler struct {
	portfolioRepo *repository.PortfolioRepository
	advisor       *ai.Advisor
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(portfolioRepo *repository.PortfolioRepository, advisor *ai.Advisor) *AnalysisHandler {
	return &AnalysisHandler{portfolioRepo: portfolioRepo, advisor: advisor}
}

// Analyze runs the advisor over the current batch. Model failures come
// back as a localized apology inside a 200 response; the dashboard treats
// the analysis as best-effort content.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language != "ru" {
		req.Language = "en"
	}

	assets, plans, err := h.portfolioRepo.LoadBatch()
	if err != nil {
		respondAppError(w, err)
		return
	}
	if len(assets) == 0 {
		respondError(w, http.StatusBadRequest, "Upload a portfolio before requesting an analysis.")
		return
	}

	summary := services.Summarize(assets)
	text := h.advisor.Analyze(r.Context(), assets, plans, summary, req.Language)
	respondJSON(w, http.StatusOK, map[string]string{"analysis": text})
}
