package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"wealthfolio/internal/ingest"
	"wealthfolio/internal/models"
	"wealthfolio/internal/repository"
	"wealthfolio/internal/services"
)

const maxUploadSize = 32 << 20 // 32 MB

// portfolioResponse is the payload for every endpoint that returns the
// current batch. The summary is recomputed on each call.
type portfolioResponse struct {
	Assets  []models.Asset          `json:"assets"`
	Plans   []models.FinancialPlan  `json:"plans"`
	Summary models.PortfolioSummary `json:"summary"`
}

// PortfolioHandler handles workbook ingestion and portfolio state.
type PortfolioHandler struct {
	portfolioRepo *repository.PortfolioRepository
	fetcher       *ingest.SheetFetcher
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioRepo *repository.PortfolioRepository, fetcher *ingest.SheetFetcher) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioRepo: portfolioRepo,
		fetcher:       fetcher,
	}
}

// Upload ingests an uploaded workbook and replaces the current batch.
func (h *PortfolioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		respondError(w, http.StatusBadRequest, "Please upload a valid Excel (.xlsx, .xls) or CSV file.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	wb, err := ingest.ReadWorkbook(bytes.NewReader(data), header.Filename)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse file. Ensure it matches the template format.")
		return
	}

	h.ingestWorkbook(w, wb)
}

// sheetRequest is the body of a shared-sheet import.
type sheetRequest struct {
	URL string `json:"url"`
}

// ImportSheet downloads a shared Google Sheet and ingests it through the
// same path as a direct upload.
func (h *PortfolioHandler) ImportSheet(w http.ResponseWriter, r *http.Request) {
	var req sheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exportURL, err := ingest.SheetExportURL(req.URL)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sheet URL: could not find spreadsheet ID")
		return
	}

	wb, err := h.fetcher.Fetch(r.Context(), exportURL)
	if err != nil {
		var fetchErr *ingest.RemoteFetchError
		if errors.As(err, &fetchErr) {
			// Surface the direct-download URL so the user can fetch the
			// file manually and upload it instead.
			respondJSON(w, http.StatusBadGateway, map[string]string{
				"error":        "Could not download the shared sheet. Download it manually and upload the file.",
				"fallback_url": fetchErr.FallbackURL,
			})
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to parse file. Ensure it matches the template format.")
		return
	}

	h.ingestWorkbook(w, wb)
}

func (h *PortfolioHandler) ingestWorkbook(w http.ResponseWriter, wb *ingest.Workbook) {
	assets, plans := ingest.Ingest(wb)
	if len(assets) == 0 && len(plans) == 0 {
		respondError(w, http.StatusBadRequest, "No valid data found in file. Please check the sheet structure.")
		return
	}

	if err := h.portfolioRepo.SaveBatch(assets, plans); err != nil {
		respondAppError(w, err)
		return
	}

	// History is not touched here: snapshots are recorded only through
	// the history endpoint, so a stray upload cannot overwrite a pinned
	// point for today.
	respondJSON(w, http.StatusOK, portfolioResponse{
		Assets:  assets,
		Plans:   plans,
		Summary: services.Summarize(assets),
	})
}

// Get returns the current batch with a freshly computed summary.
// An empty store yields an empty batch, not an error.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	assets, plans, err := h.portfolioRepo.LoadBatch()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, portfolioResponse{
		Assets:  assets,
		Plans:   plans,
		Summary: services.Summarize(assets),
	})
}

// Reset clears the current batch. History is kept; it has its own endpoint.
func (h *PortfolioHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioRepo.Clear(); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Template serves the onboarding sample workbook.
func (h *PortfolioHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio_template.xlsx"`)
	if err := ingest.WriteSampleTemplate(w); err != nil {
		log.Printf("Failed to write template: %v", err)
	}
}
