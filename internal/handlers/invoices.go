package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"wealthfolio/internal/models"
	"wealthfolio/internal/repository"
	"wealthfolio/internal/services"
)

const maxInvoiceBatchSize = 64 << 20 // 64 MB across all files

// InvoiceHandler handles the invoice intake workflow.
type InvoiceHandler struct {
	service      *services.InvoiceService
	invoiceRepo  *repository.InvoiceRepository
	settingsRepo *repository.SettingsRepository
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService, invoiceRepo *repository.InvoiceRepository, settingsRepo *repository.SettingsRepository) *InvoiceHandler {
	return &InvoiceHandler{
		service:      service,
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
	}
}

// Process extracts every uploaded document and returns per-file results.
// A failed file reports its error in place; the rest of the batch proceeds.
func (h *InvoiceHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxInvoiceBatchSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		respondError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	inputs := make([]services.FileInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read %s", fh.Filename))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read %s", fh.Filename))
			return
		}
		inputs = append(inputs, services.FileInput{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		respondAppError(w, err)
		return
	}

	results := h.service.ProcessBatch(r.Context(), inputs, settings.Keywords)
	respondJSON(w, http.StatusOK, results)
}

// List returns all stored invoices, newest first.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceRepo.Load()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

// Update replaces the invoice with the given id.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	inv.ID = chi.URLParam(r, "id")

	if err := h.invoiceRepo.Update(inv); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// Delete removes the invoice with the given id.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceRepo.Delete(chi.URLParam(r, "id")); err != nil {
		respondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats summarizes the invoice list.
func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceRepo.Load()
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services.InvoiceStatsFor(invoices))
}

// Export serves the invoice list as CSV.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceRepo.Load()
	if err != nil {
		respondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices_export.csv"`)

	cw := csv.NewWriter(w)
	header := []string{"ID", "Vendor", "Account Number", "City", "Invoice Number", "Date", "Due Date", "Total", "Currency", "Category", "Status"}
	if err := cw.Write(header); err != nil {
		log.Printf("Failed to write CSV header: %v", err)
		return
	}

	for _, inv := range invoices {
		row := []string{
			inv.ID,
			inv.VendorName,
			inv.AccountNumber,
			inv.City,
			inv.InvoiceNumber,
			inv.Date,
			inv.DueDate,
			fmt.Sprintf("%.2f", inv.Total),
			inv.Currency,
			inv.Category,
			string(inv.Status),
		}
		if err := cw.Write(row); err != nil {
			log.Printf("Failed to write CSV row: %v", err)
			return
		}
	}
	cw.Flush()
}

// QR renders the invoice as a GOST payment QR code (ST00012) PNG.
func (h *InvoiceHandler) QR(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoiceRepo.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondAppError(w, err)
		return
	}

	png, err := qrcode.Encode(paymentString(inv), qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// paymentString builds the ST00012 payload. The amount is in kopecks per
// the standard; fields without extracted values are left out.
func paymentString(inv models.Invoice) string {
	s := "ST00012|Name=" + inv.VendorName
	if inv.AccountNumber != "" {
		s += "|PersonalAcc=" + inv.AccountNumber
	}
	s += fmt.Sprintf("|Sum=%d", int64(math.Round(inv.Total*100)))
	if inv.InvoiceNumber != "" {
		s += "|Purpose=Invoice " + inv.InvoiceNumber
	}
	return s
}
