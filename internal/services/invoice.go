package services

import (
	"context"
	"math"
	"strings"
	"sync"

	"wealthfolio/internal/models"
)

// InvoiceExtractor turns one scanned document into a structured invoice.
// It is implemented by the AI extractor and by fakes in tests.
type InvoiceExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, data []byte) (models.Invoice, error)
}

// InvoiceStore is the persisted invoice list.
type InvoiceStore interface {
	Append(inv models.Invoice) error
}

// FileInput is one uploaded document in a processing batch.
type FileInput struct {
	Name     string
	MIMEType string
	Data     []byte
}

// ProcessResult is the per-file outcome of a batch. Failures are surfaced
// explicitly instead of being silently dropped so the caller can show which
// uploads need a retry.
type ProcessResult struct {
	FileName string          `json:"file_name"`
	Invoice  *models.Invoice `json:"invoice,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// InvoiceService coordinates extraction, keyword selection, and storage.
type InvoiceService struct {
	extractor InvoiceExtractor
	store     InvoiceStore
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(extractor InvoiceExtractor, store InvoiceStore) *InvoiceService {
	return &InvoiceService{extractor: extractor, store: store}
}

// ProcessBatch runs every file through the extractor concurrently and
// collects per-file results in input order. Each round trip is independent;
// one failure never blocks the rest of the batch. Successes are appended to
// the store, newest first handled by the store itself.
func (s *InvoiceService) ProcessBatch(ctx context.Context, files []FileInput, keywords []string) []ProcessResult {
	results := make([]ProcessResult, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file FileInput) {
			defer wg.Done()
			results[i].FileName = file.Name

			inv, err := s.extractor.Extract(ctx, file.Name, file.MIMEType, file.Data)
			if err != nil {
				results[i].Error = err.Error()
				return
			}

			ApplySelection(&inv, keywords)
			results[i].Invoice = &inv
		}(i, file)
	}
	wg.Wait()

	for i := range results {
		if results[i].Invoice == nil {
			continue
		}
		if err := s.store.Append(*results[i].Invoice); err != nil {
			results[i].Invoice = nil
			results[i].Error = "saving invoice: " + err.Error()
		}
	}

	return results
}

// ApplySelection marks line items whose description starts with one of the
// configured keywords (case-insensitive) and, when anything matched,
// recomputes the invoice totals from the selected items only. The extracted
// tax is always reset: the payable amount is the line-item sum, never a
// separately taxed figure.
func ApplySelection(inv *models.Invoice, keywords []string) {
	var selectedSubtotal float64
	anySelected := false

	for i := range inv.LineItems {
		desc := strings.ToUpper(strings.TrimSpace(inv.LineItems[i].Description))
		selected := false
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.HasPrefix(desc, strings.ToUpper(kw)) {
				selected = true
				break
			}
		}
		inv.LineItems[i].Selected = selected
		if selected {
			anySelected = true
			selectedSubtotal += inv.LineItems[i].Total
		}
	}

	inv.Tax = 0
	if anySelected && selectedSubtotal > 0 {
		inv.Subtotal = round2(selectedSubtotal)
		inv.Total = round2(selectedSubtotal)
	}
}

// InvoiceStatsFor summarizes the invoice list for the dashboard.
func InvoiceStatsFor(invoices []models.Invoice) models.InvoiceStats {
	stats := models.InvoiceStats{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		stats.TotalSpend += inv.Total
		switch inv.Status {
		case models.InvoiceDraft, models.InvoiceReviewed:
			stats.PendingReview++
		case models.InvoicePaid:
			stats.Paid++
		}
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
