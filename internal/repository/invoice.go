package repository

import (
	"encoding/json"
	"log"

	"wealthfolio/internal/models"
	"wealthfolio/internal/storage"

	apperrors "wealthfolio/internal/errors"
)

const invoicesKey = "invoices"

// InvoiceRepository stores the extracted invoice list, newest first.
type InvoiceRepository struct {
	backend storage.Backend
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(backend storage.Backend) *InvoiceRepository {
	return &InvoiceRepository{backend: backend}
}

// Load returns all stored invoices. A missing or corrupt blob yields an
// empty list.
func (r *InvoiceRepository) Load() ([]models.Invoice, error) {
	data, err := r.backend.Get(invoicesKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []models.Invoice{}, nil
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		log.Printf("Corrupt invoices blob, resetting: %v", err)
		return []models.Invoice{}, nil
	}
	return invoices, nil
}

// Append prepends an invoice so the newest appears first.
func (r *InvoiceRepository) Append(inv models.Invoice) error {
	invoices, err := r.Load()
	if err != nil {
		return err
	}
	invoices = append([]models.Invoice{inv}, invoices...)
	return r.save(invoices)
}

// GetByID returns the invoice with the given id.
func (r *InvoiceRepository) GetByID(id string) (models.Invoice, error) {
	invoices, err := r.Load()
	if err != nil {
		return models.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, apperrors.New(apperrors.ErrNotFound, "invoice not found")
}

// Update replaces the invoice with the same id.
func (r *InvoiceRepository) Update(inv models.Invoice) error {
	invoices, err := r.Load()
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = inv
			return r.save(invoices)
		}
	}
	return apperrors.New(apperrors.ErrNotFound, "invoice not found")
}

// Delete removes the invoice with the given id.
func (r *InvoiceRepository) Delete(id string) error {
	invoices, err := r.Load()
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return r.save(append(invoices[:i], invoices[i+1:]...))
		}
	}
	return apperrors.New(apperrors.ErrNotFound, "invoice not found")
}

func (r *InvoiceRepository) save(invoices []models.Invoice) error {
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	data, err := json.Marshal(invoices)
	if err != nil {
		return err
	}
	return r.backend.Set(invoicesKey, data)
}
