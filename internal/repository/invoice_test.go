package repository

import (
	"errors"
	"testing"

	apperrors "wealthfolio/internal/errors"
	"wealthfolio/internal/models"
	"wealthfolio/internal/storage"
)

func TestInvoiceAppendPrepends(t *testing.T) {
	repo := NewInvoiceRepository(storage.NewMemory())

	if err := repo.Append(models.Invoice{ID: "inv-1", VendorName: "First"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := repo.Append(models.Invoice{ID: "inv-2", VendorName: "Second"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	invoices, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, want 2", len(invoices))
	}
	if invoices[0].ID != "inv-2" {
		t.Errorf("newest invoice = %s, want inv-2 first", invoices[0].ID)
	}
}

func TestInvoiceUpdate(t *testing.T) {
	repo := NewInvoiceRepository(storage.NewMemory())
	if err := repo.Append(models.Invoice{ID: "inv-1", Status: models.InvoiceDraft}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := repo.Update(models.Invoice{ID: "inv-1", Status: models.InvoicePaid}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	inv, err := repo.GetByID("inv-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if inv.Status != models.InvoicePaid {
		t.Errorf("Status = %s, want Paid", inv.Status)
	}

	err = repo.Update(models.Invoice{ID: "missing"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestInvoiceDelete(t *testing.T) {
	repo := NewInvoiceRepository(storage.NewMemory())
	if err := repo.Append(models.Invoice{ID: "inv-1"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if err := repo.Delete("inv-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID("inv-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetByID after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete("inv-1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
