package repository

import (
	"testing"
	"time"

	"wealthfolio/internal/models"
	"wealthfolio/internal/storage"
)

func TestSaveSnapshotReplacesSameDay(t *testing.T) {
	repo := NewHistoryRepository(storage.NewMemory())
	repo.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	if err := repo.SaveSnapshot(models.PortfolioSummary{NetWorth: 1000}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	// A second snapshot later the same day replaces the first.
	repo.now = func() time.Time {
		return time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	}
	if err := repo.SaveSnapshot(models.PortfolioSummary{NetWorth: 1500}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	items, err := repo.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].NetWorth != 1500 {
		t.Errorf("NetWorth = %v, want 1500", items[0].NetWorth)
	}
}

func TestGetHistorySortedAscending(t *testing.T) {
	repo := NewHistoryRepository(storage.NewMemory())

	days := []time.Time{
		time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC),
	}
	for i, d := range days {
		d := d
		repo.now = func() time.Time { return d }
		if err := repo.SaveSnapshot(models.PortfolioSummary{NetWorth: float64(i)}); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}

	items, err := repo.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Date.Before(items[i-1].Date) {
			t.Errorf("items out of order at %d: %v before %v", i, items[i].Date, items[i-1].Date)
		}
	}
}

func TestGetHistoryCorruptBlob(t *testing.T) {
	backend := storage.NewMemory()
	if err := backend.Set("history", []byte("{not json")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	repo := NewHistoryRepository(backend)
	items, err := repo.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestClearHistory(t *testing.T) {
	repo := NewHistoryRepository(storage.NewMemory())
	if err := repo.SaveSnapshot(models.PortfolioSummary{NetWorth: 42}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := repo.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}

	items, err := repo.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items after clear, want 0", len(items))
	}
}
