package repository

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"wealthfolio/internal/models"
	"wealthfolio/internal/storage"
)

const historyKey = "history"

// HistoryRepository keeps the net-worth time series, at most one point per
// UTC calendar day.
type HistoryRepository struct {
	backend storage.Backend
	// now is injectable for tests.
	now func() time.Time
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend storage.Backend) *HistoryRepository {
	return &HistoryRepository{backend: backend, now: time.Now}
}

// SaveSnapshot records a snapshot for today. An existing snapshot on the
// same UTC day is replaced so re-uploads update today's point instead of
// duplicating it.
func (r *HistoryRepository) SaveSnapshot(summary models.PortfolioSummary) error {
	items, err := r.GetHistory()
	if err != nil {
		return err
	}

	now := r.now().UTC()
	item := models.PortfolioHistoryItem{
		ID:               "snap-" + uuid.NewString()[:8],
		Date:             now,
		NetWorth:         summary.NetWorth,
		TotalAssets:      summary.TotalAssetsValue,
		TotalLiabilities: summary.TotalLiabilitiesValue,
		TotalIncome:      summary.TotalIncome,
	}

	kept := items[:0]
	for _, it := range items {
		if sameDay(it.Date.UTC(), now) {
			continue
		}
		kept = append(kept, it)
	}
	kept = append(kept, item)

	sort.Slice(kept, func(i, j int) bool { return kept[i].Date.Before(kept[j].Date) })

	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return r.backend.Set(historyKey, data)
}

// GetHistory returns all snapshots in ascending date order. A missing or
// corrupt blob yields an empty series.
func (r *HistoryRepository) GetHistory() ([]models.PortfolioHistoryItem, error) {
	data, err := r.backend.Get(historyKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []models.PortfolioHistoryItem{}, nil
	}

	var items []models.PortfolioHistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Corrupt history blob, resetting: %v", err)
		return []models.PortfolioHistoryItem{}, nil
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

// ClearHistory removes the whole series.
func (r *HistoryRepository) ClearHistory() error {
	return r.backend.Delete(historyKey)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
