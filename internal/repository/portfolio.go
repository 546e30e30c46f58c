// Package repository persists the application state as JSON blobs behind
// the storage backend.
package repository

import (
	"encoding/json"
	"log"

	"wealthfolio/internal/models"
	"wealthfolio/internal/storage"
)

const portfolioKey = "portfolio"

// portfolioBatch is the persisted shape of one upload.
type portfolioBatch struct {
	Assets []models.Asset         `json:"assets"`
	Plans  []models.FinancialPlan `json:"plans"`
}

// PortfolioRepository stores the current asset batch. A new upload replaces
// the batch wholesale; assets are never edited in place.
type PortfolioRepository struct {
	backend storage.Backend
}

// NewPortfolioRepository creates a new PortfolioRepository.
func NewPortfolioRepository(backend storage.Backend) *PortfolioRepository {
	return &PortfolioRepository{backend: backend}
}

// SaveBatch replaces the stored batch with the given assets and plans.
func (r *PortfolioRepository) SaveBatch(assets []models.Asset, plans []models.FinancialPlan) error {
	if assets == nil {
		assets = []models.Asset{}
	}
	if plans == nil {
		plans = []models.FinancialPlan{}
	}
	data, err := json.Marshal(portfolioBatch{Assets: assets, Plans: plans})
	if err != nil {
		return err
	}
	return r.backend.Set(portfolioKey, data)
}

// LoadBatch returns the stored batch. A missing or unreadable blob yields
// empty slices; a corrupt blob is logged and treated as absent.
func (r *PortfolioRepository) LoadBatch() ([]models.Asset, []models.FinancialPlan, error) {
	data, err := r.backend.Get(portfolioKey)
	if err != nil {
		return nil, nil, err
	}
	if data == nil {
		return []models.Asset{}, []models.FinancialPlan{}, nil
	}

	var batch portfolioBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		log.Printf("Corrupt portfolio blob, resetting: %v", err)
		return []models.Asset{}, []models.FinancialPlan{}, nil
	}
	if batch.Assets == nil {
		batch.Assets = []models.Asset{}
	}
	if batch.Plans == nil {
		batch.Plans = []models.FinancialPlan{}
	}
	return batch.Assets, batch.Plans, nil
}

// Clear removes the stored batch.
func (r *PortfolioRepository) Clear() error {
	return r.backend.Delete(portfolioKey)
}
