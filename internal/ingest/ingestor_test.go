package ingest

import (
	"testing"

	"wealthfolio/internal/models"
)

func TestIngestRoutesPlanSheets(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{
			Name: "Crypto",
			Rows: []Row{
				{"Symbol": "BTC", "Name": "Bitcoin", "Quantity": "0.5", "PurchasePrice": "45000", "CurrentPrice": "65000"},
			},
		},
		{
			Name: "Future Plans",
			Rows: []Row{
				{"Quarter": "Q4 2025", "Goal": "Reach $10k passive", "Status": "In Progress"},
				{"Goal": "Buy more gold"},
			},
		},
	}}

	assets, plans := Ingest(wb)

	if len(assets) != 1 {
		t.Fatalf("got %d assets, want 1", len(assets))
	}
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}

	if plans[0].Quarter != "Q4 2025" || plans[0].Status != models.PlanInProgress {
		t.Errorf("plan[0] = %+v", plans[0])
	}
	// Missing fields fall back to defaults.
	if plans[1].Quarter != "Q1" {
		t.Errorf("plan[1].Quarter = %q, want Q1 default", plans[1].Quarter)
	}
	if plans[1].Status != models.PlanPending {
		t.Errorf("plan[1].Status = %s, want Pending default", plans[1].Status)
	}
	if plans[0].ID == plans[1].ID {
		t.Error("plan IDs collide")
	}
}

func TestIngestDropsZeroValueRows(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{
			Name: "Stocks",
			Rows: []Row{
				{"Symbol": "AAPL", "Name": "Apple", "Quantity": "50", "PurchasePrice": "150", "CurrentPrice": "180"},
				{"Symbol": "HDR", "Name": "Header Notes Row"},
				{"Symbol": "LOSS", "Name": "Swing Loss", "Amount": "-400"},
			},
		},
	}}

	assets, _ := Ingest(wb)

	if len(assets) != 2 {
		t.Fatalf("got %d assets, want 2 (zero-value row dropped)", len(assets))
	}
	for _, a := range assets {
		if a.TotalValue == 0 {
			t.Errorf("zero-value asset survived: %+v", a)
		}
	}
}

func TestIngestEmptyWorkbook(t *testing.T) {
	assets, plans := Ingest(&Workbook{})
	if len(assets) != 0 || len(plans) != 0 {
		t.Errorf("got %d assets, %d plans from empty workbook", len(assets), len(plans))
	}
}

func TestIngestAssetIDsUniqueWithinBatch(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{
			Name: "Metals",
			Rows: []Row{
				{"Symbol": "GOLD", "Name": "Gold", "Quantity": "5", "PurchasePrice": "1800", "CurrentPrice": "2100"},
				{"Symbol": "SILVER", "Name": "Silver", "Quantity": "50", "PurchasePrice": "22", "CurrentPrice": "26"},
			},
		},
	}}

	assets, _ := Ingest(wb)

	seen := make(map[string]bool)
	for _, a := range assets {
		if seen[a.ID] {
			t.Errorf("duplicate asset ID %q", a.ID)
		}
		seen[a.ID] = true
	}
}
