package services

import (
	"math"
	"testing"

	"wealthfolio/internal/models"
)

func testAssets() []models.Asset {
	return []models.Asset{
		{ID: "a1", Symbol: "BTC", Type: models.TypeCrypto, TotalValue: 32500, TotalCost: 22500, Profit: 10000, ProfitPct: 44.44, ProjectedMonthlyIncome: 0},
		{ID: "a2", Symbol: "AAPL", Type: models.TypeEquity, TotalValue: 9000, TotalCost: 7500, Profit: 1500, ProfitPct: 20},
		{ID: "a3", Symbol: "APT-1", Type: models.TypeRealEstate, TotalValue: 250000, TotalCost: 200000, Profit: 50000, ProfitPct: 25, ProjectedMonthlyIncome: 1500},
		{ID: "a4", Symbol: "JOB", Type: models.TypeSalary, TotalValue: 5000, ProjectedMonthlyIncome: 5000},
		{ID: "a5", Symbol: "MORTGAGE", Type: models.TypeLiability, TotalValue: 320000, TotalCost: 350000},
	}
}

func TestSummarizeNetWorth(t *testing.T) {
	s := Summarize(testAssets())

	wantAssets := 32500.0 + 9000 + 250000
	if s.TotalAssetsValue != wantAssets {
		t.Errorf("TotalAssetsValue = %v, want %v", s.TotalAssetsValue, wantAssets)
	}
	if s.TotalLiabilitiesValue != 320000 {
		t.Errorf("TotalLiabilitiesValue = %v, want 320000", s.TotalLiabilitiesValue)
	}
	if s.NetWorth != wantAssets-320000 {
		t.Errorf("NetWorth = %v, want %v", s.NetWorth, wantAssets-320000)
	}
	if s.TotalIncome != 5000 {
		t.Errorf("TotalIncome = %v, want 5000 (income assets only)", s.TotalIncome)
	}

	wantCost := 22500.0 + 7500 + 200000
	wantProfit := wantAssets - wantCost
	if s.TotalProfit != wantProfit {
		t.Errorf("TotalProfit = %v, want %v", s.TotalProfit, wantProfit)
	}
	wantPct := wantProfit / wantCost * 100
	if math.Abs(s.ProfitPct-wantPct) > 0.001 {
		t.Errorf("ProfitPct = %v, want %v", s.ProfitPct, wantPct)
	}
}

func TestSummarizePassiveIncomeSpansAllAssets(t *testing.T) {
	s := Summarize(testAssets())
	// 1500 rental + 5000 salary; liabilities would count too if they
	// carried a projection.
	if s.ProjectedMonthlyPassiveIncome != 6500 {
		t.Errorf("ProjectedMonthlyPassiveIncome = %v, want 6500", s.ProjectedMonthlyPassiveIncome)
	}
}

func TestSummarizeAllocationsSortedDescending(t *testing.T) {
	s := Summarize(testAssets())

	if len(s.AssetAllocation) != 3 {
		t.Fatalf("got %d allocation slices, want 3", len(s.AssetAllocation))
	}
	if s.AssetAllocation[0].Type != models.TypeRealEstate {
		t.Errorf("largest slice = %s, want Real Estate", s.AssetAllocation[0].Type)
	}
	for i := 1; i < len(s.AssetAllocation); i++ {
		if s.AssetAllocation[i].Value > s.AssetAllocation[i-1].Value {
			t.Errorf("allocation not descending at %d", i)
		}
	}

	var total float64
	for _, a := range s.AssetAllocation {
		total += a.Value
	}
	if total != s.TotalAssetsValue {
		t.Errorf("allocation sum = %v, want %v", total, s.TotalAssetsValue)
	}

	if len(s.RiskGroups) != 3 {
		t.Fatalf("got %d risk groups, want 3 (foundation, investment, speculative)", len(s.RiskGroups))
	}
	if s.RiskGroups[0].Group != models.GroupFoundation {
		t.Errorf("largest group = %s, want foundation", s.RiskGroups[0].Group)
	}
}

func TestSummarizePerformers(t *testing.T) {
	s := Summarize(testAssets())

	if s.TopPerformer == nil || s.TopPerformer.Symbol != "BTC" {
		t.Errorf("TopPerformer = %+v, want BTC", s.TopPerformer)
	}
	if s.WorstPerformer == nil || s.WorstPerformer.Symbol != "AAPL" {
		t.Errorf("WorstPerformer = %+v, want AAPL", s.WorstPerformer)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	if s.NetWorth != 0 || s.ProfitPct != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.TopPerformer != nil || s.WorstPerformer != nil {
		t.Error("performers set on empty portfolio")
	}
	if s.AssetAllocation == nil || s.RiskGroups == nil {
		t.Error("breakdown slices should be empty, not nil")
	}
}

func TestSummarizeZeroCostNoDivide(t *testing.T) {
	s := Summarize([]models.Asset{
		{ID: "a", Type: models.TypeCash, TotalValue: 100, TotalCost: 0},
	})
	if s.ProfitPct != 0 {
		t.Errorf("ProfitPct = %v, want 0 when cost is 0", s.ProfitPct)
	}
}
