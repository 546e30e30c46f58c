// Package services contains the aggregation logic for wealthfolio.
package services

import (
	"sort"

	"wealthfolio/internal/models"
)

// Summarize reduces the asset batch into portfolio-level metrics. It is a
// pure function recomputed on every request; summaries are never cached or
// persisted.
func Summarize(assets []models.Asset) models.PortfolioSummary {
	var portfolio, income, liabilities []models.Asset
	for _, a := range assets {
		switch {
		case models.IsIncomeType(a.Type):
			income = append(income, a)
		case models.IsLiabilityType(a.Type):
			liabilities = append(liabilities, a)
		default:
			portfolio = append(portfolio, a)
		}
	}

	summary := models.PortfolioSummary{
		AssetAllocation: make([]models.Allocation, 0),
		RiskGroups:      make([]models.GroupAllocation, 0),
	}

	var totalCost float64
	for _, a := range portfolio {
		summary.TotalAssetsValue += a.TotalValue
		totalCost += a.TotalCost
	}
	for _, a := range liabilities {
		summary.TotalLiabilitiesValue += a.TotalValue
	}
	summary.NetWorth = summary.TotalAssetsValue - summary.TotalLiabilitiesValue

	summary.TotalProfit = summary.TotalAssetsValue - totalCost
	if totalCost != 0 {
		summary.ProfitPct = summary.TotalProfit / totalCost * 100
	}

	for _, a := range income {
		summary.TotalIncome += a.TotalValue
	}

	// The projection deliberately runs over every asset, liabilities
	// included, so interest-bearing debt could register here.
	for _, a := range assets {
		summary.ProjectedMonthlyPassiveIncome += a.ProjectedMonthlyIncome
	}

	allocationTotals := make(map[models.AssetType]float64)
	groupTotals := make(map[models.Group]float64)
	for _, a := range portfolio {
		allocationTotals[a.Type] += a.TotalValue
		groupTotals[models.GroupFor(a.Type)] += a.TotalValue
	}

	for t, v := range allocationTotals {
		summary.AssetAllocation = append(summary.AssetAllocation, models.Allocation{Type: t, Value: v})
	}
	sort.Slice(summary.AssetAllocation, func(i, j int) bool {
		a, b := summary.AssetAllocation[i], summary.AssetAllocation[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Type < b.Type
	})

	for g, v := range groupTotals {
		summary.RiskGroups = append(summary.RiskGroups, models.GroupAllocation{Group: g, Value: v})
	}
	sort.Slice(summary.RiskGroups, func(i, j int) bool {
		a, b := summary.RiskGroups[i], summary.RiskGroups[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Group < b.Group
	})

	if len(portfolio) > 0 {
		byProfit := make([]models.Asset, len(portfolio))
		copy(byProfit, portfolio)
		sort.Slice(byProfit, func(i, j int) bool {
			return byProfit[i].ProfitPct > byProfit[j].ProfitPct
		})
		top := byProfit[0]
		worst := byProfit[len(byProfit)-1]
		summary.TopPerformer = &top
		summary.WorstPerformer = &worst
	}

	return summary
}
