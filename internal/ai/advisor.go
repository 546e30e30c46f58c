package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"wealthfolio/internal/models"
)

const (
	systemInstructionEN = "You are a senior portfolio manager assisting a retail investor."
	systemInstructionRU = "Вы опытный финансовый консультант. Дайте советы на русском языке."

	fallbackEN = "An error occurred while analyzing the portfolio."
	fallbackRU = "Произошла ошибка при анализе портфеля."
)

// Advisor produces the written portfolio analysis.
type Advisor struct {
	generator Generator
}

// NewAdvisor creates a new Advisor.
func NewAdvisor(generator Generator) *Advisor {
	return &Advisor{generator: generator}
}

// advisorHolding is the compact per-asset view sent to the model.
type advisorHolding struct {
	Symbol     string           `json:"symbol"`
	Type       models.AssetType `json:"type"`
	Allocation string           `json:"allocation"`
	ProfitPct  string           `json:"profit_percent"`
	Value      float64          `json:"value"`
}

type advisorLiability struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Analyze asks the model for a Markdown analysis of the portfolio in the
// requested language ("ru" or "en"). Model failures degrade to a localized
// apology rather than an error so the dashboard stays usable.
func (a *Advisor) Analyze(ctx context.Context, assets []models.Asset, plans []models.FinancialPlan, summary models.PortfolioSummary, language string) string {
	var holdings []advisorHolding
	var liabilities []advisorLiability
	for _, asset := range assets {
		switch {
		case models.IsIncomeType(asset.Type):
			// Period income is already reflected in the wealth summary.
		case models.IsLiabilityType(asset.Type):
			liabilities = append(liabilities, advisorLiability{Name: asset.Name, Value: asset.TotalValue})
		default:
			allocation := 0.0
			if summary.TotalAssetsValue != 0 {
				allocation = asset.TotalValue / summary.TotalAssetsValue * 100
			}
			holdings = append(holdings, advisorHolding{
				Symbol:     asset.Symbol,
				Type:       asset.Type,
				Allocation: fmt.Sprintf("%.2f%%", allocation),
				ProfitPct:  fmt.Sprintf("%.2f%%", asset.ProfitPct),
				Value:      asset.TotalValue,
			})
		}
	}

	prompt := buildAdvisorPrompt(holdings, liabilities, plans, summary, language)

	system := systemInstructionEN
	if language == "ru" {
		system = systemInstructionRU
	}

	text, err := a.generator.GenerateText(ctx, system, prompt)
	if err != nil {
		log.Printf("Portfolio analysis failed: %v", err)
		if language == "ru" {
			return fallbackRU
		}
		return fallbackEN
	}
	return text
}

func buildAdvisorPrompt(holdings []advisorHolding, liabilities []advisorLiability, plans []models.FinancialPlan, summary models.PortfolioSummary, language string) string {
	languageName := "English"
	if language == "ru" {
		languageName = "Russian"
	}

	plansJSON := marshalIndent(plans)
	liabilitiesJSON := marshalIndent(liabilities)
	holdingsJSON := marshalIndent(holdings)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert financial advisor. Analyze the following financial data.\n")
	fmt.Fprintf(&b, "**IMPORTANT: Respond strictly in %s.**\n\n", languageName)
	fmt.Fprintf(&b, "**Wealth Summary:**\n")
	fmt.Fprintf(&b, "- Net Worth: $%.2f\n", summary.NetWorth)
	fmt.Fprintf(&b, "- Total Assets: $%.2f\n", summary.TotalAssetsValue)
	fmt.Fprintf(&b, "- Total Liabilities (Debt): $%.2f\n", summary.TotalLiabilitiesValue)
	fmt.Fprintf(&b, "- Total Period Income: $%.2f\n\n", summary.TotalIncome)
	fmt.Fprintf(&b, "**User's Future Financial Plans:**\n%s\n\n", plansJSON)
	fmt.Fprintf(&b, "**Liabilities/Debts:**\n%s\n\n", liabilitiesJSON)
	fmt.Fprintf(&b, "**Investment Assets Breakdown:**\n%s\n\n", holdingsJSON)
	b.WriteString(`Please provide a comprehensive analysis in Markdown format, covering:
1. **Financial Health**: Comment on the Net Worth and Debt-to-Asset ratio.
2. **Plan Alignment**: Specific advice on how to achieve the "User's Future Financial Plans" listed above based on current holdings.
3. **Diversification Analysis**: Are the assets well-distributed?
4. **Risk Assessment**: Identify potential high-risk concentrations.
5. **Actionable Recommendations**: Suggest 3 specific strategies.

Keep the tone professional. Use bullet points.`)
	return b.String()
}

func marshalIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
