// Package models contains the domain models for wealthfolio.
package models

import "time"

// AssetType is the closed set of categories a spreadsheet row can
// classify into.
type AssetType string

const (
	TypeEquity     AssetType = "Equity"
	TypeCrypto     AssetType = "Crypto"
	TypeRealEstate AssetType = "Real Estate"
	TypeCash       AssetType = "Cash"
	TypeBond       AssetType = "Bond"
	TypeFund       AssetType = "Fund"
	TypeMetal      AssetType = "Metal"

	// Income categories: the row's total value is income realized this
	// period, not a holding.
	TypeBusiness AssetType = "Business"
	TypeRental   AssetType = "Rental"
	TypeTrading  AssetType = "Trading"
	TypeRoyalty  AssetType = "Royalty"
	TypeSalary   AssetType = "Salary"
	TypeDividend AssetType = "Dividend"

	TypeDeposit AssetType = "Deposit"

	TypeLiability AssetType = "Liability"

	TypeOther AssetType = "Other"
)

// Group buckets asset types for risk and aggregation views.
type Group string

const (
	GroupFoundation  Group = "foundation"
	GroupInvestment  Group = "investment"
	GroupSpeculative Group = "speculative"
	GroupIncome      Group = "income"
	GroupLiability   Group = "liability"
)

// typeGroups is the single source of truth for category grouping.
// Presentation code must not grow its own switch statements over AssetType.
var typeGroups = map[AssetType]Group{
	TypeRealEstate: GroupFoundation,
	TypeCash:       GroupFoundation,
	TypeBond:       GroupFoundation,
	TypeDeposit:    GroupFoundation,

	TypeEquity: GroupInvestment,
	TypeFund:   GroupInvestment,
	TypeMetal:  GroupInvestment,
	TypeOther:  GroupInvestment,

	TypeCrypto: GroupSpeculative,

	TypeBusiness: GroupIncome,
	TypeRental:   GroupIncome,
	TypeTrading:  GroupIncome,
	TypeRoyalty:  GroupIncome,
	TypeSalary:   GroupIncome,
	TypeDividend: GroupIncome,

	TypeLiability: GroupLiability,
}

// GroupFor returns the risk group for an asset type.
// Unknown types fall back to the investment group.
func GroupFor(t AssetType) Group {
	if g, ok := typeGroups[t]; ok {
		return g
	}
	return GroupInvestment
}

// IsIncomeType reports whether the type represents realized income rather
// than a holding. A deposit is a holding: it carries a balance, not a cashflow.
func IsIncomeType(t AssetType) bool {
	return GroupFor(t) == GroupIncome
}

// IsLiabilityType reports whether the type counts against net worth.
func IsLiabilityType(t AssetType) bool {
	return t == TypeLiability
}

// Asset is one classified ledger line from an ingested workbook.
// Assets are immutable after ingestion; a new upload replaces the batch.
type Asset struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Type          AssetType `json:"type"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentPrice  float64   `json:"current_price"`
	TotalValue    float64   `json:"total_value"`
	TotalCost     float64   `json:"total_cost"`
	Profit        float64   `json:"profit"`
	ProfitPct     float64   `json:"profit_pct"`
	// IncomeYield is the annualized percentage return of the income stream.
	IncomeYield float64 `json:"income_yield"`
	// ProjectedMonthlyIncome is the estimated currency amount per month.
	ProjectedMonthlyIncome float64 `json:"projected_monthly_income"`
}

// PlanStatus is the lifecycle state of a financial plan.
type PlanStatus string

const (
	PlanPending    PlanStatus = "Pending"
	PlanInProgress PlanStatus = "In Progress"
	PlanCompleted  PlanStatus = "Completed"
	PlanRejected   PlanStatus = "Rejected"
)

// FinancialPlan is a goal entry parsed from a plan sheet.
type FinancialPlan struct {
	ID      string     `json:"id"`
	Quarter string     `json:"quarter"`
	Goal    string     `json:"goal"`
	Status  PlanStatus `json:"status"`
	Notes   string     `json:"notes,omitempty"`
}

// Allocation is one slice of the asset allocation breakdown.
type Allocation struct {
	Type  AssetType `json:"type"`
	Value float64   `json:"value"`
}

// GroupAllocation is one slice of the risk-group breakdown.
type GroupAllocation struct {
	Group Group   `json:"group"`
	Value float64 `json:"value"`
}

// PortfolioSummary is derived from the current asset batch on every request.
// It is never persisted; snapshots go through the history store instead.
type PortfolioSummary struct {
	NetWorth              float64 `json:"net_worth"`
	TotalAssetsValue      float64 `json:"total_assets_value"`
	TotalLiabilitiesValue float64 `json:"total_liabilities_value"`
	TotalProfit           float64 `json:"total_profit"`
	ProfitPct             float64 `json:"profit_pct"`
	// TotalIncome is income realized this period (income-type assets),
	// not an annualized rate.
	TotalIncome                   float64           `json:"total_income"`
	ProjectedMonthlyPassiveIncome float64           `json:"projected_monthly_passive_income"`
	AssetAllocation               []Allocation      `json:"asset_allocation"`
	RiskGroups                    []GroupAllocation `json:"risk_groups"`
	TopPerformer                  *Asset            `json:"top_performer,omitempty"`
	WorstPerformer                *Asset            `json:"worst_performer,omitempty"`
}

// PortfolioHistoryItem is one persisted net-worth time-series point.
// The history store keeps at most one item per UTC calendar day.
type PortfolioHistoryItem struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	NetWorth         float64   `json:"net_worth"`
	TotalAssets      float64   `json:"total_assets"`
	TotalLiabilities float64   `json:"total_liabilities"`
	TotalIncome      float64   `json:"total_income"`
}

// InvoiceStatus is the review state of an extracted invoice.
type InvoiceStatus string

const (
	InvoiceDraft    InvoiceStatus = "Draft"
	InvoiceReviewed InvoiceStatus = "Reviewed"
	InvoiceApproved InvoiceStatus = "Approved"
	InvoicePaid     InvoiceStatus = "Paid"
)

// LineItem is one service/product line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
	// Selected marks items matched by the configured keyword list.
	Selected bool `json:"selected"`
}

// Invoice is a structured record extracted from a scanned document.
type Invoice struct {
	ID            string        `json:"id"`
	VendorName    string        `json:"vendor_name"`
	InvoiceNumber string        `json:"invoice_number"`
	AccountNumber string        `json:"account_number,omitempty"`
	City          string        `json:"city,omitempty"`
	Date          string        `json:"date"`
	DueDate       string        `json:"due_date"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	Category      string        `json:"category,omitempty"`
	LineItems     []LineItem    `json:"line_items"`
	Status        InvoiceStatus `json:"status"`
	SourceFile    string        `json:"source_file,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// InvoiceStats summarizes the invoice list for the dashboard.
type InvoiceStats struct {
	TotalInvoices int     `json:"total_invoices"`
	TotalSpend    float64 `json:"total_spend"`
	PendingReview int     `json:"pending_review"`
	Paid          int     `json:"paid"`
}

// Settings holds the invoice tool configuration. The Gemini API key is
// stored encrypted alongside and never returned in responses.
type Settings struct {
	Keywords []string `json:"keywords"`
}
