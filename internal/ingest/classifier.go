package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"wealthfolio/internal/models"
)

// Field aliases, first present alias wins. Schemas of exported sheets vary
// wildly, so every numeric field is resolved through a list.
var (
	quantityAliases      = []string{"Quantity", "qty"}
	purchaseAliases      = []string{"PurchasePrice", "Purchase Price", "cost"}
	currentAliases       = []string{"CurrentPrice", "Current Price", "price"}
	directAmountAliases  = []string{"Amount", "Profit", "Income", "Value", "Revenue"}
	monthlyIncomeAliases = []string{"Monthly Income", "Monthly Cashflow"}
	monthlyPctAliases    = []string{"Monthly %", "Monthly Percentage"}
	annualPctAliases     = []string{"APY", "Yield", "Coupon", "Annual %", "Dividend Yield"}
	symbolAliases        = []string{"Symbol", "Ticker"}
	nameAliases          = []string{"Name", "Asset"}
)

// typeRules are evaluated in order against the row's Type field (or the
// sheet name when no Type is given); the first match wins.
var typeRules = []struct {
	assetType models.AssetType
	pattern   *regexp.Regexp
}{
	{models.TypeEquity, regexp.MustCompile(`(?i)stock|equity|share|portfolio`)},
	{models.TypeCrypto, regexp.MustCompile(`(?i)crypto|bitcoin|btc|eth|coin|token`)},
	{models.TypeFund, regexp.MustCompile(`(?i)etf|fund`)},
	{models.TypeBond, regexp.MustCompile(`(?i)bond|debt|treasury`)},
	{models.TypeMetal, regexp.MustCompile(`(?i)metal|gold|silver|platinum|bullion`)},
	{models.TypeRoyalty, regexp.MustCompile(`(?i)royalty|royalties|book|publish|author|copyright|course`)},
	{models.TypeSalary, regexp.MustCompile(`(?i)salary|wage|paycheck|employment|job`)},
	{models.TypeBusiness, regexp.MustCompile(`(?i)business|startup|company|venture|llc|inc`)},
	{models.TypeRental, regexp.MustCompile(`(?i)rent|lease|airbnb|tenant`)},
	{models.TypeTrading, regexp.MustCompile(`(?i)trading|derivative|option|future|day trade|swing|profit|loss|pnl`)},
	{models.TypeDividend, regexp.MustCompile(`(?i)dividend|coupon|yield`)},
	{models.TypeDeposit, regexp.MustCompile(`(?i)deposit|bank|cd|certificate|saving`)},
	{models.TypeCash, regexp.MustCompile(`(?i)cash|fiat|usd|eur|gbp|currency|money|wallet`)},
	{models.TypeLiability, regexp.MustCompile(`(?i)liability|loan|mortgage|debt|credit|borrow`)},
	{models.TypeRealEstate, regexp.MustCompile(`(?i)real estate|property|house|land`)},
}

// liabilityRe forces the liability category for rows whose name or symbol
// looks like debt, but only when the row gave no explicit Type.
var liabilityRe = regexp.MustCompile(`(?i)mortgage|loan|debt|credit\s?card|liability`)

var sheetIDRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ClassifyRow maps one loosely-typed spreadsheet row plus its sheet name to
// a typed asset record. It never fails: absent or malformed numeric fields
// default to 0, and the resulting zero-value assets are dropped later by
// the ingestor.
func ClassifyRow(row Row, sheetName string, index int, batchToken string) models.Asset {
	quantity := numberField(row, quantityAliases...)
	purchasePrice := numberField(row, purchaseAliases...)
	currentPrice := numberField(row, currentAliases...)

	totalValue := quantity * currentPrice
	totalCost := quantity * purchasePrice

	// Income-style rows (royalties, salaries, trading P/L) carry a direct
	// amount instead of quantity and price.
	if totalValue == 0 {
		if direct := numberField(row, directAmountAliases...); direct != 0 {
			totalValue = direct
			totalCost = purchasePrice
			if quantity == 0 {
				quantity = 1
			}
			if currentPrice == 0 {
				currentPrice = totalValue
			}
		}
	}

	projectedMonthlyIncome, incomeYield := incomeRate(row, totalValue)

	profit := totalValue - totalCost
	profitPct := 0.0
	if totalCost != 0 {
		profitPct = profit / totalCost * 100
	}

	symbol, ok := row.first(symbolAliases...)
	if !ok {
		symbol = "INC"
	}
	name, ok := row.first(nameAliases...)
	if !ok {
		name = "Unknown Asset"
	}

	typeValue, hasType := row.first("Type")
	source := sheetName
	if hasType {
		source = typeValue
	}
	assetType := classifyType(strings.TrimSpace(source))

	if !hasType {
		if liabilityRe.MatchString(name + " " + symbol) {
			assetType = models.TypeLiability
		}
	}

	sheetID := sheetIDRe.ReplaceAllString(sheetName, "")

	return models.Asset{
		ID:                     fmt.Sprintf("asset-%s-%d-%s", sheetID, index, batchToken),
		Symbol:                 strings.ToUpper(symbol),
		Name:                   name,
		Type:                   assetType,
		Quantity:               quantity,
		PurchasePrice:          purchasePrice,
		CurrentPrice:           currentPrice,
		TotalValue:             totalValue,
		TotalCost:              totalCost,
		Profit:                 profit,
		ProfitPct:              profitPct,
		IncomeYield:            incomeYield,
		ProjectedMonthlyIncome: projectedMonthlyIncome,
	}
}

// incomeRate derives the projected monthly income and annualized yield.
// The rules form a strict priority: an explicit monthly amount beats a
// monthly percentage, which beats an annual yield. Once a rule matches,
// later rules are not evaluated.
func incomeRate(row Row, totalValue float64) (monthly, yield float64) {
	if v, ok := parsedField(row, monthlyIncomeAliases...); ok {
		monthly = v
		if totalValue > 0 {
			yield = monthly * 12 / totalValue * 100
		}
		return monthly, yield
	}

	if pct, ok := percentField(row, monthlyPctAliases...); ok {
		monthly = totalValue * pct / 100
		yield = pct * 12
		return monthly, yield
	}

	if pct, ok := percentField(row, annualPctAliases...); ok {
		yield = pct
		monthly = totalValue * pct / 100 / 12
		return monthly, yield
	}

	return 0, 0
}

// classifyType assigns the category by testing the ordered keyword rules.
func classifyType(source string) models.AssetType {
	for _, rule := range typeRules {
		if rule.pattern.MatchString(source) {
			return rule.assetType
		}
	}
	return models.TypeOther
}

// numberField resolves a numeric field through its aliases, defaulting to 0.
func numberField(row Row, aliases ...string) float64 {
	v, ok := row.first(aliases...)
	if !ok {
		return 0
	}
	n, err := parseNumber(v)
	if err != nil {
		return 0
	}
	return n
}

// parsedField is like numberField but reports whether a usable non-zero
// value was present, for the income-rule priority checks. A cell holding 0
// counts as absent so later rules still get evaluated.
func parsedField(row Row, aliases ...string) (float64, bool) {
	v, ok := row.first(aliases...)
	if !ok {
		return 0, false
	}
	n, err := parseNumber(v)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// percentField parses a percent cell, stripping a trailing "%". Values with
// magnitude below 1 are treated as pre-normalized fractions (0.05 means 5%)
// and scaled up. An unparsable cell is treated as absent.
func percentField(row Row, aliases ...string) (float64, bool) {
	v, ok := row.first(aliases...)
	if !ok {
		return 0, false
	}
	pct, err := parseNumber(strings.TrimSuffix(strings.TrimSpace(v), "%"))
	if err != nil {
		return 0, false
	}
	if pct != 0 && math.Abs(pct) < 1 {
		pct *= 100
	}
	return pct, true
}

// parseNumber parses a cell as a float, tolerating thousands separators and
// a leading currency marker.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
