package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// sampleSheet is one sheet of the onboarding template.
type sampleSheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// sampleSheets is the canonical multi-sheet example used for onboarding.
// It exercises every classification path: quantity/price holdings, direct
// income amounts, yield fields, liabilities, and a plan sheet.
var sampleSheets = []sampleSheet{
	{
		name:   "Crypto Assets",
		header: []interface{}{"Symbol", "Name", "Quantity", "PurchasePrice", "CurrentPrice"},
		rows: [][]interface{}{
			{"BTC", "Bitcoin", 0.5, 45000, 65000},
			{"ETH", "Ethereum", 5, 2500, 3500},
			{"SOL", "Solana", 100, 80, 140},
		},
	},
	{
		name:   "Stocks",
		header: []interface{}{"Symbol", "Name", "Type", "Quantity", "PurchasePrice", "CurrentPrice", "Dividend Yield"},
		rows: [][]interface{}{
			{"AAPL", "Apple Inc.", "Stock", 50, 150, 180, nil},
			{"VOO", "Vanguard S&P 500", "ETF", 20, 380, 450, nil},
			{"KO", "Coca-Cola", "Stock", 100, 55, 60, 3.1},
		},
	},
	{
		name:   "Real Estate",
		header: []interface{}{"Symbol", "Name", "Type", "Quantity", "PurchasePrice", "CurrentPrice", "Monthly Income"},
		rows: [][]interface{}{
			{"HOME", "Primary Residence", "Real Estate", 1, 400000, 550000, nil},
			{"APT-1", "Rental Apartment", "Real Estate", 1, 200000, 250000, 1500},
		},
	},
	{
		name:   "Bonds and Deposits",
		header: []interface{}{"Symbol", "Name", "Type", "Quantity", "PurchasePrice", "CurrentPrice", "Coupon", "APY"},
		rows: [][]interface{}{
			{"US-10Y", "US Treasury Bond", "Bond", 100, 95, 98, 4.5, nil},
			{"HYSA", "High Yield Savings", "Deposit", 1, 20000, 20000, nil, 5.0},
		},
	},
	{
		name:   "Metals",
		header: []interface{}{"Symbol", "Name", "Quantity", "PurchasePrice", "CurrentPrice"},
		rows: [][]interface{}{
			{"GOLD", "Gold Bar 1oz", 5, 1800, 2100},
			{"SILVER", "Silver Coin", 50, 22, 26},
		},
	},
	{
		name:   "Income Sources",
		header: []interface{}{"Symbol", "Name", "Type", "Amount", "Monthly Income"},
		rows: [][]interface{}{
			{"JOB", "Tech Salary", "Salary", 5000, 5000},
			{"BOOK", "Kindle Book Royalties", "Royalty", 300, 300},
			{"CONSULT", "Consulting Business", "Business", 2000, 2000},
		},
	},
	{
		name:   "Investment profit loss",
		header: []interface{}{"Symbol", "Name", "Amount"},
		rows: [][]interface{}{
			{"SPY-SWING", "S&P Swing Profit Sep", 1200},
			{"CRYPTO-DAY", "Crypto Day Trading", -400},
		},
	},
	{
		name:   "Liabilities",
		header: []interface{}{"Symbol", "Name", "Quantity", "PurchasePrice", "CurrentPrice"},
		rows: [][]interface{}{
			{"MORTGAGE", "Home Loan", 1, 350000, 320000},
			{"VISA", "Credit Card Debt", 1, 2500, 2500},
		},
	},
	{
		name:   "Future Plans",
		header: []interface{}{"Quarter", "Goal", "Status"},
		rows: [][]interface{}{
			{"Q4 2025", "Reach $10k monthly passive income", "In Progress"},
			{"Q1 2026", "Buy 5 more oz of Gold", "Pending"},
		},
	},
}

// WriteSampleTemplate writes the onboarding workbook as .xlsx.
func WriteSampleTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sampleSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("renaming first sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.name, err)
			}
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return fmt.Errorf("writing header of %s: %w", sheet.name, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("writing row %d of %s: %w", r+2, sheet.name, err)
			}
		}
	}

	return f.Write(w)
}
