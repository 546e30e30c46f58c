package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	apperrors "wealthfolio/internal/errors"
	"wealthfolio/internal/models"
)

func TestReadWorkbookRejectsUnknownExtension(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("data"), "portfolio.pdf")
	if !errors.Is(err, apperrors.ErrInputFormat) {
		t.Errorf("error = %v, want ErrInputFormat", err)
	}
}

func TestReadWorkbookCSV(t *testing.T) {
	csvData := "Symbol,Name,Quantity,PurchasePrice,CurrentPrice\n" +
		"BTC,Bitcoin,0.5,45000,65000\n" +
		",,,,\n" +
		"ETH,Ethereum,5,2500,3500\n"

	wb, err := ReadWorkbook(strings.NewReader(csvData), "holdings.csv")
	if err != nil {
		t.Fatalf("ReadWorkbook() error = %v", err)
	}

	if len(wb.Sheets) != 1 {
		t.Fatalf("got %d sheets, want 1", len(wb.Sheets))
	}
	sheet := wb.Sheets[0]
	if sheet.Name != "holdings" {
		t.Errorf("sheet name = %q, want file base name", sheet.Name)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row skipped)", len(sheet.Rows))
	}
	if sheet.Rows[1]["Symbol"] != "ETH" {
		t.Errorf("row[1] Symbol = %q", sheet.Rows[1]["Symbol"])
	}
}

func TestReadWorkbookCorruptExcel(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("this is not a zip"), "broken.xlsx")
	if !errors.Is(err, apperrors.ErrInputFormat) {
		t.Errorf("error = %v, want ErrInputFormat", err)
	}
}

// The onboarding template must survive its own ingestion path: every sheet
// parses, every row classifies, and nothing is dropped.
func TestSampleTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSampleTemplate(&buf); err != nil {
		t.Fatalf("WriteSampleTemplate() error = %v", err)
	}

	wb, err := ReadWorkbook(bytes.NewReader(buf.Bytes()), "template.xlsx")
	if err != nil {
		t.Fatalf("ReadWorkbook() error = %v", err)
	}
	if len(wb.Sheets) != len(sampleSheets) {
		t.Fatalf("got %d sheets, want %d", len(wb.Sheets), len(sampleSheets))
	}

	assets, plans := Ingest(wb)

	if len(assets) != 19 {
		t.Errorf("got %d assets, want 19", len(assets))
	}
	if len(plans) != 2 {
		t.Errorf("got %d plans, want 2", len(plans))
	}

	bySymbol := make(map[string]models.Asset)
	for _, a := range assets {
		bySymbol[a.Symbol] = a
	}

	btc, ok := bySymbol["BTC"]
	if !ok {
		t.Fatal("BTC missing from template ingestion")
	}
	if btc.Type != models.TypeCrypto || btc.TotalValue != 32500 {
		t.Errorf("BTC = %+v", btc)
	}

	if mortgage, ok := bySymbol["MORTGAGE"]; !ok || mortgage.Type != models.TypeLiability {
		t.Errorf("MORTGAGE = %+v, want Liability", mortgage)
	}
	if job, ok := bySymbol["JOB"]; !ok || !models.IsIncomeType(job.Type) {
		t.Errorf("JOB = %+v, want income type", job)
	}
	if apt, ok := bySymbol["APT-1"]; !ok || apt.ProjectedMonthlyIncome != 1500 {
		t.Errorf("APT-1 = %+v, want 1500 monthly income", apt)
	}
}
