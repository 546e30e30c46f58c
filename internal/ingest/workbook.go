// Package ingest turns spreadsheet workbooks into typed assets and plans.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "wealthfolio/internal/errors"
)

// Row is one spreadsheet row as a mapping from column header to raw cell
// text. Column names are not fixed; each logical field is resolved through
// an ordered alias list. Blank cells are omitted.
type Row map[string]string

// Sheet is a named sheet with its data rows. The first workbook row is the
// header and is not included.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is the parsed form of an uploaded file.
type Workbook struct {
	Sheets []Sheet
}

// ReadWorkbook parses an uploaded file based on its extension.
// .xlsx and .xls go through the Excel reader, .csv becomes a single sheet
// named after the file. Any other extension or unparsable content is an
// input-format error; there are no partial results.
func ReadWorkbook(r io.Reader, filename string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return readExcel(r)
	case ".csv":
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return readCSV(r, base)
	default:
		return nil, apperrors.New(apperrors.ErrInputFormat, "unsupported file extension")
	}
}

func readExcel(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputFormat, "parsing workbook", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		cells, err := f.GetRows(name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInputFormat, "reading sheet "+name, err)
		}
		wb.Sheets = append(wb.Sheets, buildSheet(name, cells))
	}
	return wb, nil
}

func readCSV(r io.Reader, sheetName string) (*Workbook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInputFormat, "parsing csv", err)
	}
	return &Workbook{Sheets: []Sheet{buildSheet(sheetName, records)}}, nil
}

// buildSheet maps raw cell rows onto the header row. Rows with no non-empty
// cells are skipped.
func buildSheet(name string, cells [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(cells) == 0 {
		return sheet
	}

	header := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		header[i] = strings.TrimSpace(h)
	}

	for _, record := range cells[1:] {
		row := Row{}
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// first returns the value of the first present alias.
func (r Row) first(aliases ...string) (string, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}
