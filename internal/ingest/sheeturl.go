package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	apperrors "wealthfolio/internal/errors"
)

// sheetIDPattern extracts the document id from a shared spreadsheet URL.
var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// SheetExportURL converts a shared Google Sheets URL into a direct
// export-as-xlsx download URL.
func SheetExportURL(raw string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", apperrors.New(apperrors.ErrValidation, "invalid sheet URL: could not find spreadsheet ID")
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=xlsx", m[1]), nil
}

// RemoteFetchError carries the direct-download fallback URL so the caller
// can complete the operation manually.
type RemoteFetchError struct {
	FallbackURL string
	Cause       error
}

func (e *RemoteFetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetching shared sheet: %v", e.Cause)
	}
	return "fetching shared sheet failed"
}

func (e *RemoteFetchError) Unwrap() error {
	return apperrors.ErrRemoteFetch
}

// SheetFetcher downloads shared spreadsheets. The zero value uses
// http.DefaultClient.
type SheetFetcher struct {
	Client *http.Client
}

// Fetch downloads the export URL and parses the result as a workbook.
// No retries: a failure is terminal and surfaces with the fallback URL.
func (f *SheetFetcher) Fetch(ctx context.Context, exportURL string) (*Workbook, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, &RemoteFetchError{FallbackURL: exportURL, Cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RemoteFetchError{FallbackURL: exportURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteFetchError{
			FallbackURL: exportURL,
			Cause:       fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteFetchError{FallbackURL: exportURL, Cause: err}
	}

	return ReadWorkbook(bytes.NewReader(data), "shared_sheet.xlsx")
}
