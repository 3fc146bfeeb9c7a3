package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrSheetNotConfigured = errors.New("spreadsheet id is not configured")

// FetchError is a non-success response from the spreadsheet export.
type FetchError struct {
	Tab    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s tab: %d", e.Tab, e.Status)
}

// Source returns the raw CSV export of one spreadsheet tab.
type Source interface {
	FetchCSV(ctx context.Context, tab string) (string, error)
}

type SheetsConfig struct {
	BaseURL string
	SheetID string
	// Timeout bounds one export request; zero leaves the transport default.
	Timeout time.Duration
}

type SheetsSource struct {
	baseURL string
	sheetID string
	client  *http.Client
}

func NewSheetsSource(cfg SheetsConfig, client *http.Client) *SheetsSource {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &SheetsSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		sheetID: cfg.SheetID,
		client:  client,
	}
}

// ExportURL is the CSV export endpoint of a tab.
func (s *SheetsSource) ExportURL(tab string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		s.baseURL, url.PathEscape(s.sheetID), url.QueryEscape(tab))
}

func (s *SheetsSource) FetchCSV(ctx context.Context, tab string) (string, error) {
	if s.sheetID == "" {
		return "", ErrSheetNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ExportURL(tab), nil)
	if err != nil {
		return "", fmt.Errorf("build export request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s tab: %w", tab, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{Tab: tab, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s tab: %w", tab, err)
	}
	return string(body), nil
}
