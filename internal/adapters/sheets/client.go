// Package sheets talks to the spreadsheet that backs an event's roster.
// Rows are read from the sheet's CSV export endpoint; check-in records are
// appended by posting to a small Apps Script web app bound to the sheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eventcheckin/internal/domain"
)

const exportURLFormat = "https://docs.google.com/spreadsheets/d/%s/export?format=csv"

type Client struct {
	httpClient *http.Client
	// webhookURL is the Apps Script endpoint used for appends; empty disables them.
	webhookURL string
}

// NewClient returns a RosterSource backed by the sheet CSV export endpoint.
// webhookURL may be empty when check-in rows are not exported back.
func NewClient(httpClient *http.Client, webhookURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, webhookURL: webhookURL}
}

var _ domain.RosterSource = (*Client)(nil)
var _ domain.SheetAppender = (*Client)(nil)

// FetchRows downloads and parses the roster sheet. Expected columns:
// id, name, unit, position, email. The first row is treated as a header.
func (c *Client) FetchRows(ctx context.Context, sheetID string) ([]domain.RosterRow, error) {
	url := fmt.Sprintf(exportURLFormat, sheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned status: %d", resp.StatusCode)
	}
	return parseRosterCSV(resp.Body)
}

func parseRosterCSV(r io.Reader) ([]domain.RosterRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet csv: %w", err)
	}

	rows := make([]domain.RosterRow, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		row := domain.RosterRow{ExternalID: field(rec, 0)}
		row.Name = field(rec, 1)
		row.Unit = field(rec, 2)
		row.Position = field(rec, 3)
		row.Email = field(rec, 4)
		rows = append(rows, row)
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// AppendCheckIn posts one check-in record to the configured webhook. It is a
// no-op when no webhook is configured.
func (c *Client) AppendCheckIn(ctx context.Context, sheetID, eventName, email string, status domain.CheckInStatus, at time.Time) error {
	if c.webhookURL == "" {
		return nil
	}
	body, err := json.Marshal(map[string]string{
		"sheet_id":   sheetID,
		"event_name": eventName,
		"email":      email,
		"status":     string(status),
		"timestamp":  at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal append payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post append: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sheet append returned status: %d", resp.StatusCode)
	}
	return nil
}
