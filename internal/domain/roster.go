package domain

import (
	"context"
	"time"
)

// RosterRow is one participant row fetched from an external spreadsheet.
type RosterRow struct {
	ExternalID string
	Name       string
	Unit       string
	Position   string
	Email      string
}

// RosterSource fetches participant rows from an external spreadsheet.
type RosterSource interface {
	FetchRows(ctx context.Context, sheetID string) ([]RosterRow, error)
}

// SheetAppender appends a check-in record row to an external spreadsheet.
type SheetAppender interface {
	AppendCheckIn(ctx context.Context, sheetID, eventName, email string, status CheckInStatus, at time.Time) error
}

// RosterSyncResult reports the outcome of a roster sync.
// swagger:model RosterSyncResult
type RosterSyncResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// RosterService syncs an event's participant roster from its configured
// spreadsheet. Rows already present (matched by external id) are skipped;
// new participants get an app-minted id and a QR payload generated once at
// creation time.
type RosterService interface {
	Sync(ctx context.Context, eventID string) (*RosterSyncResult, error)
}
