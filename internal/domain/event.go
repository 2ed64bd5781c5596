package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventActive    EventStatus = "active"
	EventClosed    EventStatus = "closed"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventActive, EventClosed:
		return true
	}
	return false
}

// Event represents an event participants check in to.
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Date      time.Time   `json:"date"`
	Location  string      `json:"location"`
	Status    EventStatus `json:"status"`
	// SheetID identifies the external spreadsheet the roster is synced from.
	// Empty when the roster is managed through the API only.
	SheetID   string    `json:"sheet_id,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event in draft status. ID is typically set by the repository on create.
func NewEvent(name string, date time.Time, location, sheetID, createdBy string, now time.Time) *Event {
	return &Event{
		Name:      name,
		Date:      date,
		Location:  location,
		Status:    EventDraft,
		SheetID:   sheetID,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EventStats is the attendance breakdown for an event. NoShow is derived at
// read time as Total - CheckedIn - Pending and is never stored.
// swagger:model EventStats
type EventStats struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checked_in"`
	Pending   int `json:"pending"`
	NoShow    int `json:"no_show"`
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) error
}

// EventService defines event management and reporting operations.
type EventService interface {
	Create(ctx context.Context, name string, date time.Time, location, sheetID, createdBy string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
	Stats(ctx context.Context, eventID string) (*EventStats, error)
}
