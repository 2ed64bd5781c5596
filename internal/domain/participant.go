package domain

import (
	"context"
	"time"
)

// CheckInStatus is the check-in state of a participant.
type CheckInStatus string

const (
	StatusPending   CheckInStatus = "pending"
	StatusCheckedIn CheckInStatus = "checked_in"
	StatusNoShow    CheckInStatus = "no_show"
)

// Valid reports whether s is one of the known check-in statuses.
func (s CheckInStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCheckedIn, StatusNoShow:
		return true
	}
	return false
}

// Participant represents a person on an event's roster. QRCode holds the
// payload string embedded in the QR symbol mailed to the participant; it is
// generated once at creation time and never rotated. CheckInTime, CheckedInBy
// and ManualCheckIn are set exactly once, when the status transitions to
// checked_in.
// swagger:model Participant
type Participant struct {
	ID            string        `json:"id"`
	EventID       string        `json:"event_id"`
	ExternalID    string        `json:"external_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Unit          string        `json:"unit"`
	Position      string        `json:"position"`
	QRCode        string        `json:"qr_code"`
	CheckInStatus CheckInStatus `json:"check_in_status"`
	CheckInTime   *time.Time    `json:"check_in_time,omitempty"`
	CheckedInBy   *string       `json:"checked_in_by,omitempty"`
	ManualCheckIn bool          `json:"manual_checkin"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewParticipantInput holds the caller-supplied fields for adding one
// participant to an event's roster. The id and QR payload are minted by the
// service, never supplied.
type NewParticipantInput struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Unit       string `json:"unit"`
	Position   string `json:"position"`
}

// ParticipantService defines roster read/write operations and the bulk QR
// email trigger. SendQRCodes restricts the send to the given participant ids;
// an empty list means every participant on the event.
type ParticipantService interface {
	List(ctx context.Context, eventID string, status *CheckInStatus) ([]*Participant, error)
	Create(ctx context.Context, eventID string, input NewParticipantInput) (*Participant, error)
	SendQRCodes(ctx context.Context, eventID string, participantIDs []string) (*SendSummary, error)
}

// ParticipantRepository defines storage operations for participants.
//
// GetByPayload matches the entire stored payload string within the event;
// the schema enforces UNIQUE(event_id, qr_code), which is the invariant the
// check-in lookup relies on.
//
// MarkCheckedIn is the compare-and-swap that guards the pending -> checked_in
// transition: the update only applies while check_in_status is not already
// checked_in, and ErrAlreadyCheckedIn is returned when the predicate fails.
// It is the only operation permitted to mutate check-in state.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, eventID, id string) (*Participant, error)
	GetByPayload(ctx context.Context, eventID, payload string) (*Participant, error)
	GetByExternalID(ctx context.Context, eventID, externalID string) (*Participant, error)
	ListByEventID(ctx context.Context, eventID string, status *CheckInStatus) ([]*Participant, error)
	ListByIDs(ctx context.Context, eventID string, ids []string) ([]*Participant, error)
	CountByStatus(ctx context.Context, eventID string) (map[CheckInStatus]int, error)
	MarkCheckedIn(ctx context.Context, eventID, id string, at time.Time, actorID string, manual bool) (*Participant, error)
}
