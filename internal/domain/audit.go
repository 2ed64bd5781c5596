package domain

import (
	"context"
	"time"
)

// AuditAction identifies the kind of check-in attempt an audit entry records.
type AuditAction string

const (
	AuditCheckIn          AuditAction = "checkin"
	AuditManualCheckIn    AuditAction = "manual_checkin"
	AuditDuplicateCheckIn AuditAction = "duplicate_checkin"
)

// AuditOutcome is the recorded result of an audited attempt.
type AuditOutcome string

const (
	AuditSuccess AuditOutcome = "success"
	AuditFailed  AuditOutcome = "failed"
)

// AuditEntry is an immutable, append-only record of a check-in attempt.
// ParticipantID is nil when the attempt never resolved a participant.
// Entries are created once and never mutated or deleted; they are the durable
// record of what happened, independent of the mutable participant status.
// swagger:model AuditEntry
type AuditEntry struct {
	ID            string         `json:"id"`
	EventID       string         `json:"event_id"`
	ParticipantID *string        `json:"participant_id,omitempty"`
	Action        AuditAction    `json:"action"`
	Outcome       AuditOutcome   `json:"outcome"`
	Details       map[string]any `json:"details"`
	CreatedAt     time.Time      `json:"created_at"`
}

// AuditRepository defines append-only storage for audit entries.
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	ListByEventID(ctx context.Context, eventID string) ([]*AuditEntry, error)
}

// AuditRecorder appends audit entries best-effort: a failed append must never
// block or roll back the check-in that preceded it. Implementations log
// failures and return nothing to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, eventID string, participantID *string, action AuditAction, outcome AuditOutcome, details map[string]any)
}
