package services

import (
	"context"
	"log/slog"
	"time"

	"eventcheckin/internal/domain"
)

type auditRecorder struct {
	repo   domain.AuditRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditRecorder returns an AuditRecorder that appends entries through the
// given repository. Append failures are logged and swallowed: the audit trail
// must never block or roll back the check-in mutation it describes.
func NewAuditRecorder(repo domain.AuditRepository, logger *slog.Logger) domain.AuditRecorder {
	return &auditRecorder{repo: repo, logger: logger, now: time.Now}
}

func (r *auditRecorder) Record(ctx context.Context, eventID string, participantID *string, action domain.AuditAction, outcome domain.AuditOutcome, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	entry := &domain.AuditEntry{
		EventID:       eventID,
		ParticipantID: participantID,
		Action:        action,
		Outcome:       outcome,
		Details:       details,
		CreatedAt:     r.now(),
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "audit append failed",
			"event_id", eventID,
			"action", string(action),
			"outcome", string(outcome),
			"err", err,
		)
	}
}
