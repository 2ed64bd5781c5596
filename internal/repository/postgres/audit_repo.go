package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventcheckin/internal/domain"
)

type auditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) domain.AuditRepository {
	return &auditRepository{DB: db}
}

// Append inserts one immutable entry. There is no update or delete path for
// audit rows anywhere in the repository.
func (r *auditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	query := `
		INSERT INTO audit_logs (event_id, participant_id, action, outcome, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		entry.EventID, entry.ParticipantID, string(entry.Action), string(entry.Outcome), details, entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *auditRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, event_id, participant_id, action, outcome, details, created_at
		FROM audit_logs
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		e := &domain.AuditEntry{}
		var participantID sql.NullString
		var action, outcome string
		var details []byte
		if err := rows.Scan(&e.ID, &e.EventID, &participantID, &action, &outcome, &details, &e.CreatedAt); err != nil {
			return nil, err
		}
		if participantID.Valid {
			e.ParticipantID = &participantID.String
		}
		e.Action = domain.AuditAction(action)
		e.Outcome = domain.AuditOutcome(outcome)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
