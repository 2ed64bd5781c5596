package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventcheckin/internal/domain"
)

const participantColumns = `id, event_id, external_id, name, email, unit, position, qr_code,
		check_in_status, check_in_time, checked_in_by, manual_checkin, created_at, updated_at`

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (id, event_id, external_id, name, email, unit, position, qr_code, check_in_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.EventID, p.ExternalID, p.Name, p.Email, p.Unit, p.Position, p.QRCode,
		string(p.CheckInStatus), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, eventID, id string) (*domain.Participant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		WHERE id = $1 AND event_id = $2
	`, participantColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id, eventID))
}

func (r *participantRepository) GetByPayload(ctx context.Context, eventID, payload string) (*domain.Participant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		WHERE event_id = $1 AND qr_code = $2
	`, participantColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, payload))
}

func (r *participantRepository) GetByExternalID(ctx context.Context, eventID, externalID string) (*domain.Participant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		WHERE event_id = $1 AND external_id = $2
	`, participantColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, externalID))
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string, status *domain.CheckInStatus) ([]*domain.Participant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		WHERE event_id = $1
	`, participantColumns)
	args := []any{eventID}
	if status != nil {
		query += ` AND check_in_status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *participantRepository) ListByIDs(ctx context.Context, eventID string, ids []string) ([]*domain.Participant, error) {
	if len(ids) == 0 {
		return []*domain.Participant{}, nil
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM participants
		WHERE event_id = $1 AND id = ANY($2)
	`, participantColumns)
	rows, err := r.DB.QueryContext(ctx, query, eventID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *participantRepository) CountByStatus(ctx context.Context, eventID string) (map[domain.CheckInStatus]int, error) {
	query := `
		SELECT check_in_status, COUNT(*)
		FROM participants
		WHERE event_id = $1
		GROUP BY check_in_status
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.CheckInStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.CheckInStatus(status)] = n
	}
	return counts, rows.Err()
}

// MarkCheckedIn is the conditional update guarding the check-in transition.
// The predicate excludes rows already in checked_in, so of N concurrent
// attempts exactly one applies; the rest get ErrAlreadyCheckedIn. Callers
// read the row first, which is why a zero-row update is not reported as
// ErrNotFound.
func (r *participantRepository) MarkCheckedIn(ctx context.Context, eventID, id string, at time.Time, actorID string, manual bool) (*domain.Participant, error) {
	query := fmt.Sprintf(`
		UPDATE participants
		SET check_in_status = 'checked_in', check_in_time = $3, checked_in_by = $4, manual_checkin = $5, updated_at = $3
		WHERE id = $1 AND event_id = $2 AND check_in_status <> 'checked_in'
		RETURNING %s
	`, participantColumns)
	p, err := r.scanOne(r.DB.QueryRowContext(ctx, query, id, eventID, at, actorID, manual))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) scanOne(row *sql.Row) (*domain.Participant, error) {
	p := &domain.Participant{}
	var status string
	var checkInTime sql.NullTime
	var checkedInBy sql.NullString
	err := row.Scan(
		&p.ID, &p.EventID, &p.ExternalID, &p.Name, &p.Email, &p.Unit, &p.Position, &p.QRCode,
		&status, &checkInTime, &checkedInBy, &p.ManualCheckIn, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.CheckInStatus = domain.CheckInStatus(status)
	if checkInTime.Valid {
		p.CheckInTime = &checkInTime.Time
	}
	if checkedInBy.Valid {
		p.CheckedInBy = &checkedInBy.String
	}
	return p, nil
}

func (r *participantRepository) scanAll(rows *sql.Rows) ([]*domain.Participant, error) {
	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		var status string
		var checkInTime sql.NullTime
		var checkedInBy sql.NullString
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.ExternalID, &p.Name, &p.Email, &p.Unit, &p.Position, &p.QRCode,
			&status, &checkInTime, &checkedInBy, &p.ManualCheckIn, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.CheckInStatus = domain.CheckInStatus(status)
		if checkInTime.Valid {
			p.CheckInTime = &checkInTime.Time
		}
		if checkedInBy.Valid {
			p.CheckedInBy = &checkedInBy.String
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
