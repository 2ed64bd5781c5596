package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventcheckin/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, location, status, sheet_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Date, e.Location, string(e.Status), e.SheetID, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, date, location, status, sheet_id, created_by, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var status string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Date, &e.Location, &status, &e.SheetID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, date, location, status, sheet_id, created_by, created_at, updated_at
		FROM events
		ORDER BY date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var status string
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Date, &e.Location, &status, &e.SheetID, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Status = domain.EventStatus(status)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	query := `
		UPDATE events
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
