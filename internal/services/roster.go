package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventcheckin/internal/domain"
	"eventcheckin/internal/qrcode"
)

type rosterService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	source          domain.RosterSource
	logger          *slog.Logger
}

// NewRosterService creates a RosterService that imports participant rows from
// the event's configured spreadsheet.
func NewRosterService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	source domain.RosterSource,
	logger *slog.Logger,
) domain.RosterService {
	return &rosterService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		source:          source,
		logger:          logger,
	}
}

func (s *rosterService) Sync(ctx context.Context, eventID string) (*domain.RosterSyncResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.SheetID == "" {
		return nil, fmt.Errorf("%w: event has no roster sheet configured", domain.ErrInvalidInput)
	}

	rows, err := s.source.FetchRows(ctx, event.SheetID)
	if err != nil {
		return nil, fmt.Errorf("fetch roster rows: %w", err)
	}

	result := &domain.RosterSyncResult{}
	for _, row := range rows {
		if row.ExternalID == "" || strings.TrimSpace(row.Email) == "" {
			result.Skipped++
			continue
		}
		if _, err := s.participantRepo.GetByExternalID(ctx, eventID, row.ExternalID); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("check existing participant: %w", err)
		}

		now := time.Now()
		id := uuid.NewString()
		p := &domain.Participant{
			ID:            id,
			EventID:       eventID,
			ExternalID:    row.ExternalID,
			Name:          row.Name,
			Email:         strings.TrimSpace(row.Email),
			Unit:          row.Unit,
			Position:      row.Position,
			QRCode:        qrcode.Encode(id, now),
			CheckInStatus: domain.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.participantRepo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create participant %s: %w", row.ExternalID, err)
		}
		result.Imported++
	}

	s.logger.InfoContext(ctx, "roster synced",
		"event_id", eventID,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
