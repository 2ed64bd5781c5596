package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventcheckin/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, participantRepo domain.ParticipantRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, participantRepo: participantRepo}
}

func (s *eventService) Create(ctx context.Context, name string, date time.Time, location, sheetID, createdBy string) (*domain.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := domain.NewEvent(name, date, location, sheetID, createdBy, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, status)
	}
	if err := s.eventRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return s.eventRepo.GetByID(ctx, id)
}

// Stats computes the attendance breakdown. No-show is purely derived: it is
// the remainder after checked-in and pending, so the identity
// checkedIn + pending + noShow == total holds at all times.
func (s *eventService) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	counts, err := s.participantRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	checkedIn := counts[domain.StatusCheckedIn]
	pending := counts[domain.StatusPending]
	return &domain.EventStats{
		Total:     total,
		CheckedIn: checkedIn,
		Pending:   pending,
		NoShow:    total - checkedIn - pending,
	}, nil
}
