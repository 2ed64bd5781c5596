package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventcheckin/internal/domain"
	"eventcheckin/internal/qrcode"
)

type participantService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	notifier        domain.NotifierService
}

// NewParticipantService creates a ParticipantService with the given repositories and notifier.
func NewParticipantService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	notifier domain.NotifierService,
) domain.ParticipantService {
	return &participantService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		notifier:        notifier,
	}
}

func (s *participantService) List(ctx context.Context, eventID string, status *domain.CheckInStatus) ([]*domain.Participant, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return participants, nil
}

func (s *participantService) Create(ctx context.Context, eventID string, input domain.NewParticipantInput) (*domain.Participant, error) {
	input.Email = strings.TrimSpace(input.Email)
	if strings.TrimSpace(input.Name) == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	id := uuid.NewString()
	externalID := input.ExternalID
	if externalID == "" {
		externalID = id
	}
	p := &domain.Participant{
		ID:            id,
		EventID:       eventID,
		ExternalID:    externalID,
		Name:          input.Name,
		Email:         input.Email,
		Unit:          input.Unit,
		Position:      input.Position,
		// The payload is bound to the participant here, once; it is never rotated.
		QRCode:        qrcode.Encode(id, now),
		CheckInStatus: domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *participantService) SendQRCodes(ctx context.Context, eventID string, participantIDs []string) (*domain.SendSummary, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var participants []*domain.Participant
	if len(participantIDs) > 0 {
		participants, err = s.participantRepo.ListByIDs(ctx, eventID, participantIDs)
	} else {
		participants, err = s.participantRepo.ListByEventID(ctx, eventID, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no participants to notify", domain.ErrNotFound)
	}

	recipients := make([]domain.QRRecipient, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, domain.QRRecipient{
			ParticipantID: p.ID,
			Name:          p.Name,
			Email:         p.Email,
			QRCode:        p.QRCode,
		})
	}
	summary := s.notifier.SendAll(ctx, recipients, event.Name)
	return &summary, nil
}
