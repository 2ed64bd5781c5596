package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventcheckin/internal/domain"
	"eventcheckin/internal/qrcode"
)

// Operator-facing messages for check-in outcomes.
const (
	msgCheckInSuccess   = "Check-in successful"
	msgInvalidCode      = "Invalid QR code"
	msgAlreadyCheckedIn = "Already checked in, a second check-in is not possible"
	msgUpdateFailed     = "Failed to update check-in status"
	msgNotFound         = "Participant not found"
)

type checkInService struct {
	participantRepo domain.ParticipantRepository
	eventRepo       domain.EventRepository
	audit           domain.AuditRecorder
	decoder         *qrcode.Decoder
	appender        domain.SheetAppender // optional; nil disables sheet export
	logger          *slog.Logger
	now             func() time.Time
}

// NewCheckInService creates the check-in engine. The decoder gates scanned
// payloads (format, scheme, optional max age); appender may be nil when
// check-ins are not exported to a spreadsheet.
func NewCheckInService(
	participantRepo domain.ParticipantRepository,
	eventRepo domain.EventRepository,
	audit domain.AuditRecorder,
	decoder *qrcode.Decoder,
	appender domain.SheetAppender,
	logger *slog.Logger,
) domain.CheckInService {
	return &checkInService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		audit:           audit,
		decoder:         decoder,
		appender:        appender,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *checkInService) Scan(ctx context.Context, code, eventID, actorID string) (*domain.CheckInResult, error) {
	code = strings.TrimSpace(code)
	if code == "" || eventID == "" {
		return nil, fmt.Errorf("%w: code and event id are required", domain.ErrInvalidInput)
	}

	if err := s.requireActiveEvent(ctx, eventID); err != nil {
		return nil, err
	}

	// A payload that fails decoding can never match a stored participant, so
	// it is rejected before touching the store. No audit entry is written:
	// there is no participant id to attach.
	if _, err := s.decoder.Decode(code); err != nil {
		return &domain.CheckInResult{Outcome: domain.OutcomeInvalidCode, Message: msgInvalidCode}, nil
	}

	// Lookup matches the entire stored payload string within the event.
	p, err := s.participantRepo.GetByPayload(ctx, eventID, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.CheckInResult{Outcome: domain.OutcomeInvalidCode, Message: msgInvalidCode}, nil
		}
		return nil, fmt.Errorf("get participant by payload: %w", err)
	}

	if p.CheckInStatus == domain.StatusCheckedIn {
		s.audit.Record(ctx, eventID, &p.ID, domain.AuditDuplicateCheckIn, domain.AuditFailed, map[string]any{
			"message": "participant already checked in",
		})
		return &domain.CheckInResult{
			Outcome:     domain.OutcomeAlreadyCheckedIn,
			Message:     msgAlreadyCheckedIn,
			Participant: summarize(p),
		}, nil
	}

	return s.transition(ctx, p, eventID, actorID, false)
}

func (s *checkInService) ManualCheckIn(ctx context.Context, participantID, eventID, actorID string) (*domain.CheckInResult, error) {
	if participantID == "" || eventID == "" {
		return nil, fmt.Errorf("%w: participant id and event id are required", domain.ErrInvalidInput)
	}

	if err := s.requireActiveEvent(ctx, eventID); err != nil {
		return nil, err
	}

	p, err := s.participantRepo.GetByID(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// No audit entry: only attempts against a resolvable participant are logged.
			return &domain.CheckInResult{Outcome: domain.OutcomeNotFound, Message: msgNotFound}, nil
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	if p.CheckInStatus == domain.StatusCheckedIn {
		s.audit.Record(ctx, eventID, &p.ID, domain.AuditManualCheckIn, domain.AuditFailed, map[string]any{
			"message": "participant already checked in",
		})
		return &domain.CheckInResult{
			Outcome:     domain.OutcomeAlreadyCheckedIn,
			Message:     msgAlreadyCheckedIn,
			Participant: summarize(p),
		}, nil
	}

	return s.transition(ctx, p, eventID, actorID, true)
}

// transition performs the single pending -> checked_in state change. The
// repository update is conditional on the row not already being checked_in,
// so two simultaneous attempts for the same participant can never both
// succeed: the loser observes ErrAlreadyCheckedIn.
func (s *checkInService) transition(ctx context.Context, p *domain.Participant, eventID, actorID string, manual bool) (*domain.CheckInResult, error) {
	action := domain.AuditCheckIn
	if manual {
		action = domain.AuditManualCheckIn
	}

	at := s.now()
	updated, err := s.participantRepo.MarkCheckedIn(ctx, eventID, p.ID, at, actorID, manual)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			// Lost the race against a concurrent check-in.
			s.audit.Record(ctx, eventID, &p.ID, domain.AuditDuplicateCheckIn, domain.AuditFailed, map[string]any{
				"message": "participant already checked in",
			})
			return &domain.CheckInResult{
				Outcome:     domain.OutcomeAlreadyCheckedIn,
				Message:     msgAlreadyCheckedIn,
				Participant: summarize(p),
			}, nil
		}
		s.audit.Record(ctx, eventID, &p.ID, action, domain.AuditFailed, map[string]any{
			"error": err.Error(),
		})
		// No retry here; the caller may re-invoke the whole operation.
		return &domain.CheckInResult{Outcome: domain.OutcomeUpdateFailed, Message: msgUpdateFailed}, nil
	}

	s.audit.Record(ctx, eventID, &updated.ID, action, domain.AuditSuccess, map[string]any{
		"check_in_time": at.UTC().Format(time.RFC3339),
		"performed_by":  actorID,
	})
	s.exportCheckIn(ctx, eventID, updated, at)

	return &domain.CheckInResult{
		Success:     true,
		Outcome:     domain.OutcomeSuccess,
		Message:     msgCheckInSuccess,
		Participant: summarize(updated),
	}, nil
}

func (s *checkInService) requireActiveEvent(ctx context.Context, eventID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.Status != domain.EventActive {
		return domain.ErrEventNotActive
	}
	return nil
}

// exportCheckIn appends the check-in to the event's spreadsheet best-effort,
// like the audit trail: a failure is logged and never surfaced to the caller.
func (s *checkInService) exportCheckIn(ctx context.Context, eventID string, p *domain.Participant, at time.Time) {
	if s.appender == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil || event.SheetID == "" {
		return
	}
	if err := s.appender.AppendCheckIn(ctx, event.SheetID, event.Name, p.Email, domain.StatusCheckedIn, at); err != nil {
		s.logger.WarnContext(ctx, "sheet append failed", "event_id", eventID, "participant_id", p.ID, "err", err)
	}
}

func summarize(p *domain.Participant) *domain.ParticipantSummary {
	return &domain.ParticipantSummary{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Unit:     p.Unit,
		Position: p.Position,
	}
}
