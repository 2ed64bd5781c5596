package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"eventcheckin/internal/domain"
)

type notifierService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	qr       domain.QRImageEncoder
	logger   *slog.Logger
}

// NewNotifierService returns a NotifierService that renders each recipient's
// QR payload into a PNG data URL, fills the qr_code email template, and sends
// one message per recipient.
func NewNotifierService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, qr domain.QRImageEncoder, logger *slog.Logger) domain.NotifierService {
	return &notifierService{mailer: mailer, renderer: renderer, qr: qr, logger: logger}
}

// SendAll attempts every recipient independently and reports exact counts:
// Total == Successful + Failed. Recipients are sent concurrently, so delivery
// order is unspecified. There is no dedupe ledger; callers that care about
// resend avoidance should restrict the input list themselves.
func (s *notifierService) SendAll(ctx context.Context, recipients []domain.QRRecipient, eventName string) domain.SendSummary {
	summary := domain.SendSummary{Total: len(recipients)}
	if len(recipients) == 0 {
		return summary
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, r := range recipients {
		wg.Add(1)
		go func(r domain.QRRecipient) {
			defer wg.Done()
			err := s.sendOne(ctx, r, eventName)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				s.logger.WarnContext(ctx, "qr email failed", "participant_id", r.ParticipantID, "err", err)
				return
			}
			summary.Successful++
		}(r)
	}
	wg.Wait()
	return summary
}

func (s *notifierService) sendOne(ctx context.Context, r domain.QRRecipient, eventName string) error {
	if r.Email == "" {
		return fmt.Errorf("recipient %s has no email address", r.ParticipantID)
	}
	imageURL, err := s.qr.DataURL(r.QRCode)
	if err != nil {
		return fmt.Errorf("render qr image: %w", err)
	}
	subject, htmlBody, textBody, err := s.renderer.Render("qr_code", &domain.QRCodeEmailData{
		Name:      r.Name,
		EventName: eventName,
		QRImage:   imageURL,
	})
	if err != nil {
		return fmt.Errorf("render qr_code template: %w", err)
	}
	if err := s.mailer.Send(r.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send qr email: %w", err)
	}
	return nil
}
