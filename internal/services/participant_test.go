package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcheckin/internal/domain"
	"eventcheckin/internal/qrcode"
)

type mockNotifier struct {
	recipients []domain.QRRecipient
	eventName  string
	summary    domain.SendSummary
}

func (m *mockNotifier) SendAll(ctx context.Context, recipients []domain.QRRecipient, eventName string) domain.SendSummary {
	m.recipients = recipients
	m.eventName = eventName
	m.summary = domain.SendSummary{Total: len(recipients), Successful: len(recipients)}
	return m.summary
}

func TestParticipantService_Create(t *testing.T) {
	repo := &mockParticipantRepo{}
	svc := NewParticipantService(activeEventRepo(), repo, &mockNotifier{})

	p, err := svc.Create(context.Background(), "event-1", domain.NewParticipantInput{
		Name:  "Alice",
		Email: " alice@example.com ",
		Unit:  "Ops",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.ID, p.ExternalID)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, domain.StatusPending, p.CheckInStatus)
	assert.True(t, strings.HasPrefix(p.QRCode, qrcode.SchemeV1+"|"+p.ID+"|"))

	_, err = svc.Create(context.Background(), "event-1", domain.NewParticipantInput{Name: "No Email"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "missing", domain.NewParticipantInput{Name: "Bob", Email: "bob@example.com"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantService_List(t *testing.T) {
	checked := pendingParticipant("p1")
	checked.CheckInStatus = domain.StatusCheckedIn
	repo := &mockParticipantRepo{participants: map[string]*domain.Participant{
		"p1": checked,
		"p2": pendingParticipant("p2"),
	}}
	svc := NewParticipantService(activeEventRepo(), repo, &mockNotifier{})

	all, err := svc.List(context.Background(), "event-1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := domain.StatusCheckedIn
	filtered, err := svc.List(context.Background(), "event-1", &status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)

	_, err = svc.List(context.Background(), "missing", nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantService_SendQRCodes(t *testing.T) {
	t.Run("sends to selected participants", func(t *testing.T) {
		repo := &mockParticipantRepo{participants: map[string]*domain.Participant{
			"p1": pendingParticipant("p1"),
			"p2": pendingParticipant("p2"),
			"p3": pendingParticipant("p3"),
		}}
		notifier := &mockNotifier{}
		svc := NewParticipantService(activeEventRepo(), repo, notifier)

		summary, err := svc.SendQRCodes(context.Background(), "event-1", []string{"p1", "p3"})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Total)
		assert.Len(t, notifier.recipients, 2)
		assert.Equal(t, "Annual Gathering", notifier.eventName)
	})

	t.Run("empty id list sends to everyone", func(t *testing.T) {
		repo := &mockParticipantRepo{participants: map[string]*domain.Participant{
			"p1": pendingParticipant("p1"),
			"p2": pendingParticipant("p2"),
		}}
		notifier := &mockNotifier{}
		svc := NewParticipantService(activeEventRepo(), repo, notifier)

		summary, err := svc.SendQRCodes(context.Background(), "event-1", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Total)
	})

	t.Run("no matching participants", func(t *testing.T) {
		svc := NewParticipantService(activeEventRepo(), &mockParticipantRepo{}, &mockNotifier{})
		_, err := svc.SendQRCodes(context.Background(), "event-1", []string{"ghost"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
