package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcheckin/internal/domain"
)

func TestEventService_Create(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewEventService(repo, &mockParticipantRepo{})

	date := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	event, err := svc.Create(context.Background(), "Annual Gathering", date, "Main Hall", "sheet-123", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventDraft, event.Status)
	assert.Equal(t, "sheet-123", event.SheetID)
	assert.Equal(t, "admin-1", event.CreatedBy)
	assert.False(t, event.CreatedAt.IsZero())

	_, err = svc.Create(context.Background(), "  ", date, "", "", "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "No date", time.Time{}, "", "", "admin-1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_UpdateStatus(t *testing.T) {
	repo := &mockEventRepo{events: map[string]*domain.Event{
		"event-1": {ID: "event-1", Status: domain.EventDraft},
	}}
	svc := NewEventService(repo, &mockParticipantRepo{})

	event, err := svc.UpdateStatus(context.Background(), "event-1", domain.EventActive)
	require.NoError(t, err)
	assert.Equal(t, domain.EventActive, event.Status)

	_, err = svc.UpdateStatus(context.Background(), "event-1", domain.EventStatus("archived"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), "missing", domain.EventActive)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_Stats(t *testing.T) {
	tests := []struct {
		name   string
		counts map[domain.CheckInStatus]int
		want   domain.EventStats
	}{
		{
			name:   "mixed statuses",
			counts: map[domain.CheckInStatus]int{domain.StatusCheckedIn: 7, domain.StatusPending: 2, domain.StatusNoShow: 1},
			want:   domain.EventStats{Total: 10, CheckedIn: 7, Pending: 2, NoShow: 1},
		},
		{
			name:   "no-show derived from the remainder",
			counts: map[domain.CheckInStatus]int{domain.StatusCheckedIn: 3, domain.StatusPending: 5},
			want:   domain.EventStats{Total: 8, CheckedIn: 3, Pending: 5, NoShow: 0},
		},
		{
			name:   "empty event",
			counts: map[domain.CheckInStatus]int{},
			want:   domain.EventStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(activeEventRepo(), &mockParticipantRepo{counts: tt.counts})

			stats, err := svc.Stats(context.Background(), "event-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, *stats)
			assert.Equal(t, stats.Total, stats.CheckedIn+stats.Pending+stats.NoShow)
		})
	}

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEventService(&mockEventRepo{events: map[string]*domain.Event{}}, &mockParticipantRepo{})
		_, err := svc.Stats(context.Background(), "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
