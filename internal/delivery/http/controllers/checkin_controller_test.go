package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcheckin/internal/delivery/http/middleware"
	"eventcheckin/internal/domain"
)

// fakeCheckInService implements domain.CheckInService for handler tests.
type fakeCheckInService struct {
	result      *domain.CheckInResult
	err         error
	lastCode    string
	lastEventID string
	lastActorID string
}

func (f *fakeCheckInService) Scan(ctx context.Context, code, eventID, actorID string) (*domain.CheckInResult, error) {
	f.lastCode = code
	f.lastEventID = eventID
	f.lastActorID = actorID
	return f.result, f.err
}

func (f *fakeCheckInService) ManualCheckIn(ctx context.Context, participantID, eventID, actorID string) (*domain.CheckInResult, error) {
	f.lastCode = participantID
	f.lastEventID = eventID
	f.lastActorID = actorID
	return f.result, f.err
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.SetIdentity(req.Context(), "staff-1", []string{domain.RoleCheckInStaff}))
}

func TestCheckInController_Scan(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		authed      bool
		result      *domain.CheckInResult
		err         error
		wantStatus  int
		wantOutcome domain.Outcome
		wantErrCode string
	}{
		{
			name:   "success",
			body:   `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"ev-1"}`,
			authed: true,
			result: &domain.CheckInResult{
				Success: true,
				Outcome: domain.OutcomeSuccess,
				Message: "Check-in successful",
				Participant: &domain.ParticipantSummary{
					ID: "p1", Name: "Alice", Email: "alice@example.com",
				},
			},
			wantStatus:  http.StatusOK,
			wantOutcome: domain.OutcomeSuccess,
		},
		{
			name:   "duplicate returns 400 with the result",
			body:   `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"ev-1"}`,
			authed: true,
			result: &domain.CheckInResult{
				Outcome: domain.OutcomeAlreadyCheckedIn,
				Message: "Already checked in, a second check-in is not possible",
			},
			wantStatus:  http.StatusBadRequest,
			wantOutcome: domain.OutcomeAlreadyCheckedIn,
		},
		{
			name:        "missing fields",
			body:        `{"code":""}`,
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "bad_request",
		},
		{
			name:        "no identity",
			body:        `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"ev-1"}`,
			authed:      false,
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: "unauthorized",
		},
		{
			name:        "unknown event",
			body:        `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"missing"}`,
			authed:      true,
			err:         domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: "not_found",
		},
		{
			name:        "inactive event",
			body:        `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"ev-1"}`,
			authed:      true,
			err:         domain.ErrEventNotActive,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "bad_request",
		},
		{
			name:        "service failure",
			body:        `{"code":"CHECKIN_v1|p1|1700000000000","event_id":"ev-1"}`,
			authed:      true,
			err:         errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCheckInService{result: tt.result, err: tt.err}
			ctrl := NewCheckInController(newTestLogger(), fake)

			var req *http.Request
			if tt.authed {
				req = authedRequest(http.MethodPost, "/checkin/scan", tt.body)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/checkin/scan", bytes.NewBufferString(tt.body))
			}
			rr := httptest.NewRecorder()

			ctrl.Scan(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")

			var envelope apiEnvelope
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantErrCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				return
			}
			var result domain.CheckInResult
			require.NoError(t, json.Unmarshal(envelope.Data, &result))
			assert.Equal(t, tt.wantOutcome, result.Outcome)
		})
	}
}

func TestCheckInController_ManualCheckIn(t *testing.T) {
	fake := &fakeCheckInService{result: &domain.CheckInResult{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Message: "Check-in successful",
	}}
	ctrl := NewCheckInController(newTestLogger(), fake)

	req := authedRequest(http.MethodPost, "/checkin/manual", `{"participant_id":"p1","event_id":"ev-1"}`)
	rr := httptest.NewRecorder()

	ctrl.ManualCheckIn(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "p1", fake.lastCode)
	assert.Equal(t, "ev-1", fake.lastEventID)
	assert.Equal(t, "staff-1", fake.lastActorID)
}
