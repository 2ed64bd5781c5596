package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventcheckin/internal/delivery/http/helpers"
	"eventcheckin/internal/delivery/http/middleware"
	"eventcheckin/internal/domain"
)

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{Logger: logger, Service: svc}
}

// ScanRequest is the request body for POST /checkin/scan.
type ScanRequest struct {
	Code    string `json:"code"`
	EventID string `json:"event_id"`
}

// Validate implements helpers.Validator.
func (r *ScanRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, "code is required")
	}
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// ManualCheckInRequest is the request body for POST /checkin/manual.
type ManualCheckInRequest struct {
	ParticipantID string `json:"participant_id"`
	EventID       string `json:"event_id"`
}

// Validate implements helpers.Validator.
func (r *ManualCheckInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.ParticipantID) == "" {
		errs = append(errs, "participant_id is required")
	}
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// Scan godoc
// @Summary Check in a participant by scanned QR code
// @Description Resolves the scanned payload within the event and attempts the check-in transition. Domain rejections (invalid code, duplicate, update failure) return 400 with the outcome in the body.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ScanRequest true "Scanned code and event id"
// @Success 200 {object} helpers.APIResponse "data contains the check-in result"
// @Failure 400 {object} helpers.APIResponse "domain-level rejection; data carries the result"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/scan [post]
func (c *CheckInController) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	result, err := c.Service.Scan(r.Context(), req.Code, req.EventID, actorID)
	if err != nil {
		c.writeCheckInError(w, r, err)
		return
	}
	c.writeResult(w, result)
}

// ManualCheckIn godoc
// @Summary Check in a participant manually by id
// @Description Performs the same transition as a scan but resolves the participant by id and marks the check-in as manual.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ManualCheckInRequest true "Participant id and event id"
// @Success 200 {object} helpers.APIResponse "data contains the check-in result"
// @Failure 400 {object} helpers.APIResponse "domain-level rejection; data carries the result"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/manual [post]
func (c *CheckInController) ManualCheckIn(w http.ResponseWriter, r *http.Request) {
	var req ManualCheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	result, err := c.Service.ManualCheckIn(r.Context(), req.ParticipantID, req.EventID, actorID)
	if err != nil {
		c.writeCheckInError(w, r, err)
		return
	}
	c.writeResult(w, result)
}

// writeResult maps check-in outcomes onto status codes: 200 for a successful
// transition, 400 for every domain-level rejection, with the structured
// result in the body either way so the operator UI can render the outcome.
func (c *CheckInController) writeResult(w http.ResponseWriter, result *domain.CheckInResult) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	helpers.WriteJSONSuccess(w, status, result)
}

func (c *CheckInController) writeCheckInError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrEventNotActive):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event is not active")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "check-in failed")
	}
}
