package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventcheckin/internal/delivery/http/helpers"
	"eventcheckin/internal/domain"
)

type ParticipantController struct {
	Logger       *slog.Logger
	Participants domain.ParticipantService
	Roster       domain.RosterService
}

func NewParticipantController(logger *slog.Logger, participants domain.ParticipantService, roster domain.RosterService) *ParticipantController {
	return &ParticipantController{
		Logger:       logger,
		Participants: participants,
		Roster:       roster,
	}
}

// List godoc
// @Summary List an event's participants
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param status query string false "Filter by check-in status (pending, checked_in, no_show)"
// @Success 200 {object} helpers.APIResponse "data is an array of participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *ParticipantController) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var status *domain.CheckInStatus
	if s := r.URL.Query().Get("status"); s != "" {
		cs := domain.CheckInStatus(s)
		if !cs.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
			return
		}
		status = &cs
	}

	participants, err := c.Participants.List(r.Context(), eventID, status)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// Create godoc
// @Summary Add a participant to an event's roster
// @Description Mints the participant id and QR payload; the payload is generated once and never rotated.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body domain.NewParticipantInput true "Participant fields"
// @Success 201 {object} helpers.APIResponse "data contains the created participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *ParticipantController) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var input domain.NewParticipantInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	p, err := c.Participants.Create(r.Context(), eventID, input)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// SyncRoster godoc
// @Summary Sync the roster from the event's spreadsheet
// @Description Imports new rows from the configured sheet; rows already imported (by external id) are skipped.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains imported and skipped counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no sheet configured)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/roster/sync [post]
func (c *ParticipantController) SyncRoster(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	result, err := c.Roster.Sync(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// SendQRCodesRequest is the request body for POST /events/{eventID}/emails/send-qr.
type SendQRCodesRequest struct {
	ParticipantIDs []string `json:"participant_ids"`
}

// SendQRCodesResponse is the data payload for a bulk QR email send.
type SendQRCodesResponse struct {
	domain.SendSummary
	Message string `json:"message"`
}

// SendQRCodes godoc
// @Summary Email QR codes to participants
// @Description Sends one QR code email per selected participant. Failures are isolated per recipient and counted; total == successful + failed.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body controllers.SendQRCodesRequest true "Participant ids (empty sends to all)"
// @Success 200 {object} helpers.APIResponse "data contains the send summary"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/emails/send-qr [post]
func (c *ParticipantController) SendQRCodes(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SendQRCodesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	summary, err := c.Participants.SendQRCodes(r.Context(), eventID, req.ParticipantIDs)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SendQRCodesResponse{
		SendSummary: *summary,
		Message:     fmt.Sprintf("Sent %d of %d emails", summary.Successful, summary.Total),
	})
}

func (c *ParticipantController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
