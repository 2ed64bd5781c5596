package domain

import "context"

// Outcome classifies the result of a check-in attempt.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeInvalidCode      Outcome = "invalid_code"
	OutcomeAlreadyCheckedIn Outcome = "already_checked_in"
	OutcomeUpdateFailed     Outcome = "update_failed"
	OutcomeNotFound         Outcome = "not_found"
)

// ParticipantSummary is the subset of participant fields returned to the
// operator after a check-in attempt.
// swagger:model ParticipantSummary
type ParticipantSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Unit     string `json:"unit,omitempty"`
	Position string `json:"position,omitempty"`
}

// CheckInResult is the structured outcome of a scan or manual check-in.
// Success is true only for OutcomeSuccess; every result carries a short
// human-readable message for the operator.
// swagger:model CheckInResult
type CheckInResult struct {
	Success     bool                `json:"success"`
	Outcome     Outcome             `json:"code"`
	Message     string              `json:"message"`
	Participant *ParticipantSummary `json:"participant,omitempty"`
}

// CheckInService is the check-in engine. Scan resolves a scanned payload
// string; ManualCheckIn resolves a participant id directly. Domain-level
// rejections (invalid code, duplicate, update failure) are reported through
// the result, not as errors; errors are reserved for bad input, missing or
// inactive events, and infrastructure faults on the read path.
type CheckInService interface {
	Scan(ctx context.Context, code, eventID, actorID string) (*CheckInResult, error)
	ManualCheckIn(ctx context.Context, participantID, eventID, actorID string) (*CheckInResult, error)
}
