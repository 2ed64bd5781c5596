package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventcheckin/internal/delivery/http/controllers"
	"eventcheckin/internal/delivery/http/middleware"
	"eventcheckin/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	checkInController *controllers.CheckInController,
	eventController *controllers.EventController,
	participantController *controllers.ParticipantController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleCheckInStaff)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Check-in
	mux.HandleFunc("POST /checkin/scan", requireAuth(staff(checkInController.Scan)))
	mux.HandleFunc("POST /checkin/manual", requireAuth(staff(checkInController.ManualCheckIn)))

	// Events
	mux.HandleFunc("POST /events", requireAuth(adminOnly(eventController.Create)))
	mux.HandleFunc("GET /events", requireAuth(eventController.List))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.Get))
	mux.HandleFunc("PATCH /events/{eventID}/status", requireAuth(adminOnly(eventController.UpdateStatus)))
	mux.HandleFunc("GET /events/{eventID}/stats", requireAuth(eventController.Stats))

	// Participants
	mux.HandleFunc("GET /events/{eventID}/participants", requireAuth(participantController.List))
	mux.HandleFunc("POST /events/{eventID}/participants", requireAuth(adminOnly(participantController.Create)))
	mux.HandleFunc("POST /events/{eventID}/roster/sync", requireAuth(adminOnly(participantController.SyncRoster)))
	mux.HandleFunc("POST /events/{eventID}/emails/send-qr", requireAuth(adminOnly(participantController.SendQRCodes)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
