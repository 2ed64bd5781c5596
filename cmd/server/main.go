package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventcheckin/config"
	"eventcheckin/internal/adapters/auth"
	"eventcheckin/internal/adapters/email"
	"eventcheckin/internal/adapters/qr"
	"eventcheckin/internal/adapters/sheets"
	deliveryhttp "eventcheckin/internal/delivery/http"
	"eventcheckin/internal/delivery/http/controllers"
	"eventcheckin/internal/delivery/http/middleware"
	"eventcheckin/internal/qrcode"
	"eventcheckin/internal/repository/postgres"
	"eventcheckin/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Event Check-in API
// @version 1.0
// @description QR code event check-in backend.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	// Adapters
	issuer, verifier := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("configure mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	qrEncoder := qr.NewPNGEncoder(0)
	sheetsClient := sheets.NewClient(&http.Client{Timeout: 15 * time.Second}, cfg.SheetsWebhookURL)

	// Services
	audit := services.NewAuditRecorder(auditRepo, logger)
	decoder := qrcode.NewDecoder(cfg.QRMaxAge)
	checkInSvc := services.NewCheckInService(participantRepo, eventRepo, audit, decoder, sheetsClient, logger)
	eventSvc := services.NewEventService(eventRepo, participantRepo)
	notifier := services.NewNotifierService(mailer, renderer, qrEncoder, logger)
	participantSvc := services.NewParticipantService(eventRepo, participantRepo, notifier)
	rosterSvc := services.NewRosterService(eventRepo, participantRepo, sheetsClient, logger)
	authSvc := services.NewAuthService(userRepo, roleRepo, hasher, issuer, cfg.JWTExpiry)

	// Controllers
	authController := controllers.NewAuthController(logger, authSvc)
	checkInController := controllers.NewCheckInController(logger, checkInSvc)
	eventController := controllers.NewEventController(logger, eventSvc)
	participantController := controllers.NewParticipantController(logger, participantSvc, rosterSvc)

	mux := deliveryhttp.NewRouter(verifier, authController, checkInController, eventController, participantController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
