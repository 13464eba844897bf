package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkingportal/internal/api"
	"parkingportal/internal/backend"
	"parkingportal/internal/config"
	"parkingportal/internal/repository"
	"parkingportal/internal/reservation"
	"parkingportal/internal/service"
	"parkingportal/internal/session"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := repository.Migrate(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	loc := cfg.Location()
	classifier := reservation.NewClassifier(loc)
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)

	pendingRepo := repository.NewPendingReservationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	jobRepo := repository.NewJobRepository(db)

	var stripeSvc *service.StripeService
	if cfg.Payment.Provider == "stripe" {
		if cfg.Payment.StripeSecretKey == "" {
			log.Fatal("STRIPE_SECRET_KEY not set")
		}
		stripeSvc = service.NewStripeService(cfg.Payment.StripeSecretKey, cfg.PublicURL)
	}
	payments := service.NewPaymentGateway(cfg.Payment.Provider, client, stripeSvc)

	wizards := service.NewWizardStore()
	senderSvc := service.NewSenderService(cfg.Notify)
	bookingSvc := service.NewBookingService(wizards, client, payments, pendingRepo, senderSvc, cfg.Payment.Currency, cfg.FrontendURL, loc)
	adminSvc := service.NewAdminService(client, classifier)
	authSvc := service.NewAuthService(client, sessionRepo, session.NewSigner(cfg.SessionSecret, cfg.SessionTTL), bookingSvc, adminSvc)

	jobSvc := service.NewJobService(jobRepo, pendingRepo, wizards, adminSvc, cfg.PendingTTL, cfg.WizardTTL)
	scheduler, err := jobSvc.Start(cfg.SweepSchedule)
	if err != nil {
		log.Fatalf("Failed to start cron jobs: %v", err)
	}

	router := api.NewRouter(api.Handlers{
		Auth:         api.NewAuthHandler(authSvc, cfg.SessionTTL, cfg.AppEnv == "production"),
		Catalog:      api.NewCatalogHandler(service.NewCatalogService(client)),
		Booking:      api.NewBookingHandler(bookingSvc),
		Payment:      api.NewPaymentHandler(bookingSvc),
		Reservations: api.NewUserReservationHandler(service.NewReservationService(client, classifier)),
		Account:      api.NewAccountHandler(service.NewAccountService(client)),
		Admin:        api.NewAdminHandler(adminSvc),
	}, authSvc)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.CombinedLoggingHandler(os.Stdout, cors(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
