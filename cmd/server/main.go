package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second

	// The announcement is refreshed on a timer; the original deployment used
	// a cron job for this.
	announcementRefreshInterval = time.Hour
)

// @title Conference Central API
// @version 1.0
// @description Backend for conference, session, speaker and wishlist management.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(ctx, db, logger); err != nil {
		logger.Error("run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	// Infrastructure
	cacheStore := cache.NewMemoryStore()
	taskQueue := tasks.NewQueue(logger, cfg.TaskWorkers, cfg.TaskQueueSize, cfg.TaskMaxAttempts, cfg.TaskRetryDelay)
	planner := query.NewPlanner(sessionRepo)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	profileService := services.NewProfileService(profileRepo, serviceTimeout)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, profileService, taskQueue, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, speakerRepo, planner, taskQueue, logger, serviceTimeout)
	speakerService := services.NewSpeakerService(speakerRepo, sessionRepo, serviceTimeout)
	wishlistService := services.NewWishlistService(profileRepo, sessionRepo, profileService, serviceTimeout)
	featuredService := services.NewFeaturedSpeakerService(planner, speakerRepo, cacheStore, logger, serviceTimeout, cfg.FeaturedReportAllTied)
	announcementService := services.NewAnnouncementService(conferenceRepo, cacheStore, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Task handlers
	taskQueue.Register(domain.TaskFeaturedSpeaker, func(ctx context.Context, task domain.Task) error {
		return featuredService.Recompute(ctx, task.Params[domain.TaskParamConferenceID])
	})
	taskQueue.Register(domain.TaskConferenceConfirmation, func(ctx context.Context, task domain.Task) error {
		return emailService.SendConferenceConfirmation(ctx, &domain.ConferenceConfirmationEmailData{
			Email:          task.Params[domain.TaskParamEmail],
			ConferenceName: task.Params[domain.TaskParamConferenceName],
		})
	})
	taskQueue.Register(domain.TaskRefreshAnnouncement, func(ctx context.Context, _ domain.Task) error {
		_, err := announcementService.RefreshAnnouncement(ctx)
		return err
	})
	taskQueue.Start(ctx)

	go func() {
		ticker := time.NewTicker(announcementRefreshInterval)
		defer ticker.Stop()
		taskQueue.Enqueue(domain.Task{Kind: domain.TaskRefreshAnnouncement})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				taskQueue.Enqueue(domain.Task{Kind: domain.TaskRefreshAnnouncement})
			}
		}
	}()

	// HTTP
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mux := delivery.NewRouter(
		verifier,
		logger,
		controllers.NewConferenceController(logger, conferenceService, announcementService, featuredService),
		controllers.NewSessionController(logger, sessionService),
		controllers.NewSpeakerController(logger, speakerService),
		controllers.NewWishlistController(logger, wishlistService),
		controllers.NewProfileController(logger, profileService),
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	taskQueue.Wait()
	logger.Info("server stopped")
}
