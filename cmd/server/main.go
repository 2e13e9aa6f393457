package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vaishnavcibu/schedule-manager/internal/config"
	"github.com/Vaishnavcibu/schedule-manager/internal/database"
	"github.com/Vaishnavcibu/schedule-manager/internal/handler"
	"github.com/Vaishnavcibu/schedule-manager/internal/logger"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/refresh"
	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/Vaishnavcibu/schedule-manager/internal/router"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/Vaishnavcibu/schedule-manager/internal/validator"
	"github.com/Vaishnavcibu/schedule-manager/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Schedule Manager")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	notifier := service.NewRedisViewNotifier(rdb, log)
	directoryService := service.NewDirectoryService(userRepo, appointmentRepo, authService, notifier, log)
	availabilityService := service.NewAvailabilityService(userRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, notifier, log)
	viewService := service.NewViewService(userRepo, appointmentRepo)

	// ─── Refresh Coordinator ──────────────────────────────────────────
	// Mutations invalidate role views; the coordinator re-loads them on a
	// bounded pool and pushes fresh projections to WebSocket subscribers.
	coordinator := refresh.NewCoordinator(func(ctx context.Context, key refresh.Key) (*model.ViewModel, error) {
		return viewService.Load(ctx, key.Role, key.UserID)
	}, cfg.RefreshWorkers, log)
	defer coordinator.Close()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, directoryService, log),
		AdminUser: handler.NewAdminUserHandler(directoryService, viewService, log),
		Teacher:   handler.NewTeacherHandler(appointmentService, directoryService, viewService, log),
		Student:   handler.NewStudentHandler(appointmentService, availabilityService, viewService, log),
		WS:        handler.NewWSHandler(coordinator, viewService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	invalidationWorker := worker.NewInvalidationWorker(rdb, coordinator, log)
	go invalidationWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the worker and wait for the invalidation queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
