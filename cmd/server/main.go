package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkearns/tasktrack/internal/api"
	"github.com/dkearns/tasktrack/internal/config"
	"github.com/dkearns/tasktrack/internal/repository"
	"github.com/dkearns/tasktrack/internal/repository/memory"
	"github.com/dkearns/tasktrack/internal/repository/postgres"
	redisrepo "github.com/dkearns/tasktrack/internal/repository/redis"
	"github.com/dkearns/tasktrack/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize storage
	repos, err := newRepositories(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Initialize services
	services := service.NewServices(repos)

	// Reclaim expired session rows in the background
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	service.StartSessionSweeper(sweepCtx, repos.Session, cfg.SweepInterval, logger)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.StorageDriver),
			zap.String("sessions", cfg.SessionStore),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newRepositories picks the storage backends at process start: a durable
// relational store or the ephemeral in-memory one, with sessions optionally
// moved to Redis for multi-instance deployments.
func newRepositories(cfg *config.Config) (*repository.Repositories, error) {
	var repos *repository.Repositories

	switch cfg.StorageDriver {
	case "memory":
		repos = memory.NewRepositories()
	default:
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repos = postgres.NewRepositories(db)
	}

	if cfg.SessionStore == "redis" {
		rdb, err := redisrepo.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		repos.Session = redisrepo.NewSessionRepository(rdb)
	}

	return repos, nil
}
