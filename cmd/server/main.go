package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/social-blog-api/internal/api"
	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/config"
	"github.com/social-blog-api/internal/database"
	"github.com/social-blog-api/internal/repository"
	"github.com/social-blog-api/internal/service"
	"github.com/social-blog-api/internal/storage"
	"github.com/social-blog-api/pkg/logger"
)

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back the last migration and exit")
	flag.Parse()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting social blog API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = log.Level(logger.ParseLevel(cfg.Log.Level))

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *migrateDown {
		if err := db.MigrateDown(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize collaborators
	store := storage.NewStore(cfg.Upload, log)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Initialize services
	services := service.NewServices(repos, cfg, store, log)

	// Initialize router
	router := api.NewRouter(services, cfg, verifier, log)
	router.GET("/ready", api.ReadinessCheck(db, log))

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Int("moderators", len(cfg.Moderation.ModeratorEmails)).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
