package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reseau-alumni/alumni-be/internal/api"
	"github.com/reseau-alumni/alumni-be/internal/auth"
	"github.com/reseau-alumni/alumni-be/internal/config"
	"github.com/reseau-alumni/alumni-be/internal/database"
	"github.com/reseau-alumni/alumni-be/internal/logger"
	"github.com/reseau-alumni/alumni-be/internal/monitoring"
	"github.com/reseau-alumni/alumni-be/internal/services"
	"github.com/reseau-alumni/alumni-be/internal/storage"
	"github.com/reseau-alumni/alumni-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Object storage: S3 when a bucket is configured, local disk otherwise.
	var store storage.Store
	if cfg.S3Bucket != "" {
		store, err = storage.NewS3Store(cfg)
	} else {
		store, err = storage.NewLocalStore(cfg.UploadDir, "/uploads")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// Live feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	alumniService := services.NewAlumniService(db)
	linkService := services.NewLinkService(db)
	resourceService := services.NewResourceService(db)
	bookmarkService := services.NewBookmarkService(db)
	announcementService := services.NewAnnouncementService(db, hub)

	if err := userService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	// Auth plumbing
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenValidity)
	authMiddleware := auth.NewMiddleware(codec, userService)

	// Background bookmark counter reconciler
	reconciler, err := monitoring.NewReconciler(db, cfg.ReconcileCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid RECONCILE_CRON expression")
	}
	go reconciler.Run()

	// Set up router
	router := api.NewRouter(cfg, hub, codec, authMiddleware,
		userService, alumniService, linkService, resourceService,
		bookmarkService, announcementService, store)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reconciler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
