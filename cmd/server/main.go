// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/murmur/internal/api"
	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/authz"
	"github.com/tomtom215/murmur/internal/comments"
	"github.com/tomtom215/murmur/internal/config"
	"github.com/tomtom215/murmur/internal/database"
	"github.com/tomtom215/murmur/internal/feed"
	"github.com/tomtom215/murmur/internal/likes"
	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/posts"
	"github.com/tomtom215/murmur/internal/profiles"
	"github.com/tomtom215/murmur/internal/recommend"
	"github.com/tomtom215/murmur/internal/supervisor"
	"github.com/tomtom215/murmur/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Starting Murmur with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enforcer, err := authz.NewEnforcer(ctx, authz.DefaultEnforcerConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization enforcer")
	}
	defer enforcer.Close()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token validation")
	}

	eventComponents, err := InitEvents(ctx, &cfg.Events)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize activity events")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer closeCancel()
		eventComponents.Close(closeCtx)
	}()
	emitter := eventComponents.Emitter()

	// Read side
	annotator := likes.NewAnnotator(db)
	sampler := recommend.NewSampler(db, cfg.Feed.RecommendLimit, logging.WithComponent("recommend"))
	assembler := feed.NewAssembler(db, annotator, sampler, cfg.Feed.PageSize, logging.WithComponent("feed"))
	trees := comments.NewBuilder(db, annotator, cfg.Feed.PageSize, cfg.Feed.TreeParallelism)

	// Write side
	handler := api.NewHandler(api.Services{
		Feed:     assembler,
		Trees:    trees,
		Comments: comments.NewService(db, enforcer, emitter),
		Posts:    posts.NewService(db, annotator, enforcer, emitter, cfg.Feed.PageSize),
		Profiles: profiles.NewService(db, annotator, enforcer, emitter, cfg.Feed.PageSize),
		Accounts: db,
	})
	router := api.NewRouter(handler, jwtManager, api.ChiMiddlewareConfigFrom(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	// Create structured logger for supervisor using our slog adapter
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	if eventComponents != nil {
		tree.AddDataService(eventComponents.Relay())
		tree.AddMessagingService(services.NewEventsService(eventComponents, cfg.Server.ShutdownTimeout))
		logging.Info().Msg("Outbox relay and activity consumer added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
