// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommendapi"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	"github.com/tomtom215/cinematch/internal/view"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("upstream", cfg.Upstream.BaseURL).
		Str("session_store", cfg.Session.Store).
		Msg("Starting CineMatch with supervisor tree")
	if cfg.Server.IsProduction() && cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	upstream, err := recommendapi.NewStack(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine client")
	}
	defer upstream.Close()
	logging.Info().
		Bool("circuit_breaker", cfg.Upstream.Breaker.Enabled).
		Dur("stats_cache_ttl", cfg.Cache.StatsTTL).
		Dur("autocomplete_cache_ttl", cfg.Cache.AutocompleteTTL).
		Msg("Recommendation engine client ready")

	renderer, err := view.NewRenderer(view.OptionsFromConfig(cfg.UI))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to parse page templates")
	}
	ctrl := controller.New(controller.OptionsFromConfig(cfg.UI))

	store, err := session.NewStore(context.Background(), session.StoreOptions{
		Type:      session.StoreType(cfg.Session.Store),
		Path:      cfg.Session.StorePath,
		RedisAddr: cfg.Session.RedisAddr,
		TTL:       cfg.Session.SnapshotTTL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open session snapshot store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session snapshot store")
		}
	}()

	manager := session.NewManager(session.ManagerConfig{
		Deps: session.Deps{
			Controller: ctrl,
			Renderer:   renderer,
			Client:     upstream.Client,
			OutboxSize: cfg.Session.OutboxSize,
		},
		Store:       store,
		IdleTimeout: cfg.Session.IdleTimeout,
		SaveTimeout: cfg.Session.SaveTimeout,
	})

	wsHub := ws.NewHub()

	handler := api.NewHandler(api.HandlerDeps{
		Sessions: manager,
		Renderer: renderer,
		Hub:      wsHub,
		Upstream: upstream,
		Config:   cfg,
		Version:  version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog.Logger; the adapter forwards to zerolog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	serviceLog := logging.WithComponent("supervisor")
	tree.AddSessionService(services.NewSessionReaperService(manager, cfg.Session.ReapInterval, serviceLog))
	if badgerStore, ok := store.(*session.BadgerStore); ok {
		tree.AddSessionService(services.NewSnapshotGCService(badgerStore, 0, serviceLog))
		logging.Info().Str("path", cfg.Session.StorePath).Msg("Badger snapshot store enabled")
	}

	tree.AddMessagingService(services.NewWebSocketHubService(wsHub, serviceLog).WithSessions(manager))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, serviceLog).WithSessions(manager))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// ServeBackground delivers exactly one result and never closes the channel
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	manager.Shutdown()
	logging.Info().Msg("Application stopped gracefully")
}
