// Package main is the entry point for the CourtNotify API server.
//
// It loads configuration, wires the template registry, personalisation
// builder, dispatcher, and external clients, builds the HTTP server with
// the core chassis (middleware, routing, health checks), and starts
// listening for requests.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"courtnotify/internal/api/handlers"
	"courtnotify/internal/config"
	"courtnotify/internal/core"
	"courtnotify/internal/external"
	"courtnotify/internal/notify"
	"courtnotify/internal/types"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on
// error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("courtnotify API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
	)

	// Build the server chassis.
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Domain wiring: registry, builder, provider clients, dispatcher.
	registry := notify.NewRegistry()
	builder := notify.NewBuilder(notify.Links{
		StartPage:        cfg.Links.StartPage,
		SubscriptionPage: cfg.Links.SubscriptionPage,
		GovGuidancePage:  cfg.Links.GovGuidancePage,
		AadSignInPage:    cfg.Links.AadSignInPage,
		CftSignInPage:    cfg.Links.CftSignInPage,
		ResetPassword:    cfg.Links.ResetPassword,
		Verification:     cfg.Links.Verification,
	}, cfg.Notify.EnvName)

	provider := external.NewNotifyProvider(&http.Client{Timeout: 30 * time.Second}, external.NotifyProviderConfig{
		APIKey:  cfg.Notify.APIKey.Unmask(),
		BaseURL: cfg.Notify.BaseURL,
		Logger:  logger,
	})
	dataClient := external.NewDataClient(&http.Client{Timeout: cfg.Data.Timeout}, external.DataClientConfig{
		BaseURL: cfg.Data.BaseURL,
		Logger:  logger,
	})

	dispatcher := notify.NewDispatcher(registry, builder, provider, logger)
	retention := types.RetentionPeriod(cfg.Notify.RetentionWeeks)

	// Handler wiring.
	accountHandler := handlers.NewAccountHandler(dispatcher, srv.Validator, logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(dispatcher, dataClient, retention, srv.Validator, logger)
	reportHandler := handlers.NewReportHandler(dispatcher, retention, srv.Validator, logger)

	srv.RouteRegistrars = []core.RouteRegistrar{
		func(r chi.Router) { accountHandler.Routes(r) },
		func(r chi.Router) { subscriptionHandler.Routes(r) },
		func(r chi.Router) { reportHandler.Routes(r) },
	}

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful
// shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log
// level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
