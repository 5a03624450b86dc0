package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	stationreg "github.com/goliatone/go-stationreg"
	"github.com/goliatone/go-stationreg/internal/platform/config"
	"github.com/goliatone/go-stationreg/internal/platform/httpserver"
	"github.com/goliatone/go-stationreg/internal/platform/logger"
	"github.com/goliatone/go-stationreg/internal/platform/metrics"
	"github.com/goliatone/go-stationreg/internal/server"
	"github.com/goliatone/go-stationreg/pkg/registration"
)

// main wires configuration, logging and the intake handler, then keeps the
// HTTP server running until interrupted.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	log, err := logger.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		slog.Error("invalid log level", "error", err.Error())
		os.Exit(1)
	}

	selector, err := stationreg.DefaultThemeSelector("")
	if err != nil {
		log.Error("theme setup failed", "error", err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	handler, err := server.New(ctx, server.Config{
		Logger:        log,
		Metrics:       metrics.New(nil),
		NextStep:      logNextStep(log),
		ThemeSelector: selector,
		ThemeName:     cfg.Theme,
		ThemeVariant:  cfg.ThemeVariant,
		SessionTTL:    cfg.SessionTTL,
		CookieSecure:  cfg.CookieSecure,
	})
	if err != nil {
		log.Error("intake handler setup failed", "error", err.Error())
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, handler.Router())

	log.Info("starting stationreg", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("stopped stationreg")
}

// logNextStep stands in for step 2 until it exists.
func logNextStep(log *slog.Logger) registration.NextStep {
	return registration.NextStepFunc(func(ctx context.Context, values registration.Values) error {
		log.InfoContext(ctx, "step 1 handed off",
			"station", values.StationName,
			"district", values.District,
		)
		return nil
	})
}
