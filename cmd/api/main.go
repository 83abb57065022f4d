package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"medicine-cabinet/internal/adapters/auth/jwtauth"
	"medicine-cabinet/internal/config"
	"medicine-cabinet/internal/platform/logger"
	"medicine-cabinet/internal/platform/metrics"
	"medicine-cabinet/internal/ports/auth"
	"medicine-cabinet/internal/router"
)

// @title Medicine Cabinet API
// @version 1.0
// @description Botiquín del hogar: vencimientos efectivos, familia y recordatorios con stock.
// @BasePath /
func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})

	var verifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)
	if secret := strings.TrimSpace(cfg.Auth.JWTSecret); secret != "" {
		verifier = jwtauth.NewVerifier(secret, cfg.Auth.JWTIssuer)
	} else {
		log.Warn("JWT_SECRET not set, running in dev auth mode")
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       log,
		Metrics:      metrics.New(),
		Cabinet:      cfg.Cabinet,
		RateLimit:    cfg.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Err(err))
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
