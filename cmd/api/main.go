package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careergenie-backend/internal/bootstrap"
	"careergenie-backend/internal/shared/config"
	"careergenie-backend/internal/shared/server"
	"careergenie-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init("careergenie-api", cfg.IsDev())

	if err := cfg.Validate(); err != nil {
		telemetry.Error("api.config_invalid", map[string]any{"error": err})
		os.Exit(1)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("api.bootstrap_failed", map[string]any{"error": err})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go app.PruneLimiter(ctx, time.Minute)

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		telemetry.Info("api.listen", map[string]any{
			"addr":     srv.Addr,
			"env":      cfg.Env,
			"provider": cfg.LLMProvider,
			"store":    cfg.ObjectStoreType,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("api.server_error", map[string]any{"error": err})
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("api.shutdown_failed", map[string]any{"error": err})
	}
	if app.DB != nil {
		_ = app.DB.Close()
	}
	telemetry.Info("api.stopped", nil)
}
