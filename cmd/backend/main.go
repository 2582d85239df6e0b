// Command backend runs the SmartExplorers development backend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hayawalid/smartexplorers/internal/auth"
	"github.com/hayawalid/smartexplorers/internal/config"
	"github.com/hayawalid/smartexplorers/internal/logging"
	store "github.com/hayawalid/smartexplorers/internal/repository"
	"github.com/hayawalid/smartexplorers/internal/service"
	transport "github.com/hayawalid/smartexplorers/internal/transport/http"
	"github.com/hayawalid/smartexplorers/internal/transport/http/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	logger.Info("starting backend", "port", cfg.BackendPort, "database", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize service
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	svc := service.New(db, tokens, cfg, logger)
	if err := svc.Seed(context.Background()); err != nil {
		logger.Error("failed to seed data", "error", err)
		os.Exit(1)
	}

	limiter := middleware.NewLimiterStore(cfg.LoginRatePerMinute, cfg.LoginBurst, time.Minute)
	defer limiter.Stop()

	server := transport.NewServer(svc, limiter, logger)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.BackendPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("backend started", "port", cfg.BackendPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down backend")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server gracefully", "error", err)
	}

	logger.Info("backend stopped")
}
