package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/config"
	"todoapi/internal/handler"
	"todoapi/internal/httpserver"
	"todoapi/internal/notify"
	"todoapi/internal/service/auth"
	"todoapi/internal/store"
	"todoapi/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logger.New(cfg.Development())
	defer logger.Sync()

	// Init stores (process memory, empty on every start)
	userStore := store.NewUserStore()
	taskStore := store.NewTaskStore()

	// Init notifier (log-backed stand-in for email delivery)
	notifier := notify.NewLogNotifier(logger)

	// Init services
	authService := auth.NewService(userStore, notifier, logger, cfg.JWT.Secret, cfg.TokenTTL(), cfg.ResetCodeTTL())

	// Init handlers
	authHandler := handler.NewAuthHandler(authService, logger, cfg.Development())
	taskHandler := handler.NewTaskHandler(taskStore, logger, cfg.Development())

	// Router
	router := httpserver.NewRouter(authHandler, taskHandler, logger, httpserver.Options{
		JWTSecret:   cfg.JWT.Secret,
		StaticDir:   cfg.Static.Dir,
		Development: cfg.Development(),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router.Engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Starting todo API server",
			zap.String("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server start failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
