package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/api"
	"github.com/symptom-triage-server/internal/app"
	"github.com/symptom-triage-server/internal/config"
	"github.com/symptom-triage-server/internal/logging"
	"github.com/symptom-triage-server/internal/middleware"
)

var version = "dev"

func main() {
	// Load configuration
	configManager, err := config.NewManagerWithFile(os.Getenv(config.ConfigFileEnv))
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		logrus.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	server := api.NewServer(configManager, api.Dependencies{
		Checks:      application.Checks,
		Knowledge:   application.Knowledge,
		Feedback:    application.Feedback,
		Alerts:      application.Alerts,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit, logger),
		Health:      application.Health,
		Version:     version,
	}, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	logger.WithFields(logrus.Fields{
		"host":        cfg.Server.Host,
		"port":        cfg.Server.Port,
		"environment": cfg.Environment,
		"version":     version,
	}).Info("Starting symptom triage server")

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Error("Server failed")
		application.Close()
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
