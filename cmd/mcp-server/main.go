package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/app"
	"github.com/symptom-triage-server/internal/config"
	"github.com/symptom-triage-server/internal/logging"
	"github.com/symptom-triage-server/internal/mcp"
)

func main() {
	// stdout carries the protocol, so nothing else may write there
	logrus.SetOutput(os.Stderr)

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
	logger, err := logging.NewStderr(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}

	// Nobody subscribes to alerts in a stdio session
	cfg.Alerts.Enabled = false

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	server := mcp.NewServer(cfg.MCP, application.Checks, application.Knowledge, logger,
		mcp.WithFeedbackStore(application.Feedback))

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down MCP server")
		cancel()
	}()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("MCP server failed")
		application.Close()
		os.Exit(1)
	}

	logger.Info("Symptom triage MCP server stopped")
}
