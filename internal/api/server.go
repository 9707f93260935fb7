package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/alerts"
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/middleware"
	"github.com/symptom-triage-server/internal/service"
)

const shutdownTimeout = 30 * time.Second

// HealthCheck probes one backing component
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer dispatches to
type Dependencies struct {
	Checks      *service.SymptomCheckService
	Knowledge   *knowledge.KnowledgeBase
	Feedback    feedback.Store
	Alerts      *alerts.Hub
	RateLimiter *middleware.RateLimiter
	Health      []HealthCheck
	Version     string
}

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	deps          Dependencies
	logger        *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(configManager domain.ConfigManager, deps Dependencies, logger *logrus.Logger) *Server {
	cfg := configManager.GetConfig()

	gin.SetMode(ginMode(configManager))

	if deps.Knowledge == nil {
		deps.Knowledge = knowledge.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.AuditLogger(logger))
	router.Use(corsMiddleware())

	server := &Server{
		configManager: configManager,
		deps:          deps,
		logger:        logger,
		router:        router,
	}

	server.setupRoutes(cfg.Server.RequestTimeout)

	return server
}

// ginMode keeps production in release mode even when debug logging is on
func ginMode(configManager domain.ConfigManager) string {
	if !configManager.IsProduction() && configManager.GetConfig().Logging.Level == "debug" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	if s.deps.Alerts != nil {
		s.deps.Alerts.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes(requestTimeout time.Duration) {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")

	// The alert stream is long-lived and must not inherit the request timeout
	if s.deps.Alerts != nil {
		v1.GET("/alerts/ws", s.deps.Alerts.Handler())
	}

	routes := v1.Group("")
	routes.Use(middleware.RequestTimeout(requestTimeout))
	if s.deps.RateLimiter != nil {
		routes.Use(s.deps.RateLimiter.Middleware())
	}
	{
		routes.GET("/health", s.handleHealth)

		routes.POST("/symptom-checks", s.handleSubmitSymptomCheck)
		routes.GET("/symptom-checks", s.handleListRecent)
		routes.GET("/symptom-checks/:id", s.handleGetSymptomCheck)
		routes.GET("/patients/:patientId/symptom-checks", s.handleListForPatient)
		routes.POST("/analyze", s.handleAnalyze)

		routes.GET("/body-areas", s.handleBodyAreas)
		routes.GET("/body-areas/:area/symptoms", s.handleAreaSymptoms)
		routes.GET("/symptoms", s.handleKnownSymptoms)
		routes.GET("/conditions/:name", s.handleGetCondition)
		routes.GET("/durations", s.handleDurations)

		if s.deps.Feedback != nil {
			routes.POST("/feedback", s.handleSaveFeedback)
			routes.GET("/feedback", s.handleListFeedback)
			routes.GET("/feedback/stats", s.handleFeedbackStats)
			routes.GET("/feedback/export", s.handleExportFeedback)
		}
	}
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, "+middleware.CorrelationIDHeader)
		c.Header("Access-Control-Expose-Headers", middleware.CorrelationIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
