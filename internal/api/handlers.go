package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/middleware"
	"github.com/symptom-triage-server/internal/service"
)

const healthCheckTimeout = 2 * time.Second

// AnalyzeRequest is the body of a stateless analysis call
type AnalyzeRequest struct {
	Symptoms      []domain.Symptom `json:"symptoms" binding:"dive"`
	SeverityLevel int              `json:"severity_level"`
	Duration      string           `json:"duration"`
}

// AnalyzeResponse wraps an engine result. Status is "error" when the fallback was used.
type AnalyzeResponse struct {
	Status domain.SymptomCheckStatus `json:"status"`
	Result *domain.TriageResult      `json:"result"`
}

// handleHealth reports the status of every registered dependency
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	components := gin.H{}
	for _, hc := range s.deps.Health {
		if err := hc.Check(ctx); err != nil {
			components[hc.Name] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		components[hc.Name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":     status,
		"timestamp":  time.Now().UTC(),
		"version":    s.deps.Version,
		"components": components,
	})
}

func (s *Server) handleSubmitSymptomCheck(c *gin.Context) {
	var sub domain.SymptomCheckSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Invalid request body", err)
		return
	}

	check, err := s.deps.Checks.Submit(c.Request.Context(), &sub)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	code := http.StatusCreated
	if check.Status == domain.StatusError {
		code = http.StatusOK
	}
	c.JSON(code, check)
}

func (s *Server) handleGetSymptomCheck(c *gin.Context) {
	check, err := s.deps.Checks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (s *Server) handleListForPatient(c *gin.Context) {
	limit, offset, ok := s.pagination(c)
	if !ok {
		return
	}

	checks, err := s.deps.Checks.ListForPatient(c.Request.Context(), c.Param("patientId"), limit, offset)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symptom_checks": checks,
		"limit":          limit,
		"offset":         offset,
	})
}

func (s *Server) handleListRecent(c *gin.Context) {
	minUrgency := 0.0
	if raw := c.Query("min_urgency"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "min_urgency must be a number", err)
			return
		}
		minUrgency = v
	}
	limit, _, ok := s.pagination(c)
	if !ok {
		return
	}

	checks, err := s.deps.Checks.ListRecent(c.Request.Context(), minUrgency, limit)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symptom_checks": checks,
		"min_urgency":    minUrgency,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var body AnalyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Invalid request body", err)
		return
	}

	bucket, _ := service.TranslateDuration(body.Duration)
	result, err := s.deps.Checks.Analyze(c.Request.Context(), &domain.SymptomCheckRequest{
		Symptoms:      body.Symptoms,
		SeverityLevel: body.SeverityLevel,
		Duration:      bucket,
	})
	if err != nil {
		if ue, ok := domain.AsAnalysisUnavailable(err); ok {
			s.logger.WithError(ue.Cause).Warn("Returning fallback triage result")
			c.JSON(http.StatusOK, AnalyzeResponse{Status: domain.StatusError, Result: ue.Fallback})
			return
		}
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{Status: domain.StatusCompleted, Result: result})
}

func (s *Server) handleBodyAreas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"body_areas": s.deps.Knowledge.BodyAreas()})
}

func (s *Server) handleAreaSymptoms(c *gin.Context) {
	area := c.Param("area")
	symptoms := s.deps.Knowledge.SymptomsForArea(area)
	if symptoms == nil {
		symptoms = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"area": area, "symptoms": symptoms})
}

func (s *Server) handleKnownSymptoms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symptoms": s.deps.Knowledge.KnownSymptoms()})
}

func (s *Server) handleGetCondition(c *gin.Context) {
	cond, ok := s.deps.Knowledge.Condition(c.Param("name"))
	if !ok {
		s.respondError(c, http.StatusNotFound, domain.ErrNotFoundCode, "Condition not found", nil)
		return
	}
	c.JSON(http.StatusOK, cond)
}

func (s *Server) handleDurations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"durations": service.DurationOptions()})
}

func (s *Server) handleSaveFeedback(c *gin.Context) {
	var fb feedback.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Invalid request body", err)
		return
	}

	if err := fb.Validate(); err != nil {
		s.respondServiceError(c, err)
		return
	}

	// Engine-side fields and agreement come from the stored check, never the client
	check, err := s.deps.Checks.Get(c.Request.Context(), fb.SymptomCheckID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	fb.Derive(check)

	if err := s.deps.Feedback.Save(c.Request.Context(), &fb); err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (s *Server) handleListFeedback(c *gin.Context) {
	ctx := c.Request.Context()

	if checkID := c.Query("symptom_check_id"); checkID != "" {
		entries, err := s.deps.Feedback.ListForCheck(ctx, checkID)
		if err != nil {
			s.respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"feedback": entries, "total": len(entries)})
		return
	}

	limit, offset, ok := s.pagination(c)
	if !ok {
		return
	}
	entries, err := s.deps.Feedback.List(ctx, limit, offset)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	total, err := s.deps.Feedback.Count(ctx)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": entries, "total": total})
}

func (s *Server) handleFeedbackStats(c *gin.Context) {
	stats, err := s.deps.Feedback.Stats(c.Request.Context())
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleExportFeedback(c *gin.Context) {
	filename := fmt.Sprintf("feedback-%s.json", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := s.deps.Feedback.ExportJSON(c.Request.Context(), c.Writer); err != nil {
		s.logger.WithError(err).Error("Feedback export failed")
	}
}

// pagination reads limit and offset query parameters, writing a 400 on bad input
func (s *Server) pagination(c *gin.Context) (limit, offset int, ok bool) {
	var err error
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "limit must be a non-negative integer", err)
			return 0, 0, false
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil || offset < 0 {
			s.respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "offset must be a non-negative integer", err)
			return 0, 0, false
		}
	}
	return limit, offset, true
}

// respondServiceError maps service and repository errors onto API errors
func (s *Server) respondServiceError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		s.respondError(c, http.StatusBadRequest, domain.ErrValidation, ve.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		s.respondError(c, http.StatusNotFound, domain.ErrNotFoundCode, "Resource not found", nil)
	case errors.Is(err, context.DeadlineExceeded):
		s.respondError(c, http.StatusGatewayTimeout, domain.ErrInternalServer, "Request timed out", err)
	default:
		s.respondError(c, http.StatusInternalServerError, domain.ErrDatabaseError, "Storage operation failed", err)
	}
}

func (s *Server) respondError(c *gin.Context, status int, code, message string, cause error) {
	details := ""
	if cause != nil {
		if status >= http.StatusInternalServerError {
			s.logger.WithFields(logrus.Fields{
				"correlation_id": c.GetString(middleware.CorrelationIDKey),
				"code":           code,
			}).WithError(cause).Error(message)
		} else {
			details = cause.Error()
		}
	}
	c.AbortWithStatusJSON(status, domain.NewAPIError(code, message, details, c.GetString(middleware.CorrelationIDKey)))
}
