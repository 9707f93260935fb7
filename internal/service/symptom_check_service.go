package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/cache"
	"github.com/symptom-triage-server/internal/domain"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// SymptomCheckService runs submissions through the engine and records the outcome
type SymptomCheckService struct {
	engine     domain.TriageEngine
	repo       domain.SymptomCheckRepository
	cache      domain.ResultCache
	cacheTTL   time.Duration
	alerts     domain.AlertPublisher
	alertAbove float64
	now        func() time.Time
	logger     *logrus.Logger
}

// ServiceOption configures optional collaborators of SymptomCheckService
type ServiceOption func(*SymptomCheckService)

// WithResultCache serves repeated identical requests from cache
func WithResultCache(c domain.ResultCache, ttl time.Duration) ServiceOption {
	return func(s *SymptomCheckService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithAlertPublisher publishes completed checks scoring at or above minUrgency
func WithAlertPublisher(p domain.AlertPublisher, minUrgency float64) ServiceOption {
	return func(s *SymptomCheckService) {
		s.alerts = p
		s.alertAbove = minUrgency
	}
}

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) ServiceOption {
	return func(s *SymptomCheckService) {
		s.now = now
	}
}

// NewSymptomCheckService creates a new symptom check service
func NewSymptomCheckService(engine domain.TriageEngine, repo domain.SymptomCheckRepository, logger *logrus.Logger, opts ...ServiceOption) *SymptomCheckService {
	s := &SymptomCheckService{
		engine: engine,
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit analyzes a patient submission and persists the result. When analysis is
// unavailable the fallback result is stored with status error and returned without
// an error. Validation failures are returned and nothing is stored.
func (s *SymptomCheckService) Submit(ctx context.Context, sub *domain.SymptomCheckSubmission) (*domain.SymptomCheck, error) {
	if sub == nil {
		return nil, domain.NewValidationError("submission", "must not be nil", nil)
	}

	bucket, ok := TranslateDuration(sub.Duration)
	if !ok {
		s.logger.WithField("duration", sub.Duration).Debug("Unrecognized duration label, using days")
	}

	req := &domain.SymptomCheckRequest{
		Symptoms:      sub.Symptoms,
		SeverityLevel: sub.SeverityLevel,
		Duration:      bucket,
	}

	check := &domain.SymptomCheck{
		ID:            uuid.New().String(),
		PatientID:     sub.PatientID,
		Symptoms:      sub.Symptoms,
		SeverityLevel: sub.SeverityLevel,
		Duration:      sub.Duration,
		Status:        domain.StatusCompleted,
		CreatedAt:     s.now().UTC(),
	}

	result, err := s.Analyze(ctx, req)
	if err != nil {
		ue, ok := domain.AsAnalysisUnavailable(err)
		if !ok {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{
			"symptom_check_id": check.ID,
			"patient_id":       check.PatientID,
		}).WithError(ue.Cause).Warn("Storing fallback triage result")
		result = ue.Fallback
		check.Status = domain.StatusError
	}
	check.Result = result

	if err := s.repo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to save symptom check: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"symptom_check_id": check.ID,
		"patient_id":       check.PatientID,
		"urgency_score":    check.UrgencyScore(),
		"top_condition":    result.TopCondition(),
		"status":           check.Status,
	}).Info("Symptom check completed")

	s.maybeAlert(check)
	return check, nil
}

// Analyze runs the engine without persisting, consulting the result cache first
func (s *SymptomCheckService) Analyze(ctx context.Context, req *domain.SymptomCheckRequest) (*domain.TriageResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var key string
	if s.cache != nil {
		key = cache.RequestKey(req)
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.WithError(err).Warn("Result cache lookup failed")
		}
	}

	result, err := s.engine.Analyze(req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache triage result")
		}
	}

	return result, nil
}

// Get returns a stored symptom check
func (s *SymptomCheckService) Get(ctx context.Context, id string) (*domain.SymptomCheck, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForPatient returns a patient's checks, newest first
func (s *SymptomCheckService) ListForPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.SymptomCheck, error) {
	if patientID == "" {
		return nil, domain.NewValidationError("patient_id", "must not be empty", patientID)
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByPatient(ctx, patientID, clampLimit(limit), offset)
}

// ListRecent returns the staff queue of checks at or above minUrgency, most urgent first
func (s *SymptomCheckService) ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*domain.SymptomCheck, error) {
	return s.repo.ListRecent(ctx, minUrgency, clampLimit(limit))
}

func (s *SymptomCheckService) maybeAlert(check *domain.SymptomCheck) {
	if s.alerts == nil || check.Status != domain.StatusCompleted {
		return
	}
	if check.UrgencyScore() < s.alertAbove {
		return
	}
	s.alerts.Publish(check)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
