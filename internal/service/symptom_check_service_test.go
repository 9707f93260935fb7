package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/cache"
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// MockSymptomCheckRepository is a mock implementation of domain.SymptomCheckRepository
type MockSymptomCheckRepository struct {
	mock.Mock
}

func (m *MockSymptomCheckRepository) Create(ctx context.Context, check *domain.SymptomCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockSymptomCheckRepository) GetByID(ctx context.Context, id string) (*domain.SymptomCheck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SymptomCheck), args.Error(1)
}

func (m *MockSymptomCheckRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.SymptomCheck, error) {
	args := m.Called(ctx, patientID, limit, offset)
	return args.Get(0).([]*domain.SymptomCheck), args.Error(1)
}

func (m *MockSymptomCheckRepository) ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*domain.SymptomCheck, error) {
	args := m.Called(ctx, minUrgency, limit)
	return args.Get(0).([]*domain.SymptomCheck), args.Error(1)
}

func (m *MockSymptomCheckRepository) Close() error {
	return m.Called().Error(0)
}

// MockResultCache is a mock implementation of domain.ResultCache
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) Get(ctx context.Context, key string) (*domain.TriageResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TriageResult), args.Error(1)
}

func (m *MockResultCache) Set(ctx context.Context, key string, result *domain.TriageResult, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

// MockAlertPublisher records published checks
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) Publish(check *domain.SymptomCheck) {
	m.Called(check)
}

func submission(severity int, duration string, symptoms ...string) *domain.SymptomCheckSubmission {
	sub := &domain.SymptomCheckSubmission{PatientID: "patient-1", SeverityLevel: severity, Duration: duration}
	for _, s := range symptoms {
		sub.Symptoms = append(sub.Symptoms, domain.Symptom{Description: s})
	}
	return sub
}

func TestSymptomCheckService_Submit(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := new(MockSymptomCheckRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.SymptomCheck")).Return(nil)

	alerts := new(MockAlertPublisher)
	alerts.On("Publish", mock.AnythingOfType("*domain.SymptomCheck")).Return()

	svc := NewSymptomCheckService(
		NewTriageEngine(knowledge.Default(), logger), repo, logger,
		WithAlertPublisher(alerts, 3.5),
		WithClock(func() time.Time { return fixed }),
	)

	check, err := svc.Submit(ctx, submission(3, "Less than a day", "chest pain", "shortness of breath"))
	require.NoError(t, err)

	assert.NotEmpty(t, check.ID)
	assert.Equal(t, "patient-1", check.PatientID)
	assert.Equal(t, "Less than a day", check.Duration)
	assert.Equal(t, domain.StatusCompleted, check.Status)
	assert.Equal(t, fixed, check.CreatedAt)
	require.NotNil(t, check.Result)
	assert.Equal(t, 4.6, check.Result.UrgencyLevel.Score)
	assert.Equal(t, "Heart Attack", check.Result.TopCondition())

	repo.AssertExpectations(t)
	alerts.AssertCalled(t, "Publish", check)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "Symptom check completed", hook.LastEntry().Message)
}

func TestSymptomCheckService_SubmitBelowAlertThreshold(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	repo := new(MockSymptomCheckRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	alerts := new(MockAlertPublisher)

	svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), repo, logger,
		WithAlertPublisher(alerts, 3.5))

	check, err := svc.Submit(ctx, submission(1, "1-2 weeks", "headache"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, check.UrgencyScore())
	alerts.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestSymptomCheckService_SubmitValidationError(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	repo := new(MockSymptomCheckRepository)

	svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), repo, logger)

	_, err := svc.Submit(ctx, submission(7, "1-3 days", "cough"))
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.Submit(ctx, nil)
	assert.True(t, domain.IsValidationError(err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSymptomCheckService_SubmitFallback(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()

	repo := new(MockSymptomCheckRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(c *domain.SymptomCheck) bool {
		return c.Status == domain.StatusError && c.Result != nil
	})).Return(nil)
	alerts := new(MockAlertPublisher)

	svc := NewSymptomCheckService(NewTriageEngine(nil, logger), repo, logger,
		WithAlertPublisher(alerts, 1.0))

	check, err := svc.Submit(ctx, submission(3, "1-3 days", "cough"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, check.Status)
	assert.Equal(t, 3.0, check.UrgencyScore())
	assert.Empty(t, check.Result.PossibleConditions)

	repo.AssertExpectations(t)
	alerts.AssertNotCalled(t, "Publish", mock.Anything)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "Storing fallback triage result" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestSymptomCheckService_SubmitPersistenceError(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	repo := new(MockSymptomCheckRepository)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), repo, logger)

	check, err := svc.Submit(ctx, submission(2, "1-3 days", "cough"))
	assert.Nil(t, check)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save symptom check")
}

func TestSymptomCheckService_AnalyzeUsesCache(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	req := request(2, domain.DurationDays, "cough")
	key := cache.RequestKey(req)

	t.Run("hit skips the engine", func(t *testing.T) {
		cached := &domain.TriageResult{UrgencyLevel: domain.UrgencyLevel{Score: 4.2}}
		rc := new(MockResultCache)
		rc.On("Get", ctx, key).Return(cached, nil)

		svc := NewSymptomCheckService(NewTriageEngine(nil, logger), nil, logger, WithResultCache(rc, time.Minute))
		got, err := svc.Analyze(ctx, req)
		require.NoError(t, err)
		assert.Same(t, cached, got)
		rc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss stores the result", func(t *testing.T) {
		rc := new(MockResultCache)
		rc.On("Get", ctx, key).Return(nil, domain.ErrCacheMiss)
		rc.On("Set", ctx, key, mock.AnythingOfType("*domain.TriageResult"), time.Minute).Return(nil)

		svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), nil, logger, WithResultCache(rc, time.Minute))
		got, err := svc.Analyze(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2.0, got.UrgencyLevel.Score)
		rc.AssertExpectations(t)
	})

	t.Run("cache failures degrade", func(t *testing.T) {
		hookLogger, hook := test.NewNullLogger()
		rc := new(MockResultCache)
		rc.On("Get", ctx, key).Return(nil, errors.New("redis down"))
		rc.On("Set", ctx, key, mock.Anything, time.Minute).Return(errors.New("redis down"))

		svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), hookLogger), nil, hookLogger, WithResultCache(rc, time.Minute))
		got, err := svc.Analyze(ctx, req)
		require.NoError(t, err)
		assert.NotNil(t, got)

		warnings := 0
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				warnings++
			}
		}
		assert.Equal(t, 2, warnings)
	})

	t.Run("fallback is not cached", func(t *testing.T) {
		rc := new(MockResultCache)
		rc.On("Get", ctx, key).Return(nil, domain.ErrCacheMiss)

		svc := NewSymptomCheckService(NewTriageEngine(nil, logger), nil, logger, WithResultCache(rc, time.Minute))
		_, err := svc.Analyze(ctx, req)
		_, ok := domain.AsAnalysisUnavailable(err)
		assert.True(t, ok)
		rc.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid requests skip the cache", func(t *testing.T) {
		rc := new(MockResultCache)
		svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), nil, logger, WithResultCache(rc, time.Minute))
		_, err := svc.Analyze(ctx, request(0, domain.DurationDays, "cough"))
		assert.True(t, domain.IsValidationError(err))
		rc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestSymptomCheckService_Listing(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()

	repo := new(MockSymptomCheckRepository)
	repo.On("ListByPatient", ctx, "patient-1", defaultListLimit, 0).Return([]*domain.SymptomCheck{{ID: "a"}}, nil)
	repo.On("ListRecent", ctx, 3.5, maxListLimit).Return([]*domain.SymptomCheck{}, nil)
	repo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

	svc := NewSymptomCheckService(NewTriageEngine(knowledge.Default(), logger), repo, logger)

	checks, err := svc.ListForPatient(ctx, "patient-1", 0, -5)
	require.NoError(t, err)
	assert.Len(t, checks, 1)

	_, err = svc.ListForPatient(ctx, "", 10, 0)
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.ListRecent(ctx, 3.5, 1000)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.AssertExpectations(t)
}
