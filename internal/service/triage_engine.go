package service

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// fallbackUrgencyScore is the moderate urgency reported when analysis fails
const fallbackUrgencyScore = 3.0

// TriageEngine runs the full symptom analysis in memory. It holds no per-call
// state and can be shared across goroutines.
type TriageEngine struct {
	kb       *knowledge.KnowledgeBase
	scorer   *UrgencyScorer
	ranker   *ConditionRanker
	composer *RecommendationComposer
	logger   *logrus.Logger
}

// NewTriageEngine creates a new triage engine over a knowledge base
func NewTriageEngine(kb *knowledge.KnowledgeBase, logger *logrus.Logger) *TriageEngine {
	e := &TriageEngine{kb: kb, logger: logger}
	if kb != nil {
		e.scorer = NewUrgencyScorer(kb, logger)
		e.ranker = NewConditionRanker(kb, logger)
		e.composer = NewRecommendationComposer(kb)
	}
	return e
}

// Analyze validates the request and produces a triage result.
// When the engine cannot run it returns an *domain.AnalysisUnavailableError
// carrying a conservative fallback result.
func (e *TriageEngine) Analyze(req *domain.SymptomCheckRequest) (result *domain.TriageResult, err error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if e.kb == nil {
		return nil, e.unavailable(domain.ErrKnowledgeBaseUnavailable)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = e.unavailable(fmt.Errorf("triage computation panicked: %v", r))
		}
	}()

	return e.IdentifyPossibleConditions(req.Descriptions(), req.SeverityLevel, req.Duration), nil
}

// IdentifyPossibleConditions ranks conditions, scores urgency and composes advice
// from the same symptom list, severity and duration.
func (e *TriageEngine) IdentifyPossibleConditions(symptoms []string, severityLevel int, duration domain.DurationBucket) *domain.TriageResult {
	conditions := e.ranker.Rank(symptoms)
	score := e.scorer.CalculateUrgencyScore(symptoms, severityLevel, duration)
	rec := e.composer.Compose(score, conditions)

	return &domain.TriageResult{
		PossibleConditions: conditions,
		UrgencyLevel: domain.UrgencyLevel{
			Score:       score,
			Band:        domain.BandForScore(score),
			Description: GetUrgencyDescription(score),
		},
		GeneralAdvice:          rec.GeneralAdvice,
		SuggestedActions:       rec.SuggestedActions,
		FollowUpRecommendation: rec.FollowUpRecommendation,
		Disclaimer:             rec.Disclaimer,
	}
}

// Explain returns the urgency score breakdown for a request.
// It returns ErrKnowledgeBaseUnavailable when the engine has no tables.
func (e *TriageEngine) Explain(req *domain.SymptomCheckRequest) (*UrgencyBreakdown, error) {
	if e.scorer == nil {
		return nil, domain.ErrKnowledgeBaseUnavailable
	}
	b := e.scorer.Breakdown(req.Descriptions(), req.SeverityLevel, req.Duration)
	return &b, nil
}

func (e *TriageEngine) unavailable(cause error) error {
	if e.logger != nil {
		e.logger.WithError(cause).Error("Symptom analysis unavailable, returning fallback result")
	}
	return &domain.AnalysisUnavailableError{
		Cause:    cause,
		Fallback: FallbackResult(),
	}
}

// FallbackResult is the conservative result used when analysis is unavailable
func FallbackResult() *domain.TriageResult {
	return &domain.TriageResult{
		PossibleConditions: []domain.PossibleCondition{},
		UrgencyLevel: domain.UrgencyLevel{
			Score:       fallbackUrgencyScore,
			Band:        domain.BandForScore(fallbackUrgencyScore),
			Description: GetUrgencyDescription(fallbackUrgencyScore),
		},
		GeneralAdvice: "We were unable to analyze your symptoms at this time. Please consult a healthcare professional.",
		SuggestedActions: []string{
			"Contact your doctor to discuss your symptoms",
			"Call emergency services if your symptoms are severe or worsening",
		},
		FollowUpRecommendation: "Please try the symptom checker again later or speak to a healthcare provider.",
		Disclaimer:             MedicalDisclaimer,
	}
}

// validateRequest rejects malformed input before any scoring happens
func validateRequest(req *domain.SymptomCheckRequest) error {
	if req == nil {
		return domain.NewValidationError("request", "must not be nil", nil)
	}
	if req.SeverityLevel < domain.MinSeverity || req.SeverityLevel > domain.MaxSeverity {
		return domain.NewValidationError("severity_level",
			fmt.Sprintf("must be between %d and %d", domain.MinSeverity, domain.MaxSeverity),
			req.SeverityLevel)
	}
	for i, s := range req.Symptoms {
		if strings.TrimSpace(s.Description) == "" {
			return domain.NewValidationError(fmt.Sprintf("symptoms[%d].description", i), "must not be empty", s.Description)
		}
	}
	return nil
}
