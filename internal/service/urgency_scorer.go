package service

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// Combination rule bonuses. These are empirically chosen constants, not validated
// clinical weights.
const (
	cardioPulmonaryBonus = 1.0
	meningitisBonus      = 1.5
	neurologicalBonus    = 0.8
	maxSeverityBonus     = 0.5
)

// Symptom classes matched by substring against normalized symptom text, so
// free-text variants such as "severe headache" still raise urgency. Condition
// ranking looks symptoms up by exact key and only credits table vocabulary.
var (
	chestPainClass  = []string{"chest pain", "chest tightness", "chest pressure"}
	breathlessClass = []string{"shortness of breath", "difficulty breathing", "trouble breathing", "breathlessness"}
	feverClass      = []string{"fever", "high temperature"}
	headacheClass   = []string{"headache"}
	stiffNeckClass  = []string{"stiff neck", "neck stiffness"}
	visionClass     = []string{"vision"}
)

// CombinationRule adds a fixed bonus when a pattern of symptoms is present
type CombinationRule struct {
	Name        string
	Description string
	Bonus       float64
	Matches     func(symptoms []string, severityLevel int) bool
}

// AppliedBonus records a combination rule that fired
type AppliedBonus struct {
	Rule  string  `json:"rule"`
	Bonus float64 `json:"bonus"`
}

// UrgencyBreakdown explains how an urgency score was reached
type UrgencyBreakdown struct {
	Base           float64        `json:"base"`
	DurationFactor float64        `json:"duration_factor"`
	Bonuses        []AppliedBonus `json:"bonuses"`
	Raw            float64        `json:"raw"`
	Score          float64        `json:"score"`
}

// UrgencyScorer combines severity, duration and symptom patterns into a bounded score
type UrgencyScorer struct {
	kb     *knowledge.KnowledgeBase
	rules  []CombinationRule
	logger *logrus.Logger
}

// NewUrgencyScorer creates a new urgency scorer
func NewUrgencyScorer(kb *knowledge.KnowledgeBase, logger *logrus.Logger) *UrgencyScorer {
	return &UrgencyScorer{
		kb:     kb,
		rules:  defaultCombinationRules(),
		logger: logger,
	}
}

func defaultCombinationRules() []CombinationRule {
	return []CombinationRule{
		{
			Name:        "cardiopulmonary",
			Description: "Chest pain with breathlessness suggests cardiac or pulmonary compromise",
			Bonus:       cardioPulmonaryBonus,
			Matches: func(symptoms []string, _ int) bool {
				return anyInClass(symptoms, chestPainClass) && anyInClass(symptoms, breathlessClass)
			},
		},
		{
			Name:        "meningitis",
			Description: "Fever, headache and neck stiffness together suggest meningitis",
			Bonus:       meningitisBonus,
			Matches: func(symptoms []string, _ int) bool {
				return anyInClass(symptoms, feverClass) &&
					anyInClass(symptoms, headacheClass) &&
					anyInClass(symptoms, stiffNeckClass)
			},
		},
		{
			Name:        "neurological",
			Description: "Headache with vision changes suggests a neurological event",
			Bonus:       neurologicalBonus,
			Matches: func(symptoms []string, _ int) bool {
				return anyInClass(symptoms, headacheClass) && anyInClass(symptoms, visionClass)
			},
		},
		{
			Name:        "max_severity",
			Description: "Patient rated severity at the top of the scale",
			Bonus:       maxSeverityBonus,
			Matches: func(_ []string, severityLevel int) bool {
				return severityLevel >= domain.MaxSeverity
			},
		},
	}
}

// CalculateUrgencyScore returns the urgency score in [1.0, 5.0]
func (s *UrgencyScorer) CalculateUrgencyScore(symptoms []string, severityLevel int, duration domain.DurationBucket) float64 {
	return s.Breakdown(symptoms, severityLevel, duration).Score
}

// Breakdown computes the urgency score and reports each contribution.
// Every rule is evaluated independently so bonuses stack.
func (s *UrgencyScorer) Breakdown(symptoms []string, severityLevel int, duration domain.DurationBucket) UrgencyBreakdown {
	normalized := make([]string, 0, len(symptoms))
	for _, sym := range symptoms {
		normalized = append(normalized, domain.NormalizeSymptom(sym))
	}

	factor := s.kb.DurationFactor(duration)
	b := UrgencyBreakdown{
		Base:           float64(severityLevel),
		DurationFactor: factor,
	}

	raw := b.Base * factor
	for _, rule := range s.rules {
		if rule.Matches(normalized, severityLevel) {
			raw += rule.Bonus
			b.Bonuses = append(b.Bonuses, AppliedBonus{Rule: rule.Name, Bonus: rule.Bonus})
		}
	}
	b.Raw = raw
	b.Score = clampScore(roundTo(raw, 2))

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"severity":        severityLevel,
			"duration":        duration,
			"duration_factor": factor,
			"bonuses":         len(b.Bonuses),
			"score":           b.Score,
		}).Debug("Calculated urgency score")
	}

	return b
}

// GetUrgencyDescription maps a score to its human-readable urgency band
func GetUrgencyDescription(score float64) string {
	return urgencyDescriptions[domain.BandForScore(score)]
}

var urgencyDescriptions = map[domain.UrgencyBand]string{
	domain.BandEmergency:  "Emergency - Seek immediate medical attention",
	domain.BandUrgent:     "Urgent - Seek medical care within 24 hours",
	domain.BandSemiUrgent: "Semi-urgent - Schedule an appointment within a few days",
	domain.BandNonUrgent:  "Non-urgent - Schedule a routine appointment",
	domain.BandSelfCare:   "Self-care - Monitor symptoms at home",
}

func clampScore(score float64) float64 {
	return math.Max(domain.MinUrgencyScore, math.Min(domain.MaxUrgencyScore, score))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func anyInClass(symptoms []string, class []string) bool {
	for _, s := range symptoms {
		for _, phrase := range class {
			if strings.Contains(s, phrase) {
				return true
			}
		}
	}
	return false
}
