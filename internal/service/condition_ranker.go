package service

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

const (
	maxRankedConditions  = 3
	probabilityCeiling   = 95
	minCorroboratingHits = 2

	unknownConditionDescription = "No detailed description is available for this condition."
)

// conditionTally accumulates evidence for one candidate condition
type conditionTally struct {
	name            string
	score           float64
	count           int
	keySymptomMatch bool
}

// ConditionRanker turns per-symptom associations into ranked candidate conditions
type ConditionRanker struct {
	kb     *knowledge.KnowledgeBase
	logger *logrus.Logger
}

// NewConditionRanker creates a new condition ranker
func NewConditionRanker(kb *knowledge.KnowledgeBase, logger *logrus.Logger) *ConditionRanker {
	return &ConditionRanker{kb: kb, logger: logger}
}

// Rank returns at most three conditions sorted by probability, highest first.
// Ties are broken by condition name so results are stable.
func (r *ConditionRanker) Rank(symptoms []string) []domain.PossibleCondition {
	tallies := r.tally(symptoms)

	candidates := make([]*conditionTally, 0, len(tallies))
	for _, t := range tallies {
		// A single non-key match is too weak to surface on its own.
		if t.keySymptomMatch || t.count >= minCorroboratingHits {
			candidates = append(candidates, t)
		}
	}

	ranked := make([]domain.PossibleCondition, 0, len(candidates))
	for _, t := range candidates {
		ranked = append(ranked, domain.PossibleCondition{
			Name:        t.name,
			Probability: probability(t.score, len(symptoms)),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Probability != ranked[j].Probability {
			return ranked[i].Probability > ranked[j].Probability
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > maxRankedConditions {
		ranked = ranked[:maxRankedConditions]
	}

	for i := range ranked {
		ranked[i].Description = r.describe(ranked[i].Name)
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"symptom_count":   len(symptoms),
			"candidate_count": len(candidates),
			"returned":        len(ranked),
		}).Debug("Ranked possible conditions")
	}

	return ranked
}

// tally sums likelihoods per condition. Every input entry counts, duplicates included.
func (r *ConditionRanker) tally(symptoms []string) map[string]*conditionTally {
	tallies := make(map[string]*conditionTally)
	for _, symptom := range symptoms {
		for _, assoc := range r.kb.Associations(symptom) {
			t, ok := tallies[assoc.Condition]
			if !ok {
				t = &conditionTally{name: assoc.Condition}
				tallies[assoc.Condition] = t
			}
			t.score += assoc.Likelihood
			t.count++
			if assoc.KeySymptom {
				t.keySymptomMatch = true
			}
		}
	}
	return tallies
}

func (r *ConditionRanker) describe(name string) string {
	if cond, ok := r.kb.Condition(name); ok && cond.Description != "" {
		return cond.Description
	}
	return unknownConditionDescription
}

// probability normalizes a likelihood sum by the square root of the number of
// reported symptoms and caps it at 95.
func probability(score float64, symptomCount int) int {
	if symptomCount <= 0 {
		return 0
	}
	p := int(math.Round(100 * score / math.Sqrt(float64(symptomCount))))
	if p > probabilityCeiling {
		return probabilityCeiling
	}
	return p
}
