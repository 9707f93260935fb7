package service

import (
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

// MedicalDisclaimer is appended to every triage result
const MedicalDisclaimer = "This assessment is for informational purposes only and is not a medical diagnosis. " +
	"It does not replace advice from a qualified healthcare professional. " +
	"If you believe you are experiencing a medical emergency, call your local emergency number immediately."

const treatmentPrefix = "Consider: "

// Recommendation is the advice portion of a triage result
type Recommendation struct {
	GeneralAdvice          string
	SuggestedActions       []string
	FollowUpRecommendation string
	Disclaimer             string
}

type adviceTier struct {
	generalAdvice string
	actions       []string
	followUp      string
}

var adviceTiers = map[domain.UrgencyBand]adviceTier{
	domain.BandEmergency: {
		generalAdvice: "Your symptoms may indicate a serious condition that requires immediate medical attention.",
		actions: []string{
			"Call emergency services or go to the nearest emergency department now",
			"Do not drive yourself if you feel faint, confused or short of breath",
			"Stay with someone until help arrives",
		},
		followUp: "Follow up with your doctor after emergency treatment.",
	},
	domain.BandUrgent: {
		generalAdvice: "Your symptoms should be evaluated by a healthcare provider within 24 hours.",
		actions: []string{
			"Contact your doctor today or visit an urgent care clinic",
			"Seek emergency care if symptoms suddenly worsen",
			"Keep a record of your symptoms and when they started",
		},
		followUp: "Arrange a follow-up visit once you have been assessed.",
	},
	domain.BandSemiUrgent: {
		generalAdvice: "Your symptoms should be checked by a healthcare provider within the next few days.",
		actions: []string{
			"Schedule an appointment with your doctor within a few days",
			"Monitor your symptoms and note any changes",
			"Seek care sooner if symptoms get worse",
		},
		followUp: "Follow up with your doctor if symptoms persist beyond a week.",
	},
	domain.BandNonUrgent: {
		generalAdvice: "Your symptoms do not appear urgent but may benefit from a routine check.",
		actions: []string{
			"Book a routine appointment with your doctor",
			"Rest and stay hydrated",
			"Use over-the-counter remedies as appropriate",
		},
		followUp: "Follow up with your doctor if symptoms do not improve within two weeks.",
	},
	domain.BandSelfCare: {
		generalAdvice: "Your symptoms can likely be managed with self-care at home.",
		actions: []string{
			"Rest and monitor your symptoms",
			"Stay hydrated and eat regular meals",
			"Use over-the-counter remedies if needed",
		},
		followUp: "Contact your doctor if symptoms worsen or new symptoms appear.",
	},
}

// RecommendationComposer turns an urgency score and ranked conditions into advice
type RecommendationComposer struct {
	kb *knowledge.KnowledgeBase
}

// NewRecommendationComposer creates a new recommendation composer
func NewRecommendationComposer(kb *knowledge.KnowledgeBase) *RecommendationComposer {
	return &RecommendationComposer{kb: kb}
}

// Compose builds the advice for an urgency score. Treatments for the top-ranked
// condition are appended to the tier's actions without deduplication.
func (c *RecommendationComposer) Compose(score float64, conditions []domain.PossibleCondition) Recommendation {
	tier := adviceTiers[domain.BandForScore(score)]

	actions := make([]string, 0, len(tier.actions)+4)
	actions = append(actions, tier.actions...)

	if len(conditions) > 0 {
		if cond, ok := c.kb.Condition(conditions[0].Name); ok {
			for _, treatment := range cond.CommonTreatments {
				actions = append(actions, treatmentPrefix+treatment)
			}
		}
	}

	return Recommendation{
		GeneralAdvice:          tier.generalAdvice,
		SuggestedActions:       actions,
		FollowUpRecommendation: tier.followUp,
		Disclaimer:             MedicalDisclaimer,
	}
}
