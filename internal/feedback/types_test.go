package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/symptom-triage-server/internal/domain"
)

func TestFeedback_Derive(t *testing.T) {
	emergency := &domain.SymptomCheck{
		ID: "check-1",
		Result: &domain.TriageResult{
			UrgencyLevel:       domain.UrgencyLevel{Score: 4.6, Band: domain.BandEmergency},
			PossibleConditions: []domain.PossibleCondition{{Name: "Heart Attack", Probability: 71}},
		},
	}

	tests := []struct {
		name      string
		check     *domain.SymptomCheck
		clinician float64
		claimed   bool
		wantAgree bool
		wantScore float64
		wantCond  string
	}{
		{"same band overrides client disagreement", emergency, 4.8, false, true, 4.6, "Heart Attack"},
		{"different band overrides client agreement", emergency, 2.0, true, false, 4.6, "Heart Attack"},
		{"check without result", &domain.SymptomCheck{ID: "check-2"}, 3.0, true, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &Feedback{
				SymptomCheckID:     "client-value",
				ReviewerID:         "dr-a",
				SuggestedUrgency:   1.0,
				SuggestedCondition: "Common Cold",
				ClinicianUrgency:   tt.clinician,
				Agreed:             tt.claimed,
			}

			fb.Derive(tt.check)

			assert.Equal(t, tt.check.ID, fb.SymptomCheckID)
			assert.Equal(t, tt.wantScore, fb.SuggestedUrgency)
			assert.Equal(t, tt.wantCond, fb.SuggestedCondition)
			assert.Equal(t, tt.wantAgree, fb.Agreed)
		})
	}
}
