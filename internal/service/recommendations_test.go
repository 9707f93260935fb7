package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

func TestRecommendationComposer_Tiers(t *testing.T) {
	composer := NewRecommendationComposer(knowledge.Default())

	tests := []struct {
		score float64
		band  domain.UrgencyBand
	}{
		{5.0, domain.BandEmergency},
		{4.5, domain.BandEmergency},
		{4.49, domain.BandUrgent},
		{3.5, domain.BandUrgent},
		{2.5, domain.BandSemiUrgent},
		{1.5, domain.BandNonUrgent},
		{1.0, domain.BandSelfCare},
	}

	for _, tt := range tests {
		rec := composer.Compose(tt.score, nil)
		tier := adviceTiers[tt.band]
		assert.Equal(t, tier.generalAdvice, rec.GeneralAdvice, "score %v", tt.score)
		assert.Equal(t, tier.actions, rec.SuggestedActions, "score %v", tt.score)
		assert.Equal(t, tier.followUp, rec.FollowUpRecommendation, "score %v", tt.score)
		assert.Equal(t, MedicalDisclaimer, rec.Disclaimer)
	}
}

func TestRecommendationComposer_TopConditionTreatments(t *testing.T) {
	kb := knowledge.Default()
	composer := NewRecommendationComposer(kb)

	cond, ok := kb.Condition("Tension Headache")
	require.True(t, ok)
	require.NotEmpty(t, cond.CommonTreatments)

	rec := composer.Compose(1.0, []domain.PossibleCondition{
		{Name: "Tension Headache", Probability: 70},
		{Name: "Migraine", Probability: 60},
	})

	base := len(adviceTiers[domain.BandSelfCare].actions)
	require.Len(t, rec.SuggestedActions, base+len(cond.CommonTreatments))
	for i, treatment := range cond.CommonTreatments {
		assert.Equal(t, "Consider: "+treatment, rec.SuggestedActions[base+i])
	}
}

func TestRecommendationComposer_UnknownTopCondition(t *testing.T) {
	composer := NewRecommendationComposer(knowledge.Default())

	rec := composer.Compose(2.0, []domain.PossibleCondition{{Name: "Not A Condition", Probability: 50}})
	for _, action := range rec.SuggestedActions {
		assert.False(t, strings.HasPrefix(action, treatmentPrefix))
	}
}

func TestRecommendationComposer_DoesNotMutateTier(t *testing.T) {
	composer := NewRecommendationComposer(knowledge.Default())
	before := len(adviceTiers[domain.BandEmergency].actions)

	composer.Compose(5.0, []domain.PossibleCondition{{Name: "Heart Attack", Probability: 71}})
	composer.Compose(5.0, []domain.PossibleCondition{{Name: "Heart Attack", Probability: 71}})

	assert.Len(t, adviceTiers[domain.BandEmergency].actions, before)
}

func TestTranslateDuration(t *testing.T) {
	tests := []struct {
		label  string
		want   domain.DurationBucket
		wantOK bool
	}{
		{"Less than a day", domain.DurationHours, true},
		{"1-3 days", domain.DurationDays, true},
		{"4-7 days", domain.DurationDays, true},
		{"1-2 weeks", domain.DurationWeeks, true},
		{"2-4 weeks", domain.DurationWeeks, true},
		{"1-3 months", domain.DurationMonths, true},
		{"3+ months", domain.DurationMonths, true},
		{" LESS THAN A DAY ", domain.DurationHours, true},
		{"years", domain.DurationYears, true},
		{"hours", domain.DurationHours, true},
		{"a while", domain.DurationDays, false},
		{"", domain.DurationDays, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := TranslateDuration(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDurationOptions(t *testing.T) {
	opts := DurationOptions()
	require.Len(t, opts, 7)
	assert.Equal(t, "Less than a day", opts[0].Label)

	opts[0].Label = "changed"
	assert.Equal(t, "Less than a day", DurationOptions()[0].Label)
}
