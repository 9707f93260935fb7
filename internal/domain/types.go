package domain

import (
	"strings"
	"time"
)

// DurationBucket is the coarse duration category used for urgency weighting
type DurationBucket string

const (
	DurationHours  DurationBucket = "hours"
	DurationDays   DurationBucket = "days"
	DurationWeeks  DurationBucket = "weeks"
	DurationMonths DurationBucket = "months"
	DurationYears  DurationBucket = "years"
)

// String returns the string representation of the bucket
func (d DurationBucket) String() string {
	return string(d)
}

// Severity bounds for the caller's self-assessment
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Urgency score bounds
const (
	MinUrgencyScore = 1.0
	MaxUrgencyScore = 5.0
)

// UrgencyBand is the discrete urgency classification derived from a score
type UrgencyBand string

const (
	BandEmergency  UrgencyBand = "EMERGENCY"
	BandUrgent     UrgencyBand = "URGENT"
	BandSemiUrgent UrgencyBand = "SEMI_URGENT"
	BandNonUrgent  UrgencyBand = "NON_URGENT"
	BandSelfCare   UrgencyBand = "SELF_CARE"
)

// String returns the string representation of the band
func (b UrgencyBand) String() string {
	return string(b)
}

// BandForScore resolves a score to its band, evaluating the most urgent band first.
// A score sitting exactly on a boundary belongs to the more urgent band.
func BandForScore(score float64) UrgencyBand {
	switch {
	case score >= 4.5:
		return BandEmergency
	case score >= 3.5:
		return BandUrgent
	case score >= 2.5:
		return BandSemiUrgent
	case score >= 1.5:
		return BandNonUrgent
	default:
		return BandSelfCare
	}
}

// Symptom is a single reported symptom with optional location and characteristics
type Symptom struct {
	Description     string   `json:"description" binding:"required"`
	Location        string   `json:"location,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// Normalized returns the lower-cased, trimmed description used for knowledge lookups
func (s Symptom) Normalized() string {
	return NormalizeSymptom(s.Description)
}

// NormalizeSymptom lower-cases and trims a free-text symptom
func NormalizeSymptom(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// SymptomCheckRequest is the engine input for a single analysis
type SymptomCheckRequest struct {
	Symptoms      []Symptom      `json:"symptoms"`
	SeverityLevel int            `json:"severity_level"`
	Duration      DurationBucket `json:"duration"`
}

// Descriptions returns the symptom descriptions in input order.
// Duplicates are kept.
func (r *SymptomCheckRequest) Descriptions() []string {
	out := make([]string, 0, len(r.Symptoms))
	for _, s := range r.Symptoms {
		out = append(out, s.Description)
	}
	return out
}

// SymptomCheckSubmission is a patient's raw submission. Duration is the label the
// patient picked and is translated to a bucket before scoring.
type SymptomCheckSubmission struct {
	PatientID     string    `json:"patient_id" binding:"required"`
	Symptoms      []Symptom `json:"symptoms" binding:"dive"`
	SeverityLevel int       `json:"severity_level"`
	Duration      string    `json:"duration"`
}

// PossibleCondition is a ranked candidate condition
type PossibleCondition struct {
	Name        string `json:"name"`
	Probability int    `json:"probability"`
	Description string `json:"description"`
}

// UrgencyLevel is the bounded urgency score with its human-readable classification
type UrgencyLevel struct {
	Score       float64     `json:"score"`
	Band        UrgencyBand `json:"band"`
	Description string      `json:"description"`
}

// TriageResult is the complete engine output
type TriageResult struct {
	PossibleConditions     []PossibleCondition `json:"possible_conditions"`
	UrgencyLevel           UrgencyLevel        `json:"urgency_level"`
	GeneralAdvice          string              `json:"general_advice"`
	SuggestedActions       []string            `json:"suggested_actions"`
	FollowUpRecommendation string              `json:"follow_up_recommendation"`
	Disclaimer             string              `json:"disclaimer"`
}

// TopCondition returns the highest ranked condition name, or empty when none matched
func (r *TriageResult) TopCondition() string {
	if r == nil || len(r.PossibleConditions) == 0 {
		return ""
	}
	return r.PossibleConditions[0].Name
}

// SymptomCheckStatus records whether an analysis produced a real or a fallback result
type SymptomCheckStatus string

const (
	StatusCompleted SymptomCheckStatus = "completed"
	StatusError     SymptomCheckStatus = "error"
)

// SymptomCheck is a persisted triage submission
type SymptomCheck struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patient_id"`
	Symptoms      []Symptom          `json:"symptoms"`
	SeverityLevel int                `json:"severity_level"`
	Duration      string             `json:"duration"`
	Result        *TriageResult      `json:"result"`
	Status        SymptomCheckStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// UrgencyScore returns the stored urgency score, zero when no result is attached
func (c *SymptomCheck) UrgencyScore() float64 {
	if c.Result == nil {
		return 0
	}
	return c.Result.UrgencyLevel.Score
}
