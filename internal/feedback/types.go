// Package feedback stores clinician reviews of triage results. Reviews record
// whether the clinician agreed with the suggested urgency and which condition
// they confirmed, so the knowledge tables can be audited against real outcomes.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/symptom-triage-server/internal/domain"
)

// ExportVersion is written into every export document
const ExportVersion = "1.0"

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

// Feedback is one clinician's review of one symptom check.
type Feedback struct {
	ID                 int64     `json:"id,omitempty"`
	SymptomCheckID     string    `json:"symptom_check_id" binding:"required"`
	ReviewerID         string    `json:"reviewer_id" binding:"required"`
	SuggestedUrgency   float64   `json:"suggested_urgency"`             // engine score
	SuggestedCondition string    `json:"suggested_condition,omitempty"` // engine top condition
	ClinicianUrgency   float64   `json:"clinician_urgency"`
	ConfirmedCondition string    `json:"confirmed_condition,omitempty"`
	Agreed             bool      `json:"agreed"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks required fields and urgency bounds
func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.SymptomCheckID) == "" {
		return domain.NewValidationError("symptom_check_id", "is required", f.SymptomCheckID)
	}
	if strings.TrimSpace(f.ReviewerID) == "" {
		return domain.NewValidationError("reviewer_id", "is required", f.ReviewerID)
	}
	if f.ClinicianUrgency < domain.MinUrgencyScore || f.ClinicianUrgency > domain.MaxUrgencyScore {
		return domain.NewValidationError("clinician_urgency",
			fmt.Sprintf("must be between %.1f and %.1f", domain.MinUrgencyScore, domain.MaxUrgencyScore),
			f.ClinicianUrgency)
	}
	return nil
}

// Derive fills the engine's side of the review from the stored check. A review
// agrees with the engine when both urgencies fall in the same band.
func (f *Feedback) Derive(check *domain.SymptomCheck) {
	f.SymptomCheckID = check.ID
	f.SuggestedUrgency = check.UrgencyScore()
	f.SuggestedCondition = check.Result.TopCondition()
	f.Agreed = domain.BandForScore(f.SuggestedUrgency) == domain.BandForScore(f.ClinicianUrgency)
}

// Stats summarizes agreement between the engine and clinicians
type Stats struct {
	Total            int64   `json:"total"`
	Agreed           int64   `json:"agreed"`
	AgreementRate    float64 `json:"agreement_rate"`
	MeanUrgencyDelta float64 `json:"mean_urgency_delta"` // clinician minus engine
}

// Store defines the interface for feedback storage operations.
type Store interface {
	// Save stores or updates a review. A second review of the same check by the
	// same reviewer replaces the first.
	Save(ctx context.Context, feedback *Feedback) error

	// Get returns the review by reviewer for a check, or nil when absent.
	Get(ctx context.Context, symptomCheckID, reviewerID string) (*Feedback, error)

	// ListForCheck returns every review of a check, oldest first.
	ListForCheck(ctx context.Context, symptomCheckID string) ([]*Feedback, error)

	// List returns all feedback entries with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)

	// Count returns the total number of feedback entries.
	Count(ctx context.Context) (int64, error)

	// Stats returns agreement statistics across all reviews.
	Stats(ctx context.Context) (*Stats, error)

	// Delete removes a feedback entry by ID.
	Delete(ctx context.Context, id int64) error

	// ExportJSON exports all feedback to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON imports feedback from a JSON reader. Reviews already present
	// are skipped.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// FeedbackExport represents the JSON export format.
type FeedbackExport struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exported_at"`
	Count      int         `json:"count"`
	Feedback   []*Feedback `json:"feedback"`
}

func exportJSON(ctx context.Context, s Store, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list feedback: %w", err)
	}
	if all == nil {
		all = []*Feedback{}
	}

	export := &FeedbackExport{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Count:      len(all),
		Feedback:   all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func importJSON(ctx context.Context, s Store, reader io.Reader) (imported int, skipped int, err error) {
	var export FeedbackExport
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, fb := range export.Feedback {
		if fb == nil || fb.Validate() != nil {
			skipped++
			continue
		}

		existing, err := s.Get(ctx, fb.SymptomCheckID, fb.ReviewerID)
		if err != nil {
			return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
		}
		if existing != nil {
			skipped++
			continue
		}

		fb.ID = 0
		if err := s.Save(ctx, fb); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}

func buildStats(total, agreed int64, deltaSum float64) *Stats {
	st := &Stats{Total: total, Agreed: agreed}
	if total > 0 {
		st.AgreementRate = float64(agreed) / float64(total)
		st.MeanUrgencyDelta = deltaSum / float64(total)
	}
	return st
}
