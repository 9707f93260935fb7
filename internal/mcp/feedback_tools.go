package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
)

// SubmitFeedbackParams defines parameters for the submit_feedback tool
type SubmitFeedbackParams struct {
	SymptomCheckID     string  `json:"symptom_check_id" jsonschema:"ID of the reviewed symptom check"`
	ReviewerID         string  `json:"reviewer_id" jsonschema:"clinician identifier"`
	ClinicianUrgency   float64 `json:"clinician_urgency" jsonschema:"urgency the clinician assigns, 1.0 to 5.0"`
	ConfirmedCondition string  `json:"confirmed_condition,omitempty" jsonschema:"condition the clinician confirmed"`
	Notes              string  `json:"notes,omitempty"`
}

// SubmitFeedbackResult defines the result of submit_feedback
type SubmitFeedbackResult struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Feedback *feedback.Feedback `json:"feedback,omitempty"`
}

// QueryFeedbackParams defines parameters for the query_feedback tool
type QueryFeedbackParams struct {
	SymptomCheckID string `json:"symptom_check_id" jsonschema:"ID of the symptom check"`
}

// QueryFeedbackResult defines the result of query_feedback
type QueryFeedbackResult struct {
	Found    bool                 `json:"found"`
	Feedback []*feedback.Feedback `json:"feedback"`
	Stats    *feedback.Stats      `json:"stats,omitempty"`
}

// handleSubmitFeedback handles the submit_feedback tool invocation.
// The engine's urgency and condition are read from the stored check.
func (s *Server) handleSubmitFeedback(ctx context.Context, req *mcp.CallToolRequest, params SubmitFeedbackParams) (*mcp.CallToolResult, SubmitFeedbackResult, error) {
	fb := &feedback.Feedback{
		SymptomCheckID:     params.SymptomCheckID,
		ReviewerID:         params.ReviewerID,
		ClinicianUrgency:   params.ClinicianUrgency,
		ConfirmedCondition: params.ConfirmedCondition,
		Notes:              params.Notes,
	}
	if err := fb.Validate(); err != nil {
		return s.createErrorResult("Invalid feedback", err), SubmitFeedbackResult{}, nil
	}

	check, err := s.checks.Get(ctx, params.SymptomCheckID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.createErrorResult("Symptom check not found", err), SubmitFeedbackResult{}, nil
		}
		return nil, SubmitFeedbackResult{}, fmt.Errorf("failed to load symptom check: %w", err)
	}
	fb.Derive(check)

	if err := s.feedback.Save(ctx, fb); err != nil {
		if domain.IsValidationError(err) {
			return s.createErrorResult("Invalid feedback", err), SubmitFeedbackResult{}, nil
		}
		s.logger.WithError(err).Error("Failed to save feedback")
		return nil, SubmitFeedbackResult{}, fmt.Errorf("failed to save feedback: %w", err)
	}

	msg := "Feedback saved: clinician agreed with the suggested urgency"
	if !fb.Agreed {
		msg = fmt.Sprintf("Feedback saved: urgency corrected from %s to %s",
			domain.BandForScore(fb.SuggestedUrgency), domain.BandForScore(fb.ClinicianUrgency))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}, SubmitFeedbackResult{Success: true, Message: msg, Feedback: fb}, nil
}

// handleQueryFeedback handles the query_feedback tool invocation
func (s *Server) handleQueryFeedback(ctx context.Context, req *mcp.CallToolRequest, params QueryFeedbackParams) (*mcp.CallToolResult, QueryFeedbackResult, error) {
	entries, err := s.feedback.ListForCheck(ctx, params.SymptomCheckID)
	if err != nil {
		return nil, QueryFeedbackResult{}, fmt.Errorf("failed to query feedback: %w", err)
	}
	stats, err := s.feedback.Stats(ctx)
	if err != nil {
		return nil, QueryFeedbackResult{}, fmt.Errorf("failed to compute feedback stats: %w", err)
	}

	text := fmt.Sprintf("%d review(s) for %s; overall agreement %.0f%% across %d review(s)",
		len(entries), params.SymptomCheckID, stats.AgreementRate*100, stats.Total)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, QueryFeedbackResult{Found: len(entries) > 0, Feedback: entries, Stats: stats}, nil
}
