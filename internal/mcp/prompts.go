package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symptom-triage-server/internal/service"
)

// registerPrompts adds guided workflows that lead the assistant to the tools
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "symptom_interview",
		Title:       "Symptom interview",
		Description: "Collect symptoms, severity and duration from a patient, then run analyze_symptoms",
		Arguments: []*mcp.PromptArgument{
			{Name: "chief_complaint", Description: "What the patient reports first, e.g. headache", Required: true},
			{Name: "body_area", Description: "Body area to draw suggested symptoms from"},
		},
	}, s.handleSymptomInterview)

	s.mcpServer.AddPrompt(&mcp.Prompt{
		Name:        "clinician_review",
		Title:       "Clinician review",
		Description: "Walk a clinician through reviewing a triage result and recording feedback",
		Arguments: []*mcp.PromptArgument{
			{Name: "symptom_check_id", Description: "ID of the symptom check under review", Required: true},
		},
	}, s.handleClinicianReview)

	s.logger.WithField("prompt_count", 2).Debug("Registered MCP prompts")
}

func (s *Server) handleSymptomInterview(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	complaint := strings.TrimSpace(req.Params.Arguments["chief_complaint"])
	if complaint == "" {
		return nil, fmt.Errorf("argument chief_complaint is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A patient reports: %q.\n\n", complaint)
	b.WriteString("Ask short, plain-language questions to collect:\n")
	b.WriteString("1. Every symptom they have, one description each.\n")
	b.WriteString("2. Severity from 1 (mild) to 5 (worst they have felt).\n")
	b.WriteString("3. How long it has lasted. Use one of: ")
	options := service.DurationOptions()
	labels := make([]string, 0, len(options))
	for _, opt := range options {
		labels = append(labels, opt.Label)
	}
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString(".\n")

	if area := strings.TrimSpace(req.Params.Arguments["body_area"]); area != "" {
		if suggested := s.kb.SymptomsForArea(area); len(suggested) > 0 {
			fmt.Fprintf(&b, "\nSymptoms commonly reported for the %s: %s.\n", area, strings.Join(suggested, ", "))
		}
	}

	b.WriteString("\nThen call analyze_symptoms and explain the urgency and next steps. ")
	b.WriteString("If the urgency band is EMERGENCY, tell them to seek emergency care before anything else. ")
	b.WriteString("Remind them this is not a diagnosis.")

	return &mcp.GetPromptResult{
		Description: "Symptom interview for " + complaint,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

func (s *Server) handleClinicianReview(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id := strings.TrimSpace(req.Params.Arguments["symptom_check_id"])
	if id == "" {
		return nil, fmt.Errorf("argument symptom_check_id is required")
	}

	text := fmt.Sprintf(`Review symptom check %s.

1. Read the suggested urgency score and top condition.
2. Ask the clinician for their own urgency (1.0 to 5.0) and, if known, the confirmed condition.
3. Call submit_feedback with symptom_check_id %q, the clinician's reviewer_id and clinician_urgency.
4. Call query_feedback to show how this review compares with earlier ones.`, id, id)

	return &mcp.GetPromptResult{
		Description: "Clinician review of " + id,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}, nil
}
