package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

// SymptomParam is one reported symptom
type SymptomParam struct {
	Description     string   `json:"description" jsonschema:"free-text symptom, e.g. chest pain"`
	Location        string   `json:"location,omitempty" jsonschema:"where the symptom is felt"`
	Characteristics []string `json:"characteristics,omitempty" jsonschema:"qualifiers such as sharp or throbbing"`
}

// AnalyzeSymptomsParams defines parameters for analyze_symptoms tool
type AnalyzeSymptomsParams struct {
	Symptoms      []SymptomParam `json:"symptoms" jsonschema:"reported symptoms"`
	SeverityLevel int            `json:"severity_level" jsonschema:"self-assessed severity from 1 (mild) to 5 (worst)"`
	Duration      string         `json:"duration,omitempty" jsonschema:"how long symptoms have lasted, e.g. Less than a day or 1-2 weeks"`
}

// AnalyzeSymptomsResult defines the result structure for analyze_symptoms tool
type AnalyzeSymptomsResult struct {
	Status string               `json:"status"`
	Result *domain.TriageResult `json:"result"`
}

// ListBodyAreasParams defines parameters for list_body_areas tool
type ListBodyAreasParams struct {
	Area string `json:"area,omitempty" jsonschema:"body area to list suggested symptoms for"`
}

// ListBodyAreasResult defines the result structure for list_body_areas tool
type ListBodyAreasResult struct {
	BodyAreas []string `json:"body_areas,omitempty"`
	Area      string   `json:"area,omitempty"`
	Symptoms  []string `json:"symptoms,omitempty"`
}

// GetConditionParams defines parameters for get_condition tool
type GetConditionParams struct {
	Name string `json:"name" jsonschema:"condition name, e.g. Migraine"`
}

// handleAnalyzeSymptoms handles the analyze_symptoms tool invocation
func (s *Server) handleAnalyzeSymptoms(ctx context.Context, req *mcp.CallToolRequest, params AnalyzeSymptomsParams) (*mcp.CallToolResult, AnalyzeSymptomsResult, error) {
	s.logger.WithField("tool", "analyze_symptoms").Debug("Tool invoked")

	symptoms := make([]domain.Symptom, 0, len(params.Symptoms))
	for _, p := range params.Symptoms {
		symptoms = append(symptoms, domain.Symptom{
			Description:     p.Description,
			Location:        p.Location,
			Characteristics: p.Characteristics,
		})
	}
	bucket, _ := service.TranslateDuration(params.Duration)

	out := AnalyzeSymptomsResult{Status: string(domain.StatusCompleted)}
	result, err := s.checks.Analyze(ctx, &domain.SymptomCheckRequest{
		Symptoms:      symptoms,
		SeverityLevel: params.SeverityLevel,
		Duration:      bucket,
	})
	if err != nil {
		ue, ok := domain.AsAnalysisUnavailable(err)
		if !ok {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return s.createErrorResult("Invalid input", err), AnalyzeSymptomsResult{}, nil
			}
			return nil, AnalyzeSymptomsResult{}, err
		}
		s.logger.WithError(ue.Cause).Warn("Returning fallback triage result")
		out.Status = string(domain.StatusError)
		result = ue.Fallback
	}
	out.Result = result

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: summarize(result)}},
	}, out, nil
}

// handleListBodyAreas handles the list_body_areas tool invocation
func (s *Server) handleListBodyAreas(ctx context.Context, req *mcp.CallToolRequest, params ListBodyAreasParams) (*mcp.CallToolResult, ListBodyAreasResult, error) {
	if params.Area == "" {
		areas := s.kb.BodyAreas()
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Body areas: " + strings.Join(areas, ", ")}},
		}, ListBodyAreasResult{BodyAreas: areas}, nil
	}

	symptoms := s.kb.SymptomsForArea(params.Area)
	text := fmt.Sprintf("No suggested symptoms for %q", params.Area)
	if len(symptoms) > 0 {
		text = fmt.Sprintf("Symptoms for %s: %s", params.Area, strings.Join(symptoms, ", "))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, ListBodyAreasResult{Area: params.Area, Symptoms: symptoms}, nil
}

// handleGetCondition handles the get_condition tool invocation
func (s *Server) handleGetCondition(ctx context.Context, req *mcp.CallToolRequest, params GetConditionParams) (*mcp.CallToolResult, *knowledge.MedicalCondition, error) {
	cond, ok := s.kb.Condition(params.Name)
	if !ok {
		return s.createErrorResult("Condition not found", fmt.Errorf("no condition named %q", params.Name)), nil, nil
	}

	text := fmt.Sprintf("%s: %s\nWhen to seek help: %s", cond.Name, cond.Description, cond.WhenToSeekHelp)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, &cond, nil
}

// createErrorResult creates a tool result flagged as an error
func (s *Server) createErrorResult(message string, err error) *mcp.CallToolResult {
	errorText := message
	if err != nil {
		errorText = fmt.Sprintf("%s: %v", message, err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: errorText}},
		IsError: true,
	}
}

func summarize(result *domain.TriageResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Urgency %.1f (%s): %s\n", result.UrgencyLevel.Score, result.UrgencyLevel.Band, result.UrgencyLevel.Description)
	if len(result.PossibleConditions) == 0 {
		b.WriteString("No matching conditions.\n")
	}
	for _, c := range result.PossibleConditions {
		fmt.Fprintf(&b, "- %s (%d%%)\n", c.Name, c.Probability)
	}
	b.WriteString(result.GeneralAdvice)
	return b.String()
}
