package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

// memoryRepository keeps checks in a map so feedback can resolve them
type memoryRepository struct {
	mu     sync.Mutex
	checks map[string]*domain.SymptomCheck
}

func (r *memoryRepository) Create(ctx context.Context, check *domain.SymptomCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[check.ID] = check
	return nil
}
func (r *memoryRepository) GetByID(ctx context.Context, id string) (*domain.SymptomCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if check, ok := r.checks[id]; ok {
		return check, nil
	}
	return nil, domain.ErrNotFound
}
func (r *memoryRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.SymptomCheck, error) {
	return nil, nil
}
func (r *memoryRepository) ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*domain.SymptomCheck, error) {
	return nil, nil
}
func (r *memoryRepository) Close() error { return nil }

func newTestServer(t *testing.T, kb *knowledge.KnowledgeBase, opts ...Option) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	checks := service.NewSymptomCheckService(service.NewTriageEngine(kb, logger), &memoryRepository{checks: make(map[string]*domain.SymptomCheck)}, logger)
	return NewServer(domain.MCPConfig{}, checks, kb, logger, opts...), hook
}

// connect wires a client to the server over in-memory transports
func connect(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func callTool[T any](t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, T) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)

	var out T
	if res.StructuredContent != nil {
		data, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return res, out
}

func TestNewServer(t *testing.T) {
	server, hook := newTestServer(t, knowledge.Default())

	assert.NotNil(t, server.mcpServer)
	assert.NotNil(t, server.logger)
	assert.Equal(t, "Registered MCP tools", hook.LastEntry().Message)
	assert.Equal(t, 3, hook.LastEntry().Data["tool_count"])
}

func TestListTools(t *testing.T) {
	store, err := feedback.NewSQLiteStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	defer store.Close()

	server, _ := newTestServer(t, knowledge.Default(), WithFeedbackStore(store))
	cs := connect(t, server)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
	assert.ElementsMatch(t, []string{
		"analyze_symptoms", "list_body_areas", "get_condition", "submit_feedback", "query_feedback",
	}, names)
}

func TestAnalyzeSymptomsTool(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)

	res, out := callTool[AnalyzeSymptomsResult](t, cs, "analyze_symptoms", map[string]any{
		"symptoms":       []map[string]any{{"description": "chest pain"}, {"description": "shortness of breath"}},
		"severity_level": 3,
		"duration":       "Less than a day",
	})

	assert.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "Heart Attack (71%)")

	assert.Equal(t, "completed", out.Status)
	require.NotNil(t, out.Result)
	assert.Equal(t, 4.6, out.Result.UrgencyLevel.Score)
	assert.Equal(t, domain.BandEmergency, out.Result.UrgencyLevel.Band)
}

func TestAnalyzeSymptomsTool_InvalidSeverity(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)

	res, _ := callTool[AnalyzeSymptomsResult](t, cs, "analyze_symptoms", map[string]any{
		"symptoms":       []map[string]any{{"description": "cough"}},
		"severity_level": 7,
	})

	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "severity_level")
}

func TestAnalyzeSymptomsTool_Fallback(t *testing.T) {
	server, _ := newTestServer(t, nil)

	out, err := callHandler(server, AnalyzeSymptomsParams{
		Symptoms:      []SymptomParam{{Description: "cough"}},
		SeverityLevel: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, 3.0, out.Result.UrgencyLevel.Score)
}

func callHandler(s *Server, params AnalyzeSymptomsParams) (AnalyzeSymptomsResult, error) {
	_, out, err := s.handleAnalyzeSymptoms(context.Background(), &mcp.CallToolRequest{}, params)
	return out, err
}

func TestListBodyAreasTool(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)
	kb := knowledge.Default()

	_, all := callTool[ListBodyAreasResult](t, cs, "list_body_areas", map[string]any{})
	assert.Equal(t, kb.BodyAreas(), all.BodyAreas)

	area := kb.BodyAreas()[0]
	_, one := callTool[ListBodyAreasResult](t, cs, "list_body_areas", map[string]any{"area": area})
	assert.Equal(t, area, one.Area)
	assert.Equal(t, kb.SymptomsForArea(area), one.Symptoms)

	res, none := callTool[ListBodyAreasResult](t, cs, "list_body_areas", map[string]any{"area": "nowhere"})
	assert.Empty(t, none.Symptoms)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "No suggested symptoms")
}

func TestGetConditionTool(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)

	res, cond := callTool[knowledge.MedicalCondition](t, cs, "get_condition", map[string]any{"name": "Migraine"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Migraine", cond.Name)
	assert.NotEmpty(t, cond.RedFlags)

	res, _ = callTool[knowledge.MedicalCondition](t, cs, "get_condition", map[string]any{"name": "Unknown"})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "Condition not found")
}

func TestFeedbackTools(t *testing.T) {
	store, err := feedback.NewSQLiteStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	defer store.Close()

	server, _ := newTestServer(t, knowledge.Default(), WithFeedbackStore(store))
	cs := connect(t, server)

	check, err := server.checks.Submit(context.Background(), &domain.SymptomCheckSubmission{
		PatientID:     "patient-1",
		Symptoms:      []domain.Symptom{{Description: "chest pain"}, {Description: "shortness of breath"}},
		SeverityLevel: 3,
		Duration:      "Less than a day",
	})
	require.NoError(t, err)

	_, agreed := callTool[SubmitFeedbackResult](t, cs, "submit_feedback", map[string]any{
		"symptom_check_id":  check.ID,
		"reviewer_id":       "dr-a",
		"clinician_urgency": 4.8,
	})
	assert.True(t, agreed.Success)
	require.NotNil(t, agreed.Feedback)
	assert.True(t, agreed.Feedback.Agreed)
	assert.Equal(t, 4.6, agreed.Feedback.SuggestedUrgency)
	assert.Equal(t, "Heart Attack", agreed.Feedback.SuggestedCondition)

	_, corrected := callTool[SubmitFeedbackResult](t, cs, "submit_feedback", map[string]any{
		"symptom_check_id":  check.ID,
		"reviewer_id":       "dr-b",
		"clinician_urgency": 2.0,
	})
	assert.False(t, corrected.Feedback.Agreed)
	assert.Equal(t, "Feedback saved: urgency corrected from EMERGENCY to NON_URGENT", corrected.Message)

	res, _ := callTool[SubmitFeedbackResult](t, cs, "submit_feedback", map[string]any{
		"symptom_check_id":  check.ID,
		"reviewer_id":       "dr-c",
		"clinician_urgency": 0,
	})
	assert.True(t, res.IsError)

	res, _ = callTool[SubmitFeedbackResult](t, cs, "submit_feedback", map[string]any{
		"symptom_check_id":  "does-not-exist",
		"reviewer_id":       "dr-a",
		"clinician_urgency": 4.8,
	})
	assert.True(t, res.IsError)

	_, query := callTool[QueryFeedbackResult](t, cs, "query_feedback", map[string]any{"symptom_check_id": check.ID})
	assert.True(t, query.Found)
	assert.Len(t, query.Feedback, 2)
	require.NotNil(t, query.Stats)
	assert.Equal(t, int64(2), query.Stats.Total)
	assert.InDelta(t, 0.5, query.Stats.AgreementRate, 1e-9)
}

func TestResources(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)
	ctx := context.Background()
	kb := knowledge.Default()

	listed, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	var uris []string
	for _, r := range listed.Resources {
		uris = append(uris, r.URI)
	}
	assert.ElementsMatch(t, []string{bodyAreasURI, durationsURI}, uris)

	templates, err := cs.ListResourceTemplates(ctx, nil)
	require.NoError(t, err)
	require.Len(t, templates.ResourceTemplates, 1)
	assert.Equal(t, conditionURITemplate, templates.ResourceTemplates[0].URITemplate)

	res, err := cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: bodyAreasURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, jsonMIMEType, res.Contents[0].MIMEType)
	var areas map[string][]string
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &areas))
	assert.Len(t, areas, len(kb.BodyAreas()))

	res, err = cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: conditionURIPrefix + "Migraine"})
	require.NoError(t, err)
	var cond knowledge.MedicalCondition
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &cond))
	assert.Equal(t, "Migraine", cond.Name)

	_, err = cs.ReadResource(ctx, &mcp.ReadResourceParams{URI: conditionURIPrefix + "Unknown"})
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	server, _ := newTestServer(t, knowledge.Default())
	cs := connect(t, server)
	ctx := context.Background()

	listed, err := cs.ListPrompts(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, p := range listed.Prompts {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"symptom_interview", "clinician_review"}, names)

	area := knowledge.Default().BodyAreas()[0]
	res, err := cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "symptom_interview",
		Arguments: map[string]string{"chief_complaint": "headache", "body_area": area},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, `"headache"`)
	assert.Contains(t, text, "Less than a day")
	assert.Contains(t, text, "analyze_symptoms")
	assert.Contains(t, text, area)

	res, err = cs.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "clinician_review",
		Arguments: map[string]string{"symptom_check_id": "check-9"},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "submit_feedback")

	_, err = cs.GetPrompt(ctx, &mcp.GetPromptParams{Name: "clinician_review"})
	assert.Error(t, err)
}
