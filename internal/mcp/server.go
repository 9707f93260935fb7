package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

const (
	defaultServerName    = "symptom-triage-server"
	defaultServerVersion = "v0.1.0"
)

// Server exposes the triage engine as MCP tools and the knowledge tables as
// resources, with prompts that guide an assistant through both
type Server struct {
	mcpServer *mcp.Server
	checks    *service.SymptomCheckService
	kb        *knowledge.KnowledgeBase
	feedback  feedback.Store
	logger    *logrus.Logger
}

// Option configures optional MCP server features
type Option func(*Server)

// WithFeedbackStore registers the clinician feedback tools
func WithFeedbackStore(store feedback.Store) Option {
	return func(s *Server) {
		s.feedback = store
	}
}

// NewServer creates a new MCP server instance with all tools registered
func NewServer(cfg domain.MCPConfig, checks *service.SymptomCheckService, kb *knowledge.KnowledgeBase, logger *logrus.Logger, opts ...Option) *Server {
	name := cfg.ServerName
	if name == "" {
		name = defaultServerName
	}
	version := cfg.ServerVersion
	if version == "" {
		version = defaultServerVersion
	}
	if kb == nil {
		kb = knowledge.Default()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		checks:    checks,
		kb:        kb,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerResources()
	s.registerPrompts()
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_symptoms",
		Description: "Rank possible conditions, estimate urgency (1.0-5.0) and suggest next steps for a set of reported symptoms. Informational only, not a diagnosis.",
	}, s.handleAnalyzeSymptoms)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_body_areas",
		Description: "List body areas, or the suggested symptoms for one area when area is given.",
	}, s.handleListBodyAreas)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_condition",
		Description: "Describe a condition: symptoms, red flags, common treatments and when to seek help.",
	}, s.handleGetCondition)

	tools := 3
	if s.feedback != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "submit_feedback",
			Description: "Record a clinician's review of a triage result. A second review by the same reviewer replaces the first.",
		}, s.handleSubmitFeedback)

		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "query_feedback",
			Description: "Return clinician reviews for a symptom check, plus overall agreement statistics.",
		}, s.handleQueryFeedback)
		tools += 2
	}

	s.logger.WithField("tool_count", tools).Info("Registered MCP tools")
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves MCP over the given transport
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("Starting symptom triage MCP server")
	if err := s.mcpServer.Run(ctx, t); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Connect attaches a single session on the given transport
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
