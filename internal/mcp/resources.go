package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symptom-triage-server/internal/service"
)

const (
	resourceScheme       = "triage://"
	bodyAreasURI         = resourceScheme + "body-areas"
	durationsURI         = resourceScheme + "durations"
	conditionURIPrefix   = resourceScheme + "conditions/"
	conditionURITemplate = conditionURIPrefix + "{name}"
	jsonMIMEType         = "application/json"
)

// registerResources exposes the knowledge tables as read-only MCP resources
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         bodyAreasURI,
		Name:        "body-areas",
		Title:       "Body areas and suggested symptoms",
		Description: "Every body area mapped to the symptoms suggested for it",
		MIMEType:    jsonMIMEType,
	}, s.readBodyAreas)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         durationsURI,
		Name:        "durations",
		Title:       "Duration labels",
		Description: "Accepted duration labels and the bucket each maps to",
		MIMEType:    jsonMIMEType,
	}, s.readDurations)

	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: conditionURITemplate,
		Name:        "condition",
		Title:       "Condition details",
		Description: "Symptoms, red flags, treatments and escalation advice for one condition",
		MIMEType:    jsonMIMEType,
	}, s.readCondition)

	s.logger.WithField("resource_count", 3).Debug("Registered MCP resources")
}

func (s *Server) readBodyAreas(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	areas := make(map[string][]string)
	for _, area := range s.kb.BodyAreas() {
		areas[area] = s.kb.SymptomsForArea(area)
	}
	return jsonResource(req.Params.URI, areas)
}

func (s *Server) readDurations(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, service.DurationOptions())
}

func (s *Server) readCondition(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	name, err := url.PathUnescape(strings.TrimPrefix(uri, conditionURIPrefix))
	if err != nil || name == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	cond, ok := s.kb.Condition(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	return jsonResource(uri, cond)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: jsonMIMEType, Text: string(data)}},
	}, nil
}
