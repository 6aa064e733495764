package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/infoshield/infoshield/internal/domain/review"
)

// registerResources registers all MCP resources on the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcplib.NewResource(
			"infoshield://reviews/pending",
			"Pending Reviews",
			mcplib.WithResourceDescription("Queries awaiting human verification"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handlePendingReviewsResource,
	)
}

func (s *Server) handlePendingReviewsResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Reviews == nil {
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     `{"error":"review queue not configured"}`,
			},
		}, nil
	}
	entries, err := s.deps.Reviews.List(ctx, review.StatusPending)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
