package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// registerTools registers all MCP tools on the server.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.verifyDisasterReportTool(),
		s.getPendingReviewsTool(),
		s.updateReviewStatusTool(),
	)
}

func (s *Server) verifyDisasterReportTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("verify_disaster_report",
		mcplib.WithDescription("Verify a disaster-related query through the InfoShield pipeline and return the verification report"),
		mcplib.WithString("query",
			mcplib.Required(),
			mcplib.Description("The disaster query to verify, e.g. 'Is there flooding in Chennai right now?'"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleVerifyDisasterReport,
	}
}

func (s *Server) getPendingReviewsTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("get_pending_reviews",
		mcplib.WithDescription("List queries parked in the human-review queue"),
		mcplib.WithString("status",
			mcplib.Description("Status filter: pending, verified, rejected, needs_more_info or all (default pending)"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleGetPendingReviews,
	}
}

func (s *Server) updateReviewStatusTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("update_review_status",
		mcplib.WithDescription("Record a reviewer decision on a review queue entry"),
		mcplib.WithString("session_id",
			mcplib.Required(),
			mcplib.Description("The review reference ID, e.g. IS-a1b2c3d4"),
		),
		mcplib.WithString("status",
			mcplib.Required(),
			mcplib.Description("New status: verified, rejected or needs_more_info"),
		),
		mcplib.WithString("notes",
			mcplib.Description("Optional reviewer notes"),
		),
	)
	return mcpserver.ServerTool{
		Tool:    tool,
		Handler: s.handleUpdateReviewStatus,
	}
}

func (s *Server) handleVerifyDisasterReport(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Verifier == nil {
		return mcplib.NewToolResultError("verifier not configured"), nil
	}
	args := req.GetArguments()
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcplib.NewToolResultError("query is required"), nil
	}

	result, err := s.deps.Verifier.Verify(ctx, query)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("verification failed", err), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return toolResultJSON(string(data)), nil
}

func (s *Server) handleGetPendingReviews(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Reviews == nil {
		return mcplib.NewToolResultError("review queue not configured"), nil
	}
	args := req.GetArguments()
	status, _ := args["status"].(string)

	entries, err := s.deps.Reviews.List(ctx, status)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to list reviews", err), nil
	}
	data, err := json.Marshal(map[string]any{
		"reviews": entries,
		"count":   len(entries),
	})
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal reviews", err), nil
	}
	return toolResultJSON(string(data)), nil
}

func (s *Server) handleUpdateReviewStatus(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Reviews == nil {
		return mcplib.NewToolResultError("review queue not configured"), nil
	}
	args := req.GetArguments()
	sessionID, ok := args["session_id"].(string)
	if !ok || sessionID == "" {
		return mcplib.NewToolResultError("session_id is required"), nil
	}
	status, ok := args["status"].(string)
	if !ok || status == "" {
		return mcplib.NewToolResultError("status is required"), nil
	}
	notes, _ := args["notes"].(string)

	if err := s.deps.Reviews.UpdateStatus(ctx, sessionID, status, notes); err != nil {
		return mcplib.NewToolResultErrorFromErr(
			fmt.Sprintf("failed to update review %s", sessionID), err,
		), nil
	}
	return mcplib.NewToolResultText(fmt.Sprintf("Updated %s to status: %s", sessionID, status)), nil
}
