package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// RecentProjectsTool handles the starlog_recent_projects MCP tool.
type RecentProjectsTool struct {
	svc *starlog.Service
}

// NewRecentProjectsTool creates a RecentProjectsTool backed by the given service.
func NewRecentProjectsTool(svc *starlog.Service) *RecentProjectsTool {
	return &RecentProjectsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *RecentProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_recent_projects",
		mcp.WithDescription(
			"List recently used STARLOG projects, most recent first. "+
				"Use this to rediscover project paths across machines and sessions.",
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
	)
}

// Handle processes the starlog_recent_projects tool call.
func (t *RecentProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := intArg(req, "page", 1)

	result, err := t.svc.RecentProjects(page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error listing recent projects: %v", err)), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error listing recent projects: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
