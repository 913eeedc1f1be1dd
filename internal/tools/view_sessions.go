package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// ViewSessionsTool handles the starlog_view_sessions MCP tool.
type ViewSessionsTool struct {
	svc *starlog.Service
}

// NewViewSessionsTool creates a ViewSessionsTool backed by the given service.
func NewViewSessionsTool(svc *starlog.Service) *ViewSessionsTool {
	return &ViewSessionsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ViewSessionsTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_view_sessions",
		mcp.WithDescription(
			"Review session history and past work. "+
				"Lists every recorded session for the project, newest first, "+
				"with goals, discoveries, and durations.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
	)
}

// Handle processes the starlog_view_sessions tool call.
func (t *ViewSessionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	text, err := t.svc.ViewSessions(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error getting session history: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
