package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// EndTool handles the starlog_end MCP tool.
type EndTool struct {
	svc *starlog.Service
}

// NewEndTool creates an EndTool backed by the given service.
func NewEndTool(svc *starlog.Service) *EndTool {
	return &EndTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *EndTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_end",
		mcp.WithDescription(
			"Complete session with summary and outcomes. "+
				"Use this to properly close the active work session with a summary "+
				"of what was accomplished.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("end_content",
			mcp.Required(),
			mcp.Description("Summary of what the session accomplished"),
		),
		mcp.WithArray("key_discoveries",
			mcp.Description("Discoveries made during the session (replaces the stored list)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("files_updated",
			mcp.Description("Files touched during the session (replaces the stored list)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("challenges_faced",
			mcp.Description("Challenges hit during the session (replaces the stored list)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the starlog_end tool call.
func (t *EndTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	endContent := strings.TrimSpace(req.GetString("end_content", ""))
	if endContent == "" {
		return mcp.NewToolResultError("'end_content' is required"), nil
	}

	session, err := t.svc.EndSession(path, endContent,
		stringListArg(req, "key_discoveries"),
		stringListArg(req, "files_updated"),
		stringListArg(req, "challenges_faced"),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error ending session: %v", err)), nil
	}

	minutes, _ := session.DurationMinutes()
	return mcp.NewToolResultText(fmt.Sprintf(
		"✅ Ended session: %s (Duration: %d minutes)", session.SessionTitle, minutes,
	)), nil
}
