package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// ViewDiaryTool handles the starlog_view_diary MCP tool.
type ViewDiaryTool struct {
	svc *starlog.Service
}

// NewViewDiaryTool creates a ViewDiaryTool backed by the given service.
func NewViewDiaryTool(svc *starlog.Service) *ViewDiaryTool {
	return &ViewDiaryTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *ViewDiaryTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_view_diary",
		mcp.WithDescription(
			"Check current project status and recent entries. "+
				"Use this to review what has been discovered and logged, newest first.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
	)
}

// Handle processes the starlog_view_diary tool call.
func (t *ViewDiaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	text, err := t.svc.ViewDiary(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error getting debug diary: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
