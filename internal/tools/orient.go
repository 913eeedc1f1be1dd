package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// OrientTool handles the starlog_orient MCP tool.
type OrientTool struct {
	svc *starlog.Service
}

// NewOrientTool creates an OrientTool backed by the given service.
func NewOrientTool(svc *starlog.Service) *OrientTool {
	return &OrientTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *OrientTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_orient",
		mcp.WithDescription(
			"Returns full Captain's Log XML context for existing projects. "+
				"Use this after starlog_check confirms the project exists to load "+
				"complete project history and context before starting work.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
	)
}

// Handle processes the starlog_orient tool call.
func (t *OrientTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	text, err := t.svc.Orient(path)
	if errors.Is(err, starlog.ErrNotInitialized) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"❌ No starlog.hpi found at %s. Use starlog_init first.", path,
		)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error getting orientation: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
