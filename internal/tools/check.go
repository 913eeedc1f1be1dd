package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// CheckTool handles the starlog_check MCP tool.
// It reports whether a directory is a tracked STARLOG project and, for
// tracked projects, the record counts of its three registries.
type CheckTool struct {
	svc *starlog.Service
}

// NewCheckTool creates a CheckTool backed by the given service.
func NewCheckTool(svc *starlog.Service) *CheckTool {
	return &CheckTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *CheckTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_check",
		mcp.WithDescription(
			"Verifies if a directory is a STARLOG project. Always use this first "+
				"when working in a directory: it tells you whether to call "+
				"starlog_init (new project) or starlog_orient (existing project) next.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory to check"),
		),
	)
}

// Handle processes the starlog_check tool call.
func (t *CheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	result, err := t.svc.Check(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error checking project: %v", err)), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error checking project: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
