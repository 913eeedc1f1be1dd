package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// StorageTool handles the starlog_storage MCP tool.
type StorageTool struct {
	svc *starlog.Service
}

// NewStorageTool creates a StorageTool backed by the given service.
func NewStorageTool(svc *starlog.Service) *StorageTool {
	return &StorageTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *StorageTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_storage",
		mcp.WithDescription(
			"Get registry paths where starlog data is stored. "+
				"Returns the actual storage locations for the project's session, "+
				"diary, and rules registries.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
	)
}

// Handle processes the starlog_storage tool call.
func (t *StorageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	text, err := t.svc.StoragePaths(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error getting registry paths: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
