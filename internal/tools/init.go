package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// InitTool handles the starlog_init MCP tool.
type InitTool struct {
	svc *starlog.Service
}

// NewInitTool creates an InitTool backed by the given service.
func NewInitTool(svc *starlog.Service) *InitTool {
	return &InitTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *InitTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_init",
		mcp.WithDescription(
			"Creates project structure with registries and HPI template. "+
				"Use this when starlog_check shows the directory is not a STARLOG project yet.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory to initialize (created if missing)"),
		),
		mcp.WithString("name",
			mcp.Description("Project name (defaults to the directory basename)"),
		),
		mcp.WithString("description",
			mcp.Description("Short description of what the project is"),
		),
	)
}

// Handle processes the starlog_init tool call.
func (t *InitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	name := strings.TrimSpace(req.GetString("name", ""))
	description := strings.TrimSpace(req.GetString("description", ""))

	reply, err := t.svc.Init(path, name, description)
	if errors.Is(err, starlog.ErrAlreadyInitialized) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"❌ Project already initialized at %s (starlog.hpi exists). Use starlog_orient instead.", path,
		)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Failed to initialize project: %v", err)), nil
	}
	return mcp.NewToolResultText(reply), nil
}
