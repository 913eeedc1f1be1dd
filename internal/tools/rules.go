package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// RulesTool handles the starlog_rules MCP tool.
type RulesTool struct {
	svc *starlog.Service
}

// NewRulesTool creates a RulesTool backed by the given service.
func NewRulesTool(svc *starlog.Service) *RulesTool {
	return &RulesTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *RulesTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_rules",
		mcp.WithDescription(
			"View project guidelines and standards. "+
				"Use this to check what coding standards and project rules have "+
				"been established, grouped by category.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
	)
}

// Handle processes the starlog_rules tool call.
func (t *RulesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	text, err := t.svc.ViewRules(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error getting rules: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
