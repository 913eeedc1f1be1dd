package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// DeleteRuleTool handles the starlog_delete_rule MCP tool.
type DeleteRuleTool struct {
	svc *starlog.Service
}

// NewDeleteRuleTool creates a DeleteRuleTool backed by the given service.
func NewDeleteRuleTool(svc *starlog.Service) *DeleteRuleTool {
	return &DeleteRuleTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteRuleTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_delete_rule",
		mcp.WithDescription("Remove specific rule by ID."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("rule_id",
			mcp.Required(),
			mcp.Description("ID of the rule to delete"),
		),
	)
}

// Handle processes the starlog_delete_rule tool call.
func (t *DeleteRuleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	ruleID := strings.TrimSpace(req.GetString("rule_id", ""))
	if ruleID == "" {
		return mcp.NewToolResultError("'rule_id' is required"), nil
	}

	if err := t.svc.DeleteRule(path, ruleID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error deleting rule: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Deleted rule: %s", ruleID)), nil
}
