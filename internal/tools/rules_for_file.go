package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// RulesForFileTool handles the starlog_rules_for_file MCP tool.
type RulesForFileTool struct {
	svc *starlog.Service
}

// NewRulesForFileTool creates a RulesForFileTool backed by the given service.
func NewRulesForFileTool(svc *starlog.Service) *RulesForFileTool {
	return &RulesForFileTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *RulesForFileTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_rules_for_file",
		mcp.WithDescription(
			"List the project rules that apply to one file, highest priority first. "+
				"Rules without applies_to patterns match every file. "+
				"Use this before editing a file to know which conventions bind.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("File to match rules against, relative to the project root"),
		),
	)
}

// Handle processes the starlog_rules_for_file tool call.
func (t *RulesForFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	filePath := strings.TrimSpace(req.GetString("file_path", ""))
	if filePath == "" {
		return mcp.NewToolResultError("'file_path' is required"), nil
	}

	rules, err := t.svc.RulesForFile(path, filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error matching rules: %v", err)), nil
	}
	if len(rules) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No rules apply to `%s`.", filePath)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📏 **Rules for `%s`**\n\n", filePath)
	for _, r := range rules {
		fmt.Fprintf(&b, "- [%d] %s `(%s)`\n", r.Priority, r.Rule, r.ID)
	}
	return mcp.NewToolResultText(strings.TrimSpace(b.String())), nil
}
