package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// AddRuleTool handles the starlog_add_rule MCP tool.
type AddRuleTool struct {
	svc *starlog.Service
}

// NewAddRuleTool creates an AddRuleTool backed by the given service.
func NewAddRuleTool(svc *starlog.Service) *AddRuleTool {
	return &AddRuleTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *AddRuleTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_add_rule",
		mcp.WithDescription(
			"Create new project guideline or standard. "+
				"Use this to establish coding standards, project conventions, or "+
				"other guidelines during development.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("rule",
			mcp.Required(),
			mcp.Description("The rule text"),
		),
		mcp.WithString("category",
			mcp.Description("Rule category (default: general)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority from 1 to 10, higher binds harder (default: 5)"),
		),
		mcp.WithArray("applies_to",
			mcp.Description("Glob patterns the rule applies to, e.g. *.go or api/**"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("enforcement_level",
			mcp.Description("One of error, warning, suggestion (default: warning)"),
		),
	)
}

// Handle processes the starlog_add_rule tool call.
func (t *AddRuleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	ruleText := strings.TrimSpace(req.GetString("rule", ""))
	if ruleText == "" {
		return mcp.NewToolResultError("'rule' is required"), nil
	}

	rule, err := t.svc.AddRule(path, starlog.RuleInput{
		Rule:             ruleText,
		Category:         strings.TrimSpace(req.GetString("category", "")),
		Priority:         intArg(req, "priority", 0),
		AppliesTo:        stringListArg(req, "applies_to"),
		EnforcementLevel: strings.TrimSpace(req.GetString("enforcement_level", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error adding rule: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Added rule: %s (ID: %s)", rule.Rule, rule.ID)), nil
}
