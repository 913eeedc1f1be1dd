package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// UpdateRulesTool handles the starlog_update_rules MCP tool.
type UpdateRulesTool struct {
	svc *starlog.Service
}

// NewUpdateRulesTool creates an UpdateRulesTool backed by the given service.
func NewUpdateRulesTool(svc *starlog.Service) *UpdateRulesTool {
	return &UpdateRulesTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateRulesTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_update_rules",
		mcp.WithDescription(
			"Replace all project rules with the provided rule set. "+
				"Existing rules not in the new set are removed. Use starlog_add_rule "+
				"for incremental additions instead.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithArray("rules",
			mcp.Required(),
			mcp.Description("Full replacement rule set: objects with rule, category, priority, applies_to, enforcement_level"),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)
}

// Handle processes the starlog_update_rules tool call.
func (t *UpdateRulesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	raw, ok := req.GetArguments()["rules"]
	if !ok {
		return mcp.NewToolResultError("'rules' is required"), nil
	}

	rules, err := decodeRules(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error updating rules: %v", err)), nil
	}

	n, err := t.svc.UpdateRules(path, rules)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error updating rules: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Updated %d rules for %s", n, hpi.ProjectName(path))), nil
}

// ─── Private Helpers ─────────────────────────────────────────────────────────

// decodeRules accepts the rule set either as a JSON array of objects or as
// a string containing that array. Some MCP clients serialize nested
// structures to strings, so both shapes are tolerated.
func decodeRules(raw any) ([]models.Rule, error) {
	var rules []models.Rule
	if s, ok := raw.(string); ok {
		if err := json.Unmarshal([]byte(s), &rules); err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
		return rules, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode rules: %w", err)
	}
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return rules, nil
}
