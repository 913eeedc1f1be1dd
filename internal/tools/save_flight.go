package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/flight"
	"github.com/sancovp/starlog-mcp/internal/models"
)

// SaveFlightTool handles the starlog_save_flight MCP tool.
type SaveFlightTool struct {
	browser *flight.Browser
}

// NewSaveFlightTool creates a SaveFlightTool backed by the given browser.
func NewSaveFlightTool(browser *flight.Browser) *SaveFlightTool {
	return &SaveFlightTool{browser: browser}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveFlightTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_save_flight",
		mcp.WithDescription(
			"Save a reusable flight config for this project so starlog_fly can "+
				"surface it later. New configs start with the default waypoint plan.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory the config originates from"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Config name"),
		),
		mcp.WithString("description",
			mcp.Description("What the config is for"),
		),
		mcp.WithString("category",
			mcp.Description("Category to file the config under (default: general)"),
		),
	)
}

// Handle processes the starlog_save_flight tool call.
func (t *SaveFlightTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	cfg, err := t.browser.Save(models.FlightConfig{
		Name:                name,
		Description:         strings.TrimSpace(req.GetString("description", "")),
		Category:            strings.TrimSpace(req.GetString("category", "")),
		OriginalProjectPath: path,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error saving flight config: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Saved flight config: %s (ID: %s)", cfg.Name, cfg.ID)), nil
}
