package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/flight"
)

// FlyTool handles the starlog_fly MCP tool.
type FlyTool struct {
	browser *flight.Browser
}

// NewFlyTool creates a FlyTool backed by the given flight config browser.
func NewFlyTool(browser *flight.Browser) *FlyTool {
	return &FlyTool{browser: browser}
}

// Definition returns the MCP tool definition for registration.
func (t *FlyTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_fly",
		mcp.WithDescription(
			"Browse and search flight configurations with pagination and categories. "+
				"Without a category it lists the available categories; with one it "+
				"pages through that category's configs.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number within a category listing"),
		),
		mcp.WithString("category",
			mcp.Description("Category to browse"),
		),
		mcp.WithBoolean("this_project_only",
			mcp.Description("Limit to configs saved from this project (default: true)"),
		),
	)
}

// Handle processes the starlog_fly tool call.
func (t *FlyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	page := intArg(req, "page", 0)
	category := strings.TrimSpace(req.GetString("category", ""))
	thisProjectOnly := boolArg(req, "this_project_only", true)

	text, err := t.browser.Browse(path, page, category, thisProjectOnly)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error browsing flight configs: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
