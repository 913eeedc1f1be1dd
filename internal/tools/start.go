package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// StartTool handles the starlog_start MCP tool.
type StartTool struct {
	svc *starlog.Service
}

// NewStartTool creates a StartTool backed by the given service.
func NewStartTool(svc *starlog.Service) *StartTool {
	return &StartTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_start",
		mcp.WithDescription(
			"Begin tracked development session with goals and context. "+
				"Use this to open a work session after starlog_orient has provided "+
				"project context. Only one session can be active at a time.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("session_title",
			mcp.Required(),
			mcp.Description("Short title for the session"),
		),
		mcp.WithString("start_content",
			mcp.Required(),
			mcp.Description("What this session sets out to do"),
		),
		mcp.WithArray("session_goals",
			mcp.Description("Concrete goals for the session"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("relevant_docs",
			mcp.Description("Paths or URLs of documents relevant to this session"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the starlog_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	title := strings.TrimSpace(req.GetString("session_title", ""))
	if title == "" {
		return mcp.NewToolResultError("'session_title' is required"), nil
	}
	startContent := strings.TrimSpace(req.GetString("start_content", ""))
	if startContent == "" {
		return mcp.NewToolResultError("'start_content' is required"), nil
	}
	goals := stringListArg(req, "session_goals")
	docs := stringListArg(req, "relevant_docs")

	session, err := t.svc.StartSession(path, title, startContent, goals, docs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error starting session: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("🚀 Started session: %s (ID: %s)", session.SessionTitle, session.ID)), nil
}
