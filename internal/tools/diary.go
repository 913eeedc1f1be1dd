package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
	"github.com/sancovp/starlog-mcp/internal/tracker"
)

// DiaryTool handles the starlog_diary MCP tool.
type DiaryTool struct {
	svc *starlog.Service
}

// NewDiaryTool creates a DiaryTool backed by the given service.
func NewDiaryTool(svc *starlog.Service) *DiaryTool {
	return &DiaryTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *DiaryTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_diary",
		mcp.WithDescription(
			"Log real-time discoveries, bugs, insights during work. "+
				"Use this frequently during a session to track progress and issues. "+
				"Requires an active session started with starlog_start.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Project directory"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("What was discovered, tried, or decided"),
		),
		mcp.WithString("insights",
			mcp.Description("Key insight worth keeping"),
		),
		mcp.WithString("in_file",
			mcp.Description("File the entry is about"),
		),
		mcp.WithBoolean("bug_report",
			mcp.Description("Marks the entry as a bug report; an issue is created when no issue_id is given"),
		),
		mcp.WithBoolean("bug_fix",
			mcp.Description("Marks the entry as a bug fix; the referenced issue is moved to review"),
		),
		mcp.WithString("issue_id",
			mcp.Description("Existing issue the entry refers to"),
		),
	)
}

// Handle processes the starlog_diary tool call.
func (t *DiaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := requirePath(req)
	if !ok {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	content := strings.TrimSpace(req.GetString("content", ""))
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	res, err := t.svc.AppendDiary(path, starlog.DiaryInput{
		Content:   content,
		Insights:  optionalString(req, "insights"),
		InFile:    optionalString(req, "in_file"),
		BugReport: boolArg(req, "bug_report", false),
		BugFix:    boolArg(req, "bug_fix", false),
		IssueID:   optionalString(req, "issue_id"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error adding debug entry: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added debug entry: %s", snippet(content))
	for _, note := range res.Notes {
		fmt.Fprintf(&b, " (%s)", note)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, " (%s)", warningText(w))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── Private Helpers ─────────────────────────────────────────────────────────

// warningText renders a tracker warning the way the confirmation line
// reports side-effect failures.
func warningText(w tracker.Warning) string {
	switch w.Op {
	case "create_issue":
		return "Issue creation failed: " + w.Message
	case "update_issue":
		return "Issue update failed: " + w.Message
	}
	return w.Op + " failed: " + w.Message
}
