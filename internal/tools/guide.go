package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// GuideTool handles the starlog_guide MCP tool. It is stateless: the guide
// is a fixed walkthrough of the tool surface and the order to use it in.
type GuideTool struct{}

// NewGuideTool creates a GuideTool.
func NewGuideTool() *GuideTool {
	return &GuideTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *GuideTool) Definition() mcp.Tool {
	return mcp.NewTool("starlog_guide",
		mcp.WithDescription("Returns STARLOG system workflow and tool usage guide."),
	)
}

// Handle processes the starlog_guide tool call.
func (t *GuideTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(guideText), nil
}

const guideText = `<STARLOG_GUIDE>
🌌📖 STARLOG System - Development Session Tracking Flow

starlog_check(path) [¹]
    ↓
    Is STARLOG project?
    ├─ NO → starlog_init(path, name, description) [²]
    └─ YES → starlog_orient(path) [³]
    ↓
starlog_start(path, session_title, start_content, session_goals) [⁴]
    ↓
[Work Loop - choose as needed:]
├─ starlog_diary(path, content) [⁵]
├─ starlog_view_diary(path) [⁶]
├─ starlog_view_sessions(path) [⁷]
├─ starlog_rules(path) [⁸]
└─ starlog_add_rule(path, rule) [⁹]
    ↓
starlog_end(path, end_content) [¹⁰]

[¹] Check: Verifies if directory is a STARLOG project
[²] Init: Creates project structure with registries and HPI template
[³] Orient: Returns full Captain's Log XML context for existing projects
[⁴] Start: Begin tracked development session with goals and context
[⁵] Diary: Log real-time discoveries, bugs, insights during work
[⁶] View Diary: Check current project status and recent entries
[⁷] View Sessions: Review session history and past work
[⁸] Rules: View project guidelines and standards
[⁹] Add Rule: Create new project guideline or standard
[¹⁰] End: Complete session with summary and outcomes

STARLOG creates Captain's Log style XML output for AI context injection.
</STARLOG_GUIDE>`
