package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the starlog-status MCP prompt.
// It instructs the AI to read and present the current project state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("starlog-status",
		mcp.WithPromptDescription(
			"Check the current status of your STARLOG project. "+
				"Shows the active or latest session, recent diary entries, "+
				"and the project rules in force.",
		),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Project directory to report on"),
		),
	)
}

// Handle processes the starlog-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := "the current directory"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["path"]; ok && v != "" {
			path = "'" + v + "'"
		}
	}

	return &mcp.GetPromptResult{
		Description: "STARLOG Project Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please check my STARLOG project status for " + path + ".\n\n" +
						"Then:\n" +
						"1. Run `starlog_view_sessions` and tell me whether a session is active and what the last one accomplished\n" +
						"2. Run `starlog_view_diary` and summarize the most recent discoveries\n" +
						"3. Run `starlog_rules` and remind me of the highest-priority rules\n" +
						"4. Tell me exactly what I should do next",
				),
			},
		},
	}, nil
}
