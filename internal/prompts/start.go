// Package prompts implements MCP prompt handlers for the STARLOG workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the starlog-start MCP prompt.
// It guides the AI through the check/orient/start flow for a work session.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("starlog-start",
		mcp.WithPromptDescription(
			"Start a tracked STARLOG work session. "+
				"Checks whether the directory is a STARLOG project, initializes "+
				"or orients as needed, then opens a session with your goals.",
		),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Project directory to work in"),
		),
		mcp.WithArgument("session_title",
			mcp.ArgumentDescription("Short title for the session"),
		),
	)
}

// Handle processes the starlog-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := "the current directory"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["path"]; ok && v != "" {
			path = fmt.Sprintf("'%s'", v)
		}
	}

	title := "a title you suggest from my goals"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["session_title"]; ok && v != "" {
			title = fmt.Sprintf("'%s'", v)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Start STARLOG session",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start a tracked STARLOG session in %s.\n\n"+
						"Please:\n"+
						"1. Run `starlog_check` on the directory\n"+
						"2. If it is not a STARLOG project yet, run `starlog_init` (ask me for a name and description)\n"+
						"3. If it already is one, run `starlog_orient` and give me a short recap of where the project stands\n"+
						"4. Ask me what I want to accomplish, then run `starlog_start` with %s and my goals\n"+
						"5. While we work, log discoveries with `starlog_diary`\n\n"+
						"When I say we're done, close the session with `starlog_end` and a summary.",
					path, title,
				)),
			},
		},
	}, nil
}
