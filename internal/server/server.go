// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/sancovp/starlog-mcp/internal/config"
	"github.com/sancovp/starlog-mcp/internal/flight"
	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/prompts"
	"github.com/sancovp/starlog-mcp/internal/recent"
	"github.com/sancovp/starlog-mcp/internal/registry"
	"github.com/sancovp/starlog-mcp/internal/resources"
	"github.com/sancovp/starlog-mcp/internal/starlog"
	"github.com/sancovp/starlog-mcp/internal/tools"
	"github.com/sancovp/starlog-mcp/internal/tracker"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the registry database connection
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call even if initialization failed.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	// The config file is optional: a load failure degrades to defaults
	// so a corrupt config.yaml never takes the whole server down.
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Printf("WARNING: using default configuration: %v", err)
	}

	store, err := registry.New(registry.Config{DataDir: cfg.DataDir})
	if err != nil {
		return nil, noop, fmt.Errorf("opening registry store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: registry store close: %v", err)
		}
	}

	recentTracker := recent.NewTracker(store, cfg.RecentProjectsBound, cfg.RecentPageSize)
	browser := flight.NewBrowser(store, cfg.FlightPageSize)

	// Issue tracking is an independent subsystem: without credentials it
	// is disabled and diary entries simply skip the side effect.
	issues := tracker.FromEnv()

	svc := starlog.New(store, hpi.TemplateRenderer{}, issues, recentTracker, cfg.DataDir)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"starlog",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project lifecycle tools ---

	checkTool := tools.NewCheckTool(svc)
	s.AddTool(checkTool.Definition(), checkTool.Handle)

	initTool := tools.NewInitTool(svc)
	s.AddTool(initTool.Definition(), initTool.Handle)

	orientTool := tools.NewOrientTool(svc)
	s.AddTool(orientTool.Definition(), orientTool.Handle)

	// --- Register session tools ---

	startTool := tools.NewStartTool(svc)
	s.AddTool(startTool.Definition(), startTool.Handle)

	endTool := tools.NewEndTool(svc)
	s.AddTool(endTool.Definition(), endTool.Handle)

	diaryTool := tools.NewDiaryTool(svc)
	s.AddTool(diaryTool.Definition(), diaryTool.Handle)

	viewDiaryTool := tools.NewViewDiaryTool(svc)
	s.AddTool(viewDiaryTool.Definition(), viewDiaryTool.Handle)

	viewSessionsTool := tools.NewViewSessionsTool(svc)
	s.AddTool(viewSessionsTool.Definition(), viewSessionsTool.Handle)

	// --- Register rule tools ---

	addRuleTool := tools.NewAddRuleTool(svc)
	s.AddTool(addRuleTool.Definition(), addRuleTool.Handle)

	deleteRuleTool := tools.NewDeleteRuleTool(svc)
	s.AddTool(deleteRuleTool.Definition(), deleteRuleTool.Handle)

	rulesTool := tools.NewRulesTool(svc)
	s.AddTool(rulesTool.Definition(), rulesTool.Handle)

	rulesForFileTool := tools.NewRulesForFileTool(svc)
	s.AddTool(rulesForFileTool.Definition(), rulesForFileTool.Handle)

	updateRulesTool := tools.NewUpdateRulesTool(svc)
	s.AddTool(updateRulesTool.Definition(), updateRulesTool.Handle)

	// --- Register discovery tools ---

	recentTool := tools.NewRecentProjectsTool(svc)
	s.AddTool(recentTool.Definition(), recentTool.Handle)

	storageTool := tools.NewStorageTool(svc)
	s.AddTool(storageTool.Definition(), storageTool.Handle)

	guideTool := tools.NewGuideTool()
	s.AddTool(guideTool.Definition(), guideTool.Handle)

	// --- Register flight tools ---
	//
	// Flight configs are reusable waypoint journeys saved from STARLOG
	// sessions. The browser paginates them by category.

	flyTool := tools.NewFlyTool(browser)
	s.AddTool(flyTool.Definition(), flyTool.Handle)

	saveFlightTool := tools.NewSaveFlightTool(browser)
	s.AddTool(saveFlightTool.Definition(), saveFlightTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(svc)
	s.AddResource(resourceHandler.RecentProjectsResource(), resourceHandler.HandleRecentProjects)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the store
// hasn't been opened yet.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use STARLOG effectively.
func serverInstructions() string {
	return `You have access to STARLOG, a development session tracking MCP server.

## WHEN TO ACTIVATE STARLOG

You MUST proactively suggest using STARLOG when the user:
- Starts working on a project (new or existing)
- Asks you to continue work from a previous session
- Begins debugging something non-trivial
- Says things like "let's pick up where we left off", "what were we doing?"
- Asks you to track, log, or remember what happens during the session

When you detect any of these, say something like:
"Let me check if this project uses STARLOG so we keep a Captain's Log
of this session. Future sessions (and other agents) can then orient
instantly instead of rediscovering context."

You do NOT need STARLOG for:
- One-off questions or explanations
- Trivial changes outside any project directory

## CRITICAL: How Tools Work

STARLOG tools are STORAGE tools, not AI tools. They persist content YOU
generate. Never call a tool with placeholder text like "TBD" — always
write real, substantive content describing what actually happened.

## Workflow

1. starlog_check(path) — is this directory a STARLOG project?
2. If not: starlog_init(path, name, description) — creates the registries
   and the starlog.hpi context file.
   If yes: starlog_orient(path) — renders the Captain's Log: project
   metadata, rules, latest session timeline, and debug diary.
3. starlog_start(path, session_title, start_content, session_goals) —
   opens a session. Only one session can be active per project.
4. During work, call starlog_diary(path, content) after every meaningful
   step: discoveries, fixes, decisions, dead ends. This is the flight
   recorder — entries are timestamped and ordered.
5. starlog_end(path, end_content, key_discoveries, files_updated,
   challenges_faced) — closes the session and records the outcome.

## Orientation Output

starlog_orient returns XML-tagged context for injection:
- <ProjectMetadata> — name, description, paths
- <Rules> — project rules to follow while working
- <Started>/<DebugDiaries>/<Ended> — the most recent session timeline

Read the rules FIRST and follow them for the rest of the session.

## Debug Diary Discipline

Call starlog_diary liberally — it is cheap and the payoff is huge:
- content: what happened (required)
- insights: what it means or implies
- in_file: the file involved
- bug_report=true: marks the entry as a bug report (can open a tracker
  issue when the GitHub integration is configured)
- bug_fix=true + issue_id: marks an issue as fixed (moves it to review)

## Project Rules

Rules are persistent instructions that survive across sessions:
- starlog_add_rule(path, rule, category, priority, applies_to,
  enforcement_level) — priority 1-10, applies_to is a glob like "*.go"
- starlog_rules(path) — all rules grouped by category
- starlog_rules_for_file(path, file_path) — only the rules whose glob
  matches that file, ordered by priority
- starlog_update_rules(path, rules) — replaces the whole rule set
- starlog_delete_rule(path, rule_id)

Before editing a file, check starlog_rules_for_file to see what applies.

## Discovery

- starlog_recent_projects(page) — recently touched STARLOG projects,
  most recent first. Use it to find where previous work happened.
- starlog_view_sessions(path) — session history for one project
- starlog_view_diary(path) — full debug diary for one project
- starlog_storage(path) — where the registries live on disk
- starlog_guide() — a compact flowchart of the whole system

## Flight Configs

Flight configs capture reusable waypoint journeys:
- starlog_fly(path) — browse categories, then
  starlog_fly(path, category="name", page=N) to page through configs
- starlog_save_flight(path, name, description, category) — save the
  current journey for reuse

## Important Rules

- ALWAYS starlog_check before assuming a project is tracked
- Only ONE active session per project — end the previous one first
- Write diary entries as you work, not retroactively at the end
- Follow the project rules returned by starlog_orient
- Session content should be specific: name files, errors, and decisions`
}
