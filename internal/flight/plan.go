package flight

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the flight plan written into a project directory when
// no custom flight configs exist for it.
const DefaultFileName = "starlog_flight.json"

// DefaultPlan returns the base session-management waypoint sequence. Custom
// flight configs extend this plan with additional waypoints.
func DefaultPlan() map[string]any {
	return map[string]any{
		"domain":      "starlog_session",
		"version":     "v1",
		"entry_point": "01_check.md",
		"root_files": []map[string]any{
			{
				"filename":        "01_check.md",
				"title":           "Check STARLOG Project",
				"content":         "STARLOG System - Development Session Tracking Flow\n\nStep 1: Check if directory is a STARLOG project\nUse: starlog_check(path)\n\nThis verifies if the current directory is already set up as a STARLOG project.",
				"sequence_number": 1,
			},
			{
				"filename":        "02_init_or_orient.md",
				"title":           "Initialize or Orient",
				"content":         "Step 2: Setup project context\n\nIf NOT a STARLOG project:\n→ Use: starlog_init(path, name, description) - Creates project structure with registries and HPI template\n\nIf IS a STARLOG project:\n→ Use: starlog_orient(path) - Returns full Captain's Log XML context for existing projects",
				"sequence_number": 2,
			},
			{
				"filename":        "03_start_session.md",
				"title":           "Start STARLOG Session",
				"content":         "Step 3: Begin tracked development session\nUse: starlog_start(path, session_title, start_content, session_goals)\n\nBegin tracked development session with goals and context. This starts the formal logging process.",
				"sequence_number": 3,
			},
			{
				"filename":        "04_work_loop.md",
				"title":           "Work Loop - Development Activities",
				"content":         "Step 4: Work Loop - Choose tools as needed during development:\n\n• starlog_diary(path, content) - Log real-time discoveries, bugs, insights during work\n• starlog_view_diary(path) - Check current project status and recent entries\n• starlog_view_sessions(path) - Review session history and past work\n• starlog_rules(path) - View project guidelines and standards\n• starlog_add_rule(path, rule) - Create new project guideline or standard\n\nUse these tools throughout your development work to track progress and maintain documentation.",
				"sequence_number": 4,
			},
			{
				"filename":        "05_end_session.md",
				"title":           "End STARLOG Session",
				"content":         "Step 5: Complete session with summary\nUse: starlog_end(path, end_content)\n\nComplete session with summary and outcomes. This formally closes the development session and saves all context.\n\nSTARLOG creates Captain's Log style XML output for AI context injection.",
				"sequence_number": 5,
			},
		},
		"directories": map[string]any{},
	}
}

// WriteDefaultPlan materializes the default plan as starlog_flight.json in
// dir, unless one already exists. Returns the plan file's path.
func WriteDefaultPlan(dir string) (string, error) {
	planPath := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(planPath); err == nil {
		return planPath, nil
	}

	data, err := json.MarshalIndent(DefaultPlan(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("flight: marshal default plan: %w", err)
	}
	if err := os.WriteFile(planPath, data, 0644); err != nil {
		return "", fmt.Errorf("flight: write default plan: %w", err)
	}
	return planPath, nil
}
