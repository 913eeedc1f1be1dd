package models

// DiaryEntry is one debug diary record: a timestamped note captured during a
// session, optionally tied to a file and to an issue in an external tracker.
// Entries are immutable once written.
type DiaryEntry struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Content     string  `json:"content"`
	Insights    *string `json:"insights,omitempty"`
	InFile      *string `json:"in_file,omitempty"`
	BugReport   bool    `json:"bug_report,omitempty"`
	BugFix      bool    `json:"bug_fix,omitempty"`
	IssueID     *string `json:"issue_id,omitempty"`
	FromTracker bool    `json:"from_tracker,omitempty"`
}
