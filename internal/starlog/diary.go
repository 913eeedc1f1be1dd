package starlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/timeline"
	"github.com/sancovp/starlog-mcp/internal/tracker"
)

// DiaryInput carries the caller-provided fields of a new diary entry.
type DiaryInput struct {
	Content   string
	Insights  *string
	InFile    *string
	BugReport bool
	BugFix    bool
	IssueID   *string
}

// DiaryResult is the structured outcome of AppendDiary: the persisted entry,
// notes about issue-tracker side effects that succeeded, and warnings for
// ones that failed. Side-effect failures never abort the append itself.
type DiaryResult struct {
	Entry    models.DiaryEntry
	Notes    []string
	Warnings []tracker.Warning
}

// ─── Append ──────────────────────────────────────────────────────────────────

// AppendDiary adds an immutable entry to the project's debug diary. Entries
// are only accepted inside an active session. Bug reports without an issue
// get one created; bug fixes with an issue get it moved to review. Tracker
// calls run before the entry is persisted so a created issue ID lands on
// the stored record.
func (s *Service) AppendDiary(path string, in DiaryInput) (*DiaryResult, error) {
	project := hpi.ProjectName(path)

	sessions, err := s.loadSessions(project)
	if err != nil {
		return nil, err
	}
	if timeline.FindActiveSession(sessions) == nil {
		return nil, fmt.Errorf("starlog: %s: %w", project, ErrNoActiveSession)
	}

	entry := models.DiaryEntry{
		ID:        models.NewDiaryID(),
		Timestamp: models.FormatTimestamp(timeNow().UTC()),
		Content:   in.Content,
		Insights:  in.Insights,
		InFile:    in.InFile,
		BugReport: in.BugReport,
		BugFix:    in.BugFix,
		IssueID:   in.IssueID,
	}

	result := &DiaryResult{}

	if entry.BugReport && entry.IssueID == nil {
		issueID, err := s.issues.CreateIssue(entry)
		switch {
		case errors.Is(err, tracker.ErrDisabled):
			// no tracker configured, nothing to report
		case err != nil:
			result.Warnings = append(result.Warnings, tracker.Warning{Op: "create_issue", Message: err.Error()})
		default:
			entry.IssueID = &issueID
			entry.FromTracker = true
			result.Notes = append(result.Notes, fmt.Sprintf("Created issue: %s", issueID))
		}
	}

	if entry.BugFix && entry.IssueID != nil {
		status, err := s.issues.UpdateIssue(entry)
		switch {
		case errors.Is(err, tracker.ErrDisabled):
		case err != nil:
			result.Warnings = append(result.Warnings, tracker.Warning{Op: "update_issue", Message: err.Error()})
		default:
			result.Notes = append(result.Notes, fmt.Sprintf("Updated issue %s to %s status", *entry.IssueID, status))
		}
	}

	if err := s.store.Put(diaryCollection(project), entry.ID, entry); err != nil {
		return nil, fmt.Errorf("starlog: save diary entry: %w", err)
	}

	result.Entry = entry
	return result, nil
}

// ─── View ────────────────────────────────────────────────────────────────────

// ViewDiary renders the full debug diary, newest first.
func (s *Service) ViewDiary(path string) (string, error) {
	project := hpi.ProjectName(path)

	entries, err := s.loadEntries(project)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "📓 **Debug Diary** (Empty)\n\nNo debug entries yet. Use starlog_diary to start tracking.", nil
	}

	var b strings.Builder
	b.WriteString("📓 **Debug Diary**\n\n")

	for _, e := range timeline.SortEntriesDesc(entries) {
		fmt.Fprintf(&b, "**%s** `%s`\n", entryDate(e.Timestamp), e.ID)
		fmt.Fprintf(&b, "%s\n", e.Content)

		if e.Insights != nil && *e.Insights != "" {
			fmt.Fprintf(&b, "💡 *Insights*: %s\n", *e.Insights)
		}
		if e.InFile != nil && *e.InFile != "" {
			fmt.Fprintf(&b, "📁 *File*: `%s`\n", *e.InFile)
		}
		if e.BugReport && e.IssueID != nil {
			fmt.Fprintf(&b, "🐛 *Issue*: %s\n", *e.IssueID)
		} else if e.BugFix && e.IssueID != nil {
			fmt.Fprintf(&b, "✅ *Fixed Issue*: %s\n", *e.IssueID)
		}

		b.WriteString("\n---\n\n")
	}

	return strings.TrimSpace(b.String()), nil
}

// entryDate cuts a timestamp down to its date part.
func entryDate(ts string) string {
	if i := strings.Index(ts, "T"); i > 0 {
		return ts[:i]
	}
	return ts
}
