package starlog

import (
	"fmt"
	"strings"

	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/timeline"
)

// ─── Start ───────────────────────────────────────────────────────────────────

// StartSession opens a new session for the project at path. At most one
// session may be open: starting over an active session fails with
// ErrSessionActive instead of silently forking the timeline. The session's
// start is also recorded as a boundary diary entry at the same instant.
func (s *Service) StartSession(path, title, startContent string, goals, docs []string) (*models.Session, error) {
	project := hpi.ProjectName(path)

	sessions, err := s.loadSessions(project)
	if err != nil {
		return nil, err
	}
	if active := timeline.FindActiveSession(sessions); active != nil {
		return nil, fmt.Errorf("starlog: %w: %s (ID: %s)", ErrSessionActive, active.SessionTitle, active.ID)
	}

	now := timeNow().UTC()
	session := models.Session{
		ID:           models.NewSessionID(),
		Timestamp:    models.FormatTimestamp(now),
		Date:         models.FormatDate(now),
		SessionTitle: title,
		StartContent: startContent,
		RelevantDocs: docs,
		SessionGoals: goals,
	}
	if err := s.store.Put(starlogCollection(project), session.ID, session); err != nil {
		return nil, fmt.Errorf("starlog: save session: %w", err)
	}

	// The boundary entry shares the session's timestamp, which keeps it
	// outside the session's own window.
	boundary := models.DiaryEntry{
		ID:        models.NewDiaryID(),
		Timestamp: session.Timestamp,
		Content:   fmt.Sprintf("🚀 Session started: %s", title),
	}
	if err := s.store.Put(diaryCollection(project), boundary.ID, boundary); err != nil {
		return nil, fmt.Errorf("starlog: save session boundary entry: %w", err)
	}

	s.recordUse(path)
	return &session, nil
}

// ─── End ─────────────────────────────────────────────────────────────────────

// EndSession closes the active session. The optional list fields replace
// the stored ones wholesale when provided (nil leaves them untouched). The
// close is also recorded as a boundary diary entry carrying the duration.
func (s *Service) EndSession(path, endContent string, keyDiscoveries, filesUpdated, challengesFaced []string) (*models.Session, error) {
	project := hpi.ProjectName(path)

	sessions, err := s.loadSessions(project)
	if err != nil {
		return nil, err
	}
	active := timeline.FindActiveSession(sessions)
	if active == nil {
		return nil, fmt.Errorf("starlog: %s: %w", project, ErrNoActiveSession)
	}

	if keyDiscoveries != nil {
		active.KeyDiscoveries = keyDiscoveries
	}
	if filesUpdated != nil {
		active.FilesUpdated = filesUpdated
	}
	if challengesFaced != nil {
		active.ChallengesFaced = challengesFaced
	}

	endTS := models.FormatTimestamp(timeNow().UTC())
	active.EndContent = &endContent
	active.EndTimestamp = &endTS

	if err := s.store.Put(starlogCollection(project), active.ID, active); err != nil {
		return nil, fmt.Errorf("starlog: save session: %w", err)
	}

	minutes, _ := active.DurationMinutes()
	boundary := models.DiaryEntry{
		ID:        models.NewDiaryID(),
		Timestamp: endTS,
		Content:   fmt.Sprintf("✅ Session ended: %s (%s)", active.SessionTitle, models.FormatDuration(minutes)),
	}
	if err := s.store.Put(diaryCollection(project), boundary.ID, boundary); err != nil {
		return nil, fmt.Errorf("starlog: save session boundary entry: %w", err)
	}

	return active, nil
}

// ─── View ────────────────────────────────────────────────────────────────────

// ViewSessions renders the full session history, newest first.
func (s *Service) ViewSessions(path string) (string, error) {
	project := hpi.ProjectName(path)

	sessions, err := s.loadSessions(project)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "📋 **STARLOG Sessions** (Empty)\n\nNo sessions found.", nil
	}

	var b strings.Builder
	b.WriteString("📋 **STARLOG Sessions**\n\n")

	for _, sess := range timeline.SortSessionsDesc(sessions) {
		status := "🔄 IN PROGRESS"
		durationStr := ""
		if sess.Ended() {
			status = "✅ COMPLETE"
			if minutes, ok := sess.DurationMinutes(); ok && minutes > 0 {
				durationStr = fmt.Sprintf(" (%dmin)", minutes)
			}
		}
		fmt.Fprintf(&b, "**%s** - %s `%s` %s%s\n", sess.Date, sess.SessionTitle, sess.ID, status, durationStr)

		if len(sess.SessionGoals) > 0 {
			shown := sess.SessionGoals
			ellipsis := ""
			if len(shown) > 2 {
				shown = shown[:2]
				ellipsis = "..."
			}
			fmt.Fprintf(&b, "Goals: %s%s\n", strings.Join(shown, ", "), ellipsis)
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String()), nil
}
