package starlog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// ─── StartSession ────────────────────────────────────────────────────────────

func TestStartSession_CreatesOpenSession(t *testing.T) {
	restore := starlog.SetTimeNow(minuteClock(baseTime))
	defer restore()

	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	sess, err := svc.StartSession(dir, "Fix parser", "digging in", []string{"find bug"}, []string{"docs/parser.md"})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !strings.HasPrefix(sess.ID, "session_") {
		t.Errorf("session ID = %q, want session_ prefix", sess.ID)
	}
	if sess.Timestamp != "2026-01-02T10:00:00Z" || sess.Date != "2026-01-02" {
		t.Errorf("session timestamps = %q / %q", sess.Timestamp, sess.Date)
	}
	if sess.Ended() {
		t.Error("new session already ended")
	}
}

func TestStartSession_WritesBoundaryEntry(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	if _, err := svc.StartSession(dir, "Fix parser", "digging in", nil, nil); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	diary, err := svc.ViewDiary(dir)
	if err != nil {
		t.Fatalf("ViewDiary: %v", err)
	}
	if !strings.Contains(diary, "🚀 Session started: Fix parser") {
		t.Errorf("diary missing start boundary entry:\n%s", diary)
	}
}

func TestStartSession_RejectsSecondOpenSession(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	if _, err := svc.StartSession(dir, "first", "one", nil, nil); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	_, err := svc.StartSession(dir, "second", "two", nil, nil)
	if !errors.Is(err, starlog.ErrSessionActive) {
		t.Errorf("second start error = %v, want ErrSessionActive", err)
	}
}

func TestStartSession_AllowedAfterEnd(t *testing.T) {
	restore := starlog.SetTimeNow(minuteClock(baseTime))
	defer restore()

	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	if _, err := svc.StartSession(dir, "first", "one", nil, nil); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.EndSession(dir, "done", nil, nil, nil); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := svc.StartSession(dir, "second", "two", nil, nil); err != nil {
		t.Errorf("start after end: %v", err)
	}
}

// ─── EndSession ──────────────────────────────────────────────────────────────

func TestEndSession_ClosesActiveSession(t *testing.T) {
	restore := starlog.SetTimeNow(minuteClock(baseTime))
	defer restore()

	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	started, err := svc.StartSession(dir, "Fix parser", "digging in", []string{"find bug"}, nil)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	ended, err := svc.EndSession(dir, "fixed it", nil, nil, nil)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if ended.ID != started.ID {
		t.Errorf("ended session %s, want %s", ended.ID, started.ID)
	}
	if !ended.Ended() || *ended.EndContent != "fixed it" {
		t.Errorf("session not closed: %+v", ended)
	}
	if minutes, ok := ended.DurationMinutes(); !ok || minutes != 1 {
		t.Errorf("duration = %d (ok=%v), want 1 minute", minutes, ok)
	}
	// title, goals, and start content survive the close untouched
	if ended.SessionTitle != "Fix parser" || ended.StartContent != "digging in" {
		t.Errorf("closed session mutated: %+v", ended)
	}
	if len(ended.SessionGoals) != 1 || ended.SessionGoals[0] != "find bug" {
		t.Errorf("goals mutated: %v", ended.SessionGoals)
	}
}

func TestEndSession_NoActiveSession(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	_, err := svc.EndSession(dir, "done", nil, nil, nil)
	if !errors.Is(err, starlog.ErrNoActiveSession) {
		t.Errorf("end error = %v, want ErrNoActiveSession", err)
	}
}

func TestEndSession_ReplacesProvidedLists(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	if _, err := svc.StartSession(dir, "first", "one", nil, nil); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	ended, err := svc.EndSession(dir, "done",
		[]string{"found root cause"},
		[]string{"main.go"},
		nil,
	)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if len(ended.KeyDiscoveries) != 1 || ended.KeyDiscoveries[0] != "found root cause" {
		t.Errorf("KeyDiscoveries = %v", ended.KeyDiscoveries)
	}
	if len(ended.FilesUpdated) != 1 || ended.FilesUpdated[0] != "main.go" {
		t.Errorf("FilesUpdated = %v", ended.FilesUpdated)
	}
	if ended.ChallengesFaced != nil {
		t.Errorf("ChallengesFaced = %v, want untouched nil", ended.ChallengesFaced)
	}
}

func TestEndSession_WritesBoundaryEntryWithDuration(t *testing.T) {
	restore := starlog.SetTimeNow(minuteClock(baseTime))
	defer restore()

	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	if _, err := svc.StartSession(dir, "Fix parser", "digging in", nil, nil); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.EndSession(dir, "fixed it", nil, nil, nil); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	diary, err := svc.ViewDiary(dir)
	if err != nil {
		t.Fatalf("ViewDiary: %v", err)
	}
	if !strings.Contains(diary, "✅ Session ended: Fix parser (1 minute)") {
		t.Errorf("diary missing end boundary entry:\n%s", diary)
	}
}

// ─── ViewSessions ────────────────────────────────────────────────────────────

func TestViewSessions_Empty(t *testing.T) {
	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	out, err := svc.ViewSessions(dir)
	if err != nil {
		t.Fatalf("ViewSessions: %v", err)
	}
	want := "📋 **STARLOG Sessions** (Empty)\n\nNo sessions found."
	if out != want {
		t.Errorf("ViewSessions = %q, want %q", out, want)
	}
}

func TestViewSessions_History(t *testing.T) {
	restore := starlog.SetTimeNow(minuteClock(baseTime))
	defer restore()

	svc, _, _, dir := newTestService(t)
	initProject(t, svc, dir)

	first, err := svc.StartSession(dir, "Fix parser", "digging in",
		[]string{"reproduce", "bisect", "fix"}, nil)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := svc.EndSession(dir, "fixed", nil, nil, nil); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	second, err := svc.StartSession(dir, "Add tests", "writing coverage", nil, nil)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	out, err := svc.ViewSessions(dir)
	if err != nil {
		t.Fatalf("ViewSessions: %v", err)
	}

	if !strings.HasPrefix(out, "📋 **STARLOG Sessions**\n\n") {
		t.Errorf("missing header:\n%s", out)
	}
	// newest first: the open session precedes the closed one
	openLine := "**2026-01-02** - Add tests `" + second.ID + "` 🔄 IN PROGRESS"
	closedLine := "**2026-01-02** - Fix parser `" + first.ID + "` ✅ COMPLETE (1min)"
	openAt := strings.Index(out, openLine)
	closedAt := strings.Index(out, closedLine)
	if openAt == -1 || closedAt == -1 {
		t.Fatalf("missing session lines (open=%d closed=%d):\n%s", openAt, closedAt, out)
	}
	if openAt > closedAt {
		t.Errorf("sessions not newest-first:\n%s", out)
	}
	// goals are trimmed to two with an ellipsis
	if !strings.Contains(out, "Goals: reproduce, bisect...\n") {
		t.Errorf("missing trimmed goals line:\n%s", out)
	}
}
