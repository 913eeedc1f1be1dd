// Package timeline reconstructs session state from persisted records.
//
// The registry keeps no mutable "active session" flag. Whether a session is
// active is derived on demand by walking the records newest to oldest, so a
// crash can never strand a stale flag: the records are the state.
package timeline

import (
	"sort"

	"github.com/sancovp/starlog-mcp/internal/models"
)

// FindActiveSession returns the session new work lands in, or nil when no
// session is active.
//
// Records are walked newest to oldest (timestamp ties broken by id so the
// walk is deterministic). The first well-formed record decides the answer:
// if it is open, that session is active; if it is closed, nothing is.
// Records without a START marker are skipped.
func FindActiveSession(sessions []models.Session) *models.Session {
	sorted := SortSessionsDesc(sessions)
	for i := range sorted {
		s := &sorted[i]
		if s.Malformed() {
			continue
		}
		if !s.Ended() {
			return s
		}
		return nil
	}
	return nil
}

// FindLatestSession returns the most recent session by timestamp, open or
// closed, or nil when there are none. Context assembly uses this; lifecycle
// decisions go through FindActiveSession instead.
func FindLatestSession(sessions []models.Session) *models.Session {
	var latest *models.Session
	for i := range sessions {
		s := &sessions[i]
		if latest == nil || moreRecent(s, latest) {
			latest = s
		}
	}
	return latest
}

// EntriesInWindow returns the diary entries belonging to a session window:
// strictly after start, and at or before end when the window is closed.
// An entry written at the exact session start is the session's own boundary
// marker, not work done inside it. Entries come back ascending.
func EntriesInWindow(entries []models.DiaryEntry, start string, end *string) []models.DiaryEntry {
	var out []models.DiaryEntry
	for _, e := range entries {
		if e.Timestamp <= start {
			continue
		}
		if end != nil && e.Timestamp > *end {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortSessionsDesc returns a copy of sessions ordered newest first.
func SortSessionsDesc(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool { return moreRecent(&out[i], &out[j]) })
	return out
}

// SortEntriesDesc returns a copy of entries ordered newest first.
func SortEntriesDesc(entries []models.DiaryEntry) []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// moreRecent reports whether a sorts after b, breaking timestamp ties by id.
func moreRecent(a, b *models.Session) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}
	return a.ID > b.ID
}
