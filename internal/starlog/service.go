// Package starlog composes the STARLOG capabilities behind one explicitly
// constructed service: project lifecycle, session timeline, debug diary,
// rules, orientation rendering, and recent-projects tracking.
//
// Design principles:
// - DIP: storage, rendering, and issue tracking are injected interfaces
// - No singleton: callers construct a Service and pass it to handlers
// - Stateless: every operation re-reads its collections from the registry,
//   so state is always derived from records, never cached in process
package starlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/recent"
	"github.com/sancovp/starlog-mcp/internal/registry"
	"github.com/sancovp/starlog-mcp/internal/timeline"
	"github.com/sancovp/starlog-mcp/internal/tracker"
)

var timeNow = time.Now

// Precondition errors surfaced to callers as descriptive tool failures.
var (
	ErrSessionActive   = errors.New("session already active")
	ErrNoActiveSession = errors.New("no active session")
)

// Service is the STARLOG façade the tool layer calls into.
type Service struct {
	store    registry.Store
	renderer hpi.Renderer
	issues   tracker.Tracker
	recent   *recent.Tracker
	dataDir  string
}

// New wires a Service. A nil renderer selects the built-in template
// renderer, a nil issues tracker selects the disabled one, and a nil
// recent tracker gets constructed over the same store with defaults.
func New(store registry.Store, renderer hpi.Renderer, issues tracker.Tracker, recentTracker *recent.Tracker, dataDir string) *Service {
	if renderer == nil {
		renderer = hpi.TemplateRenderer{}
	}
	if issues == nil {
		issues = tracker.Disabled{}
	}
	if recentTracker == nil {
		recentTracker = recent.NewTracker(store, 0, 0)
	}
	return &Service{
		store:    store,
		renderer: renderer,
		issues:   issues,
		recent:   recentTracker,
		dataDir:  dataDir,
	}
}

// ─── Collections ─────────────────────────────────────────────────────────────

// Each project gets three registry collections, named by project.
func starlogCollection(project string) string { return project + "_starlog" }
func diaryCollection(project string) string   { return project + "_debug_diary" }
func rulesCollection(project string) string   { return project + "_rules" }

// ─── Record loading ──────────────────────────────────────────────────────────

// loadSessions reads every session record for a project. Records that fail
// to decode are skipped: one corrupt record must not blind the timeline.
func (s *Service) loadSessions(project string) ([]models.Session, error) {
	raw, err := s.store.GetAll(starlogCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: load sessions: %w", err)
	}
	sessions := make([]models.Session, 0, len(raw))
	for key, data := range raw {
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		if sess.ID == "" {
			sess.ID = key
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// loadEntries reads every diary record for a project, skipping undecodable
// records.
func (s *Service) loadEntries(project string) ([]models.DiaryEntry, error) {
	raw, err := s.store.GetAll(diaryCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: load diary: %w", err)
	}
	entries := make([]models.DiaryEntry, 0, len(raw))
	for key, data := range raw {
		var e models.DiaryEntry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		if e.ID == "" {
			e.ID = key
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// loadRules reads every rule record for a project, skipping undecodable
// records, and returns them in creation order so grouping is deterministic.
func (s *Service) loadRules(project string) ([]models.Rule, error) {
	raw, err := s.store.GetAll(rulesCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: load rules: %w", err)
	}
	rules := make([]models.Rule, 0, len(raw))
	for key, data := range raw {
		var r models.Rule
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		if r.ID == "" {
			r.ID = key
		}
		rules = append(rules, r)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].CreatedAt != rules[j].CreatedAt {
			return rules[i].CreatedAt < rules[j].CreatedAt
		}
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}

// entriesForSession selects the diary entries inside a session's window.
// A nil session selects nothing.
func entriesForSession(session *models.Session, entries []models.DiaryEntry) []models.DiaryEntry {
	if session == nil {
		return nil
	}
	return timeline.EntriesInWindow(entries, session.Timestamp, session.EndTimestamp)
}

// ─── Recent-projects feed ────────────────────────────────────────────────────

// recordUse feeds the recent-projects tracker. Tracking failures are logged
// and swallowed: they never abort the primary operation.
func (s *Service) recordUse(path string) {
	if err := s.recent.RecordUse(path); err != nil {
		log.Printf("WARNING: recent-projects tracking failed: %v", err)
	}
}

// RecentProjects returns one page of the newest-first recent-projects list.
func (s *Service) RecentProjects(page int) (*recent.Page, error) {
	return s.recent.ListRecent(page)
}
