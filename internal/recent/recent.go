// Package recent maintains the bounded, deduplicated recent-projects list.
//
// Every project-touching operation records a use; the tracker keeps at most
// Bound entries, one per project path, newest use wins. State lives entirely
// in the registry and is re-derived on every call, so concurrent writers can
// race but never corrupt: a later RecordUse re-prunes whatever it finds.
package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sancovp/starlog-mcp/internal/registry"
)

// Collection is the global registry collection backing the tracker.
const Collection = "starlog_recent_projects"

const (
	// DefaultBound is the retention cap on tracked entries.
	DefaultBound = 100
	// DefaultPageSize is the page size for listings.
	DefaultPageSize = 10
)

// ErrPageOutOfRange is returned when a listing page does not exist.
var ErrPageOutOfRange = errors.New("recent: page out of range")

var timeNow = time.Now

// instantKey renders a registry key for "now". Microsecond precision with
// fixed width keeps keys unique in practice and lexicographically ordered.
func instantKey(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}

// Entry is the stored record: just the project path. The use instant is the
// record's key.
type Entry struct {
	Path string `json:"path"`
}

// ProjectUse is one listing row.
type ProjectUse struct {
	Path     string `json:"path"`
	LastUsed string `json:"last_used"`
}

// Page is one page of the newest-first listing.
type Page struct {
	Projects   []ProjectUse `json:"projects"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`
}

// Tracker records and lists project uses.
type Tracker struct {
	store    registry.Store
	bound    int
	pageSize int
}

// NewTracker wires a tracker over the registry. Non-positive bound or
// pageSize fall back to the defaults.
func NewTracker(store registry.Store, bound, pageSize int) *Tracker {
	if bound <= 0 {
		bound = DefaultBound
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Tracker{store: store, bound: bound, pageSize: pageSize}
}

// RecordUse marks path as just used: prior uses of the same path are
// dropped, the use is stored under the current instant, and the oldest
// entries beyond the bound are evicted.
func (t *Tracker) RecordUse(path string) error {
	if path == "" {
		return fmt.Errorf("recent: empty project path")
	}

	all, err := t.store.GetAll(Collection)
	if err != nil {
		return fmt.Errorf("recent: load entries: %w", err)
	}

	// Dedupe: a project appears at most once, at its newest use.
	for key, raw := range all {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		if e.Path == path {
			if err := t.store.Delete(Collection, key); err != nil && !errors.Is(err, registry.ErrNotFound) {
				return fmt.Errorf("recent: drop duplicate: %w", err)
			}
		}
	}

	if err := t.store.Put(Collection, instantKey(timeNow()), Entry{Path: path}); err != nil {
		return fmt.Errorf("recent: record use: %w", err)
	}

	// Re-fetch and evict the oldest entries beyond the bound. Re-reading
	// instead of reusing the first fetch keeps eviction correct when
	// another writer slipped in between.
	all, err = t.store.GetAll(Collection)
	if err != nil {
		return fmt.Errorf("recent: reload entries: %w", err)
	}
	if len(all) <= t.bound {
		return nil
	}
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys[:len(all)-t.bound] {
		if err := t.store.Delete(Collection, key); err != nil && !errors.Is(err, registry.ErrNotFound) {
			return fmt.Errorf("recent: evict %q: %w", key, err)
		}
	}
	return nil
}

// ListRecent returns one page of the newest-first listing. Page 1 of an
// empty tracker is an empty page; any other page outside
// [1, ceil(total/pageSize)] returns ErrPageOutOfRange.
func (t *Tracker) ListRecent(page int) (*Page, error) {
	all, err := t.store.GetAll(Collection)
	if err != nil {
		return nil, fmt.Errorf("recent: load entries: %w", err)
	}

	uses := make([]ProjectUse, 0, len(all))
	for key, raw := range all {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil || e.Path == "" {
			continue
		}
		uses = append(uses, ProjectUse{Path: e.Path, LastUsed: key})
	}
	sort.Slice(uses, func(i, j int) bool { return uses[i].LastUsed > uses[j].LastUsed })

	total := len(uses)
	totalPages := (total + t.pageSize - 1) / t.pageSize

	if total == 0 {
		if page == 1 {
			return &Page{Projects: nil, Page: 1, TotalPages: 1, Total: 0}, nil
		}
		return nil, fmt.Errorf("%w: page %d (nothing tracked yet)", ErrPageOutOfRange, page)
	}
	if page < 1 || page > totalPages {
		return nil, fmt.Errorf("%w: page %d (valid: 1-%d)", ErrPageOutOfRange, page, totalPages)
	}

	lo := (page - 1) * t.pageSize
	hi := lo + t.pageSize
	if hi > total {
		hi = total
	}
	return &Page{Projects: uses[lo:hi], Page: page, TotalPages: totalPages, Total: total}, nil
}

// PageSize reports the configured page size.
func (t *Tracker) PageSize() int { return t.pageSize }
