package starlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/registry"
	"github.com/sancovp/starlog-mcp/internal/timeline"
)

// Marker preconditions.
var (
	// ErrAlreadyInitialized is returned when init targets a directory that
	// already carries a starlog.hpi.
	ErrAlreadyInitialized = errors.New("project already initialized")
	// ErrNotInitialized is returned when an operation requires a tracked
	// project but the directory carries no starlog.hpi.
	ErrNotInitialized = errors.New("project not initialized")
)

// RegistryCounts is the per-registry record tally reported by Check.
type RegistryCounts struct {
	Rules      int `json:"rules"`
	DebugDiary int `json:"debug_diary"`
	Starlog    int `json:"starlog"`
}

// CheckResult describes whether a directory is a tracked STARLOG project.
// For untracked directories only the two booleans are populated.
type CheckResult struct {
	IsStarlogProject bool            `json:"is_starlog_project"`
	ProjectName      string          `json:"project_name,omitempty"`
	HpiFileExists    bool            `json:"hpi_file_exists"`
	Registries       *RegistryCounts `json:"registries,omitempty"`
}

// ─── Check ───────────────────────────────────────────────────────────────────

// Check reports whether path is a STARLOG project and, when it is, the
// record counts of its three registries.
func (s *Service) Check(path string) (*CheckResult, error) {
	if !hpi.MarkerExists(path) {
		return &CheckResult{IsStarlogProject: false, HpiFileExists: false}, nil
	}

	project := hpi.ProjectName(path)
	counts, err := s.registryCounts(project)
	if err != nil {
		return nil, err
	}

	s.recordUse(path)
	return &CheckResult{
		IsStarlogProject: true,
		ProjectName:      project,
		HpiFileExists:    true,
		Registries:       counts,
	}, nil
}

func (s *Service) registryCounts(project string) (*RegistryCounts, error) {
	rules, err := s.store.Count(rulesCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: count rules: %w", err)
	}
	diary, err := s.store.Count(diaryCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: count diary: %w", err)
	}
	sessions, err := s.store.Count(starlogCollection(project))
	if err != nil {
		return nil, fmt.Errorf("starlog: count sessions: %w", err)
	}
	return &RegistryCounts{Rules: rules, DebugDiary: diary, Starlog: sessions}, nil
}

// ─── Init ────────────────────────────────────────────────────────────────────

// Init creates the three project registries and writes the starlog.hpi
// marker. An empty name defaults to the directory basename. Re-initializing
// an existing project is rejected so an established marker is never
// overwritten.
func (s *Service) Init(path, name, description string) (string, error) {
	if hpi.MarkerExists(path) {
		return "", fmt.Errorf("starlog: %s: %w", path, ErrAlreadyInitialized)
	}
	if name == "" {
		name = filepath.Base(filepath.Clean(path))
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("starlog: create project dir: %w", err)
	}

	for _, collection := range []string{
		rulesCollection(name),
		diaryCollection(name),
		starlogCollection(name),
	} {
		if err := s.store.CreateCollection(collection); err != nil {
			return "", fmt.Errorf("starlog: init registries: %w", err)
		}
	}

	if err := hpi.WriteMarker(path, hpi.DefaultMarker(name, description)); err != nil {
		return "", fmt.Errorf("starlog: init marker: %w", err)
	}

	s.recordUse(path)
	return fmt.Sprintf("✅ Initialized STARLOG project '%s' with registries and starlog.hpi", name), nil
}

// ─── Orient ──────────────────────────────────────────────────────────────────

// Orient loads the project marker and renders the full orientation context:
// project metadata, the rules block, and the latest session with its
// in-window diary entries. When the template renderer fails, the marker
// name plus a plain-markdown session context is returned instead.
func (s *Service) Orient(path string) (string, error) {
	marker, err := hpi.ReadMarker(path)
	if errors.Is(err, hpi.ErrNoMarker) {
		return "", fmt.Errorf("starlog: %s: %w", path, ErrNotInitialized)
	}
	if err != nil {
		return "", err
	}

	project := hpi.ProjectName(path)
	sessions, err := s.loadSessions(project)
	if err != nil {
		return "", err
	}
	entries, err := s.loadEntries(project)
	if err != nil {
		return "", err
	}
	rules, err := s.loadRules(project)
	if err != nil {
		return "", err
	}

	latest := timeline.FindLatestSession(sessions)
	windowed := entriesForSession(latest, entries)
	parts := hpi.BuildSessionParts(latest, windowed)
	vars := hpi.TemplateVars(
		marker.Metadata.ProjectName,
		marker.Metadata.ProjectDescription,
		parts,
		hpi.RulesBlock(rules),
	)

	s.recordUse(path)

	rendered, err := s.renderer.Render(marker, vars)
	if err != nil {
		return hpi.FallbackRender(marker, hpi.SessionContext(latest, windowed)), nil
	}
	return rendered, nil
}

// ─── Storage paths ───────────────────────────────────────────────────────────

// StoragePaths reports where each project registry is stored and whether it
// exists yet. All collections share the one registry database file.
func (s *Service) StoragePaths(path string) (string, error) {
	project := hpi.ProjectName(path)
	dbPath := filepath.Join(s.dataDir, registry.DBFileName)

	collections := []string{
		starlogCollection(project),
		diaryCollection(project),
		rulesCollection(project),
	}

	blocks := make([]string, 0, len(collections))
	for _, name := range collections {
		exists, err := s.store.CollectionExists(name)
		if err != nil {
			return "", fmt.Errorf("starlog: storage paths: %w", err)
		}
		if exists {
			blocks = append(blocks, fmt.Sprintf("Registry: %s\nPath: %s ✅", name, dbPath))
		} else {
			blocks = append(blocks, fmt.Sprintf("Registry: %s\nPath: %s ❌ (not found)", name, dbPath))
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}
