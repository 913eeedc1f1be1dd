package flight_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sancovp/starlog-mcp/internal/flight"
	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/registry"
)

func newTestBrowser(t *testing.T) *flight.Browser {
	t.Helper()
	store, err := registry.New(registry.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return flight.NewBrowser(store, 0)
}

// saveConfigs stores n configs for path in one category. Zero-padded names
// keep the listing order deterministic.
func saveConfigs(t *testing.T, b *flight.Browser, path, category string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := b.Save(models.FlightConfig{
			Name:                fmt.Sprintf("cfg%02d", i),
			OriginalProjectPath: path,
			Category:            category,
			Description:         fmt.Sprintf("plan %d", i),
		})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
}

// ─── Default plan ────────────────────────────────────────────────────────────

func TestWriteDefaultPlan_CreatesWaypointFile(t *testing.T) {
	dir := t.TempDir()

	planPath, err := flight.WriteDefaultPlan(dir)
	if err != nil {
		t.Fatalf("WriteDefaultPlan: %v", err)
	}
	if planPath != filepath.Join(dir, "starlog_flight.json") {
		t.Errorf("plan path = %s", planPath)
	}

	data, err := os.ReadFile(planPath)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	var plan struct {
		Domain     string `json:"domain"`
		EntryPoint string `json:"entry_point"`
		RootFiles  []struct {
			Filename string `json:"filename"`
			Sequence int    `json:"sequence_number"`
		} `json:"root_files"`
	}
	if err := json.Unmarshal(data, &plan); err != nil {
		t.Fatalf("plan not valid JSON: %v", err)
	}
	if plan.Domain != "starlog_session" || plan.EntryPoint != "01_check.md" {
		t.Errorf("plan header = %+v", plan)
	}
	if len(plan.RootFiles) != 5 {
		t.Fatalf("plan has %d waypoints, want 5", len(plan.RootFiles))
	}
	for i, f := range plan.RootFiles {
		if f.Sequence != i+1 {
			t.Errorf("waypoint %s has sequence %d, want %d", f.Filename, f.Sequence, i+1)
		}
	}
}

func TestWriteDefaultPlan_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "starlog_flight.json")
	if err := os.WriteFile(planPath, []byte(`{"custom":true}`), 0644); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	if _, err := flight.WriteDefaultPlan(dir); err != nil {
		t.Fatalf("WriteDefaultPlan: %v", err)
	}
	data, err := os.ReadFile(planPath)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	if string(data) != `{"custom":true}` {
		t.Errorf("existing plan overwritten: %s", data)
	}
}

// ─── Save ────────────────────────────────────────────────────────────────────

func TestSave_FillsDefaults(t *testing.T) {
	b := newTestBrowser(t)

	cfg, err := b.Save(models.FlightConfig{Name: "review flow", OriginalProjectPath: "/p"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if cfg.ID == "" || cfg.CreatedAt == "" || cfg.UpdatedAt == "" {
		t.Errorf("identity fields not filled: %+v", cfg)
	}
	if cfg.Category != "general" {
		t.Errorf("Category = %q, want general", cfg.Category)
	}
	if cfg.Plan == nil {
		t.Error("Plan not defaulted")
	}
}

func TestSave_RequiresNameAndOrigin(t *testing.T) {
	b := newTestBrowser(t)

	if _, err := b.Save(models.FlightConfig{OriginalProjectPath: "/p"}); err == nil {
		t.Error("nameless config accepted")
	}
	if _, err := b.Save(models.FlightConfig{Name: "x"}); err == nil {
		t.Error("config without origin path accepted")
	}
}

// ─── Browse ──────────────────────────────────────────────────────────────────

func TestBrowse_NoConfigsFallsBackToDefaultPlan(t *testing.T) {
	b := newTestBrowser(t)
	dir := t.TempDir()

	out, err := b.Browse(dir, 0, "", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	planPath := filepath.Join(dir, "starlog_flight.json")
	want := fmt.Sprintf("No custom flight configs found. Using default: start_waypoint_journey('%s', '%s')", planPath, dir)
	if out != want {
		t.Errorf("Browse = %q, want %q", out, want)
	}
	if _, err := os.Stat(planPath); err != nil {
		t.Errorf("default plan not written: %v", err)
	}
}

func TestBrowse_CategoriesPage(t *testing.T) {
	b := newTestBrowser(t)
	saveConfigs(t, b, "/p", "research", 2)
	saveConfigs(t, b, "/p", "workflow", 1)

	out, err := b.Browse("/p", 0, "", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	want := "Available Flight Categories (3 total configs):\n" +
		"- research (2 configs)\n" +
		"- workflow (1 configs)\n" +
		"\nUse starlog_fly(path, category='name') to browse categories"
	if out != want {
		t.Errorf("Browse =\n%q\nwant:\n%q", out, want)
	}
}

func TestBrowse_ScopesToProject(t *testing.T) {
	b := newTestBrowser(t)
	saveConfigs(t, b, "/p", "research", 1)
	saveConfigs(t, b, "/other", "research", 1)

	out, err := b.Browse("/p", 0, "", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !strings.Contains(out, "(1 total configs)") {
		t.Errorf("project scoping failed:\n%s", out)
	}

	out, err = b.Browse("/p", 0, "", false)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !strings.Contains(out, "(2 total configs)") {
		t.Errorf("this_project_only=false still scoped:\n%s", out)
	}
}

func TestBrowse_PaginatesCategoryConfigs(t *testing.T) {
	b := newTestBrowser(t)
	saveConfigs(t, b, "/p", "research", 7)

	out, err := b.Browse("/p", 1, "research", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !strings.HasPrefix(out, "Research Flight Configs (7 configs, page 1/2):\n1. cfg01 - plan 1\n") {
		t.Errorf("page 1 header/items wrong:\n%s", out)
	}
	if !strings.Contains(out, "5. cfg05 - plan 5\n") || strings.Contains(out, "6. cfg06") {
		t.Errorf("page 1 not cut at five items:\n%s", out)
	}
	if !strings.HasSuffix(out, "Use starlog_fly('/p', page=2, category='research') for more") {
		t.Errorf("page 1 missing next-page hint:\n%s", out)
	}

	out, err = b.Browse("/p", 2, "research", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	// numbering continues across pages
	if !strings.Contains(out, "6. cfg06 - plan 6\n") || !strings.Contains(out, "7. cfg07 - plan 7\n") {
		t.Errorf("page 2 items wrong:\n%s", out)
	}
}

func TestBrowse_AllConfigsSinglePage(t *testing.T) {
	b := newTestBrowser(t)
	saveConfigs(t, b, "/p", "research", 2)

	out, err := b.Browse("/p", 1, "", true)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if !strings.HasPrefix(out, "All Flight Configs (page 1/1):\n") {
		t.Errorf("header wrong:\n%s", out)
	}
	if strings.Contains(out, "for more") {
		t.Errorf("single page shows next-page hint:\n%s", out)
	}
}
