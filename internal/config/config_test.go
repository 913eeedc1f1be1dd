package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sancovp/starlog-mcp/internal/config"
)

// --- Defaults ---

func TestDefault_Values(t *testing.T) {
	t.Setenv("STARLOG_DATA_DIR", "/srv/starlog")

	cfg := config.Default()
	if cfg.DataDir != "/srv/starlog" {
		t.Errorf("DataDir = %s, want /srv/starlog", cfg.DataDir)
	}
	if cfg.RecentProjectsBound != 100 {
		t.Errorf("RecentProjectsBound = %d, want 100", cfg.RecentProjectsBound)
	}
	if cfg.RecentPageSize != 10 {
		t.Errorf("RecentPageSize = %d, want 10", cfg.RecentPageSize)
	}
	if cfg.FlightPageSize != 5 {
		t.Errorf("FlightPageSize = %d, want 5", cfg.FlightPageSize)
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("STARLOG_CONFIG", "/etc/starlog/config.yaml")

	if got := config.DefaultPath(); got != "/etc/starlog/config.yaml" {
		t.Errorf("DefaultPath = %s, want /etc/starlog/config.yaml", got)
	}
}

func TestDefaultPath_UnderDataDir(t *testing.T) {
	t.Setenv("STARLOG_CONFIG", "")
	t.Setenv("STARLOG_DATA_DIR", "/srv/starlog")

	want := filepath.Join("/srv/starlog", "config.yaml")
	if got := config.DefaultPath(); got != want {
		t.Errorf("DefaultPath = %s, want %s", got, want)
	}
}

// --- Load ---

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoad_PartialFileOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("recent_projects_bound: 25\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecentProjectsBound != 25 {
		t.Errorf("RecentProjectsBound = %d, want 25", cfg.RecentProjectsBound)
	}
	if cfg.RecentPageSize != 10 || cfg.FlightPageSize != 5 {
		t.Errorf("unnamed fields changed: %+v", cfg)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

// --- Save ---

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := config.Config{
		DataDir:             "/srv/starlog",
		RecentProjectsBound: 50,
		RecentPageSize:      20,
		FlightPageSize:      3,
	}
	if err := config.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
