// Package config loads the server configuration file.
//
// Configuration is optional: a missing file yields the defaults, and a
// partial file overrides only the fields it names.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sancovp/starlog-mcp/internal/flight"
	"github.com/sancovp/starlog-mcp/internal/recent"
	"github.com/sancovp/starlog-mcp/internal/registry"
)

// FileName is the configuration file looked up under the data directory.
const FileName = "config.yaml"

// Config holds the tunable settings of the server.
type Config struct {
	// DataDir is where the registry database lives.
	DataDir string `yaml:"data_dir"`
	// RecentProjectsBound caps the recent-projects tracker.
	RecentProjectsBound int `yaml:"recent_projects_bound"`
	// RecentPageSize is the recent-projects page length.
	RecentPageSize int `yaml:"recent_page_size"`
	// FlightPageSize is the flight-config listing page length.
	FlightPageSize int `yaml:"flight_page_size"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		DataDir:             registry.DefaultConfig().DataDir,
		RecentProjectsBound: recent.DefaultBound,
		RecentPageSize:      recent.DefaultPageSize,
		FlightPageSize:      flight.DefaultPageSize,
	}
}

// DefaultPath returns the configuration file location. STARLOG_CONFIG
// overrides it.
func DefaultPath() string {
	if p := os.Getenv("STARLOG_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(registry.DefaultConfig().DataDir, FileName)
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
