// Package flight stores and browses flight configs: reusable waypoint plans
// that extend the base STARLOG session workflow with project-specific steps.
//
// Configs live in one global registry collection, scoped to their origin
// project and grouped by category. Browsing is paginated; a project with no
// configs at all gets the default plan materialized on disk instead.
package flight

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sancovp/starlog-mcp/internal/models"
	"github.com/sancovp/starlog-mcp/internal/registry"
)

// Collection is the global registry collection holding every flight config.
const Collection = "starlog_flight_configs"

// DefaultPageSize is how many configs one browse page lists.
const DefaultPageSize = 5

var timeNow = time.Now

// Browser reads and writes flight configs.
type Browser struct {
	store    registry.Store
	pageSize int
}

// NewBrowser returns a Browser over store. A non-positive pageSize selects
// the default.
func NewBrowser(store registry.Store, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{store: store, pageSize: pageSize}
}

// ─── Save / load ─────────────────────────────────────────────────────────────

// Save persists a flight config, assigning an ID, timestamps, the default
// category, and the default plan where the caller left them empty.
func (b *Browser) Save(cfg models.FlightConfig) (models.FlightConfig, error) {
	if cfg.Name == "" {
		return models.FlightConfig{}, fmt.Errorf("flight: config name must not be empty")
	}
	if cfg.OriginalProjectPath == "" {
		return models.FlightConfig{}, fmt.Errorf("flight: config original project path must not be empty")
	}
	if cfg.ID == "" {
		cfg.ID = models.NewFlightConfigID()
	}
	if cfg.Category == "" {
		cfg.Category = models.DefaultCategory
	}
	if cfg.Plan == nil {
		cfg.Plan = DefaultPlan()
	}
	now := models.FormatTimestamp(timeNow().UTC())
	if cfg.CreatedAt == "" {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	if err := b.store.Put(Collection, cfg.ID, cfg); err != nil {
		return models.FlightConfig{}, fmt.Errorf("flight: save config: %w", err)
	}
	return cfg, nil
}

// load reads every flight config, skipping undecodable records, in creation
// order so page numbering is stable across calls.
func (b *Browser) load() ([]models.FlightConfig, error) {
	raw, err := b.store.GetAll(Collection)
	if err != nil {
		return nil, fmt.Errorf("flight: load configs: %w", err)
	}
	configs := make([]models.FlightConfig, 0, len(raw))
	for key, data := range raw {
		var cfg models.FlightConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			continue
		}
		if cfg.ID == "" {
			cfg.ID = key
		}
		configs = append(configs, cfg)
	}
	sort.SliceStable(configs, func(i, j int) bool {
		if configs[i].CreatedAt != configs[j].CreatedAt {
			return configs[i].CreatedAt < configs[j].CreatedAt
		}
		if configs[i].Name != configs[j].Name {
			return configs[i].Name < configs[j].Name
		}
		return configs[i].ID < configs[j].ID
	})
	return configs, nil
}

// ─── Browse ──────────────────────────────────────────────────────────────────

// Browse renders one page of the flight config listing for a project.
//
// With no page and no category it renders the category overview. A page of 0
// means "first page". When the filters match nothing, the default plan is
// written into the project directory and a pointer to it is returned.
func (b *Browser) Browse(path string, page int, category string, thisProjectOnly bool) (string, error) {
	configs, err := b.load()
	if err != nil {
		return "", err
	}

	var filtered []models.FlightConfig
	for _, cfg := range configs {
		if thisProjectOnly && cfg.OriginalProjectPath != path {
			continue
		}
		if category != "" && cfg.Category != category {
			continue
		}
		filtered = append(filtered, cfg)
	}

	if len(filtered) == 0 {
		planPath, err := WriteDefaultPlan(path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("No custom flight configs found. Using default: start_waypoint_journey('%s', '%s')", planPath, path), nil
	}

	if page == 0 && category == "" {
		return b.categoriesPage(filtered), nil
	}
	return b.configsPage(filtered, page, category, path), nil
}

// categoriesPage renders the category overview.
func (b *Browser) categoriesPage(configs []models.FlightConfig) string {
	counts := make(map[string]int)
	for _, cfg := range configs {
		cat := cfg.Category
		if cat == "" {
			cat = models.DefaultCategory
		}
		counts[cat]++
	}
	categories := make([]string, 0, len(counts))
	for cat := range counts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var out strings.Builder
	fmt.Fprintf(&out, "Available Flight Categories (%d total configs):\n", len(configs))
	for _, cat := range categories {
		fmt.Fprintf(&out, "- %s (%d configs)\n", cat, counts[cat])
	}
	out.WriteString("\nUse starlog_fly(path, category='name') to browse categories")
	return out.String()
}

// configsPage renders one numbered page of configs. Numbering is global
// across pages so an item keeps its number when the page changes.
func (b *Browser) configsPage(configs []models.FlightConfig, page int, category, path string) string {
	total := len(configs)
	totalPages := (total + b.pageSize - 1) / b.pageSize
	if page < 1 {
		page = 1
	}

	start := (page - 1) * b.pageSize
	end := start + b.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	var out strings.Builder
	if category != "" {
		fmt.Fprintf(&out, "%s Flight Configs (%d configs, page %d/%d):\n", models.TitleCase(category), total, page, totalPages)
	} else {
		fmt.Fprintf(&out, "All Flight Configs (page %d/%d):\n", page, totalPages)
	}

	for i, cfg := range configs[start:end] {
		name := cfg.Name
		if name == "" {
			name = "Unnamed"
		}
		desc := cfg.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&out, "%d. %s - %s\n", start+i+1, name, desc)
	}

	if totalPages > 1 {
		fmt.Fprintf(&out, "\nUse starlog_fly('%s', page=%d", path, page+1)
		if category != "" {
			fmt.Fprintf(&out, ", category='%s'", category)
		}
		out.WriteString(") for more")
	}
	return out.String()
}
