package starlog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sancovp/starlog-mcp/internal/hpi"
	"github.com/sancovp/starlog-mcp/internal/models"
)

// RuleInput carries the caller-provided fields of a new rule. Zero values
// select the model defaults (category "general", priority 5, enforcement
// "warning").
type RuleInput struct {
	Rule             string
	Category         string
	Priority         int
	AppliesTo        []string
	EnforcementLevel string
}

// ─── Add / delete ────────────────────────────────────────────────────────────

// AddRule persists a single new rule for the project at path.
func (s *Service) AddRule(path string, in RuleInput) (*models.Rule, error) {
	project := hpi.ProjectName(path)

	now := models.FormatTimestamp(timeNow().UTC())
	rule := models.Rule{
		ID:               models.NewRuleID(),
		Rule:             in.Rule,
		Category:         in.Category,
		Priority:         in.Priority,
		AppliesTo:        in.AppliesTo,
		EnforcementLevel: models.EnforcementLevel(in.EnforcementLevel),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	applyRuleDefaults(&rule)
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("starlog: add rule: %w", err)
	}

	if err := s.store.Put(rulesCollection(project), rule.ID, rule); err != nil {
		return nil, fmt.Errorf("starlog: save rule: %w", err)
	}
	return &rule, nil
}

// DeleteRule removes a rule by ID. Deleting a rule that does not exist
// reports registry.ErrNotFound.
func (s *Service) DeleteRule(path, ruleID string) error {
	project := hpi.ProjectName(path)
	if err := s.store.Delete(rulesCollection(project), ruleID); err != nil {
		return fmt.Errorf("starlog: delete rule: %w", err)
	}
	return nil
}

// ─── Bulk replace ────────────────────────────────────────────────────────────

// UpdateRules replaces the project's entire rule set with the given rules.
// Incoming rules keep their IDs when set, get fresh ones otherwise, and are
// validated before anything is written. Returns the number of rules stored.
func (s *Service) UpdateRules(path string, rules []models.Rule) (int, error) {
	project := hpi.ProjectName(path)
	collection := rulesCollection(project)

	now := models.FormatTimestamp(timeNow().UTC())
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = models.NewRuleID()
		}
		if rules[i].CreatedAt == "" {
			rules[i].CreatedAt = now
		}
		rules[i].UpdatedAt = now
		applyRuleDefaults(&rules[i])
		if err := rules[i].Validate(); err != nil {
			return 0, fmt.Errorf("starlog: update rules: rule %d: %w", i+1, err)
		}
	}

	existing, err := s.store.GetAll(collection)
	if err != nil {
		return 0, fmt.Errorf("starlog: update rules: %w", err)
	}
	for key := range existing {
		if err := s.store.Delete(collection, key); err != nil {
			return 0, fmt.Errorf("starlog: update rules: clear %s: %w", key, err)
		}
	}

	for _, rule := range rules {
		if err := s.store.Put(collection, rule.ID, rule); err != nil {
			return 0, fmt.Errorf("starlog: update rules: save %s: %w", rule.ID, err)
		}
	}
	return len(rules), nil
}

func applyRuleDefaults(r *models.Rule) {
	if r.Category == "" {
		r.Category = models.DefaultCategory
	}
	if r.Priority == 0 {
		r.Priority = models.DefaultPriority
	}
	if r.EnforcementLevel == "" {
		r.EnforcementLevel = models.EnforcementWarning
	}
}

// ─── Views ───────────────────────────────────────────────────────────────────

// ViewRules renders every project rule grouped by category. Categories
// appear in creation order, as do rules within each category.
func (s *Service) ViewRules(path string) (string, error) {
	project := hpi.ProjectName(path)

	rules, err := s.loadRules(project)
	if err != nil {
		return "", err
	}
	if len(rules) == 0 {
		return "No project rules found. Use starlog_add_rule to create rules.", nil
	}

	var categories []string
	grouped := make(map[string][]models.Rule)
	for _, r := range rules {
		cat := r.Category
		if cat == "" {
			cat = models.DefaultCategory
		}
		if _, seen := grouped[cat]; !seen {
			categories = append(categories, cat)
		}
		grouped[cat] = append(grouped[cat], r)
	}

	var b strings.Builder
	b.WriteString("📏 **Project Rules**\n\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "**%s**\n", models.TitleCase(cat))
		for _, r := range grouped[cat] {
			fmt.Fprintf(&b, "- [%d] %s `(%s)`\n", r.Priority, r.Rule, r.ID)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// RulesForFile returns the rules whose applies_to patterns match the given
// file, ordered by descending priority.
func (s *Service) RulesForFile(path, file string) ([]models.Rule, error) {
	project := hpi.ProjectName(path)

	rules, err := s.loadRules(project)
	if err != nil {
		return nil, err
	}

	var matched []models.Rule
	for _, r := range rules {
		if r.MatchesFile(file) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Priority > matched[j].Priority })
	return matched, nil
}
