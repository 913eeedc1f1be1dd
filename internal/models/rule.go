package models

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// --- Enforcement level enum ---

// EnforcementLevel classifies how strongly a rule binds.
type EnforcementLevel string

const (
	EnforcementError      EnforcementLevel = "error"
	EnforcementWarning    EnforcementLevel = "warning"
	EnforcementSuggestion EnforcementLevel = "suggestion"
)

// validEnforcementLevels is the set of allowed enforcement levels.
var validEnforcementLevels = map[EnforcementLevel]bool{
	EnforcementError:      true,
	EnforcementWarning:    true,
	EnforcementSuggestion: true,
}

// ValidateEnforcementLevel returns an error if the level is not recognized.
func ValidateEnforcementLevel(l EnforcementLevel) error {
	if !validEnforcementLevels[l] {
		return fmt.Errorf("invalid enforcement level %q: must be one of: error, warning, suggestion", l)
	}
	return nil
}

// --- Priority ---

const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = 5
)

// ValidatePriority returns an error if the priority is out of range.
func ValidatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return fmt.Errorf("invalid priority %d: must be between %d and %d", p, MinPriority, MaxPriority)
	}
	return nil
}

// DefaultCategory is assigned to rules created without a category.
const DefaultCategory = "general"

// --- Rule ---

// Rule is one project convention the agent must follow. Rules are grouped
// by category and ordered by priority (higher binds harder) in every view.
type Rule struct {
	ID                string           `json:"id"`
	Rule              string           `json:"rule"`
	Category          string           `json:"category"`
	Priority          int              `json:"priority"`
	AppliesTo         []string         `json:"applies_to,omitempty"`
	ViolationExamples []string         `json:"violation_examples,omitempty"`
	EnforcementLevel  EnforcementLevel `json:"enforcement_level"`
	RelatedRules      []string         `json:"related_rules,omitempty"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
}

// Validate checks the rule's constrained fields.
func (r *Rule) Validate() error {
	if r.Rule == "" {
		return fmt.Errorf("rule text must not be empty")
	}
	if err := ValidatePriority(r.Priority); err != nil {
		return err
	}
	return ValidateEnforcementLevel(r.EnforcementLevel)
}

// MatchesFile reports whether the rule applies to the given file path.
// Patterns use doublestar globs ("*.go", "api/**"). Patterns without a
// path separator are also tried against the file's basename, so "*.go"
// matches files in nested directories. A rule with no patterns applies
// everywhere.
func (r *Rule) MatchesFile(path string) bool {
	if len(r.AppliesTo) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range r.AppliesTo {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
