// Package models defines the STARLOG record types persisted in the registry:
// sessions, debug diary entries, project rules, and flight configs.
//
// Design principles:
// - SRP: each record type lives in its own file with its own rendering
// - Pure data: no storage or clock access here; services inject timestamps
// - Timestamps are UTC RFC3339 strings so lexicographic order is
//   chronological order
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// --- Identifiers ---

// shortID returns the first 8 hex digits of a random UUID.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewSessionID returns a fresh session identifier ("session_<8hex>").
func NewSessionID() string { return "session_" + shortID() }

// NewDiaryID returns a fresh diary entry identifier ("diary_<8hex>").
func NewDiaryID() string { return "diary_" + shortID() }

// NewRuleID returns a fresh rule identifier ("rule_<8hex>").
func NewRuleID() string { return "rule_" + shortID() }

// NewFlightConfigID returns a fresh flight config identifier (full UUID).
func NewFlightConfigID() string { return uuid.NewString() }

// --- Timestamps ---

// FormatTimestamp renders t as a zero-padded UTC RFC3339 instant.
// Every persisted timestamp goes through here.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDate renders t as the UTC calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseTimestamp parses a timestamp produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDuration renders a whole-minute duration for humans.
func FormatDuration(minutes int) string {
	switch {
	case minutes <= 0:
		return "less than a minute"
	case minutes == 1:
		return "1 minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

// --- Headings ---

// TitleCase renders a category name as a heading ("general" → "General").
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
