package hpi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sancovp/starlog-mcp/internal/models"
)

// Placeholder text for the empty states. The asterisks keep them visibly
// distinct from real content in the rendered prompt.
const (
	NoSessionsFound   = "*No sessions found*"
	NoDebugLogs       = "*No debug logs*"
	NoSessionEnd      = "*No session end*"
	NoDebugEntries    = "*No debug entries*"
	SessionInProgress = "*Session in progress*"
	NoRulesDefined    = "*No rules defined*"
)

// SessionParts carries the three named slots every orientation render gets.
// All three are always populated; absence is expressed with placeholders,
// never with a missing slot.
type SessionParts struct {
	Start     string
	DebugLogs string
	End       string
}

// BuildSessionParts assembles the three context slots for a session and its
// in-window diary entries. A nil session yields the fixed placeholder trio.
func BuildSessionParts(session *models.Session, entries []models.DiaryEntry) SessionParts {
	if session == nil {
		return SessionParts{
			Start:     NoSessionsFound,
			DebugLogs: NoDebugLogs,
			End:       NoSessionEnd,
		}
	}

	var start strings.Builder
	fmt.Fprintf(&start, "**%s**\n%s", session.SessionTitle, session.StartContent)
	if len(session.RelevantDocs) > 0 {
		fmt.Fprintf(&start, "\n**Relevant docs**: %s", strings.Join(session.RelevantDocs, ", "))
	}
	if len(session.SessionGoals) > 0 {
		start.WriteString("\n**Session goals**:")
		for _, goal := range session.SessionGoals {
			fmt.Fprintf(&start, "\n- %s", goal)
		}
	}

	debugLogs := NoDebugEntries
	if len(entries) > 0 {
		var b strings.Builder
		for _, e := range entries {
			b.WriteString(entryLine(e))
		}
		debugLogs = b.String()
	}

	end := SessionInProgress
	if session.EndContent != nil {
		end = *session.EndContent
	}

	return SessionParts{Start: start.String(), DebugLogs: debugLogs, End: end}
}

// SessionContext renders a session and its in-window entries as one plain
// markdown passage. The fallback path uses this when the template renderer
// is unavailable.
func SessionContext(session *models.Session, entries []models.DiaryEntry) string {
	if session == nil {
		return NoSessionsFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", session.SessionTitle)
	fmt.Fprintf(&b, "**START**: %s\n\n", session.StartContent)

	if len(entries) > 0 {
		b.WriteString("**DEBUG ENTRIES**:\n")
		for _, e := range entries {
			b.WriteString(entryLine(e))
		}
		b.WriteString("\n")
	}

	if session.EndContent != nil {
		fmt.Fprintf(&b, "**END**: %s\n", *session.EndContent)
	}

	return b.String()
}

// entryLine renders one diary entry as a time-labeled list item.
// The timestamp is cut to minute precision (YYYY-MM-DDTHH:MM).
func entryLine(e models.DiaryEntry) string {
	return fmt.Sprintf("- %s: %s\n", shortTime(e.Timestamp), e.Content)
}

func shortTime(ts string) string {
	if len(ts) > 16 {
		return ts[:16]
	}
	return ts
}

// RulesBlock renders rules as a nested bulleted structure: one bullet per
// category in first-seen order, rules within a category ordered by
// descending priority (first-seen order breaks ties).
func RulesBlock(rules []models.Rule) string {
	if len(rules) == 0 {
		return NoRulesDefined
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
	for _, cat := range categories {
		fmt.Fprintf(&b, "- **%s**\n", models.TitleCase(cat))
		rs := grouped[cat]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Priority > rs[j].Priority })
		for _, r := range rs {
			fmt.Fprintf(&b, "  - [%d] %s\n", r.Priority, r.Rule)
		}
	}
	return b.String()
}

// TemplateVars binds the assembled content to the placeholder names the
// marker blocks reference.
func TemplateVars(projectName, projectDescription string, parts SessionParts, rulesBlock string) map[string]string {
	return map[string]string{
		"project_name":          projectName,
		"project_description":   projectDescription,
		"session_start_content": parts.Start,
		"debug_logs_content":    parts.DebugLogs,
		"session_end_content":   parts.End,
		"rules_content":         rulesBlock,
	}
}
