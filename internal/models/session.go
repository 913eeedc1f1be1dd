package models

import (
	"fmt"
	"math"
	"strings"
)

// Session is one captain's-log entry: a work session with a START marker,
// optional structured fields accumulated during the session, and an END
// marker set when the session closes.
type Session struct {
	ID              string   `json:"id"`
	Timestamp       string   `json:"timestamp"`
	Date            string   `json:"date"`
	SessionTitle    string   `json:"session_title"`
	StartContent    string   `json:"start_content"`
	RelevantDocs    []string `json:"relevant_docs,omitempty"`
	SessionGoals    []string `json:"session_goals,omitempty"`
	KeyDiscoveries  []string `json:"key_discoveries,omitempty"`
	FilesUpdated    []string `json:"files_updated,omitempty"`
	ChallengesFaced []string `json:"challenges_faced,omitempty"`
	EndContent      *string  `json:"end_content,omitempty"`
	EndTimestamp    *string  `json:"end_timestamp,omitempty"`
}

// Ended reports whether the session has an END marker.
func (s *Session) Ended() bool {
	return s.EndContent != nil
}

// Malformed reports whether the session lacks a START marker and must be
// skipped during timeline aggregation.
func (s *Session) Malformed() bool {
	return s.StartContent == ""
}

// DurationMinutes returns the duration between start and end rounded to
// the nearest minute. The second return is false for open sessions or
// unparseable timestamps.
func (s *Session) DurationMinutes() (int, bool) {
	if s.EndTimestamp == nil {
		return 0, false
	}
	start, err := ParseTimestamp(s.Timestamp)
	if err != nil {
		return 0, false
	}
	end, err := ParseTimestamp(*s.EndTimestamp)
	if err != nil {
		return 0, false
	}
	return int(math.Round(end.Sub(start).Seconds() / 60)), true
}

// ToMarkdown renders the session as a captain's-log block.
// Open sessions get a "Session in progress" note instead of an END marker.
func (s *Session) ToMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s - %s\n", s.Date, s.SessionTitle)
	fmt.Fprintf(&b, "**START**: %s\n", s.StartContent)

	if len(s.RelevantDocs) > 0 {
		fmt.Fprintf(&b, "**Relevant docs**: %s\n", strings.Join(s.RelevantDocs, ", "))
	}
	if len(s.SessionGoals) > 0 {
		b.WriteString("**Session goals**:\n")
		for _, goal := range s.SessionGoals {
			fmt.Fprintf(&b, "- %s\n", goal)
		}
	}
	if len(s.KeyDiscoveries) > 0 {
		b.WriteString("**Key discoveries**:\n")
		for i, discovery := range s.KeyDiscoveries {
			fmt.Fprintf(&b, "%d. %s\n", i+1, discovery)
		}
	}
	if len(s.FilesUpdated) > 0 {
		b.WriteString("**Files updated during session**:\n")
		for _, file := range s.FilesUpdated {
			fmt.Fprintf(&b, "- `%s`\n", file)
		}
	}
	if len(s.ChallengesFaced) > 0 {
		b.WriteString("**Challenges faced**:\n")
		for i, challenge := range s.ChallengesFaced {
			fmt.Fprintf(&b, "%d. %s\n", i+1, challenge)
		}
	}

	if s.EndContent != nil {
		fmt.Fprintf(&b, "**END**: %s\n\n---\n\n", *s.EndContent)
	} else {
		b.WriteString("**Note**: Session in progress (END marker missing)\n\n---\n\n")
	}

	return b.String()
}
