// Package tracker defines the boundary to an external issue tracker.
//
// Diary entries flagged as bug reports or bug fixes are mirrored into the
// tracker. The integration is strictly fire-and-forget: a tracker failure
// becomes a Warning on the diary result and never aborts the append.
package tracker

import (
	"errors"

	"github.com/sancovp/starlog-mcp/internal/models"
)

// ErrDisabled is returned by the Disabled tracker.
var ErrDisabled = errors.New("issue tracker not configured")

// Tracker mirrors diary entries into an external issue tracker.
type Tracker interface {
	// CreateIssue opens an issue for a bug-report entry and returns its id.
	CreateIssue(entry models.DiaryEntry) (issueID string, err error)
	// UpdateIssue moves the entry's referenced issue to review and returns
	// the status it was moved to.
	UpdateIssue(entry models.DiaryEntry) (status string, err error)
}

// Warning reports a side effect that failed without failing the operation
// that requested it.
type Warning struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

// Disabled is the default Tracker. Every call reports that no tracker is
// configured, which the caller surfaces as a warning.
type Disabled struct{}

var _ Tracker = Disabled{}

func (Disabled) CreateIssue(models.DiaryEntry) (string, error) { return "", ErrDisabled }
func (Disabled) UpdateIssue(models.DiaryEntry) (string, error) { return "", ErrDisabled }
