package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sancovp/starlog-mcp/internal/models"
)

// apiTimeout is how long we wait for the GitHub API.
const apiTimeout = 10 * time.Second

// For testing: allow overriding the API base URL.
var apiBaseURL = "https://api.github.com"

// GitHub mirrors diary entries into GitHub issues through the REST API.
// Bug reports open an issue labeled "bug"; bug fixes move their issue to
// in-review by labeling it.
type GitHub struct {
	repo   string
	token  string
	client *http.Client
}

var _ Tracker = (*GitHub)(nil)

// NewGitHub creates a tracker for the given "owner/name" repository.
func NewGitHub(repo, token string) *GitHub {
	return &GitHub{
		repo:   repo,
		token:  token,
		client: &http.Client{Timeout: apiTimeout},
	}
}

// FromEnv returns a GitHub tracker when STARLOG_GITHUB_REPO and
// GITHUB_TOKEN are both set, and the Disabled tracker otherwise.
func FromEnv() Tracker {
	repo := os.Getenv("STARLOG_GITHUB_REPO")
	token := os.Getenv("GITHUB_TOKEN")
	if repo == "" || token == "" {
		return Disabled{}
	}
	return NewGitHub(repo, token)
}

// CreateIssue implements Tracker.
func (g *GitHub) CreateIssue(entry models.DiaryEntry) (string, error) {
	payload := map[string]any{
		"title":  issueTitle(entry.Content),
		"body":   issueBody(entry),
		"labels": []string{"bug"},
	}

	var created struct {
		Number int `json:"number"`
	}
	url := fmt.Sprintf("%s/repos/%s/issues", apiBaseURL, g.repo)
	if err := g.post(url, payload, &created); err != nil {
		return "", fmt.Errorf("tracker: create issue: %w", err)
	}
	return fmt.Sprintf("#%d", created.Number), nil
}

// UpdateIssue implements Tracker.
func (g *GitHub) UpdateIssue(entry models.DiaryEntry) (string, error) {
	if entry.IssueID == nil || *entry.IssueID == "" {
		return "", fmt.Errorf("tracker: update issue: no issue id")
	}
	number := strings.TrimPrefix(*entry.IssueID, "#")

	payload := map[string]any{"labels": []string{"in-review"}}
	url := fmt.Sprintf("%s/repos/%s/issues/%s/labels", apiBaseURL, g.repo, number)
	if err := g.post(url, payload, nil); err != nil {
		return "", fmt.Errorf("tracker: update issue %s: %w", *entry.IssueID, err)
	}
	return "in-review", nil
}

// post sends a JSON payload and decodes the response into out when non-nil.
func (g *GitHub) post(url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// issueTitle derives the issue title from the entry content.
func issueTitle(content string) string {
	r := []rune(content)
	if len(r) > 50 {
		content = string(r[:50]) + "..."
	}
	return "Bug: " + content
}

// issueBody renders the entry details into the issue body.
func issueBody(entry models.DiaryEntry) string {
	var b strings.Builder
	b.WriteString(entry.Content)
	if entry.Insights != nil && *entry.Insights != "" {
		fmt.Fprintf(&b, "\n\n**Insights**: %s", *entry.Insights)
	}
	if entry.InFile != nil && *entry.InFile != "" {
		fmt.Fprintf(&b, "\n\n**File**: `%s`", *entry.InFile)
	}
	fmt.Fprintf(&b, "\n\n_Reported by STARLOG (%s)_", entry.Timestamp)
	return b.String()
}
