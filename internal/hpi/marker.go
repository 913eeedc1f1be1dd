// Package hpi manages the starlog.hpi project marker and assembles the
// orientation context rendered from it.
//
// The marker is a JSON document of renderable text blocks plus project
// metadata. Its presence in a directory is the sole signal that the
// directory is a tracked project. Blocks may carry {variable} placeholders
// that the renderer substitutes with assembled session content.
package hpi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MarkerFileName is the marker every tracked project carries.
const MarkerFileName = "starlog.hpi"

// ErrNoMarker is returned when a directory has no starlog.hpi.
var ErrNoMarker = errors.New("starlog.hpi not found")

// Block is one renderable text block in the marker template.
type Block struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Metadata identifies the project the marker belongs to.
type Metadata struct {
	ProjectName        string `json:"project_name"`
	ProjectDescription string `json:"project_description"`
}

// Marker is the starlog.hpi document.
type Marker struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata"`
	Blocks   []Block  `json:"blocks"`
}

// MarkerPath returns the marker location for a project directory.
func MarkerPath(dir string) string {
	return filepath.Join(dir, MarkerFileName)
}

// MarkerExists reports whether dir carries a starlog.hpi.
func MarkerExists(dir string) bool {
	info, err := os.Stat(MarkerPath(dir))
	return err == nil && !info.IsDir()
}

// ReadMarker loads and parses the marker in dir.
// Returns ErrNoMarker when the file does not exist.
func ReadMarker(dir string) (*Marker, error) {
	data, err := os.ReadFile(MarkerPath(dir))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("hpi: %s: %w", dir, ErrNoMarker)
	}
	if err != nil {
		return nil, fmt.Errorf("hpi: read marker: %w", err)
	}
	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("hpi: parse marker: %w", err)
	}
	return &m, nil
}

// WriteMarker persists the marker into dir.
func WriteMarker(dir string, m *Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("hpi: marshal marker: %w", err)
	}
	if err := os.WriteFile(MarkerPath(dir), data, 0644); err != nil {
		return fmt.Errorf("hpi: write marker: %w", err)
	}
	return nil
}

// DefaultMarker builds the standard captain's-log marker for a new project.
// Metadata lines carry real values; the session and rules blocks carry
// template placeholders bound at render time.
func DefaultMarker(name, description string) *Marker {
	return &Marker{
		Name: "starlog_context",
		Metadata: Metadata{
			ProjectName:        name,
			ProjectDescription: description,
		},
		Blocks: []Block{
			{Type: "freestyle", Content: "<STARLOG>"},
			{Type: "freestyle", Content: "<CaptainsLog>"},
			{Type: "freestyle", Content: "<ProjectMetadata>"},
			{Type: "freestyle", Content: fmt.Sprintf("Project Name: %s", name)},
			{Type: "freestyle", Content: fmt.Sprintf("Description: %s", description)},
			{Type: "freestyle", Content: "</ProjectMetadata>"},
			{Type: "freestyle", Content: "<Rules>{rules_content}</Rules>"},
			{Type: "freestyle", Content: "<Started>{session_start_content}</Started>"},
			{Type: "freestyle", Content: "<DebugDiaries>{debug_logs_content}</DebugDiaries>"},
			{Type: "freestyle", Content: "<Ended>{session_end_content}</Ended>"},
			{Type: "freestyle", Content: "</CaptainsLog>"},
			{Type: "freestyle", Content: "</STARLOG>"},
		},
	}
}

// ProjectName resolves the project name for a directory: the marker's
// metadata wins, the directory basename is the fallback.
func ProjectName(dir string) string {
	if m, err := ReadMarker(dir); err == nil && m.Metadata.ProjectName != "" {
		return m.Metadata.ProjectName
	}
	return filepath.Base(filepath.Clean(dir))
}
