// Package resources implements MCP resource handlers for STARLOG.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (starlog://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sancovp/starlog-mcp/internal/starlog"
)

// Handler manages STARLOG resource endpoints.
type Handler struct {
	svc *starlog.Service
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(svc *starlog.Service) *Handler {
	return &Handler{svc: svc}
}

// RecentProjectsResource returns the MCP resource definition for the
// recently used projects listing.
func (h *Handler) RecentProjectsResource() mcp.Resource {
	return mcp.NewResource(
		"starlog://projects/recent",
		"Recent STARLOG Projects",
		mcp.WithResourceDescription("Recently used STARLOG projects, most recent first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRecentProjects returns the first page of recent projects as JSON.
func (h *Handler) HandleRecentProjects(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	page, err := h.svc.RecentProjects(1)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling recent projects: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
