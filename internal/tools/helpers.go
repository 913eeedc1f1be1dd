// Package tools implements the MCP tool handlers for the STARLOG surface.
//
// Each tool receives its dependencies via its struct (DIP) and exposes a
// Definition for registration plus a Handle compatible with mcp-go's
// CallToolRequest signature. Failures an agent can act on become tool
// error results, never Go errors, so the calling agent always gets a
// reply it can show.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the starlog.Service facade and flight.Browser, not on storage
// - OCP: new tools are added without modifying existing ones
package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// requirePath extracts the required project path argument.
func requirePath(req mcp.CallToolRequest) (string, bool) {
	path := strings.TrimSpace(req.GetString("path", ""))
	return path, path != ""
}

// intArg extracts an integer argument. JSON numbers arrive as float64;
// anything else falls back to defaultVal.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument, falling back to defaultVal when the
// key is missing or not a bool.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringListArg extracts a string-array argument. A missing or malformed
// argument yields nil; an explicitly empty array yields an empty non-nil
// slice. Callers rely on the distinction: nil means "leave as is" while
// an empty slice means "replace with nothing".
func stringListArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// optionalString extracts a trimmed optional string argument, mapping the
// empty string to nil.
func optionalString(req mcp.CallToolRequest, key string) *string {
	s := strings.TrimSpace(req.GetString(key, ""))
	if s == "" {
		return nil
	}
	return &s
}

// snippet shortens content for one-line confirmations.
func snippet(s string) string {
	r := []rune(s)
	if len(r) <= 50 {
		return s
	}
	return string(r[:50]) + "..."
}
