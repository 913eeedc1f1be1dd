package hpi

import (
	"fmt"
	"strings"
)

// Renderer turns a marker's blocks plus named template variables into the
// final orientation text. The service treats it as an external dependency:
// when Render fails, orientation degrades to FallbackRender instead of
// surfacing an error.
type Renderer interface {
	Render(m *Marker, vars map[string]string) (string, error)
}

// TemplateRenderer is the built-in Renderer. It substitutes {name} spans
// with their bound values and joins the blocks with newlines. Unbound
// placeholders pass through untouched.
type TemplateRenderer struct{}

var _ Renderer = TemplateRenderer{}

// Render implements Renderer.
func (TemplateRenderer) Render(m *Marker, vars map[string]string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("hpi: render: nil marker")
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	replacer := strings.NewReplacer(pairs...)

	rendered := make([]string, 0, len(m.Blocks))
	for _, blk := range m.Blocks {
		rendered = append(rendered, replacer.Replace(blk.Content))
	}
	return strings.Join(rendered, "\n"), nil
}

// FallbackRender produces the minimal plain-text orientation used when the
// template renderer is unavailable.
func FallbackRender(m *Marker, context string) string {
	name := "Unknown"
	if m != nil && m.Name != "" {
		name = m.Name
	}
	return fmt.Sprintf("# %s\n\n⚠️  Template renderer unavailable - using fallback rendering\n\n%s", name, context)
}
