package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modgrip/internal/domain"
)

// ModuleRenderer handles rendering of listing rows
type ModuleRenderer struct {
	styles   *Styles
	showTags bool
}

// NewModuleRenderer creates a new module renderer
func NewModuleRenderer(styles *Styles, showTags bool) *ModuleRenderer {
	return &ModuleRenderer{
		styles:   styles,
		showTags: showTags,
	}
}

// RenderModule renders one listing row
func (r *ModuleRenderer) RenderModule(mod domain.Module, isSelected bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = r.styles.Highlight.Render("> ")
	}

	name := mod.Name
	if isSelected {
		name = r.styles.Highlight.Render(name)
	}

	parts := []string{cursor + name}

	var badges []string
	if mod.Trusted {
		badges = append(badges, r.styles.Trusted.Render("✓ trusted"))
	}
	if mod.Flagged {
		badges = append(badges, r.styles.Flagged.Render("⚑ flagged"))
	}
	if len(badges) > 0 {
		parts = append(parts, strings.Join(badges, " "))
	}

	if r.showTags && len(mod.Tags) > 0 {
		tags := make([]string, len(mod.Tags))
		for i, t := range mod.Tags {
			tags[i] = "#" + t
		}
		parts = append(parts, r.styles.Dim.Render(strings.Join(tags, " ")))
	}

	var meta []string
	if mod.Author != "" {
		meta = append(meta, "by "+mod.Author)
	}
	if !mod.UpdatedAt.IsZero() {
		meta = append(meta, mod.UpdatedAt.Format("2006-01-02"))
	}
	if len(meta) > 0 {
		parts = append(parts, r.styles.Status.Render(fmt.Sprintf("(%s)", strings.Join(meta, ", "))))
	}

	line := strings.Join(parts, "  ")
	if width > 0 && lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	if isSelected {
		line = r.styles.SelectionBg.Render(line)
	}
	return line
}
