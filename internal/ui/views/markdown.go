package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders module descriptions for the terminal
type MarkdownRenderer struct {
	style string // glamour style name, "auto" detects the terminal background
}

// NewMarkdownRenderer creates a renderer using the given glamour style
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "auto"
	}
	return &MarkdownRenderer{style: style}
}

// Render converts markdown to styled terminal text wrapped at width
func (r *MarkdownRenderer) Render(markdown string, width int) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	if width < 20 {
		width = 20
	}

	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
