package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderDialog renders a titled dialog centred in a width x height area
func (pr *PopupRenderer) RenderDialog(title, body string, width, height int) string {
	content := pr.styles.DialogTitle.Render(title) + "\n" + body

	maxWidth := width - 6 // keep a small margin
	if maxWidth < 20 {
		maxWidth = 20
	}
	dialog := pr.styles.Dialog.MaxWidth(maxWidth).Render(content)

	if width <= 0 || height <= 0 {
		return dialog
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
