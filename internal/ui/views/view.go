package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"modgrip/internal/domain"
)

// Mode names understood by the renderer
const (
	ModeNormal        = "normal"
	ModeSearch        = "search"
	ModeFilter        = "filter"
	ModeDeleteConfirm = "delete-confirm"
	ModeEdit          = "edit"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Modules        []domain.Module
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	Tags          []string
	SearchInput   string // rendered text input
	Searching     bool
	Spinner       string
	Filter        domain.FilterMode
	PageSize      int
	Err           error
	StatusMessage string

	InputMode     string
	FilterOptions []domain.FilterMode
	FilterCursor  int
	DeleteTarget  string
	EditTarget    string
	Editor        string // rendered textarea
	Preview       string // rendered markdown, shown instead of the editor when set

	Username string
	HelpView string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	moduleRender *ModuleRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showTags bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		moduleRender: NewModuleRenderer(styles, showTags),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	innerWidth := termWidth - 4 // Account for main container padding

	var top strings.Builder
	top.WriteString(r.renderTitleLine(state, innerWidth))
	top.WriteString("\n\n")
	top.WriteString(r.RenderSearchLine(state))
	top.WriteString("\n")
	if state.Err != nil {
		top.WriteString(r.styles.StatusError.Render("Search failed: " + state.Err.Error()))
	}
	top.WriteString("\n")

	bottom := r.renderBottom(state)

	// Account for container padding (1 top, 1 bottom from Padding(1, 2))
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	bodyHeight := availableLines - lipgloss.Height(top.String()) - lipgloss.Height(bottom)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch state.InputMode {
	case ModeFilter:
		body = r.popupRender.RenderDialog("Filter", r.renderFilterOptions(state), innerWidth, bodyHeight)
	case ModeDeleteConfirm:
		prompt := r.styles.Confirm.Render(fmt.Sprintf("Delete module '%s'? (y/n)", state.DeleteTarget))
		body = r.popupRender.RenderDialog("Delete module", prompt+"\n\n"+r.styles.Help.Render("e edit instead"), innerWidth, bodyHeight)
	case ModeEdit:
		body = r.renderEditor(state, innerWidth, bodyHeight)
	default:
		body = r.renderModuleList(state, innerWidth, bodyHeight)
	}

	// Pad the body so help stays at the bottom
	if lines := lipgloss.Height(body); lines < bodyHeight {
		body += strings.Repeat("\n", bodyHeight-lines)
	}

	return r.styles.Main.Render(top.String() + body + "\n" + bottom)
}

func (r *Renderer) renderTitleLine(state ViewState, width int) string {
	logo := r.styles.Title.Render("modgrip")

	var indicators []string
	if state.Searching {
		indicators = append(indicators, r.styles.Dim.Render(state.Spinner+" Searching"))
	}
	indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[%s]", state.Filter.Label())))
	if state.PageSize > 0 {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%d per page", state.PageSize)))
	}
	if state.Username != "" {
		indicators = append(indicators, r.styles.Dim.Render("@"+state.Username))
	}
	rightContent := strings.Join(indicators, "  ")

	paddingWidth := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	// If not enough space, just show with minimal spacing
	return logo + "  " + rightContent
}

// RenderSearchLine renders the prompt, the tag chips and the text input
func (r *Renderer) RenderSearchLine(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Prompt.Render("Search: "))
	for _, tag := range state.Tags {
		b.WriteString(r.styles.Chip.Render(tag))
	}
	b.WriteString(state.SearchInput)
	return b.String()
}

func (r *Renderer) renderModuleList(state ViewState, width, height int) string {
	if len(state.Modules) == 0 {
		if state.Searching {
			return r.styles.Dim.Render("Loading modules...")
		}
		return r.styles.Dim.Render("No modules match the current search.")
	}

	visible := state.ViewportHeight
	if visible <= 0 || visible > height {
		visible = height
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Modules) {
		start = 0
	}
	end := min(start+visible, len(state.Modules))

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.moduleRender.RenderModule(state.Modules[i], i == state.SelectedIndex, width))
	}

	if len(state.Modules) > visible {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(state.Modules))))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderFilterOptions(state ViewState) string {
	lines := make([]string, 0, len(state.FilterOptions))
	for i, f := range state.FilterOptions {
		cursor := "  "
		if i == state.FilterCursor {
			cursor = r.styles.Highlight.Render("> ")
		}

		label := f.Label()
		switch {
		case !f.Selectable():
			label = r.styles.Disabled.Render(label)
		case f == state.Filter:
			label = r.styles.Filter.Render(label + " ✓")
		}
		lines = append(lines, cursor+label)
	}
	lines = append(lines, "", r.styles.Help.Render("enter select • esc cancel"))
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderEditor(state ViewState, width, height int) string {
	title := r.styles.DialogTitle.Render(fmt.Sprintf("Edit %s", state.EditTarget))

	content := state.Editor
	hint := "ctrl+s save • tab preview • ctrl+d delete • esc cancel"
	if state.Preview != "" {
		content = state.Preview
		hint = "tab back to editor • ctrl+s save • esc cancel"
	}

	lines := strings.Split(content, "\n")
	if limit := height - 3; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return title + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n")) +
		"\n" + r.styles.Help.Render(hint)
}

func (r *Renderer) renderBottom(state ViewState) string {
	var b strings.Builder
	if state.StatusMessage != "" {
		b.WriteString(r.styles.Status.Render(state.StatusMessage))
		b.WriteString("\n")
	}
	if state.HelpView != "" {
		b.WriteString(state.HelpView)
	}
	return strings.TrimRight(b.String(), "\n")
}
