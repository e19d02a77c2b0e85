package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/ui/input/modes"
	"modgrip/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // search field
	textArea    *textarea.Model  // description editor

	filterMode  *modes.FilterSelectMode
	confirmMode *modes.ConfirmMode
	editMode    *modes.EditMode
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "type to search, tag:<name> + space adds a tag"
	ti.Prompt = ""

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		textArea:    &ta,
		modes:       make(map[types.Mode]types.ModeHandler),
		filterMode:  modes.NewFilterSelectMode(),
		confirmMode: modes.NewConfirmMode(),
		editMode:    modes.NewEditMode(&ta),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeFilterSelect] = h.filterMode
	h.modes[types.ModeDeleteConfirm] = h.confirmMode
	h.modes[types.ModeEdit] = h.editMode

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're not in a text mode, drop the key
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmds []tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode, ctx)...)
		if cmd := h.focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// In a text mode an unhandled key goes to the widget
	if h.isTextMode(h.currentMode) && (!consumed || len(actions) == 0) {
		switch h.currentMode {
		case types.ModeSearch:
			var cmd tea.Cmd
			before := h.textInput.Value()
			*h.textInput, cmd = h.textInput.Update(msg)
			cmds = append(cmds, cmd)
			if h.textInput.Value() != before {
				allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
			}
		case types.ModeEdit:
			var cmd tea.Cmd
			*h.textArea, cmd = h.textArea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return allActions, tea.Batch(cmds...)
}

// switchMode leaves the current mode and enters the requested one
func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode
	switch change.Mode {
	case types.ModeSearch:
		h.textInput.SetValue(change.Data)
		h.textInput.CursorEnd()
	case types.ModeEdit:
		h.textArea.Reset()
		h.textArea.SetValue(change.Data)
	}

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

// focus gives keyboard focus to the widget of the current mode
func (h *Handler) focus() tea.Cmd {
	switch h.currentMode {
	case types.ModeSearch:
		return h.textInput.Focus()
	case types.ModeEdit:
		return h.textArea.Focus()
	}
	h.textInput.Blur()
	h.textArea.Blur()
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeEdit:
		return true
	default:
		return false
	}
}

// Update handles non-keyboard messages such as cursor blink for the active widget
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch h.currentMode {
	case types.ModeSearch:
		*h.textInput, cmd = h.textInput.Update(msg)
	case types.ModeEdit:
		*h.textArea, cmd = h.textArea.Update(msg)
	}
	return cmd
}

// SetSearchText replaces the search field value, e.g. after a tag was lifted out
func (h *Handler) SetSearchText(text string) {
	if h.textInput.Value() == text {
		return
	}
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

// SetEditorSize resizes the description editor
func (h *Handler) SetEditorSize(width, height int) {
	h.textArea.SetWidth(width)
	h.textArea.SetHeight(height)
}

// TextInput returns the search field
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// TextArea returns the description editor
func (h *Handler) TextArea() *textarea.Model {
	return h.textArea
}

// FilterMode returns the filter picker state
func (h *Handler) FilterMode() *modes.FilterSelectMode {
	return h.filterMode
}

// ConfirmMode returns the delete confirmation state
func (h *Handler) ConfirmMode() *modes.ConfirmMode {
	return h.confirmMode
}

// EditMode returns the editor state
func (h *Handler) EditMode() *modes.EditMode {
	return h.editMode
}
