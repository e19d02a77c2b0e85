package modes

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
	"modgrip/internal/ui/input/types"
)

// EditMode edits a module description in a textarea
type EditMode struct {
	textArea *textarea.Model
	target   domain.Module
}

func NewEditMode(ta *textarea.Model) *EditMode {
	return &EditMode{textArea: ta}
}

func (m *EditMode) Name() string {
	return "edit"
}

// Target returns the module being edited
func (m *EditMode) Target() domain.Module {
	return m.target
}

func (m *EditMode) Enter(ctx types.Context) []types.Action {
	if mod, ok := ctx.CurrentModule(); ok {
		m.target = mod
	}
	return nil
}

func (m *EditMode) Exit(ctx types.Context) []types.Action {
	m.textArea.Blur()
	return nil
}

func (m *EditMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "ctrl+s":
		return []types.Action{
			types.SaveEditAction{ID: m.target.ID, Description: m.textArea.Value()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "tab":
		return []types.Action{types.TogglePreviewAction{}}, true
	case "ctrl+d":
		// Opening the delete confirmation closes the editor
		return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
	}
	return nil, false
}
