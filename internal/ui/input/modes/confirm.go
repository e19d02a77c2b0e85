package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"modgrip/internal/domain"
	"modgrip/internal/ui/input/types"
)

type ConfirmMode struct {
	target domain.Module
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

// Target returns the module awaiting confirmation
func (m *ConfirmMode) Target() domain.Module {
	return m.target
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	// Store the module when entering the mode so a list refresh cannot retarget it
	if mod, ok := ctx.CurrentModule(); ok {
		m.target = mod
	}
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		return []types.Action{
			types.DeleteModuleAction{ID: m.target.ID},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "e":
		// Opening the editor closes the confirmation
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEdit, Data: m.target.Description}}, true
	}

	return nil, false
}
